package store

import (
	"context"
	"errors"

	"github.com/carebridgehq/clinicd/internal/clinic/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and to stop callers from accidentally nesting transactions.
type Store interface {
	Profiles() Profiles
	Clinics() Clinics
	StaffMembers() StaffMembers
	Invites() Invites
	OTPChallenges() OTPChallenges

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to run multi-step operations that must be atomic
	// (e.g. accept-invite-and-create-membership).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Profiles interface {
	// GetProfileByID returns a profile by id.
	GetProfileByID(ctx context.Context, id string) (domain.Profile, error)

	// GetProfileByEmail looks up by lower-cased email.
	GetProfileByEmail(ctx context.Context, email string) (domain.Profile, error)

	// CreateProfile inserts a new profile (id is provided by app via ULID).
	CreateProfile(ctx context.Context, p domain.Profile) error

	// UpdateProfileDetails sets full_name, phone and specialty, bumps updated_at.
	UpdateProfileDetails(ctx context.Context, userID, fullName, phone, specialty string) error

	// MarkEmailVerified sets email_verified_at to now.
	MarkEmailVerified(ctx context.Context, userID string) error

	// DeleteProfile removes a profile. Used for the orphan rollback when a
	// freshly signed-up invitee fails the acceptance-time eligibility check.
	DeleteProfile(ctx context.Context, userID string) error
}

type Clinics interface {
	// GetClinicByID fetches a clinic.
	GetClinicByID(ctx context.Context, id string) (domain.Clinic, error)

	// CreateClinic inserts a new clinic (id is ULID).
	CreateClinic(ctx context.Context, c domain.Clinic) error
}

type StaffMembers interface {
	// CreateStaffMembership inserts a membership row.
	CreateStaffMembership(ctx context.Context, m domain.StaffMembership) error

	// GetMembership returns the membership for (clinicID, userID) if any.
	GetMembership(ctx context.Context, clinicID, userID string) (domain.StaffMembership, error)

	// GetOwnerMembershipForUser returns the user's owner membership in any
	// clinic. A user holds at most one.
	GetOwnerMembershipForUser(ctx context.Context, userID string) (domain.StaffMembership, error)

	// ListClinicStaff returns all memberships for a clinic, owner first,
	// then by creation date.
	ListClinicStaff(ctx context.Context, clinicID string) ([]domain.StaffMembership, error)

	// UpdateStaffStatus mutates the status and bumps updated_at.
	UpdateStaffStatus(ctx context.Context, clinicID, userID string, status domain.StaffStatus) error

	// DeleteStaffMembership removes a membership.
	DeleteStaffMembership(ctx context.Context, clinicID, userID string) error
}

type Invites interface {
	// CreateInvite writes a new invite (token_hash is the SHA-256
	// fingerprint of the opaque invite token).
	CreateInvite(ctx context.Context, inv domain.Invite) error

	// GetInviteByID fetches an invite regardless of state.
	GetInviteByID(ctx context.Context, id string) (domain.Invite, error)

	// GetInviteByTokenHash fetches an invite by fingerprint regardless of
	// state. The service layer distinguishes used/expired from missing.
	GetInviteByTokenHash(ctx context.Context, hash string) (domain.Invite, error)

	// GetActiveInviteForEmail returns the unaccepted, unexpired invite for
	// (clinicID, email) if one exists. Backs the duplicate-invite check.
	GetActiveInviteForEmail(ctx context.Context, clinicID, email string) (domain.Invite, error)

	// ListPendingInvitesByClinic returns unaccepted, unexpired invites.
	ListPendingInvitesByClinic(ctx context.Context, clinicID string) ([]domain.Invite, error)

	// MarkInviteAccepted sets accepted_at/accepted_by only if the invite is
	// still pending. Returns ErrNotFound when no pending row matched, which
	// is how the accept-once race is decided at the data layer.
	MarkInviteAccepted(ctx context.Context, inviteID, acceptedBy string) error

	// DeleteInvite hard-deletes an invite (owner revocation).
	DeleteInvite(ctx context.Context, inviteID string) error

	// DeleteExpiredInvites is housekeeping. Accepted invites are kept.
	DeleteExpiredInvites(ctx context.Context) error
}

type OTPChallenges interface {
	// CreateOTPChallenge stores a new challenge.
	CreateOTPChallenge(ctx context.Context, c domain.OTPChallenge) error

	// GetOTPChallenge returns the unexpired challenge for (email, purpose).
	GetOTPChallenge(ctx context.Context, email string, purpose domain.OTPPurpose) (domain.OTPChallenge, error)

	// IncrementOTPAttempts bumps the failed attempt counter and returns the
	// updated challenge.
	IncrementOTPAttempts(ctx context.Context, id string) (domain.OTPChallenge, error)

	// DeleteOTPChallenge removes a challenge by id.
	DeleteOTPChallenge(ctx context.Context, id string) error

	// DeleteOTPChallengesForEmail clears challenges for (email, purpose),
	// called before a fresh code is issued.
	DeleteOTPChallengesForEmail(ctx context.Context, email string, purpose domain.OTPPurpose) error

	// DeleteExpiredOTPChallenges is housekeeping.
	DeleteExpiredOTPChallenges(ctx context.Context) error
}

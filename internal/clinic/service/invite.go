package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/carebridgehq/clinicd/internal/clinic/domain"
	"github.com/carebridgehq/clinicd/internal/clinic/metrics"
	"github.com/carebridgehq/clinicd/internal/clinic/notify"
	"github.com/carebridgehq/clinicd/internal/clinic/store"
	"github.com/carebridgehq/clinicd/pkg/cryptox"
	"github.com/carebridgehq/clinicd/pkg/idx"
	"github.com/carebridgehq/clinicd/pkg/slogx"
)

var (
	ErrInvalidInviteRequest  = errors.New("invalid invite request")
	ErrNotClinicOwner        = errors.New("requester is not the clinic owner")
	ErrSelfInvite            = errors.New("owners cannot invite themselves")
	ErrDuplicateActiveInvite = errors.New("an active invite already exists for this email")
	ErrInviteNotFound        = errors.New("invite not found")
	ErrInviteAlreadyUsed     = errors.New("invite has already been used")
	ErrInviteExpired         = errors.New("invite has expired")
)

// InviteService mints, looks up, accepts and revokes staff invites. The raw
// invite token is a bearer credential returned exactly once; only its
// fingerprint is stored.
type InviteService struct {
	Store       store.Store
	Eligibility *EligibilityService
	Mailer      notify.Mailer
	Metrics     metrics.Recorder

	// BaseURL is the public origin invite links are built on,
	// e.g. "https://clinic.example".
	BaseURL string
}

// InviteLink renders the onboarding URL for a raw token.
func (s *InviteService) InviteLink(token string) string {
	return strings.TrimRight(s.BaseURL, "/") + "/onboarding/" + token
}

// CreateInvite mints an invite for email to join clinicID as a manager. It
// returns the raw token alongside the stored invite. Mail dispatch is
// asynchronous and best effort; the caller always gets the link back.
func (s *InviteService) CreateInvite(
	ctx context.Context,
	clinicID string,
	email string,
	fullName string,
	invitedBy string,
) (string, domain.Invite, error) {
	log := slogx.FromContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))
	if clinicID == "" || email == "" || invitedBy == "" {
		return "", domain.Invite{}, ErrInvalidInviteRequest
	}

	// 1. Clinic must exist and the requester must be its owner.
	clinic, err := s.Store.Clinics().GetClinicByID(ctx, clinicID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", domain.Invite{}, ErrInvalidInviteRequest
		}
		log.Error("failed to fetch clinic", slog.Any("error", err))
		return "", domain.Invite{}, err
	}
	if clinic.OwnerID != invitedBy {
		return "", domain.Invite{}, ErrNotClinicOwner
	}

	// 2. Owners cannot invite their own address.
	inviter, err := s.Store.Profiles().GetProfileByID(ctx, invitedBy)
	if err != nil {
		log.Error("failed to fetch inviter profile", slog.Any("error", err))
		return "", domain.Invite{}, err
	}
	if inviter.Email == email {
		return "", domain.Invite{}, ErrSelfInvite
	}

	// 3. If the address already has an account, it must be eligible now.
	// The same check runs again at acceptance; passing here is no promise.
	existing, err := s.Store.Profiles().GetProfileByEmail(ctx, email)
	switch {
	case err == nil:
		if err := s.Eligibility.Check(ctx, existing.ID, clinicID); err != nil {
			return "", domain.Invite{}, err
		}
	case errors.Is(err, store.ErrNotFound):
		// Fresh address, nothing to check yet.
	default:
		log.Error("failed to look up invitee profile", slog.Any("error", err))
		return "", domain.Invite{}, err
	}

	// 4. One active invite per (clinic, email).
	_, err = s.Store.Invites().GetActiveInviteForEmail(ctx, clinicID, email)
	if err == nil {
		return "", domain.Invite{}, ErrDuplicateActiveInvite
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check for active invite", slog.Any("error", err))
		return "", domain.Invite{}, err
	}

	// 5. Mint the bearer token and store only its fingerprint.
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate invite token", slog.Any("error", err))
		return "", domain.Invite{}, err
	}

	now := time.Now().UTC()
	invite := domain.Invite{
		ID:        idx.New().String(),
		TokenHash: cryptox.FingerprintToken(token),
		ClinicID:  clinicID,
		Email:     email,
		FullName:  fullName,
		Role:      domain.RoleManager,
		InvitedBy: invitedBy,
		ExpiresAt: now.Add(domain.InviteTTL),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Store.Invites().CreateInvite(ctx, invite); err != nil {
		log.Error("failed to create invite",
			slog.String("invite_id", invite.ID),
			slog.Any("error", err),
		)
		return "", domain.Invite{}, err
	}
	s.Metrics.RecordInviteCreated()

	log.Info("invite created",
		slog.String("invite_id", invite.ID),
		slog.String("clinic_id", clinicID),
		slog.Time("expires_at", invite.ExpiresAt),
	)

	// 6. Hand the mail off on its own goroutine. Failure is logged and
	// counted, never surfaced; the returned link is the fallback.
	s.dispatchMail(ctx, notify.InviteMail{
		Email:       email,
		InviteLink:  s.InviteLink(token),
		ClinicName:  clinic.Name,
		InviterName: inviter.FullName,
	})

	return token, invite, nil
}

func (s *InviteService) dispatchMail(ctx context.Context, mail notify.InviteMail) {
	if s.Mailer == nil {
		return
	}
	log := slogx.FromContext(ctx)

	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		sendCtx = slogx.WithContext(sendCtx, log)

		if err := s.Mailer.SendInvite(sendCtx, mail); err != nil {
			s.Metrics.RecordMailFailed()
			log.Warn("invite mail delivery failed",
				slog.String("email", mail.Email),
				slog.Any("error", err),
			)
			return
		}
		s.Metrics.RecordMailSent()
	}()
}

// LookupInvite resolves a raw token to its invite, distinguishing used and
// expired invites from unknown tokens.
func (s *InviteService) LookupInvite(ctx context.Context, token string) (domain.Invite, error) {
	if token == "" {
		return domain.Invite{}, ErrInviteNotFound
	}

	invite, err := s.Store.Invites().GetInviteByTokenHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invite{}, ErrInviteNotFound
		}
		return domain.Invite{}, err
	}

	if invite.Accepted() {
		return domain.Invite{}, ErrInviteAlreadyUsed
	}
	if invite.Expired(time.Now().UTC()) {
		return domain.Invite{}, ErrInviteExpired
	}
	return invite, nil
}

// AcceptInvite consumes the invite for userID and creates the manager
// membership. The accepted_at compare-and-set and the membership insert share
// one transaction, so concurrent accepts resolve to exactly one winner and a
// failed insert releases the invite.
func (s *InviteService) AcceptInvite(
	ctx context.Context,
	token string,
	userID string,
) (domain.StaffMembership, error) {
	log := slogx.FromContext(ctx)

	invite, err := s.LookupInvite(ctx, token)
	if err != nil {
		return domain.StaffMembership{}, err
	}

	// Eligibility is re-checked at acceptance; circumstances may have
	// changed since the invite was minted.
	if err := s.Eligibility.Check(ctx, userID, invite.ClinicID); err != nil {
		return domain.StaffMembership{}, err
	}

	now := time.Now().UTC()
	membership := domain.StaffMembership{
		ID:        idx.New().String(),
		ClinicID:  invite.ClinicID,
		UserID:    userID,
		Role:      invite.Role,
		Status:    domain.StaffActive,
		StaffID:   "ST-" + idx.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// Whoever flips accepted_at from NULL wins; everyone else sees no
		// row affected and reports the invite as used.
		if err := tx.Invites().MarkInviteAccepted(ctx, invite.ID, userID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInviteAlreadyUsed
			}
			return err
		}
		return tx.StaffMembers().CreateStaffMembership(ctx, membership)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Raced against another path creating the same membership.
			return domain.StaffMembership{}, ErrAlreadyMember
		}
		return domain.StaffMembership{}, err
	}

	s.Metrics.RecordInviteAccepted()
	log.Info("invite accepted",
		slog.String("invite_id", invite.ID),
		slog.String("clinic_id", invite.ClinicID),
		slog.String("user_id", userID),
	)
	return membership, nil
}

// RevokeInvite hard-deletes a pending invite. Owner only; the dead link
// simply stops resolving.
func (s *InviteService) RevokeInvite(ctx context.Context, inviteID, requestedBy string) error {
	log := slogx.FromContext(ctx)

	invite, err := s.Store.Invites().GetInviteByID(ctx, inviteID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInviteNotFound
		}
		return err
	}

	clinic, err := s.Store.Clinics().GetClinicByID(ctx, invite.ClinicID)
	if err != nil {
		return err
	}
	if clinic.OwnerID != requestedBy {
		return ErrNotClinicOwner
	}

	if invite.Accepted() {
		return ErrInviteAlreadyUsed
	}

	if err := s.Store.Invites().DeleteInvite(ctx, inviteID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInviteNotFound
		}
		return err
	}

	s.Metrics.RecordInviteRevoked()
	log.Info("invite revoked",
		slog.String("invite_id", inviteID),
		slog.String("clinic_id", invite.ClinicID),
	)
	return nil
}

// ListPendingInvites returns the clinic's unaccepted, unexpired invites.
// Owner only.
func (s *InviteService) ListPendingInvites(
	ctx context.Context,
	clinicID string,
	requestedBy string,
) ([]domain.Invite, error) {
	clinic, err := s.Store.Clinics().GetClinicByID(ctx, clinicID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidInviteRequest
		}
		return nil, err
	}
	if clinic.OwnerID != requestedBy {
		return nil, ErrNotClinicOwner
	}
	return s.Store.Invites().ListPendingInvitesByClinic(ctx, clinicID)
}

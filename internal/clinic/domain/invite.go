package domain

import "time"

// InviteTTL is how long an invite stays redeemable after creation.
// Expiry is absolute wall clock, not sliding.
const InviteTTL = 48 * time.Hour

// Invite is a pending offer to join a clinic as staff. The raw invite token
// is a bearer credential shown once to the inviter; only its SHA-256
// fingerprint is stored.
type Invite struct {
	ID         string
	TokenHash  string
	ClinicID   string
	Email      string // normalized to lower case
	FullName   string // display name supplied by the inviter
	Role       StaffRole
	InvitedBy  string
	ExpiresAt  time.Time
	AcceptedAt *time.Time // nil means pending
	AcceptedBy string     // empty until accepted
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Expired reports whether the invite is past its expiry at the given
// instant. An invite whose expires_at equals now is already expired; only a
// strictly future expiry is valid.
func (i Invite) Expired(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}

// Accepted reports whether the invite has been consumed.
func (i Invite) Accepted() bool {
	return i.AcceptedAt != nil
}

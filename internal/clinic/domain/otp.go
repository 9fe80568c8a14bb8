package domain

import "time"

// OTPPurpose namespaces one-time codes. A code minted for one purpose never
// verifies under another.
type OTPPurpose string

const (
	// OTPPurposeSignup codes confirm a freshly created account's email.
	OTPPurposeSignup OTPPurpose = "signup"
	// OTPPurposeEmail codes verify an email address outside of signup,
	// e.g. an address change on an existing profile.
	OTPPurposeEmail OTPPurpose = "email"
)

// OTPChallenge is a pending one-time-code verification. The 6-digit code is
// derived from Secret; the code itself is never stored.
type OTPChallenge struct {
	ID        string
	Email     string // normalized to lower case
	Purpose   OTPPurpose
	Secret    string
	Attempts  int
	ExpiresAt time.Time
	CreatedAt time.Time
}

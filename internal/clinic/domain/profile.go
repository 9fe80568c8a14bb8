package domain

import "time"

// Profile is the account record for a user: authentication credentials plus
// the projection of their personal details this service maintains.
type Profile struct {
	ID              string
	Email           string // normalized to lower case, unique
	FullName        string
	Phone           string
	Specialty       string
	PasswordHash    string
	EmailVerifiedAt *time.Time // nil until an OTP for this email has been confirmed
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

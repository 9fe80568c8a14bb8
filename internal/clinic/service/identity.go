package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/carebridgehq/clinicd/internal/clinic/domain"
	"github.com/carebridgehq/clinicd/internal/clinic/metrics"
	"github.com/carebridgehq/clinicd/internal/clinic/store"
	"github.com/carebridgehq/clinicd/pkg/cryptox"
	"github.com/carebridgehq/clinicd/pkg/idx"
	"github.com/carebridgehq/clinicd/pkg/slogx"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	// otpPeriod is the TOTP step in seconds. One step plus one step of skew
	// keeps a mailed code valid for up to 20 minutes.
	otpPeriod      = 600
	otpTTL         = 10 * time.Minute
	otpMaxAttempts = 5
)

var (
	ErrEmailAlreadyRegistered = errors.New("email is already registered")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrInvalidCode            = errors.New("invalid or expired code")
	ErrProfileNotFound        = errors.New("profile not found")
)

// IdentityService owns account creation, password sign-in and email
// verification codes. Codes are 6 digits, derived from a per-challenge
// random secret; the code itself is never stored.
type IdentityService struct {
	Store   store.Store
	Metrics metrics.Recorder
}

func otpValidateOpts() totp.ValidateOpts {
	return totp.ValidateOpts{
		Period:    otpPeriod,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	}
}

// SignUp creates a profile with an Argon2id password hash and issues a
// signup verification code for the address.
func (s *IdentityService) SignUp(
	ctx context.Context,
	email string,
	password string,
	fullName string,
) (domain.Profile, error) {
	log := slogx.FromContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return domain.Profile{}, ErrInvalidCredentials
	}

	_, err := s.Store.Profiles().GetProfileByEmail(ctx, email)
	if err == nil {
		return domain.Profile{}, ErrEmailAlreadyRegistered
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check email availability", slog.Any("error", err))
		return domain.Profile{}, err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.Profile{}, err
	}

	now := time.Now().UTC()
	profile := domain.Profile{
		ID:           idx.New().String(),
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Profiles().CreateProfile(ctx, profile); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Lost a race with a concurrent signup for the same address.
			return domain.Profile{}, ErrEmailAlreadyRegistered
		}
		log.Error("failed to create profile", slog.Any("error", err))
		return domain.Profile{}, err
	}

	if err := s.issueChallenge(ctx, email, domain.OTPPurposeSignup); err != nil {
		return domain.Profile{}, err
	}

	log.Info("profile created", slog.String("user_id", profile.ID))
	return profile, nil
}

// SignIn verifies a password. Unknown address and wrong password are
// indistinguishable to the caller.
func (s *IdentityService) SignIn(
	ctx context.Context,
	email string,
	password string,
) (domain.Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	profile, err := s.Store.Profiles().GetProfileByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Profile{}, ErrInvalidCredentials
		}
		return domain.Profile{}, err
	}

	if err := cryptox.VerifyPassword(password, profile.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return domain.Profile{}, ErrInvalidCredentials
		}
		return domain.Profile{}, err
	}
	return profile, nil
}

// VerifyCode checks a 6-digit code for (email, purpose) and returns the
// profile id on success. Non-digits are stripped before comparison so
// "123 456" and "123-456" verify the same as "123456". A successful signup
// verification also marks the profile's email as verified.
func (s *IdentityService) VerifyCode(
	ctx context.Context,
	email string,
	code string,
	purpose domain.OTPPurpose,
) (string, error) {
	log := slogx.FromContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))
	code = stripNonDigits(code)
	if len(code) != 6 {
		return "", ErrInvalidCode
	}

	challenge, err := s.Store.OTPChallenges().GetOTPChallenge(ctx, email, purpose)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCode
		}
		return "", err
	}

	if challenge.Attempts >= otpMaxAttempts {
		// Burned. A fresh code must be requested.
		_ = s.Store.OTPChallenges().DeleteOTPChallenge(ctx, challenge.ID)
		return "", ErrInvalidCode
	}

	ok, err := totp.ValidateCustom(code, challenge.Secret, time.Now().UTC(), otpValidateOpts())
	if err != nil || !ok {
		s.Metrics.RecordOTPFailed()
		if _, incErr := s.Store.OTPChallenges().IncrementOTPAttempts(ctx, challenge.ID); incErr != nil {
			log.Error("failed to record otp attempt", slog.Any("error", incErr))
		}
		return "", ErrInvalidCode
	}

	profile, err := s.Store.Profiles().GetProfileByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCode
		}
		return "", err
	}

	if err := s.Store.OTPChallenges().DeleteOTPChallenge(ctx, challenge.ID); err != nil {
		log.Error("failed to delete used otp challenge", slog.Any("error", err))
	}

	if purpose == domain.OTPPurposeSignup {
		if err := s.Store.Profiles().MarkEmailVerified(ctx, profile.ID); err != nil {
			return "", err
		}
	}

	log.Info("code verified",
		slog.String("user_id", profile.ID),
		slog.String("purpose", string(purpose)),
	)
	return profile.ID, nil
}

// ResendCode replaces any outstanding challenge for (email, purpose) with a
// fresh one. The HTTP layer rate limits this strictly; the client-side
// cool-down is purely cosmetic.
func (s *IdentityService) ResendCode(
	ctx context.Context,
	email string,
	purpose domain.OTPPurpose,
) error {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.Store.Profiles().GetProfileByEmail(ctx, email); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrProfileNotFound
		}
		return err
	}
	return s.issueChallenge(ctx, email, purpose)
}

// DeleteProfile removes an account. Used to roll back a freshly created
// identity when acceptance-time eligibility rejects it, so no orphan
// account survives a failed onboarding.
func (s *IdentityService) DeleteProfile(ctx context.Context, userID string) error {
	return s.Store.Profiles().DeleteProfile(ctx, userID)
}

// issueChallenge mints a new challenge for (email, purpose), displacing any
// outstanding one so exactly one code is valid at a time.
func (s *IdentityService) issueChallenge(
	ctx context.Context,
	email string,
	purpose domain.OTPPurpose,
) error {
	log := slogx.FromContext(ctx)

	if err := s.Store.OTPChallenges().DeleteOTPChallengesForEmail(ctx, email, purpose); err != nil {
		return err
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "clinicd",
		AccountName: email,
		Period:      otpPeriod,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		log.Error("failed to generate otp secret", slog.Any("error", err))
		return err
	}

	now := time.Now().UTC()
	challenge := domain.OTPChallenge{
		ID:        idx.New().String(),
		Email:     email,
		Purpose:   purpose,
		Secret:    key.Secret(),
		ExpiresAt: now.Add(otpTTL),
		CreatedAt: now,
	}

	if err := s.Store.OTPChallenges().CreateOTPChallenge(ctx, challenge); err != nil {
		log.Error("failed to store otp challenge", slog.Any("error", err))
		return err
	}
	s.Metrics.RecordOTPIssued()

	code, err := totp.GenerateCodeCustom(challenge.Secret, now, otpValidateOpts())
	if err != nil {
		return err
	}

	// Code delivery rides the application log until a transactional mail
	// template exists for it. TODO: send via notify.Mailer once the
	// provider template for verification codes is set up.
	log.Info("verification code issued",
		slog.String("email", email),
		slog.String("purpose", string(purpose)),
		slog.String("code", code),
	)
	return nil
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

package service

import (
	"context"
	"testing"

	"github.com/carebridgehq/clinicd/internal/clinic/domain"
	"github.com/carebridgehq/clinicd/internal/clinic/store"
	"github.com/stretchr/testify/require"
)

func TestSignUp(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newIdentityService(st)

	profile, err := svc.SignUp(ctx, "Nurse.Joy@Example.COM", "pw-123456", "Nurse Joy")
	require.NoError(t, err)
	require.Equal(t, "nurse.joy@example.com", profile.Email)
	require.Nil(t, profile.EmailVerifiedAt)

	// A signup challenge is outstanding for the address.
	_, err = st.OTPChallenges().GetOTPChallenge(ctx, profile.Email, domain.OTPPurposeSignup)
	require.NoError(t, err)

	// The address is now taken, in any casing.
	_, err = svc.SignUp(ctx, "NURSE.JOY@example.com", "other-pw", "Someone Else")
	require.ErrorIs(t, err, ErrEmailAlreadyRegistered)
}

func TestSignIn(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newIdentityService(st)

	seedProfile(t, st, "user@example.com", "correct-password")

	t.Run("valid credentials", func(t *testing.T) {
		profile, err := svc.SignIn(ctx, "User@Example.com", "correct-password")
		require.NoError(t, err)
		require.Equal(t, "user@example.com", profile.Email)
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		_, err := svc.SignIn(ctx, "user@example.com", "wrong-password")
		require.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = svc.SignIn(ctx, "nobody@example.com", "correct-password")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestVerifyCode(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newIdentityService(st)

	profile, err := svc.SignUp(ctx, "verify@example.com", "pw-123456", "V")
	require.NoError(t, err)

	t.Run("formatting noise is stripped before comparison", func(t *testing.T) {
		code := currentCode(t, st, profile.Email, domain.OTPPurposeSignup)
		spaced := code[:3] + " " + code[3:]

		userID, err := svc.VerifyCode(ctx, profile.Email, spaced, domain.OTPPurposeSignup)
		require.NoError(t, err)
		require.Equal(t, profile.ID, userID)

		// Signup verification marks the email verified.
		stored, err := st.Profiles().GetProfileByID(ctx, profile.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.EmailVerifiedAt)

		// The challenge is single use.
		_, err = svc.VerifyCode(ctx, profile.Email, code, domain.OTPPurposeSignup)
		require.ErrorIs(t, err, ErrInvalidCode)
	})
}

func TestVerifyCodeRejections(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newIdentityService(st)

	profile, err := svc.SignUp(ctx, "reject@example.com", "pw-123456", "R")
	require.NoError(t, err)

	t.Run("wrong code", func(t *testing.T) {
		_, err := svc.VerifyCode(ctx, profile.Email, "000000", domain.OTPPurposeSignup)
		require.ErrorIs(t, err, ErrInvalidCode)
	})

	t.Run("purposes are separate namespaces", func(t *testing.T) {
		code := currentCode(t, st, profile.Email, domain.OTPPurposeSignup)
		_, err := svc.VerifyCode(ctx, profile.Email, code, domain.OTPPurposeEmail)
		require.ErrorIs(t, err, ErrInvalidCode)
	})

	t.Run("short or junk input", func(t *testing.T) {
		_, err := svc.VerifyCode(ctx, profile.Email, "12345", domain.OTPPurposeSignup)
		require.ErrorIs(t, err, ErrInvalidCode)

		_, err = svc.VerifyCode(ctx, profile.Email, "no-digits", domain.OTPPurposeSignup)
		require.ErrorIs(t, err, ErrInvalidCode)
	})

	t.Run("attempts are capped", func(t *testing.T) {
		require.NoError(t, svc.ResendCode(ctx, profile.Email, domain.OTPPurposeSignup))

		for range otpMaxAttempts {
			_, err := svc.VerifyCode(ctx, profile.Email, "000000", domain.OTPPurposeSignup)
			require.ErrorIs(t, err, ErrInvalidCode)
		}

		// Even the right code is refused once the challenge is burned.
		code := currentCode(t, st, profile.Email, domain.OTPPurposeSignup)
		_, err := svc.VerifyCode(ctx, profile.Email, code, domain.OTPPurposeSignup)
		require.ErrorIs(t, err, ErrInvalidCode)

		// The burned challenge is gone entirely.
		_, err = st.OTPChallenges().GetOTPChallenge(ctx, profile.Email, domain.OTPPurposeSignup)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestResendCodeReplacesChallenge(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newIdentityService(st)

	profile, err := svc.SignUp(ctx, "resend@example.com", "pw-123456", "R")
	require.NoError(t, err)

	first, err := st.OTPChallenges().GetOTPChallenge(ctx, profile.Email, domain.OTPPurposeSignup)
	require.NoError(t, err)

	require.NoError(t, svc.ResendCode(ctx, profile.Email, domain.OTPPurposeSignup))

	second, err := st.OTPChallenges().GetOTPChallenge(ctx, profile.Email, domain.OTPPurposeSignup)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)
	require.NotEqual(t, first.Secret, second.Secret)

	t.Run("unknown address", func(t *testing.T) {
		err := svc.ResendCode(ctx, "nobody@example.com", domain.OTPPurposeSignup)
		require.ErrorIs(t, err, ErrProfileNotFound)
	})
}

func TestDeleteProfile(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newIdentityService(st)

	profile, err := svc.SignUp(ctx, "gone@example.com", "pw-123456", "G")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProfile(ctx, profile.ID))

	_, err = st.Profiles().GetProfileByID(ctx, profile.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/carebridgehq/clinicd/internal/clinic/domain"
	"github.com/carebridgehq/clinicd/internal/clinic/onboarding"
	"github.com/carebridgehq/clinicd/internal/clinic/store"
	"github.com/carebridgehq/clinicd/pkg/cryptox"
	"github.com/carebridgehq/clinicd/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newOnboardingFixture(t *testing.T) (store.Store, *OnboardingService, domain.Profile, domain.Clinic) {
	t.Helper()

	st := newTestStore(t)
	invites := newInviteService(t, st)
	identity := newIdentityService(st)
	svc := NewOnboardingService(invites, identity)

	owner, clinic := seedOwnerAndClinic(t, st, "owner@example.com", "Northside Clinic")
	return st, svc, owner, clinic
}

func TestOnboardingNewAccountFlow(t *testing.T) {
	ctx := context.Background()
	st, svc, owner, clinic := newOnboardingFixture(t)

	token, _, err := svc.Invites.CreateInvite(ctx, clinic.ID, "nurse@example.com", "Nurse Joy", owner.ID)
	require.NoError(t, err)

	view, err := svc.Start(ctx, token)
	require.NoError(t, err)
	require.Equal(t, onboarding.StepCheckAccount, view.Step)
	require.Equal(t, "nurse@example.com", view.Email)
	require.Equal(t, "Northside Clinic", view.ClinicName)

	view, err = svc.Declare(ctx, token, false)
	require.NoError(t, err)
	require.Equal(t, onboarding.StepAuthenticate, view.Step)

	view, err = svc.SignUp(ctx, token, "nurse@example.com", "pw-123456", "Nurse Joy")
	require.NoError(t, err)
	require.Equal(t, onboarding.StepOTPVerify, view.Step)

	code := currentCode(t, st, "nurse@example.com", domain.OTPPurposeSignup)
	view, err = svc.Verify(ctx, token, code)
	require.NoError(t, err)
	require.Equal(t, onboarding.StepCompleteProfile, view.Step)

	view, err = svc.CompleteProfile(ctx, token, "Nurse Joy", "0400 000 000", "General Practice")
	require.NoError(t, err)
	require.Equal(t, onboarding.StepAcceptInvite, view.Step)

	view, membership, err := svc.Accept(ctx, token)
	require.NoError(t, err)
	require.Equal(t, onboarding.StepDone, view.Step)
	require.Equal(t, domain.RoleManager, membership.Role)
	require.Equal(t, domain.StaffActive, membership.Status)

	// Profile details stuck.
	profile, err := st.Profiles().GetProfileByEmail(ctx, "nurse@example.com")
	require.NoError(t, err)
	require.Equal(t, "0400 000 000", profile.Phone)
	require.Equal(t, "General Practice", profile.Specialty)
	require.NotNil(t, profile.EmailVerifiedAt)

	// The consumed invite no longer opens a session.
	_, err = svc.Start(ctx, token)
	require.ErrorIs(t, err, ErrInviteAlreadyUsed)
}

func TestOnboardingExistingAccountFlow(t *testing.T) {
	ctx := context.Background()
	_, svc, owner, clinic := newOnboardingFixture(t)

	seedProfile(t, svc.Identity.Store, "nurse@example.com", "existing-pw")
	token, _, err := svc.Invites.CreateInvite(ctx, clinic.ID, "nurse@example.com", "Nurse Joy", owner.ID)
	require.NoError(t, err)

	_, err = svc.Declare(ctx, token, true)
	require.NoError(t, err)

	t.Run("credentials for another address are refused up front", func(t *testing.T) {
		_, err := svc.SignIn(ctx, token, "other@example.com", "existing-pw")
		require.ErrorIs(t, err, ErrEmailMismatch)
	})

	t.Run("mismatched casing is not a mismatch", func(t *testing.T) {
		view, err := svc.SignIn(ctx, token, "NURSE@example.com", "existing-pw")
		require.NoError(t, err)
		// Sign-in jumps straight to accept; no OTP, no profile step.
		require.Equal(t, onboarding.StepAcceptInvite, view.Step)
	})

	view, _, err := svc.Accept(ctx, token)
	require.NoError(t, err)
	require.Equal(t, onboarding.StepDone, view.Step)
}

func TestOnboardingEmailTakenRegression(t *testing.T) {
	ctx := context.Background()
	_, svc, owner, clinic := newOnboardingFixture(t)

	seedProfile(t, svc.Identity.Store, "nurse@example.com", "existing-pw")
	token, _, err := svc.Invites.CreateInvite(ctx, clinic.ID, "nurse@example.com", "Nurse Joy", owner.ID)
	require.NoError(t, err)

	_, err = svc.Declare(ctx, token, false)
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, token, "nurse@example.com", "pw-123456", "Nurse Joy")
	require.ErrorIs(t, err, ErrEmailAlreadyRegistered)

	// The flow regressed to the account question with the answer corrected.
	view, err := svc.Start(ctx, token)
	require.NoError(t, err)
	require.Equal(t, onboarding.StepCheckAccount, view.Step)
	require.True(t, view.HasAccount)

	// Recovery: declare again and sign in.
	_, err = svc.Declare(ctx, token, true)
	require.NoError(t, err)
	view, err = svc.SignIn(ctx, token, "nurse@example.com", "existing-pw")
	require.NoError(t, err)
	require.Equal(t, onboarding.StepAcceptInvite, view.Step)
}

func TestOnboardingKeepsIdentityThatBecameOwner(t *testing.T) {
	ctx := context.Background()
	st, svc, owner, clinic := newOnboardingFixture(t)

	token, _, err := svc.Invites.CreateInvite(ctx, clinic.ID, "nurse@example.com", "Nurse Joy", owner.ID)
	require.NoError(t, err)

	_, err = svc.Declare(ctx, token, false)
	require.NoError(t, err)
	_, err = svc.SignUp(ctx, token, "nurse@example.com", "pw-123456", "Nurse Joy")
	require.NoError(t, err)

	code := currentCode(t, st, "nurse@example.com", domain.OTPPurposeSignup)
	_, err = svc.Verify(ctx, token, code)
	require.NoError(t, err)
	_, err = svc.CompleteProfile(ctx, token, "", "", "")
	require.NoError(t, err)

	// Between signup and accept, the invitee registers a clinic of their
	// own. The profile created by this flow is now an owner, and the schema
	// cascades clinics.owner_id on profile deletion.
	profile, err := st.Profiles().GetProfileByEmail(ctx, "nurse@example.com")
	require.NoError(t, err)
	now := time.Now().UTC()
	otherClinic := domain.Clinic{
		ID:        idx.New().String(),
		Name:      "Their Own Clinic",
		OwnerID:   profile.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, st.Clinics().CreateClinic(ctx, otherClinic))
	require.NoError(t, st.StaffMembers().CreateStaffMembership(ctx, domain.StaffMembership{
		ID:        idx.New().String(),
		ClinicID:  otherClinic.ID,
		UserID:    profile.ID,
		Role:      domain.RoleOwner,
		Status:    domain.StaffActive,
		StaffID:   "ST-" + idx.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}))

	_, _, err = svc.Accept(ctx, token)
	require.ErrorIs(t, err, ErrAlreadyOwnerElsewhere)

	// The identity is no longer an orphan, so the rollback must not fire:
	// the profile, their clinic and the ownership row all survive.
	_, err = st.Profiles().GetProfileByEmail(ctx, "nurse@example.com")
	require.NoError(t, err)
	got, err := st.Clinics().GetClinicByID(ctx, otherClinic.ID)
	require.NoError(t, err)
	require.Equal(t, "Their Own Clinic", got.Name)
	ownerRow, err := st.StaffMembers().GetOwnerMembershipForUser(ctx, profile.ID)
	require.NoError(t, err)
	require.Equal(t, otherClinic.ID, ownerRow.ClinicID)
}

func TestOnboardingVerifyAfterRestartKeepsCode(t *testing.T) {
	ctx := context.Background()
	st, svc, owner, clinic := newOnboardingFixture(t)

	token, _, err := svc.Invites.CreateInvite(ctx, clinic.ID, "nurse@example.com", "Nurse Joy", owner.ID)
	require.NoError(t, err)

	_, err = svc.Declare(ctx, token, false)
	require.NoError(t, err)
	_, err = svc.SignUp(ctx, token, "nurse@example.com", "pw-123456", "Nurse Joy")
	require.NoError(t, err)

	code := currentCode(t, st, "nurse@example.com", domain.OTPPurposeSignup)

	// A restart empties the session registry. The submission is refused as
	// an out-of-order move before the challenge is even looked at.
	restarted := NewOnboardingService(svc.Invites, svc.Identity)
	_, err = restarted.Verify(ctx, token, code)
	require.ErrorIs(t, err, onboarding.ErrInvalidTransition)

	// The same code still works once the flow is back at the right step.
	view, err := svc.Verify(ctx, token, code)
	require.NoError(t, err)
	require.Equal(t, onboarding.StepCompleteProfile, view.Step)
}

func TestOnboardingExpiredInviteNeverEntersFlow(t *testing.T) {
	ctx := context.Background()
	st, svc, owner, clinic := newOnboardingFixture(t)

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	require.NoError(t, err)
	now := time.Now().UTC()
	require.NoError(t, st.Invites().CreateInvite(ctx, domain.Invite{
		ID:        idx.New().String(),
		TokenHash: cryptox.FingerprintToken(token),
		ClinicID:  clinic.ID,
		Email:     "late@example.com",
		Role:      domain.RoleManager,
		InvitedBy: owner.ID,
		ExpiresAt: now, // boundary: equal to now is already expired
		CreatedAt: now.Add(-domain.InviteTTL),
		UpdatedAt: now.Add(-domain.InviteTTL),
	}))

	_, err = svc.Start(ctx, token)
	require.ErrorIs(t, err, ErrInviteExpired)

	_, err = svc.Declare(ctx, token, false)
	require.ErrorIs(t, err, ErrInviteExpired)

	// No account was created on the way out.
	_, err = st.Profiles().GetProfileByEmail(ctx, "late@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestOnboardingStepOrderEnforced(t *testing.T) {
	ctx := context.Background()
	_, svc, owner, clinic := newOnboardingFixture(t)

	token, _, err := svc.Invites.CreateInvite(ctx, clinic.ID, "nurse@example.com", "Nurse Joy", owner.ID)
	require.NoError(t, err)

	// Jumping straight to accept is an invalid transition.
	_, _, err = svc.Accept(ctx, token)
	require.ErrorIs(t, err, onboarding.ErrInvalidTransition)

	// Verify before signup likewise; no challenge is consumed.
	_, err = svc.Verify(ctx, token, "123456")
	require.ErrorIs(t, err, onboarding.ErrInvalidTransition)

	// A failed step leaves the state where it was.
	view, err := svc.Start(ctx, token)
	require.NoError(t, err)
	require.Equal(t, onboarding.StepCheckAccount, view.Step)
}

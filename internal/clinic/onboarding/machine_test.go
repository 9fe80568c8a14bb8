package onboarding

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyHappyPathNewAccount(t *testing.T) {
	t.Parallel()

	s := NewState()
	require.Equal(t, StepCheckAccount, s.Step)

	s, err := Apply(s, Declared{HasAccount: false})
	require.NoError(t, err)
	require.Equal(t, StepAuthenticate, s.Step)
	require.False(t, s.HasAccount)

	s, err = Apply(s, SignedUp{UserID: "user-1"})
	require.NoError(t, err)
	require.Equal(t, StepOTPVerify, s.Step)
	require.Equal(t, "user-1", s.UserID)

	s, err = Apply(s, CodeVerified{})
	require.NoError(t, err)
	require.Equal(t, StepCompleteProfile, s.Step)
	require.True(t, s.Verified)

	s, err = Apply(s, ProfileCompleted{})
	require.NoError(t, err)
	require.Equal(t, StepAcceptInvite, s.Step)

	s, err = Apply(s, InviteAccepted{})
	require.NoError(t, err)
	require.Equal(t, StepDone, s.Step)
}

func TestApplyHappyPathExistingAccount(t *testing.T) {
	t.Parallel()

	s := NewState()

	s, err := Apply(s, Declared{HasAccount: true})
	require.NoError(t, err)
	require.Equal(t, StepAuthenticate, s.Step)
	require.True(t, s.HasAccount)

	// Sign-in jumps straight to accept, skipping OTP and profile.
	s, err = Apply(s, SignedIn{UserID: "user-2"})
	require.NoError(t, err)
	require.Equal(t, StepAcceptInvite, s.Step)
	require.Equal(t, "user-2", s.UserID)

	s, err = Apply(s, InviteAccepted{})
	require.NoError(t, err)
	require.Equal(t, StepDone, s.Step)
}

func TestApplyEmailTakenRegression(t *testing.T) {
	t.Parallel()

	s := NewState()
	s, err := Apply(s, Declared{HasAccount: false})
	require.NoError(t, err)

	s, err = Apply(s, EmailTaken{})
	require.NoError(t, err)
	require.Equal(t, StepCheckAccount, s.Step)
	require.True(t, s.HasAccount)
	require.Empty(t, s.UserID)

	// The flow continues on the corrected branch.
	s, err = Apply(s, Declared{HasAccount: true})
	require.NoError(t, err)
	s, err = Apply(s, SignedIn{UserID: "user-3"})
	require.NoError(t, err)
	require.Equal(t, StepAcceptInvite, s.Step)
}

func TestApplyRedeclareBeforeAuthentication(t *testing.T) {
	t.Parallel()

	s := NewState()
	s, err := Apply(s, Declared{HasAccount: true})
	require.NoError(t, err)

	// Changing the answer is fine until credentials have been presented.
	s, err = Apply(s, Declared{HasAccount: false})
	require.NoError(t, err)
	require.Equal(t, StepAuthenticate, s.Step)
	require.False(t, s.HasAccount)

	s, err = Apply(s, SignedUp{UserID: "user-4"})
	require.NoError(t, err)

	// After authentication the branch is locked in.
	_, err = Apply(s, Declared{HasAccount: true})
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestApplyInvalidTransitions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		state State
		event Event
	}{
		{"verify before signup", State{Step: StepCheckAccount}, CodeVerified{}},
		{"accept before authenticating", State{Step: StepCheckAccount}, InviteAccepted{}},
		{"signin on new-account branch", State{Step: StepAuthenticate, HasAccount: false}, SignedIn{UserID: "u"}},
		{"signup on existing-account branch", State{Step: StepAuthenticate, HasAccount: true}, SignedUp{UserID: "u"}},
		{"email-taken on existing-account branch", State{Step: StepAuthenticate, HasAccount: true}, EmailTaken{}},
		{"profile before verify", State{Step: StepOTPVerify}, ProfileCompleted{}},
		{"accept from done", State{Step: StepDone}, InviteAccepted{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Apply(tc.state, tc.event)
			require.ErrorIs(t, err, ErrInvalidTransition)
			// State must be unchanged on rejection.
			require.Equal(t, tc.state, got)
		})
	}
}

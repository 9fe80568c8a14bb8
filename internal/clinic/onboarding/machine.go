// Package onboarding models the invitee onboarding flow as a pure state
// machine. The reducer has no I/O; services perform the side effects and feed
// the outcomes in as events. A failed side effect simply produces no event,
// leaving the state where it was so the invitee can retry.
package onboarding

import "errors"

// ErrInvalidTransition is returned when an event does not apply to the
// current step. The state is returned unchanged alongside it.
var ErrInvalidTransition = errors.New("onboarding: event not valid in current step")

// Step identifies where an invitee is in the flow.
type Step string

const (
	// StepCheckAccount asks the invitee whether they already have an account.
	StepCheckAccount Step = "CHECK_ACCOUNT"
	// StepAuthenticate collects credentials: sign-in on the existing-account
	// branch, sign-up on the new-account branch.
	StepAuthenticate Step = "AUTHENTICATE"
	// StepOTPVerify confirms a fresh account's email with a one-time code.
	// Only the new-account branch passes through here.
	StepOTPVerify Step = "OTP_VERIFY"
	// StepCompleteProfile collects name, phone and specialty. New accounts only.
	StepCompleteProfile Step = "COMPLETE_PROFILE"
	// StepAcceptInvite is the final confirmation before membership is created.
	StepAcceptInvite Step = "ACCEPT_INVITE"
	// StepDone means the invite was consumed and the membership exists.
	StepDone Step = "DONE"
)

// State is the full onboarding position. It is a value type; Apply never
// mutates its input.
type State struct {
	Step       Step
	HasAccount bool   // branch picked at CHECK_ACCOUNT
	UserID     string // set once the invitee has authenticated
	Verified   bool   // email confirmed via OTP (new-account branch)
}

// NewState returns the entry state of the flow.
func NewState() State {
	return State{Step: StepCheckAccount}
}

// Event is something that happened outside the machine. The concrete types
// below form a closed set.
type Event interface {
	isEvent()
}

// Declared records the invitee's answer to "do you have an account?".
type Declared struct {
	HasAccount bool
}

// SignedIn records a successful sign-in on the existing-account branch.
type SignedIn struct {
	UserID string
}

// SignedUp records a successful account creation on the new-account branch.
// An OTP challenge has been issued as part of it.
type SignedUp struct {
	UserID string
}

// EmailTaken records that sign-up found an existing profile for the invite
// email. It is the one automatic branch regression in the flow.
type EmailTaken struct{}

// CodeVerified records a correct one-time code.
type CodeVerified struct{}

// ProfileCompleted records that the invitee filled in their details.
type ProfileCompleted struct{}

// InviteAccepted records that the invite was consumed and the membership
// row written.
type InviteAccepted struct{}

func (Declared) isEvent()         {}
func (SignedIn) isEvent()         {}
func (SignedUp) isEvent()         {}
func (EmailTaken) isEvent()       {}
func (CodeVerified) isEvent()     {}
func (ProfileCompleted) isEvent() {}
func (InviteAccepted) isEvent()   {}

// Apply advances the state by one event. On an invalid pairing it returns the
// input state unchanged together with ErrInvalidTransition.
func Apply(s State, ev Event) (State, error) {
	switch e := ev.(type) {
	case Declared:
		// Re-declaring is allowed until the invitee has authenticated, so a
		// wrong first answer is recoverable without restarting the flow.
		if s.Step != StepCheckAccount && !(s.Step == StepAuthenticate && s.UserID == "") {
			return s, ErrInvalidTransition
		}
		s.Step = StepAuthenticate
		s.HasAccount = e.HasAccount
		return s, nil

	case SignedIn:
		if s.Step != StepAuthenticate || !s.HasAccount {
			return s, ErrInvalidTransition
		}
		s.UserID = e.UserID
		// Existing accounts skip OTP and profile.
		s.Step = StepAcceptInvite
		return s, nil

	case SignedUp:
		if s.Step != StepAuthenticate || s.HasAccount {
			return s, ErrInvalidTransition
		}
		s.UserID = e.UserID
		s.Step = StepOTPVerify
		return s, nil

	case EmailTaken:
		if s.Step != StepAuthenticate || s.HasAccount {
			return s, ErrInvalidTransition
		}
		// Regress to the branch question with the answer corrected. Any
		// partial progress is discarded.
		return State{Step: StepCheckAccount, HasAccount: true}, nil

	case CodeVerified:
		if s.Step != StepOTPVerify {
			return s, ErrInvalidTransition
		}
		s.Verified = true
		s.Step = StepCompleteProfile
		return s, nil

	case ProfileCompleted:
		if s.Step != StepCompleteProfile {
			return s, ErrInvalidTransition
		}
		s.Step = StepAcceptInvite
		return s, nil

	case InviteAccepted:
		if s.Step != StepAcceptInvite {
			return s, ErrInvalidTransition
		}
		s.Step = StepDone
		return s, nil
	}

	return s, ErrInvalidTransition
}

package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/carebridgehq/clinicd/internal/clinic/domain"
	"github.com/carebridgehq/clinicd/internal/clinic/onboarding"
	"github.com/carebridgehq/clinicd/internal/clinic/store"
	"github.com/carebridgehq/clinicd/pkg/cryptox"
	"github.com/carebridgehq/clinicd/pkg/slogx"
)

var ErrEmailMismatch = errors.New("email does not match the invited address")

// OnboardingView is the state snapshot handed back after every step, enough
// for a client to render the right screen.
type OnboardingView struct {
	Step       onboarding.Step
	HasAccount bool
	Email      string
	FullName   string
	ClinicID   string
	ClinicName string
	ExpiresAt  time.Time
}

// OnboardingService walks an invitee through the flow. It owns the transient
// session registry and performs the side effects; the legal-move decisions
// live in the onboarding package's pure reducer.
//
// Sessions are in-memory and keyed by the invite token's fingerprint. Losing
// them on restart only costs the invitee a few screens; the invite row in the
// database is the durable truth and its accepted_at compare-and-set is the
// real serialization point.
type OnboardingService struct {
	Invites  *InviteService
	Identity *IdentityService

	mu       sync.Mutex
	sessions map[string]onboarding.State
}

func NewOnboardingService(invites *InviteService, identity *IdentityService) *OnboardingService {
	return &OnboardingService{
		Invites:  invites,
		Identity: identity,
		sessions: make(map[string]onboarding.State),
	}
}

// guard resolves the token to a live invite. Invalid, used and expired
// invites never reach the state machine.
func (s *OnboardingService) guard(ctx context.Context, token string) (domain.Invite, error) {
	invite, err := s.Invites.LookupInvite(ctx, token)
	if err != nil {
		// A dead invite also has no business keeping a session around.
		s.dropSession(token)
		return domain.Invite{}, err
	}
	return invite, nil
}

func (s *OnboardingService) state(token string) onboarding.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.sessions[cryptox.FingerprintToken(token)]; ok {
		return st
	}
	return onboarding.NewState()
}

func (s *OnboardingService) setState(token string, st onboarding.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[cryptox.FingerprintToken(token)] = st
}

func (s *OnboardingService) dropSession(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, cryptox.FingerprintToken(token))
}

func (s *OnboardingService) view(ctx context.Context, invite domain.Invite, st onboarding.State) OnboardingView {
	v := OnboardingView{
		Step:       st.Step,
		HasAccount: st.HasAccount,
		Email:      invite.Email,
		FullName:   invite.FullName,
		ClinicID:   invite.ClinicID,
		ExpiresAt:  invite.ExpiresAt,
	}
	if clinic, err := s.Invites.Store.Clinics().GetClinicByID(ctx, invite.ClinicID); err == nil {
		v.ClinicName = clinic.Name
	}
	return v
}

// Start validates the token and returns the current position in the flow.
// Safe to call repeatedly; it never advances the machine.
func (s *OnboardingService) Start(ctx context.Context, token string) (OnboardingView, error) {
	invite, err := s.guard(ctx, token)
	if err != nil {
		return OnboardingView{}, err
	}
	return s.view(ctx, invite, s.state(token)), nil
}

// Declare records the invitee's answer to the account question.
func (s *OnboardingService) Declare(ctx context.Context, token string, hasAccount bool) (OnboardingView, error) {
	invite, err := s.guard(ctx, token)
	if err != nil {
		return OnboardingView{}, err
	}

	st, err := onboarding.Apply(s.state(token), onboarding.Declared{HasAccount: hasAccount})
	if err != nil {
		return OnboardingView{}, err
	}
	s.setState(token, st)
	return s.view(ctx, invite, st), nil
}

// SignIn runs the existing-account branch. The credentials must belong to
// the invited address; anything else is ErrEmailMismatch before the password
// is even checked.
func (s *OnboardingService) SignIn(ctx context.Context, token, email, password string) (OnboardingView, error) {
	invite, err := s.guard(ctx, token)
	if err != nil {
		return OnboardingView{}, err
	}

	if !strings.EqualFold(strings.TrimSpace(email), invite.Email) {
		return OnboardingView{}, ErrEmailMismatch
	}

	profile, err := s.Identity.SignIn(ctx, invite.Email, password)
	if err != nil {
		return OnboardingView{}, err
	}

	st, err := onboarding.Apply(s.state(token), onboarding.SignedIn{UserID: profile.ID})
	if err != nil {
		return OnboardingView{}, err
	}
	s.setState(token, st)
	return s.view(ctx, invite, st), nil
}

// SignUp runs the new-account branch. A profile that already exists for the
// address regresses the flow to the account question with the has-account
// branch preselected, and the caller still sees ErrEmailAlreadyRegistered.
func (s *OnboardingService) SignUp(ctx context.Context, token, email, password, fullName string) (OnboardingView, error) {
	invite, err := s.guard(ctx, token)
	if err != nil {
		return OnboardingView{}, err
	}

	if !strings.EqualFold(strings.TrimSpace(email), invite.Email) {
		return OnboardingView{}, ErrEmailMismatch
	}

	// Make sure sign-up is a legal move before touching the database.
	if _, err := onboarding.Apply(s.state(token), onboarding.SignedUp{UserID: "probe"}); err != nil {
		return OnboardingView{}, err
	}

	if fullName == "" {
		fullName = invite.FullName
	}

	profile, err := s.Identity.SignUp(ctx, invite.Email, password, fullName)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyRegistered) {
			if st, applyErr := onboarding.Apply(s.state(token), onboarding.EmailTaken{}); applyErr == nil {
				s.setState(token, st)
			}
		}
		return OnboardingView{}, err
	}

	st, err := onboarding.Apply(s.state(token), onboarding.SignedUp{UserID: profile.ID})
	if err != nil {
		return OnboardingView{}, err
	}
	s.setState(token, st)
	return s.view(ctx, invite, st), nil
}

// Verify checks the signup code for the invited address.
func (s *OnboardingService) Verify(ctx context.Context, token, code string) (OnboardingView, error) {
	invite, err := s.guard(ctx, token)
	if err != nil {
		return OnboardingView{}, err
	}

	// Make sure verification is a legal move first; a successful check
	// consumes the challenge, so an out-of-order call must not burn the code.
	if _, err := onboarding.Apply(s.state(token), onboarding.CodeVerified{}); err != nil {
		return OnboardingView{}, err
	}

	if _, err := s.Identity.VerifyCode(ctx, invite.Email, code, domain.OTPPurposeSignup); err != nil {
		return OnboardingView{}, err
	}

	st, err := onboarding.Apply(s.state(token), onboarding.CodeVerified{})
	if err != nil {
		return OnboardingView{}, err
	}
	s.setState(token, st)
	return s.view(ctx, invite, st), nil
}

// Resend mints a fresh signup code for the invited address.
func (s *OnboardingService) Resend(ctx context.Context, token string) error {
	invite, err := s.guard(ctx, token)
	if err != nil {
		return err
	}
	return s.Identity.ResendCode(ctx, invite.Email, domain.OTPPurposeSignup)
}

// CompleteProfile stores the invitee's details. New-account branch only.
func (s *OnboardingService) CompleteProfile(ctx context.Context, token, fullName, phone, specialty string) (OnboardingView, error) {
	invite, err := s.guard(ctx, token)
	if err != nil {
		return OnboardingView{}, err
	}

	cur := s.state(token)
	st, err := onboarding.Apply(cur, onboarding.ProfileCompleted{})
	if err != nil {
		return OnboardingView{}, err
	}

	if fullName == "" {
		fullName = invite.FullName
	}
	if err := s.Identity.Store.Profiles().UpdateProfileDetails(ctx, cur.UserID, fullName, phone, specialty); err != nil {
		return OnboardingView{}, err
	}

	s.setState(token, st)
	return s.view(ctx, invite, st), nil
}

// Accept consumes the invite and creates the membership. When a brand-new
// identity fails the acceptance-time eligibility check, the identity is
// rolled back so no orphan account is left behind.
func (s *OnboardingService) Accept(ctx context.Context, token string) (OnboardingView, domain.StaffMembership, error) {
	log := slogx.FromContext(ctx)

	invite, err := s.guard(ctx, token)
	if err != nil {
		return OnboardingView{}, domain.StaffMembership{}, err
	}

	cur := s.state(token)
	if _, err := onboarding.Apply(cur, onboarding.InviteAccepted{}); err != nil {
		return OnboardingView{}, domain.StaffMembership{}, err
	}

	membership, err := s.Invites.AcceptInvite(ctx, token, cur.UserID)
	if err != nil {
		if !cur.HasAccount && isEligibilityError(err) {
			// The account only exists because of this flow, but deleting a
			// profile cascades to any clinic it owns. Remove it only while
			// it holds no memberships at all.
			if !s.identityIsOrphan(ctx, invite.ClinicID, cur.UserID) {
				log.Info("keeping onboarding identity with memberships",
					slog.String("user_id", cur.UserID),
				)
				s.dropSession(token)
				return OnboardingView{}, domain.StaffMembership{}, err
			}
			if delErr := s.Identity.DeleteProfile(ctx, cur.UserID); delErr != nil {
				log.Error("failed to roll back onboarding identity",
					slog.String("user_id", cur.UserID),
					slog.Any("error", delErr),
				)
			} else {
				log.Info("rolled back onboarding identity",
					slog.String("user_id", cur.UserID),
				)
			}
			s.dropSession(token)
		}
		return OnboardingView{}, domain.StaffMembership{}, err
	}

	st, err := onboarding.Apply(cur, onboarding.InviteAccepted{})
	if err != nil {
		return OnboardingView{}, domain.StaffMembership{}, err
	}
	s.dropSession(token)

	view := s.view(ctx, invite, st)
	return view, membership, nil
}

// identityIsOrphan reports whether the profile holds no membership anywhere:
// no ownership in any clinic and no membership in the inviting clinic. The
// eligibility check can only fail on one of those two, so a profile that
// passes both lookups gained nothing since sign-up and is safe to delete.
func (s *OnboardingService) identityIsOrphan(ctx context.Context, clinicID, userID string) bool {
	staff := s.Invites.Store.StaffMembers()
	if _, err := staff.GetOwnerMembershipForUser(ctx, userID); !errors.Is(err, store.ErrNotFound) {
		return false
	}
	if _, err := staff.GetMembership(ctx, clinicID, userID); !errors.Is(err, store.ErrNotFound) {
		return false
	}
	return true
}

func isEligibilityError(err error) bool {
	return errors.Is(err, ErrAlreadyOwner) ||
		errors.Is(err, ErrAlreadyOwnerElsewhere) ||
		errors.Is(err, ErrAlreadyMember)
}

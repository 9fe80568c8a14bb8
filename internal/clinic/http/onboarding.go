package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/carebridgehq/clinicd/internal/clinic/onboarding"
	"github.com/carebridgehq/clinicd/internal/clinic/service"
	"github.com/carebridgehq/clinicd/pkg/clinicsdk"
	"github.com/carebridgehq/clinicd/pkg/httpx"
	"github.com/carebridgehq/clinicd/pkg/slogx"
)

type OnboardingHandler struct {
	Onboarding *service.OnboardingService
}

func onboardingState(v service.OnboardingView) clinicsdk.OnboardingState {
	return clinicsdk.OnboardingState{
		Step:       string(v.Step),
		HasAccount: v.HasAccount,
		Email:      v.Email,
		FullName:   v.FullName,
		ClinicID:   v.ClinicID,
		ClinicName: v.ClinicName,
		ExpiresAt:  v.ExpiresAt.Unix(),
	}
}

// writeOnboardingError maps the shared error set every onboarding step can
// produce. Raw store errors never reach here; services translate first.
func writeOnboardingError(w http.ResponseWriter, r *http.Request, err error) {
	log := slogx.FromContext(r.Context())

	switch {
	case errors.Is(err, service.ErrInviteNotFound):
		httpx.WriteJSON(w, http.StatusNotFound, clinicsdk.ErrorResponse{
			Error:            clinicsdk.ErrorCodeNotFound,
			ErrorDescription: "this invitation link is not valid",
		})
	case errors.Is(err, service.ErrInviteAlreadyUsed):
		httpx.WriteJSON(w, http.StatusConflict, clinicsdk.ErrorResponse{
			Error:            clinicsdk.ErrorCodeInviteUsed,
			ErrorDescription: "this invitation has already been used",
		})
	case errors.Is(err, service.ErrInviteExpired):
		httpx.WriteJSON(w, http.StatusGone, clinicsdk.ErrorResponse{
			Error:            clinicsdk.ErrorCodeInviteExpired,
			ErrorDescription: "this invitation has expired; ask the clinic owner for a new one",
		})
	case errors.Is(err, service.ErrEmailMismatch):
		httpx.WriteJSON(w, http.StatusBadRequest, clinicsdk.ErrorResponse{
			Error:            clinicsdk.ErrorCodeEmailMismatch,
			ErrorDescription: "sign in with the email address the invitation was sent to",
		})
	case errors.Is(err, service.ErrEmailAlreadyRegistered):
		httpx.WriteJSON(w, http.StatusConflict, clinicsdk.ErrorResponse{
			Error:            clinicsdk.ErrorCodeEmailRegistered,
			ErrorDescription: "an account already exists for this email; sign in instead",
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteJSON(w, http.StatusUnauthorized, clinicsdk.ErrorResponse{
			Error:            clinicsdk.ErrorCodeUnauthorized,
			ErrorDescription: "invalid email or password",
		})
	case errors.Is(err, service.ErrInvalidCode):
		httpx.WriteJSON(w, http.StatusBadRequest, clinicsdk.ErrorResponse{
			Error:            clinicsdk.ErrorCodeInvalidCode,
			ErrorDescription: "the code is wrong or has expired",
		})
	case errors.Is(err, service.ErrProfileNotFound):
		httpx.WriteJSON(w, http.StatusNotFound, clinicsdk.ErrorResponse{
			Error:            clinicsdk.ErrorCodeNotFound,
			ErrorDescription: "no account exists for this email",
		})
	case errors.Is(err, onboarding.ErrInvalidTransition):
		httpx.WriteJSON(w, http.StatusConflict, clinicsdk.ErrorResponse{
			Error:            clinicsdk.ErrorCodeInvalidState,
			ErrorDescription: "this step is not available right now",
		})
	case isEligibilityError(err):
		httpx.WriteJSON(w, http.StatusConflict, clinicsdk.ErrorResponse{
			Error:            clinicsdk.ErrorCodeNotEligible,
			ErrorDescription: err.Error(),
		})
	default:
		log.Error("onboarding step failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, clinicsdk.ErrorResponse{
			Error:            clinicsdk.ErrorCodeServerError,
			ErrorDescription: "Something went wrong, try again",
		})
	}
}

// HandleShow godoc
//
//	@Summary		Onboarding State
//	@Description	Validate the invite token and return the invitee's current position in the flow. Never advances the flow.
//	@Tags			Onboarding
//	@Produce		json
//	@Param			token	path		string						true	"Invite token"
//	@Success		200		{object}	clinicsdk.OnboardingState	"step, email, clinic"
//	@Failure		404		{object}	clinicsdk.ErrorResponse		"error, error_description"
//	@Failure		409		{object}	clinicsdk.ErrorResponse		"error, error_description"
//	@Failure		410		{object}	clinicsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/onboarding/{token} [get].
func (h *OnboardingHandler) HandleShow(w http.ResponseWriter, r *http.Request) {
	view, err := h.Onboarding.Start(r.Context(), r.PathValue("token"))
	if err != nil {
		writeOnboardingError(w, r, err)
		return
	}
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, onboardingState(view))
}

// HandleDeclare godoc
//
//	@Summary		Declare Account Status
//	@Description	Answer whether the invitee already has an account, selecting the sign-in or sign-up branch.
//	@Tags			Onboarding
//	@Accept			json
//	@Produce		json
//	@Param			token	path		string						true	"Invite token"
//	@Param			request	body		clinicsdk.DeclareRequest	true	"Branch choice"
//	@Success		200		{object}	clinicsdk.OnboardingState	"step"
//	@Failure		409		{object}	clinicsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/onboarding/{token}/declare [post].
func (h *OnboardingHandler) HandleDeclare(w http.ResponseWriter, r *http.Request) {
	var req clinicsdk.DeclareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, clinicsdk.ErrorResponse{
			Error:            clinicsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	view, err := h.Onboarding.Declare(r.Context(), r.PathValue("token"), req.HasAccount)
	if err != nil {
		writeOnboardingError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, onboardingState(view))
}

// HandleSignIn godoc
//
//	@Summary		Onboarding Sign In
//	@Description	Existing-account branch: authenticate as the invited address and skip straight to the accept step.
//	@Tags			Onboarding
//	@Accept			json
//	@Produce		json
//	@Param			token	path		string								true	"Invite token"
//	@Param			request	body		clinicsdk.OnboardingSignInRequest	true	"Credentials"
//	@Success		200		{object}	clinicsdk.OnboardingState			"step"
//	@Failure		400		{object}	clinicsdk.ErrorResponse				"error, error_description"
//	@Failure		401		{object}	clinicsdk.ErrorResponse				"error, error_description"
//	@Router			/v1/onboarding/{token}/signin [post].
func (h *OnboardingHandler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	var req clinicsdk.OnboardingSignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, clinicsdk.ErrorResponse{
			Error:            clinicsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	view, err := h.Onboarding.SignIn(r.Context(), r.PathValue("token"), req.Email, req.Password)
	if err != nil {
		writeOnboardingError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, onboardingState(view))
}

// HandleSignUp godoc
//
//	@Summary		Onboarding Sign Up
//	@Description	New-account branch: create the account for the invited address and issue a verification code. An already-registered email regresses the flow to the account question.
//	@Tags			Onboarding
//	@Accept			json
//	@Produce		json
//	@Param			token	path		string								true	"Invite token"
//	@Param			request	body		clinicsdk.OnboardingSignUpRequest	true	"New credentials"
//	@Success		200		{object}	clinicsdk.OnboardingState			"step"
//	@Failure		400		{object}	clinicsdk.ErrorResponse				"error, error_description"
//	@Failure		409		{object}	clinicsdk.ErrorResponse				"error, error_description"
//	@Router			/v1/onboarding/{token}/signup [post].
func (h *OnboardingHandler) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	var req clinicsdk.OnboardingSignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, clinicsdk.ErrorResponse{
			Error:            clinicsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	view, err := h.Onboarding.SignUp(r.Context(), r.PathValue("token"), req.Email, req.Password, req.FullName)
	if err != nil {
		writeOnboardingError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, onboardingState(view))
}

// HandleVerify godoc
//
//	@Summary		Verify Email Code
//	@Description	Check the emailed 6-digit code. Formatting noise in the code is ignored; attempts are capped.
//	@Tags			Onboarding
//	@Accept			json
//	@Produce		json
//	@Param			token	path		string						true	"Invite token"
//	@Param			request	body		clinicsdk.VerifyCodeRequest	true	"Code"
//	@Success		200		{object}	clinicsdk.OnboardingState	"step"
//	@Failure		400		{object}	clinicsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/onboarding/{token}/verify [post].
func (h *OnboardingHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	var req clinicsdk.VerifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, clinicsdk.ErrorResponse{
			Error:            clinicsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	view, err := h.Onboarding.Verify(r.Context(), r.PathValue("token"), req.Code)
	if err != nil {
		writeOnboardingError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, onboardingState(view))
}

// HandleResend godoc
//
//	@Summary		Resend Email Code
//	@Description	Replace the outstanding code with a fresh one. Strictly rate limited server-side.
//	@Tags			Onboarding
//	@Produce		json
//	@Param			token	path	string	true	"Invite token"
//	@Success		204		"code reissued"
//	@Failure		404		{object}	clinicsdk.ErrorResponse	"error, error_description"
//	@Failure		429		{object}	clinicsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/onboarding/{token}/resend [post].
func (h *OnboardingHandler) HandleResend(w http.ResponseWriter, r *http.Request) {
	if err := h.Onboarding.Resend(r.Context(), r.PathValue("token")); err != nil {
		writeOnboardingError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleProfile godoc
//
//	@Summary		Complete Profile
//	@Description	Store the invitee's name, phone and specialty. New-account branch only.
//	@Tags			Onboarding
//	@Accept			json
//	@Produce		json
//	@Param			token	path		string								true	"Invite token"
//	@Param			request	body		clinicsdk.CompleteProfileRequest	true	"Details"
//	@Success		200		{object}	clinicsdk.OnboardingState			"step"
//	@Failure		409		{object}	clinicsdk.ErrorResponse				"error, error_description"
//	@Router			/v1/onboarding/{token}/profile [post].
func (h *OnboardingHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	var req clinicsdk.CompleteProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, clinicsdk.ErrorResponse{
			Error:            clinicsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	view, err := h.Onboarding.CompleteProfile(r.Context(), r.PathValue("token"), req.FullName, req.Phone, req.Specialty)
	if err != nil {
		writeOnboardingError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, onboardingState(view))
}

// HandleAccept godoc
//
//	@Summary		Accept Invite
//	@Description	Re-check eligibility and consume the invite, creating the staff membership. Exactly one accept wins; later callers are told the invite is used.
//	@Tags			Onboarding
//	@Produce		json
//	@Param			token	path		string							true	"Invite token"
//	@Success		200		{object}	clinicsdk.AcceptInviteResponse	"state, staff_id, role, status"
//	@Failure		409		{object}	clinicsdk.ErrorResponse			"error, error_description"
//	@Failure		410		{object}	clinicsdk.ErrorResponse			"error, error_description"
//	@Router			/v1/onboarding/{token}/accept [post].
func (h *OnboardingHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	view, membership, err := h.Onboarding.Accept(r.Context(), r.PathValue("token"))
	if err != nil {
		writeOnboardingError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, clinicsdk.AcceptInviteResponse{
		State:    onboardingState(view),
		ClinicID: membership.ClinicID,
		StaffID:  membership.StaffID,
		Role:     string(membership.Role),
		Status:   string(membership.Status),
	})
}

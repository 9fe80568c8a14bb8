package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/carebridgehq/clinicd/internal/clinic/service"
	"github.com/carebridgehq/clinicd/pkg/clinicsdk"
	"github.com/carebridgehq/clinicd/pkg/httpx"
	"github.com/carebridgehq/clinicd/pkg/slogx"
)

type LoginHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Owner Login Endpoint
//	@Description	Authenticate with email and password, returning a short-lived bearer token for the management API.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		clinicsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	clinicsdk.LoginResponse	"access_token, token_type, expires_in"
//	@Failure		400		{object}	clinicsdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	clinicsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req clinicsdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, clinicsdk.ErrorResponse{
			Error:            clinicsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}
	if req.Email == "" || req.Password == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, clinicsdk.ErrorResponse{
			Error:            clinicsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "email and password are required",
		})
		return
	}

	token, profile, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.WriteJSON(w, http.StatusUnauthorized, clinicsdk.ErrorResponse{
				Error:            clinicsdk.ErrorCodeUnauthorized,
				ErrorDescription: "invalid email or password",
			})
			return
		}
		log.Error("login failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, clinicsdk.ErrorResponse{
			Error:            clinicsdk.ErrorCodeServerError,
			ErrorDescription: "Failed to sign in",
		})
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, clinicsdk.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.AuthService.SessionTTL.Seconds()),
		UserID:      profile.ID,
		Email:       profile.Email,
		FullName:    profile.FullName,
	})
}

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

type RegisterClinicHandler struct {
	ClinicService *service.ClinicService
}

// ServeHTTP godoc
//
//	@Summary		Clinic Registration Endpoint
//	@Description	Register a clinic together with its owner account. Reuses an existing profile when the password proves ownership; a user can own at most one clinic.
//	@Tags			Clinics
//	@Accept			json
//	@Produce		json
//	@Param			request	body		clinicsdk.RegisterClinicRequest		true	"Registration"
//	@Success		201		{object}	clinicsdk.RegisterClinicResponse	"clinic_id, owner_id, staff_id"
//	@Failure		400		{object}	clinicsdk.ErrorResponse				"error, error_description"
//	@Failure		401		{object}	clinicsdk.ErrorResponse				"error, error_description"
//	@Failure		409		{object}	clinicsdk.ErrorResponse				"error, error_description"
//	@Router			/v1/clinics [post].
func (h *RegisterClinicHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req clinicsdk.RegisterClinicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, clinicsdk.ErrorResponse{
			Error:            clinicsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	res, err := h.ClinicService.Register(ctx, req.ClinicName, req.OwnerEmail, req.OwnerPassword, req.OwnerFullName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRegistration):
			httpx.WriteJSON(w, http.StatusBadRequest, clinicsdk.ErrorResponse{
				Error:            clinicsdk.ErrorCodeInvalidRequest,
				ErrorDescription: "clinic_name, owner_email and owner_password are required",
			})
		case errors.Is(err, service.ErrInvalidCredentials):
			httpx.WriteJSON(w, http.StatusUnauthorized, clinicsdk.ErrorResponse{
				Error:            clinicsdk.ErrorCodeUnauthorized,
				ErrorDescription: "an account exists for this email and the password does not match",
			})
		case errors.Is(err, service.ErrAlreadyOwnerElsewhere):
			httpx.WriteJSON(w, http.StatusConflict, clinicsdk.ErrorResponse{
				Error:            clinicsdk.ErrorCodeConflict,
				ErrorDescription: "this user already owns a clinic",
			})
		case errors.Is(err, service.ErrEmailAlreadyRegistered):
			httpx.WriteJSON(w, http.StatusConflict, clinicsdk.ErrorResponse{
				Error:            clinicsdk.ErrorCodeEmailRegistered,
				ErrorDescription: "email is already registered",
			})
		default:
			log.Error("clinic registration failed", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, clinicsdk.ErrorResponse{
				Error:            clinicsdk.ErrorCodeServerError,
				ErrorDescription: "Failed to register clinic",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, clinicsdk.RegisterClinicResponse{
		ClinicID:   res.Clinic.ID,
		ClinicName: res.Clinic.Name,
		OwnerID:    res.Profile.ID,
		StaffID:    res.Membership.StaffID,
	})
}

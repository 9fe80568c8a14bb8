package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/carebridgehq/clinicd/internal/clinic/domain"
	"github.com/carebridgehq/clinicd/internal/clinic/service"
	"github.com/carebridgehq/clinicd/pkg/clinicsdk"
	"github.com/carebridgehq/clinicd/pkg/httpx"
	"github.com/carebridgehq/clinicd/pkg/slogx"
)

type StaffHandler struct {
	StaffService *service.StaffService
}

func writeStaffError(w http.ResponseWriter, r *http.Request, err error) {
	log := slogx.FromContext(r.Context())

	switch {
	case errors.Is(err, service.ErrStaffNotFound):
		httpx.WriteJSON(w, http.StatusNotFound, clinicsdk.ErrorResponse{
			Error:            clinicsdk.ErrorCodeNotFound,
			ErrorDescription: "staff member not found",
		})
	case errors.Is(err, service.ErrNotClinicOwner):
		httpx.WriteJSON(w, http.StatusForbidden, clinicsdk.ErrorResponse{
			Error:            clinicsdk.ErrorCodeForbidden,
			ErrorDescription: "only the clinic owner can manage staff",
		})
	case errors.Is(err, service.ErrCannotModifyOwner):
		httpx.WriteJSON(w, http.StatusConflict, clinicsdk.ErrorResponse{
			Error:            clinicsdk.ErrorCodeConflict,
			ErrorDescription: "the owner membership cannot be modified",
		})
	case errors.Is(err, service.ErrInvalidStatus):
		httpx.WriteJSON(w, http.StatusBadRequest, clinicsdk.ErrorResponse{
			Error:            clinicsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "status must be active, inactive or suspended",
		})
	default:
		log.Error("staff operation failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, clinicsdk.ErrorResponse{
			Error:            clinicsdk.ErrorCodeServerError,
			ErrorDescription: "Something went wrong, try again",
		})
	}
}

// HandleList godoc
//
//	@Summary		List Clinic Staff
//	@Description	Return the clinic roster with the owner first. Owner only.
//	@Tags			Staff
//	@Produce		json
//	@Param			id	path		string						true	"Clinic ID"
//	@Success		200	{object}	clinicsdk.ListStaffResponse	"staff"
//	@Failure		403	{object}	clinicsdk.ErrorResponse		"error, error_description"
//	@Failure		404	{object}	clinicsdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/clinics/{id}/staff [get].
func (h *StaffHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := ctx.Value(httpx.CtxKeyUserID).(string)

	staff, err := h.StaffService.ListStaff(ctx, r.PathValue("id"), userID)
	if err != nil {
		writeStaffError(w, r, err)
		return
	}

	resp := clinicsdk.ListStaffResponse{Staff: make([]clinicsdk.StaffMember, 0, len(staff))}
	for _, m := range staff {
		resp.Staff = append(resp.Staff, clinicsdk.StaffMember{
			UserID:    m.UserID,
			StaffID:   m.StaffID,
			Role:      string(m.Role),
			Status:    string(m.Status),
			CreatedAt: m.CreatedAt.Unix(),
		})
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleSetStatus godoc
//
//	@Summary		Update Staff Status
//	@Description	Move a manager between active, inactive and suspended. The owner membership is untouchable. Owner only.
//	@Tags			Staff
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string								true	"Clinic ID"
//	@Param			userID	path	string								true	"Staff user ID"
//	@Param			request	body	clinicsdk.UpdateStaffStatusRequest	true	"New status"
//	@Success		204		"status updated"
//	@Failure		400		{object}	clinicsdk.ErrorResponse	"error, error_description"
//	@Failure		403		{object}	clinicsdk.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	clinicsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/clinics/{id}/staff/{userID} [patch].
func (h *StaffHandler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req clinicsdk.UpdateStaffStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, clinicsdk.ErrorResponse{
			Error:            clinicsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	userID, _ := ctx.Value(httpx.CtxKeyUserID).(string)
	err := h.StaffService.SetStaffStatus(
		ctx,
		r.PathValue("id"),
		r.PathValue("userID"),
		domain.StaffStatus(req.Status),
		userID,
	)
	if err != nil {
		writeStaffError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRemove godoc
//
//	@Summary		Remove Staff Member
//	@Description	Delete a manager membership. The profile survives and can be invited again. Owner only.
//	@Tags			Staff
//	@Produce		json
//	@Param			id		path	string	true	"Clinic ID"
//	@Param			userID	path	string	true	"Staff user ID"
//	@Success		204		"membership removed"
//	@Failure		403		{object}	clinicsdk.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	clinicsdk.ErrorResponse	"error, error_description"
//	@Failure		409		{object}	clinicsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/clinics/{id}/staff/{userID} [delete].
func (h *StaffHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := ctx.Value(httpx.CtxKeyUserID).(string)

	if err := h.StaffService.RemoveStaff(ctx, r.PathValue("id"), r.PathValue("userID"), userID); err != nil {
		writeStaffError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

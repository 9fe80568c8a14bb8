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

type InvitesHandler struct {
	InviteService *service.InviteService

	// EchoLink controls whether the raw invite link is included in the
	// create response. Always on outside production; the owner needs the
	// copy-link fallback when mail fails.
	EchoLink bool
}

// HandleCreate godoc
//
//	@Summary		Create Staff Invite
//	@Description	Mint an invitation for an email address to join the clinic as a manager. Owner only. The response carries the invite link; mail delivery is best effort.
//	@Tags			Invites
//	@Accept			json
//	@Produce		json
//	@Param			request	body		clinicsdk.CreateInviteRequest	true	"Invite request"
//	@Success		201		{object}	clinicsdk.CreateInviteResponse	"invite_id, invite_link, expires_at"
//	@Failure		400		{object}	clinicsdk.ErrorResponse			"error, error_description"
//	@Failure		403		{object}	clinicsdk.ErrorResponse			"error, error_description"
//	@Failure		409		{object}	clinicsdk.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invites [post].
func (h *InvitesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req clinicsdk.CreateInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, clinicsdk.ErrorResponse{
			Error:            clinicsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	userID, ok := ctx.Value(httpx.CtxKeyUserID).(string)
	if !ok || userID == "" {
		httpx.WriteJSON(w, http.StatusUnauthorized, clinicsdk.ErrorResponse{
			Error:            clinicsdk.ErrorCodeUnauthorized,
			ErrorDescription: "Authentication required",
		})
		return
	}

	token, invite, err := h.InviteService.CreateInvite(ctx, req.ClinicID, req.Email, req.FullName, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInviteRequest):
			httpx.WriteJSON(w, http.StatusBadRequest, clinicsdk.ErrorResponse{
				Error:            clinicsdk.ErrorCodeInvalidRequest,
				ErrorDescription: "clinic_id and email are required",
			})
		case errors.Is(err, service.ErrNotClinicOwner):
			httpx.WriteJSON(w, http.StatusForbidden, clinicsdk.ErrorResponse{
				Error:            clinicsdk.ErrorCodeForbidden,
				ErrorDescription: "only the clinic owner can invite staff",
			})
		case errors.Is(err, service.ErrSelfInvite):
			httpx.WriteJSON(w, http.StatusBadRequest, clinicsdk.ErrorResponse{
				Error:            clinicsdk.ErrorCodeInvalidRequest,
				ErrorDescription: "you cannot invite yourself",
			})
		case errors.Is(err, service.ErrDuplicateActiveInvite):
			httpx.WriteJSON(w, http.StatusConflict, clinicsdk.ErrorResponse{
				Error:            clinicsdk.ErrorCodeConflict,
				ErrorDescription: "an active invite already exists for this email",
			})
		case isEligibilityError(err):
			httpx.WriteJSON(w, http.StatusConflict, clinicsdk.ErrorResponse{
				Error:            clinicsdk.ErrorCodeNotEligible,
				ErrorDescription: err.Error(),
			})
		default:
			log.Error("failed to create invite", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, clinicsdk.ErrorResponse{
				Error:            clinicsdk.ErrorCodeServerError,
				ErrorDescription: "Failed to create invite",
			})
		}
		return
	}

	resp := clinicsdk.CreateInviteResponse{
		InviteID:  invite.ID,
		Email:     invite.Email,
		ExpiresAt: invite.ExpiresAt.Unix(),
	}
	if h.EchoLink {
		resp.InviteLink = h.InviteService.InviteLink(token)
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusCreated, resp)
}

// HandleList godoc
//
//	@Summary		List Pending Invites
//	@Description	List the clinic's unaccepted, unexpired invites. Owner only.
//	@Tags			Invites
//	@Produce		json
//	@Param			clinic_id	query		string						true	"Clinic ID"
//	@Success		200			{object}	clinicsdk.ListInvitesResponse	"invites"
//	@Failure		400			{object}	clinicsdk.ErrorResponse			"error, error_description"
//	@Failure		403			{object}	clinicsdk.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invites [get].
func (h *InvitesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	clinicID := r.URL.Query().Get("clinic_id")
	if clinicID == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, clinicsdk.ErrorResponse{
			Error:            clinicsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "clinic_id query parameter is required",
		})
		return
	}

	userID, _ := ctx.Value(httpx.CtxKeyUserID).(string)
	invites, err := h.InviteService.ListPendingInvites(ctx, clinicID, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInviteRequest):
			httpx.WriteJSON(w, http.StatusBadRequest, clinicsdk.ErrorResponse{
				Error:            clinicsdk.ErrorCodeInvalidRequest,
				ErrorDescription: "clinic not found",
			})
		case errors.Is(err, service.ErrNotClinicOwner):
			httpx.WriteJSON(w, http.StatusForbidden, clinicsdk.ErrorResponse{
				Error:            clinicsdk.ErrorCodeForbidden,
				ErrorDescription: "only the clinic owner can list invites",
			})
		default:
			log.Error("failed to list invites", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, clinicsdk.ErrorResponse{
				Error:            clinicsdk.ErrorCodeServerError,
				ErrorDescription: "Failed to list invites",
			})
		}
		return
	}

	resp := clinicsdk.ListInvitesResponse{Invites: make([]clinicsdk.Invite, 0, len(invites))}
	for _, inv := range invites {
		resp.Invites = append(resp.Invites, clinicsdk.Invite{
			ID:        inv.ID,
			ClinicID:  inv.ClinicID,
			Email:     inv.Email,
			FullName:  inv.FullName,
			Role:      string(inv.Role),
			ExpiresAt: inv.ExpiresAt.Unix(),
			CreatedAt: inv.CreatedAt.Unix(),
		})
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleRevoke godoc
//
//	@Summary		Revoke Invite
//	@Description	Hard-delete a pending invite so its link stops resolving. Owner only.
//	@Tags			Invites
//	@Produce		json
//	@Param			id	path	string	true	"Invite ID"
//	@Success		204	"invite deleted"
//	@Failure		403	{object}	clinicsdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	clinicsdk.ErrorResponse	"error, error_description"
//	@Failure		409	{object}	clinicsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invites/{id} [delete].
func (h *InvitesHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	inviteID := r.PathValue("id")
	userID, _ := ctx.Value(httpx.CtxKeyUserID).(string)

	if err := h.InviteService.RevokeInvite(ctx, inviteID, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrInviteNotFound):
			httpx.WriteJSON(w, http.StatusNotFound, clinicsdk.ErrorResponse{
				Error:            clinicsdk.ErrorCodeNotFound,
				ErrorDescription: "invite not found",
			})
		case errors.Is(err, service.ErrNotClinicOwner):
			httpx.WriteJSON(w, http.StatusForbidden, clinicsdk.ErrorResponse{
				Error:            clinicsdk.ErrorCodeForbidden,
				ErrorDescription: "only the clinic owner can revoke invites",
			})
		case errors.Is(err, service.ErrInviteAlreadyUsed):
			httpx.WriteJSON(w, http.StatusConflict, clinicsdk.ErrorResponse{
				Error:            clinicsdk.ErrorCodeInviteUsed,
				ErrorDescription: "invite has already been accepted",
			})
		default:
			log.Error("failed to revoke invite", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, clinicsdk.ErrorResponse{
				Error:            clinicsdk.ErrorCodeServerError,
				ErrorDescription: "Failed to revoke invite",
			})
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func isEligibilityError(err error) bool {
	return errors.Is(err, service.ErrAlreadyOwner) ||
		errors.Is(err, service.ErrAlreadyOwnerElsewhere) ||
		errors.Is(err, service.ErrAlreadyMember)
}

package clinicsdk

import (
	"context"
	"net/http"
	"net/url"
)

// CreateInvite mints an invite for an email address. Owner only.
func (s *Session) CreateInvite(ctx context.Context, req CreateInviteRequest) (CreateInviteResponse, error) {
	var resp CreateInviteResponse
	err := s.doJSON(ctx, http.MethodPost, "/v1/invites", req, &resp, http.StatusCreated)
	return resp, err
}

// ListPendingInvites returns the clinic's open invites. Owner only.
func (s *Session) ListPendingInvites(ctx context.Context, clinicID string) (ListInvitesResponse, error) {
	var resp ListInvitesResponse
	path := "/v1/invites?clinic_id=" + url.QueryEscape(clinicID)
	err := s.doJSON(ctx, http.MethodGet, path, nil, &resp, http.StatusOK)
	return resp, err
}

// RevokeInvite deletes a pending invite. Owner only.
func (s *Session) RevokeInvite(ctx context.Context, inviteID string) error {
	return s.doJSON(ctx, http.MethodDelete, "/v1/invites/"+url.PathEscape(inviteID), nil, nil, http.StatusNoContent)
}

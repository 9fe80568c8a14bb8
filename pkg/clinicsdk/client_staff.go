package clinicsdk

import (
	"context"
	"net/http"
	"net/url"
)

func staffPath(clinicID, userID string) string {
	p := "/v1/clinics/" + url.PathEscape(clinicID) + "/staff"
	if userID != "" {
		p += "/" + url.PathEscape(userID)
	}
	return p
}

// ListStaff returns the clinic roster, owner first. Owner only.
func (s *Session) ListStaff(ctx context.Context, clinicID string) (ListStaffResponse, error) {
	var resp ListStaffResponse
	err := s.doJSON(ctx, http.MethodGet, staffPath(clinicID, ""), nil, &resp, http.StatusOK)
	return resp, err
}

// SetStaffStatus moves a manager between active, inactive and suspended.
// Owner only.
func (s *Session) SetStaffStatus(ctx context.Context, clinicID, userID, status string) error {
	return s.doJSON(ctx, http.MethodPatch, staffPath(clinicID, userID),
		UpdateStaffStatusRequest{Status: status}, nil, http.StatusNoContent)
}

// RemoveStaff deletes a manager membership. Owner only.
func (s *Session) RemoveStaff(ctx context.Context, clinicID, userID string) error {
	return s.doJSON(ctx, http.MethodDelete, staffPath(clinicID, userID), nil, nil, http.StatusNoContent)
}

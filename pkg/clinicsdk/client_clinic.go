package clinicsdk

import (
	"context"
	"net/http"
)

// RegisterClinic creates a clinic together with its owner account.
func (c *Client) RegisterClinic(ctx context.Context, req RegisterClinicRequest) (RegisterClinicResponse, error) {
	var resp RegisterClinicResponse
	err := c.postJSON(ctx, "/v1/clinics", req, &resp, http.StatusCreated)
	return resp, err
}

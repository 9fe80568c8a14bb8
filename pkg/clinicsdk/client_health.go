package clinicsdk

import (
	"context"
	"net/http"
)

// Livez reports whether the process is up.
func (c *Client) Livez(ctx context.Context) (HealthResponse, error) {
	var resp HealthResponse
	err := c.getJSON(ctx, "/livez", &resp, http.StatusOK)
	return resp, err
}

// Readyz reports whether the service can reach its database.
func (c *Client) Readyz(ctx context.Context) (HealthResponse, error) {
	var resp HealthResponse
	err := c.getJSON(ctx, "/readyz", &resp, http.StatusOK)
	return resp, err
}

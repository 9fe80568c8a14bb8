package clinic_test

import (
	"testing"

	"github.com/carebridgehq/clinicd/pkg/clinicsdk"
	"github.com/stretchr/testify/require"
)

// TestHealthEndpoints verifies the liveness and readiness probes of a fresh
// container.
func TestHealthEndpoints(t *testing.T) {
	baseURL, _ := setupClinicContainer(t)

	client := clinicsdk.NewClient(baseURL)

	t.Run("Livez", func(t *testing.T) {
		health, err := client.Livez(t.Context())
		require.NoError(t, err)
		require.Equal(t, "ok", health.Status)
		require.NotEmpty(t, health.Version)
		require.NotEmpty(t, health.Uptime)
	})

	t.Run("Readyz", func(t *testing.T) {
		health, err := client.Readyz(t.Context())
		require.NoError(t, err)
		require.Equal(t, "ok", health.Status)
		require.NotNil(t, health.Checks)
		require.Equal(t, "ok", health.Checks.Database)
	})
}

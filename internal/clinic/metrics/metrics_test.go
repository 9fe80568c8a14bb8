package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestCollectorExposesCounters(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordInviteCreated()
	c.RecordInviteCreated()
	c.RecordInviteAccepted()
	c.RecordOTPIssued()
	c.RecordOTPFailed()
	c.RecordMailFailed()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, req)

	resp := w.Result()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	require.Contains(t, string(body), "clinicd_invites_created_total 2")
	require.Contains(t, string(body), "clinicd_invites_accepted_total 1")
	require.Contains(t, string(body), "clinicd_otp_issued_total 1")
	require.Contains(t, string(body), "clinicd_otp_failed_total 1")
	require.Contains(t, string(body), "clinicd_mail_failed_total 1")
}

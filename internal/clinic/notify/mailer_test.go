package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPMailerPostsJSON(t *testing.T) {
	t.Parallel()

	var got InviteMail
	var auth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	t.Cleanup(srv.Close)

	m := NewHTTPMailer(srv.URL, "provider-key")
	err := m.SendInvite(context.Background(), InviteMail{
		Email:       "nurse@example.com",
		InviteLink:  "https://clinic.example/onboarding/tok",
		ClinicName:  "Northside Clinic",
		InviterName: "Dr Owner",
	})
	require.NoError(t, err)
	require.Equal(t, "Bearer provider-key", auth)
	require.Equal(t, "nurse@example.com", got.Email)
	require.Equal(t, "https://clinic.example/onboarding/tok", got.InviteLink)
}

func TestHTTPMailerRejectsProviderError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	m := NewHTTPMailer(srv.URL, "")
	err := m.SendInvite(context.Background(), InviteMail{Email: "x@example.com"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "429")
}

func TestLogMailerNeverFails(t *testing.T) {
	t.Parallel()

	require.NoError(t, LogMailer{}.SendInvite(context.Background(), InviteMail{
		Email:      "x@example.com",
		InviteLink: "https://clinic.example/onboarding/tok",
	}))
}

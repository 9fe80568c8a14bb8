// Package notify delivers invite notifications. Delivery is best effort: the
// invitation itself lives in the database and the create response always
// carries the link, so a failed mail only costs the invitee a convenience.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/carebridgehq/clinicd/pkg/slogx"
)

// InviteMail is everything the provider template needs.
type InviteMail struct {
	Email       string `json:"email"`
	InviteLink  string `json:"invite_link"`
	ClinicName  string `json:"clinic_name"`
	InviterName string `json:"inviter_name"`
}

// Mailer sends an invite mail. Implementations must be safe for concurrent
// use; the service layer dispatches on a goroutine per invite.
type Mailer interface {
	SendInvite(ctx context.Context, mail InviteMail) error
}

// HTTPMailer posts the mail as JSON to a provider endpoint.
type HTTPMailer struct {
	Endpoint string
	APIKey   string
	Client   *http.Client
}

// NewHTTPMailer builds an HTTPMailer with a sane request timeout.
func NewHTTPMailer(endpoint, apiKey string) *HTTPMailer {
	return &HTTPMailer{
		Endpoint: endpoint,
		APIKey:   apiKey,
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (m *HTTPMailer) SendInvite(ctx context.Context, mail InviteMail) error {
	body, err := json.Marshal(mail)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.Endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if m.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+m.APIKey)
	}

	resp, err := m.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("notify: provider returned status %d", resp.StatusCode)
	}
	return nil
}

// LogMailer logs instead of sending. Default in dev, where no provider is
// configured and the echoed link is how testers reach the onboarding page.
type LogMailer struct{}

func (LogMailer) SendInvite(ctx context.Context, mail InviteMail) error {
	slogx.FromContext(ctx).Info("invite mail (log only)",
		slog.String("email", mail.Email),
		slog.String("clinic_name", mail.ClinicName),
		slog.String("invite_link", mail.InviteLink),
	)
	return nil
}

package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/carebridgehq/clinicd/internal/clinic/domain"
	"github.com/carebridgehq/clinicd/pkg/jwtx"
	"github.com/carebridgehq/clinicd/pkg/slogx"
)

// AuthService turns a password sign-in into a short-lived session token for
// the management API. Tokens are EdDSA-signed JWTs; the keypair is ephemeral
// and minted at boot, so a restart simply signs everyone out.
type AuthService struct {
	Identity   *IdentityService
	Signer     *jwtx.Signer
	Issuer     string
	SessionTTL time.Duration
}

// Login verifies the credentials and returns a signed session token plus the
// authenticated profile.
func (s *AuthService) Login(
	ctx context.Context,
	email string,
	password string,
) (string, domain.Profile, error) {
	log := slogx.FromContext(ctx)

	profile, err := s.Identity.SignIn(ctx, email, password)
	if err != nil {
		return "", domain.Profile{}, err
	}

	ttl := s.SessionTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}

	claims := jwtx.NewSessionClaims(profile.ID, profile.Email, profile.FullName, s.Issuer, ttl, time.Now().UTC())
	token, err := s.Signer.Sign(claims)
	if err != nil {
		log.Error("failed to sign session token", slog.Any("error", err))
		return "", domain.Profile{}, err
	}

	log.Info("session issued", slog.String("user_id", profile.ID))
	return token, profile, nil
}

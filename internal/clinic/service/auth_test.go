package service

import (
	"context"
	"testing"
	"time"

	"github.com/carebridgehq/clinicd/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	signer, err := jwtx.NewEphemeralSigner("test-key")
	require.NoError(t, err)

	svc := &AuthService{
		Identity:   newIdentityService(st),
		Signer:     signer,
		Issuer:     "clinicd-test",
		SessionTTL: time.Minute,
	}

	profile := seedProfile(t, st, "owner@example.com", "owner-password")

	t.Run("issues a verifiable session token", func(t *testing.T) {
		token, got, err := svc.Login(ctx, "owner@example.com", "owner-password")
		require.NoError(t, err)
		require.Equal(t, profile.ID, got.ID)

		claims, err := signer.Verifier("clinicd-test").Verify(token)
		require.NoError(t, err)
		require.Equal(t, profile.ID, claims.Subject)
		require.Equal(t, profile.Email, claims.Email)
	})

	t.Run("bad credentials issue nothing", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "owner@example.com", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

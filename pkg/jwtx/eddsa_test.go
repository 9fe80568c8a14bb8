package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignAndVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	signer, err := NewEphemeralSigner("session-1")
	require.NoError(t, err)

	now := time.Now().UTC()
	claims := NewSessionClaims("user-123", "jane@example.com", "Jane Doe", "clinicd", time.Hour, now)

	token, err := signer.Sign(claims)
	require.NoError(t, err)

	got, err := signer.Verifier("clinicd").Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", got.Subject)
	require.Equal(t, "jane@example.com", got.Email)
	require.Equal(t, "Jane Doe", got.FullName)
	require.NotEmpty(t, got.ID)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	signer, err := NewEphemeralSigner("session-1")
	require.NoError(t, err)

	token, err := signer.Sign(NewSessionClaims("u", "e@x.com", "", "other-issuer", time.Hour, time.Now().UTC()))
	require.NoError(t, err)

	_, err = signer.Verifier("clinicd").Verify(token)
	require.ErrorIs(t, err, ErrIssuer)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	signer, err := NewEphemeralSigner("session-1")
	require.NoError(t, err)

	past := time.Now().UTC().Add(-2 * time.Hour)
	token, err := signer.Sign(NewSessionClaims("u", "e@x.com", "", "clinicd", time.Hour, past))
	require.NoError(t, err)

	_, err = signer.Verifier("clinicd").Verify(token)
	require.Error(t, err)
}

func TestVerifyRejectsForeignKey(t *testing.T) {
	t.Parallel()

	a, err := NewEphemeralSigner("session-1")
	require.NoError(t, err)
	b, err := NewEphemeralSigner("session-1")
	require.NoError(t, err)

	token, err := a.Sign(NewSessionClaims("u", "e@x.com", "", "clinicd", time.Hour, time.Now().UTC()))
	require.NoError(t, err)

	_, err = b.Verifier("clinicd").Verify(token)
	require.Error(t, err)
}

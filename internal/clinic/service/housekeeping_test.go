package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/carebridgehq/clinicd/internal/clinic/domain"
	"github.com/carebridgehq/clinicd/internal/clinic/store"
	"github.com/carebridgehq/clinicd/pkg/cryptox"
	"github.com/carebridgehq/clinicd/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestHousekeepingCleanup(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	owner, clinic := seedOwnerAndClinic(t, st, "owner@example.com", "Northside Clinic")

	now := time.Now().UTC()

	// One expired and one live invite.
	expiredToken, err := cryptox.GenerateToken(cryptox.TokenSize256)
	require.NoError(t, err)
	expired := domain.Invite{
		ID:        idx.New().String(),
		TokenHash: cryptox.FingerprintToken(expiredToken),
		ClinicID:  clinic.ID,
		Email:     "expired@example.com",
		Role:      domain.RoleManager,
		InvitedBy: owner.ID,
		ExpiresAt: now.Add(-time.Hour),
		CreatedAt: now.Add(-49 * time.Hour),
		UpdatedAt: now.Add(-49 * time.Hour),
	}
	require.NoError(t, st.Invites().CreateInvite(ctx, expired))

	liveToken, err := cryptox.GenerateToken(cryptox.TokenSize256)
	require.NoError(t, err)
	live := domain.Invite{
		ID:        idx.New().String(),
		TokenHash: cryptox.FingerprintToken(liveToken),
		ClinicID:  clinic.ID,
		Email:     "live@example.com",
		Role:      domain.RoleManager,
		InvitedBy: owner.ID,
		ExpiresAt: now.Add(domain.InviteTTL),
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, st.Invites().CreateInvite(ctx, live))

	// One stale challenge.
	require.NoError(t, st.OTPChallenges().CreateOTPChallenge(ctx, domain.OTPChallenge{
		ID:        idx.New().String(),
		Email:     "expired@example.com",
		Purpose:   domain.OTPPurposeSignup,
		Secret:    "SECRET",
		ExpiresAt: now.Add(-time.Minute),
		CreatedAt: now.Add(-time.Hour),
	}))

	svc := NewHousekeepingService(st, slog.Default(), time.Hour)
	svc.cleanup()

	_, err = st.Invites().GetInviteByID(ctx, expired.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.Invites().GetInviteByID(ctx, live.ID)
	require.NoError(t, err)

	_, err = st.OTPChallenges().GetOTPChallenge(ctx, "expired@example.com", domain.OTPPurposeSignup)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestHousekeepingStartStop(t *testing.T) {
	st := newTestStore(t)

	svc := NewHousekeepingService(st, slog.Default(), 50*time.Millisecond)
	svc.Start()
	time.Sleep(120 * time.Millisecond)
	svc.Stop()
}

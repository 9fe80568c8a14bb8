package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/carebridgehq/clinicd/internal/clinic/domain"
	"github.com/carebridgehq/clinicd/internal/clinic/metrics"
	"github.com/carebridgehq/clinicd/internal/clinic/store"
	"github.com/carebridgehq/clinicd/internal/clinic/store/drivers/sqlite"
	"github.com/carebridgehq/clinicd/pkg/cryptox"
	"github.com/carebridgehq/clinicd/pkg/idx"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "clinicd-service-test")
	if err != nil {
		os.Exit(1)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newInviteService(t *testing.T, st store.Store) *InviteService {
	t.Helper()
	return &InviteService{
		Store:       st,
		Eligibility: &EligibilityService{Store: st},
		Metrics:     metrics.Noop{},
		BaseURL:     "https://clinic.test",
	}
}

func newIdentityService(st store.Store) *IdentityService {
	return &IdentityService{Store: st, Metrics: metrics.Noop{}}
}

// seedOwnerAndClinic creates an owner profile, their clinic, and the owner
// membership directly through the store.
func seedOwnerAndClinic(t *testing.T, st store.Store, email, clinicName string) (domain.Profile, domain.Clinic) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	hash, err := cryptox.HashPassword("owner-password")
	require.NoError(t, err)

	owner := domain.Profile{
		ID:           idx.New().String(),
		Email:        email,
		FullName:     "Dr Owner",
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, st.Profiles().CreateProfile(ctx, owner))

	clinic := domain.Clinic{
		ID:        idx.New().String(),
		Name:      clinicName,
		OwnerID:   owner.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, st.Clinics().CreateClinic(ctx, clinic))

	require.NoError(t, st.StaffMembers().CreateStaffMembership(ctx, domain.StaffMembership{
		ID:        idx.New().String(),
		ClinicID:  clinic.ID,
		UserID:    owner.ID,
		Role:      domain.RoleOwner,
		Status:    domain.StaffActive,
		StaffID:   "ST-" + idx.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}))

	return owner, clinic
}

// seedProfile creates a plain profile with the given password.
func seedProfile(t *testing.T, st store.Store, email, password string) domain.Profile {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	p := domain.Profile{
		ID:           idx.New().String(),
		Email:        email,
		FullName:     "Test User",
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, st.Profiles().CreateProfile(ctx, p))
	return p
}

// currentCode derives the code for the outstanding challenge, the same way
// the service does when issuing it.
func currentCode(t *testing.T, st store.Store, email string, purpose domain.OTPPurpose) string {
	t.Helper()

	challenge, err := st.OTPChallenges().GetOTPChallenge(context.Background(), email, purpose)
	require.NoError(t, err)

	code, err := totp.GenerateCodeCustom(challenge.Secret, time.Now().UTC(), otpValidateOpts())
	require.NoError(t, err)
	return code
}

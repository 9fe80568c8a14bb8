package service

import (
	"context"
	"testing"

	"github.com/carebridgehq/clinicd/internal/clinic/domain"
	"github.com/carebridgehq/clinicd/internal/clinic/store"
	"github.com/stretchr/testify/require"
)

func TestRegisterClinic(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &ClinicService{Store: st}

	res, err := svc.Register(ctx, "Northside Clinic", "Owner@Example.com", "pw-123456", "Dr Owner")
	require.NoError(t, err)
	require.Equal(t, "owner@example.com", res.Profile.Email)
	require.Equal(t, res.Profile.ID, res.Clinic.OwnerID)
	require.Equal(t, domain.RoleOwner, res.Membership.Role)
	require.Equal(t, domain.StaffActive, res.Membership.Status)

	// The roster holds exactly the owner.
	staff, err := st.StaffMembers().ListClinicStaff(ctx, res.Clinic.ID)
	require.NoError(t, err)
	require.Len(t, staff, 1)
}

func TestRegisterClinicSingleOwnership(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &ClinicService{Store: st}

	_, err := svc.Register(ctx, "First Clinic", "owner@example.com", "pw-123456", "Dr Owner")
	require.NoError(t, err)

	// The same user cannot own a second clinic.
	_, err = svc.Register(ctx, "Second Clinic", "owner@example.com", "pw-123456", "Dr Owner")
	require.ErrorIs(t, err, ErrAlreadyOwnerElsewhere)
}

func TestRegisterClinicReusesAccountWithProof(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &ClinicService{Store: st}

	existing := seedProfile(t, st, "manager@example.com", "their-password")

	t.Run("wrong password cannot claim the account", func(t *testing.T) {
		_, err := svc.Register(ctx, "New Clinic", existing.Email, "guessed-password", "Imposter")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("correct password registers on the existing profile", func(t *testing.T) {
		res, err := svc.Register(ctx, "New Clinic", existing.Email, "their-password", "")
		require.NoError(t, err)
		require.Equal(t, existing.ID, res.Profile.ID)
	})
}

func TestRegisterClinicValidation(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &ClinicService{Store: st}

	for _, tc := range []struct {
		name, clinic, email, password string
	}{
		{"missing name", "", "o@example.com", "pw"},
		{"missing email", "Clinic", "", "pw"},
		{"missing password", "Clinic", "o@example.com", ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.clinic, tc.email, tc.password, "Name")
			require.ErrorIs(t, err, ErrInvalidRegistration)
		})
	}

	// No partial writes survive a rejected registration.
	_, err := st.Profiles().GetProfileByEmail(ctx, "o@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

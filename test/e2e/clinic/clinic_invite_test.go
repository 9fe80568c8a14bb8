package clinic_test

import (
	"testing"
	"time"

	"github.com/carebridgehq/clinicd/pkg/clinicsdk"
	"github.com/stretchr/testify/require"
)

// TestRegisterLoginCreateInvite tests the owner's side of the flow:
// 1. Register a clinic with its owner account
// 2. Login with the owner credentials
// 3. Create an invite for a staff member
// 4. See it in the pending list
// 5. Revoke it and see the link stop resolving
func TestRegisterLoginCreateInvite(t *testing.T) {
	baseURL, _ := setupClinicContainer(t)

	client := clinicsdk.NewClient(baseURL)

	reg := registerClinic(t, client, clinicName, ownerEmail, ownerPassword, ownerName)
	t.Logf("Clinic registered: %s (owner %s)", reg.ClinicID, reg.OwnerID)

	session := loginOwner(t, client, ownerEmail, ownerPassword)
	require.Equal(t, reg.OwnerID, session.UserID)

	inviteResp, token := createInvite(t, session, reg.ClinicID, "jane@sunrise.example", "Jane Park")
	require.Equal(t, "jane@sunrise.example", inviteResp.Email)
	require.Greater(t, inviteResp.ExpiresAt, time.Now().Unix())
	t.Logf("Invite created: %s", inviteResp.InviteID)

	list, err := session.ListPendingInvites(t.Context(), reg.ClinicID)
	require.NoError(t, err)
	require.Len(t, list.Invites, 1)
	require.Equal(t, inviteResp.InviteID, list.Invites[0].ID)
	require.Equal(t, "manager", list.Invites[0].Role)

	// The invite link resolves for the invitee
	state, err := client.Onboarding(t.Context(), token)
	require.NoError(t, err)
	require.Equal(t, "CHECK_ACCOUNT", state.Step)
	require.Equal(t, "jane@sunrise.example", state.Email)
	require.Equal(t, clinicName, state.ClinicName)

	// Revoke and confirm the link is dead
	require.NoError(t, session.RevokeInvite(t.Context(), inviteResp.InviteID))

	list, err = session.ListPendingInvites(t.Context(), reg.ClinicID)
	require.NoError(t, err)
	require.Empty(t, list.Invites)

	_, err = client.Onboarding(t.Context(), token)
	requireAPIError(t, err, clinicsdk.ErrorCodeNotFound)
}

// TestCreateInviteValidation covers the rejection paths of invite creation.
func TestCreateInviteValidation(t *testing.T) {
	baseURL, _ := setupClinicContainer(t)

	client := clinicsdk.NewClient(baseURL)
	reg := registerClinic(t, client, clinicName, ownerEmail, ownerPassword, ownerName)
	session := loginOwner(t, client, ownerEmail, ownerPassword)

	t.Run("SelfInvite", func(t *testing.T) {
		_, err := session.CreateInvite(t.Context(), clinicsdk.CreateInviteRequest{
			ClinicID: reg.ClinicID,
			Email:    ownerEmail,
		})
		requireAPIError(t, err, clinicsdk.ErrorCodeInvalidRequest)
	})

	t.Run("MissingEmail", func(t *testing.T) {
		_, err := session.CreateInvite(t.Context(), clinicsdk.CreateInviteRequest{
			ClinicID: reg.ClinicID,
		})
		requireAPIError(t, err, clinicsdk.ErrorCodeInvalidRequest)
	})

	t.Run("DuplicateActiveInvite", func(t *testing.T) {
		_, _ = createInvite(t, session, reg.ClinicID, "dup@sunrise.example", "")

		// Same address in different casing still counts as a duplicate
		_, err := session.CreateInvite(t.Context(), clinicsdk.CreateInviteRequest{
			ClinicID: reg.ClinicID,
			Email:    "Dup@Sunrise.example",
		})
		requireAPIError(t, err, clinicsdk.ErrorCodeConflict)
	})

	t.Run("NonOwnerCannotInvite", func(t *testing.T) {
		other := registerClinic(t, client, "Harbour Dental", "harbour@example.com", "Harbour123!", "Kim Ng")
		otherSession := loginOwner(t, client, "harbour@example.com", "Harbour123!")

		_, err := otherSession.CreateInvite(t.Context(), clinicsdk.CreateInviteRequest{
			ClinicID: reg.ClinicID,
			Email:    "someone@example.com",
		})
		requireAPIError(t, err, clinicsdk.ErrorCodeForbidden)

		// Their own clinic still works
		_, _ = createInvite(t, otherSession, other.ClinicID, "someone@example.com", "")
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		anon := client.SessionFromToken("not-a-real-token")
		_, err := anon.CreateInvite(t.Context(), clinicsdk.CreateInviteRequest{
			ClinicID: reg.ClinicID,
			Email:    "nobody@example.com",
		})
		require.Error(t, err)
	})
}

// TestClinicRegistrationRules verifies single ownership and account reuse.
func TestClinicRegistrationRules(t *testing.T) {
	baseURL, _ := setupClinicContainer(t)

	client := clinicsdk.NewClient(baseURL)
	registerClinic(t, client, clinicName, ownerEmail, ownerPassword, ownerName)

	t.Run("SecondClinicSameOwnerRejected", func(t *testing.T) {
		_, err := client.RegisterClinic(t.Context(), clinicsdk.RegisterClinicRequest{
			ClinicName:    "Second Clinic",
			OwnerEmail:    ownerEmail,
			OwnerPassword: ownerPassword,
		})
		requireAPIError(t, err, clinicsdk.ErrorCodeConflict)
	})

	t.Run("ExistingEmailWrongPassword", func(t *testing.T) {
		_, err := client.RegisterClinic(t.Context(), clinicsdk.RegisterClinicRequest{
			ClinicName:    "Another Clinic",
			OwnerEmail:    ownerEmail,
			OwnerPassword: "WrongPassword1!",
		})
		requireAPIError(t, err, clinicsdk.ErrorCodeUnauthorized)
	})

	t.Run("MissingFields", func(t *testing.T) {
		_, err := client.RegisterClinic(t.Context(), clinicsdk.RegisterClinicRequest{
			ClinicName: "No Owner Clinic",
		})
		requireAPIError(t, err, clinicsdk.ErrorCodeInvalidRequest)
	})

	t.Run("LoginWrongPassword", func(t *testing.T) {
		_, err := client.Login(t.Context(), ownerEmail, "WrongPassword1!")
		requireAPIError(t, err, clinicsdk.ErrorCodeUnauthorized)
	})
}

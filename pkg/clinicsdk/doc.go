// Package clinicsdk is a typed HTTP client for the clinicd API.
//
// Unauthenticated flows (clinic registration, invite onboarding) hang off
// Client; owner operations require a Session obtained from Client.Login.
//
//	client := clinicsdk.NewClient("https://clinic.example")
//
//	session, err := client.Login(ctx, "owner@example.com", "password")
//	if err != nil { ... }
//
//	created, err := session.CreateInvite(ctx, clinicsdk.CreateInviteRequest{
//		ClinicID: clinicID,
//		Email:    "nurse@example.com",
//	})
//
// The invitee side then walks the onboarding flow with the link token:
//
//	state, _ := client.Onboarding(ctx, token)
//	state, _ = client.Declare(ctx, token, false)
//	state, _ = client.OnboardingSignUp(ctx, token, clinicsdk.OnboardingSignUpRequest{...})
//	state, _ = client.VerifyCode(ctx, token, "123456")
//	state, _ = client.CompleteProfile(ctx, token, clinicsdk.CompleteProfileRequest{...})
//	accepted, _ := client.AcceptInvite(ctx, token)
//
// Errors returned by the server decode into *APIError with the server's
// error code; use IsCode to branch on them.
package clinicsdk

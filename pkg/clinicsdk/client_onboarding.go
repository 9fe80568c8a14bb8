package clinicsdk

import (
	"context"
	"net/http"
	"net/url"
)

func onboardingPath(token, suffix string) string {
	p := "/v1/onboarding/" + url.PathEscape(token)
	if suffix != "" {
		p += "/" + suffix
	}
	return p
}

// Onboarding resolves the invite token and returns the current position in
// the flow.
func (c *Client) Onboarding(ctx context.Context, token string) (OnboardingState, error) {
	var resp OnboardingState
	err := c.getJSON(ctx, onboardingPath(token, ""), &resp, http.StatusOK)
	return resp, err
}

// Declare answers whether the invitee already has an account.
func (c *Client) Declare(ctx context.Context, token string, hasAccount bool) (OnboardingState, error) {
	var resp OnboardingState
	err := c.postJSON(ctx, onboardingPath(token, "declare"), DeclareRequest{HasAccount: hasAccount}, &resp, http.StatusOK)
	return resp, err
}

// OnboardingSignIn runs the existing-account branch.
func (c *Client) OnboardingSignIn(ctx context.Context, token string, req OnboardingSignInRequest) (OnboardingState, error) {
	var resp OnboardingState
	err := c.postJSON(ctx, onboardingPath(token, "signin"), req, &resp, http.StatusOK)
	return resp, err
}

// OnboardingSignUp runs the new-account branch.
func (c *Client) OnboardingSignUp(ctx context.Context, token string, req OnboardingSignUpRequest) (OnboardingState, error) {
	var resp OnboardingState
	err := c.postJSON(ctx, onboardingPath(token, "signup"), req, &resp, http.StatusOK)
	return resp, err
}

// VerifyCode submits the emailed 6-digit code.
func (c *Client) VerifyCode(ctx context.Context, token, code string) (OnboardingState, error) {
	var resp OnboardingState
	err := c.postJSON(ctx, onboardingPath(token, "verify"), VerifyCodeRequest{Code: code}, &resp, http.StatusOK)
	return resp, err
}

// ResendCode requests a fresh code for the invited address.
func (c *Client) ResendCode(ctx context.Context, token string) error {
	return c.postJSON(ctx, onboardingPath(token, "resend"), nil, nil, http.StatusNoContent)
}

// CompleteProfile stores the invitee's details.
func (c *Client) CompleteProfile(ctx context.Context, token string, req CompleteProfileRequest) (OnboardingState, error) {
	var resp OnboardingState
	err := c.postJSON(ctx, onboardingPath(token, "profile"), req, &resp, http.StatusOK)
	return resp, err
}

// AcceptInvite consumes the invite and creates the staff membership.
func (c *Client) AcceptInvite(ctx context.Context, token string) (AcceptInviteResponse, error) {
	var resp AcceptInviteResponse
	err := c.postJSON(ctx, onboardingPath(token, "accept"), nil, &resp, http.StatusOK)
	return resp, err
}

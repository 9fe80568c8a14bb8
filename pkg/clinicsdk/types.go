package clinicsdk

// ErrorResponse is the error body every endpoint uses.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// LoginRequest authenticates an existing profile.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the session token for the management API.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"` // always "Bearer"
	ExpiresIn   int64  `json:"expires_in"` // seconds
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
}

// RegisterClinicRequest creates a clinic and its owner in one call.
type RegisterClinicRequest struct {
	ClinicName    string `json:"clinic_name"`
	OwnerEmail    string `json:"owner_email"`
	OwnerPassword string `json:"owner_password"`
	OwnerFullName string `json:"owner_full_name"`
}

// RegisterClinicResponse is the result of a successful registration.
type RegisterClinicResponse struct {
	ClinicID   string `json:"clinic_id"`
	ClinicName string `json:"clinic_name"`
	OwnerID    string `json:"owner_id"`
	StaffID    string `json:"staff_id"`
}

// CreateInviteRequest invites an email address to join the clinic as a
// manager.
type CreateInviteRequest struct {
	ClinicID string `json:"clinic_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
}

// CreateInviteResponse always includes the link so the owner can copy it
// even when mail delivery fails.
type CreateInviteResponse struct {
	InviteID   string `json:"invite_id"`
	Email      string `json:"email"`
	InviteLink string `json:"invite_link"`
	ExpiresAt  int64  `json:"expires_at"` // unix seconds
}

// Invite is the pending-invite view returned by list endpoints. The token is
// never part of it.
type Invite struct {
	ID        string `json:"id"`
	ClinicID  string `json:"clinic_id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name,omitempty"`
	Role      string `json:"role"`
	ExpiresAt int64  `json:"expires_at"`
	CreatedAt int64  `json:"created_at"`
}

// ListInvitesResponse wraps the pending invites of a clinic.
type ListInvitesResponse struct {
	Invites []Invite `json:"invites"`
}

// OnboardingState tells the client which screen to render next.
type OnboardingState struct {
	Step       string `json:"step"`
	HasAccount bool   `json:"has_account"`
	Email      string `json:"email"`
	FullName   string `json:"full_name,omitempty"`
	ClinicID   string `json:"clinic_id"`
	ClinicName string `json:"clinic_name,omitempty"`
	ExpiresAt  int64  `json:"expires_at"`
}

// DeclareRequest answers the "do you already have an account?" question.
type DeclareRequest struct {
	HasAccount bool `json:"has_account"`
}

// OnboardingSignInRequest signs in on the existing-account branch.
type OnboardingSignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// OnboardingSignUpRequest creates the account on the new-account branch.
type OnboardingSignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

// VerifyCodeRequest submits the 6-digit email code.
type VerifyCodeRequest struct {
	Code string `json:"code"`
}

// CompleteProfileRequest fills in the invitee's details.
type CompleteProfileRequest struct {
	FullName  string `json:"full_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Specialty string `json:"specialty,omitempty"`
}

// AcceptInviteResponse is returned when the membership has been created.
type AcceptInviteResponse struct {
	State    OnboardingState `json:"state"`
	ClinicID string          `json:"clinic_id"`
	StaffID  string          `json:"staff_id"`
	Role     string          `json:"role"`
	Status   string          `json:"status"`
}

// StaffMember is a roster entry.
type StaffMember struct {
	UserID    string `json:"user_id"`
	StaffID   string `json:"staff_id"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
}

// ListStaffResponse wraps the clinic roster.
type ListStaffResponse struct {
	Staff []StaffMember `json:"staff"`
}

// UpdateStaffStatusRequest moves a manager between statuses.
type UpdateStaffStatusRequest struct {
	Status string `json:"status"`
}

// HealthChecks itemizes dependency status on the readiness probe.
type HealthChecks struct {
	Database string `json:"database"`
}

// HealthResponse is returned by the health endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

package clinicsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error codes shared by server and SDK.
const (
	ErrorCodeInvalidRequest  = "invalid_request"
	ErrorCodeUnauthorized    = "unauthorized"
	ErrorCodeForbidden       = "forbidden"
	ErrorCodeNotFound        = "not_found"
	ErrorCodeConflict        = "conflict"
	ErrorCodeInviteUsed      = "invite_used"
	ErrorCodeInviteExpired   = "invite_expired"
	ErrorCodeEmailMismatch   = "email_mismatch"
	ErrorCodeEmailRegistered = "email_already_registered"
	ErrorCodeInvalidCode     = "invalid_code"
	ErrorCodeNotEligible     = "not_eligible"
	ErrorCodeInvalidState    = "invalid_state"
	ErrorCodeRateLimited     = "rate_limit_exceeded"
	ErrorCodeServerError     = "server_error"
)

// APIError is the typed form of an ErrorResponse, carrying the HTTP status
// it arrived with.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// IsCode reports whether err is an APIError with the given code.
func IsCode(err error, code string) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Code == code
}

func parseErrorResponse(resp *http.Response, body []byte) error {
	var er ErrorResponse
	if err := json.Unmarshal(body, &er); err != nil || er.Error == "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        ErrorCodeServerError,
			Description: fmt.Sprintf("unexpected status %d", resp.StatusCode),
		}
	}
	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        er.Error,
		Description: er.ErrorDescription,
	}
}

package mailwardsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/veridianlabs/mailward/pkg/httpx"
)

// ============================================================================
// Outcome Codes
// ============================================================================

// Every token operation resolves to exactly one outcome code. Successes
// carry OutcomeOK in the response body; failures carry their code in the
// error field of an ErrorResponse. UIs are expected to map these codes to
// copy, and to render OutcomeTokenNotFound and OutcomeTokenMismatch with the
// same wording.
const (
	OutcomeOK               = "ok"
	OutcomeTokenNotFound    = "token_not_found"
	OutcomeTokenExpired     = "token_expired"
	OutcomeTokenMismatch    = "token_mismatch"
	OutcomeAlreadyCompleted = "already_completed"
)

// Error codes outside the token outcome set.
const (
	ErrorCodeInvalidRequest    = "invalid_request"
	ErrorCodeInvalidToken      = "invalid_token"
	ErrorCodeInsufficientScope = "insufficient_scope"
	ErrorCodeRateLimited       = "rate_limit_exceeded"
	ErrorCodeServerError       = "server_error"
)

// ============================================================================
// APIError
// ============================================================================

// APIError is a typed error for any non-2xx response. It implements the
// error interface and is shared by the server (to write responses) and the
// SDK client (to represent them).
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine-readable error code (an outcome code or one of
	// the ErrorCode constants)
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this APIError to an HTTP response writer. Used by the
// service's handlers to return wire-format error responses.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.StatusCode, ErrorResponse{
		Error:            e.Code,
		ErrorDescription: e.Description,
	})
}

// HasOutcome reports whether err is an APIError carrying the given outcome
// or error code. Convenience for flows that only branch on one code.
func HasOutcome(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// ============================================================================
// Predefined Errors
// ============================================================================

var (
	// ErrInvalidRequest is returned when the request is missing a required
	// parameter, carries an invalid value, or is otherwise malformed.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrInvalidJSONBody is returned when the request body is not valid JSON.
	ErrInvalidJSONBody = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "invalid JSON body",
	}

	// ErrTokenNotFound is returned when no pending action matches the
	// presented email, kind and credential.
	ErrTokenNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        OutcomeTokenNotFound,
		Description: "no pending action matches this request",
	}

	// ErrTokenMismatch is returned when a pending action exists but the
	// presented credential does not match it. UIs render this with the same
	// copy as token_not_found.
	ErrTokenMismatch = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        OutcomeTokenMismatch,
		Description: "no pending action matches this request",
	}

	// ErrTokenExpired is returned when the credential matched but its
	// validity window has passed. The action must be re-requested.
	ErrTokenExpired = &APIError{
		StatusCode:  http.StatusGone,
		Code:        OutcomeTokenExpired,
		Description: "this link has expired, request a new one",
	}

	// ErrAlreadyCompleted is returned when the action guarded by this
	// credential has already been performed.
	ErrAlreadyCompleted = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        OutcomeAlreadyCompleted,
		Description: "this action has already been completed",
	}

	// ErrServerError is returned when the service encountered an unexpected
	// condition that prevented it from fulfilling the request.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// NewAPIError creates an APIError with the given status code, error code and
// description, for messages the predefined set does not cover.
func NewAPIError(statusCode int, code, description string) *APIError {
	return &APIError{
		StatusCode:  statusCode,
		Code:        code,
		Description: description,
	}
}

// ============================================================================
// Error Parsing Helpers
// ============================================================================

// parseErrorResponse turns a non-2xx HTTP response into a typed *APIError.
// Returns nil if the response indicates success.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	// Standard wire error shape
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	// Auth middleware failures carry no JSON body (RFC 6750 uses the
	// WWW-Authenticate header); classify by status code.
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        ErrorCodeInvalidToken,
			Description: "the access token is missing, invalid or expired",
		}
	case http.StatusForbidden:
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        ErrorCodeInsufficientScope,
			Description: "the access token does not have the required scopes",
		}
	}

	// Fallback: generic error from status code
	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}

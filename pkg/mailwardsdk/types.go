package mailwardsdk

import "time"

// ============================================================================
// Error Types
// ============================================================================

// ErrorResponse is the wire shape of every error the service returns.
// This is used internally for parsing HTTP error responses; client code
// should use the APIError type from errors.go instead.
type ErrorResponse struct {
	// Error is the machine-readable error code (e.g. "token_expired")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// ============================================================================
// Token Types
// ============================================================================

// IssueTokenRequest asks the service to open (or replace) the pending
// verification slot for an (email, kind) pair and send the action email.
type IssueTokenRequest struct {
	// Email is the subject address the action applies to
	Email string `json:"email" validate:"required,email"`

	// Kind is the action kind: email_confirmation, password_reset,
	// invitation or magic_link
	Kind string `json:"kind" validate:"required,oneof=email_confirmation password_reset invitation magic_link"`

	// Locale is an optional BCP 47 tag stored when the subject is first
	// created; it selects the email language. Ignored for existing subjects.
	Locale string `json:"locale,omitempty" validate:"omitempty,bcp47_language_tag"`

	// Metadata is optional caller context (tenant, role, inviter) surfaced
	// on verify and merged into the subject when an invitation completes
	Metadata map[string]string `json:"metadata,omitempty" validate:"omitempty,max=16"`

	// RedirectTo is an optional URL embedded in the action link so the UI
	// can continue the flow after completion
	RedirectTo string `json:"redirect_to,omitempty" validate:"omitempty,url"`
}

// IssueTokenResponse carries the raw credentials for a freshly issued
// pending token. Only returned for email_confirmation and invitation, where
// the authenticated caller created the subject itself. The service keeps
// fingerprints only; losing this response means re-issuing.
type IssueTokenResponse struct {
	// Token is the raw base64url link token embedded in ActionURL
	Token string `json:"token"`

	// Code is the short numeric fallback code from the email body
	Code string `json:"code"`

	// ActionURL is the complete link placed in the email
	ActionURL string `json:"action_url"`

	// Kind echoes the requested action kind
	Kind string `json:"kind"`

	// Email echoes the normalized subject address
	Email string `json:"email"`

	// ExpiresAt is when the credentials stop verifying
	ExpiresAt time.Time `json:"expires_at"`
}

// IssueAcceptedResponse is the fixed body returned for password_reset and
// magic_link issuance. It is identical whether or not the subject exists,
// so the endpoint cannot be used to probe for accounts.
type IssueAcceptedResponse struct {
	// Status is always "accepted"
	Status string `json:"status"`

	// Detail is a fixed human-readable sentence
	Detail string `json:"detail"`
}

// VerifyResponse is the non-consuming answer for a valid credential. The
// same token verifies any number of times until completed or replaced.
type VerifyResponse struct {
	// Outcome is always "ok"; failures arrive as APIError outcome codes
	Outcome string `json:"outcome"`

	// Email is the subject address the pending action belongs to
	Email string `json:"email"`

	// Kind is the pending action kind
	Kind string `json:"kind"`

	// Metadata is the caller context captured at issue time
	Metadata map[string]string `json:"metadata,omitempty"`

	// IssuedAt is when the pending token was created
	IssuedAt time.Time `json:"issued_at"`

	// ExpiresAt is when the pending token stops verifying
	ExpiresAt time.Time `json:"expires_at"`

	// RedirectTo echoes the redirect_to query parameter from the action
	// link, when present
	RedirectTo string `json:"redirect_to,omitempty"`
}

// CompleteRequest consumes a pending token and performs its action.
type CompleteRequest struct {
	// Email is the subject address the action applies to
	Email string `json:"email" validate:"required,email"`

	// Kind is the action kind being completed
	Kind string `json:"kind" validate:"required,oneof=email_confirmation password_reset invitation magic_link"`

	// Token is the presented credential: the link token or the numeric code
	Token string `json:"token" validate:"required"`

	// NewPassword is required for password_reset, optional for invitation,
	// and rejected for the other kinds
	NewPassword string `json:"new_password,omitempty" validate:"omitempty,min=8,max=128"`
}

// CompleteResponse reports a consumed token and the effects that landed.
type CompleteResponse struct {
	// Outcome is always "ok"; failures arrive as APIError outcome codes
	Outcome string `json:"outcome"`

	// Email is the subject address the action applied to
	Email string `json:"email"`

	// Kind is the completed action kind
	Kind string `json:"kind"`

	// SubjectID is the stable identifier of the affected subject
	SubjectID string `json:"subject_id"`

	// CompletedAt is the completion instant recorded on the tombstone
	CompletedAt time.Time `json:"completed_at"`

	// SessionToken is a signed session JWT; only set for magic_link
	SessionToken string `json:"session_token,omitempty"`
}

// PendingTokenInfo describes one pending slot without its credential
// fingerprints, which never leave the service.
type PendingTokenInfo struct {
	// Kind is the action kind occupying the slot
	Kind string `json:"kind"`

	// Metadata is the caller context captured at issue time
	Metadata map[string]string `json:"metadata,omitempty"`

	// IssuedAt is when the slot was (re-)issued
	IssuedAt time.Time `json:"issued_at"`

	// ExpiresAt is when the slot stops verifying
	ExpiresAt time.Time `json:"expires_at"`

	// CompletedAt is set once the action has been performed (tombstone)
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// ListPendingResponse lists a subject's slots, newest first.
type ListPendingResponse struct {
	// Email is the normalized subject address
	Email string `json:"email"`

	// Tokens holds one entry per (email, kind) slot
	Tokens []PendingTokenInfo `json:"tokens"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is the response structure for the health check endpoints.
// Used by both /livez and /readyz (readyz includes the Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results for critical dependencies
	// (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the store connection status
	Database string `json:"database"`

	// Signer indicates the session JWT signing capability status
	Signer string `json:"signer"`

	// Mailer indicates whether an email backend is configured
	Mailer string `json:"mailer"`
}

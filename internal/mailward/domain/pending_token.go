package domain

import "time"

// PendingToken is the single in-flight verification slot for a
// (subject email, kind) pair. Only credential fingerprints are stored;
// the raw token and code exist solely in the issuance response and the
// outbound email.
type PendingToken struct {
	ID           string
	SubjectEmail string
	Kind         ActionKind
	TokenHash    string            // base64url SHA-256 of the link token
	CodeHash     string            // base64url SHA-256 of the short numeric code
	Metadata     map[string]string // caller-supplied, surfaced on verify and merged on invitation completion
	IssuedAt     time.Time
	ExpiresAt    time.Time
	CompletedAt  *time.Time // tombstone; non-nil once the action has been performed
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Completed reports whether the slot has been consumed.
func (t PendingToken) Completed() bool {
	return t.CompletedAt != nil
}

// ExpiredAt reports whether the token is past its validity window at the
// given instant. A token presented exactly at ExpiresAt is still valid.
func (t PendingToken) ExpiredAt(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

package domain

import "time"

// Subject is the account record that email actions operate on. Subjects are
// created lazily on first confirmation or invitation issue and keyed by a
// unique, lowercased email address.
type Subject struct {
	ID                   string // UUID
	Email                string
	Locale               string
	PasswordHash         *string // argon2id encoded, nil until a password is set
	Metadata             map[string]string
	EmailConfirmedAt     *time.Time
	InvitationAcceptedAt *time.Time
	LastSignInAt         *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

package domain

import (
	"fmt"
	"time"
)

// ActionKind identifies the email-driven action a pending token authorizes.
// Exactly one pending token may exist per (subject email, kind) pair.
type ActionKind string

const (
	KindEmailConfirmation ActionKind = "email_confirmation"
	KindPasswordReset     ActionKind = "password_reset"
	KindInvitation        ActionKind = "invitation"
	KindMagicLink         ActionKind = "magic_link"
)

// Default validity windows per kind. Each can be overridden via config.
const (
	DefaultConfirmationTTL = 48 * time.Hour
	DefaultInvitationTTL   = 48 * time.Hour
	DefaultResetTTL        = 1 * time.Hour
	DefaultMagicLinkTTL    = 15 * time.Minute
)

// ParseActionKind converts a wire string into an ActionKind.
// Unknown values are rejected rather than passed through.
func ParseActionKind(s string) (ActionKind, error) {
	switch ActionKind(s) {
	case KindEmailConfirmation, KindPasswordReset, KindInvitation, KindMagicLink:
		return ActionKind(s), nil
	default:
		return "", fmt.Errorf("unknown action kind %q", s)
	}
}

// Kinds returns all supported action kinds.
func Kinds() []ActionKind {
	return []ActionKind{
		KindEmailConfirmation,
		KindPasswordReset,
		KindInvitation,
		KindMagicLink,
	}
}

func (k ActionKind) String() string { return string(k) }

// Valid reports whether k is one of the supported kinds.
func (k ActionKind) Valid() bool {
	_, err := ParseActionKind(string(k))
	return err == nil
}

// CreatesSubject reports whether issuing a token of this kind may create the
// subject record on first contact. Password resets and magic links require an
// existing subject; confirmations and invitations establish one.
func (k ActionKind) CreatesSubject() bool {
	return k == KindEmailConfirmation || k == KindInvitation
}

// DefaultTTL returns the built-in validity window for the kind.
func (k ActionKind) DefaultTTL() time.Duration {
	switch k {
	case KindPasswordReset:
		return DefaultResetTTL
	case KindMagicLink:
		return DefaultMagicLinkTTL
	default:
		return DefaultConfirmationTTL
	}
}

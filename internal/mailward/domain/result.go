package domain

import "time"

// Issuance is what the issue operation returns to a trusted caller: the raw
// credentials plus the composed action link. Raw values are never persisted.
type Issuance struct {
	Token     string
	Code      string
	ActionURL string
	Kind      ActionKind
	Email     string
	ExpiresAt time.Time
}

// Verification is the read-only result of checking a presented credential.
// Producing one mutates nothing; the same token verifies any number of times.
type Verification struct {
	Email     string
	Kind      ActionKind
	Metadata  map[string]string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Completion records a consumed token and the effects that landed with it.
// SessionToken is only set for magic link sign-ins.
type Completion struct {
	Email        string
	Kind         ActionKind
	SubjectID    string
	CompletedAt  time.Time
	SessionToken string
}

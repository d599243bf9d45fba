package store

import (
	"context"
	"errors"
	"time"

	"github.com/veridianlabs/mailward/internal/mailward/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and a transaction entry point for multi-step operations that must
// be atomic (token claim plus subject mutation).
type Store interface {
	Subjects() Subjects
	PendingTokens() PendingTokens

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// This is the recommended way to handle transactions as it automatically
	// handles commit/rollback logic.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources (optional for sqlite).
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Subjects interface {
	// CreateSubject inserts a new subject (id is provided by app via UUID).
	// Returns ErrAlreadyExists if the email is taken.
	CreateSubject(ctx context.Context, s domain.Subject) error

	// GetSubjectByEmail returns a subject by its lowercased email.
	GetSubjectByEmail(ctx context.Context, email string) (domain.Subject, error)

	// SetPasswordHash replaces the password_hash (argon2) and bumps updated_at.
	SetPasswordHash(ctx context.Context, subjectID, hash string) error

	// MarkEmailConfirmed stamps email_confirmed_at. An existing timestamp is
	// preserved so the original confirmation time survives later sign-ins.
	MarkEmailConfirmed(ctx context.Context, subjectID string, at time.Time) error

	// MarkInvitationAccepted stamps invitation_accepted_at.
	MarkInvitationAccepted(ctx context.Context, subjectID string, at time.Time) error

	// MarkSignedIn overwrites last_sign_in_at.
	MarkSignedIn(ctx context.Context, subjectID string, at time.Time) error

	// UpdateMetadata replaces the subject metadata document.
	UpdateMetadata(ctx context.Context, subjectID string, metadata map[string]string) error
}

type PendingTokens interface {
	// UpsertPendingToken writes the single slot for (subject_email, kind).
	// A colliding slot keeps its row identity but has its credentials, expiry
	// and metadata replaced and any completion tombstone cleared, so the
	// latest issuance is the only redeemable one.
	UpsertPendingToken(ctx context.Context, t domain.PendingToken) error

	// GetPendingToken returns the slot for (subject_email, kind) regardless
	// of expiry or completion state. Callers decide what a stale row means.
	GetPendingToken(ctx context.Context, email string, kind domain.ActionKind) (domain.PendingToken, error)

	// MarkPendingTokenCompleted claims the slot by stamping completed_at,
	// conditional on the stored token_hash still matching and the slot not
	// already carrying a tombstone. Returns false when another writer got
	// there first (completed, re-issued, or deleted in the meantime).
	MarkPendingTokenCompleted(ctx context.Context, email string, kind domain.ActionKind, tokenHash string, at time.Time) (bool, error)

	// DeletePendingToken removes the slot outright (administrative cancel).
	DeletePendingToken(ctx context.Context, email string, kind domain.ActionKind) error

	// ListPendingTokensBySubject returns every slot for an email, newest first.
	ListPendingTokensBySubject(ctx context.Context, email string) ([]domain.PendingToken, error)

	// DeleteExpiredPendingTokens removes uncompleted slots whose expiry lies
	// before the cutoff. Housekeeping only.
	DeleteExpiredPendingTokens(ctx context.Context, cutoff time.Time) (int64, error)

	// DeleteCompletedPendingTokens removes tombstones completed before the
	// cutoff, ending their already-completed reporting window. Housekeeping only.
	DeleteCompletedPendingTokens(ctx context.Context, cutoff time.Time) (int64, error)
}

package postgres

import (
	"context"
	"time"

	"github.com/veridianlabs/mailward/internal/mailward/domain"
	"github.com/veridianlabs/mailward/internal/mailward/store"
)

type pendingTokensRepo struct {
	db querier
}

// The conflict arm keeps the row's id and created_at: the slot identity
// survives re-issues, only its credentials and window move forward. Clearing
// completed_at here is what lets a fresh issue resurrect a consumed slot.
const upsertPendingToken = `
INSERT INTO pending_tokens (
    id, subject_email, action_kind, token_hash, code_hash, metadata,
    issued_at, expires_at, completed_at, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULL, $9, $10)
ON CONFLICT (subject_email, action_kind) DO UPDATE SET
    token_hash   = excluded.token_hash,
    code_hash    = excluded.code_hash,
    metadata     = excluded.metadata,
    issued_at    = excluded.issued_at,
    expires_at   = excluded.expires_at,
    completed_at = NULL,
    updated_at   = excluded.updated_at
`

func (r *pendingTokensRepo) UpsertPendingToken(ctx context.Context, t domain.PendingToken) error {
	_, err := r.db.Exec(ctx, upsertPendingToken,
		t.ID,
		t.SubjectEmail,
		string(t.Kind),
		t.TokenHash,
		t.CodeHash,
		t.Metadata,
		t.IssuedAt,
		t.ExpiresAt,
		t.CreatedAt,
		t.UpdatedAt,
	)
	return err
}

const getPendingToken = `
SELECT id, subject_email, action_kind, token_hash, code_hash, metadata,
       issued_at, expires_at, completed_at, created_at, updated_at
FROM pending_tokens
WHERE subject_email = $1 AND action_kind = $2
`

func (r *pendingTokensRepo) GetPendingToken(
	ctx context.Context,
	email string,
	kind domain.ActionKind,
) (domain.PendingToken, error) {
	var (
		t        domain.PendingToken
		kindText string
	)
	err := r.db.QueryRow(ctx, getPendingToken, email, string(kind)).Scan(
		&t.ID,
		&t.SubjectEmail,
		&kindText,
		&t.TokenHash,
		&t.CodeHash,
		&t.Metadata,
		&t.IssuedAt,
		&t.ExpiresAt,
		&t.CompletedAt,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return domain.PendingToken{}, mapNotFound(err)
	}
	t.Kind = domain.ActionKind(kindText)
	return t, nil
}

// MarkPendingTokenCompleted is the single point where a token is consumed.
// The token_hash guard means a slot that was re-issued between read and claim
// cannot be completed by the stale credential, and the completed_at IS NULL
// guard means exactly one concurrent completer wins.
func (r *pendingTokensRepo) MarkPendingTokenCompleted(
	ctx context.Context,
	email string,
	kind domain.ActionKind,
	tokenHash string,
	at time.Time,
) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE pending_tokens
         SET completed_at = $1, updated_at = $2
         WHERE subject_email = $3 AND action_kind = $4 AND token_hash = $5 AND completed_at IS NULL`,
		at, at, email, string(kind), tokenHash,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *pendingTokensRepo) DeletePendingToken(ctx context.Context, email string, kind domain.ActionKind) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM pending_tokens WHERE subject_email = $1 AND action_kind = $2`,
		email, string(kind),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

const listPendingTokensBySubject = `
SELECT id, subject_email, action_kind, token_hash, code_hash, metadata,
       issued_at, expires_at, completed_at, created_at, updated_at
FROM pending_tokens
WHERE subject_email = $1
ORDER BY issued_at DESC
`

func (r *pendingTokensRepo) ListPendingTokensBySubject(
	ctx context.Context,
	email string,
) ([]domain.PendingToken, error) {
	rows, err := r.db.Query(ctx, listPendingTokensBySubject, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []domain.PendingToken
	for rows.Next() {
		var (
			t        domain.PendingToken
			kindText string
		)
		err := rows.Scan(
			&t.ID,
			&t.SubjectEmail,
			&kindText,
			&t.TokenHash,
			&t.CodeHash,
			&t.Metadata,
			&t.IssuedAt,
			&t.ExpiresAt,
			&t.CompletedAt,
			&t.CreatedAt,
			&t.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		t.Kind = domain.ActionKind(kindText)
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

// DeleteExpiredPendingTokens only sweeps live rows. Tombstones stay until the
// completed sweep so already_completed answers outlive the expiry window.
func (r *pendingTokensRepo) DeleteExpiredPendingTokens(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM pending_tokens WHERE completed_at IS NULL AND expires_at < $1`,
		cutoff,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *pendingTokensRepo) DeleteCompletedPendingTokens(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM pending_tokens WHERE completed_at IS NOT NULL AND completed_at < $1`,
		cutoff,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

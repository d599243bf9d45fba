package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/veridianlabs/mailward/internal/mailward/domain"
	"github.com/veridianlabs/mailward/internal/mailward/store"
)

type pendingTokensRepo struct {
	db dbtx
}

// The conflict arm keeps the row's id and created_at: the slot identity
// survives re-issues, only its credentials and window move forward. Clearing
// completed_at here is what lets a fresh issue resurrect a consumed slot.
const upsertPendingToken = `
INSERT INTO pending_tokens (
    id, subject_email, action_kind, token_hash, code_hash, metadata,
    issued_at, expires_at, completed_at, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, NULL, ?, ?)
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
	metadata, err := mapMetadataNull(t.Metadata)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, upsertPendingToken,
		t.ID,
		t.SubjectEmail,
		string(t.Kind),
		t.TokenHash,
		t.CodeHash,
		metadata,
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
WHERE subject_email = ? AND action_kind = ?
`

func (r *pendingTokensRepo) GetPendingToken(
	ctx context.Context,
	email string,
	kind domain.ActionKind,
) (domain.PendingToken, error) {
	rows, err := r.db.QueryContext(ctx, getPendingToken, email, string(kind))
	if err != nil {
		return domain.PendingToken{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return domain.PendingToken{}, err
		}
		return domain.PendingToken{}, store.ErrNotFound
	}
	return scanPendingToken(rows)
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
	res, err := r.db.ExecContext(ctx,
		`UPDATE pending_tokens
         SET completed_at = ?, updated_at = ?
         WHERE subject_email = ? AND action_kind = ? AND token_hash = ? AND completed_at IS NULL`,
		at, at, email, string(kind), tokenHash,
	)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *pendingTokensRepo) DeletePendingToken(ctx context.Context, email string, kind domain.ActionKind) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM pending_tokens WHERE subject_email = ? AND action_kind = ?`,
		email, string(kind),
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

const listPendingTokensBySubject = `
SELECT id, subject_email, action_kind, token_hash, code_hash, metadata,
       issued_at, expires_at, completed_at, created_at, updated_at
FROM pending_tokens
WHERE subject_email = ?
ORDER BY issued_at DESC
`

func (r *pendingTokensRepo) ListPendingTokensBySubject(
	ctx context.Context,
	email string,
) ([]domain.PendingToken, error) {
	rows, err := r.db.QueryContext(ctx, listPendingTokensBySubject, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []domain.PendingToken
	for rows.Next() {
		t, err := scanPendingToken(rows)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

// DeleteExpiredPendingTokens only sweeps live rows. Tombstones stay until the
// completed sweep so already_completed answers outlive the expiry window.
func (r *pendingTokensRepo) DeleteExpiredPendingTokens(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM pending_tokens WHERE completed_at IS NULL AND expires_at < ?`,
		cutoff,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *pendingTokensRepo) DeleteCompletedPendingTokens(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM pending_tokens WHERE completed_at IS NOT NULL AND completed_at < ?`,
		cutoff,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanPendingToken(rows *sql.Rows) (domain.PendingToken, error) {
	var (
		t           domain.PendingToken
		kind        string
		metadata    sql.NullString
		completedAt sql.NullTime
	)

	err := rows.Scan(
		&t.ID,
		&t.SubjectEmail,
		&kind,
		&t.TokenHash,
		&t.CodeHash,
		&metadata,
		&t.IssuedAt,
		&t.ExpiresAt,
		&completedAt,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return domain.PendingToken{}, mapNotFound(err)
	}

	t.Kind = domain.ActionKind(kind)
	t.CompletedAt = mapNullTimePtr(completedAt)

	if t.Metadata, err = mapNullMetadata(metadata); err != nil {
		return domain.PendingToken{}, err
	}

	return t, nil
}

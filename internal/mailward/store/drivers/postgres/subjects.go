package postgres

import (
	"context"
	"time"

	"github.com/veridianlabs/mailward/internal/mailward/domain"
	"github.com/veridianlabs/mailward/internal/mailward/store"
)

type subjectsRepo struct {
	db querier
}

const createSubject = `
INSERT INTO subjects (
    id, email, locale, password_hash, metadata,
    email_confirmed_at, invitation_accepted_at, last_sign_in_at,
    created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`

func (r *subjectsRepo) CreateSubject(ctx context.Context, s domain.Subject) error {
	_, err := r.db.Exec(ctx, createSubject,
		s.ID,
		s.Email,
		s.Locale,
		s.PasswordHash,
		s.Metadata,
		s.EmailConfirmedAt,
		s.InvitationAcceptedAt,
		s.LastSignInAt,
		s.CreatedAt,
		s.UpdatedAt,
	)
	return mapConstraint(err)
}

const getSubjectByEmail = `
SELECT id, email, locale, password_hash, metadata,
       email_confirmed_at, invitation_accepted_at, last_sign_in_at,
       created_at, updated_at
FROM subjects
WHERE email = $1
`

func (r *subjectsRepo) GetSubjectByEmail(ctx context.Context, email string) (domain.Subject, error) {
	var s domain.Subject
	err := r.db.QueryRow(ctx, getSubjectByEmail, email).Scan(
		&s.ID,
		&s.Email,
		&s.Locale,
		&s.PasswordHash,
		&s.Metadata,
		&s.EmailConfirmedAt,
		&s.InvitationAcceptedAt,
		&s.LastSignInAt,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return domain.Subject{}, mapNotFound(err)
	}
	return s, nil
}

func (r *subjectsRepo) SetPasswordHash(ctx context.Context, subjectID, hash string) error {
	return r.exec(ctx,
		`UPDATE subjects SET password_hash = $1, updated_at = $2 WHERE id = $3`,
		hash, time.Now().UTC(), subjectID,
	)
}

// MarkEmailConfirmed keeps an earlier confirmation timestamp if one exists so
// repeat confirmations (magic link sign-ins included) never rewrite history.
func (r *subjectsRepo) MarkEmailConfirmed(ctx context.Context, subjectID string, at time.Time) error {
	return r.exec(ctx,
		`UPDATE subjects SET email_confirmed_at = COALESCE(email_confirmed_at, $1), updated_at = $2 WHERE id = $3`,
		at, time.Now().UTC(), subjectID,
	)
}

func (r *subjectsRepo) MarkInvitationAccepted(ctx context.Context, subjectID string, at time.Time) error {
	return r.exec(ctx,
		`UPDATE subjects SET invitation_accepted_at = $1, updated_at = $2 WHERE id = $3`,
		at, time.Now().UTC(), subjectID,
	)
}

func (r *subjectsRepo) MarkSignedIn(ctx context.Context, subjectID string, at time.Time) error {
	return r.exec(ctx,
		`UPDATE subjects SET last_sign_in_at = $1, updated_at = $2 WHERE id = $3`,
		at, time.Now().UTC(), subjectID,
	)
}

func (r *subjectsRepo) UpdateMetadata(ctx context.Context, subjectID string, metadata map[string]string) error {
	return r.exec(ctx,
		`UPDATE subjects SET metadata = $1, updated_at = $2 WHERE id = $3`,
		metadata, time.Now().UTC(), subjectID,
	)
}

// exec runs an UPDATE keyed on a single subject and maps a zero row count to
// store.ErrNotFound.
func (r *subjectsRepo) exec(ctx context.Context, query string, args ...any) error {
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

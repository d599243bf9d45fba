package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/veridianlabs/mailward/internal/mailward/domain"
	"github.com/veridianlabs/mailward/internal/mailward/store"
)

type subjectsRepo struct {
	db dbtx
}

const createSubject = `
INSERT INTO subjects (
    id, email, locale, password_hash, metadata,
    email_confirmed_at, invitation_accepted_at, last_sign_in_at,
    created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

func (r *subjectsRepo) CreateSubject(ctx context.Context, s domain.Subject) error {
	metadata, err := mapMetadataNull(s.Metadata)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, createSubject,
		s.ID,
		s.Email,
		s.Locale,
		mapOptionalString(s.PasswordHash),
		metadata,
		mapOptionalTime(s.EmailConfirmedAt),
		mapOptionalTime(s.InvitationAcceptedAt),
		mapOptionalTime(s.LastSignInAt),
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
WHERE email = ?
`

func (r *subjectsRepo) GetSubjectByEmail(ctx context.Context, email string) (domain.Subject, error) {
	row := r.db.QueryRowContext(ctx, getSubjectByEmail, email)
	return scanSubject(row)
}

func (r *subjectsRepo) SetPasswordHash(ctx context.Context, subjectID, hash string) error {
	return r.exec(ctx,
		`UPDATE subjects SET password_hash = ?, updated_at = ? WHERE id = ?`,
		hash, time.Now().UTC(), subjectID,
	)
}

// MarkEmailConfirmed keeps an earlier confirmation timestamp if one exists so
// repeat confirmations (magic link sign-ins included) never rewrite history.
func (r *subjectsRepo) MarkEmailConfirmed(ctx context.Context, subjectID string, at time.Time) error {
	return r.exec(ctx,
		`UPDATE subjects SET email_confirmed_at = COALESCE(email_confirmed_at, ?), updated_at = ? WHERE id = ?`,
		at, time.Now().UTC(), subjectID,
	)
}

func (r *subjectsRepo) MarkInvitationAccepted(ctx context.Context, subjectID string, at time.Time) error {
	return r.exec(ctx,
		`UPDATE subjects SET invitation_accepted_at = ?, updated_at = ? WHERE id = ?`,
		at, time.Now().UTC(), subjectID,
	)
}

func (r *subjectsRepo) MarkSignedIn(ctx context.Context, subjectID string, at time.Time) error {
	return r.exec(ctx,
		`UPDATE subjects SET last_sign_in_at = ?, updated_at = ? WHERE id = ?`,
		at, time.Now().UTC(), subjectID,
	)
}

func (r *subjectsRepo) UpdateMetadata(ctx context.Context, subjectID string, metadata map[string]string) error {
	doc, err := mapMetadataNull(metadata)
	if err != nil {
		return err
	}
	return r.exec(ctx,
		`UPDATE subjects SET metadata = ?, updated_at = ? WHERE id = ?`,
		doc, time.Now().UTC(), subjectID,
	)
}

// exec runs an UPDATE keyed on a single subject and maps a zero row count to
// store.ErrNotFound.
func (r *subjectsRepo) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
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

func scanSubject(row *sql.Row) (domain.Subject, error) {
	var (
		s                    domain.Subject
		passwordHash         sql.NullString
		metadata             sql.NullString
		emailConfirmedAt     sql.NullTime
		invitationAcceptedAt sql.NullTime
		lastSignInAt         sql.NullTime
	)

	err := row.Scan(
		&s.ID,
		&s.Email,
		&s.Locale,
		&passwordHash,
		&metadata,
		&emailConfirmedAt,
		&invitationAcceptedAt,
		&lastSignInAt,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return domain.Subject{}, mapNotFound(err)
	}

	s.PasswordHash = mapNullStringPtr(passwordHash)
	s.EmailConfirmedAt = mapNullTimePtr(emailConfirmedAt)
	s.InvitationAcceptedAt = mapNullTimePtr(invitationAcceptedAt)
	s.LastSignInAt = mapNullTimePtr(lastSignInAt)

	if s.Metadata, err = mapNullMetadata(metadata); err != nil {
		return domain.Subject{}, err
	}

	return s, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/veridianlabs/mailward/internal/mailward/domain"
	"github.com/veridianlabs/mailward/internal/mailward/store"
	"github.com/veridianlabs/mailward/pkg/cryptox"
	"github.com/veridianlabs/mailward/pkg/idx"
	"github.com/veridianlabs/mailward/pkg/jwtx"
	"github.com/veridianlabs/mailward/pkg/slogx"
)

var (
	ErrInvalidRequest   = errors.New("invalid token request")
	ErrSubjectNotFound  = errors.New("subject not found")
	ErrTokenNotFound    = errors.New("token not found")
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenMismatch    = errors.New("token mismatch")
	ErrAlreadyCompleted = errors.New("action already completed")
)

// codeDigits is the length of the short numeric fallback code a user can
// type when the email was opened on a different device.
const codeDigits = 6

// MinPasswordLength applies to passwords set during completion.
const MinPasswordLength = 8

// Mailer enqueues a composed action email for background delivery.
type Mailer interface {
	EnqueueActionMail(ctx context.Context, locale string, iss domain.Issuance)
}

// TokenService owns the pending-token lifecycle: issuing credentials,
// verifying them without consuming, and completing the guarded action
// exactly once.
type TokenService struct {
	Store  store.Store
	Mailer Mailer

	// Signer mints magic link session tokens; Issuer names this service in
	// the session claims.
	Signer jwtx.Signer
	Issuer string

	// BaseURL is the public URL action links point at, e.g.
	// "https://app.example.com".
	BaseURL string

	// SessionTTL bounds magic link sessions; zero means jwtx.DefaultSessionTTL.
	SessionTTL time.Duration

	// TTLs overrides the per-kind validity windows; absent kinds use the
	// domain defaults.
	TTLs map[domain.ActionKind]time.Duration

	// DefaultLocale is stored on subjects created without an explicit locale.
	DefaultLocale string

	// Now is the clock; nil means time.Now. Tests pin it to exercise expiry
	// boundaries.
	Now func() time.Time
}

// CompleteParams carries the optional inputs a completion can take.
type CompleteParams struct {
	// NewPassword is required for password_reset, optional for invitation,
	// and rejected for the other kinds.
	NewPassword string
}

// Issue creates or replaces the pending token for (email, kind), persists
// only credential fingerprints, and queues the localized action email.
// The raw token and code exist solely in the returned Issuance and the
// outbound email. Replacing a slot permanently invalidates its previous
// credentials, completed or not.
func (s *TokenService) Issue(
	ctx context.Context,
	email string,
	kind domain.ActionKind,
	locale string,
	metadata map[string]string,
	redirectTo string,
) (domain.Issuance, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input.
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		log.Warn("token issue with invalid email")
		return domain.Issuance{}, ErrInvalidRequest
	}
	if !kind.Valid() {
		log.Warn("token issue with unknown action kind", slog.String("kind", kind.String()))
		return domain.Issuance{}, ErrInvalidRequest
	}

	// 2. Generate the link token and the short fallback code. This happens
	// before any subject lookup so the call does the same work whether or
	// not the subject exists.
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate action token", slog.Any("error", err))
		return domain.Issuance{}, err
	}
	code, err := cryptox.GenerateNumericCode(codeDigits)
	if err != nil {
		log.Error("failed to generate action code", slog.Any("error", err))
		return domain.Issuance{}, err
	}

	// 3. Fingerprint both credentials; only fingerprints are persisted.
	tokenHash := cryptox.FingerprintToken(token)
	codeHash := cryptox.FingerprintToken(code)

	now := s.now()
	expiresAt := now.Add(s.ttl(kind))

	// 4. Upsert the slot, creating the subject first when this kind may do
	// so. Resets and magic links never create subjects; reporting
	// ErrSubjectNotFound is left to the HTTP layer to mask.
	var subjectLocale string
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		subj, err := tx.Subjects().GetSubjectByEmail(ctx, email)
		switch {
		case err == nil:
			subjectLocale = subj.Locale

		case errors.Is(err, store.ErrNotFound):
			if !kind.CreatesSubject() {
				return ErrSubjectNotFound
			}

			// Locale and subject metadata only apply at creation; later
			// issues for the same subject leave them untouched.
			loc := locale
			if loc == "" {
				loc = s.defaultLocale()
			}
			subj = domain.Subject{
				ID:        uuid.NewString(),
				Email:     email,
				Locale:    loc,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := tx.Subjects().CreateSubject(ctx, subj); err != nil {
				return err
			}
			subjectLocale = subj.Locale

		default:
			return err
		}

		return tx.PendingTokens().UpsertPendingToken(ctx, domain.PendingToken{
			ID:           idx.New().String(),
			SubjectEmail: email,
			Kind:         kind,
			TokenHash:    tokenHash,
			CodeHash:     codeHash,
			Metadata:     metadata,
			IssuedAt:     now,
			ExpiresAt:    expiresAt,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	})
	if err != nil {
		if errors.Is(err, ErrSubjectNotFound) {
			log.Info("token issue for unknown subject", slog.String("kind", kind.String()))
			return domain.Issuance{}, ErrSubjectNotFound
		}
		log.Error("failed to persist pending token",
			slog.String("kind", kind.String()),
			slog.Any("error", err),
		)
		return domain.Issuance{}, err
	}

	// 5. Build the action link and queue the localized email. Delivery is
	// asynchronous and never fails the issue call.
	iss := domain.Issuance{
		Token:     token,
		Code:      code,
		ActionURL: s.actionURL(email, kind, token, redirectTo),
		Kind:      kind,
		Email:     email,
		ExpiresAt: expiresAt,
	}

	if s.Mailer != nil {
		s.Mailer.EnqueueActionMail(ctx, subjectLocale, iss)
	}

	log.Info("pending token issued",
		slog.String("email", email),
		slog.String("kind", kind.String()),
		slog.Time("expires_at", expiresAt),
	)

	return iss, nil
}

// Verify checks a presented credential against the pending slot without
// consuming it. Repeated calls return the same answer; link prefetchers and
// duplicate clicks cannot invalidate the token.
func (s *TokenService) Verify(
	ctx context.Context,
	email string,
	kind domain.ActionKind,
	presented string,
) (domain.Verification, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input.
	email = normalizeEmail(email)
	if email == "" || presented == "" || !kind.Valid() {
		return domain.Verification{}, ErrInvalidRequest
	}

	// 2. Fetch the slot. Read-only, no transaction needed.
	t, err := s.Store.PendingTokens().GetPendingToken(ctx, email, kind)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Verification{}, ErrTokenNotFound
		}
		log.Error("failed to fetch pending token", slog.Any("error", err))
		return domain.Verification{}, err
	}

	// 3. Run the decision ladder. A consumed slot is logically absent to
	// read-only checks, so already-completed collapses into not-found here.
	if err := checkPending(t, presented, s.now()); err != nil {
		if errors.Is(err, ErrAlreadyCompleted) {
			err = ErrTokenNotFound
		}
		log.Warn("verification rejected",
			slog.String("kind", kind.String()),
			slog.Any("error", err),
		)
		return domain.Verification{}, err
	}

	return domain.Verification{
		Email:     t.SubjectEmail,
		Kind:      t.Kind,
		Metadata:  t.Metadata,
		IssuedAt:  t.IssuedAt,
		ExpiresAt: t.ExpiresAt,
	}, nil
}

// Complete consumes the pending token and performs the action it guards.
// The conditional tombstone write is the at-most-once serialization point;
// side effects land in the same transaction, so a completion either fully
// happens or leaves the slot claimable.
func (s *TokenService) Complete(
	ctx context.Context,
	email string,
	kind domain.ActionKind,
	presented string,
	params CompleteParams,
) (domain.Completion, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input before touching the slot so a malformed request can
	// never consume a token.
	email = normalizeEmail(email)
	if email == "" || presented == "" || !kind.Valid() {
		return domain.Completion{}, ErrInvalidRequest
	}
	if err := validatePassword(kind, params.NewPassword); err != nil {
		log.Warn("completion with invalid password input", slog.String("kind", kind.String()))
		return domain.Completion{}, err
	}

	// 2. Hash the new password up front. Argon2id is deliberately slow and
	// has no business running inside the store transaction.
	var passwordHash string
	if params.NewPassword != "" {
		hash, err := cryptox.HashPassword(params.NewPassword)
		if err != nil {
			log.Error("failed to hash password", slog.Any("error", err))
			return domain.Completion{}, err
		}
		passwordHash = hash
	}

	now := s.now()
	var completion domain.Completion

	// 3. Claim the slot and apply the action atomically.
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		t, err := tx.PendingTokens().GetPendingToken(ctx, email, kind)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrTokenNotFound
			}
			return err
		}

		// 3a. Same decision ladder as Verify, except a matching credential
		// on a tombstone surfaces as ErrAlreadyCompleted.
		if err := checkPending(t, presented, now); err != nil {
			return err
		}

		// 3b. Stamp the tombstone. Zero rows affected means a concurrent
		// completion or re-issue got there first; re-read to report which.
		claimed, err := tx.PendingTokens().MarkPendingTokenCompleted(ctx, email, kind, t.TokenHash, now)
		if err != nil {
			return err
		}
		if !claimed {
			cur, err := tx.PendingTokens().GetPendingToken(ctx, email, kind)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return ErrTokenNotFound
				}
				return err
			}
			if cur.Completed() && matchCredential(cur, presented) {
				return ErrAlreadyCompleted
			}
			return ErrTokenNotFound
		}

		// 3c. Apply the guarded action. The token row references the
		// subject by email, so a missing subject is a data integrity
		// failure and rolls everything back.
		subj, err := tx.Subjects().GetSubjectByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("pending token without subject: %w", err)
		}

		completion = domain.Completion{
			Email:       email,
			Kind:        kind,
			SubjectID:   subj.ID,
			CompletedAt: now,
		}

		switch kind {
		case domain.KindEmailConfirmation:
			return tx.Subjects().MarkEmailConfirmed(ctx, subj.ID, now)

		case domain.KindPasswordReset:
			return tx.Subjects().SetPasswordHash(ctx, subj.ID, passwordHash)

		case domain.KindInvitation:
			if err := tx.Subjects().MarkInvitationAccepted(ctx, subj.ID, now); err != nil {
				return err
			}
			if err := tx.Subjects().MarkEmailConfirmed(ctx, subj.ID, now); err != nil {
				return err
			}
			// Invitation metadata (tenant, role, inviter) becomes part of
			// the subject record once the invite is accepted.
			if len(t.Metadata) > 0 {
				merged := mergeMetadata(subj.Metadata, t.Metadata)
				if err := tx.Subjects().UpdateMetadata(ctx, subj.ID, merged); err != nil {
					return err
				}
			}
			if passwordHash != "" {
				if err := tx.Subjects().SetPasswordHash(ctx, subj.ID, passwordHash); err != nil {
					return err
				}
			}
			return nil

		case domain.KindMagicLink:
			if err := tx.Subjects().MarkSignedIn(ctx, subj.ID, now); err != nil {
				return err
			}
			if err := tx.Subjects().MarkEmailConfirmed(ctx, subj.ID, now); err != nil {
				return err
			}

			// Mint the session inside the transaction so a signing failure
			// rolls the claim back instead of consuming the link for
			// nothing.
			session, err := s.mintSession(subj, now)
			if err != nil {
				return err
			}
			completion.SessionToken = session
			return nil

		default:
			return ErrInvalidRequest
		}
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrTokenNotFound),
			errors.Is(err, ErrTokenExpired),
			errors.Is(err, ErrTokenMismatch),
			errors.Is(err, ErrAlreadyCompleted):
			log.Warn("completion rejected",
				slog.String("kind", kind.String()),
				slog.Any("error", err),
			)
		default:
			log.Error("failed to complete pending token",
				slog.String("kind", kind.String()),
				slog.Any("error", err),
			)
		}
		return domain.Completion{}, err
	}

	log.Info("pending token completed",
		slog.String("email", email),
		slog.String("kind", kind.String()),
		slog.String("subject_id", completion.SubjectID),
	)

	return completion, nil
}

// Cancel removes the pending slot outright, immediately invalidating any
// credentials issued for it.
func (s *TokenService) Cancel(ctx context.Context, email string, kind domain.ActionKind) error {
	log := slogx.FromContext(ctx)

	email = normalizeEmail(email)
	if email == "" || !kind.Valid() {
		return ErrInvalidRequest
	}

	if err := s.Store.PendingTokens().DeletePendingToken(ctx, email, kind); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTokenNotFound
		}
		log.Error("failed to cancel pending token", slog.Any("error", err))
		return err
	}

	log.Info("pending token cancelled",
		slog.String("email", email),
		slog.String("kind", kind.String()),
	)
	return nil
}

// ListPending returns every pending slot for a subject, newest first. Rows
// carry credential fingerprints; the HTTP layer never serializes them.
func (s *TokenService) ListPending(ctx context.Context, email string) ([]domain.PendingToken, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, ErrInvalidRequest
	}

	return s.Store.PendingTokens().ListPendingTokensBySubject(ctx, email)
}

// checkPending runs the shared verify/complete decision ladder:
//
//  1. tombstoned + matching credential  -> ErrAlreadyCompleted
//  2. tombstoned + wrong credential     -> ErrTokenNotFound
//  3. wrong credential                  -> ErrTokenMismatch
//  4. expired                           -> ErrTokenExpired
//
// The credential match is evaluated before expiry so a wrong credential can
// never learn whether a pending token exists for the pair.
func checkPending(t domain.PendingToken, presented string, now time.Time) error {
	matched := matchCredential(t, presented)

	if t.Completed() {
		if matched {
			return ErrAlreadyCompleted
		}
		return ErrTokenNotFound
	}
	if !matched {
		return ErrTokenMismatch
	}
	if t.ExpiredAt(now) {
		return ErrTokenExpired
	}
	return nil
}

// matchCredential fingerprints the presented value and compares it against
// both stored hashes in constant time. Both comparisons always execute so
// the check cost does not reveal which credential was tried.
func matchCredential(t domain.PendingToken, presented string) bool {
	fp := cryptox.FingerprintToken(presented)
	tokenMatch := cryptox.SecureCompare(fp, t.TokenHash)
	codeMatch := cryptox.SecureCompare(fp, t.CodeHash)
	return tokenMatch || codeMatch
}

// validatePassword enforces the per-kind password rules before any state
// changes: password_reset requires one, invitation accepts one, the other
// kinds reject the field outright.
func validatePassword(kind domain.ActionKind, password string) error {
	switch kind {
	case domain.KindPasswordReset:
		if len(password) < MinPasswordLength {
			return ErrInvalidRequest
		}
	case domain.KindInvitation:
		if password != "" && len(password) < MinPasswordLength {
			return ErrInvalidRequest
		}
	default:
		if password != "" {
			return ErrInvalidRequest
		}
	}
	return nil
}

// mergeMetadata overlays invitation metadata on whatever the subject already
// carries. Token values win on key collisions.
func mergeMetadata(base, overlay map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(overlay))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overlay {
		merged[k] = v
	}
	return merged
}

// mintSession signs the short-lived session token handed out after a
// completed magic link.
func (s *TokenService) mintSession(subj domain.Subject, now time.Time) (string, error) {
	if s.Signer == nil {
		return "", errors.New("service: no session signer configured")
	}

	claims := jwtx.NewClaims(
		subj.ID,
		idx.New().String(),
		nil,
		[]string{"magic_link"},
		subj.Email,
		s.sessionTTL(),
		s.Issuer,
		nil,
		now,
	)
	return s.Signer.Sign(claims)
}

// actionURL builds the link embedded in action emails. The callback page
// collects the query parameters and drives verify/complete against the API.
func (s *TokenService) actionURL(email string, kind domain.ActionKind, token, redirectTo string) string {
	q := url.Values{}
	q.Set("kind", kind.String())
	q.Set("email", email)
	q.Set("token", token)
	if redirectTo != "" {
		q.Set("redirect_to", redirectTo)
	}

	return strings.TrimSuffix(s.BaseURL, "/") + "/auth/callback?" + q.Encode()
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *TokenService) ttl(kind domain.ActionKind) time.Duration {
	if ttl, ok := s.TTLs[kind]; ok && ttl > 0 {
		return ttl
	}
	return kind.DefaultTTL()
}

func (s *TokenService) sessionTTL() time.Duration {
	if s.SessionTTL > 0 {
		return s.SessionTTL
	}
	return jwtx.DefaultSessionTTL
}

func (s *TokenService) defaultLocale() string {
	if s.DefaultLocale != "" {
		return s.DefaultLocale
	}
	return "en"
}

// normalizeEmail lowercases and trims; subjects and slots are keyed by this
// form so lookups are case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

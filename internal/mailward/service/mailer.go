package service

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/veridianlabs/mailward/internal/mailward/domain"
	"github.com/veridianlabs/mailward/internal/mailward/i18n"
	"github.com/veridianlabs/mailward/internal/mailward/mail"
	"github.com/veridianlabs/mailward/pkg/slogx"
)

// Dispatcher is the slice of the mail dispatcher the mailer needs.
type Dispatcher interface {
	Enqueue(msg mail.Message) bool
}

// MailerService renders localized action emails and hands them to the
// dispatcher. Composition is synchronous; delivery is not.
type MailerService struct {
	Catalog    *i18n.Catalog
	Dispatcher Dispatcher
}

// EnqueueActionMail composes the email for an issuance in the subject's
// locale and queues it for delivery. A full queue drops the message with a
// warning; the issuance is already persisted and the caller can re-issue.
func (m *MailerService) EnqueueActionMail(ctx context.Context, locale string, iss domain.Issuance) {
	log := slogx.FromContext(ctx)

	msg := m.Compose(locale, iss)
	if !m.Dispatcher.Enqueue(msg) {
		log.Warn("mail queue full, dropping action email",
			slog.String("kind", iss.Kind.String()),
			slog.String("email", iss.Email),
		)
		return
	}

	log.Debug("action email queued",
		slog.String("kind", iss.Kind.String()),
		slog.String("email", iss.Email),
	)
}

// Compose renders the subject line and both bodies for an issuance. The
// expiry window is expressed in hours and minutes so each template can pick
// the unit that reads naturally for its kind.
func (m *MailerService) Compose(locale string, iss domain.Issuance) mail.Message {
	loc := m.Catalog.MatchLocale(locale)
	window := time.Until(iss.ExpiresAt)

	data := map[string]any{
		"Email":         iss.Email,
		"ActionURL":     iss.ActionURL,
		"Code":          iss.Code,
		"ExpiryHours":   int(math.Round(window.Hours())),
		"ExpiryMinutes": int(math.Round(window.Minutes())),
	}

	kind := iss.Kind.String()
	return mail.Message{
		To:       iss.Email,
		Subject:  m.Catalog.T(loc, kind+"_subject"),
		TextBody: m.Catalog.TData(loc, kind+"_body_text", data),
		HTMLBody: m.Catalog.TData(loc, kind+"_body_html", data),
	}
}

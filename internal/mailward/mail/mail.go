// Package mail provides outbound email delivery for action emails.
//
// A Sender implements a single delivery backend (SMTP, Resend, or a
// log-only sender for development). The Dispatcher wraps a Sender with
// a bounded queue and a background worker so that issuing a token never
// blocks on a slow mail provider.
package mail

import "context"

// Message is a fully composed email ready for delivery. Localization
// and templating happen before a Message is constructed.
type Message struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Sender delivers a single composed message to its recipient.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

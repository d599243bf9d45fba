package mail

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendSender delivers messages through the Resend HTTP API.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender returns a sender backed by the Resend API.
func NewResendSender(apiKey, from, fromName string) (*ResendSender, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend api key is required")
	}
	if from == "" {
		return nil, fmt.Errorf("resend from address is required")
	}
	if fromName != "" {
		from = fmt.Sprintf("%s <%s>", fromName, from)
	}

	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}, nil
}

// Send delivers a single message via the Resend API.
func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Text:    msg.TextBody,
		Html:    msg.HTMLBody,
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("sending email via resend: %w", err)
	}

	return nil
}

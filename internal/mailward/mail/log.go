package mail

import (
	"context"
	"log/slog"
)

// LogSender writes messages to the application log instead of delivering
// them. Useful in development and tests where no mail provider exists;
// the action link and code show up in the log output.
type LogSender struct {
	Logger *slog.Logger
}

// NewLogSender returns a sender that only logs.
func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{Logger: logger}
}

// Send logs the composed message and reports success.
func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.Logger.Info("mail delivery skipped (log sender)",
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.TextBody,
	)
	return nil
}

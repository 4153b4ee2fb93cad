package logsender

import (
	"context"
	"log/slog"

	"github.com/VivekRai08/Jain-Foam-website/internal/domain"
)

// Sender logs each message instead of delivering it.
type Sender struct {
	logger *slog.Logger
}

// New creates a log sender.
func New(logger *slog.Logger) *Sender {
	return &Sender{logger: logger}
}

// Name returns "log".
func (s *Sender) Name() string { return "log" }

// Send logs the envelope and plain-text body.
func (s *Sender) Send(ctx context.Context, msg *domain.EmailMessage) error {
	to := make([]string, 0, len(msg.To))
	for _, addr := range msg.To {
		to = append(to, addr.Email)
	}
	s.logger.InfoContext(ctx, "email not delivered, log transport",
		slog.String("from", msg.From.Email),
		slog.Any("to", to),
		slog.String("subject", msg.Subject),
		slog.String("text", msg.Text),
	)
	return nil
}

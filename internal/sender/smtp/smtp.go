package smtp

import (
	"context"
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"

	"github.com/VivekRai08/Jain-Foam-website/internal/domain"
)

// Config holds SMTP relay settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
}

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Sender delivers email through an SMTP relay as multipart text and HTML.
type Sender struct {
	dialer dialer
	logger *slog.Logger
}

// New creates an SMTP sender.
func New(cfg Config, logger *slog.Logger) *Sender {
	return &Sender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		logger: logger,
	}
}

// Name returns "smtp".
func (s *Sender) Name() string { return "smtp" }

// Send dials the relay and sends msg once. The SMTP exchange itself cannot be
// interrupted, so a cancelled ctx returns early and leaves it to finish.
func (s *Sender) Send(ctx context.Context, msg *domain.EmailMessage) error {
	m := buildMessage(msg)

	done := make(chan error, 1)
	go func() { done <- s.dialer.DialAndSend(m) }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send: %w", err)
		}
		s.logger.DebugContext(ctx, "smtp relay accepted message", slog.String("subject", msg.Subject))
		return nil
	case <-ctx.Done():
		return fmt.Errorf("smtp send: %w", ctx.Err())
	}
}

func buildMessage(msg *domain.EmailMessage) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", msg.From.Email, msg.From.Name)

	to := make([]string, 0, len(msg.To))
	for _, addr := range msg.To {
		to = append(to, m.FormatAddress(addr.Email, addr.Name))
	}
	m.SetHeader("To", to...)

	if msg.ReplyTo != nil {
		m.SetAddressHeader("Reply-To", msg.ReplyTo.Email, msg.ReplyTo.Name)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)
	m.AddAlternative("text/html", msg.HTML)
	return m
}

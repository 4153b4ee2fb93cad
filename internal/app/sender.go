package app

import (
	"log/slog"

	"github.com/VivekRai08/Jain-Foam-website/internal/config"
	"github.com/VivekRai08/Jain-Foam-website/internal/domain"
	"github.com/VivekRai08/Jain-Foam-website/internal/notify"
	"github.com/VivekRai08/Jain-Foam-website/internal/sender"
	"github.com/VivekRai08/Jain-Foam-website/internal/sender/brevo"
	"github.com/VivekRai08/Jain-Foam-website/internal/sender/logsender"
	"github.com/VivekRai08/Jain-Foam-website/internal/sender/smtp"
)

// NewSender returns the email transport selected by EMAIL_TRANSPORT.
func NewSender(cfg *config.Config, logger *slog.Logger) sender.Sender {
	switch cfg.EmailTransport {
	case config.TransportBrevo:
		return brevo.New(brevo.Config{
			APIURL:  cfg.BrevoAPIURL,
			APIKey:  cfg.BrevoAPIKey,
			Timeout: cfg.NotifySendTimeout,
		}, logger)
	case config.TransportSMTP:
		return smtp.New(smtp.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
		}, logger)
	default:
		return logsender.New(logger)
	}
}

// NewDeliverer builds the staff notification pipeline from cfg.
func NewDeliverer(cfg *config.Config, logger *slog.Logger) *notify.Deliverer {
	composer := notify.NewComposer(
		domain.EmailAddress{Name: cfg.SenderName, Email: cfg.SenderEmail},
		domain.EmailAddress{Email: cfg.ContactEmail},
	)
	return notify.NewDeliverer(composer, NewSender(cfg, logger), cfg.NotifySendTimeout, logger)
}

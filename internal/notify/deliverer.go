package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/VivekRai08/Jain-Foam-website/internal/domain"
	"github.com/VivekRai08/Jain-Foam-website/internal/sender"
)

// Deliverer composes and sends one notification. It makes a single attempt.
type Deliverer struct {
	composer *Composer
	sender   sender.Sender
	timeout  time.Duration
	logger   *slog.Logger
}

// NewDeliverer creates a deliverer. A non-positive timeout means no limit
// beyond ctx.
func NewDeliverer(composer *Composer, s sender.Sender, timeout time.Duration, logger *slog.Logger) *Deliverer {
	return &Deliverer{
		composer: composer,
		sender:   s,
		timeout:  timeout,
		logger:   logger,
	}
}

// Deliver sends the staff email for inquiry.
func (d *Deliverer) Deliver(ctx context.Context, inquiry *domain.ContactInquiry) error {
	msg, err := d.composer.Compose(inquiry)
	if err != nil {
		notificationsSent.WithLabelValues(d.sender.Name(), "error").Inc()
		return fmt.Errorf("compose notification: %w", err)
	}

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	transport := d.sender.Name()
	start := time.Now()
	err = d.sender.Send(ctx, msg)
	notificationDuration.WithLabelValues(transport).Observe(time.Since(start).Seconds())
	if err != nil {
		notificationsSent.WithLabelValues(transport, "error").Inc()
		return fmt.Errorf("send notification via %s: %w", transport, err)
	}
	notificationsSent.WithLabelValues(transport, "success").Inc()

	d.logger.InfoContext(ctx, "inquiry notification sent",
		slog.String("inquiry_id", inquiry.ID),
		slog.String("transport", transport),
	)
	return nil
}

package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/VivekRai08/Jain-Foam-website/internal/domain"
	pkgkafka "github.com/VivekRai08/Jain-Foam-website/pkg/kafka"
	"github.com/VivekRai08/Jain-Foam-website/pkg/logger"
)

// ConsumerGroupID is the default consumer group of the notifier.
const ConsumerGroupID = "furnishing-notifier"

// Delivery sends the staff notification for an inquiry.
type Delivery interface {
	Deliver(ctx context.Context, inquiry *domain.ContactInquiry) error
}

// ConsumerHandler turns inquiry events into staff emails.
type ConsumerHandler struct {
	delivery Delivery
	logger   *slog.Logger
}

// NewConsumerHandler creates a consumer handler.
func NewConsumerHandler(delivery Delivery, logger *slog.Logger) *ConsumerHandler {
	return &ConsumerHandler{delivery: delivery, logger: logger}
}

// Handle routes an event by type. Unknown types are ignored.
func (h *ConsumerHandler) Handle(ctx context.Context, event *pkgkafka.Event) error {
	if event.CorrelationID != "" {
		ctx = logger.WithCorrelationID(ctx, event.CorrelationID)
	}

	switch event.EventType {
	case EventInquirySubmitted:
		return h.HandleInquirySubmitted(ctx, event)
	default:
		h.logger.WarnContext(ctx, "unknown event type received",
			slog.String("event_type", event.EventType),
			slog.String("event_id", event.EventID),
		)
		return nil
	}
}

// HandleInquirySubmitted emails staff about the inquiry. A malformed payload
// is returned as an error. A failed send is logged and not retried, so each
// inquiry produces at most one email.
func (h *ConsumerHandler) HandleInquirySubmitted(ctx context.Context, event *pkgkafka.Event) error {
	var data InquirySubmittedData
	if err := event.UnmarshalData(&data); err != nil {
		return fmt.Errorf("decode inquiry.submitted: %w", err)
	}
	if data.ID == "" {
		return fmt.Errorf("decode inquiry.submitted: missing inquiry id")
	}

	if err := h.delivery.Deliver(ctx, data.Inquiry()); err != nil {
		h.logger.ErrorContext(ctx, "inquiry notification failed",
			slog.String("inquiry_id", data.ID),
			slog.String("event_id", event.EventID),
			slog.String("error", err.Error()),
		)
	}
	return nil
}

package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/VivekRai08/Jain-Foam-website/internal/domain"
	pkgkafka "github.com/VivekRai08/Jain-Foam-website/pkg/kafka"
	"github.com/VivekRai08/Jain-Foam-website/pkg/logger"
)

// EventInquirySubmitted is the event type of a stored contact inquiry.
const EventInquirySubmitted = "inquiry.submitted"

// TopicInquirySubmitted is the default topic for inquiry events.
var TopicInquirySubmitted = pkgkafka.Topic("inquiry", "submitted")

// AggregateTypeInquiry is the aggregate type for inquiry events.
const AggregateTypeInquiry = "inquiry"

// SourceSiteAPI identifies events published by the site API.
const SourceSiteAPI = "site-api"

// InquirySubmittedData is the payload of an inquiry.submitted event.
type InquirySubmittedData struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Service   string    `json:"service"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Inquiry rebuilds the stored inquiry from the payload.
func (d InquirySubmittedData) Inquiry() *domain.ContactInquiry {
	return &domain.ContactInquiry{
		ID:        d.ID,
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		Service:   d.Service,
		Message:   d.Message,
		CreatedAt: d.CreatedAt,
	}
}

// Publisher writes events to a topic. *pkgkafka.Producer implements it.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes inquiry events.
type Producer struct {
	kafka  Publisher
	topic  string
	logger *slog.Logger
}

// NewProducer creates an inquiry event producer. A nil kafka makes every
// publish a no-op. An empty topic uses TopicInquirySubmitted.
func NewProducer(kafka Publisher, topic string, logger *slog.Logger) *Producer {
	if topic == "" {
		topic = TopicInquirySubmitted
	}
	return &Producer{kafka: kafka, topic: topic, logger: logger}
}

// PublishInquirySubmitted publishes an inquiry.submitted event.
func (p *Producer) PublishInquirySubmitted(ctx context.Context, inquiry *domain.ContactInquiry) error {
	if p == nil || p.kafka == nil {
		return nil
	}

	data := InquirySubmittedData{
		ID:        inquiry.ID,
		Name:      inquiry.Name,
		Email:     inquiry.Email,
		Phone:     inquiry.Phone,
		Service:   inquiry.Service,
		Message:   inquiry.Message,
		CreatedAt: inquiry.CreatedAt,
	}

	event, err := pkgkafka.NewEvent(EventInquirySubmitted, inquiry.ID, AggregateTypeInquiry, SourceSiteAPI, data)
	if err != nil {
		return fmt.Errorf("create inquiry.submitted event: %w", err)
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		event.WithCorrelationID(id)
	}

	if err := p.kafka.Publish(ctx, p.topic, event); err != nil {
		return fmt.Errorf("publish inquiry.submitted event: %w", err)
	}

	p.logger.DebugContext(ctx, "published inquiry.submitted event",
		slog.String("inquiry_id", inquiry.ID),
		slog.String("event_id", event.EventID),
	)
	return nil
}

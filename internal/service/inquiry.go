package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/VivekRai08/Jain-Foam-website/internal/domain"
	"github.com/VivekRai08/Jain-Foam-website/internal/repository"
	"github.com/VivekRai08/Jain-Foam-website/pkg/validator"
)

// InquiryPublisher emits an event for each stored inquiry.
type InquiryPublisher interface {
	PublishInquirySubmitted(ctx context.Context, inquiry *domain.ContactInquiry) error
}

// Notifier tells staff about a stored inquiry. Notify must not block.
type Notifier interface {
	Notify(ctx context.Context, inquiry *domain.ContactInquiry)
}

// InquiryService accepts contact-form submissions.
type InquiryService struct {
	repo      repository.InquiryRepository
	publisher InquiryPublisher
	notifier  Notifier
	logger    *slog.Logger
}

// NewInquiryService creates an inquiry service. publisher and notifier may be
// nil.
func NewInquiryService(repo repository.InquiryRepository, publisher InquiryPublisher, notifier Notifier, logger *slog.Logger) *InquiryService {
	return &InquiryService{
		repo:      repo,
		publisher: publisher,
		notifier:  notifier,
		logger:    logger,
	}
}

// Submit validates and stores an inquiry, then hands it off for notification.
// A validation failure returns *validator.ValidationError and stores nothing.
// Notification problems never fail the submission.
func (s *InquiryService) Submit(ctx context.Context, input domain.ContactInquiryInput) (*domain.ContactInquiry, error) {
	if err := validator.Validate(input); err != nil {
		return nil, err
	}

	inquiry, err := s.repo.CreateContactInquiry(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("create contact inquiry: %w", err)
	}

	label := inquiry.Service
	if !domain.IsKnownService(label) {
		label = "unlisted"
	}
	inquiriesSubmitted.WithLabelValues(label).Inc()

	s.logger.InfoContext(ctx, "contact inquiry stored",
		slog.String("inquiry_id", inquiry.ID),
		slog.String("service", inquiry.Service),
		slog.Bool("known_service", label != "unlisted"),
	)

	if s.publisher != nil {
		if err := s.publisher.PublishInquirySubmitted(ctx, inquiry); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish inquiry.submitted event",
				slog.String("inquiry_id", inquiry.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	if s.notifier != nil {
		s.notifier.Notify(ctx, inquiry)
	}

	return inquiry, nil
}

// Get returns a stored inquiry.
func (s *InquiryService) Get(ctx context.Context, id string) (*domain.ContactInquiry, error) {
	inquiry, err := s.repo.GetContactInquiry(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get contact inquiry: %w", err)
	}
	return inquiry, nil
}

// Count returns the number of stored inquiries.
func (s *InquiryService) Count(ctx context.Context) (int, error) {
	n, err := s.repo.CountContactInquiries(ctx)
	if err != nil {
		return 0, fmt.Errorf("count contact inquiries: %w", err)
	}
	return n, nil
}

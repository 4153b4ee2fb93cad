package event

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/VivekRai08/Jain-Foam-website/internal/domain"
	pkgkafka "github.com/VivekRai08/Jain-Foam-website/pkg/kafka"
	"github.com/VivekRai08/Jain-Foam-website/pkg/logger"
)

// --- Mocks ---

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, topic string, event *pkgkafka.Event) error {
	return m.Called(ctx, topic, event).Error(0)
}

type mockDelivery struct {
	mock.Mock
}

func (m *mockDelivery) Deliver(ctx context.Context, inquiry *domain.ContactInquiry) error {
	return m.Called(ctx, inquiry).Error(0)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func sampleInquiry() *domain.ContactInquiry {
	return &domain.ContactInquiry{
		ID:        "inq-9",
		Name:      "Ravi",
		Email:     "ravi@example.com",
		Phone:     "9876543210",
		Service:   "Carpets & Rugs",
		Message:   "Looking for a 6x9 designer carpet",
		CreatedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func newTestEvent(t *testing.T, data any) *pkgkafka.Event {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	return &pkgkafka.Event{
		EventID:       "evt-1",
		EventType:     EventInquirySubmitted,
		AggregateID:   "inq-9",
		AggregateType: AggregateTypeInquiry,
		Source:        SourceSiteAPI,
		Data:          raw,
	}
}

// --- Producer ---

func TestTopicInquirySubmitted(t *testing.T) {
	assert.Equal(t, "furnishing.inquiry.submitted", TopicInquirySubmitted)
}

func TestPublishInquirySubmitted(t *testing.T) {
	pub := new(mockPublisher)
	ctx := logger.WithCorrelationID(context.Background(), "corr-9")

	pub.On("Publish", ctx, TopicInquirySubmitted, mock.MatchedBy(func(e *pkgkafka.Event) bool {
		var data InquirySubmittedData
		if err := e.UnmarshalData(&data); err != nil {
			return false
		}
		return e.EventType == EventInquirySubmitted &&
			e.AggregateID == "inq-9" &&
			e.CorrelationID == "corr-9" &&
			data.Email == "ravi@example.com" &&
			data.Service == "Carpets & Rugs"
	})).Return(nil)

	p := NewProducer(pub, "", newTestLogger())
	require.NoError(t, p.PublishInquirySubmitted(ctx, sampleInquiry()))
	pub.AssertExpectations(t)
}

func TestPublishInquirySubmitted_Error(t *testing.T) {
	pub := new(mockPublisher)
	pub.On("Publish", mock.Anything, "custom.topic", mock.Anything).Return(errors.New("broker down"))

	p := NewProducer(pub, "custom.topic", newTestLogger())
	assert.ErrorContains(t, p.PublishInquirySubmitted(context.Background(), sampleInquiry()), "broker down")
}

func TestPublishInquirySubmitted_NilKafka(t *testing.T) {
	p := NewProducer(nil, "", newTestLogger())
	assert.NoError(t, p.PublishInquirySubmitted(context.Background(), sampleInquiry()))

	var nilProducer *Producer
	assert.NoError(t, nilProducer.PublishInquirySubmitted(context.Background(), sampleInquiry()))
}

// --- Consumer ---

func TestHandleInquirySubmitted_Delivers(t *testing.T) {
	d := new(mockDelivery)
	want := sampleInquiry()
	d.On("Deliver", mock.Anything, want).Return(nil)

	h := NewConsumerHandler(d, newTestLogger())
	require.NoError(t, h.Handle(context.Background(), newTestEvent(t, InquirySubmittedData{
		ID: want.ID, Name: want.Name, Email: want.Email, Phone: want.Phone,
		Service: want.Service, Message: want.Message, CreatedAt: want.CreatedAt,
	})))
	d.AssertExpectations(t)
}

func TestHandleInquirySubmitted_SendFailureCommitted(t *testing.T) {
	d := new(mockDelivery)
	d.On("Deliver", mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()

	h := NewConsumerHandler(d, newTestLogger())
	assert.NoError(t, h.Handle(context.Background(), newTestEvent(t, InquirySubmittedData{ID: "inq-9"})))
	d.AssertNumberOfCalls(t, "Deliver", 1)
}

func TestHandleInquirySubmitted_MalformedPayload(t *testing.T) {
	d := new(mockDelivery)
	h := NewConsumerHandler(d, newTestLogger())

	event := newTestEvent(t, "not an object")
	assert.Error(t, h.Handle(context.Background(), event))

	assert.Error(t, h.Handle(context.Background(), newTestEvent(t, InquirySubmittedData{})))
	d.AssertNotCalled(t, "Deliver", mock.Anything, mock.Anything)
}

func TestHandle_CarriesCorrelationID(t *testing.T) {
	d := new(mockDelivery)
	d.On("Deliver", mock.MatchedBy(func(ctx context.Context) bool {
		return logger.CorrelationIDFromContext(ctx) == "corr-1"
	}), mock.Anything).Return(nil)

	event := newTestEvent(t, InquirySubmittedData{ID: "inq-9"})
	event.CorrelationID = "corr-1"

	h := NewConsumerHandler(d, newTestLogger())
	require.NoError(t, h.Handle(context.Background(), event))
	d.AssertExpectations(t)
}

func TestHandle_UnknownEventIgnored(t *testing.T) {
	d := new(mockDelivery)
	h := NewConsumerHandler(d, newTestLogger())

	assert.NoError(t, h.Handle(context.Background(), &pkgkafka.Event{EventType: "order.created"}))
	d.AssertNotCalled(t, "Deliver", mock.Anything, mock.Anything)
}

package notify

import (
	"context"
	"errors"
	htmltemplate "html/template"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VivekRai08/Jain-Foam-website/internal/domain"
	mocksender "github.com/VivekRai08/Jain-Foam-website/internal/sender/mock"
	"github.com/VivekRai08/Jain-Foam-website/pkg/logger"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testComposer() *Composer {
	return NewComposer(
		domain.EmailAddress{Name: "Jain Foam & Furnishing", Email: "jainfoamf@gmail.com"},
		domain.EmailAddress{Name: "Jain Foam & Furnishing", Email: "owner@example.com"},
	)
}

func testInquiry() *domain.ContactInquiry {
	return &domain.ContactInquiry{
		ID:      "inq-1",
		Name:    "Asha Jain",
		Email:   "asha@example.com",
		Phone:   "+91 98765 43210",
		Service: "Sofas",
		Message: "Need a 3-seater\nby next week",
	}
}

// --- Composer ---

func TestCompose(t *testing.T) {
	msg, err := testComposer().Compose(testInquiry())
	require.NoError(t, err)

	assert.Equal(t, "New Contact Inquiry - Sofas", msg.Subject)
	assert.Equal(t, "jainfoamf@gmail.com", msg.From.Email)
	require.Len(t, msg.To, 1)
	assert.Equal(t, "owner@example.com", msg.To[0].Email)
	require.NotNil(t, msg.ReplyTo)
	assert.Equal(t, "asha@example.com", msg.ReplyTo.Email)

	assert.Contains(t, msg.HTML, `<a href="mailto:asha@example.com">asha@example.com</a>`)
	assert.Contains(t, msg.HTML, `href="tel:`)
	assert.Contains(t, msg.HTML, `91%2098765%2043210"`)
	assert.Contains(t, msg.HTML, "Service Interested:</strong> Sofas")
	assert.Contains(t, msg.HTML, htmltemplate.HTMLEscapeString(Footer))
	assert.Contains(t, msg.HTML, "Jain Foam &amp; Furnishing website")

	assert.Contains(t, msg.Text, "Name: Asha Jain")
	assert.Contains(t, msg.Text, "Phone: +91 98765 43210")
	assert.Contains(t, msg.Text, "Need a 3-seater\nby next week")
	assert.Contains(t, msg.Text, Footer)
}

func TestCompose_EscapesUserFields(t *testing.T) {
	inq := testInquiry()
	inq.Name = `<script>alert("x")</script>`
	inq.Message = `<img src=x onerror=alert(1)>`

	msg, err := testComposer().Compose(inq)
	require.NoError(t, err)

	assert.NotContains(t, msg.HTML, "<script>")
	assert.NotContains(t, msg.HTML, "<img")
	assert.Contains(t, msg.HTML, "&lt;script&gt;")
	assert.Contains(t, msg.Text, `<script>alert("x")</script>`)
}

// --- Deliverer ---

func TestDeliver_Success(t *testing.T) {
	s := mocksender.NewSender(nil)
	before := testutil.ToFloat64(notificationsSent.WithLabelValues("mock", "success"))

	d := NewDeliverer(testComposer(), s, time.Second, testLogger())
	require.NoError(t, d.Deliver(context.Background(), testInquiry()))

	sent := s.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "New Contact Inquiry - Sofas", sent[0].Subject)
	assert.Equal(t, before+1, testutil.ToFloat64(notificationsSent.WithLabelValues("mock", "success")))
}

func TestDeliver_FailureSingleAttempt(t *testing.T) {
	s := mocksender.NewSender(errors.New("401 unauthorized"))
	before := testutil.ToFloat64(notificationsSent.WithLabelValues("mock", "error"))

	d := NewDeliverer(testComposer(), s, time.Second, testLogger())
	err := d.Deliver(context.Background(), testInquiry())

	assert.ErrorContains(t, err, "401 unauthorized")
	assert.Len(t, s.Sent(), 1)
	assert.Equal(t, before+1, testutil.ToFloat64(notificationsSent.WithLabelValues("mock", "error")))
}

type deadlineSender struct{ hadDeadline bool }

func (s *deadlineSender) Name() string { return "deadline" }

func (s *deadlineSender) Send(ctx context.Context, _ *domain.EmailMessage) error {
	_, s.hadDeadline = ctx.Deadline()
	return nil
}

func TestDeliver_AppliesTimeout(t *testing.T) {
	s := &deadlineSender{}
	d := NewDeliverer(testComposer(), s, time.Second, testLogger())
	require.NoError(t, d.Deliver(context.Background(), testInquiry()))
	assert.True(t, s.hadDeadline)
}

// --- Dispatcher ---

type funcDelivery func(ctx context.Context, inquiry *domain.ContactInquiry) error

func (f funcDelivery) Deliver(ctx context.Context, inquiry *domain.ContactInquiry) error {
	return f(ctx, inquiry)
}

func TestDispatcher_DeliversInBackground(t *testing.T) {
	var delivered atomic.Int32
	d, err := NewDispatcher(funcDelivery(func(context.Context, *domain.ContactInquiry) error {
		delivered.Add(1)
		return nil
	}), DispatcherConfig{Workers: 2, QueueSize: 10}, testLogger())
	require.NoError(t, err)

	for range 5 {
		d.Notify(context.Background(), testInquiry())
	}
	d.Close()

	assert.Equal(t, int32(5), delivered.Load())
}

func TestDispatcher_DetachedFromRequestContext(t *testing.T) {
	var (
		mu      sync.Mutex
		ctxErr  error
		corrID  string
		release = make(chan struct{})
	)
	d, err := NewDispatcher(funcDelivery(func(ctx context.Context, _ *domain.ContactInquiry) error {
		<-release
		mu.Lock()
		ctxErr = ctx.Err()
		corrID = logger.CorrelationIDFromContext(ctx)
		mu.Unlock()
		return nil
	}), DispatcherConfig{Workers: 1, QueueSize: 1}, testLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(logger.WithCorrelationID(context.Background(), "corr-42"))
	d.Notify(ctx, testInquiry())
	cancel()
	close(release)
	d.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.NoError(t, ctxErr)
	assert.Equal(t, "corr-42", corrID)
}

func TestDispatcher_FullQueueDropsWithoutBlocking(t *testing.T) {
	release := make(chan struct{})
	var delivered atomic.Int32
	d, err := NewDispatcher(funcDelivery(func(context.Context, *domain.ContactInquiry) error {
		<-release
		delivered.Add(1)
		return nil
	}), DispatcherConfig{Workers: 1, QueueSize: 1}, testLogger())
	require.NoError(t, err)

	before := testutil.ToFloat64(notificationsDropped)

	done := make(chan struct{})
	go func() {
		for range 20 {
			d.Notify(context.Background(), testInquiry())
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Notify blocked")
	}

	close(release)
	d.Close()

	dropped := testutil.ToFloat64(notificationsDropped) - before
	assert.Positive(t, dropped)
	assert.Equal(t, float64(20), dropped+float64(delivered.Load()))
}

func TestDispatcher_FailuresAreSwallowed(t *testing.T) {
	var calls atomic.Int32
	d, err := NewDispatcher(funcDelivery(func(context.Context, *domain.ContactInquiry) error {
		calls.Add(1)
		return errors.New("smtp down")
	}), DispatcherConfig{Workers: 1, QueueSize: 4}, testLogger())
	require.NoError(t, err)

	d.Notify(context.Background(), testInquiry())
	d.Close()

	assert.Equal(t, int32(1), calls.Load())
}

func TestDispatcher_NotifyAfterClose(t *testing.T) {
	d, err := NewDispatcher(funcDelivery(func(context.Context, *domain.ContactInquiry) error {
		t.Error("delivery after close")
		return nil
	}), DispatcherConfig{Workers: 1}, testLogger())
	require.NoError(t, err)

	d.Close()
	d.Close()
	assert.NotPanics(t, func() { d.Notify(context.Background(), testInquiry()) })
}

func TestComposer_SubjectUsesServiceVerbatim(t *testing.T) {
	inq := testInquiry()
	inq.Service = "Carpets & Rugs"
	msg, err := testComposer().Compose(inq)
	require.NoError(t, err)
	assert.Equal(t, "New Contact Inquiry - Carpets & Rugs", msg.Subject)
	assert.True(t, strings.Contains(msg.HTML, "Carpets &amp; Rugs"))
}

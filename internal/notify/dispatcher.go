package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/VivekRai08/Jain-Foam-website/internal/domain"
)

// Delivery sends one notification.
type Delivery interface {
	Deliver(ctx context.Context, inquiry *domain.ContactInquiry) error
}

// DispatcherConfig sizes the worker pool and its queue.
type DispatcherConfig struct {
	Workers   int
	QueueSize int
}

type job struct {
	ctx     context.Context
	inquiry *domain.ContactInquiry
}

// Dispatcher runs deliveries in the background on an ants worker pool.
// Notify never blocks: when the queue is full the notification is dropped and
// logged. Delivery errors are logged, never returned.
type Dispatcher struct {
	delivery Delivery
	pool     *ants.Pool
	jobs     chan job
	logger   *slog.Logger

	mu     sync.RWMutex
	closed bool

	feeder   sync.WaitGroup
	inFlight sync.WaitGroup
}

// NewDispatcher starts a dispatcher.
func NewDispatcher(delivery Delivery, cfg DispatcherConfig, logger *slog.Logger) (*Dispatcher, error) {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.QueueSize < 0 {
		cfg.QueueSize = 0
	}

	pool, err := ants.NewPool(cfg.Workers, ants.WithPanicHandler(func(p any) {
		logger.Error("notification worker panicked", slog.Any("panic", p))
	}))
	if err != nil {
		return nil, fmt.Errorf("create notification pool: %w", err)
	}

	d := &Dispatcher{
		delivery: delivery,
		pool:     pool,
		jobs:     make(chan job, cfg.QueueSize),
		logger:   logger,
	}
	d.feeder.Add(1)
	go d.feed()
	return d, nil
}

// Notify queues inquiry for delivery. The job keeps ctx values such as the
// correlation id but not its cancellation.
func (d *Dispatcher) Notify(ctx context.Context, inquiry *domain.ContactInquiry) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		notificationsDropped.Inc()
		d.logger.WarnContext(ctx, "notification dropped, dispatcher closed",
			slog.String("inquiry_id", inquiry.ID),
		)
		return
	}

	select {
	case d.jobs <- job{ctx: context.WithoutCancel(ctx), inquiry: inquiry}:
	default:
		notificationsDropped.Inc()
		d.logger.WarnContext(ctx, "notification dropped, queue full",
			slog.String("inquiry_id", inquiry.ID),
		)
	}
}

// feed moves queued jobs onto the pool, blocking while every worker is busy.
func (d *Dispatcher) feed() {
	defer d.feeder.Done()
	for j := range d.jobs {
		d.inFlight.Add(1)
		if err := d.pool.Submit(func() { d.run(j) }); err != nil {
			d.inFlight.Done()
			notificationsDropped.Inc()
			d.logger.ErrorContext(j.ctx, "notification dropped, pool rejected job",
				slog.String("inquiry_id", j.inquiry.ID),
				slog.String("error", err.Error()),
			)
		}
	}
}

func (d *Dispatcher) run(j job) {
	defer d.inFlight.Done()
	if err := d.delivery.Deliver(j.ctx, j.inquiry); err != nil {
		d.logger.ErrorContext(j.ctx, "inquiry notification failed",
			slog.String("inquiry_id", j.inquiry.ID),
			slog.String("error", err.Error()),
		)
	}
}

// Close stops accepting work and waits for queued and running deliveries.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.jobs)
	d.mu.Unlock()

	d.feeder.Wait()
	d.inFlight.Wait()
	d.pool.Release()
}

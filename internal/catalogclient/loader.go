package catalogclient

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/VivekRai08/Jain-Foam-website/internal/domain"
)

// LoadState is the phase of a ProductLoader.
type LoadState string

const (
	StateLoading LoadState = "loading"
	StateSuccess LoadState = "success"
	StateError   LoadState = "error"
)

// Snapshot is an immutable view of the loader.
type Snapshot struct {
	State    LoadState
	Products []domain.Product
	Err      string
}

// ProductFetcher fetches the product list once.
type ProductFetcher interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// ProductLoader fetches products with bounded retries and publishes each
// state change to its subscribers.
type ProductLoader struct {
	fetcher ProductFetcher
	policy  RetryPolicy
	logger  *slog.Logger
	sleep   func(ctx context.Context, d time.Duration) error

	mu        sync.Mutex
	snap      Snapshot
	listeners []func(Snapshot)
}

// NewProductLoader creates a loader in the loading state.
func NewProductLoader(fetcher ProductFetcher, policy RetryPolicy, logger *slog.Logger) *ProductLoader {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	return &ProductLoader{
		fetcher: fetcher,
		policy:  policy,
		logger:  logger,
		sleep:   sleepContext,
		snap:    Snapshot{State: StateLoading},
	}
}

// OnChange registers fn to receive every new snapshot.
func (l *ProductLoader) OnChange(fn func(Snapshot)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.listeners = append(l.listeners, fn)
}

// Snapshot returns the current state.
func (l *ProductLoader) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return copySnapshot(l.snap)
}

// Load fetches the products, retrying failures per the policy. Once ctx is
// cancelled no further attempt is made and any late result is dropped, so
// the state stays loading.
func (l *ProductLoader) Load(ctx context.Context) error {
	l.set(Snapshot{State: StateLoading})

	for attempt := 1; ; attempt++ {
		products, err := l.fetcher.ListProducts(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err == nil {
			if products == nil {
				products = []domain.Product{}
			}
			l.set(Snapshot{State: StateSuccess, Products: products})
			return nil
		}

		if attempt >= l.policy.MaxAttempts {
			l.logger.ErrorContext(ctx, "failed to load products",
				slog.Int("attempts", attempt),
				slog.String("error", err.Error()),
			)
			l.set(Snapshot{State: StateError, Err: err.Error()})
			return err
		}

		delay := l.policy.Delay(attempt)
		l.logger.WarnContext(ctx, "product fetch failed, retrying",
			slog.Int("attempt", attempt),
			slog.Duration("delay", delay),
			slog.String("error", err.Error()),
		)
		if err := l.sleep(ctx, delay); err != nil {
			return err
		}
	}
}

func (l *ProductLoader) set(s Snapshot) {
	l.mu.Lock()
	if l.snap.State == s.State && s.State == StateLoading {
		l.mu.Unlock()
		return
	}
	l.snap = s
	listeners := make([]func(Snapshot), len(l.listeners))
	copy(listeners, l.listeners)
	l.mu.Unlock()

	for _, fn := range listeners {
		fn(copySnapshot(s))
	}
}

func copySnapshot(s Snapshot) Snapshot {
	if s.Products != nil {
		s.Products = append([]domain.Product(nil), s.Products...)
	}
	return s
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// FilterByCategory returns the products in category. An empty category or
// "All" returns every product.
func FilterByCategory(products []domain.Product, category string) []domain.Product {
	category = strings.TrimSpace(category)
	if category == "" || category == domain.CategoryAll {
		return products
	}
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

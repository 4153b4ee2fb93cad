package catalogclient

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VivekRai08/Jain-Foam-website/internal/domain"
)

type scriptedFetcher struct {
	mu      sync.Mutex
	results []error
	calls   int
	onCall  func(call int)
}

func (f *scriptedFetcher) ListProducts(ctx context.Context) ([]domain.Product, error) {
	f.mu.Lock()
	f.calls++
	call := f.calls
	var err error
	if call <= len(f.results) {
		err = f.results[call-1]
	}
	onCall := f.onCall
	f.mu.Unlock()

	if onCall != nil {
		onCall(call)
	}
	if err != nil {
		return nil, err
	}
	return []domain.Product{{ID: "p1", Name: "Sofa Cover", Category: "Sofas"}}, nil
}

func (f *scriptedFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newTestLoader(f ProductFetcher) (*ProductLoader, *[]time.Duration) {
	l := NewProductLoader(f, DefaultRetryPolicy(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	var waits []time.Duration
	l.sleep = func(ctx context.Context, d time.Duration) error {
		waits = append(waits, d)
		return ctx.Err()
	}
	return l, &waits
}

func TestRetryPolicy_Delay(t *testing.T) {
	p := DefaultRetryPolicy()
	assert.Equal(t, time.Second, p.Delay(1))
	assert.Equal(t, 2*time.Second, p.Delay(2))
	assert.Equal(t, 4*time.Second, p.Delay(3))
	assert.Equal(t, 16*time.Second, p.Delay(5))
	assert.Equal(t, 30*time.Second, p.Delay(6))
	assert.Equal(t, 30*time.Second, p.Delay(64))
}

func TestRetryPolicy_DelayZeroBase(t *testing.T) {
	p := RetryPolicy{MaxAttempts: 3, MaxDelay: 30 * time.Second}
	assert.Zero(t, p.Delay(1))
	assert.Zero(t, p.Delay(2))
	assert.Zero(t, p.Delay(10))
}

func TestRetryPolicy_DelayLargeAttemptCapped(t *testing.T) {
	p := RetryPolicy{MaxAttempts: 3, BaseDelay: time.Hour, MaxDelay: time.Duration(1<<63 - 1)}
	assert.Equal(t, p.MaxDelay, p.Delay(200))
}

func TestProductLoader_InitialLoading(t *testing.T) {
	l, _ := newTestLoader(&scriptedFetcher{})
	assert.Equal(t, StateLoading, l.Snapshot().State)
}

func TestProductLoader_SucceedsAfterTwoFailures(t *testing.T) {
	f := &scriptedFetcher{results: []error{errors.New("HTTP error! status: 500"), errors.New("HTTP error! status: 502")}}
	l, waits := newTestLoader(f)

	var states []LoadState
	l.OnChange(func(s Snapshot) { states = append(states, s.State) })

	require.NoError(t, l.Load(context.Background()))

	assert.Equal(t, 3, f.Calls())
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, *waits)

	snap := l.Snapshot()
	assert.Equal(t, StateSuccess, snap.State)
	assert.Empty(t, snap.Err)
	require.Len(t, snap.Products, 1)
	assert.Equal(t, []LoadState{StateSuccess}, states)
}

func TestProductLoader_GivesUpAfterThreeFailures(t *testing.T) {
	boom := errors.New("HTTP error! status: 503")
	f := &scriptedFetcher{results: []error{boom, boom, boom, nil}}
	l, waits := newTestLoader(f)

	err := l.Load(context.Background())
	require.ErrorIs(t, err, boom)

	assert.Equal(t, 3, f.Calls())
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, *waits)

	snap := l.Snapshot()
	assert.Equal(t, StateError, snap.State)
	assert.Equal(t, "HTTP error! status: 503", snap.Err)
	assert.Empty(t, snap.Products)
}

func TestProductLoader_CancelDuringBackoff(t *testing.T) {
	f := &scriptedFetcher{results: []error{errors.New("down"), nil}}
	l := NewProductLoader(f, DefaultRetryPolicy(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	l.sleep = func(ctx context.Context, d time.Duration) error {
		cancel()
		return sleepContext(ctx, d)
	}

	err := l.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, f.Calls())
	assert.Equal(t, StateLoading, l.Snapshot().State)
}

func TestProductLoader_LateResultDiscarded(t *testing.T) {
	f := &scriptedFetcher{}
	l, _ := newTestLoader(f)

	ctx, cancel := context.WithCancel(context.Background())
	f.onCall = func(int) { cancel() }

	var notified bool
	l.OnChange(func(Snapshot) { notified = true })

	err := l.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StateLoading, l.Snapshot().State)
	assert.Nil(t, l.Snapshot().Products)
	assert.False(t, notified)
}

func TestProductLoader_SnapshotIsCopy(t *testing.T) {
	l, _ := newTestLoader(&scriptedFetcher{})
	require.NoError(t, l.Load(context.Background()))

	snap := l.Snapshot()
	snap.Products[0].Name = "changed"
	assert.Equal(t, "Sofa Cover", l.Snapshot().Products[0].Name)
}

func TestFilterByCategory(t *testing.T) {
	products := []domain.Product{
		{ID: "1", Category: "Mattresses"},
		{ID: "2", Category: "Sofas"},
		{ID: "3", Category: "Mattresses"},
	}

	assert.Len(t, FilterByCategory(products, ""), 3)
	assert.Len(t, FilterByCategory(products, domain.CategoryAll), 3)

	got := FilterByCategory(products, "Mattresses")
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)

	assert.Empty(t, FilterByCategory(products, "Pillows"))
}

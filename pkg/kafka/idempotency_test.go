package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryIdempotencyStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryIdempotencyStore(time.Minute)

	seen, err := store.Contains(ctx, "e1")
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, store.Add(ctx, "e1"))

	seen, err = store.Contains(ctx, "e1")
	require.NoError(t, err)
	assert.True(t, seen)
	assert.Equal(t, 1, store.Len())
}

func TestMemoryIdempotencyStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewMemoryIdempotencyStore(time.Minute)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Add(ctx, "old"))
	now = now.Add(2 * time.Minute)

	seen, err := store.Contains(ctx, "old")
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, store.Add(ctx, "old"))
	require.NoError(t, store.Add(ctx, "new"))
	assert.Equal(t, 2, store.Len())
}

func TestIdempotentHandler_SkipsDuplicates(t *testing.T) {
	store := NewMemoryIdempotencyStore(time.Minute)
	calls := 0
	h := IdempotentHandler(store, func(context.Context, *Event) error {
		calls++
		return nil
	}, discardLogger())

	event := &Event{EventID: "dup-1", EventType: "test.duplicate"}
	require.NoError(t, h(context.Background(), event))
	require.NoError(t, h(context.Background(), event))

	assert.Equal(t, 1, calls)
	assert.Equal(t, float64(1), testutil.ToFloat64(ConsumerMessagesDuplicate.WithLabelValues("test.duplicate")))
}

func TestIdempotentHandler_FailureNotRecorded(t *testing.T) {
	store := NewMemoryIdempotencyStore(time.Minute)
	calls := 0
	h := IdempotentHandler(store, func(context.Context, *Event) error {
		calls++
		if calls == 1 {
			return errors.New("boom")
		}
		return nil
	}, discardLogger())

	event := &Event{EventID: "retry-1", EventType: "x"}
	require.Error(t, h(context.Background(), event))
	require.NoError(t, h(context.Background(), event))
	assert.Equal(t, 2, calls)
}

func TestIdempotentHandler_EmptyIDAlwaysRuns(t *testing.T) {
	store := NewMemoryIdempotencyStore(time.Minute)
	calls := 0
	h := IdempotentHandler(store, func(context.Context, *Event) error {
		calls++
		return nil
	}, discardLogger())

	require.NoError(t, h(context.Background(), &Event{EventType: "x"}))
	require.NoError(t, h(context.Background(), &Event{EventType: "x"}))
	assert.Equal(t, 2, calls)
	assert.Zero(t, store.Len())
}

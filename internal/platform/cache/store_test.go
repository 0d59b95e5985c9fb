package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) ([]string, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return []string{"Mike's Squad", "Sam's Squad"}, nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			teams, err := Load(context.Background(), store, "teams:league:1", loader)
			if err != nil {
				errCh <- err
				return
			}
			if len(teams) != 2 {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	now := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	var calls atomic.Int32
	loader := func(context.Context) (int, error) {
		return int(calls.Add(1)), nil
	}

	first, err := Load(context.Background(), store, "k", loader)
	if err != nil || first != 1 {
		t.Fatalf("first load = %d, %v", first, err)
	}
	cached, _ := Load(context.Background(), store, "k", loader)
	if cached != 1 {
		t.Fatalf("expected cached value, got %d", cached)
	}

	now = now.Add(2 * time.Minute)
	reloaded, _ := Load(context.Background(), store, "k", loader)
	if reloaded != 2 {
		t.Fatalf("expected reload after ttl, got %d", reloaded)
	}
}

func TestStore_LoadErrorIsNotCached(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	boom := errors.New("db down")

	if _, err := Load(context.Background(), store, "k", func(context.Context) (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected load error, got %v", err)
	}
	if _, ok := store.Get(context.Background(), "k"); ok {
		t.Fatalf("failed load must not populate cache")
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore(0)
	ctx := context.Background()
	store.Set(ctx, "teams:league:1", 1)
	store.Set(ctx, "teams:league:2", 2)
	store.Set(ctx, "leagues:current", 3)

	store.DeletePrefix(ctx, "teams:")

	if _, ok := store.Get(ctx, "teams:league:1"); ok {
		t.Fatalf("expected team key to be evicted")
	}
	if _, ok := store.Get(ctx, "leagues:current"); !ok {
		t.Fatalf("expected league key to remain")
	}
}

func TestLoad_TypeMismatch(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	store.Set(context.Background(), "k", "string value")
	if _, err := Load(context.Background(), store, "k", func(context.Context) (int, error) { return 1, nil }); err == nil {
		t.Fatalf("expected type mismatch error")
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")

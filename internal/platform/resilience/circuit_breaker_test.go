package resilience

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	var (
		mu          sync.Mutex
		transitions []CircuitState
	)
	observer := func(name string, _, to CircuitState) {
		if name != "mlbstats" {
			t.Errorf("unexpected breaker name %q", name)
		}
		mu.Lock()
		transitions = append(transitions, to)
		mu.Unlock()
	}
	b := NewCircuitBreaker("mlbstats", CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      5 * time.Second,
		HalfOpenMaxReq:   1,
	}, observer)

	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open state, got %s", state)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful half-open probe, got %s", state)
	}

	mu.Lock()
	defer mu.Unlock()
	want := []CircuitState{CircuitStateOpen, CircuitStateHalfOpen, CircuitStateClosed}
	if len(transitions) != len(want) {
		t.Fatalf("unexpected transitions: %v", transitions)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Fatalf("transition %d = %s, want %s", i, transitions[i], want[i])
		}
	}
}

func TestExecute_IgnoresNonCountableErrors(t *testing.T) {
	errNotFound := errors.New("not found")
	b := NewCircuitBreaker("feed", CircuitBreakerConfig{FailureThreshold: 1}, nil)

	countable := func(err error) bool { return !errors.Is(err, errNotFound) }
	if _, err := Execute(b, countable, func() (int, error) { return 0, errNotFound }); !errors.Is(err, errNotFound) {
		t.Fatalf("expected passthrough error, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("non-countable error should not open breaker, got %s", state)
	}

	if _, err := Execute(b, countable, func() (int, error) { return 0, errors.New("boom") }); err == nil {
		t.Fatalf("expected error")
	}
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open breaker, got %s", state)
	}

	got, err := Execute(b, countable, func() (int, error) { return 1, nil })
	if !errors.Is(err, ErrCircuitOpen) || got != 0 {
		t.Fatalf("expected short-circuit, got %d %v", got, err)
	}
}

func TestExecute_NilBreakerRunsDirectly(t *testing.T) {
	got, err := Execute[int](nil, nil, func() (int, error) { return 7, nil })
	if err != nil || got != 7 {
		t.Fatalf("unexpected result %d %v", got, err)
	}
}

func TestRetryConfig_Backoff(t *testing.T) {
	cfg := RetryConfig{MaxRetries: 3, BaseDelay: 200 * time.Millisecond, MaxDelay: 500 * time.Millisecond}
	cases := map[int]time.Duration{0: 0, 1: 200 * time.Millisecond, 2: 400 * time.Millisecond, 3: 500 * time.Millisecond}
	for attempt, want := range cases {
		if got := cfg.Backoff(attempt); got != want {
			t.Fatalf("Backoff(%d)=%s want %s", attempt, got, want)
		}
	}
}

package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

// TestRetrySucceedsAfterFailures tests recovery within the attempt budget
func TestRetrySucceedsAfterFailures(t *testing.T) {
	config := &RetryConfig{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     10 * time.Millisecond,
		Multiplier:   2.0,
	}

	calls := 0
	err := RetryWithConfig(context.Background(), config, func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Errorf("Expected eventual success, got %v", err)
	}
	if calls != 3 {
		t.Errorf("Expected 3 calls, got %d", calls)
	}
}

// TestRetryExhaustsAttempts tests the terminal error and its unwrapping
func TestRetryExhaustsAttempts(t *testing.T) {
	config := &RetryConfig{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     10 * time.Millisecond,
		Multiplier:   2.0,
	}

	lastErr := errors.New("still broken")
	calls := 0
	err := RetryWithConfig(context.Background(), config, func() error {
		calls++
		return lastErr
	})

	if calls != 3 {
		t.Errorf("Expected 3 calls, got %d", calls)
	}
	var exceeded ErrMaxRetriesExceeded
	if !errors.As(err, &exceeded) {
		t.Fatalf("Expected ErrMaxRetriesExceeded, got %v", err)
	}
	if exceeded.Attempts != 3 {
		t.Errorf("Expected 3 attempts recorded, got %d", exceeded.Attempts)
	}
	if !errors.Is(err, lastErr) {
		t.Errorf("Expected the last error to unwrap")
	}
}

// TestRetryStopsOnNonRetryable tests the RetryIf gate
func TestRetryStopsOnNonRetryable(t *testing.T) {
	fatal := errors.New("permanent")
	config := &RetryConfig{
		MaxAttempts:  5,
		InitialDelay: time.Millisecond,
		MaxDelay:     10 * time.Millisecond,
		Multiplier:   2.0,
		RetryIf:      func(err error) bool { return !errors.Is(err, fatal) },
	}

	calls := 0
	err := RetryWithConfig(context.Background(), config, func() error {
		calls++
		return fatal
	})
	if calls != 1 {
		t.Errorf("Expected a single call for a non-retryable error, got %d", calls)
	}
	if !errors.Is(err, fatal) {
		t.Errorf("Expected the original error back, got %v", err)
	}
}

// TestRetryHonorsContext tests cancellation between attempts
func TestRetryHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	config := &RetryConfig{
		MaxAttempts:  10,
		InitialDelay: 50 * time.Millisecond,
		MaxDelay:     time.Second,
		Multiplier:   2.0,
	}

	calls := 0
	err := RetryWithConfig(ctx, config, func() error {
		calls++
		cancel()
		return errors.New("transient")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected retries to stop at cancellation, got %d calls", calls)
	}
}

// TestIsRetryable tests the default classification
func TestIsRetryable(t *testing.T) {
	if IsRetryable(context.Canceled) || IsRetryable(context.DeadlineExceeded) {
		t.Errorf("Expected context errors to be non-retryable")
	}
	if !IsRetryable(errors.New("transient")) {
		t.Errorf("Expected ordinary errors to be retryable")
	}
}

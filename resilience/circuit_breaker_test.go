package resilience

import (
	"errors"
	"testing"
	"time"
)

// TestCircuitBreakerStates tests circuit breaker state transitions
func TestCircuitBreakerStates(t *testing.T) {
	cb := NewCircuitBreaker(3, 1*time.Second)

	if cb.GetState() != StateClosed {
		t.Errorf("Expected initial state to be closed, got %s", cb.GetState())
	}

	for i := 0; i < 2; i++ {
		if err := cb.Execute(func() error { return nil }); err != nil {
			t.Errorf("Expected successful execution, got error: %v", err)
		}
	}

	if cb.GetState() != StateClosed {
		t.Errorf("Expected state to remain closed after successful calls")
	}
}

// TestCircuitBreakerOpening tests circuit breaker opening after failures
func TestCircuitBreakerOpening(t *testing.T) {
	cb := NewCircuitBreaker(3, 1*time.Second)
	testError := errors.New("test failure")

	for i := 0; i < 3; i++ {
		cb.Execute(func() error { return testError })
	}

	if cb.GetState() != StateOpen {
		t.Errorf("Expected circuit to be open after 3 failures, got %s", cb.GetState())
	}

	err := cb.Execute(func() error { return nil })
	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("Expected ErrCircuitOpen, got %v", err)
	}
}

// TestCircuitBreakerHalfOpen tests half-open state and recovery
func TestCircuitBreakerHalfOpen(t *testing.T) {
	cb := NewCircuitBreaker(2, 100*time.Millisecond)
	testError := errors.New("test failure")

	for i := 0; i < 2; i++ {
		cb.Execute(func() error { return testError })
	}
	if cb.GetState() != StateOpen {
		t.Errorf("Expected circuit to be open")
	}

	time.Sleep(150 * time.Millisecond)

	// The next call probes in half-open and closes the circuit on success.
	err := cb.Execute(func() error { return nil })
	if err != nil {
		t.Errorf("Expected successful execution, got error: %v", err)
	}
	if cb.GetState() != StateClosed {
		t.Errorf("Expected circuit to close after a successful probe, got %s", cb.GetState())
	}
}

// TestCircuitBreakerFailureCount tests failure counting and reset on success
func TestCircuitBreakerFailureCount(t *testing.T) {
	cb := NewCircuitBreaker(5, 1*time.Second)
	testError := errors.New("test failure")

	for i := 0; i < 3; i++ {
		cb.Execute(func() error { return testError })
	}
	if cb.GetFailures() != 3 {
		t.Errorf("Expected 3 failures, got %d", cb.GetFailures())
	}

	cb.Execute(func() error { return nil })
	if cb.GetFailures() != 0 {
		t.Errorf("Expected failures to reset after success, got %d", cb.GetFailures())
	}
}

// TestCircuitBreakerStateChangeCallback tests state change callbacks
func TestCircuitBreakerStateChangeCallback(t *testing.T) {
	cb := NewCircuitBreaker(2, 100*time.Millisecond)

	changes := make(chan string, 4)
	cb.SetOnStateChange(func(from, to State) {
		changes <- from.String() + "->" + to.String()
	})

	testError := errors.New("test failure")
	for i := 0; i < 2; i++ {
		cb.Execute(func() error { return testError })
	}

	select {
	case got := <-changes:
		if got != "closed->open" {
			t.Errorf("Expected closed->open, got %s", got)
		}
	case <-time.After(time.Second):
		t.Errorf("Expected state change callback to be called")
	}
}

// TestCircuitBreakerReset tests manual reset
func TestCircuitBreakerReset(t *testing.T) {
	cb := NewCircuitBreaker(2, 1*time.Second)
	testError := errors.New("test failure")

	for i := 0; i < 2; i++ {
		cb.Execute(func() error { return testError })
	}
	if cb.GetState() != StateOpen {
		t.Errorf("Expected circuit to be open")
	}

	cb.Reset()

	if cb.GetState() != StateClosed {
		t.Errorf("Expected circuit to be closed after reset, got %s", cb.GetState())
	}
	if cb.GetFailures() != 0 {
		t.Errorf("Expected failures to be reset, got %d", cb.GetFailures())
	}
}

// TestCircuitBreakerTrip tests manual trip
func TestCircuitBreakerTrip(t *testing.T) {
	cb := NewCircuitBreaker(5, 1*time.Second)

	cb.Trip()

	if cb.GetState() != StateOpen {
		t.Errorf("Expected circuit to be open after trip, got %s", cb.GetState())
	}
	err := cb.Execute(func() error { return nil })
	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("Expected ErrCircuitOpen, got %v", err)
	}
}

package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDo_Success(t *testing.T) {
	t.Parallel()
	calls := 0
	operation := func() error {
		calls++
		return nil
	}

	attempts, err := Do(context.Background(), operation)

	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt, got: %d", attempts)
	}
	if calls != 1 {
		t.Errorf("Expected 1 call, got: %d", calls)
	}
}

func TestDo_StopsOnFirstSuccess(t *testing.T) {
	t.Parallel()
	calls := 0
	operation := func() error {
		calls++
		if calls < 3 {
			return errors.New("temporary error")
		}
		return nil
	}

	attempts, err := Do(context.Background(), operation, WithMaxRetries(10))

	if err != nil {
		t.Errorf("Expected no error after retries, got: %v", err)
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got: %d", attempts)
	}
	if calls != 3 {
		t.Errorf("Expected the loop to stop at first success, got %d calls", calls)
	}
}

func TestDo_Exhaustion(t *testing.T) {
	t.Parallel()
	calls := 0
	operation := func() error {
		calls++
		return errors.New("persistent error")
	}

	attempts, err := Do(context.Background(), operation, WithMaxRetries(3))

	if err == nil {
		t.Fatal("Expected error after exhausting retries")
	}
	if attempts != 4 {
		t.Errorf("Expected maxRetries+1 = 4 attempts, got: %d", attempts)
	}
	if got := err.Error(); got != "operation failed after 4 attempts: persistent error" {
		t.Errorf("Unexpected error message: %q", got)
	}
}

func TestDo_ZeroRetries(t *testing.T) {
	t.Parallel()
	calls := 0
	operation := func() error {
		calls++
		return errors.New("boom")
	}

	attempts, err := Do(context.Background(), operation, WithMaxRetries(0))

	if err == nil {
		t.Fatal("Expected error")
	}
	if attempts != 1 || calls != 1 {
		t.Errorf("Expected exactly one attempt, got attempts=%d calls=%d", attempts, calls)
	}
}

func TestDo_FatalNotRetried(t *testing.T) {
	t.Parallel()
	calls := 0
	operation := func() error {
		calls++
		return Fatal(errors.New("bad credentials"))
	}

	attempts, err := Do(context.Background(), operation, WithMaxRetries(5))

	if err == nil {
		t.Fatal("Expected error")
	}
	if attempts != 1 || calls != 1 {
		t.Errorf("Fatal error should not be retried, got attempts=%d calls=%d", attempts, calls)
	}
}

func TestDo_NoDelayByDefault(t *testing.T) {
	t.Parallel()
	operation := func() error {
		return errors.New("always fails")
	}

	start := time.Now()
	_, _ = Do(context.Background(), operation, WithMaxRetries(5))

	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("Expected no inter-attempt delay, run took %v", elapsed)
	}
}

func TestDo_BackoffDelays(t *testing.T) {
	t.Parallel()
	calls := 0
	operation := func() error {
		calls++
		if calls < 3 {
			return errors.New("temporary error")
		}
		return nil
	}

	start := time.Now()
	attempts, err := Do(context.Background(), operation,
		WithMaxRetries(5),
		WithInitialDelay(20*time.Millisecond),
		WithMaxDelay(50*time.Millisecond),
		WithMultiplier(2.0),
	)

	if err != nil {
		t.Errorf("Expected success, got: %v", err)
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got: %d", attempts)
	}
	// Two delays: 20ms then 40ms.
	if elapsed := time.Since(start); elapsed < 60*time.Millisecond {
		t.Errorf("Expected backoff delays, run took only %v", elapsed)
	}
}

func TestDo_ContextCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	operation := func() error {
		calls++
		cancel()
		return errors.New("temporary error")
	}

	attempts, err := Do(ctx, operation, WithMaxRetries(5), WithInitialDelay(10*time.Millisecond))

	if err == nil {
		t.Fatal("Expected error")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got: %v", err)
	}
	if attempts != 1 || calls != 1 {
		t.Errorf("Expected no further attempts after cancellation, got attempts=%d calls=%d", attempts, calls)
	}
}

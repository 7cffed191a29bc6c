package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDo_SucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	err := Policy{Attempts: 3}.Do(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("Do returned %v, want nil", err)
	}
	if calls != 3 {
		t.Errorf("op ran %d times, want 3", calls)
	}
}

func TestDo_GivesUpAfterAttempts(t *testing.T) {
	wantErr := errors.New("still broken")
	calls := 0
	err := Policy{Attempts: 2}.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return wantErr
	})

	if !errors.Is(err, wantErr) {
		t.Errorf("Do returned %v, want %v", err, wantErr)
	}
	if calls != 2 {
		t.Errorf("op ran %d times, want 2", calls)
	}
}

func TestDo_PermanentStopsRetrying(t *testing.T) {
	wantErr := errors.New("bad request")
	calls := 0
	err := Policy{Attempts: 5}.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return Permanent(wantErr)
	})

	if !errors.Is(err, wantErr) {
		t.Errorf("Do returned %v, want %v", err, wantErr)
	}
	if calls != 1 {
		t.Errorf("op ran %d times, want 1", calls)
	}
}

func TestDo_AppliesPerAttemptTimeout(t *testing.T) {
	err := Policy{Attempts: 1, Timeout: 10 * time.Millisecond}.Do(context.Background(), func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
			return nil
		}
	})

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Do returned %v, want deadline exceeded", err)
	}
}

package retry

import (
	"context"
	"errors"
	"syscall"
	"testing"
	"time"
)

func TestDoRecoversFromTransient(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), 3, time.Millisecond, func() (string, error) {
		calls++
		if calls < 3 {
			return "", syscall.ECONNREFUSED
		}
		return "ok", nil
	})
	if err != nil || got != "ok" {
		t.Fatalf("expected recovery, got (%q, %v)", got, err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
}

func TestDoStopsOnBusinessError(t *testing.T) {
	boom := errors.New("constraint violated")
	calls := 0
	_, err := Do(context.Background(), 3, time.Millisecond, func() (int, error) {
		calls++
		return 0, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the original error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("business errors must not retry, got %d attempts", calls)
	}
}

func TestDoExhaustsBudget(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), 3, time.Millisecond, func() (int, error) {
		calls++
		return 0, syscall.ECONNRESET
	})
	if !errors.Is(err, syscall.ECONNRESET) {
		t.Fatalf("expected the last transient error, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected the full budget of 3, got %d", calls)
	}
}

func TestDoHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Do(ctx, 5, time.Hour, func() (int, error) {
		return 0, syscall.ECONNRESET
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestTransient(t *testing.T) {
	if Transient(nil) {
		t.Fatal("nil is not transient")
	}
	if Transient(errors.New("duplicate key")) {
		t.Fatal("plain errors are not transient")
	}
	if !Transient(syscall.ETIMEDOUT) {
		t.Fatal("ETIMEDOUT is transient")
	}
}

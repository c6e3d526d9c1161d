package retry

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"
	"time"
)

func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:    attempts,
		InitialDelay:   time.Millisecond,
		MaxDelay:       5 * time.Millisecond,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

func TestWithBackoff_Success(t *testing.T) {
	attempts := 0
	err := WithBackoff(context.Background(), fastConfig(3), func() error {
		attempts++
		return nil
	})
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", attempts)
	}
}

func TestWithBackoff_SuccessAfterRetry(t *testing.T) {
	attempts := 0
	err := WithBackoff(context.Background(), fastConfig(3), func() error {
		attempts++
		if attempts < 3 {
			return fmt.Errorf("ping: %w", syscall.ECONNREFUSED)
		}
		return nil
	})
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestWithBackoff_Exhausted(t *testing.T) {
	attempts := 0
	err := WithBackoff(context.Background(), fastConfig(4), func() error {
		attempts++
		return driver.ErrBadConn
	})
	if !errors.Is(err, driver.ErrBadConn) {
		t.Fatalf("expected wrapped ErrBadConn, got %v", err)
	}
	if attempts != 4 {
		t.Errorf("expected 4 attempts, got %d", attempts)
	}
}

func TestWithBackoff_NonRetryableStopsImmediately(t *testing.T) {
	attempts := 0
	authErr := errors.New("password authentication failed")
	err := WithBackoff(context.Background(), fastConfig(5), func() error {
		attempts++
		return authErr
	})
	if !errors.Is(err, authErr) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", attempts)
	}
}

func TestWithBackoff_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := fastConfig(5)
	cfg.InitialDelay = time.Hour

	attempts := 0
	err := WithBackoff(ctx, cfg, func() error {
		attempts++
		cancel()
		return syscall.ECONNREFUSED
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", attempts)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"deadline", context.DeadlineExceeded, false},
		{"bad conn", driver.ErrBadConn, true},
		{"refused", syscall.ECONNREFUSED, true},
		{"dial", &net.OpError{Op: "dial", Err: errors.New("no route")}, true},
		{"read", &net.OpError{Op: "read", Err: errors.New("eof")}, false},
		{"other", errors.New("syntax error"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestStartupConfig(t *testing.T) {
	cfg := StartupConfig()
	if cfg.MaxAttempts < 2 || cfg.InitialDelay <= 0 || cfg.MaxDelay < cfg.InitialDelay {
		t.Fatalf("unexpected startup config: %+v", cfg)
	}
}

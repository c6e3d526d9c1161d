package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
)

func fastConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          50 * time.Millisecond,
		FailureThreshold: 1.0,
		MinRequests:      3,
	}
}

func TestNew_InitialState(t *testing.T) {
	cb := New(DefaultConfig("test"))

	if cb.Name() != "test" {
		t.Errorf("expected name 'test', got %q", cb.Name())
	}
	if cb.State() != gobreaker.StateClosed {
		t.Errorf("expected Closed, got %s", cb.State())
	}
	if cb.IsOpen() {
		t.Error("expected IsOpen() to be false")
	}
}

func TestCircuitBreaker_TripsAndRecovers(t *testing.T) {
	var transitions []string
	cfg := fastConfig("trip")
	cfg.OnStateChange = func(_ string, from, to gobreaker.State) {
		transitions = append(transitions, from.String()+"->"+to.String())
	}
	cb := New(cfg)
	boom := errors.New("boom")

	for i := 0; i < 3; i++ {
		_, _ = cb.Execute(func() (interface{}, error) { return nil, boom })
	}
	if !cb.IsOpen() {
		t.Fatalf("expected Open after 3 failures, got %s", cb.State())
	}

	_, err := cb.Execute(func() (interface{}, error) { return "unreached", nil })
	if !IsOpenStateError(err) {
		t.Fatalf("expected open-state error, got %v", err)
	}

	time.Sleep(60 * time.Millisecond)
	if _, err := cb.Execute(func() (interface{}, error) { return "ok", nil }); err != nil {
		t.Fatalf("half-open probe failed: %v", err)
	}
	if cb.State() != gobreaker.StateClosed {
		t.Fatalf("expected Closed after successful probe, got %s", cb.State())
	}
	if len(transitions) != 3 {
		t.Errorf("expected 3 transitions, got %v", transitions)
	}
}

func TestCircuitBreaker_CancellationIsNotFailure(t *testing.T) {
	cb := New(fastConfig("cancel"))

	for i := 0; i < 5; i++ {
		_, _ = cb.Execute(func() (interface{}, error) { return nil, context.Canceled })
	}
	if cb.State() != gobreaker.StateClosed {
		t.Fatalf("cancelled calls must not trip the breaker, got %s", cb.State())
	}
}

func TestIsOpenStateError(t *testing.T) {
	if IsOpenStateError(errors.New("other")) {
		t.Error("unrelated error classified as open-state")
	}
	if !IsOpenStateError(gobreaker.ErrTooManyRequests) {
		t.Error("ErrTooManyRequests should be classified as open-state")
	}
}

package ratelimit

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"tagwise/internal/services"
)

type stubGenerator struct {
	calls atomic.Int32
}

func (s *stubGenerator) Generate(context.Context, string) (string, error) {
	s.calls.Add(1)
	return "ok", nil
}

func TestPerMinuteDisabledReturnsNext(t *testing.T) {
	next := &stubGenerator{}
	if got := PerMinute(next, 0); got != next {
		t.Fatalf("expected passthrough, got %T", got)
	}
}

func TestGateAllowsBurstThenBlocks(t *testing.T) {
	next := &stubGenerator{}
	gate := New(next, rate.NewLimiter(rate.Every(time.Hour), 1))

	if _, err := gate.Generate(context.Background(), "p"); err != nil {
		t.Fatalf("first call returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := gate.Generate(ctx, "p")
	if !errors.Is(err, services.ErrTimeout) {
		t.Fatalf("expected timeout marker, got %v", err)
	}
	if next.calls.Load() != 1 {
		t.Fatalf("expected one upstream call, got %d", next.calls.Load())
	}
}

func TestGatePassesThroughWithinLimit(t *testing.T) {
	next := &stubGenerator{}
	gate := New(next, rate.NewLimiter(rate.Inf, 1))
	for i := 0; i < 5; i++ {
		got, err := gate.Generate(context.Background(), "p")
		if err != nil || got != "ok" {
			t.Fatalf("Generate = %q, %v", got, err)
		}
	}
	if next.calls.Load() != 5 {
		t.Fatalf("expected 5 calls, got %d", next.calls.Load())
	}
}

func TestGateMaxWaitBoundsQueueing(t *testing.T) {
	next := &stubGenerator{}
	gate := New(next, rate.NewLimiter(rate.Every(time.Hour), 1), WithMaxWait(20*time.Millisecond))

	if _, err := gate.Generate(context.Background(), "p"); err != nil {
		t.Fatalf("first call returned error: %v", err)
	}

	start := time.Now()
	_, err := gate.Generate(context.Background(), "p")
	if !errors.Is(err, services.ErrTimeout) {
		t.Fatalf("expected timeout marker, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("expected wait to give up near the bound, took %v", elapsed)
	}
	if next.calls.Load() != 1 {
		t.Fatalf("expected one upstream call, got %d", next.calls.Load())
	}
}

func TestPerMinuteAppliesOptions(t *testing.T) {
	next := &stubGenerator{}
	gen := PerMinute(next, 1, WithMaxWait(time.Second))
	gate, ok := gen.(*Gate)
	if !ok {
		t.Fatalf("expected *Gate, got %T", gen)
	}
	if gate.maxWait != time.Second {
		t.Fatalf("expected max wait 1s, got %v", gate.maxWait)
	}
}

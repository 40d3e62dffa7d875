package apiglot

import (
	"context"
	"testing"
	"time"
)

func TestPacer_Wait(t *testing.T) {
	p := NewPacer(50 * time.Millisecond)

	start := time.Now()
	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}

	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("Wait returned too early: %v", elapsed)
	}
}

func TestPacer_ZeroDelay(t *testing.T) {
	p := NewPacer(0)

	start := time.Now()
	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 20*time.Millisecond {
		t.Errorf("zero delay should not block, took %v", elapsed)
	}

	if NewPacer(-time.Second).Delay() != 0 {
		t.Error("negative delay should be clamped to zero")
	}
}

func TestPacer_NilIsNoop(t *testing.T) {
	var p *Pacer
	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("nil pacer Wait failed: %v", err)
	}
	if p.Delay() != 0 {
		t.Error("nil pacer should report zero delay")
	}
}

func TestPacer_ContextCancelled(t *testing.T) {
	p := NewPacer(10 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := p.Wait(ctx)

	if err != context.DeadlineExceeded {
		t.Errorf("expected DeadlineExceeded, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Wait should return promptly on cancel, took %v", elapsed)
	}
}

func TestPacer_UsesClock(t *testing.T) {
	p := NewPacer(time.Hour)

	var asked time.Duration
	p.after = func(d time.Duration) <-chan time.Time {
		asked = d
		ch := make(chan time.Time, 1)
		ch <- time.Now()
		return ch
	}

	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if asked != time.Hour {
		t.Errorf("expected to wait 1h, asked %v", asked)
	}
}

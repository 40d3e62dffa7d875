package apiglot

import (
	"context"
	"time"
)

// DefaultRequestDelay is the pause between two translation requests.
const DefaultRequestDelay = time.Second

// Pacer spaces out requests to the translation API with a fixed delay.
// It does not negotiate rate limits with the server.
type Pacer struct {
	delay time.Duration
	after func(time.Duration) <-chan time.Time
}

// NewPacer creates a pacer that waits delay on every call to Wait.
// A zero or negative delay disables pacing.
func NewPacer(delay time.Duration) *Pacer {
	if delay < 0 {
		delay = 0
	}
	return &Pacer{delay: delay, after: time.After}
}

// Wait blocks for the configured delay or until ctx is cancelled.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil || p.delay == 0 {
		return ctx.Err()
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.after(p.delay):
		return nil
	}
}

// Delay returns the configured delay.
func (p *Pacer) Delay() time.Duration {
	if p == nil {
		return 0
	}
	return p.delay
}

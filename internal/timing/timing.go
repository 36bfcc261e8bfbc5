// internal/timing/timing.go
package timing

import (
	"context"
	"errors"
	"time"
)

// Source delivers the timing edges every driver suspension point
// synchronizes on. WaitEdge blocks until the next edge or until ctx is
// cancelled, in which case it returns ctx.Err().
type Source interface {
	WaitEdge(ctx context.Context) error
}

// Ticker is a wall-clock Source with a fixed edge period.
type Ticker struct {
	t *time.Ticker
}

// NewTicker creates a Ticker emitting one edge per period.
func NewTicker(period time.Duration) (*Ticker, error) {
	if period <= 0 {
		return nil, errors.New("timing: period must be > 0")
	}
	return &Ticker{t: time.NewTicker(period)}, nil
}

func (s *Ticker) WaitEdge(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.t.C:
		return nil
	}
}

// Close stops the underlying ticker. WaitEdge must not be called after
// Close.
func (s *Ticker) Close() {
	s.t.Stop()
}

package lib

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Stopwatch reports elapsed puzzle time at a fixed interval.
type Stopwatch struct {
	StartMs  float64       // Elapsed milliseconds already on the clock when Run starts
	Interval time.Duration // Time between ticks
	Limit    time.Duration // Stop after this much running time (0 runs until cancelled)

	now func() time.Time
}

// TickFunc receives the elapsed milliseconds and their formatted clock string.
type TickFunc func(elapsedMs float64, clock string)

// Run calls tick once immediately and then on every interval until ctx is
// done or Limit is reached. When Limit is reached the final tick reports
// exactly StartMs+Limit and Run returns nil; otherwise it returns ctx.Err().
func (s *Stopwatch) Run(ctx context.Context, tick TickFunc) error {
	if s.Interval <= 0 {
		return fmt.Errorf("invalid tick interval %v", s.Interval)
	}
	if s.Limit < 0 {
		return fmt.Errorf("invalid time limit %v", s.Limit)
	}

	now := s.now
	if now == nil {
		now = time.Now
	}

	begin := now()
	tick(s.StartMs, FormatElapsed(s.StartMs))

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	slog.Debug("Stopwatch started", "startMs", s.StartMs, "interval", s.Interval, "limit", s.Limit)

	for {
		select {
		case <-ticker.C:
			running := now().Sub(begin)
			if s.Limit > 0 && running >= s.Limit {
				final := s.StartMs + float64(s.Limit.Milliseconds())
				tick(final, FormatElapsed(final))
				slog.Debug("Stopwatch reached its limit", "elapsedMs", final)
				return nil
			}

			elapsed := s.StartMs + float64(running.Milliseconds())
			tick(elapsed, FormatElapsed(elapsed))

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

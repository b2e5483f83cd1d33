package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/kickoff/go/internal/metrics"
	"github.com/rs/zerolog/log"
)

// Limiter enforces a minimum gap between consecutive calls to one provider.
// Callers are served one at a time in the order they acquire the lock.
type Limiter struct {
	name     string
	interval time.Duration
	clock    clockwork.Clock

	mu   sync.Mutex
	last time.Time
}

// New creates a limiter for the named provider. A nil clock uses the real clock.
func New(name string, interval time.Duration, clock clockwork.Clock) *Limiter {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Limiter{
		name:     name,
		interval: interval,
		clock:    clock,
	}
}

// Name returns the provider name the limiter was created for
func (l *Limiter) Name() string {
	return l.name
}

// Interval returns the configured minimum gap
func (l *Limiter) Interval() time.Duration {
	return l.interval
}

// Wait blocks until at least the configured interval has passed since the
// previous Wait returned. It never fails: a cancelled context returns early.
func (l *Limiter) Wait(ctx context.Context) {
	if l == nil || l.interval <= 0 {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.last.IsZero() {
		if remaining := l.interval - l.clock.Since(l.last); remaining > 0 {
			timer := l.clock.NewTimer(remaining)
			select {
			case <-ctx.Done():
				timer.Stop()
				log.Debug().Str("provider", l.name).Msg("rate limiter wait cancelled")
				return
			case <-timer.Chan():
			}
			metrics.RateLimitWaitSeconds.WithLabelValues(l.name).Observe(remaining.Seconds())
		}
	}

	l.last = l.clock.Now()
}

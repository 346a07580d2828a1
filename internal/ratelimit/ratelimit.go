// Package ratelimit paces provider requests so a batch stays under a
// provider's requests-per-minute allowance.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"tagwise/internal/services"
	"tagwise/internal/services/llm"
)

// Gate delays calls to the wrapped generator until the limiter admits them.
type Gate struct {
	next    llm.TextGenerator
	limiter *rate.Limiter
	maxWait time.Duration
}

// Option customizes a Gate.
type Option func(*Gate)

// WithMaxWait bounds how long Generate queues for a token. A non-positive
// value leaves the wait bounded only by the caller's context.
func WithMaxWait(d time.Duration) Option {
	return func(g *Gate) {
		g.maxWait = d
	}
}

// PerMinute wraps next with a limiter allowing perMinute requests per minute
// with a burst of one. A non-positive perMinute returns next unchanged.
func PerMinute(next llm.TextGenerator, perMinute int, opts ...Option) llm.TextGenerator {
	if next == nil || perMinute <= 0 {
		return next
	}
	return New(next, rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1), opts...)
}

// New wraps next with an explicit limiter.
func New(next llm.TextGenerator, limiter *rate.Limiter, opts ...Option) *Gate {
	g := &Gate{next: next, limiter: limiter}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Generate waits for a token, then calls the wrapped generator. A wait that
// outlasts the context or the max wait yields a timeout error.
func (g *Gate) Generate(ctx context.Context, prompt string) (string, error) {
	waitCtx := ctx
	if g.maxWait > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, g.maxWait)
		defer cancel()
	}
	if err := g.limiter.Wait(waitCtx); err != nil {
		return "", services.Wrap(services.ErrTimeout, "ratelimit", "wait", "rate limit wait aborted", err)
	}
	return g.next.Generate(ctx, prompt)
}

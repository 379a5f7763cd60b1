package classify

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer spaces captioning-service calls at a minimum interval. A nil Pacer
// or a zero interval never delays.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer builds a pacer allowing one call per minInterval.
func NewPacer(minInterval time.Duration) *Pacer {
	if minInterval <= 0 {
		return nil
	}
	return &Pacer{limiter: rate.NewLimiter(rate.Every(minInterval), 1)}
}

// Wait blocks until the next call is allowed or ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil || p.limiter == nil {
		return ctx.Err()
	}
	return p.limiter.Wait(ctx)
}

package geocode

import (
	"context"
	"sync"

	"github.com/fwojciec/orgsearch"
	"golang.org/x/time/rate"
)

var _ orgsearch.RateLimiter = (*ProviderLimiter)(nil)

// ProviderLimiter rate limits requests per geocoding provider using token
// buckets. Each provider name gets its own limiter with a burst of 1.
type ProviderLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewProviderLimiter creates a ProviderLimiter allowing rps requests per
// second to each provider.
func NewProviderLimiter(rps float64) *ProviderLimiter {
	return &ProviderLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the provider's limit allows a request.
// Returns an error if the context is canceled before the wait completes.
func (p *ProviderLimiter) Wait(ctx context.Context, provider string) error {
	p.mu.Lock()
	limiter, ok := p.limiters[provider]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(p.rps), 1)
		p.limiters[provider] = limiter
	}
	p.mu.Unlock()

	return limiter.Wait(ctx)
}

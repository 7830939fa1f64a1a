package fetch

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/hirelens/hirelens/config"
)

// hostLimits holds one token bucket per rate key. Provider adapters share
// a key per API host (for example all Greenhouse tenants hit
// boards-api.greenhouse.io), so the bucket bounds requests per second to
// the upstream regardless of how many companies are in flight.
type hostLimits struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rates    config.RateLimitConfig
}

func newHostLimits(rates config.RateLimitConfig) *hostLimits {
	return &hostLimits{
		limiters: make(map[string]*rate.Limiter),
		rates:    rates,
	}
}

// Wait blocks until the bucket for key grants a token or ctx ends.
func (h *hostLimits) Wait(ctx context.Context, key string) error {
	return h.limiter(key).Wait(ctx)
}

func (h *hostLimits) limiter(key string) *rate.Limiter {
	h.mu.Lock()
	defer h.mu.Unlock()

	if lim, ok := h.limiters[key]; ok {
		return lim
	}

	// Burst stays at 1 so any one-second window sees at most rps+1
	// dispatches: one stored token plus the refill.
	lim := rate.NewLimiter(rate.Limit(h.rates.ForKey(key)), 1)
	h.limiters[key] = lim
	return lim
}

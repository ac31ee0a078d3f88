package util

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// HostLimiter throttles outbound fetches per provider hostname, so a large
// roster pointed at one platform (dozens of *.breezy.hr tenants, say) still
// paces its requests.
type HostLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	perHost rate.Limit
	burst   int
}

func NewHostLimiter(reqPerSec float64, burst int) *HostLimiter {
	return &HostLimiter{
		buckets: map[string]*rate.Limiter{},
		perHost: rate.Limit(reqPerSec),
		burst:   burst,
	}
}

// fallbackHost pools requests whose URL never parsed; they still wait.
const fallbackHost = "?"

// WaitURL blocks until the bucket for raw's host has a token, or ctx ends.
func (hl *HostLimiter) WaitURL(ctx context.Context, raw string) error {
	host := fallbackHost
	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		host = u.Host
	}
	return hl.bucket(host).Wait(ctx)
}

func (hl *HostLimiter) bucket(host string) *rate.Limiter {
	hl.mu.Lock()
	defer hl.mu.Unlock()
	b, ok := hl.buckets[host]
	if !ok {
		b = rate.NewLimiter(hl.perHost, hl.burst)
		hl.buckets[host] = b
	}
	return b
}

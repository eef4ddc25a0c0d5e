// Package middleware holds the per-client HTTP rate limiter.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"pycourse/internal/handler/http/respond"
	"pycourse/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"
)

var errRateLimited = errors.New("rate limit exceeded")

var rateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "http_rate_limited_total",
	Help: "Requests rejected by the per-client rate limiter",
})

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps one token bucket per client address.
type IPRateLimiter struct {
	cfg     config.RateLimitConfig
	proxies TrustedProxies

	mu      sync.Mutex
	clients map[string]*client
	now     func() time.Time
}

// NewIPRateLimiter validates cfg.TrustedProxies and builds the limiter.
func NewIPRateLimiter(cfg config.RateLimitConfig) (*IPRateLimiter, error) {
	proxies, err := ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		return nil, err
	}
	return &IPRateLimiter{
		cfg:     cfg,
		proxies: proxies,
		clients: make(map[string]*client),
		now:     time.Now,
	}, nil
}

// Middleware answers 429 with Retry-After once a client's bucket is empty.
// A disabled limiter passes every request through.
func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	if !l.cfg.Enabled {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := ClientIP(r, l.proxies)
		res := l.reserve(ip)
		if res == nil {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.cfg.Burst))
		delay := res.DelayFrom(l.now())
		if delay > 0 {
			res.CancelAt(l.now())
			rateLimitedTotal.Inc()
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(delay.Seconds()))))
			respond.SafeError(w, http.StatusTooManyRequests, errRateLimited)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// reserve takes a token for ip. It returns nil when the client table is full
// and no slot can be freed; such requests are let through.
func (l *IPRateLimiter) reserve(ip string) *rate.Reservation {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	c, ok := l.clients[ip]
	if !ok {
		if len(l.clients) >= l.cfg.MaxClients {
			l.sweepLocked(now)
		}
		if len(l.clients) >= l.cfg.MaxClients {
			slog.Warn("rate limiter client table full, allowing request",
				slog.Int("max_clients", l.cfg.MaxClients))
			return nil
		}
		c = &client{limiter: rate.NewLimiter(rate.Limit(l.cfg.RequestsPerSecond), l.cfg.Burst)}
		l.clients[ip] = c
	}
	c.lastSeen = now
	return c.limiter.ReserveN(now, 1)
}

// Cleanup drops clients idle for longer than IdleTTL and returns how many
// were removed.
func (l *IPRateLimiter) Cleanup() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sweepLocked(l.now())
}

func (l *IPRateLimiter) sweepLocked(now time.Time) int {
	removed := 0
	for ip, c := range l.clients {
		if now.Sub(c.lastSeen) > l.cfg.IdleTTL {
			delete(l.clients, ip)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked clients.
func (l *IPRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// Run calls Cleanup every interval until ctx is done.
func (l *IPRateLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("rate limit cleanup started", slog.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			slog.Info("rate limit cleanup stopped")
			return
		case <-ticker.C:
			if n := l.Cleanup(); n > 0 {
				slog.Debug("rate limit cleanup completed", slog.Int("removed", n))
			}
		}
	}
}

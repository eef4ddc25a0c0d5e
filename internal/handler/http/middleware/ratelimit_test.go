package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"pycourse/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/* ───────── テストヘルパー ───────── */

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestLimiter(t *testing.T, mutate func(*config.RateLimitConfig)) (*IPRateLimiter, *fakeClock) {
	t.Helper()
	cfg := config.RateLimitConfig{
		Enabled:           true,
		RequestsPerSecond: 1,
		Burst:             2,
		MaxClients:        100,
		IdleTTL:           time.Minute,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	l, err := NewIPRateLimiter(cfg)
	require.NoError(t, err)
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	l.now = clock.Now
	return l, clock
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func hit(h http.Handler, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/modules", nil)
	req.RemoteAddr = remote
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

/* ───────── テスト本体 ───────── */

func TestIPRateLimiter_BurstThenReject(t *testing.T) {
	l, clock := newTestLimiter(t, nil)
	h := l.Middleware(okHandler)

	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1000").Code)
	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1001").Code)

	rr := hit(h, "10.0.0.1:1002")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"rate limit exceeded"}`, rr.Body.String())

	// another client has its own bucket
	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.2:1000").Code)

	clock.Advance(time.Second)
	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1003").Code)
}

func TestIPRateLimiter_Disabled(t *testing.T) {
	l, _ := newTestLimiter(t, func(c *config.RateLimitConfig) { c.Enabled = false })
	h := l.Middleware(okHandler)

	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1000").Code)
	}
	assert.Equal(t, 0, l.Len())
}

func TestIPRateLimiter_Cleanup(t *testing.T) {
	l, clock := newTestLimiter(t, nil)
	h := l.Middleware(okHandler)

	hit(h, "10.0.0.1:1")
	clock.Advance(30 * time.Second)
	hit(h, "10.0.0.2:1")
	clock.Advance(45 * time.Second)

	assert.Equal(t, 1, l.Cleanup())
	assert.Equal(t, 1, l.Len())
}

func TestIPRateLimiter_FullTableFailsOpen(t *testing.T) {
	l, _ := newTestLimiter(t, func(c *config.RateLimitConfig) {
		c.MaxClients = 1
		c.Burst = 1
	})
	h := l.Middleware(okHandler)

	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1").Code)
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(h, "10.0.0.2:1").Code)
	}
	assert.Equal(t, 1, l.Len())
}

func TestIPRateLimiter_Run(t *testing.T) {
	l, clock := newTestLimiter(t, nil)
	hit(l.Middleware(okHandler), "10.0.0.1:1")
	clock.Advance(2 * time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return l.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}

func TestNewIPRateLimiter_InvalidProxy(t *testing.T) {
	_, err := NewIPRateLimiter(config.RateLimitConfig{TrustedProxies: []string{"not-an-ip"}})
	assert.Error(t, err)
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-api/internal/observability/metrics"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestLimiter(perMinute, burst int) (*RateLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(RateLimitConfig{RequestsPerMinute: perMinute, Burst: burst})
	rl.now = clock.now
	rl.lastSweep = clock.t
	return rl, clock
}

func hit(h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/v1/posts", nil)
	req.RemoteAddr = remoteAddr
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRateLimiter_BurstThenReject(t *testing.T) {
	rl, _ := newTestLimiter(60, 3)
	h := rl.Middleware(okHandler())
	before := testutil.ToFloat64(metrics.RateLimitRejectedTotal)

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, hit(h, "192.0.2.1:1234").Code, "request %d", i+1)
	}

	rr := hit(h, "192.0.2.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("Retry-After"))
	assert.Contains(t, rr.Body.String(), `"code":"TOO_MANY_REQUESTS"`)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.RateLimitRejectedTotal))
}

func TestRateLimiter_RefillsOverTime(t *testing.T) {
	rl, clock := newTestLimiter(60, 1)
	h := rl.Middleware(okHandler())

	require.Equal(t, http.StatusOK, hit(h, "192.0.2.1:1").Code)
	require.Equal(t, http.StatusTooManyRequests, hit(h, "192.0.2.1:1").Code)

	clock.t = clock.t.Add(time.Second)
	assert.Equal(t, http.StatusOK, hit(h, "192.0.2.1:1").Code)
}

func TestRateLimiter_RejectedRequestsDoNotConsume(t *testing.T) {
	rl, clock := newTestLimiter(60, 1)
	h := rl.Middleware(okHandler())

	require.Equal(t, http.StatusOK, hit(h, "192.0.2.1:1").Code)
	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusTooManyRequests, hit(h, "192.0.2.1:1").Code)
	}

	clock.t = clock.t.Add(time.Second)
	assert.Equal(t, http.StatusOK, hit(h, "192.0.2.1:1").Code)
}

func TestRateLimiter_PerClient(t *testing.T) {
	rl, _ := newTestLimiter(60, 1)
	h := rl.Middleware(okHandler())

	assert.Equal(t, http.StatusOK, hit(h, "192.0.2.1:1").Code)
	assert.Equal(t, http.StatusOK, hit(h, "192.0.2.2:1").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(h, "192.0.2.1:9999").Code)
	assert.Equal(t, 2, rl.Clients())
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	rl, clock := newTestLimiter(60, 1)
	h := rl.Middleware(okHandler())

	hit(h, "192.0.2.1:1")
	hit(h, "192.0.2.2:1")
	require.Equal(t, 2, rl.Clients())

	clock.t = clock.t.Add(11 * time.Minute)
	hit(h, "192.0.2.3:1")
	assert.Equal(t, 1, rl.Clients())
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		xri        string
		trust      bool
		want       string
	}{
		{name: "remote addr", remoteAddr: "203.0.113.9:5555", want: "203.0.113.9"},
		{name: "proxy headers ignored by default", remoteAddr: "10.0.0.1:1", xff: "198.51.100.7", want: "10.0.0.1"},
		{name: "first forwarded entry when trusted", remoteAddr: "10.0.0.1:1", xff: "198.51.100.7, 10.0.0.2", trust: true, want: "198.51.100.7"},
		{name: "garbage forwarded entry falls back", remoteAddr: "10.0.0.1:1", xff: "not-an-ip", trust: true, want: "10.0.0.1"},
		{name: "real ip header", remoteAddr: "10.0.0.1:1", xri: "2001:db8::1", trust: true, want: "2001:db8::1"},
		{name: "remote addr without port", remoteAddr: "203.0.113.9", want: "203.0.113.9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}
			assert.Equal(t, tt.want, ClientIP(req, tt.trust))
		})
	}
}

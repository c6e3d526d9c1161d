package middleware

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"content-api/internal/handler/http/respond"
	"content-api/internal/observability/metrics"
)

// RateLimitConfig configures RateLimiter.
type RateLimitConfig struct {
	// RequestsPerMinute is the sustained rate allowed per client.
	RequestsPerMinute int
	// Burst is how many requests a client may make at once.
	Burst int
	// TrustProxyHeaders takes the client address from the first X-Forwarded-For entry.
	TrustProxyHeaders bool
	// IdleTTL evicts clients not seen for this long. Defaults to 10 minutes.
	IdleTTL time.Duration
	Logger  *slog.Logger
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles requests per client IP with a token bucket each.
type RateLimiter struct {
	cfg   RateLimitConfig
	limit rate.Limit
	now   func() time.Time

	mu        sync.Mutex
	clients   map[string]*client
	lastSweep time.Time
}

func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 10 * time.Minute
	}
	return &RateLimiter{
		cfg:       cfg,
		limit:     rate.Limit(float64(cfg.RequestsPerMinute) / 60),
		now:       time.Now,
		clients:   make(map[string]*client),
		lastSweep: time.Now(),
	}
}

// Middleware answers 429 with Retry-After once a client's bucket is empty.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := ClientIP(r, rl.cfg.TrustProxyHeaders)
		if delay := rl.reserve(ip); delay > 0 {
			metrics.RateLimitRejectedTotal.Inc()
			if rl.cfg.Logger != nil {
				rl.cfg.Logger.Debug("rate limit exceeded",
					slog.String("client_ip", ip),
					slog.String("path", r.URL.Path))
			}
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(delay.Seconds()))))
			respond.Error(w, http.StatusTooManyRequests, respond.CodeTooManyRequests, "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Clients returns the number of tracked clients.
func (rl *RateLimiter) Clients() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

// reserve takes a token for ip and returns zero, or returns how long until one
// is available and takes nothing.
func (rl *RateLimiter) reserve(ip string) time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) >= rl.cfg.IdleTTL {
		for key, c := range rl.clients {
			if now.Sub(c.lastSeen) >= rl.cfg.IdleTTL {
				delete(rl.clients, key)
			}
		}
		rl.lastSweep = now
	}

	c, ok := rl.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rl.limit, rl.cfg.Burst)}
		rl.clients[ip] = c
	}
	c.lastSeen = now

	res := c.limiter.ReserveN(now, 1)
	delay := res.DelayFrom(now)
	if delay > 0 {
		res.CancelAt(now)
	}
	return delay
}

// ClientIP returns the address the request came from. Proxy headers are
// honoured only when trustProxy is set, since clients can forge them.
func ClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
				return ip.String()
			}
		}
		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			if ip := net.ParseIP(strings.TrimSpace(xri)); ip != nil {
				return ip.String()
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

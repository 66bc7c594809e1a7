package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int
	Burst             int
	// IdleTTL is how long an unseen client keeps its bucket.
	IdleTTL time.Duration
	// SkipPaths are route templates exempt from limiting.
	SkipPaths []string
}

// DefaultRateLimitConfig returns the default per-client limits.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 100,
		Burst:             200,
		IdleTTL:           10 * time.Minute,
		SkipPaths:         []string{"/health", "/metrics"},
	}
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter holds one token bucket per client IP.
type Limiter struct {
	cfg  RateLimitConfig
	skip map[string]bool

	mu      sync.Mutex
	clients map[string]*client
}

// NewLimiter creates a per-IP limiter.
func NewLimiter(cfg RateLimitConfig) *Limiter {
	skip := make(map[string]bool, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = true
	}
	return &Limiter{
		cfg:     cfg,
		skip:    skip,
		clients: make(map[string]*client),
	}
}

// Allow reports whether ip may make a request now.
func (l *Limiter) Allow(ip string, now time.Time) bool {
	l.mu.Lock()
	c, ok := l.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rate.Limit(l.cfg.RequestsPerSecond), l.cfg.Burst)}
		l.clients[ip] = c
	}
	c.lastSeen = now
	l.mu.Unlock()

	return c.limiter.AllowN(now, 1)
}

// Evict drops buckets idle since before now-IdleTTL.
func (l *Limiter) Evict(now time.Time) int {
	if l.cfg.IdleTTL <= 0 {
		return 0
	}
	cutoff := now.Add(-l.cfg.IdleTTL)

	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for ip, c := range l.clients {
		if c.lastSeen.Before(cutoff) {
			delete(l.clients, ip)
			n++
		}
	}
	return n
}

// Clients returns the number of tracked clients.
func (l *Limiter) Clients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// RunEviction evicts idle buckets every interval until ctx is done.
func (l *Limiter) RunEviction(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			l.Evict(now)
		}
	}
}

// Middleware enforces the limit and answers 429 when exceeded.
func (l *Limiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.skip[c.FullPath()] {
			c.Next()
			return
		}
		if !l.Allow(c.ClientIP(), time.Now()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}

// RateLimit creates a per-IP rate limiting middleware.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	return NewLimiter(cfg).Middleware()
}

// GlobalRateLimit creates a global rate limiting middleware.
func GlobalRateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}

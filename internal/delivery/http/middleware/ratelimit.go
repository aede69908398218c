package middleware

import (
	"log/slog"
	"math"
	"strconv"
	"sync"
	"time"

	"agora/config"
	deliverycontext "agora/internal/delivery/context"
	domainerrors "agora/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const (
	defaultAuthPerMinute = 20
	defaultAuthBurst     = 5
	limiterIdleTTL       = 10 * time.Minute
	sweepEvery           = 256
)

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter throttles the auth endpoints with one token bucket per client IP.
// Idle buckets are swept lazily while new clients arrive.
type RateLimiter struct {
	limit  rate.Limit
	burst  int
	refill time.Duration
	logger *slog.Logger
	now    func() time.Time

	mu       sync.Mutex
	clients  map[string]*clientLimiter
	requests int
}

// NewRateLimiter builds the limiter from rateLimit config.
func NewRateLimiter(cfg *config.Config, logger *slog.Logger) *RateLimiter {
	perMinute, burst := defaultAuthPerMinute, defaultAuthBurst
	if cfg.RateLimit != nil {
		if cfg.RateLimit.AuthPerMinute > 0 {
			perMinute = cfg.RateLimit.AuthPerMinute
		}
		if cfg.RateLimit.Burst > 0 {
			burst = cfg.RateLimit.Burst
		}
	}

	return &RateLimiter{
		limit:   rate.Limit(float64(perMinute) / 60.0),
		burst:   burst,
		refill:  time.Minute / time.Duration(perMinute),
		logger:  logger,
		now:     time.Now,
		clients: make(map[string]*clientLimiter),
	}
}

// Limit rejects requests over the client's budget with ErrTooManyRequests.
func (rl *RateLimiter) Limit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ip := c.RealIP()
		if rl.limiterFor(ip).AllowN(rl.now(), 1) {
			return next(c)
		}

		c.Response().Header().Set("Retry-After", strconv.Itoa(rl.retryAfterSeconds()))
		deliverycontext.LoggerFrom(c.Request().Context(), rl.logger).Warn("Rate limit exceeded",
			slog.String("remote_ip", ip),
			slog.String("path", c.Path()),
		)

		return domainerrors.ErrTooManyRequests
	}
}

func (rl *RateLimiter) limiterFor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()

	rl.requests++
	if rl.requests%sweepEvery == 0 {
		for key, client := range rl.clients {
			if now.Sub(client.lastAccess) > limiterIdleTTL {
				delete(rl.clients, key)
			}
		}
	}

	client, ok := rl.clients[ip]
	if !ok {
		client = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[ip] = client
	}
	client.lastAccess = now

	return client.limiter
}

// retryAfterSeconds is the time for one token to refill.
func (rl *RateLimiter) retryAfterSeconds() int {
	return max(1, int(math.Ceil(rl.refill.Seconds())))
}

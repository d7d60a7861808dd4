// Package resilience guards calls to the Twist API with a circuit breaker,
// retries with exponential backoff, a shared rate limit and a per-attempt
// timeout, composed as a fortify middleware chain.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/charmbracelet/log"
	"github.com/felixgeelhaar/fortify/circuitbreaker"
	"github.com/felixgeelhaar/fortify/ferrors"
	"github.com/felixgeelhaar/fortify/middleware"
	"github.com/felixgeelhaar/fortify/ratelimit"
	"github.com/felixgeelhaar/fortify/retry"
	"github.com/felixgeelhaar/fortify/timeout"

	"github.com/felixgeelhaar/twist-mcp/internal/domain/twist"
)

// ErrUnavailable wraps fortify's open-circuit error.
var ErrUnavailable = errors.New("twist api temporarily unavailable")

const rateKey = "twist-api"

// Config holds resilience parameters. MaxRetries counts every attempt,
// the first one included.
type Config struct {
	Timeout          time.Duration
	MaxRetries       int
	RetryDelay       time.Duration
	RetryMaxDelay    time.Duration
	FailureThreshold int
	SuccessThreshold int
	HalfOpenTimeout  time.Duration
	RateLimit        int
	RateBurst        int
	RateInterval     time.Duration
}

// DefaultConfig returns production-ready resilience defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:          30 * time.Second,
		MaxRetries:       3,
		RetryDelay:       500 * time.Millisecond,
		RetryMaxDelay:    30 * time.Second,
		FailureThreshold: 5,
		SuccessThreshold: 2,
		HalfOpenTimeout:  30 * time.Second,
		RateLimit:        300,
		RateBurst:        10,
		RateInterval:     time.Minute,
	}
}

// Retryable is implemented by errors that know whether a retry may succeed.
// A positive delay is the server's requested wait before the next attempt.
type Retryable interface {
	RetryAfter() (time.Duration, bool)
}

// Policy runs calls through the breaker, retry, rate limit and timeout, in
// that order. The breaker and the limiter are shared by every call.
type Policy struct {
	cfg     Config
	breaker circuitbreaker.CircuitBreaker[struct{}]
	limiter ratelimit.RateLimiter
	timeout timeout.Timeout[struct{}]
	logger  *log.Logger
	sleep   func(context.Context, time.Duration) error
}

func NewPolicy(cfg Config, logger *log.Logger) *Policy {
	cfg = withDefaults(cfg)
	if logger == nil {
		logger = log.New(io.Discard)
	}
	sl := slog.New(logger)

	p := &Policy{cfg: cfg, logger: logger, sleep: sleepCtx}
	p.breaker = circuitbreaker.New[struct{}](circuitbreaker.Config{
		MaxRequests: uint32(cfg.SuccessThreshold),
		Timeout:     cfg.HalfOpenTimeout,
		ReadyToTrip: func(c circuitbreaker.Counts) bool {
			return c.ConsecutiveFailures >= uint32(cfg.FailureThreshold)
		},
		// Client errors say nothing about the health of the API.
		IsSuccessful: func(err error) bool { return err == nil || !transient(err) },
		OnStateChange: func(from, to circuitbreaker.State) {
			logger.Warn("circuit breaker state changed", "from", from, "to", to)
		},
		Logger: sl,
	})
	p.limiter = ratelimit.New(&ratelimit.Config{
		Rate:     cfg.RateLimit,
		Burst:    cfg.RateBurst,
		Interval: cfg.RateInterval,
		Logger:   sl,
	})
	p.timeout = timeout.New[struct{}](timeout.Config{DefaultTimeout: cfg.Timeout, Logger: sl})
	return p
}

func withDefaults(cfg Config) Config {
	def := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 1
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = def.RetryDelay
	}
	if cfg.RetryMaxDelay < cfg.RetryDelay {
		cfg.RetryMaxDelay = cfg.RetryDelay
	}
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = 1
	}
	if cfg.HalfOpenTimeout <= 0 {
		cfg.HalfOpenTimeout = def.HalfOpenTimeout
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = def.RateLimit
	}
	if cfg.RateBurst <= 0 {
		cfg.RateBurst = 1
	}
	if cfg.RateInterval <= 0 {
		cfg.RateInterval = def.RateInterval
	}
	return cfg
}

// Do runs an idempotent call. Rate limiting, 5xx, 408, timeouts and broken
// connections are retried. The last error is returned as-is.
func (p *Policy) Do(ctx context.Context, fn func(context.Context) error) error {
	return p.run(ctx, transient, fn)
}

// DoOnce runs a call that must not reach the server twice. It is repeated
// only when the earlier attempt was refused before being processed: a 429
// or a failed dial.
func (p *Policy) DoOnce(ctx context.Context, fn func(context.Context) error) error {
	return p.run(ctx, notDelivered, fn)
}

// Close stops the rate limiter's background cleanup.
func (p *Policy) Close() error {
	return p.limiter.Close()
}

func (p *Policy) run(ctx context.Context, retryable func(error) bool, fn func(context.Context) error) error {
	r := retry.New[struct{}](retry.Config{
		MaxAttempts:   p.cfg.MaxRetries,
		InitialDelay:  p.cfg.RetryDelay,
		MaxDelay:      p.cfg.RetryMaxDelay,
		BackoffPolicy: retry.BackoffExponential,
		IsRetryable:   retryable,
		OnRetry: func(attempt int, err error) {
			p.logger.Debug("retrying request", "attempt", attempt, "err", err)
			if d := p.retryAfter(err); d > 0 {
				_ = p.sleep(ctx, d)
			}
		},
	})

	_, err := middleware.New[struct{}]().
		WithCircuitBreaker(p.breaker).
		WithRetry(r).
		WithRateLimit(p.limiter, rateKey).
		WithTimeout(p.timeout, p.cfg.Timeout).
		Execute(ctx, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, fn(ctx)
		})
	if errors.Is(err, ferrors.ErrCircuitOpen) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return err
}

// retryAfter is the server-requested wait, capped at RetryMaxDelay.
func (p *Policy) retryAfter(err error) time.Duration {
	var re Retryable
	if !errors.As(err, &re) {
		return 0
	}
	d, ok := re.RetryAfter()
	if !ok || d <= 0 {
		return 0
	}
	return min(d, p.cfg.RetryMaxDelay)
}

// transient reports failures that point at the API or the network rather
// than at the request.
func transient(err error) bool {
	var (
		re Retryable
		ne *net.OpError
	)
	switch {
	case errors.As(err, &re):
		_, ok := re.RetryAfter()
		return ok
	case errors.As(err, &ne):
		return true
	case errors.Is(err, context.DeadlineExceeded):
		return true
	}
	return false
}

// notDelivered reports failures where the server never acted on the request.
func notDelivered(err error) bool {
	if errors.Is(err, twist.ErrRateLimited) {
		return true
	}
	var ne *net.OpError
	return errors.As(err, &ne) && ne.Op == "dial"
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

package ratelimiter

import (
	"context"
	"fmt"
	"time"
)

// Config sizes the token bucket.
type Config struct {
	// Capacity is the burst size. Zero disables limiting.
	Capacity       int           `env:"AUTH_RATE_LIMIT_CAPACITY" envDefault:"20"`
	RefillRate     int           `env:"AUTH_RATE_LIMIT_REFILL" envDefault:"5"`
	RefillInterval time.Duration `env:"AUTH_RATE_LIMIT_INTERVAL" envDefault:"1m"`
}

func (c Config) Enabled() bool { return c.Capacity > 0 }

func (c Config) validate() error {
	switch {
	case c.Capacity <= 0:
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	case c.RefillRate <= 0:
		return fmt.Errorf("%w: refill rate must be positive, got %d", ErrInvalidConfig, c.RefillRate)
	case c.RefillInterval <= 0:
		return fmt.Errorf("%w: refill interval must be positive, got %v", ErrInvalidConfig, c.RefillInterval)
	}
	return nil
}

// Result is the outcome of one Allow call.
type Result struct {
	Limit     int
	Remaining int // negative when the request was denied
	ResetAt   time.Time
}

// Allowed reports whether the request fit in the bucket.
func (r Result) Allowed() bool { return r.Remaining >= 0 }

// RetryAfter is how long a denied caller should wait; zero when allowed.
func (r Result) RetryAfter(now time.Time) time.Duration {
	if r.Allowed() || !r.ResetAt.After(now) {
		return 0
	}
	return r.ResetAt.Sub(now)
}

// Bucket is a token bucket limiter keyed by caller.
type Bucket struct {
	store  *MemoryStore
	config Config
}

// NewBucket returns a limiter keeping its state in store.
func NewBucket(store *MemoryStore, cfg Config) (*Bucket, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Bucket{store: store, config: cfg}, nil
}

// Allow takes one token for key.
func (b *Bucket) Allow(ctx context.Context, key string) (Result, error) {
	return b.AllowN(ctx, key, 1)
}

// AllowN takes n tokens for key, refilling first for the time elapsed.
func (b *Bucket) AllowN(ctx context.Context, key string, n int) (Result, error) {
	if n <= 0 {
		return Result{}, fmt.Errorf("%w: must be positive, got %d", ErrInvalidTokenCount, n)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	remaining, resetAt := b.store.consume(key, n, b.config)
	return Result{Limit: b.config.Capacity, Remaining: remaining, ResetAt: resetAt}, nil
}

// Package ratelimiter throttles the credential endpoints with an in-memory
// token bucket per client IP.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//	bucket, err := ratelimiter.NewBucket(store, cfg)
//	r.Use(ratelimiter.Middleware(bucket, ratelimiter.ByClientIP, log))
//
// Each key starts with Capacity tokens and regains RefillRate tokens every
// RefillInterval, never exceeding Capacity.
package ratelimiter

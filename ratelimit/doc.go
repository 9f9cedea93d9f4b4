// Package ratelimit provides token-bucket admission control for outbound
// model invocations.
//
// The bucket holds a capped, continuously-replenished count of permits; one
// permit is consumed per admitted call. Refill is computed lazily from elapsed
// time on every decision; there is no background goroutine.
//
// # Limiter
//
// Create a limiter and acquire permits:
//
//	limiter, err := ratelimit.New(40, 8) // 40 requests/minute, burst of 8
//	if err != nil {
//	    return err
//	}
//	if err := limiter.Acquire(ctx, 30*time.Second); err != nil {
//	    // ratelimit.ErrAcquireTimeout: no permit within 30s
//	}
//
// A timeout of zero is a non-blocking probe. A timed-out or cancelled
// Acquire never consumes a permit.
//
// # Shared limiter
//
// Call sites that must share one bucket use the package-level limiter:
//
//	ratelimit.Configure(40, 8)          // once at process start
//	limiter, err := ratelimit.Global()  // ErrNotConfigured before Configure
//
// Reconfiguring replaces the bucket and is only safe between invocation
// bursts; concurrent reconfiguration during live traffic is undefined.
package ratelimit

package governor

import (
	"context"
	"sync"

	"github.com/rfallows/llmgate/provider"
	"github.com/rfallows/llmgate/ratelimit"
)

// DefaultTransport is the registry name ConfigureGlobal resolves its invoker
// from. The transport package must be imported for registration:
//
//	import _ "github.com/rfallows/llmgate/provider/bedrock"
const DefaultTransport = "bedrock"

// process-wide governor shared by orchestration call sites.
var (
	globalMu sync.RWMutex
	global   *Governor
)

// ConfigureGlobal configures the process-wide rate limiter and builds the
// shared governor around the default transport, with credentials from the
// environment. Call it once at process start. Re-configuring replaces the
// bucket and is only safe between invocation bursts.
func ConfigureGlobal(requestsPerMinute float64, burstCapacity int, opts ...Option) error {
	cfg := provider.DefaultConfig()
	cfg.LoadFromEnv()

	invoker, err := provider.New(DefaultTransport, cfg)
	if err != nil {
		return err
	}
	return ConfigureGlobalInvoker(invoker, requestsPerMinute, burstCapacity, opts...)
}

// ConfigureGlobalInvoker is ConfigureGlobal with an explicit invoker, for
// custom transports and tests.
func ConfigureGlobalInvoker(invoker provider.Invoker, requestsPerMinute float64, burstCapacity int, opts ...Option) error {
	if err := ratelimit.Configure(requestsPerMinute, burstCapacity); err != nil {
		return err
	}
	limiter, err := ratelimit.Global()
	if err != nil {
		return err
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	global = New(invoker, limiter, opts...)
	return nil
}

// InvokeModel performs one governed invocation through the shared governor.
// Returns ErrNotConfigured if ConfigureGlobal has not been called.
func InvokeModel(ctx context.Context, req Request) (string, error) {
	globalMu.RLock()
	g := global
	globalMu.RUnlock()

	if g == nil {
		return "", ErrNotConfigured
	}
	return g.Invoke(ctx, req)
}

// Status reports the shared limiter's bucket state, for logging and
// monitoring. Returns ErrNotConfigured before ConfigureGlobal.
func Status() (ratelimit.Status, error) {
	globalMu.RLock()
	g := global
	globalMu.RUnlock()

	if g == nil {
		return ratelimit.Status{}, ErrNotConfigured
	}
	return g.Status(), nil
}

// ResetGlobal discards the shared governor and limiter. This is primarily
// useful for testing.
func ResetGlobal() {
	globalMu.Lock()
	defer globalMu.Unlock()
	global = nil
	ratelimit.ResetGlobal()
}

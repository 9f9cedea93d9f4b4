// Package governor composes admission control, response budget calculation,
// and classified retry around a single model invocation.
//
// Every invocation follows the same path: acquire a rate-limit permit (each
// retry re-acquires, since a retry is a new request against the provider),
// resolve
// the response budget (explicit value wins, otherwise the calculator computes
// one from input size and complexity), perform the call, and classify the
// outcome. Retryable provider failures back off exponentially with jitter;
// fatal ones return immediately.
//
// # Explicit construction
//
//	limiter, _ := ratelimit.New(40, 8)
//	gov := governor.New(invoker, limiter)
//	out, err := gov.Invoke(ctx, governor.Request{
//	    ModelID:      "anthropic.claude-3-sonnet-20240229-v1:0",
//	    Prompt:       diff,
//	    AnalysisType: tokens.AnalysisHeavy,
//	})
//
// # Global facade
//
// Orchestration code that shares one throttle across call sites configures
// the process-wide governor once at startup:
//
//	import _ "github.com/rfallows/llmgate/provider/bedrock"
//
//	if err := governor.ConfigureGlobal(40, 8); err != nil {
//	    log.Fatal(err)
//	}
//	out, err := governor.InvokeModel(ctx, req)
//	status, _ := governor.Status()
//
// InvokeModel before ConfigureGlobal fails with ErrNotConfigured rather than
// silently defaulting; missing setup should surface as an error, not as an
// unthrottled process.
//
// # Error taxonomy
//
//   - ErrAdmissionTimeout: no permit within the admission timeout; the
//     caller decides whether to skip or surface
//   - provider sentinel errors (non-retryable): propagated immediately
//   - *RetryExhaustedError: wraps the last retryable error and the attempt
//     count once MaxRetries is spent
//   - tokens.ErrInputTooLarge: the input cannot fit the model's context
//     window; propagated before any permit is consumed
package governor

// Package provider defines the boundary between the request governor and
// model transports.
//
// The governor treats a model call as one opaque, blocking operation: an
// Invoker turns a Request into generated text or a classified error. Errors
// are classified exactly once, here at the boundary where the provider's
// error model is known; callers only inspect the Retryable flag and the
// sentinel errors, never provider-specific codes.
//
// # Usage
//
// Create an invoker through the registry:
//
//	invoker, err := provider.New("bedrock", provider.Config{Region: "us-east-1"})
//	if err != nil {
//	    return err
//	}
//	out, err := invoker.Invoke(ctx, provider.Request{
//	    ModelID:   "anthropic.claude-3-sonnet-20240229-v1:0",
//	    Prompt:    prompt,
//	    MaxTokens: 1500,
//	})
//
// Transports register themselves in their init function, so importing a
// transport package is enough to make it available:
//
//	import _ "github.com/rfallows/llmgate/provider/bedrock"
package provider

import "context"

// Request holds the parameters for one model invocation.
type Request struct {
	// ModelID identifies the model to invoke. Required.
	ModelID string

	// Prompt is the raw text sent to the model. Required.
	Prompt string

	// MaxTokens limits the response length. Required; the governor computes
	// it when the caller supplies none.
	MaxTokens int

	// Temperature controls response randomness (0.0 = deterministic).
	Temperature float64

	// TopP enables nucleus sampling. Zero means provider default.
	TopP float64

	// TopK enables top-k sampling for models that support it.
	// Zero means unset.
	TopK int
}

// Invoker performs a single model invocation.
// Implementations must be safe for concurrent use and must return errors
// classified per this package's taxonomy.
type Invoker interface {
	Invoke(ctx context.Context, req Request) (string, error)
}

// Func adapts a plain function to the Invoker interface.
// Useful for tests and for wrapping existing call sites.
type Func func(ctx context.Context, req Request) (string, error)

// Invoke implements Invoker.
func (f Func) Invoke(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

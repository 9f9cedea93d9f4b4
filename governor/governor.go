package governor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/rfallows/llmgate/provider"
	"github.com/rfallows/llmgate/ratelimit"
	"github.com/rfallows/llmgate/tokens"
)

// Defaults for invocation governance.
const (
	// DefaultAdmissionTimeout bounds how long one attempt waits for a
	// rate-limit permit. Generous: sustained timeouts here mean the process
	// is oversubscribed, which is the intended backpressure signal.
	DefaultAdmissionTimeout = 30 * time.Second

	// DefaultMaxRetries is the retry budget for retryable provider errors.
	DefaultMaxRetries = 3

	// DefaultInitialBackoff is the first retry delay; it doubles per attempt.
	DefaultInitialBackoff = 1 * time.Second

	// backoffJitterFactor randomizes each delay by up to this fraction to
	// avoid synchronized retry storms.
	backoffJitterFactor = 0.1
)

// Request describes one governed model invocation.
type Request struct {
	// ModelID identifies the model to invoke. Required.
	ModelID string

	// Prompt is the raw text sent to the model. Required.
	Prompt string

	// AnalysisType selects the response budget profile
	// (see the tokens package constants). Unknown types get a conservative
	// fallback profile.
	AnalysisType string

	// MaxTokens overrides the computed response budget when positive.
	MaxTokens int

	// Temperature, TopP, and TopK pass through to the provider.
	Temperature float64
	TopP        float64
	TopK        int

	// MaxRetries is the retry budget for retryable failures.
	// 0 means DefaultMaxRetries; negative disables retries.
	MaxRetries int

	// InitialBackoff is the first retry delay. 0 means DefaultInitialBackoff.
	InitialBackoff time.Duration
}

// Governor guards one invoker with a shared rate limiter and a budget
// calculator. Safe for concurrent use.
type Governor struct {
	invoker          provider.Invoker
	limiter          *ratelimit.Limiter
	calc             *tokens.Calculator
	logger           *slog.Logger
	admissionTimeout time.Duration
}

// Option configures a Governor.
type Option func(*Governor)

// WithLogger sets the logger used for admission and retry events.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Governor) { g.logger = logger }
}

// WithCalculator sets a custom budget calculator, e.g. one built from
// profile overrides.
func WithCalculator(calc *tokens.Calculator) Option {
	return func(g *Governor) { g.calc = calc }
}

// WithAdmissionTimeout sets how long each attempt waits for a permit.
func WithAdmissionTimeout(timeout time.Duration) Option {
	return func(g *Governor) { g.admissionTimeout = timeout }
}

// New creates a governor around an invoker and a shared limiter.
func New(invoker provider.Invoker, limiter *ratelimit.Limiter, opts ...Option) *Governor {
	g := &Governor{
		invoker:          invoker,
		limiter:          limiter,
		calc:             tokens.NewCalculator(),
		logger:           slog.Default(),
		admissionTimeout: DefaultAdmissionTimeout,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Status reports the underlying limiter's bucket state.
func (g *Governor) Status() ratelimit.Status {
	return g.limiter.Status()
}

// Invoke performs one governed model invocation and returns the generated
// text.
//
// The response budget is req.MaxTokens when positive, otherwise computed
// from the prompt and the model's context window (tokens.ErrInputTooLarge
// propagates before any permit is consumed). Every attempt, the first and
// each retry alike, acquires its own rate-limit permit. Retryable provider
// errors wait initialBackoff*2^attempt plus jitter between attempts;
// non-retryable errors return immediately. When the retry budget runs out
// the last error is wrapped in *RetryExhaustedError.
func (g *Governor) Invoke(ctx context.Context, req Request) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		window := tokens.ContextWindowFor(req.ModelID)
		budget, err := g.calc.MaxTokensFor(req.Prompt, req.AnalysisType, window)
		if err != nil {
			return "", fmt.Errorf("computing response budget for model %s: %w", req.ModelID, err)
		}
		maxTokens = budget
		g.logger.Debug("computed response budget",
			"model", req.ModelID,
			"analysis_type", req.AnalysisType,
			"input_tokens", g.calc.EstimateInput(req.Prompt),
			"max_tokens", maxTokens)
	}

	maxRetries := req.MaxRetries
	switch {
	case maxRetries == 0:
		maxRetries = DefaultMaxRetries
	case maxRetries < 0:
		maxRetries = 0
	}
	initialBackoff := req.InitialBackoff
	if initialBackoff <= 0 {
		initialBackoff = DefaultInitialBackoff
	}

	invokeReq := provider.Request{
		ModelID:     req.ModelID,
		Prompt:      req.Prompt,
		MaxTokens:   maxTokens,
		Temperature: req.Temperature,
		TopP:        req.TopP,
		TopK:        req.TopK,
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			wait := backoffDelay(initialBackoff, attempt-1)
			g.logger.Warn("retrying model invocation",
				"model", req.ModelID,
				"attempt", attempt,
				"wait", wait,
				"error", lastErr)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(wait):
			}
		}

		// A retry is a new request against the provider and is governed
		// identically to the first attempt.
		if err := g.limiter.Acquire(ctx, g.admissionTimeout); err != nil {
			if errors.Is(err, ratelimit.ErrAcquireTimeout) {
				g.logger.Warn("admission timed out", "model", req.ModelID, "timeout", g.admissionTimeout)
				return "", fmt.Errorf("%w: model %s", ErrAdmissionTimeout, req.ModelID)
			}
			return "", err
		}

		out, err := g.invoker.Invoke(ctx, invokeReq)
		if err == nil {
			return out, nil
		}
		if !provider.IsRetryable(err) {
			return "", err
		}
		lastErr = err
	}

	return "", &RetryExhaustedError{Attempts: maxRetries + 1, Err: lastErr}
}

// backoffDelay returns initial*2^attempt plus up to 10% random jitter.
func backoffDelay(initial time.Duration, attempt int) time.Duration {
	delay := initial << uint(attempt)
	jitter := time.Duration(rand.Int63n(int64(float64(delay)*backoffJitterFactor) + 1))
	return delay + jitter
}

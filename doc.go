// Package llmgate governs outbound LLM invocations for automated PR review.
//
// llmgate sits between review orchestration code and the model provider. For
// every outbound call it decides whether the call may proceed right now
// (token-bucket admission control), how large a response budget to request
// (adaptive sizing from input size and complexity), and how to recover from
// transient provider failures (classified retry with backoff). Each subpackage
// can be used independently:
//
//   - ratelimit: thread-safe token-bucket admission control
//   - tokens: input token estimation and response budget calculation
//   - provider: model invoker abstraction, error taxonomy, and registry
//   - provider/bedrock: HTTP transport for Bedrock-style model APIs
//   - providers: blank-import aggregator registering every transport
//   - governor: admission + budget + retry composed around one invocation
//   - config: environment, .env, and TOML configuration
//   - extract: structured output extraction from model responses
//
// # Quick Start
//
// Configure once at process start, then invoke:
//
//	import "github.com/rfallows/llmgate/governor"
//
//	if err := governor.ConfigureGlobal(40, 8); err != nil {
//	    log.Fatal(err)
//	}
//	out, err := governor.InvokeModel(ctx, governor.Request{
//	    ModelID:      "anthropic.claude-3-sonnet-20240229-v1:0",
//	    Prompt:       diff,
//	    AnalysisType: "heavy_analysis",
//	})
//
// Budget calculation on its own:
//
//	import "github.com/rfallows/llmgate/tokens"
//	calc := tokens.NewCalculator()
//	budget, _ := calc.MaxTokensFor(diff, "summary", 200000)
//
// # Design Philosophy
//
//   - Admission control, sizing, and retry are the only stateful concerns;
//     everything else stays behind the provider.Invoker boundary
//   - Failures are classified once, at the provider boundary, and surfaced
//     as explicit error values, never swallowed
//   - The budget calculator is a pure function: identical inputs always
//     produce identical budgets
//   - Sensible defaults with full configurability
package llmgate

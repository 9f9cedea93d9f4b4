// Package tokens estimates input token counts and computes response token
// budgets for model invocations.
//
// Token estimation is based on the rule-of-thumb that approximately 4
// characters equals 1 token for English text. This provides a fast estimation
// without requiring a model-specific tokenizer.
//
// # Counter
//
// The Counter interface provides token counting methods:
//
//	counter := tokens.NewEstimatingCounter()
//	count := counter.Count("Hello, world!")     // ~4 tokens
//	fits := counter.FitsInLimit("text", 1000)   // true if <= 1000 tokens
//
// For one-off counting, use the convenience function:
//
//	count := tokens.EstimateTokens("Hello, world!")
//
// # Budget calculation
//
// Calculator maps an input payload, an analysis type, and a model context
// window to a response budget. The result grows logarithmically with input
// size, since response length should not grow proportionally to diff size, and is
// clamped to the analysis type's [Base, Max] range, then shrunk if the
// model's context window cannot hold input, response, and safety buffer:
//
//	calc := tokens.NewCalculator()
//	budget, err := calc.MaxTokensFor(diff, "heavy_analysis", 200000)
//	if errors.Is(err, tokens.ErrInputTooLarge) {
//	    // input cannot fit the context window at any viable budget
//	}
//
// The calculation is deterministic: identical inputs always yield the same
// budget.
//
// # Model limits
//
// Get context window sizes for known model IDs, with family fallback:
//
//	window := tokens.ContextWindowFor("anthropic.claude-3-haiku-20240307-v1:0") // 200000
//	window := tokens.ContextWindowFor("unknown.model-v1")                       // 4000
package tokens

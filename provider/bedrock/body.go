package bedrock

import (
	"strings"

	"github.com/rfallows/llmgate/provider"
)

// Model family markers within Bedrock model IDs.
const (
	familyClaude   = "anthropic.claude"
	familyTitan    = "amazon.titan"
	familyJurassic = "ai21.j2"
	familyCohere   = "cohere.command"
	familyLlama    = "meta.llama"
)

// buildRequestBody shapes the invocation body for the model's family.
// Unknown families get the claude-like shape, which is the most widely
// mirrored by Bedrock-compatible gateways.
func buildRequestBody(req provider.Request) map[string]any {
	switch {
	case strings.Contains(req.ModelID, familyTitan):
		generation := map[string]any{
			"maxTokenCount": req.MaxTokens,
			"temperature":   req.Temperature,
			"topP":          req.TopP,
		}
		return map[string]any{
			"inputText":            req.Prompt,
			"textGenerationConfig": generation,
		}

	case strings.Contains(req.ModelID, familyJurassic):
		return map[string]any{
			"prompt":      req.Prompt,
			"maxTokens":   req.MaxTokens,
			"temperature": req.Temperature,
			"topP":        req.TopP,
		}

	case strings.Contains(req.ModelID, familyCohere):
		body := map[string]any{
			"prompt":      req.Prompt,
			"max_tokens":  req.MaxTokens,
			"temperature": req.Temperature,
			"p":           req.TopP,
		}
		if req.TopK > 0 {
			body["k"] = req.TopK
		}
		return body

	default:
		// claude family and claude-like fallbacks
		body := map[string]any{
			"prompt":               req.Prompt,
			"max_tokens_to_sample": req.MaxTokens,
			"temperature":          req.Temperature,
			"top_p":                req.TopP,
		}
		if req.TopK > 0 {
			body["top_k"] = req.TopK
		}
		return body
	}
}

// extractOutputText pulls the generated text out of a parsed response body
// using the model family's response shape, falling back to a set of common
// keys for unknown families.
func extractOutputText(modelID string, body map[string]any) (string, bool) {
	switch {
	case strings.Contains(modelID, familyClaude):
		return stringField(body, "completion")

	case strings.Contains(modelID, familyLlama):
		return stringField(body, "generation")

	case strings.Contains(modelID, familyTitan):
		if results, ok := body["results"].([]any); ok && len(results) > 0 {
			if first, ok := results[0].(map[string]any); ok {
				if text, ok := stringField(first, "outputText"); ok {
					return text, true
				}
			}
		}
		// Older Titan shapes put outputText at the top level.
		return stringField(body, "outputText")

	case strings.Contains(modelID, familyJurassic):
		if completions, ok := body["completions"].([]any); ok && len(completions) > 0 {
			if first, ok := completions[0].(map[string]any); ok {
				if data, ok := first["data"].(map[string]any); ok {
					return stringField(data, "text")
				}
			}
		}
		return "", false

	case strings.Contains(modelID, familyCohere):
		if generations, ok := body["generations"].([]any); ok && len(generations) > 0 {
			if first, ok := generations[0].(map[string]any); ok {
				return stringField(first, "text")
			}
		}
		return "", false

	default:
		for _, key := range []string{"completion", "generated_text", "text", "outputText", "generation"} {
			if text, ok := stringField(body, key); ok {
				return text, true
			}
		}
		return "", false
	}
}

func stringField(body map[string]any, key string) (string, bool) {
	text, ok := body[key].(string)
	if !ok || text == "" {
		return "", false
	}
	return text, true
}

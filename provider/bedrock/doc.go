// Package bedrock implements the provider.Invoker interface over the
// Bedrock-style HTTP invocation API.
//
// Request bodies and response extraction vary by model family (claude,
// titan, jurassic, cohere); unknown families fall back to a claude-like
// shape. Provider failures are classified here, at the boundary: throttling,
// model timeouts, and server errors are retryable; validation, auth, and
// unknown-model rejections are not.
//
// The transport registers itself as "bedrock":
//
//	import _ "github.com/rfallows/llmgate/provider/bedrock"
//
//	invoker, err := provider.New("bedrock", provider.Config{
//	    APIKey: os.Getenv("AWS_BEARER_TOKEN_BEDROCK"),
//	    Region: "us-east-1",
//	})
package bedrock

package bedrock

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rfallows/llmgate/provider"
)

const providerName = "bedrock"

func init() {
	provider.Register(providerName, func(cfg provider.Config) (provider.Invoker, error) {
		return New(cfg)
	})
}

// Invoker invokes models through the Bedrock runtime HTTP API.
type Invoker struct {
	cfg    provider.Config
	client *http.Client
}

// New creates a bedrock invoker from the given configuration.
func New(cfg provider.Config) (*Invoker, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = provider.DefaultConfig().Timeout
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Invoker{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

func (b *Invoker) endpoint() string {
	if b.cfg.Endpoint != "" {
		return strings.TrimSuffix(b.cfg.Endpoint, "/")
	}
	return fmt.Sprintf("https://bedrock-runtime.%s.amazonaws.com", b.cfg.Region)
}

// Invoke sends one invocation request and returns the generated text.
// Errors are classified per the provider taxonomy; no retrying happens at
// this layer.
func (b *Invoker) Invoke(ctx context.Context, req provider.Request) (string, error) {
	if req.ModelID == "" {
		return "", provider.NewError(providerName, "invoke",
			fmt.Errorf("%w: model id is empty", provider.ErrInvalidRequest), false)
	}
	if req.Prompt == "" {
		return "", provider.NewError(providerName, "invoke",
			fmt.Errorf("%w: prompt is empty", provider.ErrInvalidRequest), false)
	}

	payload, err := json.Marshal(buildRequestBody(req))
	if err != nil {
		return "", provider.NewError(providerName, "invoke",
			fmt.Errorf("marshaling request: %w", err), false)
	}

	invokeURL := b.endpoint() + "/model/" + url.PathEscape(req.ModelID) + "/invoke"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, invokeURL, bytes.NewReader(payload))
	if err != nil {
		return "", provider.NewError(providerName, "invoke",
			fmt.Errorf("creating request: %w", err), false)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+b.cfg.APIKey)

	httpResp, err := b.client.Do(httpReq)
	if err != nil {
		// Connection-level failures are transient from the caller's view.
		return "", provider.NewError(providerName, "invoke",
			fmt.Errorf("%w: %v", provider.ErrUnavailable, err), true)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", provider.NewError(providerName, "invoke",
			fmt.Errorf("%w: reading response: %v", provider.ErrUnavailable, err), true)
	}

	if httpResp.StatusCode != http.StatusOK {
		return "", classify(req.ModelID, httpResp, respBody)
	}

	var parsed map[string]any
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", provider.NewError(providerName, "invoke",
			fmt.Errorf("parsing response: %w", err), false)
	}

	text, ok := extractOutputText(req.ModelID, parsed)
	if !ok || strings.TrimSpace(text) == "" {
		return "", provider.NewError(providerName, "invoke",
			fmt.Errorf("%w: model %s", provider.ErrEmptyResponse, req.ModelID), false)
	}
	return strings.TrimSpace(text), nil
}

// classify maps an HTTP failure to the provider error taxonomy. The
// Bedrock error type arrives in the X-Amzn-Errortype header; the status code
// is the fallback signal.
func classify(modelID string, resp *http.Response, body []byte) *provider.Error {
	errType := resp.Header.Get("X-Amzn-Errortype")
	message := string(body)

	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		message = parsed.Message
	}

	wrap := func(sentinel error, retryable bool) *provider.Error {
		return provider.NewError(providerName, "invoke",
			fmt.Errorf("%w: model %s: %s", sentinel, modelID, message), retryable)
	}

	switch {
	case strings.Contains(errType, "ThrottlingException") || resp.StatusCode == http.StatusTooManyRequests:
		return wrap(provider.ErrThrottled, true)
	case strings.Contains(errType, "ModelTimeoutException") || resp.StatusCode == http.StatusRequestTimeout:
		return wrap(provider.ErrModelTimeout, true)
	case strings.Contains(errType, "AccessDeniedException") ||
		resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return wrap(provider.ErrAccessDenied, false)
	case strings.Contains(errType, "ResourceNotFoundException") || resp.StatusCode == http.StatusNotFound:
		return wrap(provider.ErrModelNotFound, false)
	case strings.Contains(errType, "ValidationException") || resp.StatusCode == http.StatusBadRequest:
		return wrap(provider.ErrInvalidRequest, false)
	case resp.StatusCode >= 500:
		return wrap(provider.ErrUnavailable, true)
	default:
		return provider.NewError(providerName, "invoke",
			fmt.Errorf("unexpected status %d for model %s: %s", resp.StatusCode, modelID, message), false)
	}
}

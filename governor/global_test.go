package governor_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfallows/llmgate/governor"
	"github.com/rfallows/llmgate/provider"
)

func okInvoker() provider.Invoker {
	return provider.Func(func(ctx context.Context, req provider.Request) (string, error) {
		return "ok", nil
	})
}

func TestInvokeModel_NotConfigured(t *testing.T) {
	governor.ResetGlobal()
	defer governor.ResetGlobal()

	_, err := governor.InvokeModel(context.Background(), governor.Request{
		ModelID: "m", Prompt: "p", MaxTokens: 10,
	})
	assert.ErrorIs(t, err, governor.ErrNotConfigured)

	_, err = governor.Status()
	assert.ErrorIs(t, err, governor.ErrNotConfigured)
}

func TestConfigureGlobal_UnregisteredTransport(t *testing.T) {
	governor.ResetGlobal()
	defer governor.ResetGlobal()

	// The bedrock transport is not imported by this test binary, so the
	// registry lookup must fail loudly.
	err := governor.ConfigureGlobal(40, 8)
	require.Error(t, err)

	_, invokeErr := governor.InvokeModel(context.Background(), governor.Request{
		ModelID: "m", Prompt: "p", MaxTokens: 10,
	})
	assert.ErrorIs(t, invokeErr, governor.ErrNotConfigured)
}

func TestConfigureGlobalInvoker_SharedGovernance(t *testing.T) {
	governor.ResetGlobal()
	defer governor.ResetGlobal()

	require.NoError(t, governor.ConfigureGlobalInvoker(okInvoker(), 40, 8))

	out, err := governor.InvokeModel(context.Background(), governor.Request{
		ModelID: "anthropic.claude-v2", Prompt: "p", MaxTokens: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)

	status, err := governor.Status()
	require.NoError(t, err)
	assert.Equal(t, 8, status.Capacity)
	assert.Equal(t, 40.0, status.RequestsPerMinute)
	assert.Less(t, status.TokensAvailable, 8.0, "the invocation consumed a permit")
}

func TestInvokeModel_SequentialCallsPaced(t *testing.T) {
	governor.ResetGlobal()
	defer governor.ResetGlobal()

	// 600 rpm with burst 1: the second call waits ~100ms for refill.
	require.NoError(t, governor.ConfigureGlobalInvoker(okInvoker(), 600, 1))

	start := time.Now()
	for i := 0; i < 2; i++ {
		_, err := governor.InvokeModel(context.Background(), governor.Request{
			ModelID: "anthropic.claude-v2", Prompt: "p", MaxTokens: 10,
		})
		require.NoError(t, err)
	}

	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
}

func TestConfigureGlobalInvoker_Reconfigure(t *testing.T) {
	governor.ResetGlobal()
	defer governor.ResetGlobal()

	require.NoError(t, governor.ConfigureGlobalInvoker(okInvoker(), 40, 8))
	require.NoError(t, governor.ConfigureGlobalInvoker(okInvoker(), 10, 2))

	status, err := governor.Status()
	require.NoError(t, err)
	assert.Equal(t, 2, status.Capacity)
	assert.Equal(t, 10.0, status.RequestsPerMinute)
}

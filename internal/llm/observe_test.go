package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/versus/internal/metrics"
)

type blockingClient struct{}

func (blockingClient) Complete(ctx context.Context, prompt string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestObserve_PassesThrough(t *testing.T) {
	before := testutil.ToFloat64(metrics.LLMRequestsTotal.WithLabelValues("observe-ok", "mock", metrics.OutcomeOK))

	c := Observe(&MockClient{Response: "answer"}, "observe-ok", "mock", time.Second)
	out, err := c.Complete(t.Context(), "q")
	require.NoError(t, err)
	assert.Equal(t, "answer", out)

	after := testutil.ToFloat64(metrics.LLMRequestsTotal.WithLabelValues("observe-ok", "mock", metrics.OutcomeOK))
	assert.Equal(t, before+1, after)
}

func TestObserve_WrapsErrors(t *testing.T) {
	boom := errors.New("boom")
	c := Observe(&MockClient{Err: boom}, "observe-err", "mock", 0)

	_, err := c.Complete(t.Context(), "q")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "observe-err completion via mock failed")
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.LLMRequestsTotal.WithLabelValues("observe-err", "mock", metrics.OutcomeError)))
}

func TestObserve_Timeout(t *testing.T) {
	c := Observe(blockingClient{}, "observe-timeout", "mock", 20*time.Millisecond)

	start := time.Now()
	_, err := c.Complete(t.Context(), "q")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestMockClient_Routing(t *testing.T) {
	m := &MockClient{
		Response:      "fallback",
		ResponseQueue: []string{"first"},
		Routes:        map[string]string{"Phone A": "routed"},
	}

	out, _ := m.Complete(t.Context(), "about Phone A review")
	assert.Equal(t, "routed", out)
	out, _ = m.Complete(t.Context(), "other")
	assert.Equal(t, "first", out)
	out, _ = m.Complete(t.Context(), "other")
	assert.Equal(t, "fallback", out)
	assert.Len(t, m.Prompts(), 3)
}

func TestMockClient_OverlappingRoutesAreDeterministic(t *testing.T) {
	m := &MockClient{Routes: map[string]string{
		"Phone B": "b",
		"Phone A": "a",
		"Phone":   "any",
	}}

	for range 20 {
		out, err := m.Complete(t.Context(), "compare Phone A and Phone B")
		require.NoError(t, err)
		assert.Equal(t, "any", out)
	}
	out, _ := m.Complete(t.Context(), "only Phone B here")
	assert.Equal(t, "any", out)
	out, _ = m.Complete(t.Context(), "nothing matches")
	assert.Empty(t, out)
}

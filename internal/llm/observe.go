package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/agenthands/versus/internal/metrics"
)

type observedClient struct {
	next     Client
	role     string
	provider string
	timeout  time.Duration
}

// Observe bounds every completion by timeout (zero disables it) and records
// its duration and outcome under role.
func Observe(next Client, role, provider string, timeout time.Duration) Client {
	return &observedClient{next: next, role: role, provider: provider, timeout: timeout}
}

func (c *observedClient) Complete(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := c.next.Complete(ctx, prompt)
	metrics.RecordLLM(c.role, c.provider, err, time.Since(start))
	if err != nil {
		return "", fmt.Errorf("%s completion via %s failed: %w", c.role, c.provider, err)
	}
	return out, nil
}

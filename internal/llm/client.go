package llm

import (
	"context"
)

// Client is a prompt-completion capability. Each provider implements it once;
// the pipeline never sees provider-specific response objects.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

const (
	RoleRelevance  = "relevance"
	RoleComparison = "comparison"
)

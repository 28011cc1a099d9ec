// Package search queries a web search API for review candidates.
package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/agenthands/versus/internal/config"
	"github.com/agenthands/versus/internal/core/model"
)

// Searcher returns the raw hits for a query, in provider rank order.
type Searcher interface {
	Search(ctx context.Context, query string) ([]model.SearchHit, error)
}

// New builds the searcher named by cfg.Provider.
func New(cfg config.SearchConfig, logger *zap.Logger) (Searcher, error) {
	switch cfg.Provider {
	case "brave":
		return NewBraveClient(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unsupported search provider: %s", cfg.Provider)
	}
}

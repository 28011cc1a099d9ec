package core

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/agenthands/versus/internal/config"
	"github.com/agenthands/versus/internal/llm"
	"github.com/agenthands/versus/internal/scraper"
	"github.com/agenthands/versus/internal/search"
	"github.com/agenthands/versus/internal/workpool"
)

// NewFromConfig builds a Comparator backed by the configured search provider,
// LLM providers and an HTTP scraper sharing one process-wide pool.
func NewFromConfig(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Comparator, error) {
	searcher, err := search.New(cfg.Search, logger)
	if err != nil {
		return nil, err
	}

	relevanceLLM, err := llm.NewClient(ctx, llm.RoleRelevance, cfg.Relevance)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize relevance LLM: %w", err)
	}
	comparisonLLM, err := llm.NewClient(ctx, llm.RoleComparison, cfg.Comparison)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize comparison LLM: %w", err)
	}

	return NewComparator(
		searcher,
		relevanceLLM,
		comparisonLLM,
		scraper.New(cfg.Scraper, logger),
		workpool.New(cfg.Scraper.Concurrency),
		cfg,
		logger,
	)
}

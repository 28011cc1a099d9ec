//go:build integration

package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/agenthands/versus/internal/config"
	"github.com/agenthands/versus/internal/core"
	"github.com/agenthands/versus/internal/core/model"
	"github.com/agenthands/versus/internal/scraper"
	"github.com/agenthands/versus/internal/search"
)

func loadConfig(t *testing.T) *config.Config {
	t.Helper()
	_ = godotenv.Load("../../.env")

	cfg, err := config.Load("../../config/config.toml")
	if errors.Is(err, config.ErrConfiguration) {
		t.Skipf("Skipping integration test: %v", err)
	}
	require.NoError(t, err)
	return cfg
}

func TestSearchAndScrape(t *testing.T) {
	cfg := loadConfig(t)
	logger := zap.NewExample()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	s, err := search.New(cfg.Search, logger)
	require.NoError(t, err)

	hits, err := s.Search(ctx, "nokia g42 review")
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	for _, h := range hits {
		assert.NotEmpty(t, h.URL)
	}

	sc := scraper.New(cfg.Scraper, logger)
	scraped := 0
	for _, h := range hits[:min(3, len(hits))] {
		if page, ok := sc.Scrape(ctx, h.URL); ok {
			scraped++
			assert.NotEmpty(t, page.CleanText)
		}
	}
	t.Logf("scraped %d of %d pages", scraped, min(3, len(hits)))
}

func TestFullComparison(t *testing.T) {
	cfg := loadConfig(t)
	logger := zap.NewExample()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	c, err := core.NewFromConfig(ctx, cfg, logger)
	require.NoError(t, err)

	result, err := c.Compare(ctx, "nokia g42", "moto g34", "I really like smaller phones")
	require.NoError(t, err)

	assert.GreaterOrEqual(t, len(result.Comparisons), 2)
	assert.LessOrEqual(t, len(result.Comparisons), 5)
	assert.NotEmpty(t, result.FinalVerdict)
	for _, cat := range result.Comparisons {
		assert.NotEmpty(t, cat.CategoryTitle)
		assert.NotEmpty(t, cat.Product1Text)
		assert.NotEmpty(t, cat.Product2Text)
	}
}

func TestInvalidRequest(t *testing.T) {
	cfg := loadConfig(t)

	c, err := core.NewFromConfig(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	_, err = c.Compare(context.Background(), "", "moto g34", "")
	assert.ErrorIs(t, err, model.ErrInvalidRequest)
}

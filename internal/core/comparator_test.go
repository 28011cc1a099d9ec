package core

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/versus/internal/config"
	"github.com/agenthands/versus/internal/core/model"
	"github.com/agenthands/versus/internal/llm"
	"github.com/agenthands/versus/internal/workpool"
)

const comparisonJSON = `{
	"comparisons": [
		{"category_title": "Battery", "category_description": "Time between charges.", "product1_text": "A lasts a day.", "product2_text": "B lasts two days."},
		{"category_title": "Camera", "category_description": "Everyday photos.", "product1_text": "A is fine.", "product2_text": "B is sharper."},
		{"category_title": "Size", "category_description": "Comfort in hand.", "product1_text": "A is big.", "product2_text": "B is compact."}
	],
	"final_verdict": "Phone B is the better choice."
}`

func fiveHits(product, host string) []model.SearchHit {
	hits := make([]model.SearchHit, 5)
	for i := range hits {
		hits[i] = model.SearchHit{
			Title:   fmt.Sprintf("%s review %d", product, i+1),
			Snippet: "snippet",
			URL:     fmt.Sprintf("https://%s/review-%d", host, i+1),
		}
	}
	return hits
}

type fixture struct {
	searcher      *MockSearcher
	relevanceLLM  *llm.MockClient
	comparisonLLM *llm.MockClient
	scraper       *MockScraper
	comparator    *Comparator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		searcher: &MockSearcher{Results: map[string][]model.SearchHit{
			"Phone A review": fiveHits("Phone A", "a.example"),
			"Phone B review": fiveHits("Phone B", "b.example"),
		}},
		relevanceLLM: &llm.MockClient{Routes: map[string]string{
			`query "Phone A review"`: `["https://a.example/review-2", "https://a.example/review-4"]`,
			`query "Phone B review"`: `["https://b.example/review-1", "https://b.example/review-3"]`,
		}},
		comparisonLLM: &llm.MockClient{Response: comparisonJSON},
		scraper: &MockScraper{Pages: map[string]string{
			"https://a.example/review-4": "A is big.",
			"https://b.example/review-1": "B is small.",
			"https://b.example/review-3": "B lasts long.",
		}},
	}

	cfg := config.Default()
	cfg.Pipeline.LinksPerProduct = 2

	c, err := NewComparator(f.searcher, f.relevanceLLM, f.comparisonLLM, f.scraper, workpool.New(4), cfg, nil)
	require.NoError(t, err)
	f.comparator = c
	return f
}

func TestCompare_EndToEnd(t *testing.T) {
	f := newFixture(t)

	result, err := f.comparator.Compare(t.Context(), "Phone A", "Phone B", "I like small phones")
	require.NoError(t, err)

	require.Len(t, result.Comparisons, 3)
	assert.Equal(t, "Battery", result.Comparisons[0].CategoryTitle)
	assert.Equal(t, "B is compact.", result.Comparisons[2].Product2Text)
	assert.Equal(t, "Phone B is the better choice.", result.FinalVerdict)

	assert.ElementsMatch(t, []string{"Phone A review", "Phone B review"}, f.searcher.Queries())
	assert.Len(t, f.relevanceLLM.Prompts(), 2)
	assert.ElementsMatch(t, []string{
		"https://a.example/review-2", "https://a.example/review-4",
		"https://b.example/review-1", "https://b.example/review-3",
	}, f.scraper.Scraped())

	prompts := f.comparisonLLM.Prompts()
	require.Len(t, prompts, 1)
	// Phone A kept one page, Phone B both pages in filter order
	assert.Contains(t, prompts[0], "===== Phone A REVIEWS START HERE =====\nA is big.\n===== Phone A REVIEWS END HERE =====")
	assert.Contains(t, prompts[0], "===== Phone B REVIEWS START HERE =====\nB is small.\n\n-----\n\nB lasts long.\n===== Phone B REVIEWS END HERE =====")
	assert.Contains(t, prompts[0], `"I like small phones"`)
}

func TestCompare_TrimsProductNames(t *testing.T) {
	f := newFixture(t)

	_, err := f.comparator.Compare(t.Context(), "  Phone A ", "Phone B\n", "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Phone A review", "Phone B review"}, f.searcher.Queries())
}

func TestCompare_InvalidRequest(t *testing.T) {
	f := newFixture(t)

	_, err := f.comparator.Compare(t.Context(), "Phone A", "   ", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidRequest)
	assert.Empty(t, f.searcher.Queries())
}

func TestCompare_SearchUnavailable(t *testing.T) {
	f := newFixture(t)
	f.searcher.Errs = map[string]error{
		"Phone B review": fmt.Errorf("%w: status 503", model.ErrSearchUnavailable),
	}

	_, err := f.comparator.Compare(t.Context(), "Phone A", "Phone B", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrSearchUnavailable)

	var stageErr *model.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, model.StageSearch, stageErr.Stage)
	assert.Equal(t, "Phone B", stageErr.Product)
	assert.Empty(t, f.comparisonLLM.Prompts())
}

func TestCompare_RelevanceParseError(t *testing.T) {
	f := newFixture(t)
	f.relevanceLLM.Routes[`query "Phone A review"`] = "Sure! Here are the best links."

	_, err := f.comparator.Compare(t.Context(), "Phone A", "Phone B", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrRelevanceParse)

	var stageErr *model.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, model.StageRelevance, stageErr.Stage)
	assert.Empty(t, f.comparisonLLM.Prompts())
}

func TestCompare_ComparisonParseError(t *testing.T) {
	f := newFixture(t)
	f.comparisonLLM.Response = `{"comparisons": [], "final_verdict": "B"}`

	result, err := f.comparator.Compare(t.Context(), "Phone A", "Phone B", "")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, model.ErrComparisonParse)

	var stageErr *model.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, model.StageComparison, stageErr.Stage)
}

func TestCompare_AllScrapesFail(t *testing.T) {
	f := newFixture(t)
	f.scraper.Pages = map[string]string{}

	result, err := f.comparator.Compare(t.Context(), "Phone A", "Phone B", "")
	require.NoError(t, err)
	assert.NotEmpty(t, result.FinalVerdict)
	assert.Contains(t, f.comparisonLLM.Prompts()[0], "===== Phone A REVIEWS START HERE =====\n\n===== Phone A REVIEWS END HERE =====")
}

func TestCompare_NoSearchHits(t *testing.T) {
	f := newFixture(t)
	f.searcher.Results["Phone A review"] = nil

	_, err := f.comparator.Compare(t.Context(), "Phone A", "Phone B", "")
	require.NoError(t, err)
	// only Phone B needed a relevance call
	assert.Len(t, f.relevanceLLM.Prompts(), 1)
}

func TestCompare_HallucinatedLinkNotScraped(t *testing.T) {
	f := newFixture(t)
	f.relevanceLLM.Routes[`query "Phone A review"`] = `["https://invented.example/a", "https://a.example/review-4"]`

	_, err := f.comparator.Compare(t.Context(), "Phone A", "Phone B", "")
	require.NoError(t, err)
	assert.NotContains(t, f.scraper.Scraped(), "https://invented.example/a")
}

func TestCompare_LLMTransportError(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("connection refused")
	f.comparisonLLM.Err = boom

	_, err := f.comparator.Compare(t.Context(), "Phone A", "Phone B", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestCompare_CancelledContextSkipsScraping(t *testing.T) {
	f := newFixture(t)
	f.searcher.Errs = map[string]error{}

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	// mocks ignore cancellation, so the comparison still completes with empty corpora
	result, err := f.comparator.Compare(ctx, "Phone A", "Phone B", "")
	require.NoError(t, err)
	assert.Empty(t, f.scraper.Scraped())
	assert.NotNil(t, result)
}

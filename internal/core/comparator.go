// Package core runs the product comparison pipeline:
// search, relevance filtering, scraping and aggregation for both products
// concurrently, then one comparison over the two corpora.
package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/agenthands/versus/internal/config"
	"github.com/agenthands/versus/internal/core/aggregate"
	"github.com/agenthands/versus/internal/core/common"
	"github.com/agenthands/versus/internal/core/compare"
	"github.com/agenthands/versus/internal/core/model"
	"github.com/agenthands/versus/internal/core/relevance"
	"github.com/agenthands/versus/internal/llm"
	"github.com/agenthands/versus/internal/metrics"
	"github.com/agenthands/versus/internal/search"
	"github.com/agenthands/versus/internal/workpool"
)

const stageRequest = "request"

type Comparator struct {
	Searcher        search.Searcher
	Filter          *relevance.Filter
	Aggregator      *aggregate.Aggregator
	Generator       *compare.Generator
	QuerySuffix     string
	LinksPerProduct int
	Logger          *zap.Logger
}

// NewComparator wires the pipeline. The pool is shared with every other
// comparator in the process so scraping stays bounded across requests.
func NewComparator(
	searcher search.Searcher,
	relevanceLLM llm.Client,
	comparisonLLM llm.Client,
	scraper aggregate.PageScraper,
	pool *workpool.Pool,
	cfg *config.Config,
	logger *zap.Logger,
) (*Comparator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	filter, err := relevance.NewFilter(relevanceLLM, cfg.Prompts.Relevance, logger)
	if err != nil {
		return nil, err
	}
	generator, err := compare.NewGenerator(comparisonLLM, cfg.Prompts.Comparison, logger)
	if err != nil {
		return nil, err
	}

	return &Comparator{
		Searcher:        searcher,
		Filter:          filter,
		Aggregator:      aggregate.NewAggregator(scraper, pool, cfg.Pipeline.Separator, cfg.Pipeline.MaxCorpusChars, logger),
		Generator:       generator,
		QuerySuffix:     cfg.Pipeline.QuerySuffix,
		LinksPerProduct: cfg.Pipeline.LinksPerProduct,
		Logger:          logger.Named("comparator"),
	}, nil
}

// Compare returns a comparison of product1 and product2, optionally tailored to
// userContext. Pipeline failures are returned as *model.StageError; scrape
// failures only shrink the corpora and never fail the request.
func (c *Comparator) Compare(ctx context.Context, product1, product2, userContext string) (*model.ComparisonResult, error) {
	q1 := model.NewProductQuery(product1, c.QuerySuffix)
	q2 := model.NewProductQuery(product2, c.QuerySuffix)
	if q1.ProductName == "" || q2.ProductName == "" {
		metrics.RecordComparison(stageRequest)
		return nil, fmt.Errorf("%w: both product names are required", model.ErrInvalidRequest)
	}

	start := time.Now()
	ctx, ledger := common.WithLinkLedger(ctx)

	var corpora [2]model.ReviewCorpus
	g, gctx := errgroup.WithContext(ctx)
	for i, q := range []model.ProductQuery{q1, q2} {
		g.Go(func() error {
			corpus, err := c.gatherReviews(gctx, q)
			if err != nil {
				return err
			}
			corpora[i] = corpus
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		metrics.RecordComparison(stageOf(err))
		return nil, err
	}

	result, err := c.Generator.Generate(ctx, corpora[0], corpora[1], userContext)
	if err != nil {
		metrics.RecordComparison(model.StageComparison)
		return nil, &model.StageError{Stage: model.StageComparison, Err: err}
	}

	metrics.RecordComparison("")
	c.Logger.Info("comparison completed",
		zap.String("product1", q1.ProductName),
		zap.String("product2", q2.ProductName),
		zap.Int("categories", len(result.Comparisons)),
		zap.Int("search_links", ledger.Len()),
		zap.Duration("duration", time.Since(start)),
	)
	return result, nil
}

// gatherReviews runs search, relevance filtering and aggregation for one product.
func (c *Comparator) gatherReviews(ctx context.Context, q model.ProductQuery) (model.ReviewCorpus, error) {
	hits, err := c.Searcher.Search(ctx, q.SearchQuery)
	if err != nil {
		return model.ReviewCorpus{}, &model.StageError{Stage: model.StageSearch, Product: q.ProductName, Err: err}
	}
	if ledger := common.LinkLedgerFrom(ctx); ledger != nil {
		for _, h := range hits {
			ledger.Record(h.URL)
		}
	}

	links, err := c.Filter.Filter(ctx, q.SearchQuery, hits, c.LinksPerProduct)
	if err != nil {
		return model.ReviewCorpus{}, &model.StageError{Stage: model.StageRelevance, Product: q.ProductName, Err: err}
	}

	c.Logger.Debug("selected review links",
		zap.String("product", q.ProductName),
		zap.Int("hits", len(hits)),
		zap.Strings("links", links),
	)

	return c.Aggregator.Aggregate(ctx, q.ProductName, links), nil
}

func stageOf(err error) string {
	var stageErr *model.StageError
	if errors.As(err, &stageErr) {
		return stageErr.Stage
	}
	return stageRequest
}

// Package aggregate builds one product's review corpus from its chosen links.
package aggregate

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/agenthands/versus/internal/core/common"
	"github.com/agenthands/versus/internal/core/model"
	"github.com/agenthands/versus/internal/workpool"
)

// PageScraper fetches a single page. It reports false when the page could not be used.
type PageScraper interface {
	Scrape(ctx context.Context, url string) (*model.ScrapedPage, bool)
}

type Aggregator struct {
	Scraper   PageScraper
	Pool      *workpool.Pool
	Separator string
	// MaxChars caps the corpus length; zero means unlimited.
	MaxChars int
	Logger   *zap.Logger
}

func NewAggregator(scraper PageScraper, pool *workpool.Pool, separator string, maxChars int, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		Scraper:   scraper,
		Pool:      pool,
		Separator: separator,
		MaxChars:  maxChars,
		Logger:    logger.Named("aggregate"),
	}
}

// Aggregate scrapes urls concurrently and joins the pages that succeeded, in the
// order of urls. Failed pages are skipped; if none succeed the corpus is empty.
func (a *Aggregator) Aggregate(ctx context.Context, productName string, urls []string) model.ReviewCorpus {
	ledger := common.LinkLedgerFrom(ctx)
	pages := make([]*model.ScrapedPage, len(urls))

	var g errgroup.Group
	for i, u := range urls {
		if ledger != nil && !ledger.Seen(u) {
			a.Logger.Warn("scraping link absent from search results",
				zap.String("product", productName),
				zap.String("url", u),
			)
		}

		g.Go(func() error {
			// a pool error means ctx ended; the page just stays missing
			_ = a.Pool.Do(ctx, func(ctx context.Context) {
				if page, ok := a.Scraper.Scrape(ctx, u); ok {
					pages[i] = page
				}
			})
			return nil
		})
	}
	_ = g.Wait()

	corpus := model.ReviewCorpus{ProductName: productName}
	var texts []string
	for _, p := range pages {
		if p == nil {
			continue
		}
		texts = append(texts, p.CleanText)
		corpus.Sources = append(corpus.Sources, p.URL)
	}
	corpus.Content = a.truncate(productName, strings.Join(texts, a.Separator))

	a.Logger.Info("aggregated reviews",
		zap.String("product", productName),
		zap.Int("requested", len(urls)),
		zap.Int("scraped", len(corpus.Sources)),
		zap.Int("chars", len(corpus.Content)),
	)
	return corpus
}

func (a *Aggregator) truncate(productName, content string) string {
	if a.MaxChars <= 0 {
		return content
	}
	runes := []rune(content)
	if len(runes) <= a.MaxChars {
		return content
	}
	a.Logger.Info("truncated review corpus",
		zap.String("product", productName),
		zap.Int("chars", len(runes)),
		zap.Int("limit", a.MaxChars),
	)
	return string(runes[:a.MaxChars])
}

// Package scraper turns a review URL into readable plain text.
package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/agenthands/versus/internal/config"
	"github.com/agenthands/versus/internal/core/model"
	"github.com/agenthands/versus/internal/metrics"
)

var (
	errScrapeStatus      = errors.New("unexpected status")
	errScrapeContentType = errors.New("not an HTML document")
	errScrapeEmpty       = errors.New("no readable text")
)

// Scraper fetches one page per call. A failed scrape is an expected outcome: it is
// logged and counted, and the caller just gets no page.
type Scraper struct {
	client       *http.Client
	userAgent    string
	maxBodyBytes int64
	logger       *zap.Logger
}

func New(cfg config.ScraperConfig, logger *zap.Logger) *Scraper {
	return newScraper(cfg, nil, logger)
}

func newScraper(cfg config.ScraperConfig, transport http.RoundTripper, logger *zap.Logger) *Scraper {
	if logger == nil {
		logger = zap.NewNop()
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 5 << 20
	}
	return &Scraper{
		client: newHTTPClient(clientConfig{
			Timeout:      config.Seconds(cfg.TimeoutSeconds, 20*time.Second),
			MaxRedirects: cfg.MaxRedirects,
			Transport:    transport,
		}),
		userAgent:    cfg.UserAgent,
		maxBodyBytes: maxBody,
		logger:       logger.Named("scraper"),
	}
}

// Scrape fetches targetURL once and extracts its readable text. It reports false
// on any fetch, timeout or extraction failure.
func (s *Scraper) Scrape(ctx context.Context, targetURL string) (*model.ScrapedPage, bool) {
	start := time.Now()
	page, err := s.scrape(ctx, targetURL)
	metrics.RecordScrape(err == nil, time.Since(start))
	if err != nil {
		s.logger.Warn("scrape failed",
			zap.String("url", targetURL),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return nil, false
	}
	s.logger.Debug("scraped page",
		zap.String("url", targetURL),
		zap.Int("chars", len(page.CleanText)),
	)
	return page, true
}

func (s *Scraper) scrape(ctx context.Context, targetURL string) (*model.ScrapedPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.5")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %d", errScrapeStatus, resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !isReadable(ct) {
		return nil, fmt.Errorf("%w: %s", errScrapeContentType, ct)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	title, text, err := extract(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	if text == "" {
		return nil, errScrapeEmpty
	}

	return &model.ScrapedPage{
		URL:       targetURL,
		Title:     title,
		CleanText: text,
	}, nil
}

func isReadable(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml" || strings.HasPrefix(mediaType, "text/plain")
}

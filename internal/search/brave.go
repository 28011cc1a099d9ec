package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/agenthands/versus/internal/config"
	"github.com/agenthands/versus/internal/core/model"
	"github.com/agenthands/versus/internal/metrics"
)

const (
	braveProvider   = "brave"
	braveSearchPath = "/res/v1/web/search"
	maxErrorBody    = 512
)

// BraveClient handles communication with the Brave web search API.
type BraveClient struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	count       int
	rateLimiter *rate.Limiter
	logger      *zap.Logger
}

func NewBraveClient(cfg config.SearchConfig, logger *zap.Logger) *BraveClient {
	if logger == nil {
		logger = zap.NewNop()
	}

	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	return &BraveClient{
		httpClient: &http.Client{
			Timeout: config.Seconds(cfg.TimeoutSeconds, 15*time.Second),
		},
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		count:       cfg.ResultCount,
		rateLimiter: rate.NewLimiter(limit, burst),
		logger:      logger.Named("search").With(zap.String("provider", braveProvider)),
	}
}

// Search runs a web search. A query with no results yields an empty slice.
func (c *BraveClient) Search(ctx context.Context, query string) ([]model.SearchHit, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty search query", model.ErrInvalidRequest)
	}

	hits, err := c.search(ctx, query)
	outcome := metrics.OutcomeOK
	if err != nil {
		outcome = metrics.OutcomeError
		c.logger.Warn("search failed", zap.String("query", query), zap.Error(err))
	} else {
		c.logger.Debug("search completed", zap.String("query", query), zap.Int("hits", len(hits)))
	}
	metrics.SearchRequestsTotal.WithLabelValues(braveProvider, outcome).Inc()
	return hits, err
}

func (c *BraveClient) search(ctx context.Context, query string) ([]model.SearchHit, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %v", model.ErrSearchUnavailable, err)
	}

	params := url.Values{}
	params.Set("q", query)
	if c.count > 0 {
		params.Set("count", strconv.Itoa(c.count))
	}
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, braveSearchPath, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", model.ErrSearchUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrSearchUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", model.ErrSearchUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := string(body)
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return nil, fmt.Errorf("%w: status %d: %s", model.ErrSearchUnavailable, resp.StatusCode, snippet)
	}

	return parseBraveResults(body)
}

// parseBraveResults maps web.results[] to hits. Entries without a URL are skipped;
// a missing web section means no results.
func parseBraveResults(body []byte) ([]model.SearchHit, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: malformed response body", model.ErrSearchUnavailable)
	}

	results := gjson.GetBytes(body, "web.results")
	hits := make([]model.SearchHit, 0, len(results.Array()))
	for _, r := range results.Array() {
		link := r.Get("url").String()
		if link == "" {
			continue
		}
		hits = append(hits, model.SearchHit{
			Title:   r.Get("title").String(),
			Snippet: r.Get("description").String(),
			URL:     link,
		})
	}
	return hits, nil
}

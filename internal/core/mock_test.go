package core

import (
	"context"
	"sync"

	"github.com/agenthands/versus/internal/core/model"
)

type MockSearcher struct {
	Results map[string][]model.SearchHit
	Errs    map[string]error

	mu      sync.Mutex
	queries []string
}

func (m *MockSearcher) Search(ctx context.Context, query string) ([]model.SearchHit, error) {
	m.mu.Lock()
	m.queries = append(m.queries, query)
	m.mu.Unlock()

	if err := m.Errs[query]; err != nil {
		return nil, err
	}
	return m.Results[query], nil
}

func (m *MockSearcher) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.queries...)
}

// MockScraper serves Pages; any other URL fails.
type MockScraper struct {
	Pages map[string]string

	mu      sync.Mutex
	scraped []string
}

func (m *MockScraper) Scrape(ctx context.Context, url string) (*model.ScrapedPage, bool) {
	m.mu.Lock()
	m.scraped = append(m.scraped, url)
	m.mu.Unlock()

	text, ok := m.Pages[url]
	if !ok {
		return nil, false
	}
	return &model.ScrapedPage{URL: url, CleanText: text}, true
}

func (m *MockScraper) Scraped() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.scraped...)
}

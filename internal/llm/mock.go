package llm

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
)

// MockClient is a scripted Client for tests. It is safe for concurrent use.
//
// Lookup order: the first Routes key, in sorted order, contained in the prompt,
// then ResponseQueue, then Response.
type MockClient struct {
	Response      string
	ResponseQueue []string
	Routes        map[string]string
	Err           error

	mu      sync.Mutex
	prompts []string
}

func (m *MockClient) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.prompts = append(m.prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	for _, key := range slices.Sorted(maps.Keys(m.Routes)) {
		if strings.Contains(prompt, key) {
			return m.Routes[key], nil
		}
	}
	if len(m.ResponseQueue) > 0 {
		resp := m.ResponseQueue[0]
		m.ResponseQueue = m.ResponseQueue[1:]
		return resp, nil
	}
	return m.Response, nil
}

// Prompts returns every prompt received so far.
func (m *MockClient) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

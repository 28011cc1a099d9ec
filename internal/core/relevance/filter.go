// Package relevance asks an LLM to pick the most useful review links among search hits.
package relevance

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/agenthands/versus/internal/core/common"
	"github.com/agenthands/versus/internal/core/model"
	"github.com/agenthands/versus/internal/core/prompt"
	"github.com/agenthands/versus/internal/llm"
	"github.com/agenthands/versus/internal/metrics"
)

const (
	reasonUnknown   = "not_in_results"
	reasonDuplicate = "duplicate"
	reasonOverflow  = "over_limit"
)

type Filter struct {
	LLM    llm.Client
	Prompt *prompt.Template
	Logger *zap.Logger
}

func NewFilter(llmClient llm.Client, promptText string, logger *zap.Logger) (*Filter, error) {
	tmpl, err := prompt.Parse("relevance", promptText, prompt.RelevanceData{})
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Filter{
		LLM:    llmClient,
		Prompt: tmpl,
		Logger: logger.Named("relevance"),
	}, nil
}

// Filter returns at most k URLs chosen by the model from hits, in the model's order.
// Links the model invents, repeats or returns beyond k are dropped; a shorter list
// is accepted as is. Unparseable output fails with model.ErrRelevanceParse.
func (f *Filter) Filter(ctx context.Context, query string, hits []model.SearchHit, k int) ([]string, error) {
	if len(hits) == 0 || k < 1 {
		return []string{}, nil
	}

	results, err := serializeHits(hits)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize search results: %w", err)
	}

	p, err := f.Prompt.Render(prompt.RelevanceData{
		Query:   query,
		Results: results,
		Count:   k,
	})
	if err != nil {
		return nil, err
	}

	response, err := f.LLM.Complete(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to generate relevant links: %w", err)
	}

	links, err := parseLinks(response)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrRelevanceParse, err)
	}

	return f.enforce(query, hits, links, k), nil
}

func (f *Filter) enforce(query string, hits []model.SearchHit, links []string, k int) []string {
	known := make(map[string]struct{}, len(hits))
	for _, h := range hits {
		known[h.URL] = struct{}{}
	}

	kept := make([]string, 0, k)
	seen := make(map[string]struct{}, len(links))
	for _, link := range links {
		reason := ""
		switch _, dup := seen[link]; {
		case dup:
			reason = reasonDuplicate
		case !isKnown(known, link):
			reason = reasonUnknown
		case len(kept) >= k:
			reason = reasonOverflow
		}
		seen[link] = struct{}{}

		if reason != "" {
			metrics.RelevanceDroppedLinks.WithLabelValues(reason).Inc()
			f.Logger.Warn("dropped relevance link",
				zap.String("query", query),
				zap.String("url", link),
				zap.String("reason", reason),
			)
			continue
		}
		kept = append(kept, link)
	}

	if len(kept) < k {
		f.Logger.Info("fewer relevant links than requested",
			zap.String("query", query),
			zap.Int("requested", k),
			zap.Int("kept", len(kept)),
		)
	}
	return kept
}

// parseLinks decodes a JSON array whose items must all be strings; a null item
// is malformed output, not an empty link.
func parseLinks(response string) ([]string, error) {
	items, err := common.ParseJSON[[]*string](response)
	if err != nil {
		return nil, err
	}
	links := make([]string, len(items))
	for i, item := range items {
		if item == nil {
			return nil, fmt.Errorf("item %d is null", i)
		}
		links[i] = *item
	}
	return links, nil
}

// serializeHits renders hits as a compact JSON array. URLs are left unescaped so the
// model can copy them verbatim.
func serializeHits(hits []model.SearchHit) (string, error) {
	var sb strings.Builder
	enc := json.NewEncoder(&sb)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(hits); err != nil {
		return "", err
	}
	return strings.TrimSpace(sb.String()), nil
}

func isKnown(known map[string]struct{}, link string) bool {
	_, ok := known[link]
	return ok
}

// Package prompt renders the configured LLM prompt templates.
package prompt

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/agenthands/versus/internal/config"
)

type Template struct {
	tmpl *template.Template
}

// Parse compiles text and renders it once against the zero value of sample, so a
// template naming a field the data lacks fails at startup instead of on every
// request. Failures wrap config.ErrConfiguration.
func Parse(name, text string, sample any) (*Template, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s prompt: %v", config.ErrConfiguration, name, err)
	}
	t := &Template{tmpl: tmpl}
	if _, err := t.Render(sample); err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrConfiguration, err)
	}
	return t, nil
}

func (t *Template) Render(data any) (string, error) {
	var sb strings.Builder
	if err := t.tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render %s prompt: %w", t.tmpl.Name(), err)
	}
	return sb.String(), nil
}

// RelevanceData feeds the relevance template. Results is the JSON array of hits.
type RelevanceData struct {
	Query   string
	Results string
	Count   int
}

// ComparisonData feeds the comparison template. UserRequest is empty when the
// user shared nothing about themselves.
type ComparisonData struct {
	Product1Name    string
	Product1Content string
	Product2Name    string
	Product2Content string
	UserRequest     string
}

package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ParseJSON unmarshals an LLM response into a value of type T.
// The response must be a single JSON value; only surrounding whitespace is
// tolerated. Markdown fences, prose or trailing data are rejected.
func ParseJSON[T any](response string) (T, error) {
	var zero T

	trimmed := strings.TrimSpace(response)
	if trimmed == "" {
		return zero, errors.New("empty response")
	}
	if trimmed == "null" {
		return zero, errors.New("response is JSON null")
	}

	dec := json.NewDecoder(strings.NewReader(trimmed))
	var result T
	if err := dec.Decode(&result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal JSON: %w\nData: %s", err, truncate(trimmed, 200))
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return zero, fmt.Errorf("unexpected data after JSON value\nData: %s", truncate(trimmed, 200))
	}

	return result, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

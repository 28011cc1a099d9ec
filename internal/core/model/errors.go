package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest is returned when a comparison is requested with missing product names.
	ErrInvalidRequest = errors.New("invalid comparison request")

	// ErrSearchUnavailable is returned when the search provider is unreachable or answers with an error status.
	ErrSearchUnavailable = errors.New("search provider unavailable")

	// ErrRelevanceParse is returned when the relevance model does not answer with a JSON array of URLs.
	ErrRelevanceParse = errors.New("relevance response is not a JSON array of URLs")

	// ErrComparisonParse is returned when the comparison model does not answer with a well-formed comparison object.
	ErrComparisonParse = errors.New("comparison response is not a valid comparison object")
)

const (
	StageSearch     = "search"
	StageRelevance  = "relevance"
	StageComparison = "comparison"
)

// StageError records which pipeline stage failed, and for which product when the
// stage runs per product.
type StageError struct {
	Stage   string
	Product string
	Err     error
}

func (e *StageError) Error() string {
	if e.Product != "" {
		return fmt.Sprintf("%s stage failed for %q: %v", e.Stage, e.Product, e.Err)
	}
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

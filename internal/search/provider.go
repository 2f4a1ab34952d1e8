package search

import (
	"context"

	"github.com/veristat/veristat/internal/model"
)

// Searcher retrieves candidate evidence documents for a query. A transport
// failure surfaces as an error; the pipeline degrades it to an empty
// evidence list and an "Insufficient evidence" verdict.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]model.SearchResult, error)
}

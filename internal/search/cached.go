package search

import (
	"context"
	"encoding/json"
	"time"

	"github.com/veristat/veristat/internal/cache"
	"github.com/veristat/veristat/internal/model"
)

// CachedSearcher wraps a Searcher with query-keyed result caching. A cache
// hit avoids both the network call and the rate limiter.
type CachedSearcher struct {
	inner Searcher
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedSearcher creates a caching decorator around a searcher
func NewCachedSearcher(inner Searcher, c cache.Cache, ttl time.Duration) *CachedSearcher {
	return &CachedSearcher{
		inner: inner,
		cache: c,
		ttl:   ttl,
	}
}

// Search returns cached results when available, otherwise delegates and
// stores the outcome. Failed searches are never cached.
func (s *CachedSearcher) Search(ctx context.Context, query string, maxResults int) ([]model.SearchResult, error) {
	key := cache.Key(query, maxResults)

	if data, found := s.cache.Get(key); found {
		var results []model.SearchResult
		if err := json.Unmarshal(data, &results); err == nil {
			return results, nil
		}
		// Corrupt entry: drop it and fall through to a fresh search
		_ = s.cache.Delete(key)
	}

	results, err := s.inner.Search(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(results); err == nil {
		_ = s.cache.Set(key, data, s.ttl)
	}

	return results, nil
}

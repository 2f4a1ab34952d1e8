package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/veristat/veristat/internal/cache"
	"github.com/veristat/veristat/internal/model"
)

type countingSearcher struct {
	calls   int
	results []model.SearchResult
	err     error
}

func (s *countingSearcher) Search(ctx context.Context, query string, maxResults int) ([]model.SearchResult, error) {
	s.calls++
	return s.results, s.err
}

func TestCachedSearcher_HitSkipsInner(t *testing.T) {
	inner := &countingSearcher{results: []model.SearchResult{
		{Title: "t", Body: "b", Href: "https://example.com"},
	}}
	cached := NewCachedSearcher(inner, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)

	first, err := cached.Search(context.Background(), "query", 5)
	if err != nil {
		t.Fatalf("first search: %v", err)
	}
	second, err := cached.Search(context.Background(), "query", 5)
	if err != nil {
		t.Fatalf("second search: %v", err)
	}

	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls)
	}
	if len(first) != 1 || len(second) != 1 || second[0].Title != "t" {
		t.Errorf("cached results differ: %v vs %v", first, second)
	}
}

func TestCachedSearcher_DistinctKeys(t *testing.T) {
	inner := &countingSearcher{results: []model.SearchResult{{Title: "t", Body: "b"}}}
	cached := NewCachedSearcher(inner, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)

	_, _ = cached.Search(context.Background(), "query", 5)
	_, _ = cached.Search(context.Background(), "query", 10) // different limit
	_, _ = cached.Search(context.Background(), "other", 5)  // different query

	if inner.calls != 3 {
		t.Errorf("inner calls = %d, want 3", inner.calls)
	}
}

func TestCachedSearcher_FailuresNotCached(t *testing.T) {
	inner := &countingSearcher{err: errors.New("network down")}
	cached := NewCachedSearcher(inner, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)

	if _, err := cached.Search(context.Background(), "q", 5); err == nil {
		t.Fatal("expected error")
	}
	if _, err := cached.Search(context.Background(), "q", 5); err == nil {
		t.Fatal("expected error")
	}

	if inner.calls != 2 {
		t.Errorf("inner calls = %d, want 2 (failures must not be cached)", inner.calls)
	}
}

func TestCachedSearcher_CorruptEntryDropped(t *testing.T) {
	inner := &countingSearcher{results: []model.SearchResult{{Title: "fresh", Body: "b"}}}
	mem := cache.NewMemoryCache(time.Minute, time.Minute)
	cached := NewCachedSearcher(inner, mem, time.Minute)

	_ = mem.Set(cache.Key("q", 5), []byte("{corrupt"), time.Minute)

	results, err := cached.Search(context.Background(), "q", 5)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1 after dropping corrupt entry", inner.calls)
	}
	if len(results) != 1 || results[0].Title != "fresh" {
		t.Errorf("results = %v", results)
	}
}

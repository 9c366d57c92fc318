package search_test

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/merchantlab/consult-go/domain/knowledge"
	"github.com/merchantlab/consult-go/domain/profile"
	"github.com/merchantlab/consult-go/infrastructure/search"
	"github.com/merchantlab/consult-go/infrastructure/storage/memory"
)

func seededSearcher(t *testing.T) *search.MemorySearcher {
	t.Helper()

	s := search.NewMemorySearcher()
	err := s.Index(
		knowledge.Document{
			ID:       "strategy-1",
			Category: knowledge.CategoryStrategy,
			Content:  "loyalty stamp card programs increase repeat visits for small restaurants",
			Metadata: map[string]string{"title": "Loyalty basics"},
		},
		knowledge.Document{
			ID:       "strategy-2",
			Category: knowledge.CategoryStrategy,
			Content:  "delivery app commission negotiation tactics",
			Metadata: map[string]string{"title": "Delivery costs"},
		},
		knowledge.Document{
			ID:       "trend-1",
			Category: knowledge.CategoryTrend,
			Content:  "late night delivery demand is growing in Seongdong-gu",
		},
	)
	if err != nil {
		t.Fatalf("Index() unexpected error: %v", err)
	}
	return s
}

func TestMemorySearcherRanksByOverlap(t *testing.T) {
	t.Parallel()

	s := seededSearcher(t)

	docs, err := s.Search(context.Background(), knowledge.CategoryStrategy, "loyalty repeat visits", 5)
	if err != nil {
		t.Fatalf("Search() unexpected error: %v", err)
	}
	if len(docs) == 0 || docs[0].ID != "strategy-1" {
		t.Fatalf("Search() = %+v, want strategy-1 first", docs)
	}
	// Category isolation: trend docs never leak into strategy results.
	for _, d := range docs {
		if d.Category != knowledge.CategoryStrategy {
			t.Errorf("document %s from category %s leaked into strategy search", d.ID, d.Category)
		}
	}
}

func TestMemorySearcherCollapsesIdenticalContent(t *testing.T) {
	t.Parallel()

	s := search.NewMemorySearcher()
	err := s.Index(
		knowledge.Document{
			ID:       "strategy-1",
			Category: knowledge.CategoryStrategy,
			Content:  "loyalty stamp card programs increase repeat visits",
		},
		knowledge.Document{
			ID:       "strategy-1-copy",
			Category: knowledge.CategoryStrategy,
			Content:  "loyalty stamp card programs increase repeat visits",
		},
	)
	if err != nil {
		t.Fatalf("Index() unexpected error: %v", err)
	}

	docs, err := s.Search(context.Background(), knowledge.CategoryStrategy, "loyalty stamp", 5)
	if err != nil {
		t.Fatalf("Search() unexpected error: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("got %d results, want identical content collapsed to 1: %+v", len(docs), docs)
	}
	if docs[0].ID != "strategy-1" {
		t.Errorf("kept %q, want the first occurrence", docs[0].ID)
	}
}

func TestMemorySearcherValidation(t *testing.T) {
	t.Parallel()

	s := seededSearcher(t)
	ctx := context.Background()

	if _, err := s.Search(ctx, "finance", "q", 5); !errors.Is(err, knowledge.ErrUnknownCategory) {
		t.Errorf("unknown category error = %v", err)
	}
	if _, err := s.Search(ctx, knowledge.CategoryStrategy, "  ", 5); !errors.Is(err, knowledge.ErrEmptyQuery) {
		t.Errorf("empty query error = %v", err)
	}
	if err := s.Index(knowledge.Document{ID: "x", Category: "finance"}); !errors.Is(err, knowledge.ErrUnknownCategory) {
		t.Errorf("Index() with unknown category error = %v", err)
	}
}

type countingSearcher struct {
	inner knowledge.Searcher
	calls atomic.Int64
}

func (c *countingSearcher) Search(ctx context.Context, category knowledge.Category, query string, limit int) ([]knowledge.Document, error) {
	c.calls.Add(1)
	return c.inner.Search(ctx, category, query, limit)
}

func TestCachedSearcherMemoizes(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	counting := &countingSearcher{inner: seededSearcher(t)}
	cached := search.NewCachedSearcher(counting, memory.NewCache(), time.Minute)

	first, err := cached.Search(ctx, knowledge.CategoryStrategy, "loyalty", 5)
	if err != nil {
		t.Fatalf("Search() unexpected error: %v", err)
	}
	second, err := cached.Search(ctx, knowledge.CategoryStrategy, "loyalty", 5)
	if err != nil {
		t.Fatalf("cached Search() unexpected error: %v", err)
	}
	if counting.calls.Load() != 1 {
		t.Errorf("inner searcher called %d times, want 1", counting.calls.Load())
	}
	if len(first) != len(second) || first[0].ID != second[0].ID {
		t.Errorf("cached result differs: %+v vs %+v", first, second)
	}

	// Different limit is a different cache entry.
	if _, err := cached.Search(ctx, knowledge.CategoryStrategy, "loyalty", 1); err != nil {
		t.Fatalf("Search() with new limit: %v", err)
	}
	if counting.calls.Load() != 2 {
		t.Errorf("inner searcher called %d times, want 2", counting.calls.Load())
	}
}

func TestExpandQuery(t *testing.T) {
	t.Parallel()

	p := &profile.Profile{
		Core: profile.Core{
			BasicInfo: profile.BasicInfo{Industry: "dumpling shop", District: "성동구"},
		},
	}

	got := search.ExpandQuery("increase lunch sales", p)
	for _, want := range []string{"increase lunch sales", "dumpling shop", "성동구"} {
		if !strings.Contains(got, want) {
			t.Errorf("ExpandQuery() = %q, missing %q", got, want)
		}
	}

	// Terms already present are not repeated.
	again := search.ExpandQuery(got, p)
	if again != got {
		t.Errorf("ExpandQuery() duplicated terms: %q", again)
	}

	if got := search.ExpandQuery("q", nil); got != "q" {
		t.Errorf("ExpandQuery(nil profile) = %q, want unchanged", got)
	}
}

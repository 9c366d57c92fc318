// Package search provides knowledge.Searcher implementations: an
// in-memory keyword searcher over the curated collections and a
// caching decorator.
package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/merchantlab/consult-go/domain/knowledge"
)

// MemorySearcher is an in-memory implementation of knowledge.Searcher
// that ranks documents by keyword overlap with the query.
type MemorySearcher struct {
	mu   sync.RWMutex
	docs map[knowledge.Category][]knowledge.Document
}

// NewMemorySearcher creates an empty searcher.
func NewMemorySearcher() *MemorySearcher {
	return &MemorySearcher{
		docs: make(map[knowledge.Category][]knowledge.Document),
	}
}

// Index adds documents to their categories. Documents with unknown
// categories are rejected.
func (s *MemorySearcher) Index(docs ...knowledge.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range docs {
		if !d.Category.Valid() {
			return fmt.Errorf("%w: %q", knowledge.ErrUnknownCategory, d.Category)
		}
		s.docs[d.Category] = append(s.docs[d.Category], d)
	}
	return nil
}

// Search returns up to limit documents from category ranked by
// keyword overlap. Documents with identical content collapse to the
// first occurrence.
func (s *MemorySearcher) Search(_ context.Context, category knowledge.Category, query string, limit int) ([]knowledge.Document, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", knowledge.ErrUnknownCategory, category)
	}
	if strings.TrimSpace(query) == "" {
		return nil, knowledge.ErrEmptyQuery
	}
	if limit <= 0 {
		limit = 5
	}

	terms := tokenize(query)

	s.mu.RLock()
	candidates := s.docs[category]
	s.mu.RUnlock()

	seen := make(map[string]struct{}, len(candidates))
	scored := make([]knowledge.Document, 0, len(candidates))
	for _, d := range candidates {
		if _, dup := seen[d.Content]; dup {
			continue
		}
		score := overlapScore(terms, d)
		if score <= 0 {
			continue
		}
		seen[d.Content] = struct{}{}
		d.Score = score
		scored = append(scored, d)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

func tokenize(s string) []string {
	fields := strings.Fields(strings.ToLower(s))
	out := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, ".,;:!?\"'()[]")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

func overlapScore(terms []string, d knowledge.Document) float64 {
	if len(terms) == 0 {
		return 0
	}
	haystack := strings.ToLower(d.Content + " " + d.Title())
	hits := 0
	for _, term := range terms {
		if strings.Contains(haystack, term) {
			hits++
		}
	}
	return float64(hits) / float64(len(terms))
}

// Package knowledge defines the retrieval domain: categorized document
// collections and the Searcher port the consulting capabilities query.
package knowledge

import "context"

// Category selects one of the curated document collections.
type Category string

const (
	CategoryStrategy Category = "strategy"
	CategoryGuide    Category = "guide"
	CategoryTrend    Category = "trend"
	CategoryCase     Category = "case"
	CategoryVideo    Category = "video"
	CategoryProfile  Category = "profile"
	CategoryLocal    Category = "local"
)

// Categories lists every known collection.
func Categories() []Category {
	return []Category{
		CategoryStrategy,
		CategoryGuide,
		CategoryTrend,
		CategoryCase,
		CategoryVideo,
		CategoryProfile,
		CategoryLocal,
	}
}

// Valid reports whether c names a known collection.
func (c Category) Valid() bool {
	switch c {
	case CategoryStrategy, CategoryGuide, CategoryTrend,
		CategoryCase, CategoryVideo, CategoryProfile, CategoryLocal:
		return true
	}
	return false
}

// Document is one retrieved unit of evidence.
type Document struct {
	ID       string            `json:"id"`
	Category Category          `json:"category"`
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata,omitempty"`
	Score    float64           `json:"score,omitempty"`
}

// Title returns the document title from metadata, falling back to the
// document identifier.
func (d Document) Title() string {
	if t, ok := d.Metadata["title"]; ok && t != "" {
		return t
	}
	return d.ID
}

// Searcher retrieves documents from a category collection.
type Searcher interface {
	// Search returns up to limit documents from category ranked by
	// relevance to query.
	Search(ctx context.Context, category Category, query string, limit int) ([]Document, error)
}

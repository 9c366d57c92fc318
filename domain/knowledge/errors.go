package knowledge

import "errors"

var (
	// ErrUnknownCategory indicates a search against a category outside
	// the known collections.
	ErrUnknownCategory = errors.New("unknown knowledge category")

	// ErrEmptyQuery indicates a search with an empty query.
	ErrEmptyQuery = errors.New("search query is empty")
)

// Package tabular defines the port for free-form analysis over the
// merchant's tabular sales data and the marker convention that
// separates a finished answer from intermediate reasoning.
package tabular

import (
	"context"
	"errors"
	"strings"
)

// FinalAnswerMarker prefixes the line of analyzer output that holds
// the finished answer. Text before the marker is working output and is
// discarded.
const FinalAnswerMarker = "Final Answer:"

// ErrNoData indicates the analyzer has no dataset for the store.
var ErrNoData = errors.New("no tabular data for store")

// Analyzer answers free-form questions over a store's tabular data.
type Analyzer interface {
	// Analyze returns the raw analyzer output for the question. Use
	// ExtractAnswer to strip working output.
	Analyze(ctx context.Context, storeID, question string) (string, error)
}

// ExtractAnswer returns the text after the last FinalAnswerMarker,
// trimmed. When no marker is present the whole output is returned
// trimmed; unmarked output is an intermediate finding, not an answer.
func ExtractAnswer(raw string) string {
	idx := strings.LastIndex(raw, FinalAnswerMarker)
	if idx < 0 {
		return strings.TrimSpace(raw)
	}
	return strings.TrimSpace(raw[idx+len(FinalAnswerMarker):])
}

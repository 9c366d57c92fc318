// Package resolver maps masked store names appearing in user questions
// (e.g. "{고향***}") to profile identifiers using the merchant roster.
package resolver

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

var (
	// ErrNoMatch indicates no roster entry matched the masked name.
	ErrNoMatch = errors.New("no store matches masked name")

	// ErrBadRoster indicates the roster CSV could not be parsed.
	ErrBadRoster = errors.New("invalid roster")
)

var (
	maskedPattern   = regexp.MustCompile(`\{([^{}]+)\}`)
	districtPattern = regexp.MustCompile(`([가-힣]{2,}구)`)
)

// DefaultDistrict is assumed when the question names no district.
const DefaultDistrict = "성동구"

// similarityThreshold is the minimum ratio for a fuzzy match.
const similarityThreshold = 0.7

// Entry is one merchant in the roster.
type Entry struct {
	ID         string
	StoreName  string
	MaskedName string
	District   string
}

// Resolver resolves masked store names against a merchant roster.
type Resolver struct {
	entries []Entry
}

// New creates a resolver over the given roster.
func New(entries []Entry) *Resolver {
	return &Resolver{entries: entries}
}

// NewFromCSV reads a roster with columns id, store_name, masked_name,
// district. The first row is treated as a header.
func NewFromCSV(r io.Reader) (*Resolver, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 4

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRoster, err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("%w: empty file", ErrBadRoster)
	}

	entries := make([]Entry, 0, len(records)-1)
	for _, rec := range records[1:] {
		entries = append(entries, Entry{
			ID:         strings.TrimSpace(rec[0]),
			StoreName:  strings.TrimSpace(rec[1]),
			MaskedName: strings.TrimSpace(rec[2]),
			District:   strings.TrimSpace(rec[3]),
		})
	}
	return New(entries), nil
}

// MaskedName extracts the masked store name from a question, or ""
// when the question contains none.
func MaskedName(query string) string {
	m := maskedPattern.FindStringSubmatch(query)
	if m == nil {
		return ""
	}
	return m[1]
}

// District extracts the district named in a question, falling back to
// DefaultDistrict.
func District(query string) string {
	m := districtPattern.FindStringSubmatch(query)
	if m == nil {
		return DefaultDistrict
	}
	return m[1]
}

// Resolve maps the masked name in a question to a roster entry. Exact
// prefix matches win; otherwise the most similar store name in the
// question's district is accepted when it clears the similarity
// threshold.
func (r *Resolver) Resolve(query string) (Entry, error) {
	masked := MaskedName(query)
	if masked == "" {
		return Entry{}, fmt.Errorf("%w: question contains no masked name", ErrNoMatch)
	}
	district := District(query)
	prefix := strings.TrimRight(masked, "*")

	candidates := r.inDistrict(district)
	if len(candidates) == 0 {
		candidates = r.entries
	}

	// Prefix match first.
	if prefix != "" {
		for _, e := range candidates {
			if strings.HasPrefix(e.StoreName, prefix) {
				return e, nil
			}
		}
	}

	// Fuzzy fallback.
	var best Entry
	bestRatio := 0.0
	for _, e := range candidates {
		ratio := similarity(prefix, e.StoreName)
		if ratio > bestRatio {
			best = e
			bestRatio = ratio
		}
	}
	if bestRatio > similarityThreshold {
		return best, nil
	}
	return Entry{}, fmt.Errorf("%w: %q in %s", ErrNoMatch, masked, district)
}

func (r *Resolver) inDistrict(district string) []Entry {
	var out []Entry
	for _, e := range r.entries {
		if e.District == district {
			out = append(out, e)
		}
	}
	return out
}

// similarity is the ratio 2*M/T where M is the length of the longest
// common subsequence of the two names and T the total length.
func similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}

	lcs := prev[len(rb)]
	return 2 * float64(lcs) / float64(len(ra)+len(rb))
}

package search

import (
	"strings"

	"github.com/merchantlab/consult-go/domain/profile"
)

// ExpandQuery enriches a retrieval query with the store's industry and
// district so category searches surface locally relevant documents.
// Terms already present in the query are not repeated.
func ExpandQuery(query string, p *profile.Profile) string {
	if p == nil {
		return query
	}
	expanded := query
	for _, term := range []string{p.Core.BasicInfo.Industry, p.Core.BasicInfo.District} {
		term = strings.TrimSpace(term)
		if term == "" || strings.Contains(expanded, term) {
			continue
		}
		expanded += " " + term
	}
	return expanded
}

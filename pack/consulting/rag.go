package consulting

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/merchantlab/consult-go/domain/capability"
	"github.com/merchantlab/consult-go/domain/knowledge"
	"github.com/merchantlab/consult-go/infrastructure/search"
)

// ragCategories are the collections the general searcher consults.
var ragCategories = []knowledge.Category{
	knowledge.CategoryStrategy,
	knowledge.CategoryGuide,
	knowledge.CategoryTrend,
	knowledge.CategoryCase,
}

const ragResultLimit = 5

func ragSearcherCapability(deps Deps) capability.Capability {
	return capability.New(NameRAGSearcher).
		WithDescription("Searches the consulting knowledge base (strategies, guides, trends, cases) for advice relevant to the query.").
		WithProfile().
		WithHandler(func(ctx context.Context, input capability.Input) (capability.Output, error) {
			query := search.ExpandQuery(input.Query, input.Profile)

			// The same text can surface from more than one collection;
			// only its first occurrence counts as evidence.
			seen := make(map[string]struct{})
			var merged []knowledge.Document
			for _, category := range ragCategories {
				docs, err := deps.Searcher.Search(ctx, category, query, ragResultLimit)
				if err != nil {
					return capability.NewErrorPayload(NameRAGSearcher, input.Query,
						fmt.Errorf("search %s: %w", category, err)).Output(), nil
				}
				for _, d := range docs {
					if _, dup := seen[d.Content]; dup {
						continue
					}
					seen[d.Content] = struct{}{}
					merged = append(merged, d)
				}
			}
			if len(merged) == 0 {
				return capability.NewOutput("No relevant documents found for: " + input.Query), nil
			}

			sort.SliceStable(merged, func(i, j int) bool {
				return merged[i].Score > merged[j].Score
			})
			if len(merged) > ragResultLimit {
				merged = merged[:ragResultLimit]
			}
			return capability.NewOutput(renderDocuments(merged)).WithSources(merged), nil
		}).
		MustBuild()
}

func renderDocuments(docs []knowledge.Document) string {
	b := &strings.Builder{}
	for i, d := range docs {
		fmt.Fprintf(b, "[%d|%s] %s\n%s\n", i+1, d.Category, d.Title(), strings.TrimSpace(d.Content))
	}
	return strings.TrimRight(b.String(), "\n")
}

package consulting

import (
	"context"
	"fmt"
	"strings"

	"github.com/merchantlab/consult-go/domain/capability"
	"github.com/merchantlab/consult-go/domain/knowledge"
	"github.com/merchantlab/consult-go/infrastructure/search"
)

const recommendLimit = 3

func videoRecommenderCapability(deps Deps) capability.Capability {
	return capability.New(NameVideoRecommender).
		WithDescription("Recommends educational videos for merchants matching the topic of the query.").
		WithProfile().
		WithUserQuery().
		WithHandler(recommendHandler(deps, NameVideoRecommender, knowledge.CategoryVideo,
			"Recommended videos", "No videos found for")).
		MustBuild()
}

func policyRecommenderCapability(deps Deps) capability.Capability {
	return capability.New(NamePolicyRecommender).
		WithDescription("Recommends local government support programs and policies the store may qualify for.").
		WithProfile().
		WithUserQuery().
		WithHandler(recommendHandler(deps, NamePolicyRecommender, knowledge.CategoryLocal,
			"Support programs", "No support programs found for")).
		MustBuild()
}

// recommendHandler is the shared retrieval-and-render body of the two
// recommenders. Both are terminal: their lists reach the user as is.
func recommendHandler(deps Deps, name string, category knowledge.Category, header, emptyNote string) capability.Handler {
	return func(ctx context.Context, input capability.Input) (capability.Output, error) {
		query := search.ExpandQuery(input.Query, input.Profile)

		docs, err := deps.Searcher.Search(ctx, category, query, recommendLimit)
		if err != nil {
			return capability.NewErrorPayload(name, input.Query, err).Output(), nil
		}
		if len(docs) == 0 {
			return capability.NewFinalOutput(fmt.Sprintf("%s: %s", emptyNote, input.Query)), nil
		}

		b := &strings.Builder{}
		fmt.Fprintf(b, "## %s\n", header)
		for i, d := range docs {
			fmt.Fprintf(b, "\n%d. **%s**\n", i+1, d.Title())
			if content := strings.TrimSpace(d.Content); content != "" {
				fmt.Fprintf(b, "   %s\n", content)
			}
			if url := d.Metadata["url"]; url != "" {
				fmt.Fprintf(b, "   %s\n", url)
			}
		}
		return capability.NewFinalOutput(strings.TrimRight(b.String(), "\n")).WithSources(docs), nil
	}
}

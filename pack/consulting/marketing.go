package consulting

import (
	"context"
	"strings"

	"github.com/merchantlab/consult-go/domain/capability"
	"github.com/merchantlab/consult-go/infrastructure/llm"
)

const marketingPrompt = `You are a marketing consultant for small neighborhood businesses.
Propose 3 concrete marketing ideas for the request below. For each idea
give a short name, the channel to use, and the first step to take this
week. Ground the ideas in the store context when it is provided. Answer
in the language of the request.`

func marketingIdeasCapability(deps Deps) capability.Capability {
	return capability.New(NameMarketingIdeas).
		WithDescription("Generates concrete marketing ideas tailored to the store's industry, district, and customer base.").
		WithProfile().
		WithHandler(func(ctx context.Context, input capability.Input) (capability.Output, error) {
			system := marketingPrompt
			if input.Profile != nil {
				system += "\n\nStore context:\n" + input.Profile.Summary()
			}

			resp, err := deps.Provider.Complete(ctx, llm.CompletionRequest{
				Model: deps.Model,
				Messages: []llm.Message{
					{Role: "system", Content: system},
					{Role: "user", Content: input.Query},
				},
				Temperature: 0.7,
			})
			if err != nil {
				return capability.NewErrorPayload(NameMarketingIdeas, input.Query, err).Output(), nil
			}
			if resp.Error != nil {
				return capability.NewErrorPayload(NameMarketingIdeas, input.Query, resp.Error).Output(), nil
			}

			content := strings.TrimSpace(resp.Message.Content)
			if content == "" {
				return capability.NewOutput("No ideas were generated for: " + input.Query), nil
			}
			return capability.NewOutput(content), nil
		}).
		MustBuild()
}

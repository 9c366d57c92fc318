package consulting

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/merchantlab/consult-go/domain/actioncard"
	"github.com/merchantlab/consult-go/domain/capability"
	"github.com/merchantlab/consult-go/domain/knowledge"
	"github.com/merchantlab/consult-go/domain/tabular"
	"github.com/merchantlab/consult-go/infrastructure/llm"
)

const actionCardPrompt = `You are a consultant producing an action card for a small merchant.
An action card is a JSON object with this exact shape:

{"card": {"recommendations": [{"title": "...", "what": "...", "where": ["..."], "how": ["..."], "copy": ["..."], "kpi": {"target": "...", "range": ["...", "..."]}, "evidence": ["..."]}]}}

Give 2 or 3 recommendations. Every recommendation needs a title, a
concrete action, at least one how step, and a measurable kpi target.
Write the card in the language of the request.

If you lack the data to fill in evidence, instead of a card answer
with tool calls:

{"tool_calls": [{"tool_name": "rag_searcher", "query": "..."}, {"tool_name": "data_analyzer", "query": "..."}]}

Only rag_searcher and data_analyzer may be called. Answer with JSON
only, no surrounding prose.`

func actionCardCapability(deps Deps) capability.Capability {
	return capability.New(NameActionCard).
		WithDescription("Produces a structured action card: 2-3 concrete recommendations with steps, promotional copy, KPI targets, and evidence.").
		WithProfile().
		WithStoreID().
		WithUserQuery().
		WithHandler(func(ctx context.Context, input capability.Input) (capability.Output, error) {
			system := actionCardPrompt
			if input.Profile != nil {
				system += "\n\nStore context:\n" + input.Profile.Summary()
			}
			messages := []llm.Message{
				{Role: "system", Content: system},
				{Role: "user", Content: input.Query},
			}

			var sources []knowledge.Document
			for turn := 0; turn < deps.MaxCardTurns; turn++ {
				resp, err := deps.Provider.Complete(ctx, llm.CompletionRequest{
					Model:       deps.Model,
					Messages:    messages,
					Temperature: 0.4,
				})
				if err != nil {
					return capability.NewErrorPayload(NameActionCard, input.Query, err).Output(), nil
				}
				if resp.Error != nil {
					return capability.NewErrorPayload(NameActionCard, input.Query, resp.Error).Output(), nil
				}

				parsed, err := actioncard.ParseResponse(resp.Message.Content)
				if err != nil {
					// Malformed turns feed the error back and burn a turn.
					messages = append(messages,
						llm.Message{Role: "assistant", Content: resp.Message.Content},
						llm.Message{Role: "user", Content: "That was not a valid action card response: " + err.Error() + ". Answer with JSON only."},
					)
					continue
				}

				if parsed.Card != nil {
					return capability.NewFinalOutput(parsed.Card.Markdown()).WithSources(sources), nil
				}

				results, docs := runToolCalls(ctx, deps, input, parsed.ToolCalls)
				sources = append(sources, docs...)
				messages = append(messages,
					llm.Message{Role: "assistant", Content: resp.Message.Content},
					llm.Message{Role: "user", Content: "Tool results:\n" + results + "\n\nNow produce the action card."},
				)
			}

			// Turn bound hit without a valid card.
			fallback := actioncard.Fallback(storeName(input))
			return capability.NewFinalOutput(fallback.Markdown()), nil
		}).
		MustBuild()
}

// runToolCalls executes the model's data requests against the pack's
// own collaborators. Calls to anything else, including the card
// generator itself, are rejected in place.
func runToolCalls(ctx context.Context, deps Deps, input capability.Input, calls []actioncard.ToolCall) (string, []knowledge.Document) {
	var b strings.Builder
	var docs []knowledge.Document
	for _, call := range calls {
		switch call.ToolName {
		case NameRAGSearcher:
			found, err := searchAllCategories(ctx, deps, call.Query)
			if err != nil {
				fmt.Fprintf(&b, "[%s] error: %s\n", call.ToolName, err)
				continue
			}
			if len(found) == 0 {
				fmt.Fprintf(&b, "[%s] no documents found\n", call.ToolName)
				continue
			}
			docs = append(docs, found...)
			fmt.Fprintf(&b, "[%s]\n%s\n", call.ToolName, renderDocuments(found))
		case NameDataAnalyzer:
			raw, err := deps.Analyzer.Analyze(ctx, input.StoreID, call.Query)
			if err != nil {
				if errors.Is(err, tabular.ErrNoData) {
					fmt.Fprintf(&b, "[%s] no sales records for this store\n", call.ToolName)
				} else {
					fmt.Fprintf(&b, "[%s] error: %s\n", call.ToolName, err)
				}
				continue
			}
			fmt.Fprintf(&b, "[%s] %s\n", call.ToolName, tabular.ExtractAnswer(raw))
		default:
			fmt.Fprintf(&b, "[%s] tool not available here\n", call.ToolName)
		}
	}
	return strings.TrimRight(b.String(), "\n"), docs
}

func searchAllCategories(ctx context.Context, deps Deps, query string) ([]knowledge.Document, error) {
	var merged []knowledge.Document
	for _, category := range ragCategories {
		found, err := deps.Searcher.Search(ctx, category, query, ragResultLimit)
		if err != nil {
			return nil, fmt.Errorf("search %s: %w", category, err)
		}
		merged = append(merged, found...)
	}
	return merged, nil
}

func storeName(input capability.Input) string {
	if input.Profile != nil {
		return input.Profile.StoreName()
	}
	return ""
}

package analysis

import (
	"context"
	"fmt"

	"github.com/merchantlab/consult-go/domain/tabular"
	"github.com/merchantlab/consult-go/infrastructure/llm"
)

// maxPromptRows bounds how much of the table reaches the prompt.
const maxPromptRows = 200

// LLMAnalyzer answers questions over a store's sales table by showing
// the table to a language model and asking it to reason to a marked
// final answer.
type LLMAnalyzer struct {
	provider llm.Provider
	data     *Dataset
	model    string
}

// NewLLMAnalyzer creates an analyzer over the given dataset.
func NewLLMAnalyzer(provider llm.Provider, data *Dataset, model string) *LLMAnalyzer {
	return &LLMAnalyzer{provider: provider, data: data, model: model}
}

// Analyze implements tabular.Analyzer.
func (a *LLMAnalyzer) Analyze(ctx context.Context, storeID, question string) (string, error) {
	table := a.data.Table(storeID)
	if table == nil {
		return "", fmt.Errorf("%w: %s", tabular.ErrNoData, storeID)
	}

	system := fmt.Sprintf(`You analyze a store's sales table and answer questions about it.
Work through the numbers step by step, then give the result on its own
line prefixed with %q. Only the marked line is shown to the user.

Sales table:
%s`, tabular.FinalAnswerMarker, table.Render(maxPromptRows))

	resp, err := a.provider.Complete(ctx, llm.CompletionRequest{
		Model: a.model,
		Messages: []llm.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: question},
		},
		Temperature: 0,
		MaxTokens:   1024,
	})
	if err != nil {
		return "", fmt.Errorf("analysis completion: %w", err)
	}
	if resp.Error != nil {
		return "", fmt.Errorf("analysis completion: %w", resp.Error)
	}
	return resp.Message.Content, nil
}

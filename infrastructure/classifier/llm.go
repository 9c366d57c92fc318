package classifier

import (
	"context"
	"strings"

	"github.com/merchantlab/consult-go/domain/intent"
	"github.com/merchantlab/consult-go/infrastructure/llm"
	"github.com/merchantlab/consult-go/infrastructure/logging"
)

const systemPrompt = `You classify questions from small-business owners into exactly one intent.
Answer with the intent name only, nothing else.

Intents:
- profile_query: the owner asks about a store profile or store information
- bigcon_request: the owner asks for a full consulting report or contest submission
- data_analysis: the owner asks a question answerable from their sales data
- marketing_idea: the owner wants marketing or promotion ideas
- general_rag_search: the owner asks a general how-to or strategy question
- video_recommendation: the owner wants educational videos
- policy_recommendation: the owner asks about government programs or subsidies
- greeting: small talk with no consulting content
- unknown: anything else`

var fewShot = []llm.Message{
	{Role: "user", Content: "{고향***} 프로필 보여줘"},
	{Role: "assistant", Content: "profile_query"},
	{Role: "user", Content: "요일별 매출이 어떻게 되나요?"},
	{Role: "assistant", Content: "data_analysis"},
	{Role: "user", Content: "신메뉴 홍보 아이디어 좀 주세요"},
	{Role: "assistant", Content: "marketing_idea"},
	{Role: "user", Content: "소상공인 지원금 뭐가 있나요?"},
	{Role: "assistant", Content: "policy_recommendation"},
	{Role: "user", Content: "안녕하세요!"},
	{Role: "assistant", Content: "greeting"},
}

// LLMClassifier classifies with a few-shot prompt. When the model is
// unreachable or answers outside the vocabulary, the keyword cascade
// decides instead, so classification never fails.
type LLMClassifier struct {
	provider llm.Provider
	fallback *FallbackClassifier
	model    string
}

// NewLLMClassifier creates a classifier over the given provider.
func NewLLMClassifier(provider llm.Provider, model string) *LLMClassifier {
	return &LLMClassifier{
		provider: provider,
		fallback: NewFallbackClassifier(),
		model:    model,
	}
}

// Classify implements intent.Classifier.
func (c *LLMClassifier) Classify(ctx context.Context, query string) (intent.Intent, error) {
	messages := make([]llm.Message, 0, len(fewShot)+2)
	messages = append(messages, llm.Message{Role: "system", Content: systemPrompt})
	messages = append(messages, fewShot...)
	messages = append(messages, llm.Message{Role: "user", Content: query})

	resp, err := c.provider.Complete(ctx, llm.CompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0,
		MaxTokens:   16,
	})
	if err != nil {
		logging.NewEvent(logging.Get().Warn()).
			Add(logging.ErrorField(err)).
			Msg("classifier falling back to keyword rules")
		return c.fallback.Classify(ctx, query)
	}
	if resp.Error != nil {
		logging.NewEvent(logging.Get().Warn()).
			Add(logging.ErrorField(resp.Error)).
			Msg("classifier falling back to keyword rules")
		return c.fallback.Classify(ctx, query)
	}

	answer := strings.TrimSpace(strings.ToLower(resp.Message.Content))
	classified := intent.Normalize(answer)
	if classified == intent.Unknown && answer != string(intent.Unknown) {
		// The model answered outside the vocabulary.
		return c.fallback.Classify(ctx, query)
	}
	return classified, nil
}

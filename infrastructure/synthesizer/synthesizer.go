// Package synthesizer composes the final consulting answer from the
// turn's executed steps and collected evidence.
package synthesizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/merchantlab/consult-go/domain/conversation"
	"github.com/merchantlab/consult-go/domain/knowledge"
	"github.com/merchantlab/consult-go/infrastructure/llm"
	"github.com/merchantlab/consult-go/infrastructure/logging"
)

// escalationCategories are searched when the profile alone cannot
// answer a question that executed no tools.
var escalationCategories = []knowledge.Category{
	knowledge.CategoryStrategy,
	knowledge.CategoryGuide,
}

// Synthesizer writes the user-facing answer for a turn.
type Synthesizer struct {
	provider llm.Provider
	model    string
	searcher knowledge.Searcher
}

// New creates a synthesizer over the given provider.
func New(provider llm.Provider, model string) *Synthesizer {
	return &Synthesizer{provider: provider, model: model}
}

// WithSearcher enables the knowledge-base escalation for turns that
// executed no tools and whose profile cannot answer the question.
func (s *Synthesizer) WithSearcher(searcher knowledge.Searcher) *Synthesizer {
	s.searcher = searcher
	return s
}

// Synthesize writes the final answer from the turn's audit trail. A
// turn without evidence first checks whether the profile alone can
// answer; only a "no" escalates to a knowledge-base search. Searching
// unconditionally would spend a retrieval on every profile question.
func (s *Synthesizer) Synthesize(ctx context.Context, state *conversation.State) (string, error) {
	if len(state.PastSteps) == 0 && len(state.Sources) == 0 {
		s.escalateIfInsufficient(ctx, state)
	}

	resp, err := s.provider.Complete(ctx, llm.CompletionRequest{
		Model: s.model,
		Messages: []llm.Message{
			{Role: "system", Content: s.systemPrompt(state)},
			{Role: "user", Content: state.UserQuery()},
		},
		Temperature: 0.4,
		MaxTokens:   2048,
	})
	if err != nil {
		return "", fmt.Errorf("synthesizer completion: %w", err)
	}
	if resp.Error != nil {
		return "", fmt.Errorf("synthesizer completion: %w", resp.Error)
	}

	answer := strings.TrimSpace(resp.Message.Content)
	if answer == "" {
		return "", fmt.Errorf("synthesizer returned empty answer")
	}
	return answer, nil
}

// escalateIfInsufficient asks a cheap yes/no question: can the profile
// summary alone answer? Anything other than an explicit no, including
// a failed check, counts as sufficient.
func (s *Synthesizer) escalateIfInsufficient(ctx context.Context, state *conversation.State) {
	if s.searcher == nil || state.CurrentProfile == nil {
		return
	}

	resp, err := s.provider.Complete(ctx, llm.CompletionRequest{
		Model: s.model,
		Messages: []llm.Message{
			{Role: "system", Content: "Answer with exactly one word, yes or no: " +
				"is the store profile below sufficient to answer the user's question?\n\n" +
				state.CurrentProfile.Summary()},
			{Role: "user", Content: state.UserQuery()},
		},
		Temperature: 0,
		MaxTokens:   4,
	})
	if err != nil || resp.Error != nil {
		return
	}
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(resp.Message.Content)), "no") {
		return
	}

	for _, category := range escalationCategories {
		docs, err := s.searcher.Search(ctx, category, state.UserQuery(), 3)
		if err != nil {
			logging.NewEvent(logging.Get().Warn()).
				Add(logging.ErrorField(err)).
				Msg("sufficiency escalation search failed")
			continue
		}
		state.AddSources(docs)
	}
}

func (s *Synthesizer) systemPrompt(state *conversation.State) string {
	b := &strings.Builder{}
	b.WriteString("You are a business consultant for small-merchant owners.\n")
	b.WriteString("Answer the question using only the evidence below.\n")
	b.WriteString("Cite sources by their [source:N|CATEGORY] tags when you use them.\n")
	b.WriteString("If the evidence is insufficient, say what is missing instead of guessing.\n")

	if state.CurrentProfile != nil {
		b.WriteString("\nStore profile:\n")
		b.WriteString(state.CurrentProfile.Summary())
		b.WriteString("\n")
	}

	evidence := EvidenceBlock(state)
	if evidence == "" {
		if state.CurrentProfile != nil {
			b.WriteString("\nNo tools were run for this question. Answer from the store profile alone.\n")
		} else {
			b.WriteString("\nNo tools were run for this question. Answer from general knowledge and say so.\n")
		}
	} else {
		b.WriteString("\n")
		b.WriteString(evidence)
	}
	return b.String()
}

// maxEvidenceChars bounds each evidence entry so one verbose step
// result cannot crowd the rest out of the synthesis prompt.
const maxEvidenceChars = 1200

// EvidenceBlock renders the executed steps and collected sources as the
// context block injected into the synthesis prompt. Each entry is
// truncated to maxEvidenceChars.
func EvidenceBlock(state *conversation.State) string {
	if len(state.PastSteps) == 0 && len(state.Sources) == 0 {
		return ""
	}

	b := &strings.Builder{}
	if len(state.PastSteps) > 0 {
		b.WriteString("Executed steps:\n")
		for i, step := range state.PastSteps {
			fmt.Fprintf(b, "%d. %s\n%s\n", i+1, step.Step, indent(clip(step.Result, maxEvidenceChars)))
		}
	}
	if len(state.Sources) > 0 {
		b.WriteString("Sources:\n")
		for i, doc := range state.Sources {
			fmt.Fprintf(b, "[source:%d|%s] %s\n%s\n", i+1, strings.ToUpper(string(doc.Category)), doc.Title(), indent(clip(doc.Content, maxEvidenceChars)))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// clip truncates s to at most limit runes, appending a marker when
// anything was cut.
func clip(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + " [truncated]"
}

func indent(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i, line := range lines {
		lines[i] = "    " + line
	}
	return strings.Join(lines, "\n")
}

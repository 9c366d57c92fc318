package synthesizer_test

import (
	"context"
	"strings"
	"testing"

	"github.com/merchantlab/consult-go/domain/conversation"
	"github.com/merchantlab/consult-go/domain/intent"
	"github.com/merchantlab/consult-go/domain/knowledge"
	"github.com/merchantlab/consult-go/domain/plan"
	"github.com/merchantlab/consult-go/domain/profile"
	"github.com/merchantlab/consult-go/infrastructure/llm"
	"github.com/merchantlab/consult-go/infrastructure/synthesizer"
)

func TestEvidenceBlock(t *testing.T) {
	t.Parallel()

	state := conversation.NewState()
	state.BeginTurn("단골을 늘리고 싶어요")
	state.RecordStep(plan.Step{ToolName: "rag_searcher", Query: "loyalty"}, "stamp cards work well")
	state.AddSources([]knowledge.Document{
		{
			ID:       "strategy-1",
			Category: knowledge.CategoryStrategy,
			Content:  "loyalty stamp cards lift repeat visits",
			Metadata: map[string]string{"title": "Loyalty basics"},
		},
	})

	block := synthesizer.EvidenceBlock(state)
	for _, want := range []string{
		"rag_searcher(loyalty)",
		"stamp cards work well",
		"[source:1|STRATEGY] Loyalty basics",
	} {
		if !strings.Contains(block, want) {
			t.Errorf("EvidenceBlock() missing %q:\n%s", want, block)
		}
	}
}

func TestEvidenceBlockClipsLongResults(t *testing.T) {
	t.Parallel()

	state := conversation.NewState()
	state.BeginTurn("매출 분석해줘")
	state.RecordStep(plan.Step{ToolName: "data_analyzer", Query: "매출"},
		strings.Repeat("가", 5000))

	block := synthesizer.EvidenceBlock(state)
	if !strings.Contains(block, "[truncated]") {
		t.Error("long step result was not truncated")
	}
	if got := strings.Count(block, "가"); got >= 5000 {
		t.Errorf("evidence still carries %d runes of the result", got)
	}
}

func TestEvidenceBlockEmptyTurn(t *testing.T) {
	t.Parallel()

	state := conversation.NewState()
	state.BeginTurn("안녕하세요")
	if got := synthesizer.EvidenceBlock(state); got != "" {
		t.Errorf("EvidenceBlock() = %q, want empty for turn without steps", got)
	}
}

func TestSynthesizeIncludesEvidenceInPrompt(t *testing.T) {
	t.Parallel()

	provider := llm.NewMockProvider("스탬프 카드를 추천드립니다. [source:1|STRATEGY]")
	s := synthesizer.New(provider, "test-model")

	state := conversation.NewState()
	state.BeginTurn("단골을 늘리고 싶어요")
	state.RecordStep(plan.Step{ToolName: "rag_searcher", Query: "loyalty"}, "stamp cards work well")

	answer, err := s.Synthesize(context.Background(), state)
	if err != nil {
		t.Fatalf("Synthesize() unexpected error: %v", err)
	}
	if !strings.Contains(answer, "스탬프 카드") {
		t.Errorf("answer = %q", answer)
	}

	system := provider.Requests()[0].Messages[0].Content
	if !strings.Contains(system, "stamp cards work well") {
		t.Error("system prompt missing executed step result")
	}
}

func TestSynthesizeRejectsEmptyAnswer(t *testing.T) {
	t.Parallel()

	provider := llm.NewMockProvider("   ")
	s := synthesizer.New(provider, "test-model")

	state := conversation.NewState()
	state.BeginTurn("q")
	if _, err := s.Synthesize(context.Background(), state); err == nil {
		t.Error("empty model answer must fail")
	}
}

func TestSufficiencyCheckEscalatesOnNo(t *testing.T) {
	t.Parallel()

	// First completion answers the sufficiency check, second writes
	// the final answer.
	provider := llm.NewScriptedProvider("no", "요즘은 배달 비중을 늘리는 것이 대세입니다")
	searcher := &recordingSearcher{docs: []knowledge.Document{
		{ID: "guide-1", Category: knowledge.CategoryGuide, Content: "배달 비중 높이기"},
	}}
	s := synthesizer.New(provider, "test-model").WithSearcher(searcher)

	state := conversation.NewState()
	state.CurrentProfile = &profile.Profile{
		ID:   "store-001",
		Core: profile.Core{BasicInfo: profile.BasicInfo{StoreName: "고향만두"}},
	}
	state.BeginTurn("요즘 배달 트렌드가 어때요?")

	if _, err := s.Synthesize(context.Background(), state); err != nil {
		t.Fatalf("Synthesize() unexpected error: %v", err)
	}
	if searcher.calls == 0 {
		t.Error("insufficient profile did not escalate to search")
	}
	if len(state.Sources) == 0 {
		t.Error("escalation results were not attached as sources")
	}
}

func TestSufficiencyCheckSkipsSearchOnYes(t *testing.T) {
	t.Parallel()

	provider := llm.NewScriptedProvider("yes", "프로필 기준으로 답변드립니다")
	searcher := &recordingSearcher{}
	s := synthesizer.New(provider, "test-model").WithSearcher(searcher)

	state := conversation.NewState()
	state.CurrentProfile = &profile.Profile{
		ID:   "store-001",
		Core: profile.Core{BasicInfo: profile.BasicInfo{StoreName: "고향만두"}},
	}
	state.BeginTurn("우리 가게 정보 알려줘")

	if _, err := s.Synthesize(context.Background(), state); err != nil {
		t.Fatalf("Synthesize() unexpected error: %v", err)
	}
	if searcher.calls != 0 {
		t.Errorf("sufficient profile still searched %d times", searcher.calls)
	}
}

type recordingSearcher struct {
	docs  []knowledge.Document
	calls int
}

func (r *recordingSearcher) Search(_ context.Context, _ knowledge.Category, _ string, _ int) ([]knowledge.Document, error) {
	r.calls++
	return r.docs, nil
}

func TestResponderFixedReplies(t *testing.T) {
	t.Parallel()

	r := synthesizer.NewResponder()

	state := conversation.NewState()
	state.BeginTurn("안녕하세요")
	answer := r.Respond(state, intent.Greeting)
	if !strings.Contains(answer, "안녕하세요") {
		t.Errorf("greeting answer = %q", answer)
	}

	state.CurrentProfile = &profile.Profile{
		ID:   "store-001",
		Core: profile.Core{BasicInfo: profile.BasicInfo{StoreName: "고향만두"}},
	}
	answer = r.Respond(state, intent.Greeting)
	if !strings.Contains(answer, "고향만두") {
		t.Errorf("bound greeting missing store name: %q", answer)
	}

	answer = r.Respond(state, intent.Unknown)
	if !strings.Contains(answer, "이해하지 못했어요") {
		t.Errorf("unknown answer = %q", answer)
	}
}

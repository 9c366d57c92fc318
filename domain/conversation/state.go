package conversation

import (
	"github.com/merchantlab/consult-go/domain/knowledge"
	"github.com/merchantlab/consult-go/domain/plan"
	"github.com/merchantlab/consult-go/domain/profile"
)

// PastStep records one executed plan step and the textual result it
// produced. The pair is the audit trail the synthesizer builds its
// evidence block from.
type PastStep struct {
	Step   string `json:"step"`
	Result string `json:"result"`
}

// State is the single mutable record threaded through the orchestration
// graph for one user turn. It persists across turns within a session;
// Messages and Sources are append-only, Plan is consumed front to back
// by the executor.
type State struct {
	Messages       []Message            `json:"messages"`
	CurrentProfile *profile.Profile     `json:"current_profile,omitempty"`
	Plan           []plan.Step          `json:"plan"`
	PastSteps      []PastStep           `json:"past_steps"`
	Sources        []knowledge.Document `json:"sources"`
	NextNode       string               `json:"next_node,omitempty"`
	IsFinalAnswer  bool                 `json:"is_final_answer"`
	AllowedTools   []string             `json:"allowed_tools,omitempty"`
	FinalOutput    string               `json:"final_output,omitempty"`
}

// NewState creates an empty conversation state.
func NewState() *State {
	return &State{
		Messages:  make([]Message, 0),
		Plan:      make([]plan.Step, 0),
		PastSteps: make([]PastStep, 0),
		Sources:   make([]knowledge.Document, 0),
	}
}

// AppendMessage appends a message to the conversation history.
func (s *State) AppendMessage(m Message) {
	s.Messages = append(s.Messages, m)
}

// UserQuery returns the content of the most recent human message,
// which by convention is the current user question.
func (s *State) UserQuery() string {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Role == RoleHuman {
			return s.Messages[i].Content
		}
	}
	return ""
}

// StoreID returns the identifier of the active profile, or "" when no
// profile has been resolved for the session.
func (s *State) StoreID() string {
	if s.CurrentProfile == nil {
		return ""
	}
	return s.CurrentProfile.ID
}

// BeginTurn resets the per-turn fields and appends the user's new
// question. Conversation history, profile, and accumulated sources
// survive across turns.
func (s *State) BeginTurn(input string) {
	s.AppendMessage(NewHumanMessage(input))
	s.Plan = nil
	s.PastSteps = make([]PastStep, 0)
	s.NextNode = ""
	s.IsFinalAnswer = false
	s.AllowedTools = nil
	s.FinalOutput = ""
}

// SetPlan replaces the pending plan. A planner takeover also resets the
// audit trail for the turn.
func (s *State) SetPlan(steps []plan.Step) {
	s.Plan = steps
	s.PastSteps = make([]PastStep, 0)
}

// PopStep removes and returns the first pending plan step. The second
// return value reports whether a step was available.
func (s *State) PopStep() (plan.Step, bool) {
	if len(s.Plan) == 0 {
		return plan.Step{}, false
	}
	step := s.Plan[0]
	s.Plan = s.Plan[1:]
	return step, true
}

// RecordStep appends an executed step and its result to the audit trail.
func (s *State) RecordStep(step plan.Step, result string) {
	s.PastSteps = append(s.PastSteps, PastStep{Step: step.Descriptor(), Result: result})
}

// AddSources appends evidence documents collected by a capability.
func (s *State) AddSources(docs []knowledge.Document) {
	s.Sources = append(s.Sources, docs...)
}

// Finalize marks the turn as answered. A terminal answer clears any
// remaining plan so the executor loop cannot continue.
func (s *State) Finalize(answer string) {
	s.IsFinalAnswer = true
	s.FinalOutput = answer
	s.Plan = nil
	s.AppendMessage(NewAssistantMessage(answer))
}

// Package planner turns a consulting question into a typed action plan
// using a language model constrained to the registered capability menu.
package planner

import (
	"context"
	"fmt"
	"strings"

	"github.com/merchantlab/consult-go/domain/capability"
	"github.com/merchantlab/consult-go/domain/plan"
	"github.com/merchantlab/consult-go/domain/profile"
	"github.com/merchantlab/consult-go/infrastructure/llm"
	"github.com/merchantlab/consult-go/infrastructure/logging"
)

// Request carries everything the planner needs for one question.
type Request struct {
	// Query is the user's question.
	Query string

	// Profile is the resolved merchant profile, when available.
	Profile *profile.Profile

	// AllowedTools restricts the plan to a subset of the registry.
	// Empty means every registered capability is available.
	AllowedTools []string
}

// Planner produces typed action plans.
type Planner struct {
	provider llm.Provider
	registry capability.Registry
	model    string
	maxSteps int
}

// New creates a planner over the given provider and registry.
func New(provider llm.Provider, registry capability.Registry, model string, maxSteps int) *Planner {
	if maxSteps <= 0 {
		maxSteps = 5
	}
	return &Planner{
		provider: provider,
		registry: registry,
		model:    model,
		maxSteps: maxSteps,
	}
}

// Plan builds an action plan for the request. Steps naming
// capabilities outside the allowed set fail validation here, before
// anything executes.
func (p *Planner) Plan(ctx context.Context, req Request) ([]plan.Step, error) {
	menu, err := p.menu(ctx, req.AllowedTools)
	if err != nil {
		return nil, err
	}

	resp, err := p.provider.Complete(ctx, llm.CompletionRequest{
		Model: p.model,
		Messages: []llm.Message{
			{Role: "system", Content: p.systemPrompt(menu, req.Profile)},
			{Role: "user", Content: req.Query},
		},
		Temperature: 0.1,
		MaxTokens:   1024,
	})
	if err != nil {
		return nil, fmt.Errorf("planner completion: %w", err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("planner completion: %w", resp.Error)
	}

	steps, err := plan.Parse(resp.Message.Content)
	if err != nil {
		return nil, err
	}
	if len(steps) > p.maxSteps {
		logging.NewEvent(logging.Get().Warn()).
			Add(logging.PlanSize(len(steps))).
			Msg("plan truncated to step budget")
		steps = steps[:p.maxSteps]
	}

	allowed := allowedSet(menu)
	for _, step := range steps {
		if _, ok := allowed[step.ToolName]; !ok {
			return nil, fmt.Errorf("%w: %q", capability.ErrNotAllowed, step.ToolName)
		}
	}
	return steps, nil
}

// menu lists the capabilities the plan may use.
func (p *Planner) menu(ctx context.Context, allowedTools []string) ([]capability.Capability, error) {
	all, err := p.registry.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(allowedTools) == 0 {
		return all, nil
	}

	allowed := make(map[string]struct{}, len(allowedTools))
	for _, name := range allowedTools {
		allowed[name] = struct{}{}
	}
	menu := make([]capability.Capability, 0, len(allowedTools))
	for _, c := range all {
		if _, ok := allowed[c.Name()]; ok {
			menu = append(menu, c)
		}
	}
	return menu, nil
}

func (p *Planner) systemPrompt(menu []capability.Capability, prof *profile.Profile) string {
	b := &strings.Builder{}
	b.WriteString("You are a consulting planner for small-business owners.\n")
	b.WriteString("Break the question into an ordered plan of tool calls.\n")
	b.WriteString("Use as few steps as possible and only tools that add evidence.\n\n")
	b.WriteString("Available tools:\n")
	for _, c := range menu {
		fmt.Fprintf(b, "- %s: %s\n", c.Name(), c.Description())
	}
	if prof != nil {
		b.WriteString("\nStore profile:\n")
		b.WriteString(prof.Summary())
		b.WriteString("\n")
	}
	fmt.Fprintf(b, "\nRespond with a JSON array of at most %d steps.\n", p.maxSteps)
	b.WriteString(`Each step is {"tool_name": "...", "query": "...", "thought": "..."}` + "\n")
	b.WriteString("where thought briefly states why the step is needed. No prose outside the array.")
	return b.String()
}

func allowedSet(menu []capability.Capability) map[string]struct{} {
	out := make(map[string]struct{}, len(menu))
	for _, c := range menu {
		out[c.Name()] = struct{}{}
	}
	return out
}

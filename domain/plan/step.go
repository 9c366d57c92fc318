// Package plan defines the typed action plan produced by the planner
// and consumed by the executor. A plan is an ordered list of steps,
// each naming a registered capability and the query to run it with.
package plan

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Step is one unit of work in an action plan. Thought carries the
// planner's rationale; it is logged but never shown to the user.
type Step struct {
	ToolName string `json:"tool_name"`
	Query    string `json:"query"`
	Thought  string `json:"thought,omitempty"`
}

// Validate reports whether the step names a capability and carries a
// non-empty query.
func (s Step) Validate() error {
	if strings.TrimSpace(s.ToolName) == "" {
		return ErrMissingToolName
	}
	if strings.TrimSpace(s.Query) == "" {
		return fmt.Errorf("%w: step for %q", ErrMissingQuery, s.ToolName)
	}
	return nil
}

// Descriptor renders the step for audit trails and evidence blocks.
func (s Step) Descriptor() string {
	return fmt.Sprintf("%s(%s)", s.ToolName, s.Query)
}

// Parse decodes a JSON array of steps emitted by a language model and
// validates every element. The payload must be a bare array; prose
// around the array is tolerated by slicing to the outermost brackets.
func Parse(raw string) ([]Step, error) {
	trimmed := extractArray(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: no JSON array found", ErrInvalidPlan)
	}

	var steps []Step
	if err := json.Unmarshal([]byte(trimmed), &steps); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPlan, err)
	}
	if len(steps) == 0 {
		return nil, ErrEmptyPlan
	}
	for i, step := range steps {
		if err := step.Validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
	}
	return steps, nil
}

// extractArray slices raw to the first '[' and last ']' so that model
// output wrapped in markdown fences or explanation still parses.
func extractArray(raw string) string {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end < start {
		return ""
	}
	return raw[start : end+1]
}

// Package actioncard defines the structured recommendation card the
// consulting engine negotiates with the language model: a fixed JSON
// schema of concrete actions with targets, channels, and evidence.
package actioncard

import (
	"encoding/json"
	"fmt"
	"strings"
)

// KPI is the measurable target attached to a recommendation.
type KPI struct {
	Target string    `json:"target"`
	Range  [2]string `json:"range"`
}

// Recommendation is one concrete action on a card.
type Recommendation struct {
	Title    string   `json:"title"`
	What     string   `json:"what"`
	Where    []string `json:"where"`
	How      []string `json:"how"`
	Copy     []string `json:"copy"`
	KPI      KPI      `json:"kpi"`
	Evidence []string `json:"evidence"`
}

// Card is a complete action card.
type Card struct {
	Recommendations []Recommendation `json:"recommendations"`
}

// ToolCall is a follow-up data request the model may emit instead of a
// card when it lacks evidence to fill one in.
type ToolCall struct {
	ToolName string `json:"tool_name"`
	Query    string `json:"query"`
}

// Response is one negotiation turn: either a finished card or a list
// of tool calls requesting more data. Exactly one side is set.
type Response struct {
	Card      *Card      `json:"card,omitempty"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// Validate checks a card for structural completeness.
func (c *Card) Validate() error {
	if len(c.Recommendations) == 0 {
		return ErrNoRecommendations
	}
	for i, r := range c.Recommendations {
		if strings.TrimSpace(r.Title) == "" {
			return fmt.Errorf("%w: recommendation %d has no title", ErrIncompleteCard, i)
		}
		if strings.TrimSpace(r.What) == "" {
			return fmt.Errorf("%w: %q has no action", ErrIncompleteCard, r.Title)
		}
		if len(r.How) == 0 {
			return fmt.Errorf("%w: %q has no steps", ErrIncompleteCard, r.Title)
		}
		if strings.TrimSpace(r.KPI.Target) == "" {
			return fmt.Errorf("%w: %q has no KPI target", ErrIncompleteCard, r.Title)
		}
	}
	return nil
}

// ParseResponse decodes one negotiation turn from model output. The
// payload must contain either a card or tool calls; prose around the
// JSON object is tolerated by slicing to the outermost braces.
func ParseResponse(raw string) (*Response, error) {
	trimmed := extractObject(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: no JSON object found", ErrInvalidResponse)
	}

	var resp Response
	if err := json.Unmarshal([]byte(trimmed), &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if resp.Card == nil && len(resp.ToolCalls) == 0 {
		// A bare card without the wrapper is also accepted.
		var card Card
		if err := json.Unmarshal([]byte(trimmed), &card); err == nil && len(card.Recommendations) > 0 {
			return &Response{Card: &card}, nil
		}
		return nil, fmt.Errorf("%w: neither card nor tool calls", ErrInvalidResponse)
	}
	if resp.Card != nil {
		if err := resp.Card.Validate(); err != nil {
			return nil, err
		}
	}
	return &resp, nil
}

func extractObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return ""
	}
	return raw[start : end+1]
}

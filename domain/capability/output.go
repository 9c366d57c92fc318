package capability

import (
	"encoding/json"
	"fmt"

	"github.com/merchantlab/consult-go/domain/knowledge"
	"github.com/merchantlab/consult-go/domain/profile"
)

// Output is the uniform envelope every capability returns. Content is
// the textual result, IsFinalAnswer marks output that should reach the
// user verbatim without synthesis, and Sources carries the evidence
// documents consulted. Profile, when set, is the store profile after a
// mutating capability; the executor adopts it into the session so
// later steps and synthesis see the written state.
type Output struct {
	Content       string               `json:"content"`
	IsFinalAnswer bool                 `json:"is_final_answer"`
	Sources       []knowledge.Document `json:"sources,omitempty"`
	Profile       *profile.Profile     `json:"profile,omitempty"`
}

// NewOutput returns an intermediate result destined for synthesis.
func NewOutput(content string) Output {
	return Output{Content: content}
}

// NewFinalOutput returns a terminal result delivered to the user as is.
func NewFinalOutput(content string) Output {
	return Output{Content: content, IsFinalAnswer: true}
}

// WithSources attaches evidence documents to the output.
func (o Output) WithSources(docs []knowledge.Document) Output {
	o.Sources = docs
	return o
}

// WithProfile attaches the profile as written by a mutating capability.
func (o Output) WithProfile(p *profile.Profile) Output {
	o.Profile = p
	return o
}

// Marshal encodes the envelope as JSON.
func (o Output) Marshal() ([]byte, error) {
	data, err := json.Marshal(o)
	if err != nil {
		return nil, fmt.Errorf("marshal output: %w", err)
	}
	return data, nil
}

// UnmarshalOutput decodes an envelope from JSON.
func UnmarshalOutput(data []byte) (Output, error) {
	var o Output
	if err := json.Unmarshal(data, &o); err != nil {
		return Output{}, fmt.Errorf("unmarshal output: %w", err)
	}
	return o, nil
}

package capability

import (
	"encoding/json"
	"errors"
	"strings"
)

var (
	// ErrInvalidCapability indicates a builder chain that cannot
	// produce a usable capability.
	ErrInvalidCapability = errors.New("invalid capability")

	// ErrNotFound indicates a lookup for an unregistered capability.
	ErrNotFound = errors.New("capability not found")

	// ErrAlreadyRegistered indicates a duplicate registration.
	ErrAlreadyRegistered = errors.New("capability already registered")

	// ErrNotAllowed indicates a plan step named a capability outside
	// the turn's allowed set.
	ErrNotAllowed = errors.New("capability not allowed for this turn")
)

// ErrorPayload is the structured failure record a capability emits as
// data. It crosses the capability boundary inside an Output so the
// synthesizer can explain the failure instead of the turn aborting.
type ErrorPayload struct {
	Status   string `json:"status"`
	ToolName string `json:"tool_name"`
	Query    string `json:"query"`
	Message  string `json:"message"`
	Details  string `json:"details,omitempty"`
}

// NewErrorPayload builds a failure record from an execution error.
// Quote characters are redacted from the message so the payload stays
// safe to embed in downstream prompts and JSON contexts.
func NewErrorPayload(toolName, query string, err error) ErrorPayload {
	return ErrorPayload{
		Status:   "error",
		ToolName: toolName,
		Query:    query,
		Message:  redactQuotes(err.Error()),
	}
}

// WithDetails attaches supplementary diagnostic text.
func (p ErrorPayload) WithDetails(details string) ErrorPayload {
	p.Details = redactQuotes(details)
	return p
}

// Output wraps the payload in a non-final envelope.
func (p ErrorPayload) Output() Output {
	data, err := json.Marshal(p)
	if err != nil {
		return NewOutput("error: " + p.Message)
	}
	return NewOutput(string(data))
}

func redactQuotes(s string) string {
	return strings.NewReplacer(`"`, "'", "`", "'").Replace(s)
}

// Package conversation provides the core domain model for a consulting
// conversation: role-tagged messages and the per-turn state threaded
// through the orchestration graph.
package conversation

import "time"

// Role identifies the author of a message.
type Role string

const (
	RoleHuman     Role = "human"
	RoleAssistant Role = "assistant"
)

// Message is a single utterance in the conversation history.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// NewHumanMessage creates a message authored by the user.
func NewHumanMessage(content string) Message {
	return Message{Role: RoleHuman, Content: content, Timestamp: time.Now()}
}

// NewAssistantMessage creates a message authored by the assistant.
func NewAssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content, Timestamp: time.Now()}
}

package domain

import "github.com/google/uuid"

// Role identifies the author of a conversation turn.
type Role string

// Conversation roles.
const (
	// RoleHuman marks a user question.
	RoleHuman Role = "human"

	// RoleAssistant marks a generated answer.
	RoleAssistant Role = "assistant"
)

// Turn is a single message in a conversation.
type Turn struct {
	Role    Role
	Content string
}

// Conversation is the ordered exchange of human and assistant turns
// maintained across queries within one session. It lives in memory
// only and does not survive a process restart.
type Conversation struct {
	// ID identifies the session, mostly for logging.
	ID string

	// Turns holds the history in chronological order. A completed
	// query appends a human turn followed by an assistant turn.
	Turns []Turn
}

// NewConversation creates an empty conversation with a fresh ID.
func NewConversation() *Conversation {
	return &Conversation{ID: uuid.NewString()}
}

// Append adds a turn to the history.
func (c *Conversation) Append(role Role, content string) {
	c.Turns = append(c.Turns, Turn{Role: role, Content: content})
}

// IsEmpty reports whether the conversation has no turns.
func (c *Conversation) IsEmpty() bool {
	return len(c.Turns) == 0
}

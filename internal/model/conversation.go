package model

import "time"

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ValidRoles are the allowed message roles.
var ValidRoles = map[string]bool{
	RoleUser:      true,
	RoleAssistant: true,
}

// Message is one entry of the conversation log.
type Message struct {
	Role      string    `json:"role" yaml:"role"`
	Text      string    `json:"text" yaml:"text"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// ConversationLog is the ordered, append-only chat history.
type ConversationLog []Message

// DefaultConversationLog returns an empty log.
func DefaultConversationLog() ConversationLog {
	return ConversationLog{}
}

// Clone returns a copy that shares nothing with l.
func (l ConversationLog) Clone() ConversationLog {
	c := make(ConversationLog, len(l))
	copy(c, l)
	return c
}

// Tail returns the last n messages (all of them when n <= 0).
func (l ConversationLog) Tail(n int) ConversationLog {
	if n <= 0 || n >= len(l) {
		return l.Clone()
	}
	return l[len(l)-n:].Clone()
}

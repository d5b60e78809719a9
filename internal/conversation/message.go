package conversation

import (
	"github.com/sashabaranov/go-openai"
)

// Role tags the author of a message using the chat-completion role names.
type Role string

const (
	RoleSystem    Role = openai.ChatMessageRoleSystem
	RoleUser      Role = openai.ChatMessageRoleUser
	RoleAssistant Role = openai.ChatMessageRoleAssistant
)

// Message represents a single conversational message. Values are copied in
// and out of a Conversation, so a stored message never changes.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

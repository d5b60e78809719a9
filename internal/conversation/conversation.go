// Package conversation holds the ordered, role-tagged message log of a chat
// session. It lives in memory only and is never truncated or persisted.
package conversation

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrSystemMessage = errors.New("system message can only be set at construction")
	ErrUnknownRole   = errors.New("unknown message role")
)

// Conversation is an append-only message log whose first element is always
// the system instruction.
type Conversation struct {
	mu       sync.Mutex
	messages []Message
}

// New starts a conversation seeded with the system instruction.
func New(systemPrompt string) *Conversation {
	c := &Conversation{messages: make([]Message, 0, 16)}
	c.messages = append(c.messages, Message{Role: RoleSystem, Content: systemPrompt})
	return c
}

// Append adds a user or assistant message to the end of the log.
func (c *Conversation) Append(msg Message) error {
	if msg.Role == RoleSystem {
		return ErrSystemMessage
	}
	if !msg.Role.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownRole, msg.Role)
	}
	c.mu.Lock()
	c.messages = append(c.messages, msg)
	c.mu.Unlock()
	return nil
}

// Messages returns a snapshot of the log in insertion order.
func (c *Conversation) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := make([]Message, len(c.messages))
	copy(cp, c.messages)
	return cp
}

// Len returns the number of messages, the system instruction included.
func (c *Conversation) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

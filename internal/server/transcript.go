package server

import (
	"sync"

	"github.com/comigor/advisor-go/internal/chat"
)

// Transcript implements chat.View by keeping the rendered thread in memory,
// so a browser page can fetch it and draw it.
type Transcript struct {
	mu          sync.Mutex
	welcome     bool
	bubbles     []chat.Bubble
	typing      bool
	sendEnabled bool
}

func NewTranscript(withWelcome bool) *Transcript {
	return &Transcript{welcome: withWelcome, sendEnabled: true, bubbles: make([]chat.Bubble, 0, 16)}
}

func (t *Transcript) RemoveWelcome() {
	t.mu.Lock()
	t.welcome = false
	t.mu.Unlock()
}

func (t *Transcript) AppendBubble(b chat.Bubble) {
	t.mu.Lock()
	t.bubbles = append(t.bubbles, b)
	t.mu.Unlock()
}

func (t *Transcript) ShowTyping() {
	t.mu.Lock()
	t.typing = true
	t.mu.Unlock()
}

func (t *Transcript) HideTyping() {
	t.mu.Lock()
	t.typing = false
	t.mu.Unlock()
}

func (t *Transcript) SetSendEnabled(enabled bool) {
	t.mu.Lock()
	t.sendEnabled = enabled
	t.mu.Unlock()
}

// The page owns scrolling, the input field and focus.
func (t *Transcript) ScrollToEnd() {}
func (t *Transcript) ClearInput() {}
func (t *Transcript) FocusInput() {}

// Snapshot is the transcript as served to the page.
type Snapshot struct {
	SessionID   string        `json:"session_id"`
	UserName    string        `json:"user_name,omitempty"`
	Welcome     bool          `json:"welcome"`
	Typing      bool          `json:"typing"`
	SendEnabled bool          `json:"send_enabled"`
	Bubbles     []chat.Bubble `json:"bubbles"`
}

func (t *Transcript) snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	cp := make([]chat.Bubble, len(t.bubbles))
	copy(cp, t.bubbles)
	return Snapshot{Welcome: t.welcome, Typing: t.typing, SendEnabled: t.sendEnabled, Bubbles: cp}
}

// since returns the bubbles appended after the first n.
func (t *Transcript) since(n int) []chat.Bubble {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n > len(t.bubbles) {
		n = len(t.bubbles)
	}
	cp := make([]chat.Bubble, len(t.bubbles)-n)
	copy(cp, t.bubbles[n:])
	return cp
}

func (t *Transcript) count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.bubbles)
}

var _ chat.View = (*Transcript)(nil)

package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/comigor/advisor-go/internal/chat"
)

// Messages a ProgramView delivers to the Model.
type (
	welcomeRemovedMsg struct{}
	bubbleMsg         struct{ bubble chat.Bubble }
	typingMsg         bool
	scrollMsg         struct{}
	clearInputMsg     struct{}
	sendEnabledMsg    bool
	focusInputMsg     struct{}
)

// ProgramView implements chat.View by forwarding every call to a running
// bubbletea program. The handler calls it from a command goroutine; the
// program applies the changes on its own loop.
type ProgramView struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func NewProgramView() *ProgramView { return &ProgramView{} }

// Bind attaches the view to a program, typically p.Send. Calls made before
// Bind are dropped.
func (v *ProgramView) Bind(send func(tea.Msg)) {
	v.mu.Lock()
	v.send = send
	v.mu.Unlock()
}

func (v *ProgramView) emit(msg tea.Msg) {
	v.mu.Lock()
	send := v.send
	v.mu.Unlock()
	if send != nil {
		send(msg)
	}
}

func (v *ProgramView) RemoveWelcome() { v.emit(welcomeRemovedMsg{}) }
func (v *ProgramView) AppendBubble(b chat.Bubble) { v.emit(bubbleMsg{bubble: b}) }
func (v *ProgramView) ShowTyping() { v.emit(typingMsg(true)) }
func (v *ProgramView) HideTyping() { v.emit(typingMsg(false)) }
func (v *ProgramView) ScrollToEnd() { v.emit(scrollMsg{}) }
func (v *ProgramView) ClearInput() { v.emit(clearInputMsg{}) }
func (v *ProgramView) SetSendEnabled(enabled bool) { v.emit(sendEnabledMsg(enabled)) }
func (v *ProgramView) FocusInput() { v.emit(focusInputMsg{}) }

var _ chat.View = (*ProgramView)(nil)

package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/comigor/advisor-go/internal/chat"
	"github.com/comigor/advisor-go/internal/conversation"
	"github.com/comigor/advisor-go/internal/llm"
)

type stubLLM struct {
	reply string
	err   error
	calls int
}

func (s *stubLLM) Complete(context.Context, []conversation.Message) (string, error) {
	s.calls++
	return s.reply, s.err
}

func newTestModel(client llm.Client) (Model, *ProgramView) {
	view := NewProgramView()
	h := chat.NewHandler(chat.NewSession("sys"), client, view, "Beauty Advisor")
	return NewModel(context.Background(), h, "Beauty Advisor", "Welcome to the advisor"), view
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func TestNewModel_ShowsWelcome(t *testing.T) {
	m, _ := newTestModel(&stubLLM{})
	require.Contains(t, m.View(), "Welcome to the advisor")
	require.Contains(t, m.View(), "Beauty Advisor")
	require.True(t, m.sendEnabled)
}

func TestUpdate_BubblesAndWelcome(t *testing.T) {
	m, _ := newTestModel(&stubLLM{})

	m, _ = update(t, m, welcomeRemovedMsg{})
	m, _ = update(t, m, bubbleMsg{bubble: chat.RenderBubble("Which serum?", true, "Beauty Advisor")})
	m, _ = update(t, m, bubbleMsg{bubble: chat.RenderBubble("Try vitamin C.", false, "Beauty Advisor")})

	out := m.View()
	require.NotContains(t, out, "Welcome to the advisor")
	require.Contains(t, out, "You")
	require.Contains(t, out, "Which serum?")
	require.Contains(t, out, "Try vitamin C.")
	require.Len(t, m.bubbles, 2)
}

func TestUpdate_TypingIndicator(t *testing.T) {
	m, _ := newTestModel(&stubLLM{})

	m, cmd := update(t, m, typingMsg(true))
	require.True(t, m.typing)
	require.NotNil(t, cmd, "showing the indicator starts the spinner")

	m, cmd = update(t, m, typingMsg(false))
	require.False(t, m.typing)
	require.Nil(t, cmd)
}

func TestUpdate_EnterIgnoredWhileSendDisabled(t *testing.T) {
	m, _ := newTestModel(&stubLLM{})
	m, _ = update(t, m, sendEnabledMsg(false))

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Nil(t, cmd)
}

func TestUpdate_EnterSubmitsInput(t *testing.T) {
	client := &stubLLM{reply: "Hello!"}
	m, _ := newTestModel(client)
	m.input.SetValue("Hi, I'm Alex")

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	done, ok := cmd().(submitDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)
	require.Equal(t, 1, client.calls)
	require.Equal(t, "Alex", m.handler.Session().UserName())
}

func TestUpdate_EmptyEnterIsSilent(t *testing.T) {
	client := &stubLLM{}
	m, _ := newTestModel(client)
	m.input.SetValue("   ")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, cmd())
	require.Zero(t, client.calls)
	require.Empty(t, m.status)
}

func TestUpdate_BusyShowsStatus(t *testing.T) {
	m, _ := newTestModel(&stubLLM{})
	m, _ = update(t, m, submitDoneMsg{err: chat.ErrBusy})
	require.Contains(t, m.View(), "Still waiting")
}

func TestUpdate_ControlMessages(t *testing.T) {
	m, _ := newTestModel(&stubLLM{})
	m.input.SetValue("draft")

	m, _ = update(t, m, clearInputMsg{})
	require.Empty(t, m.input.Value())

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	require.Equal(t, 100, m.viewport.Width)
	require.Equal(t, 40-chrome, m.viewport.Height)

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
}

func TestProgramView_ForwardsToProgram(t *testing.T) {
	view := NewProgramView()
	view.ShowTyping() // unbound: dropped

	var got []tea.Msg
	view.Bind(func(msg tea.Msg) { got = append(got, msg) })
	view.RemoveWelcome()
	view.AppendBubble(chat.Bubble{Author: "You", Content: "hi", User: true})
	view.SetSendEnabled(false)
	view.HideTyping()

	require.Equal(t, []tea.Msg{
		welcomeRemovedMsg{},
		bubbleMsg{bubble: chat.Bubble{Author: "You", Content: "hi", User: true}},
		sendEnabledMsg(false),
		typingMsg(false),
	}, got)
}

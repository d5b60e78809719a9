// Package tui renders a chat session in the terminal: a scrolling thread of
// bubbles, a typing indicator while a reply is pending, and an input line.
package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/comigor/advisor-go/internal/chat"
	"github.com/comigor/advisor-go/internal/logger"
)

// submitDoneMsg reports how a Submit call returned.
type submitDoneMsg struct{ err error }

// chrome is the number of rows taken by the header and the input area.
const chrome = 5

// Model is the Bubble Tea model for the chat screen.
type Model struct {
	ctx         context.Context
	handler     *chat.Handler
	advisorName string
	welcome     string

	bubbles     []chat.Bubble
	showWelcome bool
	typing      bool
	sendEnabled bool
	status      string

	width  int
	height int

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
}

// NewModel creates the chat screen for h. welcome is shown until the first
// submission is accepted.
func NewModel(ctx context.Context, h *chat.Handler, advisorName, welcome string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about skincare, makeup, haircare or fragrance..."
	ti.CharLimit = 4096
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = typingStyle

	m := Model{
		ctx:         ctx,
		handler:     h,
		advisorName: advisorName,
		welcome:     welcome,
		showWelcome: welcome != "",
		sendEnabled: true,
		width:       80,
		height:      24,
		viewport:    viewport.New(80, 24-chrome),
		input:       ti,
		spinner:     sp,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chrome, 1)
		m.input.Width = max(msg.Width-4, 10)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if !m.sendEnabled {
				return m, nil
			}
			m.status = ""
			return m, m.submit(m.input.Value())
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case welcomeRemovedMsg:
		m.showWelcome = false
		m.refresh()
		return m, nil

	case bubbleMsg:
		m.bubbles = append(m.bubbles, msg.bubble)
		m.refresh()
		return m, nil

	case typingMsg:
		m.typing = bool(msg)
		m.refresh()
		if m.typing {
			return m, m.spinner.Tick
		}
		return m, nil

	case spinner.TickMsg:
		if !m.typing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh()
		return m, cmd

	case scrollMsg:
		m.viewport.GotoBottom()
		return m, nil

	case clearInputMsg:
		m.input.Reset()
		return m, nil

	case sendEnabledMsg:
		m.sendEnabled = bool(msg)
		return m, nil

	case focusInputMsg:
		return m, m.input.Focus()

	case submitDoneMsg:
		switch {
		case msg.err == nil, errors.Is(msg.err, chat.ErrEmptyInput):
		case errors.Is(msg.err, chat.ErrBusy):
			m.status = "Still waiting for the previous reply."
		default:
			logger.L.Error("submit failed", "error", msg.err)
			m.status = msg.err.Error()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit runs the round trip off the update loop; the handler reports back
// through the ProgramView.
func (m Model) submit(text string) tea.Cmd {
	h, ctx := m.handler, m.ctx
	return func() tea.Msg {
		_, err := h.Submit(ctx, text)
		return submitDoneMsg{err: err}
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(inputBorderStyle.Width(m.width).Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.footer()))
	return b.String()
}

func (m Model) header() string {
	title := titleStyle.Render(m.advisorName)
	if name := m.handler.Session().UserName(); name != "" {
		title += subtitleStyle.Render("  chatting with " + name)
	}
	return title
}

func (m Model) footer() string {
	if m.status != "" {
		return m.status
	}
	if !m.sendEnabled {
		return "waiting for reply... (esc to quit)"
	}
	return "enter to send, pgup/pgdn to scroll, esc to quit"
}

// refresh re-renders the thread into the viewport.
func (m *Model) refresh() {
	m.viewport.SetContent(m.thread())
}

func (m Model) thread() string {
	var parts []string
	if m.showWelcome {
		parts = append(parts, welcomeStyle.Width(m.width).Render(m.welcome))
	}
	for _, b := range m.bubbles {
		parts = append(parts, renderBubble(b, m.width))
	}
	if m.typing {
		parts = append(parts, m.typingIndicator())
	}
	return strings.Join(parts, "\n")
}

func (m Model) typingIndicator() string {
	return advisorHeaderStyle.Render(m.advisorName) + "\n" + m.spinner.View()
}

// renderBubble draws one entry: user bubbles hug the right edge, advisor
// bubbles the left.
func renderBubble(b chat.Bubble, width int) string {
	maxWidth := max(width*3/4, 20)
	contentWidth := min(lipgloss.Width(b.Content)+4, maxWidth)

	if b.User {
		box := lipgloss.JoinVertical(lipgloss.Right,
			userHeaderStyle.Render(b.Author),
			userBubbleStyle.Width(contentWidth).Render(b.Content),
		)
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, box)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		advisorHeaderStyle.Render(b.Author),
		advisorBubbleStyle.Width(contentWidth).Render(b.Content),
	)
}

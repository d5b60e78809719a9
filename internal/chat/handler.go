// Package chat runs the submit → reply round trip of a session and drives a
// View while it happens.
package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/comigor/advisor-go/internal/conversation"
	"github.com/comigor/advisor-go/internal/llm"
	"github.com/comigor/advisor-go/internal/logger"
	"github.com/comigor/advisor-go/internal/metrics"
)

var ErrEmptyInput = errors.New("empty input")

const apologyPrefix = "I apologize, but I'm having trouble connecting right now. "

// Exchange describes one settled submission. Err holds the remote failure,
// which has already been shown to the user as a bubble.
type Exchange struct {
	User  conversation.Message
	Reply string
	Err   error
}

// Handler owns the input flow of one session.
type Handler struct {
	session     *Session
	client      llm.Client
	view        View
	advisorName string
}

// NewHandler wires a session to its remote client and view.
func NewHandler(session *Session, client llm.Client, view View, advisorName string) *Handler {
	return &Handler{
		session:     session,
		client:      client,
		view:        view,
		advisorName: advisorName,
	}
}

// Session returns the session this handler drives.
func (h *Handler) Session() *Session { return h.session }

// Submit sends one user message and waits for the reply. It returns
// ErrEmptyInput for blank input and ErrBusy while another reply is pending;
// in both cases nothing is appended and nothing is rendered. Remote failures
// are not returned: they end up in Exchange.Err and in an advisor bubble.
func (h *Handler) Submit(ctx context.Context, input string) (*Exchange, error) {
	text := strings.TrimSpace(input)
	if text == "" {
		metrics.IncSubmission("empty")
		return nil, ErrEmptyInput
	}

	first, err := h.session.begin()
	if err != nil {
		metrics.IncSubmission("busy")
		return nil, err
	}
	metrics.IncSubmission("accepted")

	if first {
		h.view.RemoveWelcome()
	}
	h.session.rememberName(text)

	userMsg := conversation.Message{Role: conversation.RoleUser, Content: text}
	if err := h.session.conv.Append(userMsg); err != nil {
		h.session.settle()
		return nil, err
	}
	h.view.AppendBubble(RenderBubble(text, true, h.advisorName))
	h.view.ClearInput()
	h.view.SetSendEnabled(false)
	h.view.ShowTyping()
	h.view.ScrollToEnd()

	ex := &Exchange{User: userMsg}
	reply, err := h.client.Complete(ctx, h.session.conv.Messages())
	h.view.HideTyping()
	if err != nil {
		logger.L.Error("API error", "session", h.session.ID, "kind", llm.KindOf(err).String(), "error", err)
		ex.Err = err
		h.view.AppendBubble(RenderBubble(ErrorText(err), false, h.advisorName))
	} else {
		ex.Reply = reply
		if err := h.session.conv.Append(conversation.Message{Role: conversation.RoleAssistant, Content: reply}); err != nil {
			logger.L.Error("failed to record reply", "session", h.session.ID, "error", err)
		}
		h.view.AppendBubble(RenderBubble(reply, false, h.advisorName))
	}

	// The session must be idle before sending is re-enabled.
	h.session.settle()
	h.view.SetSendEnabled(true)
	h.view.ScrollToEnd()
	h.view.FocusInput()
	return ex, nil
}

// ErrorText turns a failed call into the advisor's apology.
func ErrorText(err error) string {
	switch {
	case llm.IsTransport(err):
		return apologyPrefix + "Please check the chat endpoint URL and make sure it's deployed correctly."
	case strings.Contains(err.Error(), "API key"):
		return apologyPrefix + "There seems to be an issue with the API key configuration."
	default:
		return apologyPrefix + "Error: " + err.Error()
	}
}

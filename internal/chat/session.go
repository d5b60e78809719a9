package chat

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/qmuntal/stateless"

	"github.com/comigor/advisor-go/internal/conversation"
	"github.com/comigor/advisor-go/internal/logger"
)

// Submission states
const (
	StateIdle          = "Idle"
	StateAwaitingReply = "AwaitingReply"
)

// Submission triggers
const (
	triggerSubmit = "Submit"
	triggerSettle = "Settle"
)

var ErrBusy = errors.New("a reply is still pending")

// Session is one conversation with its user: the message log, the name the
// user introduced themselves with, and whether a reply is pending.
type Session struct {
	ID string

	conv *conversation.Conversation

	mu       sync.Mutex
	userName string
	started  bool
	fsm      *stateless.StateMachine
}

// NewSession starts a session whose conversation opens with systemPrompt.
func NewSession(systemPrompt string) *Session {
	s := &Session{
		ID:   uuid.NewString(),
		conv: conversation.New(systemPrompt),
	}

	s.fsm = stateless.NewStateMachine(StateIdle)
	s.fsm.Configure(StateIdle).
		Permit(triggerSubmit, StateAwaitingReply)
	s.fsm.Configure(StateAwaitingReply).
		OnEntry(func(_ context.Context, _ ...any) error {
			logger.L.Debug("awaiting reply", "session", s.ID)
			return nil
		}).
		Permit(triggerSettle, StateIdle)

	return s
}

// Conversation returns the session's message log.
func (s *Session) Conversation() *conversation.Conversation { return s.conv }

// UserName returns the extracted user name, or "".
func (s *Session) UserName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userName
}

// State returns the submission state (StateIdle or StateAwaitingReply).
func (s *Session) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fsm.MustState().(string)
}

// begin moves the session into AwaitingReply. It reports whether this is the
// first accepted submission of the session.
func (s *Session) begin() (first bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fsm.Fire(triggerSubmit); err != nil {
		logger.L.Debug("submission rejected", "session", s.ID, "error", err)
		return false, ErrBusy
	}
	first = !s.started
	s.started = true
	return first, nil
}

func (s *Session) settle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fsm.Fire(triggerSettle); err != nil {
		logger.L.Warn("FSM fire error", "session", s.ID, "error", err)
	}
}

// rememberName stores the first name found in text. Once set it never
// changes.
func (s *Session) rememberName(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userName != "" {
		return
	}
	if name := conversation.ExtractName(text); name != "" {
		s.userName = name
		logger.L.Info("user introduced themselves", "session", s.ID, "name", name)
	}
}

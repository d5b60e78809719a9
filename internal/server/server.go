// Package server exposes a chat session over a small JSON API for a browser
// widget: read the thread, post a message, start over.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/comigor/advisor-go/internal/chat"
	"github.com/comigor/advisor-go/internal/config"
	"github.com/comigor/advisor-go/internal/llm"
	"github.com/comigor/advisor-go/internal/logger"
)

// SendMessageRequest is the body of POST /api/messages.
type SendMessageRequest struct {
	Content string `json:"content"`
}

// SendMessageResponse carries the bubbles one submission added.
type SendMessageResponse struct {
	SessionID string        `json:"session_id"`
	Bubbles   []chat.Bubble `json:"bubbles"`
}

// Server holds the single live session and its transcript.
type Server struct {
	client llm.Client
	cfg    config.Config

	mu         sync.Mutex
	handler    *chat.Handler
	transcript *Transcript

	engine *gin.Engine
}

// New builds the API around client. The first session starts immediately.
func New(client llm.Client, cfg config.Config) *Server {
	s := &Server{client: client, cfg: cfg}
	s.reset()

	r := gin.New()
	r.Use(gin.Recovery(), s.cors())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/api/messages", s.getMessages)
	r.POST("/api/messages", s.postMessage)
	r.POST("/api/reset", s.postReset)

	s.engine = r
	return s
}

// Handler returns the http.Handler serving the API.
func (s *Server) Handler() http.Handler { return s.engine }

// Run listens on addr until the listener fails.
func (s *Server) Run(addr string) error {
	logger.L.Info("starting server", "address", addr)
	return s.engine.Run(addr)
}

func (s *Server) current() (*chat.Handler, *Transcript) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handler, s.transcript
}

// reset replaces the session, the way reloading the page would.
func (s *Server) reset() {
	t := NewTranscript(s.cfg.Advisor.Welcome != "")
	h := chat.NewHandler(chat.NewSession(s.cfg.LLM.SystemPrompt), s.client, t, s.cfg.Advisor.Name)
	s.mu.Lock()
	s.handler, s.transcript = h, t
	s.mu.Unlock()
	logger.L.Info("session started", "session", h.Session().ID)
}

func (s *Server) cors() gin.HandlerFunc {
	origin := s.cfg.Server.AllowedOrigin
	return func(c *gin.Context) {
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func (s *Server) getMessages(c *gin.Context) {
	h, t := s.current()
	snap := t.snapshot()
	snap.SessionID = h.Session().ID
	snap.UserName = h.Session().UserName()
	c.JSON(http.StatusOK, snap)
}

func (s *Server) postMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	h, t := s.current()
	before := t.count()
	// A client that hangs up must not turn the pending reply into an error
	// bubble left in the shared transcript.
	_, err := h.Submit(context.WithoutCancel(c.Request.Context()), req.Content)
	switch {
	case errors.Is(err, chat.ErrEmptyInput):
		c.Status(http.StatusNoContent)
		return
	case errors.Is(err, chat.ErrBusy):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case err != nil:
		logger.L.Error("submit failed", "session", h.Session().ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, SendMessageResponse{SessionID: h.Session().ID, Bubbles: t.since(before)})
}

func (s *Server) postReset(c *gin.Context) {
	s.reset()
	h, _ := s.current()
	c.JSON(http.StatusOK, gin.H{"ok": true, "session_id": h.Session().ID})
}

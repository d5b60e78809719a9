package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/comigor/advisor-go/internal/chat"
	"github.com/comigor/advisor-go/internal/config"
	"github.com/comigor/advisor-go/internal/llm"
	"github.com/comigor/advisor-go/internal/logger"
	"github.com/comigor/advisor-go/internal/metrics"
	"github.com/comigor/advisor-go/internal/server"
	"github.com/comigor/advisor-go/internal/tui"
)

func main() {
	_ = godotenv.Load() // .env is optional

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger.SetLevel(cfg.Log.Level)
	metrics.MustRegister()

	// Initialize LLM client
	client, err := llm.New(cfg.LLM)
	if err != nil {
		slog.Error("failed to create LLM client", "error", err)
		os.Exit(1)
	}

	mode := "chat"
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}

	switch mode {
	case "serve":
		runServer(client, *cfg)
	case "chat":
		if err := runTUI(client, *cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "usage: %s [chat|serve]\n", os.Args[0])
		os.Exit(2)
	}
}

func runServer(client llm.Client, cfg config.Config) {
	srv := server.New(client, cfg)
	serverAddr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	if err := srv.Run(serverAddr); err != nil {
		logger.L.Error("failed to start server", "error", err)
		os.Exit(1)
	}
}

func runTUI(client llm.Client, cfg config.Config) error {
	// The terminal belongs to the UI; logs go to a file or nowhere.
	var out io.Writer = io.Discard
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	logger.SetOutput(out)

	// Cancels a pending call once the program exits.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	view := tui.NewProgramView()
	session := chat.NewSession(cfg.LLM.SystemPrompt)
	handler := chat.NewHandler(session, client, view, cfg.Advisor.Name)
	logger.L.Info("session started", "session", session.ID)

	p := tea.NewProgram(tui.NewModel(ctx, handler, cfg.Advisor.Name, cfg.Advisor.Welcome), tea.WithAltScreen())
	view.Bind(p.Send)

	_, err := p.Run()
	return err
}

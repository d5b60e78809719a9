// Package llm turns a conversation into a reply from a remote chat-completion
// service. Every failure is reported as an *Error so callers can tell a dead
// endpoint from a bad payload.
package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/comigor/advisor-go/internal/config"
	"github.com/comigor/advisor-go/internal/conversation"
)

const (
	ProviderProxy  = "proxy"
	ProviderOpenAI = "openai"
)

// Client is the single operation the chat handler needs; it is easy to mock
// in tests.
type Client interface {
	Complete(ctx context.Context, messages []conversation.Message) (string, error)
}

// New builds the client for the configured provider, instrumented with
// call metrics.
func New(cfg config.LLMConfig) (Client, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	switch provider {
	case "", ProviderProxy:
		if cfg.Endpoint == "" {
			return nil, fmt.Errorf("llm: proxy provider needs an endpoint")
		}
		return Instrument(NewProxyClient(cfg.Endpoint, http.DefaultClient), ProviderProxy), nil
	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("llm: openai provider needs an API key")
		}
		return Instrument(NewOpenAIClient(cfg), ProviderOpenAI), nil
	default:
		return nil, fmt.Errorf("llm: unsupported provider %q", cfg.Provider)
	}
}

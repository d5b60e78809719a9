package llm

import (
	"context"
	"errors"
	"net/http"

	"github.com/sashabaranov/go-openai"

	"github.com/comigor/advisor-go/internal/config"
	"github.com/comigor/advisor-go/internal/conversation"
	"github.com/comigor/advisor-go/internal/logger"
)

const defaultModel = openai.GPT4oMini

// completer is the subset of openai.Client used here.
type completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIClient talks to an OpenAI-compatible API directly instead of going
// through a proxy.
type OpenAIClient struct {
	api   completer
	model string
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(cfg config.LLMConfig) *OpenAIClient {
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	return &OpenAIClient{api: openai.NewClientWithConfig(oc), model: model}
}

func (c *OpenAIClient) Complete(ctx context.Context, messages []conversation.Message) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{Role: string(m.Role), Content: m.Content})
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		logger.L.Error("LLM call failed", "model", c.model, "error", err)
		return "", classifyOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", &Error{Kind: KindMalformed}
	}
	return resp.Choices[0].Message.Content, nil
}

func classifyOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &Error{Kind: KindServer, StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message, Details: apiErr.Type, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		body := http.StatusText(reqErr.HTTPStatusCode)
		if reqErr.Err != nil {
			body = reqErr.Err.Error()
		}
		return &Error{Kind: KindStatus, StatusCode: reqErr.HTTPStatusCode, Body: body, Err: err}
	}
	return &Error{Kind: KindTransport, Err: err}
}

var _ Client = (*OpenAIClient)(nil)

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/comigor/advisor-go/internal/conversation"
	"github.com/comigor/advisor-go/internal/logger"
)

// ProxyClient posts the whole conversation to a chat proxy that answers with
// an OpenAI-style chat-completion envelope.
type ProxyClient struct {
	endpoint string
	client   *http.Client
}

// NewProxyClient creates a client for endpoint. A nil httpClient means
// http.DefaultClient.
func NewProxyClient(endpoint string, httpClient *http.Client) *ProxyClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &ProxyClient{endpoint: endpoint, client: httpClient}
}

type proxyRequest struct {
	Messages []conversation.Message `json:"messages"`
}

// proxyStatus is decoded on its own so a reported error wins over a broken
// envelope.
type proxyStatus struct {
	Error   json.RawMessage `json:"error"`
	Details json.RawMessage `json:"details"`
}

type proxyResponse struct {
	Choices []struct {
		Message *struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends messages and returns choices[0].message.content verbatim.
func (p *ProxyClient) Complete(ctx context.Context, messages []conversation.Message) (string, error) {
	body, err := json.Marshal(proxyRequest{Messages: messages})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	logger.L.Debug("sending chat request", "endpoint", p.endpoint, "messages", len(messages))
	resp, err := p.client.Do(req)
	if err != nil {
		return "", &Error{Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Kind: KindTransport, Err: err}
	}
	text := string(raw)
	logger.L.Debug("chat response received", "status", resp.StatusCode, "bytes", len(raw))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.L.Error("chat request failed", "status", resp.StatusCode, "body", text)
		return "", &Error{Kind: KindStatus, StatusCode: resp.StatusCode, Body: text}
	}
	if strings.TrimSpace(text) == "" {
		return "", &Error{Kind: KindEmptyResponse}
	}

	// Syntax first, so a valid JSON value of the wrong shape is reported as
	// malformed rather than unparsable.
	var syntax any
	if err := json.Unmarshal(raw, &syntax); err != nil {
		return "", &Error{Kind: KindParse, Err: err}
	}
	var status proxyStatus
	if err := json.Unmarshal(raw, &status); err != nil {
		return "", &Error{Kind: KindMalformed, Err: err}
	}
	if msg, ok := fieldText(status.Error); ok {
		details, _ := fieldText(status.Details)
		logger.L.Error("chat proxy reported an error", "error", msg, "details", details)
		return "", &Error{Kind: KindServer, Message: msg, Details: details}
	}

	var out proxyResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		logger.L.Error("invalid response structure", "body", text)
		return "", &Error{Kind: KindMalformed, Err: err}
	}

	if len(out.Choices) == 0 || out.Choices[0].Message == nil || out.Choices[0].Message.Content == nil {
		logger.L.Error("invalid response structure", "body", text)
		return "", &Error{Kind: KindMalformed}
	}
	return *out.Choices[0].Message.Content, nil
}

// fieldText renders a loosely typed error/details field. Absent, null, false
// and empty values count as unset; objects contribute their "message".
func fieldText(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", false
	}
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, t != ""
	case bool:
		if !t {
			return "", false
		}
	case float64:
		if t == 0 {
			return "", false
		}
	case map[string]any:
		if m, ok := t["message"].(string); ok && m != "" {
			return m, true
		}
	}
	return string(raw), true
}

var _ Client = (*ProxyClient)(nil)

// IsTransport reports whether err means the endpoint could not be reached.
func IsTransport(err error) bool { return errors.Is(err, ErrTransport) }

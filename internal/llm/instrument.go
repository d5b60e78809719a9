package llm

import (
	"context"
	"time"

	"github.com/comigor/advisor-go/internal/conversation"
	"github.com/comigor/advisor-go/internal/metrics"
)

type instrumented struct {
	next     Client
	provider string
}

// Instrument records latency and outcome of every call made through next.
func Instrument(next Client, provider string) Client {
	return &instrumented{next: next, provider: provider}
}

func (i *instrumented) Complete(ctx context.Context, messages []conversation.Message) (string, error) {
	start := time.Now()
	reply, err := i.next.Complete(ctx, messages)
	outcome := "ok"
	if err != nil {
		outcome = KindOf(err).String()
	}
	metrics.ObserveCall(i.provider, outcome, time.Since(start))
	return reply, err
}

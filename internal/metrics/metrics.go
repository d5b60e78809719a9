// Package metrics holds the prometheus collectors for chat traffic.
package metrics

import (
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	llmCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_llm_calls_total",
			Help: "Remote chat-completion calls per provider and outcome.",
		},
		[]string{"provider", "outcome"},
	)

	llmLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "advisor_llm_call_latency_ms",
			Help:    "Remote chat-completion latency in milliseconds.",
			Buckets: []float64{50, 100, 250, 500, 1000, 2000, 4000, 8000, 16000, 32000},
		},
		[]string{"provider"},
	)

	submissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_submissions_total",
			Help: "User submissions by result (accepted/empty/busy).",
		},
		[]string{"result"},
	)
)

// MustRegister registers collectors with the default registry (idempotent).
func MustRegister() {
	once.Do(func() {
		prometheus.MustRegister(llmCalls, llmLatencyMs, submissions)
	})
}

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func ObserveCall(provider, outcome string, elapsed time.Duration) {
	llmCalls.WithLabelValues(norm(provider), norm(outcome)).Inc()
	llmLatencyMs.WithLabelValues(norm(provider)).Observe(float64(elapsed.Milliseconds()))
}

func IncSubmission(result string) {
	submissions.WithLabelValues(norm(result)).Inc()
}

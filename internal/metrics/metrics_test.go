package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserveCall_CountsByOutcome(t *testing.T) {
	before := testutil.ToFloat64(llmCalls.WithLabelValues("proxy", "status"))
	ObserveCall(" Proxy ", "STATUS", 120*time.Millisecond)
	require.Equal(t, before+1, testutil.ToFloat64(llmCalls.WithLabelValues("proxy", "status")))
}

func TestIncSubmission(t *testing.T) {
	before := testutil.ToFloat64(submissions.WithLabelValues("busy"))
	IncSubmission("busy")
	IncSubmission("busy")
	require.Equal(t, before+2, testutil.ToFloat64(submissions.WithLabelValues("busy")))
}

func TestMustRegister_Idempotent(t *testing.T) {
	require.NotPanics(t, func() {
		MustRegister()
		MustRegister()
	})
}

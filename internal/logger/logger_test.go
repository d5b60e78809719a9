package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { SetLevel("info") })

	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		SetLevel(in)
		require.Equal(t, want, levelVar.Level(), "level %q", in)
	}
}

func TestSetOutput_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stdout) })

	L.Info("submission accepted", "session", "abc")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "submission accepted", rec["msg"])
	require.Equal(t, "abc", rec["session"])
}

func TestSetOutput_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel("warn")
	t.Cleanup(func() {
		SetOutput(os.Stdout)
		SetLevel("info")
	})

	L.Info("dropped")
	require.Zero(t, buf.Len())
}

package diagnostic

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTracerEnabledEmitsRecords(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	tr := NewTracer(logger, true)

	tr.Enter(context.Background(), "expr", 3)
	tr.Exit(context.Background(), "expr", 2, true)

	out := buf.String()
	require.Contains(t, out, "rule=expr")
	require.Contains(t, out, "matched=true")
}

func TestTracerDisabledIsNoop(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	tr := NewTracer(logger, false)

	tr.Enter(context.Background(), "expr", 3)
	tr.Exit(context.Background(), "expr", 2, true)

	require.Empty(t, buf.String())
}

func TestNilTracerIsSafe(t *testing.T) {
	var tr *Tracer
	tr.Enter(context.Background(), "expr", 0)
	tr.Exit(context.Background(), "expr", 0, false)
}

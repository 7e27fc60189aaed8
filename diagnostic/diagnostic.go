// Package diagnostic wraps log/slog for packrat's optional per-non-terminal
// parse tracing, the structured-logging counterpart of oskoi-pigeon's
// p.print/p.in/p.out indented debug trace (builder/static_code.go), in the
// style cogentcore-core's logx package builds on log/slog
// (cogentcore-core/logx/level_default.go, cogentcore-core/types/funcs.go).
package diagnostic

import (
	"context"
	"log/slog"
)

// Tracer emits one structured record per non-terminal entry/exit when
// enabled; when disabled every method is a no-op, so a Grammar.Parse* call
// can unconditionally call through it without branching on config.Options.Debug
// at every call site.
type Tracer struct {
	logger  *slog.Logger
	enabled bool
	depth   int
}

// NewTracer returns a Tracer that logs to logger when enabled is true, or
// discards everything when enabled is false. A nil logger defaults to
// slog.Default().
func NewTracer(logger *slog.Logger, enabled bool) *Tracer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracer{logger: logger, enabled: enabled}
}

// Enter logs entry into non-terminal name at position pos.
func (t *Tracer) Enter(ctx context.Context, name string, pos int) {
	if t == nil || !t.enabled {
		return
	}
	t.logger.DebugContext(ctx, "enter", slog.String("rule", name), slog.Int("pos", pos), slog.Int("depth", t.depth))
	t.depth++
}

// Exit logs a match or failure leaving non-terminal name at position pos.
func (t *Tracer) Exit(ctx context.Context, name string, pos int, matched bool) {
	if t == nil || !t.enabled {
		return
	}
	t.depth--
	t.logger.DebugContext(ctx, "exit", slog.String("rule", name), slog.Int("pos", pos), slog.Bool("matched", matched), slog.Int("depth", t.depth))
}

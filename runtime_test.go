package packrat

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tef/packrat/config"
	"github.com/tef/packrat/diagnostic"
)

// aStar = 'a' aStar | ε, used below purely to force more than one
// non-terminal evaluation per parse.
func aStarGrammar() (*Grammar, NonTerminal[int]) {
	g := NewGrammar()
	ref := Forward[int]("aStar")
	a := Define(g, "aStar", Alt(
		Seq2(charP('a'), NT(ref), func(_ rune, rest int) int { return rest + 1 }),
		PureP(0),
	))
	return g, a
}

func TestEnabledTracerTracesEveryNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	g, a := aStarGrammar()
	g.tracer = diagnostic.NewTracer(logger, true)

	rl := ParseComplete(g, a, rseq([]rune("aaa")))
	require.True(t, rl.HasSuccess())
	require.Contains(t, buf.String(), "rule=aStar")
	require.Contains(t, buf.String(), "msg=enter")
	require.Contains(t, buf.String(), "msg=exit")
}

func TestDisabledTracerTracesNothing(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	g, a := aStarGrammar()
	g.tracer = diagnostic.NewTracer(logger, false)

	rl := ParseComplete(g, a, rseq([]rune("aaa")))
	require.True(t, rl.HasSuccess())
	require.Empty(t, buf.String())
}

func TestMaxExprCountAbortsOnceBudgetExhausted(t *testing.T) {
	g, a := aStarGrammar()
	g.Configure(config.New(config.WithMaxExprCount(1)))

	rl := ParseComplete(g, a, rseq([]rune("aaa")))
	require.False(t, rl.HasSuccess())
}

func TestMaxExprCountZeroIsUnbounded(t *testing.T) {
	g, a := aStarGrammar()
	g.Configure(config.New())

	rl := ParseComplete(g, a, rseq([]rune("aaa")))
	require.True(t, rl.HasSuccess())
}

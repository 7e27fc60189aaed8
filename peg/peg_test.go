package peg

import (
	"testing"
	"unicode"

	"github.com/stretchr/testify/require"
)

func TestLiteralMatches(t *testing.T) {
	sc := NewScanner([]byte("hello world"))
	res := Literal("hello")(sc)
	require.True(t, res.Ok())
	require.Equal(t, 5, res.Length)
	require.Equal(t, "hello", res.Value)
	require.Equal(t, 5, sc.Position().Offset)
}

func TestLiteralFailsAndRestoresPosition(t *testing.T) {
	sc := NewScanner([]byte("goodbye"))
	res := Literal("hello")(sc)
	require.False(t, res.Ok())
	require.Equal(t, 0, sc.Position().Offset)
}

func TestCharClassMatchesSingleRune(t *testing.T) {
	sc := NewScanner([]byte("42"))
	res := CharClass(unicode.IsDigit, "digit")(sc)
	require.True(t, res.Ok())
	require.Equal(t, '4', res.Value)
}

func TestCharClassFailsOnMismatch(t *testing.T) {
	sc := NewScanner([]byte("x"))
	res := CharClass(unicode.IsDigit, "digit")(sc)
	require.False(t, res.Ok())
	require.Equal(t, []string{"digit"}, res.Failure.Expected)
}

func TestMemoizeSkipsSecondInvocation(t *testing.T) {
	calls := 0
	p := Memoize("digit", Parser[rune](func(sc *Scanner) Result[rune] {
		calls++
		return CharClass(unicode.IsDigit, "digit")(sc)
	}))

	sc := NewScanner([]byte("4x"), WithMemoize(true))
	r1 := p(sc)
	sc.Restore(Savepoint{})
	r2 := p(sc)
	require.True(t, r1.Ok())
	require.True(t, r2.Ok())
	require.Equal(t, 1, calls)
}

func TestMemoizeDisabledRunsEveryTime(t *testing.T) {
	calls := 0
	p := Memoize("digit", Parser[rune](func(sc *Scanner) Result[rune] {
		calls++
		return CharClass(unicode.IsDigit, "digit")(sc)
	}))

	sc := NewScanner([]byte("4x"))
	p(sc)
	sc.Restore(Savepoint{})
	p(sc)
	require.Equal(t, 2, calls)
}

func TestFurthestFailureTracksDeepestProgress(t *testing.T) {
	sc := NewScanner([]byte("ab"))
	CharClass(unicode.IsDigit, "digit")(sc)
	sc.Next()
	CharClass(unicode.IsDigit, "digit")(sc)
	f := sc.FurthestFailure()
	require.Equal(t, 1, f.Position.Offset)
}

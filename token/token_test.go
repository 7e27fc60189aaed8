package token

import (
	"testing"
	"unicode"

	"github.com/stretchr/testify/require"

	"github.com/tef/packrat"
	"github.com/tef/packrat/bundle"
)

func buildTable(text string) *packrat.TailTable {
	return packrat.BuildTailTable(bundle.New(), NewRuneSeq(text))
}

func TestSatisfyMatchesAndAdvances(t *testing.T) {
	p := Satisfy(func(r rune) bool { return r == 'a' }, "a")
	rl := p(buildTable("ab"))
	require.True(t, rl.HasSuccess())
	s := rl.Successes()[0]
	require.Equal(t, rune('a'), s.Value)
	require.Equal(t, 1, s.Rest.Len())
}

func TestSatisfyFailsWithLabel(t *testing.T) {
	p := Satisfy(func(r rune) bool { return r == 'a' }, "letter a")
	rl := p(buildTable("b"))
	require.False(t, rl.HasSuccess())
	require.Equal(t, []string{"letter a"}, rl.Failure.Expected)
}

func TestStringLitMatchesWholeLiteral(t *testing.T) {
	p := StringLit("foo")
	rl := p(buildTable("foobar"))
	require.True(t, rl.HasSuccess())
	s := rl.Successes()[0]
	require.Equal(t, "foo", s.Value)
	require.Equal(t, 3, s.Rest.Len())
}

func TestStringLitFailsOnMismatch(t *testing.T) {
	p := StringLit("foo")
	rl := p(buildTable("bar"))
	require.False(t, rl.HasSuccess())
}

func TestTakeWhileMatchesLongestRun(t *testing.T) {
	p := TakeWhile(unicode.IsDigit)
	rl := p(buildTable("123abc"))
	s := rl.Successes()[0]
	require.Equal(t, "123", s.Value)
	require.Equal(t, 3, s.Consumed)
}

func TestTakeWhile1RequiresOneMatch(t *testing.T) {
	p := TakeWhile1(unicode.IsDigit, "digit")
	rl := p(buildTable("abc"))
	require.False(t, rl.HasSuccess())
}

func TestRuneInMatchesUnicodeCategory(t *testing.T) {
	p := RuneIn(unicode.Letter, "letter")
	rl := p(buildTable("a1"))
	require.True(t, rl.HasSuccess())

	rl2 := p(buildTable("1a"))
	require.False(t, rl2.HasSuccess())
}

func TestRuneSeqTails(t *testing.T) {
	s := NewRuneSeq("ab")
	tails := s.Tails()
	require.Len(t, tails, 3)
	require.True(t, tails[2].Empty())
}

func TestRuneRangeMatchesWithinBounds(t *testing.T) {
	p := RuneRange('a', 'f', "hex letter")
	rl := p(buildTable("c1"))
	require.True(t, rl.HasSuccess())

	rl2 := p(buildTable("z1"))
	require.False(t, rl2.HasSuccess())
}

func TestScanConsumesWhileStepAccepts(t *testing.T) {
	// Accept digits until the accumulated value would exceed 12.
	p := Scan(0, func(sum int, r rune) (int, bool) {
		if r < '0' || r > '9' {
			return sum, false
		}
		next := sum*10 + int(r-'0')
		return next, next <= 12
	})
	rl := p(buildTable("129abc"))
	s := rl.Successes()[0]
	require.Equal(t, "12", s.Value)
	require.Equal(t, 2, s.Consumed)
}

func buildTokenTable[T comparable](tokens []T) *packrat.TailTable {
	return packrat.BuildTailTable(bundle.New(), TokenSeq[T](tokens))
}

func TestAnyTokenMatchesAnyElement(t *testing.T) {
	p := AnyToken[string]()
	rl := p(buildTokenTable([]string{"lparen", "id"}))
	require.True(t, rl.HasSuccess())
	require.Equal(t, "lparen", rl.Successes()[0].Value)
}

func TestAnySatisfyIsAnyTokenAlias(t *testing.T) {
	p := AnySatisfy[int]()
	rl := p(buildTokenTable([]int{7}))
	require.True(t, rl.HasSuccess())
	require.Equal(t, 7, rl.Successes()[0].Value)
}

func TestSatisfyTokenFailsWithLabel(t *testing.T) {
	p := SatisfyToken(func(tok string) bool { return tok == "id" }, "identifier token")
	rl := p(buildTokenTable([]string{"lparen"}))
	require.False(t, rl.HasSuccess())
	require.Equal(t, []string{"identifier token"}, rl.Failure.Expected)
}

func TestNotSatisfyTokenRejectsMatching(t *testing.T) {
	p := NotSatisfyToken(func(tok string) bool { return tok == "lparen" }, "non-lparen token")
	rl := p(buildTokenTable([]string{"lparen"}))
	require.False(t, rl.HasSuccess())

	rl2 := p(buildTokenTable([]string{"id"}))
	require.True(t, rl2.HasSuccess())
}

package bundle

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefineAndGet(t *testing.T) {
	b := New()
	b.Define("a", 1)
	b.Define("b", "two")

	v, ok := b.Get("a")
	require.True(t, ok)
	require.Equal(t, 1, v)

	v, ok = b.Get("b")
	require.True(t, ok)
	require.Equal(t, "two", v)

	_, ok = b.Get("missing")
	require.False(t, ok)
}

func TestDefineDuplicatePanics(t *testing.T) {
	b := New()
	b.Define("a", 1)
	require.Panics(t, func() { b.Define("a", 2) })
}

func TestNamesPreservesDefinitionOrder(t *testing.T) {
	b := New()
	b.Define("z", 1)
	b.Define("a", 2)
	b.Define("m", 3)
	require.Equal(t, []string{"z", "a", "m"}, b.Names())
}

func TestMap(t *testing.T) {
	b := New()
	b.Define("a", 1)
	b.Define("b", 2)

	out := Map(b, func(name string, v any) any { return v.(int) * 10 })
	va, _ := out.Get("a")
	vb, _ := out.Get("b")
	require.Equal(t, 10, va)
	require.Equal(t, 20, vb)
}

func TestFold(t *testing.T) {
	b := New()
	b.Define("a", 1)
	b.Define("b", 2)
	b.Define("c", 3)

	sum := Fold(b, 0, func(_ string, v any, acc int) int { return acc + v.(int) })
	require.Equal(t, 6, sum)
}

func TestTraverseStopsAtFirstError(t *testing.T) {
	b := New()
	b.Define("a", 1)
	b.Define("b", -1)
	b.Define("c", 3)

	var seen []string
	_, err := Traverse(context.Background(), b, func(_ context.Context, name string, v any) (any, error) {
		seen = append(seen, name)
		if v.(int) < 0 {
			return nil, errors.New("negative")
		}
		return v, nil
	})
	require.Error(t, err)
	require.Equal(t, []string{"a", "b"}, seen)
}

func TestTraverseConcurrentCollectsResultsInOrder(t *testing.T) {
	b := New()
	for i, name := range []string{"a", "b", "c", "d"} {
		b.Define(name, i)
	}

	out, err := TraverseConcurrent(context.Background(), b, func(_ context.Context, _ string, v any) (any, error) {
		return v.(int) * 2, nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c", "d"}, out.Names())
	for i, name := range out.Names() {
		v, _ := out.Get(name)
		require.Equal(t, i*2, v)
	}
}

func TestTraverseConcurrentPropagatesError(t *testing.T) {
	b := New()
	b.Define("a", 1)
	b.Define("b", 2)

	_, err := TraverseConcurrent(context.Background(), b, func(_ context.Context, name string, _ any) (any, error) {
		if name == "b" {
			return nil, errors.New("boom")
		}
		return nil, nil
	})
	require.Error(t, err)
}

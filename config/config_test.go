package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptionsComposeAndUndo(t *testing.T) {
	o := New(WithMemoize(true), WithDebug(true), WithMaxExprCount(100))
	require.True(t, o.Memoize)
	require.True(t, o.Debug)
	require.Equal(t, uint64(100), o.MaxExprCount)

	undo := WithDebug(false)(&o)
	require.False(t, o.Debug)
	undo(&o)
	require.True(t, o.Debug)
}

func TestLoadParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "packrat.yaml")
	contents := "memoize: true\ndebug: false\nmax_expr_count: 42\nentrypoint: expr\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	o, err := Load(path)
	require.NoError(t, err)
	require.True(t, o.Memoize)
	require.False(t, o.Debug)
	require.Equal(t, uint64(42), o.MaxExprCount)
	require.Equal(t, "expr", o.Entrypoint)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/packrat.yaml")
	require.Error(t, err)
}

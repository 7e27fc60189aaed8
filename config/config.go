// Package config is packrat's functional-options configuration surface,
// generalizing oskoi-pigeon's `option func(*parser) option` pattern
// (builder/static_code.go) from a single generated parser's toggles to a
// reusable Options struct, plus a YAML loader (gopkg.in/yaml.v3, as
// cogentcore-core/enums/methods_test.go and the rest of the pack use it)
// for hosts that want configuration from a file rather than code.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Options holds every toggle a packrat.Grammar parse consults.
type Options struct {
	// Memoize enables packrat memoization in the peg sub-engine (see
	// peg.WithMemoize); the core CFG engine is always memoized (spec §4.3
	// is not optional), so this only affects PEG-bridged sub-grammars.
	Memoize bool

	// Debug turns on structured per-non-terminal tracing via package
	// diagnostic.
	Debug bool

	// MaxExprCount bounds the number of NT forces a single parse may
	// perform before aborting, the packrat analogue of oskoi-pigeon's
	// maxExprCnt guard against runaway generated parsers. Zero means
	// unbounded.
	MaxExprCount uint64

	// Entrypoint names the example grammar cmd/packrat runs when the
	// -grammar flag is not given.
	Entrypoint string
}

// Option mutates o and returns an Option that would undo the change,
// mirroring oskoi-pigeon's undo-capable option closures exactly.
type Option func(o *Options) Option

// WithMemoize sets Options.Memoize.
func WithMemoize(b bool) Option {
	return func(o *Options) Option {
		prev := o.Memoize
		o.Memoize = b
		return WithMemoize(prev)
	}
}

// WithDebug sets Options.Debug.
func WithDebug(b bool) Option {
	return func(o *Options) Option {
		prev := o.Debug
		o.Debug = b
		return WithDebug(prev)
	}
}

// WithMaxExprCount sets Options.MaxExprCount.
func WithMaxExprCount(n uint64) Option {
	return func(o *Options) Option {
		prev := o.MaxExprCount
		o.MaxExprCount = n
		return WithMaxExprCount(prev)
	}
}

// WithEntrypoint sets Options.Entrypoint.
func WithEntrypoint(name string) Option {
	return func(o *Options) Option {
		prev := o.Entrypoint
		o.Entrypoint = name
		return WithEntrypoint(prev)
	}
}

// New builds an Options from a sequence of Option values.
func New(opts ...Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// fileOptions is the on-disk YAML shape Load parses; kept distinct from
// Options so the file format doesn't have to track every internal field
// name or type 1:1.
type fileOptions struct {
	Memoize      bool   `yaml:"memoize"`
	Debug        bool   `yaml:"debug"`
	MaxExprCount uint64 `yaml:"max_expr_count"`
	Entrypoint   string `yaml:"entrypoint"`
}

// Load reads path as YAML and returns the Options it describes.
func Load(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("config: %w", err)
	}
	var f fileOptions
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Options{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return Options{
		Memoize:      f.Memoize,
		Debug:        f.Debug,
		MaxExprCount: f.MaxExprCount,
		Entrypoint:   f.Entrypoint,
	}, nil
}

// Command packrat drives one of the example grammars against an input file
// or stdin, adapted from the teacher's (tef-ez) cmd/ez/ez.go — "build a
// grammar, report its error, try some input" — upgraded from three
// hardcoded Accept calls to a flag-selected grammar and a real input
// source.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/tef/packrat/config"
	"github.com/tef/packrat/examples/ambiguous"
	"github.com/tef/packrat/examples/arithmetic"
	"github.com/tef/packrat/examples/json"
	"github.com/tef/packrat/examples/mutual"
)

func main() {
	grammarName := flag.String("grammar", "", "grammar to run: arithmetic, ambiguous, mutual, json (default from -config's entrypoint, else arithmetic)")
	input := flag.String("input", "", "input file to parse (default stdin)")
	configPath := flag.String("config", "", "optional YAML config file")
	debug := flag.Bool("debug", false, "trace rule entry/exit to stderr")
	memoize := flag.Bool("memoize", false, "enable packrat memoization in PEG-bridged lexical rules")
	maxExprCount := flag.Uint64("max-expr-count", 0, "abort a parse after this many non-terminal forces (0 = unbounded)")
	flag.Parse()

	opts := config.New()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "err:", err)
			os.Exit(1)
		}
		opts = loaded
	}
	if *debug {
		opts.Debug = true
	}
	if *memoize {
		opts.Memoize = true
	}
	if *maxExprCount > 0 {
		opts.MaxExprCount = *maxExprCount
	}
	if opts.Debug {
		// The tracer logs at debug level through slog.Default, whose
		// stock handler drops debug records.
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	name := *grammarName
	if name == "" {
		name = opts.Entrypoint
	}
	if name == "" {
		name = "arithmetic"
	}

	text, err := readInput(*input)
	if err != nil {
		fmt.Fprintln(os.Stderr, "err:", err)
		os.Exit(1)
	}

	if err := run(name, text, opts); err != nil {
		fmt.Fprintln(os.Stderr, "err:", err)
		os.Exit(1)
	}
}

func readInput(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

func run(grammarName, text string, opts config.Options) error {
	switch grammarName {
	case "arithmetic":
		v, err := arithmetic.Eval(text, opts)
		if err != nil {
			return err
		}
		fmt.Println(v)
	case "ambiguous":
		fmt.Println(ambiguous.CountParses(text, opts))
	case "mutual":
		v, err := mutual.Depth(text, opts)
		if err != nil {
			return err
		}
		fmt.Println(v)
	case "json":
		v, err := json.Parse(text, opts)
		if err != nil {
			return err
		}
		fmt.Printf("%+v\n", v)
	default:
		return fmt.Errorf("packrat: unknown grammar %q", grammarName)
	}
	return nil
}

// Command opine-harness is the thin external-collaborator surface for the
// differential harness (spec.md §1 Out of scope: "command-line argument
// parsing"; §6 exit-code convention). It wires a built-in Format, two
// Implementation Adapters, and an iteration strategy, runs the harness,
// and prints the report.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/johnwbyrd/opine/adapter"
	"github.com/johnwbyrd/opine/edgecase"
	"github.com/johnwbyrd/opine/format"
	"github.com/johnwbyrd/opine/harness"
	"github.com/johnwbyrd/opine/iterate"
	"go.uber.org/zap"
)

var formats = map[string]format.Format{
	"binary16":   format.Binary16,
	"binary32":   format.Binary32,
	"binary64":   format.Binary64,
	"binary128":  format.Binary128,
	"extfloat80": format.ExtFloat80,
}

var binaryOps = map[string]adapter.BinaryTag{
	"add":       adapter.Add,
	"sub":       adapter.Sub,
	"mul":       adapter.Mul,
	"div":       adapter.Div,
	"remainder": adapter.Remainder,
	"equal":     adapter.Equal,
	"lt":        adapter.LessThan,
	"le":        adapter.LessOrEqual,
}

var unaryOps = map[string]adapter.UnaryTag{
	"sqrt":     adapter.Sqrt,
	"negate":   adapter.Negate,
	"absolute": adapter.Absolute,
}

func newAdapter(name string, f format.Format) (adapter.Adapter, error) {
	switch name {
	case "oracle":
		return adapter.Oracle{Format: f}, nil
	case "softfloat":
		return adapter.SoftFloat{Format: f}, nil
	case "native":
		return adapter.Native{Format: f}, nil
	default:
		return nil, fmt.Errorf("unknown adapter %q (want oracle, softfloat, or native)", name)
	}
}

func main() {
	formatName := flag.String("format", "binary32", "format under test: binary16, binary32, binary64, binary128, extfloat80")
	adapterA := flag.String("a", "oracle", "first adapter: oracle, softfloat, native")
	adapterB := flag.String("b", "softfloat", "second adapter: oracle, softfloat, native")
	op := flag.String("op", "add", "operation: add, sub, mul, div, remainder, equal, lt, le, sqrt, negate, absolute, fma")
	strategy := flag.String("strategy", "targeted", "iteration strategy: targeted, random, combined")
	seed := flag.Uint64("seed", 1, "random strategy seed (reproducible, never the clock)")
	count := flag.Int("count", 1000, "random strategy pair count")
	ignoreFlags := flag.Bool("ignore-flags", false, "use the bit-exact-ignoring-flags comparator instead of bit-exact")
	verbose := flag.Bool("verbose", false, "enable structured run logging")
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintln(os.Stderr, "opine-harness: failed to build logger:", err)
			os.Exit(2)
		}
		harness.SetLogger(logger)
	}

	f, ok := formats[*formatName]
	if !ok {
		fmt.Fprintf(os.Stderr, "opine-harness: unknown format %q\n", *formatName)
		os.Exit(2)
	}

	a, err := newAdapter(*adapterA, f)
	if err != nil {
		fmt.Fprintln(os.Stderr, "opine-harness:", err)
		os.Exit(2)
	}
	b, err := newAdapter(*adapterB, f)
	if err != nil {
		fmt.Fprintln(os.Stderr, "opine-harness:", err)
		os.Exit(2)
	}

	tag, err := resolveOperation(*op)
	if err != nil {
		fmt.Fprintln(os.Stderr, "opine-harness:", err)
		os.Exit(2)
	}

	strat, err := resolveStrategy(*strategy, f, *seed, *count)
	if err != nil {
		fmt.Fprintln(os.Stderr, "opine-harness:", err)
		os.Exit(2)
	}

	cmp := harness.BitExact
	if *ignoreFlags {
		cmp = harness.BitExactIgnoringFlags
	}

	report := harness.Run(a, b, f, strat, tag, cmp)
	fmt.Println(report.String())

	if report.Failed > 0 {
		os.Exit(1)
	}
	os.Exit(0)
}

func resolveOperation(op string) (harness.OperationTag, error) {
	if bt, ok := binaryOps[op]; ok {
		return harness.OperationTag{Arity: harness.ArityBinary, Binary: bt, Label: op}, nil
	}
	if ut, ok := unaryOps[op]; ok {
		return harness.OperationTag{Arity: harness.ArityUnary, Unary: ut, Label: op}, nil
	}
	if op == "fma" {
		return harness.OperationTag{Arity: harness.ArityTernary, Ternary: adapter.FMA, Label: op}, nil
	}
	return harness.OperationTag{}, fmt.Errorf("unknown operation %q", op)
}

func resolveStrategy(name string, f format.Format, seed uint64, count int) (iterate.Strategy, error) {
	switch name {
	case "targeted":
		return iterate.Targeted{Corpus: edgecase.Generate(f)}, nil
	case "random":
		return iterate.Random{Seed: seed, Count: count}, nil
	case "combined":
		return iterate.Combined{Strategies: []iterate.Strategy{
			iterate.Targeted{Corpus: edgecase.Generate(f)},
			iterate.Random{Seed: seed, Count: count},
		}}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (want targeted, random, or combined)", name)
	}
}

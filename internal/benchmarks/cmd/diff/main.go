// diff is a small CLI to manually run the diffing implementations used for benchmarking.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/peterbourgon/ff/v3"
	"golang.org/x/tools/txtar"
	"znkr.io/semdiff"
	"znkr.io/semdiff/internal/benchmarks"
)

type config struct {
	lib   string
	color bool
	x, y  string
	txtar string
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	var cfg config
	fs := flag.NewFlagSet("diff", flag.ContinueOnError)
	fs.StringVar(&cfg.lib, "lib", "semdiff", "library to use for diffing")
	fs.BoolVar(&cfg.color, "color", false, "render the diff with terminal colors instead of a list of edits")
	fs.StringVar(&cfg.txtar, "txtar", "", "use testdata txtar file instead of two input files")
	if err := ff.Parse(fs, args, ff.WithEnvVarPrefix("BENCHMARKS")); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if cfg.txtar != "" {
		if fs.NArg() != 0 {
			return fmt.Errorf("usage: diff -txtar <file>")
		}
	} else {
		if fs.NArg() != 2 {
			return fmt.Errorf("usage: diff <x> <y>")
		}
		cfg.x = fs.Arg(0)
		cfg.y = fs.Arg(1)
	}

	var lib *benchmarks.Impl
	for _, l := range benchmarks.Impls {
		if l.Name == cfg.lib {
			lib = &l
		}
	}
	if lib == nil {
		return fmt.Errorf("lib not found %q", cfg.lib)
	}

	var x, y []byte
	if cfg.txtar != "" {
		ar, err := txtar.ParseFile(cfg.txtar)
		if err != nil {
			return err
		}
		for _, f := range ar.Files {
			switch f.Name {
			case "x":
				x = f.Data
			case "y":
				y = f.Data
			}
		}
	} else {
		var err error
		x, err = os.ReadFile(cfg.x)
		if err != nil {
			return err
		}
		y, err = os.ReadFile(cfg.y)
		if err != nil {
			return err
		}
	}

	es := lib.Diff(string(x), string(y))
	if cfg.color {
		_, err := io.WriteString(stdout, semdiff.ANSI(es))
		return err
	}
	for _, e := range es {
		if _, err := fmt.Fprintln(stdout, e); err != nil {
			return err
		}
	}
	return nil
}

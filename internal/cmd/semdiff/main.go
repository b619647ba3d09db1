// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// semdiff compares two text files rune by rune and prints the result.
//
// Usage:
//
//	semdiff [flags] <old> <new>
//	semdiff [flags] -git <path> <old-file> <old-hex> <old-mode> <new-file> <new-hex> <new-mode>
//
// Either file can be "-" to read from stdin. With -git, the arguments follow the convention of
// GIT_EXTERNAL_DIFF, which makes it possible to use semdiff as a word diff for git:
//
//	GIT_EXTERNAL_DIFF="semdiff -git" git diff
//
// Every flag can also be set with an environment variable prefixed with SEMDIFF_ (e.g.
// SEMDIFF_CLEANUP=none) or in a config file passed with -config that contains one flag per line
// (e.g. "format stats").
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"github.com/peterbourgon/ff/v3"
	"znkr.io/semdiff"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("semdiff", flag.ContinueOnError)
	var (
		timeout  = fs.Duration("timeout", time.Second, "time budget for the diff, 0 means unlimited")
		editCost = fs.Int("edit-cost", 4, "cost of an edit operation for -cleanup=efficiency")
		cleanup  = fs.String("cleanup", "semantic", "cleanup pass: none, semantic, or efficiency")
		lines    = fs.Bool("lines", true, "diff large inputs line by line first")
		format   = fs.String("format", "ansi", "output format: ansi, html, edits, or stats")
		color    = fs.String("color", "auto", "color ansi output: auto, always, or never")
		width    = fs.Int("width", 80, "maximum display width of an edit with -format=edits, 0 means unlimited")
		git      = fs.Bool("git", false, "interpret the arguments as passed by git via GIT_EXTERNAL_DIFF")
		_        = fs.String("config", "", "config file with one flag per line")
	)
	err := ff.Parse(fs, args,
		ff.WithEnvVarPrefix("SEMDIFF"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
	)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	opts := []semdiff.Option{semdiff.Timeout(*timeout), semdiff.EditCost(*editCost)}
	if !*lines {
		opts = append(opts, semdiff.NoLineMode())
	}
	switch *cleanup {
	case "none":
		// do nothing
	case "semantic":
		opts = append(opts, semdiff.Semantic())
	case "efficiency":
		opts = append(opts, semdiff.Efficient())
	default:
		return fmt.Errorf("invalid value for -cleanup: %q", *cleanup)
	}

	in := inputs{stdin: stdin}
	var x, y, header string
	if *git {
		if fs.NArg() != 7 {
			return fmt.Errorf("expected 7 arguments with -git, got %d: %v", fs.NArg(), fs.Args())
		}
		path, oldFile, oldHex, newFile, newHex, newMode := fs.Arg(0), fs.Arg(1), fs.Arg(2), fs.Arg(4), fs.Arg(5), fs.Arg(6)
		if x, err = in.read(oldFile); err != nil {
			return fmt.Errorf("reading old file: %v", err)
		}
		if y, err = in.read(newFile); err != nil {
			return fmt.Errorf("reading new file: %v", err)
		}
		header = fmt.Sprintf("diff --git a/%s b/%s\nindex %s..%s %s\n--- a/%s\n+++ b/%s\n",
			path, path, abbrev(oldHex), abbrev(newHex), newMode, path, path)
	} else {
		if fs.NArg() != 2 {
			return fmt.Errorf("expected 2 files, got %d: %v", fs.NArg(), fs.Args())
		}
		if x, err = in.read(fs.Arg(0)); err != nil {
			return fmt.Errorf("reading old file: %v", err)
		}
		if y, err = in.read(fs.Arg(1)); err != nil {
			return fmt.Errorf("reading new file: %v", err)
		}
	}

	edits := semdiff.Diff(x, y, opts...)

	var out string
	switch *format {
	case "ansi":
		colored, err := useColor(*color, stdout)
		if err != nil {
			return err
		}
		if colored {
			out = semdiff.ANSI(edits)
		} else {
			out = wordDiff(edits)
		}
	case "html":
		out = semdiff.HTML(edits)
	case "edits":
		out = editList(edits, *width)
	case "stats":
		out = stats(edits)
	default:
		return fmt.Errorf("invalid value for -format: %q", *format)
	}
	if out != "" && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}

	if _, err := io.WriteString(stdout, header+out); err != nil {
		return fmt.Errorf("writing output: %v", err)
	}
	return nil
}

// inputs reads input files, stdin can only be read once.
type inputs struct {
	stdin     io.Reader
	stdinUsed bool
}

func (in *inputs) read(name string) (string, error) {
	switch name {
	case "/dev/null":
		return "", nil
	case "-":
		if in.stdinUsed {
			return "", errors.New("stdin can only be used once")
		}
		in.stdinUsed = true
		data, err := io.ReadAll(in.stdin)
		return string(data), err
	}
	data, err := os.ReadFile(name)
	return string(data), err
}

func abbrev(hex string) string { return hex[:min(len(hex), 10)] }

func useColor(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		f, ok := w.(*os.File)
		if !ok {
			return false, nil
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()), nil
	}
	return false, fmt.Errorf("invalid value for -color: %q", mode)
}

// wordDiff renders edits without colors, marking deletions with [-...-] and insertions with
// {+...+} like git diff --word-diff.
func wordDiff(edits []semdiff.Edit) string {
	var sb strings.Builder
	for _, e := range edits {
		switch e.Op {
		case semdiff.Equal:
			sb.WriteString(e.Text)
		case semdiff.Delete:
			sb.WriteString("[-" + e.Text + "-]")
		case semdiff.Insert:
			sb.WriteString("{+" + e.Text + "+}")
		}
	}
	return sb.String()
}

// editList renders one edit per line, truncated to the given display width.
func editList(edits []semdiff.Edit, width int) string {
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = false
	cond.StrictEmojiNeutral = true

	var sb strings.Builder
	for _, e := range edits {
		line := e.String()
		if width > 0 {
			line = cond.Truncate(line, width, "…")
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func stats(edits []semdiff.Edit) string {
	var deleted, inserted int
	for _, e := range edits {
		switch e.Op {
		case semdiff.Delete:
			deleted += utf8.RuneCountInString(e.Text)
		case semdiff.Insert:
			inserted += utf8.RuneCountInString(e.Text)
		}
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "edits: %d\n", len(edits))
	fmt.Fprintf(&sb, "levenshtein: %d\n", semdiff.Levenshtein(edits))
	fmt.Fprintf(&sb, "deleted: %d\n", deleted)
	fmt.Fprintf(&sb, "inserted: %d\n", inserted)
	return sb.String()
}

// Package benchmarks compares semdiff against other character level diff implementations.
//
// Every implementation is converted to a semdiff edit script, that way the results can be
// compared by the number of edits and changed runes.
package benchmarks

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/aymanbagabas/go-udiff"
	godebug "github.com/kylelemons/godebug/diff"
	mb0 "github.com/mb0/diff"
	gointernal "github.com/rogpeppe/go-internal/diff"
	"github.com/sergi/go-diff/diffmatchpatch"
	"znkr.io/semdiff"
)

type Impl struct {
	Name string
	Diff func(x, y string) []semdiff.Edit
}

var Impls = []Impl{
	{
		Name: "semdiff",
		Diff: func(x, y string) []semdiff.Edit {
			return semdiff.Diff(x, y)
		},
	},
	{
		Name: "semdiff-optimal",
		Diff: func(x, y string) []semdiff.Edit {
			return semdiff.Diff(x, y, semdiff.Optimal())
		},
	},
	{
		Name: "semdiff-semantic",
		Diff: func(x, y string) []semdiff.Edit {
			return semdiff.Diff(x, y, semdiff.Semantic())
		},
	},
	{
		Name: "diffmatchpatch",
		Diff: func(x, y string) []semdiff.Edit {
			dmp := diffmatchpatch.New()
			var s script
			for _, d := range dmp.DiffMain(x, y, true) {
				switch d.Type {
				case diffmatchpatch.DiffEqual:
					s.add(semdiff.Equal, d.Text)
				case diffmatchpatch.DiffDelete:
					s.add(semdiff.Delete, d.Text)
				case diffmatchpatch.DiffInsert:
					s.add(semdiff.Insert, d.Text)
				}
			}
			return s.edits
		},
	},
	{
		Name: "udiff",
		Diff: func(x, y string) []semdiff.Edit {
			// Edits are byte offsets into x that respect rune boundaries.
			var s script
			pos := 0
			for _, e := range udiff.Strings(x, y) {
				s.add(semdiff.Equal, x[pos:e.Start])
				s.add(semdiff.Delete, x[e.Start:e.End])
				s.add(semdiff.Insert, e.New)
				pos = e.End
			}
			s.add(semdiff.Equal, x[pos:])
			return s.edits
		},
	},
	{
		Name: "mb0",
		Diff: func(x, y string) []semdiff.Edit {
			d := mb0runes{x: []rune(x), y: []rune(y)}
			var s script
			a := 0
			for _, ch := range mb0.Diff(len(d.x), len(d.y), d) {
				s.add(semdiff.Equal, string(d.x[a:ch.A]))
				s.add(semdiff.Delete, string(d.x[ch.A:ch.A+ch.Del]))
				s.add(semdiff.Insert, string(d.y[ch.B:ch.B+ch.Ins]))
				a = ch.A + ch.Del
			}
			s.add(semdiff.Equal, string(d.x[a:]))
			return s.edits
		},
	},
	{
		Name: "godebug",
		Diff: func(x, y string) []semdiff.Edit {
			// The implementation is quadratic in memory, it's only usable for short inputs.
			xs := strings.Split(x, "")
			var s script
			a := 0 // Runes of x covered by the chunks so far.
			for _, c := range godebug.DiffChunks(xs, strings.Split(y, "")) {
				s.add(semdiff.Delete, strings.Join(c.Deleted, ""))
				s.add(semdiff.Insert, strings.Join(c.Added, ""))
				s.add(semdiff.Equal, strings.Join(c.Equal, ""))
				a += len(c.Deleted) + len(c.Equal)
			}
			// Identical inputs produce no chunks at all.
			s.add(semdiff.Equal, strings.Join(xs[a:], ""))
			return s.edits
		},
	},
	{
		Name: "go-internal",
		Diff: func(x, y string) []semdiff.Edit {
			// go-internal only diffs lines, every rune is put on its own line.
			xs := []rune(x)
			out := gointernal.Diff("x", runeLines(xs), "y", runeLines([]rune(y)))
			es, err := parseUnified(xs, string(out))
			if err != nil {
				panic(err)
			}
			return es
		},
	},
}

type mb0runes struct {
	x, y []rune
}

func (d mb0runes) Equal(i, j int) bool { return d.x[i] == d.y[j] }

// script builds an edit script that contains no empty edits and no two consecutive edits with the
// same op.
type script struct {
	edits []semdiff.Edit
}

func (s *script) add(op semdiff.Op, text string) {
	if text == "" {
		return
	}
	if n := len(s.edits); n > 0 && s.edits[n-1].Op == op {
		s.edits[n-1].Text += text
		return
	}
	s.edits = append(s.edits, semdiff.Edit{Op: op, Text: text})
}

// runeLines puts every rune of s on its own line. Line breaks are written as `\n`, which can't be
// confused with a single rune.
func runeLines(s []rune) []byte {
	var sb strings.Builder
	for _, r := range s {
		if r == '\n' {
			sb.WriteString(`\n`)
		} else {
			sb.WriteRune(r)
		}
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}

func lineRune(line string) rune {
	if line == `\n` {
		return '\n'
	}
	r, _ := utf8.DecodeRuneInString(line)
	return r
}

// parseUnified converts a unified diff of the output of runeLines back into an edit script.
func parseUnified(x []rune, diff string) ([]semdiff.Edit, error) {
	var s script
	pos := 0 // Next rune in x that hasn't been added to s.
	inHunk := false
	for line := range strings.Lines(diff) {
		line = strings.TrimSuffix(line, "\n")
		if strings.HasPrefix(line, "@@ ") {
			start, err := hunkStart(line)
			if err != nil {
				return nil, err
			}
			if start < pos || start > len(x) {
				return nil, fmt.Errorf("hunk out of order: %q", line)
			}
			s.add(semdiff.Equal, string(x[pos:start]))
			pos = start
			inHunk = true
			continue
		}
		if !inHunk || line == "" {
			continue
		}
		r := string(lineRune(line[1:]))
		switch line[0] {
		case ' ':
			s.add(semdiff.Equal, r)
			pos++
		case '-':
			s.add(semdiff.Delete, r)
			pos++
		case '+':
			s.add(semdiff.Insert, r)
		}
	}
	s.add(semdiff.Equal, string(x[pos:]))

	// A deletion has to precede an insertion between two equalities.
	return semdiff.CleanupMerge(s.edits), nil
}

// hunkStart returns the zero based index of the first line in x that's covered by the hunk header.
func hunkStart(header string) (int, error) {
	rest, ok := strings.CutPrefix(header, "@@ -")
	if !ok {
		return 0, fmt.Errorf("malformed hunk header: %q", header)
	}
	rng, _, _ := strings.Cut(rest, " ")
	startStr, countStr, hasCount := strings.Cut(rng, ",")
	start, err := strconv.Atoi(startStr)
	if err != nil {
		return 0, fmt.Errorf("malformed hunk header: %q: %v", header, err)
	}
	count := 1
	if hasCount {
		if count, err = strconv.Atoi(countStr); err != nil {
			return 0, fmt.Errorf("malformed hunk header: %q: %v", header, err)
		}
	}
	// An empty range names the line before the hunk.
	if count == 0 {
		return start, nil
	}
	return start - 1, nil
}

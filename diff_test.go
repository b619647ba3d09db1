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

package semdiff

import (
	"crypto/sha256"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/sergi/go-diff/diffmatchpatch"
	"znkr.io/semdiff/color"
)

func TestDiff(t *testing.T) {
	tests := []struct {
		name string
		x, y string
		opts []Option
		want []Edit
	}{
		{
			name: "empty",
			x:    "",
			y:    "",
			want: nil,
		},
		{
			name: "identical",
			x:    "abc",
			y:    "abc",
			want: []Edit{{Equal, "abc"}},
		},
		{
			name: "x-empty",
			x:    "",
			y:    "abc",
			want: []Edit{{Insert, "abc"}},
		},
		{
			name: "y-empty",
			x:    "abc",
			y:    "",
			want: []Edit{{Delete, "abc"}},
		},
		{
			name: "containment",
			x:    "abc",
			y:    "xabcy",
			want: []Edit{{Insert, "x"}, {Equal, "abc"}, {Insert, "y"}},
		},
		{
			name: "insert-word",
			x:    "The cat",
			y:    "The big cat",
			want: []Edit{{Equal, "The "}, {Insert, "big "}, {Equal, "cat"}},
		},
		{
			name: "optimal",
			x:    "Apples are a fruit.",
			y:    "Bananas are also fruit.",
			opts: []Option{Optimal(), NoLineMode()},
			want: []Edit{{Delete, "Apple"}, {Insert, "Banana"}, {Equal, "s are a"}, {Insert, "lso"}, {Equal, " fruit."}},
		},
		{
			name: "semantic",
			x:    "The cat came.",
			y:    "The cat cat came.",
			opts: []Option{Semantic()},
			want: []Edit{{Equal, "The cat "}, {Insert, "cat "}, {Equal, "came."}},
		},
		{
			name: "efficient",
			x:    "abxyzcd",
			y:    "12xyz34",
			opts: []Option{Efficient()},
			want: []Edit{{Delete, "abxyzcd"}, {Insert, "12xyz34"}},
		},
		{
			name: "efficient-low-edit-cost",
			x:    "abxyzcd",
			y:    "12xyz34",
			opts: []Option{Efficient(), EditCost(2)},
			want: []Edit{{Delete, "ab"}, {Insert, "12"}, {Equal, "xyz"}, {Delete, "cd"}, {Insert, "34"}},
		},
		{
			name: "multi-byte",
			x:    "Größe",
			y:    "Grüße",
			want: []Edit{{Equal, "Gr"}, {Delete, "ö"}, {Insert, "ü"}, {Equal, "ße"}},
		},
		{
			name: "invalid-utf8",
			x:    "\xe0\xe5",
			y:    "",
			want: []Edit{{Delete, "��"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(tt.x, tt.y, tt.opts...)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Diff(...) differs [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestDiffNotAllowedOption(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Diff(...) with TerminalColors didn't panic")
		}
	}()
	Diff("a", "b", TerminalColors(color.Deletes(31)))
}

func TestEditString(t *testing.T) {
	tests := []struct {
		edit Edit
		want string
	}{
		{Edit{Equal, "abc"}, `Equal("abc")`},
		{Edit{Delete, "a\nb"}, `Delete("a\nb")`},
		{Edit{Insert, `"`}, `Insert("\"")`},
		{Edit{Op(7), "x"}, `Op(7)("x")`},
	}
	for _, tt := range tests {
		if got := tt.edit.String(); got != tt.want {
			t.Errorf("String() = %s, want %s", got, tt.want)
		}
	}
}

func TestCleanup(t *testing.T) {
	tests := []struct {
		name string
		f    func([]Edit) []Edit
		in   []Edit
		want []Edit
	}{
		{
			name: "merge",
			f:    CleanupMerge,
			in:   []Edit{{Delete, "a"}, {Insert, "abc"}, {Delete, "dc"}, {Equal, ""}},
			want: []Edit{{Equal, "a"}, {Delete, "d"}, {Insert, "b"}, {Equal, "c"}},
		},
		{
			name: "merge-empty",
			f:    CleanupMerge,
			in:   []Edit{{Equal, ""}, {Insert, ""}},
			want: nil,
		},
		{
			name: "semantic",
			f:    CleanupSemantic,
			in:   []Edit{{Delete, "a"}, {Equal, "b"}, {Delete, "c"}},
			want: []Edit{{Delete, "abc"}, {Insert, "b"}},
		},
		{
			name: "semantic-overlap",
			f:    CleanupSemantic,
			in:   []Edit{{Delete, "abcxxx"}, {Insert, "xxxdef"}},
			want: []Edit{{Delete, "abc"}, {Equal, "xxx"}, {Insert, "def"}},
		},
		{
			name: "semantic-reverse-overlap",
			f:    CleanupSemantic,
			in:   []Edit{{Delete, "xxxabc"}, {Insert, "defxxx"}},
			want: []Edit{{Insert, "def"}, {Equal, "xxx"}, {Delete, "abc"}},
		},
		{
			name: "lossless",
			f:    CleanupSemanticLossless,
			in:   []Edit{{Equal, "The c"}, {Insert, "ow and the c"}, {Equal, "at."}},
			want: []Edit{{Equal, "The "}, {Insert, "cow and the "}, {Equal, "cat."}},
		},
		{
			name: "efficiency",
			f:    func(es []Edit) []Edit { return CleanupEfficiency(es) },
			in:   []Edit{{Delete, "ab"}, {Insert, "12"}, {Equal, "xyz"}, {Delete, "cd"}, {Insert, "34"}},
			want: []Edit{{Delete, "abxyzcd"}, {Insert, "12xyz34"}},
		},
		{
			name: "efficiency-high-cost",
			f:    func(es []Edit) []Edit { return CleanupEfficiency(es, EditCost(5)) },
			in:   []Edit{{Delete, "ab"}, {Insert, "12"}, {Equal, "wxyz"}, {Delete, "cd"}, {Insert, "34"}},
			want: []Edit{{Delete, "abwxyzcd"}, {Insert, "12wxyz34"}},
		},
		{
			name: "efficiency-odd-cost",
			f:    func(es []Edit) []Edit { return CleanupEfficiency(es, EditCost(5)) },
			in:   []Edit{{Insert, "A"}, {Equal, "XY"}, {Insert, "C"}, {Delete, "D"}},
			want: []Edit{{Insert, "A"}, {Equal, "XY"}, {Insert, "C"}, {Delete, "D"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := append([]Edit(nil), tt.in...)
			got := tt.f(in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Cleanup(...) differs [-want,+got]:\n%s", diff)
			}
			if diff := cmp.Diff(tt.in, in); diff != "" {
				t.Errorf("Cleanup(...) modified its input [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestSourceTarget(t *testing.T) {
	es := []Edit{
		{Equal, "jump"},
		{Delete, "s"},
		{Insert, "ed"},
		{Equal, " over "},
		{Delete, "the"},
		{Insert, "a"},
		{Equal, " lazy"},
	}
	if got, want := Source(es), "jumps over the lazy"; got != want {
		t.Errorf("Source(...) = %q, want %q", got, want)
	}
	if got, want := Target(es), "jumped over a lazy"; got != want {
		t.Errorf("Target(...) = %q, want %q", got, want)
	}
}

func TestIndex(t *testing.T) {
	tests := []struct {
		name string
		es   []Edit
		pos  int
		want int
	}{
		{
			name: "equality",
			es:   []Edit{{Delete, "a"}, {Insert, "1234"}, {Equal, "xyz"}},
			pos:  2,
			want: 5,
		},
		{
			name: "deletion",
			es:   []Edit{{Equal, "a"}, {Delete, "1234"}, {Equal, "xyz"}},
			pos:  3,
			want: 1,
		},
		{
			name: "before-insertion",
			es:   []Edit{{Equal, "The "}, {Insert, "big "}, {Equal, "cat"}},
			pos:  1,
			want: 1,
		},
		{
			name: "after-insertion",
			es:   []Edit{{Equal, "The "}, {Insert, "big "}, {Equal, "cat"}},
			pos:  4,
			want: 8,
		},
		{
			name: "runes",
			es:   []Edit{{Equal, "日本"}, {Insert, "語"}, {Equal, "です"}},
			pos:  3,
			want: 4,
		},
		{
			name: "past-the-end",
			es:   []Edit{{Equal, "ab"}, {Insert, "c"}},
			pos:  4,
			want: 5,
		},
		{
			name: "empty",
			es:   nil,
			pos:  3,
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Index(tt.es, tt.pos); got != tt.want {
				t.Errorf("Index(%v, %d) = %d, want %d", tt.es, tt.pos, got, tt.want)
			}
		})
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		name string
		es   []Edit
		want int
	}{
		{"empty", nil, 0},
		{"substitution", []Edit{{Delete, "a"}, {Insert, "b"}, {Equal, "c"}}, 1},
		{"trailing-equality", []Edit{{Delete, "абв"}, {Insert, "1234"}, {Equal, "эюя"}}, 4},
		{"leading-equality", []Edit{{Equal, "эюя"}, {Delete, "абв"}, {Insert, "1234"}}, 4},
		{"middle-equality", []Edit{{Delete, "абв"}, {Equal, "эюя"}, {Insert, "1234"}}, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Levenshtein(tt.es); got != tt.want {
				t.Errorf("Levenshtein(%v) = %d, want %d", tt.es, got, tt.want)
			}
		})
	}
}

func TestHTML(t *testing.T) {
	es := []Edit{{Equal, "a\n"}, {Delete, "<B>b</B>"}, {Insert, "c&d"}}
	want := `<span>a&para;<br></span><del style="background:#ffe6e6;">&lt;B&gt;b&lt;/B&gt;</del><ins style="background:#e6ffe6;">c&amp;d</ins>`
	if diff := cmp.Diff(want, HTML(es)); diff != "" {
		t.Errorf("HTML(...) differs [-want,+got]:\n%s", diff)
	}
}

func TestANSI(t *testing.T) {
	tests := []struct {
		name string
		es   []Edit
		opts []Option
		want string
	}{
		{
			name: "default",
			es:   []Edit{{Equal, "a\n"}, {Delete, "<B>b</B>"}, {Insert, "c&d"}},
			want: "a\n\033[9;31m<B>b</B>\033[0m\033[4;32mc&d\033[0m",
		},
		{
			name: "line-breaks",
			es:   []Edit{{Equal, "x"}, {Insert, "a\n\nb\n"}, {Equal, "y"}},
			want: "x\033[4;32ma\033[0m\n\n\033[4;32mb\033[0m\ny",
		},
		{
			name: "custom",
			es:   []Edit{{Equal, "a"}, {Delete, "b"}, {Insert, "c"}},
			opts: []Option{TerminalColors(color.Equals(2), color.Deletes(31), color.Inserts(32))},
			want: "\033[2ma\033[0m\033[31mb\033[0m\033[32mc\033[0m",
		},
		{
			name: "no-colors",
			es:   []Edit{{Equal, "a"}, {Delete, "b"}, {Insert, "c"}},
			opts: []Option{TerminalColors(color.Deletes(), color.Inserts())},
			want: "abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ANSI(tt.es, tt.opts...)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ANSI(...) differs [-want,+got]:\n%s", diff)
			}
		})
	}
}

// The tests below compare against github.com/sergi/go-diff, a port of the same algorithm. Without
// timeout and line mode, both compute minimal edit scripts. The scripts don't need to be
// identical, but the number of deleted and inserted runes must be.

type stats struct {
	Deleted, Inserted int
}

func semdiffStats(es []Edit) stats {
	var s stats
	for _, e := range es {
		switch e.Op {
		case Delete:
			s.Deleted += utf8.RuneCountInString(e.Text)
		case Insert:
			s.Inserted += utf8.RuneCountInString(e.Text)
		}
	}
	return s
}

func dmpStats(ds []diffmatchpatch.Diff) stats {
	var s stats
	for _, d := range ds {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			s.Deleted += utf8.RuneCountInString(d.Text)
		case diffmatchpatch.DiffInsert:
			s.Inserted += utf8.RuneCountInString(d.Text)
		}
	}
	return s
}

func TestDiffAgainstDiffMatchPatch(t *testing.T) {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0

	for i := range 200 {
		seed := sha256.Sum256(fmt.Append(nil, i))
		rng := rand.New(rand.NewChaCha8(seed))
		x := randomText(rng, rng.IntN(200))
		y := mutate(rng, x)

		got := Diff(x, y, Optimal(), NoLineMode())
		if Source(got) != x || Target(got) != y {
			t.Fatalf("Diff(%q, %q) doesn't reconstruct its inputs: %v", x, y, got)
		}
		want := dmpStats(dmp.DiffMain(x, y, false))
		if diff := cmp.Diff(want, semdiffStats(got)); diff != "" {
			t.Errorf("Diff(%q, %q) isn't minimal [-want,+got]:\n%s", x, y, diff)
		}
	}
}

func TestDiffProperties(t *testing.T) {
	variants := map[string][]Option{
		"default":   nil,
		"optimal":   {Optimal(), NoLineMode()},
		"semantic":  {Semantic()},
		"efficient": {Efficient()},
	}

	for i := range 100 {
		seed := sha256.Sum256(fmt.Append(nil, i))
		rng := rand.New(rand.NewChaCha8(seed))
		x := randomText(rng, rng.IntN(500))
		y := mutate(rng, x)

		for name, opts := range variants {
			got := Diff(x, y, opts...)
			if Source(got) != x {
				t.Errorf("%s: Source(Diff(%q, %q)) = %q", name, x, y, Source(got))
			}
			if Target(got) != y {
				t.Errorf("%s: Target(Diff(%q, %q)) = %q", name, x, y, Target(got))
			}
			if lev := Levenshtein(got); lev > utf8.RuneCountInString(x)+utf8.RuneCountInString(y) {
				t.Errorf("%s: Levenshtein(...) = %d exceeds the combined input length", name, lev)
			}
			for j, e := range got {
				if e.Text == "" {
					t.Errorf("%s: Diff(%q, %q) contains an empty edit at %d", name, x, y, j)
				}
				if j == 0 {
					continue
				}
				prev := got[j-1]
				if prev.Op == e.Op {
					t.Errorf("%s: Diff(%q, %q) has two %v edits at %d", name, x, y, e.Op, j)
				}
				// Only overlap extraction in semantic cleanup puts an insertion before a deletion.
				if name != "semantic" && prev.Op == Insert && e.Op == Delete {
					t.Errorf("%s: Diff(%q, %q) has an insertion before a deletion at %d", name, x, y, j)
				}
			}
		}

		// Cleanups must keep the script valid, merging a normalized script is a no-op.
		es := Diff(x, y)
		merged := CleanupMerge(es)
		if diff := cmp.Diff(es, merged, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("CleanupMerge(Diff(...)) changed a normalized script [-want,+got]:\n%s", diff)
		}
		semantic := CleanupSemantic(es)
		if Source(semantic) != x || Target(semantic) != y {
			t.Errorf("CleanupSemantic(...) doesn't reconstruct the inputs of Diff(%q, %q)", x, y)
		}
		efficient := CleanupEfficiency(es)
		if Source(efficient) != x || Target(efficient) != y {
			t.Errorf("CleanupEfficiency(...) doesn't reconstruct the inputs of Diff(%q, %q)", x, y)
		}
	}
}

func FuzzDiff(f *testing.F) {
	f.Add("Apples are a fruit.", "Bananas are also fruit.")
	f.Add("The cat", "The big cat")
	f.Add("abc\ndef\n", "abc\nxyz\ndef\n")
	f.Fuzz(func(t *testing.T, x, y string) {
		if !utf8.ValidString(x) || !utf8.ValidString(y) {
			t.Skip("invalid UTF-8 isn't reconstructed")
		}
		got := Diff(x, y, Timeout(time.Second))
		if Source(got) != x || Target(got) != y {
			t.Errorf("Diff(%q, %q) doesn't reconstruct its inputs: %v", x, y, got)
		}
		for i, e := range got {
			if e.Text == "" {
				t.Errorf("Diff(%q, %q) has an empty edit at %d: %v", x, y, i, got)
			}
			if i > 0 && got[i-1].Op == e.Op {
				t.Errorf("Diff(%q, %q) has consecutive edits with the same op at %d: %v", x, y, i, got)
			}
		}
	})
}

func BenchmarkDiff(b *testing.B) {
	params := []struct{ N, D int }{
		{100, 10},
		{1000, 10},
		{1000, 100},
		{10000, 100},
	}

	for _, p := range params {
		name := fmt.Sprintf("N=%d_D=%d", p.N, p.D)
		rng := rand.New(rand.NewChaCha8(sha256.Sum256([]byte(name))))
		x := randomText(rng, p.N)
		y := []rune(x)
		for range p.D {
			y[rng.IntN(len(y))] = 'X'
		}

		b.Run(name+"/impl=semdiff", func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				_ = Diff(x, string(y))
			}
		})
		b.Run(name+"/impl=diffmatchpatch", func(b *testing.B) {
			b.ReportAllocs()
			dmp := diffmatchpatch.New()
			for b.Loop() {
				_ = dmp.DiffMain(x, string(y), true)
			}
		})
	}
}

// randomText returns n runes from a small alphabet that includes line breaks and multi-byte runes.
func randomText(rng *rand.Rand, n int) string {
	chars := []rune("abc de\nfä日")
	var sb strings.Builder
	for range n {
		sb.WriteRune(chars[rng.IntN(len(chars))])
	}
	return sb.String()
}

// mutate returns x with a few random insertions, deletions, and replacements.
func mutate(rng *rand.Rand, x string) string {
	y := []rune(x)
	for range rng.IntN(10) {
		i := rng.IntN(len(y) + 1)
		switch rng.IntN(3) {
		case 0:
			y = append(y[:i], append([]rune(randomText(rng, 1+rng.IntN(5))), y[i:]...)...)
		case 1:
			j := min(len(y), i+rng.IntN(5))
			y = append(y[:i], y[j:]...)
		case 2:
			if i < len(y) {
				y[i] = []rune(randomText(rng, 1))[0]
			}
		}
	}
	return string(y)
}

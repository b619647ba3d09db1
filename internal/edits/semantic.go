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

package edits

import (
	"slices"
	"unicode"

	"znkr.io/semdiff/internal/runes"
)

// Semantic reduces the number of edits by eliminating semantically trivial equalities.
func Semantic(es []Edit) []Edit {
	changes := false
	var equalities []int // Stack of indices where equalities are found.
	var last []rune      // Text of the last equality, empty if there is none.
	// Number of runes that changed before (1) and after (2) the last equality.
	var ins1, del1, ins2, del2 int
	for i := 0; i < len(es); i++ {
		if es[i].Op == Equal {
			equalities = append(equalities, i)
			ins1, del1 = ins2, del2
			ins2, del2 = 0, 0
			last = es[i].Text
			continue
		}
		if es[i].Op == Insert {
			ins2 += len(es[i].Text)
		} else {
			del2 += len(es[i].Text)
		}
		// Eliminate an equality that is smaller or equal to the edits on both sides of it.
		if len(last) > 0 && len(last) <= max(ins1, del1) && len(last) <= max(ins2, del2) {
			j := equalities[len(equalities)-1]
			es = slices.Insert(es, j, Edit{Delete, last})
			es[j+1].Op = Insert
			equalities = equalities[:len(equalities)-1] // the equality that was just eliminated
			if len(equalities) > 0 {
				equalities = equalities[:len(equalities)-1] // the previous one needs to be reevaluated
			}
			if len(equalities) > 0 {
				i = equalities[len(equalities)-1]
			} else {
				i = -1
			}
			ins1, del1, ins2, del2 = 0, 0, 0, 0
			last = nil
			changes = true
		}
	}

	if changes {
		es = Merge(es)
	}
	es = Lossless(es)

	// Find overlaps between deletions and insertions, e.g:
	//
	//	<del>abcxxx</del><ins>xxxdef</ins> -> <del>abc</del>xxx<ins>def</ins>
	//	<del>xxxabc</del><ins>defxxx</ins> -> <ins>def</ins>xxx<del>abc</del>
	//
	// Only extract an overlap if it is as big as the edit ahead or behind it.
	overlaps := false
	for i := 1; i < len(es); i++ {
		if es[i-1].Op != Delete || es[i].Op != Insert {
			continue
		}
		del, ins := es[i-1].Text, es[i].Text
		fwd := runes.CommonOverlap(del, ins)
		rev := runes.CommonOverlap(ins, del)
		var repl []Edit
		switch {
		case fwd >= rev:
			if 2*fwd >= len(del) || 2*fwd >= len(ins) {
				repl = nonEmpty(
					Edit{Delete, del[:len(del)-fwd]},
					Edit{Equal, ins[:fwd]},
					Edit{Insert, ins[fwd:]},
				)
			}
		default:
			if 2*rev >= len(del) || 2*rev >= len(ins) {
				repl = nonEmpty(
					Edit{Insert, ins[:len(ins)-rev]},
					Edit{Equal, del[:rev]},
					Edit{Delete, del[rev:]},
				)
			}
		}
		if repl == nil {
			continue
		}
		es = slices.Replace(es, i-1, i+1, repl...)
		overlaps = true
		// Continue with the pair that starts at the last replacement.
		i += len(repl) - 2
	}
	if overlaps {
		// An overlap that covers a whole edit leaves an equality next to another one.
		es = join(es)
	}
	return es
}

// join merges consecutive edits with the same op.
func join(es []Edit) []Edit {
	out := es[:0]
	for _, e := range es {
		if n := len(out); n > 0 && out[n-1].Op == e.Op {
			out[n-1].Text = runes.Concat(out[n-1].Text, e.Text)
			continue
		}
		out = append(out, e)
	}
	return out
}

// Lossless shifts single edits surrounded on both sides by equalities sideways to align them with
// word, sentence or line boundaries, e.g: The c<ins>at c</ins>ame. -> The <ins>cat </ins>came.
//
// An equality that becomes empty is removed and the edits around it are joined if they have the
// same op.
func Lossless(es []Edit) []Edit {
	for i := 1; i < len(es)-1; i++ {
		if es[i-1].Op != Equal || es[i+1].Op != Equal || len(es[i].Text) == 0 {
			continue
		}
		eq1, edit, eq2 := es[i-1].Text, es[i].Text, es[i+1].Text

		// A candidate split is described by the position p of the edit in all: eq1 is all[:p], the
		// edit is all[p:p+n] and eq2 is all[p+n:].
		all := runes.Concat(eq1, edit, eq2)
		n := len(edit)
		score := func(p int) int {
			return semanticScore(all[:p], all[p:p+n]) + semanticScore(all[p:p+n], all[p+n:])
		}

		// First, shift the edit as far left as possible.
		p := len(eq1) - runes.CommonSuffix(eq1, edit)

		// Second, step rune by rune right, looking for the best fit.
		best, bestScore := p, score(p)
		for p+n < len(all) && all[p] == all[p+n] {
			p++
			// Ties go to the rightmost split, edits prefer trailing over leading whitespace.
			if s := score(p); s >= bestScore {
				best, bestScore = p, s
			}
		}

		if best == len(eq1) {
			continue
		}
		es[i].Text = all[best : best+n]
		if best+n == len(all) {
			es = slices.Delete(es, i+1, i+2)
			if i+1 < len(es) && es[i+1].Op == es[i].Op {
				es[i].Text = runes.Concat(es[i].Text, es[i+1].Text)
				es = slices.Delete(es, i+1, i+2)
			}
		} else {
			es[i+1].Text = all[best+n:]
		}
		if best == 0 {
			es = slices.Delete(es, i-1, i)
			i--
			if i > 0 && es[i-1].Op == es[i].Op {
				es[i-1].Text = runes.Concat(es[i-1].Text, es[i].Text)
				es = slices.Delete(es, i, i+1)
				i--
			}
		} else {
			es[i-1].Text = all[:best]
		}
	}
	return es
}

// semanticScore computes a score representing whether the internal boundary falls on logical
// boundaries. Scores range from 6 (best) to 0 (worst).
func semanticScore(one, two []rune) int {
	if len(one) == 0 || len(two) == 0 {
		return 6
	}

	c1, c2 := one[len(one)-1], two[0]
	nonAlnum1 := !unicode.IsLetter(c1) && !unicode.IsDigit(c1)
	nonAlnum2 := !unicode.IsLetter(c2) && !unicode.IsDigit(c2)
	space1 := nonAlnum1 && unicode.IsSpace(c1)
	space2 := nonAlnum2 && unicode.IsSpace(c2)
	lineBreak1 := space1 && unicode.IsControl(c1)
	lineBreak2 := space2 && unicode.IsControl(c2)
	blankLine1 := lineBreak1 && endsWithBlankLine(one)
	blankLine2 := lineBreak2 && startsWithBlankLine(two)

	switch {
	case blankLine1 || blankLine2:
		return 5
	case lineBreak1 || lineBreak2:
		return 4
	case nonAlnum1 && !space1 && space2:
		// End of sentence.
		return 3
	case space1 || space2:
		return 2
	case nonAlnum1 || nonAlnum2:
		return 1
	}
	return 0
}

// endsWithBlankLine reports whether s ends in "\n\n" or "\n\r\n".
func endsWithBlankLine(s []rune) bool {
	return runes.HasSuffix(s, []rune("\n\n")) || runes.HasSuffix(s, []rune("\n\r\n"))
}

// startsWithBlankLine reports whether s starts with an optional "\r", a "\n", an optional "\r"
// and a "\n".
func startsWithBlankLine(s []rune) bool {
	i := 0
	for range 2 {
		if i < len(s) && s[i] == '\r' {
			i++
		}
		if i >= len(s) || s[i] != '\n' {
			return false
		}
		i++
	}
	return true
}

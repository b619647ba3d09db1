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

// Package edits contains the internal edit script representation that's produced by the diff
// engine and the cleanup passes that operate on it. It's translated to the user facing API by the
// root package.
//
// All passes take ownership of the script they are given: they modify it in place and return the
// (possibly reallocated) result. Texts are never written to, a pass replaces the Text of an edit
// with a new slice instead.
package edits

import (
	"fmt"
	"slices"

	"znkr.io/semdiff/internal/runes"
)

// Op is the kind of an edit.
type Op int8

const (
	Equal Op = iota
	Delete
	Insert
)

func (op Op) String() string {
	switch op {
	case Equal:
		return "equal"
	case Delete:
		return "delete"
	case Insert:
		return "insert"
	default:
		return fmt.Sprint(int8(op))
	}
}

// Edit is a single operation of an edit script.
type Edit struct {
	Op   Op
	Text []rune
}

func (e Edit) String() string { return fmt.Sprintf("%v(%q)", e.Op, string(e.Text)) }

// Source returns the text that the edit script transforms from.
func Source(es []Edit) []rune {
	var out []rune
	for _, e := range es {
		if e.Op != Insert {
			out = append(out, e.Text...)
		}
	}
	return out
}

// Target returns the text that the edit script transforms to.
func Target(es []Edit) []rune {
	var out []rune
	for _, e := range es {
		if e.Op != Delete {
			out = append(out, e.Text...)
		}
	}
	return out
}

// Check verifies that es is normalized: no edit has an empty text and no two adjacent edits have
// the same op.
func Check(es []Edit) error {
	for i, e := range es {
		if len(e.Text) == 0 {
			return fmt.Errorf("edit %d is empty: %v", i, e)
		}
		if i > 0 && es[i-1].Op == e.Op {
			return fmt.Errorf("edits %d and %d have the same op: %v, %v", i-1, i, es[i-1], e)
		}
	}
	return nil
}

// nonEmpty returns the edits with non-empty texts.
func nonEmpty(es ...Edit) []Edit {
	return slices.DeleteFunc(es, func(e Edit) bool { return len(e.Text) == 0 })
}

// Merge reorders and merges like edit sections, factoring out commonalities between deletions and
// insertions. Any edit section can move as long as it doesn't cross an equality.
func Merge(es []Edit) []Edit {
	es = nonEmpty(es...)

	// The trailing empty equality flushes the last run of deletions and insertions.
	es = append(es, Edit{Op: Equal})
	var del, ins []rune
	ndel, nins := 0, 0
	for i := 0; i < len(es); {
		switch es[i].Op {
		case Delete:
			ndel++
			del = runes.Concat(del, es[i].Text)
			i++
			continue
		case Insert:
			nins++
			ins = runes.Concat(ins, es[i].Text)
			i++
			continue
		}

		if ndel+nins > 0 {
			if ndel > 0 && nins > 0 {
				// Factor out a common prefix.
				if n := runes.CommonPrefix(ins, del); n > 0 {
					if j := i - ndel - nins; j > 0 {
						es[j-1].Text = runes.Concat(es[j-1].Text, ins[:n])
					} else {
						es = slices.Insert(es, 0, Edit{Equal, ins[:n]})
						i++
					}
					ins, del = ins[n:], del[n:]
				}
				// Factor out a common suffix.
				if n := runes.CommonSuffix(ins, del); n > 0 {
					es[i].Text = runes.Concat(ins[len(ins)-n:], es[i].Text)
					ins, del = ins[:len(ins)-n], del[:len(del)-n]
				}
			}
			// Replace the run with at most one deletion followed by at most one insertion.
			start := i - ndel - nins
			repl := nonEmpty(Edit{Delete, del}, Edit{Insert, ins})
			es = slices.Replace(es, start, i, repl...)
			i = start + len(repl)
		}
		if i > 0 && es[i-1].Op == Equal {
			// Merge this equality with the previous one.
			es[i-1].Text = runes.Concat(es[i-1].Text, es[i].Text)
			es = slices.Delete(es, i, i+1)
		} else {
			i++
		}
		ndel, nins = 0, 0
		del, ins = nil, nil
	}
	if len(es[len(es)-1].Text) == 0 {
		es = es[:len(es)-1]
	}

	// Second pass: look for single edits surrounded on both sides by equalities which can be
	// shifted sideways to eliminate an equality, e.g: A<ins>BA</ins>C -> <ins>AB</ins>AC
	changes := false
	for i := 1; i < len(es)-1; i++ {
		prev, next := es[i-1], es[i+1]
		if prev.Op != Equal || next.Op != Equal {
			continue
		}
		text := es[i].Text
		switch {
		case runes.HasSuffix(text, prev.Text):
			// Shift the edit over the previous equality.
			es[i].Text = runes.Concat(prev.Text, text[:len(text)-len(prev.Text)])
			es[i+1].Text = runes.Concat(prev.Text, next.Text)
			es = slices.Delete(es, i-1, i)
			changes = true
		case runes.HasPrefix(text, next.Text):
			// Shift the edit over the next equality.
			es[i-1].Text = runes.Concat(prev.Text, next.Text)
			es[i].Text = runes.Concat(text[len(next.Text):], next.Text)
			es = slices.Delete(es, i+1, i+2)
			changes = true
		}
	}
	// If shifts were made, the script needs reordering and another shift sweep.
	if changes {
		return Merge(es)
	}
	if len(es) == 0 {
		return nil
	}
	return es
}

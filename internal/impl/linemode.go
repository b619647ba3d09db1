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

package impl

import (
	"znkr.io/semdiff/internal/edits"
	"znkr.io/semdiff/internal/runes"
)

// lineMode does a quick line-level diff on both texts, then rediffs the replaced parts rune by
// rune for greater accuracy. This speedup can produce non-minimal diffs.
func (d *differ) lineMode(x, y []rune) []edits.Edit {
	var lt lineTable
	es := d.diff(lt.encode(x), lt.encode(y), false)
	es = lt.decode(es)

	// Eliminate freak matches, e.g. blank lines.
	es = edits.Semantic(es)

	// Rediff any replacement blocks, this time rune by rune.
	out := make([]edits.Edit, 0, len(es))
	var del, ins []rune
	start := 0 // start of the current block of deletions and insertions in es
	flush := func(end int) {
		if len(del) > 0 && len(ins) > 0 {
			out = append(out, d.diff(del, ins, false)...)
		} else {
			out = append(out, es[start:end]...)
		}
		del, ins = nil, nil
	}
	for i, e := range es {
		switch e.Op {
		case edits.Delete:
			del = append(del, e.Text...)
		case edits.Insert:
			ins = append(ins, e.Text...)
		case edits.Equal:
			flush(i)
			out = append(out, e)
			start = i + 1
		}
	}
	flush(len(es))
	return out
}

// lineTable maps every distinct line to a code. Texts are encoded as a sequence of codes, one per
// line.
type lineTable struct {
	codes map[string]rune // line -> code
	lines [][]rune        // code -> line
}

// encode returns the codes for the lines in text, registering new lines on first sight.
func (lt *lineTable) encode(text []rune) []rune {
	if lt.codes == nil {
		lt.codes = make(map[string]rune)
	}
	lines := runes.SplitLines(text)
	out := make([]rune, 0, len(lines))
	for _, line := range lines {
		// Texts are decoded from strings, string(line) is therefore lossless.
		key := string(line)
		code, ok := lt.codes[key]
		if !ok {
			code = rune(len(lt.lines))
			lt.codes[key] = code
			lt.lines = append(lt.lines, line)
		}
		out = append(out, code)
	}
	return out
}

// decode expands every edit's codes back into lines.
func (lt *lineTable) decode(es []edits.Edit) []edits.Edit {
	for i, e := range es {
		n := 0
		for _, code := range e.Text {
			n += len(lt.lines[code])
		}
		text := make([]rune, 0, n)
		for _, code := range e.Text {
			text = append(text, lt.lines[code]...)
		}
		es[i].Text = text
	}
	return es
}

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
	"slices"
	"time"

	"znkr.io/semdiff/internal/edits"
	"znkr.io/semdiff/internal/myers"
	"znkr.io/semdiff/internal/runes"
)

// maxDepth limits the number of nested diff calls. Sub-problems below this depth are reported as
// a single replacement instead of being divided further.
const maxDepth = 1024

// lineModeMinLen is the minimum length of both inputs for line mode to be used.
const lineModeMinLen = 100

// differ holds the state of a single top-level diff.
type differ struct {
	deadline time.Time // zero if there's no deadline
	depth    int       // number of nested diff calls
}

// diff compares x and y, using line mode for large inputs if lineMode is set.
func (d *differ) diff(x, y []rune, lineMode bool) []edits.Edit {
	if slices.Equal(x, y) {
		if len(x) == 0 {
			return nil
		}
		return []edits.Edit{{Op: edits.Equal, Text: x}}
	}

	d.depth++
	defer func() { d.depth-- }()
	if d.depth > maxDepth {
		return replace(x, y)
	}

	// Strip common prefix and suffix. The suffix is computed on what's left after removing the
	// prefix, so that both never overlap.
	n := runes.CommonPrefix(x, y)
	prefix := x[:n]
	x, y = x[n:], y[n:]
	n = runes.CommonSuffix(x, y)
	suffix := x[len(x)-n:]
	x, y = x[:len(x)-n], y[:len(y)-n]

	es := d.compute(x, y, lineMode)

	if len(prefix) > 0 {
		es = slices.Insert(es, 0, edits.Edit{Op: edits.Equal, Text: prefix})
	}
	if len(suffix) > 0 {
		es = append(es, edits.Edit{Op: edits.Equal, Text: suffix})
	}
	return edits.Merge(es)
}

// compute compares x and y, assuming that they have no common prefix or suffix.
func (d *differ) compute(x, y []rune, lineMode bool) []edits.Edit {
	switch {
	case len(x) == 0:
		return []edits.Edit{{Op: edits.Insert, Text: y}}
	case len(y) == 0:
		return []edits.Edit{{Op: edits.Delete, Text: x}}
	}

	long, short, op := y, x, edits.Insert
	if len(x) > len(y) {
		long, short, op = x, y, edits.Delete
	}
	if i := runes.Index(long, short); i >= 0 {
		// The shorter text is inside the longer text.
		return []edits.Edit{
			{Op: op, Text: long[:i]},
			{Op: edits.Equal, Text: short},
			{Op: op, Text: long[i+len(short):]},
		}
	}
	if len(short) == 1 {
		// After the previous check, a single rune can't be an equality.
		return replace(x, y)
	}

	// Check if the problem can be split in two.
	if hm, ok := d.halfMatch(x, y); ok {
		es := d.diff(hm.x0, hm.y0, lineMode)
		es = append(es, edits.Edit{Op: edits.Equal, Text: hm.common})
		return append(es, d.diff(hm.x1, hm.y1, lineMode)...)
	}

	if lineMode && len(x) > lineModeMinLen && len(y) > lineModeMinLen {
		return d.lineMode(x, y)
	}

	return d.bisect(x, y)
}

// bisect splits x and y at the middle snake and diffs both halves. If no middle snake can be
// found in time, x and y are reported as a single replacement.
func (d *differ) bisect(x, y []rune) []edits.Edit {
	s, t, ok := myers.Bisect(x, y, d.deadline)
	if !ok {
		return replace(x, y)
	}
	es := d.diff(x[:s], y[:t], false)
	return append(es, d.diff(x[s:], y[t:], false)...)
}

// replace returns an edit script that deletes x and inserts y.
func replace(x, y []rune) []edits.Edit {
	var es []edits.Edit
	if len(x) > 0 {
		es = append(es, edits.Edit{Op: edits.Delete, Text: x})
	}
	if len(y) > 0 {
		es = append(es, edits.Edit{Op: edits.Insert, Text: y})
	}
	return es
}

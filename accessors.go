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
	"strings"
	"unicode/utf8"
)

// Source returns the text the edit script transforms from, i.e. the text of all [Equal] and
// [Delete] edits.
func Source(es []Edit) string {
	var sb strings.Builder
	for _, e := range es {
		if e.Op != Insert {
			sb.WriteString(e.Text)
		}
	}
	return sb.String()
}

// Target returns the text the edit script transforms to, i.e. the text of all [Equal] and [Insert]
// edits.
func Target(es []Edit) string {
	var sb strings.Builder
	for _, e := range es {
		if e.Op != Delete {
			sb.WriteString(e.Text)
		}
	}
	return sb.String()
}

// Index maps a rune position in the source of an edit script to the equivalent position in the
// target, e.g. "The cat" -> "The big cat" maps 4 to 8. A position inside a deletion maps to the
// position right after the deletion.
//
// Positions past the end of the source are extrapolated from the end of the target.
func Index(es []Edit, pos int) int {
	var x, y int         // end of the current edit in source and target
	var lastX, lastY int // end of the previous edit in source and target
	for _, e := range es {
		n := utf8.RuneCountInString(e.Text)
		if e.Op != Insert {
			x += n
		}
		if e.Op != Delete {
			y += n
		}
		if x > pos {
			if e.Op == Delete {
				return lastY
			}
			break
		}
		lastX, lastY = x, y
	}
	return lastY + (pos - lastX)
}

// Levenshtein returns the Levenshtein distance of an edit script in runes: the number of inserted,
// deleted, or substituted runes. A deletion and an insertion between the same two equalities
// count as substitutions for the length of the shorter of both.
func Levenshtein(es []Edit) int {
	var dist, ins, del int
	for _, e := range es {
		n := utf8.RuneCountInString(e.Text)
		switch e.Op {
		case Insert:
			ins += n
		case Delete:
			del += n
		case Equal:
			dist += max(ins, del)
			ins, del = 0, 0
		}
	}
	return dist + max(ins, del)
}

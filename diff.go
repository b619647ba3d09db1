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
	"fmt"

	"znkr.io/semdiff/internal/config"
	"znkr.io/semdiff/internal/edits"
	"znkr.io/semdiff/internal/impl"
)

// Op describes an edit operation.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Op
type Op int

const (
	Equal  Op = iota // Text that's present in both x and y
	Delete           // Text that's only present in x
	Insert           // Text that's only present in y
)

// Edit describes a single edit of a diff: a run of text and what happened to it.
type Edit struct {
	Op   Op
	Text string
}

// String returns a compact representation of e, e.g. Delete("abc").
func (e Edit) String() string { return fmt.Sprintf("%v(%q)", e.Op, e.Text) }

// Diff compares x and y and returns an edit script that transforms x into y.
//
// The edit script never contains empty edits or two consecutive edits with the same op. Unless
// [Semantic] is used, a deletion always comes before an insertion between two equalities;
// semantic cleanup may leave an insertion in front of a deletion when it extracts an overlap. If
// x and y are identical, the result is a single [Equal] edit, or nil if both are empty.
//
// All positions and lengths are measured in runes. Invalid UTF-8 in x or y is treated as
// U+FFFD.
//
// By default, Diff uses heuristics that trade minimality for speed and gives up on finding a
// minimal diff after one second. The result is always a correct edit script, no matter how much
// time it took to compute.
//
// The following options are supported: [Timeout], [Optimal], [NoLineMode], [Semantic],
// [Efficient], [EditCost]
//
// Important: The output is not guaranteed to be stable and may change with minor version upgrades.
// DO NOT rely on the output being stable.
func Diff(x, y string, opts ...Option) []Edit {
	cfg := config.FromOptions(opts, config.Timeout|config.LineMode|config.CleanupPass|config.EditCost)
	return fromInternal(impl.Diff([]rune(x), []rune(y), cfg))
}

func toInternal(es []Edit) []edits.Edit {
	out := make([]edits.Edit, 0, len(es))
	for _, e := range es {
		out = append(out, edits.Edit{Op: edits.Op(e.Op), Text: []rune(e.Text)})
	}
	return out
}

func fromInternal(es []edits.Edit) []Edit {
	if len(es) == 0 {
		return nil
	}
	out := make([]Edit, 0, len(es))
	for _, e := range es {
		out = append(out, Edit{Op: Op(e.Op), Text: string(e.Text)})
	}
	return out
}

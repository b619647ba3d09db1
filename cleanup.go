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
	"znkr.io/semdiff/internal/config"
	"znkr.io/semdiff/internal/edits"
)

// The cleanup functions never modify the edit script passed to them, they return a new one. They
// accept any edit script, including scripts with empty edits or consecutive edits with the same
// op.

// CleanupMerge normalizes an edit script: empty edits are dropped, runs of deletions and
// insertions between two equalities are merged into at most one deletion followed by at most one
// insertion, and text common to both is factored out into the surrounding equalities. Single
// edits are shifted sideways if that eliminates an equality, e.g. A<ins>BA</ins>C becomes
// <ins>AB</ins>AC.
func CleanupMerge(es []Edit) []Edit {
	return fromInternal(edits.Merge(toInternal(es)))
}

// CleanupSemantic makes an edit script easier to read for humans. It eliminates equalities that
// are no longer than the changes around them, aligns edits with word, sentence, and line
// boundaries (see [CleanupSemanticLossless]) and extracts overlaps between a deletion and the
// following insertion into an equality.
//
// The result is still a correct edit script, but it's usually longer than the input. The pass
// is not idempotent on every input: eliminating an equality can expose a new overlap or boundary
// shift, so running it again on its own output occasionally changes the script further.
func CleanupSemantic(es []Edit) []Edit {
	return fromInternal(edits.Semantic(toInternal(es)))
}

// CleanupSemanticLossless shifts single edits surrounded by equalities sideways to align them
// with word, sentence, or line boundaries, e.g. "The c<ins>at c</ins>ame." becomes
// "The <ins>cat </ins>came.". The amount of inserted and deleted text is unchanged.
func CleanupSemanticLossless(es []Edit) []Edit {
	return fromInternal(edits.Lossless(toInternal(es)))
}

// CleanupEfficiency reduces the number of edits by folding short equalities into the edits
// around them. An equality is folded if it's shorter than the edit cost and surrounded by
// deletions and insertions on both sides, or shorter than half the edit cost and surrounded by
// three of them.
//
// The following options are supported: [EditCost]
func CleanupEfficiency(es []Edit, opts ...Option) []Edit {
	cfg := config.FromOptions(opts, config.EditCost)
	return fromInternal(edits.Efficiency(toInternal(es), cfg.EditCost))
}

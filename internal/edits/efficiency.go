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

import "slices"

// Efficiency reduces the number of edits by eliminating operationally trivial equalities. An
// equality is trivial if it's shorter than editCost and surrounded by enough edits that keeping
// it is more expensive than replacing it with a deletion and an insertion.
func Efficiency(es []Edit, editCost int) []Edit {
	changes := false
	var equalities []int // Stack of indices where candidate equalities are found.
	var last []rune      // Text of the last candidate equality.
	// Whether there is an insertion or deletion before (pre) or after (post) the last equality.
	var preIns, preDel, postIns, postDel bool
	for i := 0; i < len(es); i++ {
		if es[i].Op == Equal {
			if len(es[i].Text) < editCost && (postIns || postDel) {
				// Candidate found.
				equalities = append(equalities, i)
				preIns, preDel = postIns, postDel
				last = es[i].Text
			} else {
				// Not a candidate, and can never become one.
				equalities = equalities[:0]
				last = nil
			}
			postIns, postDel = false, false
			continue
		}

		if es[i].Op == Delete {
			postDel = true
		} else {
			postIns = true
		}

		// Five types to be split:
		//
		//	<ins>A</ins><del>B</del>XY<ins>C</ins><del>D</del>
		//	<ins>A</ins>X<ins>C</ins><del>D</del>
		//	<ins>A</ins><del>B</del>X<ins>C</ins>
		//	<del>A</del>X<ins>C</ins><del>D</del>
		//	<ins>A</ins><del>B</del>X<del>C</del>
		if len(last) == 0 {
			continue
		}
		all4 := preIns && preDel && postIns && postDel
		three := len(last) < editCost/2 && count(preIns, preDel, postIns, postDel) == 3
		if !all4 && !three {
			continue
		}
		j := equalities[len(equalities)-1]
		es = slices.Insert(es, j, Edit{Delete, last})
		es[j+1].Op = Insert
		equalities = equalities[:len(equalities)-1] // the equality that was just eliminated
		last = nil
		if preIns && preDel {
			// No changes made which could affect previous entry, keep going.
			postIns, postDel = true, true
			equalities = equalities[:0]
		} else {
			if len(equalities) > 0 {
				equalities = equalities[:len(equalities)-1] // the previous one needs to be reevaluated
			}
			if len(equalities) > 0 {
				i = equalities[len(equalities)-1]
			} else {
				i = -1
			}
			postIns, postDel = false, false
		}
		changes = true
	}

	if changes {
		es = Merge(es)
	}
	return es
}

func count(flags ...bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}

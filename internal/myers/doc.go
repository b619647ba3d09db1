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

// Package myers finds the middle snake of two texts using Myers' bidirectional search.
//
// The search is the splitting step of the linear space variant described in section 4.2 of the
// paper. The caller recursively diffs the two halves on either side of the split point; this
// package never builds an edit script itself.
//
// # Edit Graph
//
// For x = "cat" and y = "map", every possible edit script is a path from the top left (0,0) to the
// bottom right (3,3) of the graph below:
//
//	(0,0)   c   a   t
//	    ┌───┬───┬───┐ 0
//	 m  │   │   │   │
//	    ├───┼───┼───┤ 1
//	 a  │   │ ╲ │   │
//	    ├───┼───┼───┤ 2
//	 p  │   │   │   │
//	    └───┴───┴───┘ 3
//	    0   1   2   3
//
// A step right deletes a rune from x, a step down inserts a rune from y and a diagonal step keeps a
// rune that is identical in both. Horizontal and vertical steps cost 1, diagonal steps are free. A
// shortest edit script is a cheapest path through the graph.
//
// We use x for the horizontal and y for the vertical coordinate and k = x - y for diagonals. A
// D-path is a path with exactly D non-diagonal steps. Two facts from the paper drive the search:
//
//   - A D-path ends on a diagonal k in {-D, -D+2, ..., D-2, D}.
//   - A furthest reaching D-path on diagonal k is a furthest reaching (D-1)-path on diagonal k-1
//     or k+1, followed by one non-diagonal step, followed by as many diagonal steps as possible.
//
// The search walks forward from (0,0) and backward from (N,M) at the same time, extending the
// furthest reaching paths by one step on every live diagonal per round. The first time a forward
// and a backward path overlap on the same diagonal, the point where they meet lies on an optimal
// path. For "cat" and "map" that's (2,2), the halves are "ca"/"ma" and "t"/"p".
//
// Which side checks for overlap depends on the parity of N-M: for odd deltas, the forward path
// checks after extending, for even deltas the backward path checks.
//
// # Deadline
//
// The search is O(ND) in time. Every round starts by comparing the current time against an
// optional deadline. If it has passed, the search gives up and reports that no split was found.
// The caller then treats the remaining texts as a single replacement. The same happens if the two
// texts have nothing in common.
//
// ## References:
//
// Myers, E.W. An O(ND) difference algorithm and its variations. Algorithmica 1, 251-266 (1986).
// https://doi.org/10.1007/BF01840446
package myers

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

// Package semdiff computes character level differences between two texts and post-processes them
// into edit scripts that are pleasant to read.
//
// The main function is [Diff], which returns an edit script that transforms one text into the
// other. The script can be cleaned up for humans with [CleanupSemantic] or for machines with
// [CleanupEfficiency], either directly or by passing [Semantic] or [Efficient] to [Diff].
//
// The engine strips common prefixes and suffixes, handles trivial cases directly, and otherwise
// uses Myers' O(ND) algorithm to split the problem at the middle snake. For large inputs, it
// first compares the texts line by line and only refines the changed regions. If a text shares a
// block with the other that's at least half as long as the longer text, it's split around that
// block without further search. Both of these speedups can make the result non-minimal, [Optimal]
// together with [NoLineMode] turns them off.
//
// Performance: The time complexity is O(ND) where N = len(x) + len(y) and D is the number of
// differences. Because D can be as large as N, [Diff] gives up after a configurable time budget
// (see [Timeout]) and reports the remaining differences as a single deletion and insertion.
//
// The edit script can be examined with [Source], [Target], [Index], and [Levenshtein] and be
// rendered with [HTML] and [ANSI]. All positions and lengths are counted in runes.
package semdiff

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

import "znkr.io/semdiff/internal/runes"

// halfMatch describes a block that's common to x and y and at least half as long as the longer of
// both: x = x0 + common + x1 and y = y0 + common + y1.
type halfMatch struct {
	x0, x1 []rune
	y0, y1 []rune
	common []rune
}

// halfMatch checks if x and y share a substring that's at least half the length of the longer
// text. This speedup can produce non-minimal diffs, it's therefore only used if there's a
// deadline.
func (d *differ) halfMatch(x, y []rune) (halfMatch, bool) {
	if d.deadline.IsZero() {
		// Don't risk returning a non-optimal diff if we have unlimited time.
		return halfMatch{}, false
	}

	long, short := y, x
	if len(x) > len(y) {
		long, short = x, y
	}
	if len(long) < 4 || 2*len(short) < len(long) {
		return halfMatch{}, false
	}

	// Check if the second quarter is the seed for a half-match, then the third quarter.
	hm1, ok1 := halfMatchAt(long, short, (len(long)+3)/4)
	hm2, ok2 := halfMatchAt(long, short, (len(long)+1)/2)
	var hm halfMatch
	switch {
	case !ok1 && !ok2:
		return halfMatch{}, false
	case !ok2:
		hm = hm1
	case !ok1:
		hm = hm2
	case len(hm1.common) > len(hm2.common):
		hm = hm1
	default:
		hm = hm2
	}

	// hm is in (long, short) order, reorient to (x, y).
	if len(x) <= len(y) {
		hm.x0, hm.x1, hm.y0, hm.y1 = hm.y0, hm.y1, hm.x0, hm.x1
	}
	return hm, true
}

// halfMatchAt checks if a substring of short exists within long such that the substring is at
// least half the length of long. The quarter-length seed starting at long[i] is used to find
// candidates. The result is in (long, short) order, i.e. x0 and x1 are from long.
func halfMatchAt(long, short []rune, i int) (halfMatch, bool) {
	seed := long[i : i+len(long)/4]
	var best halfMatch
	for j := runes.Index(short, seed); j >= 0; j = runes.IndexFrom(short, seed, j+1) {
		prefix := runes.CommonPrefix(long[i:], short[j:])
		suffix := runes.CommonSuffix(long[:i], short[:j])
		if len(best.common) < suffix+prefix {
			best = halfMatch{
				x0:     long[:i-suffix],
				x1:     long[i+prefix:],
				y0:     short[:j-suffix],
				y1:     short[j+prefix:],
				common: short[j-suffix : j+prefix],
			}
		}
	}
	if 2*len(best.common) < len(long) {
		return halfMatch{}, false
	}
	return best, true
}

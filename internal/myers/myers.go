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

package myers

import "time"

// Bisect searches for the middle snake of x and y and returns the point (s, t) where both texts
// should be split: x[:s] and y[:t] can be diffed independently of x[s:] and y[t:].
//
// If deadline is non-zero and passes before the search completes, or if x and y share no common
// subsequence that could anchor a split, ok is false.
//
// Bisect expects the common prefix and suffix of x and y to be removed and both inputs to be
// non-empty.
func Bisect(x, y []rune, deadline time.Time) (s, t int, ok bool) {
	var m myers
	m.init(x, y)
	return m.split(deadline)
}

type myers struct {
	x, y []rune

	// Furthest reaching x coordinate for every diagonal of the forward and backward search. The
	// backward search measures x from the end of x. Diagonal k is at index off+k, -1 marks a
	// diagonal that hasn't been reached.
	vf, vb []int
	off    int
	maxD   int
}

func (m *myers) init(x, y []rune) {
	m.x, m.y = x, y
	m.maxD = (len(x) + len(y) + 1) / 2
	m.off = m.maxD

	// Two extra entries keep the seeds at off+1 in range for tiny inputs.
	size := 2*m.maxD + 2
	v := make([]int, 2*size)
	for i := range v {
		v[i] = -1
	}
	m.vf, m.vb = v[:size:size], v[size:]
	m.vf[m.off+1] = 0
	m.vb[m.off+1] = 0
}

func (m *myers) split(deadline time.Time) (s, t int, ok bool) {
	x, y := m.x, m.y
	n, mm := len(x), len(y)
	vf, vb, off := m.vf, m.vb, m.off
	delta := n - mm

	// If the total number of runes is odd, the front path will collide with the reverse path.
	front := delta%2 != 0

	// Offsets for the start and end of the k loops. Diagonals that ran off the edge of the grid
	// are excluded from the search.
	kfStart, kfEnd := 0, 0
	kbStart, kbEnd := 0, 0

	for d := range m.maxD {
		if !deadline.IsZero() && time.Now().After(deadline) {
			break
		}

		// Walk the forward path one step.
		for k := -d + kfStart; k <= d-kfEnd; k += 2 {
			koff := off + k
			var xf int
			if k == -d || (k != d && vf[koff-1] < vf[koff+1]) {
				xf = vf[koff+1]
			} else {
				xf = vf[koff-1] + 1
			}
			yf := xf - k
			for xf < n && yf < mm && x[xf] == y[yf] {
				xf++
				yf++
			}
			vf[koff] = xf
			switch {
			case xf > n:
				// Ran off the right of the graph.
				kfEnd += 2
			case yf > mm:
				// Ran off the bottom of the graph.
				kfStart += 2
			case front:
				kb := off + delta - k
				if kb >= 0 && kb < len(vb) && vb[kb] != -1 {
					// Mirror the backward x onto the top left coordinate system.
					if xf >= n-vb[kb] {
						return xf, yf, true
					}
				}
			}
		}

		// Walk the backward path one step.
		for k := -d + kbStart; k <= d-kbEnd; k += 2 {
			koff := off + k
			var xb int
			if k == -d || (k != d && vb[koff-1] < vb[koff+1]) {
				xb = vb[koff+1]
			} else {
				xb = vb[koff-1] + 1
			}
			yb := xb - k
			for xb < n && yb < mm && x[n-xb-1] == y[mm-yb-1] {
				xb++
				yb++
			}
			vb[koff] = xb
			switch {
			case xb > n:
				// Ran off the left of the graph.
				kbEnd += 2
			case yb > mm:
				// Ran off the top of the graph.
				kbStart += 2
			case !front:
				kf := off + delta - k
				if kf >= 0 && kf < len(vf) && vf[kf] != -1 {
					xf := vf[kf]
					yf := off + xf - kf
					// Forward paths that ran off the graph keep their last position in vf.
					if xf <= n && yf <= mm && xf >= n-xb {
						return xf, yf, true
					}
				}
			}
		}
	}

	// Either the deadline passed or there's no commonality at all.
	return 0, 0, false
}

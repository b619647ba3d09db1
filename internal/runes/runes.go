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

// Package runes provides the primitives to inspect and slice texts represented as []rune.
//
// Rune slices handed out by this package may share memory with their inputs. No function in this
// module writes into a rune slice after it has been created, sharing is therefore safe. New text is
// always created with [Concat].
package runes

import "slices"

// CommonPrefix returns the length of the common prefix of a and b.
func CommonPrefix(a, b []rune) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// CommonSuffix returns the length of the common suffix of a and b.
func CommonSuffix(a, b []rune) int {
	n := min(len(a), len(b))
	for i := 1; i <= n; i++ {
		if a[len(a)-i] != b[len(b)-i] {
			return i - 1
		}
	}
	return n
}

// CommonOverlap returns the length of the longest suffix of a that is also a prefix of b.
func CommonOverlap(a, b []rune) int {
	// Only the last len(b) runes of a and the first len(a) runes of b can overlap.
	switch {
	case len(a) > len(b):
		a = a[len(a)-len(b):]
	case len(a) < len(b):
		b = b[:len(a)]
	}
	n := len(a)
	if n == 0 {
		return 0
	}
	if slices.Equal(a, b) {
		return n
	}

	// Grow a candidate overlap by searching for the last k runes of a in b. Every match found this
	// way is a lower bound for the next candidate length.
	best := 0
	k := 1
	for {
		found := Index(b, a[n-k:])
		if found < 0 {
			return best
		}
		k += found
		if found == 0 || slices.Equal(a[n-k:], b[:k]) {
			best = k
			k++
		}
		if k > n {
			return best
		}
	}
}

// Index returns the index of the first occurrence of sep in s, or -1 if sep is not present in s.
// An empty sep is found at index 0.
func Index(s, sep []rune) int {
	if len(sep) == 0 {
		return 0
	}
	first := sep[0]
	for i := 0; i+len(sep) <= len(s); i++ {
		if s[i] != first {
			continue
		}
		if slices.Equal(s[i:i+len(sep)], sep) {
			return i
		}
	}
	return -1
}

// IndexFrom is like [Index] but starts the search at offset from. The result is an index into s.
func IndexFrom(s, sep []rune, from int) int {
	if from > len(s) {
		return -1
	}
	i := Index(s[from:], sep)
	if i < 0 {
		return -1
	}
	return from + i
}

// HasPrefix reports whether s begins with prefix.
func HasPrefix(s, prefix []rune) bool {
	return len(s) >= len(prefix) && slices.Equal(s[:len(prefix)], prefix)
}

// HasSuffix reports whether s ends with suffix.
func HasSuffix(s, suffix []rune) bool {
	return len(s) >= len(suffix) && slices.Equal(s[len(s)-len(suffix):], suffix)
}

// Concat returns a newly allocated slice containing the concatenation of all parts. The result
// never shares memory with any of the parts.
func Concat(parts ...[]rune) []rune {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]rune, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// SplitLines splits the input after every '\n'. Lines include their newline character, only the
// last line may be missing it. An empty input has no lines.
func SplitLines(s []rune) [][]rune {
	n := 0
	for _, r := range s {
		if r == '\n' {
			n++
		}
	}
	if len(s) > 0 && s[len(s)-1] != '\n' {
		n++
	}
	lines := make([][]rune, 0, n)
	for len(s) > 0 {
		i := slices.Index(s, '\n')
		if i < 0 {
			lines = append(lines, s)
			break
		}
		lines = append(lines, s[:i+1:i+1])
		s = s[i+1:]
	}
	return lines
}

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

package runes

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCommonPrefixSuffix(t *testing.T) {
	tests := []struct {
		a, b                   string
		wantPrefix, wantSuffix int
	}{
		{"", "", 0, 0},
		{"abc", "xyz", 0, 0},
		{"1234abcdef", "1234xyz", 4, 0},
		{"abcdef1234", "xyz1234", 0, 4},
		{"1234", "1234xyz", 4, 0},
		{"1234", "xyz1234", 0, 4},
		{"abc", "abc", 3, 3},
		{"héllo wörld", "héllo welt", 7, 0},
		{"日本語", "中国語", 0, 1},
	}
	for _, tt := range tests {
		if got := CommonPrefix([]rune(tt.a), []rune(tt.b)); got != tt.wantPrefix {
			t.Errorf("CommonPrefix(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.wantPrefix)
		}
		if got := CommonSuffix([]rune(tt.a), []rune(tt.b)); got != tt.wantSuffix {
			t.Errorf("CommonSuffix(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.wantSuffix)
		}
	}
}

func TestCommonOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"null", "", "abcd", 0},
		{"whole", "abc", "abcd", 3},
		{"none", "123456", "abcd", 0},
		{"some", "123456xxx", "xxxabcd", 3},
		{"repeated", "xaxa", "axaxb", 3},
		// Some overly clever languages (C#) may treat ligatures as equal to their component
		// letters, e.g. U+FB01 == 'fi'.
		{"unicode", "fi", "ﬁi", 0},
		{"identical", "abc", "abc", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CommonOverlap([]rune(tt.a), []rune(tt.b)); got != tt.want {
				t.Errorf("CommonOverlap(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestIndex(t *testing.T) {
	tests := []struct {
		s, sep string
		from   int
		want   int
	}{
		{"abcabc", "", 0, 0},
		{"abcabc", "c", 0, 2},
		{"abcabc", "c", 3, 5},
		{"abcabc", "ca", 0, 2},
		{"abcabc", "cab", 3, -1},
		{"abcabc", "abcabcd", 0, -1},
		{"日本語です", "語で", 0, 2},
		{"abc", "a", 4, -1},
	}
	for _, tt := range tests {
		if got := IndexFrom([]rune(tt.s), []rune(tt.sep), tt.from); got != tt.want {
			t.Errorf("IndexFrom(%q, %q, %d) = %d, want %d", tt.s, tt.sep, tt.from, got, tt.want)
		}
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "empty",
			in:   "",
			want: []string{},
		},
		{
			name: "newline",
			in:   "\n",
			want: []string{"\n"},
		},
		{
			name: "missing-newline",
			in:   "a\nb",
			want: []string{"a\n", "b"},
		},
		{
			name: "blank-lines",
			in:   "a\n\n\nb\n",
			want: []string{"a\n", "\n", "\n", "b\n"},
		},
		{
			name: "crlf",
			in:   "a\r\nb\r\n",
			want: []string{"a\r\n", "b\r\n"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := SplitLines([]rune(tt.in))
			got := make([]string, 0, len(lines))
			for _, l := range lines {
				got = append(got, string(l))
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SplitLines(%q) differs [-want,+got]:\n%s", tt.in, diff)
			}
		})
	}
}

func TestConcatDoesNotAlias(t *testing.T) {
	a := make([]rune, 2, 10)
	copy(a, []rune("ab"))
	got := Concat(a, []rune("cd"))
	got[0] = 'x'
	if a[0] != 'a' {
		t.Errorf("Concat(...) wrote into its input: %q", string(a))
	}
	if string(got) != "xbcd" {
		t.Errorf("Concat(...) = %q, want %q", string(got), "xbcd")
	}
}

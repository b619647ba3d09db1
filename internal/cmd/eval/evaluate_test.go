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

package main

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"znkr.io/semdiff"
)

func TestEvaluate(t *testing.T) {
	ch := change{
		commitID: "abc",
		filename: "cat.txt",
		old:      strings.Repeat("The cat came.\n", 20),
		new:      strings.Repeat("The cat cat came.\n", 10) + strings.Repeat("The dog came.\n", 10),
	}
	results, notes := evaluate(ch, true)
	if len(notes) > 0 {
		t.Errorf("evaluate(...) reported validation failures: %v", notes)
	}

	var got []string
	for _, r := range results {
		got = append(got, r.variant)
		if r.N != 280 || r.M != 320 {
			t.Errorf("evaluate(...) variant %s: N, M = %d, %d, want 280, 320", r.variant, r.N, r.M)
		}
		if r.levenshtein == 0 || r.edits == 0 {
			t.Errorf("evaluate(...) variant %s: empty result %+v", r.variant, r)
		}
	}
	want := []string{"default", "optimal", "chars", "semantic", "efficiency"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("evaluate(...) variants differ [-want,+got]:\n%s", diff)
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name  string
		edits []semdiff.Edit
		want  string // substring of the error, empty for no error
	}{
		{
			name:  "valid",
			edits: []semdiff.Edit{{Op: semdiff.Equal, Text: "The "}, {Op: semdiff.Insert, Text: "big "}, {Op: semdiff.Equal, Text: "cat"}},
		},
		{
			name:  "wrong-source",
			edits: []semdiff.Edit{{Op: semdiff.Delete, Text: "A cat"}, {Op: semdiff.Insert, Text: "The big cat"}},
			want:  "source is different",
		},
		{
			name:  "wrong-target",
			edits: []semdiff.Edit{{Op: semdiff.Equal, Text: "The cat"}},
			want:  "target is different",
		},
		{
			name:  "empty-edit",
			edits: []semdiff.Edit{{Op: semdiff.Equal, Text: "The "}, {Op: semdiff.Delete, Text: ""}, {Op: semdiff.Insert, Text: "big "}, {Op: semdiff.Equal, Text: "cat"}},
			want:  "is empty",
		},
		{
			name:  "same-op",
			edits: []semdiff.Edit{{Op: semdiff.Equal, Text: "The "}, {Op: semdiff.Insert, Text: "big "}, {Op: semdiff.Equal, Text: "c"}, {Op: semdiff.Equal, Text: "at"}},
			want:  "same op",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := check("The cat", "The big cat", tt.edits)
			switch {
			case tt.want == "" && err != nil:
				t.Errorf("check(...) = %v, want no error", err)
			case tt.want != "" && (err == nil || !strings.Contains(err.Error(), tt.want)):
				t.Errorf("check(...) = %v, want error containing %q", err, tt.want)
			}
		})
	}
}

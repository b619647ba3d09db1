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
	"fmt"
	"time"
	"unicode/utf8"

	"znkr.io/semdiff"
)

// variants are the configurations every change is evaluated with.
var variants = []struct {
	name string
	opts []semdiff.Option
}{
	{"default", nil},
	{"optimal", []semdiff.Option{semdiff.Optimal()}},
	{"chars", []semdiff.Option{semdiff.NoLineMode()}},
	{"semantic", []semdiff.Option{semdiff.Semantic()}},
	{"efficiency", []semdiff.Option{semdiff.Efficient()}},
}

type note struct {
	prefix string
	msg    string
}

type result struct {
	commitID    string
	file        string
	variant     string
	N, M        int
	levenshtein int
	edits       int
	duration    time.Duration
}

// evaluate diffs a change with all variants and returns the stats for every variant and a note
// for every validation failure.
func evaluate(ch change, validate bool) ([]result, []note) {
	var results []result
	var notes []note
	N, M := utf8.RuneCountInString(ch.old), utf8.RuneCountInString(ch.new)
	for _, v := range variants {
		start := time.Now()
		edits := semdiff.Diff(ch.old, ch.new, v.opts...)
		duration := time.Since(start)

		if validate {
			if err := check(ch.old, ch.new, edits); err != nil {
				notes = append(notes, note{
					prefix: ch.commitID + ":" + ch.filename + ":" + v.name,
					msg:    err.Error(),
				})
			}
		}
		results = append(results, result{
			commitID:    ch.commitID,
			file:        ch.filename,
			variant:     v.name,
			N:           N,
			M:           M,
			levenshtein: semdiff.Levenshtein(edits),
			edits:       len(edits),
			duration:    duration,
		})
	}
	return results, notes
}

// check verifies that edits transforms old into new and is normalized.
func check(old, new string, edits []semdiff.Edit) error {
	if got := semdiff.Source(edits); got != old {
		return fmt.Errorf("source is different from old file. got:\n%s\nwant:\n%s", got, old)
	}
	if got := semdiff.Target(edits); got != new {
		return fmt.Errorf("target is different from new file. got:\n%s\nwant:\n%s", got, new)
	}
	for i, e := range edits {
		if e.Text == "" {
			return fmt.Errorf("edit %d is empty", i)
		}
		if i > 0 && edits[i-1].Op == e.Op {
			return fmt.Errorf("edits %d and %d have the same op: %v, %v", i-1, i, edits[i-1], e)
		}
	}
	return nil
}

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

// Package impl contains the diff engine: it strips common prefixes and suffixes, handles trivial
// cases directly and uses half-matches, line mode and Myers' bisection to divide the remaining
// problem into smaller ones.
package impl

import (
	"fmt"
	"time"

	"znkr.io/semdiff/internal/config"
	"znkr.io/semdiff/internal/edits"
)

// Diff compares the contents of x and y and returns an edit script that transforms x into y. The
// cleanup pass selected in cfg is applied to the result.
func Diff(x, y []rune, cfg config.Config) []edits.Edit {
	d := differ{}
	if cfg.Timeout > 0 {
		d.deadline = time.Now().Add(cfg.Timeout)
	}
	es := d.diff(x, y, cfg.LineMode)

	switch cfg.Cleanup {
	case config.CleanupNone:
	case config.CleanupSemantic:
		es = edits.Semantic(es)
	case config.CleanupEfficiency:
		es = edits.Efficiency(es, cfg.EditCost)
	default:
		panic(fmt.Sprintf("unknown cleanup: %v", cfg.Cleanup))
	}
	return es
}

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

package semdiff

import (
	"time"

	"znkr.io/semdiff/color"
	"znkr.io/semdiff/internal/config"
)

// Option configures the behavior of functions in this package.
type Option = config.Option

// Timeout sets the time budget for [Diff]. When the budget is exhausted, the remaining differences
// are reported as a single deletion followed by a single insertion. The result is always correct
// but may not be minimal. The default is one second.
//
// A timeout <= 0 is the same as [Optimal].
func Timeout(d time.Duration) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Timeout = d
		return config.Timeout
	}
}

// Optimal lets [Diff] run to completion, no matter how long it takes. This also disables the
// half-match heuristic that trades minimality for speed.
//
// With this option, the runtime is O(ND) where N = len(x) + len(y), and D is the number of
// differences between x and y.
func Optimal() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Timeout = 0
		return config.Timeout
	}
}

// NoLineMode disables the line-level pre-diff that [Diff] uses for inputs longer than 100 runes.
// Line mode is faster for large texts, without it the diff is often slightly smaller.
func NoLineMode() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.LineMode = false
		return config.LineMode
	}
}

// Semantic runs [CleanupSemantic] on the result of [Diff]. Use it for edit scripts meant for
// humans.
func Semantic() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Cleanup = config.CleanupSemantic
		return config.CleanupPass
	}
}

// Efficient runs [CleanupEfficiency] on the result of [Diff]. Use it for edit scripts meant for
// machines, e.g. to transmit or store.
func Efficient() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Cleanup = config.CleanupEfficiency
		return config.CleanupPass
	}
}

// EditCost sets the cost of an edit operation in terms of runes for [CleanupEfficiency] and
// [Efficient]. An equality shorter than the edit cost that's surrounded by edits is folded into
// them. The default is 4, values below 1 are treated as 1.
func EditCost(n int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.EditCost = max(1, n)
		return config.EditCost
	}
}

// TerminalColors configures the colors used by [ANSI], see the [color] package for the available
// options. Colors that aren't configured keep their defaults.
func TerminalColors(opts ...color.Option) Option {
	return func(cfg *config.Config) config.Flag {
		for _, opt := range opts {
			opt(&cfg.Colors)
		}
		return config.Colors
	}
}

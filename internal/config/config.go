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

// Package config provides shared configuration mechanisms for packages this module.
//
// This package is an implementation detail, the configuration surface for users is provided via
// semdiff.Option.
package config

import (
	"strings"
	"time"
)

// Cleanup selects the cleanup pass that's applied to the result of a diff.
type Cleanup int

const (
	// Return the result of the diff algorithm as is.
	CleanupNone Cleanup = iota

	// Eliminate semantically trivial equalities and align edits with word and line boundaries.
	CleanupSemantic

	// Eliminate operationally trivial equalities.
	CleanupEfficiency
)

// Config collects all configurable parameters for functions in this module.
type Config struct {
	// Time budget for a diff. Values <= 0 mean that the diff runs to completion and disable the
	// half-match heuristic.
	Timeout time.Duration

	// If set, large inputs are diffed line by line first.
	LineMode bool

	// Cleanup pass applied to the result of a diff.
	Cleanup Cleanup

	// Cost of an empty edit operation in terms of edit characters, used by the efficiency cleanup.
	EditCost int

	// Colors used for terminal output.
	Colors ColorConfig
}

// ColorConfig holds SGR escape sequences used to render edit scripts on a terminal.
type ColorConfig struct {
	Equal  string
	Delete string
	Insert string
	Reset  string
}

// Default is the default configuration.
var Default = Config{
	Timeout:  time.Second,
	LineMode: true,
	Cleanup:  CleanupNone,
	EditCost: 4,
	Colors: ColorConfig{
		Equal:  "",
		Delete: "\033[9;31m",
		Insert: "\033[4;32m",
		Reset:  "\033[0m",
	},
}

// Flag describes a single config entry. This is used to detect if configurations are being set
// that are not supported by a function.
type Flag int

const (
	Timeout Flag = 1 << iota
	LineMode
	CleanupPass
	EditCost
	Colors
)

// Option is the mechanism used to expose the configuration to users.
type Option func(*Config) Flag

// FromOptions creates a configuration from a set of options.
func FromOptions(opts []Option, allowed Flag) Config {
	cfg := Default
	for _, opt := range opts {
		flag := opt(&cfg)
		if flag & ^allowed != 0 {
			panic("Option " + printFlag(flag & ^allowed) + " not allowed here")
		}
	}
	return cfg
}

func printFlag(flag Flag) string {
	var names []string
	for f := Flag(1); f <= flag; f <<= 1 {
		if flag&f == 0 {
			continue
		}
		switch f {
		case Timeout:
			names = append(names, "semdiff.Timeout/semdiff.Optimal")
		case LineMode:
			names = append(names, "semdiff.NoLineMode")
		case CleanupPass:
			names = append(names, "semdiff.Semantic/semdiff.Efficient")
		case EditCost:
			names = append(names, "semdiff.EditCost")
		case Colors:
			names = append(names, "semdiff.TerminalColors")
		default:
			panic("never reached")
		}
	}
	return strings.Join(names, "|")
}

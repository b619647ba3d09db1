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

// Package color provides options to customize the colors used by [semdiff.ANSI].
package color

import (
	"fmt"
	"strings"

	"znkr.io/semdiff/internal/config"
)

// A Option makes it possible to configure custom colors in [semdiff.TerminalColors].
//
// All options take SGR parameters, e.g. Deletes(1, 31) renders deletions in bold red.
type Option func(*config.ColorConfig)

// Equals colors unchanged text. It's uncolored by default.
func Equals(params ...int) Option {
	code := format(params)
	return func(cc *config.ColorConfig) {
		cc.Equal = code
	}
}

// Deletes colors deleted text. The default is red and struck through.
func Deletes(params ...int) Option {
	code := format(params)
	return func(cc *config.ColorConfig) {
		cc.Delete = code
	}
}

// Inserts colors inserted text. The default is green and underlined.
func Inserts(params ...int) Option {
	code := format(params)
	return func(cc *config.ColorConfig) {
		cc.Insert = code
	}
}

func format(params []int) string {
	if len(params) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("\033[")
	for i, v := range params {
		if i > 0 {
			sb.WriteRune(';')
		}
		fmt.Fprint(&sb, v)
	}
	sb.WriteRune('m')
	return sb.String()
}

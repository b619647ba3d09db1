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
	"strings"

	"znkr.io/semdiff/internal/config"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\n", "&para;<br>",
)

// HTML renders an edit script as an HTML fragment: deletions are wrapped in <del>, insertions in
// <ins>, and equalities in <span>. Line breaks are shown as a pilcrow followed by <br>.
func HTML(es []Edit) string {
	var sb strings.Builder
	for _, e := range es {
		text := htmlEscaper.Replace(e.Text)
		switch e.Op {
		case Insert:
			sb.WriteString(`<ins style="background:#e6ffe6;">`)
			sb.WriteString(text)
			sb.WriteString("</ins>")
		case Delete:
			sb.WriteString(`<del style="background:#ffe6e6;">`)
			sb.WriteString(text)
			sb.WriteString("</del>")
		case Equal:
			sb.WriteString("<span>")
			sb.WriteString(text)
			sb.WriteString("</span>")
		}
	}
	return sb.String()
}

// ANSI renders an edit script for a terminal using SGR escape sequences. By default, deletions
// are red and struck through, insertions are green and underlined, and equalities are not
// colored. The style is reset before every line break so that colors never bleed into the next
// line.
//
// The following options are supported: [TerminalColors]
func ANSI(es []Edit, opts ...Option) string {
	cfg := config.FromOptions(opts, config.Colors)
	var sb strings.Builder
	for _, e := range es {
		var code string
		switch e.Op {
		case Equal:
			code = cfg.Colors.Equal
		case Delete:
			code = cfg.Colors.Delete
		case Insert:
			code = cfg.Colors.Insert
		}
		if code == "" {
			sb.WriteString(e.Text)
			continue
		}
		for line := range strings.SplitAfterSeq(e.Text, "\n") {
			text, nl := strings.CutSuffix(line, "\n")
			if text != "" {
				sb.WriteString(code)
				sb.WriteString(text)
				sb.WriteString(cfg.Colors.Reset)
			}
			if nl {
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String()
}

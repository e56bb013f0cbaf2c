// Copyright (C) 2024  The tidymd Authors
//
// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.
//
// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS
// FOR A PARTICULAR PURPOSE.  See the GNU General Public License for more
// details.
//
// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <https://www.gnu.org/licenses/>.

package util

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	cleanReplacer = strings.NewReplacer(
		"’", "'",
		"′", "'",
		"“", `"`,
		"”", `"`,
		"″", `"`,
		"–", "--",
		"—", "---",
	)
	escapeReplacer = strings.NewReplacer(
		"’", "&apos;",
		"′", "&apos;",
		"“", "&quot;",
		"”", "&quot;",
		"″", "&quot;",
		"–", "--",
		"—", "---",
	)
)

// CleanPunctuation replaces curly quotes, primes and dashes with their ASCII
// spellings. It is used on YAML values, where entities would be literal.
func CleanPunctuation(s string) string {
	return cleanReplacer.Replace(norm.NFC.String(s))
}

// EscapePunctuation is CleanPunctuation for markdown bodies: quotes become
// HTML entities so they survive a smart-quotes pass unchanged.
func EscapePunctuation(s string) string {
	return escapeReplacer.Replace(norm.NFC.String(s))
}

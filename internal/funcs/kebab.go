// SPDX-License-Identifier: MPL-2.0

package funcs

import (
	"strings"
	"unicode"
)

// ToKebabCase converts a programmatic identifier to its invocation-ready
// kebab-case form. Two structural rules apply before lowercasing:
//
//   - a separator is inserted between a lowercase letter or digit and the
//     uppercase letter that follows it (the camelCase boundary), and
//   - a separator is inserted between an uppercase letter and a following
//     uppercase-then-lowercase pair, so an acronym run splits right before
//     the word it introduces ("HTTPServer" becomes "http-server", not
//     "h-t-t-p-server").
//
// Already-kebab input passes through unchanged.
func ToKebabCase(identifier string) string {
	runes := []rune(identifier)

	var b strings.Builder
	b.Grow(len(identifier) + len(identifier)/4)

	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			switch {
			case unicode.IsLower(prev) || unicode.IsDigit(prev):
				b.WriteRune('-')
			case unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
				b.WriteRune('-')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package article

import (
	"regexp"
	"strings"
)

// DefaultExcerptLength is the excerpt budget in characters.
const DefaultExcerptLength = 180

const ellipsis = "…"

var (
	firstHeading = regexp.MustCompile(`(?i)<h1[^>]*>(.*?)</h1>`)
	markupTag    = regexp.MustCompile(`<[^>]+>`)
	whitespace   = regexp.MustCompile(`[\s\x0B\p{Zs}\x{00A0}\x{FEFF}\x{2028}\x{2029}]+`)
)

// Title returns the text of the first <h1> in markup with inner tags
// removed, or fallback when there is none. Entities are left as written.
func Title(markup, fallback string) string {
	m := firstHeading.FindStringSubmatch(markup)
	if m == nil {
		return fallback
	}
	return markupTag.ReplaceAllString(m[1], "")
}

// Excerpt strips tags from markup, collapses whitespace and cuts the text
// to limit characters, appending an ellipsis only when text was cut. A
// non-positive limit means DefaultExcerptLength.
func Excerpt(markup string, limit int) string {
	if limit <= 0 {
		limit = DefaultExcerptLength
	}
	plain := markupTag.ReplaceAllString(markup, " ")
	plain = strings.TrimSpace(whitespace.ReplaceAllString(plain, " "))

	chars := []rune(plain)
	if len(chars) <= limit {
		return plain
	}
	return string(chars[:limit]) + ellipsis
}

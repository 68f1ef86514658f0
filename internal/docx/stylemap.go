// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/docpress/pkg/types"
)

// rulePattern accepts rules of the form
//
//	p[style-name='Title'] => h1:fresh
//	r[style-name='Strong'] => strong
//	r[style-name='Hyperlink'] =>
var rulePattern = regexp.MustCompile(`^(p|r)\[style-name=(?:'([^']*)'|"([^"]*)")\]\s*=>\s*(?:([a-z][a-z0-9]*)(:fresh)?)?$`)

// ParseStyleMap parses style-map rules. Blank lines and lines starting
// with '#' are skipped.
func ParseStyleMap(lines []string) (types.StyleMap, error) {
	var rules types.StyleMap
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m := rulePattern.FindStringSubmatch(line)
		if m == nil {
			return nil, fmt.Errorf("style map rule %d: invalid rule %q", i+1, line)
		}
		name := m[2]
		if name == "" {
			name = m[3]
		}
		rules = append(rules, types.StyleRule{
			Element:   m[1],
			StyleName: name,
			Tag:       m[4],
			Fresh:     m[5] != "",
		})
	}
	return rules, nil
}

// DefaultStyleMap returns the rules applied after any configured ones.
func DefaultStyleMap() types.StyleMap {
	rules := types.StyleMap{
		{Element: "p", StyleName: "Normal", Tag: "p", Fresh: true},
		{Element: "p", StyleName: "Title", Tag: "h1", Fresh: true},
		{Element: "p", StyleName: "Subtitle", Tag: "h2", Fresh: true},
		{Element: "p", StyleName: "List Paragraph", Tag: "p", Fresh: true},
	}
	for i := 1; i <= 6; i++ {
		rules = append(rules, types.StyleRule{
			Element:   "p",
			StyleName: fmt.Sprintf("Heading %d", i),
			Tag:       fmt.Sprintf("h%d", i),
			Fresh:     true,
		})
	}
	return append(rules,
		types.StyleRule{Element: "r", StyleName: "Strong", Tag: "strong"},
		types.StyleRule{Element: "r", StyleName: "Emphasis", Tag: "em"},
		types.StyleRule{Element: "r", StyleName: "Hyperlink"},
	)
}

// match returns the first rule for element whose style name equals name.
// Names compare case-insensitively: Word stores built-in names in lower
// case ("heading 1") while users write them as displayed.
func match(rules types.StyleMap, element, name string) (types.StyleRule, bool) {
	for _, r := range rules {
		if r.Element == element && strings.EqualFold(r.StyleName, name) {
			return r, true
		}
	}
	return types.StyleRule{}, false
}

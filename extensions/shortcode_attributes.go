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

package extensions

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/net/html"
)

type Attribute struct {
	Name  string
	Value string
}

// Attributes keeps the order attributes were written in.
type Attributes []Attribute

func (a Attributes) Get(name string) (string, bool) {
	for _, attr := range a {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

func (a Attributes) Names() []string {
	names := make([]string, len(a))
	for i, attr := range a {
		names[i] = attr.Name
	}
	return names
}

var DefaultMarkdownAttributeNames = []string{"title", "alt", "caption"}

// MarkdownAttributes is the set of attribute names whose values hold markdown.
// Names compare case-insensitively.
//
// A spreading set adds every name it is asked about before answering, so once
// a name has been seen it is markdown-bearing for every later shortcode that
// shares the set. A fixed set never changes.
type MarkdownAttributes struct {
	mu     sync.Mutex
	names  map[string]struct{}
	spread bool
}

func NewMarkdownAttributes(spread bool, names ...string) *MarkdownAttributes {
	m := &MarkdownAttributes{
		names:  make(map[string]struct{}, len(names)),
		spread: spread,
	}
	for _, name := range names {
		m.names[strings.ToLower(name)] = struct{}{}
	}
	return m
}

// ProcessMarkdownAttributes is shared by every pipeline that does not bring
// its own set. It spreads, like the set it replaces did.
var ProcessMarkdownAttributes = NewMarkdownAttributes(true, DefaultMarkdownAttributeNames...)

// Observe reports whether values of the named attribute are markdown-bearing.
func (m *MarkdownAttributes) Observe(name string) bool {
	key := strings.ToLower(name)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.spread {
		m.names[key] = struct{}{}
	}
	_, ok := m.names[key]
	return ok
}

// Add makes names markdown-bearing.
func (m *MarkdownAttributes) Add(names ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, name := range names {
		m.names[strings.ToLower(name)] = struct{}{}
	}
}

func (m *MarkdownAttributes) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.names))
	for name := range m.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AttributeParser reads shortcode attribute lists with the HTML tag grammar.
type AttributeParser struct {
	markdown *MarkdownAttributes
	tidy     func(string) string
}

func NewAttributeParser(cfg ShortcodeConfig) *AttributeParser {
	return &AttributeParser{
		markdown: cfg.MarkdownAttributes,
		tidy:     cfg.TidyText,
	}
}

// Parse reads an attribute list such as `a="b" c='d' e=f g`. It fails only
// when the list does not even form a tag, e.g. on an unterminated quote.
func (p *AttributeParser) Parse(raw string) (Attributes, bool) {
	z := html.NewTokenizer(strings.NewReader("<tag " + raw + " />"))
	switch z.Next() {
	case html.StartTagToken, html.SelfClosingTagToken:
	default:
		return nil, false
	}
	var parsed []Attribute
	_, more := z.TagName()
	for more {
		var key, val []byte
		key, val, more = z.TagAttr()
		parsed = append(parsed, Attribute{Name: string(key), Value: string(val)})
	}
	// The tokenizer lower-cases names; take the spelling from the source.
	if written := scanAttributeNames(raw); len(written) == len(parsed) {
		for i := range parsed {
			if strings.EqualFold(written[i], parsed[i].Name) {
				parsed[i].Name = written[i]
			}
		}
	}

	attrs := make(Attributes, 0, len(parsed))
	seen := make(map[string]bool, len(parsed))
	for _, attr := range parsed {
		key := strings.ToLower(attr.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		if p.markdown.Observe(attr.Name) {
			attr.Value = strings.TrimSpace(p.tidy(attr.Value))
		}
		attrs = append(attrs, attr)
	}
	return attrs, true
}

func isHTMLSpace(c byte) bool {
	switch c {
	case ' ', '\n', '\r', '\t', '\f':
		return true
	}
	return false
}

// scanAttributeNames walks raw the way the HTML tokenizer reads attributes
// inside a tag and returns the names as written.
func scanAttributeNames(raw string) []string {
	var names []string
	s := raw
	i := 0
	skip := func() {
		for i < len(s) && isHTMLSpace(s[i]) {
			i++
		}
	}
	for i < len(s) {
		skip()
		if i >= len(s) || s[i] == '>' {
			break
		}
		start := i
		i++
		if s[start] != '/' {
			for i < len(s) && !isHTMLSpace(s[i]) && s[i] != '/' && s[i] != '=' && s[i] != '>' {
				i++
			}
			names = append(names, s[start:i])
		}
		if s[start] == '/' || (i < len(s) && s[i] == '/') {
			if s[start] != '/' {
				i++
			}
			continue
		}
		skip()
		if i >= len(s) || s[i] != '=' {
			continue
		}
		i++
		skip()
		if i >= len(s) {
			break
		}
		switch q := s[i]; q {
		case '>':
		case '"', '\'':
			end := strings.IndexByte(s[i+1:], q)
			if end < 0 {
				return names
			}
			i += end + 2
		default:
			for i < len(s) && !isHTMLSpace(s[i]) && s[i] != '>' {
				i++
			}
		}
	}
	return names
}

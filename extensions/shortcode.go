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
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark/ast"
)

/*
Shortcodes
==========
A shortcode is a name and an ordered list of key="value" attributes between a
start and an end delimiter:

	[[ ShortcodeNameA ]]
	[[ ShortcodeNameC a="b" c="d" ]]
	{{% ShortcodeNameD a="1" c="2" %}}

Recognition delimiters are configurable; shortcodes are always written back as
{{< Name key="value" >}}.
*/

const (
	DefaultStartBlock = "[["
	DefaultEndBlock   = "]]"
)

// ShortcodeConfig is fixed for the lifetime of one pipeline.
type ShortcodeConfig struct {
	StartBlock string
	EndBlock   string
	InlineMode bool
	// TidyText reformats the values of markdown-bearing attributes.
	TidyText func(string) string
	// MarkdownAttributes decides which attribute values are markdown-bearing.
	MarkdownAttributes *MarkdownAttributes
}

type ShortcodeOption func(*ShortcodeConfig)

func WithStartBlock(s string) ShortcodeOption {
	return func(c *ShortcodeConfig) {
		c.StartBlock = s
	}
}

func WithEndBlock(s string) ShortcodeOption {
	return func(c *ShortcodeConfig) {
		c.EndBlock = s
	}
}

func WithInlineMode(inline bool) ShortcodeOption {
	return func(c *ShortcodeConfig) {
		c.InlineMode = inline
	}
}

func WithTidyText(f func(string) string) ShortcodeOption {
	return func(c *ShortcodeConfig) {
		c.TidyText = f
	}
}

func WithMarkdownAttributes(m *MarkdownAttributes) ShortcodeOption {
	return func(c *ShortcodeConfig) {
		c.MarkdownAttributes = m
	}
}

// NewShortcodeConfig applies opts over the defaults. Empty delimiters fall
// back to [[ and ]].
func NewShortcodeConfig(opts ...ShortcodeOption) ShortcodeConfig {
	cfg := ShortcodeConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.StartBlock == "" {
		cfg.StartBlock = DefaultStartBlock
	}
	if cfg.EndBlock == "" {
		cfg.EndBlock = DefaultEndBlock
	}
	if cfg.TidyText == nil {
		cfg.TidyText = func(s string) string { return s }
	}
	if cfg.MarkdownAttributes == nil {
		cfg.MarkdownAttributes = ProcessMarkdownAttributes
	}
	return cfg
}

// Shortcode is the payload of a shortcode node.
type Shortcode struct {
	Identifier string
	Attributes Attributes
}

// ShortcodeNode is implemented by InlineShortcode and BlockShortcode.
type ShortcodeNode interface {
	ast.Node
	Payload() *Shortcode
}

var KindShortcode = ast.NewNodeKind("Shortcode")

type InlineShortcode struct {
	ast.BaseInline
	Shortcode Shortcode
}

func NewInlineShortcode(sc *Shortcode) *InlineShortcode {
	return &InlineShortcode{Shortcode: *sc}
}

func (n *InlineShortcode) Payload() *Shortcode {
	return &n.Shortcode
}

func (n *InlineShortcode) Kind() ast.NodeKind {
	return KindShortcode
}

// Dump implements Node.Dump.
func (n *InlineShortcode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, n.Shortcode.dumpFields(), nil)
}

// BlockShortcode stands on its own lines; stop is the source offset right
// after its end delimiter.
type BlockShortcode struct {
	ast.BaseBlock
	Shortcode Shortcode
	stop      int
}

func NewBlockShortcode(sc *Shortcode) *BlockShortcode {
	return &BlockShortcode{Shortcode: *sc}
}

func (n *BlockShortcode) Payload() *Shortcode {
	return &n.Shortcode
}

func (n *BlockShortcode) Kind() ast.NodeKind {
	return KindShortcode
}

// Dump implements Node.Dump.
func (n *BlockShortcode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, n.Shortcode.dumpFields(), nil)
}

func (s *Shortcode) dumpFields() map[string]string {
	fields := map[string]string{"Identifier": s.Identifier}
	for _, a := range s.Attributes {
		fields["@"+a.Name] = a.Value
	}
	return fields
}

// ParseShortcode parses the text between the delimiters into a shortcode, or
// returns nil when it is not one.
func ParseShortcode(inner string, attrs *AttributeParser) *Shortcode {
	trimmed := strings.TrimSpace(inner)
	if trimmed == "" {
		return nil
	}
	split := strings.IndexFunc(trimmed, unicode.IsSpace)
	if split < 0 {
		return &Shortcode{Identifier: trimmed, Attributes: Attributes{}}
	}
	_, width := utf8.DecodeRuneInString(trimmed[split:])
	name, rest := trimmed[:split], trimmed[split+width:]
	attributes, ok := attrs.Parse(rest)
	if !ok {
		return nil
	}
	return &Shortcode{Identifier: name, Attributes: attributes}
}


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
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"tidymd.site/tidymd/markdown"
)

const ruleShortcode = "shortcode"

type ShortcodeExtension struct {
	config    ShortcodeConfig
	tokenizer *Tokenizer
}

// Shortcodes returns the shortcode extension. It plugs into a markdown
// pipeline through Register, or into a plain goldmark instance through Extend.
func Shortcodes(opts ...ShortcodeOption) *ShortcodeExtension {
	cfg := NewShortcodeConfig(opts...)
	return &ShortcodeExtension{
		config:    cfg,
		tokenizer: NewTokenizer(cfg),
	}
}

func (e *ShortcodeExtension) Config() ShortcodeConfig {
	return e.config
}

// Register adds the shortcode rule before the html rule, inline or block
// depending on the configuration, and the shortcode visitor. An inline rule
// also goes ahead of earlier rules firing on the same first delimiter byte,
// so that [[ is not taken for a link.
func (e *ShortcodeExtension) Register(h markdown.Host) error {
	var err error
	if e.config.InlineMode {
		p := newShortcodeInlineParser(e.tokenizer)
		err = h.AddInlineRule(ruleShortcode, p, h.EarliestInlineRule(p.Trigger(), "html"))
	} else {
		err = h.AddBlockRule(ruleShortcode, newShortcodeBlockParser(e.tokenizer), "html")
	}
	if err != nil {
		return err
	}
	h.AddVisitor(KindShortcode, visitShortcode)
	return nil
}

func (e *ShortcodeExtension) Extend(m goldmark.Markdown) {
	if e.config.InlineMode {
		m.Parser().AddOptions(
			parser.WithInlineParsers(
				util.Prioritized(newShortcodeInlineParser(e.tokenizer), inlineShortcodePriority(e.tokenizer.trigger()[0])),
			),
		)
	} else {
		m.Parser().AddOptions(
			parser.WithBlockParsers(
				util.Prioritized(newShortcodeBlockParser(e.tokenizer), priorityShortcodeBlockParser),
			),
		)
	}
	m.Renderer().AddOptions(
		renderer.WithNodeRenderers(
			util.Prioritized(NewShortcodeHTMLRenderer(), priorityShortcodeHTMLRenderer),
		),
	)
}

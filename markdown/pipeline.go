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

// Package markdown is the markdown-to-markdown pipeline tidymd formats with.
//
// A Pipeline couples a goldmark parser, whose inline and block rules are kept
// in a named, ordered list, with a Renderer that serializes the document tree
// back to canonical markdown through a kind-keyed visitor registry. Plugins
// extend both sides through the Host interface while the pipeline is built.
package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

var (
	ErrSealed        = errors.New("pipeline is sealed")
	ErrUnknownRule   = errors.New("unknown rule")
	ErrDuplicateRule = errors.New("duplicate rule")
	ErrNoPriority    = errors.New("no free priority")
)

// Host is what a plugin may extend: the inline and block rule lists of the
// parser and the visitor registry of the compiler.
//
// Rules are inserted immediately before the rule named by before; an empty
// before appends the rule after every existing one.
type Host interface {
	AddInlineRule(name string, p parser.InlineParser, before string) error
	EarliestInlineRule(triggers []byte, before string) string
	AddBlockRule(name string, p parser.BlockParser, before string) error
	AddVisitor(kind ast.NodeKind, v NodeVisitor)
}

// Plugin registers itself on a Host once, while the pipeline is built.
type Plugin interface {
	Register(h Host) error
}

type rule struct {
	name     string
	priority int
	triggers []byte
}

// ruleList is ordered by ascending goldmark priority, which is also the order
// goldmark tries the rules in.
type ruleList []rule

func (l ruleList) index(name string) int {
	for i, r := range l {
		if r.name == name {
			return i
		}
	}
	return -1
}

// earliest returns the first rule up to and including before that shares a
// trigger byte with triggers, or before when there is none.
func (l ruleList) earliest(triggers []byte, before string) string {
	idx := l.index(before)
	if idx < 0 {
		return before
	}
	for _, r := range l[:idx] {
		for _, c := range triggers {
			if bytes.IndexByte(r.triggers, c) >= 0 {
				return r.name
			}
		}
	}
	return before
}

func (l ruleList) Names() []string {
	names := make([]string, len(l))
	for i, r := range l {
		names[i] = r.name
	}
	return names
}

// insert places name right before the rule called before and returns the new
// list together with the priority the rule has to be registered with.
func (l ruleList) insert(name, before string) (ruleList, int, error) {
	if l.index(name) >= 0 {
		return l, 0, fmt.Errorf("%w: %s", ErrDuplicateRule, name)
	}
	if before == "" {
		prio := 100
		if len(l) > 0 {
			prio = l[len(l)-1].priority + 100
		}
		return append(l, rule{name: name, priority: prio}), prio, nil
	}
	idx := l.index(before)
	if idx < 0 {
		return l, 0, fmt.Errorf("%w: %s", ErrUnknownRule, before)
	}
	hi := l[idx].priority
	lo := hi - 100
	if idx > 0 {
		lo = l[idx-1].priority
	}
	prio := lo + (hi-lo)/2
	if prio <= lo || prio >= hi {
		return l, 0, fmt.Errorf("%w: between %d and %d for %s", ErrNoPriority, lo, hi, name)
	}
	out := make(ruleList, 0, len(l)+1)
	out = append(out, l[:idx]...)
	out = append(out, rule{name: name, priority: prio})
	out = append(out, l[idx:]...)
	return out, prio, nil
}

// Pipeline parses markdown with goldmark and renders it back to markdown.
type Pipeline struct {
	md       goldmark.Markdown
	renderer *Renderer
	inline   ruleList
	block    ruleList
	sealed   atomic.Bool
}

type config struct {
	style   Style
	plugins []Plugin
}

type Option func(*config)

// WithStyle selects the markers the compiler writes.
func WithStyle(s Style) Option {
	return func(c *config) {
		c.style = s
	}
}

// WithPlugins registers plugins in the given order.
func WithPlugins(plugins ...Plugin) Option {
	return func(c *config) {
		c.plugins = append(c.plugins, plugins...)
	}
}

// New builds a pipeline with goldmark's CommonMark rules, GFM tables,
// strikethrough, task lists and footnotes, then lets each plugin register.
func New(opts ...Option) (*Pipeline, error) {
	cfg := config{style: DefaultStyle()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.style.Validate(); err != nil {
		return nil, err
	}
	r := NewRenderer(cfg.style)
	p := &Pipeline{
		renderer: r,
		inline:   defaultInlineRules(),
		block:    defaultBlockRules(),
	}
	p.md = goldmark.New(
		goldmark.WithRenderer(r),
		goldmark.WithExtensions(
			extension.Table,
			extension.Strikethrough,
			extension.TaskList,
			extension.Footnote,
		),
	)
	for _, plugin := range cfg.plugins {
		if err := plugin.Register(p); err != nil {
			return nil, fmt.Errorf("register plugin: %w", err)
		}
	}
	return p, nil
}

func (p *Pipeline) AddInlineRule(name string, ip parser.InlineParser, before string) error {
	if p.sealed.Load() {
		return ErrSealed
	}
	list, prio, err := p.inline.insert(name, before)
	if err != nil {
		return fmt.Errorf("inline rule: %w", err)
	}
	list[list.index(name)].triggers = ip.Trigger()
	p.inline = list
	p.md.Parser().AddOptions(parser.WithInlineParsers(util.Prioritized(ip, prio)))
	return nil
}

func (p *Pipeline) AddBlockRule(name string, bp parser.BlockParser, before string) error {
	if p.sealed.Load() {
		return ErrSealed
	}
	list, prio, err := p.block.insert(name, before)
	if err != nil {
		return fmt.Errorf("block rule: %w", err)
	}
	p.block = list
	p.md.Parser().AddOptions(parser.WithBlockParsers(util.Prioritized(bp, prio)))
	return nil
}

// EarliestInlineRule names the rule a new inline rule has to precede so that
// goldmark tries it before every rule up to before that fires on one of the
// same trigger bytes.
func (p *Pipeline) EarliestInlineRule(triggers []byte, before string) string {
	return p.inline.earliest(triggers, before)
}

// AddVisitor registers the compiler visitor for kind. The last registration
// for a kind wins.
func (p *Pipeline) AddVisitor(kind ast.NodeKind, v NodeVisitor) {
	p.renderer.Register(kind, v)
}

// InlineRules lists the inline rule names in the order goldmark tries them.
func (p *Pipeline) InlineRules() []string {
	return p.inline.Names()
}

// BlockRules lists the block rule names in the order goldmark tries them.
func (p *Pipeline) BlockRules() []string {
	return p.block.Names()
}

// Parse parses source into a document tree. The first call seals the
// pipeline against further registration.
func (p *Pipeline) Parse(source []byte) ast.Node {
	p.sealed.Store(true)
	return p.md.Parser().Parse(text.NewReader(source))
}

// Format parses source and compiles it back to canonical markdown.
func (p *Pipeline) Format(source []byte) ([]byte, error) {
	doc := p.Parse(source)
	var buf bytes.Buffer
	if err := p.renderer.Render(&buf, source, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

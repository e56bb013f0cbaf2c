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

package markdown

import (
	"io"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/renderer"
)

// NodeVisitor compiles one node back to markdown. Block visitors return their
// text without a trailing newline; the compiler separates blocks itself.
type NodeVisitor func(c *Compiler, n ast.Node) (string, error)

// Renderer is a goldmark renderer that writes markdown.
type Renderer struct {
	style    Style
	visitors map[ast.NodeKind]NodeVisitor
}

// NewRenderer returns a renderer with visitors for the CommonMark and GFM
// node kinds.
func NewRenderer(style Style) *Renderer {
	r := &Renderer{
		style:    style,
		visitors: make(map[ast.NodeKind]NodeVisitor),
	}
	r.registerBlocks()
	r.registerInlines()
	r.Register(east.KindTable, visitTable)
	return r
}

// Register sets the visitor for kind.
func (r *Renderer) Register(kind ast.NodeKind, v NodeVisitor) {
	r.visitors[kind] = v
}

// AddOptions implements renderer.Renderer. HTML node renderers that goldmark
// extensions add are ignored; markdown visitors go through Register.
func (r *Renderer) AddOptions(...renderer.Option) {}

// Render writes n as markdown.
func (r *Renderer) Render(w io.Writer, source []byte, n ast.Node) error {
	c := newCompiler(r, source, n)
	out, err := c.Node(n)
	if err != nil {
		return err
	}
	out = strings.TrimRight(out, "\n")
	if out == "" {
		return nil
	}
	_, err = io.WriteString(w, out+"\n")
	return err
}

// Compiler carries the state of one Render call.
type Compiler struct {
	r         *Renderer
	source    []byte
	footnotes map[int][]byte
}

func newCompiler(r *Renderer, source []byte, root ast.Node) *Compiler {
	c := &Compiler{
		r:         r,
		source:    source,
		footnotes: make(map[int][]byte),
	}
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if fn, ok := n.(*east.Footnote); ok && entering {
			c.footnotes[fn.Index] = fn.Ref
		}
		return ast.WalkContinue, nil
	})
	return c
}

func (c *Compiler) Source() []byte {
	return c.source
}

func (c *Compiler) Style() Style {
	return c.r.style
}

// Node compiles n with the visitor registered for its kind. Nodes without a
// visitor compile to their children.
func (c *Compiler) Node(n ast.Node) (string, error) {
	if v, ok := c.r.visitors[n.Kind()]; ok {
		return v(c, n)
	}
	if n.Type() == ast.TypeInline {
		return c.Inlines(n)
	}
	return c.Blocks(n)
}

// Inlines concatenates the compiled children of parent.
func (c *Compiler) Inlines(parent ast.Node) (string, error) {
	var sb strings.Builder
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		s, err := c.Node(child)
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
	}
	return sb.String(), nil
}

// Blocks compiles the children of parent and separates them with a blank
// line, or a single newline inside the items of a tight list.
func (c *Compiler) Blocks(parent ast.Node) (string, error) {
	sep := "\n\n"
	if isTightItem(parent) {
		sep = "\n"
	}
	var parts []string
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		s, err := c.Node(child)
		if err != nil {
			return "", err
		}
		s = strings.TrimRight(s, "\n")
		if s == "" {
			continue
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, sep), nil
}

func isTightItem(n ast.Node) bool {
	if _, ok := n.(*ast.ListItem); !ok {
		return false
	}
	list, ok := n.Parent().(*ast.List)
	return ok && list.IsTight
}

// prefixLines writes first before the first line and rest before every
// following line. Blank lines get the prefix with its trailing spaces trimmed.
func prefixLines(s, first, rest string) string {
	lines := strings.Split(s, "\n")
	var sb strings.Builder
	for i, line := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		prefix := rest
		if i == 0 {
			prefix = first
		}
		if strings.TrimSpace(line) == "" {
			sb.WriteString(strings.TrimRight(prefix, " \t"))
			continue
		}
		sb.WriteString(prefix)
		sb.WriteString(line)
	}
	return sb.String()
}

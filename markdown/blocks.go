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
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

func (r *Renderer) registerBlocks() {
	r.Register(ast.KindDocument, visitDocument)
	r.Register(ast.KindParagraph, visitParagraph)
	r.Register(ast.KindTextBlock, visitParagraph)
	r.Register(ast.KindHeading, visitHeading)
	r.Register(ast.KindThematicBreak, visitThematicBreak)
	r.Register(ast.KindCodeBlock, visitCodeBlock)
	r.Register(ast.KindFencedCodeBlock, visitCodeBlock)
	r.Register(ast.KindBlockquote, visitBlockquote)
	r.Register(ast.KindList, visitList)
	r.Register(ast.KindListItem, visitListItem)
	r.Register(ast.KindHTMLBlock, visitHTMLBlock)
	r.Register(east.KindFootnoteList, visitFootnoteList)
	r.Register(east.KindFootnote, visitFootnote)
}

func visitDocument(c *Compiler, n ast.Node) (string, error) {
	return c.Blocks(n)
}

func visitParagraph(c *Compiler, n ast.Node) (string, error) {
	s, err := c.Inlines(n)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

// Setext headings come out as ATX headings.
func visitHeading(c *Compiler, n ast.Node) (string, error) {
	h := n.(*ast.Heading)
	s, err := c.Inlines(n)
	if err != nil {
		return "", err
	}
	marker := strings.Repeat("#", h.Level)
	s = strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
	if s == "" {
		return marker, nil
	}
	return marker + " " + s, nil
}

func visitThematicBreak(c *Compiler, n ast.Node) (string, error) {
	// A leading --- would read back as front matter.
	if _, ok := n.Parent().(*ast.Document); ok && n.PreviousSibling() == nil && c.Style().ThematicBreak == "---" {
		return "***", nil
	}
	return c.Style().ThematicBreak, nil
}

func linesValue(source []byte, lines *text.Segments) string {
	var sb strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.WriteString(strings.Repeat(" ", seg.Padding))
		sb.Write(seg.Value(source))
	}
	return sb.String()
}

// fenceFor returns a fence longer than any run of fence characters that
// starts a line of content.
func fenceFor(content string, ch byte) string {
	longest := 0
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimLeft(line, " ")
		run := 0
		for run < len(line) && line[run] == ch {
			run++
		}
		if run > longest {
			longest = run
		}
	}
	if longest < 3 {
		return strings.Repeat(string(ch), 3)
	}
	return strings.Repeat(string(ch), longest+1)
}

// Indented code blocks are fenced.
func visitCodeBlock(c *Compiler, n ast.Node) (string, error) {
	content := linesValue(c.Source(), n.Lines())
	info := ""
	if fcb, ok := n.(*ast.FencedCodeBlock); ok && fcb.Info != nil {
		info = strings.TrimSpace(string(fcb.Info.Segment.Value(c.Source())))
	}
	ch := byte('`')
	if strings.ContainsRune(info, '`') {
		ch = '~'
	}
	fence := fenceFor(content, ch)
	var sb strings.Builder
	sb.WriteString(fence)
	sb.WriteString(info)
	sb.WriteByte('\n')
	sb.WriteString(content)
	if content != "" && !strings.HasSuffix(content, "\n") {
		sb.WriteByte('\n')
	}
	sb.WriteString(fence)
	return sb.String(), nil
}

func visitBlockquote(c *Compiler, n ast.Node) (string, error) {
	s, err := c.Blocks(n)
	if err != nil {
		return "", err
	}
	if s == "" {
		return ">", nil
	}
	return prefixLines(s, "> ", "> "), nil
}

func visitHTMLBlock(c *Compiler, n ast.Node) (string, error) {
	h := n.(*ast.HTMLBlock)
	s := linesValue(c.Source(), h.Lines())
	if h.HasClosure() {
		s += string(h.ClosureLine.Value(c.Source()))
	}
	return strings.TrimRight(s, "\n"), nil
}

func (c *Compiler) bulletFor(list *ast.List) string {
	style := c.Style()
	same := 0
	for prev := list.PreviousSibling(); prev != nil; prev = prev.PreviousSibling() {
		l, ok := prev.(*ast.List)
		if !ok || l.IsOrdered() {
			break
		}
		same++
	}
	if same%2 == 1 {
		return style.alternateBullet()
	}
	return style.Bullet
}

func visitList(c *Compiler, n ast.Node) (string, error) {
	list := n.(*ast.List)
	bullet := c.bulletFor(list)
	number := list.Start
	var items []string
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		marker := bullet
		if list.IsOrdered() {
			marker = fmt.Sprintf("%d%c", number, list.Marker)
			if c.Style().IncrementOrdered {
				number++
			}
		}
		s, err := c.Item(child, marker)
		if err != nil {
			return "", err
		}
		items = append(items, s)
	}
	sep := "\n\n"
	if list.IsTight {
		sep = "\n"
	}
	return strings.Join(items, sep), nil
}

// visitListItem only runs for items outside a list, which goldmark never
// builds; lists compile their items through Item.
func visitListItem(c *Compiler, n ast.Node) (string, error) {
	return c.Item(n, c.Style().Bullet)
}

// Item compiles a list item behind marker; continuation lines are indented
// by the width of the marker.
func (c *Compiler) Item(n ast.Node, marker string) (string, error) {
	s, err := c.Blocks(n)
	if err != nil {
		return "", err
	}
	if s == "" {
		return marker, nil
	}
	return prefixLines(s, marker+" ", strings.Repeat(" ", len(marker)+1)), nil
}

func visitFootnoteList(c *Compiler, n ast.Node) (string, error) {
	return c.Blocks(n)
}

func visitFootnote(c *Compiler, n ast.Node) (string, error) {
	fn := n.(*east.Footnote)
	s, err := c.Blocks(n)
	if err != nil {
		return "", err
	}
	label := "[^" + string(fn.Ref) + "]:"
	if s == "" {
		return label, nil
	}
	return prefixLines(s, label+" ", "    "), nil
}

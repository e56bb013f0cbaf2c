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
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
)

func (r *Renderer) registerInlines() {
	r.Register(ast.KindText, visitText)
	r.Register(ast.KindString, visitString)
	r.Register(ast.KindCodeSpan, visitCodeSpan)
	r.Register(ast.KindEmphasis, visitEmphasis)
	r.Register(ast.KindLink, visitLink)
	r.Register(ast.KindImage, visitImage)
	r.Register(ast.KindAutoLink, visitAutoLink)
	r.Register(ast.KindRawHTML, visitRawHTML)
	r.Register(east.KindStrikethrough, visitStrikethrough)
	r.Register(east.KindTaskCheckBox, visitTaskCheckBox)
	r.Register(east.KindFootnoteLink, visitFootnoteLink)
	r.Register(east.KindFootnoteBacklink, visitNothing)
}

func visitNothing(*Compiler, ast.Node) (string, error) {
	return "", nil
}

// Text is written as it appears in the source, escapes included.
func visitText(c *Compiler, n ast.Node) (string, error) {
	t := n.(*ast.Text)
	s := string(t.Segment.Value(c.Source()))
	switch {
	case t.HardLineBreak():
		s = strings.TrimRight(s, " \t")
		if strings.HasSuffix(s, `\`) && !strings.HasSuffix(s, `\\`) {
			s = s[:len(s)-1]
		}
		s += "\\\n"
	case t.SoftLineBreak():
		s = strings.TrimRight(s, " \t") + "\n"
	}
	return s, nil
}

func visitString(c *Compiler, n ast.Node) (string, error) {
	return string(n.(*ast.String).Value), nil
}

func longestRun(s string, ch byte) int {
	longest, run := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] == ch {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 0
	}
	return longest
}

func visitCodeSpan(c *Compiler, n ast.Node) (string, error) {
	var sb strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch t := child.(type) {
		case *ast.Text:
			v := t.Segment.Value(c.Source())
			if l := len(v); l > 0 && v[l-1] == '\n' {
				sb.Write(v[:l-1])
				sb.WriteByte(' ')
				continue
			}
			sb.Write(v)
		case *ast.String:
			sb.Write(t.Value)
		}
	}
	content := sb.String()
	ticks := strings.Repeat("`", longestRun(content, '`')+1)
	pad := strings.HasPrefix(content, "`") || strings.HasSuffix(content, "`") ||
		(strings.HasPrefix(content, " ") && strings.HasSuffix(content, " ") && strings.TrimSpace(content) != "")
	if pad {
		content = " " + content + " "
	}
	return ticks + content + ticks, nil
}

// intraword reports whether n sits between word characters, where _ does not
// delimit emphasis.
func (c *Compiler) intraword(n ast.Node) bool {
	isWord := func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}
	if prev, ok := n.PreviousSibling().(*ast.Text); ok {
		v := prev.Segment.Value(c.Source())
		if r, _ := utf8.DecodeLastRune(v); !prev.SoftLineBreak() && !prev.HardLineBreak() && isWord(r) {
			return true
		}
	}
	if next, ok := n.NextSibling().(*ast.Text); ok {
		v := next.Segment.Value(c.Source())
		if r, _ := utf8.DecodeRune(v); isWord(r) {
			return true
		}
	}
	return false
}

func visitEmphasis(c *Compiler, n ast.Node) (string, error) {
	e := n.(*ast.Emphasis)
	s, err := c.Inlines(n)
	if err != nil {
		return "", err
	}
	marker := c.Style().Emphasis
	if e.Level >= 2 {
		marker = c.Style().Strong
	}
	if strings.HasPrefix(marker, "_") && c.intraword(n) {
		marker = strings.Repeat("*", len(marker))
	}
	return marker + s + marker, nil
}

func destination(dest []byte) string {
	d := string(dest)
	depth := 0
	balanced := true
	for _, r := range d {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				balanced = false
			}
		}
	}
	if d == "" || !balanced || depth != 0 || strings.ContainsAny(d, " \t\n<>") {
		return "<" + strings.NewReplacer("<", `\<`, ">", `\>`).Replace(d) + ">"
	}
	return d
}

func linkTail(dest, title []byte) string {
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(destination(dest))
	if len(title) > 0 {
		sb.WriteString(` "`)
		sb.WriteString(strings.ReplaceAll(string(title), `"`, `\"`))
		sb.WriteString(`"`)
	}
	sb.WriteString(")")
	return sb.String()
}

func visitLink(c *Compiler, n ast.Node) (string, error) {
	l := n.(*ast.Link)
	s, err := c.Inlines(n)
	if err != nil {
		return "", err
	}
	return "[" + s + "]" + linkTail(l.Destination, l.Title), nil
}

func visitImage(c *Compiler, n ast.Node) (string, error) {
	img := n.(*ast.Image)
	s, err := c.Inlines(n)
	if err != nil {
		return "", err
	}
	return "![" + s + "]" + linkTail(img.Destination, img.Title), nil
}

func visitAutoLink(c *Compiler, n ast.Node) (string, error) {
	return "<" + string(n.(*ast.AutoLink).Label(c.Source())) + ">", nil
}

func visitRawHTML(c *Compiler, n ast.Node) (string, error) {
	raw := n.(*ast.RawHTML)
	var sb strings.Builder
	for i := 0; i < raw.Segments.Len(); i++ {
		seg := raw.Segments.At(i)
		sb.Write(seg.Value(c.Source()))
	}
	return sb.String(), nil
}

func visitStrikethrough(c *Compiler, n ast.Node) (string, error) {
	s, err := c.Inlines(n)
	if err != nil {
		return "", err
	}
	return "~~" + s + "~~", nil
}

func visitTaskCheckBox(c *Compiler, n ast.Node) (string, error) {
	if n.(*east.TaskCheckBox).IsChecked {
		return "[x] ", nil
	}
	return "[ ] ", nil
}

func visitFootnoteLink(c *Compiler, n ast.Node) (string, error) {
	fl := n.(*east.FootnoteLink)
	ref, ok := c.footnotes[fl.Index]
	if !ok {
		return "", nil
	}
	return "[^" + string(ref) + "]", nil
}

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

package html

import (
	"bytes"
	"slices"
	"sort"
	"strings"

	xhtml "golang.org/x/net/html"
)

var voidElements = []string{
	"area",
	"base",
	"br",
	"col",
	"embed",
	"hr",
	"img",
	"input",
	"link",
	"meta",
	"param",
	"source",
	"track",
	"wbr",
}

// HTMLElement is a node of a small document tree. An element without a Tag
// is text; raw text is written as it is, without escaping or indentation.
type HTMLElement struct {
	Tag        string
	Content    string
	Attributes map[string]string
	Children   []*HTMLElement
	raw        bool
}

// NewHTMLElement merges attr into one attribute map; values given twice for
// a key are joined with a space, so classes accumulate.
func NewHTMLElement(tag string, attr ...map[string]string) *HTMLElement {
	attributes := make(map[string]string)
	for _, attributeList := range attr {
		for key, value := range attributeList {
			if prev, ok := attributes[key]; ok {
				attributes[key] = prev + " " + value
				continue
			}
			attributes[key] = value
		}
	}
	return &HTMLElement{
		Tag:        tag,
		Attributes: attributes,
	}
}

func (e *HTMLElement) Append(elem *HTMLElement) {
	e.Children = append(e.Children, elem)
}

// Convienience function to quickly make a class attribute
func Class(cls string) map[string]string {
	return map[string]string{"class": cls}
}

func ID(id string) map[string]string {
	return map[string]string{"id": id}
}

// Convienience function to quickly make an href attribute
func Href(url string) map[string]string {
	return map[string]string{"href": url}
}

func (e *HTMLElement) AppendNew(tag string, attr ...map[string]string) *HTMLElement {
	elem := NewHTMLElement(tag, attr...)
	e.Children = append(e.Children, elem)
	return elem
}

func (e *HTMLElement) AppendText(text string) *HTMLElement {
	elem := &HTMLElement{Content: text}
	e.Children = append(e.Children, elem)
	return elem
}

// AppendRaw appends markup that is already rendered.
func (e *HTMLElement) AppendRaw(markup string) *HTMLElement {
	elem := &HTMLElement{Content: markup, raw: true}
	e.Children = append(e.Children, elem)
	return elem
}

// isShort reports whether elem fits on one line: no children, or a single
// short line of text.
func isShort(elem *HTMLElement) bool {
	switch len(elem.Children) {
	case 0:
		return true
	case 1:
		child := elem.Children[0]
		return child.Tag == "" && !child.raw && !strings.Contains(child.Content, "\n") &&
			len(xhtml.EscapeString(child.Content)) < 32
	}
	return false
}

func indent(out *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		out.WriteString("    ")
	}
}

func openTag(elem *HTMLElement, out *bytes.Buffer, depth int) {
	indent(out, depth)
	out.WriteByte('<')
	out.WriteString(elem.Tag)
	keys := make([]string, 0, len(elem.Attributes))
	for key := range elem.Attributes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		out.WriteByte(' ')
		out.WriteString(key)
		if value := elem.Attributes[key]; value != "" {
			out.WriteString(`="`)
			out.WriteString(xhtml.EscapeString(value))
			out.WriteByte('"')
		}
	}
	out.WriteByte('>')
}

func RenderHTML(root *HTMLElement, text *bytes.Buffer, optDepth ...int) {
	if root == nil {
		return
	}
	var depth int
	if len(optDepth) > 0 {
		depth = optDepth[0]
	}
	if root.Tag == "" {
		if root.raw {
			text.WriteString(root.Content)
			if !strings.HasSuffix(root.Content, "\n") {
				text.WriteByte('\n')
			}
			return
		}
		for _, line := range strings.Split(root.Content, "\n") {
			indent(text, depth)
			text.WriteString(xhtml.EscapeString(strings.TrimSpace(line)))
			text.WriteByte('\n')
		}
		return
	}
	openTag(root, text, depth)
	// void elements should not have a closing tag!
	if slices.Contains(voidElements, root.Tag) {
		text.WriteByte('\n')
		return
	}
	if isShort(root) {
		if len(root.Children) == 1 {
			text.WriteString(xhtml.EscapeString(strings.TrimSpace(root.Children[0].Content)))
		}
	} else {
		text.WriteByte('\n')
		for _, elem := range root.Children {
			RenderHTML(elem, text, depth+1)
		}
		indent(text, depth)
	}
	text.WriteString("</")
	text.WriteString(root.Tag)
	text.WriteString(">\n")
}

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
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"tidymd.site/tidymd/markdown"
)

type attribListParser struct{}

func NewAttribListParser() *attribListParser {
	return &attribListParser{}
}

var (
	_open  = []byte("{:")
	_close = []byte("}")
)

func (p *attribListParser) Trigger() []byte {
	return []byte{'{'}
}

// attrNode is a kramdown style attribute list, {: #id .class key=value}.
type attrNode struct {
	ast.BaseInline
	ids     []string
	classes []string
	others  []string
}

var KindAttrList = ast.NewNodeKind("AttrList")

func (n *attrNode) Kind() ast.NodeKind {
	return KindAttrList
}
func (n *attrNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

func parseAttrList(attrstr []byte) *attrNode {
	result := &attrNode{}
	for _, field := range strings.Fields(string(attrstr)) {
		switch {
		case len(field) > 1 && field[0] == '.':
			result.classes = append(result.classes, field[1:])
		case len(field) > 1 && field[0] == '#':
			result.ids = append(result.ids, field[1:])
		default:
			result.others = append(result.others, field)
		}
	}
	if len(result.classes) > 0 {
		result.SetAttribute([]byte("class"), strings.Join(result.classes, " "))
	}
	if len(result.ids) > 0 {
		result.SetAttribute([]byte("id"), strings.Join(result.ids, " "))
	}
	return result
}

func (p *attribListParser) Parse(parent ast.Node, block text.Reader, _ parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if !bytes.HasPrefix(line, _open) {
		return nil
	}
	stop := bytes.Index(line, _close)
	if stop < 0 {
		return nil
	}
	block.Advance(stop + 1)
	return parseAttrList(line[len(_open):stop])
}

// visitAttrList writes ids first, then classes, then anything else, each
// group in the order it was written.
func visitAttrList(_ *markdown.Compiler, n ast.Node) (string, error) {
	attrs := n.(*attrNode)
	fields := make([]string, 0, len(attrs.ids)+len(attrs.classes)+len(attrs.others))
	for _, id := range attrs.ids {
		fields = append(fields, "#"+id)
	}
	for _, cls := range attrs.classes {
		fields = append(fields, "."+cls)
	}
	fields = append(fields, attrs.others...)
	if len(fields) == 0 {
		return "{:}", nil
	}
	return "{: " + strings.Join(fields, " ") + "}", nil
}

type attribListTransformer struct{}

// Transform moves each attribute list onto the node before it.
func (r attribListTransformer) Transform(node *ast.Document, reader text.Reader, pc parser.Context) {
	var lists []ast.Node
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && (n.Kind() == KindAttrList) {
			lists = append(lists, n)
		}
		return ast.WalkContinue, nil
	})
	for _, n := range lists {
		if sib := n.PreviousSibling(); sib != nil {
			for _, attr := range n.Attributes() {
				sib.SetAttribute(attr.Name, attr.Value)
			}
		}
		n.Parent().RemoveChild(n.Parent(), n)
	}
}

type attribList struct{}

func (e *attribList) Register(h markdown.Host) error {
	if err := h.AddInlineRule("attributeList", NewAttribListParser(), ""); err != nil {
		return err
	}
	h.AddVisitor(KindAttrList, visitAttrList)
	return nil
}

func (e *attribList) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithInlineParsers(
			util.Prioritized(NewAttribListParser(), priorityAttribListParser),
		),
		parser.WithASTTransformers(
			util.Prioritized(attribListTransformer{}, priorityAttribListTransformer),
		),
	)
}

// AttributeListExtension is both a goldmark.Extender and a markdown.Plugin.
type AttributeListExtension interface {
	goldmark.Extender
	markdown.Plugin
}

func AttributeList() AttributeListExtension {
	return &attribList{}
}

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
	"log"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"tidymd.site/tidymd/markdown"
)

var alertClasses = map[string]string{
	"NOTE":      "alert alert-note",
	"TIP":       "alert alert-tip",
	"IMPORTANT": "alert alert-important",
	"WARNING":   "alert alert-warning",
	"CAUTION":   "alert alert-caution",
}

type alertParser struct{}

func (p *alertParser) Trigger() []byte {
	return []byte{'['}
}

func newAlertParser() *alertParser {
	return &alertParser{}
}

type alertFlagNode struct {
	ast.BaseInline
	flag string
}

var KindAlertFlag = ast.NewNodeKind("AlertFlag")

func (n *alertFlagNode) Kind() ast.NodeKind {
	return KindAlertFlag
}

// Dump implements Node.Dump.
func (n *alertFlagNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Flag": n.flag}, nil)
}

func NewAlertFlag(f string) *alertFlagNode {
	return &alertFlagNode{
		flag: f,
	}
}

// Parse only claims [!NAME] as the very first thing in a block quote
// paragraph, and only for the names GitHub knows.
func (p *alertParser) Parse(parent ast.Node, block text.Reader, _ parser.Context) ast.Node {
	var (
		_open  = []byte("[!")
		_close = []byte("]")
	)
	if parent.HasChildren() {
		return nil
	}
	if _, ok := parent.Parent().(*ast.Blockquote); !ok {
		return nil
	}
	line, seg := block.PeekLine()
	if !bytes.HasPrefix(line, _open) {
		return nil
	}
	stop := bytes.Index(line, _close)
	if stop < 0 {
		return nil
	}
	alertName := strings.ToUpper(string(block.Value(text.NewSegment(seg.Start+len(_open), seg.Start+stop))))
	if _, ok := alertClasses[alertName]; !ok {
		return nil
	}
	out := NewAlertFlag(alertName)
	out.AppendChild(out, ast.NewTextSegment(text.NewSegment(seg.Start, seg.Start+stop+len(_close))))
	block.Advance(stop + 1)
	return out
}

func visitAlertFlag(_ *markdown.Compiler, n ast.Node) (string, error) {
	return "[!" + n.(*alertFlagNode).flag + "]", nil
}

type alertTransformer struct{}

func (t alertTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if bq, ok := n.(*ast.Blockquote); ok && entering {
			if para, ok := bq.FirstChild().(*ast.Paragraph); ok {
				if flag, ok := para.FirstChild().(*alertFlagNode); ok {
					class := alertClasses[flag.flag]
					classAttr, ok := bq.AttributeString("class")
					if !ok {
						bq.SetAttribute([]byte("class"), class)
					} else {
						switch t := classAttr.(type) {
						case string:
							bq.SetAttribute([]byte("class"), strings.Join([]string{t, class}, " "))
						case []byte:
							bq.SetAttribute([]byte("class"), strings.Join([]string{string(t), class}, " "))
						default:
							log.Println("Unknown type of class attribute for alert:", flag.flag)
						}
					}
					para.RemoveChild(para, flag)
				}
			}
		}
		return ast.WalkContinue, nil
	})
}

type alertExtension struct{}

// Register adds the alert rule ahead of links, so [!NOTE] is not read as a
// link label, and writes the flag back upper-cased.
func (e *alertExtension) Register(h markdown.Host) error {
	if err := h.AddInlineRule("alert", newAlertParser(), "link"); err != nil {
		return err
	}
	h.AddVisitor(KindAlertFlag, visitAlertFlag)
	return nil
}

func (e *alertExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithASTTransformers(
			util.Prioritized(alertTransformer{}, priorityAlertTransformer),
		),
		parser.WithInlineParsers(
			util.Prioritized(newAlertParser(), priorityAlertParser),
		),
	)
}

// AlertExtension is both a goldmark.Extender and a markdown.Plugin.
type AlertExtension interface {
	goldmark.Extender
	markdown.Plugin
}

func Alerts() AlertExtension {
	return &alertExtension{}
}

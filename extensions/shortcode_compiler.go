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

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
	"golang.org/x/net/html"

	"tidymd.site/tidymd/markdown"
)

const (
	shortcodeOpen  = "{{<"
	shortcodeClose = ">}}"
)

// attributeEscaper escapes what an HTML serializer escapes inside a
// double-quoted attribute value. Apostrophes and angle brackets stay as
// written.
var attributeEscaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"\u00a0", "&nbsp;",
)

// renderAttributes writes attrs as name="value" pairs in their written order.
func renderAttributes(attrs Attributes) string {
	var sb strings.Builder
	for i, a := range attrs {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(a.Name)
		sb.WriteString(`="`)
		sb.WriteString(attributeEscaper.Replace(a.Value))
		sb.WriteByte('"')
	}
	return sb.String()
}

// CompileShortcode writes sc in canonical form, {{< Name key="value" >}}.
func CompileShortcode(sc *Shortcode) (string, error) {
	attrs := renderAttributes(sc.Attributes)
	parts := []string{shortcodeOpen, sc.Identifier, attrs, shortcodeClose}
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return strings.Join(out, " "), nil
}

func visitShortcode(_ *markdown.Compiler, n ast.Node) (string, error) {
	sc, ok := n.(ShortcodeNode)
	if !ok {
		return "", nil
	}
	return CompileShortcode(sc.Payload())
}

// ShortcodeHTMLRenderer renders shortcodes as placeholder elements for the
// preview.
type ShortcodeHTMLRenderer struct{}

func NewShortcodeHTMLRenderer() renderer.NodeRenderer {
	return &ShortcodeHTMLRenderer{}
}

func (r *ShortcodeHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindShortcode, r.renderShortcode)
}

func (r *ShortcodeHTMLRenderer) renderShortcode(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	sc, ok := node.(ShortcodeNode)
	if !ok || !entering {
		return ast.WalkContinue, nil
	}
	tag := "span"
	if node.Type() == ast.TypeBlock {
		tag = "div"
	}
	payload := sc.Payload()
	_, _ = w.WriteString(`<` + tag + ` class="shortcode" data-shortcode="`)
	_, _ = w.WriteString(html.EscapeString(payload.Identifier))
	_, _ = w.WriteString(`"`)
	for _, a := range payload.Attributes {
		_, _ = w.WriteString(` data-` + html.EscapeString(strings.ToLower(a.Name)) + `="`)
		_, _ = w.WriteString(html.EscapeString(a.Value))
		_, _ = w.WriteString(`"`)
	}
	_, _ = w.WriteString(`>`)
	compiled, err := CompileShortcode(payload)
	if err != nil {
		return ast.WalkStop, err
	}
	_, _ = w.WriteString(html.EscapeString(compiled))
	_, _ = w.WriteString(`</` + tag + `>`)
	if tag == "div" {
		_ = w.WriteByte('\n')
	}
	return ast.WalkContinue, nil
}

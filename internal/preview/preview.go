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

// Package preview renders a markdown document as a standalone HTML page, the
// way a static site generator would show it.
package preview

import (
	"bytes"
	"fmt"
	"log"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	gmText "github.com/yuin/goldmark/text"
	"go.abhg.dev/goldmark/toc"

	"tidymd.site/tidymd/extensions"
	tmhtml "tidymd.site/tidymd/html"
	"tidymd.site/tidymd/metadata"
)

func tocRecurse(table *toc.Item, parent *tmhtml.HTMLElement) {
	for _, item := range table.Items {
		child := parent.AppendNew("li")
		child.AppendNew("a", tmhtml.Href("#"+string(item.ID))).AppendText(string(item.Title))
		if len(item.Items) > 0 {
			ul := child.AppendNew("ul")
			tocRecurse(item, ul)
		}
	}
}

func renderTOC(doc ast.Node, text []byte) *tmhtml.HTMLElement {
	tree, err := toc.Inspect(doc, text, toc.MinDepth(1), toc.MaxDepth(5), toc.Compact(true))
	if err != nil {
		log.Printf("Error generating table of contents\n")
		log.Printf("%+v\n", err)
		return nil
	}
	if len(tree.Items) == 0 {
		return nil
	}
	elem := tmhtml.NewHTMLElement("nav", tmhtml.Class("nav-toc"))
	ul := elem.AppendNew("div", tmhtml.Class("toc")).AppendNew("ul")
	tocRecurse(&toc.Item{Items: tree.Items}, ul)
	return elem
}

func newMarkdown(cfg metadata.PreviewConfig, sc ...extensions.ShortcodeOption) goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extensions.Shortcodes(sc...),
			extensions.EmbedMedia(),
			extensions.AttributeList(),
			extensions.LinkRewrite(),
			extensions.Alerts(),
			meta.Meta,
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithLineNumbers(cfg.LineNumbers),
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			html.WithUnsafe(),
		),
	)
}

// title is the front matter title, else the text of the first level one
// heading.
func title(data map[string]interface{}, doc ast.Node, src []byte) string {
	if t, ok := data["title"]; ok && t != nil {
		return fmt.Sprint(t)
	}
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 {
			return string(h.Text(src))
		}
	}
	return "Preview"
}

// Render returns src as a complete HTML page. sc configures shortcode
// recognition and should match the formatter's.
func Render(src []byte, cfg metadata.PreviewConfig, sc ...extensions.ShortcodeOption) ([]byte, error) {
	md := newMarkdown(cfg, sc...)
	pc := parser.NewContext()
	doc := md.Parser().Parse(gmText.NewReader(src), parser.WithContext(pc))

	var body bytes.Buffer
	if err := md.Renderer().Render(&body, src, doc); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	var css bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&css, styles.Get(cfg.Style)); err != nil {
		return nil, fmt.Errorf("highlighting css: %w", err)
	}

	page := tmhtml.NewHTMLElement("html", map[string]string{"lang": "en"})
	head := page.AppendNew("head")
	head.AppendNew("meta", map[string]string{"charset": "utf-8"})
	head.AppendNew("title").AppendText(title(meta.Get(pc), doc, src))
	head.AppendNew("style").AppendRaw(css.String())
	bodyElem := page.AppendNew("body")
	if cfg.TOC {
		if nav := renderTOC(doc, src); nav != nil {
			bodyElem.Append(nav)
		}
	}
	bodyElem.AppendNew("main").AppendRaw(body.String())

	var out bytes.Buffer
	out.WriteString("<!DOCTYPE html>\n")
	tmhtml.RenderHTML(page, &out)
	return out.Bytes(), nil
}

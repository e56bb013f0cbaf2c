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
	"log"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	gmutil "github.com/yuin/goldmark/util"

	"tidymd.site/tidymd/util"
)

type linkRewriteTransformer struct{}

func (r linkRewriteTransformer) Transform(node *ast.Document, reader text.Reader, pc parser.Context) {
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if link, ok := n.(*ast.Link); ok && entering {
			temp, err := util.RewriteDocumentLink(string(link.Destination))
			if err != nil {
				log.Printf("Error transforming URL '%s' : %s\n", string(link.Destination), err.Error())
				return ast.WalkContinue, nil
			}
			link.Destination = []byte(temp)
		}
		return ast.WalkContinue, nil
	})
}

type linkRewrite struct{}

func (e *linkRewrite) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithASTTransformers(
			gmutil.Prioritized(linkRewriteTransformer{}, priorityLinkRewriteTransformer),
		),
	)
}

// LinkRewrite points relative links to markdown documents at their previews.
func LinkRewrite() goldmark.Extender {
	return &linkRewrite{}
}

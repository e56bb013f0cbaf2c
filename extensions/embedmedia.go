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
	"path"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
	"golang.org/x/net/html"
)

type mediaType int

const (
	mediaAudio mediaType = iota
	mediaVideo
)

var (
	videoExt = []string{"webm", "mp4", "mkv", "ogv"}
	audioExt = []string{"mp3", "ogg", "wav", "flac"}
)

type media struct {
	ast.BaseBlock
	ext         string
	destination []byte
	medium      mediaType
}

var KindMedia = ast.NewNodeKind("Media")

func (n *media) Kind() ast.NodeKind {
	return KindMedia
}

// Dump implements Node.Dump.
func (n *media) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Destination": string(n.destination)}, nil)
}

func newMedia(ext string, dest []byte, t mediaType) *media {
	return &media{
		ext:         ext,
		destination: dest,
		medium:      t,
	}
}

// mediaKind reports whether dest names an audio or video file.
func mediaKind(dest []byte) (string, mediaType, bool) {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(string(dest)), "."))
	switch {
	case slices.Contains(videoExt, ext):
		return ext, mediaVideo, true
	case slices.Contains(audioExt, ext):
		return ext, mediaAudio, true
	}
	return "", 0, false
}

type mediaTransformer struct{}

func (r mediaTransformer) Transform(node *ast.Document, reader text.Reader, pc parser.Context) {
	var images []*ast.Image
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if img, ok := n.(*ast.Image); ok && entering {
			images = append(images, img)
		}
		return ast.WalkContinue, nil
	})
	for _, img := range images {
		ext, medium, ok := mediaKind(img.Destination)
		if !ok {
			continue
		}
		m := newMedia(ext, img.Destination, medium)
		parent := img.Parent()
		// A media file alone in a paragraph takes the paragraph's place.
		if parent.Kind() == ast.KindParagraph && parent.ChildCount() == 1 {
			parent.Parent().ReplaceChild(parent.Parent(), parent, m)
			continue
		}
		parent.ReplaceChild(parent, img, m)
	}
}

// MediaHTMLRenderer renders media nodes as audio and video players.
type MediaHTMLRenderer struct{}

func NewMediaHTMLRenderer() renderer.NodeRenderer {
	return &MediaHTMLRenderer{}
}

func (r *MediaHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindMedia, r.renderMedia)
}

func (r *MediaHTMLRenderer) renderMedia(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n, ok := node.(*media)
	if !ok || !entering {
		return ast.WalkContinue, nil
	}
	tag, mime := "audio", "audio"
	if n.medium == mediaVideo {
		tag, mime = "video", "video"
	}
	_, _ = w.WriteString(`<` + tag + ` controls><source src="`)
	_, _ = w.WriteString(html.EscapeString(string(n.destination)))
	_, _ = w.WriteString(`" type="` + mime + "/" + n.ext + `" /></` + tag + `>`)
	return ast.WalkContinue, nil
}

type mediaEmbed struct{}

func (e *mediaEmbed) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithASTTransformers(
			util.Prioritized(mediaTransformer{}, priorityMediaTransformer),
		),
	)
	m.Renderer().AddOptions(
		renderer.WithNodeRenderers(
			util.Prioritized(NewMediaHTMLRenderer(), priorityMediaHTMLRenderer),
		),
	)
}

// EmbedMedia renders images of audio and video files as players.
func EmbedMedia() goldmark.Extender {
	return &mediaEmbed{}
}

package extensions

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
)

func convert(t *testing.T, md goldmark.Markdown, src string) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, md.Convert([]byte(src), &buf))
	return buf.String()
}

func TestEmbedMedia(t *testing.T) {
	md := goldmark.New(goldmark.WithExtensions(EmbedMedia()))

	out := convert(t, md, "![a](x.ogg)\n")
	assert.Equal(t, `<audio controls><source src="x.ogg" type="audio/ogg" /></audio>`, out)

	out = convert(t, md, "see ![v](clips/y.WEBM) here\n")
	assert.Contains(t, out, `<p>see <video controls><source src="clips/y.WEBM" type="video/webm" /></video> here</p>`)

	out = convert(t, md, "![i](z.png)\n")
	assert.Contains(t, out, `<img src="z.png" alt="i"`)
}

func TestLinkRewrite(t *testing.T) {
	md := goldmark.New(goldmark.WithExtensions(LinkRewrite()))
	out := convert(t, md, "[a](b.md#c) [d](https://e.org/f.md) ![g](h.md)\n")
	assert.Contains(t, out, `href="b.html#c"`)
	assert.Contains(t, out, `href="https://e.org/f.md"`)
	assert.Contains(t, out, `src="h.md"`)
}

package extensions

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"

	"tidymd.site/tidymd/markdown"
)

func format(t *testing.T, src string, plugins ...markdown.Plugin) string {
	t.Helper()
	p, err := markdown.New(markdown.WithPlugins(plugins...))
	require.NoError(t, err)
	out, err := p.Format([]byte(src))
	require.NoError(t, err)
	return string(out)
}

func shortcodes(opts ...ShortcodeOption) *ShortcodeExtension {
	base := []ShortcodeOption{
		WithMarkdownAttributes(NewMarkdownAttributes(false, DefaultMarkdownAttributeNames...)),
	}
	return Shortcodes(append(base, opts...)...)
}

func TestShortcodeFormat(t *testing.T) {
	inline := []ShortcodeOption{WithStartBlock("{{<"), WithEndBlock(">}}"), WithInlineMode(true), WithTidyText(strings.ToUpper)}
	tests := []struct {
		name string
		opts []ShortcodeOption
		in   string
		want string
	}{
		{
			"Inline",
			inline,
			"Intro {{< figure src=\"a.png\" caption=\"a *b*\" >}} end\n",
			"Intro {{< figure src=\"a.png\" caption=\"A *B*\" >}} end\n",
		},
		{
			"InlineQuotesAndBrackets",
			inline,
			"{{< figure caption=\"Don't\" alt=\"a > b\" >}}\n",
			"{{< figure caption=\"DON'T\" alt=\"A > B\" >}}\n",
		},
		{
			"InlineUnterminated",
			inline,
			"Intro {{< figure end\n",
			"Intro {{< figure end\n",
		},
		{
			"InlineMultiline",
			inline,
			"{{< figure\n  src=\"my_image_file.png\"\n  caption=\"x\" >}}\n",
			"{{< figure src=\"my_image_file.png\" caption=\"X\" >}}\n",
		},
		{
			"InlineMultilineMidParagraph",
			inline,
			"Text {{< ref\n  page=\"other_page.md\" >}} more\nand more\n",
			"Text {{< ref page=\"other_page.md\" >}} more\nand more\n",
		},
		{
			"InlineMultilineKeepsValueIndent",
			inline,
			"{{< note text=\"a\n  b\" >}}\n",
			"{{< note text=\"a\n  b\" >}}\n",
		},
		{
			"InlineBrackets",
			[]ShortcodeOption{WithInlineMode(true)},
			"Hello [[ Foo a=\"1\" ]] world\n",
			"Hello {{< Foo a=\"1\" >}} world\n",
		},
		{
			"InlineBracketsLinkUntouched",
			[]ShortcodeOption{WithInlineMode(true)},
			"A [link](x.md) and [[ Foo ]]\n",
			"A [link](x.md) and {{< Foo >}}\n",
		},
		{
			"Block",
			nil,
			"[[ Foo ]]\n\nPara\n",
			"{{< Foo >}}\n\nPara\n",
		},
		{
			"BlockMultiline",
			nil,
			"[[ Gallery\n  a=\"1\"\n  b=\"2\" ]]\n\nText\n",
			"{{< Gallery a=\"1\" b=\"2\" >}}\n\nText\n",
		},
		{
			"BlockInList",
			nil,
			"- [[ Foo x=\"1\" ]]\n",
			"- {{< Foo x=\"1\" >}}\n",
		},
		{
			"BlockTrailingText",
			nil,
			"[[ Foo ]] tail\n",
			"[[ Foo ]] tail\n",
		},
		{
			"BlockUnterminated",
			nil,
			"[[ Foo\n\nbar\n",
			"[[ Foo\n\nbar\n",
		},
		{
			"CustomDelimiters",
			[]ShortcodeOption{WithStartBlock("{{%"), WithEndBlock("%}}")},
			"{{% Baz x=\"y\" %}}\n\nafter\n",
			"{{< Baz x=\"y\" >}}\n\nafter\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := format(t, test.in, shortcodes(test.opts...))
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Format(%q) (-want +got):\n%s", test.in, diff)
			}
		})
	}
}

func TestShortcodeRuleOrder(t *testing.T) {
	inline, err := markdown.New(markdown.WithPlugins(shortcodes(WithInlineMode(true))))
	require.NoError(t, err)
	rules := inline.InlineRules()
	i := indexOf(rules, "shortcode")
	require.GreaterOrEqual(t, i, 0, "shortcode rule missing from %v", rules)
	assert.Equal(t, "taskCheckBox", rules[i+1], "[[ has to precede every rule firing on [")

	braces, err := markdown.New(markdown.WithPlugins(shortcodes(WithStartBlock("{{<"), WithEndBlock(">}}"), WithInlineMode(true))))
	require.NoError(t, err)
	rules = braces.InlineRules()
	i = indexOf(rules, "shortcode")
	require.GreaterOrEqual(t, i, 0, "shortcode rule missing from %v", rules)
	assert.Equal(t, "html", rules[i+1])

	block, err := markdown.New(markdown.WithPlugins(shortcodes()))
	require.NoError(t, err)
	rules = block.BlockRules()
	i = indexOf(rules, "shortcode")
	require.GreaterOrEqual(t, i, 0, "shortcode rule missing from %v", rules)
	assert.Equal(t, "html", rules[i+1])
	assert.NotContains(t, block.InlineRules(), "shortcode")
}

func TestShortcodeRegisterTwice(t *testing.T) {
	_, err := markdown.New(markdown.WithPlugins(shortcodes(), shortcodes()))
	assert.ErrorIs(t, err, markdown.ErrDuplicateRule)
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

func TestShortcodeHTML(t *testing.T) {
	md := goldmark.New(goldmark.WithExtensions(
		shortcodes(WithStartBlock("{{<"), WithEndBlock(">}}"), WithInlineMode(true)),
	))
	var buf bytes.Buffer
	require.NoError(t, md.Convert([]byte("a {{< X K=\"v\" >}} b\n"), &buf))
	assert.Contains(t, buf.String(), `<span class="shortcode" data-shortcode="X" data-k="v">{{&lt; X K=&#34;v&#34; &gt;}}</span>`)

	md = goldmark.New(goldmark.WithExtensions(shortcodes()))
	buf.Reset()
	require.NoError(t, md.Convert([]byte("[[ Y ]]\n"), &buf))
	assert.Contains(t, buf.String(), `<div class="shortcode" data-shortcode="Y">{{&lt; Y &gt;}}</div>`)
}

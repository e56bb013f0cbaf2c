package tidy

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tidymd.site/tidymd/metadata"
)

func testConfig() metadata.Config {
	cfg := metadata.DefaultConfig()
	cfg.Shortcodes.SpreadMarkdownAttributes = false
	return cfg
}

func newFormatter(t *testing.T, cfg metadata.Config) *Formatter {
	t.Helper()
	f, err := New(cfg)
	require.NoError(t, err)
	return f
}

func TestFormat(t *testing.T) {
	blockMode := testConfig()
	blockMode.Shortcodes.StartBlock = "[["
	blockMode.Shortcodes.EndBlock = "]]"
	blockMode.Shortcodes.InlineMode = false

	tests := []struct {
		name string
		cfg  metadata.Config
		in   string
		want string
	}{
		{
			"FrontMatter",
			testConfig(),
			"---\ntitle: It’s\ntags:\n  - a\n---\n\nSome “quoted” text — {{< figure caption=\"*a*\" >}}\n",
			"---\ntitle: It's\ntags: [a]\n---\n\nSome &quot;quoted&quot; text --- {{< figure caption=\"_a_\" >}}\n",
		},
		{
			"EmptyFrontMatter",
			testConfig(),
			"---\n---\nTitle\n=====\n",
			"# Title\n",
		},
		{
			"FrontMatterOnly",
			testConfig(),
			"---\nk: v\n---\n",
			"---\nk: v\n---\n",
		},
		{
			"BlockShortcodes",
			blockMode,
			"[[ Foo   x=\"1\" ]]\n\n* item\n",
			"{{< Foo x=\"1\" >}}\n\n- item\n",
		},
		{
			"ShortcodeQuotesKept",
			testConfig(),
			"{{< figure caption=\"It’s a -> b\" alt=\"Don't\" >}}\n",
			"{{< figure caption=\"It's a -> b\" alt=\"Don't\" >}}\n",
		},
		{
			"Alert",
			testConfig(),
			"> [!tip]\n> *hi*\n",
			"> [!TIP]\n> _hi_\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := newFormatter(t, test.cfg)
			got, err := f.Format(context.Background(), []byte(test.in))
			require.NoError(t, err)
			if diff := cmp.Diff(test.want, string(got)); diff != "" {
				t.Errorf("Format(%q) (-want +got):\n%s", test.in, diff)
			}
			again, err := f.Format(context.Background(), got)
			require.NoError(t, err)
			if diff := cmp.Diff(string(got), string(again)); diff != "" {
				t.Errorf("formatting twice differs (-first +second):\n%s", diff)
			}
		})
	}
}

func TestFormatBadFrontMatter(t *testing.T) {
	f := newFormatter(t, testConfig())
	got, err := f.Format(context.Background(), []byte("---\n- a\n---\nbody\n"))
	require.NoError(t, err)
	assert.Contains(t, string(got), "body")
	assert.NotContains(t, string(got), "---\n- a\n---\n")
}

func TestFormatDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.DisableFormatter = true
	f := newFormatter(t, cfg)
	in := []byte("* messy   *list*\n")
	got, err := f.Format(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, string(in), string(got))

	got, err = f.FormatRange(context.Background(), in, Range{1, 1})
	require.NoError(t, err)
	assert.Equal(t, string(in), string(got))
}

func TestFormatCanceled(t *testing.T) {
	f := newFormatter(t, testConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.Format(ctx, []byte("text\n"))
	assert.True(t, errors.Is(err, context.Canceled), "Format error = %v", err)
}

func TestFormatRange(t *testing.T) {
	f := newFormatter(t, testConfig())
	tests := []struct {
		in   string
		r    Range
		want string
	}{
		{"# A\n\n* x\n* y\n\nkeep   *this*\n", Range{3, 4}, "# A\n\n- x\n- y\n\nkeep   *this*\n"},
		{"a\n*b*", Range{2, 2}, "a\n_b_"},
		{"*a*\nb\n", Range{1, 2}, "_a_\nb\n"},
	}
	for _, test := range tests {
		got, err := f.FormatRange(context.Background(), []byte(test.in), test.r)
		require.NoError(t, err)
		if diff := cmp.Diff(test.want, string(got)); diff != "" {
			t.Errorf("FormatRange(%q, %v) (-want +got):\n%s", test.in, test.r, diff)
		}
	}

	for _, r := range []Range{{0, 1}, {3, 2}, {1, 99}} {
		_, err := f.FormatRange(context.Background(), []byte("a\nb\n"), r)
		assert.ErrorIs(t, err, ErrRange, "range %v", r)
	}
}

func TestTidyText(t *testing.T) {
	f := newFormatter(t, testConfig())
	assert.Equal(t, "_a_ and **b**", f.TidyText("  *a* and __b__  "))
	assert.Equal(t, "", f.TidyText("   "))
}

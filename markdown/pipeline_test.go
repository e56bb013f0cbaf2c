package markdown

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

type nopInline struct{}

func (nopInline) Trigger() []byte { return []byte{'%'} }

func (nopInline) Parse(ast.Node, text.Reader, parser.Context) ast.Node { return nil }

type nopBlock struct{}

func (nopBlock) Trigger() []byte { return []byte{'%'} }

func (nopBlock) Open(ast.Node, text.Reader, parser.Context) (ast.Node, parser.State) {
	return nil, parser.NoChildren
}

func (nopBlock) Continue(ast.Node, text.Reader, parser.Context) parser.State { return parser.Close }

func (nopBlock) Close(ast.Node, text.Reader, parser.Context) {}

func (nopBlock) CanInterruptParagraph() bool { return false }

func (nopBlock) CanAcceptIndentedLine() bool { return false }

func TestRuleInsert(t *testing.T) {
	tests := []struct {
		name     string
		before   string
		wantPrio int
		wantErr  error
	}{
		{"shortcode", "html", 350, nil},
		{"alert", "link", 150, nil},
		{"first", "taskCheckBox", -50, nil},
		{"last", "", 600, nil},
		{"html", "link", 0, ErrDuplicateRule},
		{"x", "nope", 0, ErrUnknownRule},
		{"tie", "strikethrough", 0, ErrNoPriority},
	}
	for _, test := range tests {
		_, prio, err := defaultInlineRules().insert(test.name, test.before)
		if !errors.Is(err, test.wantErr) {
			t.Errorf("insert(%q, %q) error = %v; want %v", test.name, test.before, err, test.wantErr)
			continue
		}
		if prio != test.wantPrio {
			t.Errorf("insert(%q, %q) priority = %d; want %d", test.name, test.before, prio, test.wantPrio)
		}
	}
}

func TestEarliestInlineRule(t *testing.T) {
	tests := []struct {
		triggers []byte
		before   string
		want     string
	}{
		{[]byte{'{'}, "html", "html"},
		{[]byte{'['}, "html", "taskCheckBox"},
		{[]byte{'!'}, "html", "link"},
		{[]byte{'<'}, "html", "autolink"},
		{[]byte{'%', '`'}, "emphasis", "code"},
		{[]byte{'['}, "nope", "nope"},
	}
	for _, test := range tests {
		if got := defaultInlineRules().earliest(test.triggers, test.before); got != test.want {
			t.Errorf("earliest(%q, %q) = %q; want %q", test.triggers, test.before, got, test.want)
		}
	}
}

func TestAddRules(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatal(err)
	}
	if err := p.AddInlineRule("percent", nopInline{}, "html"); err != nil {
		t.Fatal(err)
	}
	if err := p.AddBlockRule("percent", nopBlock{}, "html"); err != nil {
		t.Fatal(err)
	}
	wantInline := []string{"taskCheckBox", "code", "footnote", "link", "autolink", "percent", "html", "emphasis", "strikethrough"}
	if diff := cmp.Diff(wantInline, p.InlineRules()); diff != "" {
		t.Errorf("InlineRules() (-want +got):\n%s", diff)
	}
	wantBlock := []string{"setextHeading", "thematicBreak", "list", "listItem", "codeBlock", "atxHeading", "fencedCode", "blockquote", "percent", "html", "footnoteBlock", "paragraph"}
	if diff := cmp.Diff(wantBlock, p.BlockRules()); diff != "" {
		t.Errorf("BlockRules() (-want +got):\n%s", diff)
	}

	if got := p.EarliestInlineRule([]byte{'%'}, "emphasis"); got != "percent" {
		t.Errorf("EarliestInlineRule(%%) = %q; want %q", got, "percent")
	}

	if _, err := p.Format([]byte("100% done\n")); err != nil {
		t.Fatal(err)
	}
	if err := p.AddInlineRule("late", nopInline{}, ""); !errors.Is(err, ErrSealed) {
		t.Errorf("AddInlineRule after Format = %v; want %v", err, ErrSealed)
	}
}

type pluginFunc func(h Host) error

func (f pluginFunc) Register(h Host) error { return f(h) }

func TestPluginVisitor(t *testing.T) {
	shout := pluginFunc(func(h Host) error {
		h.AddVisitor(ast.KindCodeSpan, func(c *Compiler, n ast.Node) (string, error) {
			return "CODE", nil
		})
		return nil
	})
	p, err := New(WithPlugins(shout))
	if err != nil {
		t.Fatal(err)
	}
	got, err := p.Format([]byte("a `b` c\n"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("a CODE c\n", string(got)); diff != "" {
		t.Errorf("Format (-want +got):\n%s", diff)
	}
}

func TestPluginError(t *testing.T) {
	bad := pluginFunc(func(h Host) error {
		return h.AddInlineRule("x", nopInline{}, "missing")
	})
	if _, err := New(WithPlugins(bad)); !errors.Is(err, ErrUnknownRule) {
		t.Errorf("New with failing plugin = %v; want %v", err, ErrUnknownRule)
	}
}

func TestInvalidStyle(t *testing.T) {
	style := DefaultStyle()
	style.Bullet = "#"
	if _, err := New(WithStyle(style)); err == nil {
		t.Error("New with bullet # succeeded")
	}
}

package markdown

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Empty", "", ""},
		{"Setext", "Title\n=====\n\nSome *emphasis* and __strong__ text.\n", "# Title\n\nSome _emphasis_ and **strong** text.\n"},
		{"IntrawordEmphasis", "snake*case*word\n", "snake*case*word\n"},
		{"NestedList", "* one\n* two\n    * nested\n", "- one\n- two\n  - nested\n"},
		{"AdjacentLists", "- a\n\n* b\n", "- a\n\n* b\n"},
		{"Ordered", "1) a\n1) b\n", "1) a\n2) b\n"},
		{"TaskList", "- [x] done\n- [ ] todo\n", "- [x] done\n- [ ] todo\n"},
		{"IndentedCode", "    code line\n", "```\ncode line\n```\n"},
		{"Fenced", "~~~go\nfmt.Println()\n~~~\n", "```go\nfmt.Println()\n```\n"},
		{"Blockquote", "> a\n>\n> b\n", "> a\n>\n> b\n"},
		{"LeadingBreak", "***\n\ntext\n", "***\n\ntext\n"},
		{"Break", "text\n\n* * *\n", "text\n\n---\n"},
		{"HardBreak", "a  \nb\n", "a\\\nb\n"},
		{"Link", "[x](http://a.b \"T\")\n", "[x](http://a.b \"T\")\n"},
		{"AutoLink", "<http://a.b>\n", "<http://a.b>\n"},
		{"CodeSpan", "`` a`b ``\n", "``a`b``\n"},
		{"Strikethrough", "~~gone~~\n", "~~gone~~\n"},
		{"HTMLBlock", "<div>\nhi\n</div>\n", "<div>\nhi\n</div>\n"},
		{"Footnote", "Text[^1].\n\n[^1]: Note.\n", "Text[^1].\n\n[^1]: Note.\n"},
		{
			"Table",
			"| a | b |\n|---|:-:|\n| long cell | x |\n",
			"| a         |  b  |\n| --------- | :-: |\n| long cell |  x  |\n",
		},
	}
	p, err := New()
	if err != nil {
		t.Fatal(err)
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := p.Format([]byte(test.in))
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(test.want, string(got)); diff != "" {
				t.Errorf("Format(%q) (-want +got):\n%s", test.in, diff)
			}
			again, err := p.Format(got)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(string(got), string(again)); diff != "" {
				t.Errorf("formatting twice differs (-first +second):\n%s", diff)
			}
		})
	}
}

func TestFormatStyle(t *testing.T) {
	style := Style{
		Bullet:           "*",
		Emphasis:         "*",
		Strong:           "__",
		ThematicBreak:    "***",
		IncrementOrdered: false,
	}
	p, err := New(WithStyle(style))
	if err != nil {
		t.Fatal(err)
	}
	got, err := p.Format([]byte("- _a_ **b**\n\n---\n\n1. x\n2. y\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := "* *a* __b__\n\n***\n\n1. x\n1. y\n"
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("Format (-want +got):\n%s", diff)
	}
}

func TestPrefixLines(t *testing.T) {
	got := prefixLines("a\n\nb", "> ", "> ")
	if diff := cmp.Diff("> a\n>\n> b", got); diff != "" {
		t.Errorf("prefixLines (-want +got):\n%s", diff)
	}
}

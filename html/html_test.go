package html

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRenderHTML(t *testing.T) {
	root := NewHTMLElement("nav", Class("nav-toc"), Class("wide"))
	ul := root.AppendNew("ul")
	ul.AppendNew("li").AppendNew("a", Href("#x"), ID("first")).AppendText("X & Y")
	ul.AppendNew("li").AppendNew("hr")
	root.AppendRaw("<p>already\nrendered</p>")
	root.AppendText("a text line that is longer than thirty-two bytes")

	var buf bytes.Buffer
	RenderHTML(root, &buf)
	want := `<nav class="nav-toc wide">
    <ul>
        <li>
            <a href="#x" id="first">X &amp; Y</a>
        </li>
        <li>
            <hr>
        </li>
    </ul>
<p>already
rendered</p>
    a text line that is longer than thirty-two bytes
</nav>
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("RenderHTML (-want +got):\n%s", diff)
	}
}

func TestRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	RenderHTML(NewHTMLElement("div", map[string]string{"hidden": ""}), &buf)
	if diff := cmp.Diff("<div hidden></div>\n", buf.String()); diff != "" {
		t.Errorf("RenderHTML (-want +got):\n%s", diff)
	}
	buf.Reset()
	RenderHTML(nil, &buf)
	if buf.Len() != 0 {
		t.Errorf("RenderHTML(nil) wrote %q", buf.String())
	}
}

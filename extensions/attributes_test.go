package extensions

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
)

func TestAttributeListFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Paragraph {: .lead #intro}\n", "Paragraph {: #intro .lead}\n"},
		{"*x*{: .big data-x=1}\n", "_x_{: .big data-x=1}\n"},
		{"Empty {:}\n", "Empty {:}\n"},
		{"Not {: closed\n", "Not {: closed\n"},
	}
	for _, test := range tests {
		got := format(t, test.in, AttributeList())
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Format(%q) (-want +got):\n%s", test.in, diff)
		}
	}
}

func TestParseAttrList(t *testing.T) {
	n := parseAttrList([]byte(" #a .b .c key=v "))
	assert.Equal(t, []string{"a"}, n.ids)
	assert.Equal(t, []string{"b", "c"}, n.classes)
	assert.Equal(t, []string{"key=v"}, n.others)
	class, ok := n.AttributeString("class")
	require.True(t, ok)
	assert.Equal(t, "b c", class)
}

func TestAttributeListHTML(t *testing.T) {
	md := goldmark.New(goldmark.WithExtensions(AttributeList()))
	var buf bytes.Buffer
	require.NoError(t, md.Convert([]byte("Para *x*{: .big}\n"), &buf))
	assert.Contains(t, buf.String(), `<em class="big">x</em>`)
	assert.NotContains(t, buf.String(), "{:")
}

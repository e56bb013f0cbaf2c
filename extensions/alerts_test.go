package extensions

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
)

func TestAlertFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"> [!note]\n> Text\n", "> [!NOTE]\n> Text\n"},
		{"> [!Warning]\n> Careful\n", "> [!WARNING]\n> Careful\n"},
		{"> [!bogus]\n> x\n", "> [!bogus]\n> x\n"},
		{"[!NOTE] outside\n", "[!NOTE] outside\n"},
	}
	for _, test := range tests {
		got := format(t, test.in, Alerts())
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Format(%q) (-want +got):\n%s", test.in, diff)
		}
	}
}

func TestAlertHTML(t *testing.T) {
	md := goldmark.New(goldmark.WithExtensions(Alerts()))
	var buf bytes.Buffer
	require.NoError(t, md.Convert([]byte("> [!TIP]\n> Hi\n"), &buf))
	assert.Contains(t, buf.String(), `<blockquote class="alert alert-tip">`)
	assert.NotContains(t, buf.String(), "[!TIP]")
}

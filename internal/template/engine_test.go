package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	e := New()

	out, err := e.Render("greeting", `{{ .Name | upper }} {{ .Args | trim }}`, Context{
		"Name": "alpha",
		"Args": "  -Xmx2G  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "ALPHA -Xmx2G", out)
}

func TestRenderMissingKey(t *testing.T) {
	e := New()

	_, err := e.Render("missing", `cd {{ .Dir }}`, Context{})
	assert.Error(t, err)
}

func TestRenderParseError(t *testing.T) {
	e := New()

	_, err := e.Render("broken", `{{ .Dir `, Context{"Dir": "/srv"})
	assert.Error(t, err)
}

func TestShellQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "'plain'"},
		{"with space", "'with space'"},
		{"it's", `'it'\''s'`},
		{"", "''"},
	}

	for _, tt := range tests {
		if got := ShellQuote(tt.in); got != tt.want {
			t.Errorf("ShellQuote(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	out, err := New().Render("q", `{{ .Dir | shquote }}`, Context{"Dir": "/srv/my server"})
	require.NoError(t, err)
	assert.Equal(t, "'/srv/my server'", out)
}

func TestMergeContexts(t *testing.T) {
	merged := MergeContexts(
		Context{"a": 1, "b": 2},
		Context{"b": 3, "c": 4},
	)
	assert.Equal(t, Context{"a": 1, "b": 3, "c": 4}, merged)
}

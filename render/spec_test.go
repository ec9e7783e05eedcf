package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSpec(t *testing.T) {
	tests := []struct {
		name string
		args string
		want Spec
	}{
		{
			name: "inline source",
			args: `ext="txt", source="A"`,
			want: Spec{Ext: "txt", Source: "A", hasSource: true},
		},
		{
			name: "empty source",
			args: `source=""`,
			want: Spec{hasSource: true},
		},
		{
			name: "trailing comma and raw strings",
			args: "source=`{{ a }}\\n`, escape=\"none\",",
			want: Spec{Source: "{{ a }}\\n", Escape: "none", hasSource: true},
		},
		{
			name: "escaped quotes",
			args: `source="{{ at|date:\"2006\" }}"`,
			want: Spec{Source: `{{ at|date:"2006" }}`, hasSource: true},
		},
		{
			name: "path with mime",
			args: `path="mail/welcome.html", mime="text/html"`,
			want: Spec{Path: "mail/welcome.html", Mime: "text/html"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSpec(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSpecErrors(t *testing.T) {
	tests := []struct {
		name string
		args string
		msg  string
	}{
		{"empty", ``, "need a source or a path"},
		{"no template", `ext="txt"`, "need a source or a path"},
		{"both", `source="a", path="b.txt"`, "mutually exclusive"},
		{"unknown key", `source="a", name="b"`, "unknown key name"},
		{"duplicate key", `ext="a", ext="b", source=""`, "duplicate key ext"},
		{"unquoted value", `ext=txt, source="a"`, "expected string value for ext"},
		{"missing equals", `ext "txt"`, "expected = after ext"},
		{"missing comma", `ext="txt" source="a"`, "expected , after ext"},
		{"not a key", `"txt"`, "expected key"},
		{"bad escape", `source="a", escape="js"`, `unknown escape mode "js"`},
		{"unterminated", `source="a`, "string literal not terminated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSpec(tt.args)
			require.ErrorIs(t, err, ErrSpec)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

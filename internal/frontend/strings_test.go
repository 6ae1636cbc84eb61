package frontend

import "testing"

func TestUnquote(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`"plain"`, "plain"},
		{`'single'`, "single"},
		{`"a\nb"`, "a\nb"},
		{`"tab\there"`, "tab\there"},
		{`"\x41B\u{43}"`, "ABC"},
		{`"\u{1F600}"`, "\U0001F600"},
		{`"quote \" inside"`, `quote " inside`},
		{`'it\'s'`, "it's"},
		{"\"cont\\\nline\"", "contline"},
		{`"\q"`, "q"},
		{`"\xZZ"`, "xZZ"},
		{`unquoted`, "unquoted"},
		{`"`, `"`},
	}
	for _, tt := range tests {
		if got := unquote(tt.raw); got != tt.want {
			t.Errorf("unquote(%s) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

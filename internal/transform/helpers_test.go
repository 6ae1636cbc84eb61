package transform

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"vuejsx/internal/ast"
	"vuejsx/internal/format"
	"vuejsx/internal/source"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"  a  ", "  a  "},
		{"\n  hello\n  world\n", "hello world"},
		{"\n   \n", ""},
		{"a\tb", "a b"},
		{"foo \n bar", "foo bar"},
		{"x\r\n  y", "x y"},
	}
	for _, tt := range tests {
		if got := NormalizeText(tt.in); got != tt.want {
			t.Errorf("NormalizeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPatchFlags(t *testing.T) {
	if FlagProps != 8 || FlagHydrateEvents != 32 || FlagNeedPatch != 512 {
		t.Fatalf("flag values drifted: props=%d hydrate=%d needPatch=%d", FlagProps, FlagHydrateEvents, FlagNeedPatch)
	}
	tests := []struct {
		flags PatchFlags
		want  string
	}{
		{0, "NONE"},
		{FlagClass | FlagProps, "CLASS|PROPS"},
		{FlagHoisted, "HOISTED"},
		{FlagBail, "BAIL"},
	}
	for _, tt := range tests {
		if got := tt.flags.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", int32(tt.flags), got, tt.want)
		}
	}
	if slotFlagOf(true) != SlotDynamic || slotFlagOf(false) != SlotStable {
		t.Fatalf("slotFlagOf polarity is wrong")
	}
}

func TestParsePragma(t *testing.T) {
	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{" @jsx h ", "h", true},
		{"* @jsx createElement", "createElement", true},
		{"@jsxh", "", false},
		{"@jsx", "", false},
		{" eslint-disable ", "", false},
	}
	for _, tt := range tests {
		got, ok := parsePragma(tt.text)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parsePragma(%q) = %q, %v; want %q, %v", tt.text, got, ok, tt.want, tt.ok)
		}
	}
}

func TestTagClassification(t *testing.T) {
	for _, tag := range []string{"div", "span", "svg", "circle", "input"} {
		if !IsNativeTag(tag) {
			t.Errorf("%s must be native", tag)
		}
	}
	for _, tag := range []string{"Foo", "my-widget", "KeepAlive"} {
		if IsNativeTag(tag) {
			t.Errorf("%s must not be native", tag)
		}
	}
	if !isOn("onClick") || isOn("on") || isOn("onclick") {
		t.Fatalf("isOn misclassifies listeners")
	}
}

func TestDedupeProps(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	props := []ast.PropID{
		b.KeyValue("class", false, b.Str("a")),
		b.KeyValue("id", false, b.Str("x")),
		b.KeyValue("class", false, b.Str("b")),
		b.KeyValue("id", false, b.Str("y")),
		b.KeyValue("onClick", false, b.Ident("f")),
		b.SpreadProp(b.Ident("rest")),
		b.KeyValue("onClick", false, b.Ident("g")),
	}
	got := format.PrintExpr(b, 0, nil, b.Object(DedupeProps(b, props)...))
	want := `{ class: ["a", "b"], id: "x", onClick: [f, g], ...rest }`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("DedupeProps mismatch (-want +got):\n%s", diff)
	}
}

func TestIsConstant(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	none := source.Span{}
	tests := []struct {
		name string
		expr ast.ExprID
		want bool
	}{
		{"string", b.Str("x"), true},
		{"number", b.Exprs.NewNumber(none, "1", 1), true},
		{"undefined", b.Ident("undefined"), true},
		{"identifier", b.Ident("x"), false},
		{"constant array", b.Array(b.Str("a"), b.Exprs.NewBool(none, true)), true},
		{"array with identifier", b.Array(b.Ident("a")), false},
		{"constant object", b.Object(b.KeyValue("a", false, b.Exprs.NewNull(none))), true},
		{"object with spread", b.Object(b.SpreadProp(b.Ident("a"))), false},
		{"call", b.Call(b.Ident("f")), false},
	}
	for _, tt := range tests {
		if got := IsConstant(b, tt.expr); got != tt.want {
			t.Errorf("%s: IsConstant = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDirectiveName(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	named := func(name string) *ast.JSXAttr {
		return &ast.JSXAttr{Kind: ast.JSXAttrNamed, Name: b.Intern(name)}
	}

	tests := []struct {
		attr    *ast.JSXAttr
		name    string
		arg     string
		hasArg  bool
		mods    []string
		isDir   bool
		comment string
	}{
		{named("v-show"), "show", "", false, nil, true, "dashed"},
		{named("vShow"), "show", "", false, nil, true, "camel"},
		{named("vModel_foo_trim"), "model", "foo", true, []string{"trim"}, true, "underscore argument"},
		{&ast.JSXAttr{Kind: ast.JSXAttrNamed, NS: b.Intern("v-model"), Name: b.Intern("value_lazy")},
			"model", "value", true, []string{"lazy"}, true, "namespaced"},
		{named("value"), "", "", false, nil, false, "plain"},
		{named("vendor"), "", "", false, nil, false, "lower-case after v"},
	}
	for _, tt := range tests {
		if got := IsDirective(b, tt.attr); got != tt.isDir {
			t.Errorf("%s: IsDirective = %v", tt.comment, got)
			continue
		}
		if !tt.isDir {
			continue
		}
		name, arg, hasArg, mods := directiveName(b, tt.attr)
		if name != tt.name || arg != tt.arg || hasArg != tt.hasArg {
			t.Errorf("%s: got (%q, %q, %v)", tt.comment, name, arg, hasArg)
		}
		if diff := cmp.Diff(tt.mods, mods, cmpEmptyAsNil()); diff != "" {
			t.Errorf("%s: modifiers (-want +got):\n%s", tt.comment, diff)
		}
	}
}

func cmpEmptyAsNil() cmp.Option {
	return cmp.FilterValues(func(a, b []string) bool { return len(a) == 0 && len(b) == 0 }, cmp.Ignore())
}

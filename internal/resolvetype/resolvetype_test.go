package resolvetype

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"vuejsx/internal/ast"
	"vuejsx/internal/diag"
	"vuejsx/internal/format"
	"vuejsx/internal/frontend"
	"vuejsx/internal/source"
)

// inferSource declares the top-level types of src, runs Infer on the init
// of its last variable and prints that call.
func inferSource(t *testing.T, src string) (string, bool, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.tsx", []byte(src))
	b := ast.NewBuilder(ast.Hints{}, nil)
	bag := diag.NewBag(100)
	reporter := diag.BagReporter{Bag: bag}
	fid, err := frontend.Parse(context.Background(), fs, fileID, b, reporter)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	file := b.Files.Get(fid)

	scopes := NewScopes()
	call := ast.NoExprID
	for _, id := range file.Body {
		switch b.Stmts.Get(id).Kind {
		case ast.StmtInterface:
			iface, _ := b.Stmts.Interface(id)
			scopes.DeclareInterface(iface.Name, iface.Extends, iface.Members)
		case ast.StmtTypeAlias:
			alias, _ := b.Stmts.TypeAlias(id)
			scopes.DeclareAlias(alias.Name, alias.Type)
		case ast.StmtVar:
			v, _ := b.Stmts.Var(id)
			call = v.Decls[0].Init
		}
	}
	if !call.IsValid() {
		t.Fatalf("no variable initializer in %q", src)
	}

	runtime := func(name string) ast.ExprID { return b.Ident("_" + name) }
	changed := New(b, file, scopes, reporter, runtime).Infer(call)
	return format.PrintExpr(b, fileID, fs.Get(fileID).Content, call), changed, bag
}

func TestInferProps(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "interface",
			src: "interface Props { msg: string; count?: number }\n" +
				"const C = defineComponent((props: Props) => () => null);\n",
			want: "defineComponent((props: Props) => () => null, " +
				"{ props: { msg: { type: String, required: true }, count: { type: Number, required: false } } })",
		},
		{
			name: "alias with unions",
			src: "type Props = { a: string | number; b: \"x\" | \"y\"; c?: boolean };\n" +
				"const C = defineComponent((props: Props) => null);\n",
			want: "defineComponent((props: Props) => null, " +
				"{ props: { a: { type: [String, Number], required: true }, b: { type: String, required: true }, c: { type: Boolean, required: false } } })",
		},
		{
			name: "partial utility",
			src: "interface P { a: string }\n" +
				"const C = defineComponent((props: Partial<P>) => null);\n",
			want: "defineComponent((props: Partial<P>) => null, { props: { a: { type: String, required: false } } })",
		},
		{
			name: "inline literal with function member",
			src:  "const C = defineComponent((props: { onPick: (id: number) => void; load(): void }) => null);\n",
			want: "defineComponent((props: { onPick: (id: number) => void; load(): void }) => null, " +
				"{ props: { onPick: { type: Function, required: true }, load: { type: Function, required: true } } })",
		},
		{
			name: "interface extends",
			src: "interface Base { id: string }\n" +
				"interface Props extends Base { size: number }\n" +
				"const C = defineComponent((props: Props) => null);\n",
			want: "defineComponent((props: Props) => null, " +
				"{ props: { size: { type: Number, required: true }, id: { type: String, required: true } } })",
		},
		{
			name: "static defaults",
			src: "interface Props { msg: string; list: string[] }\n" +
				"const C = defineComponent((props: Props = { msg: \"hi\", list: [] }) => null);\n",
			want: "defineComponent((props: Props = { msg: \"hi\", list: [] }) => null, " +
				"{ props: { msg: { type: String, required: true, default: \"hi\" }, list: { type: Array, required: true, default: () => [] } } })",
		},
		{
			name: "named tuple members",
			src: "type TT = [foo: 1, bar?: \"x\"];\n" +
				"const C = defineComponent((props: { a: TT[number]; b: TT[0] }) => null);\n",
			want: "defineComponent((props: { a: TT[number]; b: TT[0] }) => null, " +
				"{ props: { a: { type: [Number, String], required: true }, b: { type: Number, required: true } } })",
		},
		{
			name: "pick utility",
			src: "interface P { a: string; b: number; c: boolean }\n" +
				"const C = defineComponent((props: Pick<P, \"c\" | \"a\">) => null);\n",
			want: "defineComponent((props: Pick<P, \"c\" | \"a\">) => null, " +
				"{ props: { a: { type: String, required: true }, c: { type: Boolean, required: true } } })",
		},
		{
			name: "omit utility",
			src: "interface P { a: string; b: number; c: boolean }\n" +
				"const C = defineComponent((props: Omit<P, \"b\">) => null);\n",
			want: "defineComponent((props: Omit<P, \"b\">) => null, " +
				"{ props: { a: { type: String, required: true }, c: { type: Boolean, required: true } } })",
		},
		{
			name: "required utility",
			src: "interface P { a?: string }\n" +
				"const C = defineComponent((props: Required<P>) => null);\n",
			want: "defineComponent((props: Required<P>) => null, { props: { a: { type: String, required: true } } })",
		},
		{
			name: "indexed access on interface",
			src: "interface P { inner: { x: number } }\n" +
				"const C = defineComponent((props: P[\"inner\"]) => null);\n",
			want: "defineComponent((props: P[\"inner\"]) => null, { props: { x: { type: Number, required: true } } })",
		},
		{
			name: "generic array",
			src:  "const C = defineComponent((props: { list: Array<string>; n: Array<number>[number] }) => null);\n",
			want: "defineComponent((props: { list: Array<string>; n: Array<number>[number] }) => null, " +
				"{ props: { list: { type: Array, required: true }, n: { type: Number, required: true } } })",
		},
		{
			name: "emits from call signature",
			src:  "const C = defineComponent((props: {}, ctx: SetupContext<{ (e: \"open\" | \"close\", v: number): void }>) => null);\n",
			want: "defineComponent((props: {}, ctx: SetupContext<{ (e: \"open\" | \"close\", v: number): void }>) => null, " +
				"{ props: {}, emits: [\"open\", \"close\"] })",
		},
		{
			name: "emits from setup context",
			src:  "const C = defineComponent((props: {}, ctx: SetupContext<{ change: (v: number) => void }>) => null);\n",
			want: "defineComponent((props: {}, ctx: SetupContext<{ change: (v: number) => void }>) => null, " +
				"{ props: {}, emits: [\"change\"] })",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed, bag := inferSource(t, tt.src)
			if !changed {
				t.Fatalf("Infer reported no change")
			}
			if bag.HasErrors() {
				t.Fatalf("unexpected diagnostics: %v", bag.Items())
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInferDynamicDefaults(t *testing.T) {
	src := "interface Props { msg: string }\n" +
		"const C = defineComponent((props: Props = defaults) => null);\n"
	got, _, _ := inferSource(t, src)
	want := "defineComponent((props: Props = defaults) => null, " +
		"{ props: _mergeDefaults({ msg: { type: String, required: true } }, defaults) })"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestInferKeepsExplicitOptions(t *testing.T) {
	src := "interface Props { msg: string }\n" +
		"const C = defineComponent((props: Props) => null, { props: [\"msg\"], name: \"C\" });\n"
	got, changed, _ := inferSource(t, src)
	if changed {
		t.Fatalf("explicit props option must win, got %s", got)
	}
}

func TestInferWithoutAnnotation(t *testing.T) {
	_, changed, bag := inferSource(t, "const C = defineComponent((props) => null);\n")
	if changed || bag.Len() != 0 {
		t.Fatalf("unannotated setup must be left alone")
	}
}

func TestInferDiagnostics(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{
			name: "qualified reference",
			src:  "const C = defineComponent((props: Foo.Bar) => null);\n",
			code: diag.TypeUnresolvable,
		},
		{
			name: "unknown utility",
			src:  "const C = defineComponent((props: Mystery<{ a: string }>) => null);\n",
			code: diag.TypeUnresolvableRef,
		},
		{
			name: "imported type",
			src: "import { Props } from \"./types\";\n" +
				"const C = defineComponent((props: Props) => null);\n",
			code: diag.TypeFromOtherModule,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, bag := inferSource(t, tt.src)
			for _, d := range bag.Items() {
				if d.Code == tt.code {
					return
				}
			}
			t.Fatalf("want %s, got %v", tt.code, bag.Items())
		})
	}
}

// An unresolvable part of an intersection is reported and skipped; the
// rest of the props are still emitted.
func TestInferSkipsUnresolvedPart(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
		want string
	}{
		{
			name: "qualified reference",
			src:  "const C = defineComponent((props: { a: string } & Foo.Bar) => null);\n",
			code: diag.TypeUnresolvable,
			want: "defineComponent((props: { a: string } & Foo.Bar) => null, { props: { a: { type: String, required: true } } })",
		},
		{
			name: "imported type",
			src: "import { Extra } from \"./types\";\n" +
				"const C = defineComponent((props: { a: string } & Extra) => null);\n",
			code: diag.TypeFromOtherModule,
			want: "defineComponent((props: { a: string } & Extra) => null, { props: { a: { type: String, required: true } } })",
		},
		{
			name: "unknown utility",
			src:  "const C = defineComponent((props: { a: string } & Mystery<{ b: number }>) => null);\n",
			code: diag.TypeUnresolvableRef,
			want: "defineComponent((props: { a: string } & Mystery<{ b: number }>) => null, { props: { a: { type: String, required: true } } })",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed, bag := inferSource(t, tt.src)
			if !changed {
				t.Fatalf("Infer reported no change")
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("mismatch (-want +got):\n%s", diff)
			}
			var codes []diag.Code
			for _, d := range bag.Items() {
				codes = append(codes, d.Code)
			}
			if diff := cmp.Diff([]diag.Code{tt.code}, codes); diff != "" {
				t.Fatalf("diagnostics (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScopesLookup(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	name := b.Intern("Props")
	str := b.Types.NewKeyword(source.Span{}, "string")
	num := b.Types.NewKeyword(source.Span{}, "number")

	s := NewScopes()
	s.DeclareInterface(name, nil, nil)
	s.Push()
	s.DeclareAlias(name, str)
	if alias, iface, ok := s.lookup(name); !ok || iface != nil || alias != str {
		t.Fatalf("inner alias must shadow the outer interface")
	}
	s.Pop()
	if _, iface, ok := s.lookup(name); !ok || iface == nil {
		t.Fatalf("outer interface must be visible after Pop")
	}

	s.DeclareAlias(name, num)
	if alias, _, _ := s.lookup(name); alias != num {
		t.Fatalf("alias must win over an interface in the same scope")
	}

	s.Pop()
	if s.Depth() != 1 {
		t.Fatalf("module scope must never be popped, depth %d", s.Depth())
	}
	if _, _, ok := s.lookup(b.Intern("Missing")); ok {
		t.Fatalf("unexpected hit for an undeclared name")
	}
}

func TestScopesMergeInterfaces(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	name := b.Intern("Props")
	m1 := b.Types.NewMember(ast.TypeMember{Kind: ast.MemberProperty, Key: ast.PropKey{Kind: ast.KeyIdent, Name: b.Intern("a")}})
	m2 := b.Types.NewMember(ast.TypeMember{Kind: ast.MemberProperty, Key: ast.PropKey{Kind: ast.KeyIdent, Name: b.Intern("b")}})

	s := NewScopes()
	s.DeclareInterface(name, nil, []ast.TypeMemberID{m1})
	s.DeclareInterface(name, nil, []ast.TypeMemberID{m2})
	_, iface, ok := s.lookup(name)
	if !ok {
		t.Fatalf("interface not found")
	}
	if diff := cmp.Diff([]ast.TypeMemberID{m1, m2}, iface.Members); diff != "" {
		t.Fatalf("members (-want +got):\n%s", diff)
	}
}

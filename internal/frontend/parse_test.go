package frontend

import (
	"context"
	"testing"

	"vuejsx/internal/ast"
	"vuejsx/internal/diag"
	"vuejsx/internal/source"
	"vuejsx/internal/testkit"
)

func parseSource(t *testing.T, src string) (*ast.Builder, *ast.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.tsx", []byte(src))
	b := ast.NewBuilder(ast.Hints{}, nil)
	bag := diag.NewBag(100)
	fid, err := Parse(context.Background(), fs, fileID, b, diag.BagReporter{Bag: bag})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := testkit.CheckSpanInvariants(b, fid, fs.Get(fileID)); err != nil {
		t.Fatalf("span invariants: %v", err)
	}
	return b, b.Files.Get(fid), bag
}

func varInit(t *testing.T, b *ast.Builder, id ast.StmtID) ast.ExprID {
	t.Helper()
	v, ok := b.Stmts.Var(id)
	if !ok {
		t.Fatalf("statement %d is %s, want Var", id, b.Stmts.Get(id).Kind)
	}
	if len(v.Decls) != 1 {
		t.Fatalf("want 1 declarator, got %d", len(v.Decls))
	}
	return v.Decls[0].Init
}

func TestParseElement(t *testing.T) {
	src := "const a = 1;\nconst el = <div id=\"x\" onClick={handler}>hi {a}</div>;\n"
	b, file, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if len(file.Body) != 2 {
		t.Fatalf("want 2 statements, got %d", len(file.Body))
	}

	el, ok := b.Exprs.JSXElement(varInit(t, b, file.Body[1]))
	if !ok {
		t.Fatalf("init is not a JSX element")
	}
	if el.Name.Kind != ast.JSXNameIdent || b.IdentName(el.Name.Root) != "div" {
		t.Fatalf("unexpected tag name %+v", el.Name)
	}
	if len(el.Attrs) != 2 {
		t.Fatalf("want 2 attrs, got %d", len(el.Attrs))
	}

	id := b.Exprs.JSXAttr(el.Attrs[0])
	if b.Name(id.Name) != "id" || id.ValueKind != ast.JSXValueString {
		t.Fatalf("unexpected first attr %+v", id)
	}
	if v, _ := b.StringValue(id.Value); v != "x" {
		t.Fatalf("want id value x, got %q", v)
	}

	onClick := b.Exprs.JSXAttr(el.Attrs[1])
	if onClick.ValueKind != ast.JSXValueExpr {
		t.Fatalf("onClick value kind = %d", onClick.ValueKind)
	}
	handler, ok := b.Exprs.Ident(onClick.Value)
	if !ok || !handler.Unresolved {
		t.Fatalf("handler must be an unresolved identifier")
	}

	if len(el.Children) != 2 {
		t.Fatalf("want 2 children, got %d", len(el.Children))
	}
	text := b.Exprs.JSXChild(el.Children[0])
	if text.Kind != ast.JSXChildText || text.Text != "hi " {
		t.Fatalf("unexpected text child %+v", text)
	}
	ref := b.Exprs.JSXChild(el.Children[1])
	if ref.Kind != ast.JSXChildExpr {
		t.Fatalf("unexpected expression child %+v", ref)
	}
	a, ok := b.Exprs.Ident(ref.Expr)
	if !ok || a.Unresolved {
		t.Fatalf("a is declared in the file and must be resolved")
	}
}

func TestParseFragmentAndSpread(t *testing.T) {
	src := "const x = <><A {...props} />{/* note */}</>;\n"
	b, file, _ := parseSource(t, src)

	frag, ok := b.Exprs.JSXFragment(varInit(t, b, file.Body[0]))
	if !ok {
		t.Fatalf("init is not a fragment")
	}
	if len(frag.Children) != 2 {
		t.Fatalf("want 2 children, got %d", len(frag.Children))
	}
	child := b.Exprs.JSXChild(frag.Children[0])
	if child.Kind != ast.JSXChildElement {
		t.Fatalf("first child kind = %d", child.Kind)
	}
	el, _ := b.Exprs.JSXElement(child.Expr)
	if !el.SelfClosing || len(el.Attrs) != 1 {
		t.Fatalf("unexpected element %+v", el)
	}
	if spread := b.Exprs.JSXAttr(el.Attrs[0]); spread.Kind != ast.JSXAttrSpread || b.IdentName(spread.Value) != "props" {
		t.Fatalf("unexpected spread attr %+v", spread)
	}
	if empty := b.Exprs.JSXChild(frag.Children[1]); empty.Kind != ast.JSXChildEmpty {
		t.Fatalf("comment container must be empty, got kind %d", empty.Kind)
	}
	if len(file.Comments) != 1 || file.Comments[0].Text != " note " || !file.Comments[0].Block {
		t.Fatalf("unexpected comments %+v", file.Comments)
	}
}

func TestParseNamespacedAndMemberNames(t *testing.T) {
	src := "const x = <svg:rect xlink:href=\"#a\" />;\nconst y = <Foo.Bar.Baz />;\n"
	b, file, _ := parseSource(t, src)

	rect, _ := b.Exprs.JSXElement(varInit(t, b, file.Body[0]))
	if rect.Name.Kind != ast.JSXNameNamespaced || b.Name(rect.Name.NS) != "svg" || b.Name(rect.Name.Local) != "rect" {
		t.Fatalf("unexpected namespaced name %+v", rect.Name)
	}
	attr := b.Exprs.JSXAttr(rect.Attrs[0])
	if b.Name(attr.NS) != "xlink" || b.Name(attr.Name) != "href" {
		t.Fatalf("unexpected namespaced attr %+v", attr)
	}

	member, _ := b.Exprs.JSXElement(varInit(t, b, file.Body[1]))
	if member.Name.Kind != ast.JSXNameMember || b.IdentName(member.Name.Root) != "Foo" {
		t.Fatalf("unexpected member name %+v", member.Name)
	}
	if len(member.Name.Path) != 2 || b.Name(member.Name.Path[1]) != "Baz" {
		t.Fatalf("unexpected member path %v", member.Name.Path)
	}
}

func TestParseBindings(t *testing.T) {
	src := `import Vue, { ref as r } from "vue";
import * as ns from "./ns";
function Comp({ a, b: [c] }, ...rest) {}
class K {}
const { d = 1, ...e } = obj;
try {} catch (err) {}
`
	b, file, _ := parseSource(t, src)
	for _, name := range []string{"Vue", "r", "ns", "Comp", "a", "c", "rest", "K", "d", "e", "err"} {
		if !file.Declares(b.Intern(name)) {
			t.Errorf("%s must be bound", name)
		}
	}
	for _, name := range []string{"ref", "obj", "b"} {
		if file.Declares(b.Intern(name)) {
			t.Errorf("%s must not be bound", name)
		}
	}

	imp, ok := b.Stmts.Import(file.Body[0])
	if !ok {
		t.Fatalf("first statement is not an import")
	}
	if b.Name(imp.Source) != "vue" || len(imp.Specs) != 2 {
		t.Fatalf("unexpected import %+v", imp)
	}
	named := imp.Specs[1]
	if named.Kind != ast.ImportNamed || b.Name(named.Imported) != "ref" || b.Name(named.Local) != "r" {
		t.Fatalf("unexpected named spec %+v", named)
	}
}

func TestParseRawKeepsHoles(t *testing.T) {
	src := "if (ok) { render(<div />); }\n"
	b, file, _ := parseSource(t, src)
	raw, ok := b.Stmts.Raw(file.Body[0])
	if !ok {
		t.Fatalf("if statement must stay raw, got %s", b.Stmts.Get(file.Body[0]).Kind)
	}
	if raw.Text != "if (ok) { render(<div />); }" {
		t.Fatalf("unexpected raw text %q", raw.Text)
	}
	found := false
	for _, h := range raw.Holes {
		if h.Expr.IsValid() || h.Stmt.IsValid() {
			found = true
		}
	}
	if !found {
		t.Fatalf("raw statement must expose its modeled parts as holes")
	}
}

func TestParseReportsSyntaxErrors(t *testing.T) {
	_, _, bag := parseSource(t, "const = <div>;\n")
	if !bag.HasErrors() {
		t.Fatalf("expected a syntax error")
	}
}

package frontend

import (
	"strings"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"vuejsx/internal/ast"
)

func (c *converter) stmt(n sitter.Node) ast.StmtID {
	sp := c.span(n)
	switch n.Type() {
	case "expression_statement":
		kids := namedChildren(n)
		if len(kids) != 1 {
			return c.rawStmt(n)
		}
		return c.b.Stmts.NewExpr(sp, c.expr(kids[0]))
	case "lexical_declaration", "variable_declaration":
		return c.varDecl(n)
	case "return_statement":
		arg := ast.NoExprID
		if kids := namedChildren(n); len(kids) > 0 {
			arg = c.expr(kids[0])
		}
		return c.b.Stmts.NewReturn(sp, arg)
	case "statement_block":
		return c.block(n)
	case "function_declaration", "generator_function_declaration":
		return c.b.Stmts.NewFunc(sp, c.function(n))
	case "import_statement":
		return c.importDecl(n)
	case "export_statement":
		return c.exportDecl(n)
	case "interface_declaration":
		return c.interfaceDecl(n)
	case "type_alias_declaration":
		return c.typeAlias(n)
	default:
		return c.rawStmt(n)
	}
}

func (c *converter) block(n sitter.Node) ast.StmtID {
	kids := namedChildren(n)
	stmts := make([]ast.StmtID, 0, len(kids))
	for _, child := range kids {
		stmts = append(stmts, c.stmt(child))
	}
	return c.b.Stmts.NewBlock(c.span(n), stmts)
}

func (c *converter) varDecl(n sitter.Node) ast.StmtID {
	kind := "var"
	if k, ok := field(n, "kind"); ok {
		kind = c.text(k)
	}
	var decls []ast.VarDeclarator
	for _, child := range namedChildren(n) {
		// `let x!: T` не разложить обратно без потерь
		if child.Type() != "variable_declarator" || hasToken(child, "!") {
			return c.rawStmt(n)
		}
		d := ast.VarDeclarator{Span: c.span(child)}
		name, ok := field(child, "name")
		if !ok {
			return c.rawStmt(n)
		}
		if name.Type() == "identifier" {
			d.Target = c.b.Exprs.NewIdent(c.span(name), c.intern(name), false)
		} else {
			d.Target = c.rawExpr(name)
		}
		if typ, ok := field(child, "type"); ok {
			d.TypeAnn = c.text(typ)
		}
		if value, ok := field(child, "value"); ok {
			d.Init = c.expr(value)
		}
		decls = append(decls, d)
	}
	return c.b.Stmts.NewVar(c.span(n), kind, decls)
}

func (c *converter) importDecl(n sitter.Node) ast.StmtID {
	data := ast.StmtImportData{
		Text:     c.text(n),
		TypeOnly: hasToken(n, "type"),
	}
	if src, ok := field(n, "source"); ok {
		data.Source = c.b.Intern(unquote(c.text(src)))
	}
	for _, child := range namedChildren(n) {
		if child.Type() != "import_clause" {
			continue
		}
		for _, part := range namedChildren(child) {
			switch part.Type() {
			case "identifier":
				data.Specs = append(data.Specs, ast.ImportSpec{
					Kind:     ast.ImportDefault,
					Imported: c.b.Intern("default"),
					Local:    c.intern(part),
				})
			case "namespace_import":
				for _, id := range namedChildren(part) {
					data.Specs = append(data.Specs, ast.ImportSpec{
						Kind:  ast.ImportNamespace,
						Local: c.intern(id),
					})
				}
			case "named_imports":
				for _, spec := range namedChildren(part) {
					if spec.Type() != "import_specifier" {
						continue
					}
					data.Specs = append(data.Specs, c.importSpec(spec))
				}
			}
		}
	}
	return c.b.Stmts.NewImport(c.span(n), data)
}

func (c *converter) importSpec(n sitter.Node) ast.ImportSpec {
	spec := ast.ImportSpec{Kind: ast.ImportNamed, TypeOnly: hasToken(n, "type")}
	if name, ok := field(n, "name"); ok {
		if name.Type() == "string" {
			spec.Imported = c.b.Intern(unquote(c.text(name)))
		} else {
			spec.Imported = c.intern(name)
		}
		spec.Local = spec.Imported
	}
	if alias, ok := field(n, "alias"); ok {
		spec.Local = c.intern(alias)
	}
	return spec
}

func (c *converter) exportDecl(n sitter.Node) ast.StmtID {
	prefix := func(inner sitter.Node) string {
		return strings.TrimSpace(string(c.src[n.StartByte():inner.StartByte()]))
	}
	if decl, ok := field(n, "declaration"); ok {
		return c.b.Stmts.NewExport(c.span(n), ast.StmtExportData{
			Prefix: prefix(decl),
			Decl:   c.stmt(decl),
		})
	}
	if value, ok := field(n, "value"); ok {
		return c.b.Stmts.NewExport(c.span(n), ast.StmtExportData{
			Prefix: prefix(value),
			Expr:   c.expr(value),
		})
	}
	return c.rawStmt(n)
}

func (c *converter) interfaceDecl(n sitter.Node) ast.StmtID {
	data := ast.StmtInterfaceData{Text: c.text(n)}
	if name, ok := field(n, "name"); ok {
		data.Name = c.intern(name)
	}
	for _, child := range namedChildren(n) {
		if child.Type() != "extends_type_clause" {
			continue
		}
		for _, t := range namedChildren(child) {
			data.Extends = append(data.Extends, c.typeNode(t))
		}
	}
	if body, ok := field(n, "body"); ok {
		data.Members = c.members(body)
	}
	return c.b.Stmts.NewInterface(c.span(n), data)
}

func (c *converter) typeAlias(n sitter.Node) ast.StmtID {
	data := ast.StmtTypeAliasData{Text: c.text(n)}
	if name, ok := field(n, "name"); ok {
		data.Name = c.intern(name)
	}
	if value, ok := field(n, "value"); ok {
		data.Type = c.typeNode(value)
	}
	return c.b.Stmts.NewTypeAlias(c.span(n), data)
}

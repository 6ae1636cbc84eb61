package format

import (
	"strings"

	"vuejsx/internal/ast"
)

func (p *printer) printStmt(id ast.StmtID) {
	stmts := p.builder.Stmts
	stmt := stmts.Get(id)
	if stmt == nil {
		return
	}
	if p.cleanStmt(id) {
		p.writer.CopySpan(stmt.Span)
		return
	}

	switch stmt.Kind {
	case ast.StmtRaw:
		raw, _ := stmts.Raw(id)
		p.printRaw(raw.Text, raw.Holes)
	case ast.StmtExpr:
		s, _ := stmts.Expr(id)
		p.printExpr(s.Expr)
		p.writer.WriteString(";")
	case ast.StmtVar:
		v, _ := stmts.Var(id)
		p.writer.WriteString(v.Kind)
		p.writer.WriteString(" ")
		for i, d := range v.Decls {
			if i > 0 {
				p.writer.WriteString(", ")
			}
			p.printExpr(d.Target)
			p.writer.WriteString(d.TypeAnn)
			if d.Init.IsValid() {
				p.writer.WriteString(" = ")
				p.printExpr(d.Init)
			}
		}
		p.writer.WriteString(";")
	case ast.StmtReturn:
		r, _ := stmts.Return(id)
		p.writer.WriteString("return")
		if r.Arg.IsValid() {
			p.writer.WriteString(" ")
			p.printExpr(r.Arg)
		}
		p.writer.WriteString(";")
	case ast.StmtBlock:
		p.printBlock(id)
	case ast.StmtFunc:
		fn, _ := stmts.Func(id)
		if data, ok := p.builder.Exprs.Function(fn.Fn); ok {
			p.printFunction(data)
		} else {
			p.printExpr(fn.Fn)
		}
	case ast.StmtImport:
		imp, _ := stmts.Import(id)
		p.printImport(imp)
	case ast.StmtExport:
		exp, _ := stmts.Export(id)
		p.writer.WriteString(exp.Prefix)
		p.writer.WriteString(" ")
		if exp.Decl.IsValid() {
			p.printStmt(exp.Decl)
		} else {
			p.printExpr(exp.Expr)
			p.writer.WriteString(";")
		}
	case ast.StmtInterface:
		iface, _ := stmts.Interface(id)
		p.writer.WriteString(iface.Text)
	case ast.StmtTypeAlias:
		alias, _ := stmts.TypeAlias(id)
		p.writer.WriteString(alias.Text)
	default:
		p.writer.CopySpan(stmt.Span)
	}
}

// printBlock keeps the original text between statements of a source block.
// Synthesized statements take the indentation of the statement they precede.
func (p *printer) printBlock(id ast.StmtID) {
	stmt := p.builder.Stmts.Get(id)
	block, ok := p.builder.Stmts.Block(id)
	if stmt == nil || !ok {
		p.writer.WriteString("{}")
		return
	}
	if p.cleanStmt(id) {
		p.writer.CopySpan(stmt.Span)
		return
	}

	if !spanValid(stmt.Span) {
		base := p.writer.LineIndent()
		inner := base + p.writer.IndentStep()
		p.writer.WriteString("{")
		for _, s := range block.Stmts {
			p.writer.Newline(inner)
			p.printStmt(s)
		}
		p.writer.Newline(base)
		p.writer.WriteString("}")
		return
	}

	p.writer.WriteString("{")
	cursor := int(stmt.Span.Start) + 1
	for i, s := range block.Stmts {
		child := p.builder.Stmts.Get(s)
		if child == nil {
			continue
		}
		if !spanValid(child.Span) {
			p.writer.WriteString(p.leadIn(cursor, block.Stmts[i+1:], int(stmt.Span.End)-1))
			p.printStmt(s)
			continue
		}
		p.writer.CopyRange(cursor, int(child.Span.Start))
		p.printStmt(s)
		cursor = int(child.Span.End)
	}
	p.writer.CopyRange(cursor, int(stmt.Span.End)-1)
	p.writer.WriteString("}")
}

// leadIn returns the line break and indentation that precede the next
// source statement, or a single space when it shares the line.
func (p *printer) leadIn(cursor int, rest []ast.StmtID, end int) string {
	next := end
	for _, s := range rest {
		if st := p.builder.Stmts.Get(s); st != nil && spanValid(st.Span) {
			next = int(st.Span.Start)
			break
		}
	}
	gap := p.writer.Range(cursor, next)
	if i := strings.LastIndexByte(gap, '\n'); i >= 0 {
		tail := gap[i:]
		if strings.TrimLeft(tail, " \t\r\n") == "" {
			if next == end {
				return tail + p.writer.IndentStep()
			}
			return tail
		}
		return "\n" + p.writer.LineIndent() + p.writer.IndentStep()
	}
	return " "
}

func (p *printer) printImport(imp *ast.StmtImportData) {
	if imp.Text != "" {
		p.writer.WriteString(imp.Text)
		return
	}
	p.writer.WriteString("import ")
	if imp.TypeOnly {
		p.writer.WriteString("type ")
	}
	var named []ast.ImportSpec
	wrote := false
	for _, spec := range imp.Specs {
		switch spec.Kind {
		case ast.ImportDefault:
			p.writer.WriteString(p.name(spec.Local))
			wrote = true
		case ast.ImportNamespace:
			if wrote {
				p.writer.WriteString(", ")
			}
			p.writer.WriteString("* as " + p.name(spec.Local))
			wrote = true
		default:
			named = append(named, spec)
		}
	}
	if len(named) > 0 {
		if wrote {
			p.writer.WriteString(", ")
		}
		p.writer.WriteString("{ ")
		for i, spec := range named {
			if i > 0 {
				p.writer.WriteString(", ")
			}
			imported, local := p.name(spec.Imported), p.name(spec.Local)
			p.writer.WriteString(imported)
			if local != imported {
				p.writer.WriteString(" as " + local)
			}
		}
		p.writer.WriteString(" }")
	}
	p.writer.WriteString(" from ")
	p.writer.WriteString(Quote(p.name(imp.Source)))
	p.writer.WriteString(";")
}

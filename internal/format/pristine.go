package format

import (
	"vuejsx/internal/ast"
)

// Узел "чистый", если у него настоящий span и ни один потомок не был
// переписан: такой узел копируется из исходника как есть.

func (p *printer) cleanExpr(id ast.ExprID) bool {
	if !id.IsValid() {
		return true
	}
	if v, ok := p.exprClean[id]; ok {
		return v
	}
	// защита от циклов через Replace
	p.exprClean[id] = false
	v := p.computeCleanExpr(id)
	p.exprClean[id] = v
	return v
}

func (p *printer) computeCleanExpr(id ast.ExprID) bool {
	exprs := p.builder.Exprs
	expr := exprs.Get(id)
	if expr == nil {
		return true
	}
	if !spanValid(expr.Span) {
		return false
	}
	switch expr.Kind {
	case ast.ExprRaw:
		raw, _ := exprs.Raw(id)
		return p.cleanHoles(raw.Holes)
	case ast.ExprIdent, ast.ExprThis, ast.ExprString, ast.ExprNumber, ast.ExprBool,
		ast.ExprNull, ast.ExprJSXEmpty, ast.ExprJSXElement, ast.ExprJSXFragment:
		return true
	case ast.ExprArray:
		arr, _ := exprs.Array(id)
		for _, el := range arr.Elems {
			if !p.cleanExpr(el) {
				return false
			}
		}
		return true
	case ast.ExprObject:
		obj, _ := exprs.Object(id)
		for _, propID := range obj.Props {
			if !p.cleanProp(propID) {
				return false
			}
		}
		return true
	case ast.ExprMember:
		m, _ := exprs.Member(id)
		return p.cleanExpr(m.Object) && p.cleanExpr(m.Computed)
	case ast.ExprCall:
		call, _ := exprs.Call(id)
		if !p.cleanExpr(call.Callee) {
			return false
		}
		for _, arg := range call.Args {
			if !p.cleanExpr(arg) {
				return false
			}
		}
		return true
	case ast.ExprArrow:
		arrow, _ := exprs.Arrow(id)
		return p.cleanExpr(arrow.Sig.ParamsText) && p.cleanExpr(arrow.Body) && p.cleanStmt(arrow.Block)
	case ast.ExprFunction:
		fn, _ := exprs.Function(id)
		return p.cleanExpr(fn.Sig.ParamsText) && p.cleanStmt(fn.Block)
	case ast.ExprCond:
		c, _ := exprs.Cond(id)
		return p.cleanExpr(c.Test) && p.cleanExpr(c.Cons) && p.cleanExpr(c.Alt)
	case ast.ExprAssign:
		a, _ := exprs.Assign(id)
		return p.cleanExpr(a.Left) && p.cleanExpr(a.Right)
	case ast.ExprBinary:
		b, _ := exprs.Binary(id)
		return p.cleanExpr(b.Left) && p.cleanExpr(b.Right)
	case ast.ExprUnary:
		u, _ := exprs.Unary(id)
		return p.cleanExpr(u.Operand)
	case ast.ExprParen:
		paren, _ := exprs.Paren(id)
		return p.cleanExpr(paren.Inner)
	case ast.ExprSpread:
		s, _ := exprs.Spread(id)
		return p.cleanExpr(s.Arg)
	default:
		return false
	}
}

func (p *printer) cleanProp(id ast.PropID) bool {
	prop := p.builder.Exprs.Prop(id)
	if prop == nil {
		return true
	}
	if !spanValid(prop.Span) {
		return false
	}
	if prop.Key.Kind == ast.KeyComputed && !p.cleanExpr(prop.Key.Expr) {
		return false
	}
	return p.cleanExpr(prop.Value)
}

func (p *printer) cleanHoles(holes []ast.Hole) bool {
	for _, h := range holes {
		if h.Expr.IsValid() && !p.cleanExpr(h.Expr) {
			return false
		}
		if h.Stmt.IsValid() && !p.cleanStmt(h.Stmt) {
			return false
		}
	}
	return true
}

func (p *printer) cleanStmt(id ast.StmtID) bool {
	if !id.IsValid() {
		return true
	}
	if v, ok := p.stmtClean[id]; ok {
		return v
	}
	p.stmtClean[id] = false
	v := p.computeCleanStmt(id)
	p.stmtClean[id] = v
	return v
}

func (p *printer) computeCleanStmt(id ast.StmtID) bool {
	stmts := p.builder.Stmts
	stmt := stmts.Get(id)
	if stmt == nil {
		return true
	}
	if !spanValid(stmt.Span) {
		return false
	}
	switch stmt.Kind {
	case ast.StmtRaw:
		raw, _ := stmts.Raw(id)
		return p.cleanHoles(raw.Holes)
	case ast.StmtExpr:
		s, _ := stmts.Expr(id)
		return p.cleanExpr(s.Expr)
	case ast.StmtVar:
		v, _ := stmts.Var(id)
		for _, d := range v.Decls {
			if !spanValid(d.Span) || !p.cleanExpr(d.Target) || !p.cleanExpr(d.Init) {
				return false
			}
		}
		return true
	case ast.StmtReturn:
		r, _ := stmts.Return(id)
		return p.cleanExpr(r.Arg)
	case ast.StmtBlock:
		block, _ := stmts.Block(id)
		for _, s := range block.Stmts {
			if !p.cleanStmt(s) {
				return false
			}
		}
		return true
	case ast.StmtFunc:
		fn, _ := stmts.Func(id)
		return p.cleanExpr(fn.Fn)
	case ast.StmtImport:
		imp, _ := stmts.Import(id)
		return imp.Text != ""
	case ast.StmtExport:
		exp, _ := stmts.Export(id)
		return p.cleanStmt(exp.Decl) && p.cleanExpr(exp.Expr)
	case ast.StmtInterface, ast.StmtTypeAlias:
		return true
	default:
		return false
	}
}

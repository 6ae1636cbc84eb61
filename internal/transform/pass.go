package transform

import (
	"vuejsx/internal/ast"
	"vuejsx/internal/resolvetype"
	"vuejsx/internal/source"
)

// Обход в глубину: потомки раньше родителя, JSX заменяется на месте.

func (c *Context) visitStmts(ids []ast.StmtID) {
	for _, id := range append([]ast.StmtID(nil), ids...) {
		c.visitStmt(id)
	}
}

func (c *Context) visitStmt(id ast.StmtID) {
	if !id.IsValid() {
		return
	}
	stmts := c.b.Stmts
	switch stmts.Get(id).Kind {
	case ast.StmtRaw:
		raw, _ := stmts.Raw(id)
		c.visitHoles(raw.Holes)

	case ast.StmtExpr:
		s, _ := stmts.Expr(id)
		c.visitExpr(s.Expr)

	case ast.StmtVar:
		v, _ := stmts.Var(id)
		for _, d := range append([]ast.VarDeclarator(nil), v.Decls...) {
			c.visitExpr(d.Target)
			c.visitExpr(d.Init)
		}

	case ast.StmtReturn:
		r, _ := stmts.Return(id)
		c.visitExpr(r.Arg)

	case ast.StmtBlock:
		c.visitBlock(id)

	case ast.StmtFunc:
		fn, _ := stmts.Func(id)
		c.visitExpr(fn.Fn)

	case ast.StmtExport:
		ex, _ := stmts.Export(id)
		decl, expr := ex.Decl, ex.Expr
		c.visitStmt(decl)
		c.visitExpr(expr)

	case ast.StmtInterface:
		if c.cfg.ResolveType {
			iface, _ := stmts.Interface(id)
			c.types.DeclareInterface(iface.Name, iface.Extends, iface.Members)
		}

	case ast.StmtTypeAlias:
		if c.cfg.ResolveType {
			alias, _ := stmts.TypeAlias(id)
			c.types.DeclareAlias(alias.Name, alias.Type)
		}
	}
}

func (c *Context) visitHoles(holes []ast.Hole) {
	for _, h := range append([]ast.Hole(nil), holes...) {
		if h.Expr.IsValid() {
			c.visitExpr(h.Expr)
		}
		if h.Stmt.IsValid() {
			c.visitStmt(h.Stmt)
		}
	}
}

// visitBlock opens a type scope and a fresh temporaries list; temporaries
// created inside land in a `let` at the top of the block.
func (c *Context) visitBlock(id ast.StmtID) {
	block, _ := c.b.Stmts.Block(id)
	body := append([]ast.StmtID(nil), block.Stmts...)

	saved, savedCounter := c.pendingVars, c.slotCounter
	c.pendingVars, c.slotCounter = nil, 1
	c.types.Push()

	c.visitStmts(body)

	c.types.Pop()
	if decl, ok := c.takeVars(); ok {
		block, _ = c.b.Stmts.Block(id)
		block.Stmts = append([]ast.StmtID{decl}, block.Stmts...)
	}
	c.pendingVars, c.slotCounter = saved, savedCounter
}

func (c *Context) visitExpr(id ast.ExprID) {
	if !id.IsValid() {
		return
	}
	exprs := c.b.Exprs
	switch exprs.Get(id).Kind {
	case ast.ExprRaw:
		raw, _ := exprs.Raw(id)
		c.visitHoles(raw.Holes)

	case ast.ExprArray:
		arr, _ := exprs.Array(id)
		for _, el := range append([]ast.ExprID(nil), arr.Elems...) {
			c.visitExpr(el)
		}

	case ast.ExprObject:
		obj, _ := exprs.Object(id)
		for _, propID := range append([]ast.PropID(nil), obj.Props...) {
			p := *exprs.Prop(propID)
			if p.Key.Kind == ast.KeyComputed {
				c.visitExpr(p.Key.Expr)
			}
			c.visitExpr(p.Value)
		}

	case ast.ExprMember:
		m, _ := exprs.Member(id)
		object, computed := m.Object, m.Computed
		c.visitExpr(object)
		c.visitExpr(computed)

	case ast.ExprCall:
		call, _ := exprs.Call(id)
		callee := call.Callee
		args := append([]ast.ExprID(nil), call.Args...)
		c.visitExpr(callee)
		for _, arg := range args {
			c.visitExpr(arg)
		}
		c.inferComponent(id)

	case ast.ExprArrow:
		c.visitArrow(id)

	case ast.ExprFunction:
		fn, _ := exprs.Function(id)
		params, block := fn.Sig.ParamsText, fn.Block
		c.visitExpr(params)
		c.visitStmt(block)

	case ast.ExprCond:
		cond, _ := exprs.Cond(id)
		test, cons, alt := cond.Test, cond.Cons, cond.Alt
		c.visitExpr(test)
		c.visitExpr(cons)
		c.visitExpr(alt)

	case ast.ExprAssign:
		as, _ := exprs.Assign(id)
		left, right := as.Left, as.Right
		c.visitExpr(left)
		c.visitExpr(right)

	case ast.ExprBinary:
		bin, _ := exprs.Binary(id)
		left, right := bin.Left, bin.Right
		c.visitExpr(left)
		c.visitExpr(right)

	case ast.ExprUnary:
		u, _ := exprs.Unary(id)
		c.visitExpr(u.Operand)

	case ast.ExprParen:
		p, _ := exprs.Paren(id)
		c.visitExpr(p.Inner)

	case ast.ExprSpread:
		s, _ := exprs.Spread(id)
		c.visitExpr(s.Arg)

	case ast.ExprJSXElement, ast.ExprJSXFragment:
		compiled, _ := c.compileJSX(id)
		exprs.Replace(id, compiled)
	}
}

// visitArrow turns an expression body into a block when compiling it
// needed temporaries.
func (c *Context) visitArrow(id ast.ExprID) {
	data, _ := c.b.Exprs.Arrow(id)
	arrow := *data
	c.visitExpr(arrow.Sig.ParamsText)
	if arrow.Block.IsValid() {
		c.visitStmt(arrow.Block)
		return
	}

	saved, savedCounter := c.pendingVars, c.slotCounter
	c.pendingVars, c.slotCounter = nil, 1

	c.visitExpr(arrow.Body)

	if decl, ok := c.takeVars(); ok {
		ret := c.b.Stmts.NewReturn(source.Span{}, arrow.Body)
		block := c.b.Stmts.NewBlock(source.Span{}, []ast.StmtID{decl, ret})
		data, _ = c.b.Exprs.Arrow(id)
		data.Block = block
		data.Body = ast.NoExprID
	}
	c.pendingVars, c.slotCounter = saved, savedCounter
}

// inferComponent adds runtime props and emits to a defineComponent call
// whose setup function is annotated.
func (c *Context) inferComponent(id ast.ExprID) {
	if !c.cfg.ResolveType || !c.defineComponent {
		return
	}
	call, _ := c.b.Exprs.Call(id)
	callee, ok := c.b.Exprs.Ident(call.Callee)
	if !ok || callee.Unresolved || c.b.Name(callee.Name) != "defineComponent" {
		return
	}
	r := resolvetype.New(c.b, c.file, c.types, c.reporter, c.importVue)
	if r.Infer(id) {
		c.res.TypedComponents++
	}
}

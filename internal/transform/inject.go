package transform

import (
	"vuejsx/internal/ast"
	"vuejsx/internal/source"
)

// Run rewrites every JSX expression of fileID in place and prepends the
// imports and helpers the rewritten code refers to.
func Run(b *ast.Builder, fileID ast.FileID, opts Options) Result {
	c := NewContext(b, fileID, opts)
	c.visitStmts(c.file.Body)
	c.finish()
	return c.res
}

// finish prepends, in order: the vue import, the transformOn import,
// the slot helper and the module-level temporaries.
func (c *Context) finish() {
	var prelude []ast.StmtID

	// хелпер регистрирует isVNode, поэтому строится до импорта
	var helper ast.StmtID
	if c.slotHelper != "" {
		helper = c.buildSlotHelper()
	}

	if imp, ok := c.vueImport(); ok {
		prelude = append(prelude, imp)
	}
	if c.transformOn != "" {
		prelude = append(prelude, c.b.Stmts.NewImport(source.Span{}, ast.StmtImportData{
			Source: c.b.Intern(transformOnModule),
			Specs: []ast.ImportSpec{{
				Kind:  ast.ImportDefault,
				Local: c.b.Intern(c.transformOn),
			}},
		}))
	}
	if helper.IsValid() {
		prelude = append(prelude, helper)
	}
	if decl, ok := c.takeVars(); ok {
		prelude = append(prelude, decl)
	}

	c.res.Imports = c.imports.Sorted()
	c.res.TransformOnHelper = c.transformOn
	c.res.NeedsSlotHelper = c.slotHelper != ""

	if len(prelude) == 0 {
		return
	}
	file := c.b.Files.Get(c.fileID)
	file.Body = append(prelude, file.Body...)
}

func (c *Context) vueImport() (ast.StmtID, bool) {
	var specs []ast.ImportSpec
	for _, imp := range c.imports.Sorted() {
		if imp.Existing {
			continue
		}
		specs = append(specs, ast.ImportSpec{
			Kind:     ast.ImportNamed,
			Imported: c.b.Intern(imp.Name),
			Local:    c.b.Intern(imp.Local),
		})
	}
	if len(specs) == 0 {
		return ast.NoStmtID, false
	}
	return c.b.Stmts.NewImport(source.Span{}, ast.StmtImportData{
		Source: c.b.Intern(vueModule),
		Specs:  specs,
	}), true
}

// buildSlotHelper emits
//
//	function _isSlot(s) {
//	  return typeof s === "function" || Object.prototype.toString.call(s) === "[object Object]" && !_isVNode(s);
//	}
func (c *Context) buildSlotHelper() ast.StmtID {
	exprs := c.b.Exprs
	none := source.Span{}
	isVNode := c.importVue("isVNode")
	param := exprs.NewParam(ast.Param{Kind: ast.ParamIdent, Name: c.b.Intern("s")})

	isFunction := exprs.NewBinary(none, "===",
		exprs.NewUnary(none, "typeof", c.b.Ident("s")),
		c.b.Str("function"))

	toString := exprs.NewMember(none,
		exprs.NewMember(none,
			exprs.NewMember(none, c.b.Ident("Object"), c.b.Intern("prototype")),
			c.b.Intern("toString")),
		c.b.Intern("call"))
	isObject := exprs.NewBinary(none, "===",
		c.b.Call(toString, c.b.Ident("s")),
		c.b.Str("[object Object]"))
	notVNode := exprs.NewUnary(none, "!", c.b.Call(isVNode, c.b.Ident("s")))

	test := exprs.NewBinary(none, "||", isFunction, exprs.NewBinary(none, "&&", isObject, notVNode))
	body := c.b.Stmts.NewBlock(none, []ast.StmtID{c.b.Stmts.NewReturn(none, test)})
	fn := exprs.NewFunction(none, ast.ExprFunctionData{
		Name:  c.b.Intern(c.slotHelper),
		Sig:   ast.FuncSig{Params: []ast.ParamID{param}},
		Block: body,
	})
	return c.b.Stmts.NewFunc(none, fn)
}

package format

import (
	"vuejsx/internal/ast"
)

func (p *printer) printArrow(id ast.ExprID) {
	arrow, _ := p.builder.Exprs.Arrow(id)
	if arrow.Sig.Async {
		p.writer.WriteString("async ")
	}
	p.printSigTail(arrow.Sig)
	p.writer.WriteString(" => ")
	if arrow.Block.IsValid() {
		p.printBlock(arrow.Block)
		return
	}
	if body := p.builder.Exprs.Get(arrow.Body); body != nil && body.Kind == ast.ExprObject {
		p.writer.WriteString("(")
		p.printExpr(arrow.Body)
		p.writer.WriteString(")")
		return
	}
	p.printExpr(arrow.Body)
}

func (p *printer) printFunction(fn *ast.ExprFunctionData) {
	if fn.Sig.Async {
		p.writer.WriteString("async ")
	}
	p.writer.WriteString("function")
	if fn.Sig.Generator {
		p.writer.WriteString("*")
	}
	if fn.Name != 0 {
		p.writer.WriteString(" ")
		p.writer.WriteString(p.name(fn.Name))
	}
	p.printSigTail(fn.Sig)
	p.writer.WriteString(" ")
	p.printBlock(fn.Block)
}

// printSigTail writes `<T>(params): R`.
func (p *printer) printSigTail(sig ast.FuncSig) {
	p.writer.WriteString(sig.TypeParams)
	if sig.ParamsText.IsValid() {
		p.printExpr(sig.ParamsText)
	} else {
		p.writer.WriteString("(")
		for i, paramID := range sig.Params {
			if i > 0 {
				p.writer.WriteString(", ")
			}
			if param := p.builder.Exprs.Param(paramID); param != nil {
				p.writer.WriteString(p.name(param.Name))
			}
		}
		p.writer.WriteString(")")
	}
	p.writer.WriteString(sig.ReturnType)
}

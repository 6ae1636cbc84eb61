package ast

import (
	"vuejsx/internal/source"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena     *Arena[Expr]
	Raws      *Arena[ExprRawData]
	Idents    *Arena[ExprIdentData]
	Strings   *Arena[ExprStringData]
	Numbers   *Arena[ExprNumberData]
	Bools     *Arena[ExprBoolData]
	Arrays    *Arena[ExprArrayData]
	Objects   *Arena[ExprObjectData]
	Members   *Arena[ExprMemberData]
	Calls     *Arena[ExprCallData]
	Arrows    *Arena[ExprArrowData]
	Functions *Arena[ExprFunctionData]
	Conds     *Arena[ExprCondData]
	Assigns   *Arena[ExprAssignData]
	Binaries  *Arena[ExprBinaryData]
	Unaries   *Arena[ExprUnaryData]
	Parens    *Arena[ExprParenData]
	Spreads   *Arena[ExprSpreadData]
	Elements  *Arena[ExprJSXElementData]
	Fragments *Arena[ExprJSXFragmentData]

	Props     *Arena[Prop]
	Params    *Arena[Param]
	JSXAttrs  *Arena[JSXAttr]
	JSXChilds *Arena[JSXChild]
}

// NewExprs creates a new Exprs with per-kind arenas preallocated using capHint.
// Rare kinds get a quarter of the hint.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint/4 + 1
	return &Exprs{
		Arena:     NewArena[Expr](capHint),
		Raws:      NewArena[ExprRawData](capHint),
		Idents:    NewArena[ExprIdentData](capHint),
		Strings:   NewArena[ExprStringData](capHint),
		Numbers:   NewArena[ExprNumberData](small),
		Bools:     NewArena[ExprBoolData](small),
		Arrays:    NewArena[ExprArrayData](small),
		Objects:   NewArena[ExprObjectData](small),
		Members:   NewArena[ExprMemberData](capHint),
		Calls:     NewArena[ExprCallData](capHint),
		Arrows:    NewArena[ExprArrowData](small),
		Functions: NewArena[ExprFunctionData](small),
		Conds:     NewArena[ExprCondData](small),
		Assigns:   NewArena[ExprAssignData](small),
		Binaries:  NewArena[ExprBinaryData](small),
		Unaries:   NewArena[ExprUnaryData](small),
		Parens:    NewArena[ExprParenData](small),
		Spreads:   NewArena[ExprSpreadData](small),
		Elements:  NewArena[ExprJSXElementData](small),
		Fragments: NewArena[ExprJSXFragmentData](small),
		Props:     NewArena[Prop](capHint),
		Params:    NewArena[Param](small),
		JSXAttrs:  NewArena[JSXAttr](capHint),
		JSXChilds: NewArena[JSXChild](capHint),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// Replace overwrites dst with the header of src. Every reference to dst
// observes the new node; src stays allocated but unreferenced.
func (e *Exprs) Replace(dst, src ExprID) {
	if dst == src {
		return
	}
	d, s := e.Get(dst), e.Get(src)
	if d == nil || s == nil {
		return
	}
	*d = *s
}

func (e *Exprs) payload(id ExprID, kind ExprKind) (uint32, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != kind {
		return 0, false
	}
	return uint32(expr.Payload), true
}

// NewRaw creates verbatim text with embedded holes.
func (e *Exprs) NewRaw(span source.Span, text string, holes []Hole) ExprID {
	payload := e.Raws.Allocate(ExprRawData{Text: text, Holes: holes})
	return e.new(ExprRaw, span, payload)
}

func (e *Exprs) Raw(id ExprID) (*ExprRawData, bool) {
	p, ok := e.payload(id, ExprRaw)
	if !ok {
		return nil, false
	}
	return e.Raws.Get(p), true
}

// NewIdent creates a new identifier expression.
func (e *Exprs) NewIdent(span source.Span, name source.StringID, unresolved bool) ExprID {
	payload := e.Idents.Allocate(ExprIdentData{Name: name, Unresolved: unresolved})
	return e.new(ExprIdent, span, payload)
}

// Ident returns the identifier data for the given expression ID.
func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	p, ok := e.payload(id, ExprIdent)
	if !ok {
		return nil, false
	}
	return e.Idents.Get(p), true
}

func (e *Exprs) NewThis(span source.Span) ExprID {
	return e.new(ExprThis, span, 0)
}

func (e *Exprs) NewNull(span source.Span) ExprID {
	return e.new(ExprNull, span, 0)
}

func (e *Exprs) NewJSXEmpty(span source.Span) ExprID {
	return e.new(ExprJSXEmpty, span, 0)
}

// NewString creates a string literal; raw is empty for synthesized strings.
func (e *Exprs) NewString(span source.Span, value source.StringID, raw string) ExprID {
	payload := e.Strings.Allocate(ExprStringData{Value: value, Raw: raw})
	return e.new(ExprString, span, payload)
}

// StringLit returns the string literal data for the given expression ID.
func (e *Exprs) StringLit(id ExprID) (*ExprStringData, bool) {
	p, ok := e.payload(id, ExprString)
	if !ok {
		return nil, false
	}
	return e.Strings.Get(p), true
}

func (e *Exprs) NewNumber(span source.Span, raw string, value float64) ExprID {
	payload := e.Numbers.Allocate(ExprNumberData{Raw: raw, Value: value})
	return e.new(ExprNumber, span, payload)
}

func (e *Exprs) Number(id ExprID) (*ExprNumberData, bool) {
	p, ok := e.payload(id, ExprNumber)
	if !ok {
		return nil, false
	}
	return e.Numbers.Get(p), true
}

func (e *Exprs) NewBool(span source.Span, value bool) ExprID {
	payload := e.Bools.Allocate(ExprBoolData{Value: value})
	return e.new(ExprBool, span, payload)
}

func (e *Exprs) Bool(id ExprID) (*ExprBoolData, bool) {
	p, ok := e.payload(id, ExprBool)
	if !ok {
		return nil, false
	}
	return e.Bools.Get(p), true
}

func (e *Exprs) NewArray(span source.Span, elems []ExprID) ExprID {
	payload := e.Arrays.Allocate(ExprArrayData{Elems: elems})
	return e.new(ExprArray, span, payload)
}

func (e *Exprs) Array(id ExprID) (*ExprArrayData, bool) {
	p, ok := e.payload(id, ExprArray)
	if !ok {
		return nil, false
	}
	return e.Arrays.Get(p), true
}

func (e *Exprs) NewObject(span source.Span, props []PropID) ExprID {
	payload := e.Objects.Allocate(ExprObjectData{Props: props})
	return e.new(ExprObject, span, payload)
}

func (e *Exprs) Object(id ExprID) (*ExprObjectData, bool) {
	p, ok := e.payload(id, ExprObject)
	if !ok {
		return nil, false
	}
	return e.Objects.Get(p), true
}

func (e *Exprs) NewProp(prop Prop) PropID {
	return PropID(e.Props.Allocate(prop))
}

func (e *Exprs) Prop(id PropID) *Prop {
	return e.Props.Get(uint32(id))
}

func (e *Exprs) NewParam(param Param) ParamID {
	return ParamID(e.Params.Allocate(param))
}

func (e *Exprs) Param(id ParamID) *Param {
	return e.Params.Get(uint32(id))
}

// NewMember creates `object.property`.
func (e *Exprs) NewMember(span source.Span, object ExprID, property source.StringID) ExprID {
	payload := e.Members.Allocate(ExprMemberData{Object: object, Property: property})
	return e.new(ExprMember, span, payload)
}

// NewComputedMember creates `object[index]`.
func (e *Exprs) NewComputedMember(span source.Span, object, index ExprID) ExprID {
	payload := e.Members.Allocate(ExprMemberData{Object: object, Computed: index})
	return e.new(ExprMember, span, payload)
}

func (e *Exprs) Member(id ExprID) (*ExprMemberData, bool) {
	p, ok := e.payload(id, ExprMember)
	if !ok {
		return nil, false
	}
	return e.Members.Get(p), true
}

func (e *Exprs) NewCall(span source.Span, data ExprCallData) ExprID {
	payload := e.Calls.Allocate(data)
	return e.new(ExprCall, span, payload)
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	p, ok := e.payload(id, ExprCall)
	if !ok {
		return nil, false
	}
	return e.Calls.Get(p), true
}

func (e *Exprs) NewArrow(span source.Span, data ExprArrowData) ExprID {
	payload := e.Arrows.Allocate(data)
	return e.new(ExprArrow, span, payload)
}

func (e *Exprs) Arrow(id ExprID) (*ExprArrowData, bool) {
	p, ok := e.payload(id, ExprArrow)
	if !ok {
		return nil, false
	}
	return e.Arrows.Get(p), true
}

func (e *Exprs) NewFunction(span source.Span, data ExprFunctionData) ExprID {
	payload := e.Functions.Allocate(data)
	return e.new(ExprFunction, span, payload)
}

func (e *Exprs) Function(id ExprID) (*ExprFunctionData, bool) {
	p, ok := e.payload(id, ExprFunction)
	if !ok {
		return nil, false
	}
	return e.Functions.Get(p), true
}

func (e *Exprs) NewCond(span source.Span, test, cons, alt ExprID) ExprID {
	payload := e.Conds.Allocate(ExprCondData{Test: test, Cons: cons, Alt: alt})
	return e.new(ExprCond, span, payload)
}

func (e *Exprs) Cond(id ExprID) (*ExprCondData, bool) {
	p, ok := e.payload(id, ExprCond)
	if !ok {
		return nil, false
	}
	return e.Conds.Get(p), true
}

func (e *Exprs) NewAssign(span source.Span, op string, left, right ExprID) ExprID {
	payload := e.Assigns.Allocate(ExprAssignData{Op: op, Left: left, Right: right})
	return e.new(ExprAssign, span, payload)
}

func (e *Exprs) Assign(id ExprID) (*ExprAssignData, bool) {
	p, ok := e.payload(id, ExprAssign)
	if !ok {
		return nil, false
	}
	return e.Assigns.Get(p), true
}

func (e *Exprs) NewBinary(span source.Span, op string, left, right ExprID) ExprID {
	payload := e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right})
	return e.new(ExprBinary, span, payload)
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	p, ok := e.payload(id, ExprBinary)
	if !ok {
		return nil, false
	}
	return e.Binaries.Get(p), true
}

func (e *Exprs) NewUnary(span source.Span, op string, operand ExprID) ExprID {
	payload := e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand})
	return e.new(ExprUnary, span, payload)
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	p, ok := e.payload(id, ExprUnary)
	if !ok {
		return nil, false
	}
	return e.Unaries.Get(p), true
}

func (e *Exprs) NewParen(span source.Span, inner ExprID) ExprID {
	payload := e.Parens.Allocate(ExprParenData{Inner: inner})
	return e.new(ExprParen, span, payload)
}

func (e *Exprs) Paren(id ExprID) (*ExprParenData, bool) {
	p, ok := e.payload(id, ExprParen)
	if !ok {
		return nil, false
	}
	return e.Parens.Get(p), true
}

func (e *Exprs) NewSpread(span source.Span, arg ExprID) ExprID {
	payload := e.Spreads.Allocate(ExprSpreadData{Arg: arg})
	return e.new(ExprSpread, span, payload)
}

func (e *Exprs) Spread(id ExprID) (*ExprSpreadData, bool) {
	p, ok := e.payload(id, ExprSpread)
	if !ok {
		return nil, false
	}
	return e.Spreads.Get(p), true
}

func (e *Exprs) NewJSXElement(span source.Span, data ExprJSXElementData) ExprID {
	payload := e.Elements.Allocate(data)
	return e.new(ExprJSXElement, span, payload)
}

func (e *Exprs) JSXElement(id ExprID) (*ExprJSXElementData, bool) {
	p, ok := e.payload(id, ExprJSXElement)
	if !ok {
		return nil, false
	}
	return e.Elements.Get(p), true
}

func (e *Exprs) NewJSXFragment(span source.Span, children []JSXChildID) ExprID {
	payload := e.Fragments.Allocate(ExprJSXFragmentData{Children: children})
	return e.new(ExprJSXFragment, span, payload)
}

func (e *Exprs) JSXFragment(id ExprID) (*ExprJSXFragmentData, bool) {
	p, ok := e.payload(id, ExprJSXFragment)
	if !ok {
		return nil, false
	}
	return e.Fragments.Get(p), true
}

func (e *Exprs) NewJSXAttr(attr JSXAttr) JSXAttrID {
	return JSXAttrID(e.JSXAttrs.Allocate(attr))
}

func (e *Exprs) JSXAttr(id JSXAttrID) *JSXAttr {
	return e.JSXAttrs.Get(uint32(id))
}

func (e *Exprs) NewJSXChild(child JSXChild) JSXChildID {
	return JSXChildID(e.JSXChilds.Allocate(child))
}

func (e *Exprs) JSXChild(id JSXChildID) *JSXChild {
	return e.JSXChilds.Get(uint32(id))
}

package ast

import (
	"vuejsx/internal/source"
)

type ExprKind uint8

const (
	// ExprRaw is source text kept verbatim; modeled sub-nodes are Holes.
	ExprRaw ExprKind = iota
	ExprIdent
	ExprThis
	ExprString
	ExprNumber
	ExprBool
	ExprNull
	ExprArray
	ExprObject
	ExprMember
	ExprCall
	ExprArrow
	ExprFunction
	ExprCond
	ExprAssign
	ExprBinary
	ExprUnary
	ExprParen
	ExprSpread
	ExprJSXElement
	ExprJSXFragment
	ExprJSXEmpty
)

func (k ExprKind) String() string {
	switch k {
	case ExprRaw:
		return "Raw"
	case ExprIdent:
		return "Ident"
	case ExprThis:
		return "This"
	case ExprString:
		return "String"
	case ExprNumber:
		return "Number"
	case ExprBool:
		return "Bool"
	case ExprNull:
		return "Null"
	case ExprArray:
		return "Array"
	case ExprObject:
		return "Object"
	case ExprMember:
		return "Member"
	case ExprCall:
		return "Call"
	case ExprArrow:
		return "Arrow"
	case ExprFunction:
		return "Function"
	case ExprCond:
		return "Cond"
	case ExprAssign:
		return "Assign"
	case ExprBinary:
		return "Binary"
	case ExprUnary:
		return "Unary"
	case ExprParen:
		return "Paren"
	case ExprSpread:
		return "Spread"
	case ExprJSXElement:
		return "JSXElement"
	case ExprJSXFragment:
		return "JSXFragment"
	case ExprJSXEmpty:
		return "JSXEmpty"
	default:
		return "Unknown"
	}
}

// Expr is a node header. Synthesized nodes carry the zero span.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// Hole is a modeled node embedded into raw text.
// Exactly one of Expr and Stmt is valid.
type Hole struct {
	Offset uint32 // от начала Text
	Len    uint32
	Expr   ExprID
	Stmt   StmtID
}

type ExprRawData struct {
	Text  string
	Holes []Hole
}

type ExprIdentData struct {
	Name source.StringID
	// Unresolved is set when the name has no declaration in the file.
	Unresolved bool
}

type ExprStringData struct {
	Value source.StringID
	// Raw is the quoted source form; empty for synthesized strings.
	Raw string
}

type ExprNumberData struct {
	Raw   string
	Value float64
}

type ExprBoolData struct {
	Value bool
}

type ExprArrayData struct {
	// NoExprID marks an elision.
	Elems []ExprID
}

type ExprObjectData struct {
	Props []PropID
}

type ExprMemberData struct {
	Object   ExprID
	Property source.StringID
	Computed ExprID
	Optional bool
}

type ExprCallData struct {
	Callee   ExprID
	Args     []ExprID
	TypeArgs string
	New      bool
	Optional bool
}

// FuncSig is shared by arrows, functions and methods.
type FuncSig struct {
	Params []ParamID
	// ParamsText is the verbatim parameter list; synthesized functions
	// leave it empty and print Params by name.
	ParamsText ExprID
	TypeParams string
	ReturnType string
	Async      bool
	Generator  bool
}

type ExprArrowData struct {
	Sig FuncSig
	// Ровно одно из Body/Block задано.
	Body  ExprID
	Block StmtID
}

type ExprFunctionData struct {
	Name  source.StringID
	Sig   FuncSig
	Block StmtID
}

type ExprCondData struct {
	Test, Cons, Alt ExprID
}

type ExprAssignData struct {
	Op          string
	Left, Right ExprID
}

type ExprBinaryData struct {
	Op          string
	Left, Right ExprID
}

type ExprUnaryData struct {
	Op      string
	Operand ExprID
}

type ExprParenData struct {
	Inner ExprID
}

type ExprSpreadData struct {
	Arg ExprID
}

type PropKind uint8

const (
	PropKeyValue PropKind = iota
	PropShorthand
	PropSpread
	PropMethod
	PropGetter
	PropSetter
)

type PropKeyKind uint8

const (
	KeyIdent PropKeyKind = iota
	KeyString
	KeyNumber
	KeyComputed
)

type PropKey struct {
	Kind PropKeyKind
	Name source.StringID // ident name or decoded string value
	Raw  string          // source spelling for strings and numbers
	Expr ExprID          // computed key
}

// Prop is an object literal member. Value holds the value, the shorthand
// identifier, the spread argument, or an ExprFunction for methods.
type Prop struct {
	Kind  PropKind
	Span  source.Span
	Key   PropKey
	Value ExprID
}

type ParamKind uint8

const (
	ParamIdent ParamKind = iota
	ParamObject
	ParamArray
	ParamAssign
	ParamRest
	ParamOther
)

// Param describes one formal parameter for type inference.
type Param struct {
	Kind ParamKind
	Span source.Span
	Name source.StringID
	// Type is the annotation of the pattern (the left side for ParamAssign).
	Type    TypeID
	Default ExprID
}

package ast

import (
	"vuejsx/internal/source"
)

type JSXNameKind uint8

const (
	JSXNameIdent JSXNameKind = iota
	JSXNameMember
	JSXNameNamespaced
)

// JSXName is the tag of an opening element.
type JSXName struct {
	Kind JSXNameKind
	Span source.Span
	// Root is the identifier for JSXNameIdent and the object of a member
	// path (ExprIdent or ExprThis) for JSXNameMember.
	Root  ExprID
	Path  []source.StringID // A.B.C -> [B, C]
	NS    source.StringID
	Local source.StringID
}

type ExprJSXElementData struct {
	Name        JSXName
	Attrs       []JSXAttrID
	Children    []JSXChildID
	SelfClosing bool
}

type ExprJSXFragmentData struct {
	Children []JSXChildID
}

type JSXAttrKind uint8

const (
	JSXAttrNamed JSXAttrKind = iota
	JSXAttrSpread
)

type JSXValueKind uint8

const (
	JSXValueNone JSXValueKind = iota
	JSXValueString
	JSXValueExpr
	JSXValueEmpty
	JSXValueElement
)

// JSXAttr is one attribute. For `ns:name` NS is set and Name is the local part.
// Value is an ExprString, the container expression, an ExprJSXEmpty,
// an element or fragment, or the spread argument.
type JSXAttr struct {
	Kind      JSXAttrKind
	Span      source.Span
	Name      source.StringID
	NS        source.StringID
	ValueKind JSXValueKind
	Value     ExprID
}

type JSXChildKind uint8

const (
	JSXChildText JSXChildKind = iota
	JSXChildExpr
	JSXChildEmpty
	JSXChildSpread
	JSXChildElement
	JSXChildFragment
)

type JSXChild struct {
	Kind JSXChildKind
	Span source.Span
	Text string // raw text for JSXChildText
	Expr ExprID
}

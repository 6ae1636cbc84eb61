package ast

import (
	"vuejsx/internal/source"
)

type StmtKind uint8

const (
	StmtRaw StmtKind = iota
	StmtExpr
	StmtVar
	StmtReturn
	StmtBlock
	StmtFunc
	StmtImport
	StmtExport
	StmtInterface
	StmtTypeAlias
)

func (k StmtKind) String() string {
	switch k {
	case StmtRaw:
		return "Raw"
	case StmtExpr:
		return "Expr"
	case StmtVar:
		return "Var"
	case StmtReturn:
		return "Return"
	case StmtBlock:
		return "Block"
	case StmtFunc:
		return "Func"
	case StmtImport:
		return "Import"
	case StmtExport:
		return "Export"
	case StmtInterface:
		return "Interface"
	case StmtTypeAlias:
		return "TypeAlias"
	default:
		return "Unknown"
	}
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type StmtRawData struct {
	Text  string
	Holes []Hole
}

type StmtExprData struct {
	Expr ExprID
}

type VarDeclarator struct {
	Span source.Span
	// Target is an ExprIdent or a raw pattern.
	Target  ExprID
	TypeAnn string
	Init    ExprID
}

type StmtVarData struct {
	Kind  string // var, let, const
	Decls []VarDeclarator
}

type StmtReturnData struct {
	Arg ExprID
}

type StmtBlockData struct {
	Stmts []StmtID
}

type StmtFuncData struct {
	Fn ExprID // ExprFunction
}

type ImportSpecKind uint8

const (
	ImportNamed ImportSpecKind = iota
	ImportDefault
	ImportNamespace
)

type ImportSpec struct {
	Kind     ImportSpecKind
	Imported source.StringID
	Local    source.StringID
	TypeOnly bool
}

// StmtImportData keeps Text for source imports; synthesized imports have
// empty Text and are printed from Specs.
type StmtImportData struct {
	Source   source.StringID
	Specs    []ImportSpec
	TypeOnly bool
	Text     string
}

type StmtExportData struct {
	Prefix string // "export" or "export default"
	Decl   StmtID
	Expr   ExprID
}

type StmtInterfaceData struct {
	Name    source.StringID
	Extends []TypeID
	Members []TypeMemberID
	Text    string
}

type StmtTypeAliasData struct {
	Name source.StringID
	Type TypeID
	Text string
}

// Stmts manages allocation of statements.
type Stmts struct {
	Arena      *Arena[Stmt]
	Raws       *Arena[StmtRawData]
	Exprs      *Arena[StmtExprData]
	Vars       *Arena[StmtVarData]
	Returns    *Arena[StmtReturnData]
	Blocks     *Arena[StmtBlockData]
	Funcs      *Arena[StmtFuncData]
	Imports    *Arena[StmtImportData]
	Exports    *Arena[StmtExportData]
	Interfaces *Arena[StmtInterfaceData]
	Aliases    *Arena[StmtTypeAliasData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint/4 + 1
	return &Stmts{
		Arena:      NewArena[Stmt](capHint),
		Raws:       NewArena[StmtRawData](capHint),
		Exprs:      NewArena[StmtExprData](capHint),
		Vars:       NewArena[StmtVarData](capHint),
		Returns:    NewArena[StmtReturnData](small),
		Blocks:     NewArena[StmtBlockData](capHint),
		Funcs:      NewArena[StmtFuncData](small),
		Imports:    NewArena[StmtImportData](small),
		Exports:    NewArena[StmtExportData](small),
		Interfaces: NewArena[StmtInterfaceData](small),
		Aliases:    NewArena[StmtTypeAliasData](small),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload uint32) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) payload(id StmtID, kind StmtKind) (uint32, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != kind {
		return 0, false
	}
	return uint32(stmt.Payload), true
}

func (s *Stmts) NewRaw(span source.Span, text string, holes []Hole) StmtID {
	return s.new(StmtRaw, span, s.Raws.Allocate(StmtRawData{Text: text, Holes: holes}))
}

func (s *Stmts) Raw(id StmtID) (*StmtRawData, bool) {
	p, ok := s.payload(id, StmtRaw)
	if !ok {
		return nil, false
	}
	return s.Raws.Get(p), true
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	return s.new(StmtExpr, span, s.Exprs.Allocate(StmtExprData{Expr: expr}))
}

func (s *Stmts) Expr(id StmtID) (*StmtExprData, bool) {
	p, ok := s.payload(id, StmtExpr)
	if !ok {
		return nil, false
	}
	return s.Exprs.Get(p), true
}

func (s *Stmts) NewVar(span source.Span, kind string, decls []VarDeclarator) StmtID {
	return s.new(StmtVar, span, s.Vars.Allocate(StmtVarData{Kind: kind, Decls: decls}))
}

func (s *Stmts) Var(id StmtID) (*StmtVarData, bool) {
	p, ok := s.payload(id, StmtVar)
	if !ok {
		return nil, false
	}
	return s.Vars.Get(p), true
}

func (s *Stmts) NewReturn(span source.Span, arg ExprID) StmtID {
	return s.new(StmtReturn, span, s.Returns.Allocate(StmtReturnData{Arg: arg}))
}

func (s *Stmts) Return(id StmtID) (*StmtReturnData, bool) {
	p, ok := s.payload(id, StmtReturn)
	if !ok {
		return nil, false
	}
	return s.Returns.Get(p), true
}

func (s *Stmts) NewBlock(span source.Span, stmts []StmtID) StmtID {
	return s.new(StmtBlock, span, s.Blocks.Allocate(StmtBlockData{Stmts: stmts}))
}

func (s *Stmts) Block(id StmtID) (*StmtBlockData, bool) {
	p, ok := s.payload(id, StmtBlock)
	if !ok {
		return nil, false
	}
	return s.Blocks.Get(p), true
}

func (s *Stmts) NewFunc(span source.Span, fn ExprID) StmtID {
	return s.new(StmtFunc, span, s.Funcs.Allocate(StmtFuncData{Fn: fn}))
}

func (s *Stmts) Func(id StmtID) (*StmtFuncData, bool) {
	p, ok := s.payload(id, StmtFunc)
	if !ok {
		return nil, false
	}
	return s.Funcs.Get(p), true
}

func (s *Stmts) NewImport(span source.Span, data StmtImportData) StmtID {
	return s.new(StmtImport, span, s.Imports.Allocate(data))
}

func (s *Stmts) Import(id StmtID) (*StmtImportData, bool) {
	p, ok := s.payload(id, StmtImport)
	if !ok {
		return nil, false
	}
	return s.Imports.Get(p), true
}

func (s *Stmts) NewExport(span source.Span, data StmtExportData) StmtID {
	return s.new(StmtExport, span, s.Exports.Allocate(data))
}

func (s *Stmts) Export(id StmtID) (*StmtExportData, bool) {
	p, ok := s.payload(id, StmtExport)
	if !ok {
		return nil, false
	}
	return s.Exports.Get(p), true
}

func (s *Stmts) NewInterface(span source.Span, data StmtInterfaceData) StmtID {
	return s.new(StmtInterface, span, s.Interfaces.Allocate(data))
}

func (s *Stmts) Interface(id StmtID) (*StmtInterfaceData, bool) {
	p, ok := s.payload(id, StmtInterface)
	if !ok {
		return nil, false
	}
	return s.Interfaces.Get(p), true
}

func (s *Stmts) NewTypeAlias(span source.Span, data StmtTypeAliasData) StmtID {
	return s.new(StmtTypeAlias, span, s.Aliases.Allocate(data))
}

func (s *Stmts) TypeAlias(id StmtID) (*StmtTypeAliasData, bool) {
	p, ok := s.payload(id, StmtTypeAlias)
	if !ok {
		return nil, false
	}
	return s.Aliases.Get(p), true
}

package ast

import (
	"vuejsx/internal/source"
)

type Hints struct{ Files, Stmts, Exprs, Types uint }

type Builder struct {
	Files   *Files
	Stmts   *Stmts
	Exprs   *Exprs
	Types   *Types
	Strings *source.Interner
}

func NewBuilder(hints Hints, strings *source.Interner) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 4
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 10
	}
	if hints.Types == 0 {
		hints.Types = 1 << 6
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Builder{
		Files:   NewFiles(hints.Files),
		Stmts:   NewStmts(hints.Stmts),
		Exprs:   NewExprs(hints.Exprs),
		Types:   NewTypes(hints.Types),
		Strings: strings,
	}
}

func (b *Builder) NewFile(sp source.Span) FileID {
	return b.Files.New(sp)
}

func (b *Builder) PushStmt(file FileID, stmt StmtID) {
	f := b.Files.Get(file)
	f.Body = append(f.Body, stmt)
}

// Intern is a shortcut for b.Strings.Intern.
func (b *Builder) Intern(s string) source.StringID {
	return b.Strings.Intern(s)
}

// Name returns the interned text for id.
func (b *Builder) Name(id source.StringID) string {
	s, _ := b.Strings.Lookup(id)
	return s
}

// IdentName returns the name of an identifier expression, or "" for other kinds.
func (b *Builder) IdentName(id ExprID) string {
	if ident, ok := b.Exprs.Ident(id); ok {
		return b.Name(ident.Name)
	}
	return ""
}

// Ident allocates a synthesized identifier that resolves inside the file.
func (b *Builder) Ident(name string) ExprID {
	return b.Exprs.NewIdent(source.Span{}, b.Intern(name), false)
}

// Str allocates a synthesized string literal.
func (b *Builder) Str(value string) ExprID {
	return b.Exprs.NewString(source.Span{}, b.Intern(value), "")
}

// StringValue returns the value of a string literal expression.
func (b *Builder) StringValue(id ExprID) (string, bool) {
	if lit, ok := b.Exprs.StringLit(id); ok {
		return b.Name(lit.Value), true
	}
	return "", false
}

// Call allocates a synthesized call `callee(args...)`.
func (b *Builder) Call(callee ExprID, args ...ExprID) ExprID {
	return b.Exprs.NewCall(source.Span{}, ExprCallData{Callee: callee, Args: args})
}

// KeyValue allocates a `key: value` property with an identifier or string key.
func (b *Builder) KeyValue(key string, quoted bool, value ExprID) PropID {
	k := PropKey{Kind: KeyIdent, Name: b.Intern(key)}
	if quoted {
		k.Kind = KeyString
	}
	return b.Exprs.NewProp(Prop{Kind: PropKeyValue, Key: k, Value: value})
}

// Computed allocates a `[key]: value` property.
func (b *Builder) Computed(key, value ExprID) PropID {
	return b.Exprs.NewProp(Prop{Kind: PropKeyValue, Key: PropKey{Kind: KeyComputed, Expr: key}, Value: value})
}

// SpreadProp allocates a `...arg` property.
func (b *Builder) SpreadProp(arg ExprID) PropID {
	return b.Exprs.NewProp(Prop{Kind: PropSpread, Value: arg})
}

// Object allocates a synthesized object literal.
func (b *Builder) Object(props ...PropID) ExprID {
	return b.Exprs.NewObject(source.Span{}, props)
}

// Array allocates a synthesized array literal.
func (b *Builder) Array(elems ...ExprID) ExprID {
	return b.Exprs.NewArray(source.Span{}, elems)
}

// Arrow allocates `(params) => body` with plain named parameters.
func (b *Builder) Arrow(body ExprID, params ...string) ExprID {
	ids := make([]ParamID, 0, len(params))
	for _, p := range params {
		ids = append(ids, b.Exprs.NewParam(Param{Kind: ParamIdent, Name: b.Intern(p)}))
	}
	return b.Exprs.NewArrow(source.Span{}, ExprArrowData{Sig: FuncSig{Params: ids}, Body: body})
}

// KeyName returns the static name of a property key (identifier or string).
func (b *Builder) KeyName(key PropKey) (string, bool) {
	switch key.Kind {
	case KeyIdent, KeyString:
		return b.Name(key.Name), true
	default:
		return "", false
	}
}

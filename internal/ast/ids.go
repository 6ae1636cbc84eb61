package ast

type (
	// главные сущности
	FileID uint32
	StmtID uint32
	ExprID uint32
	TypeID uint32
	// подсущности
	PayloadID    uint32
	PropID       uint32
	ParamID      uint32
	JSXAttrID    uint32
	JSXChildID   uint32
	TypeMemberID uint32
)

const (
	NoFileID       FileID       = 0
	NoStmtID       StmtID       = 0
	NoExprID       ExprID       = 0
	NoTypeID       TypeID       = 0
	NoPayloadID    PayloadID    = 0
	NoPropID       PropID       = 0
	NoParamID      ParamID      = 0
	NoJSXAttrID    JSXAttrID    = 0
	NoJSXChildID   JSXChildID   = 0
	NoTypeMemberID TypeMemberID = 0
)

func (id FileID) IsValid() bool       { return id != NoFileID }
func (id StmtID) IsValid() bool       { return id != NoStmtID }
func (id ExprID) IsValid() bool       { return id != NoExprID }
func (id TypeID) IsValid() bool       { return id != NoTypeID }
func (id PayloadID) IsValid() bool    { return id != NoPayloadID }
func (id PropID) IsValid() bool       { return id != NoPropID }
func (id ParamID) IsValid() bool      { return id != NoParamID }
func (id JSXAttrID) IsValid() bool    { return id != NoJSXAttrID }
func (id JSXChildID) IsValid() bool   { return id != NoJSXChildID }
func (id TypeMemberID) IsValid() bool { return id != NoTypeMemberID }

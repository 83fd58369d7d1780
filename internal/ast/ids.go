package ast

type (
	// top-level handles
	ModuleID uint32
	DeclID   uint32
	StmtID   uint32
	ExprID   uint32
	TypeID   uint32
	// sub-entities
	PayloadID       uint32
	ParamID         uint32
	ParamListID     uint32
	TemplateParamID uint32
)

const (
	NoModuleID        ModuleID        = 0
	NoDeclID          DeclID          = 0
	NoStmtID          StmtID          = 0
	NoExprID          ExprID          = 0
	NoTypeID          TypeID          = 0
	NoPayloadID       PayloadID       = 0
	NoParamID         ParamID         = 0
	NoParamListID     ParamListID     = 0
	NoTemplateParamID TemplateParamID = 0
)

func (id ModuleID) IsValid() bool        { return id != NoModuleID }
func (id DeclID) IsValid() bool          { return id != NoDeclID }
func (id StmtID) IsValid() bool          { return id != NoStmtID }
func (id ExprID) IsValid() bool          { return id != NoExprID }
func (id TypeID) IsValid() bool          { return id != NoTypeID }
func (id PayloadID) IsValid() bool       { return id != NoPayloadID }
func (id ParamID) IsValid() bool         { return id != NoParamID }
func (id ParamListID) IsValid() bool     { return id != NoParamListID }
func (id TemplateParamID) IsValid() bool { return id != NoTemplateParamID }

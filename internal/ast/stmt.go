package ast

import "strings"

// StmtKind enumerates statement kinds.
type StmtKind uint8

const (
	// Объявления
	StmtDim StmtKind = iota
	StmtPublic
	StmtConst
	StmtHashTbl
	// StmtHash is the hash ... endhash sugar.
	StmtHash

	StmtPrint

	// Циклы и ветвления
	StmtFor
	StmtForIn
	StmtWhile
	StmtRepeat
	StmtSelect
	// StmtIfSingle is the single-line if.
	StmtIfSingle
	StmtIf
	StmtTry
	StmtWith

	// Определения
	StmtFunction
	StmtModule
	StmtClass
	StmtStruct
	StmtEnum
	StmtTextBlock
	StmtDefDll

	StmtOption
	StmtThread
	StmtCall
	StmtExit
	StmtExitExit
	StmtContinue
	StmtBreak
	StmtComErrIgn
	StmtComErrRet
	// StmtExpr is an expression statement: assignment or call.
	StmtExpr
)

var stmtKindNames = [...]string{
	StmtDim:       "Dim",
	StmtPublic:    "Public",
	StmtConst:     "Const",
	StmtHashTbl:   "HashTbl",
	StmtHash:      "Hash",
	StmtPrint:     "Print",
	StmtFor:       "For",
	StmtForIn:     "ForIn",
	StmtWhile:     "While",
	StmtRepeat:    "Repeat",
	StmtSelect:    "Select",
	StmtIfSingle:  "IfSingleLine",
	StmtIf:        "If",
	StmtTry:       "Try",
	StmtWith:      "With",
	StmtFunction:  "Function",
	StmtModule:    "Module",
	StmtClass:     "Class",
	StmtStruct:    "Struct",
	StmtEnum:      "Enum",
	StmtTextBlock: "TextBlock",
	StmtDefDll:    "DefDll",
	StmtOption:    "Option",
	StmtThread:    "Thread",
	StmtCall:      "Call",
	StmtExit:      "Exit",
	StmtExitExit:  "ExitExit",
	StmtContinue:  "Continue",
	StmtBreak:     "Break",
	StmtComErrIgn: "ComErrIgn",
	StmtComErrRet: "ComErrRet",
	StmtExpr:      "Expression",
}

func (k StmtKind) String() string {
	if int(k) < len(stmtKindNames) {
		return stmtKindNames[k]
	}
	return "Unknown"
}

// Stmt is a statement node. Only the payload matching Kind is set.
type Stmt struct {
	Kind      StmtKind
	Decl      *DeclStmt      `json:",omitempty"` // Dim, Public, Const
	HashTbl   *HashTblStmt   `json:",omitempty"`
	Hash      *HashSugar     `json:",omitempty"`
	Expr      *Expr          `json:",omitempty"` // Print, Thread, Expression
	For       *ForStmt       `json:",omitempty"`
	ForIn     *ForInStmt     `json:",omitempty"`
	Loop      *LoopStmt      `json:",omitempty"` // While, Repeat
	Select    *SelectStmt    `json:",omitempty"`
	If        *IfStmt        `json:",omitempty"`
	IfLine    *IfLineStmt    `json:",omitempty"`
	Try       *TryStmt       `json:",omitempty"`
	With      *WithStmt      `json:",omitempty"`
	Func      *FuncDef       `json:",omitempty"`
	Module    *ModuleDef     `json:",omitempty"` // Module, Class
	Struct    *StructDef     `json:",omitempty"`
	Enum      *EnumDef       `json:",omitempty"`
	TextBlock *TextBlockDef  `json:",omitempty"`
	DefDll    *DefDll        `json:",omitempty"`
	Option    *OptionSetting `json:",omitempty"`
	Call      *CallStmt      `json:",omitempty"`
	Level     uint32         `json:",omitempty"` // Continue, Break
	Code      int32          `json:",omitempty"` // ExitExit
}

// DeclItem is one name of a dim/public/const list. Value is EMPTY when
// no initializer is given; array declarations carry an ExprArray.
type DeclItem struct {
	Name  string
	Value *Expr
}

// DeclStmt is dim/public/const.
type DeclStmt struct {
	Items  []DeclItem
	InLoop bool `json:",omitempty"` // dim inside a loop body
}

// HashTblItem is one table of a hashtbl statement; Option is nil without `= opts`.
type HashTblItem struct {
	Name   string
	Option *Expr `json:",omitempty"`
}

// HashTblStmt is hashtbl or public hashtbl.
type HashTblStmt struct {
	Items    []HashTblItem
	IsPublic bool `json:",omitempty"`
}

// HashMember is a `key = value` line of the hash sugar.
type HashMember struct {
	Key   *Expr
	Value *Expr
}

// HashSugar is hash [public] name [= opts] ... endhash.
type HashSugar struct {
	Name     string
	Option   *Expr `json:",omitempty"`
	IsPublic bool  `json:",omitempty"`
	Members  []HashMember
}

// ForStmt is for v = from to to [step s].
type ForStmt struct {
	Var  string
	From *Expr
	To   *Expr
	Step *Expr `json:",omitempty"`
	Body Block
	Else Block `json:",omitempty"`
}

// ForInStmt is for v[, index][, last] in collection.
type ForInStmt struct {
	Var        string
	Index      string `json:",omitempty"`
	Last       string `json:",omitempty"`
	Collection *Expr
	Body       Block
	Else       Block `json:",omitempty"`
}

// LoopStmt is while/wend or repeat/until. CondRow is the row of until.
type LoopStmt struct {
	Cond    *Expr
	CondRow int `json:",omitempty"`
	Body    Block
}

// CaseClause is case v1, v2.
type CaseClause struct {
	Values []*Expr
	Body   Block
}

// SelectStmt is select ... selend.
type SelectStmt struct {
	Expr    *Expr
	Cases   []CaseClause
	Default Block `json:",omitempty"`
}

// ElseIf keeps its condition as a row-tagged expression statement.
type ElseIf struct {
	Cond StatementWithRow
	Body Block
}

// IfStmt is the block if/ifb.
type IfStmt struct {
	Cond    *Expr
	Then    Block
	ElseIfs []ElseIf `json:",omitempty"`
	Else    Block    `json:",omitempty"`
}

// IfLineStmt is `if cond then stmt [else stmt]` on one line.
type IfLineStmt struct {
	Cond *Expr
	Then *StatementWithRow
	Else *StatementWithRow `json:",omitempty"`
}

// TryStmt is try/except/finally/endtry. HasExcept and HasFinally
// distinguish an empty section from a missing one.
type TryStmt struct {
	Body       Block
	Except     Block `json:",omitempty"`
	Finally    Block `json:",omitempty"`
	HasExcept  bool  `json:",omitempty"`
	HasFinally bool  `json:",omitempty"`
}

// WithStmt is with expr ... endwith.
type WithStmt struct {
	Expr *Expr
	Body Block
}

// ModuleDef is a module or class. Members keeps source order.
type ModuleDef struct {
	Name          string
	Members       Block
	HasDestructor bool `json:",omitempty"` // есть procedure _Name_
}

// StructDef is struct ... endstruct.
type StructDef struct {
	Name    string
	Members []StructMember
}

// EnumMember is one enum item with its resolved value.
type EnumMember struct {
	Name  string
	Value float64
}

// EnumDef is enum ... endenum.
type EnumDef struct {
	Name    string
	Members []EnumMember
}

// Lookup returns the value of a member, case-insensitively.
func (e *EnumDef) Lookup(name string) (float64, bool) {
	for _, m := range e.Members {
		if strings.EqualFold(m.Name, name) {
			return m.Value, true
		}
	}
	return 0, false
}

// TextBlockDef is a named textblock; Value is a LitTextBlock or LitTextBlockEx literal.
type TextBlockDef struct {
	Name  string
	Value *Expr
}

// CallStmt is call target(args). Program holds the included script body.
type CallStmt struct {
	Target  string
	Program *Program
	Args    []*Expr `json:",omitempty"`
}

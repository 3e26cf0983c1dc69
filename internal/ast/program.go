package ast

// StatementWithRow ties a statement to the row it starts on, the raw line
// and the display name of the script it came from.
type StatementWithRow struct {
	Stmt   *Stmt
	Row    int
	Line   string `json:",omitempty"`
	Script string `json:",omitempty"`
}

// Block is an ordered list of statements.
type Block []StatementWithRow

// Program is a parsed script: global declarations, the script body
// in source order and the original source lines.
type Program struct {
	Global []StatementWithRow
	Script []StatementWithRow
	Lines  []string `json:",omitempty"`
}

// NewStmt wraps s with position information.
func NewStmt(s *Stmt, row int, line, script string) StatementWithRow {
	return StatementWithRow{Stmt: s, Row: row, Line: line, Script: script}
}

// Functions returns the function and procedure definitions of Global.
func (p *Program) Functions() []*FuncDef {
	if p == nil {
		return nil
	}
	var out []*FuncDef
	for _, s := range p.Global {
		if s.Stmt != nil && s.Stmt.Kind == StmtFunction {
			out = append(out, s.Stmt.Func)
		}
	}
	return out
}

// Walk calls fn for every statement of b, descending into nested blocks.
// Returning false from fn skips the children of that statement.
func (b Block) Walk(fn func(StatementWithRow) bool) {
	for _, s := range b {
		if s.Stmt == nil || !fn(s) {
			continue
		}
		for _, child := range s.Stmt.Children() {
			child.Walk(fn)
		}
	}
}

// Children returns the nested blocks of s in source order.
func (s *Stmt) Children() []Block {
	if s == nil {
		return nil
	}
	switch s.Kind {
	case StmtFor:
		return []Block{s.For.Body, s.For.Else}
	case StmtForIn:
		return []Block{s.ForIn.Body, s.ForIn.Else}
	case StmtWhile, StmtRepeat:
		return []Block{s.Loop.Body}
	case StmtSelect:
		out := make([]Block, 0, len(s.Select.Cases)+1)
		for _, c := range s.Select.Cases {
			out = append(out, c.Body)
		}
		return append(out, s.Select.Default)
	case StmtIf:
		out := []Block{s.If.Then}
		for _, ei := range s.If.ElseIfs {
			out = append(out, ei.Body)
		}
		return append(out, s.If.Else)
	case StmtIfSingle:
		out := []Block{{*s.IfLine.Then}}
		if s.IfLine.Else != nil {
			out = append(out, Block{*s.IfLine.Else})
		}
		return out
	case StmtTry:
		return []Block{s.Try.Body, s.Try.Except, s.Try.Finally}
	case StmtWith:
		return []Block{s.With.Body}
	case StmtFunction:
		return []Block{s.Func.Body}
	case StmtModule, StmtClass:
		return []Block{s.Module.Members}
	default:
		return nil
	}
}

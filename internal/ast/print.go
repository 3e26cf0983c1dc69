package ast

import (
	"strings"
)

// String renders the expression on one line with every operator node
// parenthesised, so the shape of the tree is visible: 1 + 2 * 3 prints as (1 + (2 * 3)).
func (e *Expr) String() string {
	var sb strings.Builder
	writeExpr(&sb, e)
	return sb.String()
}

func writeExpr(sb *strings.Builder, e *Expr) {
	if e == nil {
		sb.WriteString("<nil>")
		return
	}
	switch e.Kind {
	case ExprIdent:
		sb.WriteString(e.Name)
	case ExprLit:
		if e.Lit != nil {
			sb.WriteString(e.Lit.String())
		}
	case ExprArray:
		if e.Array == nil {
			sb.WriteString("[]")
			return
		}
		for _, d := range e.Array.Dims {
			sb.WriteByte('[')
			writeExpr(sb, d)
			sb.WriteByte(']')
		}
		if len(e.Array.Dims) > 0 {
			sb.WriteByte('{')
			writeList(sb, e.Array.Items)
			sb.WriteByte('}')
			return
		}
		sb.WriteByte('[')
		writeList(sb, e.Array.Items)
		sb.WriteByte(']')
	case ExprPrefix:
		sb.WriteByte('(')
		sb.WriteString(e.Op.String())
		writeExpr(sb, e.X)
		sb.WriteByte(')')
	case ExprInfix:
		sb.WriteByte('(')
		writeExpr(sb, e.X)
		sb.WriteByte(' ')
		sb.WriteString(e.Op.String())
		sb.WriteByte(' ')
		writeExpr(sb, e.Y)
		sb.WriteByte(')')
	case ExprTernary:
		sb.WriteByte('(')
		writeExpr(sb, e.Ternary.Cond)
		sb.WriteString(" ? ")
		writeExpr(sb, e.Ternary.Then)
		sb.WriteString(" : ")
		writeExpr(sb, e.Ternary.Else)
		sb.WriteByte(')')
	case ExprIndex:
		writeExpr(sb, e.X)
		sb.WriteByte('[')
		writeExpr(sb, e.Y)
		if e.Hash != nil {
			sb.WriteString(", ")
			writeExpr(sb, e.Hash)
		}
		sb.WriteByte(']')
	case ExprDotCall:
		writeExpr(sb, e.X)
		sb.WriteByte('.')
		sb.WriteString(e.Name)
	case ExprCall:
		writeExpr(sb, e.X)
		sb.WriteByte('(')
		writeList(sb, e.Args)
		sb.WriteByte(')')
	case ExprAssign:
		writeExpr(sb, e.X)
		sb.WriteString(" := ")
		writeExpr(sb, e.Y)
	case ExprCompoundAssign:
		writeExpr(sb, e.X)
		sb.WriteByte(' ')
		sb.WriteString(e.Op.String())
		sb.WriteString("= ")
		writeExpr(sb, e.Y)
	case ExprAnonFunc:
		if e.Func == nil || e.Func.IsProc {
			sb.WriteString("procedure(")
		} else {
			sb.WriteString("function(")
		}
		if e.Func != nil {
			for i, p := range e.Func.Params {
				if i > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(p.String())
			}
		}
		sb.WriteByte(')')
	case ExprAwait:
		sb.WriteString("await ")
		writeExpr(sb, e.X)
	case ExprRefArg:
		sb.WriteString("var ")
		writeExpr(sb, e.X)
	case ExprUObject:
		sb.WriteByte('@')
		sb.WriteString(e.Raw)
		sb.WriteByte('@')
	case ExprEmptyArg:
		// пустой аргумент печатается как ничего: f(, , 4)
	case ExprComErrFlg:
		sb.WriteString("COM_ERR_FLG")
	}
}

func writeList(sb *strings.Builder, list []*Expr) {
	for i, x := range list {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeExpr(sb, x)
	}
}

// String renders the parameter as it would be declared.
func (p Param) String() string {
	var sb strings.Builder
	switch p.Kind {
	case ParamRef:
		sb.WriteString("var ")
	case ParamVariadic:
		sb.WriteString("args ")
	}
	sb.WriteString(p.Name)
	for i := 0; i < p.Dims; i++ {
		sb.WriteString("[]")
	}
	if t := p.Type.String(); t != "" {
		sb.WriteString(": ")
		sb.WriteString(t)
	}
	if p.Kind == ParamDefault {
		sb.WriteString(" = ")
		writeExpr(&sb, p.Default)
	}
	return sb.String()
}

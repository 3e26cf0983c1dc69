package ast

import (
	"strconv"
)

// LitKind enumerates literal kinds.
type LitKind uint8

const (
	LitNum LitKind = iota
	// LitString is a '...' string, used verbatim.
	LitString
	// LitExpandable is a "..." string; the evaluator expands <#...> in it.
	LitExpandable
	LitBool
	LitEmpty
	LitNull
	LitNothing
	LitNaN
	// LitTextBlock is the body of a textblock; LitTextBlockEx is expanded at runtime.
	LitTextBlock
	LitTextBlockEx
)

// Literal is a constant value. Hex numbers are already converted to Num.
type Literal struct {
	Kind LitKind
	Num  float64 `json:",omitempty"`
	Str  string  `json:",omitempty"`
	Bool bool    `json:",omitempty"`
}

// String renders the literal roughly as it was written.
func (l Literal) String() string {
	switch l.Kind {
	case LitNum:
		return strconv.FormatFloat(l.Num, 'g', -1, 64)
	case LitString:
		return "'" + l.Str + "'"
	case LitExpandable:
		return strconv.Quote(l.Str)
	case LitBool:
		if l.Bool {
			return "TRUE"
		}
		return "FALSE"
	case LitEmpty:
		return "EMPTY"
	case LitNull:
		return "NULL"
	case LitNothing:
		return "NOTHING"
	case LitNaN:
		return "NaN"
	case LitTextBlock, LitTextBlockEx:
		return "textblock"
	default:
		return "?"
	}
}

package parser

import (
	"uwscript/internal/ast"
	"uwscript/internal/token"
)

// Приоритеты операторов, от слабого к сильному.
const (
	precLowest = iota
	precAssign
	precTernary
	precOr
	precAnd
	precEquality
	precRelational
	precAdditive
	precMultiplicative
	precPrefix
	precFuncCall
	precIndex
	precDotCall
)

func infixPrec(k token.Kind) int {
	switch k {
	case token.Assign:
		return precAssign
	case token.Question:
		return precTernary
	case token.KwOr, token.KwOrL, token.KwOrB, token.KwXor, token.KwXorL, token.KwXorB:
		return precOr
	case token.KwAnd, token.KwAndL, token.KwAndB:
		return precAnd
	case token.Eq, token.EqEq, token.NotEq:
		return precEquality
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precRelational
	case token.Plus, token.Minus:
		return precAdditive
	case token.Star, token.Slash, token.KwMod:
		return precMultiplicative
	case token.LParen:
		return precFuncCall
	case token.LBracket:
		return precIndex
	case token.Dot:
		return precDotCall
	}
	return precLowest
}

var infixOps = map[token.Kind]ast.Operator{
	token.Plus:    ast.OpPlus,
	token.Minus:   ast.OpMinus,
	token.Star:    ast.OpMul,
	token.Slash:   ast.OpDiv,
	token.KwMod:   ast.OpMod,
	token.Eq:      ast.OpEq,
	token.EqEq:    ast.OpEq,
	token.NotEq:   ast.OpNotEq,
	token.Lt:      ast.OpLt,
	token.LtEq:    ast.OpLtEq,
	token.Gt:      ast.OpGt,
	token.GtEq:    ast.OpGtEq,
	token.KwAnd:   ast.OpAnd,
	token.KwOr:    ast.OpOr,
	token.KwXor:   ast.OpXor,
	token.KwAndL:  ast.OpAndL,
	token.KwOrL:   ast.OpOrL,
	token.KwXorL:  ast.OpXorL,
	token.KwAndB:  ast.OpAndB,
	token.KwOrB:   ast.OpOrB,
	token.KwXorB:  ast.OpXorB,
}

func infixOp(k token.Kind) (ast.Operator, bool) {
	op, ok := infixOps[k]
	return op, ok
}

// compoundOp: += -= *= /= → арифметический оператор.
func compoundOp(k token.Kind) (ast.Operator, bool) {
	switch k {
	case token.PlusAssign:
		return ast.OpPlus, true
	case token.MinusAssign:
		return ast.OpMinus, true
	case token.StarAssign:
		return ast.OpMul, true
	case token.SlashAssign:
		return ast.OpDiv, true
	}
	return ast.OpInvalid, false
}

func prefixOp(k token.Kind) (ast.Operator, bool) {
	switch k {
	case token.Bang:
		return ast.OpNot, true
	case token.Minus:
		return ast.OpMinus, true
	case token.Plus:
		return ast.OpPlus, true
	}
	return ast.OpInvalid, false
}

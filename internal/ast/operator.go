package ast

// Operator enumerates prefix and infix operators.
type Operator uint8

const (
	OpInvalid Operator = iota

	// Арифметические

	OpPlus  // +
	OpMinus // -
	OpMul   // *
	OpDiv   // /
	OpMod   // mod

	// Сравнения

	OpEq    // = or ==
	OpNotEq // <> or !=
	OpLt    // <
	OpLtEq  // <=
	OpGt    // >
	OpGtEq  // >=

	// Логические и битовые

	OpAnd  // and
	OpOr   // or
	OpXor  // xor
	OpAndL // andl
	OpOrL  // orl
	OpXorL // xorl
	OpAndB // andb
	OpOrB  // orb
	OpXorB // xorb

	// Префиксные

	OpNot // !

	// OpAssign is := used inside an expression.
	OpAssign
)

var operatorNames = [...]string{
	OpInvalid: "?",
	OpPlus:    "+",
	OpMinus:   "-",
	OpMul:     "*",
	OpDiv:     "/",
	OpMod:     "mod",
	OpEq:      "==",
	OpNotEq:   "<>",
	OpLt:      "<",
	OpLtEq:    "<=",
	OpGt:      ">",
	OpGtEq:    ">=",
	OpAnd:     "and",
	OpOr:      "or",
	OpXor:     "xor",
	OpAndL:    "andl",
	OpOrL:     "orl",
	OpXorL:    "xorl",
	OpAndB:    "andb",
	OpOrB:     "orb",
	OpXorB:    "xorb",
	OpNot:     "!",
	OpAssign:  ":=",
}

// String returns the source spelling of the operator.
func (op Operator) String() string {
	if int(op) < len(operatorNames) {
		return operatorNames[op]
	}
	return "?"
}

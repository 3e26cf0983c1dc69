package ast

// ExprKind enumerates the different kinds of expressions.
type ExprKind uint8

const (
	// ExprIdent represents an identifier expression.
	ExprIdent ExprKind = iota
	// ExprLit represents a literal expression.
	ExprLit
	// ExprArray is an array literal [a, b] or the value list of an array declaration.
	ExprArray
	ExprPrefix
	ExprInfix
	ExprTernary
	// ExprIndex is x[i] or x[i, hashEnum].
	ExprIndex
	// ExprDotCall is x.member.
	ExprDotCall
	ExprCall
	// ExprAssign is x := y (or x = y at the start of a statement).
	ExprAssign
	// ExprCompoundAssign is x += y and friends; Op holds the arithmetic operator.
	ExprCompoundAssign
	// ExprAnonFunc is function(...) fend, procedure(...) fend or a lambda.
	ExprAnonFunc
	// ExprAwait wraps a call expression.
	ExprAwait
	// ExprRefArg is `var x` passed to a COM method.
	ExprRefArg
	// ExprUObject holds raw JSON of @{ }@ or @[ ]@.
	ExprUObject
	// ExprEmptyArg is an elided call argument: f(, 1).
	ExprEmptyArg
	ExprComErrFlg
)

// Expr represents an expression node in the AST. Exactly the payload that
// matches Kind is set; the rest stay zero so trees compare with ==-like deep equality.
type Expr struct {
	Kind    ExprKind
	Name    string       `json:",omitempty"` // ExprIdent, ExprDotCall member
	Raw     string       `json:",omitempty"` // ExprUObject
	Lit     *Literal     `json:",omitempty"`
	Array   *ArrayData   `json:",omitempty"`
	Op      Operator     `json:",omitempty"` // ExprPrefix, ExprInfix, ExprCompoundAssign
	X       *Expr        `json:",omitempty"` // operand, left side, target, callee
	Y       *Expr        `json:",omitempty"` // right side, index
	Ternary *TernaryData `json:",omitempty"`
	Hash    *Expr        `json:",omitempty"` // second index of ExprIndex
	Args    []*Expr      `json:",omitempty"` // ExprCall
	Func    *FuncDef     `json:",omitempty"` // ExprAnonFunc
}

// ArrayData holds the items of an array literal and, for declarations,
// one size per dimension (an omitted size is an EMPTY literal).
type ArrayData struct {
	Items []*Expr `json:",omitempty"`
	Dims  []*Expr `json:",omitempty"`
}

// TernaryData is cond ? then : else.
type TernaryData struct {
	Cond *Expr
	Then *Expr
	Else *Expr
}

// Ident creates an identifier expression.
func Ident(name string) *Expr {
	return &Expr{Kind: ExprIdent, Name: name}
}

// Num creates a number literal.
func Num(n float64) *Expr {
	return &Expr{Kind: ExprLit, Lit: &Literal{Kind: LitNum, Num: n}}
}

// Str creates a plain string literal.
func Str(s string) *Expr {
	return &Expr{Kind: ExprLit, Lit: &Literal{Kind: LitString, Str: s}}
}

// ExpandStr creates an expandable string literal.
func ExpandStr(s string) *Expr {
	return &Expr{Kind: ExprLit, Lit: &Literal{Kind: LitExpandable, Str: s}}
}

// Bool creates a boolean literal.
func Bool(b bool) *Expr {
	return &Expr{Kind: ExprLit, Lit: &Literal{Kind: LitBool, Bool: b}}
}

// Lit creates a literal without payload (EMPTY, NULL, NOTHING, NaN).
func Lit(kind LitKind) *Expr {
	return &Expr{Kind: ExprLit, Lit: &Literal{Kind: kind}}
}

// Empty is a shortcut for Lit(LitEmpty).
func Empty() *Expr { return Lit(LitEmpty) }

// Prefix creates op x.
func Prefix(op Operator, x *Expr) *Expr {
	return &Expr{Kind: ExprPrefix, Op: op, X: x}
}

// Infix creates x op y.
func Infix(op Operator, x, y *Expr) *Expr {
	return &Expr{Kind: ExprInfix, Op: op, X: x, Y: y}
}

// Ternary creates cond ? then : els.
func Ternary(cond, then, els *Expr) *Expr {
	return &Expr{Kind: ExprTernary, Ternary: &TernaryData{Cond: cond, Then: then, Else: els}}
}

// Index creates x[i] or, with a non-nil hash, x[i, hash].
func Index(x, i, hash *Expr) *Expr {
	return &Expr{Kind: ExprIndex, X: x, Y: i, Hash: hash}
}

// DotCall creates x.member.
func DotCall(x *Expr, member string) *Expr {
	return &Expr{Kind: ExprDotCall, X: x, Name: member}
}

// Call creates fn(args...).
func Call(fn *Expr, args ...*Expr) *Expr {
	return &Expr{Kind: ExprCall, X: fn, Args: args}
}

// Assign creates x := y.
func Assign(x, y *Expr) *Expr {
	return &Expr{Kind: ExprAssign, X: x, Y: y}
}

// CompoundAssign creates x op= y.
func CompoundAssign(op Operator, x, y *Expr) *Expr {
	return &Expr{Kind: ExprCompoundAssign, Op: op, X: x, Y: y}
}

// Array creates an array literal or declaration value.
func Array(items, dims []*Expr) *Expr {
	return &Expr{Kind: ExprArray, Array: &ArrayData{Items: items, Dims: dims}}
}

// EmptyArg creates an elided call argument.
func EmptyArg() *Expr {
	return &Expr{Kind: ExprEmptyArg}
}

// IsCall reports whether e is a call, awaited or not.
func (e *Expr) IsCall() bool {
	if e == nil {
		return false
	}
	return e.Kind == ExprCall || e.Kind == ExprAwait
}

// IsAssignable reports whether e may stand on the left of an assignment.
// A call is assignable only when it is a parameterised COM property: obj.prop(i) = v.
func (e *Expr) IsAssignable() bool {
	if e == nil {
		return false
	}
	switch e.Kind {
	case ExprIdent, ExprIndex, ExprDotCall:
		return true
	case ExprCall:
		return e.X != nil && e.X.Kind == ExprDotCall
	default:
		return false
	}
}

// RootIdent returns the identifier at the root of x or x[i][j].
func (e *Expr) RootIdent() (string, bool) {
	for e != nil {
		switch e.Kind {
		case ExprIdent:
			return e.Name, true
		case ExprIndex:
			e = e.X
		default:
			return "", false
		}
	}
	return "", false
}

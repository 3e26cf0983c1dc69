package parser

import (
	"testing"

	"uwscript/internal/ast"
	"uwscript/internal/diag"
)

func parseEvalExpr(t *testing.T, input string) *ast.Expr {
	t.Helper()
	res := parseSourceWithOptions(t, input, Options{Eval: true})
	if res.HasErrors() {
		t.Fatalf("%q: unexpected diagnostics: %s", input, diagnosticsSummary(res.Bag))
	}
	s := firstScript(t, res.Program)
	if s.Kind != ast.StmtExpr {
		t.Fatalf("%q: expected expression statement, got %s", input, s.Kind)
	}
	return s.Expr
}

func TestExpressionPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"a - b - c", "((a - b) - c)"},
		{"-a * b", "((-a) * b)"},
		{"!a andb b", "((!a) andb b)"},
		{"1 < 2 = true", "((1 < 2) == TRUE)"},
		{"a mod 2 <> 0", "((a mod 2) <> 0)"},
		{"a or b and c", "(a or (b and c))"},
		{"a ? b : c + 1", "(a ? b : (c + 1))"},
		{"x := y := 1", "x := y := 1"},
		{"x := 1.5", "x := 1.5"},
		{"$FF + 1", "(255 + 1)"},
		{`'raw' + "exp"`, `('raw' + "exp")`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseEvalExpr(t, tt.input).String(); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPostfixExpressions(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"f(, , 4)", "f(, , 4)"},
		{"f(1, )", "f(1, )"},
		{"f()", "f()"},
		{"a[1][2]", "a[1][2]"},
		{"h[k, HASH_EXISTS]", "h[k, HASH_EXISTS]"},
		{"obj.a.b(1)", "obj.a.b(1)"},
		{"obj.Select", "obj.Select"},
		{"[1, [2, 3]]", "[1, [2, 3]]"},
		{"await f()", "await f()"},
		{"f(var x)", "f(var x)"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseEvalExpr(t, tt.input).String(); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEmptyArgumentsAreKept(t *testing.T) {
	e := parseEvalExpr(t, "f(, , 4)")
	if e.Kind != ast.ExprCall || len(e.Args) != 3 {
		t.Fatalf("expected call with 3 args, got %s", e)
	}
	for i := 0; i < 2; i++ {
		if e.Args[i].Kind != ast.ExprEmptyArg {
			t.Errorf("arg %d: expected empty argument, got %s", i, e.Args[i])
		}
	}
	if e.Args[2].Kind != ast.ExprLit || e.Args[2].Lit.Num != 4 {
		t.Errorf("arg 2: expected 4, got %s", e.Args[2])
	}
}

func TestHexWrapsToInt64(t *testing.T) {
	e := parseEvalExpr(t, "x := $FFFFFFFFFFFFFFFF")
	if e.Y.Kind != ast.ExprLit || e.Y.Lit.Num != -1 {
		t.Fatalf("expected -1, got %s", e.Y)
	}
}

func TestLambda(t *testing.T) {
	e := parseEvalExpr(t, "x := |a, b => a + b|")
	fn := e.Y
	if fn.Kind != ast.ExprAnonFunc {
		t.Fatalf("expected anonymous function, got %s", fn)
	}
	if len(fn.Func.Params) != 2 || fn.Func.Params[0].Name != "a" || fn.Func.Params[1].Name != "b" {
		t.Fatalf("unexpected params: %v", fn.Func.Params)
	}
	if len(fn.Func.Body) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(fn.Func.Body))
	}
	if got := fn.Func.Body[0].Stmt.Expr.String(); got != "result := (a + b)" {
		t.Errorf("body = %s", got)
	}
}

func TestMultilineLambda(t *testing.T) {
	input := "x := |a =>\n    b := a * 2\n    b + 1\n|"
	e := parseEvalExpr(t, input)
	body := e.Y.Func.Body
	if len(body) != 2 {
		t.Fatalf("expected 2 body statements, got %d", len(body))
	}
	if got := body[0].Stmt.Expr.String(); got != "b := (a * 2)" {
		t.Errorf("first = %s", got)
	}
	if got := body[1].Stmt.Expr.String(); got != "result := (b + 1)" {
		t.Errorf("last = %s", got)
	}
	if body[0].Row != 2 || body[1].Row != 3 {
		t.Errorf("rows = %d, %d; want 2, 3", body[0].Row, body[1].Row)
	}
}

func TestAnonymousFunction(t *testing.T) {
	input := "f := function(a, b = 2)\n    result = a * b\nfend\n"
	e := parseEvalExpr(t, input)
	fn := e.Y
	if fn.Kind != ast.ExprAnonFunc || fn.Func.IsProc {
		t.Fatalf("expected anonymous function, got %s", fn)
	}
	if got := fn.String(); got != "function(a, b = 2)" {
		t.Errorf("got %s", got)
	}
	if len(fn.Func.Body) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(fn.Func.Body))
	}
}

func TestStatementAssignments(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"dim a[2]\na[1] = 2", "a[1] := 2"},
		{"dim n\nn += 2", "n += 2"},
		{"dim n\nn := 5", "n := 5"},
		{"dim obj\nobj.prop = 1", "obj.prop := 1"},
		{"dim obj\nobj.prop(1) = 5", "obj.prop(1) := 5"},
		{"dim obj\nobj.items[0].name = 'x'", "obj.items[0].name := 'x'"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			prog := mustParse(t, tt.input)
			if len(prog.Script) != 2 {
				t.Fatalf("expected 2 statements, got %d", len(prog.Script))
			}
			if got := prog.Script[1].Stmt.Expr.String(); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestExpressionErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		eval  bool
		code  diag.Code
	}{
		{"literal statement", "1 + 2", false, diag.SynUnexpectedToken},
		{"array literal statement", "[1, 2]", false, diag.SynUnexpectedToken},
		{"operator after name", "dim a\na + 1", false, diag.SynUnexpectedToken},
		{"call compared", "dim f\nf(1) = 2", false, diag.SynUnexpectedToken},
		{"bare name", "dim a\na", false, diag.SynInvalidExpression},
		{"missing index", "dim a[1]\nprint a[]", false, diag.SynMissingIndex},
		{"not assignable", "1 := 2", true, diag.SynNotAssignable},
		{"await non-call", "x := await 1", true, diag.SynInvalidAwait},
		{"ref at statement start", "var x", true, diag.SynInvalidRefArg},
		{"dot outside with", ".name = 1", false, diag.SynOutOfWith},
		{"reserved keyword", "print mod", false, diag.SynReservedKeyword},
		{"missing expression", "print 1 +", false, diag.SynExpectExpression},
		{"hex overflow", "print $1FFFFFFFFFFFFFFFF", false, diag.SynBadHexLiteral},
		{"bare dollar", "print $", false, diag.LexBadNumber},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := parseSourceWithOptions(t, tt.input, Options{Eval: tt.eval})
			if !hasCode(res.Bag, tt.code) {
				t.Fatalf("%q: expected %s, got %s", tt.input, tt.code.ID(), diagnosticsSummary(res.Bag))
			}
		})
	}
}

func TestEvalAllowsAnyExpression(t *testing.T) {
	res := parseSourceWithOptions(t, "a + 1\nprint undeclared", Options{Eval: true})
	if res.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(res.Bag))
	}
	if len(res.Program.Script) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(res.Program.Script))
	}
}

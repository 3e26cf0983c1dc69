package parser

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"uwscript/internal/ast"
	"uwscript/internal/diag"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func parseSource(t *testing.T, input string) Result {
	return parseSourceWithOptions(t, input, Options{})
}

func parseSourceWithOptions(t *testing.T, input string, opts Options) Result {
	t.Helper()
	if opts.MaxErrors == 0 {
		opts.MaxErrors = 100
	}
	res, _ := ParseSource(context.Background(), "test.uws", []byte(input), opts)
	if res.Bag == nil || res.Program == nil {
		t.Fatalf("parse %q returned no bag or program", input)
	}
	return res
}

// mustParse разбирает без ошибок и возвращает программу.
func mustParse(t *testing.T, input string) *ast.Program {
	t.Helper()
	res := parseSource(t, input)
	if res.HasErrors() {
		t.Fatalf("unexpected diagnostics for %q: %s", input, diagnosticsSummary(res.Bag))
	}
	return res.Program
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func expectCode(t *testing.T, input string, code diag.Code) Result {
	t.Helper()
	res := parseSource(t, input)
	if !hasCode(res.Bag, code) {
		t.Fatalf("%q: expected %s, got %s", input, code.ID(), diagnosticsSummary(res.Bag))
	}
	return res
}

// firstScript возвращает первый оператор тела.
func firstScript(t *testing.T, prog *ast.Program) *ast.Stmt {
	t.Helper()
	if len(prog.Script) == 0 {
		t.Fatal("script body is empty")
	}
	return prog.Script[0].Stmt
}

func globalKinds(prog *ast.Program) []ast.StmtKind {
	out := make([]ast.StmtKind, len(prog.Global))
	for i, s := range prog.Global {
		out[i] = s.Stmt.Kind
	}
	return out
}

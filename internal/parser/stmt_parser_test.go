package parser

import (
	"reflect"
	"slices"
	"testing"

	"uwscript/internal/ast"
	"uwscript/internal/diag"
)

func TestParseDim(t *testing.T) {
	prog := mustParse(t, "dim a, b = 1, c[3], d[] = 1, 2, 3")
	s := firstScript(t, prog)
	if s.Kind != ast.StmtDim {
		t.Fatalf("expected Dim, got %s", s.Kind)
	}
	items := s.Decl.Items
	if len(items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(items))
	}
	want := []struct {
		name  string
		value string
	}{
		{"a", "EMPTY"},
		{"b", "1"},
		{"c", "[3]{}"},
		{"d", "[EMPTY]{1, 2, 3}"},
	}
	for i, w := range want {
		if items[i].Name != w.name || items[i].Value.String() != w.value {
			t.Errorf("item %d = %s %s, want %s %s", i, items[i].Name, items[i].Value, w.name, w.value)
		}
	}
}

func TestParseMultiDimensional(t *testing.T) {
	prog := mustParse(t, "dim e[2][3], f[1, 2], g[][4]")
	items := firstScript(t, prog).Decl.Items
	got := []string{items[0].Value.String(), items[1].Value.String(), items[2].Value.String()}
	want := []string{"[2][3]{}", "[1][2]{}", "[EMPTY][4]{}"}
	if !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestDeclareIndexForms(t *testing.T) {
	prog := mustParse(t, "dim a[1][2][3], b[1, 2, 3], c[][][3], d[,,3]")
	items := firstScript(t, prog).Decl.Items
	want := []string{"[1][2][3]{}", "[1][2][3]{}", "[EMPTY][EMPTY][3]{}", "[EMPTY][EMPTY][3]{}"}
	for i, w := range want {
		if got := items[i].Value.String(); got != w {
			t.Errorf("%s = %s, want %s", items[i].Name, got, w)
		}
	}
	expectCode(t, "dim e[][][]", diag.SynSizeRequired)
}

func TestParseIsDeterministic(t *testing.T) {
	src := "public p = 1\nfunction f(a, b = 2)\n    result = a + b * 3\nfend\nfor i = 0 to 2\n    print f(i)\nnext\n"
	first := mustParse(t, src)
	second := mustParse(t, src)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("parsing the same source twice gave different programs")
	}
}

func TestArraySizeRequired(t *testing.T) {
	expectCode(t, "dim g[2][]", diag.SynSizeRequired)
	expectCode(t, "dim h[1, ]", diag.SynSizeRequired)
}

func TestConstRequiresValue(t *testing.T) {
	expectCode(t, "const C", diag.SynValueRequired)
}

func TestDimInLoop(t *testing.T) {
	prog := mustParse(t, "while true\n    dim x = 1\nwend")
	body := firstScript(t, prog).Loop.Body
	if len(body) != 1 || !body[0].Stmt.Decl.InLoop {
		t.Fatalf("expected dim flagged as in loop, got %+v", body)
	}
}

func TestGlobalOrder(t *testing.T) {
	input := `print 1
function f()
fend
public p = 1
const c = 2
option explicit
`
	prog := mustParse(t, input)
	want := []ast.StmtKind{ast.StmtOption, ast.StmtConst, ast.StmtPublic, ast.StmtFunction}
	if got := globalKinds(prog); !slices.Equal(got, want) {
		t.Fatalf("global = %v, want %v", got, want)
	}
	if len(prog.Script) != 1 || prog.Script[0].Stmt.Kind != ast.StmtPrint {
		t.Fatalf("unexpected script body: %+v", prog.Script)
	}
	if len(prog.Lines) != 7 {
		t.Errorf("expected 7 source lines, got %d", len(prog.Lines))
	}
}

func TestRowsAndLines(t *testing.T) {
	prog := mustParse(t, "dim a = 1\n\n  print a\n")
	if len(prog.Script) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(prog.Script))
	}
	s := prog.Script[1]
	if s.Row != 3 || s.Line != "  print a" || s.Script != "test.uws" {
		t.Fatalf("unexpected position: row=%d line=%q script=%q", s.Row, s.Line, s.Script)
	}
}

func TestParseFor(t *testing.T) {
	prog := mustParse(t, "for i = 1 to 10 step 2\n    print i\nnext")
	s := firstScript(t, prog)
	if s.Kind != ast.StmtFor {
		t.Fatalf("expected For, got %s", s.Kind)
	}
	f := s.For
	if f.Var != "i" || f.From.String() != "1" || f.To.String() != "10" || f.Step.String() != "2" {
		t.Fatalf("unexpected for header: %+v", f)
	}
	if len(f.Body) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(f.Body))
	}
}

func TestParseForIn(t *testing.T) {
	input := `dim arr[] = 1, 2
for v, idx in arr
    print v
else
    print "done"
endfor
`
	prog := mustParse(t, input)
	s := prog.Script[1].Stmt
	if s.Kind != ast.StmtForIn {
		t.Fatalf("expected ForIn, got %s", s.Kind)
	}
	f := s.ForIn
	if f.Var != "v" || f.Index != "idx" || f.Last != "" || f.Collection.String() != "arr" {
		t.Fatalf("unexpected for-in header: %+v", f)
	}
	if len(f.Body) != 1 || len(f.Else) != 1 {
		t.Fatalf("body=%d else=%d", len(f.Body), len(f.Else))
	}
}

func TestForInLastOnly(t *testing.T) {
	prog := mustParse(t, "dim arr[] = 1\nfor v, , last in arr\nnext")
	f := prog.Script[1].Stmt.ForIn
	if f.Index != "" || f.Last != "last" {
		t.Fatalf("index=%q last=%q", f.Index, f.Last)
	}
}

func TestForIndexWithCounter(t *testing.T) {
	expectCode(t, "for i, j = 1 to 2\nnext", diag.SynUnexpectedToken)
}

func TestWhileAndRepeat(t *testing.T) {
	input := `dim n = 0
while n < 3
    n += 1
wend
repeat
    n -= 1
until n = 0
`
	prog := mustParse(t, input)
	w := prog.Script[1].Stmt
	if w.Kind != ast.StmtWhile || w.Loop.Cond.String() != "(n < 3)" || len(w.Loop.Body) != 1 {
		t.Fatalf("unexpected while: %+v", w.Loop)
	}
	r := prog.Script[2].Stmt
	if r.Kind != ast.StmtRepeat || r.Loop.Cond.String() != "(n == 0)" {
		t.Fatalf("unexpected repeat: %+v", r.Loop)
	}
	if r.Loop.CondRow != 7 {
		t.Errorf("until row = %d, want 7", r.Loop.CondRow)
	}
}

func TestParseSelect(t *testing.T) {
	input := `dim x = 1
select x
    case 1, 2
        print "a"
    case 3
    default
        print "b"
selend
`
	prog := mustParse(t, input)
	s := prog.Script[1].Stmt
	if s.Kind != ast.StmtSelect {
		t.Fatalf("expected Select, got %s", s.Kind)
	}
	if len(s.Select.Cases) != 2 || len(s.Select.Cases[0].Values) != 2 || len(s.Select.Cases[1].Body) != 0 {
		t.Fatalf("unexpected cases: %+v", s.Select.Cases)
	}
	if len(s.Select.Default) != 1 {
		t.Fatalf("expected default body, got %d statements", len(s.Select.Default))
	}
}

func TestSingleLineIf(t *testing.T) {
	prog := mustParse(t, "dim a = 1\nif a = 1 then print \"one\" else print \"other\"")
	s := prog.Script[1].Stmt
	if s.Kind != ast.StmtIfSingle {
		t.Fatalf("expected single-line if, got %s", s.Kind)
	}
	if s.IfLine.Then.Stmt.Kind != ast.StmtPrint || s.IfLine.Else == nil || s.IfLine.Else.Stmt.Kind != ast.StmtPrint {
		t.Fatalf("unexpected branches: %+v", s.IfLine)
	}
	if s.IfLine.Then.Stmt.Expr.String() != `"one"` {
		t.Errorf("then = %s", s.IfLine.Then.Stmt.Expr)
	}
}

func TestSingleLineIfEmptyPrint(t *testing.T) {
	prog := mustParse(t, "if true then print else print 1")
	s := firstScript(t, prog)
	if s.IfLine.Then.Stmt.Expr.String() != "''" {
		t.Fatalf("expected empty print, got %s", s.IfLine.Then.Stmt.Expr)
	}
}

func TestBlockIf(t *testing.T) {
	input := `dim a = 1
if a = 1 then
    print 1
elseif a = 2
    print 2
else
    print 3
endif
`
	prog := mustParse(t, input)
	s := prog.Script[1].Stmt
	if s.Kind != ast.StmtIf {
		t.Fatalf("expected If, got %s", s.Kind)
	}
	if len(s.If.Then) != 1 || len(s.If.ElseIfs) != 1 || len(s.If.Else) != 1 {
		t.Fatalf("unexpected if shape: %+v", s.If)
	}
	cond := s.If.ElseIfs[0].Cond
	if cond.Row != 4 || cond.Stmt.Expr.String() != "(a == 2)" {
		t.Fatalf("elseif cond row=%d expr=%s", cond.Row, cond.Stmt.Expr)
	}
}

func TestIfbRequiresBlock(t *testing.T) {
	expectCode(t, "ifb true then print 1", diag.SynUnexpectedToken)
}

func TestMissingBlockEnd(t *testing.T) {
	expectCode(t, "if true then\n    print 1\n", diag.SynBlockEndMismatch)
	expectCode(t, "print 1\nwend\n", diag.SynBlockEndMismatch)
	expectCode(t, "while true\nnext\n", diag.SynBlockEndMismatch)
}

func TestLoopJumps(t *testing.T) {
	input := `while true
    while true
        break 2
        continue
    wend
wend
`
	prog := mustParse(t, input)
	inner := firstScript(t, prog).Loop.Body[0].Stmt.Loop.Body
	if inner[0].Stmt.Kind != ast.StmtBreak || inner[0].Stmt.Level != 2 {
		t.Fatalf("expected break 2, got %+v", inner[0].Stmt)
	}
	if inner[1].Stmt.Kind != ast.StmtContinue || inner[1].Stmt.Level != 1 {
		t.Fatalf("expected continue 1, got %+v", inner[1].Stmt)
	}
}

func TestLoopJumpOutsideLoop(t *testing.T) {
	expectCode(t, "continue", diag.SynOutOfLoop)
	expectCode(t, "function f()\n    break\nfend", diag.SynOutOfLoop)
}

func TestLoopInFunctionDoesNotLeak(t *testing.T) {
	// цикл снаружи не делает break внутри функции допустимым
	expectCode(t, "while true\n    dim f = function()\n        break\n    fend\nwend", diag.SynOutOfLoop)
}

func TestTry(t *testing.T) {
	input := `try
    print 1
except
    print TRY_ERRMSG
finally
    print 3
endtry
`
	prog := mustParse(t, input)
	tr := firstScript(t, prog).Try
	if !tr.HasExcept || !tr.HasFinally || len(tr.Body) != 1 || len(tr.Except) != 1 || len(tr.Finally) != 1 {
		t.Fatalf("unexpected try: %+v", tr)
	}
}

func TestTryRequiresHandler(t *testing.T) {
	expectCode(t, "try\n    print 1\nendtry", diag.SynBlockEndMismatch)
}

func TestFinallyRestrictions(t *testing.T) {
	input := `for i = 1 to 3
    try
        print i
    finally
        continue
    endtry
next
`
	res := expectCode(t, input, diag.SynNotAllowedInFinally)
	for _, d := range res.Bag.Items() {
		if d.Code == diag.SynNotAllowedInFinally && d.Primary.Start == d.Primary.End {
			t.Errorf("expected the diagnostic to cover the line")
		}
	}
	expectCode(t, "try\nfinally\n    exit\nendtry", diag.SynNotAllowedInFinally)
}

func TestWithTemporary(t *testing.T) {
	input := `with createoleobj("Excel.Application")
    .Visible = true
endwith
`
	prog := mustParse(t, input)
	w := firstScript(t, prog).With
	if w.Expr.String() != "@with_tmp_1" {
		t.Fatalf("with expression = %s", w.Expr)
	}
	if len(w.Body) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(w.Body))
	}
	if got := w.Body[0].Stmt.Expr.String(); got != `@with_tmp_1 := createoleobj("Excel.Application")` {
		t.Errorf("temporary = %s", got)
	}
	if w.Body[0].Row != 0 {
		t.Errorf("temporary row = %d, want 0", w.Body[0].Row)
	}
	if got := w.Body[1].Stmt.Expr.String(); got != "@with_tmp_1.Visible := TRUE" {
		t.Errorf("member assignment = %s", got)
	}
}

func TestNestedWith(t *testing.T) {
	input := `dim a, b
with a
    with b
        .x = 1
    endwith
    .y = 2
endwith
`
	prog := mustParse(t, input)
	outer := prog.Script[1].Stmt.With
	inner := outer.Body[0].Stmt.With
	if got := inner.Body[0].Stmt.Expr.String(); got != "b.x := 1" {
		t.Errorf("inner = %s", got)
	}
	if got := outer.Body[1].Stmt.Expr.String(); got != "a.y := 2" {
		t.Errorf("outer = %s", got)
	}
}

func TestExitExitAndThread(t *testing.T) {
	prog := mustParse(t, "exitexit 3\nexitexit -1\nexitexit\nthread sleep(1)")
	codes := []int32{prog.Script[0].Stmt.Code, prog.Script[1].Stmt.Code, prog.Script[2].Stmt.Code}
	if !slices.Equal(codes, []int32{3, -1, 0}) {
		t.Fatalf("exit codes = %v", codes)
	}
	if s := prog.Script[3].Stmt; s.Kind != ast.StmtThread || s.Expr.String() != "sleep(1)" {
		t.Fatalf("unexpected thread: %+v", s)
	}
	expectCode(t, "exitexit 1.5", diag.SynInvalidExitCode)
	expectCode(t, "thread 1", diag.SynInvalidThreadCall)
}

func TestPrintWhitespace(t *testing.T) {
	expectCode(t, "print(1)", diag.SynWhitespaceRequired)
	prog := mustParse(t, "print\nprint (1)")
	if firstScript(t, prog).Expr.String() != "''" {
		t.Errorf("empty print = %s", firstScript(t, prog).Expr)
	}
}

func TestStatementContinuation(t *testing.T) {
	expectCode(t, "dim a = 1 2", diag.SynStatementContinuation)
	expectCode(t, "print 1 print 2", diag.SynStatementContinuation)
}

func TestStatementSeparator(t *testing.T) {
	prog := mustParse(t, "print 1; print 2")
	if len(prog.Script) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(prog.Script))
	}
}

func TestHashTbl(t *testing.T) {
	prog := mustParse(t, "hashtbl h = HASH_CASECARE, h2\npublic hashtbl ph")
	s := firstScript(t, prog)
	if s.Kind != ast.StmtHashTbl || len(s.HashTbl.Items) != 2 || s.HashTbl.Items[0].Option.String() != "HASH_CASECARE" {
		t.Fatalf("unexpected hashtbl: %+v", s.HashTbl)
	}
	if len(prog.Global) != 1 || !prog.Global[0].Stmt.HashTbl.IsPublic {
		t.Fatalf("expected public hashtbl in global section, got %v", globalKinds(prog))
	}
}

func TestHashSugar(t *testing.T) {
	input := `hash public colors = HASH_SORT
    red = 1
    "blue" = 2
endhash
`
	prog := mustParse(t, input)
	if len(prog.Global) != 1 {
		t.Fatalf("expected public hash in global section, got %v", globalKinds(prog))
	}
	h := prog.Global[0].Stmt.Hash
	if h.Name != "colors" || !h.IsPublic || h.Option.String() != "HASH_SORT" || len(h.Members) != 2 {
		t.Fatalf("unexpected hash: %+v", h)
	}
	if h.Members[0].Key.String() != "red" || h.Members[1].Key.String() != `"blue"` {
		t.Errorf("keys = %s, %s", h.Members[0].Key, h.Members[1].Key)
	}
	expectCode(t, "hash h\n    1 + 2\nendhash", diag.SynInvalidHashMember)
}

func TestEnum(t *testing.T) {
	prog := mustParse(t, "enum E\n    A\n    B = 5\n    C\nendenum\nprint E")
	e := prog.Global[0].Stmt.Enum
	if e.Name != "E" || len(e.Members) != 3 {
		t.Fatalf("unexpected enum: %+v", e)
	}
	for _, m := range []struct {
		name string
		v    float64
	}{{"A", 0}, {"b", 5}, {"C", 6}} {
		if v, ok := e.Lookup(m.name); !ok || v != m.v {
			t.Errorf("%s = %v, %v; want %v", m.name, v, ok, m.v)
		}
	}
}

func TestEnumErrors(t *testing.T) {
	expectCode(t, "enum E\n    A = 3\n    B = 1\nendenum", diag.SynEnumValueTooSmall)
	expectCode(t, "enum E\n    A\n    A\nendenum", diag.SynEnumMemberDuplicated)
	expectCode(t, "enum E\n    A = \"x\"\nendenum", diag.SynEnumValueNotNumber)
}

func TestTextBlock(t *testing.T) {
	prog := mustParse(t, "textblock T\nhello\nworld\nendtextblock\nprint T\ntextblock\ncomment\nendtextblock\n")
	if len(prog.Global) != 1 {
		t.Fatalf("expected one textblock constant, got %v", globalKinds(prog))
	}
	tb := prog.Global[0].Stmt.TextBlock
	if tb.Name != "T" || tb.Value.Lit.Kind != ast.LitTextBlock || tb.Value.Lit.Str != "hello\nworld" {
		t.Fatalf("unexpected textblock: %+v", tb)
	}
	if len(prog.Script) != 1 {
		t.Fatalf("unnamed textblock must not produce a statement, got %d", len(prog.Script))
	}
	expectCode(t, "textblock 1\nbody\nendtextblock", diag.SynTextBlockName)
}

func TestStruct(t *testing.T) {
	input := `struct Point
    x: long
    y: long
    name: var wchar[32]
endstruct
`
	prog := mustParse(t, input)
	st := prog.Global[0].Stmt.Struct
	if st.Name != "Point" || len(st.Members) != 3 {
		t.Fatalf("unexpected struct: %+v", st)
	}
	m := st.Members[2]
	if m.Type != "wchar" || !m.IsRef || m.Size.Kind != ast.SizeNum || m.Size.N != 32 {
		t.Fatalf("unexpected member: %+v", m)
	}
	expectCode(t, "struct S\n    x long\nendstruct", diag.SynBadStructMember)
}

func TestOptions(t *testing.T) {
	prog := mustParse(t, "option explicit\noption position = 10, 20\noption logpath = \"c:\\log\"\noption loglines = 400\ndim a\na = 1")
	if len(prog.Global) != 4 {
		t.Fatalf("expected 4 options, got %v", globalKinds(prog))
	}
	opts := make([]*ast.OptionSetting, len(prog.Global))
	for i, s := range prog.Global {
		opts[i] = s.Stmt.Option
	}
	if opts[0].Name != ast.OptExplicit || !opts[0].Bool {
		t.Errorf("explicit = %+v", opts[0])
	}
	if opts[1].X != 10 || opts[1].Y != 20 {
		t.Errorf("position = %+v", opts[1])
	}
	if opts[2].Str != `c:\log` {
		t.Errorf("logpath = %q", opts[2].Str)
	}
	if opts[3].Num != 400 {
		t.Errorf("loglines = %v", opts[3].Num)
	}
}

func TestOptionErrors(t *testing.T) {
	expectCode(t, "option foo", diag.SynUnexpectedOption)
	expectCode(t, "option loglines = \"x\"", diag.SynInvalidOptionValue)
	expectCode(t, "option dlgtitle", diag.SynInvalidOptionValue)
	expectCode(t, "function f()\n    option explicit\nfend", diag.SynOptionNotAllowed)
}

func TestFunctionDefinition(t *testing.T) {
	input := `function add(a, var b, c[], d: number = 1)
    result = a + b
fend
async procedure p(args rest)
fend
`
	prog := mustParse(t, input)
	fns := prog.Functions()
	if len(fns) != 2 {
		t.Fatalf("expected 2 functions, got %d", len(fns))
	}
	var params []string
	for _, p := range fns[0].Params {
		params = append(params, p.String())
	}
	want := []string{"a", "var b", "c[]", "d: number = 1"}
	if !slices.Equal(params, want) {
		t.Fatalf("params = %v, want %v", params, want)
	}
	if !fns[1].IsProc || !fns[1].IsAsync {
		t.Fatalf("expected async procedure, got %+v", fns[1])
	}
	if got := fns[1].Params[0].String(); got != "args rest" {
		t.Errorf("variadic = %s", got)
	}
}

func TestParameterErrors(t *testing.T) {
	expectCode(t, "function f(a = 1, b)\nfend", diag.SynParamNeedsDefault)
	expectCode(t, "function f(args a, b)\nfend", diag.SynParamAfterVariadic)
	expectCode(t, "function f(var a = 1)\nfend", diag.SynInvalidParam)
	expectCode(t, "async print 1", diag.SynInvalidAsync)
}

func TestParameterErrorSkipsBody(t *testing.T) {
	tests := []string{
		"function f(b = 1, a)\nfend",
		"function f(b = 1, a)\n    dim g = function(x)\n        result = x\n    fend\nfend\nprint 1",
		"procedure p(a b)\n    print a\nfend",
		"function f() extra\nfend",
	}
	for _, src := range tests {
		res := parseSource(t, src)
		if res.Bag.Len() != 1 {
			t.Errorf("%q: want a single diagnostic, got %s", src, diagnosticsSummary(res.Bag))
		}
	}
	res := parseSource(t, "function f(b = 1, a)\nfend\nprint 1")
	if len(res.Program.Script) != 1 || res.Program.Script[0].Stmt.Kind != ast.StmtPrint {
		t.Fatalf("statement after the broken function is lost: %d statements", len(res.Program.Script))
	}
}

func TestDefaultParamIsEmpty(t *testing.T) {
	prog := mustParse(t, "function f(a, b =)\nfend")
	p := prog.Functions()[0].Params[1]
	if p.Kind != ast.ParamDefault || p.Default.String() != "EMPTY" {
		t.Fatalf("unexpected param: %s", p)
	}
}

func TestModuleMembers(t *testing.T) {
	input := `module M
    const C = 1
    public p = 2
    dim d = 3
    function f()
        result = 1
    fend
endmodule
`
	prog := mustParse(t, input)
	if got := globalKinds(prog); !slices.Equal(got, []ast.StmtKind{ast.StmtModule}) {
		t.Fatalf("global = %v", got)
	}
	members := prog.Global[0].Stmt.Module.Members
	var kinds []ast.StmtKind
	for _, m := range members {
		kinds = append(kinds, m.Stmt.Kind)
	}
	want := []ast.StmtKind{ast.StmtConst, ast.StmtPublic, ast.StmtDim, ast.StmtFunction}
	if !slices.Equal(kinds, want) {
		t.Fatalf("members = %v, want %v", kinds, want)
	}
	if len(prog.Script) != 0 {
		t.Fatalf("module members leaked into the script body")
	}
}

func TestClassConstructor(t *testing.T) {
	input := `class Foo
    procedure Foo()
    fend
    procedure _Foo_()
    fend
endclass
`
	prog := mustParse(t, input)
	m := prog.Global[0].Stmt
	if m.Kind != ast.StmtClass || !m.Module.HasDestructor {
		t.Fatalf("unexpected class: %+v", m.Module)
	}
	expectCode(t, "class Foo\n    dim x\nendclass", diag.SynNoConstructor)
}

func TestPlacementErrors(t *testing.T) {
	expectCode(t, "module M\n    print 1\nendmodule", diag.SynNotAllowedInModule)
	expectCode(t, "if true then\n    function f()\n    fend\nendif", diag.SynDefinitionNotAllowed)
	expectCode(t, "function f()\n    function g()\n    fend\nfend", diag.SynDefinitionNotAllowed)
}

func TestMaxErrors(t *testing.T) {
	res := parseSourceWithOptions(t, "print(1)\nprint(2)\nprint(3)", Options{MaxErrors: 1})
	if res.Bag.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %d: %s", res.Bag.Len(), diagnosticsSummary(res.Bag))
	}
}

func TestRecoveryContinuesAfterError(t *testing.T) {
	res := parseSource(t, "print(1)\nprint 2\n")
	if len(res.Program.Script) != 1 {
		t.Fatalf("expected the valid statement to survive, got %d", len(res.Program.Script))
	}
}

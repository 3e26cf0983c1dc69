package binfmt

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"uwscript/internal/ast"
)

func sampleProgram() *ast.Program {
	fn := &ast.FuncDef{
		Name:   "add",
		Params: []ast.Param{{Name: "a"}, {Name: "b", Kind: ast.ParamDefault, Default: ast.Num(1)}},
		Body: ast.Block{
			ast.NewStmt(&ast.Stmt{
				Kind: ast.StmtExpr,
				Expr: ast.Assign(ast.Ident("result"), ast.Infix(ast.OpPlus, ast.Ident("a"), ast.Ident("b"))),
			}, 3, "  result = a + b", "lib.uws"),
		},
	}
	return &ast.Program{
		Global: []ast.StatementWithRow{
			ast.NewStmt(&ast.Stmt{Kind: ast.StmtFunction, Func: fn}, 2, "function add(a, b = 1)", "lib.uws"),
		},
		Script: []ast.StatementWithRow{
			ast.NewStmt(&ast.Stmt{
				Kind: ast.StmtPrint,
				Expr: ast.Call(ast.Ident("add"), ast.EmptyArg(), ast.ExpandStr("x")),
			}, 1, `print add(, "x")`, "lib.uws"),
		},
		Lines: []string{`print add(, "x")`, "function add(a, b = 1)", "  result = a + b", "fend"},
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	prog := sampleProgram()
	data, err := Serialize(prog)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	got, err := Deserialize(data)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if !reflect.DeepEqual(got, prog) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, prog)
	}
}

func TestDeserializeRejectsForeignData(t *testing.T) {
	if _, err := Deserialize([]byte("print 1")); !errors.Is(err, ErrBadMagic) {
		t.Fatalf("want ErrBadMagic, got %v", err)
	}
	if _, err := Deserialize(nil); !errors.Is(err, ErrBadMagic) {
		t.Fatalf("want ErrBadMagic for empty input, got %v", err)
	}
	data, err := Serialize(&ast.Program{})
	if err != nil {
		t.Fatal(err)
	}
	data[5]++
	if _, err := Deserialize(data); !errors.Is(err, ErrSchema) {
		t.Fatalf("want ErrSchema, got %v", err)
	}
}

func TestSaveLoadProgram(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.uwsl")
	prog := sampleProgram()
	if err := SaveProgram(path, prog); err != nil {
		t.Fatalf("SaveProgram: %v", err)
	}
	got, err := LoadProgram(path)
	if err != nil {
		t.Fatalf("LoadProgram: %v", err)
	}
	if !reflect.DeepEqual(got, prog) {
		t.Fatalf("loaded program differs")
	}
	matches, _ := filepath.Glob(filepath.Join(filepath.Dir(path), ".uwsl-*"))
	if len(matches) != 0 {
		t.Fatalf("temp files left behind: %v", matches)
	}
}

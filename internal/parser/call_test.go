package parser

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"uwscript/internal/ast"
	"uwscript/internal/binfmt"
	"uwscript/internal/diag"
	"uwscript/internal/include"
	"uwscript/internal/source"
)

// writeScripts создаёт файлы в dir и возвращает путь к первому из них по имени.
func writeScripts(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func parseDiskFile(t *testing.T, path string, opts Options) Result {
	t.Helper()
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("load %s: %v", path, err)
	}
	if opts.MaxErrors == 0 {
		opts.MaxErrors = 100
	}
	return ParseFile(context.Background(), fs, id, opts)
}

func TestCallMergesGlobalsOnce(t *testing.T) {
	dir := writeScripts(t, map[string]string{
		"main.uws": "call lib.uws\ncall lib\nprint shared\nhelper()\n",
		"lib.uws":  "public shared = 1\nprocedure helper()\nfend\n",
	})
	res := parseDiskFile(t, filepath.Join(dir, "main.uws"), Options{})
	if res.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(res.Bag))
	}
	prog := res.Program
	if got := globalKinds(prog); !slices.Equal(got, []ast.StmtKind{ast.StmtPublic, ast.StmtFunction}) {
		t.Fatalf("global = %v", got)
	}
	if len(prog.Script) != 4 {
		t.Fatalf("expected 4 statements, got %d", len(prog.Script))
	}
	for i := 0; i < 2; i++ {
		s := prog.Script[i].Stmt
		if s.Kind != ast.StmtCall || s.Call.Target != filepath.Join(dir, "lib.uws") {
			t.Errorf("statement %d: unexpected call %+v", i, s.Call)
		}
		if s.Call.Program == nil || len(s.Call.Program.Global) != 2 {
			t.Errorf("statement %d: the called program must be parsed on every call", i)
		}
	}
	if len(res.Calls) != 1 {
		t.Fatalf("expected one called scope, got %d", len(res.Calls))
	}
}

func TestCallArguments(t *testing.T) {
	dir := writeScripts(t, map[string]string{
		"main.uws": "call lib.uws(1, \"two\")\n",
		"lib.uws":  "print PARAM_STR[0]\n",
	})
	res := parseDiskFile(t, filepath.Join(dir, "main.uws"), Options{})
	if res.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(res.Bag))
	}
	args := firstScript(t, res.Program).Call.Args
	if len(args) != 2 || args[1].String() != `"two"` {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestCallCycle(t *testing.T) {
	dir := writeScripts(t, map[string]string{
		"a.uws": "call b\nprint 1\n",
		"b.uws": "call a\nprint 2\n",
	})
	res := parseDiskFile(t, filepath.Join(dir, "a.uws"), Options{})
	if res.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(res.Bag))
	}
	b := firstScript(t, res.Program).Call.Program
	inner := b.Script[0].Stmt
	if inner.Kind != ast.StmtCall || len(inner.Call.Program.Script) != 0 {
		t.Fatalf("expected the cyclic call to be empty, got %+v", inner.Call.Program)
	}
}

func TestCallMissingFile(t *testing.T) {
	dir := writeScripts(t, map[string]string{"main.uws": "call missing\nprint 1\n"})
	res := parseDiskFile(t, filepath.Join(dir, "main.uws"), Options{})
	if !hasCode(res.Bag, diag.IOLoadFileError) {
		t.Fatalf("expected %s, got %s", diag.IOLoadFileError.ID(), diagnosticsSummary(res.Bag))
	}
	if len(res.Program.Script) != 1 || res.Program.Script[0].Stmt.Kind != ast.StmtPrint {
		t.Fatalf("failed call must be dropped, got %d statements", len(res.Program.Script))
	}
}

func TestCalledScriptErrors(t *testing.T) {
	dir := writeScripts(t, map[string]string{
		"main.uws": "call lib\n",
		"lib.uws":  "print(1)\n",
	})
	res := parseDiskFile(t, filepath.Join(dir, "main.uws"), Options{})
	if !hasCode(res.Bag, diag.IOCalledScriptErrs) || !hasCode(res.Bag, diag.SynWhitespaceRequired) {
		t.Fatalf("expected the called script errors, got %s", diagnosticsSummary(res.Bag))
	}
}

func TestSharedCalledScriptReportedOnce(t *testing.T) {
	dir := writeScripts(t, map[string]string{
		"main.uws": "call a\ncall b\ncall lib\n",
		"a.uws":    "call lib\n",
		"b.uws":    "call lib\n",
		"lib.uws":  "print(1)\n",
	})
	res := parseDiskFile(t, filepath.Join(dir, "main.uws"), Options{})
	syntax, libErrs := 0, 0
	for _, d := range res.Bag.Items() {
		switch {
		case d.Code == diag.SynWhitespaceRequired:
			syntax++
		case d.Code == diag.IOCalledScriptErrs && strings.HasSuffix(d.Message, "lib.uws has errors"):
			libErrs++
		}
	}
	if syntax != 1 || libErrs != 1 {
		t.Fatalf("want one %s and one %s for lib, got %s",
			diag.SynWhitespaceRequired.ID(), diag.IOCalledScriptErrs.ID(), diagnosticsSummary(res.Bag))
	}

	var names []string
	for _, loc := range res.Included {
		names = append(names, filepath.Base(loc))
	}
	if !slices.Equal(names, []string{"main.uws", "a.uws", "lib.uws", "b.uws"}) {
		t.Fatalf("included = %v", names)
	}
}

func TestRepeatedDiagnosticIsDropped(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.uws", []byte("print 1\n"))
	p := newParser(context.Background(), fs, fs.Get(id), Options{MaxErrors: 10})
	sp := source.Span{File: id, Start: 0, End: 5}
	p.errAt(diag.SynUnexpectedToken, sp, "unexpected 'print'")
	p.errAt(diag.SynUnexpectedToken, sp, "unexpected 'print'")
	p.errAt(diag.SynUnexpectedToken, sp, "unexpected 'print' again")
	if p.bag.Len() != 2 {
		t.Fatalf("want 2 diagnostics, got %s", diagnosticsSummary(p.bag))
	}
}

func TestCalledScriptUsesCallerOptions(t *testing.T) {
	tests := []struct {
		name     string
		main     string
		lib      string
		explicit bool
	}{
		{"caller explicit", "option explicit\ncall lib\n", "x = 1\nprint x\n", true},
		{"caller explicit after call", "call lib\noption explicit\n", "x = 1\nprint x\n", true},
		{"own option ignored", "call lib\n", "option explicit\ny = 2\nprint y\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeScripts(t, map[string]string{"main.uws": tt.main, "lib.uws": tt.lib})
			res := parseDiskFile(t, filepath.Join(dir, "main.uws"), Options{})
			if got := hasCode(res.Bag, diag.SemaExplicit); got != tt.explicit {
				t.Fatalf("%s reported = %v, want %v: %s",
					diag.SemaExplicit.ID(), got, tt.explicit, diagnosticsSummary(res.Bag))
			}
		})
	}
}

func TestCalledScriptNames(t *testing.T) {
	// имя из основного скрипта видно во включённом и наоборот
	dir := writeScripts(t, map[string]string{
		"main.uws": "const LIMIT = 3\ncall lib\nprint fromlib\n",
		"lib.uws":  "public fromlib = LIMIT\nprint nowhere\n",
	})
	res := parseDiskFile(t, filepath.Join(dir, "main.uws"), Options{})
	var undeclared []string
	for _, d := range res.Bag.Items() {
		if d.Code == diag.SemaUndeclared {
			undeclared = append(undeclared, d.Message)
		}
	}
	if len(undeclared) != 1 || undeclared[0] != "NOWHERE is not declared" {
		t.Fatalf("undeclared = %v", undeclared)
	}
}

func TestCallBinary(t *testing.T) {
	lib, _ := ParseSource(context.Background(), "lib.uws", []byte("public shared = 1\nfunction f()\nfend\n"), Options{})
	if lib.HasErrors() {
		t.Fatalf("lib: %s", diagnosticsSummary(lib.Bag))
	}
	dir := writeScripts(t, map[string]string{"main.uws": "call lib.uwsl\n"})
	if err := binfmt.SaveProgram(filepath.Join(dir, "lib.uwsl"), lib.Program); err != nil {
		t.Fatalf("save: %v", err)
	}
	res := parseDiskFile(t, filepath.Join(dir, "main.uws"), Options{})
	if res.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(res.Bag))
	}
	if got := globalKinds(res.Program); !slices.Equal(got, []ast.StmtKind{ast.StmtPublic, ast.StmtFunction}) {
		t.Fatalf("global = %v", got)
	}
	if len(res.Calls) != 0 {
		t.Errorf("binary programs carry no name records, got %d", len(res.Calls))
	}
}

func TestCallCorruptBinary(t *testing.T) {
	dir := writeScripts(t, map[string]string{
		"main.uws": "call lib.uwsl\n",
		"lib.uwsl": "not a program",
	})
	res := parseDiskFile(t, filepath.Join(dir, "main.uws"), Options{})
	if !hasCode(res.Bag, diag.IODecodeBinary) {
		t.Fatalf("expected %s, got %s", diag.IODecodeBinary.ID(), diagnosticsSummary(res.Bag))
	}
}

func TestCallURI(t *testing.T) {
	var requested []string
	fetcher := &include.Fetcher{
		Files: include.FileLoader{},
		Web: include.LoaderFunc(func(_ context.Context, location string) ([]byte, error) {
			requested = append(requested, location)
			if location == "https://example.com/lib.uws" {
				return []byte("public remote = 1\n"), nil
			}
			return nil, include.ErrFetch
		}),
	}
	opts := Options{Fetcher: fetcher}
	res := parseSourceWithOptions(t, "call url[https://example.com/lib.uws]\nprint remote\n", opts)
	if res.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(res.Bag))
	}
	if len(res.Calls) != 1 || res.Calls[0].Location != "https://example.com/lib.uws" {
		t.Fatalf("unexpected calls: %+v", res.Calls)
	}

	res = parseSourceWithOptions(t, "call url[https://example.com/missing.uws]\n", opts)
	if !hasCode(res.Bag, diag.IOFetchError) {
		t.Fatalf("expected %s, got %s", diag.IOFetchError.ID(), diagnosticsSummary(res.Bag))
	}
	if !slices.Contains(requested, "https://example.com/missing.uws") {
		t.Errorf("requested = %v", requested)
	}
}

func TestFetchErrorsWrap(t *testing.T) {
	f := include.NewFetcher(0)
	_, err := f.Fetch(context.Background(), include.ResolvePath("nope", t.TempDir(), ""))
	if !errors.Is(err, include.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

package parser

import (
	"slices"
	"testing"

	"uwscript/internal/ast"
	"uwscript/internal/diag"
)

func parseDefDll(t *testing.T, input string) *ast.DefDll {
	t.Helper()
	prog := mustParse(t, input)
	for _, s := range prog.Global {
		if s.Stmt.Kind == ast.StmtDefDll {
			return s.Stmt.DefDll
		}
	}
	t.Fatalf("%q: no def_dll in global section", input)
	return nil
}

func dllParamStrings(params []ast.DllParam) []string {
	out := make([]string, len(params))
	for i, p := range params {
		out[i] = p.String()
	}
	return out
}

func TestDefDll(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		fn     string
		alias  string
		params []string
		ret    ast.DllType
		path   string
	}{
		{
			name:   "basic",
			input:  "def_dll MessageBoxA(hwnd, string, string, uint):int:user32.dll",
			fn:     "MessageBoxA",
			params: []string{"hwnd", "string", "string", "uint"},
			ret:    ast.DllInt,
			path:   "user32.dll",
		},
		{
			name:   "alias",
			input:  "def_dll msgbox2:MessageBoxW(hwnd, wstring, wstring, uint):int:user32.dll",
			fn:     "MessageBoxW",
			alias:  "msgbox2",
			params: []string{"hwnd", "wstring", "wstring", "uint"},
			ret:    ast.DllInt,
			path:   "user32.dll",
		},
		{
			name:  "void without type",
			input: `def_dll hogefunc():C:\hoge.dll`,
			fn:    "hogefunc",
			ret:   ast.DllVoid,
			path:  `C:\hoge.dll`,
		},
		{
			name:  "void with empty type",
			input: `def_dll hogefunc()::C:\hoge\hoge.dll`,
			fn:    "hogefunc",
			ret:   ast.DllVoid,
			path:  `C:\hoge\hoge.dll`,
		},
		{
			name:   "struct and ref params",
			input:  "def_dll GetCursorPos({long, long}, var byte[260], var dword[]):bool:user32.dll",
			fn:     "GetCursorPos",
			params: []string{"{long, long}", "var byte[260]", "var dword[]"},
			ret:    ast.DllBool,
			path:   "user32.dll",
		},
		{
			name:   "callback",
			input:  "def_dll EnumWindows(callback(hwnd, long):bool, long):bool:user32.dll",
			fn:     "EnumWindows",
			params: []string{"callback(hwnd, long):bool", "long"},
			ret:    ast.DllBool,
			path:   "user32.dll",
		},
		{
			name:   "callback without return",
			input:  "def_dll Register(callback(int)):kernel32.dll",
			fn:     "Register",
			params: []string{"callback(int):void"},
			ret:    ast.DllVoid,
			path:   "kernel32.dll",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := parseDefDll(t, tt.input)
			if d.Name != tt.fn || d.Alias != tt.alias {
				t.Errorf("name = %q alias = %q, want %q %q", d.Name, d.Alias, tt.fn, tt.alias)
			}
			if got := dllParamStrings(d.Params); !slices.Equal(got, tt.params) {
				t.Errorf("params = %v, want %v", got, tt.params)
			}
			if d.Ret != tt.ret {
				t.Errorf("ret = %s, want %s", d.Ret, tt.ret)
			}
			if d.Path != tt.path {
				t.Errorf("path = %q, want %q", d.Path, tt.path)
			}
		})
	}
}

func TestDefDllIsAlsoAStatement(t *testing.T) {
	prog := mustParse(t, "def_dll Beep(dword, dword):bool:kernel32.dll\nBeep(440, 100)")
	if len(prog.Script) != 2 || prog.Script[0].Stmt.Kind != ast.StmtDefDll {
		t.Fatalf("expected def_dll in the script body, got %d statements", len(prog.Script))
	}
	if got := globalKinds(prog); !slices.Equal(got, []ast.StmtKind{ast.StmtDefDll}) {
		t.Fatalf("global = %v", got)
	}
}

func TestDefDllConstSize(t *testing.T) {
	d := parseDefDll(t, "const MAX_PATH = 260\ndef_dll GetModuleFileNameA(handle, var pchar[MAX_PATH], dword):dword:kernel32.dll")
	p := d.Params[1]
	if p.Size.Kind != ast.SizeConst || p.Size.Const != "MAX_PATH" || !p.IsRef {
		t.Fatalf("unexpected size: %+v", p)
	}
}

func TestDefDllErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diag.Code
	}{
		{"unknown param type", "def_dll f(foo):user32.dll", diag.SynBadDllType},
		{"unknown return type", "def_dll f(int):foo:user32.dll", diag.SynBadDllType},
		{"bad size", "def_dll f(byte[-1]):user32.dll", diag.SynBadDllParam},
		{"missing path", "def_dll f(int):int:", diag.SynUnexpectedToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectCode(t, tt.input, tt.code)
		})
	}
}

func TestDefDllUndeclaredSize(t *testing.T) {
	expectCode(t, "def_dll f(var byte[SIZE]):user32.dll", diag.SemaUndeclared)
}

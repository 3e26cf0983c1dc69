package diagfmt

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"uwscript/internal/parser"
)

const dumpSource = `public total = 0
for i = 1 to 3
    total += i
next
function twice(n)
    result = n * 2
fend
`

func parseForDump(t *testing.T) parser.Result {
	t.Helper()
	res, _ := parser.ParseSource(context.Background(), "dump.uws", []byte(dumpSource), parser.Options{})
	if res.HasErrors() {
		t.Fatalf("unexpected diagnostics: %d", res.Bag.Len())
	}
	return res
}

func TestFormatASTPretty(t *testing.T) {
	res := parseForDump(t)
	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, res.Program, "dump.uws"); err != nil {
		t.Fatalf("FormatASTPretty: %v", err)
	}
	want := `Program dump.uws
├─ Block: Global
│  ├─ Stmt: Public total = 0 (row 1)
│  └─ Stmt: Function function twice(n) (row 5)
│     └─ Block: Body
│        └─ Stmt: Expression result := (n * 2) (row 6)
└─ Block: Script
   └─ Stmt: For i = 1 to 3 (row 2)
      └─ Block: Body
         └─ Stmt: Expression total += i (row 3)
`
	if got := buf.String(); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatASTJSON(t *testing.T) {
	res := parseForDump(t)
	var buf bytes.Buffer
	if err := FormatASTJSON(&buf, res.Program, "dump.uws"); err != nil {
		t.Fatalf("FormatASTJSON: %v", err)
	}
	var root ASTNodeOutput
	if err := json.Unmarshal(buf.Bytes(), &root); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if root.Type != "Program" || len(root.Children) != 2 {
		t.Fatalf("unexpected root: %+v", root)
	}
	script := root.Children[1]
	if script.Kind != "Script" || len(script.Children) != 1 {
		t.Fatalf("unexpected script block: %+v", script)
	}
	loop := script.Children[0]
	if loop.Kind != "For" || loop.Row != 2 || loop.Text != "i = 1 to 3" {
		t.Errorf("unexpected loop node: %+v", loop)
	}
}

func TestBuildASTOutputCallProgram(t *testing.T) {
	res := parseForDump(t)
	// вложенная программа call раскрывается в её секции
	call := BuildASTOutput(res.Program, "lib.uws")
	call.Type = "Stmt"
	if got := nodeLabel(call); !strings.HasPrefix(got, "Stmt lib.uws") {
		t.Errorf("label = %q", got)
	}
	if empty := BuildASTOutput(nil, "none"); len(empty.Children) != 0 {
		t.Errorf("nil program must have no children")
	}
}

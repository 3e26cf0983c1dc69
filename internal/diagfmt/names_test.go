package diagfmt

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"uwscript/internal/parser"
	"uwscript/internal/symbols"
)

func TestFormatNamesPretty(t *testing.T) {
	src := "const LIMIT = 3\n" + dumpSource
	res, fs := parser.ParseSource(context.Background(), "dump.uws", []byte(src), parser.Options{})
	if res.HasErrors() {
		t.Fatalf("unexpected diagnostics: %d", res.Bag.Len())
	}
	var buf bytes.Buffer
	if err := FormatNamesPretty(&buf, BuildNamesOutput(fs, "dump.uws", res.Scope, res.Calls)); err != nil {
		t.Fatalf("FormatNamesPretty: %v", err)
	}
	want := `Names dump.uws
└─ Script dump.uws
   ├─ Const LIMIT (row 1)
   ├─ Public TOTAL (row 2)
   └─ Definition TWICE (row 6)
`
	if got := buf.String(); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatNamesJSONWithCalls(t *testing.T) {
	res, fs := parser.ParseSource(context.Background(), "main.uws", []byte("public shared = 1\n"), parser.Options{})
	lib, _ := parser.ParseSource(context.Background(), "lib.uws", []byte("procedure helper()\nfend\n"), parser.Options{})
	calls := []symbols.CallScope{{Location: "lib.uws", Scope: lib.Scope}}

	var buf bytes.Buffer
	if err := FormatNamesJSON(&buf, BuildNamesOutput(fs, "main.uws", res.Scope, calls)); err != nil {
		t.Fatalf("FormatNamesJSON: %v", err)
	}
	var root ASTNodeOutput
	if err := json.Unmarshal(buf.Bytes(), &root); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(root.Children) != 2 {
		t.Fatalf("want main and one call, got %+v", root.Children)
	}
	call := root.Children[1]
	if call.Kind != "call" || call.Text != "lib.uws" || len(call.Children) != 1 || call.Children[0].Text != "HELPER" {
		t.Fatalf("unexpected call node %+v", call)
	}
}

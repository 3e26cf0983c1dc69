package diag

import (
	"testing"

	"uwscript/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	mainFile := fs.Add("/workspace/testdata/golden/main.uws", []byte("a\nb\n"), 0)
	calledFile := fs.Add("/workspace/testdata/golden/lib.uws", []byte("x\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevError,
			Code:     IOCalledScriptErrs,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: mainFile, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: calledFile, Start: 0, End: 1}, Msg: "error is here"},
			},
		},
		{
			Severity: SevWarning,
			Code:     SemaUndeclared,
			Message:  "another",
			Primary:  source.Span{File: mainFile, Start: 2, End: 3},
		},
	}

	expected := "note IO4003 testdata/golden/lib.uws:1:1 error is here\n" +
		"error IO4003 testdata/golden/main.uws:1:1 first line second\n" +
		"warning SEM3004 testdata/golden/main.uws:2:1 another"

	if got := FormatGoldenDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestFormatShortDiagnosticsUsesScriptName(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("dir/main.uws", []byte("print x\n"))
	diags := []Diagnostic{NewError(SemaUndeclared, source.Span{File: id, Start: 6, End: 7}, "Undeclared identifier: x")}

	want := "error SEM3004 main.uws:1:7 Undeclared identifier: x"
	if got := FormatShortDiagnostics(diags, fs, false); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestParseErrorRendering(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.uws", []byte("\nprint x\n"))
	bag := NewBag(10)
	r := BagReporter{Bag: bag}
	ReportError(r, SemaUndeclared, source.Span{File: id, Start: 7, End: 8}, "x").Emit()
	ReportWarning(r, SynInfo, source.Span{File: id, Start: 0, End: 0}, "ignored").Emit()

	errs := ToParseErrors(bag, fs)
	if len(errs) != 1 {
		t.Fatalf("expected 1 parse error, got %d", len(errs))
	}
	pe := errs[0]
	if pe.Start != (source.LineCol{Line: 2, Col: 7}) || pe.End != (source.LineCol{Line: 2, Col: 8}) {
		t.Fatalf("unexpected range %+v..%+v", pe.Start, pe.End)
	}
	if got, want := pe.Error(), "SEM3004 Undeclared identifier: x [main.uws:2:7]"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestBagLimit(t *testing.T) {
	bag := NewBag(1)
	if !bag.Add(NewError(SynUnexpectedToken, source.Span{}, "a")) {
		t.Fatalf("first Add must succeed")
	}
	if bag.Add(NewError(SynUnexpectedToken, source.Span{}, "b")) {
		t.Fatalf("second Add must be rejected by the limit")
	}
	if !bag.HasErrors() || bag.Len() != 1 {
		t.Fatalf("unexpected bag state: len=%d", bag.Len())
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{File: 0, Start: 1, End: 2}
	r.Report(SemaDuplicate, SevError, sp, "X", nil, nil)
	r.Report(SemaDuplicate, SevError, sp, "X", nil, nil)
	r.Report(SemaDuplicate, SevError, sp, "Y", nil, nil)
	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics after dedup, got %d", bag.Len())
	}
}

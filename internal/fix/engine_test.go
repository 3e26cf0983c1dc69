package fix

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"uwscript/internal/diag"
	"uwscript/internal/source"
)

func loadScript(t *testing.T, content string) (*source.FileSet, source.FileID, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.uws")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return fs, id, path
}

// explicitAt builds the diagnostic the name checks emit for an
// undeclared assignment of the occurrence-th name in the file.
func explicitAt(t *testing.T, fs *source.FileSet, id source.FileID, name string, occurrence int) diag.Diagnostic {
	t.Helper()
	content := string(fs.Get(id).Content)
	at := -1
	for i := 0; i <= occurrence; i++ {
		next := strings.Index(content[at+1:], name)
		if next < 0 {
			t.Fatalf("%q occurrence %d not found", name, occurrence)
		}
		at += 1 + next
	}
	return diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SemaExplicit,
		Message:  name + " is assigned without declaration",
		Primary:  source.Span{File: id, Start: uint32(at), End: uint32(at + len(name))},
	}
}

func annotated(fs *source.FileSet, ds ...diag.Diagnostic) []diag.Diagnostic {
	bag := diag.NewBag(100)
	for _, d := range ds {
		bag.Add(d)
	}
	Annotate(fs, bag)
	return bag.Items()
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return string(data)
}

func TestApplyOnce(t *testing.T) {
	fs, id, path := loadScript(t, "x = 1\ny = 2\n")
	ds := annotated(fs, explicitAt(t, fs, id, "y", 0), explicitAt(t, fs, id, "x", 0))

	res, err := Apply(fs, ds, ApplyOptions{Mode: ApplyModeOnce})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Applied) != 1 || res.Applied[0].Code != diag.SemaExplicit {
		t.Fatalf("applied = %+v", res.Applied)
	}
	// первым идёт исправление, стоящее раньше в файле
	if got := readFile(t, path); got != "dim x = 1\ny = 2\n" {
		t.Fatalf("content = %q", got)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v", info.Mode().Perm())
	}
}

func TestApplyAll(t *testing.T) {
	fs, id, path := loadScript(t, "x = 1\ny = 2\n")
	ds := annotated(fs, explicitAt(t, fs, id, "x", 0), explicitAt(t, fs, id, "y", 0))

	res, err := Apply(fs, ds, ApplyOptions{Mode: ApplyModeAll})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Applied) != 2 || len(res.FileChanges) != 1 || res.FileChanges[0].EditCount != 2 {
		t.Fatalf("result = %+v", res)
	}
	if got := readFile(t, path); got != "dim x = 1\ndim y = 2\n" {
		t.Fatalf("content = %q", got)
	}
}

func TestApplyByID(t *testing.T) {
	fs, id, path := loadScript(t, "x = 1\ny = 2\n")
	ds := annotated(fs, explicitAt(t, fs, id, "x", 0), explicitAt(t, fs, id, "y", 0))
	target := ds[1].Fixes[0].ID

	if _, err := Apply(fs, ds, ApplyOptions{Mode: ApplyModeID, TargetID: target}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := readFile(t, path); got != "x = 1\ndim y = 2\n" {
		t.Fatalf("content = %q", got)
	}

	res, err := Apply(fs, ds, ApplyOptions{Mode: ApplyModeID, TargetID: "nope"})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("expected ErrNoFixes, got %v", err)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Reason != "fix id not found" {
		t.Errorf("skipped = %+v", res.Skipped)
	}
}

func TestApplySkipsDuplicateIDs(t *testing.T) {
	fs, id, path := loadScript(t, "x = 1\nprint 1\nx = 2\n")
	ds := annotated(fs, explicitAt(t, fs, id, "x", 0), explicitAt(t, fs, id, "x", 1))

	res, err := Apply(fs, ds, ApplyOptions{Mode: ApplyModeAll})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Applied) != 1 || len(res.Skipped) != 1 || res.Skipped[0].Reason != "duplicate fix id" {
		t.Fatalf("result = %+v", res)
	}
	if got := readFile(t, path); got != "dim x = 1\nprint 1\nx = 2\n" {
		t.Fatalf("content = %q", got)
	}
}

func TestApplyConflict(t *testing.T) {
	fs, id, path := loadScript(t, "print abc\n")
	ds := []diag.Diagnostic{
		{
			Code:    diag.SemaUndeclared,
			Primary: source.Span{File: id, Start: 6, End: 9},
			Fixes:   []diag.Fix{ReplaceSpan("rename", source.Span{File: id, Start: 6, End: 9}, "x", WithID("a"))},
		},
		{
			Code:    diag.SemaUndeclared,
			Primary: source.Span{File: id, Start: 7, End: 8},
			Fixes:   []diag.Fix{ReplaceSpan("rename", source.Span{File: id, Start: 7, End: 8}, "y", WithID("b"))},
		},
	}
	res, err := Apply(fs, ds, ApplyOptions{Mode: ApplyModeAll})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Applied) != 1 || res.Applied[0].ID != "a" {
		t.Fatalf("applied = %+v", res.Applied)
	}
	if len(res.Skipped) != 1 || !strings.Contains(res.Skipped[0].Reason, "conflicts") {
		t.Fatalf("skipped = %+v", res.Skipped)
	}
	if got := readFile(t, path); got != "print x\n" {
		t.Fatalf("content = %q", got)
	}
}

func TestApplyKeepsCRLF(t *testing.T) {
	fs, id, path := loadScript(t, "x = 1\r\ny = 2\r\n")
	ds := annotated(fs, explicitAt(t, fs, id, "x", 0), explicitAt(t, fs, id, "y", 0))

	if _, err := Apply(fs, ds, ApplyOptions{Mode: ApplyModeAll}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := readFile(t, path); got != "dim x = 1\r\ndim y = 2\r\n" {
		t.Fatalf("content = %q", got)
	}
}

func TestApplyDryRun(t *testing.T) {
	fs, id, path := loadScript(t, "x = 1\n")
	ds := annotated(fs, explicitAt(t, fs, id, "x", 0))

	res, err := Apply(fs, ds, ApplyOptions{Mode: ApplyModeAll, DryRun: true})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.FileChanges) != 1 || string(res.FileChanges[0].Content) != "dim x = 1\n" {
		t.Fatalf("changes = %+v", res.FileChanges)
	}
	if got := readFile(t, path); got != "x = 1\n" {
		t.Fatalf("dry run touched the file: %q", got)
	}
}

func TestApplySkipsVirtualFiles(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<stdin>", []byte("x = 1\n"))
	ds := annotated(fs, explicitAt(t, fs, id, "x", 0))

	res, err := Apply(fs, ds, ApplyOptions{Mode: ApplyModeAll})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("expected ErrNoFixes, got %v", err)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Reason != "target file is not on disk" {
		t.Errorf("skipped = %+v", res.Skipped)
	}
}

func TestApplyNothing(t *testing.T) {
	fs, id, _ := loadScript(t, "print abc\n")
	ds := []diag.Diagnostic{{Code: diag.SemaUndeclared, Primary: source.Span{File: id, Start: 6, End: 9}}}
	if _, err := Apply(fs, ds, ApplyOptions{Mode: ApplyModeAll}); !errors.Is(err, ErrNoFixes) {
		t.Fatalf("expected ErrNoFixes, got %v", err)
	}
}

func TestSpansConflict(t *testing.T) {
	edit := func(start, end uint32) diag.FixEdit {
		return diag.FixEdit{Span: source.Span{Start: start, End: end}}
	}
	tests := []struct {
		name string
		a, b diag.FixEdit
		want bool
	}{
		{"two inserts", edit(3, 3), edit(3, 3), false},
		{"insert inside", edit(4, 4), edit(2, 6), true},
		{"insert at edge", edit(2, 2), edit(2, 6), false},
		{"overlap", edit(0, 4), edit(3, 8), true},
		{"adjacent", edit(0, 3), edit(3, 8), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := spansConflict(tt.a, tt.b); got != tt.want {
				t.Errorf("spansConflict = %v, want %v", got, tt.want)
			}
		})
	}
}

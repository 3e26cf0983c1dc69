package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"uwscript/internal/diagfmt"
)

func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	root, a := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err = root.ExecuteContext(context.Background())
	a.close()
	return out.String(), errOut.String(), err
}

func writeScript(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestTokenizeCommand(t *testing.T) {
	path := writeScript(t, t.TempDir(), "t.uws", "print 1\n")
	out, _, err := execute(t, "", "tokenize", path)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	for _, want := range []string{"print", "integer", "EOF"} {
		if !strings.Contains(out, want) {
			t.Errorf("output misses %q:\n%s", want, out)
		}
	}
}

func TestParseStdinJSON(t *testing.T) {
	out, _, err := execute(t, "dim a = 1\nprint a\n", "parse", "-", "--format", "json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var root diagfmt.ASTNodeOutput
	if err := json.Unmarshal([]byte(out), &root); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out)
	}
	if root.Type != "Program" || root.Text != "<stdin>" || len(root.Children) != 2 {
		t.Fatalf("unexpected root %+v", root)
	}
	if got := len(root.Children[1].Children); got != 2 {
		t.Errorf("script statements = %d", got)
	}
}

func TestParseNames(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "lib.uws", "procedure helper()\nfend\n")
	path := writeScript(t, dir, "main.uws", "public total = 0\ncall lib\nhelper()\n")
	out, _, err := execute(t, "", "parse", path, "--names")
	if err != nil {
		t.Fatalf("parse --names: %v", err)
	}
	for _, want := range []string{"Names ", "Public TOTAL (row 1)", "Script: call ", "Definition HELPER (row 1)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output misses %q:\n%s", want, out)
		}
	}
}

func TestCheckDirectory(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "ok.uws", "dim x = 1\nprint x\n")
	writeScript(t, dir, "bad.uws", "print missing\n")

	out, errOut, err := execute(t, "", "check", dir, "--ui", "off", "--color", "off")
	if !errors.Is(err, errReported) {
		t.Fatalf("expected errReported, got %v", err)
	}
	if !strings.Contains(out, "error SEM3004") || !strings.Contains(out, "print missing") {
		t.Errorf("diagnostics missing:\n%s", out)
	}
	if !strings.Contains(errOut, "checked 2 scripts: 1 with errors") {
		t.Errorf("summary missing:\n%s", errOut)
	}
}

func TestCheckJSON(t *testing.T) {
	path := writeScript(t, t.TempDir(), "bad.uws", "print missing\n")
	out, _, err := execute(t, "", "check", path, "--format", "json")
	if !errors.Is(err, errReported) {
		t.Fatalf("expected errReported, got %v", err)
	}
	var report struct {
		Files []struct {
			Path        string                   `json:"path"`
			Count       int                      `json:"count"`
			Diagnostics []diagfmt.DiagnosticJSON `json:"diagnostics"`
		} `json:"files"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out)
	}
	if len(report.Files) != 1 || report.Files[0].Count != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
	if d := report.Files[0].Diagnostics[0]; d.Code != "SEM3004" || d.Location.StartLine != 1 {
		t.Errorf("unexpected diagnostic %+v", d)
	}
}

func TestCheckUsesCache(t *testing.T) {
	path := writeScript(t, t.TempDir(), "ok.uws", "dim x = 1\nprint x\n")
	cacheDir := filepath.Join(t.TempDir(), "cache")
	if _, _, err := execute(t, "", "check", path, "--cache-dir", cacheDir); err != nil {
		t.Fatalf("first check: %v", err)
	}
	_, errOut, err := execute(t, "", "check", path, "--cache-dir", cacheDir)
	if err != nil {
		t.Fatalf("second check: %v", err)
	}
	if !strings.Contains(errOut, "1 cached") {
		t.Errorf("expected a cached result:\n%s", errOut)
	}
}

func TestConfigFileAppliesOptions(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "a.uws", "a = 1\n")
	if _, _, err := execute(t, "", "check", path); err != nil {
		t.Fatalf("assignment without dim must pass by default: %v", err)
	}
	writeScript(t, dir, "uwscript.toml", "[options]\nexplicit = true\n")
	out, _, err := execute(t, "", "check", path, "--color", "off")
	if !errors.Is(err, errReported) || !strings.Contains(out, "SEM3001") {
		t.Fatalf("explicit from uwscript.toml ignored: %v\n%s", err, out)
	}
}

func TestInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "a.uws", "print 1\n")
	cfg := writeScript(t, t.TempDir(), "custom.toml", "[parser]\nbogus = 1\n")
	if _, _, err := execute(t, "", "check", path, "--config", cfg); err == nil {
		t.Fatal("expected an error for an unknown option")
	}
}

func TestCompileCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "lib.uws", "public n = 1\n")
	out, _, err := execute(t, "", "compile", path)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	want := filepath.Join(dir, "lib.uwsl")
	if strings.TrimSpace(out) != "wrote "+want {
		t.Errorf("output = %q", out)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("binary not written: %v", err)
	}

	// скомпилированную библиотеку можно подключить через call
	main := writeScript(t, dir, "main.uws", "call lib.uwsl\nprint 1\n")
	if _, _, err := execute(t, "", "check", main); err != nil {
		t.Errorf("check with binary call: %v", err)
	}
}

func TestFixCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "a.uws", "a = 1\nb = 2\na = 3\n")

	out, _, err := execute(t, "", "fix", path, "--all", "--explicit", "--dry-run")
	if err != nil || !strings.Contains(out, "Would apply 2 fix(es)") {
		t.Fatalf("dry run: %v\n%s", err, out)
	}
	out, _, err = execute(t, "", "fix", path, "--all", "--explicit")
	if err != nil {
		t.Fatalf("fix: %v", err)
	}
	if !strings.Contains(out, "Applied 2 fix(es)") || !strings.Contains(out, "duplicate fix id") {
		t.Errorf("output = %q", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "dim a = 1\ndim b = 2\na = 3\n" {
		t.Fatalf("content = %q", data)
	}
	if _, _, err := execute(t, "", "check", path, "--explicit"); err != nil {
		t.Errorf("fixed script must pass: %v", err)
	}

	out, _, err = execute(t, "", "fix", path, "--explicit")
	if err != nil || !strings.Contains(out, "No applicable fixes found.") {
		t.Errorf("second run: %v\n%s", err, out)
	}
}

func TestFixFlagConflicts(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "a.uws", "print 1\n")
	if _, _, err := execute(t, "", "fix", path, "--all", "--id", "x"); err == nil {
		t.Error("--all with --id must fail")
	}
	if _, _, err := execute(t, "", "fix", dir, "--id", "x"); err == nil {
		t.Error("--id on a directory must fail")
	}
}

func TestProfilingFlags(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "t.uws", "print 1\n")
	cpu := filepath.Join(dir, "cpu.pprof")
	if _, _, err := execute(t, "", "tokenize", path, "--cpu-profile", cpu); err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if info, err := os.Stat(cpu); err != nil || info.Size() == 0 {
		t.Fatalf("cpu profile not written: %v", err)
	}
}

func TestVersionJSON(t *testing.T) {
	out, _, err := execute(t, "", "version", "--format", "json")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil || payload.Tool != "uwscript" || payload.Version == "" {
		t.Fatalf("unexpected payload %q (%v)", out, err)
	}
}

func TestProgressUI(t *testing.T) {
	var buf bytes.Buffer
	tests := []struct {
		value   string
		format  string
		want    bool
		wantErr bool
	}{
		{"", "pretty", false, false},
		{"auto", "pretty", false, false},
		{"ON", "pretty", true, false},
		{"on", "json", false, false},
		{" off ", "pretty", false, false},
		{"sometimes", "pretty", false, true},
	}
	for _, tt := range tests {
		got, err := progressUI(tt.value, tt.format, &buf)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("progressUI(%q, %q) = %v, %v", tt.value, tt.format, got, err)
		}
	}
}

func TestRelevantChange(t *testing.T) {
	tests := []struct {
		ev   fsnotify.Event
		want bool
	}{
		{fsnotify.Event{Name: "/s/a.uws", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "/s/A.UWS", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "/s/lib.uwsl", Op: fsnotify.Remove}, true},
		{fsnotify.Event{Name: "/s/uwscript.toml", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "/s/a.uws", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "/s/notes.txt", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		if got := relevantChange(tt.ev); got != tt.want {
			t.Errorf("relevantChange(%v) = %v", tt.ev, got)
		}
	}
}

func TestDebounceEvents(t *testing.T) {
	events := make(chan fsnotify.Event)
	errs := make(chan error)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	ran := make(chan struct{}, 4)
	done := make(chan error, 1)
	go func() {
		done <- debounceEvents(ctx, events, errs, 20*time.Millisecond, relevantChange, func() {
			runs.Add(1)
			ran <- struct{}{}
		}, &bytes.Buffer{})
	}()

	for i := 0; i < 3; i++ {
		events <- fsnotify.Event{Name: "a.uws", Op: fsnotify.Write}
	}
	events <- fsnotify.Event{Name: "a.txt", Op: fsnotify.Write}
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("run was not called")
	}
	// пауза дольше delay: повторных запусков быть не должно
	time.Sleep(60 * time.Millisecond)
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("debounceEvents: %v", err)
	}
	if n := runs.Load(); n != 1 {
		t.Fatalf("runs = %d, want 1", n)
	}
}

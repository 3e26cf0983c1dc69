package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"golang.org/x/text/encoding/japanese"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if !cfg.Parser.Strict || cfg.Parser.MaxDiagnostics != 100 {
		t.Fatalf("unexpected parser defaults: %+v", cfg.Parser)
	}
	if cfg.Call.Timeout.Duration != 15*time.Second || cfg.Call.DefaultExt != ".uws" {
		t.Fatalf("unexpected call defaults: %+v", cfg.Call)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	enc, err := cfg.LegacyEncoding()
	if err != nil || enc != japanese.ShiftJIS {
		t.Fatalf("expected Shift_JIS fallback, got %v (%v)", enc, err)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[parser]
strict = false
max_diagnostics = 5
builtins = ["MYFUNC"]

[options]
explicit = true

[call]
timeout = "2s"
fallback_encoding = "euc-jp"

[trace]
level = "phase"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Parser.Strict || cfg.Parser.MaxDiagnostics != 5 || !slices.Equal(cfg.Parser.Builtins, []string{"MYFUNC"}) {
		t.Errorf("parser = %+v", cfg.Parser)
	}
	if !cfg.Options.Explicit || cfg.Options.OptPublic {
		t.Errorf("options = %+v", cfg.Options)
	}
	if cfg.Call.Timeout.Duration != 2*time.Second {
		t.Errorf("timeout = %s", cfg.Call.Timeout.Duration)
	}
	// не указанные ключи сохраняют значения по умолчанию
	if cfg.Call.DefaultExt != ".uws" || cfg.Trace.Output != "-" {
		t.Errorf("defaults lost: %+v %+v", cfg.Call, cfg.Trace)
	}
	if enc, err := cfg.LegacyEncoding(); err != nil || enc != japanese.EUCJP {
		t.Errorf("encoding = %v (%v)", enc, err)
	}
	if cfg.Path != path {
		t.Errorf("path = %q", cfg.Path)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"unknown key", "[parser]\nstrictness = true\n", ErrUnknownOption},
		{"unknown section", "[runtime]\nx = 1\n", ErrUnknownOption},
		{"negative max", "[parser]\nmax_diagnostics = -1\n", ErrInvalidValue},
		{"bad extension", "[call]\ndefault_ext = \"uws\"\n", ErrInvalidValue},
		{"bad encoding", "[call]\nfallback_encoding = \"klingon\"\n", ErrInvalidValue},
		{"bad trace level", "[trace]\nlevel = \"loud\"\n", ErrInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, t.TempDir(), tt.content))
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadSyntaxError(t *testing.T) {
	if _, err := Load(writeConfig(t, t.TempDir(), "[parser\n")); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestNoFallbackEncoding(t *testing.T) {
	cfg := Default()
	cfg.Call.FallbackEncoding = "none"
	enc, err := cfg.LegacyEncoding()
	if err != nil || enc != nil {
		t.Fatalf("expected no encoding, got %v (%v)", enc, err)
	}
}

func TestFindNextToScript(t *testing.T) {
	dir := t.TempDir()
	want := writeConfig(t, dir, "")
	script := filepath.Join(dir, "main.uws")
	for _, start := range []string{script, dir} {
		got, ok, err := Find(start)
		if err != nil || !ok || got != want {
			t.Fatalf("Find(%q) = %q, %v, %v", start, got, ok, err)
		}
	}
}

func TestResolve(t *testing.T) {
	cfg, err := Resolve("", filepath.Join(t.TempDir(), "main.uws"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Path != "" || !cfg.Parser.Strict {
		t.Fatalf("expected defaults, got %+v", cfg)
	}

	explicit := writeConfig(t, t.TempDir(), "[options]\noptpublic = true\n")
	cfg, err = Resolve(explicit, "")
	if err != nil || !cfg.Options.OptPublic {
		t.Fatalf("explicit config ignored: %+v (%v)", cfg, err)
	}
}

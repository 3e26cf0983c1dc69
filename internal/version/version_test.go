package version

import (
	"strings"
	"testing"
)

func TestColoredPlain(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0.1.0-dev", "0.1.0-dev"},
		{"1.2.3", "1.2.3"},
		{"1.2.3-rc.1+build.123", "1.2.3-rc.1+build.123"},
		{"nightly", "nightly"},
	}
	for _, tt := range tests {
		if got := Colored(tt.in, false); got != tt.want {
			t.Errorf("Colored(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestColoredEnabled(t *testing.T) {
	got := Colored("1.2.3-dev", true)
	if !strings.Contains(got, "\x1b[") || !strings.HasSuffix(got, "-dev") {
		t.Fatalf("expected ANSI sequences and kept suffix, got %q", got)
	}
}

func TestInfo(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	t.Cleanup(func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate })

	Version, GitCommit, BuildDate = "1.0.0", "", ""
	if got := Info(false); got != "uwscript 1.0.0" {
		t.Errorf("Info = %q", got)
	}
	GitCommit, BuildDate = "abc123", "2024-01-15"
	if got := Info(false); got != "uwscript 1.0.0 (abc123) built 2024-01-15" {
		t.Errorf("Info = %q", got)
	}
}

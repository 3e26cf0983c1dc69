// Package include resolves and loads scripts named by call statements.
package include

import (
	"path/filepath"
	"strings"
)

// Kind tells a filesystem path from a URI target.
type Kind uint8

const (
	KindPath Kind = iota
	KindURI
)

// DefaultExt is appended to call targets written without an extension.
const DefaultExt = ".uws"

// BinaryExt marks a precompiled program.
const BinaryExt = ".uwsl"

// Target is a resolved call target.
type Target struct {
	Kind Kind
	// Location is the absolute cleaned path or the URI as written.
	// It identifies the script in the Registry.
	Location string
}

// IsBinary reports whether the target is a precompiled program.
func (t Target) IsBinary() bool {
	return t.Kind == KindPath && strings.EqualFold(filepath.Ext(t.Location), BinaryExt)
}

// Dir is the directory nested call targets of this script are relative to.
// URIs have none.
func (t Target) Dir() string {
	if t.Kind == KindURI {
		return ""
	}
	return filepath.Dir(t.Location)
}

// ResolvePath makes a call path absolute: relative paths are taken against
// dir (the calling script's directory), and defaultExt is appended when the
// path has no extension. Both `\` and `/` are accepted as separators.
func ResolvePath(raw, dir, defaultExt string) Target {
	p := strings.ReplaceAll(raw, `\`, string(filepath.Separator))
	p = strings.ReplaceAll(p, "/", string(filepath.Separator))
	if !filepath.IsAbs(p) && dir != "" {
		p = filepath.Join(dir, p)
	}
	if filepath.Ext(p) == "" {
		if defaultExt == "" {
			defaultExt = DefaultExt
		}
		p += defaultExt
	}
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	return Target{Kind: KindPath, Location: filepath.Clean(p)}
}

// ResolveURI wraps a URI target.
func ResolveURI(raw string) Target {
	return Target{Kind: KindURI, Location: strings.TrimSpace(raw)}
}

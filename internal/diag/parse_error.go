package diag

import (
	"fmt"

	"uwscript/internal/source"
)

// ParseError is the resolved, file-independent form of an error diagnostic:
// what a caller of the parser sees once spans are turned into rows and columns.
type ParseError struct {
	Code    Code
	Message string
	Script  string
	Start   source.LineCol
	End     source.LineCol
}

// Error renders "<ID> <title>: <message> [script:row:col]".
func (e ParseError) Error() string {
	return fmt.Sprintf("%s %s: %s [%s:%d:%d]", e.Code.ID(), e.Code.Title(), e.Message, e.Script, e.Start.Line, e.Start.Col)
}

// ToParseErrors resolves every error-level diagnostic of bag in bag order.
func ToParseErrors(bag *Bag, fs *source.FileSet) []ParseError {
	if bag == nil || fs == nil {
		return nil
	}
	out := make([]ParseError, 0, bag.Len())
	for _, d := range bag.Items() {
		if d.Severity < SevError {
			continue
		}
		out = append(out, Resolve(d, fs))
	}
	return out
}

// Resolve converts one diagnostic into a ParseError.
func Resolve(d Diagnostic, fs *source.FileSet) ParseError {
	pe := ParseError{Code: d.Code, Message: d.Message}
	if int(d.Primary.File) >= fs.Len() {
		return pe
	}
	pe.Script = fs.Get(d.Primary.File).Name()
	pe.Start, pe.End = fs.Resolve(d.Primary)
	return pe
}

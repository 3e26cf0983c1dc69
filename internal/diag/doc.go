// Package diag defines the diagnostic model shared by the lexer, the parser,
// the name checks and the call loader.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity: Info, Warning or Error (severity.go).
//   - Code: compact numeric identifier with a stable string form (codes.go).
//     LEX1xxx lexer, SYN2xxx parser, SEM3xxx name checks, IO4xxx loading and
//     call targets.
//   - Message: short human text.
//   - Primary: the source.Span pointing to the problem. Spans of every
//     included script live in the same source.FileSet, so a diagnostic raised
//     inside a called script resolves to that script.
//   - Notes: secondary spans, e.g. the call site of a failing included script.
//   - Fixes: optional text edits (insert a missing space and the like).
//
// # Emitting diagnostics
//
// Producers talk to a Reporter. The parser builds diagnostics through
// ReportError(...).WithNote(...).Emit(); BagReporter collects them into a Bag
// that keeps the configured limit.
//
// ParseError is the resolved view (code, message, script name, start and end
// row/column) returned to library callers; it renders as
// "<ID> <title>: <message> [script:row:col]".
//
// Rendering (pretty, short, json) lives in internal/diagfmt.
package diag

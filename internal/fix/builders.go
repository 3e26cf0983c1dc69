package fix

import (
	"uwscript/internal/diag"
	"uwscript/internal/source"
)

// Option mutates fix during construction.
type Option func(*diag.Fix)

// WithID sets stable identifier for fix.
func WithID(id string) Option {
	return func(f *diag.Fix) {
		f.ID = id
	}
}

func applyOptions(f diag.Fix, opts []Option) diag.Fix {
	for _, opt := range opts {
		if opt != nil {
			opt(&f)
		}
	}
	return f
}

// InsertText creates fix that inserts text at a position.
func InsertText(title string, file source.FileID, at uint32, text string, opts ...Option) diag.Fix {
	fix := diag.Fix{
		Title: title,
		Edits: []diag.FixEdit{{
			Span:    source.Span{File: file, Start: at, End: at},
			NewText: text,
		}},
	}
	return applyOptions(fix, opts)
}

// ReplaceSpan replaces text covered by span with newText.
func ReplaceSpan(title string, span source.Span, newText string, opts ...Option) diag.Fix {
	fix := diag.Fix{
		Title: title,
		Edits: []diag.FixEdit{{Span: span, NewText: newText}},
	}
	return applyOptions(fix, opts)
}

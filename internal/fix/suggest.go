package fix

import (
	"bytes"
	"fmt"
	"strings"

	"uwscript/internal/diag"
	"uwscript/internal/source"
)

// Annotate прикладывает исправления к диагностикам bag, для которых они известны.
func Annotate(fs *source.FileSet, bag *diag.Bag) {
	if fs == nil || bag == nil {
		return
	}
	bag.Update(func(d *diag.Diagnostic) {
		if len(d.Fixes) > 0 {
			return
		}
		d.Fixes = Suggest(fs, *d)
	})
}

// Suggest returns the fixes known for d; nil when there are none.
func Suggest(fs *source.FileSet, d diag.Diagnostic) []diag.Fix {
	file := fs.Get(d.Primary.File)
	if file == nil || file.Flags&source.FileRemote != 0 {
		return nil
	}
	var f *diag.Fix
	switch d.Code {
	case diag.LexUnterminatedString:
		f = closeString(file, d.Primary)
	case diag.SemaExplicit:
		f = declareWithDim(file, d.Primary)
	}
	if f == nil {
		return nil
	}
	return []diag.Fix{*f}
}

// closeString ставит закрывающую кавычку в конце строки, где открыт литерал.
func closeString(file *source.File, sp source.Span) *diag.Fix {
	content := file.Content
	start := int(sp.Start)
	if start >= len(content) {
		return nil
	}
	quote := content[start]
	if quote != '"' && quote != '\'' {
		return nil
	}
	end := len(content)
	if i := bytes.IndexByte(content[start+1:], '\n'); i >= 0 {
		end = start + 1 + i
	}
	at := uint32(end) // #nosec G115 -- bounded by file content
	f := InsertText("close the string with "+string(quote), file.ID, at, string(quote),
		WithID(fmt.Sprintf("close-string-%d-%d", file.ID, sp.Start)))
	return &f
}

// declareWithDim превращает присваивание `name = expr` в `dim name = expr`.
// Только когда имя начинает строку и за ним идёт простое '=': для for,
// элементов массива и составных присваиваний исправления нет.
// ID общий для имени в файле: повторные присваивания объявлять не нужно.
func declareWithDim(file *source.File, sp source.Span) *diag.Fix {
	content := file.Content
	start, end := int(sp.Start), int(sp.End)
	if start >= end || end > len(content) {
		return nil
	}
	lineStart := bytes.LastIndexByte(content[:start], '\n') + 1
	if len(bytes.TrimSpace(content[lineStart:start])) != 0 {
		return nil
	}
	// продолжение предыдущей строки через '_'
	if lineStart > 0 {
		prevStart := bytes.LastIndexByte(content[:lineStart-1], '\n') + 1
		if bytes.HasSuffix(bytes.TrimRight(content[prevStart:lineStart-1], " \t"), []byte("_")) {
			return nil
		}
	}
	rest := bytes.TrimLeft(content[end:], " \t")
	if len(rest) == 0 || rest[0] != '=' || (len(rest) > 1 && rest[1] == '=') {
		return nil
	}
	name := string(content[start:end])
	f := InsertText("declare "+name+" with dim", file.ID, sp.Start, "dim ",
		WithID(fmt.Sprintf("dim-%d-%s", file.ID, strings.ToUpper(name))))
	return &f
}

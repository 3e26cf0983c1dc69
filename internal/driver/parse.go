package driver

import (
	"context"
	"strconv"

	"uwscript/internal/ast"
	"uwscript/internal/diag"
	"uwscript/internal/fix"
	"uwscript/internal/parser"
	"uwscript/internal/source"
	"uwscript/internal/symbols"
	"uwscript/internal/trace"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Program *ast.Program
	Bag     *diag.Bag
	// Scope: записи имён самого файла, Calls: скриптов, подключённых через call.
	Scope *symbols.Scope
	Calls []symbols.CallScope
	// Included: все загруженные скрипты, включая сам файл, в порядке загрузки.
	Included []string
	Timing   TimingReport
}

// HasErrors reports whether the script or any script it calls has errors.
func (r *ParseResult) HasErrors() bool {
	return r != nil && r.Bag != nil && r.Bag.HasErrors()
}

// Parse загружает файл и разбирает его вместе со всеми call.
// Ошибка возвращается только если сам файл не читается; проблемы скрипта: в Bag.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	ctx, sp := trace.Start(ctx, trace.ScopePass, "parse")
	timer := NewTimer()

	loadIdx := timer.Begin("load")
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	timer.End(loadIdx, "")
	if err != nil {
		sp.End("load failed")
		return nil, err
	}

	res, err := parseLoaded(ctx, fs, fileID, opts, timer)
	if err != nil {
		sp.End("bad options")
		return nil, err
	}
	sp.Set("diagnostics", strconv.Itoa(res.Bag.Len())).Errors(countErrors(res.Bag)).End("")
	return res, nil
}

// ParseText разбирает src как виртуальный файл name (stdin, редакторы).
// Относительные call считаются от текущего каталога.
func ParseText(ctx context.Context, name string, src []byte, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, src)
	return parseLoaded(ctx, fs, fileID, opts, NewTimer())
}

func parseLoaded(ctx context.Context, fs *source.FileSet, fileID source.FileID, opts Options, timer *Timer) (*ParseResult, error) {
	popts, err := opts.parserOptions()
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	opts.emit(PhaseEvent{Name: "parse", Path: file.Path, Status: PhaseStart})

	parseIdx := timer.Begin("parse")
	result := parser.ParseFile(ctx, fs, fileID, popts)
	timer.End(parseIdx, strconv.Itoa(len(result.Calls))+" calls")

	res := &ParseResult{
		FileSet:  fs,
		File:     file,
		Program:  result.Program,
		Bag:      result.Bag,
		Scope:    result.Scope,
		Calls:    result.Calls,
		Included: result.Included,
		Timing:   timer.Report(file.Path),
	}
	res.Bag.Sort()
	fix.Annotate(fs, res.Bag)
	opts.emit(PhaseEvent{
		Name:    "parse",
		Path:    file.Path,
		Status:  PhaseEnd,
		Elapsed: durationOf(res.Timing),
		Errors:  countErrors(res.Bag),
	})
	return res, nil
}

func countErrors(bag *diag.Bag) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Severity == diag.SevError {
			n++
		}
	}
	return n
}

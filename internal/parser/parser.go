package parser

import (
	"context"
	"path/filepath"
	"slices"

	"uwscript/internal/ast"
	"uwscript/internal/diag"
	"uwscript/internal/include"
	"uwscript/internal/lexer"
	"uwscript/internal/source"
	"uwscript/internal/symbols"
	"uwscript/internal/token"
	"uwscript/internal/trace"
)

type Options struct {
	// Eval отключает строгий режим: любые выражения допустимы как операторы,
	// проверки имён не выполняются.
	Eval          bool
	MaxErrors     uint
	CurrentErrors uint
	// Builtins: имена, которые даёт вычислитель (symbols.DefaultBuiltins по умолчанию).
	Builtins []string
	// Explicit и OptPublic: глобальные значения, OR с OPTION в скрипте.
	Explicit  bool
	OptPublic bool
	// Dir: каталог, от которого считаются относительные пути call.
	// Пусто: каталог самого файла.
	Dir        string
	DefaultExt string
	Fetcher    *include.Fetcher
	// Registry общий на весь разбор верхнего уровня; nil: создаётся новый.
	Registry *include.Registry
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Program *ast.Program
	Bag     *diag.Bag
	// Scope: записи имён главного скрипта, Calls: включённых через call.
	Scope *symbols.Scope
	Calls []symbols.CallScope
	// Included: расположения всех загруженных скриптов в порядке загрузки.
	Included []string
}

// HasErrors reports whether parsing or the name checks produced an error.
func (r Result) HasErrors() bool {
	return r.Bag != nil && r.Bag.HasErrors()
}

// stmtClass определяет, куда попадает разобранный оператор.
type stmtClass uint8

const (
	classNone stmtClass = iota // оператор ничего не добавляет (textblock-комментарий)
	classScript
	classBlock
	classDim
	classPublic
	classConst
	classDefinition
	classDefDll
	classOption
	classCall
	classExpression
)

// Parser: состояние парсера на один скрипт
type Parser struct {
	lx       *lexer.Lexer
	file     *source.File
	fs       *source.FileSet
	opts     Options
	ctx      context.Context
	tracker  *symbols.Tracker
	registry *include.Registry
	fetcher  *include.Fetcher
	bag      *diag.Bag
	reporter diag.Reporter
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики

	name  string   // имя скрипта в StatementWithRow
	dir   string   // база для относительных call
	chain []string // цепочка call до этого скрипта (для циклов)

	with      []*ast.Expr // стек with
	withCount int

	// глобальные секции и тело
	options []ast.StatementWithRow
	consts  []ast.StatementWithRow
	publics []ast.StatementWithRow
	defs    []ast.StatementWithRow
	body    []ast.StatementWithRow
	members *ast.Block // члены текущего module/class
}

// ParseFile: входная точка для разбора одного файла из fs.
// Включённые через call скрипты добавляются в тот же fs.
func ParseFile(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) Result {
	if ctx == nil {
		ctx = context.Background()
	}
	file := fs.Get(id)
	ctx, sp := trace.Start(ctx, trace.ScopeScript, "parse:"+file.Name())

	p := newParser(ctx, fs, file, opts)
	if p.registry == nil {
		p.registry = include.NewRegistry()
	}
	loc := file.Path
	if abs, err := source.AbsolutePath(file.Path); err == nil && file.Flags&source.FileVirtual == 0 {
		loc = abs
	}
	p.registry.Claim(loc)
	p.chain = []string{filepath.ToSlash(loc)}
	p.tracker = symbols.NewTracker(symbols.Options{
		Location:  p.name,
		Builtins:  p.builtins(),
		Explicit:  opts.Explicit,
		OptPublic: opts.OptPublic,
	})

	prog := p.parseProgram()
	if !opts.Eval {
		symbols.Report(p.reporter, p.tracker.Check())
	}
	sp.Set("diagnostics", itoa(p.bag.Len())).End("")
	return Result{
		Program:  prog,
		Bag:      p.bag,
		Scope:    p.tracker.Scope(),
		Calls:    p.tracker.Calls(),
		Included: p.registry.Locations(),
	}
}

// ParseSource разбирает текст как виртуальный файл name.
func ParseSource(ctx context.Context, name string, src []byte, opts Options) (Result, *source.FileSet) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, src)
	return ParseFile(ctx, fs, id, opts), fs
}

func newParser(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) *Parser {
	opts.CurrentErrors = 0
	bag := diag.NewBag(int(min(opts.MaxErrors, 1<<15))) // #nosec G115 -- bounded above
	p := &Parser{
		file:     file,
		fs:       fs,
		opts:     opts,
		ctx:      ctx,
		registry: opts.Registry,
		fetcher:  opts.Fetcher,
		bag:      bag,
		reporter: diag.NewDedupReporter(diag.BagReporter{Bag: bag}),
		name:     file.Name(),
		dir:      opts.Dir,
		lastSpan: source.Span{File: file.ID},
	}
	if p.dir == "" && file.Flags&source.FileVirtual == 0 {
		p.dir = file.Dir()
	}
	if p.fetcher == nil {
		p.fetcher = include.NewFetcher(0)
	}
	p.lx = lexer.New(file, lexer.Options{Reporter: lexReporter{p}})
	return p
}

// lexReporter пропускает ошибки лексера через счётчик парсера.
type lexReporter struct{ p *Parser }

func (r lexReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note, fixes []diag.Fix) {
	r.p.report(code, sev, primary, msg)
}

func (p *Parser) builtins() []string {
	if p.opts.Builtins != nil {
		return p.opts.Builtins
	}
	return symbols.DefaultBuiltins
}

func (p *Parser) strict() bool { return !p.opts.Eval }

// parseProgram крутит parseStatement до EOF.
func (p *Parser) parseProgram() *ast.Program {
	for {
		p.skipEOLs()
		tok := p.peek()
		if tok.Kind == token.EOF {
			break
		}
		if isBlockEnd(tok.Kind) {
			p.errAt(diag.SynBlockEndMismatch, tok.Span, "unexpected "+quote(tok)+" outside of a block")
			p.skipLine()
			continue
		}
		cls, stmt, ok := p.parseStatement(false)
		if !ok {
			p.skipLine()
			continue
		}
		p.placeTop(cls, stmt)
	}
	return p.build()
}

// build собирает Program: Global = options, consts, publics, definitions.
func (p *Parser) build() *ast.Program {
	global := make([]ast.StatementWithRow, 0, len(p.options)+len(p.consts)+len(p.publics)+len(p.defs))
	global = append(global, p.options...)
	global = append(global, p.consts...)
	global = append(global, p.publics...)
	global = append(global, p.defs...)
	return &ast.Program{
		Global: global,
		Script: p.body,
		Lines:  p.file.Lines(),
	}
}

func (p *Parser) placeTop(cls stmtClass, s ast.StatementWithRow) {
	switch cls {
	case classNone:
	case classPublic:
		p.publics = append(p.publics, s)
	case classConst:
		p.consts = append(p.consts, s)
	case classOption:
		p.options = append(p.options, s)
	case classDefinition:
		p.defs = append(p.defs, s)
	case classDefDll:
		p.defs = append(p.defs, s)
		p.body = append(p.body, s)
	default:
		p.body = append(p.body, s)
	}
}

// pushPublic, pushConst, pushDef: внутри module/class всё уходит в члены,
// даже из тела метода.
func (p *Parser) pushPublic(s ast.StatementWithRow) {
	if p.members != nil {
		*p.members = append(*p.members, s)
		return
	}
	p.publics = append(p.publics, s)
}

func (p *Parser) pushConst(s ast.StatementWithRow) {
	if p.members != nil {
		*p.members = append(*p.members, s)
		return
	}
	p.consts = append(p.consts, s)
}

func (p *Parser) pushDef(s ast.StatementWithRow) {
	if p.members != nil {
		*p.members = append(*p.members, s)
		return
	}
	p.defs = append(p.defs, s)
}

func (p *Parser) pushMember(s ast.StatementWithRow) {
	if p.members != nil {
		*p.members = append(*p.members, s)
	}
}

// onChain reports whether location is being parsed further up the call chain.
func (p *Parser) onChain(location string) bool {
	return slices.Contains(p.chain, filepath.ToSlash(location))
}

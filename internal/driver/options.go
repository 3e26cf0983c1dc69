package driver

import (
	"time"

	"fortio.org/safecast"

	"uwscript/internal/config"
	"uwscript/internal/include"
	"uwscript/internal/parser"
	"uwscript/internal/symbols"
)

// Options управляет одним запуском driver: разбор, проверка каталога, компиляция.
type Options struct {
	MaxDiagnostics int
	// Strict: строгий режим; false соответствует разбору в режиме eval.
	Strict    bool
	Explicit  bool
	OptPublic bool
	// Builtins добавляются к symbols.DefaultBuiltins.
	Builtins    []string
	DefaultExt  string
	CallTimeout time.Duration
	// Jobs: число параллельных проверок в CheckDir; 0: GOMAXPROCS.
	Jobs int
	// Cache: nil отключает дисковый кэш результатов проверки.
	Cache    *DiskCache
	Observer PhaseObserver
	// Fetcher подменяет загрузчик call (тесты, offline-режим).
	Fetcher *include.Fetcher
}

// DefaultOptions returns the options used without a uwscript.toml.
func DefaultOptions() Options {
	return FromConfig(config.Default())
}

// FromConfig переносит настройки uwscript.toml в Options.
func FromConfig(cfg config.Config) Options {
	return Options{
		MaxDiagnostics: cfg.Parser.MaxDiagnostics,
		Strict:         cfg.Parser.Strict,
		Explicit:       cfg.Options.Explicit,
		OptPublic:      cfg.Options.OptPublic,
		Builtins:       cfg.Parser.Builtins,
		DefaultExt:     cfg.Call.DefaultExt,
		CallTimeout:    cfg.Call.Timeout.Duration,
	}
}

func (o Options) builtins() []string {
	if len(o.Builtins) == 0 {
		return nil
	}
	out := make([]string, 0, len(symbols.DefaultBuiltins)+len(o.Builtins))
	out = append(out, symbols.DefaultBuiltins...)
	return append(out, o.Builtins...)
}

func (o Options) parserOptions() (parser.Options, error) {
	maxErrors, err := safecast.Conv[uint](max(o.MaxDiagnostics, 0))
	if err != nil {
		return parser.Options{}, err
	}
	fetcher := o.Fetcher
	if fetcher == nil {
		fetcher = include.NewFetcher(o.CallTimeout)
	}
	return parser.Options{
		Eval:       !o.Strict,
		MaxErrors:  maxErrors,
		Builtins:   o.builtins(),
		Explicit:   o.Explicit,
		OptPublic:  o.OptPublic,
		DefaultExt: o.DefaultExt,
		Fetcher:    fetcher,
	}, nil
}

func (o Options) emit(ev PhaseEvent) {
	if o.Observer != nil {
		o.Observer(ev)
	}
}

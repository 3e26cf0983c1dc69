package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"uwscript/internal/config"
	"uwscript/internal/diag"
	"uwscript/internal/diagfmt"
	"uwscript/internal/driver"
	"uwscript/internal/source"
)

// stdinArg вместо пути читает скрипт из stdin.
const (
	stdinArg  = "-"
	stdinName = "<stdin>"
)

// errReported: диагностики уже напечатаны, main только выставляет код выхода.
var errReported = errors.New("errors reported")

// app: состояние одного запуска: настройки, флаги вывода, трассировка.
type app struct {
	cfg      config.Config
	opts     driver.Options
	color    string
	quiet    bool
	timings  bool
	pathMode diagfmt.PathMode
	cleanup  func()
}

// prepare загружает uwscript.toml для target, накладывает флаги и включает трассировку.
// Флаги, заданные явно, сильнее файла настроек.
func (a *app) prepare(cmd *cobra.Command, target string) error {
	pf := cmd.Root().PersistentFlags()
	cfgPath, err := pf.GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := config.Resolve(cfgPath, target)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, &cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	enc, err := cfg.LegacyEncoding()
	if err != nil {
		return err
	}
	source.LegacyEncoding = enc

	a.cfg = cfg
	a.opts = driver.FromConfig(cfg)
	if a.color, err = pf.GetString("color"); err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	switch a.color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", a.color)
	}
	if a.quiet, err = pf.GetBool("quiet"); err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if a.timings, err = pf.GetBool("timings"); err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	mode, err := pf.GetString("path-mode")
	if err != nil {
		return fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	pm, ok := diagfmt.ParsePathMode(mode)
	if !ok {
		return fmt.Errorf("invalid --path-mode value %q", mode)
	}
	a.pathMode = pm

	stopTracing, err := setupTracing(cmd, cfg.Trace)
	if err != nil {
		return err
	}
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		stopTracing()
		return err
	}
	a.cleanup = func() {
		stopProfiling()
		stopTracing()
	}
	return nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	pf := cmd.Root().PersistentFlags()
	var err error
	if pf.Changed("strict") {
		if cfg.Parser.Strict, err = pf.GetBool("strict"); err != nil {
			return err
		}
	}
	if pf.Changed("max-diagnostics") {
		if cfg.Parser.MaxDiagnostics, err = pf.GetInt("max-diagnostics"); err != nil {
			return err
		}
	}
	// OPTION в скрипте может только включить проверку, поэтому флаг лишь добавляет
	if pf.Changed("explicit") {
		v, err := pf.GetBool("explicit")
		if err != nil {
			return err
		}
		cfg.Options.Explicit = cfg.Options.Explicit || v
	}
	if pf.Changed("optpublic") {
		v, err := pf.GetBool("optpublic")
		if err != nil {
			return err
		}
		cfg.Options.OptPublic = cfg.Options.OptPublic || v
	}
	if pf.Changed("call-timeout") {
		if cfg.Call.Timeout.Duration, err = pf.GetDuration("call-timeout"); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) close() {
	if a.cleanup != nil {
		a.cleanup()
		a.cleanup = nil
	}
}

// useColor: on/off как есть, auto: только для терминала.
func (a *app) useColor(w io.Writer) bool {
	switch a.color {
	case "on":
		return true
	case "off":
		return false
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

func (a *app) prettyOpts(w io.Writer) diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     a.useColor(w),
		Context:   2,
		PathMode:  a.pathMode,
		ShowNotes: true,
		ShowFixes: true,
	}
}

// printDiagnostics печатает непустой bag в w.
func (a *app) printDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	diagfmt.Pretty(w, bag, fs, a.prettyOpts(w))
}

func (a *app) printTimings(w io.Writer, report driver.TimingReport) {
	if a.timings {
		fmt.Fprint(w, report.Summary())
	}
}

// readInput читает stdin для аргумента "-".
func readInput(cmd *cobra.Command, arg string) ([]byte, bool, error) {
	if arg != stdinArg {
		return nil, false, nil
	}
	src, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, true, fmt.Errorf("failed to read stdin: %w", err)
	}
	return src, true, nil
}

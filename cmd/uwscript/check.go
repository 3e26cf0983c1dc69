package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"uwscript/internal/diagfmt"
	"uwscript/internal/driver"
)

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] <file.uws|directory>",
		Short: "Check UWSC scripts for declaration errors",
		Long: `Check parses a script or every *.uws file of a directory, follows call
statements and reports syntax errors and name checks (explicit, duplicate,
optpublic, undeclared)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, a, args[0])
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory checks (0=auto)")
	cmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
	cmd.Flags().Bool("watch", false, "re-check when scripts change")
	cmd.Flags().Bool("cache", false, "reuse results of unchanged scripts")
	cmd.Flags().String("cache-dir", "", "cache directory (default: user cache dir)")
	cmd.Flags().Bool("drop-cache", false, "clear the cache before checking")
	return cmd
}

type checkRun struct {
	a      *app
	target string
	isDir  bool
	format string
	opts   driver.Options
	out    io.Writer
	errOut io.Writer

	// progress: показывать TUI для каталога
	progress bool
}

func runCheck(cmd *cobra.Command, a *app, target string) error {
	f := cmd.Flags()
	format, err := f.GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	jobs, err := f.GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiValue, err := f.GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	progress, err := progressUI(uiValue, format, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	watch, err := f.GetBool("watch")
	if err != nil {
		return fmt.Errorf("failed to get watch flag: %w", err)
	}

	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	run := &checkRun{
		a:        a,
		target:   target,
		isDir:    st.IsDir(),
		format:   format,
		opts:     a.opts,
		out:      cmd.OutOrStdout(),
		errOut:   cmd.ErrOrStderr(),
		progress: progress,
	}
	run.opts.Jobs = jobs
	if run.opts.Cache, err = openCache(cmd); err != nil {
		return err
	}

	if watch {
		// режим наблюдения: TUI перерисовывал бы экран на каждый запуск
		run.progress = false
		return watchAndCheck(cmd.Context(), target, run.errOut, func(ctx context.Context) {
			if _, err := run.once(ctx); err != nil {
				fmt.Fprintf(run.errOut, "check failed: %v\n", err)
			}
		})
	}

	failed, err := run.once(cmd.Context())
	if err != nil {
		return err
	}
	if failed {
		return errReported
	}
	return nil
}

// progressUI разбирает --ui. auto включает TUI только для pretty-вывода
// в терминал; json всегда печатается без него.
func progressUI(value, format string, out io.Writer) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on":
		return format == "pretty", nil
	case "off":
		return false, nil
	case "", "auto":
		f, ok := out.(*os.File)
		return ok && format == "pretty" && isTerminal(f), nil
	}
	return false, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

func openCache(cmd *cobra.Command) (*driver.DiskCache, error) {
	f := cmd.Flags()
	enabled, err := f.GetBool("cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache flag: %w", err)
	}
	dir, err := f.GetString("cache-dir")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache-dir flag: %w", err)
	}
	drop, err := f.GetBool("drop-cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get drop-cache flag: %w", err)
	}
	if !enabled && dir == "" && !drop {
		return nil, nil
	}

	var cache *driver.DiskCache
	if dir != "" {
		cache, err = driver.NewDiskCache(dir)
	} else {
		cache, err = driver.OpenDiskCache("uwscript")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	if drop {
		if err := cache.DropAll(); err != nil {
			return nil, fmt.Errorf("failed to drop cache: %w", err)
		}
	}
	if !enabled && dir == "" {
		return nil, nil
	}
	return cache, nil
}

// once проверяет цель один раз и печатает результат. failed: есть ошибки.
func (r *checkRun) once(ctx context.Context) (failed bool, err error) {
	var results []driver.CheckResult
	if r.isDir {
		if r.progress {
			results, err = runCheckDirWithUI(ctx, r.target, r.opts)
		} else {
			results, err = driver.CheckDir(ctx, r.target, r.opts)
		}
	} else {
		var res *driver.CheckResult
		if res, err = driver.Check(ctx, r.target, r.opts); err == nil {
			results = []driver.CheckResult{*res}
		}
	}
	if err != nil {
		return false, err
	}

	if r.format == "json" {
		err = r.writeJSON(results)
	} else {
		r.writePretty(results)
	}
	for i := range results {
		if results[i].HasErrors() {
			failed = true
		}
	}
	return failed, err
}

func (r *checkRun) writePretty(results []driver.CheckResult) {
	withErrors, cached := 0, 0
	for i := range results {
		res := &results[i]
		r.a.printDiagnostics(r.out, res.Bag, res.FileSet)
		r.a.printTimings(r.errOut, res.Timing)
		if res.HasErrors() {
			withErrors++
		}
		if res.Cached {
			cached++
		}
	}
	if r.a.quiet {
		return
	}
	fmt.Fprintf(r.errOut, "checked %d %s: %d with errors", len(results), plural(len(results), "script"), withErrors)
	if cached > 0 {
		fmt.Fprintf(r.errOut, ", %d cached", cached)
	}
	fmt.Fprintln(r.errOut)
}

// fileReport: запись JSON-вывода check для одного скрипта.
type fileReport struct {
	Path   string `json:"path"`
	Cached bool   `json:"cached,omitempty"`
	diagfmt.DiagnosticsOutput
}

func (r *checkRun) writeJSON(results []driver.CheckResult) error {
	reports := make([]fileReport, 0, len(results))
	for i := range results {
		res := &results[i]
		reports = append(reports, fileReport{
			Path:   res.Path,
			Cached: res.Cached,
			DiagnosticsOutput: diagfmt.BuildDiagnosticsOutput(res.Bag, res.FileSet, diagfmt.JSONOpts{
				IncludePositions: true,
				PathMode:         r.a.pathMode,
				IncludeNotes:     true,
				IncludeFixes:     true,
			}),
		})
	}
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(struct {
		Files []fileReport `json:"files"`
	}{reports})
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

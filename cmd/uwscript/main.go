package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"uwscript/internal/version"
)

// newRootCmd собирает дерево команд; свежий экземпляр на каждый запуск,
// чтобы тесты не делили состояние флагов.
func newRootCmd() (*cobra.Command, *app) {
	a := &app{}
	root := &cobra.Command{
		Use:           "uwscript",
		Short:         "UWSC script front end",
		Long:          `uwscript tokenizes, parses and checks UWSC scripts, following call statements`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			target := ""
			if len(args) > 0 && args[0] != stdinArg {
				target = args[0]
			}
			return a.prepare(cmd, target)
		},
	}

	// Глобальные флаги
	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to keep")
	pf.String("config", "", "settings file (default: uwscript.toml next to the script)")
	pf.Bool("strict", true, "reject expressions that are not statements")
	pf.Bool("explicit", false, "require declarations (as OPTION EXPLICIT)")
	pf.Bool("optpublic", false, "reject duplicate publics (as OPTION OPTPUBLIC)")
	pf.Duration("call-timeout", 0, "timeout for call over http(s)")
	pf.String("path-mode", "auto", "diagnostic paths (auto|absolute|relative|basename)")
	pf.String("cpu-profile", "", "write CPU profile to file")
	pf.String("mem-profile", "", "write heap profile to file on exit")
	pf.String("runtime-trace", "", "write Go runtime trace to file")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "", "trace level (off|phase|script|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson|chrome)")
	pf.Int("trace-ring-size", 4096, "events kept in ring mode")
	pf.Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 = off)")

	root.AddCommand(
		newTokenizeCmd(a),
		newParseCmd(a),
		newCheckCmd(a),
		newCompileCmd(a),
		newFixCmd(a),
		newVersionCmd(),
	)
	return root, a
}

// main runs the root command; any error exits with status 1.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	root, a := newRootCmd()
	err := root.ExecuteContext(ctx)
	a.close()
	stop()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
}

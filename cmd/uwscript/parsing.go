package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"uwscript/internal/diagfmt"
	"uwscript/internal/driver"
)

func newParseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] <file.uws|->",
		Short: "Parse a UWSC script and print its program tree",
		Long: `Parse reads a script together with everything it calls and prints the
resulting program: global declarations first, then the script body`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, a, args[0])
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().Bool("names", false, "print the global names of the script and its calls instead of the tree")
	return cmd
}

func runParse(cmd *cobra.Command, a *app, arg string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	names, err := cmd.Flags().GetBool("names")
	if err != nil {
		return fmt.Errorf("failed to get names flag: %w", err)
	}

	var result *driver.ParseResult
	name := arg
	src, fromStdin, err := readInput(cmd, arg)
	switch {
	case err != nil:
		return err
	case fromStdin:
		name = stdinName
		result, err = driver.ParseText(cmd.Context(), stdinName, src, a.opts)
	default:
		result, err = driver.Parse(cmd.Context(), arg, a.opts)
	}
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	a.printDiagnostics(cmd.ErrOrStderr(), result.Bag, result.FileSet)
	a.printTimings(cmd.ErrOrStderr(), result.Timing)

	out := cmd.OutOrStdout()
	switch {
	case names && format == "json":
		err = diagfmt.FormatNamesJSON(out, diagfmt.BuildNamesOutput(result.FileSet, name, result.Scope, result.Calls))
	case names:
		err = diagfmt.FormatNamesPretty(out, diagfmt.BuildNamesOutput(result.FileSet, name, result.Scope, result.Calls))
	case format == "json":
		err = diagfmt.FormatASTJSON(out, result.Program, name)
	default:
		err = diagfmt.FormatASTPretty(out, result.Program, name)
	}
	if err != nil {
		return err
	}
	if result.HasErrors() {
		return errReported
	}
	return nil
}

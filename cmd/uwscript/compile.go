package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"uwscript/internal/driver"
)

func newCompileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile [flags] <file.uws>",
		Short: "Save a parsed script as a .uwsl program",
		Long: `Compile parses a script with everything it calls and writes the program
in binary form; other scripts can then call the .uwsl file directly`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, a, args[0])
		},
	}
	cmd.Flags().StringP("output", "o", "", "output file (default: <script>.uwsl)")
	return cmd
}

func runCompile(cmd *cobra.Command, a *app, path string) error {
	out, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	res, written, err := driver.Compile(cmd.Context(), path, out, a.opts)
	if res != nil {
		a.printDiagnostics(cmd.ErrOrStderr(), res.Bag, res.FileSet)
		a.printTimings(cmd.ErrOrStderr(), res.Timing)
	}
	switch {
	case errors.Is(err, driver.ErrScriptHasErrors):
		return errReported
	case err != nil:
		return fmt.Errorf("compile failed: %w", err)
	}
	if !a.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", written)
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"uwscript/internal/diagfmt"
	"uwscript/internal/driver"
)

func newTokenizeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] <file.uws|->",
		Short: "Tokenize a UWSC script",
		Long:  `Tokenize breaks a script into tokens with their positions and leading trivia`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokenize(cmd, a, args[0])
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runTokenize(cmd *cobra.Command, a *app, arg string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	var result *driver.TokenizeResult
	src, fromStdin, err := readInput(cmd, arg)
	switch {
	case err != nil:
		return err
	case fromStdin:
		result = driver.TokenizeText(stdinName, src, a.opts.MaxDiagnostics)
	default:
		if result, err = driver.Tokenize(arg, a.opts.MaxDiagnostics); err != nil {
			return fmt.Errorf("tokenization failed: %w", err)
		}
	}

	// Диагностика в stderr, токены в stdout
	a.printDiagnostics(cmd.ErrOrStderr(), result.Bag, result.FileSet)

	out := cmd.OutOrStdout()
	if format == "json" {
		err = diagfmt.FormatTokensJSON(out, result.Tokens, result.FileSet)
	} else {
		err = diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return errReported
	}
	return nil
}

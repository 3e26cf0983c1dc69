package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"uwscript/internal/driver"
	"uwscript/internal/fix"
)

func newFixCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [flags] <file.uws|directory>",
		Short: "Apply available fixes to a script or directory",
		Long: `Fix checks scripts, lists the fixes found for their diagnostics and
applies them: the first one by default, all with --all or one by --id`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, a, args[0])
		},
	}
	cmd.Flags().Bool("all", false, "apply all fixes")
	cmd.Flags().Bool("once", false, "apply the first available fix (default)")
	cmd.Flags().String("id", "", "apply fix with a specific identifier")
	cmd.Flags().Bool("dry-run", false, "report fixes without writing files")
	return cmd
}

func fixOptions(cmd *cobra.Command) (fix.ApplyOptions, error) {
	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return fix.ApplyOptions{}, err
	}
	applyOnce, err := cmd.Flags().GetBool("once")
	if err != nil {
		return fix.ApplyOptions{}, err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return fix.ApplyOptions{}, err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fix.ApplyOptions{}, err
	}

	if targetID != "" && (applyAll || applyOnce) {
		return fix.ApplyOptions{}, fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnce {
		return fix.ApplyOptions{}, fmt.Errorf("--all and --once are mutually exclusive")
	}

	mode := fix.ApplyModeOnce
	if targetID != "" {
		mode = fix.ApplyModeID
	} else if applyAll {
		mode = fix.ApplyModeAll
	}
	return fix.ApplyOptions{Mode: mode, TargetID: targetID, DryRun: dryRun}, nil
}

func runFix(cmd *cobra.Command, a *app, target string) error {
	opts, err := fixOptions(cmd)
	if err != nil {
		return err
	}
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}
	out := cmd.OutOrStdout()

	if !info.IsDir() {
		res, err := driver.Parse(cmd.Context(), target, a.opts)
		if err != nil {
			return fmt.Errorf("fix: %w", err)
		}
		a.printTimings(cmd.ErrOrStderr(), res.Timing)
		applied, err := fix.Apply(res.FileSet, res.Bag.Items(), opts)
		return reportFixes(out, applied, err, opts.DryRun)
	}

	// id строится по FileID, а у каждого файла каталога свой FileSet
	if opts.Mode == fix.ApplyModeID {
		return fmt.Errorf("fix: --id can only be used with a single file")
	}
	results, err := driver.CheckDir(cmd.Context(), target, a.opts)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}
	total := &fix.ApplyResult{}
	for _, r := range results {
		res, err := fix.Apply(r.FileSet, r.Bag.Items(), opts)
		if res != nil {
			total.Applied = append(total.Applied, res.Applied...)
			total.Skipped = append(total.Skipped, res.Skipped...)
			total.FileChanges = append(total.FileChanges, res.FileChanges...)
		}
		if err != nil && !errors.Is(err, fix.ErrNoFixes) {
			return reportFixes(out, total, err, opts.DryRun)
		}
		if opts.Mode == fix.ApplyModeOnce && len(total.Applied) > 0 {
			break
		}
	}
	var applyErr error
	if len(total.Applied) == 0 {
		applyErr = fix.ErrNoFixes
	}
	return reportFixes(out, total, applyErr, opts.DryRun)
}

func reportFixes(w io.Writer, res *fix.ApplyResult, applyErr error, dryRun bool) error {
	if res == nil {
		return applyErr
	}
	if len(res.Applied) > 0 {
		verb := "Applied"
		if dryRun {
			verb = "Would apply"
		}
		fmt.Fprintf(w, "%s %d fix(es):\n", verb, len(res.Applied))
		for _, item := range res.Applied {
			location := item.PrimaryPath
			if location == "" {
				location = "(unknown location)"
			}
			fmt.Fprintf(w, "  %s [%s]: %s (%d edits)\n", item.Title, item.ID, location, item.EditCount)
		}
	}
	if len(res.FileChanges) > 0 && !dryRun {
		fmt.Fprintln(w, "Updated files:")
		for _, change := range res.FileChanges {
			fmt.Fprintf(w, "  %s (%d edits)\n", change.Path, change.EditCount)
		}
	}
	if len(res.Skipped) > 0 {
		fmt.Fprintln(w, "Skipped fixes:")
		for _, skip := range res.Skipped {
			id := skip.ID
			if id == "" {
				id = "(unnamed)"
			}
			if skip.Title != "" {
				fmt.Fprintf(w, "  %s [%s]: %s\n", skip.Title, id, skip.Reason)
			} else {
				fmt.Fprintf(w, "  [%s]: %s\n", id, skip.Reason)
			}
		}
	}

	if applyErr != nil {
		if errors.Is(applyErr, fix.ErrNoFixes) && len(res.Applied) == 0 {
			fmt.Fprintln(w, "No applicable fixes found.")
			return nil
		}
		return applyErr
	}
	return nil
}

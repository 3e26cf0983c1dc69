package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"uwscript/internal/driver"
	"uwscript/internal/ui"
)

type checkOutcome struct {
	results []driver.CheckResult
	err     error
}

// runCheckDirWithUI runs CheckDir while a Bubble Tea model renders its events.
func runCheckDirWithUI(ctx context.Context, dir string, opts driver.Options) ([]driver.CheckResult, error) {
	files, err := driver.ListScripts(dir)
	if err != nil {
		return nil, err
	}
	events := make(chan driver.PhaseEvent, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		runOpts := opts
		runOpts.Observer = func(ev driver.PhaseEvent) { events <- ev }
		results, err := driver.CheckDir(ctx, dir, runOpts)
		outcomeCh <- checkOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("checking "+dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout), tea.WithContext(ctx))
	_, uiErr := program.Run()
	if uiErr != nil {
		// модель больше не читает канал; дочитываем, чтобы CheckDir завершился
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}

package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"uwscript/internal/config"
	"uwscript/internal/include"
)

// watchDebounce: пауза после последнего события перед повторной проверкой.
const watchDebounce = 200 * time.Millisecond

// watchAndCheck запускает check сразу и после каждой пачки изменений
// *.uws, *.uwsl или uwscript.toml, пока не отменён ctx.
func watchAndCheck(ctx context.Context, target string, errOut io.Writer, check func(context.Context)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	if err := addWatchDirs(watcher, target); err != nil {
		return err
	}

	check(ctx)
	fmt.Fprintln(errOut, "watching for changes, press Ctrl+C to stop")
	return debounceEvents(ctx, watcher.Events, watcher.Errors, watchDebounce, func(ev fsnotify.Event) bool {
		if ev.Has(fsnotify.Create) {
			// новый подкаталог тоже наблюдаем
			if st, err := os.Stat(ev.Name); err == nil && st.IsDir() {
				_ = addWatchDirs(watcher, ev.Name)
			}
		}
		return relevantChange(ev)
	}, func() {
		fmt.Fprintf(errOut, "\n-- %s --\n", time.Now().Format(time.TimeOnly))
		check(ctx)
	}, errOut)
}

// addWatchDirs добавляет каталог цели (для файла: его каталог) со всеми
// подкаталогами, кроме скрытых; fsnotify не рекурсивен.
func addWatchDirs(watcher *fsnotify.Watcher, target string) error {
	st, err := os.Stat(target)
	if err != nil {
		return err
	}
	if !st.IsDir() {
		return watcher.Add(filepath.Dir(target))
	}
	root := target
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return err
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

func relevantChange(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Base(ev.Name)
	if name == config.FileName {
		return true
	}
	ext := filepath.Ext(name)
	return strings.EqualFold(ext, include.DefaultExt) || strings.EqualFold(ext, include.BinaryExt)
}

// debounceEvents вызывает run один раз на пачку подходящих событий,
// пришедших с интервалом меньше delay.
func debounceEvents(
	ctx context.Context,
	events <-chan fsnotify.Event,
	errs <-chan error,
	delay time.Duration,
	relevant func(fsnotify.Event) bool,
	run func(),
	errOut io.Writer,
) error {
	timer := time.NewTimer(delay)
	timer.Stop()
	pending := false
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			pending = true
			timer.Reset(delay)
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			fmt.Fprintf(errOut, "watch: %v\n", err)
		case <-timer.C:
			if pending {
				pending = false
				run()
			}
		}
	}
}

package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"uwscript/internal/diag"
	"uwscript/internal/fix"
	"uwscript/internal/include"
	"uwscript/internal/source"
	"uwscript/internal/trace"
)

// CheckResult: итог проверки одного скрипта.
type CheckResult struct {
	Path    string
	FileSet *source.FileSet
	Bag     *diag.Bag
	// Cached: диагностики взяты из DiskCache, скрипт не разбирался.
	Cached bool
	Timing TimingReport
}

func (r *CheckResult) HasErrors() bool {
	return r != nil && r.Bag != nil && r.Bag.HasErrors()
}

// Check разбирает скрипт и выполняет проверки имён. С opts.Cache результат
// берётся из кэша, пока не изменились ни сам файл, ни его call.
func Check(ctx context.Context, path string, opts Options) (*CheckResult, error) {
	ctx, sp := trace.Start(ctx, trace.ScopePass, "check:"+path)
	defer sp.End("")

	var key Digest
	if opts.Cache != nil {
		// #nosec G304 -- path is provided by the caller
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		abs, err := source.AbsolutePath(path)
		if err != nil {
			return nil, err
		}
		key = cacheKey(abs, raw, opts)
		if res, ok := checkFromCache(opts.Cache, key, path, opts); ok {
			sp.Set("cached", "true")
			trace.Point(ctx, trace.ScopePass, "cache", "hit")
			return res, nil
		}
	}

	res, err := Parse(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	if opts.Cache != nil {
		if payload, ok := checkToDiskPayload(res); ok {
			if err := opts.Cache.Put(key, payload); err != nil {
				sp.Set("cache_error", err.Error())
			}
		}
	}
	return &CheckResult{
		Path:    path,
		FileSet: res.FileSet,
		Bag:     res.Bag,
		Timing:  res.Timing,
	}, nil
}

func checkFromCache(cache *DiskCache, key Digest, path string, opts Options) (*CheckResult, bool) {
	started := time.Now()
	var payload DiskPayload
	ok, err := cache.Get(key, &payload)
	if err != nil || !ok || !payload.fresh() {
		return nil, false
	}
	fileSet, bag, err := diskPayloadToBag(&payload, opts.MaxDiagnostics)
	if err != nil {
		return nil, false
	}
	fix.Annotate(fileSet, bag)
	timer := &Timer{phases: []Phase{{Name: "cache", Start: started, Dur: time.Since(started)}}}
	return &CheckResult{
		Path:    path,
		FileSet: fileSet,
		Bag:     bag,
		Cached:  true,
		Timing:  timer.Report(path),
	}, true
}

// ListScripts возвращает отсортированный список всех *.uws файлов в каталоге.
func ListScripts(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), include.DefaultExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// детерминированный порядок
	sort.Strings(files)
	return files, nil
}

// CheckDir проверяет все *.uws каталога параллельно. У каждого файла свой
// FileSet: call добавляют в него файлы, а FileSet не потокобезопасен.
// Файл, который не читается, даёт результат с IOLoadFileError, а не ошибку.
func CheckDir(ctx context.Context, dir string, opts Options) ([]CheckResult, error) {
	files, err := ListScripts(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	ctx, sp := trace.Start(ctx, trace.ScopeCommand, "check-dir")
	defer sp.Set("files", strconv.Itoa(len(files))).End("")

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]CheckResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			opts.emit(PhaseEvent{Name: "check", Path: path, Status: PhaseStart})
			started := time.Now()

			fileOpts := opts
			fileOpts.Observer = nil
			res, err := Check(trace.WithLane(gctx, uint64(i+1)), path, fileOpts) // #nosec G115 -- file index
			if err != nil {
				res = loadFailure(path, err, opts.MaxDiagnostics)
			}
			results[i] = *res
			opts.emit(PhaseEvent{
				Name:    "check",
				Path:    path,
				Status:  PhaseEnd,
				Elapsed: time.Since(started),
				Errors:  countErrors(res.Bag),
				Cached:  res.Cached,
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// loadFailure: результат для файла, который не удалось прочитать.
// Пустой виртуальный файл держит span диагностики.
func loadFailure(path string, err error, maxDiagnostics int) *CheckResult {
	fileSet := source.NewFileSet()
	id := fileSet.AddVirtual(path, nil)
	bag := diag.NewBag(maxDiagnostics)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: id}, "failed to load file: "+err.Error()))
	return &CheckResult{Path: path, FileSet: fileSet, Bag: bag}
}

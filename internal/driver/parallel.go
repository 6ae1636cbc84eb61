package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"vuejsx/internal/diag"
	"vuejsx/internal/source"
)

// IsSourceFile reports whether path is a JSX or TSX module.
func IsSourceFile(path string) bool {
	switch filepath.Ext(path) {
	case ".jsx", ".tsx":
		return !strings.HasSuffix(path, ".d.tsx")
	}
	return false
}

// ListSourceFiles возвращает отсортированный список всех *.jsx/*.tsx файлов
// в директории. node_modules и скрытые каталоги пропускаются.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != dir && (name == "node_modules" || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if IsSourceFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// TransformDir transforms every source file below dir in parallel.
// Results are ordered by path. Per-file failures (unreadable input, write
// errors) become diagnostics of that file; only cancellation and parser
// failures abort the run.
func TransformDir(ctx context.Context, dir string, opts Options, jobs int, sink ProgressSink) (*source.FileSet, []*FileResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// Загружаем все файлы заранее: FileSet не потокобезопасен на запись
	fileIDs := make([]source.FileID, len(files))
	loadErrors := make(map[int]error)
	for i, path := range files {
		emit(sink, Event{File: path, Stage: StageParse, Status: StatusQueued})
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[i] = err
			continue
		}
		fileIDs[i] = fileID
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]*FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if err, failed := loadErrors[i]; failed {
				results[i] = readFailure(path, err, opts.MaxDiagnostics)
				emit(sink, Event{File: path, Stage: StageParse, Status: StatusError, Err: err})
				return nil
			}

			fileOpts := opts
			fileOpts.Observer = chainObservers(opts.Observer, stageObserver(sink, path))
			res, err := transformLoaded(gctx, fileSet, fileIDs[i], fileOpts)
			if err != nil {
				emit(sink, Event{File: path, Stage: StageParse, Status: StatusError, Err: err})
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = res

			if opts.OutDir != "" {
				writeResult(res, path, dir, opts.OutDir, sink)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, nil, err
	}
	return fileSet, results, nil
}

func readFailure(path string, err error, maxDiagnostics int) *FileResult {
	bag := diag.NewBag(maxDiagnostics)
	bag.Add(diag.NewError(diag.IOReadFailed, source.Span{}, fmt.Sprintf("read %s: %v", path, err)))
	return &FileResult{Path: path, Bag: bag}
}

func writeResult(res *FileResult, path, baseDir, outDir string, sink ProgressSink) {
	start := time.Now()
	emit(sink, Event{File: path, Stage: StageWrite, Status: StatusWorking})
	dst, err := OutputPath(path, baseDir, outDir)
	if err == nil {
		err = WriteOutput(res, dst)
	}
	if err != nil {
		res.Bag.Add(diag.NewError(diag.IOWriteFailed, source.Span{}, fmt.Sprintf("write %s: %v", path, err)))
		emit(sink, Event{File: path, Stage: StageWrite, Status: StatusError, Err: err, Elapsed: time.Since(start)})
		return
	}
	emit(sink, Event{File: path, Stage: StageWrite, Status: StatusDone, Elapsed: time.Since(start)})
}

func chainObservers(a, b PhaseObserver) PhaseObserver {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ev PhaseEvent) {
		a(ev)
		b(ev)
	}
}

package driver

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"vuejsx/internal/ast"
	"vuejsx/internal/diag"
	"vuejsx/internal/format"
	"vuejsx/internal/frontend"
	"vuejsx/internal/observ"
	"vuejsx/internal/options"
	"vuejsx/internal/source"
	"vuejsx/internal/transform"
)

// Options configures the pipeline of one run.
type Options struct {
	// Config is the compiled transform configuration; nil means options.Default.
	Config         *options.Compiled
	MaxDiagnostics int
	// Timings appends an OBS6001 info diagnostic with the phase report.
	Timings bool
	// Cache enables the on-disk result cache.
	Cache *DiskCache
	// OutDir, when set, makes TransformDir write every output below it.
	OutDir   string
	Observer PhaseObserver
}

func (o Options) config() *options.Compiled {
	if o.Config != nil {
		return o.Config
	}
	return options.Default().MustCompile()
}

// FileResult is the outcome of transforming one file.
type FileResult struct {
	Path    string
	FileSet *source.FileSet
	FileID  source.FileID
	Output  []byte
	Bag     *diag.Bag
	Result  transform.Result
	Timing  *observ.Report
	// Cached reports that Output came from the disk cache.
	Cached bool
	// Written is the output path when the result was stored to disk.
	Written string
}

// Changed reports whether the output differs from the input.
func (r *FileResult) Changed() bool {
	if r == nil || r.FileSet == nil {
		return false
	}
	return !bytes.Equal(r.Output, r.FileSet.Get(r.FileID).Content)
}

// HasErrors reports whether any error diagnostic was produced.
func (r *FileResult) HasErrors() bool {
	return r != nil && r.Bag != nil && r.Bag.HasErrors()
}

// TransformFile loads path from disk and runs the pipeline on it.
func TransformFile(ctx context.Context, path string, opts Options) (*FileResult, error) {
	fs := source.NewFileSetWithBase(filepath.Dir(path))
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return transformLoaded(ctx, fs, fileID, opts)
}

// TransformSource runs the pipeline on in-memory source; name is used for
// diagnostics only.
func TransformSource(ctx context.Context, name string, src []byte, opts Options) (*FileResult, error) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, src)
	return transformLoaded(ctx, fs, fileID, opts)
}

func transformLoaded(ctx context.Context, fs *source.FileSet, fileID source.FileID, opts Options) (*FileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	cfg := opts.config()
	res := &FileResult{
		Path:    file.Path,
		FileSet: fs,
		FileID:  fileID,
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}
	timer := observ.NewTimer()
	ph := phases{timer: timer, observer: opts.Observer}

	var key Digest
	if opts.Cache != nil {
		idx := ph.begin("cache")
		key = CacheKey(file.Content, cfg.Options)
		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		if err == nil && hit {
			err = payload.restore(res)
		}
		// битая запись кэша означает промах, а не ошибку
		if err != nil || !hit {
			res.Output, res.Cached = nil, false
			res.Bag = diag.NewBag(opts.MaxDiagnostics)
		}
		ph.end(idx, "cache", cacheNote(res.Cached))
		if res.Cached {
			finishTiming(res, timer, opts)
			return res, nil
		}
	}

	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: res.Bag})
	b := ast.NewBuilder(ast.Hints{}, nil)

	idx := ph.begin(string(StageParse))
	astFile, err := frontend.Parse(ctx, fs, fileID, b, reporter)
	ph.end(idx, string(StageParse), humanize.Bytes(uint64(len(file.Content))))
	if err != nil {
		return nil, err
	}

	idx = ph.begin(string(StageTransform))
	res.Result = transform.Run(b, astFile, transform.Options{Reporter: reporter, Config: cfg})
	ph.end(idx, string(StageTransform), fmt.Sprintf("%d elements", res.Result.Elements+res.Result.Fragments))

	idx = ph.begin(string(StagePrint))
	out, err := format.FormatFile(file, b, astFile, format.Options{})
	ph.end(idx, string(StagePrint), humanize.Bytes(uint64(len(out))))
	if err != nil {
		return nil, fmt.Errorf("print %s: %w", file.Path, err)
	}
	res.Output = out

	if opts.Cache != nil {
		if payload, err := newDiskPayload(res); err == nil {
			// кэш необязателен: ошибка записи не валит трансформацию
			_ = opts.Cache.Put(key, payload)
		}
	}

	finishTiming(res, timer, opts)
	return res, nil
}

func cacheNote(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

func finishTiming(res *FileResult, timer *observ.Timer, opts Options) {
	report := timer.Report()
	res.Timing = &report
	if opts.Timings {
		appendTimingDiagnostic(res.Bag, timingPayload{
			Kind:    "file",
			Path:    res.Path,
			TotalMS: report.TotalMS,
			Phases:  report.Phases,
		})
	}
}

// OutputPath maps a source path below baseDir to its location below outDir.
// .tsx becomes .ts and .jsx becomes .js; type annotations are kept.
func OutputPath(path, baseDir, outDir string) (string, error) {
	rel, err := filepath.Rel(baseDir, path)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(rel, "..") {
		rel = filepath.Base(path)
	}
	switch ext := filepath.Ext(rel); ext {
	case ".tsx":
		rel = strings.TrimSuffix(rel, ext) + ".ts"
	case ".jsx":
		rel = strings.TrimSuffix(rel, ext) + ".js"
	}
	return filepath.Join(outDir, rel), nil
}

// WriteOutput stores res.Output at dst, creating parent directories.
func WriteOutput(res *FileResult, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	// #nosec G306 -- generated sources are world-readable like their inputs
	if err := os.WriteFile(dst, res.Output, 0o644); err != nil {
		return err
	}
	res.Written = dst
	return nil
}

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"vuejsx/internal/diag"
	"vuejsx/internal/diagfmt"
	"vuejsx/internal/driver"
	"vuejsx/internal/options"
	"vuejsx/internal/source"
)

var transformCmd = &cobra.Command{
	Use:   "transform [flags] <file.tsx|directory|->",
	Short: "Rewrite JSX into Vue 3 vnode calls",
	Long: `Rewrite JSX in a .jsx/.tsx file, in every such file below a directory,
or in standard input ("-"). Single files and stdin print the result to stdout
unless --out-dir or --diff is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runTransform,
}

func init() {
	addTransformFlags(transformCmd)
}

func addTransformFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("config", "", "config file (vuejsx.toml|.yaml|.json); searched upwards when empty")
	f.Bool("optimize", false, "emit patch flags, slot flags and dynamic prop lists")
	f.Bool("transform-on", false, "route on/nativeOn objects through the transform-on helper")
	f.String("pragma", "", "vnode factory identifier (default: imported createVNode)")
	f.Bool("resolve-type", false, "infer runtime props from defineComponent type annotations")
	f.Bool("no-merge-props", false, "do not merge props around spreads")
	f.Bool("no-object-slots", false, "do not wrap ambiguous single children in a slot check")
	f.StringArray("custom-element", nil, "regexp of tag names kept as custom elements (repeatable)")
	f.String("out-dir", "", "write outputs below this directory (.tsx -> .ts, .jsx -> .js)")
	f.Bool("diff", false, "print a diff of every changed file instead of the output")
	f.Bool("stats", false, "print a per-file summary table")
	f.Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	f.String("format", "pretty", "diagnostics format (pretty|json|short)")
	f.Bool("disk-cache", false, "reuse results from the on-disk cache")
	f.String("ui", "auto", "progress UI for directories (auto|on|off)")
}

type transformFlags struct {
	outDir         string
	diff           bool
	stats          bool
	jobs           int
	format         string
	ui             uiMode
	diskCache      bool
	quiet          bool
	timings        bool
	maxDiagnostics int
	color          bool
}

func readTransformFlags(cmd *cobra.Command) (transformFlags, error) {
	var fl transformFlags
	var err error
	f := cmd.Flags()
	if fl.outDir, err = f.GetString("out-dir"); err != nil {
		return fl, fmt.Errorf("failed to get out-dir flag: %w", err)
	}
	if fl.diff, err = f.GetBool("diff"); err != nil {
		return fl, fmt.Errorf("failed to get diff flag: %w", err)
	}
	if fl.stats, err = f.GetBool("stats"); err != nil {
		return fl, fmt.Errorf("failed to get stats flag: %w", err)
	}
	if fl.jobs, err = f.GetInt("jobs"); err != nil {
		return fl, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if fl.format, err = f.GetString("format"); err != nil {
		return fl, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch fl.format = strings.ToLower(fl.format); fl.format {
	case "pretty", "json", "short":
	default:
		return fl, fmt.Errorf("unknown format %q (expected pretty|json|short)", fl.format)
	}
	uiValue, err := f.GetString("ui")
	if err != nil {
		return fl, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if fl.ui, err = readUIMode(uiValue); err != nil {
		return fl, err
	}
	if fl.diskCache, err = f.GetBool("disk-cache"); err != nil {
		return fl, fmt.Errorf("failed to get disk-cache flag: %w", err)
	}

	root := cmd.Root().PersistentFlags()
	if fl.quiet, err = root.GetBool("quiet"); err != nil {
		return fl, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if fl.timings, err = root.GetBool("timings"); err != nil {
		return fl, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if fl.maxDiagnostics, err = root.GetInt("max-diagnostics"); err != nil {
		return fl, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if fl.color, err = useColor(cmd, os.Stderr); err != nil {
		return fl, err
	}
	if fl.diff && fl.outDir != "" {
		return fl, errors.New("--diff and --out-dir cannot be used together")
	}
	return fl, nil
}

// loadConfig reads the config file (explicit or found upwards from
// startDir) and applies the flags the user set on top of it.
func loadConfig(cmd *cobra.Command, startDir string) (options.Options, string, error) {
	f := cmd.Flags()
	path, err := f.GetString("config")
	if err != nil {
		return options.Options{}, "", fmt.Errorf("failed to get config flag: %w", err)
	}
	if path == "" {
		found, ok, err := options.Find(startDir)
		if err != nil {
			return options.Options{}, "", err
		}
		if ok {
			path = found
		}
	}

	opts := options.Default()
	if path != "" {
		if opts, err = options.Load(path); err != nil {
			return options.Options{}, path, err
		}
	}

	if f.Changed("optimize") {
		opts.Optimize, _ = f.GetBool("optimize")
	}
	if f.Changed("transform-on") {
		opts.TransformOn, _ = f.GetBool("transform-on")
	}
	if f.Changed("pragma") {
		opts.Pragma, _ = f.GetString("pragma")
	}
	if f.Changed("resolve-type") {
		opts.ResolveType, _ = f.GetBool("resolve-type")
	}
	if off, _ := f.GetBool("no-merge-props"); off {
		opts.MergeProps = false
	}
	if off, _ := f.GetBool("no-object-slots"); off {
		opts.EnableObjectSlots = false
	}
	if f.Changed("custom-element") {
		extra, _ := f.GetStringArray("custom-element")
		opts.CustomElementPatterns = append(opts.CustomElementPatterns, extra...)
	}
	return opts, path, nil
}

func runTransform(cmd *cobra.Command, args []string) error {
	target := args[0]
	fl, err := readTransformFlags(cmd)
	if err != nil {
		return err
	}

	startDir := "."
	isDir := false
	if target != "-" {
		st, err := os.Stat(target)
		if err != nil {
			return fmt.Errorf("failed to stat %q: %w", target, err)
		}
		isDir = st.IsDir()
		startDir = target
		if !isDir {
			startDir = filepath.Dir(target)
		}
	} else if fl.outDir != "" {
		return errors.New("--out-dir needs a file or directory argument")
	}

	cfg, cfgPath, err := loadConfig(cmd, startDir)
	var compiled *options.Compiled
	if err == nil {
		compiled, err = cfg.Compile()
	}
	if err != nil {
		reportConfigError(cmd.ErrOrStderr(), fl, cfgPath, err)
		return exitCodeError{code: 1}
	}

	opts := driver.Options{
		Config:         compiled,
		MaxDiagnostics: fl.maxDiagnostics,
		Timings:        fl.timings,
	}
	if fl.diskCache {
		cache, err := driver.OpenDiskCache("vuejsx")
		if err != nil {
			if !fl.quiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: disk cache disabled: %v\n", err)
			}
		} else {
			opts.Cache = cache
		}
	}

	var (
		fs      *source.FileSet
		results []*driver.FileResult
	)
	switch {
	case target == "-":
		src, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		res, err := driver.TransformSource(cmd.Context(), "<stdin>", src, opts)
		if err != nil {
			return err
		}
		fs, results = res.FileSet, []*driver.FileResult{res}
		emitSingle(cmd, fl, res)
	case isDir:
		opts.OutDir = fl.outDir
		fs, results, err = transformDir(cmd, fl, target, opts)
		if err != nil {
			return fmt.Errorf("transform failed: %w", err)
		}
		if fl.diff {
			for _, r := range results {
				if r.Changed() {
					writeDiff(cmd.OutOrStdout(), displayPath(fs, r), r.FileSet.Get(r.FileID).Content, r.Output, fl.color)
				}
			}
		}
	default:
		res, err := driver.TransformFile(cmd.Context(), target, opts)
		if err != nil {
			return err
		}
		fs, results = res.FileSet, []*driver.FileResult{res}
		emitSingle(cmd, fl, res)
	}

	if err := printDiagnostics(cmd.ErrOrStderr(), fl, fs, results); err != nil {
		return err
	}
	if fl.stats {
		printStats(cmd.ErrOrStderr(), results, fs)
	} else if isDir && !fl.quiet {
		printSummary(cmd.ErrOrStderr(), results, fl.outDir)
	}

	for _, r := range results {
		if r.HasErrors() {
			return exitCodeError{code: 1}
		}
	}
	return nil
}

func transformDir(cmd *cobra.Command, fl transformFlags, dir string, opts driver.Options) (*source.FileSet, []*driver.FileResult, error) {
	if fl.quiet || !shouldUseTUI(fl.ui) {
		return driver.TransformDir(cmd.Context(), dir, opts, fl.jobs, nil)
	}
	files, err := driver.ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	final := driver.StagePrint
	if opts.OutDir != "" {
		final = driver.StageWrite
	}
	return runDirWithUI(cmd.Context(), "vuejsx transform "+dir, files, final, func(sink driver.ProgressSink) (*source.FileSet, []*driver.FileResult, error) {
		return driver.TransformDir(cmd.Context(), dir, opts, fl.jobs, sink)
	})
}

// emitSingle prints or stores the output of a single file or stdin.
func emitSingle(cmd *cobra.Command, fl transformFlags, res *driver.FileResult) {
	switch {
	case fl.outDir != "":
		dst, err := driver.OutputPath(res.Path, filepath.Dir(res.Path), fl.outDir)
		if err == nil {
			err = driver.WriteOutput(res, dst)
		}
		if err != nil {
			res.Bag.Add(diag.NewError(diag.IOWriteFailed, source.Span{}, fmt.Sprintf("write %s: %v", res.Path, err)))
		}
	case fl.diff:
		writeDiff(cmd.OutOrStdout(), res.Path, res.FileSet.Get(res.FileID).Content, res.Output, fl.color)
	default:
		_, _ = cmd.OutOrStdout().Write(res.Output)
	}
}

func printDiagnostics(w io.Writer, fl transformFlags, fallback *source.FileSet, results []*driver.FileResult) error {
	prettyOpts := diagfmt.PrettyOpts{
		Color:     fl.color,
		Context:   1,
		PathMode:  diagfmt.PathModeAuto,
		ShowNotes: true,
		ShowFixes: true,
	}
	jsonOpts := diagfmt.JSONOpts{
		IncludePositions: true,
		PathMode:         diagfmt.PathModeRelative,
		IncludeNotes:     true,
		IncludeFixes:     true,
		IncludePreviews:  true,
	}

	switch fl.format {
	case "short":
		for _, r := range results {
			if out := diag.FormatShortDiagnostics(r.Bag.Items(), fileSetOf(r, fallback), true); out != "" {
				fmt.Fprintln(w, out)
			}
		}
	case "json":
		output := make(map[string]diagfmt.DiagnosticsOutput, len(results))
		for _, r := range results {
			fs := fileSetOf(r, fallback)
			output[displayPath(fs, r)] = diagfmt.BuildDiagnosticsOutput(r.Bag, fs, jsonOpts)
		}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(output); err != nil {
			return fmt.Errorf("failed to encode diagnostics output: %w", err)
		}
	default:
		multi := len(results) > 1
		first := true
		for _, r := range results {
			if r.Bag.Len() == 0 {
				continue
			}
			if !first {
				fmt.Fprintln(w)
			}
			first = false
			fs := fileSetOf(r, fallback)
			if multi {
				fmt.Fprintf(w, "== %s ==\n", displayPath(fs, r))
			}
			r.Bag.Sort()
			diagfmt.Pretty(w, r.Bag, fs, prettyOpts)
		}
	}
	return nil
}

func printSummary(w io.Writer, results []*driver.FileResult, outDir string) {
	changed, failed := 0, 0
	for _, r := range results {
		if r.Changed() {
			changed++
		}
		if r.HasErrors() {
			failed++
		}
	}
	fmt.Fprintf(w, "%d files, %d with JSX, %d with errors", len(results), changed, failed)
	if outDir != "" {
		fmt.Fprintf(w, "; written to %s", outDir)
	}
	fmt.Fprintln(w)
}

// reportConfigError prints a config failure as a VJX4003 diagnostic.
func reportConfigError(w io.Writer, fl transformFlags, path string, err error) {
	msg := err.Error()
	if path != "" && !strings.Contains(msg, path) {
		msg = path + ": " + msg
	}
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.ConfigInvalid, source.Span{}, msg))
	if fl.format == "json" {
		_ = diagfmt.JSON(w, bag, nil, diagfmt.JSONOpts{})
		return
	}
	diagfmt.Pretty(w, bag, nil, diagfmt.PrettyOpts{Color: fl.color})
}

func fileSetOf(r *driver.FileResult, fallback *source.FileSet) *source.FileSet {
	if r.FileSet != nil {
		return r.FileSet
	}
	return fallback
}

package fuzztests

import (
	"context"
	"fmt"
	"testing"
	"time"

	"vuejsx/internal/ast"
	"vuejsx/internal/diag"
	"vuejsx/internal/format"
	"vuejsx/internal/frontend"
	"vuejsx/internal/options"
	"vuejsx/internal/source"
	"vuejsx/internal/testkit"
	"vuejsx/internal/transform"
)

// pipelineTimeout is the maximum time allowed for a single input.
// If the pipeline takes longer, it indicates a potential infinite loop.
const pipelineTimeout = 5 * time.Second

func runPipeline(ctx context.Context, input []byte, cfg *options.Compiled) error {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("fuzz.tsx", input)

	bag := diag.NewBag(128)
	reporter := diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(ast.Hints{}, nil)
	fid, err := frontend.Parse(ctx, fs, fileID, b, reporter)
	if err != nil {
		return nil
	}
	transform.Run(b, fid, transform.Options{Reporter: reporter, Config: cfg})
	if err := testkit.CheckSpanInvariants(b, fid, fs.Get(fileID)); err != nil {
		return fmt.Errorf("span invariants: %w", err)
	}
	if _, err := format.FormatFile(fs.Get(fileID), b, fid, format.Options{}); err != nil {
		return fmt.Errorf("FormatFile: %w", err)
	}
	return nil
}

func FuzzTransformPipeline(f *testing.F) {
	addCorpusSeeds(f)
	optimized := options.Default()
	optimized.Optimize = true
	optimized.TransformOn = true
	cfgs := []*options.Compiled{nil, optimized.MustCompile()}

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		for _, cfg := range cfgs {
			if err := runPipeline(context.Background(), input, cfg); err != nil {
				t.Fatalf("%v\ninput: %q", err, truncateForLog(input, 200))
			}
		}
	})
}

// FuzzTransformNoHang checks that parsing and rewriting finish on any input.
func FuzzTransformNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Add([]byte("const a = <div>{</div>;\n"))
	f.Add([]byte("const a = <<<<<<div>>>>>>;\n"))
	f.Add([]byte("const a = <div {...} />;\n"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		ctx, cancel := context.WithTimeout(context.Background(), pipelineTimeout)
		defer cancel()

		done := make(chan error, 1)
		go func() {
			done <- runPipeline(ctx, input, nil)
		}()

		select {
		case err := <-done:
			if err != nil {
				t.Fatalf("%v\ninput: %q", err, truncateForLog(input, 200))
			}
		case <-ctx.Done():
			t.Fatalf("pipeline hang detected: took longer than %v\ninput (%d bytes): %q",
				pipelineTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}

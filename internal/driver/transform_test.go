package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"vuejsx/internal/diag"
	"vuejsx/internal/options"
)

const helloSrc = "const a = <div>hello</div>;\n"

const helloOut = "import { createTextVNode as _createTextVNode, createVNode as _createVNode } from \"vue\";\n" +
	"const a = _createVNode(\"div\", null, [_createTextVNode(\"hello\")]);\n"

func TestTransformSource(t *testing.T) {
	res, err := TransformSource(context.Background(), "App.tsx", []byte(helloSrc), Options{})
	require.NoError(t, err)
	require.Equal(t, helloOut, string(res.Output))
	require.True(t, res.Changed())
	require.False(t, res.HasErrors())
	require.False(t, res.Cached)
	require.Equal(t, 1, res.Result.Elements)

	require.NotNil(t, res.Timing)
	var names []string
	for _, p := range res.Timing.Phases {
		names = append(names, p.Name)
	}
	require.Equal(t, []string{"parse", "transform", "print"}, names)
}

func TestTransformSourceWithoutJSX(t *testing.T) {
	src := "export const answer = 42;\n"
	res, err := TransformSource(context.Background(), "plain.ts", []byte(src), Options{})
	require.NoError(t, err)
	require.Equal(t, src, string(res.Output))
	require.False(t, res.Changed())
}

func TestTransformSourceTimings(t *testing.T) {
	res, err := TransformSource(context.Background(), "App.tsx", []byte(helloSrc), Options{Timings: true})
	require.NoError(t, err)
	items := res.Bag.Items()
	require.Len(t, items, 1)
	require.Equal(t, diag.ObsTimings, items[0].Code)
	require.Equal(t, diag.SevInfo, items[0].Severity)
	require.Contains(t, items[0].Message, "App.tsx")
	require.Len(t, items[0].Notes, 1)
	require.Contains(t, items[0].Notes[0].Msg, `"kind":"file"`)
	require.False(t, res.HasErrors())
}

func TestTransformSourceUsesConfig(t *testing.T) {
	cfg := options.Default()
	cfg.Pragma = "h"
	res, err := TransformSource(context.Background(), "App.jsx", []byte("const a = <div />;\n"), Options{Config: cfg.MustCompile()})
	require.NoError(t, err)
	require.Equal(t, "const a = h(\"div\", null, null);\n", string(res.Output))
}

func TestTransformSourceDiagnostics(t *testing.T) {
	res, err := TransformSource(context.Background(), "App.tsx", []byte("const a = <Foo v-models={x} />;\n"), Options{})
	require.NoError(t, err)
	require.True(t, res.HasErrors())
	require.Equal(t, diag.VModelsNotArray, res.Bag.Items()[0].Code)
}

func TestTransformSourceCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := TransformSource(ctx, "App.tsx", []byte(helloSrc), Options{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestTransformFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "App.tsx")
	require.NoError(t, os.WriteFile(path, []byte(helloSrc), 0o644))

	res, err := TransformFile(context.Background(), path, Options{})
	require.NoError(t, err)
	require.Equal(t, helloOut, string(res.Output))

	_, err = TransformFile(context.Background(), filepath.Join(dir, "missing.tsx"), Options{})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestPhaseObserver(t *testing.T) {
	var events []PhaseEvent
	opts := Options{Observer: func(ev PhaseEvent) { events = append(events, ev) }}
	_, err := TransformSource(context.Background(), "App.tsx", []byte(helloSrc), opts)
	require.NoError(t, err)
	require.Len(t, events, 6)
	require.Equal(t, PhaseEvent{Name: "parse", Status: PhaseStart}, events[0])
	require.Equal(t, "print", events[5].Name)
	require.Equal(t, PhaseEnd, events[5].Status)
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		path, want string
	}{
		{"/src/App.tsx", "/out/App.ts"},
		{"/src/ui/Button.jsx", "/out/ui/Button.js"},
		{"/elsewhere/Card.tsx", "/out/Card.ts"},
	}
	for _, tt := range tests {
		got, err := OutputPath(filepath.FromSlash(tt.path), filepath.FromSlash("/src"), filepath.FromSlash("/out"))
		require.NoError(t, err)
		require.Equal(t, filepath.FromSlash(tt.want), got)
	}
}

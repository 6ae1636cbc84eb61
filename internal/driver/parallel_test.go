package driver

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"vuejsx/internal/diag"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *recordingSink) count(stage Stage, status Status) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, ev := range s.events {
		if ev.Stage == stage && ev.Status == status {
			n++
		}
	}
	return n
}

func TestListSourceFiles(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"b.tsx":                  "",
		"a.jsx":                  "",
		"ui/c.tsx":               "",
		"types.d.tsx":            "",
		"readme.md":              "",
		"node_modules/lib/x.tsx": "",
		".cache/y.jsx":           "",
	})
	files, err := ListSourceFiles(dir)
	require.NoError(t, err)
	want := []string{
		filepath.Join(dir, "a.jsx"),
		filepath.Join(dir, "b.tsx"),
		filepath.Join(dir, "ui", "c.tsx"),
	}
	require.Equal(t, want, files)
}

func TestTransformDir(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"App.tsx":       helloSrc,
		"ui/Button.jsx": "export const B = () => <button />;\n",
		"ui/bad.tsx":    "const a = <Foo v-models={x} />;\n",
	})
	out := t.TempDir()
	sink := &recordingSink{}

	fs, results, err := TransformDir(context.Background(), dir, Options{OutDir: out}, 2, sink)
	require.NoError(t, err)
	require.NotNil(t, fs)
	require.Len(t, results, 3)
	require.Equal(t, filepath.ToSlash(filepath.Join(dir, "App.tsx")), results[0].Path)
	require.Equal(t, helloOut, string(results[0].Output))
	require.True(t, results[2].HasErrors())

	written, err := os.ReadFile(filepath.Join(out, "App.ts"))
	require.NoError(t, err)
	require.Equal(t, helloOut, string(written))
	_, err = os.Stat(filepath.Join(out, "ui", "Button.js"))
	require.NoError(t, err)

	require.Equal(t, 3, sink.count(StageParse, StatusQueued))
	require.Equal(t, 3, sink.count(StageTransform, StatusDone))
	require.Equal(t, 3, sink.count(StageWrite, StatusDone))
}

func TestTransformDirEmpty(t *testing.T) {
	fs, results, err := TransformDir(context.Background(), t.TempDir(), Options{}, 0, nil)
	require.NoError(t, err)
	require.NotNil(t, fs)
	require.Empty(t, results)
}

func TestTransformDirWriteFailure(t *testing.T) {
	dir := writeTree(t, map[string]string{"App.tsx": helloSrc})
	// файл на месте каталога вывода
	blocker := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	sink := &recordingSink{}
	_, results, err := TransformDir(context.Background(), dir, Options{OutDir: blocker}, 1, sink)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.True(t, results[0].HasErrors())
	require.Equal(t, diag.IOWriteFailed, results[0].Bag.Items()[0].Code)
	require.Equal(t, 1, sink.count(StageWrite, StatusError))
}

func TestTransformDirCancelled(t *testing.T) {
	dir := writeTree(t, map[string]string{"App.tsx": helloSrc})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := TransformDir(ctx, dir, Options{}, 1, nil)
	require.ErrorIs(t, err, context.Canceled)
}

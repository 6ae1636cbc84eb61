package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// resetFlags restores defaults on the global command tree between runs.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func execCLI(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var out, errOut bytes.Buffer
	rootCmd.SetArgs(append([]string{"--color", "off"}, args...))
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	code = run(rootCmd)
	return code, out.String(), errOut.String()
}

const appSrc = "const a = <div>hello</div>;\n"

const appOut = "import { createTextVNode as _createTextVNode, createVNode as _createVNode } from \"vue\";\n" +
	"const a = _createVNode(\"div\", null, [_createTextVNode(\"hello\")]);\n"

func TestTransformFileToStdout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "App.tsx")
	require.NoError(t, os.WriteFile(path, []byte(appSrc), 0o644))

	code, stdout, stderr := execCLI(t, "", "transform", path)
	require.Equal(t, 0, code, stderr)
	require.Equal(t, appOut, stdout)
	require.Empty(t, stderr)
}

func TestTransformStdinWithPragmaFlag(t *testing.T) {
	code, stdout, _ := execCLI(t, "const a = <div />;\n", "transform", "--pragma", "h", "-")
	require.Equal(t, 0, code)
	require.Equal(t, "const a = h(\"div\", null, null);\n", stdout)
}

func TestTransformErrorsExitOne(t *testing.T) {
	code, _, stderr := execCLI(t, "const a = <Foo v-models={x} />;\n", "transform", "--format", "short", "-")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "VJX2002")
}

func TestTransformShowsFixes(t *testing.T) {
	src := "const a = <Foo v-models={x} />;\n"

	code, _, stderr := execCLI(t, src, "transform", "-")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "fix: wrap in array")
	require.Contains(t, stderr, "+ const a = <Foo v-models={[[x]]} />;")

	code, stdout, _ := execCLI(t, src, "transform", "--format", "json", "-")
	require.Equal(t, 1, code)
	require.Contains(t, stdout+stderr, "wrap in array")
	require.Contains(t, stdout+stderr, "v-models={[[x]]}")
}

func TestTransformDirWithOutDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "ui"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "App.tsx"), []byte(appSrc), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ui", "Button.jsx"), []byte("export const B = 1;\n"), 0o644))
	out := filepath.Join(t.TempDir(), "dist")

	code, stdout, stderr := execCLI(t, "", "transform", "--ui", "off", "--out-dir", out, dir)
	require.Equal(t, 0, code, stderr)
	require.Empty(t, stdout)
	require.Contains(t, stderr, "2 files, 1 with JSX, 0 with errors")

	written, err := os.ReadFile(filepath.Join(out, "App.ts"))
	require.NoError(t, err)
	require.Equal(t, appOut, string(written))
	require.FileExists(t, filepath.Join(out, "ui", "Button.js"))
}

func TestTransformConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vuejsx.toml"), []byte("pragma = \"h\"\n"), 0o644))
	path := filepath.Join(dir, "App.jsx")
	require.NoError(t, os.WriteFile(path, []byte("const a = <div />;\n"), 0o644))

	code, stdout, _ := execCLI(t, "", "transform", path)
	require.Equal(t, 0, code)
	require.Equal(t, "const a = h(\"div\", null, null);\n", stdout)

	// флаг сильнее файла
	code, stdout, _ = execCLI(t, "", "transform", "--pragma", "jsx", path)
	require.Equal(t, 0, code)
	require.Equal(t, "const a = jsx(\"div\", null, null);\n", stdout)
}

func TestTransformInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(cfg, []byte(`{"optimize": "yes"}`), 0o644))

	code, stdout, stderr := execCLI(t, "const a = 1;\n", "transform", "--config", cfg, "-")
	require.Equal(t, 1, code)
	require.Empty(t, stdout)
	require.Contains(t, stderr, "VJX4003")
}

func TestTransformDiff(t *testing.T) {
	code, stdout, _ := execCLI(t, appSrc, "transform", "--diff", "-")
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "--- <stdin>")
	require.Contains(t, stdout, "-const a = <div>hello</div>;")
	require.Contains(t, stdout, "+const a = _createVNode(\"div\", null, [_createTextVNode(\"hello\")]);")
}

func TestTransformStats(t *testing.T) {
	code, _, stderr := execCLI(t, appSrc, "transform", "--stats", "-")
	require.Equal(t, 0, code)
	// go-pretty переводит заголовок и футер в верхний регистр
	lower := strings.ToLower(stderr)
	require.Contains(t, lower, "elements")
	require.Contains(t, lower, "1 files, 1 changed")
	require.Contains(t, stderr, "phases: parse ")
}

func TestVersionJSON(t *testing.T) {
	code, stdout, _ := execCLI(t, "", "version", "--format", "json")
	require.Equal(t, 0, code)
	require.Contains(t, stdout, `"tool": "vuejsx"`)
	require.Contains(t, stdout, `"version": "`)
}

func TestUnknownFormat(t *testing.T) {
	code, _, _ := execCLI(t, appSrc, "transform", "--format", "xml", "-")
	require.Equal(t, 1, code)
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, "on": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := readUIMode("sometimes")
	require.Error(t, err)
}

func TestProfilingFlags(t *testing.T) {
	dir := t.TempDir()
	cpu := filepath.Join(dir, "cpu.pprof")
	mem := filepath.Join(dir, "mem.pprof")

	code, _, _ := execCLI(t, appSrc, "--cpu-profile", cpu, "--mem-profile", mem, "transform", "-")
	require.Equal(t, 0, code)
	require.FileExists(t, cpu)
	require.FileExists(t, mem)
	require.Nil(t, profSession)
}

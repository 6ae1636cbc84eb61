package options

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	opts := Default()
	assert.True(t, opts.MergeProps)
	assert.True(t, opts.EnableObjectSlots)
	assert.False(t, opts.Optimize)
	assert.False(t, opts.TransformOn)
	assert.Empty(t, opts.Pragma)
}

func TestParseFormatsKeepDefaults(t *testing.T) {
	docs := map[Format]string{
		FormatTOML: "optimize = true\ncustomElementPatterns = [\"^my-\"]\n",
		FormatYAML: "optimize: true\ncustomElementPatterns:\n  - ^my-\n",
		FormatJSON: `{"optimize": true, "customElementPatterns": ["^my-"]}`,
	}
	for format, doc := range docs {
		t.Run(string(format), func(t *testing.T) {
			opts, err := Parse([]byte(doc), format)
			require.NoError(t, err)
			assert.True(t, opts.Optimize)
			assert.True(t, opts.MergeProps, "unset mergeProps must stay true")
			assert.True(t, opts.EnableObjectSlots)
			assert.Equal(t, []string{"^my-"}, opts.CustomElementPatterns)
		})
	}
}

func TestParseExplicitFalse(t *testing.T) {
	opts, err := Parse([]byte(`{"mergeProps": false, "enableObjectSlots": false}`), FormatJSON)
	require.NoError(t, err)
	assert.False(t, opts.MergeProps)
	assert.False(t, opts.EnableObjectSlots)
}

func TestParseRejectsSchemaViolations(t *testing.T) {
	_, err := Parse([]byte(`{"optimize": "yes", "unknown": 1}`), FormatJSON)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Problems, 2)
}

func TestParseRejectsBadPragma(t *testing.T) {
	_, err := Parse([]byte("pragma = \"not valid\"\n"), FormatTOML)
	require.Error(t, err)
}

func TestCompilePatterns(t *testing.T) {
	opts := Default()
	opts.CustomElementPatterns = []string{"^my-", "Widget$"}
	c, err := opts.Compile()
	require.NoError(t, err)
	assert.True(t, c.IsCustomElement("my-button"))
	assert.True(t, c.IsCustomElement("FancyWidget"))
	assert.False(t, c.IsCustomElement("Button"))

	opts.CustomElementPatterns = []string{"("}
	_, err = opts.Compile()
	require.Error(t, err)
}

func TestFingerprintTracksOptions(t *testing.T) {
	a := Default()
	b := Default()
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	b.Optimize = true
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	cfg := filepath.Join(root, "vuejsx.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("optimize: true\n"), 0o600))

	path, ok, err := Find(nested)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, cfg, path)

	opts, err := Load(path)
	require.NoError(t, err)
	assert.True(t, opts.Optimize)
}

func TestFormatOf(t *testing.T) {
	_, err := FormatOf("cfg.ini")
	require.Error(t, err)
	f, err := FormatOf("CFG.YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)
}

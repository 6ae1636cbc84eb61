package options

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON []byte

var schemaLoader = gojsonschema.NewBytesLoader(schemaJSON)

// ConfigNames are looked up, in order, in every directory walked by Find.
var ConfigNames = []string{"vuejsx.toml", "vuejsx.yaml", "vuejsx.yml", "vuejsx.json"}

// Format is a config file syntax.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf picks the syntax by file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%s: unsupported config format", path)
	}
}

// ValidationError lists schema violations of a config document.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid options: " + strings.Join(e.Problems, "; ")
}

// Load reads a config file. Unset fields keep their Default values.
func Load(path string) (Options, error) {
	format, err := FormatOf(path)
	if err != nil {
		return Options{}, err
	}
	// #nosec G304 -- path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("failed to read config: %w", err)
	}
	opts, err := Parse(data, format)
	if err != nil {
		return Options{}, fmt.Errorf("%s: %w", path, err)
	}
	return opts, nil
}

// Parse decodes and validates one config document.
func Parse(data []byte, format Format) (Options, error) {
	raw := map[string]any{}
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return Options{}, fmt.Errorf("failed to parse TOML: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Options{}, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return Options{}, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		return Options{}, fmt.Errorf("unsupported config format %q", format)
	}
	if err := Validate(raw); err != nil {
		return Options{}, err
	}

	opts := Default()
	var err error
	switch format {
	case FormatTOML:
		_, err = toml.Decode(string(data), &opts)
	case FormatYAML:
		err = yaml.Unmarshal(data, &opts)
	case FormatJSON:
		err = json.Unmarshal(data, &opts)
	}
	if err != nil {
		return Options{}, fmt.Errorf("failed to decode options: %w", err)
	}
	return opts, nil
}

// Validate checks a decoded document against the embedded JSON Schema.
func Validate(doc map[string]any) error {
	if doc == nil {
		doc = map[string]any{}
	}
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}
	verr := &ValidationError{}
	for _, e := range result.Errors() {
		verr.Problems = append(verr.Problems, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
	}
	return verr
}

// Find walks from startDir up to the filesystem root and returns the first
// config file found.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range ConfigNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

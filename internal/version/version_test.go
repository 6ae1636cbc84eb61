package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
	if got := Current().Version; got != Version {
		t.Errorf("Current().Version = %q, want %q", got, Version)
	}
}

func TestVersion_CanBeOverridden(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	defer func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate }()

	Version = "1.2.3"
	GitCommit = "abc123def456"
	BuildDate = "2024-01-15T10:30:00Z"

	want := Info{Version: "1.2.3", GitCommit: "abc123def456", BuildDate: "2024-01-15T10:30:00Z"}
	if got := Current(); got != want {
		t.Errorf("Current() = %+v, want %+v", got, want)
	}
}

func TestColored(t *testing.T) {
	origVersion := Version
	origNoColor := color.NoColor
	defer func() { Version, color.NoColor = origVersion, origNoColor }()
	color.NoColor = true

	tests := []string{
		"0.1.0",
		"1.2.3-rc.1+build.123",
		"0.1.0-dev",
		"nightly",
	}
	for _, v := range tests {
		Version = v
		if got := Colored(); got != v {
			t.Errorf("Colored() with colors off = %q, want %q", got, v)
		}
	}
}

func BenchmarkColored(b *testing.B) {
	for b.Loop() {
		_ = Colored()
	}
}

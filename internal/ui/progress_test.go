package ui

import (
	"strings"
	"testing"

	"vuejsx/internal/driver"
)

func newModel(final driver.Stage, files ...string) *progressModel {
	m, ok := NewProgressModel("transform", files, final, nil).(*progressModel)
	if !ok {
		panic("unexpected model type")
	}
	return m
}

func TestApplyEventLifecycle(t *testing.T) {
	m := newModel(driver.StagePrint, "a.tsx", "b.tsx")

	m.applyEvent(driver.Event{File: "a.tsx", Stage: driver.StageParse, Status: driver.StatusWorking})
	if got := m.items[0].status; got != "parsing" {
		t.Fatalf("status = %q, want parsing", got)
	}
	m.applyEvent(driver.Event{File: "a.tsx", Stage: driver.StageParse, Status: driver.StatusDone})
	if got := m.items[0].status; got != "parsing" {
		t.Fatalf("intermediate done must not finish the file, got %q", got)
	}
	if got := m.percent(); got <= 0 || got >= 0.5 {
		t.Fatalf("percent after one parse = %v", got)
	}

	m.applyEvent(driver.Event{File: "a.tsx", Stage: driver.StagePrint, Status: driver.StatusDone})
	if got := m.items[0].status; got != "done" {
		t.Fatalf("status = %q, want done", got)
	}
	if got := m.percent(); got != 0.5 {
		t.Fatalf("percent = %v, want 0.5", got)
	}

	m.applyEvent(driver.Event{File: "b.tsx", Stage: driver.StageParse, Status: driver.StatusError})
	m.applyEvent(driver.Event{File: "b.tsx", Stage: driver.StageTransform, Status: driver.StatusWorking})
	if got := m.items[1].status; got != "error" {
		t.Fatalf("error must stick, got %q", got)
	}
	if got := m.percent(); got != 1 {
		t.Fatalf("percent = %v, want 1", got)
	}
}

func TestApplyEventUnknownFile(t *testing.T) {
	m := newModel(driver.StageWrite, "a.tsx")
	if cmd := m.applyEvent(driver.Event{File: "zzz.tsx", Stage: driver.StageParse, Status: driver.StatusWorking}); cmd != nil {
		t.Fatalf("unknown files must be ignored")
	}
	m.applyEvent(driver.Event{Stage: driver.StageWrite, Status: driver.StatusWorking})
	if m.stageLabel != "writing" {
		t.Fatalf("run-level label = %q", m.stageLabel)
	}
}

func TestProgressFromStage(t *testing.T) {
	tests := []struct {
		stage, final driver.Stage
		want         float64
	}{
		{driver.StageParse, driver.StageWrite, 0.25},
		{driver.StagePrint, driver.StageWrite, 0.75},
		{driver.StageTransform, driver.StagePrint, 2.0 / 3.0},
		{driver.StageWrite, driver.StagePrint, 1},
		{driver.Stage("cache"), driver.StagePrint, 0},
	}
	for _, tt := range tests {
		if got := progressFromStage(tt.stage, tt.final); got != tt.want {
			t.Errorf("progressFromStage(%s, %s) = %v, want %v", tt.stage, tt.final, got, tt.want)
		}
	}
}

func TestViewListsFiles(t *testing.T) {
	m := newModel(driver.StagePrint, "src/App.tsx", strings.Repeat("x", 200)+".tsx")
	view := m.View()
	if !strings.Contains(view, "src/App.tsx") || !strings.Contains(view, "queued") {
		t.Fatalf("view misses file rows:\n%s", view)
	}
	if !strings.Contains(view, "...") {
		t.Fatalf("long names must be truncated:\n%s", view)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 5); got != "ab..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("abc", 2); got != "ab" {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("abc", 0); got != "abc" {
		t.Fatalf("truncate = %q", got)
	}
}

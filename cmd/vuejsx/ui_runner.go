package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"vuejsx/internal/driver"
	"vuejsx/internal/source"
	"vuejsx/internal/ui"
)

type dirOutcome struct {
	fs      *source.FileSet
	results []*driver.FileResult
	err     error
}

// runDirWithUI runs work in the background and renders its progress events.
func runDirWithUI(ctx context.Context, title string, files []string, final driver.Stage,
	work func(driver.ProgressSink) (*source.FileSet, []*driver.FileResult, error)) (*source.FileSet, []*driver.FileResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		fs, results, err := work(driver.ChannelSink{Ch: events})
		outcomeCh <- dirOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, final, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// UI мог выйти раньше (Ctrl+C): дочитываем, чтобы воркеры не встали на канале
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}

package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"dsense/internal/driver"
	"dsense/internal/source"
	"dsense/internal/ui"
)

type extractOutcome struct {
	fileSet *source.FileSet
	results []driver.FileResult
	err     error
}

// runExtractDirWithUI drives a directory extraction behind the progress TUI.
func runExtractDirWithUI(ctx context.Context, title, dir string, files []string, opts driver.DirOptions) (*source.FileSet, []driver.FileResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan extractOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		fileSet, results, err := driver.ExtractDir(ctx, dir, optsCopy)
		outcomeCh <- extractOutcome{fileSet: fileSet, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}

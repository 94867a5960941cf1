package main

import (
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// setupLog discards log output unless WAYFARER_LOGFILE is set, in which case
// logs are appended there. The returned closer flushes the file on exit.
func setupLog() (func() error, error) {
	log.SetOutput(io.Discard)
	if file := os.Getenv("WAYFARER_LOGFILE"); file != "" {
		f, err := tea.LogToFileWith(file, "wayfarer", log.Default())
		if err != nil {
			return nil, err //nolint:wrapcheck
		}
		log.SetOutput(f)
		log.SetLevel(log.DebugLevel)
		return f.Close, nil
	}
	return func() error { return nil }, nil
}

package ui

import (
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/muesli/gitcha"
)

var draftExtensions = []string{"*.md", "*.markdown"}

// findDrafts scans the drafts directory for markdown files. Only files found
// here may write through to the backend on change; an absent directory simply
// yields no drafts.
func findDrafts(dir string) tea.Cmd {
	return func() tea.Msg {
		if dir == "" {
			return draftListMsg{}
		}
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return draftListMsg{}
		}

		ch, err := gitcha.FindFiles(dir, draftExtensions)
		if err != nil {
			log.Debug("draft search", "err", err)
			return draftListMsg{}
		}

		var paths []string
		for res := range ch {
			paths = append(paths, res.Path)
		}
		return draftListMsg{paths: paths}
	}
}

// watchDrafts starts an fsnotify watcher on the drafts directory and streams
// change events into the program. The watcher lives for the rest of the
// session.
func watchDrafts(dir string) tea.Cmd {
	return func() tea.Msg {
		if dir == "" {
			return nil
		}
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			log.Debug("draft watcher", "err", err)
			return nil
		}
		if err := watcher.Add(dir); err != nil {
			log.Debug("draft watcher add", "dir", dir, "err", err)
			_ = watcher.Close()
			return nil
		}

		events := make(chan draftChangedMsg)
		go func() {
			defer watcher.Close() //nolint:errcheck
			for {
				select {
				case ev, ok := <-watcher.Events:
					if !ok {
						close(events)
						return
					}
					if !isDraft(ev.Name) {
						continue
					}
					if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
						events <- draftChangedMsg{path: ev.Name}
					}
				case err, ok := <-watcher.Errors:
					if !ok {
						close(events)
						return
					}
					log.Debug("draft watcher", "err", err)
				}
			}
		}()
		return draftWatchStartedMsg{events: events}
	}
}

// waitForDraftChange blocks on the watcher channel for the next change.
func waitForDraftChange(events chan draftChangedMsg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}

func isDraft(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".markdown"
}

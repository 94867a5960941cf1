package ui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/editor"

	"github.com/wayfarerhq/wayfarer/backend"
	"github.com/wayfarerhq/wayfarer/tour"
)

const backendTimeout = 15 * time.Second

func loadTours(client *backend.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
		defer cancel()

		tours, err := client.ListTours(ctx)
		if err != nil {
			return errMsg{err}
		}
		return toursLoadedMsg{tours: tours}
	}
}

func loadStops(client *backend.Client, tourID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
		defer cancel()

		stops, err := client.ListStops(ctx, tourID)
		if err != nil {
			return errMsg{err}
		}
		return stopsLoadedMsg{tourID: tourID, stops: stops}
	}
}

func loadTourWithStops(client *backend.Client, tourID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
		defer cancel()

		t, err := client.GetTour(ctx, tourID)
		if err != nil {
			return errMsg{err}
		}
		stops, err := client.ListStops(ctx, t.ID)
		if err != nil {
			return errMsg{err}
		}
		return openTourMsg{tour: t, stops: stops}
	}
}

// editDescription writes the stop's description to a scratch file, opens
// $EDITOR on it, and saves the result back to the backend.
func editDescription(client *backend.Client, s tour.Stop) tea.Cmd {
	return func() tea.Msg {
		path := filepath.Join(os.TempDir(), "wayfarer-"+s.ID+".md")
		if err := os.WriteFile(path, []byte(s.Description), 0o600); err != nil {
			return editorFinishedMsg{stopID: s.ID, err: err}
		}
		defer os.Remove(path) //nolint:errcheck

		c, err := editor.Cmd("Wayfarer", path)
		if err != nil {
			return editorFinishedMsg{stopID: s.ID, err: err}
		}
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		if err := c.Run(); err != nil {
			return editorFinishedMsg{stopID: s.ID, err: err}
		}

		edited, err := os.ReadFile(path)
		if err != nil {
			return editorFinishedMsg{stopID: s.ID, err: err}
		}
		s.Description = strings.TrimRight(string(edited), "\n")

		ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
		defer cancel()
		saved, err := client.UpdateStop(ctx, s)
		if err != nil {
			return editorFinishedMsg{stopID: s.ID, err: err}
		}
		return descriptionSavedMsg{stop: saved}
	}
}

// applyDraft loads a changed draft file into the current stop's description.
func applyDraft(client *backend.Client, s tour.Stop, path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return errMsg{err}
		}
		s.Description = strings.TrimRight(string(data), "\n")

		ctx, cancel := context.WithTimeout(context.Background(), backendTimeout)
		defer cancel()
		saved, err := client.UpdateStop(ctx, s)
		if err != nil {
			return errMsg{err}
		}
		return descriptionSavedMsg{stop: saved}
	}
}

// copyShareURL puts a shareable link to the tour on the system clipboard.
func copyShareURL(baseURL, tourID string) tea.Cmd {
	return func() tea.Msg {
		url := strings.TrimRight(baseURL, "/") + "/tours/" + tourID
		err := clipboard.WriteAll(url)
		return copiedShareURLMsg{url: url, err: err}
	}
}

func clearStatusNote(after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return statusMessageTimeoutMsg{}
	})
}

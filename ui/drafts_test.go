package ui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wayfarerhq/wayfarer/backend"
	"github.com/wayfarerhq/wayfarer/narration"
	"github.com/wayfarerhq/wayfarer/speech"
	"github.com/wayfarerhq/wayfarer/speech/mock"
	"github.com/wayfarerhq/wayfarer/tour"
)

const (
	draftTestTourID = "7c9a2d80-8f2e-4f5d-9b1a-3c6f0e2d4a5b"
	draftTestStopID = "1b2c3d4e-5f60-4a7b-8c9d-0e1f2a3b4c5d"
)

// runCmd executes a command tree and collects the messages it produces.
func runCmd(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, runCmd(t, c)...)
		}
		return msgs
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// newDraftTestModel builds a model showing one stop, backed by a server that
// records whether a stop update arrived.
func newDraftTestModel(t *testing.T, draftsDir string, patched *bool) model {
	t.Helper()

	s := tour.Stop{
		ID:          draftTestStopID,
		TourID:      draftTestTourID,
		Title:       "The Arch",
		Description: "See the arch.",
		Lat:         41.4,
		Lng:         2.19,
		OrderIndex:  0,
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch && r.URL.Path == "/rest/v1/stops" {
			*patched = true
		}
		_ = json.NewEncoder(w).Encode([]tour.Stop{s})
	}))
	t.Cleanup(srv.Close)

	client, err := backend.New(backend.Config{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Timeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("backend client: %v", err)
	}

	cfg := Config{DraftsDir: draftsDir}
	deps := Deps{
		Backend: client,
		Speaker: mock.New(),
		Speech:  speech.DefaultOptions(),
	}
	seq := narration.NewSequencer(deps.Speaker, deps.Speech, nil)

	m := newModel(cfg, deps, seq).(model)
	m.state = stateShowStop
	m.stopView.open(tour.Tour{ID: draftTestTourID, Title: "Old Town Walk"}, []tour.Stop{s})
	return m
}

func TestKnownDraftChangeSavesDescription(t *testing.T) {
	dir := t.TempDir()
	draft := filepath.Join(dir, "arch.md")
	if err := os.WriteFile(draft, []byte("A **new** look at the arch.\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var patched bool
	m := newDraftTestModel(t, dir, &patched)
	m.drafts = []string{draft}

	_, cmd := m.Update(draftChangedMsg{path: draft})
	msgs := runCmd(t, cmd)

	if !patched {
		t.Error("changed draft from the scan should update the stop")
	}
	var saved bool
	for _, msg := range msgs {
		if _, ok := msg.(descriptionSavedMsg); ok {
			saved = true
		}
	}
	if !saved {
		t.Errorf("expected a descriptionSavedMsg, got %v", msgs)
	}
}

func TestUnscannedDraftChangeIsIgnored(t *testing.T) {
	dir := t.TempDir()

	var patched bool
	m := newDraftTestModel(t, dir, &patched)
	m.drafts = []string{filepath.Join(dir, "arch.md")}

	_, cmd := m.Update(draftChangedMsg{path: filepath.Join(dir, "unseen.md")})
	msgs := runCmd(t, cmd)

	if patched {
		t.Error("a file the scan never saw must not write through to the backend")
	}
	var rescanned bool
	for _, msg := range msgs {
		if _, ok := msg.(draftListMsg); ok {
			rescanned = true
		}
	}
	if !rescanned {
		t.Errorf("unknown draft should trigger a rescan, got %v", msgs)
	}
}

func TestKnownDraftCleansPaths(t *testing.T) {
	m := model{drafts: []string{filepath.Join("drafts", "a.md")}}

	if !m.knownDraft(filepath.Join("drafts", ".", "a.md")) {
		t.Error("equivalent path should match the scanned draft")
	}
	if m.knownDraft(filepath.Join("drafts", "b.md")) {
		t.Error("unscanned file should not match")
	}
}

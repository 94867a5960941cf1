// Package ui provides the terminal UI for the wayfarer application.
package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/log"
	te "github.com/muesli/termenv"

	"github.com/wayfarerhq/wayfarer/agent"
	"github.com/wayfarerhq/wayfarer/backend"
	"github.com/wayfarerhq/wayfarer/narration"
	"github.com/wayfarerhq/wayfarer/speech"
)

const (
	statusNoteTimeout = 3 * time.Second
	ellipsis          = "…"
)

// Deps are the external collaborators the UI talks to.
type Deps struct {
	Backend *backend.Client
	Agent   *agent.Client
	Speaker speech.Speaker
	Speech  speech.Options
}

// relay forwards sequencer messages into the running program. The sequencer
// is created before the program exists, so the pointer is filled in late.
type relay struct {
	p *tea.Program
}

func (r *relay) send(msg tea.Msg) {
	if r.p != nil {
		r.p.Send(msg)
	}
}

// NewProgram returns a new Tea program wired to the given collaborators.
func NewProgram(cfg Config, deps Deps) *tea.Program {
	log.Debug("starting wayfarer", "tour", cfg.TourID, "glamour", cfg.GlamourEnabled)

	r := &relay{}
	seq := narration.NewSequencer(deps.Speaker, deps.Speech, r.send)

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.EnableMouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(newModel(cfg, deps, seq), opts...)
	r.p = p
	return p
}

// state is the top-level application state.
type state int

const (
	stateShowTours state = iota
	stateShowStop
	stateShowChat
)

func (s state) String() string {
	return map[state]string{
		stateShowTours: "showing tour listing",
		stateShowStop:  "showing stop",
		stateShowChat:  "showing chat",
	}[s]
}

// Common stuff we'll need to access in all models.
type commonModel struct {
	cfg    Config
	width  int
	height int
}

type model struct {
	common   *commonModel
	state    state
	fatalErr error

	deps Deps
	seq  *narration.Sequencer

	// Sub-models
	tourList tourListModel
	stopView stopViewModel
	chat     chatModel

	// Known local drafts and the watcher event channel, nil until started.
	drafts      []string
	draftEvents chan draftChangedMsg
}

func newModel(cfg Config, deps Deps, seq *narration.Sequencer) tea.Model {
	if cfg.GlamourStyle == styles.AutoStyle {
		if te.HasDarkBackground() {
			cfg.GlamourStyle = styles.DarkStyle
		} else {
			cfg.GlamourStyle = styles.LightStyle
		}
	}

	common := commonModel{cfg: cfg}
	m := model{
		common:   &common,
		state:    stateShowTours,
		deps:     deps,
		seq:      seq,
		tourList: newTourListModel(&common),
		stopView: newStopViewModel(&common),
		chat:     newChatModel(&common, deps.Agent),
	}
	return m
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		findDrafts(m.common.cfg.DraftsDir),
		watchDrafts(m.common.cfg.DraftsDir),
	}
	if m.common.cfg.TourID != "" {
		cmds = append(cmds, loadTourWithStops(m.deps.Backend, m.common.cfg.TourID))
	} else {
		cmds = append(cmds, loadTours(m.deps.Backend))
	}
	return tea.Batch(cmds...)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// If there's been a fatal error, any key exits.
	if m.fatalErr != nil {
		if _, ok := msg.(tea.KeyMsg); ok {
			return m, tea.Quit
		}
	}

	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if newModel, cmd, handled := m.handleKey(msg); handled {
			return newModel, cmd
		}

	case tea.WindowSizeMsg:
		m.common.width = msg.Width
		m.common.height = msg.Height
		m.stopView.setSize(msg.Width, msg.Height)
		m.chat.setSize(msg.Width, msg.Height)

	case errMsg:
		if m.tourList.loaded || m.state != stateShowTours {
			// Non-fatal once the UI is up: show it in the status bar.
			m.stopView.note = msg.Error()
			cmds = append(cmds, clearStatusNote(statusNoteTimeout))
		} else {
			m.fatalErr = msg.err
		}

	case toursLoadedMsg:
		m.tourList.setTours(msg.tours)

	case stopsLoadedMsg:
		if t, ok := m.tourList.selected(); ok && t.ID == msg.tourID {
			m.stopView.open(t, msg.stops)
			m.state = stateShowStop
		}

	case openTourMsg:
		m.stopView.open(msg.tour, msg.stops)
		m.state = stateShowStop

	case statusMessageTimeoutMsg:
		m.stopView.note = ""

	case copiedShareURLMsg:
		if msg.err != nil {
			m.stopView.note = "copy failed: " + msg.err.Error()
		} else {
			m.stopView.note = "Link copied!"
		}
		cmds = append(cmds, clearStatusNote(statusNoteTimeout))

	case editorFinishedMsg:
		if msg.err != nil {
			m.stopView.note = "edit failed: " + msg.err.Error()
			cmds = append(cmds, clearStatusNote(statusNoteTimeout))
		}

	case descriptionSavedMsg:
		m.stopView.replaceStop(msg.stop)
		m.stopView.note = "Description saved."
		cmds = append(cmds, clearStatusNote(statusNoteTimeout))

	case draftListMsg:
		m.drafts = msg.paths
		log.Debug("drafts found", "count", len(msg.paths))

	case draftWatchStartedMsg:
		m.draftEvents = msg.events
		cmds = append(cmds, waitForDraftChange(msg.events))

	case draftChangedMsg:
		if !m.knownDraft(msg.path) {
			// A file the scan didn't see; rescan so it counts next time.
			log.Debug("ignoring unscanned draft", "path", msg.path)
			cmds = append(cmds, findDrafts(m.common.cfg.DraftsDir))
		} else if s, ok := m.stopView.stop(); ok && m.state == stateShowStop {
			cmds = append(cmds, applyDraft(m.deps.Backend, s, msg.path))
		}
		if m.draftEvents != nil {
			cmds = append(cmds, waitForDraftChange(m.draftEvents))
		}
	}

	// Narration messages always reach the stop view so the status bar stays
	// current even while the chat panel is up.
	switch msg.(type) {
	case narration.UnitStartedMsg, narration.PausedMsg, narration.ResumedMsg,
		narration.StoppedMsg, narration.FinishedMsg, narration.PlaybackErrorMsg:
		newStop, cmd := m.stopView.update(msg)
		m.stopView = newStop
		return m, tea.Batch(append(cmds, cmd)...)
	}

	// Process children.
	switch m.state {
	case stateShowTours:
		newList, cmd := m.tourList.update(msg)
		m.tourList = newList
		cmds = append(cmds, cmd)
	case stateShowStop:
		newStop, cmd := m.stopView.update(msg)
		m.stopView = newStop
		cmds = append(cmds, cmd)
	case stateShowChat:
		newChat, cmd := m.chat.update(msg)
		m.chat = newChat
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// knownDraft reports whether path was found by the draft scan. The watcher
// reports anything changing in the drafts directory; only scanned drafts may
// write through to the backend.
func (m model) knownDraft(path string) bool {
	clean := filepath.Clean(path)
	for _, p := range m.drafts {
		if filepath.Clean(p) == clean {
			return true
		}
	}
	return false
}

// handleKey processes application-level keys. handled is false when the key
// should fall through to the active child model.
func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	key := msg.String()

	// Ctrl+C always quits no matter where in the application you are.
	if key == "ctrl+c" {
		m.seq.Stop()
		return m, tea.Quit, true
	}
	if key == "ctrl+z" {
		return m, tea.Suspend, true
	}

	switch m.state {
	case stateShowTours:
		// Pass everything through while the filter is being edited.
		if m.tourList.filterState == filtering {
			return m, nil, false
		}
		switch key {
		case "q":
			return m, tea.Quit, true
		case "enter":
			if t, ok := m.tourList.selected(); ok {
				return m, loadStops(m.deps.Backend, t.ID), true
			}
		case "r":
			m.tourList.loaded = false
			return m, loadTours(m.deps.Backend), true
		}

	case stateShowStop:
		switch key {
		case "q":
			m.seq.Stop()
			return m, tea.Quit, true
		case "esc", "h", "delete":
			m.seq.Stop()
			m.state = stateShowTours
			return m, nil, true
		case "enter":
			if s, ok := m.stopView.stop(); ok {
				m.seq.SelectStop(s)
			}
			return m, nil, true
		case " ":
			if err := m.seq.TogglePlayback(); err != nil {
				m.stopView.note = "Nothing is being narrated."
				return m, clearStatusNote(statusNoteTimeout), true
			}
			return m, nil, true
		case "s":
			m.seq.Stop()
			return m, nil, true
		case "right", "l", "n":
			if m.stopView.move(1) && m.seq.State().Active() {
				if s, ok := m.stopView.stop(); ok {
					m.seq.SelectStop(s)
				}
			}
			return m, nil, true
		case "left", "p":
			if m.stopView.move(-1) && m.seq.State().Active() {
				if s, ok := m.stopView.stop(); ok {
					m.seq.SelectStop(s)
				}
			}
			return m, nil, true
		case "c":
			m.state = stateShowChat
			return m, m.chat.focus(), true
		case "e":
			if s, ok := m.stopView.stop(); ok {
				return m, editDescription(m.deps.Backend, s), true
			}
		case "y":
			return m, copyShareURL(m.common.cfg.ShareBaseURL, m.stopView.tour.ID), true
		}

	case stateShowChat:
		if key == "esc" {
			m.state = stateShowStop
			return m, nil, true
		}
	}

	return m, nil, false
}

func (m model) View() string {
	if m.fatalErr != nil {
		return errorView(m.fatalErr, true)
	}

	switch m.state {
	case stateShowStop:
		return m.stopView.view()
	case stateShowChat:
		return m.chat.view()
	default:
		return m.tourList.view()
	}
}

func errorView(err error, fatal bool) string {
	exitMsg := "press any key to "
	if fatal {
		exitMsg += "exit"
	} else {
		exitMsg += "return"
	}
	s := fmt.Sprintf("%s\n\n%v\n\n%s",
		errorTitleStyle.Render("ERROR"),
		err,
		subtleStyle.Render(exitMsg),
	)
	return "\n" + indent(s, 3)
}

// Lightweight version of reflow's indent function.
func indent(s string, n int) string {
	if n <= 0 || s == "" {
		return s
	}
	l := strings.Split(s, "\n")
	b := strings.Builder{}
	i := strings.Repeat(" ", n)
	for _, v := range l {
		fmt.Fprintf(&b, "%s%s\n", i, v)
	}
	return b.String()
}

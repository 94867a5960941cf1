package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/log"
	"github.com/muesli/reflow/truncate"

	"github.com/wayfarerhq/wayfarer/narration"
	"github.com/wayfarerhq/wayfarer/tour"
)

const statusBarHeight = 1

// stopViewModel shows one stop of the open tour: glamour-rendered description
// in a viewport, a narration status bar, and the unit currently being spoken.
type stopViewModel struct {
	common *commonModel

	tour    tour.Tour
	stops   []tour.Stop
	current int

	viewport viewport.Model
	status   narrationStatus

	// Text of the unit currently being spoken, empty when idle.
	currentUnit string

	// Transient note shown in the status bar, e.g. after copying a link.
	note string
}

func newStopViewModel(common *commonModel) stopViewModel {
	vp := viewport.New(0, 0)
	return stopViewModel{
		common:   common,
		viewport: vp,
	}
}

func (m *stopViewModel) setSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height - statusBarHeight - 3
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}
}

func (m *stopViewModel) open(t tour.Tour, stops []tour.Stop) {
	m.tour = t
	m.stops = stops
	m.current = 0
	m.status.reset()
	m.currentUnit = ""
	m.renderCurrent()
}

// stop returns the stop currently shown.
func (m *stopViewModel) stop() (tour.Stop, bool) {
	if len(m.stops) == 0 || m.current >= len(m.stops) {
		return tour.Stop{}, false
	}
	return m.stops[m.current], true
}

func (m *stopViewModel) replaceStop(s tour.Stop) {
	for i := range m.stops {
		if m.stops[i].ID == s.ID {
			m.stops[i] = s
			if i == m.current {
				m.renderCurrent()
			}
			return
		}
	}
}

// move shifts the shown stop by delta, clamped to the stop list.
func (m *stopViewModel) move(delta int) bool {
	next := m.current + delta
	if next < 0 || next >= len(m.stops) {
		return false
	}
	m.current = next
	m.renderCurrent()
	return true
}

func (m *stopViewModel) renderCurrent() {
	s, ok := m.stop()
	if !ok {
		m.viewport.SetContent(subtleStyle.Render("This tour has no stops yet."))
		return
	}

	body := s.Description
	if strings.TrimSpace(body) == "" {
		body = "_" + narration.Placeholder + "_"
	}

	if !m.common.cfg.GlamourEnabled {
		m.viewport.SetContent(body)
		m.viewport.GotoTop()
		return
	}

	width := m.viewport.Width
	if maxw := int(m.common.cfg.GlamourMaxWidth); maxw > 0 && width > maxw { //nolint:gosec
		width = maxw
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(m.common.cfg.GlamourStyle),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		log.Debug("glamour renderer", "err", err)
		m.viewport.SetContent(body)
		m.viewport.GotoTop()
		return
	}
	out, err := r.Render(body)
	if err != nil {
		log.Debug("glamour render", "err", err)
		out = body
	}
	m.viewport.SetContent(out)
	m.viewport.GotoTop()
}

func (m stopViewModel) update(msg tea.Msg) (stopViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case narration.UnitStartedMsg:
		m.status.apply(msg)
		m.currentUnit = msg.Text
		return m, nil
	case narration.PausedMsg, narration.ResumedMsg:
		m.status.apply(msg)
		return m, nil
	case narration.StoppedMsg, narration.FinishedMsg:
		m.status.apply(msg)
		m.currentUnit = ""
		return m, nil
	case narration.PlaybackErrorMsg:
		m.status.apply(msg)
		m.currentUnit = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m stopViewModel) view() string {
	var b strings.Builder

	s, _ := m.stop()
	header := fmt.Sprintf("%s — %s (%d/%d)",
		m.tour.Title, s.Title, m.current+1, len(m.stops))
	b.WriteString("  " + titleStyle.Render(header) + "\n")
	b.WriteString(m.viewport.View() + "\n")

	if m.currentUnit != "" {
		width := uint(m.common.width - 4) //nolint:gosec
		if width < 20 {
			width = 20
		}
		unit := truncate.StringWithTail(m.currentUnit, width, ellipsis)
		b.WriteString("  " + currentUnitStyle.Render(unit) + "\n")
	} else {
		b.WriteString("\n")
	}

	b.WriteString(m.statusBarView())
	return b.String()
}

func (m stopViewModel) statusBarView() string {
	left := m.status.compact()
	if left == "" {
		left = subtleStyle.Render("enter: narrate • space: pause • s: stop")
	}
	if m.note != "" {
		left = statusMessageStyle.Render(m.note)
	}

	bar := m.status.progressBar(20)
	line := " " + left
	if bar != "" {
		line += "  " + bar
	}
	return statusBarStyle.Width(m.common.width).Render(line)
}

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/wayfarerhq/wayfarer/narration"
)

// narrationStatus tracks what the sequencer reports so the status bar can
// render it. It is fed exclusively from narration messages.
type narrationStatus struct {
	state   narration.State
	session uint64
	index   int
	total   int
	errText string
}

// apply folds one narration message into the display. Messages from an older
// playback session are ignored; the sequencer already guarantees ordering
// within a session.
func (s *narrationStatus) apply(msg interface{}) {
	switch m := msg.(type) {
	case narration.UnitStartedMsg:
		if m.Session < s.session {
			return
		}
		s.session = m.Session
		s.state = narration.StateSpeaking
		s.index = m.Index
		s.total = m.Total
		s.errText = ""
	case narration.PausedMsg:
		if m.Session < s.session {
			return
		}
		s.session = m.Session
		s.state = narration.StatePaused
		s.index = m.Index
	case narration.ResumedMsg:
		if m.Session < s.session {
			return
		}
		s.session = m.Session
		s.state = narration.StateSpeaking
		s.index = m.Index
	case narration.StoppedMsg, narration.FinishedMsg:
		s.reset()
	case narration.PlaybackErrorMsg:
		s.reset()
		if m.Err != nil {
			s.errText = m.Err.Error()
		}
	}
}

func (s *narrationStatus) reset() {
	s.state = narration.StateIdle
	s.index = 0
	s.total = 0
	s.errText = ""
}

// compact returns the short status fragment shown in the status bar.
func (s *narrationStatus) compact() string {
	if s.errText != "" {
		style := lipgloss.NewStyle().Foreground(red)
		return style.Render("✗ " + truncate.StringWithTail(s.errText, 40, ellipsis))
	}

	var icon string
	var color lipgloss.Color
	switch s.state {
	case narration.StateSpeaking:
		icon, color = "▶", green
	case narration.StatePaused:
		icon, color = "⏸", yellow
	default:
		return ""
	}

	status := lipgloss.NewStyle().Foreground(color).Render(icon + " narrating")
	if s.total > 0 {
		status += itemMetaStyle.Render(fmt.Sprintf(" %d/%d", s.index+1, s.total))
	}
	return status
}

// progressBar renders unit progress across the given width.
func (s *narrationStatus) progressBar(width int) string {
	if s.total <= 0 || width < 10 {
		return ""
	}
	ratio := float64(s.index+1) / float64(s.total)
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	bar := lipgloss.NewStyle().Foreground(green).Render(strings.Repeat("█", filled))
	bar += subtleStyle.Render(strings.Repeat("░", width-filled))
	return bar
}

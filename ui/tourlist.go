package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	runewidth "github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
	"github.com/sahilm/fuzzy"

	"github.com/wayfarerhq/wayfarer/tour"
)

type filterState int

const (
	unfiltered filterState = iota
	filtering
	filterApplied
)

// tourListModel is the browsable, fuzzy-filterable list of tours.
type tourListModel struct {
	common *commonModel

	tours   []tour.Tour
	visible []int // indexes into tours, in display order
	cursor  int

	filterState filterState
	filterInput textinput.Model

	loaded bool
}

func newTourListModel(common *commonModel) tourListModel {
	ti := textinput.New()
	ti.Prompt = filterPromptStyle.Render("Filter: ")
	ti.CharLimit = 64
	return tourListModel{
		common:      common,
		filterInput: ti,
	}
}

func (m *tourListModel) setTours(tours []tour.Tour) {
	m.tours = tours
	m.loaded = true
	m.applyFilter()
}

// selected returns the tour under the cursor, if any.
func (m *tourListModel) selected() (tour.Tour, bool) {
	if len(m.visible) == 0 || m.cursor >= len(m.visible) {
		return tour.Tour{}, false
	}
	return m.tours[m.visible[m.cursor]], true
}

// applyFilter recomputes the visible set from the filter input.
func (m *tourListModel) applyFilter() {
	query := strings.TrimSpace(m.filterInput.Value())
	if query == "" {
		m.visible = make([]int, len(m.tours))
		for i := range m.tours {
			m.visible[i] = i
		}
	} else {
		targets := make([]string, len(m.tours))
		for i, t := range m.tours {
			targets[i] = t.Title + " " + t.Summary
		}
		matches := fuzzy.Find(query, targets)
		m.visible = m.visible[:0]
		for _, match := range matches {
			m.visible = append(m.visible, match.Index)
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = max(0, len(m.visible)-1)
	}
}

func (m tourListModel) update(msg tea.Msg) (tourListModel, tea.Cmd) {
	var cmds []tea.Cmd

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if m.filterState == filtering {
			switch keyMsg.String() {
			case "esc":
				m.filterState = unfiltered
				m.filterInput.Reset()
				m.filterInput.Blur()
				m.applyFilter()
				return m, nil
			case "enter":
				if m.filterInput.Value() == "" {
					m.filterState = unfiltered
				} else {
					m.filterState = filterApplied
				}
				m.filterInput.Blur()
				return m, nil
			default:
				var cmd tea.Cmd
				m.filterInput, cmd = m.filterInput.Update(msg)
				m.applyFilter()
				return m, cmd
			}
		}

		switch keyMsg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
		case "g", "home":
			m.cursor = 0
		case "G", "end":
			m.cursor = max(0, len(m.visible)-1)
		case "/":
			m.filterState = filtering
			m.filterInput.Reset()
			cmds = append(cmds, m.filterInput.Focus())
			m.applyFilter()
		case "esc":
			if m.filterState == filterApplied {
				m.filterState = unfiltered
				m.filterInput.Reset()
				m.applyFilter()
			}
		}
	}

	return m, tea.Batch(cmds...)
}

func (m tourListModel) view() string {
	var b strings.Builder

	b.WriteString("  " + titleStyle.Render("Wayfarer") + "\n\n")

	if m.filterState == filtering || m.filterState == filterApplied {
		b.WriteString("  " + m.filterInput.View() + "\n\n")
	}

	switch {
	case !m.loaded:
		b.WriteString("  " + subtleStyle.Render("Loading tours…") + "\n")
	case len(m.visible) == 0:
		b.WriteString("  " + subtleStyle.Render("No tours found.") + "\n")
	default:
		for row, idx := range m.visible {
			t := m.tours[idx]
			line := m.renderRow(t, row == m.cursor)
			b.WriteString(line + "\n")
		}
	}

	b.WriteString("\n" + "  " + subtleStyle.Render("enter: open • /: filter • q: quit"))
	return b.String()
}

func (m tourListModel) renderRow(t tour.Tour, selected bool) string {
	width := uint(max(20, m.common.width-4)) //nolint:gosec
	title := truncate.StringWithTail(t.Title, width, ellipsis)
	// Pad to a fixed cell width so the selection background forms a block.
	if pad := int(width) - runewidth.StringWidth(title); pad > 0 {
		title += strings.Repeat(" ", pad)
	}
	meta := humanize.Time(t.UpdatedAt)
	if t.Summary != "" {
		meta = truncate.StringWithTail(t.Summary, width, ellipsis) + " • " + meta
	}

	if selected {
		return fmt.Sprintf("  %s\n  %s",
			selectedItemStyle.Render("› "+title),
			itemMetaStyle.Render("  "+meta))
	}
	return fmt.Sprintf("  %s\n  %s",
		itemStyle.Render("  "+title),
		itemMetaStyle.Render("  "+meta))
}

package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

var (
	keywordStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#ECFD65"})

	paragraphStyle = lipgloss.NewStyle().Width(78).Margin(0, 0, 0, 2)
)

// keyword colorizes a word in help text.
func keyword(s string) string {
	return keywordStyle.Render(s)
}

// paragraph formats a block of help text: wrapped, indented, surrounding
// whitespace trimmed.
func paragraph(s string) string {
	s = strings.TrimSpace(s)
	s = wordwrap.String(s, 76)
	s = indent.String(s, 0)
	return paragraphStyle.Render(s)
}

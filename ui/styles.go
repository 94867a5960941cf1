package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	normalColor    = lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#dddddd"}
	dimColor       = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
	fuchsia        = lipgloss.Color("#EE6FF8")
	green          = lipgloss.Color("#04B575")
	yellow         = lipgloss.Color("#ECFD65")
	red            = lipgloss.Color("#ED567A")
	statusBarNote  = lipgloss.AdaptiveColor{Light: "#656565", Dark: "#7D7D7D"}
	statusBarBg    = lipgloss.AdaptiveColor{Light: "#E6E6E6", Dark: "#242424"}
	selectedBg     = lipgloss.AdaptiveColor{Light: "#F2F2F2", Dark: "#303030"}
	highlightColor = lipgloss.AdaptiveColor{Light: "#FFF3B8", Dark: "#5C5214"}

	titleStyle = lipgloss.NewStyle().
			Foreground(fuchsia).
			Bold(true)

	subtleStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	errorTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#230A0A")).
			Background(red).
			Padding(0, 1)

	selectedItemStyle = lipgloss.NewStyle().
				Background(selectedBg).
				Foreground(normalColor).
				Bold(true)

	itemStyle = lipgloss.NewStyle().
			Foreground(normalColor)

	itemMetaStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(statusBarNote).
			Background(statusBarBg)

	statusMessageStyle = lipgloss.NewStyle().
				Foreground(green)

	filterPromptStyle = lipgloss.NewStyle().
				Foreground(green)

	currentUnitStyle = lipgloss.NewStyle().
				Background(highlightColor).
				Foreground(normalColor)

	chatUserStyle = lipgloss.NewStyle().
			Foreground(fuchsia).
			Bold(true)

	chatAgentStyle = lipgloss.NewStyle().
			Foreground(green).
			Bold(true)

	chatNoticeStyle = lipgloss.NewStyle().
			Foreground(yellow)
)

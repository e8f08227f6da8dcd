package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/weekplan/internal/plan"
)

// Color palette
var (
	colorPrimary   = lipgloss.Color("#6C63FF")
	colorMuted     = lipgloss.Color("#666666")
	colorSuccess   = lipgloss.Color("#2ECC71")
	colorWarning   = lipgloss.Color("#F39C12")
	colorError     = lipgloss.Color("#E74C3C")
	colorFg        = lipgloss.Color("#C0CAF5")
	colorSubtle    = lipgloss.Color("#414868")
	colorHighlight = lipgloss.Color("#7AA2F7")
)

// projectPalette maps a project's colorIndex to its display color. Its
// length matches plan.PaletteSize; indices cycle once exhausted.
var projectPalette = []lipgloss.Color{
	"#6C63FF", "#2EC4B6", "#FF6B6B", "#F39C12",
	"#2ECC71", "#E74C3C", "#9B59B6", "#3498DB",
}

func paletteColor(index int) lipgloss.Color {
	if index < 0 {
		index = 0
	}
	return projectPalette[index%len(projectPalette)]
}

func projectStyle(p plan.Project) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(paletteColor(p.ColorIndex))
}

// Styles
var (
	// Tabs
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorPrimary).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Padding(0, 2)

	// Panels
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Padding(1, 2)

	// Text
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFg)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	highlightStyle = lipgloss.NewStyle().
			Foreground(colorHighlight)

	// Header/footer
	headerStyle = lipgloss.NewStyle().
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	// List items
	selectedItemStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	// Week grid cells
	emptySlotStyle = lipgloss.NewStyle().
			Foreground(colorSubtle)

	cursorSlotStyle = lipgloss.NewStyle().
			Reverse(true)

	rangeSlotStyle = lipgloss.NewStyle().
			Background(colorSubtle)
)

func standingStyle(s plan.Standing) lipgloss.Style {
	switch s {
	case plan.StandingOver:
		return warningStyle
	case plan.StandingUnder:
		return errorStyle
	default:
		return successStyle
	}
}

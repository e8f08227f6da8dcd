package tui

import "fmt"

// viewState represents the currently active view.
type viewState int

const (
	viewWeek viewState = iota
	viewProjects
	viewBalance
	viewTemplates
	viewSettings
)

var viewNames = []string{"Week", "Projects", "Balance", "Templates", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

// engineChangedMsg arrives whenever the engine notifies its subscribers;
// the views read engine state directly, so a redraw is all that is needed.
type engineChangedMsg struct{}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatHours(h float64) string {
	return fmt.Sprintf("%.1fh", h)
}

// formatSigned renders carryover with an explicit sign so surplus and
// deficit read at a glance.
func formatSigned(h float64) string {
	return fmt.Sprintf("%+.1fh", h)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}

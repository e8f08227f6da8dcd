package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/weekplan/internal/export"
	"github.com/sadopc/weekplan/internal/plan"
	"github.com/sadopc/weekplan/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	engine *plan.Engine
	store  *store.Store
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	week      weekModel
	projects  projectsModel
	balance   balanceModel
	templates templatesModel
	settings  settingsModel

	help    help.Model
	status  string
	changes chan struct{}
}

func NewApp(e *plan.Engine, s *store.Store) App {
	h := help.New()
	h.ShowAll = false

	// Engine notifications land here; the Bubble Tea loop turns them
	// into redraws. Coalescing via the buffered channel is fine since
	// views re-read engine state on every render.
	changes := make(chan struct{}, 16)
	e.Subscribe(func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	})

	return App{
		engine:     e,
		store:      s,
		activeView: viewWeek,
		week:       newWeekModel(e),
		projects:   newProjectsModel(e),
		balance:    newBalanceModel(e),
		templates:  newTemplatesModel(e),
		settings:   newSettingsModel(e, s),
		help:       h,
		changes:    changes,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.balance.refresh(),
		a.waitForChange(),
	)
}

func (a App) waitForChange() tea.Cmd {
	return func() tea.Msg {
		<-a.changes
		return engineChangedMsg{}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.week.setSize(a.width, contentHeight)
		a.projects.setSize(a.width, contentHeight)
		a.balance.setSize(a.width, contentHeight)
		a.templates.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewWeek
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewProjects
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewBalance
			return a, a.balance.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewTemplates
			return a, nil
		case key.Matches(msg, keys.Tab5):
			a.activeView = viewSettings
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 5
			if a.activeView == viewBalance {
				return a, a.balance.refresh()
			}
			return a, nil
		}

	case engineChangedMsg:
		var cmd tea.Cmd
		a.balance, cmd = a.balance.update(msg)
		return a, tea.Batch(cmd, a.waitForChange())

	case statusMsg:
		a.status = msg.text
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewWeek:
		a.week, cmd = a.week.update(msg)
	case viewProjects:
		a.projects, cmd = a.projects.update(msg)
	case viewBalance:
		a.balance, cmd = a.balance.update(msg)
	case viewTemplates:
		a.templates, cmd = a.templates.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewProjects:
		return a.projects.formActive
	case viewTemplates:
		return a.templates.formActive
	case viewSettings:
		return a.settings.formActive
	case viewWeek:
		return a.week.picking
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewWeek:
		content = a.week.view()
	case viewProjects:
		content = a.projects.view()
	case viewBalance:
		content = a.balance.view()
	case viewTemplates:
		content = a.templates.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("weekplan")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	weekInfo := highlightStyle.Render(" " + a.engine.CurrentWeekKey())

	left := footerStyle.Render(helpView)
	right := weekInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export")
	formats := []string{"Week grid (CSV)", "Balance report (JSON)"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	week := *a.engine.CurrentWeek()
	weekKey := a.engine.CurrentWeekKey()

	projects := make(map[string]plan.Project)
	for _, p := range a.engine.Projects() {
		projects[p.ID] = p
	}
	balances := a.engine.CalculateProjectBalances()

	return func() tea.Msg {
		home, _ := os.UserHomeDir()

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("weekplan-%s.csv", weekKey))
			if err := export.WeekToCSV(week, projects, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("weekplan-balances-%s.json", weekKey))
			if err := export.BalancesToJSON(weekKey, balances, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}

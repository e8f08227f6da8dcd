package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/weekplan/internal/plan"
	"github.com/sadopc/weekplan/internal/store"
)

type settingsModel struct {
	engine *plan.Engine
	store  *store.Store
	width  int
	height int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	goal         *string
	dataDir      *string
	copyExisting *bool
}

func newSettingsModel(e *plan.Engine, s *store.Store) settingsModel {
	goal, dir := "", ""
	copyExisting := true
	return settingsModel{
		engine:       e,
		store:        s,
		goal:         &goal,
		dataDir:      &dir,
		copyExisting: &copyExisting,
	}
}

func (m *settingsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Enter), key.Matches(keyMsg, keys.Edit):
		return m.showForm()
	case keyMsg.String() == "R":
		if err := m.store.ResetToDefaultLocation(*m.copyExisting); err != nil {
			return m, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Reset failed: %v", err), isError: true}
			}
		}
		m.engine.Reload()
		return m, func() tea.Msg {
			return statusMsg{text: "Data location reset to default"}
		}
	}
	return m, nil
}

func (m settingsModel) showForm() (settingsModel, tea.Cmd) {
	*m.goal = strconv.FormatFloat(m.engine.WeeklyHourGoal(), 'f', -1, 64)
	*m.dataDir = m.store.DataLocation()
	*m.copyExisting = true

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Weekly hour goal").Value(m.goal).
				Validate(func(s string) error {
					v, err := strconv.ParseFloat(s, 64)
					if err != nil || v < 0 {
						return errors.New("enter a non-negative number of hours")
					}
					return nil
				}),
		).Title("General"),
		huh.NewGroup(
			huh.NewInput().Title("Data folder").Value(m.dataDir),
			huh.NewConfirm().Title("Copy existing data when moving?").Value(m.copyExisting),
		).Title("Storage"),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		return m, m.applyForm()
	}

	return m, cmd
}

func (m settingsModel) applyForm() tea.Cmd {
	if goal, err := strconv.ParseFloat(*m.goal, 64); err == nil && goal != m.engine.WeeklyHourGoal() {
		m.engine.SetWeeklyHourGoal(goal)
	}

	dir := strings.TrimSpace(*m.dataDir)
	if dir == "" || dir == m.store.DataLocation() {
		return nil
	}
	if err := m.store.SetDataLocation(dir, *m.copyExisting); err != nil {
		return func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Move failed: %v", err), isError: true}
		}
	}
	m.engine.Reload()
	return func() tea.Msg {
		return statusMsg{text: "Data now stored in " + dir}
	}
}

func (m settingsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()),
		)
	}

	title := titleStyle.Render("Settings")

	label := func(s string) string {
		return lipgloss.NewStyle().Width(20).Render(s)
	}

	rows := []string{
		title,
		"",
		fmt.Sprintf("  %s %s", label("Weekly hour goal"), highlightStyle.Render(formatHours(m.engine.WeeklyHourGoal()))),
		fmt.Sprintf("  %s %s", label("Data folder"), highlightStyle.Render(m.store.DataLocation())),
		"",
		mutedStyle.Render("  enter: edit  R: reset data folder to default"),
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

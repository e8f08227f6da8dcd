package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/weekplan/internal/plan"
)

type templatesModel struct {
	engine *plan.Engine
	width  int
	height int

	cursor int

	formActive bool
	form       *huh.Form
	formName   *string
}

func newTemplatesModel(e *plan.Engine) templatesModel {
	name := ""
	return templatesModel{engine: e, formName: &name}
}

func (m *templatesModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m templatesModel) update(msg tea.Msg) (templatesModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	templates := m.engine.Templates()
	switch {
	case key.Matches(keyMsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if m.cursor < len(templates)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, keys.New):
		return m.showNameForm()
	case key.Matches(keyMsg, keys.Enter):
		if m.cursor < len(templates) {
			t := templates[m.cursor]
			m.engine.ApplyTemplate(t.ID)
			return m, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Applied %q to %s", t.Name, m.engine.CurrentWeekKey())}
			}
		}
	case key.Matches(keyMsg, keys.Delete):
		if m.cursor < len(templates) {
			m.engine.DeleteTemplate(templates[m.cursor].ID)
			if m.cursor >= len(m.engine.Templates()) && m.cursor > 0 {
				m.cursor--
			}
		}
	}
	return m, nil
}

func (m templatesModel) showNameForm() (templatesModel, tea.Cmd) {
	*m.formName = ""
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Template Name").Value(m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name is required")
					}
					return nil
				}),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m templatesModel) updateForm(msg tea.Msg) (templatesModel, tea.Cmd) {
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
		t := m.engine.SaveCurrentWeekAsTemplate(*m.formName)
		return m, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Saved %q (%d blocks)", t.Name, len(t.Blocks))}
		}
	}

	return m, cmd
}

func (m templatesModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("Save Week as Template")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()),
		)
	}

	title := titleStyle.Render("Templates")
	templates := m.engine.Templates()

	if len(templates) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No templates yet. Press n to save the current week as one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, t := range templates {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		hours := float64(len(t.Blocks)) * plan.SlotDurationHours
		rows = append(rows, style.Render(fmt.Sprintf("%s%-28s", cursor, truncate(t.Name, 28)))+
			mutedStyle.Render(fmt.Sprintf(" %d blocks · %s", len(t.Blocks), formatHours(hours))))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: save current week  enter: apply (replaces week)  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

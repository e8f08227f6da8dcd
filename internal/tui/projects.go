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
)

var priorities = []plan.Priority{plan.PriorityHigh, plan.PriorityMedium, plan.PriorityLow}

type projectsModel struct {
	engine *plan.Engine
	width  int
	height int

	cursor int

	formActive bool
	form       *huh.Form
	editing    bool
	editingID  string

	// Form field pointers (survive value copies)
	formName     *string
	formTarget   *string
	formPriority *plan.Priority
	formCodes    *string
}

func newProjectsModel(e *plan.Engine) projectsModel {
	name, target, codes := "", "", ""
	priority := plan.PriorityMedium
	return projectsModel{
		engine:       e,
		formName:     &name,
		formTarget:   &target,
		formPriority: &priority,
		formCodes:    &codes,
	}
}

func (m *projectsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m projectsModel) update(msg tea.Msg) (projectsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	projects := m.engine.Projects()
	switch {
	case key.Matches(keyMsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if m.cursor < len(projects)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, keys.New):
		return m.showForm(nil)
	case key.Matches(keyMsg, keys.Edit):
		if m.cursor < len(projects) {
			p := projects[m.cursor]
			return m.showForm(&p)
		}
	case key.Matches(keyMsg, keys.Delete):
		if m.cursor < len(projects) {
			p := projects[m.cursor]
			m.engine.DeleteProject(p.ID)
			if m.cursor >= len(m.engine.Projects()) && m.cursor > 0 {
				m.cursor--
			}
			return m, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Deleted %s and all its blocks", p.Name)}
			}
		}
	}
	return m, nil
}

func (m projectsModel) showForm(p *plan.Project) (projectsModel, tea.Cmd) {
	if p == nil {
		*m.formName = ""
		*m.formTarget = ""
		*m.formPriority = plan.PriorityMedium
		*m.formCodes = ""
		m.editing = false
	} else {
		*m.formName = p.Name
		*m.formTarget = strconv.FormatFloat(p.WeeklyHourTarget, 'f', -1, 64)
		*m.formPriority = p.Priority
		*m.formCodes = formatCodes(p.ChargeCodeSplits)
		m.editing = true
		m.editingID = p.ID
	}

	priorityOptions := make([]huh.Option[plan.Priority], len(priorities))
	for i, pr := range priorities {
		priorityOptions[i] = huh.NewOption(string(pr), pr)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Project Name").Value(m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name is required")
					}
					return nil
				}),
			huh.NewInput().Title("Weekly hour target").Value(m.formTarget).
				Validate(func(s string) error {
					v, err := strconv.ParseFloat(s, 64)
					if err != nil || v < 0 {
						return errors.New("enter a non-negative number of hours")
					}
					return nil
				}),
			huh.NewSelect[plan.Priority]().Title("Priority").Options(priorityOptions...).Value(m.formPriority),
			huh.NewInput().Title("Charge codes (CODE:pct, comma-separated)").Value(m.formCodes).
				Validate(func(s string) error {
					_, err := parseCodes(s)
					return err
				}),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m projectsModel) updateForm(msg tea.Msg) (projectsModel, tea.Cmd) {
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
		target, _ := strconv.ParseFloat(*m.formTarget, 64)
		codes, _ := parseCodes(*m.formCodes)
		if m.editing {
			name := *m.formName
			priority := *m.formPriority
			m.engine.UpdateProject(m.editingID, plan.ProjectUpdate{
				Name:             &name,
				WeeklyHourTarget: &target,
				Priority:         &priority,
				ChargeCodeSplits: &codes,
			})
		} else {
			p := m.engine.AddProject(*m.formName, target, *m.formPriority)
			if len(codes) > 0 {
				m.engine.UpdateProject(p.ID, plan.ProjectUpdate{ChargeCodeSplits: &codes})
			}
		}
		return m, nil
	}

	return m, cmd
}

func (m projectsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Project")
		if m.editing {
			title = titleStyle.Render("Edit Project")
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()),
		)
	}

	title := titleStyle.Render("Projects")
	projects := m.engine.Projects()

	if len(projects) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No projects yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-3s %-24s %8s  %-8s %s", "", "Name", "Target", "Priority", "Charge Codes")))

	for i, p := range projects {
		dot := projectStyle(p).Render("●")
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		row := style.Render(fmt.Sprintf("%s%s %-24s %8s  %-8s %s",
			cursor, dot, truncate(p.Name, 24), formatHours(p.WeeklyHourTarget), p.Priority, formatCodes(p.ChargeCodeSplits)))
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete (removes its blocks everywhere)"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

// parseCodes parses "ACME:60, INTERNAL:40" into charge code splits. An
// empty string yields nil.
func parseCodes(s string) ([]plan.ChargeCodeSplit, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var splits []plan.ChargeCodeSplit
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		code, pctStr, found := strings.Cut(part, ":")
		if !found {
			return nil, fmt.Errorf("expected CODE:pct, got %q", part)
		}
		pct, err := strconv.ParseFloat(strings.TrimSpace(pctStr), 64)
		if err != nil {
			return nil, fmt.Errorf("bad percentage in %q", part)
		}
		splits = append(splits, plan.ChargeCodeSplit{
			Code:       strings.TrimSpace(code),
			Percentage: pct,
		})
	}
	return splits, nil
}

func formatCodes(splits []plan.ChargeCodeSplit) string {
	parts := make([]string, 0, len(splits))
	for _, c := range splits {
		parts = append(parts, fmt.Sprintf("%s:%g", c.Code, c.Percentage))
	}
	return strings.Join(parts, ", ")
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/weekplan/internal/plan"
)

type pickerAction int

const (
	pickPaintSlot pickerAction = iota
	pickPaintRange
	pickReassign
)

// weekModel is the day×slot grid for the selected week. Painting a single
// slot never overwrites; painting a selected range replaces whatever it
// covers.
type weekModel struct {
	engine *plan.Engine
	width  int
	height int

	day  int // 0..len(plan.Weekdays)-1
	slot int // 0..plan.SlotsPerDay-1

	selecting bool
	anchor    int

	picking      bool
	pickerCursor int
	action       pickerAction
}

func newWeekModel(e *plan.Engine) weekModel {
	return weekModel{engine: e}
}

func (m *weekModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m weekModel) cursorDay() plan.Weekday {
	return plan.Weekdays[m.day]
}

func (m weekModel) update(msg tea.Msg) (weekModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.picking {
		return m.updatePicker(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, keys.Up):
		if m.slot > 0 {
			m.slot--
		}
	case key.Matches(keyMsg, keys.Down):
		if m.slot < plan.SlotsPerDay-1 {
			m.slot++
		}
	case key.Matches(keyMsg, keys.Left):
		if m.day > 0 {
			m.day--
			m.selecting = false
		}
	case key.Matches(keyMsg, keys.Right):
		if m.day < len(plan.Weekdays)-1 {
			m.day++
			m.selecting = false
		}

	case key.Matches(keyMsg, keys.Select):
		if m.selecting {
			m.selecting = false
		} else {
			m.selecting = true
			m.anchor = m.slot
		}

	case key.Matches(keyMsg, keys.Paint), key.Matches(keyMsg, keys.Enter):
		if len(m.engine.Projects()) == 0 {
			return m, func() tea.Msg {
				return statusMsg{text: "No projects yet. Press 2 to create one.", isError: true}
			}
		}
		if m.selecting {
			m.action = pickPaintRange
		} else {
			m.action = pickPaintSlot
		}
		m.picking = true
		m.pickerCursor = 0

	case key.Matches(keyMsg, keys.Delete):
		if m.selecting {
			m.engine.RemoveBlockRange(m.cursorDay(), m.anchor, m.slot)
			m.selecting = false
		} else if b := m.engine.BlockAt(m.cursorDay(), m.slot); b != nil {
			m.engine.RemoveBlock(b.ID)
		}

	case key.Matches(keyMsg, keys.Reassign):
		if m.engine.BlockAt(m.cursorDay(), m.slot) == nil {
			return m, nil
		}
		if len(m.engine.Projects()) == 0 {
			return m, nil
		}
		m.action = pickReassign
		m.picking = true
		m.pickerCursor = 0

	case key.Matches(keyMsg, keys.PrevWeek):
		m.selecting = false
		m.engine.PrevWeek()
	case key.Matches(keyMsg, keys.NextWeek):
		m.selecting = false
		m.engine.NextWeek()
	case key.Matches(keyMsg, keys.Today):
		m.selecting = false
		m.engine.GoToCurrentWeek()

	case key.Matches(keyMsg, keys.Back):
		m.selecting = false
	}
	return m, nil
}

func (m weekModel) updatePicker(msg tea.KeyMsg) (weekModel, tea.Cmd) {
	projects := m.engine.Projects()
	switch {
	case key.Matches(msg, keys.Up):
		if m.pickerCursor > 0 {
			m.pickerCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.pickerCursor < len(projects)-1 {
			m.pickerCursor++
		}
	case key.Matches(msg, keys.Enter):
		m.picking = false
		if m.pickerCursor >= len(projects) {
			return m, nil
		}
		return m.applyPick(projects[m.pickerCursor])
	case key.Matches(msg, keys.Back):
		m.picking = false
	}
	return m, nil
}

func (m weekModel) applyPick(p plan.Project) (weekModel, tea.Cmd) {
	switch m.action {
	case pickPaintSlot:
		if b := m.engine.AddBlock(p.ID, m.cursorDay(), m.slot); b == nil {
			return m, func() tea.Msg {
				return statusMsg{text: "Slot occupied — select a range with v to overwrite", isError: true}
			}
		}
	case pickPaintRange:
		m.engine.AddBlockRange(p.ID, m.cursorDay(), m.anchor, m.slot)
		m.selecting = false
	case pickReassign:
		if b := m.engine.BlockAt(m.cursorDay(), m.slot); b != nil {
			m.engine.ReassignBlock(b.ID, p.ID)
		}
	}
	return m, nil
}

func (m weekModel) inSelection(day, slot int) bool {
	if !m.selecting || day != m.day {
		return false
	}
	lo, hi := m.anchor, m.slot
	if lo > hi {
		lo, hi = hi, lo
	}
	return slot >= lo && slot <= hi
}

func (m weekModel) view() string {
	w := m.width - 4
	if m.picking {
		return m.renderPicker(w)
	}

	week := m.engine.CurrentWeek()
	monday := m.engine.CurrentMonday()

	totalHours := float64(len(week.Blocks)) * plan.SlotDurationHours
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render(week.WeekKey),
		mutedStyle.Render(fmt.Sprintf("  %s – %s  ",
			monday.Format("Jan 02"),
			plan.DateOf(monday, plan.Friday).Format("Jan 02, 2006"))),
		highlightStyle.Render(formatHours(totalHours)+" planned"),
	)

	grid := m.renderGrid(week)

	hint := "  space: paint  v: range  d: clear  r: reassign  [/]: week  g: this week"
	if m.selecting {
		hint = "  space: paint range  d: clear range  v/esc: cancel"
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", grid, "", mutedStyle.Render(hint)),
	)
}

func (m weekModel) renderGrid(week *plan.WeekData) string {
	cellW := 13
	if m.width > 0 {
		avail := (m.width - 14) / len(plan.Weekdays)
		if avail > 6 && avail < cellW {
			cellW = avail
		}
	}

	projects := make(map[string]plan.Project)
	for _, p := range m.engine.Projects() {
		projects[p.ID] = p
	}

	// Per day: which project occupies each slot, and the label to draw
	// (project name on the first slot of a contiguous group).
	type cell struct {
		projectID string
		label     string
	}
	cells := make([][]cell, len(plan.Weekdays))
	for d, day := range plan.Weekdays {
		cells[d] = make([]cell, plan.SlotsPerDay)
		for _, g := range plan.BlockGroups(week.Blocks, day) {
			for slot := g.StartSlot; slot <= g.EndSlot && slot < plan.SlotsPerDay; slot++ {
				label := "│"
				if slot == g.StartSlot {
					name := "?"
					if p, ok := projects[g.ProjectID]; ok {
						name = p.Name
					}
					label = truncate(name, cellW-2)
				}
				cells[d][slot] = cell{projectID: g.ProjectID, label: label}
			}
		}
	}

	var rows []string

	headerCells := []string{strings.Repeat(" ", 9)}
	monday := m.engine.CurrentMonday()
	for d, day := range plan.Weekdays {
		label := fmt.Sprintf("%-*s", cellW, plan.DateOf(monday, day).Format("Mon 02"))
		style := mutedStyle
		if d == m.day {
			style = highlightStyle
		}
		headerCells = append(headerCells, style.Render(label))
	}
	rows = append(rows, strings.Join(headerCells, ""))

	for slot := 0; slot < plan.SlotsPerDay; slot++ {
		line := []string{mutedStyle.Render(fmt.Sprintf("%8s ", plan.SlotToTime(slot)))}
		for d := range plan.Weekdays {
			c := cells[d][slot]
			text := c.label
			if text == "" {
				text = "·"
			}
			text = fmt.Sprintf(" %-*s", cellW-1, text)

			var style lipgloss.Style
			switch {
			case d == m.day && slot == m.slot:
				style = cursorSlotStyle
			case m.inSelection(d, slot):
				style = rangeSlotStyle
			case c.projectID != "":
				if p, ok := projects[c.projectID]; ok {
					style = projectStyle(p)
				} else {
					style = normalItemStyle
				}
			default:
				style = emptySlotStyle
			}
			line = append(line, style.Render(text))
		}
		rows = append(rows, strings.Join(line, ""))
	}

	return strings.Join(rows, "\n")
}

func (m weekModel) renderPicker(w int) string {
	verb := "Paint with"
	switch m.action {
	case pickPaintRange:
		verb = "Paint range with"
	case pickReassign:
		verb = "Reassign to"
	}
	title := titleStyle.Render(verb)

	var rows []string
	rows = append(rows, title)
	for i, p := range m.engine.Projects() {
		dot := projectStyle(p).Render("●")
		cursor := "  "
		style := normalItemStyle
		if i == m.pickerCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %s", cursor, dot, p.Name)))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: select  esc: cancel"))

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

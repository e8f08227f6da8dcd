package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/weekplan/internal/plan"
)

// balanceModel shows the rolling carryover report for the selected week.
type balanceModel struct {
	engine *plan.Engine
	width  int
	height int

	balances []plan.ProjectBalance
	chart    barchart.Model
}

func newBalanceModel(e *plan.Engine) balanceModel {
	return balanceModel{
		engine: e,
		chart:  barchart.New(60, 12),
	}
}

func (m *balanceModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type balancesDataMsg struct {
	balances []plan.ProjectBalance
}

func (m balanceModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return balancesDataMsg{balances: m.engine.CalculateProjectBalances()}
	}
}

func (m balanceModel) update(msg tea.Msg) (balanceModel, tea.Cmd) {
	switch msg := msg.(type) {
	case balancesDataMsg:
		m.balances = msg.balances
		m.buildChart()
		return m, nil
	case engineChangedMsg:
		return m, m.refresh()
	}
	return m, nil
}

func (m *balanceModel) buildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if m.height > 30 {
		chartHeight = 14
	}

	m.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, b := range m.balances {
		style := projectStyle(b.Project)

		logged := barchart.BarValue{
			Name:  "logged",
			Value: b.CurrentHours,
			Style: style,
		}
		remaining := b.EffectiveAvailable - b.CurrentHours
		if remaining < 0 {
			remaining = 0
		}
		bars = append(bars, barchart.BarData{
			Label: truncate(b.Project.Name, 10),
			Values: []barchart.BarValue{
				logged,
				{Name: "remaining", Value: remaining, Style: lipgloss.NewStyle().Foreground(colorSubtle)},
			},
		})
	}
	if len(bars) == 0 {
		bars = []barchart.BarData{{Label: "", Values: []barchart.BarValue{{Value: 0}}}}
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m balanceModel) view() string {
	w := m.width - 4

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Balance"), "  ",
		mutedStyle.Render(m.engine.CurrentWeekKey()), "  ",
		mutedStyle.Render(fmt.Sprintf("weekly goal %s", formatHours(m.engine.WeeklyHourGoal()))),
	)

	if len(m.balances) == 0 {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, header, "",
				mutedStyle.Render("No projects to report on.")),
		)
	}

	chartView := m.chart.View()
	tableView := m.renderTable(w)

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", chartView, "", tableView),
	)
}

func (m balanceModel) renderTable(w int) string {
	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-3s %-20s %8s %10s %8s %10s %5s  %s",
		"", "Project", "Target", "Carryover", "Logged", "Available", "%", "Standing")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", minInt(w-6, 80))))

	for _, b := range m.balances {
		dot := projectStyle(b.Project).Render("●")
		carry := formatSigned(b.Carryover)
		if b.Carryover > 0 {
			carry = errorStyle.Render(carry)
		} else if b.Carryover < 0 {
			carry = successStyle.Render(carry)
		}
		rows = append(rows, fmt.Sprintf("  %s  %-20s %8s %10s %8s %10s %4d%%  %s",
			dot,
			truncate(b.Project.Name, 20),
			formatHours(b.Project.WeeklyHourTarget),
			carry,
			formatHours(b.CurrentHours),
			formatHours(b.EffectiveAvailable),
			b.PercentComplete,
			standingStyle(b.Standing).Render(string(b.Standing)),
		))
	}

	return strings.Join(rows, "\n")
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

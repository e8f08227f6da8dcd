package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/sadopc/weekplan/internal/plan"
)

// WeekToCSV writes one row per scheduled block of the week, ordered by day
// then slot.
func WeekToCSV(week plan.WeekData, projects map[string]plan.Project, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Week", "Date", "Day", "Time", "Project", "Priority", "Charge Codes"}); err != nil {
		return err
	}

	blocks := append([]plan.TimeBlock(nil), week.Blocks...)
	sort.Slice(blocks, func(i, j int) bool {
		di, dj := plan.DayIndex(blocks[i].Day), plan.DayIndex(blocks[j].Day)
		if di != dj {
			return di < dj
		}
		return blocks[i].SlotIndex < blocks[j].SlotIndex
	})

	for _, b := range blocks {
		projectName := "Unknown"
		priority := ""
		codes := ""
		if p, ok := projects[b.ProjectID]; ok {
			projectName = p.Name
			priority = string(p.Priority)
			codes = formatChargeCodes(p.ChargeCodeSplits)
		}
		row := []string{
			week.WeekKey,
			plan.DateOf(week.StartDate, b.Day).Format("2006-01-02"),
			string(b.Day),
			plan.SlotToTime(b.SlotIndex),
			projectName,
			priority,
			codes,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func formatChargeCodes(splits []plan.ChargeCodeSplit) string {
	if len(splits) == 0 {
		return ""
	}
	parts := make([]string, 0, len(splits))
	for _, s := range splits {
		parts = append(parts, fmt.Sprintf("%s:%g%%", s.Code, s.Percentage))
	}
	return strings.Join(parts, " ")
}

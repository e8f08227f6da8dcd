package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/weekplan/internal/plan"
)

type jsonReport struct {
	ExportedAt string        `json:"exported_at"`
	WeekKey    string        `json:"week_key"`
	Count      int           `json:"count"`
	Balances   []jsonBalance `json:"balances"`
}

type jsonBalance struct {
	Project            string  `json:"project"`
	Priority           string  `json:"priority"`
	WeeklyHourTarget   float64 `json:"weekly_hour_target"`
	Carryover          float64 `json:"carryover"`
	CurrentHours       float64 `json:"current_hours"`
	EffectiveAvailable float64 `json:"effective_available"`
	PercentComplete    int     `json:"percent_complete"`
	Standing           string  `json:"standing"`
}

// BalancesToJSON writes the balance report for a week to path.
func BalancesToJSON(weekKey string, balances []plan.ProjectBalance, path string) error {
	report := jsonReport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		WeekKey:    weekKey,
		Count:      len(balances),
	}

	for _, b := range balances {
		report.Balances = append(report.Balances, jsonBalance{
			Project:            b.Project.Name,
			Priority:           string(b.Project.Priority),
			WeeklyHourTarget:   b.Project.WeeklyHourTarget,
			Carryover:          b.Carryover,
			CurrentHours:       b.CurrentHours,
			EffectiveAvailable: b.EffectiveAvailable,
			PercentComplete:    b.PercentComplete,
			Standing:           string(b.Standing),
		})
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

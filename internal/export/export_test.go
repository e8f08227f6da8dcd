package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sadopc/weekplan/internal/plan"
)

func sampleWeek() (plan.WeekData, map[string]plan.Project) {
	week := plan.WeekData{
		WeekKey:   "2026-W11",
		StartDate: time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC),
		Blocks: []plan.TimeBlock{
			{ID: "b2", ProjectID: "p1", Day: plan.Tuesday, SlotIndex: 0},
			{ID: "b1", ProjectID: "p1", Day: plan.Monday, SlotIndex: 3},
			{ID: "b3", ProjectID: "missing", Day: plan.Monday, SlotIndex: 1},
		},
	}
	projects := map[string]plan.Project{
		"p1": {
			ID:               "p1",
			Name:             "Platform",
			WeeklyHourTarget: 10,
			Priority:         plan.PriorityHigh,
			ChargeCodeSplits: []plan.ChargeCodeSplit{
				{Code: "ACME", Percentage: 60},
				{Code: "INT", Percentage: 40},
			},
		},
	}
	return week, projects
}

func TestWeekToCSV(t *testing.T) {
	week, projects := sampleWeek()
	path := filepath.Join(t.TempDir(), "week.csv")

	if err := WeekToCSV(week, projects, path); err != nil {
		t.Fatalf("WeekToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}

	if len(rows) != 4 {
		t.Fatalf("expected header + 3 rows, got %d", len(rows))
	}
	header := rows[0]
	if header[0] != "Week" || header[6] != "Charge Codes" {
		t.Fatalf("unexpected header: %v", header)
	}

	// Rows are sorted by day then slot: Mon/1, Mon/3, Tue/0.
	if rows[1][2] != "Monday" || rows[1][3] != "8:30 AM" {
		t.Fatalf("unexpected first row: %v", rows[1])
	}
	if rows[2][2] != "Monday" || rows[2][3] != "9:30 AM" {
		t.Fatalf("unexpected second row: %v", rows[2])
	}
	if rows[3][2] != "Tuesday" || rows[3][1] != "2026-03-10" {
		t.Fatalf("unexpected third row: %v", rows[3])
	}

	// Known project carries its metadata.
	if rows[2][4] != "Platform" || rows[2][5] != "High" {
		t.Fatalf("project columns wrong: %v", rows[2])
	}
	if rows[2][6] != "ACME:60% INT:40%" {
		t.Fatalf("charge codes wrong: %q", rows[2][6])
	}

	// Blocks pointing at a deleted project still export.
	if rows[1][4] != "Unknown" || rows[1][5] != "" {
		t.Fatalf("unknown project row wrong: %v", rows[1])
	}
}

func TestWeekToCSVEmptyWeek(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	week := plan.WeekData{WeekKey: "2026-W11", StartDate: time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)}

	if err := WeekToCSV(week, nil, path); err != nil {
		t.Fatalf("WeekToCSV: %v", err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected header only, got %d rows", len(rows))
	}
}

func TestBalancesToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "balances.json")
	balances := []plan.ProjectBalance{
		{
			Project: plan.Project{
				Name:             "Platform",
				Priority:         plan.PriorityHigh,
				WeeklyHourTarget: 10,
			},
			Carryover:          4,
			CurrentHours:       5,
			EffectiveAvailable: 14,
			PercentComplete:    36,
			Standing:           plan.StandingUnder,
		},
	}

	if err := BalancesToJSON("2026-W11", balances, path); err != nil {
		t.Fatalf("BalancesToJSON: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var report jsonReport
	if err := json.Unmarshal(raw, &report); err != nil {
		t.Fatalf("parse report: %v", err)
	}

	if report.WeekKey != "2026-W11" || report.Count != 1 {
		t.Fatalf("unexpected report envelope: %+v", report)
	}
	if _, err := time.Parse(time.RFC3339, report.ExportedAt); err != nil {
		t.Fatalf("exported_at not RFC3339: %q", report.ExportedAt)
	}

	b := report.Balances[0]
	if b.Project != "Platform" || b.Priority != "High" {
		t.Fatalf("unexpected balance: %+v", b)
	}
	if b.Carryover != 4 || b.EffectiveAvailable != 14 || b.PercentComplete != 36 {
		t.Fatalf("numbers wrong: %+v", b)
	}
	if b.Standing != "under" {
		t.Fatalf("standing wrong: %q", b.Standing)
	}
}

func TestFormatChargeCodes(t *testing.T) {
	if got := formatChargeCodes(nil); got != "" {
		t.Fatalf("empty splits: %q", got)
	}
	splits := []plan.ChargeCodeSplit{{Code: "A", Percentage: 62.5}}
	if got := formatChargeCodes(splits); got != "A:62.5%" {
		t.Fatalf("fractional percentage: %q", got)
	}
}

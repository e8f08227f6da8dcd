package plan

import (
	"encoding/json"
	"time"
)

// DefaultWeeklyHourGoal is used when no goal has been persisted yet.
const DefaultWeeklyHourGoal = 40.0

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// rank orders priorities for sorting: High before Medium before Low.
func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
)

// Weekdays lists the working days in grid order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

// ChargeCodeSplit divides a project's logged time across billing codes.
type ChargeCodeSplit struct {
	Code       string  `json:"code"`
	Percentage float64 `json:"percentage"`
}

type Project struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	WeeklyHourTarget float64           `json:"weeklyHourTarget"`
	Priority         Priority          `json:"priority"`
	ColorIndex       int               `json:"colorIndex"`
	ChargeCodeSplits []ChargeCodeSplit `json:"chargeCodeSplits,omitempty"`
}

// TimeBlock is one 30-minute slot assigned to a project. Within a week at
// most one block occupies a given (day, slotIndex) pair.
type TimeBlock struct {
	ID        string  `json:"id"`
	ProjectID string  `json:"projectId"`
	Day       Weekday `json:"day"`
	SlotIndex int     `json:"slotIndex"`
}

type WeekData struct {
	WeekKey   string      `json:"weekKey"`
	StartDate time.Time   `json:"startDate"`
	Blocks    []TimeBlock `json:"blocks"`
}

// TemplateBlock is a block layout entry without identity; fresh IDs are
// minted when a template is applied.
type TemplateBlock struct {
	ProjectID string  `json:"projectId"`
	Day       Weekday `json:"day"`
	SlotIndex int     `json:"slotIndex"`
}

type Template struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Blocks []TemplateBlock `json:"blocks"`
}

// AppData is the root aggregate and the unit of persistence.
type AppData struct {
	Projects       []Project  `json:"projects"`
	Weeks          []WeekData `json:"weeks"`
	Templates      []Template `json:"templates"`
	WeeklyHourGoal float64    `json:"weeklyHourGoal"`
}

func DefaultAppData() AppData {
	return AppData{
		Projects:       []Project{},
		Weeks:          []WeekData{},
		Templates:      []Template{},
		WeeklyHourGoal: DefaultWeeklyHourGoal,
	}
}

// UnmarshalJSON defaults the weekly hour goal when the field is absent,
// without clobbering an explicit zero.
func (d *AppData) UnmarshalJSON(b []byte) error {
	type alias AppData
	aux := struct {
		*alias
		WeeklyHourGoal *float64 `json:"weeklyHourGoal"`
	}{alias: (*alias)(d)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if aux.WeeklyHourGoal != nil {
		d.WeeklyHourGoal = *aux.WeeklyHourGoal
	} else {
		d.WeeklyHourGoal = DefaultWeeklyHourGoal
	}
	return nil
}

func (w *WeekData) blockAt(day Weekday, slot int) *TimeBlock {
	for i := range w.Blocks {
		if w.Blocks[i].Day == day && w.Blocks[i].SlotIndex == slot {
			return &w.Blocks[i]
		}
	}
	return nil
}

func copyWeek(w WeekData) WeekData {
	c := w
	c.Blocks = make([]TimeBlock, len(w.Blocks))
	copy(c.Blocks, w.Blocks)
	return c
}

func copyProjects(ps []Project) []Project {
	c := make([]Project, len(ps))
	copy(c, ps)
	for i := range c {
		if len(ps[i].ChargeCodeSplits) > 0 {
			c[i].ChargeCodeSplits = append([]ChargeCodeSplit(nil), ps[i].ChargeCodeSplits...)
		}
	}
	return c
}

func copyTemplates(ts []Template) []Template {
	c := make([]Template, len(ts))
	copy(c, ts)
	for i := range c {
		c[i].Blocks = append([]TemplateBlock(nil), ts[i].Blocks...)
	}
	return c
}

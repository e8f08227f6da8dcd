package plan

import (
	"fmt"
	"math"
	"time"
)

const (
	// SlotsPerDay covers a fixed 08:00–18:00 working day in 30-minute slots.
	SlotsPerDay       = 20
	SlotDurationHours = 0.5

	dayStartHour    = 8
	slotMinutes     = 30
	minutesPerHour  = 60
	daysPerWeek     = 7
	workDaysPerWeek = 5
)

// MondayOf returns the Monday (local midnight) of the week containing t.
// Sunday counts as the last day of the preceding week.
func MondayOf(t time.Time) time.Time {
	offset := int(t.Weekday()) - int(time.Monday)
	if t.Weekday() == time.Sunday {
		offset = 6
	}
	m := t.AddDate(0, 0, -offset)
	return time.Date(m.Year(), m.Month(), m.Day(), 0, 0, 0, 0, t.Location())
}

// WeekKeyOf derives the "YYYY-Www" key for the week starting at monday.
// The week number is an approximation of ISO numbering (no special handling
// of boundary weeks spanning year end), so keys sort chronologically within
// a year but callers must not assume strict ISO-8601.
func WeekKeyOf(monday time.Time) string {
	jan1 := time.Date(monday.Year(), 1, 1, 0, 0, 0, 0, monday.Location())
	days := int(math.Round(monday.Sub(jan1).Hours() / 24))
	week := int(math.Ceil(float64(days+int(jan1.Weekday())+1) / daysPerWeek))
	return fmt.Sprintf("%d-W%02d", monday.Year(), week)
}

// SlotToTime renders a slot index as a 12-hour clock label, e.g. "8:00 AM".
// The index is expected to be in [0, SlotsPerDay) but is not checked.
func SlotToTime(slot int) string {
	minutes := dayStartHour*minutesPerHour + slot*slotMinutes
	h := minutes / minutesPerHour
	m := minutes % minutesPerHour
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, m, suffix)
}

// DayIndex returns the grid column for a weekday, or -1 for anything that
// is not a working day.
func DayIndex(d Weekday) int {
	for i, w := range Weekdays {
		if w == d {
			return i
		}
	}
	return -1
}

// DateOf returns the calendar date of a weekday within the week starting
// at monday.
func DateOf(monday time.Time, d Weekday) time.Time {
	i := DayIndex(d)
	if i < 0 {
		i = 0
	}
	return monday.AddDate(0, 0, i)
}

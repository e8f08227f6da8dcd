package plan

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMondayOf(t *testing.T) {
	monday := date(2026, time.March, 9)

	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"monday maps to itself", monday, monday},
		{"midweek", date(2026, time.March, 11), monday},
		{"saturday", date(2026, time.March, 14), monday},
		{"sunday belongs to the preceding week", date(2026, time.March, 15), monday},
		{"next monday starts a new week", date(2026, time.March, 16), date(2026, time.March, 16)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MondayOf(tt.in); !got.Equal(tt.want) {
				t.Fatalf("MondayOf(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMondayOfTruncatesClock(t *testing.T) {
	in := time.Date(2026, time.March, 11, 23, 59, 59, 0, time.UTC)
	got := MondayOf(in)
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 {
		t.Fatalf("expected midnight, got %v", got)
	}
}

func TestWeekKeyOf(t *testing.T) {
	tests := []struct {
		monday time.Time
		want   string
	}{
		{date(2026, time.March, 9), "2026-W11"},
		{date(2026, time.March, 16), "2026-W12"},
		{date(2026, time.January, 5), "2026-W02"},
	}
	for _, tt := range tests {
		if got := WeekKeyOf(tt.monday); got != tt.want {
			t.Fatalf("WeekKeyOf(%v) = %s, want %s", tt.monday, got, tt.want)
		}
	}
}

func TestWeekKeysSortChronologicallyWithinYear(t *testing.T) {
	monday := date(2026, time.January, 5)
	prev := ""
	for i := 0; i < 50; i++ {
		key := WeekKeyOf(monday)
		if key <= prev {
			t.Fatalf("keys not strictly increasing: %s then %s", prev, key)
		}
		prev = key
		monday = monday.AddDate(0, 0, daysPerWeek)
	}
}

func TestSlotToTime(t *testing.T) {
	tests := []struct {
		slot int
		want string
	}{
		{0, "8:00 AM"},
		{1, "8:30 AM"},
		{7, "11:30 AM"},
		{8, "12:00 PM"},
		{9, "12:30 PM"},
		{SlotsPerDay - 1, "5:30 PM"},
	}
	for _, tt := range tests {
		if got := SlotToTime(tt.slot); got != tt.want {
			t.Fatalf("SlotToTime(%d) = %s, want %s", tt.slot, got, tt.want)
		}
	}
}

func TestDayIndex(t *testing.T) {
	for i, d := range Weekdays {
		if got := DayIndex(d); got != i {
			t.Fatalf("DayIndex(%s) = %d, want %d", d, got, i)
		}
	}
	if got := DayIndex(Weekday("Saturday")); got != -1 {
		t.Fatalf("non-working day should map to -1, got %d", got)
	}
}

func TestDateOf(t *testing.T) {
	monday := date(2026, time.March, 9)
	if got := DateOf(monday, Friday); !got.Equal(date(2026, time.March, 13)) {
		t.Fatalf("DateOf friday = %v", got)
	}
	if got := DateOf(monday, Monday); !got.Equal(monday) {
		t.Fatalf("DateOf monday = %v", got)
	}
}

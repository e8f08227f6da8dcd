package plan

import (
	"math"
	"sort"
)

type Standing string

const (
	StandingOver    Standing = "over"
	StandingUnder   Standing = "under"
	StandingOnTrack Standing = "on-track"
)

// ProjectBalance is one project's rolling status for the selected week.
type ProjectBalance struct {
	Project Project

	// Carryover is the cumulative deficit (positive = behind target)
	// summed over all prior non-empty weeks.
	Carryover float64

	// CurrentHours are the hours logged in the selected week only.
	CurrentHours float64

	// EffectiveAvailable is the weekly target plus carryover.
	EffectiveAvailable float64

	PercentComplete int
	Standing        Standing
}

// CalculateProjectBalances aggregates the full week history into a status
// per project, sorted by priority (stable for ties). It is a pure read and
// is recomputed from scratch on every call; balances depend on every
// stored week, so there is no incremental cache to keep consistent.
func (e *Engine) CalculateProjectBalances() []ProjectBalance {
	currentKey := e.CurrentWeekKey()

	keys := make([]string, 0, len(e.data.Weeks))
	weekByKey := make(map[string]*WeekData, len(e.data.Weeks))
	for i := range e.data.Weeks {
		w := &e.data.Weeks[i]
		keys = append(keys, w.WeekKey)
		weekByKey[w.WeekKey] = w
	}
	sort.Strings(keys)

	balances := make([]ProjectBalance, 0, len(e.data.Projects))
	for _, p := range e.data.Projects {
		b := ProjectBalance{Project: p}

		for _, key := range keys {
			if key >= currentKey {
				break
			}
			w := weekByKey[key]
			// Completely empty weeks are skipped, not counted as
			// zero progress.
			if len(w.Blocks) == 0 {
				continue
			}
			logged := hoursFor(w, p.ID)
			b.Carryover += p.WeeklyHourTarget - logged
		}

		if w, ok := weekByKey[currentKey]; ok {
			b.CurrentHours = hoursFor(w, p.ID)
		}
		b.EffectiveAvailable = p.WeeklyHourTarget + b.Carryover

		switch {
		case b.EffectiveAvailable > 0:
			pct := int(math.Round(b.CurrentHours / b.EffectiveAvailable * 100))
			if pct > 100 {
				pct = 100
			}
			b.PercentComplete = pct
		case b.CurrentHours > 0:
			b.PercentComplete = 100
		default:
			b.PercentComplete = 0
		}

		b.Standing = standingFor(p.WeeklyHourTarget, b.CurrentHours)
		balances = append(balances, b)
	}

	sort.SliceStable(balances, func(i, j int) bool {
		return balances[i].Project.Priority.rank() < balances[j].Project.Priority.rank()
	})
	return balances
}

func hoursFor(w *WeekData, projectID string) float64 {
	count := 0
	for _, b := range w.Blocks {
		if b.ProjectID == projectID {
			count++
		}
	}
	return float64(count) * SlotDurationHours
}

// standingFor classifies current-week logging against the weekly target
// within a tolerance of max(0.5h, 10% of target). A zero-target project is
// always on track.
func standingFor(target, currentHours float64) Standing {
	if target == 0 {
		return StandingOnTrack
	}
	tolerance := math.Max(0.5, target*0.10)
	switch {
	case currentHours > target+tolerance:
		return StandingOver
	case currentHours < target-tolerance:
		return StandingUnder
	default:
		return StandingOnTrack
	}
}

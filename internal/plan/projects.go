package plan

import "github.com/google/uuid"

// PaletteSize is the number of distinct project colors. Indices cycle by
// creation order once the palette is exhausted.
const PaletteSize = 8

// AddProject creates a project with the lowest unused palette index and
// returns it.
func (e *Engine) AddProject(name string, weeklyHourTarget float64, priority Priority) Project {
	p := Project{
		ID:               uuid.NewString(),
		Name:             name,
		WeeklyHourTarget: weeklyHourTarget,
		Priority:         priority,
		ColorIndex:       e.nextColorIndex(),
	}
	e.data.Projects = append(e.data.Projects, p)
	e.persistProjects()
	e.notify()
	return p
}

func (e *Engine) nextColorIndex() int {
	used := make(map[int]bool, len(e.data.Projects))
	for _, p := range e.data.Projects {
		used[p.ColorIndex] = true
	}
	for i := 0; i < PaletteSize; i++ {
		if !used[i] {
			return i
		}
	}
	return len(e.data.Projects) % PaletteSize
}

// ProjectUpdate carries the fields to merge into an existing project.
// Nil fields are left unchanged.
type ProjectUpdate struct {
	Name             *string
	WeeklyHourTarget *float64
	Priority         *Priority
	ChargeCodeSplits *[]ChargeCodeSplit
}

// UpdateProject merges the given fields into the project. Unknown ids are
// a silent no-op: nothing is persisted and no notification fires.
func (e *Engine) UpdateProject(id string, upd ProjectUpdate) {
	p := e.ProjectByID(id)
	if p == nil {
		return
	}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.WeeklyHourTarget != nil {
		p.WeeklyHourTarget = *upd.WeeklyHourTarget
	}
	if upd.Priority != nil {
		p.Priority = *upd.Priority
	}
	if upd.ChargeCodeSplits != nil {
		p.ChargeCodeSplits = *upd.ChargeCodeSplits
	}
	e.persistProjects()
	e.notify()
}

// DeleteProject removes the project and every block referencing it in
// every week. The project collection and each affected week are persisted;
// the cascade completes in full before control returns, so no block is
// ever left pointing at a missing project.
func (e *Engine) DeleteProject(id string) {
	idx := -1
	for i := range e.data.Projects {
		if e.data.Projects[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	e.data.Projects = append(e.data.Projects[:idx], e.data.Projects[idx+1:]...)

	var affected []int
	for i := range e.data.Weeks {
		w := &e.data.Weeks[i]
		kept := w.Blocks[:0]
		removed := false
		for _, b := range w.Blocks {
			if b.ProjectID == id {
				removed = true
				continue
			}
			kept = append(kept, b)
		}
		if removed {
			w.Blocks = kept
			affected = append(affected, i)
		}
	}

	e.persistProjects()
	for _, i := range affected {
		e.persistWeek(e.data.Weeks[i])
	}
	e.notify()
}

package plan

import (
	"sort"

	"github.com/google/uuid"
)

// AddBlock inserts a single block into the selected week. It returns nil
// without mutating anything when the slot is already occupied.
func (e *Engine) AddBlock(projectID string, day Weekday, slot int) *TimeBlock {
	week := e.ensureCurrentWeek()
	if week.blockAt(day, slot) != nil {
		return nil
	}
	b := TimeBlock{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Day:       day,
		SlotIndex: slot,
	}
	week.Blocks = append(week.Blocks, b)
	e.persistWeek(*week)
	e.notify()
	return &b
}

// AddBlockRange paints every slot in the inclusive range (bounds in either
// order), replacing any block already occupying a slot. It returns the
// inserted blocks.
func (e *Engine) AddBlockRange(projectID string, day Weekday, startSlot, endSlot int) []TimeBlock {
	lo, hi := startSlot, endSlot
	if lo > hi {
		lo, hi = hi, lo
	}

	week := e.ensureCurrentWeek()
	kept := week.Blocks[:0]
	for _, b := range week.Blocks {
		if b.Day == day && b.SlotIndex >= lo && b.SlotIndex <= hi {
			continue
		}
		kept = append(kept, b)
	}
	week.Blocks = kept

	inserted := make([]TimeBlock, 0, hi-lo+1)
	for slot := lo; slot <= hi; slot++ {
		b := TimeBlock{
			ID:        uuid.NewString(),
			ProjectID: projectID,
			Day:       day,
			SlotIndex: slot,
		}
		week.Blocks = append(week.Blocks, b)
		inserted = append(inserted, b)
	}
	if len(inserted) == 0 {
		return nil
	}

	e.persistWeek(*week)
	e.notify()
	return inserted
}

// RemoveBlockRange clears every block in the inclusive slot range for the
// day, regardless of project.
func (e *Engine) RemoveBlockRange(day Weekday, startSlot, endSlot int) {
	lo, hi := startSlot, endSlot
	if lo > hi {
		lo, hi = hi, lo
	}

	week := e.ensureCurrentWeek()
	kept := week.Blocks[:0]
	for _, b := range week.Blocks {
		if b.Day == day && b.SlotIndex >= lo && b.SlotIndex <= hi {
			continue
		}
		kept = append(kept, b)
	}
	week.Blocks = kept

	e.persistWeek(*week)
	e.notify()
}

// RemoveBlock deletes one block by identity; silent no-op if absent.
func (e *Engine) RemoveBlock(blockID string) {
	week := e.ensureCurrentWeek()
	for i := range week.Blocks {
		if week.Blocks[i].ID == blockID {
			week.Blocks = append(week.Blocks[:i], week.Blocks[i+1:]...)
			e.persistWeek(*week)
			e.notify()
			return
		}
	}
}

// ReassignBlock moves a block to another project in place; silent no-op if
// the block is absent.
func (e *Engine) ReassignBlock(blockID, newProjectID string) {
	week := e.ensureCurrentWeek()
	for i := range week.Blocks {
		if week.Blocks[i].ID == blockID {
			week.Blocks[i].ProjectID = newProjectID
			e.persistWeek(*week)
			e.notify()
			return
		}
	}
}

// BlockAt returns the block occupying (day, slot) in the selected week,
// or nil.
func (e *Engine) BlockAt(day Weekday, slot int) *TimeBlock {
	return e.ensureCurrentWeek().blockAt(day, slot)
}

// BlockGroup is a run of adjacent same-project slots within one day.
// Grouping is purely a presentation concept; the store itself tracks
// individual slots only.
type BlockGroup struct {
	ProjectID string
	Day       Weekday
	StartSlot int
	EndSlot   int
	BlockIDs  []string
}

// BlockGroups collapses a day's blocks into contiguous same-project runs,
// ordered by start slot.
func BlockGroups(blocks []TimeBlock, day Weekday) []BlockGroup {
	var dayBlocks []TimeBlock
	for _, b := range blocks {
		if b.Day == day {
			dayBlocks = append(dayBlocks, b)
		}
	}
	sort.Slice(dayBlocks, func(i, j int) bool {
		return dayBlocks[i].SlotIndex < dayBlocks[j].SlotIndex
	})

	var groups []BlockGroup
	for _, b := range dayBlocks {
		n := len(groups)
		if n > 0 && groups[n-1].ProjectID == b.ProjectID && groups[n-1].EndSlot == b.SlotIndex-1 {
			groups[n-1].EndSlot = b.SlotIndex
			groups[n-1].BlockIDs = append(groups[n-1].BlockIDs, b.ID)
			continue
		}
		groups = append(groups, BlockGroup{
			ProjectID: b.ProjectID,
			Day:       day,
			StartSlot: b.SlotIndex,
			EndSlot:   b.SlotIndex,
			BlockIDs:  []string{b.ID},
		})
	}
	return groups
}

package plan

import "github.com/google/uuid"

// SaveCurrentWeekAsTemplate snapshots the selected week's block layout,
// dropping block identities, and stores it as a new template.
func (e *Engine) SaveCurrentWeekAsTemplate(name string) Template {
	week := e.ensureCurrentWeek()
	blocks := make([]TemplateBlock, 0, len(week.Blocks))
	for _, b := range week.Blocks {
		blocks = append(blocks, TemplateBlock{
			ProjectID: b.ProjectID,
			Day:       b.Day,
			SlotIndex: b.SlotIndex,
		})
	}
	t := Template{
		ID:     uuid.NewString(),
		Name:   name,
		Blocks: blocks,
	}
	e.data.Templates = append(e.data.Templates, t)
	e.persistTemplates()
	e.notify()
	return t
}

// ApplyTemplate replaces all blocks in the selected week with fresh-identity
// blocks built from the template. Entries referencing a project that no
// longer exists are dropped silently. Unknown template ids are a no-op.
func (e *Engine) ApplyTemplate(templateID string) {
	var tmpl *Template
	for i := range e.data.Templates {
		if e.data.Templates[i].ID == templateID {
			tmpl = &e.data.Templates[i]
			break
		}
	}
	if tmpl == nil {
		return
	}

	exists := make(map[string]bool, len(e.data.Projects))
	for _, p := range e.data.Projects {
		exists[p.ID] = true
	}

	week := e.ensureCurrentWeek()
	blocks := make([]TimeBlock, 0, len(tmpl.Blocks))
	for _, tb := range tmpl.Blocks {
		if !exists[tb.ProjectID] {
			continue
		}
		blocks = append(blocks, TimeBlock{
			ID:        uuid.NewString(),
			ProjectID: tb.ProjectID,
			Day:       tb.Day,
			SlotIndex: tb.SlotIndex,
		})
	}
	week.Blocks = blocks

	e.persistWeek(*week)
	e.notify()
}

// DeleteTemplate removes a template by identity; silent no-op if absent.
func (e *Engine) DeleteTemplate(templateID string) {
	for i := range e.data.Templates {
		if e.data.Templates[i].ID == templateID {
			e.data.Templates = append(e.data.Templates[:i], e.data.Templates[i+1:]...)
			e.persistTemplates()
			e.notify()
			return
		}
	}
}

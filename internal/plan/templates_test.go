package plan

import "testing"

func TestSaveCurrentWeekAsTemplate(t *testing.T) {
	e, g, sched := newTestEngine(t)
	p := e.AddProject("P", 1, PriorityLow)
	e.AddBlock(p.ID, Monday, 0)
	e.AddBlock(p.ID, Tuesday, 3)

	tmpl := e.SaveCurrentWeekAsTemplate("Default week")
	if tmpl.ID == "" || tmpl.Name != "Default week" {
		t.Fatalf("unexpected template: %+v", tmpl)
	}
	if len(tmpl.Blocks) != 2 {
		t.Fatalf("expected 2 template blocks, got %d", len(tmpl.Blocks))
	}
	if len(e.Templates()) != 1 {
		t.Fatalf("expected 1 stored template, got %d", len(e.Templates()))
	}

	sched.fire()
	if len(g.saveTmpls) != 1 {
		t.Fatalf("expected one templates save, got %d", len(g.saveTmpls))
	}
}

func TestApplyTemplateReplacesWeek(t *testing.T) {
	e, _, _ := newTestEngine(t)
	p := e.AddProject("P", 1, PriorityLow)
	original := e.AddBlock(p.ID, Monday, 0)
	tmpl := e.SaveCurrentWeekAsTemplate("T")

	// Navigate to an empty week, scribble on it, then apply.
	e.NextWeek()
	e.AddBlockRange(p.ID, Friday, 10, 14)
	e.ApplyTemplate(tmpl.ID)

	week := e.CurrentWeek()
	if len(week.Blocks) != 1 {
		t.Fatalf("apply must replace, not merge: %d blocks", len(week.Blocks))
	}
	got := week.Blocks[0]
	if got.Day != Monday || got.SlotIndex != 0 || got.ProjectID != p.ID {
		t.Fatalf("unexpected block: %+v", got)
	}
	if got.ID == original.ID {
		t.Fatal("applied blocks must get fresh identities")
	}
}

func TestApplyTemplateDropsOrphanedProjects(t *testing.T) {
	e, _, _ := newTestEngine(t)
	keep := e.AddProject("Keep", 1, PriorityLow)
	gone := e.AddProject("Gone", 1, PriorityLow)
	e.AddBlock(keep.ID, Monday, 0)
	e.AddBlock(gone.ID, Monday, 1)
	tmpl := e.SaveCurrentWeekAsTemplate("T")

	e.DeleteProject(gone.ID)
	e.NextWeek()
	e.ApplyTemplate(tmpl.ID)

	week := e.CurrentWeek()
	if len(week.Blocks) != 1 {
		t.Fatalf("orphaned entries must be dropped, got %d blocks", len(week.Blocks))
	}
	if week.Blocks[0].ProjectID != keep.ID {
		t.Fatalf("wrong survivor: %s", week.Blocks[0].ProjectID)
	}
}

func TestApplyTemplateUnknownIDIsNoOp(t *testing.T) {
	e, _, _ := newTestEngine(t)
	p := e.AddProject("P", 1, PriorityLow)
	e.AddBlock(p.ID, Monday, 0)

	e.ApplyTemplate("missing")
	if len(e.CurrentWeek().Blocks) != 1 {
		t.Fatal("unknown template must leave the week untouched")
	}
}

func TestDeleteTemplate(t *testing.T) {
	e, _, _ := newTestEngine(t)
	tmpl := e.SaveCurrentWeekAsTemplate("T")

	e.DeleteTemplate(tmpl.ID)
	if len(e.Templates()) != 0 {
		t.Fatalf("expected no templates, got %d", len(e.Templates()))
	}

	e.DeleteTemplate("missing") // no-op
}

func TestApplyTemplatePersistsWeekNotTemplates(t *testing.T) {
	e, g, sched := newTestEngine(t)
	p := e.AddProject("P", 1, PriorityLow)
	e.AddBlock(p.ID, Monday, 0)
	tmpl := e.SaveCurrentWeekAsTemplate("T")
	sched.fire()
	tmplSaves := len(g.saveTmpls)
	weekSaves := len(g.saveWeeks)

	e.ApplyTemplate(tmpl.ID)
	sched.fire()

	if len(g.saveTmpls) != tmplSaves {
		t.Fatal("apply must not rewrite templates")
	}
	if len(g.saveWeeks) != weekSaves+1 {
		t.Fatalf("apply should persist the week, got %d new saves", len(g.saveWeeks)-weekSaves)
	}
}

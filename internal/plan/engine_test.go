package plan

import (
	"testing"
	"time"
)

// memGateway is an in-memory Gateway recording every save call.
type memGateway struct {
	data      AppData
	saveAll   int
	saveProj  [][]Project
	saveWeeks []WeekData
	saveTmpls [][]Template
	loadCalls int
}

func newMemGateway() *memGateway {
	return &memGateway{data: DefaultAppData()}
}

func (g *memGateway) Load() AppData {
	g.loadCalls++
	return g.data
}

func (g *memGateway) SaveAll(d AppData) error {
	g.saveAll++
	g.data = d
	return nil
}

func (g *memGateway) SaveProjects(ps []Project) error {
	g.saveProj = append(g.saveProj, ps)
	return nil
}

func (g *memGateway) SaveWeek(w WeekData) error {
	g.saveWeeks = append(g.saveWeeks, w)
	return nil
}

func (g *memGateway) SaveTemplates(ts []Template) error {
	g.saveTmpls = append(g.saveTmpls, ts)
	return nil
}

// manualScheduler collects scheduled tasks so tests can fire the debounce
// window by hand.
type manualTimer struct{ stopped bool }

func (t *manualTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type manualTask struct {
	fn    func()
	timer *manualTimer
}

type manualScheduler struct {
	tasks []*manualTask
}

func (s *manualScheduler) AfterFunc(_ time.Duration, f func()) Timer {
	task := &manualTask{fn: f, timer: &manualTimer{}}
	s.tasks = append(s.tasks, task)
	return task.timer
}

// fire runs every task that has not been cancelled.
func (s *manualScheduler) fire() {
	tasks := s.tasks
	s.tasks = nil
	for _, task := range tasks {
		if !task.timer.stopped {
			task.fn()
		}
	}
}

// testNow is a Wednesday; its week is 2026-W11 starting Monday March 9.
var testNow = time.Date(2026, time.March, 11, 10, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T) (*Engine, *memGateway, *manualScheduler) {
	t.Helper()
	g := newMemGateway()
	sched := &manualScheduler{}
	e := New(g, WithScheduler(sched), WithNow(func() time.Time { return testNow }))
	return e, g, sched
}

// ============================================================
// Startup and navigation
// ============================================================

func TestNewLoadsAndSelectsCurrentWeek(t *testing.T) {
	e, g, _ := newTestEngine(t)

	if g.loadCalls != 1 {
		t.Fatalf("expected one Load call, got %d", g.loadCalls)
	}
	if key := e.CurrentWeekKey(); key != "2026-W11" {
		t.Fatalf("expected week key 2026-W11, got %s", key)
	}
	if !e.CurrentMonday().Equal(time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected monday: %v", e.CurrentMonday())
	}
}

func TestWeekCreatedLazilyOnNavigation(t *testing.T) {
	e, _, _ := newTestEngine(t)

	if len(e.Weeks()) != 1 {
		t.Fatalf("expected startup week only, got %d", len(e.Weeks()))
	}

	e.NextWeek()
	if len(e.Weeks()) != 2 {
		t.Fatalf("expected lazily created week, got %d weeks", len(e.Weeks()))
	}

	// Navigating back does not create a duplicate.
	e.PrevWeek()
	e.NextWeek()
	if len(e.Weeks()) != 2 {
		t.Fatalf("weeks should never duplicate, got %d", len(e.Weeks()))
	}
}

func TestGoToCurrentWeek(t *testing.T) {
	e, _, _ := newTestEngine(t)
	e.NextWeek()
	e.NextWeek()
	e.GoToCurrentWeek()
	if e.CurrentWeekKey() != "2026-W11" {
		t.Fatalf("expected 2026-W11, got %s", e.CurrentWeekKey())
	}
}

// ============================================================
// Project registry
// ============================================================

func TestAddProject(t *testing.T) {
	e, g, sched := newTestEngine(t)

	p := e.AddProject("Platform", 10, PriorityHigh)
	if p.ID == "" {
		t.Fatal("expected non-empty ID")
	}
	if p.ColorIndex != 0 {
		t.Fatalf("first project should get palette index 0, got %d", p.ColorIndex)
	}
	if len(e.Projects()) != 1 {
		t.Fatalf("expected 1 project, got %d", len(e.Projects()))
	}

	sched.fire()
	if len(g.saveProj) != 1 {
		t.Fatalf("expected one projects save, got %d", len(g.saveProj))
	}
}

func TestColorIndexLowestUnused(t *testing.T) {
	e, _, _ := newTestEngine(t)

	a := e.AddProject("A", 1, PriorityLow)
	b := e.AddProject("B", 1, PriorityLow)
	c := e.AddProject("C", 1, PriorityLow)
	if a.ColorIndex != 0 || b.ColorIndex != 1 || c.ColorIndex != 2 {
		t.Fatalf("unexpected indices: %d %d %d", a.ColorIndex, b.ColorIndex, c.ColorIndex)
	}

	// Freeing an index makes it the next pick.
	e.DeleteProject(b.ID)
	d := e.AddProject("D", 1, PriorityLow)
	if d.ColorIndex != 1 {
		t.Fatalf("expected reuse of index 1, got %d", d.ColorIndex)
	}
}

func TestColorIndexCyclesWhenPaletteExhausted(t *testing.T) {
	e, _, _ := newTestEngine(t)

	for i := 0; i < PaletteSize; i++ {
		e.AddProject("P", 1, PriorityLow)
	}
	p := e.AddProject("Overflow", 1, PriorityLow)
	if p.ColorIndex != PaletteSize%PaletteSize {
		t.Fatalf("expected cycled index %d, got %d", PaletteSize%PaletteSize, p.ColorIndex)
	}
}

func TestUpdateProjectMergesFields(t *testing.T) {
	e, _, _ := newTestEngine(t)
	p := e.AddProject("Old", 5, PriorityLow)

	name := "New"
	target := 12.5
	e.UpdateProject(p.ID, ProjectUpdate{Name: &name, WeeklyHourTarget: &target})

	got := e.ProjectByID(p.ID)
	if got.Name != "New" || got.WeeklyHourTarget != 12.5 {
		t.Fatalf("unexpected project: %+v", got)
	}
	if got.Priority != PriorityLow {
		t.Fatalf("priority should be untouched, got %s", got.Priority)
	}
}

func TestUpdateProjectUnknownIDIsNoOp(t *testing.T) {
	e, g, sched := newTestEngine(t)
	e.AddProject("A", 1, PriorityLow)
	sched.fire()
	saves := len(g.saveProj)

	name := "x"
	e.UpdateProject("missing", ProjectUpdate{Name: &name})
	sched.fire()
	if len(g.saveProj) != saves {
		t.Fatal("no-op update must not persist")
	}
}

func TestDeleteProjectCascadesAcrossWeeks(t *testing.T) {
	e, _, _ := newTestEngine(t)
	keep := e.AddProject("Keep", 1, PriorityLow)
	gone := e.AddProject("Gone", 1, PriorityLow)

	e.AddBlock(gone.ID, Monday, 0)
	e.AddBlock(keep.ID, Monday, 1)
	e.NextWeek()
	e.AddBlock(gone.ID, Friday, 3)

	e.DeleteProject(gone.ID)

	for _, w := range e.Weeks() {
		for _, b := range w.Blocks {
			if b.ProjectID == gone.ID {
				t.Fatalf("orphan block %s in week %s", b.ID, w.WeekKey)
			}
		}
	}
	if e.ProjectByID(gone.ID) != nil {
		t.Fatal("project should be gone")
	}
	if e.ProjectByID(keep.ID) == nil {
		t.Fatal("other project should remain")
	}
}

func TestDeleteProjectPersistsAffectedWeeks(t *testing.T) {
	e, g, sched := newTestEngine(t)
	p := e.AddProject("P", 1, PriorityLow)
	e.AddBlock(p.ID, Monday, 0)
	e.NextWeek()
	e.AddBlock(p.ID, Monday, 0)
	sched.fire()
	weekSaves := len(g.saveWeeks)

	e.DeleteProject(p.ID)
	sched.fire()
	if len(g.saveWeeks) != weekSaves+2 {
		t.Fatalf("expected 2 more week saves, got %d", len(g.saveWeeks)-weekSaves)
	}
}

func TestDeleteProjectUnknownIDIsNoOp(t *testing.T) {
	e, _, _ := newTestEngine(t)
	e.AddProject("A", 1, PriorityLow)
	e.DeleteProject("missing")
	if len(e.Projects()) != 1 {
		t.Fatal("unknown delete must not remove anything")
	}
}

// ============================================================
// Weekly hour goal
// ============================================================

func TestSetWeeklyHourGoal(t *testing.T) {
	e, g, sched := newTestEngine(t)
	if e.WeeklyHourGoal() != DefaultWeeklyHourGoal {
		t.Fatalf("expected default goal, got %v", e.WeeklyHourGoal())
	}

	e.SetWeeklyHourGoal(32)
	sched.fire()
	if g.saveAll != 1 {
		t.Fatalf("expected one full save, got %d", g.saveAll)
	}
	if g.data.WeeklyHourGoal != 32 {
		t.Fatalf("goal not persisted: %v", g.data.WeeklyHourGoal)
	}
}

// ============================================================
// Change notification
// ============================================================

func TestNotifyFansOutInSubscriptionOrder(t *testing.T) {
	e, _, _ := newTestEngine(t)

	var order []int
	e.Subscribe(func() { order = append(order, 1) })
	e.Subscribe(func() { order = append(order, 2) })

	e.AddProject("A", 1, PriorityLow)
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("unexpected delivery order: %v", order)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	e, _, _ := newTestEngine(t)

	calls := 0
	id := e.Subscribe(func() { calls++ })
	e.AddProject("A", 1, PriorityLow)
	e.Unsubscribe(id)
	e.AddProject("B", 1, PriorityLow)
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestSubscriberMayUnsubscribeItselfMidPass(t *testing.T) {
	e, _, _ := newTestEngine(t)

	var id int
	firstCalls, secondCalls := 0, 0
	id = e.Subscribe(func() {
		firstCalls++
		e.Unsubscribe(id)
	})
	e.Subscribe(func() { secondCalls++ })

	e.AddProject("A", 1, PriorityLow)
	if firstCalls != 1 {
		t.Fatalf("first subscriber calls: %d", firstCalls)
	}
	if secondCalls != 1 {
		t.Fatal("self-unsubscribe must not affect later subscribers in the same pass")
	}

	e.AddProject("B", 1, PriorityLow)
	if firstCalls != 1 || secondCalls != 2 {
		t.Fatalf("after second mutation: first=%d second=%d", firstCalls, secondCalls)
	}
}

// ============================================================
// Reload
// ============================================================

func TestReloadRehydratesFromGateway(t *testing.T) {
	e, g, _ := newTestEngine(t)
	e.AddProject("Stale", 1, PriorityLow)

	g.data = DefaultAppData()
	g.data.Projects = []Project{{ID: "fresh", Name: "Fresh", Priority: PriorityHigh}}

	notified := false
	e.Subscribe(func() { notified = true })
	e.Reload()

	if len(e.Projects()) != 1 || e.Projects()[0].ID != "fresh" {
		t.Fatalf("unexpected projects after reload: %+v", e.Projects())
	}
	if !notified {
		t.Fatal("reload should notify subscribers")
	}
}

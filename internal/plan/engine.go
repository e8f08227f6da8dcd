package plan

import (
	"time"
)

// Gateway is the persistence boundary the engine writes through. Load
// returns defaults when no prior data exists; save calls rewrite whole
// collections and may run on timer goroutines.
type Gateway interface {
	Load() AppData
	SaveAll(AppData) error
	SaveProjects([]Project) error
	SaveWeek(WeekData) error
	SaveTemplates([]Template) error
}

// Engine owns the single live AppData, the current-week pointer, the
// subscriber registry and the debounced persistence scheduler. All
// mutations run synchronously on the caller's goroutine; only the
// persistence writes they schedule are asynchronous.
type Engine struct {
	gateway Gateway
	writer  *writer
	now     func() time.Time

	data          AppData
	currentMonday time.Time

	subs   []subscription
	nextID int
}

type Option func(*Engine)

// WithScheduler replaces the real timer scheduler, for tests.
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) { e.writer.sched = s }
}

// WithDebounce overrides the persistence quiescence window.
func WithDebounce(d time.Duration) Option {
	return func(e *Engine) { e.writer.delay = d }
}

// WithNow overrides the clock used to pick the startup week.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func New(g Gateway, opts ...Option) *Engine {
	e := &Engine{
		gateway: g,
		writer:  newWriter(realScheduler{}, saveDebounce),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.data = g.Load()
	e.currentMonday = MondayOf(e.now())
	e.ensureCurrentWeek()
	return e
}

// Reload rehydrates state from the gateway, e.g. after the backing store
// moved to a new location.
func (e *Engine) Reload() {
	e.data = e.gateway.Load()
	e.ensureCurrentWeek()
	e.notify()
}

// Flush writes all pending debounced saves immediately. Call before exit.
func (e *Engine) Flush() {
	e.writer.flush()
}

// ------------------------------------------------------------------
// Week navigation
// ------------------------------------------------------------------

func (e *Engine) CurrentWeekKey() string   { return WeekKeyOf(e.currentMonday) }
func (e *Engine) CurrentMonday() time.Time { return e.currentMonday }

// CurrentWeek returns the selected week's data, creating it lazily.
// Callers must not mutate the returned blocks.
func (e *Engine) CurrentWeek() *WeekData {
	return e.ensureCurrentWeek()
}

func (e *Engine) NextWeek() {
	e.currentMonday = e.currentMonday.AddDate(0, 0, daysPerWeek)
	e.ensureCurrentWeek()
	e.notify()
}

func (e *Engine) PrevWeek() {
	e.currentMonday = e.currentMonday.AddDate(0, 0, -daysPerWeek)
	e.ensureCurrentWeek()
	e.notify()
}

func (e *Engine) GoToCurrentWeek() {
	e.currentMonday = MondayOf(e.now())
	e.ensureCurrentWeek()
	e.notify()
}

// GoToWeek selects the week containing the given date.
func (e *Engine) GoToWeek(t time.Time) {
	e.currentMonday = MondayOf(t)
	e.ensureCurrentWeek()
	e.notify()
}

// ensureCurrentWeek creates the WeekData for the selected week on first
// touch. Weeks are never deleted once created.
func (e *Engine) ensureCurrentWeek() *WeekData {
	key := e.CurrentWeekKey()
	for i := range e.data.Weeks {
		if e.data.Weeks[i].WeekKey == key {
			return &e.data.Weeks[i]
		}
	}
	e.data.Weeks = append(e.data.Weeks, WeekData{
		WeekKey:   key,
		StartDate: e.currentMonday,
		Blocks:    []TimeBlock{},
	})
	return &e.data.Weeks[len(e.data.Weeks)-1]
}

// ------------------------------------------------------------------
// Read accessors
// ------------------------------------------------------------------

// Projects returns the project collection. Callers must not mutate it.
func (e *Engine) Projects() []Project { return e.data.Projects }

// Templates returns the template collection. Callers must not mutate it.
func (e *Engine) Templates() []Template { return e.data.Templates }

// Weeks returns every stored week. Callers must not mutate it.
func (e *Engine) Weeks() []WeekData { return e.data.Weeks }

func (e *Engine) ProjectByID(id string) *Project {
	for i := range e.data.Projects {
		if e.data.Projects[i].ID == id {
			return &e.data.Projects[i]
		}
	}
	return nil
}

func (e *Engine) WeeklyHourGoal() float64 { return e.data.WeeklyHourGoal }

func (e *Engine) SetWeeklyHourGoal(hours float64) {
	e.data.WeeklyHourGoal = hours
	e.persistAll()
	e.notify()
}

// ------------------------------------------------------------------
// Persistence scheduling
// ------------------------------------------------------------------

func (e *Engine) persistProjects() {
	snap := copyProjects(e.data.Projects)
	e.writer.schedule("projects", func() error {
		return e.gateway.SaveProjects(snap)
	})
}

func (e *Engine) persistWeek(w WeekData) {
	snap := copyWeek(w)
	e.writer.schedule("week:"+w.WeekKey, func() error {
		return e.gateway.SaveWeek(snap)
	})
}

func (e *Engine) persistTemplates() {
	snap := copyTemplates(e.data.Templates)
	e.writer.schedule("templates", func() error {
		return e.gateway.SaveTemplates(snap)
	})
}

func (e *Engine) persistAll() {
	snap := AppData{
		Projects:       copyProjects(e.data.Projects),
		Templates:      copyTemplates(e.data.Templates),
		WeeklyHourGoal: e.data.WeeklyHourGoal,
	}
	snap.Weeks = make([]WeekData, len(e.data.Weeks))
	for i := range e.data.Weeks {
		snap.Weeks[i] = copyWeek(e.data.Weeks[i])
	}
	e.writer.schedule("all", func() error {
		return e.gateway.SaveAll(snap)
	})
}

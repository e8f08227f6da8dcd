package plan

import (
	"log"
	"sync"
	"time"
)

// saveDebounce is the quiescence window for coalescing rapid edits (a drag
// painting many blocks) into one persisted write per target.
const saveDebounce = 500 * time.Millisecond

// Timer is a cancellable handle returned by a Scheduler.
type Timer interface {
	Stop() bool
}

// Scheduler abstracts timer creation so the debounce window can be driven
// manually in tests.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type pendingSave struct {
	timer Timer
	save  func() error
}

// writer coalesces persistence writes per logical target. A later schedule
// for the same target cancels and restarts the pending timer; different
// targets debounce independently and carry no ordering guarantee between
// them. Save failures are logged and never propagated or retried.
type writer struct {
	mu      sync.Mutex
	sched   Scheduler
	delay   time.Duration
	pending map[string]*pendingSave
	logf    func(format string, args ...any)
}

func newWriter(sched Scheduler, delay time.Duration) *writer {
	return &writer{
		sched:   sched,
		delay:   delay,
		pending: make(map[string]*pendingSave),
		logf:    log.Printf,
	}
}

func (w *writer) schedule(target string, save func() error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if p, ok := w.pending[target]; ok {
		p.timer.Stop()
	}
	p := &pendingSave{save: save}
	p.timer = w.sched.AfterFunc(w.delay, func() {
		w.mu.Lock()
		if w.pending[target] == p {
			delete(w.pending, target)
		}
		w.mu.Unlock()
		if err := save(); err != nil {
			w.logf("save %s: %v", target, err)
		}
	})
	w.pending[target] = p
}

// flush cancels all pending timers and runs their saves synchronously.
// Used on shutdown so edits inside the debounce window are not lost.
func (w *writer) flush() {
	w.mu.Lock()
	saves := make([]func() error, 0, len(w.pending))
	for target, p := range w.pending {
		p.timer.Stop()
		saves = append(saves, p.save)
		delete(w.pending, target)
	}
	w.mu.Unlock()

	for _, save := range saves {
		if err := save(); err != nil {
			w.logf("flush save: %v", err)
		}
	}
}

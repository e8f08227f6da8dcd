package plan

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func newTestWriter() (*writer, *manualScheduler) {
	sched := &manualScheduler{}
	w := newWriter(sched, time.Millisecond)
	return w, sched
}

func TestWriterCoalescesSameTarget(t *testing.T) {
	w, sched := newTestWriter()

	calls := []int{}
	w.schedule("projects", func() error { calls = append(calls, 1); return nil })
	w.schedule("projects", func() error { calls = append(calls, 2); return nil })
	w.schedule("projects", func() error { calls = append(calls, 3); return nil })

	sched.fire()
	if len(calls) != 1 || calls[0] != 3 {
		t.Fatalf("only the last scheduled save should run, got %v", calls)
	}

	// The target is free again afterwards.
	w.schedule("projects", func() error { calls = append(calls, 4); return nil })
	sched.fire()
	if len(calls) != 2 || calls[1] != 4 {
		t.Fatalf("subsequent schedule should run, got %v", calls)
	}
}

func TestWriterTargetsDebounceIndependently(t *testing.T) {
	w, sched := newTestWriter()

	ran := map[string]int{}
	w.schedule("projects", func() error { ran["projects"]++; return nil })
	w.schedule("week:2026-W11", func() error { ran["week"]++; return nil })
	w.schedule("projects", func() error { ran["projects"]++; return nil })

	sched.fire()
	if ran["projects"] != 1 {
		t.Fatalf("projects saves: %d", ran["projects"])
	}
	if ran["week"] != 1 {
		t.Fatal("rescheduling one target must not cancel another")
	}
}

func TestWriterFlushRunsPendingSaves(t *testing.T) {
	w, sched := newTestWriter()

	ran := 0
	w.schedule("all", func() error { ran++; return nil })
	w.flush()
	if ran != 1 {
		t.Fatalf("flush should run the pending save, got %d", ran)
	}

	// The timer was cancelled; firing must not run the save again.
	sched.fire()
	if ran != 1 {
		t.Fatalf("save ran twice, got %d", ran)
	}

	// Flush with nothing pending is fine.
	w.flush()
}

func TestWriterLogsSaveFailure(t *testing.T) {
	w, sched := newTestWriter()

	var logged []string
	w.logf = func(format string, args ...any) {
		logged = append(logged, fmt.Sprintf(format, args...))
	}

	w.schedule("templates", func() error { return errors.New("disk full") })
	sched.fire()

	if len(logged) != 1 {
		t.Fatalf("expected one log line, got %v", logged)
	}

	// A failed save is not retried.
	sched.fire()
	if len(logged) != 1 {
		t.Fatalf("failed save was retried: %v", logged)
	}
}

package game

import (
	"math"
	"time"
)

// Task is a repeating callback run by a Scheduler.
type Task struct {
	every     int
	left      int
	fn        func()
	cancelled bool
}

// Cancel stops the task. Cancelling twice is harmless.
func (t *Task) Cancel() {
	if t != nil {
		t.cancelled = true
	}
}

// Cancelled reports whether Cancel has been called.
func (t *Task) Cancelled() bool {
	return t == nil || t.cancelled
}

// Scheduler runs repeating tasks on tick boundaries.
// It is driven by the session tick; tasks never run concurrently with it.
type Scheduler struct {
	dt    time.Duration
	tasks []*Task
}

// NewScheduler creates a scheduler whose ticks last dt.
func NewScheduler(dt time.Duration) *Scheduler {
	return &Scheduler{dt: dt}
}

// Every registers fn to run once per interval, first after one interval.
// Intervals shorter than a tick run every tick.
func (s *Scheduler) Every(interval time.Duration, fn func()) *Task {
	n := 1
	if s.dt > 0 {
		n = max(1, int(math.Round(float64(interval)/float64(s.dt))))
	}
	t := &Task{every: n, left: n, fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

// Advance counts one tick down on every task and runs those that are due.
// Tasks registered by a running task start counting on the next Advance.
func (s *Scheduler) Advance() {
	due := s.tasks
	s.tasks = nil
	live := make([]*Task, 0, len(due))
	for _, t := range due {
		if t.cancelled {
			continue
		}
		t.left--
		if t.left <= 0 {
			t.left = t.every
			t.fn()
		}
		if !t.cancelled {
			live = append(live, t)
		}
	}
	s.tasks = append(live, s.tasks...)
}

// CancelAll cancels and drops every task.
func (s *Scheduler) CancelAll() {
	for _, t := range s.tasks {
		t.cancelled = true
	}
	s.tasks = nil
}

// Len returns the number of live tasks.
func (s *Scheduler) Len() int {
	n := 0
	for _, t := range s.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

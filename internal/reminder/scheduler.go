// Package reminder keeps one pending timer per task that fires a
// notification a fixed lead ahead of the task's due moment.
package reminder

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"myday/internal/planner"
)

const (
	DefaultLead = 5 * time.Minute
	Title       = "Rappel de tâche"
)

// Notifier emits a user-visible notification.
type Notifier interface {
	Notify(title, body string) error
}

// Timer is the cancellation handle of an armed callback.
type Timer interface {
	Stop() bool
}

// Clock abstracts time so tests can fire timers by hand.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type entry struct {
	timer  Timer
	fireAt time.Time
	task   planner.Task
}

type Option func(*Scheduler)

func WithClock(c Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

func WithLead(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.lead = d
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// OnFire registers a hook run after the notifier for every fired reminder.
func OnFire(f func(planner.Task)) Option {
	return func(s *Scheduler) { s.onFire = f }
}

// Scheduler maps task ids to pending timers. Timers fire on their own
// goroutines, so the table is guarded by mu.
type Scheduler struct {
	mu       sync.Mutex
	entries  map[string]*entry
	clock    Clock
	lead     time.Duration
	notifier Notifier
	logger   *log.Logger
	onFire   func(planner.Task)
}

func New(notifier Notifier, opts ...Option) *Scheduler {
	s := &Scheduler{
		entries:  map[string]*entry{},
		clock:    systemClock{},
		lead:     DefaultLead,
		notifier: notifier,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "reminder")
	return s
}

func (s *Scheduler) Lead() time.Duration {
	return s.lead
}

// Schedule drops any pending timer for the task, then arms a new one if the
// task is incomplete and its reminder instant is still ahead.
func (s *Scheduler) Schedule(task planner.Task) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked(task.ID)
	if task.Completed {
		return false
	}
	fireAt := task.Due.Add(-s.lead)
	delay := fireAt.Sub(s.clock.Now())
	if delay <= 0 {
		return false
	}

	e := &entry{fireAt: fireAt, task: task}
	e.timer = s.clock.AfterFunc(delay, func() { s.fire(task.ID, e) })
	s.entries[task.ID] = e
	s.logger.Debug("reminder armed", "task", task.ID, "fire_at", fireAt.Format(time.RFC3339))
	return true
}

// Cancel stops the pending timer for id, if any.
func (s *Scheduler) Cancel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(id)
}

// ScheduleAll rebuilds the table after a restart and returns how many
// timers were armed.
func (s *Scheduler) ScheduleAll(tasks []planner.Task) int {
	armed := 0
	for _, t := range tasks {
		if s.Schedule(t) {
			armed++
		}
	}
	s.logger.Info("reminders rebuilt", "tasks", len(tasks), "armed", armed)
	return armed
}

// Pending reports the fire instant of the armed timer for id.
func (s *Scheduler) Pending(id string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return time.Time{}, false
	}
	return e.fireAt, true
}

func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Stop cancels every pending timer.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.entries {
		s.cancelLocked(id)
	}
}

func (s *Scheduler) cancelLocked(id string) {
	e, ok := s.entries[id]
	if !ok {
		return
	}
	e.timer.Stop()
	delete(s.entries, id)
}

func (s *Scheduler) fire(id string, e *entry) {
	s.mu.Lock()
	// A cancel or re-arm may have replaced this entry after the timer
	// elapsed but before we got the lock.
	if s.entries[id] != e {
		s.mu.Unlock()
		return
	}
	delete(s.entries, id)
	s.mu.Unlock()

	if s.notifier != nil {
		if err := s.notifier.Notify(Title, Body(e.task)); err != nil {
			s.logger.Warn("notification failed", "task", id, "err", err)
		}
	}
	s.logger.Info("reminder fired", "task", id)
	if s.onFire != nil {
		s.onFire(e.task)
	}
}

// Body formats the notification text for a task.
func Body(t planner.Task) string {
	return fmt.Sprintf("%s à %s", t.Name, t.Due.Local().Format("15:04"))
}

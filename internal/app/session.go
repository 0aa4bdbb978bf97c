// Package app is the interaction layer: every user action goes through a
// Session, which applies it to the repository and keeps reminders in step.
package app

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"myday/internal/planner"
)

// Store is the durable side of a session.
type Store interface {
	planner.Saver
	Load() (planner.State, error)
	Reset() error
}

// Reminders is the scheduler surface the session drives.
type Reminders interface {
	Schedule(planner.Task) bool
	Cancel(id string)
	ScheduleAll([]planner.Task) int
	Stop()
}

type Session struct {
	repo      *planner.Repository
	store     Store
	reminders Reminders
	logger    *log.Logger
	repoOpts  []planner.Option
}

// NewSession loads the stored state and builds the repository over it.
func NewSession(store Store, reminders Reminders, logger *log.Logger, opts ...planner.Option) (*Session, error) {
	state, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Session{
		repo:      planner.NewRepository(state, store, opts...),
		store:     store,
		reminders: reminders,
		logger:    logger.With("component", "session"),
		repoOpts:  opts,
	}, nil
}

// Start re-arms reminders for the loaded tasks. Timers do not outlive the
// process, so this runs on every launch.
func (s *Session) Start() {
	s.reminders.ScheduleAll(s.repo.Tasks())
}

func (s *Session) Close() {
	s.reminders.Stop()
}

func (s *Session) State() planner.State {
	return s.repo.Snapshot()
}

func (s *Session) NeedsName() bool {
	return s.repo.UserName() == ""
}

func (s *Session) FindTask(id string) (planner.Task, bool) {
	return s.repo.FindTask(id)
}

func (s *Session) FindGoal(id string) (planner.Goal, bool) {
	return s.repo.FindGoal(id)
}

func (s *Session) AddTask(in planner.TaskInput) (planner.Task, error) {
	t, err := s.repo.CreateTask(in)
	if t.ID == "" {
		return t, err
	}
	s.reminders.Schedule(t)
	s.logger.Info("task created", "task", t.ID, "category", t.Category)
	return t, err
}

// EditTask applies the patch and re-evaluates the reminder from scratch.
func (s *Session) EditTask(id string, p planner.TaskPatch) (planner.Task, bool, error) {
	t, found, err := s.repo.UpdateTask(id, p)
	if !found || t.ID == "" {
		return t, found, err
	}
	s.reminders.Schedule(t)
	s.logger.Info("task updated", "task", id)
	return t, found, err
}

// ToggleTask flips completion; completing cancels the reminder, reopening
// re-arms it when still ahead.
func (s *Session) ToggleTask(id string) (planner.Task, bool, error) {
	t, found, err := s.repo.ToggleTask(id)
	if !found {
		return t, false, err
	}
	if t.Completed {
		s.reminders.Cancel(id)
	} else {
		s.reminders.Schedule(t)
	}
	s.logger.Info("task toggled", "task", id, "completed", t.Completed)
	return t, true, err
}

func (s *Session) DeleteTask(id string) (bool, error) {
	s.reminders.Cancel(id)
	ok, err := s.repo.DeleteTask(id)
	if ok {
		s.logger.Info("task deleted", "task", id)
	}
	return ok, err
}

func (s *Session) AddGoal(in planner.GoalInput) (planner.Goal, error) {
	g, err := s.repo.CreateGoal(in)
	if g.ID != "" {
		s.logger.Info("goal created", "goal", g.ID)
	}
	return g, err
}

func (s *Session) EditGoal(id string, p planner.GoalPatch) (planner.Goal, bool, error) {
	g, found, err := s.repo.UpdateGoal(id, p)
	if found && g.ID != "" {
		s.logger.Info("goal updated", "goal", id, "progress", g.Progress)
	}
	return g, found, err
}

func (s *Session) DeleteGoal(id string) (bool, error) {
	ok, err := s.repo.DeleteGoal(id)
	if ok {
		s.logger.Info("goal deleted", "goal", id)
	}
	return ok, err
}

func (s *Session) SetUserName(name string) error {
	return s.repo.SetUserName(name)
}

func (s *Session) ToggleTheme() (planner.Theme, error) {
	return s.repo.ToggleTheme()
}

// Reset clears all stored slots, drops every reminder and starts over from
// the defaults, as a fresh launch would. Reminders stay armed when the store
// cannot be cleared.
func (s *Session) Reset() error {
	if err := s.store.Reset(); err != nil {
		s.logger.Error("reset failed", "err", err)
		return fmt.Errorf("reset store: %w", err)
	}
	s.reminders.Stop()
	state, err := s.store.Load()
	if err != nil {
		s.repo = planner.NewRepository(planner.DefaultState(), s.store, s.repoOpts...)
		return fmt.Errorf("reload state: %w", err)
	}
	s.repo = planner.NewRepository(state, s.store, s.repoOpts...)
	s.logger.Info("session reset")
	return nil
}

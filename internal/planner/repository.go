package planner

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrRejected marks input that failed validation. Nothing was changed or
// persisted when an operation returns it.
var ErrRejected = errors.New("rejected")

func rejectf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrRejected, fmt.Sprintf(format, args...))
}

// Saver mirrors the whole state to durable storage.
type Saver interface {
	Save(State) error
}

type TaskInput struct {
	Name        string
	Category    Category
	Due         time.Time
	Priority    Priority
	Description string
}

// TaskPatch carries the fields to change; nil fields keep their value.
type TaskPatch struct {
	Name        *string
	Category    *Category
	Due         *time.Time
	Priority    *Priority
	Description *string
}

type GoalInput struct {
	Name        string
	Progress    int
	DueDate     Date
	Description string
}

type GoalPatch struct {
	Name        *string
	Progress    *int
	DueDate     *Date
	Description *string
}

type Option func(*Repository)

// WithClock replaces time.Now for id assignment.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// Repository owns the in-memory task and goal collections. Every successful
// mutation is followed by a wholesale Save of the state.
type Repository struct {
	state  State
	saver  Saver
	now    func() time.Time
	lastID int64
}

func NewRepository(state State, saver Saver, opts ...Option) *Repository {
	if !state.Theme.Valid() {
		state.Theme = ThemeDark
	}
	r := &Repository{
		state: state.clone(),
		saver: saver,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	for i := range r.state.Goals {
		r.state.Goals[i].Progress = ClampProgress(r.state.Goals[i].Progress)
	}
	r.lastID = r.highestID()
	return r
}

// Snapshot returns a copy that callers may read freely.
func (r *Repository) Snapshot() State {
	return r.state.clone()
}

func (r *Repository) Tasks() []Task {
	return append([]Task(nil), r.state.Tasks...)
}

func (r *Repository) Goals() []Goal {
	return append([]Goal(nil), r.state.Goals...)
}

func (r *Repository) CreateTask(in TaskInput) (Task, error) {
	t := Task{
		Name:        strings.TrimSpace(in.Name),
		Category:    in.Category,
		Due:         in.Due,
		Priority:    in.Priority,
		Description: strings.TrimSpace(in.Description),
	}
	if err := validateTask(t); err != nil {
		return Task{}, err
	}
	t.ID = r.nextID()
	r.state.Tasks = append(r.state.Tasks, t)
	return t, r.persist()
}

func (r *Repository) UpdateTask(id string, p TaskPatch) (Task, bool, error) {
	idx := r.taskIndex(id)
	if idx < 0 {
		return Task{}, false, nil
	}
	t := r.state.Tasks[idx]
	if p.Name != nil {
		t.Name = strings.TrimSpace(*p.Name)
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Due != nil {
		t.Due = *p.Due
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Description != nil {
		t.Description = strings.TrimSpace(*p.Description)
	}
	if err := validateTask(t); err != nil {
		return Task{}, true, err
	}
	r.state.Tasks[idx] = t
	return t, true, r.persist()
}

func (r *Repository) DeleteTask(id string) (bool, error) {
	idx := r.taskIndex(id)
	if idx < 0 {
		return false, nil
	}
	r.state.Tasks = append(r.state.Tasks[:idx], r.state.Tasks[idx+1:]...)
	return true, r.persist()
}

func (r *Repository) FindTask(id string) (Task, bool) {
	idx := r.taskIndex(id)
	if idx < 0 {
		return Task{}, false
	}
	return r.state.Tasks[idx], true
}

func (r *Repository) ToggleTask(id string) (Task, bool, error) {
	idx := r.taskIndex(id)
	if idx < 0 {
		return Task{}, false, nil
	}
	r.state.Tasks[idx].Completed = !r.state.Tasks[idx].Completed
	return r.state.Tasks[idx], true, r.persist()
}

func (r *Repository) CreateGoal(in GoalInput) (Goal, error) {
	g := Goal{
		Name:        strings.TrimSpace(in.Name),
		Progress:    ClampProgress(in.Progress),
		DueDate:     in.DueDate,
		Description: strings.TrimSpace(in.Description),
	}
	if g.Name == "" {
		return Goal{}, rejectf("goal name is empty")
	}
	g.ID = r.nextID()
	r.state.Goals = append(r.state.Goals, g)
	return g, r.persist()
}

func (r *Repository) UpdateGoal(id string, p GoalPatch) (Goal, bool, error) {
	idx := r.goalIndex(id)
	if idx < 0 {
		return Goal{}, false, nil
	}
	g := r.state.Goals[idx]
	if p.Name != nil {
		g.Name = strings.TrimSpace(*p.Name)
	}
	if p.Progress != nil {
		g.Progress = ClampProgress(*p.Progress)
	}
	if p.DueDate != nil {
		g.DueDate = *p.DueDate
	}
	if p.Description != nil {
		g.Description = strings.TrimSpace(*p.Description)
	}
	if g.Name == "" {
		return Goal{}, true, rejectf("goal name is empty")
	}
	r.state.Goals[idx] = g
	return g, true, r.persist()
}

func (r *Repository) DeleteGoal(id string) (bool, error) {
	idx := r.goalIndex(id)
	if idx < 0 {
		return false, nil
	}
	r.state.Goals = append(r.state.Goals[:idx], r.state.Goals[idx+1:]...)
	return true, r.persist()
}

func (r *Repository) FindGoal(id string) (Goal, bool) {
	idx := r.goalIndex(id)
	if idx < 0 {
		return Goal{}, false
	}
	return r.state.Goals[idx], true
}

func (r *Repository) UserName() string {
	return r.state.UserName
}

func (r *Repository) SetUserName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return rejectf("name is empty")
	}
	r.state.UserName = name
	return r.persist()
}

func (r *Repository) Theme() Theme {
	return r.state.Theme
}

func (r *Repository) SetTheme(t Theme) error {
	if !t.Valid() {
		return rejectf("unknown theme %q", t)
	}
	r.state.Theme = t
	return r.persist()
}

func (r *Repository) ToggleTheme() (Theme, error) {
	next := r.state.Theme.Toggle()
	return next, r.SetTheme(next)
}

func (r *Repository) persist() error {
	if r.saver == nil {
		return nil
	}
	if err := r.saver.Save(r.state.clone()); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

func (r *Repository) taskIndex(id string) int {
	for i, t := range r.state.Tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (r *Repository) goalIndex(id string) int {
	for i, g := range r.state.Goals {
		if g.ID == id {
			return i
		}
	}
	return -1
}

// nextID derives an id from the clock in milliseconds, bumped past the last
// issued or loaded id so two records created in the same millisecond differ.
func (r *Repository) nextID() string {
	id := r.now().UnixMilli()
	if id <= r.lastID {
		id = r.lastID + 1
	}
	r.lastID = id
	return strconv.FormatInt(id, 10)
}

func (r *Repository) highestID() int64 {
	var highest int64
	check := func(id string) {
		if n, err := strconv.ParseInt(id, 10, 64); err == nil && n > highest {
			highest = n
		}
	}
	for _, t := range r.state.Tasks {
		check(t.ID)
	}
	for _, g := range r.state.Goals {
		check(g.ID)
	}
	return highest
}

func validateTask(t Task) error {
	if t.Name == "" {
		return rejectf("task name is empty")
	}
	if !t.Category.Valid() {
		return rejectf("unknown category %q", t.Category)
	}
	if t.Due.IsZero() {
		return rejectf("task due time is missing")
	}
	if !t.Priority.Valid() {
		return rejectf("unknown priority %q", t.Priority)
	}
	return nil
}

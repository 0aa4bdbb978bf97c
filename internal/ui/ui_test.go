package ui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"myday/internal/app"
	"myday/internal/config"
	"myday/internal/notify"
	"myday/internal/planner"
	"myday/internal/reminder"
	"myday/internal/storage"
)

type fixture struct {
	session *app.Session
	sched   *reminder.Scheduler
	cfg     config.Config
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "myday.db"), nil)
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	sched := reminder.New(notify.Nop{})
	session, err := app.NewSession(store, sched, nil)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	t.Cleanup(session.Close)

	cfg, err := config.LoadOrCreate(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("LoadOrCreate: %v", err)
	}
	return fixture{session: session, sched: sched, cfg: cfg}
}

func (f fixture) named(t *testing.T) fixture {
	t.Helper()
	if err := f.session.SetUserName("Ana"); err != nil {
		t.Fatalf("SetUserName: %v", err)
	}
	return f
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m
}

func futureDue(d time.Duration) time.Time {
	return time.Now().Add(d).Truncate(time.Minute)
}

func TestNamePromptOnFirstLaunch(t *testing.T) {
	f := newFixture(t)
	m := New(f.session, f.cfg, nil)
	if m.mode != modeName {
		t.Fatalf("mode: got %v, want name prompt", m.mode)
	}

	m = press(m, "enter")
	if m.mode != modeName {
		t.Fatal("blank name should keep the prompt open")
	}

	m = press(m, "Ana", "enter")
	if m.mode != modeBrowse {
		t.Fatalf("mode after name: got %v", m.mode)
	}
	if got := f.session.State().UserName; got != "Ana" {
		t.Errorf("user name: got %q", got)
	}
	if !strings.Contains(m.View(), "Bonjour, Ana") {
		t.Error("dashboard should greet the user")
	}
}

func TestAddTaskThroughForm(t *testing.T) {
	f := newFixture(t).named(t)
	m := New(f.session, f.cfg, nil)

	due := futureDue(48 * time.Hour)
	m = press(m, "2", "a")
	if m.mode != modeForm || m.form.kind != formTask {
		t.Fatalf("expected task form, got mode %v", m.mode)
	}
	m = press(m,
		"Run", "enter",
		"3", "enter",
		due.Format("2006-01-02 15:04"), "enter",
		"high", "enter",
		"5km", "enter",
	)
	if m.mode != modeBrowse {
		t.Fatalf("form still open: %s", m.status)
	}

	tasks := f.session.State().Tasks
	if len(tasks) != 1 {
		t.Fatalf("tasks: got %d, want 1", len(tasks))
	}
	got := tasks[0]
	if got.Name != "Run" || got.Category != planner.CategoryWorkout || got.Priority != planner.PriorityHigh || got.Description != "5km" {
		t.Errorf("task: %+v", got)
	}
	if !got.Due.Equal(due) {
		t.Errorf("due: got %v, want %v", got.Due, due)
	}
	if _, ok := f.sched.Pending(got.ID); !ok {
		t.Error("new task should have a reminder")
	}
}

func TestIncompleteTaskFormStaysOpen(t *testing.T) {
	f := newFixture(t).named(t)
	m := New(f.session, f.cfg, nil)

	m = press(m, "2", "a", "enter", "enter", "enter", "enter", "enter")
	if m.mode != modeForm {
		t.Fatal("rejected form should stay open")
	}
	if m.form.index != 0 {
		t.Errorf("focus: got field %d, want 0", m.form.index)
	}
	if len(f.session.State().Tasks) != 0 {
		t.Error("rejected form created a task")
	}

	m = press(m, "esc")
	if m.mode != modeBrowse || m.form != nil {
		t.Error("esc should close the form")
	}
}

func TestBadCategoryKeepsField(t *testing.T) {
	f := newFixture(t).named(t)
	m := New(f.session, f.cfg, nil)

	m = press(m, "2", "a", "Run", "enter", "Yoga", "enter", "2030-01-01 08:00", "enter", "enter", "enter")
	if m.mode != modeForm || m.form.index != 1 {
		t.Fatalf("expected category field, got mode %v field %d", m.mode, m.form.index)
	}
	if !strings.Contains(m.status, "Catégorie inconnue") {
		t.Errorf("status: %q", m.status)
	}
}

func TestToggleAndDeleteConfirm(t *testing.T) {
	f := newFixture(t).named(t)
	task, err := f.session.AddTask(planner.TaskInput{
		Name:     "Read",
		Category: planner.CategoryReading,
		Due:      futureDue(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	m := New(f.session, f.cfg, nil)

	m = press(m, "2", " ")
	got, _ := f.session.FindTask(task.ID)
	if !got.Completed {
		t.Fatal("space should complete the selected task")
	}
	if _, ok := f.sched.Pending(task.ID); ok {
		t.Error("completed task kept its reminder")
	}

	m = press(m, "d")
	if m.mode != modeConfirmDelete {
		t.Fatalf("mode: got %v, want delete confirm", m.mode)
	}
	m = press(m, "n")
	if _, ok := f.session.FindTask(task.ID); !ok {
		t.Fatal("declined delete removed the task")
	}

	m = press(m, "d", "y")
	if _, ok := f.session.FindTask(task.ID); ok {
		t.Error("confirmed delete left the task")
	}
	if m.mode != modeBrowse {
		t.Errorf("mode after delete: %v", m.mode)
	}
}

func TestEditGoalProgress(t *testing.T) {
	f := newFixture(t).named(t)
	g, err := f.session.AddGoal(planner.GoalInput{Name: "Read 12 books"})
	if err != nil {
		t.Fatalf("AddGoal: %v", err)
	}
	m := New(f.session, f.cfg, nil)

	m = press(m, "3", "e", "tab")
	if m.form == nil || m.form.editID != g.ID {
		t.Fatal("edit should open the goal form")
	}
	m.input.SetValue("")
	m = press(m, "100", "enter", "enter", "enter")
	if m.mode != modeBrowse {
		t.Fatalf("form still open: %s", m.status)
	}
	got, _ := f.session.FindGoal(g.ID)
	if !got.Achieved() {
		t.Errorf("progress: got %d", got.Progress)
	}
}

func TestReminderMessageShowsInStatus(t *testing.T) {
	f := newFixture(t).named(t)
	feed := make(chan planner.Task, 1)
	m := New(f.session, f.cfg, feed)

	task := planner.Task{Name: "Run", Due: time.Date(2026, 3, 10, 9, 30, 0, 0, time.Local)}
	next, cmd := m.Update(reminderMsg{task: task})
	m = next.(Model)
	if !strings.Contains(m.status, reminder.Body(task)) {
		t.Errorf("status: %q", m.status)
	}
	if cmd == nil {
		t.Fatal("reminder handling should keep listening")
	}

	feed <- task
	msg := cmd()
	if rm, ok := msg.(reminderMsg); !ok || rm.task.Name != "Run" {
		t.Errorf("next message: %#v", msg)
	}
}

func TestThemeToggle(t *testing.T) {
	f := newFixture(t).named(t)
	m := New(f.session, f.cfg, nil)

	m = press(m, "t")
	if f.session.State().Theme != planner.ThemeLight || m.theme != planner.ThemeLight {
		t.Errorf("theme: session %s, model %s", f.session.State().Theme, m.theme)
	}
	m = press(m, "t")
	if f.session.State().Theme != planner.ThemeDark {
		t.Errorf("theme after second toggle: %s", f.session.State().Theme)
	}
}

func TestResetFromProfile(t *testing.T) {
	f := newFixture(t).named(t)
	f.session.AddTask(planner.TaskInput{Name: "Run", Category: planner.CategoryWorkout, Due: futureDue(time.Hour)})
	m := New(f.session, f.cfg, nil)

	m = press(m, "R")
	if m.mode != modeBrowse {
		t.Fatal("reset is only offered on the profile")
	}

	m = press(m, "4", "R", "n")
	if len(f.session.State().Tasks) != 1 {
		t.Fatal("declined reset cleared data")
	}

	m = press(m, "R", "y")
	if m.mode != modeName {
		t.Errorf("mode after reset: got %v, want name prompt", m.mode)
	}
	if st := f.session.State(); len(st.Tasks) != 0 || st.UserName != "" {
		t.Errorf("state after reset: %+v", st)
	}
	if f.sched.Len() != 0 {
		t.Error("reset left reminders armed")
	}
}

func TestSectionNavigation(t *testing.T) {
	f := newFixture(t).named(t)
	m := New(f.session, f.cfg, nil)
	if m.section != sectionDashboard {
		t.Fatalf("start section: %v", m.section)
	}
	m = press(m, "tab", "tab")
	if m.section != sectionGoals {
		t.Errorf("after two tabs: %v", m.section)
	}
	m = press(m, "tab", "tab")
	if m.section != sectionDashboard {
		t.Errorf("tab should wrap: %v", m.section)
	}
}

func TestParseCategoryInput(t *testing.T) {
	tests := []struct {
		in   string
		want planner.Category
		ok   bool
	}{
		{"1", planner.Categories()[0], true},
		{"7", planner.Categories()[6], true},
		{"8", "", false},
		{"lecture", planner.CategoryReading, true},
		{"Yoga", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseCategoryInput(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Errorf("got %q %v, want %q %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

package storage

import (
	"path/filepath"
	"testing"
	"time"

	"myday/internal/planner"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "myday.db"), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenEmptyPath(t *testing.T) {
	if _, err := Open("", nil); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestLoadDefaults(t *testing.T) {
	s := openTestStore(t)
	state, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if state.UserName != "" {
		t.Errorf("user name: got %q, want empty", state.UserName)
	}
	if state.Theme != planner.ThemeDark {
		t.Errorf("theme: got %q, want dark", state.Theme)
	}
	if len(state.Tasks) != 0 || len(state.Goals) != 0 {
		t.Errorf("expected empty collections, got %d tasks %d goals", len(state.Tasks), len(state.Goals))
	}
}

func TestSaveAndLoad(t *testing.T) {
	s := openTestStore(t)
	due := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	in := planner.State{
		UserName: "Ana",
		Theme:    planner.ThemeLight,
		Tasks: []planner.Task{
			{ID: "1", Name: "Run", Category: planner.CategoryWorkout, Due: due, Priority: planner.PriorityHigh, Completed: true},
		},
		Goals: []planner.Goal{
			{ID: "2", Name: "Read 12 books", Progress: 40, DueDate: planner.NewDate(2026, time.December, 31)},
		},
	}
	if err := s.Save(in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.UserName != "Ana" || got.Theme != planner.ThemeLight {
		t.Errorf("scalars: got %q %q", got.UserName, got.Theme)
	}
	if len(got.Tasks) != 1 || !got.Tasks[0].Due.Equal(due) || !got.Tasks[0].Completed {
		t.Errorf("tasks: got %+v", got.Tasks)
	}
	if len(got.Goals) != 1 || got.Goals[0].Progress != 40 || got.Goals[0].DueDate.String() != "2026-12-31" {
		t.Errorf("goals: got %+v", got.Goals)
	}
}

func TestSaveOverwritesWholesale(t *testing.T) {
	s := openTestStore(t)
	first := planner.State{Theme: planner.ThemeDark, Tasks: []planner.Task{{ID: "1", Name: "a"}}}
	if err := s.Save(first); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(planner.State{Theme: planner.ThemeDark}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, _ := s.Load()
	if len(got.Tasks) != 0 {
		t.Errorf("tasks: got %d, want 0", len(got.Tasks))
	}
}

func TestLoadMalformedSlots(t *testing.T) {
	s := openTestStore(t)
	for key, value := range map[string]string{
		SlotTheme: "purple",
		SlotTasks: "{not json",
		SlotGoals: `[{"id":"1","name":"x","progress":180}]`,
	} {
		if err := s.writeSlot(key, value); err != nil {
			t.Fatalf("writeSlot %s: %v", key, err)
		}
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Theme != planner.ThemeDark {
		t.Errorf("theme: got %q, want dark", got.Theme)
	}
	if len(got.Tasks) != 0 {
		t.Errorf("tasks: got %d, want 0", len(got.Tasks))
	}
	if len(got.Goals) != 1 || got.Goals[0].Progress != 100 {
		t.Errorf("goals: got %+v", got.Goals)
	}
	raw, err := s.readSlots()
	if err != nil {
		t.Fatalf("readSlots: %v", err)
	}
	if raw[UnreadableKey(SlotTasks)] != "{not json" {
		t.Errorf("unreadable tasks not kept: %q", raw[UnreadableKey(SlotTasks)])
	}
	if _, ok := raw[UnreadableKey(SlotGoals)]; ok {
		t.Error("readable goals should not be copied aside")
	}
}

func TestLoadSkipsBadRecordAndKeepsRaw(t *testing.T) {
	s := openTestStore(t)
	stored := `[{"id":"1","name":"Run","category":"Musculation","datetime":"2026-03-10T09:00:00Z","priority":"","description":"","completed":false},` +
		`{"id":"2","name":"Read","category":"Lecture","datetime":"","priority":"","description":"","completed":false}]`
	if err := s.writeSlot(SlotTasks, stored); err != nil {
		t.Fatalf("writeSlot: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Tasks) != 1 || got.Tasks[0].ID != "1" {
		t.Fatalf("tasks: got %+v, want only id 1", got.Tasks)
	}

	if err := s.Save(got); err != nil {
		t.Fatalf("Save: %v", err)
	}
	raw, err := s.readSlots()
	if err != nil {
		t.Fatalf("readSlots: %v", err)
	}
	if raw[UnreadableKey(SlotTasks)] != stored {
		t.Errorf("raw tasks lost after save: %q", raw[UnreadableKey(SlotTasks)])
	}

	if err := s.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	raw, _ = s.readSlots()
	if len(raw) != 0 {
		t.Errorf("slots left after reset: %v", raw)
	}
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	if err := s.Save(planner.State{UserName: "Ana", Theme: planner.ThemeLight, Goals: []planner.Goal{{ID: "1", Name: "x"}}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	raw, err := s.readSlots()
	if err != nil {
		t.Fatalf("readSlots: %v", err)
	}
	if len(raw) != 0 {
		t.Errorf("slots left after reset: %v", raw)
	}
	got, _ := s.Load()
	if got.UserName != "" || got.Theme != planner.ThemeDark || len(got.Goals) != 0 {
		t.Errorf("after reset: %+v", got)
	}
}

func TestSqliteDSN(t *testing.T) {
	if got := sqliteDSN("file:memdb?mode=memory"); got != "file:memdb?mode=memory" {
		t.Errorf("file: prefix should pass through, got %q", got)
	}
	dsn := sqliteDSN(filepath.Join(t.TempDir(), "x.db"))
	if dsn[:5] != "file:" {
		t.Errorf("dsn should use file scheme: %q", dsn)
	}
}

// Package planner holds the task and goal records and the repository that
// owns them for the lifetime of a session.
package planner

import (
	"strings"
	"time"
)

type Category string

const (
	CategoryLunch    Category = "Déjeuner"
	CategoryHygiene  Category = "Hygiène"
	CategoryWorkout  Category = "Musculation"
	CategoryReading  Category = "Lecture"
	CategoryBusiness Category = "Business"
	CategoryChores   Category = "Ménage"
	CategorySleep    Category = "Sommeil"
)

// Categories returns the fixed category set in display order.
func Categories() []Category {
	return []Category{
		CategoryLunch,
		CategoryHygiene,
		CategoryWorkout,
		CategoryReading,
		CategoryBusiness,
		CategoryChores,
		CategorySleep,
	}
}

func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory matches case-insensitively, with or without accents typed.
func ParseCategory(v string) (Category, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	for _, c := range Categories() {
		if strings.EqualFold(string(c), v) || strings.EqualFold(foldAccents(string(c)), foldAccents(v)) {
			return c, true
		}
	}
	return "", false
}

func foldAccents(s string) string {
	return strings.NewReplacer("é", "e", "è", "e", "É", "E", "ê", "e").Replace(s)
}

type Priority string

const (
	PriorityNone   Priority = ""
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityNone, PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func ParsePriority(v string) (Priority, bool) {
	p := Priority(strings.ToLower(strings.TrimSpace(v)))
	return p, p.Valid()
}

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

func (t Theme) Valid() bool {
	return t == ThemeDark || t == ThemeLight
}

func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

type Task struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    Category  `json:"category"`
	Due         time.Time `json:"datetime"`
	Priority    Priority  `json:"priority"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
}

const (
	MinProgress = 0
	MaxProgress = 100
)

type Goal struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Progress    int    `json:"progress"`
	DueDate     Date   `json:"dueDate"`
	Description string `json:"description"`
}

// Achieved reports whether the goal reached full progress.
func (g Goal) Achieved() bool {
	return g.Progress >= MaxProgress
}

func ClampProgress(p int) int {
	if p < MinProgress {
		return MinProgress
	}
	if p > MaxProgress {
		return MaxProgress
	}
	return p
}

// State is everything persisted between sessions.
type State struct {
	UserName string
	Theme    Theme
	Tasks    []Task
	Goals    []Goal
}

func DefaultState() State {
	return State{Theme: ThemeDark}
}

func (s State) clone() State {
	out := s
	out.Tasks = append([]Task(nil), s.Tasks...)
	out.Goals = append([]Goal(nil), s.Goals...)
	return out
}

// due input layouts accepted by ParseDue, tried in order.
var dueLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ParseDue reads a due moment. Zone-less inputs are taken in loc.
func ParseDue(v string, loc *time.Location) (time.Time, error) {
	v = strings.TrimSpace(v)
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	if loc == nil {
		loc = time.Local
	}
	var firstErr error
	for _, layout := range dueLayouts {
		t, err := time.ParseInLocation(layout, v, loc)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

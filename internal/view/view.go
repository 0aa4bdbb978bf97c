// Package view derives what each screen shows from the planner state. Every
// function here is pure; the ui package only draws the results.
package view

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"myday/internal/planner"
)

const UpcomingLimit = 3

type Stat struct {
	Label string
	Value string
}

type Dashboard struct {
	Greeting string
	Date     string
	Stats    []Stat
	Upcoming []planner.Task
}

type TimelineGroup struct {
	Category  planner.Category
	Tasks     []planner.Task
	Completed int
}

// Ratio is the completed share of the group, in [0,1].
func (g TimelineGroup) Ratio() float64 {
	if len(g.Tasks) == 0 {
		return 0
	}
	return float64(g.Completed) / float64(len(g.Tasks))
}

type GoalCard struct {
	Goal     planner.Goal
	Progress int
	Achieved bool
	Due      string
}

type CategoryCount struct {
	Category planner.Category
	Count    int
}

type Profile struct {
	Greeting   string
	Stats      []Stat
	Categories []CategoryCount
}

func Greeting(name string) string {
	return "Bonjour, " + name
}

func BuildDashboard(s planner.State, now time.Time) Dashboard {
	total, done := countTasks(s.Tasks)
	today := 0
	for _, t := range s.Tasks {
		if !t.Completed && sameDay(t.Due.In(now.Location()), now) {
			today++
		}
	}
	goalsDone := countAchieved(s.Goals)
	return Dashboard{
		Greeting: Greeting(s.UserName),
		Date:     LongDate(now),
		Stats: []Stat{
			{Label: "Tâches totales", Value: fmt.Sprint(total)},
			{Label: "Tâches terminées", Value: fmt.Sprint(done)},
			{Label: "Tâches aujourd'hui", Value: fmt.Sprint(today)},
			{Label: "Objectifs", Value: fmt.Sprintf("%d/%d", goalsDone, len(s.Goals))},
		},
		Upcoming: Upcoming(s.Tasks, UpcomingLimit),
	}
}

// Upcoming returns up to limit incomplete tasks, soonest first.
func Upcoming(tasks []planner.Task, limit int) []planner.Task {
	var open []planner.Task
	for _, t := range tasks {
		if !t.Completed {
			open = append(open, t)
		}
	}
	sortByDue(open)
	if len(open) > limit {
		open = open[:limit]
	}
	return open
}

// Timeline groups tasks per category in the fixed category order, skipping
// empty groups. Categories outside the fixed set follow, by name.
func Timeline(tasks []planner.Task) []TimelineGroup {
	byCat := map[planner.Category][]planner.Task{}
	var extra []planner.Category
	for _, t := range tasks {
		if _, seen := byCat[t.Category]; !seen && !t.Category.Valid() {
			extra = append(extra, t.Category)
		}
		byCat[t.Category] = append(byCat[t.Category], t)
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })

	var groups []TimelineGroup
	for _, c := range append(planner.Categories(), extra...) {
		list := byCat[c]
		if len(list) == 0 {
			continue
		}
		sortByDue(list)
		g := TimelineGroup{Category: c, Tasks: list}
		for _, t := range list {
			if t.Completed {
				g.Completed++
			}
		}
		groups = append(groups, g)
	}
	return groups
}

func GoalCards(goals []planner.Goal) []GoalCard {
	cards := make([]GoalCard, 0, len(goals))
	for _, g := range goals {
		card := GoalCard{
			Goal:     g,
			Progress: planner.ClampProgress(g.Progress),
			Achieved: g.Achieved(),
		}
		if !g.DueDate.IsZero() {
			card.Due = "Échéance: " + FormatDate(g.DueDate.Time)
		}
		cards = append(cards, card)
	}
	return cards
}

func BuildProfile(s planner.State) Profile {
	total, done := countTasks(s.Tasks)
	counts := map[planner.Category]int{}
	for _, t := range s.Tasks {
		counts[t.Category]++
	}
	p := Profile{
		Greeting: Greeting(s.UserName),
		Stats: []Stat{
			{Label: "Tâches créées", Value: fmt.Sprint(total)},
			{Label: "Tâches terminées", Value: fmt.Sprint(done)},
			{Label: "Objectifs", Value: fmt.Sprint(len(s.Goals))},
			{Label: "Objectifs atteints", Value: fmt.Sprint(countAchieved(s.Goals))},
		},
	}
	for _, c := range planner.Categories() {
		p.Categories = append(p.Categories, CategoryCount{Category: c, Count: counts[c]})
	}
	return p
}

// StatValue looks a stat up by label.
func StatValue(stats []Stat, label string) (string, bool) {
	for _, s := range stats {
		if s.Label == label {
			return s.Value, true
		}
	}
	return "", false
}

func PriorityLabel(p planner.Priority) string {
	switch p {
	case planner.PriorityLow:
		return "Low"
	case planner.PriorityMedium:
		return "Medium"
	case planner.PriorityHigh:
		return "High"
	}
	return "Sans priorité"
}

var (
	frenchMonths     = [...]string{"janv.", "févr.", "mars", "avr.", "mai", "juin", "juil.", "août", "sept.", "oct.", "nov.", "déc."}
	frenchLongMonths = [...]string{"janvier", "février", "mars", "avril", "mai", "juin", "juillet", "août", "septembre", "octobre", "novembre", "décembre"}
	frenchDays       = [...]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"}
)

// FormatDateTime renders "10 mars 09:30".
func FormatDateTime(t time.Time) string {
	t = t.Local()
	return fmt.Sprintf("%d %s %s", t.Day(), frenchMonths[t.Month()-1], t.Format("15:04"))
}

// FormatDate renders "31 déc.".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d %s", t.Day(), frenchMonths[t.Month()-1])
}

// LongDate renders "mardi 10 mars 2026".
func LongDate(t time.Time) string {
	return fmt.Sprintf("%s %d %s %d", frenchDays[t.Weekday()], t.Day(), frenchLongMonths[t.Month()-1], t.Year())
}

// ProgressBar draws a fixed-width bar for a ratio in [0,1].
func ProgressBar(ratio float64, width int) string {
	if width <= 0 {
		return ""
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio*float64(width) + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func countTasks(tasks []planner.Task) (total, done int) {
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	return len(tasks), done
}

func countAchieved(goals []planner.Goal) int {
	n := 0
	for _, g := range goals {
		if g.Achieved() {
			n++
		}
	}
	return n
}

func sortByDue(tasks []planner.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Due.Before(tasks[j].Due)
	})
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

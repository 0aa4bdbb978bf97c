package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"myday/internal/app"
	"myday/internal/config"
	"myday/internal/planner"
	"myday/internal/reminder"
	"myday/internal/view"
)

type section int

const (
	sectionDashboard section = iota
	sectionTasks
	sectionGoals
	sectionProfile
	sectionCount
)

var sectionNames = [...]string{"Tableau de bord", "Tâches", "Objectifs", "Profil"}

func parseSection(v string) section {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "tasks":
		return sectionTasks
	case "goals":
		return sectionGoals
	case "profile":
		return sectionProfile
	}
	return sectionDashboard
}

type mode int

const (
	modeBrowse mode = iota
	modeName
	modeRename
	modeForm
	modeConfirmDelete
	modeConfirmReset
)

type formKind int

const (
	formTask formKind = iota
	formGoal
)

type formState struct {
	kind   formKind
	editID string
	labels []string
	values []string
	index  int
}

func (f *formState) current() string {
	return f.values[f.index]
}

func (f *formState) set(v string) {
	f.values[f.index] = v
}

type pendingDelete struct {
	kind formKind
	id   string
	name string
}

type reminderMsg struct {
	task planner.Task
}

type Model struct {
	session    *app.Session
	cfg        config.Config
	styles     styles
	theme      planner.Theme
	section    section
	mode       mode
	cursor     int
	input      textinput.Model
	form       *formState
	pendingDel *pendingDelete
	status     string
	reminders  <-chan planner.Task
	now        func() time.Time
}

// New builds the model. reminders delivers fired reminders from the
// scheduler goroutines into the update loop; it may be nil.
func New(session *app.Session, cfg config.Config, reminders <-chan planner.Task) Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40

	theme := session.State().Theme
	m := Model{
		session:   session,
		cfg:       cfg,
		styles:    newStyles(theme),
		theme:     theme,
		section:   parseSection(cfg.DefaultSection),
		mode:      modeBrowse,
		input:     ti,
		status:    "Appuyez sur 'a' pour ajouter, tab pour changer de vue.",
		reminders: reminders,
		now:       time.Now,
	}
	if session.NeedsName() {
		m.mode = modeName
		m.input.Placeholder = "Votre prénom"
		m.input.Focus()
	}
	return m
}

func Run(session *app.Session, cfg config.Config, reminders <-chan planner.Task) error {
	program := tea.NewProgram(New(session, cfg, reminders), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func waitForReminder(ch <-chan planner.Task) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		t, ok := <-ch
		if !ok {
			return nil
		}
		return reminderMsg{task: t}
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForReminder(m.reminders))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case reminderMsg:
		m.status = fmt.Sprintf("%s: %s", reminder.Title, reminder.Body(msg.task))
		return m, waitForReminder(m.reminders)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeName, modeRename:
			return m.updateNameMode(msg)
		case modeForm:
			return m.updateFormMode(msg)
		case modeConfirmDelete:
			return m.updateDeleteConfirm(msg.String())
		case modeConfirmReset:
			return m.updateResetConfirm(msg.String())
		}
		return m.updateBrowseMode(msg.String())
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
	}
	return m, nil
}

func (m Model) updateBrowseMode(key string) (tea.Model, tea.Cmd) {
	k := m.cfg.Keys
	switch key {
	case k.Quit:
		return m, tea.Quit
	case k.NextSection:
		m.section = (m.section + 1) % sectionCount
		m.cursor = 0
	case k.PrevSection:
		m.section = (m.section + sectionCount - 1) % sectionCount
		m.cursor = 0
	case "1", "2", "3", "4":
		m.section = section(key[0] - '1')
		m.cursor = 0
	case k.Down, "down":
		m.cursor = clampCursor(m.cursor+1, m.listLen())
	case k.Up, "up":
		m.cursor = clampCursor(m.cursor-1, m.listLen())
	case k.Add:
		if m.section == sectionGoals {
			return m.openForm(newGoalForm(nil))
		}
		return m.openForm(newTaskForm(nil))
	case k.Toggle:
		return m.toggleSelected()
	case k.Edit:
		return m.editSelected()
	case k.Delete:
		return m.confirmDeleteSelected()
	case k.Theme:
		theme, err := m.session.ToggleTheme()
		m.applyTheme(theme)
		if err != nil {
			m.status = fmt.Sprintf("échec de l'enregistrement: %v", err)
		} else {
			m.status = "Thème: " + string(theme)
		}
	case k.Rename:
		if m.section != sectionProfile {
			return m, nil
		}
		m.mode = modeRename
		m.input.SetValue("")
		m.input.Placeholder = "Nouveau nom"
		m.input.Focus()
		m.status = "Entrez un nouveau nom, Entrée pour valider"
	case k.Reset:
		if m.section != sectionProfile {
			return m, nil
		}
		m.mode = modeConfirmReset
		m.status = "Voulez-vous vraiment réinitialiser toutes les données ? y/n"
	}
	return m, nil
}

func (m *Model) applyTheme(theme planner.Theme) {
	m.theme = theme
	m.styles = newStyles(theme)
}

func (m Model) updateNameMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case m.cfg.Keys.Cancel:
		if m.mode == modeName {
			return m, nil
		}
		m.mode = modeBrowse
		m.input.Blur()
		m.status = "Annulé"
		return m, nil
	case m.cfg.Keys.Confirm:
		err := m.session.SetUserName(m.input.Value())
		if errors.Is(err, planner.ErrRejected) {
			m.status = "Le nom ne peut pas être vide"
			return m, nil
		}
		if err != nil {
			m.status = fmt.Sprintf("échec de l'enregistrement: %v", err)
		} else {
			m.status = view.Greeting(m.session.State().UserName)
		}
		m.mode = modeBrowse
		m.input.SetValue("")
		m.input.Blur()
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func taskFormLabels() []string {
	return []string{
		"nom",
		"catégorie (" + categoryHint() + ")",
		"échéance (YYYY-MM-DD HH:MM)",
		"priorité (low/medium/high, vide = aucune)",
		"description",
	}
}

func goalFormLabels() []string {
	return []string{"nom", "progression (0-100)", "échéance (YYYY-MM-DD, optionnelle)", "description"}
}

func categoryHint() string {
	parts := make([]string, 0, len(planner.Categories()))
	for i, c := range planner.Categories() {
		parts = append(parts, fmt.Sprintf("%d=%s", i+1, c))
	}
	return strings.Join(parts, " ")
}

func newTaskForm(t *planner.Task) *formState {
	f := &formState{kind: formTask, labels: taskFormLabels(), values: make([]string, 5)}
	if t != nil {
		f.editID = t.ID
		f.values = []string{
			t.Name,
			string(t.Category),
			t.Due.Local().Format("2006-01-02 15:04"),
			string(t.Priority),
			t.Description,
		}
	}
	return f
}

func newGoalForm(g *planner.Goal) *formState {
	f := &formState{kind: formGoal, labels: goalFormLabels(), values: []string{"", "0", "", ""}}
	if g != nil {
		f.editID = g.ID
		f.values = []string{g.Name, strconv.Itoa(g.Progress), g.DueDate.String(), g.Description}
	}
	return f
}

func (m Model) openForm(f *formState) (tea.Model, tea.Cmd) {
	m.form = f
	m.mode = modeForm
	m.input.SetValue(f.current())
	m.input.Placeholder = f.labels[f.index]
	m.input.Focus()
	m.status = m.formPrompt()
	return m, nil
}

func (m Model) updateFormMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form
	switch msg.String() {
	case m.cfg.Keys.Cancel:
		m.form = nil
		m.mode = modeBrowse
		m.input.Blur()
		m.status = "Annulé"
		return m, nil
	case "tab", "down":
		f.set(m.input.Value())
		f.index = wrapIndex(f.index+1, len(f.values))
		m.syncFormInput()
		return m, nil
	case "shift+tab", "up":
		f.set(m.input.Value())
		f.index = wrapIndex(f.index-1, len(f.values))
		m.syncFormInput()
		return m, nil
	case m.cfg.Keys.Confirm:
		f.set(m.input.Value())
		if f.index < len(f.values)-1 {
			f.index++
			m.syncFormInput()
			return m, nil
		}
		if f.kind == formGoal {
			return m.submitGoalForm()
		}
		return m.submitTaskForm()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *Model) syncFormInput() {
	m.input.SetValue(m.form.current())
	m.input.Placeholder = m.form.labels[m.form.index]
	m.status = m.formPrompt()
}

func (m Model) formPrompt() string {
	if m.form == nil {
		return ""
	}
	return fmt.Sprintf("%s (champ %d/%d). Entrée pour avancer, tab pour naviguer, Échap pour annuler.",
		m.form.labels[m.form.index], m.form.index+1, len(m.form.values))
}

// stayOnField keeps the form open at field idx with a message.
func (m Model) stayOnField(idx int, msg string) (tea.Model, tea.Cmd) {
	m.form.index = idx
	m.syncFormInput()
	m.status = msg
	return m, nil
}

func (m Model) closeForm(status string) (tea.Model, tea.Cmd) {
	m.form = nil
	m.mode = modeBrowse
	m.input.SetValue("")
	m.input.Blur()
	m.status = status
	m.cursor = clampCursor(m.cursor, m.listLen())
	return m, nil
}

func (m Model) submitTaskForm() (tea.Model, tea.Cmd) {
	v := m.form.values

	var category planner.Category
	if strings.TrimSpace(v[1]) != "" {
		c, ok := parseCategoryInput(v[1])
		if !ok {
			return m.stayOnField(1, fmt.Sprintf("Catégorie inconnue: %q", v[1]))
		}
		category = c
	}
	var due time.Time
	if strings.TrimSpace(v[2]) != "" {
		parsed, err := planner.ParseDue(v[2], time.Local)
		if err != nil {
			return m.stayOnField(2, fmt.Sprintf("Échéance invalide: %q", v[2]))
		}
		due = parsed
	}
	priority, ok := planner.ParsePriority(v[3])
	if !ok {
		return m.stayOnField(3, fmt.Sprintf("Priorité inconnue: %q", v[3]))
	}

	var err error
	status := "Tâche ajoutée"
	if m.form.editID == "" {
		_, err = m.session.AddTask(planner.TaskInput{
			Name:        v[0],
			Category:    category,
			Due:         due,
			Priority:    priority,
			Description: v[4],
		})
	} else {
		var found bool
		_, found, err = m.session.EditTask(m.form.editID, planner.TaskPatch{
			Name:        &v[0],
			Category:    &category,
			Due:         &due,
			Priority:    &priority,
			Description: &v[4],
		})
		status = "Tâche modifiée"
		if !found {
			status = "Tâche introuvable"
		}
	}
	if errors.Is(err, planner.ErrRejected) {
		return m.stayOnField(0, "Formulaire incomplet: nom, catégorie et échéance sont requis")
	}
	if err != nil {
		status = fmt.Sprintf("échec de l'enregistrement: %v", err)
	}
	return m.closeForm(status)
}

func (m Model) submitGoalForm() (tea.Model, tea.Cmd) {
	v := m.form.values

	progress := 0
	if s := strings.TrimSpace(v[1]); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return m.stayOnField(1, fmt.Sprintf("Progression invalide: %q", v[1]))
		}
		progress = n
	}
	due, err := planner.ParseDate(v[2])
	if err != nil {
		return m.stayOnField(2, fmt.Sprintf("Date invalide: %q", v[2]))
	}

	status := "Objectif ajouté"
	if m.form.editID == "" {
		_, err = m.session.AddGoal(planner.GoalInput{
			Name:        v[0],
			Progress:    progress,
			DueDate:     due,
			Description: v[3],
		})
	} else {
		var found bool
		_, found, err = m.session.EditGoal(m.form.editID, planner.GoalPatch{
			Name:        &v[0],
			Progress:    &progress,
			DueDate:     &due,
			Description: &v[3],
		})
		status = "Objectif modifié"
		if !found {
			status = "Objectif introuvable"
		}
	}
	if errors.Is(err, planner.ErrRejected) {
		return m.stayOnField(0, "Le nom de l'objectif est requis")
	}
	if err != nil {
		status = fmt.Sprintf("échec de l'enregistrement: %v", err)
	}
	return m.closeForm(status)
}

// parseCategoryInput accepts a category name or its 1-based position.
func parseCategoryInput(v string) (planner.Category, bool) {
	if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
		cats := planner.Categories()
		if n >= 1 && n <= len(cats) {
			return cats[n-1], true
		}
		return "", false
	}
	return planner.ParseCategory(v)
}

func (m Model) toggleSelected() (tea.Model, tea.Cmd) {
	t, ok := m.selectedTask()
	if !ok {
		return m, nil
	}
	updated, found, err := m.session.ToggleTask(t.ID)
	switch {
	case err != nil:
		m.status = fmt.Sprintf("échec de l'enregistrement: %v", err)
	case !found:
		m.status = "Tâche introuvable"
	case updated.Completed:
		m.status = fmt.Sprintf("%q terminée", updated.Name)
	default:
		m.status = fmt.Sprintf("%q à faire", updated.Name)
	}
	return m, nil
}

func (m Model) editSelected() (tea.Model, tea.Cmd) {
	switch m.section {
	case sectionTasks:
		if t, ok := m.selectedTask(); ok {
			return m.openForm(newTaskForm(&t))
		}
	case sectionGoals:
		if g, ok := m.selectedGoal(); ok {
			return m.openForm(newGoalForm(&g))
		}
	}
	return m, nil
}

func (m Model) confirmDeleteSelected() (tea.Model, tea.Cmd) {
	var p *pendingDelete
	switch m.section {
	case sectionTasks:
		if t, ok := m.selectedTask(); ok {
			p = &pendingDelete{kind: formTask, id: t.ID, name: t.Name}
		}
	case sectionGoals:
		if g, ok := m.selectedGoal(); ok {
			p = &pendingDelete{kind: formGoal, id: g.ID, name: g.Name}
		}
	}
	if p == nil {
		return m, nil
	}
	m.pendingDel = p
	m.mode = modeConfirmDelete
	m.status = fmt.Sprintf("Supprimer %q ? y/n", p.name)
	return m, nil
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", m.cfg.Keys.Cancel:
		m.status = "Suppression annulée"
		m.mode = modeBrowse
		m.pendingDel = nil
		return m, nil
	case "y", "Y":
		p := m.pendingDel
		m.mode = modeBrowse
		m.pendingDel = nil
		if p == nil {
			m.status = "Rien à supprimer"
			return m, nil
		}
		var err error
		if p.kind == formGoal {
			_, err = m.session.DeleteGoal(p.id)
		} else {
			_, err = m.session.DeleteTask(p.id)
		}
		if err != nil {
			m.status = fmt.Sprintf("échec de la suppression: %v", err)
		} else {
			m.status = fmt.Sprintf("%q supprimé", p.name)
		}
		m.cursor = clampCursor(m.cursor, m.listLen())
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) updateResetConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y":
		if err := m.session.Reset(); err != nil {
			m.mode = modeBrowse
			m.status = fmt.Sprintf("échec de la réinitialisation: %v", err)
			return m, nil
		}
		m.applyTheme(m.session.State().Theme)
		m.section = sectionDashboard
		m.cursor = 0
		m.mode = modeName
		m.input.SetValue("")
		m.input.Placeholder = "Votre prénom"
		m.input.Focus()
		m.status = "Données réinitialisées"
		return m, nil
	case "n", "N", m.cfg.Keys.Cancel:
		m.mode = modeBrowse
		m.status = "Réinitialisation annulée"
		return m, nil
	default:
		return m, nil
	}
}

// orderedTasks is the task list in timeline order, which is what the cursor
// walks in the tasks section.
func (m Model) orderedTasks() []planner.Task {
	var out []planner.Task
	for _, g := range view.Timeline(m.session.State().Tasks) {
		out = append(out, g.Tasks...)
	}
	return out
}

func (m Model) selectedTask() (planner.Task, bool) {
	if m.section != sectionTasks {
		return planner.Task{}, false
	}
	tasks := m.orderedTasks()
	if len(tasks) == 0 {
		return planner.Task{}, false
	}
	return tasks[clampCursor(m.cursor, len(tasks))], true
}

func (m Model) selectedGoal() (planner.Goal, bool) {
	if m.section != sectionGoals {
		return planner.Goal{}, false
	}
	goals := m.session.State().Goals
	if len(goals) == 0 {
		return planner.Goal{}, false
	}
	return goals[clampCursor(m.cursor, len(goals))], true
}

func (m Model) listLen() int {
	switch m.section {
	case sectionTasks:
		return len(m.session.State().Tasks)
	case sectionGoals:
		return len(m.session.State().Goals)
	}
	return 0
}

func (m Model) View() string {
	var b strings.Builder
	st := m.session.State()

	b.WriteString(m.styles.title.Render("MyDay Pro"))
	b.WriteString("  ")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	if m.mode == modeName {
		b.WriteString(m.styles.overlay.Render("Bienvenue ! Comment vous appelez-vous ?\n\n" + m.input.View()))
		b.WriteString("\n\n")
		b.WriteString(m.styles.status.Render(m.status))
		return b.String()
	}

	switch m.section {
	case sectionDashboard:
		b.WriteString(m.renderDashboard(st))
	case sectionTasks:
		b.WriteString(m.renderTasks(st))
	case sectionGoals:
		b.WriteString(m.renderGoals(st))
	case sectionProfile:
		b.WriteString(m.renderProfile(st))
	}

	if m.mode == modeForm && m.form != nil {
		b.WriteString("\n")
		b.WriteString(m.renderForm())
	}
	if m.mode == modeRename {
		b.WriteString("\nNouveau nom: ")
		b.WriteString(m.input.View())
	}

	b.WriteString("\n\n")
	b.WriteString(m.styles.status.Render(m.status))
	b.WriteString("\n")
	b.WriteString(m.styles.dim.Render(renderHelp(m.cfg.Keys)))
	return b.String()
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(sectionNames))
	for i, name := range sectionNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if section(i) == m.section {
			tabs = append(tabs, m.styles.tabOn.Render(label))
		} else {
			tabs = append(tabs, m.styles.tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderDashboard(st planner.State) string {
	d := view.BuildDashboard(st, m.now())
	var b strings.Builder
	b.WriteString(m.styles.header.Render(d.Greeting))
	b.WriteString("\n")
	b.WriteString(m.styles.dim.Render(d.Date))
	b.WriteString("\n\n")

	cards := make([]string, 0, len(d.Stats))
	for _, s := range d.Stats {
		cards = append(cards, m.styles.card.Render(s.Label+"\n"+m.styles.cardNum.Render(s.Value)))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	b.WriteString("\n\n")

	b.WriteString(m.styles.header.Render("Prochaines tâches"))
	b.WriteString("\n")
	if len(d.Upcoming) == 0 {
		b.WriteString(m.styles.dim.Render("Aucune tâche à venir."))
		b.WriteString("\n")
	}
	for _, t := range d.Upcoming {
		b.WriteString(fmt.Sprintf("  %-30s %s\n", t.Name, m.styles.dim.Render(view.FormatDateTime(t.Due))))
	}
	return b.String()
}

func (m Model) renderTasks(st planner.State) string {
	groups := view.Timeline(st.Tasks)
	if len(groups) == 0 {
		return "Aucune tâche. Appuyez sur 'a' pour en ajouter une.\n"
	}
	var b strings.Builder
	i := 0
	for _, g := range groups {
		b.WriteString(m.styles.header.Render(string(g.Category)))
		b.WriteString(fmt.Sprintf("  %s %d/%d\n", m.styles.accent.Render(view.ProgressBar(g.Ratio(), 10)), g.Completed, len(g.Tasks)))
		for _, t := range g.Tasks {
			cursor := " "
			if i == m.cursor && m.mode == modeBrowse {
				cursor = ">"
			}
			checkbox := "[ ]"
			name := t.Name
			if t.Completed {
				checkbox = "[x]"
				name = m.styles.done.Render(name)
			} else if cursor == ">" {
				name = m.styles.selected.Render(name)
			}
			meta := fmt.Sprintf("%s | %s", view.FormatDateTime(t.Due), view.PriorityLabel(t.Priority))
			b.WriteString(fmt.Sprintf("%s %s %s  %s\n", cursor, checkbox, name, m.styles.dim.Render(meta)))
			if t.Description != "" {
				b.WriteString("      ")
				b.WriteString(m.styles.dim.Render(t.Description))
				b.WriteString("\n")
			}
			i++
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderGoals(st planner.State) string {
	cards := view.GoalCards(st.Goals)
	if len(cards) == 0 {
		return "Aucun objectif. Appuyez sur 'a' pour en ajouter un.\n"
	}
	var b strings.Builder
	for i, c := range cards {
		cursor := " "
		if i == m.cursor && m.mode == modeBrowse {
			cursor = ">"
		}
		bar := view.ProgressBar(float64(c.Progress)/100, 10)
		name := c.Goal.Name
		if c.Achieved {
			name = m.styles.done.Render(name)
		}
		b.WriteString(fmt.Sprintf("%s %s %3d%%  %s", cursor, m.styles.accent.Render(bar), c.Progress, name))
		if c.Due != "" {
			b.WriteString("  ")
			b.WriteString(m.styles.dim.Render(c.Due))
		}
		b.WriteString("\n")
		if c.Goal.Description != "" {
			b.WriteString("      ")
			b.WriteString(m.styles.dim.Render(c.Goal.Description))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderProfile(st planner.State) string {
	p := view.BuildProfile(st)
	var b strings.Builder
	b.WriteString(m.styles.header.Render(p.Greeting))
	b.WriteString("\n\n")
	cards := make([]string, 0, len(p.Stats))
	for _, s := range p.Stats {
		cards = append(cards, m.styles.card.Render(m.styles.cardNum.Render(s.Value)+"\n"+s.Label))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	b.WriteString("\n\n")
	for _, c := range p.Categories {
		b.WriteString(m.styles.dim.Render(fmt.Sprintf("%s: %d", c.Category, c.Count)))
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("\nThème: %s  •  %s renommer  •  %s réinitialiser\n",
		m.theme, m.cfg.Keys.Rename, m.cfg.Keys.Reset))
	return b.String()
}

func (m Model) renderForm() string {
	f := m.form
	title := "Nouvelle tâche"
	switch {
	case f.kind == formTask && f.editID != "":
		title = "Modifier la tâche"
	case f.kind == formGoal && f.editID == "":
		title = "Nouvel objectif"
	case f.kind == formGoal:
		title = "Modifier l'objectif"
	}
	var b strings.Builder
	b.WriteString(m.styles.header.Render(title))
	b.WriteString("\n")
	for i, label := range f.labels {
		prefix := " "
		val := f.values[i]
		if i == f.index {
			prefix = ">"
			val = m.input.View()
		} else if strings.TrimSpace(val) == "" {
			val = m.styles.dim.Render("(vide)")
		}
		b.WriteString(fmt.Sprintf("%s %-14s : %s\n", prefix, shortLabel(label), val))
	}
	return m.styles.formBox.Render(strings.TrimRight(b.String(), "\n"))
}

func shortLabel(label string) string {
	if i := strings.Index(label, " ("); i > 0 {
		return label[:i]
	}
	return label
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s vue • %s/%s déplacer • %s ajouter • %s modifier • espace fait • %s supprimer • %s thème • %s quitter",
		k.NextSection, k.PrevSection, k.Up, k.Down, k.Add, k.Edit, k.Delete, k.Theme, k.Quit)
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

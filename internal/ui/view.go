package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"myday/internal/app"
	"myday/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#25A065")).
			Padding(0, 1)

	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EE6FF8")).Bold(true)
	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")).Strikethrough(true)
	separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	overdueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))
	todayStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAB387"))
	dueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#89B4FA"))
	freqStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF"))
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#6C7086")).
			Padding(0, 1)
)

const dueDateHint = "today, tomorrow, next week, next month, YYYY-MM-DD [HH:MM], MM/DD/YYYY"

const frequencyHint = "daily, weekdays, weekly, monthly, yearly, none"

func (m Model) View() string {
	var b strings.Builder

	switch s := m.app.Screen().(type) {
	case app.ListOverview:
		m.viewListOverview(&b)
	case app.TaskList:
		m.viewTaskList(&b)
	case app.MyDay:
		m.viewMyDay(&b)
	case *app.TaskEditor:
		m.viewTaskEditor(&b, s)
	case app.ListEditor:
		b.WriteString(titleStyle.Render("New List"))
		b.WriteString("\n\n")
		b.WriteString(m.inputView("List name"))
		b.WriteString("\n")
	case *app.NoteEditor:
		b.WriteString(titleStyle.Render("Notes: " + s.Task.Title))
		b.WriteString("\n\n")
		b.WriteString(m.inputView("Notes"))
		b.WriteString("\n")
	case *app.MoveTask:
		b.WriteString(titleStyle.Render(fmt.Sprintf("Move %q to", s.Task.Title)))
		b.WriteString("\n\n")
		b.WriteString(m.renderLists(false))
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help()))
	return b.String()
}

func (m Model) viewListOverview(b *strings.Builder) {
	b.WriteString(titleStyle.Render("Lists"))
	b.WriteString("\n\n")
	lists := m.renderLists(true)

	s := m.app.Overview()
	panel := panelStyle.Render(fmt.Sprintf("Tasks     %d\nCompleted %d\nMy Day    %d\nOverdue   %d",
		s.Total, s.Completed, s.MyDay, s.Overdue))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, lists, "    ", panel))
	b.WriteString("\n")
}

// renderLists draws the list picker used by ListOverview and MoveTask.
func (m Model) renderLists(withStats bool) string {
	var b strings.Builder
	for i, l := range m.app.Lists() {
		line := l.Name
		if withStats {
			done, total := m.app.ListStats(l.ID)
			line = fmt.Sprintf("%s (%d/%d)", l.Name, done, total)
		}
		if i == m.app.Cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewTaskList(b *strings.Builder) {
	name := "Tasks"
	if l, ok := m.app.CurrentList(); ok {
		name = l.Name
	}
	b.WriteString(titleStyle.Render(name))
	b.WriteString("\n\n")
	b.WriteString(m.renderTasks(m.app.TasksForCurrentList(), "No tasks yet. Press Ctrl+N to add one."))
}

func (m Model) viewMyDay(b *strings.Builder) {
	b.WriteString(titleStyle.Render("My Day"))
	b.WriteString("\n\n")
	b.WriteString(m.renderTasks(m.app.MyDayTasks(), "Nothing planned for today."))
}

// renderTasks draws active tasks, a separator when both groups are present,
// then completed tasks. Row numbering matches app.TaskAtDisplayIndex.
func (m Model) renderTasks(tasks []model.Task, empty string) string {
	n := app.DisplayableCount(tasks)
	if n == 0 {
		return helpStyle.Render(empty) + "\n"
	}

	sep, hasSep := app.SeparatorIndex(tasks)
	var b strings.Builder
	for i := 0; i < n; i++ {
		if hasSep && i == sep {
			b.WriteString(separatorStyle.Render("  ── completed ──"))
			b.WriteString("\n")
			continue
		}
		t, ok := app.TaskAtDisplayIndex(tasks, i)
		if !ok {
			continue
		}
		b.WriteString(taskRow(t, i == m.app.Cursor))
		b.WriteString("\n")
	}
	return b.String()
}

func taskRow(t model.Task, selected bool) string {
	checkbox := "[ ]"
	if t.Completed {
		checkbox = "[x]"
	}
	title := t.Title
	switch {
	case selected:
		title = selectedStyle.Render(title)
	case t.Completed:
		title = completedStyle.Render(title)
	}

	parts := []string{checkbox, title}
	if hint := dueHint(t); hint != "" {
		parts = append(parts, hint)
	}
	if t.Frequency != model.FrequencyNone {
		parts = append(parts, freqStyle.Render("["+t.Frequency.String()+"]"))
	}
	if t.InMyDay {
		parts = append(parts, "☀")
	}
	if t.Notes != "" {
		parts = append(parts, "✎")
	}
	if t.Completed && t.CompletedAt != nil {
		parts = append(parts, helpStyle.Render("done "+humanize.Time(*t.CompletedAt)))
	}

	cursor := "  "
	if selected {
		cursor = selectedStyle.Render("> ")
	}
	return cursor + strings.Join(parts, " ")
}

// dueHint describes how far away an open task's due date is.
func dueHint(t model.Task) string {
	days, ok := t.DaysUntilDue()
	if !ok || t.Completed {
		return ""
	}
	switch {
	case days < 0:
		return overdueStyle.Render(fmt.Sprintf("[Overdue %d %s]", -days, plural(-days, "day")))
	case days == 0:
		return todayStyle.Render("[Today]")
	case days == 1:
		return dueStyle.Render("[Tomorrow]")
	default:
		return dueStyle.Render(fmt.Sprintf("[%d days]", days))
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func (m Model) viewTaskEditor(b *strings.Builder, ed *app.TaskEditor) {
	header := "New Task"
	if ed.Mode == app.Edit {
		header = "Edit Task"
	}
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	due := "(none)"
	if ed.Task.DueDate != nil {
		due = ed.Task.DueDate.Format("2006-01-02 15:04")
	}
	freq := ed.Task.Frequency.String()
	if freq == "" {
		freq = "(none)"
	}
	notes := ed.Task.Notes
	if notes == "" {
		notes = "(none)"
	}
	fields := []struct {
		step  app.EditorStep
		value string
	}{
		{app.StepTitle, ed.Task.Title},
		{app.StepDueDate, due},
		{app.StepFrequency, freq},
		{app.StepNotes, notes},
	}
	for _, f := range fields {
		line := fmt.Sprintf("%-10s %s", f.step.String()+":", f.value)
		if f.step == ed.Step {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch ed.Step {
	case app.StepDueDate:
		b.WriteString(helpStyle.Render(dueDateHint))
		b.WriteString("\n")
	case app.StepFrequency:
		b.WriteString(helpStyle.Render(frequencyHint))
		b.WriteString("\n")
	}
	b.WriteString(m.inputView(ed.Step.String()))
	b.WriteString("\n")
}

// inputView draws the App's editor field sized to the window.
func (m Model) inputView(placeholder string) string {
	ti := m.app.InputField()
	ti.Placeholder = placeholder
	ti.Width = max(m.width-10, 10)
	return ti.View()
}

func (m Model) help() string {
	nav := fmt.Sprintf("↑/%s ↓/%s move • %s%s top • %s bottom", m.keys.Up, m.keys.Down, m.keys.Top, m.keys.Top, m.keys.Bottom)
	switch m.app.Screen().(type) {
	case app.ListOverview:
		return nav + " • enter open • ctrl+n new list • ctrl+y my day • ctrl+q quit"
	case app.TaskList:
		return nav + " • space toggle • enter/ctrl+e edit • ctrl+n new • ctrl+d my day • ctrl+v notes • ctrl+t move • del delete • ctrl+y my day view • esc back"
	case app.MyDay:
		return nav + " • space toggle • ctrl+↑/↓ reorder • ctrl+d remove • ctrl+v notes • ctrl+t move • del delete • esc back"
	case *app.MoveTask:
		return nav + " • enter move • esc cancel"
	case *app.TaskEditor:
		return "enter next • esc cancel • ctrl+q quit"
	default:
		return "enter save • esc cancel • ctrl+q quit"
	}
}

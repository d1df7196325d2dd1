package input

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"myday/internal/app"
	"myday/internal/dates"
	"myday/internal/model"
)

// editorExit is where the task editor returns to.
func editorExit(a *app.App) app.Screen {
	if _, ok := a.CurrentListID(); ok {
		return app.TaskList{}
	}
	return app.ListOverview{}
}

func (h *Handler) taskEditor(a *app.App, ed *app.TaskEditor, msg tea.KeyMsg) error {
	switch msg.String() {
	case "esc":
		a.ClearInput()
		a.Open(editorExit(a))
	case "enter":
		return advance(a, ed)
	default:
		a.EditInput(msg)
	}
	return nil
}

// advance commits the current wizard step. Blank title, due date and notes
// keep what the task already has; a new task cannot leave the title step
// without a title.
func advance(a *app.App, ed *app.TaskEditor) error {
	value := strings.TrimSpace(a.Input())

	switch ed.Step {
	case app.StepTitle:
		if value == "" {
			if ed.Mode == app.Create {
				return nil
			}
		} else {
			ed.Task.Title = value
		}
		ed.Step = app.StepDueDate
	case app.StepDueDate:
		if due, ok := dates.Parse(value, time.Now()); ok {
			ed.Task.SetDueDate(&due)
		}
		ed.Step = app.StepFrequency
	case app.StepFrequency:
		if f, ok := parseFrequency(value); ok {
			ed.Task.SetFrequency(f)
		}
		ed.Step = app.StepNotes
	case app.StepNotes:
		if value != "" {
			ed.Task.SetNotes(value)
		}
		a.ClearInput()
		a.Open(editorExit(a))
		if ed.Mode == app.Create {
			_, err := a.AddTask(ed.Task)
			return err
		}
		return a.UpdateTask(ed.Task)
	}

	a.ClearInput()
	return nil
}

// parseFrequency reads the frequency step. Blank input and "none" clear
// recurrence; anything unrecognised reports false and leaves the task alone.
func parseFrequency(s string) (model.Frequency, bool) {
	switch strings.ToLower(s) {
	case "", "none":
		return model.FrequencyNone, true
	case "daily":
		return model.Daily, true
	case "weekdays":
		return model.Weekdays, true
	case "weekly":
		return model.Weekly, true
	case "monthly":
		return model.Monthly, true
	case "yearly":
		return model.Yearly, true
	}
	return model.FrequencyNone, false
}

func (h *Handler) listEditor(a *app.App, msg tea.KeyMsg) error {
	switch msg.String() {
	case "esc":
		a.ClearInput()
		a.Open(app.ListOverview{})
	case "enter":
		name := strings.TrimSpace(a.Input())
		if name == "" {
			return nil
		}
		a.ClearInput()
		a.Open(app.ListOverview{})
		_, err := a.AddList(model.NewList(0, name))
		return err
	default:
		a.EditInput(msg)
	}
	return nil
}

func (h *Handler) noteEditor(a *app.App, ne *app.NoteEditor, msg tea.KeyMsg) error {
	switch msg.String() {
	case "esc":
		a.ClearInput()
		a.Open(ne.Back)
	case "enter":
		notes := strings.TrimSpace(a.Input())
		a.ClearInput()
		a.Open(ne.Back)
		if notes == "" {
			return nil
		}
		task := ne.Task
		task.SetNotes(notes)
		return a.UpdateTask(task)
	default:
		a.EditInput(msg)
	}
	return nil
}

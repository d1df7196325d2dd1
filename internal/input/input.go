package input

import (
	tea "github.com/charmbracelet/bubbletea"

	"myday/internal/app"
	"myday/internal/config"
	"myday/internal/model"
)

// Handler turns key presses into App transitions. It holds no state of its
// own besides the key bindings.
type Handler struct {
	keys config.Keymap
}

func New(keys config.Keymap) *Handler {
	return &Handler{keys: keys}
}

// Handle applies one key press. Screen changes happen even when the
// mutation behind them fails to save; the save error is returned.
func (h *Handler) Handle(a *app.App, msg tea.KeyMsg) error {
	if msg.String() == "ctrl+q" {
		a.RequestQuit()
		return nil
	}

	switch s := a.Screen().(type) {
	case app.ListOverview:
		return h.listOverview(a, msg)
	case app.TaskList:
		return h.taskList(a, msg)
	case app.MyDay:
		return h.myDay(a, msg)
	case *app.TaskEditor:
		return h.taskEditor(a, s, msg)
	case app.ListEditor:
		return h.listEditor(a, msg)
	case *app.NoteEditor:
		return h.noteEditor(a, s, msg)
	case *app.MoveTask:
		return h.moveTask(a, s, msg)
	}
	return nil
}

// navigate moves the cursor over n rows and reports whether key was a
// navigation key. The top key is a two-press chord; any other key cancels
// a pending first press.
func (h *Handler) navigate(a *app.App, key string, n int) bool {
	if key == h.keys.Top {
		if a.Chord() {
			a.Cursor = 0
		}
		return true
	}
	a.ClearChord()

	switch key {
	case "up", h.keys.Up:
		if a.Cursor > 0 {
			a.Cursor--
		}
	case "down", h.keys.Down:
		if a.Cursor < n-1 {
			a.Cursor++
		}
	case h.keys.Bottom:
		a.Cursor = max(n-1, 0)
	default:
		return false
	}
	return true
}

func (h *Handler) listOverview(a *app.App, msg tea.KeyMsg) error {
	key := msg.String()
	lists := a.Lists()
	if h.navigate(a, key, len(lists)) {
		return nil
	}

	switch key {
	case "ctrl+n":
		a.ClearInput()
		a.Open(app.ListEditor{})
	case "ctrl+y":
		a.Open(app.MyDay{})
	case "enter":
		if a.Cursor < len(lists) {
			a.OpenList(lists[a.Cursor].ID)
		}
	}
	return nil
}

func (h *Handler) taskList(a *app.App, msg tea.KeyMsg) error {
	key := msg.String()
	if h.navigate(a, key, app.DisplayableCount(a.TasksForCurrentList())) {
		return nil
	}

	switch key {
	case "esc":
		a.CloseList()
		a.Open(app.ListOverview{})
	case "ctrl+y":
		a.Open(app.MyDay{})
	case "ctrl+n":
		listID, ok := a.CurrentListID()
		if !ok {
			return nil
		}
		a.ClearInput()
		a.Open(&app.TaskEditor{Mode: app.Create, Step: app.StepTitle, Task: model.NewTask(0, "", listID)})
	case "enter", "ctrl+e":
		if task, ok := selected(a, a.TasksForCurrentList); ok {
			a.SetInput(task.Title)
			a.Open(&app.TaskEditor{Mode: app.Edit, Step: app.StepTitle, Task: task})
		}
	case " ":
		return toggleSelected(a, a.TasksForCurrentList)
	case "ctrl+d":
		task, ok := selected(a, a.TasksForCurrentList)
		if !ok {
			return nil
		}
		if task.InMyDay {
			return a.RemoveTaskFromMyDay(task.ID)
		}
		return a.AddTaskToMyDay(task.ID)
	case "delete", "backspace":
		return deleteSelected(a, a.TasksForCurrentList)
	case "ctrl+v":
		openNotes(a, a.TasksForCurrentList, app.TaskList{})
	case "ctrl+t":
		openMove(a, a.TasksForCurrentList, app.TaskList{})
	}
	return nil
}

func (h *Handler) myDay(a *app.App, msg tea.KeyMsg) error {
	key := msg.String()
	if h.navigate(a, key, app.DisplayableCount(a.MyDayTasks())) {
		return nil
	}

	switch key {
	case "esc":
		a.Open(app.ListOverview{})
	case " ":
		return toggleSelected(a, a.MyDayTasks)
	case "ctrl+d":
		if task, ok := selected(a, a.MyDayTasks); ok {
			return a.RemoveTaskFromMyDay(task.ID)
		}
	case "delete", "backspace":
		return deleteSelected(a, a.MyDayTasks)
	case "ctrl+v":
		openNotes(a, a.MyDayTasks, app.MyDay{})
	case "ctrl+t":
		openMove(a, a.MyDayTasks, app.MyDay{})
	case "ctrl+up":
		if task, ok := selected(a, a.MyDayTasks); ok {
			a.MoveTaskUpInMyDay(task.ID)
			follow(a, task.ID)
		}
	case "ctrl+down":
		if task, ok := selected(a, a.MyDayTasks); ok {
			a.MoveTaskDownInMyDay(task.ID)
			follow(a, task.ID)
		}
	}
	return nil
}

// follow puts the cursor back on task id after a reorder.
func follow(a *app.App, id int) {
	if i, ok := app.DisplayIndexOf(a.MyDayTasks(), id); ok {
		a.Cursor = i
	}
}

func selected(a *app.App, rows func() []model.Task) (model.Task, bool) {
	return app.TaskAtDisplayIndex(rows(), a.Cursor)
}

// toggleSelected flips the task under the cursor and keeps the cursor in
// range. With a single row left the cursor goes to 0 so it cannot drift
// onto a vanished separator.
func toggleSelected(a *app.App, rows func() []model.Task) error {
	task, ok := selected(a, rows)
	if !ok {
		return nil
	}
	err := a.ToggleTaskCompletion(task.ID)

	n := app.DisplayableCount(rows())
	switch {
	case n <= 1:
		a.Cursor = 0
	case a.Cursor >= n:
		a.Cursor = n - 1
	}
	return err
}

// deleteSelected removes the task under the cursor. A cursor on the last
// row moves up one.
func deleteSelected(a *app.App, rows func() []model.Task) error {
	tasks := rows()
	task, ok := app.TaskAtDisplayIndex(tasks, a.Cursor)
	if !ok {
		return nil
	}
	n := app.DisplayableCount(tasks)
	err := a.DeleteTask(task.ID)

	if a.Cursor >= n-1 {
		a.Cursor = max(n-2, 0)
	}
	if remaining := app.DisplayableCount(rows()); a.Cursor >= remaining {
		a.Cursor = max(remaining-1, 0)
	}
	return err
}

func openNotes(a *app.App, rows func() []model.Task, back app.Screen) {
	task, ok := selected(a, rows)
	if !ok {
		return
	}
	a.SetInput(task.Notes)
	a.Open(&app.NoteEditor{Task: task, Back: back})
}

func openMove(a *app.App, rows func() []model.Task, back app.Screen) {
	task, ok := selected(a, rows)
	if !ok {
		return
	}
	a.Open(&app.MoveTask{Task: task, Back: back})
}

func (h *Handler) moveTask(a *app.App, mt *app.MoveTask, msg tea.KeyMsg) error {
	key := msg.String()
	lists := a.Lists()
	if h.navigate(a, key, len(lists)) {
		return nil
	}

	// Both exits go back to the screen the picker was opened from, so a move
	// started in My Day stays in My Day.
	switch key {
	case "esc":
		a.Open(mt.Back)
	case "enter":
		if a.Cursor >= len(lists) {
			return nil
		}
		err := a.MoveTaskToList(mt.Task.ID, lists[a.Cursor].ID)
		a.Open(mt.Back)
		return err
	}
	return nil
}

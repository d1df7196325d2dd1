package app

import (
	"slices"
	"time"

	"go.uber.org/zap"

	"myday/internal/dates"
	"myday/internal/logger"
	"myday/internal/model"
)

// Mutations change memory first and then save the whole collection. A
// failed save is returned as is; the in-memory change stays applied.

// AddTask stores t under a freshly allocated id and returns that id.
func (a *App) AddTask(t model.Task) (int, error) {
	t.ID = a.store.NextTaskID()
	a.tasks = append(a.tasks, t)
	return t.ID, a.saveTasks()
}

// UpdateTask replaces the task with the same id. Unknown ids are ignored.
func (a *App) UpdateTask(t model.Task) error {
	i := a.indexOf(t.ID)
	if i < 0 {
		return nil
	}
	a.tasks[i] = t
	return a.saveTasks()
}

func (a *App) DeleteTask(id int) error {
	a.tasks = slices.DeleteFunc(a.tasks, func(t model.Task) bool { return t.ID == id })
	a.dropFromMyDay(id)
	return a.saveTasks()
}

// ToggleTaskCompletion flips completion. Completing a recurring task also
// creates its next instance.
func (a *App) ToggleTaskCompletion(id int) error {
	i := a.indexOf(id)
	if i < 0 {
		return nil
	}
	wasCompleted := a.tasks[i].Completed
	a.tasks[i].ToggleCompletion()

	if !wasCompleted && a.tasks[i].Frequency != model.FrequencyNone {
		a.spawnNextInstance(a.tasks[i])
	}
	return a.saveTasks()
}

// spawnNextInstance appends the successor of a completed recurring task.
// The caller saves.
func (a *App) spawnNextInstance(done model.Task) {
	from := time.Now()
	if done.DueDate != nil {
		from = *done.DueDate
	}
	due := done.Frequency.Next(from)

	next := model.NewTask(a.store.NextTaskID(), done.Title, done.ListID)
	next.SetDueDate(&due)
	next.SetFrequency(done.Frequency)
	next.SetNotes(done.Notes)
	a.tasks = append(a.tasks, next)

	if dates.SameDay(due, time.Now()) && !slices.Contains(a.myDayOrder, next.ID) {
		a.myDayOrder = append(a.myDayOrder, next.ID)
	}
	logger.Info("created recurring instance",
		zap.Int("from_task", done.ID),
		zap.Int("task_id", next.ID),
		zap.String("frequency", done.Frequency.String()),
		zap.Time("due", due))
}

func (a *App) MoveTaskToList(id, listID int) error {
	i := a.indexOf(id)
	if i < 0 {
		return nil
	}
	a.tasks[i].MoveToList(listID)
	return a.saveTasks()
}

// AddList stores l under a freshly allocated id and returns that id.
func (a *App) AddList(l model.List) (int, error) {
	l.ID = a.store.NextListID()
	a.lists = append(a.lists, l)
	return l.ID, a.saveLists()
}

// ListStats counts completed and total tasks in a list.
func (a *App) ListStats(listID int) (completed, total int) {
	for _, t := range a.tasks {
		if t.ListID != listID {
			continue
		}
		total++
		if t.Completed {
			completed++
		}
	}
	return completed, total
}

type Summary struct {
	Total     int
	Completed int
	MyDay     int
	Overdue   int
}

func (a *App) Overview() Summary {
	s := Summary{Total: len(a.tasks), MyDay: len(a.MyDayTasks())}
	for _, t := range a.tasks {
		if t.Completed {
			s.Completed++
		}
		if t.IsOverdue() {
			s.Overdue++
		}
	}
	return s
}

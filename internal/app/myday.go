package app

import (
	"slices"
	"sort"

	"myday/internal/model"
)

func inMyDay(t model.Task) bool {
	return t.InMyDay || t.IsDueToday()
}

// TasksForCurrentList returns the open list's tasks in collection order.
func (a *App) TasksForCurrentList() []model.Task {
	if a.currentListID == 0 {
		return nil
	}
	var out []model.Task
	for _, t := range a.tasks {
		if t.ListID == a.currentListID {
			out = append(out, t)
		}
	}
	return out
}

// MyDayTasks returns flagged and due-today tasks in My Day order. Tasks
// missing from the order follow, in collection order.
func (a *App) MyDayTasks() []model.Task {
	var out []model.Task
	for _, t := range a.tasks {
		if inMyDay(t) {
			out = append(out, t)
		}
	}

	pos := make(map[int]int, len(a.myDayOrder))
	for i, id := range a.myDayOrder {
		if _, seen := pos[id]; !seen {
			pos[id] = i
		}
	}
	rank := func(t model.Task) int {
		if p, ok := pos[t.ID]; ok {
			return p
		}
		return len(a.myDayOrder)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return rank(out[i]) < rank(out[j])
	})
	return out
}

// RefreshMyDay appends tasks that belong in My Day but are missing from the
// order, lowest id first. It returns how many were added.
func (a *App) RefreshMyDay() int {
	var missing []int
	for _, t := range a.tasks {
		if inMyDay(t) && !slices.Contains(a.myDayOrder, t.ID) {
			missing = append(missing, t.ID)
		}
	}
	sort.Ints(missing)
	a.myDayOrder = append(a.myDayOrder, missing...)
	return len(missing)
}

// dedupeMyDay keeps the first occurrence of each id.
func (a *App) dedupeMyDay() {
	seen := make(map[int]struct{}, len(a.myDayOrder))
	out := a.myDayOrder[:0]
	for _, id := range a.myDayOrder {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	a.myDayOrder = out
}

func (a *App) dropFromMyDay(id int) {
	a.myDayOrder = slices.DeleteFunc(a.myDayOrder, func(v int) bool { return v == id })
}

func (a *App) MoveTaskUpInMyDay(id int) {
	a.dedupeMyDay()
	pos := slices.Index(a.myDayOrder, id)
	if pos > 0 {
		a.myDayOrder[pos], a.myDayOrder[pos-1] = a.myDayOrder[pos-1], a.myDayOrder[pos]
	}
}

func (a *App) MoveTaskDownInMyDay(id int) {
	a.dedupeMyDay()
	pos := slices.Index(a.myDayOrder, id)
	if pos >= 0 && pos < len(a.myDayOrder)-1 {
		a.myDayOrder[pos], a.myDayOrder[pos+1] = a.myDayOrder[pos+1], a.myDayOrder[pos]
	}
}

func (a *App) AddTaskToMyDay(id int) error {
	i := a.indexOf(id)
	if i < 0 {
		return nil
	}
	if a.tasks[i].InMyDay && slices.Contains(a.myDayOrder, id) {
		return nil
	}
	a.tasks[i].AddToMyDay()
	if !slices.Contains(a.myDayOrder, id) {
		a.myDayOrder = append(a.myDayOrder, id)
	}
	return a.saveTasks()
}

func (a *App) RemoveTaskFromMyDay(id int) error {
	i := a.indexOf(id)
	if i < 0 {
		return nil
	}
	if !a.tasks[i].InMyDay && !slices.Contains(a.myDayOrder, id) {
		return nil
	}
	a.tasks[i].RemoveFromMyDay()
	a.dropFromMyDay(id)
	return a.saveTasks()
}

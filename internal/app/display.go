package app

import "myday/internal/model"

// Task screens render active tasks, then a separator row when both groups
// are non-empty, then completed tasks. These two functions are the only
// mapping between display rows and tasks.

func splitByCompletion(tasks []model.Task) (active, completed []model.Task) {
	for _, t := range tasks {
		if t.Completed {
			completed = append(completed, t)
		} else {
			active = append(active, t)
		}
	}
	return active, completed
}

// DisplayableCount is the number of rows including the separator.
func DisplayableCount(tasks []model.Task) int {
	active, completed := splitByCompletion(tasks)
	n := len(active) + len(completed)
	if len(active) > 0 && len(completed) > 0 {
		n++
	}
	return n
}

// SeparatorIndex returns the separator row, if there is one.
func SeparatorIndex(tasks []model.Task) (int, bool) {
	active, completed := splitByCompletion(tasks)
	if len(active) > 0 && len(completed) > 0 {
		return len(active), true
	}
	return 0, false
}

// TaskAtDisplayIndex maps a display row to its task. It returns false for
// the separator and for rows out of range.
func TaskAtDisplayIndex(tasks []model.Task, i int) (model.Task, bool) {
	if i < 0 {
		return model.Task{}, false
	}
	active, completed := splitByCompletion(tasks)
	if i < len(active) {
		return active[i], true
	}
	i -= len(active)
	if len(active) > 0 && len(completed) > 0 {
		if i == 0 {
			return model.Task{}, false
		}
		i--
	}
	if i < len(completed) {
		return completed[i], true
	}
	return model.Task{}, false
}

// DisplayIndexOf finds the row showing task id.
func DisplayIndexOf(tasks []model.Task, id int) (int, bool) {
	for i := 0; i < DisplayableCount(tasks); i++ {
		if t, ok := TaskAtDisplayIndex(tasks, i); ok && t.ID == id {
			return i, true
		}
	}
	return 0, false
}

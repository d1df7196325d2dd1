package model

import (
	"time"

	"myday/internal/dates"
)

type Task struct {
	ID           int
	Title        string
	Description  string
	ListID       int
	DueDate      *time.Time
	ReminderDate *time.Time
	Frequency    Frequency
	Completed    bool
	CompletedAt  *time.Time
	InMyDay      bool
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type List struct {
	ID        int
	Name      string
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewTask(id int, title string, listID int) Task {
	now := time.Now()
	return Task{
		ID:        id,
		Title:     title,
		ListID:    listID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func NewList(id int, name string) List {
	now := time.Now()
	return List{
		ID:        id,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ToggleCompletion flips the completion flag. CompletedAt is set exactly
// when the task is completed.
func (t *Task) ToggleCompletion() {
	now := time.Now()
	t.Completed = !t.Completed
	if t.Completed {
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}
	t.UpdatedAt = now
}

func (t Task) IsDueToday() bool {
	if t.DueDate == nil {
		return false
	}
	return dates.SameDay(*t.DueDate, time.Now())
}

func (t Task) IsOverdue() bool {
	if t.DueDate == nil || t.Completed {
		return false
	}
	return t.DueDate.Before(time.Now())
}

// DaysUntilDue counts calendar days from today to the due date.
func (t Task) DaysUntilDue() (int, bool) {
	if t.DueDate == nil {
		return 0, false
	}
	return dates.DaysBetween(time.Now(), *t.DueDate), true
}

func (t *Task) AddToMyDay() {
	t.InMyDay = true
	t.UpdatedAt = time.Now()
}

func (t *Task) RemoveFromMyDay() {
	t.InMyDay = false
	t.UpdatedAt = time.Now()
}

func (t *Task) SetDueDate(due *time.Time) {
	t.DueDate = due
	t.UpdatedAt = time.Now()
}

func (t *Task) SetFrequency(f Frequency) {
	t.Frequency = f
	t.UpdatedAt = time.Now()
}

func (t *Task) SetNotes(notes string) {
	t.Notes = notes
	t.UpdatedAt = time.Now()
}

func (t *Task) MoveToList(listID int) {
	t.ListID = listID
	t.UpdatedAt = time.Now()
}

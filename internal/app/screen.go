package app

import "myday/internal/model"

// Screen is one of the seven views. Each variant carries only the state it
// needs; the concrete types below are the whole set.
type Screen interface {
	screen()
}

type EditorMode int

const (
	Create EditorMode = iota
	Edit
)

// EditorStep is the task editor wizard position. Enter advances
// Title -> DueDate -> Frequency -> Notes, and Enter on Notes commits.
type EditorStep int

const (
	StepTitle EditorStep = iota
	StepDueDate
	StepFrequency
	StepNotes
)

func (s EditorStep) String() string {
	switch s {
	case StepTitle:
		return "Title"
	case StepDueDate:
		return "Due Date"
	case StepFrequency:
		return "Frequency"
	case StepNotes:
		return "Notes"
	default:
		return ""
	}
}

type ListOverview struct{}

type TaskList struct{}

type MyDay struct{}

type ListEditor struct{}

// TaskEditor holds the draft being built. Nothing is saved until Enter on
// the Notes step.
type TaskEditor struct {
	Mode EditorMode
	Step EditorStep
	Task model.Task
}

// NoteEditor edits the notes of Task and returns to Back.
type NoteEditor struct {
	Task model.Task
	Back Screen
}

// MoveTask relocates the staged Task to a list picked with the cursor and
// returns to Back.
type MoveTask struct {
	Task model.Task
	Back Screen
}

func (ListOverview) screen() {}
func (TaskList) screen()     {}
func (MyDay) screen()        {}
func (ListEditor) screen()   {}
func (*TaskEditor) screen()  {}
func (*NoteEditor) screen()  {}
func (*MoveTask) screen()    {}

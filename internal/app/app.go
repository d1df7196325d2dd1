package app

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"myday/internal/logger"
	"myday/internal/model"
)

// Gateway persists whole collections and allocates ids.
type Gateway interface {
	SaveTasks(tasks []model.Task) error
	SaveLists(lists []model.List) error
	NextTaskID() int
	NextListID() int
}

// App owns the task and list collections plus all navigation state. It is
// driven by one key event at a time and is not safe for concurrent use.
type App struct {
	store Gateway
	tasks []model.Task
	lists []model.List

	// myDayOrder is the manual order of the My Day view. It may hold ids of
	// tasks that are no longer in My Day; those are filtered out on read.
	myDayOrder []int

	screen        Screen
	currentListID int // 0 when no list is open; ids start at 1

	// Cursor is the row under the cursor on whichever list-like screen is
	// active. Every screen change resets it to 0.
	Cursor int

	chordPending bool
	input        textinput.Model
	quit         bool
}

// New builds the App from loaded collections. When there are no lists a
// default one is created and saved immediately.
func New(store Gateway, tasks []model.Task, lists []model.List, defaultList string) (*App, error) {
	a := &App{
		store:  store,
		tasks:  tasks,
		lists:  lists,
		screen: ListOverview{},
		input:  newInput(),
	}
	if len(a.lists) == 0 {
		l := model.NewList(store.NextListID(), defaultList)
		a.lists = append(a.lists, l)
		if err := a.saveLists(); err != nil {
			return nil, err
		}
		logger.Info("created default list", zap.Int("list_id", l.ID), zap.String("name", l.Name))
	}
	a.RefreshMyDay()
	return a, nil
}

func (a *App) Screen() Screen {
	return a.screen
}

// Open switches to s, resetting the cursor and any pending chord.
func (a *App) Open(s Screen) {
	a.screen = s
	a.Cursor = 0
	a.chordPending = false
}

// OpenList makes id the current list and shows its tasks.
func (a *App) OpenList(id int) {
	a.currentListID = id
	a.Open(TaskList{})
}

func (a *App) CloseList() {
	a.currentListID = 0
}

func (a *App) CurrentListID() (int, bool) {
	return a.currentListID, a.currentListID != 0
}

func (a *App) CurrentList() (model.List, bool) {
	for _, l := range a.lists {
		if l.ID == a.currentListID {
			return l, true
		}
	}
	return model.List{}, false
}

func (a *App) Tasks() []model.Task {
	return a.tasks
}

func (a *App) Lists() []model.List {
	return a.lists
}

func (a *App) Task(id int) (model.Task, bool) {
	if i := a.indexOf(id); i >= 0 {
		return a.tasks[i], true
	}
	return model.Task{}, false
}

func (a *App) MyDayOrder() []int {
	return a.myDayOrder
}

// Chord records a press of the chord key. It returns true when the press
// completes the chord, which also clears it.
func (a *App) Chord() bool {
	if a.chordPending {
		a.chordPending = false
		return true
	}
	a.chordPending = true
	return false
}

func (a *App) ClearChord() {
	a.chordPending = false
}

func (a *App) ChordPending() bool {
	return a.chordPending
}

// newInput returns the focused editor field shared by the editor screens.
func newInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 512
	ti.Prompt = "> "
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()
	return ti
}

func (a *App) Input() string {
	return a.input.Value()
}

// InputField exposes the editor field for drawing.
func (a *App) InputField() textinput.Model {
	return a.input
}

func (a *App) SetInput(s string) {
	a.input.SetValue(s)
	a.input.CursorEnd()
}

func (a *App) ClearInput() {
	a.input.Reset()
}

// EditInput applies a key to the editor field: insertion at the cursor,
// cursor movement, and character or word deletion.
func (a *App) EditInput(msg tea.KeyMsg) {
	a.input, _ = a.input.Update(msg)
}

func (a *App) RequestQuit() {
	a.quit = true
}

func (a *App) ShouldQuit() bool {
	return a.quit
}

func (a *App) indexOf(id int) int {
	for i := range a.tasks {
		if a.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (a *App) saveTasks() error {
	if err := a.store.SaveTasks(a.tasks); err != nil {
		logger.Error("save tasks failed", err, zap.Int("count", len(a.tasks)))
		return err
	}
	return nil
}

func (a *App) saveLists() error {
	if err := a.store.SaveLists(a.lists); err != nil {
		logger.Error("save lists failed", err, zap.Int("count", len(a.lists)))
		return err
	}
	return nil
}

package app_test

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myday/internal/app"
	"myday/internal/dates"
	"myday/internal/model"
	"myday/internal/storage"
)

func newStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(t.TempDir(), storage.BackendCSV)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newApp(t *testing.T) (*app.App, *storage.Store) {
	t.Helper()
	store := newStore(t)
	a, err := app.New(store, nil, nil, "My Tasks")
	require.NoError(t, err)
	return a, store
}

func addTask(t *testing.T, a *app.App, title string, listID int) int {
	t.Helper()
	id, err := a.AddTask(model.NewTask(0, title, listID))
	require.NoError(t, err)
	return id
}

func todayAt(hour int) time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, hour, 0, 0, 0, time.Local)
}

// failingStore accepts id allocation but refuses to write.
type failingStore struct {
	next int
}

var errDiskFull = errors.New("disk full")

func (f *failingStore) SaveTasks([]model.Task) error { return errDiskFull }
func (f *failingStore) SaveLists([]model.List) error { return errDiskFull }
func (f *failingStore) NextTaskID() int              { f.next++; return f.next }
func (f *failingStore) NextListID() int              { f.next++; return f.next }

func TestNew_SeedsDefaultList(t *testing.T) {
	a, store := newApp(t)

	require.Len(t, a.Lists(), 1)
	assert.Equal(t, "My Tasks", a.Lists()[0].Name)
	assert.Equal(t, 1, a.Lists()[0].ID)
	assert.IsType(t, app.ListOverview{}, a.Screen())

	persisted, err := store.LoadLists()
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, "My Tasks", persisted[0].Name)
}

func TestNew_KeepsExistingLists(t *testing.T) {
	lists := []model.List{model.NewList(4, "Work")}
	a, err := app.New(newStore(t), nil, lists, "My Tasks")
	require.NoError(t, err)
	require.Len(t, a.Lists(), 1)
	assert.Equal(t, "Work", a.Lists()[0].Name)
}

func TestNew_SeedFailureIsReturned(t *testing.T) {
	_, err := app.New(&failingStore{}, nil, nil, "My Tasks")
	assert.ErrorIs(t, err, errDiskFull)
}

func TestNew_SeedsMyDayOrderByID(t *testing.T) {
	due := todayAt(12)
	t5 := model.NewTask(5, "due today", 1)
	t5.DueDate = &due
	t2 := model.NewTask(2, "flagged", 1)
	t2.InMyDay = true
	t3 := model.NewTask(3, "plain", 1)

	a, err := app.New(newStore(t), []model.Task{t5, t3, t2}, []model.List{model.NewList(1, "L")}, "x")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 5}, a.MyDayOrder())
}

func TestAddTask_AssignsMonotonicIDs(t *testing.T) {
	a, store := newApp(t)

	first := addTask(t, a, "one", 1)
	second := addTask(t, a, "two", 1)
	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)

	require.NoError(t, a.DeleteTask(second))
	third := addTask(t, a, "three", 1)
	assert.Equal(t, 3, third, "ids are never reused")

	persisted, err := store.LoadTasks()
	require.NoError(t, err)
	assert.Len(t, persisted, 2)
}

func TestUpdateTask(t *testing.T) {
	a, _ := newApp(t)
	id := addTask(t, a, "draft", 1)

	task, ok := a.Task(id)
	require.True(t, ok)
	task.Title = "final"
	require.NoError(t, a.UpdateTask(task))

	got, _ := a.Task(id)
	assert.Equal(t, "final", got.Title)

	ghost := model.NewTask(99, "ghost", 1)
	require.NoError(t, a.UpdateTask(ghost))
	_, ok = a.Task(99)
	assert.False(t, ok)
}

func TestDeleteTask_PurgesMyDayOrder(t *testing.T) {
	a, _ := newApp(t)
	id := addTask(t, a, "focus", 1)
	require.NoError(t, a.AddTaskToMyDay(id))
	assert.Contains(t, a.MyDayOrder(), id)

	require.NoError(t, a.DeleteTask(id))
	assert.NotContains(t, a.MyDayOrder(), id)
	assert.Empty(t, a.MyDayTasks())
}

func TestToggleTaskCompletion_Plain(t *testing.T) {
	a, _ := newApp(t)
	id := addTask(t, a, "once", 1)

	require.NoError(t, a.ToggleTaskCompletion(id))
	task, _ := a.Task(id)
	assert.True(t, task.Completed)
	assert.NotNil(t, task.CompletedAt)
	assert.Len(t, a.Tasks(), 1)

	require.NoError(t, a.ToggleTaskCompletion(id))
	task, _ = a.Task(id)
	assert.False(t, task.Completed)
	assert.Nil(t, task.CompletedAt)

	assert.NoError(t, a.ToggleTaskCompletion(404))
}

func TestToggleTaskCompletion_DailyRecurrence(t *testing.T) {
	a, store := newApp(t)
	due := dates.EndOfDay(time.Now())
	task := model.NewTask(0, "Standup", 1)
	task.DueDate = &due
	task.Frequency = model.Daily
	task.Notes = "bring coffee"
	id, err := a.AddTask(task)
	require.NoError(t, err)
	a.RefreshMyDay()

	require.NoError(t, a.ToggleTaskCompletion(id))

	require.Len(t, a.Tasks(), 2)
	next := a.Tasks()[1]
	assert.NotEqual(t, id, next.ID)
	assert.Equal(t, "Standup", next.Title)
	assert.Equal(t, 1, next.ListID)
	assert.Equal(t, model.Daily, next.Frequency)
	assert.Equal(t, "bring coffee", next.Notes)
	assert.False(t, next.Completed)
	assert.False(t, next.InMyDay)
	require.NotNil(t, next.DueDate)
	assert.True(t, dates.EndOfDay(time.Now().AddDate(0, 0, 1)).Equal(*next.DueDate))
	assert.NotContains(t, a.MyDayOrder(), next.ID)

	persisted, err := store.LoadTasks()
	require.NoError(t, err)
	assert.Len(t, persisted, 2)

	// Reopening the completed task does not spawn another instance.
	require.NoError(t, a.ToggleTaskCompletion(id))
	assert.Len(t, a.Tasks(), 2)
}

func TestToggleTaskCompletion_RecurrenceLandingTodayJoinsMyDay(t *testing.T) {
	a, _ := newApp(t)
	yesterday := dates.EndOfDay(time.Now().AddDate(0, 0, -1))
	task := model.NewTask(0, "Vitamins", 1)
	task.DueDate = &yesterday
	task.Frequency = model.Daily
	id, err := a.AddTask(task)
	require.NoError(t, err)

	require.NoError(t, a.ToggleTaskCompletion(id))
	next := a.Tasks()[1]
	assert.True(t, next.IsDueToday())
	assert.Equal(t, []int{next.ID}, a.MyDayOrder())
}

func TestToggleTaskCompletion_NoDueDateStartsFromNow(t *testing.T) {
	a, _ := newApp(t)
	task := model.NewTask(0, "Review", 1)
	task.Frequency = model.Weekly
	id, err := a.AddTask(task)
	require.NoError(t, err)

	before := time.Now()
	require.NoError(t, a.ToggleTaskCompletion(id))
	next := a.Tasks()[1]
	require.NotNil(t, next.DueDate)
	assert.WithinDuration(t, before.AddDate(0, 0, 7), *next.DueDate, time.Minute)
}

func TestToggleTaskCompletion_SaveFailureKeepsMemory(t *testing.T) {
	store := &failingStore{}
	a, err := app.New(store, nil, []model.List{model.NewList(1, "L")}, "x")
	require.NoError(t, err)

	id, err := a.AddTask(model.NewTask(0, "x", 1))
	assert.ErrorIs(t, err, errDiskFull)

	err = a.ToggleTaskCompletion(id)
	assert.ErrorIs(t, err, errDiskFull)
	task, ok := a.Task(id)
	require.True(t, ok)
	assert.True(t, task.Completed)
}

func TestTasksForCurrentList(t *testing.T) {
	a, _ := newApp(t)
	listID, err := a.AddList(model.NewList(0, "Home"))
	require.NoError(t, err)
	assert.Equal(t, 2, listID)

	addTask(t, a, "a", 1)
	addTask(t, a, "b", listID)
	addTask(t, a, "c", listID)

	assert.Empty(t, a.TasksForCurrentList())

	a.OpenList(listID)
	got := a.TasksForCurrentList()
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Title)
	assert.Equal(t, "c", got[1].Title)
	assert.IsType(t, app.TaskList{}, a.Screen())

	l, ok := a.CurrentList()
	require.True(t, ok)
	assert.Equal(t, "Home", l.Name)
}

func TestMyDayTasks_OrderAndMembership(t *testing.T) {
	a, _ := newApp(t)
	first := addTask(t, a, "first", 1)
	second := addTask(t, a, "second", 1)
	addTask(t, a, "not in my day", 1)

	require.NoError(t, a.AddTaskToMyDay(second))
	require.NoError(t, a.AddTaskToMyDay(first))

	got := a.MyDayTasks()
	require.Len(t, got, 2)
	assert.Equal(t, second, got[0].ID)
	assert.Equal(t, first, got[1].ID)

	a.MoveTaskDownInMyDay(second)
	got = a.MyDayTasks()
	assert.Equal(t, first, got[0].ID)
	assert.Equal(t, second, got[1].ID)

	a.MoveTaskDownInMyDay(second)
	assert.Equal(t, []int{first, second}, a.MyDayOrder(), "already at the bottom")

	a.MoveTaskUpInMyDay(first)
	assert.Equal(t, []int{first, second}, a.MyDayOrder(), "already at the top")

	a.MoveTaskUpInMyDay(404)
	assert.Equal(t, []int{first, second}, a.MyDayOrder())
}

func TestMyDayTasks_UnorderedDueTodayComesLast(t *testing.T) {
	due := todayAt(9)
	dueTask := model.NewTask(1, "due", 1)
	dueTask.DueDate = &due

	a, err := app.New(newStore(t), nil, []model.List{model.NewList(1, "L")}, "x")
	require.NoError(t, err)

	flagged := addTask(t, a, "flagged", 1)
	require.NoError(t, a.AddTaskToMyDay(flagged))

	dueTask.Title = "due later"
	dueID, err := a.AddTask(dueTask)
	require.NoError(t, err)

	got := a.MyDayTasks()
	require.Len(t, got, 2)
	assert.Equal(t, flagged, got[0].ID)
	assert.Equal(t, dueID, got[1].ID)
}

func TestRemoveTaskFromMyDay_Idempotent(t *testing.T) {
	a, _ := newApp(t)
	id := addTask(t, a, "once", 1)
	require.NoError(t, a.AddTaskToMyDay(id))

	require.NoError(t, a.RemoveTaskFromMyDay(id))
	once, _ := a.Task(id)
	orderOnce := append([]int(nil), a.MyDayOrder()...)

	require.NoError(t, a.RemoveTaskFromMyDay(id))
	twice, _ := a.Task(id)

	assert.Equal(t, once, twice)
	assert.Equal(t, orderOnce, a.MyDayOrder())
	assert.False(t, twice.InMyDay)
}

func TestMyDayOrder_NoDuplicates(t *testing.T) {
	a, _ := newApp(t)
	ids := []int{addTask(t, a, "a", 1), addTask(t, a, "b", 1), addTask(t, a, "c", 1)}

	for i := 0; i < 3; i++ {
		for _, id := range ids {
			require.NoError(t, a.AddTaskToMyDay(id))
			a.MoveTaskUpInMyDay(id)
			a.MoveTaskDownInMyDay(id)
		}
	}

	seen := map[int]bool{}
	for _, id := range a.MyDayOrder() {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, a.MyDayOrder(), 3)
}

func TestMoveTaskToList(t *testing.T) {
	a, store := newApp(t)
	listID, err := a.AddList(model.NewList(0, "Errands"))
	require.NoError(t, err)
	id := addTask(t, a, "post office", 1)

	require.NoError(t, a.MoveTaskToList(id, listID))
	task, _ := a.Task(id)
	assert.Equal(t, listID, task.ListID)

	persisted, err := store.LoadTasks()
	require.NoError(t, err)
	assert.Equal(t, listID, persisted[0].ListID)
}

func TestListStatsAndOverview(t *testing.T) {
	a, _ := newApp(t)
	done := addTask(t, a, "done", 1)
	addTask(t, a, "open", 1)
	late := model.NewTask(0, "late", 1)
	past := time.Now().AddDate(0, 0, -3)
	late.DueDate = &past
	_, err := a.AddTask(late)
	require.NoError(t, err)
	require.NoError(t, a.ToggleTaskCompletion(done))

	completed, total := a.ListStats(1)
	assert.Equal(t, 1, completed)
	assert.Equal(t, 3, total)

	s := a.Overview()
	assert.Equal(t, app.Summary{Total: 3, Completed: 1, MyDay: 0, Overdue: 1}, s)
}

func TestChord(t *testing.T) {
	a, _ := newApp(t)
	assert.False(t, a.Chord())
	assert.True(t, a.ChordPending())
	assert.True(t, a.Chord())
	assert.False(t, a.ChordPending())

	a.Chord()
	a.Open(app.MyDay{})
	assert.False(t, a.ChordPending(), "screen change clears the chord")
}

func TestInputBuffer(t *testing.T) {
	a, _ := newApp(t)
	a.EditInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("héllo")})
	a.EditInput(tea.KeyMsg{Type: tea.KeyBackspace})
	a.EditInput(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "hél", a.Input())
	a.EditInput(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "hé", a.Input())

	a.ClearInput()
	a.EditInput(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "", a.Input())
}

func TestInputBuffer_EditsAtCursor(t *testing.T) {
	a, _ := newApp(t)
	a.SetInput("buy milk")
	a.EditInput(tea.KeyMsg{Type: tea.KeyCtrlW})
	assert.Equal(t, "buy ", a.Input())

	a.EditInput(tea.KeyMsg{Type: tea.KeyLeft})
	a.EditInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	assert.Equal(t, "buys ", a.Input())
}

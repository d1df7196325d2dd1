package storage_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myday/internal/model"
	"myday/internal/storage"
)

var backends = []string{storage.BackendCSV, storage.BackendSQLite}

func sampleTasks() []model.Task {
	created := time.Date(2026, time.May, 1, 8, 0, 0, 0, time.Local)
	due := time.Date(2026, time.May, 3, 23, 59, 59, 0, time.Local)
	remind := time.Date(2026, time.May, 3, 9, 0, 0, 0, time.Local)
	done := time.Date(2026, time.May, 2, 18, 30, 15, 0, time.Local)

	return []model.Task{
		{
			ID:           3,
			Title:        "Water plants, all of them",
			Description:  "balcony \"and\" kitchen",
			ListID:       1,
			DueDate:      &due,
			ReminderDate: &remind,
			Frequency:    model.Weekdays,
			InMyDay:      true,
			Notes:        "line one\nline two",
			CreatedAt:    created,
			UpdatedAt:    created.Add(time.Hour),
		},
		{
			ID:          8,
			Title:       "File taxes",
			ListID:      2,
			Completed:   true,
			CompletedAt: &done,
			CreatedAt:   created,
			UpdatedAt:   done,
		},
	}
}

func sampleLists() []model.List {
	created := time.Date(2026, time.April, 20, 12, 0, 0, 0, time.Local)
	return []model.List{
		{ID: 1, Name: "My Tasks", CreatedAt: created, UpdatedAt: created},
		{ID: 2, Name: "Home", Color: "#6699cc", CreatedAt: created, UpdatedAt: created.Add(time.Minute)},
	}
}

func assertSameTime(t *testing.T, want, got *time.Time) {
	t.Helper()
	if want == nil {
		assert.Nil(t, got)
		return
	}
	require.NotNil(t, got)
	assert.True(t, want.Equal(*got), "want %s got %s", want, got)
}

func assertSameTask(t *testing.T, want, got model.Task) {
	t.Helper()
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Title, got.Title)
	assert.Equal(t, want.Description, got.Description)
	assert.Equal(t, want.ListID, got.ListID)
	assertSameTime(t, want.DueDate, got.DueDate)
	assertSameTime(t, want.ReminderDate, got.ReminderDate)
	assert.Equal(t, want.Frequency, got.Frequency)
	assert.Equal(t, want.Completed, got.Completed)
	assertSameTime(t, want.CompletedAt, got.CompletedAt)
	assert.Equal(t, want.InMyDay, got.InMyDay)
	assert.Equal(t, want.Notes, got.Notes)
	assertSameTime(t, &want.CreatedAt, &got.CreatedAt)
	assertSameTime(t, &want.UpdatedAt, &got.UpdatedAt)
}

func TestStore_RoundTrip(t *testing.T) {
	for _, kind := range backends {
		t.Run(kind, func(t *testing.T) {
			dir := t.TempDir()
			store, err := storage.Open(dir, kind)
			require.NoError(t, err)

			tasks, lists := sampleTasks(), sampleLists()
			require.NoError(t, store.SaveTasks(tasks))
			require.NoError(t, store.SaveLists(lists))
			require.NoError(t, store.Close())

			reopened, err := storage.Open(dir, kind)
			require.NoError(t, err)
			defer reopened.Close()

			gotTasks, gotLists, err := reopened.LoadAll()
			require.NoError(t, err)
			require.Len(t, gotTasks, len(tasks))
			for i := range tasks {
				assertSameTask(t, tasks[i], gotTasks[i])
			}
			require.Len(t, gotLists, len(lists))
			for i := range lists {
				assert.Equal(t, lists[i].ID, gotLists[i].ID)
				assert.Equal(t, lists[i].Name, gotLists[i].Name)
				assert.Equal(t, lists[i].Color, gotLists[i].Color)
				assert.True(t, lists[i].CreatedAt.Equal(gotLists[i].CreatedAt))
				assert.True(t, lists[i].UpdatedAt.Equal(gotLists[i].UpdatedAt))
			}
		})
	}
}

func TestStore_SubSecondPrecisionDropped(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.Open(dir, storage.BackendCSV)
	require.NoError(t, err)

	task := model.NewTask(1, "Precise", 1)
	require.NoError(t, store.SaveTasks([]model.Task{task}))

	got, err := store.LoadTasks()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, task.CreatedAt.Truncate(time.Second).Equal(got[0].CreatedAt))
}

func TestStore_MissingFilesLoadEmpty(t *testing.T) {
	for _, kind := range backends {
		t.Run(kind, func(t *testing.T) {
			store, err := storage.Open(t.TempDir(), kind)
			require.NoError(t, err)
			defer store.Close()

			tasks, lists, err := store.LoadAll()
			require.NoError(t, err)
			assert.Empty(t, tasks)
			assert.Empty(t, lists)
			assert.Equal(t, 1, store.NextTaskID())
			assert.Equal(t, 1, store.NextListID())
		})
	}
}

func TestStore_CountersSeedFromMaxID(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.Open(dir, storage.BackendCSV)
	require.NoError(t, err)
	require.NoError(t, store.SaveTasks(sampleTasks()))
	require.NoError(t, store.SaveLists(sampleLists()))

	_, _, err = store.LoadAll()
	require.NoError(t, err)

	assert.Equal(t, 9, store.NextTaskID())
	assert.Equal(t, 10, store.NextTaskID())
	assert.Equal(t, 3, store.NextListID())
}

func TestStore_CountersAreIndependentPerInstance(t *testing.T) {
	a, err := storage.Open(t.TempDir(), storage.BackendCSV)
	require.NoError(t, err)
	b, err := storage.Open(t.TempDir(), storage.BackendCSV)
	require.NoError(t, err)

	assert.Equal(t, 1, a.NextTaskID())
	assert.Equal(t, 2, a.NextTaskID())
	assert.Equal(t, 1, b.NextTaskID())
}

func TestStore_SaveOverwrites(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.Open(dir, storage.BackendCSV)
	require.NoError(t, err)

	require.NoError(t, store.SaveTasks(sampleTasks()))
	require.NoError(t, store.SaveTasks(sampleTasks()[:1]))

	got, err := store.LoadTasks()
	require.NoError(t, err)
	assert.Len(t, got, 1)

	require.NoError(t, store.SaveTasks(nil))
	data, err := os.ReadFile(filepath.Join(dir, "tasks.csv"))
	require.NoError(t, err)
	assert.Equal(t, "id,title,description,list_id,due_date,reminder_date,recurring_frequency,is_completed,completed_at,is_in_my_day,notes,created_at,updated_at\n", string(data))
}

func TestStore_CSVLayout(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.Open(dir, storage.BackendCSV)
	require.NoError(t, err)
	require.NoError(t, store.SaveLists(sampleLists()[:1]))

	data, err := os.ReadFile(filepath.Join(dir, "lists.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,name,color,created_at,updated_at", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "1,My Tasks,,2026-04-20T12:00:00"))
}

func TestStore_UnknownFrequencyIsFatal(t *testing.T) {
	dir := t.TempDir()
	content := "id,title,description,list_id,due_date,reminder_date,recurring_frequency,is_completed,completed_at,is_in_my_day,notes,created_at,updated_at\n" +
		"1,Bad,,1,,,Hourly,false,,false,,2026-01-01T10:00:00Z,2026-01-01T10:00:00Z\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tasks.csv"), []byte(content), 0o644))

	store, err := storage.Open(dir, storage.BackendCSV)
	require.NoError(t, err)

	_, _, err = store.LoadAll()
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrUnknownFrequency))
}

func TestStore_MalformedTimestampIsFatal(t *testing.T) {
	dir := t.TempDir()
	content := "id,name,color,created_at,updated_at\n1,Work,,yesterday,2026-01-01T10:00:00Z\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lists.csv"), []byte(content), 0o644))

	store, err := storage.Open(dir, storage.BackendCSV)
	require.NoError(t, err)

	_, err = store.LoadLists()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "created_at")
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := storage.Open(t.TempDir(), "parquet")
	assert.True(t, errors.Is(err, storage.ErrUnknownBackend))
}

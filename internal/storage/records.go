package storage

import (
	"fmt"
	"strconv"
	"time"

	"myday/internal/model"
)

type table struct {
	name    string
	columns []string
}

var (
	tasksTable = table{
		name: "tasks",
		columns: []string{
			"id", "title", "description", "list_id", "due_date", "reminder_date",
			"recurring_frequency", "is_completed", "completed_at", "is_in_my_day",
			"notes", "created_at", "updated_at",
		},
	}
	listsTable = table{
		name:    "lists",
		columns: []string{"id", "name", "color", "created_at", "updated_at"},
	}
)

// record is one persisted row keyed by column name. Absent optional values
// are empty strings.
type record map[string]string

func (t table) row(r record) []string {
	out := make([]string, len(t.columns))
	for i, col := range t.columns {
		out[i] = r[col]
	}
	return out
}

func encodeTask(t model.Task) record {
	return record{
		"id":                  strconv.Itoa(t.ID),
		"title":               t.Title,
		"description":         t.Description,
		"list_id":             strconv.Itoa(t.ListID),
		"due_date":            formatOptional(t.DueDate),
		"reminder_date":       formatOptional(t.ReminderDate),
		"recurring_frequency": t.Frequency.String(),
		"is_completed":        strconv.FormatBool(t.Completed),
		"completed_at":        formatOptional(t.CompletedAt),
		"is_in_my_day":        strconv.FormatBool(t.InMyDay),
		"notes":               t.Notes,
		"created_at":          formatTime(t.CreatedAt),
		"updated_at":          formatTime(t.UpdatedAt),
	}
}

func decodeTask(r record) (model.Task, error) {
	var (
		t   model.Task
		err error
	)
	if t.ID, err = parseInt(r, "id"); err != nil {
		return t, err
	}
	if t.ListID, err = parseInt(r, "list_id"); err != nil {
		return t, err
	}
	if t.DueDate, err = parseOptional(r, "due_date"); err != nil {
		return t, err
	}
	if t.ReminderDate, err = parseOptional(r, "reminder_date"); err != nil {
		return t, err
	}
	if t.Frequency, err = model.ParseFrequency(r["recurring_frequency"]); err != nil {
		return t, err
	}
	if t.Completed, err = parseBool(r, "is_completed"); err != nil {
		return t, err
	}
	if t.CompletedAt, err = parseOptional(r, "completed_at"); err != nil {
		return t, err
	}
	if t.InMyDay, err = parseBool(r, "is_in_my_day"); err != nil {
		return t, err
	}
	if t.CreatedAt, err = parseTime(r, "created_at"); err != nil {
		return t, err
	}
	if t.UpdatedAt, err = parseTime(r, "updated_at"); err != nil {
		return t, err
	}
	t.Title = r["title"]
	t.Description = r["description"]
	t.Notes = r["notes"]
	return t, nil
}

func encodeList(l model.List) record {
	return record{
		"id":         strconv.Itoa(l.ID),
		"name":       l.Name,
		"color":      l.Color,
		"created_at": formatTime(l.CreatedAt),
		"updated_at": formatTime(l.UpdatedAt),
	}
}

func decodeList(r record) (model.List, error) {
	var (
		l   model.List
		err error
	)
	if l.ID, err = parseInt(r, "id"); err != nil {
		return l, err
	}
	if l.CreatedAt, err = parseTime(r, "created_at"); err != nil {
		return l, err
	}
	if l.UpdatedAt, err = parseTime(r, "updated_at"); err != nil {
		return l, err
	}
	l.Name = r["name"]
	l.Color = r["color"]
	return l, nil
}

func formatTime(t time.Time) string {
	return t.In(time.Local).Format(time.RFC3339)
}

func formatOptional(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

func parseTime(r record, col string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, r[col])
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", col, err)
	}
	return t.In(time.Local), nil
}

func parseOptional(r record, col string) (*time.Time, error) {
	if r[col] == "" {
		return nil, nil
	}
	t, err := parseTime(r, col)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseInt(r record, col string) (int, error) {
	v, err := strconv.Atoi(r[col])
	if err != nil {
		return 0, fmt.Errorf("%s: %w", col, err)
	}
	return v, nil
}

func parseBool(r record, col string) (bool, error) {
	v, err := strconv.ParseBool(r[col])
	if err != nil {
		return false, fmt.Errorf("%s: %w", col, err)
	}
	return v, nil
}

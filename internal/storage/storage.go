package storage

import (
	"errors"
	"fmt"
	"os"

	"myday/internal/model"
)

const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

var ErrUnknownBackend = errors.New("unknown storage backend")

type backend interface {
	readTable(t table) ([]record, error)
	writeTable(t table, rows [][]string) error
	Close() error
}

// Store loads and saves whole collections and hands out ids. Each entity
// kind has its own counter, seeded from the highest id loaded and never
// rewound.
type Store struct {
	backend    backend
	nextTaskID int
	nextListID int
}

func Open(dataDir, kind string) (*Store, error) {
	if dataDir == "" {
		return nil, errors.New("data dir is empty")
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}

	var b backend
	switch kind {
	case "", BackendCSV:
		b = &csvBackend{dir: dataDir}
	case BackendSQLite:
		sb, err := openSQLite(dataDir)
		if err != nil {
			return nil, err
		}
		b = sb
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, kind)
	}
	return &Store{backend: b, nextTaskID: 1, nextListID: 1}, nil
}

func (s *Store) Close() error {
	return s.backend.Close()
}

// LoadAll reads both collections and reseeds the id counters.
func (s *Store) LoadAll() ([]model.Task, []model.List, error) {
	tasks, err := s.LoadTasks()
	if err != nil {
		return nil, nil, err
	}
	lists, err := s.LoadLists()
	if err != nil {
		return nil, nil, err
	}

	s.nextTaskID = 1
	for _, t := range tasks {
		if t.ID >= s.nextTaskID {
			s.nextTaskID = t.ID + 1
		}
	}
	s.nextListID = 1
	for _, l := range lists {
		if l.ID >= s.nextListID {
			s.nextListID = l.ID + 1
		}
	}
	return tasks, lists, nil
}

func (s *Store) LoadTasks() ([]model.Task, error) {
	records, err := s.backend.readTable(tasksTable)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	tasks := make([]model.Task, 0, len(records))
	for i, rec := range records {
		t, err := decodeTask(rec)
		if err != nil {
			return nil, fmt.Errorf("load tasks: row %d: %w", i+1, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (s *Store) LoadLists() ([]model.List, error) {
	records, err := s.backend.readTable(listsTable)
	if err != nil {
		return nil, fmt.Errorf("load lists: %w", err)
	}
	lists := make([]model.List, 0, len(records))
	for i, rec := range records {
		l, err := decodeList(rec)
		if err != nil {
			return nil, fmt.Errorf("load lists: row %d: %w", i+1, err)
		}
		lists = append(lists, l)
	}
	return lists, nil
}

func (s *Store) SaveTasks(tasks []model.Task) error {
	rows := make([][]string, len(tasks))
	for i, t := range tasks {
		rows[i] = tasksTable.row(encodeTask(t))
	}
	if err := s.backend.writeTable(tasksTable, rows); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

func (s *Store) SaveLists(lists []model.List) error {
	rows := make([][]string, len(lists))
	for i, l := range lists {
		rows[i] = listsTable.row(encodeList(l))
	}
	if err := s.backend.writeTable(listsTable, rows); err != nil {
		return fmt.Errorf("save lists: %w", err)
	}
	return nil
}

func (s *Store) NextTaskID() int {
	id := s.nextTaskID
	s.nextTaskID++
	return id
}

func (s *Store) NextListID() int {
	id := s.nextListID
	s.nextListID++
	return id
}

package storage

import (
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const DefaultDBName = "todo.db"

// sqliteBackend stores each table as a flat SQLite table with the same
// columns as the CSV files.
type sqliteBackend struct {
	db *sql.DB
}

func openSQLite(dataDir string) (*sqliteBackend, error) {
	dsn, err := sqliteDSN(dataDir)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	b := &sqliteBackend{db: db}
	if err := b.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return b, nil
}

func (b *sqliteBackend) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}

func (b *sqliteBackend) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS tasks (
	id INTEGER PRIMARY KEY,
	title TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	list_id INTEGER NOT NULL,
	due_date TEXT NOT NULL DEFAULT '',
	reminder_date TEXT NOT NULL DEFAULT '',
	recurring_frequency TEXT NOT NULL DEFAULT '',
	is_completed TEXT NOT NULL DEFAULT 'false',
	completed_at TEXT NOT NULL DEFAULT '',
	is_in_my_day TEXT NOT NULL DEFAULT 'false',
	notes TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS lists (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL DEFAULT '',
	color TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`
	_, err := b.db.Exec(ddl)
	return err
}

func (b *sqliteBackend) readTable(t table) ([]record, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY rowid;`, strings.Join(t.columns, ", "), t.name)
	rows, err := b.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []record
	for rows.Next() {
		values := make([]sql.NullString, len(t.columns))
		dest := make([]any, len(values))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		rec := make(record, len(t.columns))
		for i, col := range t.columns {
			rec[col] = values[i].String
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// writeTable replaces every row of the table in one transaction.
func (b *sqliteBackend) writeTable(t table, rows [][]string) error {
	tx, err := b.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(fmt.Sprintf(`DELETE FROM %s;`, t.name)); err != nil {
		return err
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(t.columns)), ", ")
	stmt, err := tx.Prepare(fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s);`,
		t.name, strings.Join(t.columns, ", "), placeholders))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range rows {
		args := make([]any, len(row))
		for i, v := range row {
			args[i] = v
		}
		if _, err := stmt.Exec(args...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// sqliteDSN points at the database file inside dataDir. The file is created
// on first open, and a locked file is waited on for up to five seconds.
func sqliteDSN(dataDir string) (string, error) {
	dir, err := filepath.Abs(dataDir)
	if err != nil {
		return "", fmt.Errorf("resolve data dir %s: %w", dataDir, err)
	}
	q := url.Values{}
	q.Set("mode", "rwc")
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "journal_mode(WAL)")
	u := url.URL{
		Scheme:   "file",
		Path:     filepath.Join(dir, DefaultDBName),
		RawQuery: q.Encode(),
	}
	return u.String(), nil
}

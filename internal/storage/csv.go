package storage

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
)

// csvBackend keeps one <table>.csv file per table under dir.
type csvBackend struct {
	dir string
}

func (b *csvBackend) path(t table) string {
	return filepath.Join(b.dir, t.name+".csv")
}

func (b *csvBackend) readTable(t table) ([]record, error) {
	f, err := os.Open(b.path(t))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var records []record
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		rec := make(record, len(header))
		for i, col := range header {
			rec[col] = row[i]
		}
		records = append(records, rec)
	}
	return records, nil
}

// writeTable replaces the whole file. Rows go to a temp file in the same
// directory which is renamed over the target once flushed.
func (b *csvBackend) writeTable(t table, rows [][]string) error {
	tmp, err := os.CreateTemp(b.dir, t.name+".*.csv.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	w := csv.NewWriter(tmp)
	if err := w.Write(t.columns); err != nil {
		tmp.Close()
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, b.path(t))
}

func (b *csvBackend) Close() error {
	return nil
}

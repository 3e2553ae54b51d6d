package importer

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"
)

// table is one parsed CSV file: a header index plus data rows.
type table struct {
	columns map[string]int
	rows    [][]string
}

func readTable(path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return &table{columns: map[string]int{}}, nil
	}

	columns := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		columns[name] = i
	}
	return &table{columns: columns, rows: records[1:]}, nil
}

func (t *table) each(fn func(row record) error) error {
	for i, row := range t.rows {
		if err := fn(record{table: t, values: row}); err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
	}
	return nil
}

// record is one data row with column access by header name.
type record struct {
	table  *table
	values []string
}

func (r record) get(column string) string {
	idx, ok := r.table.columns[column]
	if !ok || idx >= len(r.values) {
		return ""
	}
	return r.values[idx]
}

func (r record) getInt(column string) (int64, error) {
	value, err := strconv.ParseInt(r.get(column), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", column, err)
	}
	return value, nil
}

func (r record) getTime(column string) (time.Time, bool) {
	parsed, err := time.Parse(time.RFC3339, r.get(column))
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
)

// Row is a single record, column name to raw cell text.
type Row map[string]string

// Table is the dataset loaded into memory. Every cell is kept as text;
// numeric and date parsing is deferred to whoever consumes a column.
// A Table is never mutated after Load returns.
type Table struct {
	Columns []string
	Rows    []Row

	columnSet map[string]struct{}
}

// Load reads a CSV file into a Table. The first row is the header; rows
// shorter than the header are padded with empty cells.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}

	if len(records) == 0 {
		return &Table{columnSet: map[string]struct{}{}}, nil
	}

	header := records[0]
	t := &Table{
		Columns:   header,
		Rows:      make([]Row, 0, len(records)-1),
		columnSet: make(map[string]struct{}, len(header)),
	}
	for _, col := range header {
		t.columnSet[col] = struct{}{}
	}

	for _, rec := range records[1:] {
		row := make(Row, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			} else {
				row[col] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

// HasColumn reports whether the named column exists in the header.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.columnSet[name]
	return ok
}

// Column returns all cell values for the named column in row order.
// Returns nil when the column does not exist.
func (t *Table) Column(name string) []string {
	if !t.HasColumn(name) {
		return nil
	}
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[name]
	}
	return values
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// FromRecords builds a Table from a header and pre-parsed rows. Used by
// tests and by anything that already has records in memory.
func FromRecords(columns []string, rows []Row) *Table {
	t := &Table{
		Columns:   columns,
		Rows:      rows,
		columnSet: make(map[string]struct{}, len(columns)),
	}
	for _, col := range columns {
		t.columnSet[col] = struct{}{}
	}
	return t
}

package table

// Row-aligned named columns read from one worksheet.
// Cells are kept as raw text and converted on access.

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrColumnNotFound is wrapped by ColumnError.
var ErrColumnNotFound = errors.New("column not found")

// ColumnError names the sheet and column that a lookup could not find.
type ColumnError struct {
	Sheet  string
	Column string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("sheet %q: column %q not found", e.Sheet, e.Column)
}

func (e *ColumnError) Unwrap() error {
	return ErrColumnNotFound
}

// ValueError reports a cell that should be numeric but is not.
// Row is 1-based and counts the header row, matching the worksheet.
type ValueError struct {
	Sheet  string
	Column string
	Row    int
	Value  string
	Err    error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("sheet %q: column %q row %d: invalid number %q: %v", e.Sheet, e.Column, e.Row, e.Value, e.Err)
}

func (e *ValueError) Unwrap() error {
	return e.Err
}

type Table struct {
	Name    string
	Headers []string
	rows    [][]string
	index   map[string]int
}

// New builds a table. Headers are trimmed; ragged rows are padded with empty
// cells so every column has Len() values.
func New(name string, headers []string, rows [][]string) *Table {
	t := &Table{
		Name:    name,
		Headers: make([]string, len(headers)),
		rows:    make([][]string, 0, len(rows)),
		index:   make(map[string]int, len(headers)),
	}
	for i, h := range headers {
		h = strings.TrimSpace(h)
		t.Headers[i] = h
		if _, dup := t.index[h]; !dup && h != "" {
			t.index[h] = i
		}
	}
	for _, row := range rows {
		padded := make([]string, len(headers))
		copy(padded, row)
		t.rows = append(t.rows, padded)
	}
	return t
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

func (t *Table) column(name string) (int, error) {
	idx, ok := t.index[name]
	if !ok {
		return 0, &ColumnError{Sheet: t.Name, Column: name}
	}
	return idx, nil
}

// Strings returns the trimmed text of a column.
func (t *Table) Strings(name string) ([]string, error) {
	idx, err := t.column(name)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(t.rows))
	for i, row := range t.rows {
		out[i] = strings.TrimSpace(row[idx])
	}
	return out, nil
}

// Floats parses a numeric column. Empty cells become Null; any other
// unparsable cell is a *ValueError.
func (t *Table) Floats(name string) ([]NullFloat, error) {
	idx, err := t.column(name)
	if err != nil {
		return nil, err
	}
	out := make([]NullFloat, len(t.rows))
	for i, row := range t.rows {
		raw := strings.TrimSpace(row[idx])
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, &ValueError{Sheet: t.Name, Column: name, Row: i + 2, Value: raw, Err: err}
		}
		out[i] = Some(v)
	}
	return out, nil
}

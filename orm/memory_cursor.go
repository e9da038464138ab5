package orm

import (
	"fmt"
)

// MemoryCursor is a Cursor over rows held in memory.
type MemoryCursor struct {
	row

	rows [][]any
	pos  int
}

var _ Cursor = (*MemoryCursor)(nil)

// NewMemoryCursor returns an empty cursor with the given columns, positioned before the first row.
func NewMemoryCursor(columns []string) *MemoryCursor {
	return &MemoryCursor{row: row{columns: columns}, pos: -1}
}

// CursorFromValues returns a cursor positioned on a single row holding values.
func CursorFromValues(values *Values) *MemoryCursor {
	c := NewMemoryCursor(values.Keys())
	c.AddRow(values.Args()...)
	c.Next()

	return c
}

// AddRow appends a row. A row with the wrong number of values is recorded in Err.
func (c *MemoryCursor) AddRow(values ...any) *MemoryCursor {
	if len(values) != len(c.columns) {
		c.setErr(fmt.Errorf("orm: row has %d values, cursor has %d columns", len(values), len(c.columns)))

		return c
	}

	c.rows = append(c.rows, values)

	return c
}

// Next advances to the next row and reports whether there is one.
func (c *MemoryCursor) Next() bool {
	if c.pos+1 >= len(c.rows) {
		c.pos = len(c.rows)
		c.current = nil

		return false
	}

	c.pos++
	c.current = c.rows[c.pos]

	return true
}

// Len returns the number of rows.
func (c *MemoryCursor) Len() int {
	return len(c.rows)
}

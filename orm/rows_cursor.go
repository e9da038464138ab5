package orm

import (
	"database/sql"
	"fmt"
)

// RowsCursor adapts *sql.Rows to Cursor.
type RowsCursor struct {
	row

	rows *sql.Rows
}

var _ Cursor = (*RowsCursor)(nil)

// NewRowsCursor wraps rows. The caller keeps ownership and must close rows.
func NewRowsCursor(rows *sql.Rows) (*RowsCursor, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("orm: read columns: %w", err)
	}

	return &RowsCursor{row: row{columns: columns}, rows: rows}, nil
}

// Next scans the next row and reports whether there is one.
func (c *RowsCursor) Next() bool {
	c.current = nil

	if c.err != nil || !c.rows.Next() {
		return false
	}

	dest := make([]any, len(c.columns))
	ptrs := make([]any, len(c.columns))

	for i := range dest {
		ptrs[i] = &dest[i]
	}

	if err := c.rows.Scan(ptrs...); err != nil {
		c.setErr(fmt.Errorf("orm: scan row: %w", err))

		return false
	}

	c.current = dest

	return true
}

// Err returns the first accessor, scan or iteration error.
func (c *RowsCursor) Err() error {
	if c.err != nil {
		return c.err
	}

	return c.rows.Err()
}

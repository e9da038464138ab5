package orm

import (
	"math"
)

// Cursor is a read-only view of the current row of a query result.
//
// Accessors never fail individually: a value that cannot be converted reads
// as the zero value and the first such failure is kept and reported by Err.
// NULL reads as the zero value of every accessor.
type Cursor interface {
	ColumnNames() []string
	IsNull(i int) bool
	GetInt(i int) int32
	GetLong(i int) int64
	GetFloat(i int) float32
	GetDouble(i int) float64
	GetString(i int) string
	GetBlob(i int) []byte
	Err() error
}

// row implements the Cursor accessors over one materialised row.
type row struct {
	columns []string
	current []any
	err     error
}

func (r *row) ColumnNames() []string {
	return r.columns
}

func (r *row) Err() error {
	return r.err
}

func (r *row) setErr(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *row) value(i int) (any, bool) {
	if r.current == nil {
		r.setErr(ErrNoRow)

		return nil, false
	}

	if i < 0 || i >= len(r.current) {
		r.setErr(ErrColumnIndex)

		return nil, false
	}

	return r.current[i], true
}

func (r *row) fail(i int, v any, target string, err error) {
	r.setErr(&ConversionError{Column: r.columns[i], Value: v, Target: target, Err: err})
}

func (r *row) IsNull(i int) bool {
	v, ok := r.value(i)

	return !ok || v == nil
}

func (r *row) GetInt(i int) int32 {
	v, ok := r.value(i)
	if !ok {
		return 0
	}

	n, err := toInt64(v)
	if err == nil && (n < math.MinInt32 || n > math.MaxInt32) {
		err = errOverflow
	}

	if err != nil {
		r.fail(i, v, "int32", err)

		return 0
	}

	return int32(n)
}

func (r *row) GetLong(i int) int64 {
	v, ok := r.value(i)
	if !ok {
		return 0
	}

	n, err := toInt64(v)
	if err != nil {
		r.fail(i, v, "int64", err)

		return 0
	}

	return n
}

func (r *row) GetFloat(i int) float32 {
	return float32(r.getFloat64(i, "float32"))
}

func (r *row) GetDouble(i int) float64 {
	return r.getFloat64(i, "float64")
}

func (r *row) getFloat64(i int, target string) float64 {
	v, ok := r.value(i)
	if !ok {
		return 0
	}

	f, err := toFloat64(v)
	if err != nil {
		r.fail(i, v, target, err)

		return 0
	}

	return f
}

func (r *row) GetString(i int) string {
	v, ok := r.value(i)
	if !ok {
		return ""
	}

	s, err := toString(v)
	if err != nil {
		r.fail(i, v, "string", err)

		return ""
	}

	return s
}

func (r *row) GetBlob(i int) []byte {
	v, ok := r.value(i)
	if !ok {
		return nil
	}

	b, err := toBytes(v)
	if err != nil {
		r.fail(i, v, "[]byte", err)

		return nil
	}

	return b
}

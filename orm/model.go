package orm

import (
	"errors"
)

// IDColumn is the column holding Model.ID.
const IDColumn = "id"

// Model is the base of persisted entities. Embed it to make a struct
// referenceable from other models by id.
type Model struct {
	ID int64
}

func (m Model) GetID() int64 {
	return m.ID
}

func (m *Model) SetID(id int64) {
	m.ID = id
}

// Entity is implemented by every type embedding Model.
type Entity interface {
	GetID() int64
}

type modelMarshaller struct{}

func init() {
	Register[Model](modelMarshaller{})
}

// LoadFromCursor reads the id column when present. A missing column leaves ID unchanged.
func (modelMarshaller) LoadFromCursor(model any, cursor Cursor) error {
	m, ok := model.(*Model)
	if !ok {
		return NewModelTypeError("Model", model)
	}

	i, err := ColumnIndex(cursor.ColumnNames(), IDColumn)
	if errors.Is(err, ErrColumnNotFound) {
		return nil
	}

	if cursor.IsNull(i) {
		m.ID = 0
	} else {
		m.ID = cursor.GetLong(i)
	}

	return cursor.Err()
}

// FillValues writes id only once the model has one, so inserts can assign it.
func (modelMarshaller) FillValues(model any, values *Values) error {
	m, ok := model.(*Model)
	if !ok {
		return NewModelTypeError("Model", model)
	}

	if m.ID != 0 {
		values.PutLong(IDColumn, m.ID)
	}

	return nil
}

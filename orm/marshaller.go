package orm

import (
	"fmt"
	"reflect"
	"sync"
)

// Marshaller copies one model type between a Cursor and Values.
// Generated marshallers accept a pointer to their model type.
type Marshaller interface {
	LoadFromCursor(model any, cursor Cursor) error
	FillValues(model any, values *Values) error
}

var marshallers = struct {
	sync.RWMutex
	m map[reflect.Type]Marshaller
}{m: make(map[reflect.Type]Marshaller)}

// Register installs m as the marshaller for model type T.
func Register[T any](m Marshaller) {
	marshallers.Lock()
	defer marshallers.Unlock()

	marshallers.m[reflect.TypeFor[T]()] = m
}

// Lookup returns the marshaller registered for the model type t.
func Lookup(t reflect.Type) (Marshaller, bool) {
	marshallers.RLock()
	defer marshallers.RUnlock()

	m, ok := marshallers.m[t]

	return m, ok
}

func lookupModel(model any) (Marshaller, error) {
	t := reflect.TypeOf(model)
	if t == nil || t.Kind() != reflect.Pointer {
		return nil, fmt.Errorf("orm: model must be a non-nil pointer, got %T", model)
	}

	m, ok := Lookup(t.Elem())
	if !ok {
		return nil, fmt.Errorf("%w for %s", ErrNoMarshaller, t.Elem())
	}

	return m, nil
}

// Load reads the current cursor row into model, a pointer to a registered type.
func Load(model any, cursor Cursor) error {
	m, err := lookupModel(model)
	if err != nil {
		return err
	}

	return m.LoadFromCursor(model, cursor)
}

// Fill writes model, a pointer to a registered type, into values.
func Fill(model any, values *Values) error {
	m, err := lookupModel(model)
	if err != nil {
		return err
	}

	return m.FillValues(model, values)
}

// LoadEmbedded loads an embedded struct when T has a marshaller and does nothing otherwise.
func LoadEmbedded[T any](embedded *T, cursor Cursor) error {
	m, ok := Lookup(reflect.TypeFor[T]())
	if !ok {
		return nil
	}

	return m.LoadFromCursor(embedded, cursor)
}

// FillEmbedded fills from an embedded struct when T has a marshaller and does nothing otherwise.
func FillEmbedded[T any](embedded *T, values *Values) error {
	m, ok := Lookup(reflect.TypeFor[T]())
	if !ok {
		return nil
	}

	return m.FillValues(embedded, values)
}

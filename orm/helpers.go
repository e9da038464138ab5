package orm

import (
	"encoding"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode/utf8"
)

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// ColumnIndex returns the index of name in columns. An exact match wins over
// a case-insensitive one.
func ColumnIndex(columns []string, name string) (int, error) {
	for i, c := range columns {
		if c == name {
			return i, nil
		}
	}

	for i, c := range columns {
		if strings.EqualFold(c, name) {
			return i, nil
		}
	}

	return -1, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
}

// FirstRune returns the first rune of s, or 0 for an empty string.
func FirstRune(s string) rune {
	if s == "" {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(s)

	return r
}

// EntityResolver returns the entity of type t with the given id, or nil to
// fall back to an unloaded reference.
type EntityResolver func(t reflect.Type, id int64) (any, error)

var entityResolver struct {
	sync.RWMutex
	fn EntityResolver
}

// SetEntityResolver installs the function GetEntity uses to load referenced
// entities. Passing nil restores unloaded references.
func SetEntityResolver(fn EntityResolver) {
	entityResolver.Lock()
	defer entityResolver.Unlock()

	entityResolver.fn = fn
}

// GetEntity reads column i as the id of a referenced T. Without a resolver,
// or when the resolver returns nil, the result is a new T carrying only the id;
// nil embedded pointers leading to its SetID method are allocated first.
func GetEntity[T any, PT interface {
	*T
	SetID(id int64)
}](cursor Cursor, i int) (*T, error) {
	id := cursor.GetLong(i)

	entityResolver.RLock()
	fn := entityResolver.fn
	entityResolver.RUnlock()

	if fn != nil {
		v, err := fn(reflect.TypeFor[T](), id)
		if err != nil {
			return nil, fmt.Errorf("orm: resolve %s %d: %w", reflect.TypeFor[T](), id, err)
		}

		if v != nil {
			e, ok := v.(*T)
			if !ok {
				return nil, fmt.Errorf("orm: resolver returned %T for %s", v, reflect.TypeFor[T]())
			}

			return e, nil
		}
	}

	e := new(T)
	if err := allocIDPath(reflect.ValueOf(e).Elem()); err != nil {
		return nil, err
	}

	PT(e).SetID(id)

	return e, nil
}

// EntityID returns the id of e. It is 0 when e is nil or when the embedded
// pointer e gets GetID through is nil.
func EntityID[T any, PT interface {
	*T
	GetID() int64
}](e *T) int64 {
	if e == nil || !idPathSet(reflect.ValueOf(e).Elem()) {
		return 0
	}

	return PT(e).GetID()
}

var idPaths sync.Map // reflect.Type -> []int

// idPath returns the indexes of the embedded fields through which t is
// promoted a GetID method, outermost first. It is empty when no embedded
// struct provides one.
func idPath(t reflect.Type) []int {
	if p, ok := idPaths.Load(t); ok {
		return p.([]int)
	}

	var path []int

	seen := make(map[reflect.Type]bool)
	for cur := t; cur.Kind() == reflect.Struct && !seen[cur]; {
		seen[cur] = true
		next := -1

		for i := range cur.NumField() {
			f := cur.Field(i)
			if !f.Anonymous {
				continue
			}

			ft := f.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}

			if ft.Kind() != reflect.Struct {
				continue
			}

			if _, ok := reflect.PointerTo(ft).MethodByName("GetID"); ok {
				next = i
				cur = ft

				break
			}
		}

		if next < 0 {
			break
		}

		path = append(path, next)
	}

	idPaths.Store(t, path)

	return path
}

// allocIDPath allocates the nil embedded pointers on the idPath of v.
func allocIDPath(v reflect.Value) error {
	for _, i := range idPath(v.Type()) {
		f := v.Field(i)

		if f.Kind() == reflect.Pointer {
			if f.IsNil() {
				if !f.CanSet() {
					return fmt.Errorf("orm: %s: cannot allocate unexported embedded %s", v.Type(), f.Type())
				}

				f.Set(reflect.New(f.Type().Elem()))
			}

			f = f.Elem()
		}

		v = f
	}

	return nil
}

// idPathSet reports whether every embedded pointer on the idPath of v is set.
func idPathSet(v reflect.Value) bool {
	for _, i := range idPath(v.Type()) {
		f := v.Field(i)

		if f.Kind() == reflect.Pointer {
			if f.IsNil() {
				return false
			}

			f = f.Elem()
		}

		v = f
	}

	return true
}

// GetEnum reads column i as the text form of T. NULL reads as the zero T.
func GetEnum[T any, PT interface {
	*T
	encoding.TextUnmarshaler
}](cursor Cursor, i int) (T, error) {
	var v T

	if cursor.IsNull(i) {
		return v, nil
	}

	if err := PT(&v).UnmarshalText([]byte(cursor.GetString(i))); err != nil {
		return v, fmt.Errorf("orm: column %q: %w", cursor.ColumnNames()[i], err)
	}

	return v, nil
}

// GetEnumPtr is GetEnum for *T fields.
func GetEnumPtr[T any, PT interface {
	*T
	encoding.TextUnmarshaler
}](cursor Cursor, i int) (*T, error) {
	v, err := GetEnum[T, PT](cursor, i)
	if err != nil {
		return nil, err
	}

	return &v, nil
}

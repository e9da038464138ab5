package orm

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// ColumnType is the storage class a Serializer reads and writes.
type ColumnType int

const (
	ColumnInteger ColumnType = iota + 1
	ColumnReal
	ColumnText
	ColumnBlob
)

func (t ColumnType) String() string {
	switch t {
	case ColumnInteger:
		return "INTEGER"
	case ColumnReal:
		return "REAL"
	case ColumnText:
		return "TEXT"
	case ColumnBlob:
		return "BLOB"
	default:
		return fmt.Sprintf("ColumnType(%d)", int(t))
	}
}

// Serializer converts a Go value to and from a single column.
//
// Serialize returns an int64, float64, string or []byte matching ColumnType,
// or nil to store NULL. Deserialize receives the column read with the
// matching accessor; it is never called for NULL.
type Serializer interface {
	ColumnType() ColumnType
	Serialize(v any) (any, error)
	Deserialize(v any) (any, error)
}

// TypeSerializer is a Serializer built from typed functions.
type TypeSerializer[T any] struct {
	Column ColumnType
	To     func(T) (any, error)
	From   func(any) (T, error)
}

func (s TypeSerializer[T]) ColumnType() ColumnType {
	return s.Column
}

func (s TypeSerializer[T]) Serialize(v any) (any, error) {
	t, ok := v.(T)
	if !ok {
		return nil, fmt.Errorf("orm: serializer for %s got %T", reflect.TypeFor[T](), v)
	}

	return s.To(t)
}

func (s TypeSerializer[T]) Deserialize(v any) (any, error) {
	return s.From(v)
}

// JSONSerializer stores T as JSON text.
func JSONSerializer[T any]() Serializer {
	return TypeSerializer[T]{
		Column: ColumnText,
		To: func(v T) (any, error) {
			b, err := json.Marshal(v)
			if err != nil {
				return nil, err
			}

			return string(b), nil
		},
		From: func(v any) (T, error) {
			var out T

			s, err := toString(v)
			if err != nil {
				return out, err
			}

			err = json.Unmarshal([]byte(s), &out)

			return out, err
		},
	}
}

// TimeSerializer stores time.Time as Unix milliseconds. The zero time is stored as NULL.
func TimeSerializer() Serializer {
	return TypeSerializer[time.Time]{
		Column: ColumnInteger,
		To: func(t time.Time) (any, error) {
			if t.IsZero() {
				return nil, nil
			}

			return t.UnixMilli(), nil
		},
		From: func(v any) (time.Time, error) {
			ms, err := toInt64(v)
			if err != nil {
				return time.Time{}, err
			}

			return time.UnixMilli(ms), nil
		},
	}
}

// UUIDSerializer stores uuid.UUID in its canonical text form. uuid.Nil is stored as NULL.
func UUIDSerializer() Serializer {
	return TypeSerializer[uuid.UUID]{
		Column: ColumnText,
		To: func(u uuid.UUID) (any, error) {
			if u == uuid.Nil {
				return nil, nil
			}

			return u.String(), nil
		},
		From: func(v any) (uuid.UUID, error) {
			s, err := toString(v)
			if err != nil {
				return uuid.Nil, err
			}

			return uuid.Parse(s)
		},
	}
}

var serializers = struct {
	sync.RWMutex
	m map[reflect.Type]Serializer
}{m: make(map[reflect.Type]Serializer)}

func init() {
	RegisterSerializer[time.Time](TimeSerializer())
	RegisterSerializer[uuid.UUID](UUIDSerializer())
}

// RegisterSerializer makes T serializable, replacing any earlier registration.
// A serializer for T also serves *T.
func RegisterSerializer[T any](s Serializer) {
	serializers.Lock()
	defer serializers.Unlock()

	serializers.m[reflect.TypeFor[T]()] = s
}

// lookupSerializer finds the serializer for t, falling back to the element
// type of a pointer. viaElem is set when the fallback matched.
func lookupSerializer(t reflect.Type) (s Serializer, viaElem bool, ok bool) {
	serializers.RLock()
	defer serializers.RUnlock()

	if s, ok = serializers.m[t]; ok {
		return s, false, true
	}

	if t.Kind() == reflect.Pointer {
		if s, ok = serializers.m[t.Elem()]; ok {
			return s, true, true
		}
	}

	return nil, false, false
}

// IsSerializable reports whether T (or *T's element) has a registered serializer.
func IsSerializable[T any]() bool {
	_, _, ok := lookupSerializer(reflect.TypeFor[T]())

	return ok
}

// GetSerializable reads column i through the serializer registered for T.
// NULL reads as the zero T.
func GetSerializable[T any](cursor Cursor, i int) (T, error) {
	var zero T

	typ := reflect.TypeFor[T]()

	s, viaElem, ok := lookupSerializer(typ)
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrNoSerializer, typ)
	}

	if cursor.IsNull(i) {
		return zero, cursor.Err()
	}

	var raw any

	switch s.ColumnType() {
	case ColumnInteger:
		raw = cursor.GetLong(i)
	case ColumnReal:
		raw = cursor.GetDouble(i)
	case ColumnBlob:
		raw = cursor.GetBlob(i)
	default:
		raw = cursor.GetString(i)
	}

	if err := cursor.Err(); err != nil {
		return zero, err
	}

	v, err := s.Deserialize(raw)
	if err != nil {
		return zero, fmt.Errorf("orm: deserialize %s: %w", typ, err)
	}

	if v == nil {
		return zero, nil
	}

	rv := reflect.ValueOf(v)

	if viaElem {
		if !rv.Type().AssignableTo(typ.Elem()) {
			return zero, fmt.Errorf("orm: serializer for %s returned %T", typ.Elem(), v)
		}

		p := reflect.New(typ.Elem())
		p.Elem().Set(rv)
		rv = p
	}

	out, ok := rv.Interface().(T)
	if !ok {
		return zero, fmt.Errorf("orm: serializer for %s returned %T", typ, v)
	}

	return out, nil
}

// SetSerializable writes v to key through the serializer registered for T.
// A nil pointer is written as NULL.
func SetSerializable[T any](values *Values, key string, v T) error {
	typ := reflect.TypeFor[T]()

	s, viaElem, ok := lookupSerializer(typ)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoSerializer, typ)
	}

	var in any = v

	if viaElem {
		rv := reflect.ValueOf(&v).Elem()
		if rv.IsNil() {
			values.PutNull(key)

			return nil
		}

		in = rv.Elem().Interface()
	}

	raw, err := s.Serialize(in)
	if err != nil {
		return fmt.Errorf("orm: serialize %s: %w", typ, err)
	}

	if raw == nil {
		values.PutNull(key)

		return nil
	}

	return putColumn(values, key, s.ColumnType(), raw)
}

func putColumn(values *Values, key string, ct ColumnType, raw any) error {
	var err error

	switch ct {
	case ColumnInteger:
		var n int64
		if n, err = toInt64(raw); err == nil {
			values.PutLong(key, n)
		}
	case ColumnReal:
		var f float64
		if f, err = toFloat64(raw); err == nil {
			values.PutDouble(key, f)
		}
	case ColumnBlob:
		var b []byte
		if b, err = toBytes(raw); err == nil {
			values.PutBlob(key, b)
		}
	default:
		var s string
		if s, err = toString(raw); err == nil {
			values.PutString(key, s)
		}
	}

	if err != nil {
		return &ConversionError{Column: key, Value: raw, Target: ct.String(), Err: err}
	}

	return nil
}

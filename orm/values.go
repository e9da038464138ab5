package orm

import (
	"bytes"

	"github.com/goccy/go-json"
)

// Values is an ordered column to value container filled by marshallers.
// Putting an existing key replaces its value and keeps its position.
type Values struct {
	keys []string
	vals map[string]any
}

// NewValues returns an empty container.
func NewValues() *Values {
	return &Values{vals: make(map[string]any)}
}

func (v *Values) put(key string, value any) {
	if v.vals == nil {
		v.vals = make(map[string]any)
	}

	if _, ok := v.vals[key]; !ok {
		v.keys = append(v.keys, key)
	}

	v.vals[key] = value
}

func (v *Values) PutInt(key string, value int32) { v.put(key, value) }

func (v *Values) PutLong(key string, value int64) { v.put(key, value) }

func (v *Values) PutFloat(key string, value float32) { v.put(key, value) }

func (v *Values) PutDouble(key string, value float64) { v.put(key, value) }

func (v *Values) PutBool(key string, value bool) { v.put(key, value) }

func (v *Values) PutString(key string, value string) { v.put(key, value) }

func (v *Values) PutBlob(key string, value []byte) { v.put(key, value) }

// PutNull stores an explicit null marker for key.
func (v *Values) PutNull(key string) { v.put(key, nil) }

// Get returns the value stored for key.
func (v *Values) Get(key string) (any, bool) {
	val, ok := v.vals[key]

	return val, ok
}

// ContainsKey reports whether key was put, including as null.
func (v *Values) ContainsKey(key string) bool {
	_, ok := v.vals[key]

	return ok
}

// IsNull reports whether key holds an explicit null marker.
func (v *Values) IsNull(key string) bool {
	val, ok := v.vals[key]

	return ok && val == nil
}

// Keys returns the keys in insertion order.
func (v *Values) Keys() []string {
	out := make([]string, len(v.keys))
	copy(out, v.keys)

	return out
}

func (v *Values) Len() int {
	return len(v.keys)
}

// Args returns the values in key order, widened to database/sql driver types.
func (v *Values) Args() []any {
	args := make([]any, len(v.keys))

	for i, k := range v.keys {
		switch x := v.vals[k].(type) {
		case int32:
			args[i] = int64(x)
		case float32:
			args[i] = float64(x)
		default:
			args[i] = x
		}
	}

	return args
}

// MarshalJSON encodes the container as a JSON object in key order.
func (v *Values) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, k := range v.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}

		val, err := json.Marshal(v.vals[k])
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

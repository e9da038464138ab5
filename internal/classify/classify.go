package classify

import (
	"go/token"
	"go/types"
)

// Classification is the result of classifying one field type.
type Classification struct {
	Accessor Accessor
	// Nullable fields are null-checked on load and written as null when nil.
	Nullable bool
	// Object fields are probed for a registered serializer first.
	Object bool
	// Pointer is set for the single pointer (boxed) form.
	Pointer bool
	// Type is the classified type; Value is Type without its pointer.
	Type  types.Type
	Value types.Type
}

// NeedsConversion reports whether Value differs from the accessor's native
// type and must be converted on read and write.
func (c Classification) NeedsConversion() bool {
	native := c.Accessor.NativeType()

	return native != nil && !types.Identical(c.Value, native)
}

// Classifier classifies field types against a fixed entity base type.
type Classifier struct {
	entityPkg  string
	entityName string

	stringer        *types.Interface
	textUnmarshaler *types.Interface
}

// New returns a Classifier treating pkgPath.name as the entity base.
func New(pkgPath, name string) *Classifier {
	errType := types.Universe.Lookup("error").Type()

	stringer := types.NewInterfaceType([]*types.Func{
		method("String", nil, types.NewTuple(types.NewVar(token.NoPos, nil, "", types.Typ[types.String]))),
	}, nil)
	stringer.Complete()

	unmarshaler := types.NewInterfaceType([]*types.Func{
		method("UnmarshalText",
			types.NewTuple(types.NewVar(token.NoPos, nil, "text", byteSlice)),
			types.NewTuple(types.NewVar(token.NoPos, nil, "", errType))),
	}, nil)
	unmarshaler.Complete()

	return &Classifier{
		entityPkg:       pkgPath,
		entityName:      name,
		stringer:        stringer,
		textUnmarshaler: unmarshaler,
	}
}

func method(name string, params, results *types.Tuple) *types.Func {
	sig := types.NewSignatureType(nil, nil, nil, params, results, false)

	return types.NewFunc(token.NoPos, nil, name, sig)
}

// Classify returns the accessor family of t.
func (c *Classifier) Classify(t types.Type) Classification {
	t = types.Unalias(t)

	if p, ok := t.(*types.Pointer); ok {
		elem := types.Unalias(p.Elem())
		out := Classification{Nullable: true, Object: true, Pointer: true, Type: t, Value: elem}

		switch {
		case c.IsEntity(elem):
			out.Accessor = AccessorEntity
		default:
			out.Accessor = c.family(elem)
		}

		return out
	}

	out := Classification{Type: t, Value: t}

	if a, ok := basicRow(t); ok {
		out.Accessor = a

		return out
	}

	out.Object = true
	out.Accessor = c.family(t)
	out.Nullable = out.Accessor != AccessorBlob && nilable(t)

	return out
}

// family classifies a non-pointer type by the rows that need no pointer.
func (c *Classifier) family(t types.Type) Accessor {
	if a, ok := basicRow(t); ok {
		return a
	}

	if c.IsEnum(t) {
		return AccessorEnum
	}

	if named, ok := t.(*types.Named); ok {
		if a, ok := basicRow(named.Underlying()); ok {
			return a
		}
	}

	return AccessorUnsupported
}

// basicRow matches the closed table of basic value types and raw bytes.
func basicRow(t types.Type) (Accessor, bool) {
	switch u := t.(type) {
	case *types.Basic:
		switch u.Kind() {
		case types.Int8, types.Int16, types.Uint8, types.Uint16:
			return AccessorInt, true
		case types.Int32:
			if u.Name() == "rune" {
				return AccessorChar, true
			}

			return AccessorInt, true
		case types.Int, types.Int64, types.Uint, types.Uint32, types.Uint64:
			return AccessorLong, true
		case types.Float32:
			return AccessorFloat, true
		case types.Float64:
			return AccessorDouble, true
		case types.Bool:
			return AccessorBoolean, true
		case types.String:
			return AccessorString, true
		}
	case *types.Slice:
		if b, ok := types.Unalias(u.Elem()).(*types.Basic); ok && b.Kind() == types.Uint8 {
			return AccessorBlob, true
		}
	}

	return AccessorUnsupported, false
}

// IsEntity reports whether t is the entity base or a named struct embedding
// it, directly or through other embedded structs.
func (c *Classifier) IsEntity(t types.Type) bool {
	return c.embedsEntity(t, make(map[*types.TypeName]bool))
}

func (c *Classifier) embedsEntity(t types.Type, seen map[*types.TypeName]bool) bool {
	named, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return false
	}

	obj := named.Obj()
	if seen[obj] {
		return false
	}

	seen[obj] = true

	if obj.Pkg() != nil && obj.Pkg().Path() == c.entityPkg && obj.Name() == c.entityName {
		return true
	}

	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		return false
	}

	for i := range st.NumFields() {
		f := st.Field(i)
		if !f.Embedded() {
			continue
		}

		ft := types.Unalias(f.Type())
		if p, ok := ft.(*types.Pointer); ok {
			ft = p.Elem()
		}

		if c.embedsEntity(ft, seen) {
			return true
		}
	}

	return false
}

// IsEnum reports whether t is a named integer or string type with a String
// method whose pointer implements encoding.TextUnmarshaler.
func (c *Classifier) IsEnum(t types.Type) bool {
	named, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return false
	}

	b, ok := named.Underlying().(*types.Basic)
	if !ok || b.Info()&(types.IsInteger|types.IsString) == 0 {
		return false
	}

	return types.Implements(named, c.stringer) &&
		types.Implements(types.NewPointer(named), c.textUnmarshaler)
}

func nilable(t types.Type) bool {
	switch t.Underlying().(type) {
	case *types.Pointer, *types.Slice, *types.Map, *types.Interface, *types.Chan, *types.Signature:
		return true
	default:
		return false
	}
}

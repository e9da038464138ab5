package classify

import (
	"go/types"
)

//go:generate go tool stringer -type=Accessor -trimprefix=Accessor

// Accessor is the cursor accessor family of a field.
type Accessor int

const (
	AccessorUnsupported Accessor = iota // no accessor; loads the zero value and writes null
	AccessorInt
	AccessorLong
	AccessorFloat
	AccessorDouble
	AccessorBoolean
	AccessorChar
	AccessorString
	AccessorBlob
	AccessorEntity
	AccessorEnum
)

var byteSlice = types.NewSlice(types.Typ[types.Byte])

// NativeType returns the Go type the accessor reads and writes, or nil for
// the families that go through a runtime helper.
func (a Accessor) NativeType() types.Type {
	switch a {
	default:
		return nil
	case AccessorInt:
		return types.Typ[types.Int32]
	case AccessorLong:
		return types.Typ[types.Int64]
	case AccessorFloat:
		return types.Typ[types.Float32]
	case AccessorDouble:
		return types.Typ[types.Float64]
	case AccessorBoolean:
		return types.Typ[types.Bool]
	case AccessorChar:
		return types.Universe.Lookup("rune").Type()
	case AccessorString:
		return types.Typ[types.String]
	case AccessorBlob:
		return byteSlice
	}
}

// IsBasic reports whether the accessor belongs to the basic table rows.
func (a Accessor) IsBasic() bool {
	switch a {
	default:
		return false
	case AccessorInt, AccessorLong, AccessorFloat, AccessorDouble,
		AccessorBoolean, AccessorChar, AccessorString, AccessorBlob:
		return true
	}
}

// Package classify maps a field's Go type to the cursor accessor family used
// to read and write it.
//
// Families are tried in a fixed priority order and the first match wins:
// the exact basic types, raw bytes, entity references (pointers to structs
// embedding the entity base), enums (named integer or string types with
// String and UnmarshalText), and finally named types whose underlying type
// is one of the basic rows. A single pointer level is the nullable form of
// the same family.
package classify

// Package gen provides deterministic Go code generation for model
// marshallers.
//
// Generation approach uses text/template + go/format for readable,
// allocation-light Go code. Each model gets one file holding a
// <Model>Marshaller type, an init function registering it with the runtime,
// and two methods:
//
//   - LoadFromCursor reads every annotated column of the current cursor row
//   - FillValues writes every annotated field into a values container
//
// Codegen patterns:
//   - Embedded struct delegation before own fields
//   - Serializer probe for object-shaped field types
//   - Null checks for pointer and other nil-able fields
//   - Numeric and named-type conversions to the accessor's native type
//   - Entity references by id and enums by text
package gen

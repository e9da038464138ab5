package diagnostic

// Placement codes.
const (
	CodeNotAField        = "not_a_field"
	CodeNotInStruct      = "not_in_struct"
	CodeUnexportedStruct = "unexported_struct"
	CodeNotAStruct       = "not_a_struct"
)

// Modifier codes.
const (
	CodeUnexportedField = "unexported_field"
	CodeConstField      = "const_field"
	CodePackageLevel    = "package_level"
)

// Annotation codes.
const (
	CodeBadDirective    = "bad_directive"
	CodeDuplicateColumn = "duplicate_column"
)

// Generation codes.
const (
	CodeWriteFailed     = "write_failed"
	CodeFormatFailed    = "format_failed"
	CodeUnsupportedType = "unsupported_type"
	CodeDefaultOnNil    = "default_on_nil"
)

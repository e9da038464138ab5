package gen

// marshallerFile is everything the file template renders for one model.
type marshallerFile struct {
	Package  string
	Imports  []importSpec
	Model    string
	Type     string
	RT       string // runtime qualifier including the dot, empty inside the runtime package
	Comments bool
	Embeds   []embedStmt
	Loads    []loadStmt
	Fills    []fillStmt
}

// embedStmt delegates to the marshaller of an embedded struct.
type embedStmt struct {
	Field   string
	Type    string
	Pointer bool
}

// loadStmt reads one column into one field.
type loadStmt struct {
	Column    string
	Target    string
	Probe     bool
	ProbeType string
	Nullable  bool
	Fallible  bool
	Expr      string
}

// fillStmt writes one field into one column.
type fillStmt struct {
	Column    string
	Target    string
	Probe     bool
	ProbeType string
	NilCheck  bool
	NullElse  bool
	Write     string
}

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

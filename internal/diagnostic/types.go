package diagnostic

import (
	"fmt"
	"go/token"
	"strings"

	"marshaller-generator/internal/common"
)

// Sink receives diagnostics as they are produced.
type Sink interface {
	Report(d Diagnostic)
}

// Diagnostics holds all diagnostic information from a round.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

var _ Sink = (*Diagnostics)(nil)

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Pos locates the offending declaration; invalid when there is none.
	Pos token.Position
	// TypeName is the model type this relates to (if any).
	TypeName string
	// FieldPath identifies which field this relates to (if any).
	FieldPath string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Report files d under its severity.
func (d *Diagnostics) Report(diag Diagnostic) {
	switch diag.Severity {
	case DiagnosticError:
		d.Errors = append(d.Errors, diag)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// NewError returns an error diagnostic. typeName and fieldPath may be empty.
func NewError(code, message string, pos token.Position, typeName, fieldPath string) Diagnostic {
	return Diagnostic{
		Severity:  DiagnosticError,
		Code:      code,
		Message:   message,
		Pos:       pos,
		TypeName:  typeName,
		FieldPath: fieldPath,
	}
}

// NewWarning returns a warning diagnostic.
func NewWarning(code, message string, pos token.Position, typeName, fieldPath string) Diagnostic {
	d := NewError(code, message, pos, typeName, fieldPath)
	d.Severity = DiagnosticWarning

	return d
}

// NewInfo returns an info diagnostic.
func NewInfo(code, message string, pos token.Position, typeName, fieldPath string) Diagnostic {
	d := NewError(code, message, pos, typeName, fieldPath)
	d.Severity = DiagnosticInfo

	return d
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Len returns the number of diagnostics of every severity.
func (d *Diagnostics) Len() int {
	return len(d.Errors) + len(d.Warnings) + len(d.Infos)
}

// All returns every diagnostic, errors first.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, d.Len())
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)
	all = append(all, d.Infos...)

	return all
}

// WithCode returns the diagnostics of every severity carrying code.
func (d *Diagnostics) WithCode(code string) []Diagnostic {
	var out []Diagnostic

	for _, diag := range d.All() {
		if diag.Code == code {
			out = append(out, diag)
		}
	}

	return out
}

// String formats the diagnostic compiler-style:
//
//	book.go:12:2: error: column annotation applies only to struct fields [not_a_field]
func (d Diagnostic) String() string {
	var b strings.Builder

	if d.Pos.IsValid() {
		b.WriteString(d.Pos.String())
		b.WriteString(": ")
	} else if d.Pos.Filename != "" {
		b.WriteString(d.Pos.Filename)
		b.WriteString(": ")
	}

	b.WriteString(d.Severity.String())
	b.WriteString(": ")

	if d.TypeName != "" && d.FieldPath != "" {
		fmt.Fprintf(&b, "%s.%s: ", d.TypeName, d.FieldPath)
	} else if d.TypeName != "" {
		b.WriteString(d.TypeName + ": ")
	} else if d.FieldPath != "" {
		b.WriteString(d.FieldPath + ": ")
	}

	b.WriteString(d.Message)

	if len(d.Suggestions) > 0 {
		fmt.Fprintf(&b, " (did you mean %s?)", strings.Join(d.Suggestions, " or "))
	}

	if d.Code != "" {
		fmt.Fprintf(&b, " [%s]", d.Code)
	}

	return b.String()
}

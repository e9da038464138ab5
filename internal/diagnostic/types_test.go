package diagnostic

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_ReportBySeverity(t *testing.T) {
	var d Diagnostics

	d.Report(NewError(CodeNotAField, "column annotation applies only to struct fields", token.Position{}, "", "Run"))
	d.Report(NewWarning(CodeUnsupportedType, "no accessor", token.Position{}, "Book", "Extra"))
	d.Report(NewInfo(CodeDefaultOnNil, "default applies", token.Position{}, "Book", "Subtitle"))

	assert.Len(t, d.Errors, 1)
	assert.Len(t, d.Warnings, 1)
	assert.Len(t, d.Infos, 1)
	assert.Equal(t, 3, d.Len())
	assert.True(t, d.HasErrors())

	all := d.All()
	require.Len(t, all, 3)
	assert.Equal(t, DiagnosticError, all[0].Severity)
	assert.Equal(t, DiagnosticWarning, all[1].Severity)
	assert.Equal(t, DiagnosticInfo, all[2].Severity)

	assert.Len(t, d.WithCode(CodeUnsupportedType), 1)
	assert.Empty(t, d.WithCode(CodeWriteFailed))
}

func TestNewDiagnostic(t *testing.T) {
	pos := token.Position{Filename: "book.go", Line: 3, Column: 2}

	assert.Equal(t, Diagnostic{
		Severity:  DiagnosticWarning,
		Code:      CodeUnsupportedType,
		Message:   "no accessor",
		Pos:       pos,
		TypeName:  "Book",
		FieldPath: "Extra",
	}, NewWarning(CodeUnsupportedType, "no accessor", pos, "Book", "Extra"))

	assert.Equal(t, DiagnosticError, NewError(CodeWriteFailed, "disk full", token.Position{}, "Book", "").Severity)
	assert.Equal(t, DiagnosticInfo, NewInfo(CodeDefaultOnNil, "", pos, "", "").Severity)
}

func TestDiagnostics_SinkInterface(t *testing.T) {
	var sink Sink = &Diagnostics{}

	sink.Report(Diagnostic{Severity: DiagnosticWarning, Code: "x"})

	assert.Len(t, sink.(*Diagnostics).Warnings, 1)
	assert.False(t, sink.(*Diagnostics).HasErrors())
}

func TestDiagnostic_String(t *testing.T) {
	pos := token.Position{Filename: "book.go", Line: 12, Column: 2}

	tests := []struct {
		name     string
		diag     Diagnostic
		expected string
	}{
		{
			name: "positioned field",
			diag: Diagnostic{
				Severity:  DiagnosticError,
				Code:      CodeUnexportedField,
				Message:   "field must be exported",
				Pos:       pos,
				TypeName:  "Book",
				FieldPath: "title",
			},
			expected: "book.go:12:2: error: Book.title: field must be exported [unexported_field]",
		},
		{
			name: "file only with suggestion",
			diag: Diagnostic{
				Severity:    DiagnosticError,
				Code:        CodeBadDirective,
				Message:     `unknown key "nmae"`,
				Pos:         token.Position{Filename: "book.go"},
				Suggestions: []string{"name"},
			},
			expected: `book.go: error: unknown key "nmae" (did you mean name?) [bad_directive]`,
		},
		{
			name: "bare",
			diag: Diagnostic{
				Severity: DiagnosticWarning,
				Message:  "nothing to do",
			},
			expected: "warning: nothing to do",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.diag.String())
		})
	}
}

func TestDiagnosticSeverity_String(t *testing.T) {
	assert.Equal(t, "info", DiagnosticInfo.String())
	assert.Equal(t, "warning", DiagnosticWarning.String())
	assert.Equal(t, "error", DiagnosticError.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(9).String())
}

package analyze

import (
	"go/ast"
	"go/token"
	"go/types"

	"marshaller-generator/internal/common"
)

// GeneratedHeader is the first line of every generated marshaller file.
const GeneratedHeader = "// Code generated by marshaller-generator. DO NOT EDIT."

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "marshaller-generator/examples/library"
	Name    string // e.g., "Book"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// Package is a loaded, type-checked package.
type Package struct {
	Path   string
	Name   string
	Dir    string
	Fset   *token.FileSet
	Types  *types.Package
	Info   *types.Info
	Syntax []*ast.File
}

// ElementKind is the kind of declaration an annotation was found on.
type ElementKind int

const (
	KindField ElementKind = iota
	KindPackageVar
	KindConst
	KindLocalVar
	KindLocalConst
	KindFunc
	KindMethod
	KindInterfaceMethod
	KindTypeDecl
)

// String returns a human-readable representation of the ElementKind.
func (k ElementKind) String() string {
	switch k {
	case KindField:
		return "field"
	case KindPackageVar:
		return "package variable"
	case KindConst:
		return "constant"
	case KindLocalVar:
		return "local variable"
	case KindLocalConst:
		return "local constant"
	case KindFunc:
		return "function"
	case KindMethod:
		return "method"
	case KindInterfaceMethod:
		return "interface method"
	case KindTypeDecl:
		return "type declaration"
	default:
		return common.UnknownStr
	}
}

// EnclosingKind describes the struct type that declares a field.
type EnclosingKind int

const (
	EnclosingNone      EnclosingKind = iota
	EnclosingNamed                   // type T struct{...} at package level
	EnclosingLocal                   // struct type declared inside a function
	EnclosingAnonymous               // struct literal type, nested struct, var x struct{...}
	EnclosingAlias                   // type T = struct{...}
	EnclosingGeneric                 // type T[P any] struct{...}
)

// String returns a human-readable representation of the EnclosingKind.
func (k EnclosingKind) String() string {
	switch k {
	case EnclosingNone:
		return "none"
	case EnclosingNamed:
		return "named"
	case EnclosingLocal:
		return "local"
	case EnclosingAnonymous:
		return "anonymous"
	case EnclosingAlias:
		return "alias"
	case EnclosingGeneric:
		return "generic"
	default:
		return common.UnknownStr
	}
}

// AnnotationSource tells where an annotation was written.
type AnnotationSource int

const (
	SourceTag AnnotationSource = iota
	SourceDirective
)

// Annotation is the payload of a column annotation. Empty Name means the
// field identifier is the column name.
type Annotation struct {
	Name    string
	Default string
	Source  AnnotationSource
}

// Enclosing is the struct type declaring an annotated field.
type Enclosing struct {
	Kind     EnclosingKind
	Name     string
	Pos      token.Position
	Exported bool
	Object   *types.TypeName
}

// Element is one annotated declaration.
type Element struct {
	Kind       ElementKind
	Name       string
	Pos        token.Position
	Annotation Annotation
	Exported   bool
	Embedded   bool
	Var        *types.Var
	Enclosing  Enclosing
	Package    *Package
}

// Model is a struct type that receives a generated marshaller.
type Model struct {
	ID      TypeID
	Object  *types.TypeName
	Struct  *types.Struct
	Package *Package
	Pos     token.Position
}

// Named returns the model's defined type.
func (m *Model) Named() *types.Named {
	named, _ := m.Object.Type().(*types.Named)

	return named
}

// Field is a valid annotated field of a model.
type Field struct {
	Name     string
	Column   string
	Default  string
	Embedded bool
	Var      *types.Var
	Pos      token.Position
}

// FieldGroup is a model and its annotated fields in declaration order.
type FieldGroup struct {
	Model  *Model
	Fields []Field
}

// HasField reports whether v is one of the group's annotated fields.
func (g *FieldGroup) HasField(v *types.Var) bool {
	for i := range g.Fields {
		if g.Fields[i].Var == v {
			return true
		}
	}

	return false
}

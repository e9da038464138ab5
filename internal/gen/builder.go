package gen

import (
	"fmt"
	"go/types"
	"strconv"

	"marshaller-generator/internal/analyze"
	"marshaller-generator/internal/classify"
	"marshaller-generator/internal/diagnostic"
)

// builder turns one field group into the typed IR of its marshaller file.
type builder struct {
	group   *analyze.FieldGroup
	cls     *classify.Classifier
	imports *importSet
	sink    diagnostic.Sink
	rt      string
}

func (g *Generator) newBuilder(group *analyze.FieldGroup) *builder {
	b := &builder{
		group:   group,
		cls:     g.classifier,
		imports: newImportSet(group.Model.Package.Types),
		sink:    g.sink,
	}

	if alias := b.imports.add(g.cfg.RuntimePackage, ""); alias != "" {
		b.rt = alias + "."
	}

	return b
}

func (b *builder) build(typeName string, comments bool) *marshallerFile {
	model := b.group.Model

	f := &marshallerFile{
		Package:  model.Package.Name,
		Model:    model.Object.Name(),
		Type:     typeName,
		RT:       b.rt,
		Comments: comments,
		Embeds:   b.embeds(),
	}

	for i := range b.group.Fields {
		field := &b.group.Fields[i]
		c := b.cls.Classify(field.Var.Type())

		b.notes(field, c)

		f.Loads = append(f.Loads, b.load(field, c))

		f.Fills = append(f.Fills, b.fill(field, c))
	}

	f.Imports = b.imports.specs()

	return f
}

// embeds lists the embedded struct fields that carry no annotation of their own.
func (b *builder) embeds() []embedStmt {
	st := b.group.Model.Struct

	var out []embedStmt

	for i := range st.NumFields() {
		v := st.Field(i)
		if !v.Embedded() || b.group.HasField(v) {
			continue
		}

		t := types.Unalias(v.Type())
		ptr, isPtr := t.(*types.Pointer)

		if isPtr {
			t = types.Unalias(ptr.Elem())
		}

		if _, ok := t.Underlying().(*types.Struct); !ok {
			continue
		}

		out = append(out, embedStmt{
			Field:   v.Name(),
			Type:    b.imports.typeString(t),
			Pointer: isPtr,
		})
	}

	return out
}

// builtinSerializers are the types the runtime registers a serializer for.
var builtinSerializers = map[string]bool{
	"time.Time":                   true,
	"github.com/google/uuid.UUID": true,
}

// notes reports fields whose generated code deserves the author's attention.
func (b *builder) notes(field *analyze.Field, c classify.Classification) {
	if c.Accessor == classify.AccessorUnsupported && !builtinSerializers[types.TypeString(c.Value, nil)] {
		b.sink.Report(diagnostic.NewWarning(diagnostic.CodeUnsupportedType,
			fmt.Sprintf("type %s has no column accessor; without a registered serializer it loads as the zero value and is written as null",
				types.TypeString(c.Type, types.RelativeTo(b.group.Model.Package.Types))),
			field.Pos, b.group.Model.Object.Name(), field.Name))
	}

	if c.Nullable && field.Default != "" {
		b.sink.Report(diagnostic.NewInfo(diagnostic.CodeDefaultOnNil,
			fmt.Sprintf("column %q is left unset when the field is nil so the default %q applies", field.Column, field.Default),
			field.Pos, b.group.Model.Object.Name(), field.Name))
	}
}

func (b *builder) load(field *analyze.Field, c classify.Classification) loadStmt {
	s := loadStmt{
		Column: field.Column,
		Target: "m." + field.Name,
		Probe:  c.Object,
	}

	if s.Probe {
		s.ProbeType = b.imports.typeString(c.Type)
	}

	if c.Accessor == classify.AccessorUnsupported {
		s.Expr = b.zero(c.Type)

		return s
	}

	s.Nullable = c.Nullable
	s.Expr, s.Fallible = b.readExpr(c)

	return s
}

// readExpr returns the expression reading column i as the field's type.
func (b *builder) readExpr(c classify.Classification) (expr string, fallible bool) {
	switch c.Accessor {
	case classify.AccessorEntity:
		return b.rt + "GetEntity[" + b.imports.typeString(c.Value) + "](cursor, i)", true
	case classify.AccessorEnum:
		fn := "GetEnum"
		if c.Pointer {
			fn = "GetEnumPtr"
		}

		return b.rt + fn + "[" + b.imports.typeString(c.Value) + "](cursor, i)", true
	}

	var raw string

	switch c.Accessor {
	case classify.AccessorInt, classify.AccessorBoolean:
		raw = "cursor.GetInt(i)"
	case classify.AccessorLong:
		raw = "cursor.GetLong(i)"
	case classify.AccessorFloat:
		raw = "cursor.GetFloat(i)"
	case classify.AccessorDouble:
		raw = "cursor.GetDouble(i)"
	case classify.AccessorChar:
		raw = b.rt + "FirstRune(cursor.GetString(i))"
	case classify.AccessorString:
		raw = "cursor.GetString(i)"
	case classify.AccessorBlob:
		raw = "cursor.GetBlob(i)"
	}

	if c.Accessor == classify.AccessorBoolean {
		raw += " != 0"
	}

	if c.NeedsConversion() {
		raw = b.imports.typeString(c.Value) + "(" + raw + ")"
	}

	if c.Pointer {
		raw = b.rt + "Ptr(" + raw + ")"
	}

	return raw, false
}

func (b *builder) fill(field *analyze.Field, c classify.Classification) fillStmt {
	col := strconv.Quote(field.Column)
	target := "m." + field.Name

	s := fillStmt{
		Column: field.Column,
		Target: target,
		Probe:  c.Object,
	}

	if s.Probe {
		s.ProbeType = b.imports.typeString(c.Type)
	}

	if c.Accessor == classify.AccessorUnsupported {
		s.Write = "values.PutNull(" + col + ")"
		s.NilCheck = c.Nullable && field.Default != ""

		return s
	}

	s.NilCheck = c.Nullable
	s.NullElse = c.Nullable && field.Default == ""
	s.Write = b.writeExpr(c, col, target)

	return s
}

// writeExpr returns the statement writing target to the quoted column col.
func (b *builder) writeExpr(c classify.Classification, col, target string) string {
	switch c.Accessor {
	case classify.AccessorEntity:
		return "values.PutLong(" + col + ", " + b.rt + "EntityID(" + target + "))"
	case classify.AccessorEnum:
		return "values.PutString(" + col + ", " + target + ".String())"
	}

	v := target
	if c.Pointer {
		v = "*" + target
	}

	var put, native string

	switch c.Accessor {
	case classify.AccessorInt:
		put, native = "PutInt", "int32"
	case classify.AccessorLong:
		put, native = "PutLong", "int64"
	case classify.AccessorFloat:
		put, native = "PutFloat", "float32"
	case classify.AccessorDouble:
		put, native = "PutDouble", "float64"
	case classify.AccessorBoolean:
		put, native = "PutBool", "bool"
	case classify.AccessorString:
		put, native = "PutString", "string"
	case classify.AccessorBlob:
		put, native = "PutBlob", "[]byte"
	case classify.AccessorChar:
		if c.NeedsConversion() {
			v = "rune(" + v + ")"
		}

		return "values.PutString(" + col + ", string(" + v + "))"
	}

	if c.NeedsConversion() {
		v = native + "(" + v + ")"
	}

	return "values." + put + "(" + col + ", " + v + ")"
}

// zero returns a literal for the zero value of t.
func (b *builder) zero(t types.Type) string {
	switch u := t.Underlying().(type) {
	case *types.Pointer, *types.Slice, *types.Map, *types.Interface, *types.Chan, *types.Signature:
		return "nil"
	case *types.Struct, *types.Array:
		return b.imports.typeString(t) + "{}"
	case *types.Basic:
		switch {
		case u.Info()&types.IsBoolean != 0:
			return "false"
		case u.Info()&types.IsString != 0:
			return `""`
		case u.Info()&types.IsNumeric != 0:
			return "0"
		}
	}

	return "*new(" + b.imports.typeString(t) + ")"
}

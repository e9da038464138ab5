package analyze

import (
	"cmp"
	"fmt"
	"go/types"
	"slices"
	"strings"

	"marshaller-generator/internal/diagnostic"
)

// Validate checks every element against the placement and modifier rules,
// reports each violation to sink and groups the remaining fields by model.
// Groups are sorted by package path then type name; fields keep declaration
// order.
func Validate(elems []Element, sink diagnostic.Sink) []*FieldGroup {
	v := &validator{
		sink:     sink,
		groups:   make(map[*types.TypeName]*FieldGroup),
		reported: make(map[string]bool),
	}

	for i := range elems {
		v.element(&elems[i])
	}

	out := make([]*FieldGroup, 0, len(v.groups))
	for _, g := range v.groups {
		out = append(out, g)
	}

	slices.SortFunc(out, func(a, b *FieldGroup) int {
		return cmp.Or(
			cmp.Compare(a.Model.ID.PkgPath, b.Model.ID.PkgPath),
			cmp.Compare(a.Model.ID.Name, b.Model.ID.Name),
		)
	})

	return out
}

type validator struct {
	sink     diagnostic.Sink
	groups   map[*types.TypeName]*FieldGroup
	columns  map[*types.TypeName]map[string]string
	reported map[string]bool
}

func (v *validator) report(e *Element, code, msg string) {
	v.sink.Report(diagnostic.NewError(code, msg, e.Pos, e.Enclosing.Name, e.Name))
}

func (v *validator) element(e *Element) {
	if !v.placement(e) || !v.modifiers(e) || !v.nesting(e) || !v.enclosingType(e) {
		return
	}

	v.add(e)
}

// placement: only fields and package-level values can carry a column.
func (v *validator) placement(e *Element) bool {
	switch e.Kind {
	case KindField, KindPackageVar, KindConst:
		return true
	default:
		v.report(e, diagnostic.CodeNotAField,
			fmt.Sprintf("column annotation applies only to struct fields, not to %s %s", e.Kind, e.Name))

		return false
	}
}

// modifiers reports every visibility, constness and package-level failure.
func (v *validator) modifiers(e *Element) bool {
	ok := true

	if !e.Exported {
		v.report(e, diagnostic.CodeUnexportedField,
			fmt.Sprintf("annotated %s %s must be exported", e.Kind, e.Name))

		ok = false
	}

	if e.Kind == KindConst {
		v.report(e, diagnostic.CodeConstField,
			fmt.Sprintf("annotated %s is a constant and cannot be loaded", e.Name))

		ok = false
	}

	if e.Kind == KindConst || e.Kind == KindPackageVar {
		v.report(e, diagnostic.CodePackageLevel,
			fmt.Sprintf("annotated %s is package-level; columns must be struct fields", e.Name))

		ok = false
	}

	return ok
}

// nesting: the field must belong directly to a type declared at package level.
func (v *validator) nesting(e *Element) bool {
	switch e.Enclosing.Kind {
	case EnclosingAnonymous:
		v.report(e, diagnostic.CodeNotInStruct,
			fmt.Sprintf("annotated field %s belongs to an anonymous struct type", e.Name))

		return false
	case EnclosingLocal:
		v.report(e, diagnostic.CodeNotInStruct,
			fmt.Sprintf("annotated field %s belongs to a struct type declared inside a function", e.Name))

		return false
	default:
		return true
	}
}

// enclosingType reports type-level failures once per type and rule.
func (v *validator) enclosingType(e *Element) bool {
	ok := true
	enc := e.Enclosing

	if !enc.Exported {
		v.reportType(e, diagnostic.CodeUnexportedStruct,
			fmt.Sprintf("type %s holds annotated fields and must be exported", enc.Name))

		ok = false
	}

	switch enc.Kind {
	case EnclosingAlias:
		v.reportType(e, diagnostic.CodeNotAStruct,
			fmt.Sprintf("type %s is an alias; annotated fields require a defined struct type", enc.Name))

		ok = false
	case EnclosingGeneric:
		v.reportType(e, diagnostic.CodeNotAStruct,
			fmt.Sprintf("type %s is generic; annotated fields require a non-generic struct type", enc.Name))

		ok = false
	}

	if enc.Object == nil {
		ok = false
	}

	return ok
}

func (v *validator) reportType(e *Element, code, msg string) {
	key := e.Enclosing.Pos.String() + "|" + code
	if v.reported[key] {
		return
	}

	v.reported[key] = true

	v.sink.Report(diagnostic.NewError(code, msg, e.Enclosing.Pos, e.Enclosing.Name, ""))
}

// add files a valid field under its model, rejecting reused column names.
func (v *validator) add(e *Element) {
	obj := e.Enclosing.Object

	g, ok := v.groups[obj]
	if !ok {
		st, _ := obj.Type().Underlying().(*types.Struct)
		g = &FieldGroup{Model: &Model{
			ID:      TypeID{PkgPath: e.Package.Path, Name: obj.Name()},
			Object:  obj,
			Struct:  st,
			Package: e.Package,
			Pos:     e.Enclosing.Pos,
		}}
	}

	column := e.Annotation.Name
	if column == "" {
		column = e.Name
	}

	if v.columns == nil {
		v.columns = make(map[*types.TypeName]map[string]string)
	}

	used := v.columns[obj]
	if used == nil {
		used = make(map[string]string)
		v.columns[obj] = used
	}

	key := strings.ToLower(column)

	if prev, dup := used[key]; dup {
		v.report(e, diagnostic.CodeDuplicateColumn,
			fmt.Sprintf("column %q of %s is already mapped by field %s", column, e.Name, prev))

		return
	}

	used[key] = e.Name
	v.groups[obj] = g

	g.Fields = append(g.Fields, Field{
		Name:     e.Name,
		Column:   column,
		Default:  e.Annotation.Default,
		Embedded: e.Embedded,
		Var:      e.Var,
		Pos:      e.Pos,
	})
}

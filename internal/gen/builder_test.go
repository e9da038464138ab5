package gen

import (
	"go/token"
	"go/types"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"

	"marshaller-generator/internal/classify"
	"marshaller-generator/internal/config"
)

var (
	shopPkg  = types.NewPackage("example.com/shop", "shop")
	unitsPkg = types.NewPackage("example.com/units", "units")
)

func named(pkg *types.Package, name string, underlying types.Type) *types.Named {
	return types.NewNamed(types.NewTypeName(token.NoPos, pkg, name, nil), underlying, nil)
}

func testBuilder() *builder {
	return &builder{
		cls:     classify.New(config.Default().EntityBaseName()),
		imports: newImportSet(shopPkg),
		rt:      "orm.",
	}
}

func TestBuilder_ReadWriteExpressions(t *testing.T) {
	rune_ := types.Universe.Lookup("rune").Type()
	bytes := types.NewSlice(types.Universe.Lookup("byte").Type())
	shelf := named(shopPkg, "Shelf", types.Typ[types.String])
	letter := named(shopPkg, "Letter", rune_)
	meters := named(unitsPkg, "Meters", types.Typ[types.Float64])

	tests := []struct {
		name  string
		typ   types.Type
		read  string
		write string
	}{
		{"int8", types.Typ[types.Int8], "int8(cursor.GetInt(i))", `values.PutInt("c", int32(m.F))`},
		{"int32", types.Typ[types.Int32], "cursor.GetInt(i)", `values.PutInt("c", m.F)`},
		{"*int16", types.NewPointer(types.Typ[types.Int16]), "orm.Ptr(int16(cursor.GetInt(i)))", `values.PutInt("c", int32(*m.F))`},
		{"int", types.Typ[types.Int], "int(cursor.GetLong(i))", `values.PutLong("c", int64(m.F))`},
		{"uint64", types.Typ[types.Uint64], "uint64(cursor.GetLong(i))", `values.PutLong("c", int64(m.F))`},
		{"*int64", types.NewPointer(types.Typ[types.Int64]), "orm.Ptr(cursor.GetLong(i))", `values.PutLong("c", *m.F)`},
		{"float32", types.Typ[types.Float32], "cursor.GetFloat(i)", `values.PutFloat("c", m.F)`},
		{"float64", types.Typ[types.Float64], "cursor.GetDouble(i)", `values.PutDouble("c", m.F)`},
		{"bool", types.Typ[types.Bool], "cursor.GetInt(i) != 0", `values.PutBool("c", m.F)`},
		{"*bool", types.NewPointer(types.Typ[types.Bool]), "orm.Ptr(cursor.GetInt(i) != 0)", `values.PutBool("c", *m.F)`},
		{"rune", rune_, "orm.FirstRune(cursor.GetString(i))", `values.PutString("c", string(m.F))`},
		{"*rune", types.NewPointer(rune_), "orm.Ptr(orm.FirstRune(cursor.GetString(i)))", `values.PutString("c", string(*m.F))`},
		{"string", types.Typ[types.String], "cursor.GetString(i)", `values.PutString("c", m.F)`},
		{"[]byte", bytes, "cursor.GetBlob(i)", `values.PutBlob("c", m.F)`},
		{"*[]byte", types.NewPointer(bytes), "orm.Ptr(cursor.GetBlob(i))", `values.PutBlob("c", *m.F)`},
		{"named string", shelf, "Shelf(cursor.GetString(i))", `values.PutString("c", string(m.F))`},
		{"named rune", letter, "Letter(orm.FirstRune(cursor.GetString(i)))", `values.PutString("c", string(rune(m.F)))`},
		{"*named rune", types.NewPointer(letter), "orm.Ptr(Letter(orm.FirstRune(cursor.GetString(i))))", `values.PutString("c", string(rune(*m.F)))`},
		{"imported named float", meters, "units.Meters(cursor.GetDouble(i))", `values.PutDouble("c", float64(m.F))`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := testBuilder()
			c := b.cls.Classify(tt.typ)

			read, fallible := b.readExpr(c)
			assert.Equal(t, tt.read, read, spew.Sdump(c.Accessor, c.Pointer, c.Object))
			assert.False(t, fallible)
			assert.Equal(t, tt.write, b.writeExpr(c, `"c"`, "m.F"))
		})
	}
}

func TestBuilder_ImportsFollowReferencedTypes(t *testing.T) {
	b := testBuilder()
	c := b.cls.Classify(named(unitsPkg, "Meters", types.Typ[types.Float64]))

	b.readExpr(c)

	assert.Equal(t, []importSpec{{Path: "example.com/units"}}, b.imports.specs())
}

func TestBuilder_Zero(t *testing.T) {
	point := named(unitsPkg, "Point", types.NewStruct(nil, nil))

	tests := []struct {
		typ  types.Type
		want string
	}{
		{types.NewMap(types.Typ[types.String], types.Typ[types.Int]), "nil"},
		{types.NewSlice(types.Typ[types.String]), "nil"},
		{types.NewPointer(point), "nil"},
		{types.NewInterfaceType(nil, nil), "nil"},
		{point, "units.Point{}"},
		{types.NewArray(types.Universe.Lookup("byte").Type(), 16), "[16]byte{}"},
		{named(shopPkg, "Flag", types.Typ[types.Bool]), "false"},
		{named(shopPkg, "Code", types.Typ[types.String]), `""`},
		{named(shopPkg, "Ratio", types.Typ[types.Complex128]), "0"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, testBuilder().zero(tt.typ))
		})
	}
}

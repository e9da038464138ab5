package orm

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type color int

const (
	red color = iota
	green
)

func (c color) String() string {
	switch c {
	case red:
		return "RED"
	case green:
		return "GREEN"
	default:
		return fmt.Sprintf("color(%d)", int(c))
	}
}

func (c *color) UnmarshalText(text []byte) error {
	switch string(text) {
	case "RED":
		*c = red
	case "GREEN":
		*c = green
	default:
		return fmt.Errorf("unknown color %q", text)
	}

	return nil
}

func TestColumnIndex(t *testing.T) {
	cols := []string{"id", "Title", "title"}

	i, err := ColumnIndex(cols, "title")
	require.NoError(t, err)
	assert.Equal(t, 2, i)

	i, err = ColumnIndex(cols, "ID")
	require.NoError(t, err)
	assert.Equal(t, 0, i)

	i, err = ColumnIndex(cols, "pages")
	require.ErrorIs(t, err, ErrColumnNotFound)
	assert.Equal(t, -1, i)
	assert.Contains(t, err.Error(), `"pages"`)
}

func TestFirstRune(t *testing.T) {
	assert.Equal(t, 'x', FirstRune("xyz"))
	assert.Equal(t, 'é', FirstRune("été"))
	assert.Equal(t, rune(0), FirstRune(""))
}

func TestPtr(t *testing.T) {
	p := Ptr(int16(3))
	require.NotNil(t, p)
	assert.Equal(t, int16(3), *p)
}

func TestGetEnum(t *testing.T) {
	c := NewMemoryCursor([]string{"color"})
	c.AddRow("GREEN").AddRow(nil).AddRow("PURPLE")

	require.True(t, c.Next())
	got, err := GetEnum[color](c, 0)
	require.NoError(t, err)
	assert.Equal(t, green, got)

	p, err := GetEnumPtr[color](c, 0)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, green, *p)

	require.True(t, c.Next())
	got, err = GetEnum[color](c, 0)
	require.NoError(t, err)
	assert.Equal(t, red, got)

	require.True(t, c.Next())
	_, err = GetEnum[color](c, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PURPLE")
}

func TestGetEntity_Reference(t *testing.T) {
	c := NewMemoryCursor([]string{"author"})
	c.AddRow(int64(12))
	require.True(t, c.Next())

	got, err := GetEntity[base](c, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(12), got.GetID())
	assert.Empty(t, got.Kind)
}

func TestGetEntity_Resolver(t *testing.T) {
	t.Cleanup(func() { SetEntityResolver(nil) })

	c := NewMemoryCursor([]string{"author"})
	c.AddRow(int64(12))
	require.True(t, c.Next())

	SetEntityResolver(func(typ reflect.Type, id int64) (any, error) {
		if typ != reflect.TypeFor[base]() {
			return nil, nil
		}

		return &base{Model: Model{ID: id}, Kind: "resolved"}, nil
	})

	got, err := GetEntity[base](c, 0)
	require.NoError(t, err)
	assert.Equal(t, "resolved", got.Kind)

	boom := errors.New("boom")
	SetEntityResolver(func(reflect.Type, int64) (any, error) { return nil, boom })

	_, err = GetEntity[base](c, 0)
	require.ErrorIs(t, err, boom)

	SetEntityResolver(func(reflect.Type, int64) (any, error) { return "wrong", nil })

	_, err = GetEntity[base](c, 0)
	require.Error(t, err)
}

type Shared struct {
	*Model
	Kind string
}

type layered struct {
	*Shared
	Name string
}

func TestGetEntity_AllocatesEmbeddedPointers(t *testing.T) {
	c := NewMemoryCursor([]string{"ref"})
	c.AddRow(int64(7))
	require.True(t, c.Next())

	got, err := GetEntity[Shared](c, 0)
	require.NoError(t, err)
	require.NotNil(t, got.Model)
	assert.Equal(t, int64(7), got.GetID())

	deep, err := GetEntity[layered](c, 0)
	require.NoError(t, err)
	require.NotNil(t, deep.Shared)
	require.NotNil(t, deep.Model)
	assert.Equal(t, int64(7), deep.GetID())
}

func TestEntityID(t *testing.T) {
	assert.Zero(t, EntityID[base](nil))
	assert.Equal(t, int64(3), EntityID(&base{Model: Model{ID: 3}}))

	assert.NotPanics(t, func() {
		assert.Zero(t, EntityID(&Shared{Kind: "unsaved"}))
		assert.Zero(t, EntityID(&layered{Shared: &Shared{}}))
	})

	assert.Equal(t, int64(9), EntityID(&Shared{Model: &Model{ID: 9}}))
	assert.Equal(t, int64(9), EntityID(&layered{Shared: &Shared{Model: &Model{ID: 9}}}))
}

func TestIDPath(t *testing.T) {
	assert.Equal(t, []int{0}, idPath(reflect.TypeFor[base]()))
	assert.Equal(t, []int{0, 0}, idPath(reflect.TypeFor[layered]()))
	assert.Empty(t, idPath(reflect.TypeFor[Model]()))
	assert.Empty(t, idPath(reflect.TypeFor[color]()))
}

type hiddenBase struct {
	*Model
}

type hidden struct {
	*hiddenBase
}

func TestGetEntity_UnexportedEmbeddedPointer(t *testing.T) {
	c := NewMemoryCursor([]string{"ref"})
	c.AddRow(int64(7))
	require.True(t, c.Next())

	_, err := GetEntity[hidden](c, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexported embedded")
}

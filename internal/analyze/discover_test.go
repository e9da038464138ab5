package analyze

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marshaller-generator/internal/config"
	"marshaller-generator/internal/diagnostic"
)

func discoverExample(t *testing.T, pattern string) ([]Element, *diagnostic.Diagnostics) {
	t.Helper()

	diags := &diagnostic.Diagnostics{}
	d := NewDiscoverer(config.DefaultTag, config.DefaultDirective, diags)

	return d.Discover(loadExample(t, pattern)), diags
}

func elementNames(elems []Element) []string {
	names := make([]string, 0, len(elems))
	for _, e := range elems {
		names = append(names, e.Name)
	}

	return names
}

func findElement(t *testing.T, elems []Element, name string) Element {
	t.Helper()

	for _, e := range elems {
		if e.Name == name {
			return e
		}
	}

	require.FailNow(t, "element not found", name)

	return Element{}
}

func TestDiscover_Library(t *testing.T) {
	elems, diags := discoverExample(t, "./examples/library")
	require.Zero(t, diags.Len(), "%v", diags.All())

	assert.Len(t, elems, 30)

	for _, e := range elems {
		assert.Equal(t, KindField, e.Kind, e.Name)
		assert.Equal(t, EnclosingNamed, e.Enclosing.Kind, e.Name)
		assert.NotNil(t, e.Var, e.Name)
		assert.NotNil(t, e.Enclosing.Object, e.Name)
	}

	assert.NotContains(t, elementNames(elems), "Notes")

	copies := findElement(t, elems, "Copies")
	assert.Equal(t, Annotation{Name: "copies", Default: "1", Source: SourceTag}, copies.Annotation)
	assert.Equal(t, "Book", copies.Enclosing.Name)

	subtitle := findElement(t, elems, "Subtitle")
	assert.Equal(t, Annotation{Name: "subtitle", Default: "none", Source: SourceDirective}, subtitle.Annotation)

	weight := findElement(t, elems, "Weight")
	assert.Empty(t, weight.Annotation.Name)
	assert.Equal(t, "models.go", filepath.Base(weight.Pos.Filename))
	assert.Positive(t, weight.Pos.Line)
}

func TestDiscover_Invalid(t *testing.T) {
	elems, diags := discoverExample(t, "./examples/invalid")

	assert.Equal(t, []string{
		"MaxShelves", "shelfCount", "Reset", "Catalog", "List",
		"Title", "Body", "Taken", "Left",
		"Name", "secret", "Source", "Label",
		"Describe", "local", "ID",
	}, elementNames(elems))

	kinds := map[string]ElementKind{
		"MaxShelves": KindConst,
		"shelfCount": KindPackageVar,
		"Reset":      KindFunc,
		"Catalog":    KindTypeDecl,
		"List":       KindInterfaceMethod,
		"Describe":   KindMethod,
		"local":      KindLocalVar,
		"Title":      KindField,
	}
	for name, kind := range kinds {
		assert.Equal(t, kind, findElement(t, elems, name).Kind, name)
	}

	enclosing := map[string]EnclosingKind{
		"Title":  EnclosingNamed,
		"Taken":  EnclosingAlias,
		"Left":   EnclosingGeneric,
		"Source": EnclosingAnonymous,
		"ID":     EnclosingLocal,
		"Name":   EnclosingNamed,
	}
	for name, kind := range enclosing {
		assert.Equal(t, kind, findElement(t, elems, name).Enclosing.Kind, name)
	}

	assert.False(t, findElement(t, elems, "Title").Enclosing.Exported)

	bad := diags.WithCode(diagnostic.CodeBadDirective)
	require.Len(t, bad, 2)
	assert.Equal(t, "Typo", bad[0].FieldPath)
	assert.Equal(t, []string{"name"}, bad[0].Suggestions)
	assert.Equal(t, "Count", bad[1].FieldPath)
	assert.Empty(t, bad[1].Suggestions)
}

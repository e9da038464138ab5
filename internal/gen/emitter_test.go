package gen

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marshaller-generator/internal/analyze"
	"marshaller-generator/internal/diagnostic"
)

func TestFileEmitter_Emit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "book_marshaller.go")

	require.NoError(t, os.MkdirAll(filepath.Dir(path), dirPerm))
	require.NoError(t, os.WriteFile(path, []byte("stale content that is longer"), filePerm))

	err := FileEmitter{}.Emit(GeneratedFile{Path: path, Filename: "book_marshaller.go", Content: []byte("package x\n")})
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "package x\n", string(b))
}

func TestMemoryEmitter(t *testing.T) {
	e := NewMemoryEmitter()
	content := []byte("package x\n")

	require.NoError(t, e.Emit(GeneratedFile{Path: "/b.go", Content: content}))
	require.NoError(t, e.Emit(GeneratedFile{Path: "/a.go", Content: []byte("package a\n")}))

	content[0] = 'P'

	got, ok := e.File("/b.go")
	require.True(t, ok)
	assert.Equal(t, "package x\n", string(got))
	assert.Equal(t, []string{"/a.go", "/b.go"}, e.Paths())

	_, ok = e.File("/c.go")
	assert.False(t, ok)
}

type failingEmitter struct {
	fail string
	next Emitter
}

func (f failingEmitter) Emit(file GeneratedFile) error {
	if file.Path == f.fail {
		return errors.New("disk full")
	}

	return f.next.Emit(file)
}

func (f failingEmitter) Remove(path string) error {
	if path == f.fail {
		return errors.New("read-only file system")
	}

	return f.next.Remove(path)
}

func TestEmitAll_ContinuesAfterFailure(t *testing.T) {
	mem := NewMemoryEmitter()
	diags := &diagnostic.Diagnostics{}

	files := []GeneratedFile{
		{Path: "/a.go", Model: analyze.TypeID{Name: "A"}},
		{Path: "/b.go", Model: analyze.TypeID{Name: "B"}},
		{Path: "/c.go", Model: analyze.TypeID{Name: "C"}},
	}

	written := EmitAll(failingEmitter{fail: "/b.go", next: mem}, files, diags)

	assert.Equal(t, []string{"/a.go", "/c.go"}, written)
	assert.Equal(t, []string{"/a.go", "/c.go"}, mem.Paths())

	require.Len(t, diags.Errors, 1)
	assert.Equal(t, diagnostic.CodeWriteFailed, diags.Errors[0].Code)
	assert.Equal(t, "B", diags.Errors[0].TypeName)
	assert.Contains(t, diags.Errors[0].Message, "disk full")
}

func TestFileEmitter_ReportsUnwritablePath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, filePerm))

	diags := &diagnostic.Diagnostics{}
	written := EmitAll(FileEmitter{}, []GeneratedFile{{
		Path:     filepath.Join(blocker, "x_marshaller.go"),
		Filename: "x_marshaller.go",
	}}, diags)

	assert.Empty(t, written)
	require.Len(t, diags.Errors, 1)
	assert.Equal(t, diagnostic.CodeWriteFailed, diags.Errors[0].Code)
}

func TestFileEmitter_Remove(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gone_marshaller.go")
	require.NoError(t, os.WriteFile(path, []byte("package x\n"), filePerm))

	require.NoError(t, FileEmitter{}.Remove(path))
	assert.NoFileExists(t, path)

	// already gone
	require.NoError(t, FileEmitter{}.Remove(path))
}

func TestMemoryEmitter_Remove(t *testing.T) {
	e := NewMemoryEmitter()
	require.NoError(t, e.Emit(GeneratedFile{Path: "/a.go", Content: []byte("package a\n")}))

	require.NoError(t, e.Remove("/a.go"))
	require.NoError(t, e.Remove("/on-disk.go"))

	assert.Empty(t, e.Paths())
	assert.Equal(t, []string{"/a.go", "/on-disk.go"}, e.Removed())
}

func TestRemoveAll_ContinuesAfterFailure(t *testing.T) {
	mem := NewMemoryEmitter()
	diags := &diagnostic.Diagnostics{}

	removed := RemoveAll(failingEmitter{fail: "/b.go", next: mem}, []string{"/a.go", "/b.go", "/c.go"}, diags)

	assert.Equal(t, []string{"/a.go", "/c.go"}, removed)
	assert.Equal(t, []string{"/a.go", "/c.go"}, mem.Removed())

	require.Len(t, diags.Errors, 1)
	assert.Equal(t, diagnostic.CodeWriteFailed, diags.Errors[0].Code)
	assert.Equal(t, "/b.go", diags.Errors[0].Pos.Filename)
	assert.Contains(t, diags.Errors[0].Message, "read-only")
}

package gen

import (
	"bufio"
	"errors"
	"fmt"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"marshaller-generator/internal/diagnostic"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Emitter persists generated files.
type Emitter interface {
	Emit(file GeneratedFile) error
	// Remove deletes a previously emitted file that is no longer produced.
	Remove(path string) error
}

// FileEmitter writes files to their Path on disk.
type FileEmitter struct{}

var _ Emitter = FileEmitter{}

// Emit creates or truncates file.Path and writes the content through a buffer.
func (FileEmitter) Emit(file GeneratedFile) (err error) {
	if err := os.MkdirAll(filepath.Dir(file.Path), dirPerm); err != nil {
		return fmt.Errorf("creating directory for %s: %w", file.Filename, err)
	}

	f, err := os.OpenFile(file.Path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePerm)
	if err != nil {
		return fmt.Errorf("creating %s: %w", file.Filename, err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", file.Filename, cerr)
		}
	}()

	w := bufio.NewWriter(f)

	if _, err := w.Write(file.Content); err != nil {
		return fmt.Errorf("writing %s: %w", file.Filename, err)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing %s: %w", file.Filename, err)
	}

	return nil
}

// Remove deletes path. A file that is already gone is not an error.
func (FileEmitter) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing %s: %w", filepath.Base(path), err)
	}

	return nil
}

// MemoryEmitter keeps files in memory, keyed by path. Used for dry runs.
type MemoryEmitter struct {
	mu      sync.Mutex
	files   map[string][]byte
	removed []string
}

var _ Emitter = (*MemoryEmitter)(nil)

// NewMemoryEmitter returns an empty MemoryEmitter.
func NewMemoryEmitter() *MemoryEmitter {
	return &MemoryEmitter{files: make(map[string][]byte)}
}

// Emit stores a copy of the file content.
func (e *MemoryEmitter) Emit(file GeneratedFile) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.files[file.Path] = slices.Clone(file.Content)

	return nil
}

// Remove forgets path and records it; the disk is left untouched.
func (e *MemoryEmitter) Remove(path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.files, path)
	e.removed = append(e.removed, path)

	return nil
}

// Removed returns every path passed to Remove, in call order.
func (e *MemoryEmitter) Removed() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return slices.Clone(e.removed)
}

// File returns the content emitted for path.
func (e *MemoryEmitter) File(path string) ([]byte, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	content, ok := e.files[path]

	return content, ok
}

// Paths returns every emitted path, sorted.
func (e *MemoryEmitter) Paths() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	paths := make([]string, 0, len(e.files))
	for p := range e.files {
		paths = append(paths, p)
	}

	slices.Sort(paths)

	return paths
}

// EmitAll emits every file. A failed file is reported as write_failed and
// the remaining files are still emitted. It returns the paths written.
func EmitAll(emitter Emitter, files []GeneratedFile, sink diagnostic.Sink) []string {
	written := make([]string, 0, len(files))

	for _, file := range files {
		if err := emitter.Emit(file); err != nil {
			sink.Report(diagnostic.NewError(diagnostic.CodeWriteFailed, err.Error(), token.Position{}, file.Model.Name, ""))

			continue
		}

		written = append(written, file.Path)
	}

	return written
}

// RemoveAll removes every path. A failure is reported as write_failed against
// the file and the remaining paths are still removed. It returns the paths
// removed.
func RemoveAll(emitter Emitter, paths []string, sink diagnostic.Sink) []string {
	removed := make([]string, 0, len(paths))

	for _, path := range paths {
		if err := emitter.Remove(path); err != nil {
			sink.Report(diagnostic.NewError(diagnostic.CodeWriteFailed, err.Error(), token.Position{Filename: path}, "", ""))

			continue
		}

		removed = append(removed, path)
	}

	return removed
}

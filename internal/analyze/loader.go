package analyze

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"golang.org/x/tools/go/packages"

	"marshaller-generator/internal/common"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// headerWindow bounds the search for the generated header.
const headerWindow = 512

// Analyzer loads Go packages for discovery.
type Analyzer struct {
	dir    string
	logger zerolog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithDir sets the directory patterns are resolved in.
func WithDir(dir string) Option {
	return func(a *Analyzer) {
		a.dir = dir
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// LoadPackages loads and type-checks the specified packages.
// Patterns are standard Go package patterns (e.g., "./models", "example.com/app/...").
//
// Files starting with GeneratedHeader are reduced to their package clause, so
// stale marshallers never take part in type checking or compilation.
func (a *Analyzer) LoadPackages(ctx context.Context, patterns ...string) ([]*Package, error) {
	overlay, err := a.generatedOverlay(ctx, patterns)
	if err != nil {
		return nil, err
	}

	cfg := &packages.Config{
		Context:   ctx,
		Mode:      LoadMode,
		Dir:       a.dir,
		ParseFile: a.parseFile,
		Overlay:   overlay,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	out := make([]*Package, 0, len(pkgs))

	for _, pkg := range pkgs {
		dir := ""
		if f, ok := common.First(pkg.GoFiles); ok {
			dir = filepath.Dir(f)
		}

		a.logger.Debug().
			Str("package", pkg.PkgPath).
			Int("files", len(pkg.Syntax)).
			Msg("loaded package")

		out = append(out, &Package{
			Path:   pkg.PkgPath,
			Name:   pkg.Name,
			Dir:    dir,
			Fset:   pkg.Fset,
			Types:  pkg.Types,
			Info:   pkg.TypesInfo,
			Syntax: pkg.Syntax,
		})
	}

	return out, nil
}

// generatedOverlay replaces every generated file of the matched packages with
// its header and package clause. The build behind LoadMode compiles the
// packages themselves, and a marshaller for a type that no longer exists
// would otherwise fail it.
func (a *Analyzer) generatedOverlay(ctx context.Context, patterns []string) (map[string][]byte, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode:    packages.NeedName | packages.NeedFiles,
		Dir:     a.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}

	overlay := make(map[string][]byte)

	for _, pkg := range pkgs {
		for _, name := range pkg.GoFiles {
			if !IsGeneratedFile(name) {
				continue
			}

			overlay[name] = []byte(GeneratedHeader + "\n\npackage " + pkg.Name + "\n")
		}
	}

	if len(overlay) > 0 {
		a.logger.Debug().Int("files", len(overlay)).Msg("masking generated files")
	}

	return overlay, nil
}

// IsGeneratedFile reports whether the file at path starts with
// GeneratedHeader. Unreadable files count as hand-written.
func IsGeneratedFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}

	defer func() { _ = f.Close() }()

	head := make([]byte, headerWindow)
	n, _ := io.ReadFull(f, head)

	return IsGenerated(head[:n])
}

func (a *Analyzer) parseFile(fset *token.FileSet, filename string, src []byte) (*ast.File, error) {
	if IsGenerated(src) {
		a.logger.Debug().Str("file", filename).Msg("skipping generated file")

		return parser.ParseFile(fset, filename, src, parser.PackageClauseOnly)
	}

	return parser.ParseFile(fset, filename, src, parser.AllErrors|parser.ParseComments)
}

// IsGenerated reports whether src is a file written by this generator.
func IsGenerated(src []byte) bool {
	head := src[:min(len(src), headerWindow)]

	return bytes.HasPrefix(bytes.TrimLeft(head, " \t\r\n"), []byte(GeneratedHeader))
}

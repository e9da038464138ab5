// Package processor runs annotation processing rounds: load, discover,
// validate, generate, emit.
package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"marshaller-generator/internal/analyze"
	"marshaller-generator/internal/config"
	"marshaller-generator/internal/diagnostic"
	"marshaller-generator/internal/gen"
)

// Processor runs rounds over a fixed configuration.
type Processor struct {
	cfg     *config.Config
	dir     string
	emitter gen.Emitter
	logger  zerolog.Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// WithEmitter replaces the default FileEmitter, e.g. with a MemoryEmitter for dry runs.
func WithEmitter(e gen.Emitter) Option {
	return func(p *Processor) {
		p.emitter = e
	}
}

// WithDir sets the directory package patterns are resolved in.
func WithDir(dir string) Option {
	return func(p *Processor) {
		p.dir = dir
	}
}

// New creates a Processor. A nil cfg means config.Default().
func New(cfg *config.Config, opts ...Option) *Processor {
	if cfg == nil {
		cfg = config.Default()
	}

	p := &Processor{
		cfg:     cfg,
		emitter: gen.FileEmitter{},
		logger:  zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Result is the outcome of one round.
type Result struct {
	Diagnostics diagnostic.Diagnostics
	// Written lists the files emitted, in generation order.
	Written []string
	// Removed lists the generated files no model produces any more.
	Removed []string
	// Dirs are the directories of the loaded packages.
	Dirs []string
}

// Process runs one round over patterns. Problems with the annotated code are
// returned as diagnostics in the result; the error is reserved for failures
// to load the packages at all.
func (p *Processor) Process(ctx context.Context, patterns ...string) (*Result, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	analyzer := analyze.NewAnalyzer(analyze.WithDir(p.dir), analyze.WithLogger(p.logger))

	pkgs, err := analyzer.LoadPackages(ctx, patterns...)
	if err != nil {
		return nil, fmt.Errorf("loading packages: %w", err)
	}

	res := &Result{}

	for _, pkg := range pkgs {
		if pkg.Dir != "" {
			res.Dirs = append(res.Dirs, pkg.Dir)
		}
	}

	elems := analyze.NewDiscoverer(p.cfg.Tag, p.cfg.Directive, &res.Diagnostics).Discover(pkgs)
	groups := analyze.Validate(elems, &res.Diagnostics)

	p.logger.Debug().
		Int("packages", len(pkgs)).
		Int("annotated", len(elems)).
		Int("models", len(groups)).
		Msg("validated annotations")

	generator := gen.NewGenerator(p.cfg, &res.Diagnostics, p.logger)

	keep := make(map[string]bool, len(groups))
	for _, group := range groups {
		keep[generator.Path(group.Model)] = true
	}

	files := generator.Generate(groups)
	res.Written = gen.EmitAll(p.emitter, files, &res.Diagnostics)
	res.Removed = gen.RemoveAll(p.emitter, p.staleFiles(res.Dirs, keep), &res.Diagnostics)

	for _, path := range res.Removed {
		p.logger.Info().Str("file", path).Msg("stale marshaller")
	}

	p.logger.Info().
		Int("models", len(groups)).
		Int("written", len(res.Written)).
		Int("removed", len(res.Removed)).
		Int("errors", len(res.Diagnostics.Errors)).
		Int("warnings", len(res.Diagnostics.Warnings)).
		Msg("round complete")

	return res, nil
}

// staleFiles lists the generated files in dirs whose path is not in keep.
// A model that lost its annotations, or was renamed or deleted, leaves such a
// file behind.
func (p *Processor) staleFiles(dirs []string, keep map[string]bool) []string {
	var stale []string

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			p.logger.Warn().Err(err).Str("dir", dir).Msg("cannot list generated files")

			continue
		}

		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || filepath.Ext(name) != ".go" || strings.HasSuffix(name, ".unformatted.go") {
				continue
			}

			path := filepath.Join(dir, name)
			if keep[path] || !analyze.IsGeneratedFile(path) {
				continue
			}

			stale = append(stale, path)
		}
	}

	return stale
}

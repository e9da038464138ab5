package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"path/filepath"

	"github.com/rs/zerolog"

	"marshaller-generator/internal/analyze"
	"marshaller-generator/internal/classify"
	"marshaller-generator/internal/config"
	"marshaller-generator/internal/diagnostic"
	"marshaller-generator/internal/naming"
)

// Generator synthesizes one marshaller file per model.
type Generator struct {
	cfg        *config.Config
	classifier *classify.Classifier
	sink       diagnostic.Sink
	logger     zerolog.Logger
}

// NewGenerator creates a Generator. Generation problems are reported to sink.
func NewGenerator(cfg *config.Config, sink diagnostic.Sink, logger zerolog.Logger) *Generator {
	return &Generator{
		cfg:        cfg,
		classifier: classify.New(cfg.EntityBaseName()),
		sink:       sink,
		logger:     logger,
	}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Path is where the file belongs: Filename inside the model's package directory.
	Path string
	// Filename is the name of the file (e.g., "book_marshaller.go").
	Filename string
	// Package is the import path of the model's package.
	Package string
	// Model is the type the file marshals.
	Model analyze.TypeID
	// Content is the formatted Go source code.
	Content []byte
}

// Generate renders a marshaller for every group. A group whose output cannot
// be formatted is reported and skipped; the others are still returned.
func (g *Generator) Generate(groups []*analyze.FieldGroup) []GeneratedFile {
	files := make([]GeneratedFile, 0, len(groups))

	for _, group := range groups {
		file, err := g.generate(group)
		if err != nil {
			g.sink.Report(diagnostic.NewError(diagnostic.CodeFormatFailed, err.Error(),
				group.Model.Pos, group.Model.Object.Name(), ""))

			continue
		}

		g.logger.Debug().
			Str("model", group.Model.ID.String()).
			Int("fields", len(group.Fields)).
			Str("file", file.Path).
			Msg("generated marshaller")

		files = append(files, *file)
	}

	return files
}

// TypeName returns the name of the marshaller generated for model.
func (g *Generator) TypeName(model string) string {
	return model + g.cfg.Suffix
}

// Filename returns the name of the file generated for model.
func (g *Generator) Filename(model string) string {
	return naming.SnakeCase(model) + g.cfg.FileSuffix
}

// Path returns where the marshaller of model is written: next to the model.
func (g *Generator) Path(model *analyze.Model) string {
	return filepath.Join(model.Package.Dir, g.Filename(model.Object.Name()))
}

func (g *Generator) generate(group *analyze.FieldGroup) (*GeneratedFile, error) {
	model := group.Model
	name := model.Object.Name()

	data := g.newBuilder(group).build(g.TypeName(name), g.cfg.EmitComments())

	var buf bytes.Buffer
	if err := marshallerTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template for %s: %w", model.ID, err)
	}

	filename := g.Filename(name)

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if g.cfg.DebugUnformatted {
			if debugErr := writeDebugUnformatted(model.Package.Dir, filename, buf.Bytes()); debugErr != nil {
				g.logger.Warn().Err(debugErr).Str("model", model.ID.String()).Msg("writing unformatted sidecar")
			}
		}

		return nil, fmt.Errorf("formatting marshaller for %s: %w", model.ID, err)
	}

	return &GeneratedFile{
		Path:     g.Path(model),
		Filename: filename,
		Package:  model.Package.Path,
		Model:    model.ID,
		Content:  formatted,
	}, nil
}

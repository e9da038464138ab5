// Package main provides the CLI entrypoint for marshaller-generator.
//
// marshaller-generator scans Go packages for struct fields annotated as
// database columns and writes one <Model>Marshaller per model next to it:
//   - Fields are annotated with an `orm:"name,default=..."` tag or an
//     //orm:column name=... default=... directive
//   - Misplaced annotations are reported compiler-style and never stop the run
//   - Generated marshallers register themselves with the orm runtime
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"marshaller-generator/internal/config"
	"marshaller-generator/internal/gen"
	"marshaller-generator/internal/processor"
)

// Exit codes.
const (
	exitOK          = 0
	exitDiagnostics = 1
	exitFailure     = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}

type options struct {
	configPath string
	initConfig string
	tag        string
	directive  string
	suffix     string
	dryRun     bool
	print      bool
	watch      bool
	verbose    bool
}

func parseFlags(args []string, stderr io.Writer) (*options, []string, error) {
	opts := &options{}

	fs := flag.NewFlagSet("marshaller-generator", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "usage: marshaller-generator [flags] [packages]\n\n")
		fs.PrintDefaults()
	}

	fs.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&opts.initConfig, "init-config", "", "write the effective configuration to this file and exit")
	fs.StringVar(&opts.tag, "tag", "", "struct tag key marking a column (default \""+config.DefaultTag+"\")")
	fs.StringVar(&opts.directive, "directive", "", "comment directive marking a column (default \""+config.DefaultDirective+"\")")
	fs.StringVar(&opts.suffix, "suffix", "", "marshaller type name suffix (default \""+config.DefaultSuffix+"\")")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "report diagnostics without writing files")
	fs.BoolVar(&opts.print, "print", false, "print generated files to stdout instead of writing them")
	fs.BoolVar(&opts.watch, "watch", false, "regenerate whenever a source file changes")
	fs.BoolVar(&opts.verbose, "v", false, "verbose logging")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	patterns := fs.Args()
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	return opts, patterns, nil
}

func loadConfig(opts *options) (*config.Config, error) {
	cfg := config.Default()

	if opts.configPath != "" {
		var err error

		cfg, err = config.LoadFile(opts.configPath)
		if err != nil {
			return nil, err
		}
	}

	if opts.tag != "" {
		cfg.Tag = opts.tag
	}

	if opts.directive != "" {
		cfg.Directive = opts.directive
	}

	if opts.suffix != "" {
		cfg.Suffix = opts.suffix
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func newLogger(stderr io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: true}).
		Level(level).
		With().Timestamp().Logger()
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, patterns, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}

		return exitFailure
	}

	logger := newLogger(stderr, opts.verbose)

	cfg, err := loadConfig(opts)
	if err != nil {
		logger.Error().Err(err).Msg("invalid configuration")

		return exitFailure
	}

	if opts.initConfig != "" {
		if err := config.WriteFile(cfg, opts.initConfig); err != nil {
			logger.Error().Err(err).Msg("writing configuration")

			return exitFailure
		}

		logger.Info().Str("path", opts.initConfig).Msg("configuration written")

		return exitOK
	}

	procOpts := []processor.Option{processor.WithLogger(logger)}

	var mem *gen.MemoryEmitter
	if opts.dryRun || opts.print {
		mem = gen.NewMemoryEmitter()
		procOpts = append(procOpts, processor.WithEmitter(mem))
	}

	p := processor.New(cfg, procOpts...)

	report := func(res *processor.Result) int {
		for _, d := range res.Diagnostics.All() {
			_, _ = fmt.Fprintln(stderr, d.String())
		}

		if opts.print {
			for _, path := range res.Written {
				content, _ := mem.File(path)
				_, _ = fmt.Fprintf(stdout, "=== %s ===\n%s\n", path, content)
			}
		}

		if res.Diagnostics.HasErrors() {
			return exitDiagnostics
		}

		return exitOK
	}

	if opts.watch {
		err := p.Watch(ctx, patterns, func(res *processor.Result, err error) {
			if err != nil {
				logger.Error().Err(err).Msg("round failed")

				return
			}

			report(res)
		})
		if err != nil {
			logger.Error().Err(err).Msg("watch failed")

			return exitFailure
		}

		return exitOK
	}

	res, err := p.Process(ctx, patterns...)
	if err != nil {
		logger.Error().Err(err).Msg("processing failed")

		return exitFailure
	}

	return report(res)
}

package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"marshaller-generator/internal/analyze"
)

// RoundFunc receives the outcome of every round run by Watch. err is the
// Process error, if any.
type RoundFunc func(res *Result, err error)

// Watch runs a round, then re-runs one whenever a hand-written .go file in a
// loaded package directory changes. Bursts of events within the configured
// debounce window trigger a single round. Watch returns when ctx is done.
func (p *Processor) Watch(ctx context.Context, patterns []string, onRound RoundFunc) error {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}

	defer func() { _ = w.Close() }()

	watched := make(map[string]bool)
	removed := make(map[string]bool)

	watch := func(dir string) {
		if watched[dir] {
			return
		}

		if err := w.Add(dir); err != nil {
			p.logger.Warn().Err(err).Str("dir", dir).Msg("cannot watch directory")

			return
		}

		watched[dir] = true
		p.logger.Debug().Str("dir", dir).Msg("watching")
	}

	round := func() {
		res, err := p.Process(ctx, patterns...)

		var dirs []string
		if res != nil {
			dirs = res.Dirs
		} else {
			dirs = p.patternDirs(patterns)
		}

		for _, dir := range dirs {
			watch(dir)
		}

		clear(removed)

		if res != nil {
			for _, path := range res.Removed {
				removed[path] = true
			}
		}

		onRound(res, err)
	}

	round()

	debounce := time.NewTimer(p.cfg.Watch.Debounce)
	debounce.Stop()

	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			if !relevant(ev) || (ev.Has(fsnotify.Remove) && removed[ev.Name]) {
				continue
			}

			p.logger.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("source changed")
			debounce.Reset(p.cfg.Watch.Debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}

			p.logger.Warn().Err(err).Msg("watch error")

		case <-debounce.C:
			round()
		}
	}
}

// patternDirs returns the patterns that name existing directories. It lets
// Watch recover from a first round whose packages failed to load.
func (p *Processor) patternDirs(patterns []string) []string {
	var dirs []string

	for _, pattern := range patterns {
		if strings.Contains(pattern, "...") {
			continue
		}

		dir := pattern
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(p.dir, dir)
		}

		if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
			abs, err := filepath.Abs(dir)
			if err == nil {
				dirs = append(dirs, abs)
			}
		}
	}

	return dirs
}

// relevant reports whether ev concerns a hand-written Go source file.
func relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}

	name := filepath.Base(ev.Name)
	if filepath.Ext(name) != ".go" || strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".unformatted.go") {
		return false
	}

	return !analyze.IsGeneratedFile(ev.Name)
}

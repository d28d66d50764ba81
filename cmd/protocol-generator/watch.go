package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settle is how long the watcher waits for a burst of events to end.
const settle = 200 * time.Millisecond

// watch regenerates whenever the protocol document or the types file
// changes, until ctx is done. Generation errors are logged, not returned.
func (g *generator) watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	targets := map[string]bool{}
	for _, p := range g.watched() {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", p, err)
		}

		targets[abs] = true

		// Editors often replace files instead of writing them; watching the
		// directory keeps the watch alive across renames.
		if err := w.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
		}
	}

	g.log.Info("watching for changes", "files", len(targets))

	timer := time.NewTimer(settle)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			abs, err := filepath.Abs(ev.Name)
			if err != nil || !targets[abs] {
				continue
			}

			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				g.log.Debug("change detected", "file", ev.Name, "op", ev.Op.String())
				timer.Reset(settle)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}

			g.log.Warn("watcher error", "error", err)

		case <-timer.C:
			if err := g.generate(ctx); err != nil {
				g.log.Error("generation failed", "error", err)
			}
		}
	}
}

func (g *generator) watched() []string {
	paths := []string{g.cfg.SchemaPath()}
	if g.cfg.TypesFile != "" {
		paths = append(paths, g.cfg.TypesFile)
	}

	return paths
}

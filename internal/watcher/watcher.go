// Package watcher processes EDI interchanges dropped into a directory.
// Trading partners commonly deliver files over SFTP into a pickup
// folder; the watcher picks each file up as it lands and runs it
// through the engine, throttled so a bulk drop cannot flood the
// process.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/tradewire-labs/edix/internal/core/domain"
	"github.com/tradewire-labs/edix/internal/core/ports/driving"
	"github.com/tradewire-labs/edix/internal/logger"
)

// DefaultFilesPerSecond is the default processing throttle.
const DefaultFilesPerSecond = 5

// Handler receives the outcome of processing one dropped file.
type Handler func(path string, result domain.ProcessingResult)

// Watcher runs dropped files through the engine.
type Watcher struct {
	engine     driving.Engine
	opts       domain.Options
	limiter    *rate.Limiter
	extensions map[string]bool
}

// New creates a watcher over an engine. Files with the .edi, .x12 and
// .txt extensions are picked up.
func New(engine driving.Engine, opts domain.Options) *Watcher {
	return &Watcher{
		engine:  engine,
		opts:    opts,
		limiter: rate.NewLimiter(rate.Limit(DefaultFilesPerSecond), 1),
		extensions: map[string]bool{
			".edi": true,
			".x12": true,
			".txt": true,
		},
	}
}

// SetRate replaces the processing throttle (files per second).
func (w *Watcher) SetRate(perSecond float64) {
	w.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
}

// Watch blocks, processing files created or written under dir, until
// the context is cancelled. Files already present when Watch starts are
// not picked up.
func (w *Watcher) Watch(ctx context.Context, dir string, handler Handler) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Add(dir); err != nil {
		return err
	}
	logger.Info("Watching %s", dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.wants(ev) {
				continue
			}
			if err := w.limiter.Wait(ctx); err != nil {
				return err
			}
			w.processFile(ctx, ev.Name, handler)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

func (w *Watcher) wants(ev fsnotify.Event) bool {
	if !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Write) {
		return false
	}
	return w.extensions[strings.ToLower(filepath.Ext(ev.Name))]
}

func (w *Watcher) processFile(ctx context.Context, path string, handler Handler) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Skipping %s: %v", path, err)
		return
	}

	logger.Debug("Processing %s (%d bytes)", path, len(data))
	handler(path, w.engine.ProcessMessage(ctx, string(data), "", w.opts))
}

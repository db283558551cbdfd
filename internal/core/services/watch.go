package services

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/docvault-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docvault-cli/internal/logger"
)

// DefaultWatchDebounce is how long the watcher waits after the last
// filesystem event before triggering a re-ingest. Editors often emit
// bursts of writes for a single save.
const DefaultWatchDebounce = 2 * time.Second

// Watcher re-ingests the documents directory whenever a document file
// changes.
type Watcher struct {
	ingest   driving.IngestService
	debounce time.Duration
}

// NewWatcher creates a watcher that re-ingests through the given
// service. A non-positive debounce falls back to the default.
func NewWatcher(ingest driving.IngestService, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}
	return &Watcher{
		ingest:   ingest,
		debounce: debounce,
	}
}

// Watch blocks, re-ingesting dir after each debounced burst of
// changes to .txt/.md files, until the context is cancelled.
func (w *Watcher) Watch(ctx context.Context, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return err
	}
	logger.Info("Watching %s for changes", dir)

	// The timer starts stopped; the first relevant event arms it.
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isDocumentEvent(event) {
				continue
			}
			logger.Debug("Change detected: %s %s", event.Op, event.Name)
			timer.Reset(w.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watch error: %v", err)

		case <-timer.C:
			logger.Section("Re-ingest")
			report, err := w.ingest.Ingest(ctx, dir)
			if err != nil {
				logger.Warn("Re-ingest failed: %v", err)
				continue
			}
			logger.Info("Re-ingested %d collections, %d failures",
				len(report.Indexed), len(report.Failures))
		}
	}
}

// isDocumentEvent reports whether the event concerns a document file
// and a mutating operation.
func isDocumentEvent(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	return documentExtensions[strings.ToLower(filepath.Ext(event.Name))]
}

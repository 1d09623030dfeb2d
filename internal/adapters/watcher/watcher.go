// Package watcher implements the working-tree file watcher using fsnotify.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// Watcher watches a working tree for writes to source files and reports each
// settled change through a callback. Events are debounced per path so editor
// save storms collapse into one notification.
type Watcher struct {
	root       string
	ext        string
	ignore     []string
	debounceMS int
	onChange   func(path string)

	mu      sync.RWMutex
	watcher *fsnotify.Watcher
	running bool
	cancel  context.CancelFunc

	debouncer *Debouncer
}

// NewWatcher creates a watcher over root for files with the given extension.
// onChange receives paths relative to root.
func NewWatcher(root, ext string, ignore []string, debounceMS int, onChange func(path string)) *Watcher {
	return &Watcher{
		root:       root,
		ext:        ext,
		ignore:     ignore,
		debounceMS: debounceMS,
		onChange:   onChange,
	}
}

// Start begins watching the working tree.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return err
	}
	w.watcher = fsw

	watchCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.debouncer = NewDebouncer(time.Duration(w.debounceMS)*time.Millisecond, w.fireChange)
	w.running = true
	w.mu.Unlock()

	if err := w.addWatchRecursive(w.root); err != nil {
		_ = w.Stop()
		return err
	}

	go w.eventLoop(watchCtx)

	log.Info().
		Str("root", w.root).
		Str("ext", w.ext).
		Int("debounce_ms", w.debounceMS).
		Msg("file watcher started")

	return nil
}

// Stop terminates file watching.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}
	w.running = false

	if w.cancel != nil {
		w.cancel()
	}
	if w.debouncer != nil {
		w.debouncer.Stop()
	}
	if w.watcher != nil {
		err := w.watcher.Close()
		w.watcher = nil
		log.Info().Msg("file watcher stopped")
		return err
	}
	return nil
}

// IsRunning returns true if the watcher is active.
func (w *Watcher) IsRunning() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

// addWatchRecursive adds watches to a directory and all subdirectories.
func (w *Watcher) addWatchRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip entries we can't access
		}
		if !info.IsDir() {
			return nil
		}
		if w.shouldIgnore(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("failed to add watch")
		}
		return nil
	})
}

// eventLoop handles fsnotify events until the context is cancelled.
func (w *Watcher) eventLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("watcher error")
		}
	}
}

// handleEvent processes a single fsnotify event.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if w.shouldIgnore(event.Name) {
		return
	}

	// New directories need a watch of their own.
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = w.addWatchRecursive(event.Name)
			return
		}
	}

	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
		return
	}
	if !strings.HasSuffix(event.Name, w.ext) {
		return
	}

	relPath, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		relPath = event.Name
	}
	w.debouncer.Add(relPath)
}

// fireChange delivers one settled change to the callback.
func (w *Watcher) fireChange(path string) {
	log.Debug().Str("path", path).Msg("source file changed")
	if w.onChange != nil {
		w.onChange(path)
	}
}

// shouldIgnore reports whether any path element matches an ignore pattern.
func (w *Watcher) shouldIgnore(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		for _, pattern := range w.ignore {
			if matched, _ := filepath.Match(pattern, part); matched {
				return true
			}
		}
	}
	return false
}

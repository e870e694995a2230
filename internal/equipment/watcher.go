package equipment

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/techequipments/engine/internal/metrics"
)

// Watcher reloads a catalog when its file changes.
type Watcher struct {
	path     string
	catalog  *Catalog
	debounce time.Duration
	onReload func(n int, err error)
	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewWatcher creates a watcher for the catalog file at path.
func NewWatcher(path string, catalog *Catalog) *Watcher {
	return &Watcher{
		path:     path,
		catalog:  catalog,
		debounce: 100 * time.Millisecond,
		stop:     make(chan struct{}),
	}
}

// OnReload registers a callback run after every reload attempt.
func (w *Watcher) OnReload(fn func(n int, err error)) {
	w.onReload = fn
}

// Start begins watching. It returns once the watch is registered.
func (w *Watcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// the directory is watched so atomic saves (rename over) are seen
	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return err
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer watcher.Close()

		fmt.Printf("[Catalog] Watching %s\n", w.path)

		var timer *time.Timer
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(w.path) {
					continue
				}
				if event.Op&fsnotify.Write == fsnotify.Write ||
					event.Op&fsnotify.Create == fsnotify.Create {
					if timer != nil {
						timer.Stop()
					}
					timer = time.AfterFunc(w.debounce, w.reload)
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				fmt.Printf("[Catalog] Watcher error: %v\n", err)

			case <-w.stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() { close(w.stop) })
	w.wg.Wait()
}

func (w *Watcher) reload() {
	entries, err := readFile(w.path)
	if err != nil {
		fmt.Printf("[Catalog] Reload failed, keeping previous catalog: %v\n", err)
		metrics.CatalogReloadsTotal.WithLabelValues(metrics.OutcomeError).Inc()
	} else {
		w.catalog.Replace(entries)
		fmt.Printf("[Catalog] Reloaded %d equipment\n", len(entries))
		metrics.CatalogReloadsTotal.WithLabelValues(metrics.OutcomeOK).Inc()
	}
	if w.onReload != nil {
		w.onReload(len(entries), err)
	}
}

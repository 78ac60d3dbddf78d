// Package watch invalidates cached scan results when session logs
// change on disk.
package watch

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Debounce is how long the watcher waits after the last event before
// firing; session logs are appended in bursts.
const Debounce = 500 * time.Millisecond

// Watcher observes a projects root and fires onChange once per burst
// of session log activity.
type Watcher struct {
	root     string
	onChange func()
	debounce time.Duration
}

// New returns a watcher over root calling onChange after each burst.
func New(root string, onChange func()) *Watcher {
	return &Watcher{root: root, onChange: onChange, debounce: Debounce}
}

// Run watches until ctx is canceled. The root and every project
// directory under it are registered up front; project directories
// created later are added as they appear.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	if err := fsw.Add(w.root); err != nil {
		return err
	}
	entries, err := os.ReadDir(w.root)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			if err := fsw.Add(filepath.Join(w.root, e.Name())); err != nil {
				log.Printf("watch %s: %v", e.Name(), err)
			}
		}
	}

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if w.handle(fsw, event) {
				pending = time.After(w.debounce)
			}
		case <-pending:
			pending = nil
			w.onChange()
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch error: %v", err)
		}
	}
}

// handle registers newly created project directories and reports
// whether the event should trigger a rescan.
func (w *Watcher) handle(fsw *fsnotify.Watcher, event fsnotify.Event) bool {
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := fsw.Add(event.Name); err != nil {
				log.Printf("watch %s: %v", event.Name, err)
			}
			// A new project directory changes the project list.
			return true
		}
	}
	if !strings.HasSuffix(event.Name, ".jsonl") {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}

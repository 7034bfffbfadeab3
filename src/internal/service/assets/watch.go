package assets

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Change is one filesystem event under the asset root.
type Change struct {
	Path string
	Op   fsnotify.Op
}

// Watcher logs changes to the served tree. It never touches serving state:
// the file server reads from disk on every request anyway.
type Watcher struct {
	root     string
	watcher  *fsnotify.Watcher
	onChange func(Change)
}

// NewWatcher registers root and every directory below it. onChange may be nil.
func NewWatcher(root string, onChange func(Change)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{root: root, watcher: fw, onChange: onChange}
	if err := w.addTree(root); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// Run blocks until ctx is done, then releases the watcher.
func (w *Watcher) Run(ctx context.Context) {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Asset watcher error: %v", err)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) {
		return
	}

	// New directories are not watched automatically.
	if ev.Has(fsnotify.Create) && CheckRoot(ev.Name) {
		if err := w.addTree(ev.Name); err != nil {
			log.Printf("Asset watcher could not follow %s: %v", ev.Name, err)
		}
	}

	rel, err := filepath.Rel(w.root, ev.Name)
	if err != nil {
		rel = ev.Name
	}
	log.Printf("Asset changed: %s (%s)", filepath.ToSlash(rel), ev.Op)

	if w.onChange != nil {
		w.onChange(Change{Path: ev.Name, Op: ev.Op})
	}
}

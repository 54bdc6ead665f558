package resource

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/OpticalFlyer/vengine/logx"
)

// Reloader is a cache the watcher can refresh.
type Reloader interface {
	Has(path string) bool
	Reload(path string) error
}

// Watcher reloads cached resources whose files change on disk. Events are
// collected in the background and applied by Poll on the caller's thread.
type Watcher struct {
	fs      *fsnotify.Watcher
	root    string
	targets []Reloader
}

// NewWatcher watches root and every directory below it.
func NewWatcher(root string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("resource: watcher: %w", err)
	}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fw.Add(path)
		}
		return nil
	})
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("resource: watch %s: %w", root, err)
	}
	return &Watcher{fs: fw, root: root}, nil
}

// Register adds a cache whose resources should be reloaded.
func (w *Watcher) Register(r Reloader) {
	w.targets = append(w.targets, r)
}

// Poll applies pending file events without blocking and returns the number
// of resources reloaded.
func (w *Watcher) Poll() int {
	changed := make(map[string]struct{})
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return w.reload(changed)
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			rel, err := filepath.Rel(w.root, ev.Name)
			if err != nil {
				continue
			}
			changed[key(rel)] = struct{}{}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return w.reload(changed)
			}
			logx.Logger().Error("resource: watcher", "err", err)
		default:
			return w.reload(changed)
		}
	}
}

func (w *Watcher) reload(changed map[string]struct{}) int {
	n := 0
	for path := range changed {
		for _, t := range w.targets {
			if !t.Has(path) {
				continue
			}
			if err := t.Reload(path); err != nil {
				logx.Logger().Error("resource: reload failed", "path", path, "err", err)
				continue
			}
			n++
		}
	}
	return n
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

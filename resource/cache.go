package resource

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/OpticalFlyer/vengine/logx"
)

// Loader reads the resource stored at an absolute path.
type Loader[T any] func(path string) (T, error)

// Cache loads resources of one kind by path and shares them between users.
// Paths are relative to the cache root. A Cache is not safe for concurrent
// use.
type Cache[T any] struct {
	kind   string
	root   string
	load   Loader[T]
	table  *Table[T]
	byPath map[string]Handle

	release func(T)
	swap    func(cur, fresh T) bool
}

// NewCache returns an empty cache. kind names the resource type in logs.
func NewCache[T any](kind, root string, load Loader[T], release func(T)) *Cache[T] {
	return &Cache[T]{
		kind:    kind,
		root:    root,
		load:    load,
		table:   NewTable(release),
		byPath:  make(map[string]Handle),
		release: release,
	}
}

// SetSwap makes Reload update resources in place. swap moves the contents
// of fresh into cur and the old contents of cur into fresh, which is then
// released. Pointers handed out before the reload stay valid. When swap
// returns false the new value replaces the old one behind the handle.
func (c *Cache[T]) SetSwap(swap func(cur, fresh T) bool) {
	c.swap = swap
}

func key(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}

// Kind returns the resource type name.
func (c *Cache[T]) Kind() string { return c.kind }

// Root returns the directory paths are resolved against.
func (c *Cache[T]) Root() string { return c.root }

func (c *Cache[T]) abs(path string) string {
	return filepath.Join(c.root, filepath.FromSlash(path))
}

// Load returns the resource at path, loading it on first use. Every Load
// adds a reference that Unload gives back.
func (c *Cache[T]) Load(path string) (Handle, error) {
	k := key(path)
	if h, ok := c.byPath[k]; ok {
		if err := c.table.Retain(h); err != nil {
			return Handle{}, err
		}
		return h, nil
	}

	v, err := c.load(c.abs(k))
	if err != nil {
		return Handle{}, fmt.Errorf("resource: load %s %s: %w", c.kind, k, err)
	}
	h := c.table.Insert(v)
	c.byPath[k] = h
	logx.Logger().Info("resource loaded", "kind", c.kind, "path", k)
	return h, nil
}

// Get returns the loaded resource at path. A missing resource is logged
// and yields the zero value.
func (c *Cache[T]) Get(path string) (T, bool) {
	k := key(path)
	h, ok := c.byPath[k]
	if !ok {
		logx.Logger().Warn("resource not loaded", "kind", c.kind, "path", k)
		var zero T
		return zero, false
	}
	v, _ := c.table.Get(h)
	return v, true
}

// Resolve returns the resource behind h.
func (c *Cache[T]) Resolve(h Handle) (T, error) {
	return c.table.Get(h)
}

// Has reports whether path is loaded.
func (c *Cache[T]) Has(path string) bool {
	_, ok := c.byPath[key(path)]
	return ok
}

// Refs returns the reference count of path.
func (c *Cache[T]) Refs(path string) int {
	h, ok := c.byPath[key(path)]
	if !ok {
		return 0
	}
	return c.table.Refs(h)
}

// Len returns the number of loaded resources.
func (c *Cache[T]) Len() int { return len(c.byPath) }

// Unload drops one reference to path and frees the resource when it was
// the last one.
func (c *Cache[T]) Unload(path string) error {
	k := key(path)
	h, ok := c.byPath[k]
	if !ok {
		return fmt.Errorf("%w: %s %s", ErrNotFound, c.kind, k)
	}
	freed, err := c.table.Release(h)
	if err != nil {
		return err
	}
	if freed {
		delete(c.byPath, k)
		logx.Logger().Info("resource unloaded", "kind", c.kind, "path", k)
	}
	return nil
}

// UnloadAll frees every resource regardless of references. Anything still
// loaded at this point was never unloaded by its user and is logged as a
// leak.
func (c *Cache[T]) UnloadAll() {
	paths := make([]string, 0, len(c.byPath))
	for k := range c.byPath {
		paths = append(paths, k)
	}
	sort.Strings(paths)

	for _, k := range paths {
		h := c.byPath[k]
		logx.Logger().Warn("resource leaked", "kind", c.kind, "path", k, "refs", c.table.Refs(h))
		for {
			freed, err := c.table.Release(h)
			if err != nil || freed {
				break
			}
		}
		delete(c.byPath, k)
	}
}

// Reload loads path again and swaps the new value in behind the existing
// handle. On failure the old value stays.
//
// Without a swap function the old value is released and users holding it
// directly must resolve the handle again.
func (c *Cache[T]) Reload(path string) error {
	k := key(path)
	h, ok := c.byPath[k]
	if !ok {
		return fmt.Errorf("%w: %s %s", ErrNotFound, c.kind, k)
	}
	v, err := c.load(c.abs(k))
	if err != nil {
		return fmt.Errorf("resource: reload %s %s: %w", c.kind, k, err)
	}
	if err := c.replace(h, v); err != nil {
		return err
	}
	logx.Logger().Debug("resource reloaded", "kind", c.kind, "path", k)
	return nil
}

func (c *Cache[T]) replace(h Handle, fresh T) error {
	if c.swap != nil {
		cur, err := c.table.Get(h)
		if err != nil {
			return err
		}
		if c.swap(cur, fresh) {
			if c.release != nil {
				c.release(fresh)
			}
			return nil
		}
	}
	return c.table.Replace(h, fresh)
}

// Package resource stores loaded assets behind generation checked handles.
package resource

import (
	"errors"
	"fmt"
)

var (
	// ErrStale is returned for handles whose slot has been freed.
	ErrStale = errors.New("resource: stale handle")
	// ErrNotFound is returned for paths that are not loaded.
	ErrNotFound = errors.New("resource: not loaded")
)

// Handle refers to a value in a Table. The zero Handle is never valid.
type Handle struct {
	index      uint32
	generation uint32
}

// IsZero reports whether h is the zero handle.
func (h Handle) IsZero() bool { return h.generation == 0 }

func (h Handle) String() string {
	return fmt.Sprintf("%d:%d", h.index, h.generation)
}

type entry[T any] struct {
	value      T
	generation uint32
	refs       int
}

// Table is a slot array of reference counted values. Freed slots are reused
// with a bumped generation so old handles stop resolving.
type Table[T any] struct {
	entries []entry[T]
	free    []uint32
	live    int
	release func(T)
}

// NewTable returns an empty table. release, if not nil, runs when a value's
// last reference goes away or the value is replaced.
func NewTable[T any](release func(T)) *Table[T] {
	return &Table[T]{release: release}
}

// Insert stores v with one reference.
func (t *Table[T]) Insert(v T) Handle {
	var idx uint32
	if n := len(t.free); n > 0 {
		idx = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		idx = uint32(len(t.entries))
		t.entries = append(t.entries, entry[T]{})
	}
	e := &t.entries[idx]
	e.generation++
	e.value = v
	e.refs = 1
	t.live++
	return Handle{index: idx, generation: e.generation}
}

func (t *Table[T]) lookup(h Handle) (*entry[T], error) {
	if h.IsZero() || int(h.index) >= len(t.entries) {
		return nil, fmt.Errorf("%w %s", ErrStale, h)
	}
	e := &t.entries[h.index]
	if e.generation != h.generation || e.refs == 0 {
		return nil, fmt.Errorf("%w %s", ErrStale, h)
	}
	return e, nil
}

// Get returns the value behind h.
func (t *Table[T]) Get(h Handle) (T, error) {
	e, err := t.lookup(h)
	if err != nil {
		var zero T
		return zero, err
	}
	return e.value, nil
}

// Refs returns the reference count of h, or 0 for stale handles.
func (t *Table[T]) Refs(h Handle) int {
	e, err := t.lookup(h)
	if err != nil {
		return 0
	}
	return e.refs
}

// Retain adds a reference to h.
func (t *Table[T]) Retain(h Handle) error {
	e, err := t.lookup(h)
	if err != nil {
		return err
	}
	e.refs++
	return nil
}

// Release drops a reference to h and reports whether that freed the value.
func (t *Table[T]) Release(h Handle) (bool, error) {
	e, err := t.lookup(h)
	if err != nil {
		return false, err
	}
	e.refs--
	if e.refs > 0 {
		return false, nil
	}
	t.drop(h.index)
	return true, nil
}

func (t *Table[T]) drop(idx uint32) {
	e := &t.entries[idx]
	if t.release != nil {
		t.release(e.value)
	}
	var zero T
	e.value = zero
	e.refs = 0
	// Bump now so a handle to the freed slot fails even before reuse.
	e.generation++
	t.free = append(t.free, idx)
	t.live--
}

// Replace swaps the value behind h, releasing the old one. Existing handles
// see the new value.
func (t *Table[T]) Replace(h Handle, v T) error {
	e, err := t.lookup(h)
	if err != nil {
		return err
	}
	if t.release != nil {
		t.release(e.value)
	}
	e.value = v
	return nil
}

// Len returns the number of live values.
func (t *Table[T]) Len() int { return t.live }

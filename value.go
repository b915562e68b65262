// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lockless

import (
	"iter"
	"sync/atomic"
)

// Value is an assignable cell where the latest write wins.
//
// Every Assign links a new Version in front of the current one; nothing is
// overwritten in place, so a value read by Get stays intact while other
// goroutines assign. All versions are retained for the life of the cell.
// The first version is stored inside the Value itself.
//
// Get is wait-free. Assign is lock-free.
type Value[T any] struct {
	_     pad
	head  atomic.Pointer[Version[T]]
	_     pad
	first Version[T]
}

// Version is one assignment in a Value's history.
type Version[T any] struct {
	prev *Version[T] // nil only for the first version
	data T
}

// NewValue creates a Value holding v as its first version.
func NewValue[T any](v T) *Value[T] {
	c := &Value[T]{first: Version[T]{data: v}}
	c.head.Store(&c.first)
	return c
}

// Get returns the latest value.
func (c *Value[T]) Get() T {
	return c.head.Load().data
}

// First returns the value given to NewValue.
func (c *Value[T]) First() T {
	return c.first.data
}

// Head returns the latest version, for walking the history with Prev.
func (c *Value[T]) Head() *Version[T] {
	return c.head.Load()
}

// Assign makes v the latest value and returns its version.
func (c *Value[T]) Assign(v T) *Version[T] {
	ver := &Version[T]{data: v}
	casUpdatePointer(&c.head, func(old *Version[T]) *Version[T] {
		ver.prev = old
		return ver
	})
	return ver
}

// History returns an iterator over all values, newest first.
func (c *Value[T]) History() iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := c.head.Load(); v != nil; v = v.prev {
			if !yield(v.data) {
				return
			}
		}
	}
}

// Get returns the version's value.
func (v *Version[T]) Get() T {
	return v.data
}

// Prev returns the version assigned before v, or nil if v is the first.
func (v *Version[T]) Prev() *Version[T] {
	return v.prev
}

// IsFirst reports whether v is the version given to NewValue.
func (v *Version[T]) IsFirst() bool {
	return v.prev == nil
}

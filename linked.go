// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lockless

import (
	"iter"
	"sync/atomic"
)

// LinkedQueue is an unbounded multi-producer queue drained all at once.
//
// Push is a Treiber stack push: link the new item to the observed head and
// CAS the head. A drain swaps the head with nil, taking the whole chain in
// LIFO order, and reverses it so callers see items oldest first.
//
// Any number of goroutines may Push and drain concurrently. Each pushed item
// is delivered to exactly one drain; a drain that finds the queue empty does
// no work.
//
// The zero value is an empty queue ready to use.
type LinkedQueue[T any] struct {
	_    pad
	head atomic.Pointer[Item[T]]
	_    pad
}

// Item is a node of a drained LinkedQueue chain.
// The chain is owned by whoever drained it.
type Item[T any] struct {
	next *Item[T]
	data T
}

// Push adds v to the queue (multiple producers safe).
func (q *LinkedQueue[T]) Push(v T) {
	item := &Item[T]{data: v}
	casUpdatePointer(&q.head, func(old *Item[T]) *Item[T] {
		item.next = old
		return item
	})
}

// Empty reports whether the queue currently holds no items.
func (q *LinkedQueue[T]) Empty() bool {
	return q.head.Load() == nil
}

// PopAll withdraws every queued item and returns the chain oldest first,
// or nil if the queue is empty.
func (q *LinkedQueue[T]) PopAll() *Item[T] {
	return q.reverse()
}

// Apply withdraws every queued item, calls f on each oldest first, and
// returns the number of items processed. Items are unlinked as they are
// visited so processed ones can be collected early.
func (q *LinkedQueue[T]) Apply(f func(*T)) int {
	n := 0
	for item := q.reverse(); item != nil; n++ {
		f(&item.data)
		item = item.PopAll()
	}
	return n
}

// reverse takes the whole chain and restores push order.
func (q *LinkedQueue[T]) reverse() *Item[T] {
	if q.head.Load() == nil {
		return nil
	}
	head := q.head.Swap(nil)

	var prev *Item[T]
	for head != nil {
		next := head.next
		head.next = prev
		prev, head = head, next
	}
	return prev
}

// Get returns a pointer to the item's value.
func (it *Item[T]) Get() *T {
	return &it.data
}

// Next returns the following item, or nil at the end of the chain.
func (it *Item[T]) Next() *Item[T] {
	return it.next
}

// PopAll detaches and returns the rest of the chain after it.
func (it *Item[T]) PopAll() *Item[T] {
	next := it.next
	it.next = nil
	return next
}

// All returns an iterator over the values of the chain starting at it.
func (it *Item[T]) All() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for p := it; p != nil; p = p.next {
			if !yield(&p.data) {
				return
			}
		}
	}
}

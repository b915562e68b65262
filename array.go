// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lockless

import "sync/atomic"

// Array is an append-only, sizeless array for concurrent access.
//
// Elements live in a chain of fixed-size blocks. The first block is allocated
// with the Array; further blocks are linked on demand by Access and are never
// moved, shrunk or unlinked, so a pointer returned by Access stays valid for
// the lifetime of the Array. Index i always resolves to block i/BlockSize(),
// slot i%BlockSize(), regardless of which goroutine linked the block.
//
// Smaller indices are faster: the first block is reached without touching any
// atomic, and each further block costs one atomic load.
//
// Growth is not once-synchronized. Goroutines racing to grow the same link
// each contribute their candidate block, so up to one extra block per racer
// may be linked past what was needed. No candidate is ever discarded.
//
// Memory: BlockSize() elements per linked block, plus one pointer per block
// for the next link
type Array[T any] struct {
	data []T
	next atomic.Pointer[Array[T]]
}

// NewArray creates an Array whose blocks hold blockSize elements.
// Panics if blockSize < 1.
func NewArray[T any](blockSize int) *Array[T] {
	if blockSize < 1 {
		panic("lockless: block size must be >= 1")
	}
	return &Array[T]{data: make([]T, blockSize)}
}

// Access returns a pointer to the element at index, linking new blocks
// as needed. The element is zero-valued until first written.
// Panics if index is negative.
func (a *Array[T]) Access(index int) *T {
	if uint(index) < uint(len(a.data)) {
		return &a.data[index]
	}
	if index < 0 {
		panic("lockless: negative array index")
	}

	b := a
	for index >= len(b.data) {
		next := b.next.Load()
		if next == nil {
			next = b.grow()
		}
		index -= len(b.data)
		b = next
	}
	return &b.data[index]
}

// Lookup returns a pointer to the element at index if its block is already
// linked. Lookup never grows the Array.
func (a *Array[T]) Lookup(index int) (*T, bool) {
	if index < 0 {
		return nil, false
	}

	b := a
	for index >= len(b.data) {
		index -= len(b.data)
		if b = b.next.Load(); b == nil {
			return nil, false
		}
	}
	return &b.data[index], true
}

// Blocks returns the number of linked blocks, including the first.
func (a *Array[T]) Blocks() int {
	n := 1
	for b := a.next.Load(); b != nil; b = b.next.Load() {
		n++
	}
	return n
}

// BlockSize returns the number of elements per block.
func (a *Array[T]) BlockSize() int {
	return len(a.data)
}

// grow links one new block somewhere at or past a and returns a's successor.
//
// The candidate is installed on the first nil link reachable from a. When the
// CAS loses to another goroutine the candidate moves on to the block that won,
// so every allocated block ends up in the chain.
func (a *Array[T]) grow() *Array[T] {
	candidate := &Array[T]{data: make([]T, len(a.data))}
	for b := a; !b.next.CompareAndSwap(nil, candidate); {
		b = b.next.Load()
	}
	return a.next.Load()
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lockless

import "code.hybscloud.com/atomix"

// FIFO is a counting FIFO over an Array.
//
// FIFO hands out positions, not elements. Producers reserve positions with
// PushBegin and write the element at Access(pos); the consumer reads from
// Peek onward and acknowledges processed elements with PopEnd. How an element
// signals that it has been fully written is up to the caller's element type
// (there is no PushEnd or PopBegin).
//
// When PopEnd catches up with the push position both counters reset to zero,
// so positions are reused from the start of the Array. The block chain itself
// never shrinks.
//
// Counters are 32-bit and wrap silently. Lifetime pushes between two resets
// must stay below 2^32.
type FIFO[T any] struct {
	Array[T]
	_    pad
	ctrl atomix.Uint64 // push<<32 | pop
	_    pad
}

// Control word layout: push position in the high half, pop position in the
// low half. Push advances with a single add of pushUnit; a wrap of the push
// half falls off the top of the word and never carries into pop.
const (
	fifoPushShift = 32
	fifoPushUnit  = 1 << fifoPushShift
	fifoPopMask   = fifoPushUnit - 1
)

func fifoPush(ctrl uint64) uint32 { return uint32(ctrl >> fifoPushShift) }

func fifoPop(ctrl uint64) uint32 { return uint32(ctrl & fifoPopMask) }

func fifoCtrl(push, pop uint32) uint64 { return uint64(push)<<fifoPushShift | uint64(pop) }

// NewFIFO creates a FIFO backed by blocks of blockSize elements.
// Panics if blockSize < 1.
func NewFIFO[T any](blockSize int) *FIFO[T] {
	if blockSize < 1 {
		panic("lockless: block size must be >= 1")
	}
	return &FIFO[T]{Array: Array[T]{data: make([]T, blockSize)}}
}

// Size returns the current push position.
func (q *FIFO[T]) Size() uint32 {
	return fifoPush(q.ctrl.LoadAcquire())
}

// PushBegin reserves one position and returns it.
func (q *FIFO[T]) PushBegin() uint32 {
	return q.PushBeginN(1)
}

// PushBeginN reserves count consecutive positions and returns the first.
// Concurrent reservations never overlap.
func (q *FIFO[T]) PushBeginN(count uint32) uint32 {
	delta := uint64(count) << fifoPushShift
	return fifoPush(q.ctrl.AddAcqRel(delta) - delta)
}

// Peek returns the current pop position.
func (q *FIFO[T]) Peek() uint32 {
	return fifoPop(q.ctrl.LoadAcquire())
}

// PopEnd acknowledges one processed element. See PopEndN.
func (q *FIFO[T]) PopEnd() uint32 {
	return q.PopEndN(1)
}

// PopEndN acknowledges count processed elements and returns the position of
// the next one. If the pop position reaches the push position, both are
// reset to zero in the same atomic step and 0 is returned.
func (q *FIFO[T]) PopEndN(count uint32) uint32 {
	_, ctrl, _ := casUpdate(&q.ctrl, func(old uint64) (uint64, bool) {
		push, pop := fifoPush(old), fifoPop(old)+count
		if pop == push {
			return 0, true
		}
		return fifoCtrl(push, pop), true
	})
	return fifoPop(ctrl)
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lockless

import "code.hybscloud.com/atomix"

// SPSCRing is a single-producer single-consumer bounded ring.
//
// Based on Lamport's ring buffer with cached index optimization. The producer
// caches the consumer's pop cursor, and vice versa. Each side publishes its
// own cursor with a release store and reads the peer's with an acquire load.
//
// Exactly one goroutine may produce and one may consume. Violating that is
// undefined behavior, not a detected error.
//
// Memory: O(capacity) with no per-slot overhead
type SPSCRing[T any] struct {
	ring[T]
	_         pad
	push      atomix.Uint64 // Producer cursor (uint32 domain)
	_         pad
	cachedPop uint32 // Producer's cached view of pop
	_         pad
}

// NewSPSCRing creates a new SPSC ring.
// Capacity rounds up to the next power of 2.
func NewSPSCRing[T any](capacity int) *SPSCRing[T] {
	if capacity < 2 {
		panic("lockless: capacity must be >= 2")
	}
	if uint64(capacity) > maxRingCapacity {
		panic("lockless: capacity exceeds 2^31")
	}

	q := &SPSCRing[T]{}
	q.ring.init(capacity, &q.push, 0)
	return q
}

// maxRingCapacity keeps push-pop representable with 32-bit cursors.
const maxRingCapacity = 1 << 31

// full reports whether no slot is free at push, refreshing the cached pop
// cursor only when the cache says full.
func (q *SPSCRing[T]) full(push uint32) bool {
	if push-q.cachedPop <= q.mask {
		return false
	}
	q.cachedPop = uint32(q.pop.LoadAcquire())
	return push-q.cachedPop > q.mask
}

// TryPush adds v to the ring (producer only).
// Returns false if the ring is full.
func (q *SPSCRing[T]) TryPush(v T) bool {
	push := uint32(q.push.LoadRelaxed())
	if q.full(push) {
		return false
	}

	q.buffer[push&q.mask] = v
	q.push.StoreRelease(uint64(push + 1))
	return true
}

// Enqueue adds a copy of *elem to the ring (producer only).
// Returns ErrWouldBlock if the ring is full.
func (q *SPSCRing[T]) Enqueue(elem *T) error {
	if !q.TryPush(*elem) {
		return ErrWouldBlock
	}
	return nil
}

// PushSlot returns the next free slot for in-place writing (producer only),
// or nil if the ring is full. The write is published by EndPush.
func (q *SPSCRing[T]) PushSlot() *T {
	push := uint32(q.push.LoadRelaxed())
	if q.full(push) {
		return nil
	}
	return &q.buffer[push&q.mask]
}

// EndPush publishes the slot obtained from PushSlot (producer only).
// Does nothing if the ring is full.
func (q *SPSCRing[T]) EndPush() {
	push := uint32(q.push.LoadRelaxed())
	if q.full(push) {
		return
	}
	q.push.StoreRelease(uint64(push + 1))
}

// PushAt returns the slot i positions after the push cursor (producer only).
// No bounds or fullness check is made; the slot may still be unconsumed.
func (q *SPSCRing[T]) PushAt(i int) *T {
	push := uint32(q.push.LoadRelaxed())
	return &q.buffer[(push+uint32(i))&q.mask]
}

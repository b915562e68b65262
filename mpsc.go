// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lockless

import "code.hybscloud.com/atomix"

// MPSCRing is a multi-producer single-consumer bounded ring.
//
// Producers share one reservation word:
//
//	bits  0-15  ack:     slots reserved in the current batch
//	bits 16-31  release: reserved slots whose write has finished
//	bits 32-63  push:    published push cursor
//
// A producer reserves by CAS, taking offset ack past push, and publishes by
// adding one release unit. The producer whose release makes release == ack
// commits the whole batch with a single CAS that advances push by ack and
// zeroes both counts. Because push lives in the same word, a reservation
// always sees a push cursor consistent with the batch it joins.
//
// The consumer API is the same as SPSCRing and must be used by one goroutine.
//
// Memory: O(capacity) with no per-slot overhead
type MPSCRing[T any] struct {
	ring[T]
	_    pad
	word atomix.Uint64 // push<<32 | release<<16 | ack
	_    pad
}

// MaxMPSCRingCapacity is the largest MPSCRing capacity. Ack and release
// counts must fit their 16-bit fields.
const MaxMPSCRingCapacity = 1 << 15

const (
	mpscAckUnit   = 1
	mpscRelShift  = 16
	mpscRelUnit   = 1 << mpscRelShift
	mpscCountMask = 1<<mpscRelShift - 1
	mpscPushShift = 32
)

func mpscAck(w uint64) uint32 { return uint32(w & mpscCountMask) }

func mpscRelease(w uint64) uint32 { return uint32(w>>mpscRelShift) & mpscCountMask }

func mpscPush(w uint64) uint32 { return uint32(w >> mpscPushShift) }

// NewMPSCRing creates a new MPSC ring.
// Capacity rounds up to the next power of 2.
// Panics if capacity < 2 or the rounded capacity exceeds MaxMPSCRingCapacity.
func NewMPSCRing[T any](capacity int) *MPSCRing[T] {
	if capacity < 2 {
		panic("lockless: capacity must be >= 2")
	}
	if roundToPow2(capacity) > MaxMPSCRingCapacity {
		panic("lockless: MPSC ring capacity exceeds 2^15")
	}

	q := &MPSCRing[T]{}
	q.ring.init(capacity, &q.word, mpscPushShift)
	return q
}

// PushSlot reserves the next free slot for in-place writing (multiple
// producers safe), or returns nil if the ring is full counting outstanding
// reservations. Every non-nil slot must be published with EndPush.
func (q *MPSCRing[T]) PushSlot() *T {
	// pop is read before the word, so it never runs ahead of push.
	pop := uint32(q.pop.LoadAcquire())
	old, _, ok := casUpdate(&q.word, func(w uint64) (uint64, bool) {
		if mpscPush(w)-pop+mpscAck(w) > q.mask {
			return w, false
		}
		return w + mpscAckUnit, true
	})
	if !ok {
		q.release(old)
		return nil
	}
	return &q.buffer[(mpscPush(old)+mpscAck(old))&q.mask]
}

// EndPush publishes a slot obtained from PushSlot (multiple producers safe).
// The slot becomes visible to the consumer once every reservation of its
// batch has been published.
func (q *MPSCRing[T]) EndPush() {
	q.release(q.word.AddAcqRel(mpscRelUnit))
}

// release commits the batch in w if all its reservations are published.
// A failed CAS means another producer joined the batch or committed it; in
// both cases that producer's own release takes over.
func (q *MPSCRing[T]) release(w uint64) {
	ack := mpscAck(w)
	if ack == 0 || ack != mpscRelease(w) {
		return
	}
	q.word.CompareAndSwapAcqRel(w, uint64(mpscPush(w)+ack)<<mpscPushShift)
}

// TryPush adds v to the ring (multiple producers safe).
// Returns false if the ring is full.
func (q *MPSCRing[T]) TryPush(v T) bool {
	slot := q.PushSlot()
	if slot == nil {
		return false
	}
	*slot = v
	q.EndPush()
	return true
}

// Enqueue adds a copy of *elem to the ring (multiple producers safe).
// Returns ErrWouldBlock if the ring is full.
func (q *MPSCRing[T]) Enqueue(elem *T) error {
	if !q.TryPush(*elem) {
		return ErrWouldBlock
	}
	return nil
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lockless

import "code.hybscloud.com/atomix"

// ring is the slot bank and consumer half shared by SPSCRing and MPSCRing.
//
// Cursors are 32-bit and wrap; slot = cursor & mask. Because the slot count
// is a power of two it divides 2^32, so push-pop stays correct across the
// wrap. The push cursor is owned by the wrapping producer type and read here
// through pushWord, shifted by pushShift.
type ring[T any] struct {
	_          pad
	pop        atomix.Uint64 // Consumer cursor (uint32 domain)
	_          pad
	cachedPush uint32 // Consumer's cached view of push
	_          pad
	pushWord   *atomix.Uint64
	pushShift  uint
	buffer     []T
	mask       uint32
}

func (r *ring[T]) init(capacity int, pushWord *atomix.Uint64, pushShift uint) {
	n := uint32(roundToPow2(capacity))
	r.buffer = make([]T, n)
	r.mask = n - 1
	r.pushWord = pushWord
	r.pushShift = pushShift
}

// loadPush reads the published push cursor with acquire ordering, making
// every slot below it visible to the consumer.
func (r *ring[T]) loadPush() uint32 {
	return uint32(r.pushWord.LoadAcquire() >> r.pushShift)
}

// readable reports whether the slot at pop holds a published element,
// refreshing the cached push cursor only when the cache says empty.
func (r *ring[T]) readable(pop uint32) bool {
	if pop != r.cachedPush {
		return true
	}
	r.cachedPush = r.loadPush()
	return pop != r.cachedPush
}

// TryPop removes and returns the oldest element (consumer only).
// Returns (zero-value, false) if the ring is empty.
func (r *ring[T]) TryPop() (T, bool) {
	pop := uint32(r.pop.LoadRelaxed())
	if !r.readable(pop) {
		var zero T
		return zero, false
	}

	slot := &r.buffer[pop&r.mask]
	elem := *slot
	var zero T
	*slot = zero
	r.pop.StoreRelease(uint64(pop + 1))
	return elem, true
}

// Dequeue removes and returns the oldest element (consumer only).
// Returns (zero-value, ErrWouldBlock) if the ring is empty.
func (r *ring[T]) Dequeue() (T, error) {
	elem, ok := r.TryPop()
	if !ok {
		return elem, ErrWouldBlock
	}
	return elem, nil
}

// At returns the slot i positions after the pop cursor without popping
// (consumer only). The slot holds a published element only for i < Len().
func (r *ring[T]) At(i int) *T {
	r.cachedPush = r.loadPush()
	pop := uint32(r.pop.LoadRelaxed())
	return &r.buffer[(pop+uint32(i))&r.mask]
}

// EndPop releases the oldest element after in-place processing through At
// (consumer only). Does nothing if the ring is empty.
func (r *ring[T]) EndPop() {
	pop := uint32(r.pop.LoadRelaxed())
	if !r.readable(pop) {
		return
	}

	var zero T
	r.buffer[pop&r.mask] = zero
	r.pop.StoreRelease(uint64(pop + 1))
}

// Len returns the number of published, unconsumed elements.
// Exact only when called by the consumer.
func (r *ring[T]) Len() int {
	pop := uint32(r.pop.LoadAcquire())
	return int(r.loadPush() - pop)
}

// Cap returns the ring capacity.
func (r *ring[T]) Cap() int {
	return int(r.mask) + 1
}

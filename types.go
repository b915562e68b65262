// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lockless

// Queue is the combined producer-consumer interface of the bounded rings.
//
// Queue provides non-blocking Enqueue and Dequeue operations. Both operations
// return ErrWouldBlock when they cannot proceed (ring full or empty).
//
// Example:
//
//	q := lockless.Build[int](lockless.New(1024).SingleConsumer())
//
//	// Enqueue
//	val := 42
//	if err := q.Enqueue(&val); err != nil {
//	    // Handle full ring
//	}
//
//	// Dequeue
//	elem, err := q.Dequeue()
//	if err == nil {
//	    fmt.Println(elem)
//	}
type Queue[T any] interface {
	Producer[T]
	Consumer[T]
	Cap() int
}

// Producer is the interface for enqueueing elements.
//
// The element is passed by pointer to avoid copying large structs. The ring
// stores a copy of the pointed-to value, so the original can be modified
// after Enqueue returns.
type Producer[T any] interface {
	// Enqueue adds an element to the ring (non-blocking).
	// Returns nil on success, ErrWouldBlock if the ring is full.
	//
	// Thread safety depends on ring type:
	//   - SPSCRing: single producer only
	//   - MPSCRing: multiple producers safe
	Enqueue(elem *T) error
}

// Consumer is the interface for dequeueing elements.
//
// The element is returned by value and its slot is cleared to allow garbage
// collection of referenced objects. Both ring types allow a single consumer.
type Consumer[T any] interface {
	// Dequeue removes and returns the oldest element (non-blocking).
	// Returns (zero-value, ErrWouldBlock) if the ring is empty.
	Dequeue() (T, error)
}

var (
	_ Queue[int] = (*SPSCRing[int])(nil)
	_ Queue[int] = (*MPSCRing[int])(nil)
)

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lockless

// Options configures ring creation and algorithm selection.
type Options struct {
	// Producer/Consumer constraints (determines ring type)
	singleProducer bool
	singleConsumer bool

	// Capacity (rounds up to next power of 2)
	capacity int
}

// Builder creates bounded rings with fluent configuration.
//
// Every ring in this package has a single consumer, so SingleConsumer is
// required. SingleProducer then selects between the two algorithms.
//
// Example:
//
//	// SPSC ring (one producer, one consumer)
//	q := lockless.BuildSPSC[Event](lockless.New(1024).SingleProducer().SingleConsumer())
//
//	// MPSC ring (many producers, one consumer)
//	q := lockless.BuildMPSC[Request](lockless.New(4096).SingleConsumer())
type Builder struct {
	opts Options
}

// New creates a ring builder with the given capacity.
//
// Capacity rounds up to the next power of 2.
// For example, capacity=4 results in actual capacity=4, capacity=1000 results
// in actual capacity=1024.
//
// Panics if capacity < 2.
func New(capacity int) *Builder {
	if capacity < 2 {
		panic("lockless: capacity must be >= 2")
	}
	return &Builder{opts: Options{capacity: capacity}}
}

// SingleProducer declares that only one goroutine will enqueue.
func (b *Builder) SingleProducer() *Builder {
	b.opts.singleProducer = true
	return b
}

// SingleConsumer declares that only one goroutine will dequeue.
func (b *Builder) SingleConsumer() *Builder {
	b.opts.singleConsumer = true
	return b
}

// Build creates a Queue[T] with automatic algorithm selection.
//
// Algorithm selection:
//
//	SingleProducer + SingleConsumer → SPSCRing (Lamport ring buffer)
//	SingleConsumer only             → MPSCRing (reservation/release batches)
//
// Panics without SingleConsumer: no multi-consumer ring is provided.
func Build[T any](b *Builder) Queue[T] {
	switch {
	case b.opts.singleProducer && b.opts.singleConsumer:
		return NewSPSCRing[T](b.opts.capacity)
	case b.opts.singleConsumer:
		return NewMPSCRing[T](b.opts.capacity)
	default:
		panic("lockless: Build requires SingleConsumer()")
	}
}

// BuildSPSC creates an SPSC ring with compile-time type safety.
// Panics if builder is not configured with SingleProducer().SingleConsumer().
func BuildSPSC[T any](b *Builder) *SPSCRing[T] {
	if !b.opts.singleProducer || !b.opts.singleConsumer {
		panic("lockless: BuildSPSC requires SingleProducer().SingleConsumer()")
	}
	return NewSPSCRing[T](b.opts.capacity)
}

// BuildMPSC creates an MPSC ring with compile-time type safety.
// Panics if builder is not configured with SingleConsumer() only.
func BuildMPSC[T any](b *Builder) *MPSCRing[T] {
	if b.opts.singleProducer || !b.opts.singleConsumer {
		panic("lockless: BuildMPSC requires SingleConsumer() without SingleProducer()")
	}
	return NewMPSCRing[T](b.opts.capacity)
}

// roundToPow2 rounds n up to the next power of 2.
func roundToPow2(n int) int {
	if n < 2 {
		return 2
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}

// pad is cache line padding to prevent false sharing.
type pad [64]byte

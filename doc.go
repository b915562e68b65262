// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package lockless provides lock-free building blocks for multi-producer
// systems.
//
// Every operation is safe under arbitrary goroutine interleavings without
// locks. Waiting only ever takes the form of a CAS retry with spin backoff.
//
//   - Array: append-only, block-linked store with stable element pointers
//   - FIFO: position-counting queue over an Array
//   - HashMap: insert-only open-addressed map over an Array
//   - SPSCRing: single-producer single-consumer bounded ring
//   - MPSCRing: multi-producer single-consumer bounded ring
//   - LinkedQueue: unbounded multi-producer queue drained all at once
//   - Value: assignable cell with retained history, latest write wins
//
// # Growable Storage
//
// Array, FIFO and HashMap share one storage model: a chain of fixed-size
// blocks that only grows. Pointers returned by Access are never invalidated.
//
//	arr := lockless.NewArray[Conn](64)
//	c := arr.Access(1000) // links blocks up to index 1000
//
//	m := lockless.NewHashMap[string, Stats](256, lockless.HashString)
//	m.Access("eth0").Packets++ // inserted on first access
//
// FIFO hands out positions rather than elements. The element type signals
// readiness on its own:
//
//	type job struct {
//	    ready atomix.Bool
//	    fn    func()
//	}
//	q := lockless.NewFIFO[job](256)
//
//	// Producers
//	pos := q.PushBegin()
//	j := q.Access(int(pos))
//	j.fn = work
//	j.ready.StoreRelease(true)
//
//	// Consumer
//	j := q.Access(int(q.Peek()))
//	if j.ready.LoadAcquire() {
//	    j.fn()
//	    j.ready.StoreRelease(false) // positions are reused after a reset
//	    q.PopEnd()
//	}
//
// # Bounded Rings
//
// SPSCRing and MPSCRing have a single consumer and a power-of-2 capacity.
// They offer bool results (TryPush, TryPop), in-place slots (PushSlot and
// EndPush, At and EndPop), and the Queue[T] interface whose Enqueue and
// Dequeue return [ErrWouldBlock]:
//
//	q := lockless.NewMPSCRing[Event](1024)
//
//	// Any producer
//	if slot := q.PushSlot(); slot != nil {
//	    *slot = ev
//	    q.EndPush()
//	}
//
//	// The consumer
//	for q.Len() > 0 {
//	    ev, _ := q.TryPop()
//	    handle(ev)
//	}
//
// Builder selects the ring from the declared constraints:
//
//	q := lockless.Build[Event](lockless.New(1024).SingleProducer().SingleConsumer()) // → SPSCRing
//	q := lockless.Build[Event](lockless.New(1024).SingleConsumer())                  // → MPSCRing
//
// # Unbounded Queue
//
// LinkedQueue never fills. Producers Push; a consumer takes everything at
// once, oldest first:
//
//	var q lockless.LinkedQueue[Msg]
//	q.Push(m)
//	n := q.Apply(func(m *Msg) { deliver(m) })
//
// # Versioned Value
//
// Value keeps every assignment so readers never observe a torn value:
//
//	cfg := lockless.NewValue(defaults)
//	cfg.Assign(reloaded)
//	cur := cfg.Get()
//
// # Error Handling
//
// Full and empty rings are backpressure, not failures. The bool and nil
// results of the Try and Slot methods, and [ErrWouldBlock] from the Queue
// adapters, are the only "cannot proceed" signals. Contract violations that
// can be seen at construction (block size < 1, capacity < 2) panic; others,
// such as two producers on an SPSCRing, are undefined behavior.
//
// # Thread Safety
//
//   - Array, FIFO, HashMap, LinkedQueue, Value: any number of goroutines
//   - SPSCRing: one producer goroutine, one consumer goroutine
//   - MPSCRing: multiple producer goroutines, one consumer goroutine
//
// Nothing here is reclaimed while reachable: Array blocks, HashMap slots and
// Value versions live as long as their owner.
//
// # Race Detection
//
// Ring slots are plain memory published through atomix acquire/release
// cursors. Go's race detector cannot observe that ordering and may report
// false positives. Concurrent ring tests are skipped when [RaceEnabled].
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for atomic primitives with
// explicit memory ordering, [code.hybscloud.com/spin] for CAS retry backoff,
// [code.hybscloud.com/iox] for semantic errors, and
// [github.com/cespare/xxhash/v2] for string hashing.
package lockless

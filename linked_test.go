// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lockless_test

import (
	"slices"
	"sync"
	"testing"

	"code.hybscloud.com/lockless"
)

// =============================================================================
// LinkedQueue - Basic Operations
// =============================================================================

func TestLinkedQueueOrder(t *testing.T) {
	var q lockless.LinkedQueue[int]

	if !q.Empty() {
		t.Fatal("zero value: want empty")
	}
	if q.PopAll() != nil {
		t.Fatal("PopAll on empty: want nil")
	}

	for i := range 5 {
		q.Push(i)
	}
	if q.Empty() {
		t.Fatal("after Push: want non-empty")
	}

	var got []int
	for p := q.PopAll(); p != nil; p = p.Next() {
		got = append(got, *p.Get())
	}
	if want := []int{0, 1, 2, 3, 4}; !slices.Equal(got, want) {
		t.Fatalf("PopAll: got %v, want %v", got, want)
	}
	if !q.Empty() {
		t.Fatal("after PopAll: want empty")
	}
}

func TestLinkedQueueApply(t *testing.T) {
	var q lockless.LinkedQueue[string]

	if n := q.Apply(func(*string) { t.Fatal("Apply on empty: f called") }); n != 0 {
		t.Fatalf("Apply on empty: got %d, want 0", n)
	}

	for _, s := range []string{"a", "b", "c"} {
		q.Push(s)
	}
	var got []string
	n := q.Apply(func(s *string) { got = append(got, *s) })
	if n != 3 {
		t.Fatalf("Apply: got %d, want 3", n)
	}
	if want := []string{"a", "b", "c"}; !slices.Equal(got, want) {
		t.Fatalf("Apply order: got %v, want %v", got, want)
	}

	// Items pushed after a drain start a new chain.
	q.Push("d")
	got = got[:0]
	if n := q.Apply(func(s *string) { got = append(got, *s) }); n != 1 || got[0] != "d" {
		t.Fatalf("second Apply: n=%d got %v", n, got)
	}
}

func TestLinkedQueueItemChain(t *testing.T) {
	var q lockless.LinkedQueue[int]
	for i := range 4 {
		q.Push(i * 10)
	}

	head := q.PopAll()
	var got []int
	for v := range head.All() {
		got = append(got, *v)
	}
	if !slices.Equal(got, []int{0, 10, 20, 30}) {
		t.Fatalf("All: got %v", got)
	}

	// Early break stops the walk.
	count := 0
	for range head.All() {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Fatalf("All with break: visited %d, want 2", count)
	}

	// Item.PopAll detaches the tail.
	rest := head.PopAll()
	if head.Next() != nil {
		t.Fatal("Item.PopAll: head still linked")
	}
	if rest == nil || *rest.Get() != 10 {
		t.Fatal("Item.PopAll: wrong tail")
	}

	// Values are mutable in place.
	*rest.Get() = 11
	if *rest.Get() != 11 {
		t.Fatal("Get: write not visible")
	}
}

// =============================================================================
// LinkedQueue - Concurrency
// =============================================================================

// TestLinkedQueueConcurrentPush checks that a drain after concurrent pushes
// sees every item once and each producer's items in push order.
func TestLinkedQueueConcurrentPush(t *testing.T) {
	const (
		producers = 8
		perP      = 5000
	)

	type msg struct{ id, seq int }
	var q lockless.LinkedQueue[msg]

	var wg sync.WaitGroup
	for p := range producers {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := range perP {
				q.Push(msg{id, i})
			}
		}(p)
	}
	wg.Wait()

	next := make([]int, producers)
	n := q.Apply(func(m *msg) {
		if m.seq != next[m.id] {
			t.Fatalf("producer %d: got seq %d, want %d", m.id, m.seq, next[m.id])
		}
		next[m.id]++
	})
	if n != producers*perP {
		t.Fatalf("Apply: got %d, want %d", n, producers*perP)
	}
}

// TestLinkedQueueConcurrentDrain runs producers and several draining
// goroutines together. Every item must be delivered to exactly one drain.
func TestLinkedQueueConcurrentDrain(t *testing.T) {
	const (
		producers = 4
		drainers  = 4
		perP      = 5000
		total     = producers * perP
	)

	var q lockless.LinkedQueue[int]
	results := make([][]int, drainers)

	var prodWG, drainWG sync.WaitGroup
	done := make(chan struct{})
	for d := range drainers {
		drainWG.Add(1)
		go func(id int) {
			defer drainWG.Done()
			for {
				select {
				case <-done:
					q.Apply(func(v *int) { results[id] = append(results[id], *v) })
					return
				default:
					q.Apply(func(v *int) { results[id] = append(results[id], *v) })
				}
			}
		}(d)
	}
	for p := range producers {
		prodWG.Add(1)
		go func(id int) {
			defer prodWG.Done()
			for i := range perP {
				q.Push(id*perP + i)
			}
		}(p)
	}
	prodWG.Wait()
	close(done)
	drainWG.Wait()

	seen := make([]bool, total)
	count := 0
	for _, r := range results {
		for _, v := range r {
			if seen[v] {
				t.Fatalf("value %d delivered twice", v)
			}
			seen[v] = true
			count++
		}
	}
	if count != total {
		t.Fatalf("delivered %d of %d", count, total)
	}
	if !q.Empty() {
		t.Fatal("queue not empty after final drains")
	}
}

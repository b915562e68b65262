// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lockless_test

import (
	"fmt"
	"strconv"
	"sync"
	"testing"

	"code.hybscloud.com/lockless"
	"code.hybscloud.com/spin"
)

// =============================================================================
// Ring Baselines
// =============================================================================

func BenchmarkSPSCRing_SingleOp(b *testing.B) {
	q := lockless.NewSPSCRing[int](1024)

	b.ResetTimer()
	for i := range b.N {
		q.TryPush(i)
		q.TryPop()
	}
}

func BenchmarkMPSCRing_SingleOp(b *testing.B) {
	q := lockless.NewMPSCRing[int](1024)

	b.ResetTimer()
	for i := range b.N {
		q.TryPush(i)
		q.TryPop()
	}
}

func BenchmarkMPSCRing_Batch(b *testing.B) {
	q := lockless.NewMPSCRing[int](1024)
	const batch = 64

	b.ResetTimer()
	for range b.N / batch {
		for i := range batch {
			q.TryPush(i)
		}
		for range batch {
			q.TryPop()
		}
	}
}

// =============================================================================
// Contention
// =============================================================================

func BenchmarkMPSCRing_ContentionLevels(b *testing.B) {
	if lockless.RaceEnabled {
		b.Skip("skip: ring slots are published through atomix cursors")
	}

	for _, workers := range []int{2, 4, 8, 16} {
		b.Run(fmt.Sprintf("Producers%d", workers), func(b *testing.B) {
			q := lockless.NewMPSCRing[int](1024)
			opsPerWorker := max(b.N/workers, 1)

			// Single consumer
			done := make(chan struct{})
			go func() {
				sw := spin.Wait{}
				for {
					select {
					case <-done:
						for {
							if _, ok := q.TryPop(); !ok {
								return
							}
						}
					default:
						if _, ok := q.TryPop(); ok {
							sw.Reset()
						} else {
							sw.Once()
						}
					}
				}
			}()

			b.ResetTimer()

			var wg sync.WaitGroup
			for w := range workers {
				wg.Add(1)
				go func(id int) {
					defer wg.Done()
					sw := spin.Wait{}
					base := id * opsPerWorker
					for i := range opsPerWorker {
						for !q.TryPush(base + i) {
							sw.Once()
						}
						sw.Reset()
					}
				}(w)
			}
			wg.Wait()
			b.StopTimer()
			close(done)
		})
	}
}

func BenchmarkLinkedQueue_ParallelPush(b *testing.B) {
	var q lockless.LinkedQueue[int]

	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			q.Push(i)
			i++
			if i&1023 == 0 {
				q.Apply(func(*int) {})
			}
		}
	})
}

func BenchmarkFIFO_ParallelPushBegin(b *testing.B) {
	q := lockless.NewFIFO[int](4096)

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			q.PushBegin()
		}
	})
}

// =============================================================================
// Growable Storage
// =============================================================================

func BenchmarkArray_Access(b *testing.B) {
	for _, size := range []int{64, 4096} {
		b.Run(fmt.Sprintf("Block%d", size), func(b *testing.B) {
			arr := lockless.NewArray[int](size)
			arr.Access(16 * size) // pre-grow

			b.ResetTimer()
			for i := range b.N {
				*arr.Access(i & (16*size - 1))++
			}
		})
	}
}

func BenchmarkHashMap_Access(b *testing.B) {
	keys := make([]string, 1024)
	for i := range keys {
		keys[i] = "key-" + strconv.Itoa(i)
	}

	m := lockless.NewHashMap[string, int](256, lockless.HashString)
	for _, k := range keys {
		m.Access(k)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			m.Load(keys[i&1023])
			i++
		}
	})
}

func BenchmarkValue_GetAssign(b *testing.B) {
	c := lockless.NewValue(0)

	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			if i&15 == 0 {
				c.Assign(i)
			} else {
				_ = c.Get()
			}
			i++
		}
	})
}

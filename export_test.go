// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lockless

import (
	"sync/atomic"

	"code.hybscloud.com/atomix"
)

func CASUpdate(a *atomix.Uint64, next func(old uint64) (uint64, bool)) (old, val uint64, ok bool) {
	return casUpdate(a, next)
}

func CASUpdatePointer[T any](p *atomic.Pointer[T], next func(old *T) *T) *T {
	return casUpdatePointer(p, next)
}

// SetSPSCCursor moves both cursors of an empty SPSCRing to c.
func SetSPSCCursor[T any](q *SPSCRing[T], c uint32) {
	q.push.StoreRelaxed(uint64(c))
	q.pop.StoreRelaxed(uint64(c))
	q.cachedPop = c
	q.cachedPush = c
}

// SetMPSCCursor moves both cursors of an empty MPSCRing to c.
func SetMPSCCursor[T any](q *MPSCRing[T], c uint32) {
	q.word.StoreRelaxed(uint64(c) << mpscPushShift)
	q.pop.StoreRelaxed(uint64(c))
	q.cachedPush = c
}

// MPSCWord unpacks the reservation word of q.
func MPSCWord[T any](q *MPSCRing[T]) (push, release, ack uint32) {
	w := q.word.LoadAcquire()
	return mpscPush(w), mpscRelease(w), mpscAck(w)
}

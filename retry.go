// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lockless

import (
	"sync/atomic"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// casUpdate replaces the value of a with next(old) until the CAS succeeds.
//
// next is called once per attempt with the freshly loaded value. It returns
// the replacement and whether to proceed; returning false abandons the update
// and casUpdate reports (old, old, false) without writing.
//
// Failed attempts back off with spin.Wait. The loop is lock-free but not
// wait-free: a CAS only fails because another goroutine's CAS succeeded.
func casUpdate(a *atomix.Uint64, next func(old uint64) (uint64, bool)) (old, val uint64, ok bool) {
	sw := spin.Wait{}
	for {
		old = a.LoadAcquire()
		val, ok = next(old)
		if !ok {
			return old, old, false
		}
		if a.CompareAndSwapAcqRel(old, val) {
			return old, val, true
		}
		sw.Once()
	}
}

// casUpdatePointer swings p from old to next(old) until the CAS succeeds and
// returns the pointer it replaced. next may mutate the node it returns (for
// example to link it to old) since that node is not yet published.
func casUpdatePointer[T any](p *atomic.Pointer[T], next func(old *T) *T) *T {
	sw := spin.Wait{}
	for {
		old := p.Load()
		if p.CompareAndSwap(old, next(old)) {
			return old
		}
		sw.Once()
	}
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lockless

import "code.hybscloud.com/iox"

// ErrWouldBlock is returned by the Queue adapters of the rings when the
// operation cannot proceed right now: Enqueue on a full ring, Dequeue on an
// empty one. It is an alias for [iox.ErrWouldBlock].
//
// A full or empty ring is backpressure, not a failure. The bool and nil
// results of TryPush, TryPop and PushSlot carry the same signal without an
// error value.
//
//	backoff := iox.Backoff{}
//	for q.Enqueue(&item) != nil {
//	    backoff.Wait()
//	}
//	backoff.Reset()
var ErrWouldBlock = iox.ErrWouldBlock

// IsWouldBlock reports whether err is, or wraps, ErrWouldBlock.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal rather than a
// failure. See [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err is nil or a control flow signal.
// See [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}

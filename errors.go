// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jobpool

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrAllocation is returned by New when pool or ring construction fails
// (a non-positive worker count or capacity). It is only ever surfaced at
// creation time; no other operation returns it.
var ErrAllocation = errors.New("jobpool: allocation failure")

// ErrRejected is returned by Submit and SubmitBlocking when the pool's
// acceptance gate is closed (a Destroy is in progress or complete).
// Unlike ErrQueueFull this is not a "try again" signal: once rejected,
// the pool will never accept another submission.
var ErrRejected = errors.New("jobpool: pool is not accepting submissions")

// ErrQueueFull is returned by Submit when the ring is saturated. It is
// an alias for [iox.ErrWouldBlock] for ecosystem consistency with the
// rest of the lock-free queue family this pool is built on: the
// condition is transient backpressure, not a failure, and callers may
// retry with backoff or fall back to SubmitBlocking.
var ErrQueueFull = iox.ErrWouldBlock

// IsRejected reports whether err indicates the pool was not accepting
// submissions.
func IsRejected(err error) bool {
	return errors.Is(err, ErrRejected)
}

// IsQueueFull reports whether err indicates the ring was full.
// Delegates to [iox.IsWouldBlock] for wrapped-error support.
func IsQueueFull(err error) bool {
	return iox.IsWouldBlock(err)
}

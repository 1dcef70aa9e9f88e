// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jobpool

import "code.hybscloud.com/atomix"

// semaphore is an opaque blocking counter: wait decrements, blocking while
// the count is zero or below; post increments and wakes exactly one
// waiter if any are parked. No ordering is guaranteed across waiters
// beyond "every post eventually wakes a waiter if one is waiting", and
// there is no cancellation — a parked wait only returns once a matching
// post has arrived.
//
// Implementation follows a classic lightweight-semaphore shape (count
// via an atomic integer, park via a channel receive only entered once
// the count goes negative), generalized from one counter per ring slot
// to one counter for the whole ring: count tracks jobs enqueued but
// not yet dequeued.
type semaphore struct {
	_     pad
	count atomix.Int64
	_     pad
	wake  chan struct{}
}

func newSemaphore() *semaphore {
	return &semaphore{wake: make(chan struct{}, 1)}
}

// post increments the counter. If a waiter is (or is about to be)
// parked, post wakes exactly one by sending on the one-slot wake
// channel; when an earlier wake signal is still in that slot, post
// blocks until a parked waiter has taken it. With no waiter parked,
// post does not block.
func (s *semaphore) post() {
	if s.count.AddAcqRel(1) <= 0 {
		s.wake <- struct{}{}
	}
}

// wait blocks until the counter is above zero, then atomically
// decrements it.
func (s *semaphore) wait() {
	if s.count.AddAcqRel(-1) < 0 {
		<-s.wake
	}
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jobpool

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/spin"
)

// ring is a bounded, lock-free multi-producer multi-consumer queue of
// Jobs. It implements Dmitry Vyukov's sequence-numbered bounded MPMC
// queue: each slot carries a monotonic sequence number that encodes
// whether the slot is empty-at-round-k or full-at-round-k, giving
// ABA-free slot reuse without a shared mutex on the fast path.
//
// Capacity is a power of two (requests are rounded up, minimum 2).
// available counts jobs enqueued but not yet dequeued so that
// dequeueBlocking can park instead of spinning when the ring is empty.
type ring struct {
	_          pad
	enqueuePos atomix.Uint64
	_          pad
	dequeuePos atomix.Uint64
	_          pad
	buffer     []ringSlot
	mask       uint64
	capacity   uint64
	available  *semaphore
}

type ringSlot struct {
	seq atomix.Uint64
	job Job
	_   padShort
}

// newRing allocates a ring with the given requested capacity, rounded
// up to the next power of two (minimum 2). Slot i starts with seq == i.
func newRing(capacity int) *ring {
	n := uint64(roundToPow2(capacity))
	r := &ring{
		buffer:    make([]ringSlot, n),
		mask:      n - 1,
		capacity:  n,
		available: newSemaphore(),
	}
	for i := uint64(0); i < n; i++ {
		r.buffer[i].seq.StoreRelaxed(i)
	}
	return r
}

// tryEnqueue publishes a job without blocking. It returns ErrQueueFull
// if the ring is saturated; any other outcome is success.
func (r *ring) tryEnqueue(j Job) error {
	sw := spin.Wait{}
	pos := r.enqueuePos.LoadRelaxed()
	for {
		slot := &r.buffer[pos&r.mask]
		seq := slot.seq.LoadAcquire()
		diff := int64(seq) - int64(pos)

		switch {
		case diff == 0:
			if r.enqueuePos.CompareAndSwapRelaxed(pos, pos+1) {
				slot.job = j
				slot.seq.StoreRelease(pos + 1)
				r.available.post()
				return nil
			}
			pos = r.enqueuePos.LoadRelaxed()
		case diff < 0:
			return ErrQueueFull
		default:
			pos = r.enqueuePos.LoadRelaxed()
			sw.Once()
		}
	}
}

// enqueueBlocking publishes a job, backing off with a CPU-pause spin
// that escalates to a scheduler yield while the ring is full. It never
// returns an error: callers that need to refuse submission do so
// before reaching the ring (see Pool's accepting gate).
func (r *ring) enqueueBlocking(j Job) {
	backoff := iox.Backoff{}
	for {
		if err := r.tryEnqueue(j); err == nil {
			return
		}
		backoff.Wait()
	}
}

// dequeueBlocking waits on the availability semaphore, then claims and
// returns the next job in FIFO order. It never reports "empty": the
// semaphore guarantees a matching enqueue has already posted by the
// time a waiter is admitted, so only transient cross-consumer races can
// occur here and those are resolved by retrying within this call.
func (r *ring) dequeueBlocking() Job {
	r.available.wait()

	sw := spin.Wait{}
	pos := r.dequeuePos.LoadRelaxed()
	for {
		slot := &r.buffer[pos&r.mask]
		seq := slot.seq.LoadAcquire()
		diff := int64(seq) - int64(pos+1)

		if diff == 0 {
			if r.dequeuePos.CompareAndSwapRelaxed(pos, pos+1) {
				j := slot.job
				slot.job = Job{}
				slot.seq.StoreRelease(pos + r.capacity)
				return j
			}
			pos = r.dequeuePos.LoadRelaxed()
			continue
		}
		pos = r.dequeuePos.LoadRelaxed()
		sw.Once()
	}
}

// Cap returns the ring's physical capacity (the rounded-up power of 2).
func (r *ring) Cap() int {
	return int(r.capacity)
}

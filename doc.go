// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package jobpool provides a bounded, lock-free multi-producer
// multi-consumer job queue and the worker-pool façade built on it.
//
// Clients submit short-lived, fire-and-forget units of work (a
// callable plus an opaque argument); a fixed population of worker
// goroutines drains the queue and executes them. The queue is a
// cache-line-aware, CAS-driven ring buffer (Dmitry Vyukov's
// sequence-numbered bounded MPMC queue) that lets arbitrary numbers of
// producers and consumers make progress concurrently without a shared
// mutex on the fast path.
//
// # Quick Start
//
//	pool, err := jobpool.New(4, 1024) // 4 workers, capacity rounds up to a power of 2
//	if err != nil {
//	    // allocation failure: nThreads or capacity were non-positive
//	}
//	defer pool.Destroy(true)
//
//	var count int64
//	for range 10 {
//	    pool.Submit(func(arg any) {
//	        atomic.AddInt64(&count, 1)
//	    }, nil)
//	}
//	pool.Wait()
//
// # Submission
//
// Submit never blocks: it returns [ErrRejected] if the pool has closed
// its acceptance gate, or [ErrQueueFull] if the ring is momentarily
// saturated. SubmitBlocking instead backs off (CPU-pause spin
// escalating to a scheduler yield) until there is room, and only
// returns [ErrRejected]:
//
//	if err := pool.Submit(fn, arg); jobpool.IsQueueFull(err) {
//	    err = pool.SubmitBlocking(fn, arg) // wait for room instead
//	}
//
// # Shutdown
//
// Destroy closes the acceptance gate, optionally waits for quiescence
// (wait=true drains everything already queued before proceeding),
// enqueues exactly as many poison pills as there are workers using
// blocking enqueue so a momentarily full ring still drains, stops the
// workers, and joins them:
//
//	pool.Destroy(true)  // drain everything queued, then shut down
//	pool.Destroy(false) // stop accepting; already-queued jobs still run
//
// No public operation is valid after Destroy returns. A job must never
// call Destroy on its own pool, and should stop submitting before a
// concurrent Destroy begins — submissions racing the acceptance gate
// during shutdown have no defined outcome.
//
// # Error Handling
//
// [ErrQueueFull] is an alias for [iox.ErrWouldBlock], for ecosystem
// consistency with the lock-free queue family this pool's ring is
// built on — it is backpressure, not a failure, and [IsQueueFull]
// delegates to [iox.IsWouldBlock] so wrapped errors are still
// recognized. [ErrRejected] is a true terminal condition: once the
// pool stops accepting, it never starts again.
//
// # Panics
//
// A job whose callable panics does not take down its worker: the
// panic is recovered and, if a [PanicHandler] was installed via
// [WithPanicHandler], reported to it with the recovered value and a
// captured stack trace. Without a handler the panic is silently
// dropped — behavior across a job's callable boundary is otherwise
// implementation-defined.
//
// # Race Detection
//
// Go's race detector is not designed for lock-free algorithm
// verification: it tracks explicit synchronization primitives (mutex,
// channel, WaitGroup) but cannot observe happens-before relationships
// established purely through atomic acquire-release orderings on
// separate variables, which is exactly how the ring's per-slot
// sequence numbers synchronize producers and consumers. Tests that
// stress the ring under true concurrency skip themselves when
// [RaceEnabled] is true (set by the race/!race build-tagged files).
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit
// memory ordering, and [code.hybscloud.com/spin] for CPU pause
// instructions and backoff.
package jobpool

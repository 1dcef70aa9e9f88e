// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jobpool

import (
	"runtime/debug"
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// Pool is a fixed population of workers draining a bounded lock-free
// ring buffer. Clients submit jobs from any number of goroutines;
// workers execute them in FIFO order with respect to each submitter's
// own CAS-linearized position. Pool owns no other shared mutable state
// beyond the ring itself.
type Pool struct {
	_         pad
	running   atomix.Bool
	_         pad
	accepting atomix.Bool
	_         pad
	queued    atomix.Int64
	_         pad
	busy      atomix.Int64
	_         pad

	queue   *ring
	wg      sync.WaitGroup
	nThread int
	onPanic PanicHandler
}

// New builds a pool of nThreads workers draining a ring of the given
// capacity (rounded up to the next power of two, minimum 2). Workers
// are already running by the time New returns. New only fails, with
// ErrAllocation, if nThreads or capacity are non-positive; there is no
// other allocation failure mode in a garbage-collected runtime.
func New(nThreads, capacity int, opts ...Option) (*Pool, error) {
	if nThreads < 1 || capacity < 1 {
		return nil, ErrAllocation
	}

	cfg := poolConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Pool{
		queue:   newRing(capacity),
		nThread: nThreads,
		onPanic: cfg.onPanic,
	}
	p.running.StoreRelease(true)
	p.accepting.StoreRelease(true)

	p.wg.Add(nThreads)
	for i := 0; i < nThreads; i++ {
		go p.workerLoop()
	}
	return p, nil
}

// workerLoop repeatedly dequeues and executes jobs until it pulls a
// poison pill. busy is incremented with acquire-release before the job
// runs; afterwards queued is decremented first and busy last, so that
// Wait, which loads both with acquire, cannot observe quiescence before
// a job has both finished executing and retired its queued count.
//
// running is not consulted here: this ring's semaphore never returns
// from wait() without a matching job available (it has no
// cancellation), so a worker only ever leaves dequeueBlocking with
// a real job or a poison pill — there is no "semaphore wait returned
// unexpectedly" case to fall back on running for.
func (p *Pool) workerLoop() {
	defer p.wg.Done()
	for {
		job := p.queue.dequeueBlocking()
		if job.isPoison() {
			return
		}

		p.busy.AddAcqRel(1)
		p.runJob(job)
		p.queued.AddAcqRel(-1)
		p.busy.AddAcqRel(-1)
	}
}

// runJob executes a job's callable, recovering a panic that escapes the
// callable boundary so a single bad job cannot take down a worker.
// Behavior across that boundary is otherwise undefined; the
// PanicHandler is this library's escape hatch for embedders that want
// to observe it.
func (p *Pool) runJob(job Job) {
	defer func() {
		if r := recover(); r != nil && p.onPanic != nil {
			p.onPanic(r, debug.Stack())
		}
	}()
	job.run()
}

// Submit attempts to enqueue a job without blocking. It returns
// ErrRejected if the pool is not accepting submissions, or
// ErrQueueFull if the ring is saturated.
func (p *Pool) Submit(fn func(arg any), arg any) error {
	if !p.accepting.LoadAcquire() {
		return ErrRejected
	}
	if err := p.queue.tryEnqueue(Job{fn: fn, arg: arg}); err != nil {
		return err
	}
	p.queued.AddAcqRel(1)
	return nil
}

// SubmitBlocking enqueues a job, blocking (with spin/yield backoff)
// until there is room. It returns ErrRejected only if the pool is not
// accepting submissions at call time; otherwise it always succeeds.
func (p *Pool) SubmitBlocking(fn func(arg any), arg any) error {
	if !p.accepting.LoadAcquire() {
		return ErrRejected
	}
	p.queue.enqueueBlocking(Job{fn: fn, arg: arg})
	p.queued.AddAcqRel(1)
	return nil
}

// Wait blocks until no job is queued and no worker is executing one.
// It is not fair and is intended to be called from a controlling
// goroutine that has already stopped submitting.
func (p *Pool) Wait() {
	sw := spin.Wait{}
	for p.queued.LoadAcquire() != 0 || p.busy.LoadAcquire() != 0 {
		sw.Once()
	}
}

// Queued returns the number of jobs admitted to the ring but not yet
// fully completed by a worker.
func (p *Pool) Queued() int64 {
	return p.queued.LoadAcquire()
}

// Busy returns the number of workers currently inside a job's
// callable.
func (p *Pool) Busy() int64 {
	return p.busy.LoadAcquire()
}

// Destroy shuts the pool down: it closes the acceptance gate, optionally
// waits for quiescence, appends exactly nThreads poison pills (using
// blocking enqueue so a momentarily full ring is still drained), stops
// the workers, and joins them. No public operation is valid after
// Destroy returns. Destroy must not be called concurrently with a job
// that submits further work to this same pool (a non-reentrancy
// note) — those submissions race the acceptance gate with no defined
// outcome.
func (p *Pool) Destroy(waitForJobs bool) {
	p.accepting.StoreRelease(false)

	if waitForJobs {
		p.Wait()
	}

	for i := 0; i < p.nThread; i++ {
		p.queue.enqueueBlocking(poison())
	}

	p.running.StoreRelease(false)
	p.wg.Wait()
}

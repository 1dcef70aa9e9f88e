// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jobpool

// Job is a short-lived, fire-and-forget unit of work: a callable paired
// with an opaque argument. Jobs are immutable once constructed.
type Job struct {
	fn  func(arg any)
	arg any
}

// poison is the sentinel job used to stop a worker. A Job with a nil fn
// must never be submitted by a caller; it is reserved for internal
// shutdown signaling only.
func poison() Job {
	return Job{}
}

func (j Job) isPoison() bool {
	return j.fn == nil
}

func (j Job) run() {
	j.fn(j.arg)
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jobpool

// PanicHandler is invoked when a submitted job's callable panics.
// recovered is the value passed to panic; stack is a captured stack
// trace. The worker that caught the panic continues dequeuing once the
// handler returns. A nil handler (the default) silently drops the
// panic without crashing the embedding process.
type PanicHandler func(recovered any, stack []byte)

// Option configures a Pool at creation time. The set of knobs is
// deliberately small: this pool is unconditionally MPMC, so there is no
// producer/consumer-constraint selection to expose, unlike a general
// purpose queue builder.
type Option func(*poolConfig)

type poolConfig struct {
	onPanic PanicHandler
}

// WithPanicHandler installs a callback invoked whenever a job's
// callable panics instead of returning normally.
func WithPanicHandler(h PanicHandler) Option {
	return func(c *poolConfig) {
		c.onPanic = h
	}
}

// roundToPow2 rounds n up to the next power of 2, with a floor of 2
// (a requested capacity <= 2 becomes 2, per the slot-sequence
// invariant requiring at least two slots).
func roundToPow2(n int) int {
	if n < 2 {
		return 2
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}

// pad is cache line padding to prevent false sharing between hot
// atomics that would otherwise land on the same cache line.
type pad [64]byte

// padShort is padding to fill out a cache line after an 8-byte field.
type padShort [64 - 8]byte

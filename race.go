// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package jobpool

// RaceEnabled is true when the race detector is active.
// Used by tests to skip the MPMC stress tests, which trigger false
// positives: the race detector cannot observe the happens-before
// relationship established by the ring's acquire-release sequence
// numbers, which synchronize across separate atomic variables.
const RaceEnabled = true

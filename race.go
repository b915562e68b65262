// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package lockless

// RaceEnabled is true when the race detector is active.
// Tests use it to skip concurrent ring tests: ring slots are published through
// atomix acquire/release cursors, which the detector cannot observe.
const RaceEnabled = true

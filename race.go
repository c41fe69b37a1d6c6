// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package sut

// RaceEnabled is true when the race detector is active.
// Tests use it to scale down exploration iteration counts, since every
// scheduling point is a channel handoff the detector instruments.
const RaceEnabled = true

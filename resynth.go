// Copyright (c) 2026 Bill Cox
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sndadj

import (
	"fmt"
	"math"
)

// Output samples saturate symmetrically at +-32767. The crossfade of two
// full-scale cycles can reach -32768, which must not pass through.
const (
	sampleMax = 32767
	sampleMin = -32767
)

// emit plays both loop filters forward, crossfading from the previous one
// into the current one, until the fractional cursor has advanced step
// samples past inputPos. Each emitted sample advances the cursor by speed.
func (e *Engine) emit(step int) error {
	fstep := float64(step)
	for {
		frac := e.exactInputPos - float64(e.inputPos)
		if frac >= fstep {
			return nil
		}
		ratio := frac / fstep
		if ratio < 0 || ratio > 1 {
			return fmt.Errorf("%w: crossfade ratio %v outside [0, 1]", ErrInternal, ratio)
		}
		v := (1-ratio)*e.prev.next() + ratio*e.cur.next()
		e.buf.Emit(clampToInt16(v))
		e.exactInputPos += e.speed
	}
}

// clampToInt16 rounds v to the nearest integer and saturates it to
// [sampleMin, sampleMax].
func clampToInt16(v float64) int16 {
	n := math.Round(v)
	if n > sampleMax {
		return sampleMax
	}
	if n < sampleMin {
		return sampleMin
	}
	return int16(n)
}

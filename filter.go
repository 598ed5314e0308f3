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

// loopFilter holds one seamless cycle of the waveform around an input
// position, replayed as a loop during resynthesis. data is the cycle, pos
// the circular read cursor.
type loopFilter struct {
	data []float64
	pos  int
}

// newLoopFilter allocates a filter with room for cycles up to maxPeriod
// samples, zero-filled at length period.
func newLoopFilter(maxPeriod, period int) loopFilter {
	f := loopFilter{data: make([]float64, maxPeriod)}
	f.reset(period)
	return f
}

// reset zero-fills the filter at the given length and rewinds the cursor.
func (f *loopFilter) reset(period int) {
	f.data = f.data[:period]
	for i := range f.data {
		f.data[i] = 0
	}
	f.pos = 0
}

// build synthesizes the cycle of length period centered on pos. Index i
// blends the sample one period before pos+i into the sample at pos+i with
// weight i/period, so the loop has no discontinuity where it wraps. The
// read cursor is placed at (prevPos - step) mod period, which keeps the new
// loop in phase with the point where the previous loop stopped playing.
func (f *loopFilter) build(samples []int16, pos, period, prevPos, step int) {
	f.data = f.data[:period]
	for i := 0; i < period; i++ {
		ratio := float64(i) / float64(period)
		f.data[i] = ratio*float64(samples[pos-period+i]) + (1-ratio)*float64(samples[pos+i])
	}
	off := (prevPos - step) % period
	if off < 0 {
		off += period
	}
	f.pos = off
}

// next returns the sample under the read cursor and advances it, wrapping
// at the end of the cycle.
func (f *loopFilter) next() float64 {
	v := f.data[f.pos]
	f.pos++
	if f.pos == len(f.data) {
		f.pos = 0
	}
	return v
}

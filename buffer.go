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

// SampleBuffer owns the two sample arrays of a processing run: the
// zero-padded input and the output accumulator.
//
// The input is stored with slack leading zeros and twice that many trailing
// zeros, so every window the period scan reads is addressable without
// per-sample bounds checks. All positions handed to SampleBuffer methods are
// indices into the padded array; Start is the index of the first real
// sample.
type SampleBuffer struct {
	in    []int16
	out   []int16
	slack int
}

// NewSampleBuffer copies samples into a padded array with slack leading
// zeros and 2*slack trailing zeros. The output accumulator is preallocated
// with capacity outCap and grows as needed.
func NewSampleBuffer(samples []int16, slack, outCap int) *SampleBuffer {
	if slack < 0 {
		panic("sndadj.SampleBuffer: negative slack")
	}
	in := make([]int16, len(samples)+3*slack)
	copy(in[slack:], samples)
	return &SampleBuffer{
		in:    in,
		out:   make([]int16, 0, outCap),
		slack: slack,
	}
}

// Start returns the padded index of the first real input sample.
func (b *SampleBuffer) Start() int { return b.slack }

// End returns the padded index one past the last real input sample.
func (b *SampleBuffer) End() int { return len(b.in) - 2*b.slack }

// Len returns the number of real input samples.
func (b *SampleBuffer) Len() int { return len(b.in) - 3*b.slack }

// At returns the padded input sample at index i. Indexing outside the
// padded array panics.
func (b *SampleBuffer) At(i int) int16 { return b.in[i] }

// Slice returns n padded input samples starting at pos. Slicing past either
// end of the padding panics.
func (b *SampleBuffer) Slice(pos, n int) []int16 { return b.in[pos : pos+n] }

// Input returns the whole padded input array.
func (b *SampleBuffer) Input() []int16 { return b.in }

// Emit appends one sample to the output.
func (b *SampleBuffer) Emit(s int16) { b.out = append(b.out, s) }

// Output returns the samples emitted so far.
func (b *SampleBuffer) Output() []int16 { return b.out }

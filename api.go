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

// Adjust changes the playback speed of the provided int16 samples with a
// one-shot engine. It returns the speed-adjusted samples and any
// encountered error.
func Adjust(sampleRate, numChannels int, speed float64, samples []int16) ([]int16, error) {
	e, err := New(Config{
		SampleRate: sampleRate,
		Channels:   numChannels,
		Speed:      speed,
	})
	if err != nil {
		return nil, err
	}
	return e.Process(samples)
}

// AdjustFloats changes the playback speed of the provided float64 samples
// in [-1, 1]. It returns the speed-adjusted samples and any encountered
// error.
func AdjustFloats(sampleRate, numChannels int, speed float64, samples []float64) ([]float64, error) {
	in := make([]int16, len(samples))
	for i, s := range samples {
		in[i] = clampToInt16(s * 32767.0)
	}
	out16, err := Adjust(sampleRate, numChannels, speed, in)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(out16))
	for i, s := range out16 {
		out[i] = float64(s) / 32767.0
	}
	return out, nil
}

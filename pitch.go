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

// pitchEstimator finds the local pitch period around a position by
// minimizing the summed absolute difference between the window just before
// the position and the window just after it.
type pitchEstimator struct {
	minPeriod  int
	maxPeriod  int
	noiseFloor float64
}

// estimate scans candidate periods around pos and returns the best one
// together with a voicing decision. While the previous step was voiced the
// scan is confined to [2*prevPeriod/3, 3*prevPeriod/2] so the tracker cannot
// jump octaves between adjacent steps. samples must be padded so that
// [pos-maxPeriod, pos+maxPeriod) is addressable.
func (e pitchEstimator) estimate(samples []int16, pos, prevPeriod int, prevVoiced bool) (period int, voiced bool) {
	lo, hi := e.minPeriod, e.maxPeriod
	if prevVoiced {
		if n := 2 * prevPeriod / 3; n > lo {
			lo = n
		}
		if n := 3 * prevPeriod / 2; n < hi {
			hi = n
		}
	}

	bestPeriod := 0
	minDiff := int64(1)
	total := 0.0
	for p := lo; p <= hi; p++ {
		var diff int64
		for i := 0; i < p; i++ {
			sVal := int64(samples[pos-p+i])
			pVal := int64(samples[pos+i])
			if sVal >= pVal {
				diff += sVal - pVal
			} else {
				diff += pVal - sVal
			}
		}
		// Compare diff/p against minDiff/bestPeriod without dividing.
		if diff*int64(bestPeriod) < minDiff*int64(p) {
			minDiff = diff
			bestPeriod = p
		}
		total += float64(diff) / float64(p)
	}

	avg := total / float64(hi-lo+1)
	best := float64(minDiff) / float64(bestPeriod)
	voiced = best <= avg/2 && avg > e.noiseFloor
	return bestPeriod, voiced
}

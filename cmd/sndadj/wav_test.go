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

package main

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waywardgeek/sndadj"
)

func testTone(n int) []int16 {
	s := make([]int16, n)
	for i := range s {
		s[i] = int16(6000 * math.Sin(2*math.Pi*float64(i)/40))
	}
	return s
}

func TestWAVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	samples := testTone(800)

	require.NoError(t, writeWAV(path, samples, 8000, 1))

	buf, err := readWAV(path)
	require.NoError(t, err)
	assert.Equal(t, 8000, buf.Format.SampleRate)
	assert.Equal(t, 1, buf.Format.NumChannels)
	assert.Equal(t, 16, buf.SourceBitDepth)
	assert.Equal(t, samples, toInt16(buf.Data))
}

func TestReadWAV_MissingFile(t *testing.T) {
	_, err := readWAV(filepath.Join(t.TempDir(), "nope.wav"))
	assert.Error(t, err)
}

func TestRun_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.wav")
	outPath := filepath.Join(dir, "out.wav")
	samples := testTone(8000)
	require.NoError(t, writeWAV(inPath, samples, 8000, 1))

	err := run(context.Background(), "2", inPath, outPath, options{
		minFreq:    sndadj.DefaultMinFreq,
		maxFreq:    sndadj.DefaultMaxFreq,
		noiseFloor: sndadj.DefaultNoiseFloor,
	})
	require.NoError(t, err)

	buf, err := readWAV(outPath)
	require.NoError(t, err)
	maxPeriod := float64(8000 / sndadj.DefaultMinFreq)
	assert.InDelta(t, float64(len(samples))/2, float64(len(buf.Data)), maxPeriod/2+1)
}

func TestRun_BadSpeedArg(t *testing.T) {
	dir := t.TempDir()
	err := run(context.Background(), "fast", filepath.Join(dir, "in.wav"), filepath.Join(dir, "out.wav"), options{})
	assert.Error(t, err)
}
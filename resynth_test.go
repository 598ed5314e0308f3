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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// emitEngine builds an engine reset around an empty input, ready for
// driving emit by hand.
func emitEngine(t *testing.T, speed float64) *Engine {
	t.Helper()
	e, err := New(Config{SampleRate: 8000, Speed: speed})
	require.NoError(t, err)
	e.reset(nil)
	return e
}

func TestEmit_SampleCounts(t *testing.T) {
	cases := []struct {
		speed float64
		step  int
		want  int
	}{
		{1.0, 100, 100},
		{0.5, 100, 200},
		{2.0, 100, 50},
		{4.0, 10, 3},
		{10.0, 25, 3},
	}
	for _, tc := range cases {
		e := emitEngine(t, tc.speed)
		require.NoError(t, e.emit(tc.step))
		assert.Lenf(t, e.buf.Output(), tc.want, "speed=%v step=%d", tc.speed, tc.step)
	}
}

func TestEmit_NothingWhenCursorAhead(t *testing.T) {
	e := emitEngine(t, 1.0)
	e.exactInputPos = float64(e.inputPos + 10)

	require.NoError(t, e.emit(10))

	assert.Empty(t, e.buf.Output())
}

func TestEmit_CursorDesyncFatal(t *testing.T) {
	e := emitEngine(t, 1.0)
	e.exactInputPos = float64(e.inputPos) - 1

	err := e.emit(50)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestEmit_LoopsFilterCycles(t *testing.T) {
	e := emitEngine(t, 1.0)
	// With identical cycles in both slots the crossfade weights cancel and
	// the output replays the cycle verbatim, wrapping every three samples.
	e.prev.data = append(e.prev.data[:0], 1000, -1000, 500)
	e.prev.pos = 0
	e.cur.data = append(e.cur.data[:0], 1000, -1000, 500)
	e.cur.pos = 0

	require.NoError(t, e.emit(9))

	want := []int16{1000, -1000, 500, 1000, -1000, 500, 1000, -1000, 500}
	assert.Equal(t, want, e.buf.Output())
}

func TestEmit_CrossfadesBetweenFilters(t *testing.T) {
	e := emitEngine(t, 1.0)
	// Previous slot holds a constant 0, current a constant 1000: the output
	// must ramp linearly from 0 toward 1000 as the ratio sweeps [0, 1).
	e.prev.data = append(e.prev.data[:0], 0, 0)
	e.prev.pos = 0
	e.cur.data = append(e.cur.data[:0], 1000, 1000)
	e.cur.pos = 0

	require.NoError(t, e.emit(10))

	out := e.buf.Output()
	require.Len(t, out, 10)
	for i, s := range out {
		assert.Equalf(t, int16(i*100), s, "sample %d", i)
	}
}

func TestClampToInt16(t *testing.T) {
	cases := []struct {
		in   float64
		want int16
	}{
		{0, 0},
		{123.4, 123},
		{-123.5, -124},
		{32767, 32767},
		{40000, 32767},
		{-32768, -32767},
		{-40000, -32767},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, clampToInt16(tc.in), "clampToInt16(%v)", tc.in)
	}
}
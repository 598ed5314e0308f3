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

// Package sndadj adjusts the playback speed of speech without changing its
// pitch. It tracks the pitch period through the input, builds one seamless
// waveform cycle per step and replays it as a loop, crossfading between
// consecutive loops while a fractional cursor walks the input at the
// requested speed.
package sndadj

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

const (
	// DefaultMinFreq is the lowest voice fundamental we try to track.
	// Lowering it grows maxPeriod and with it the per-step scan cost.
	DefaultMinFreq = 65

	// DefaultMaxFreq is the highest voice fundamental we try to track.
	DefaultMaxFreq = 400

	// DefaultNoiseFloor is the average mismatch level below which a frame
	// is treated as silence and left unvoiced.
	DefaultNoiseFloor = 100.0

	// MinSpeed and MaxSpeed bound the accepted speed factors. Outside this
	// range the output is either absurdly long or collapses to a few
	// samples per step.
	MinSpeed = 0.05
	MaxSpeed = 10.0

	// outputMargin pads the output preallocation so the common case never
	// reallocates.
	outputMargin = 4096
)

var (
	// ErrInvalidConfig reports a Config rejected by Validate.
	ErrInvalidConfig = errors.New("sndadj: invalid config")

	// ErrChannels reports a sample count that does not divide evenly into
	// the configured channel count.
	ErrChannels = errors.New("sndadj: sample count not a multiple of channels")

	// ErrInternal reports a broken processing invariant. Output produced
	// before the error is not usable.
	ErrInternal = errors.New("sndadj: internal error")
)

// Config carries the parameters of a processing run.
//
// SampleRate and Speed must be set. Channels, MinFreq, MaxFreq and
// NoiseFloor may be left zero to get the defaults (1, DefaultMinFreq,
// DefaultMaxFreq, DefaultNoiseFloor).
type Config struct {
	// SampleRate is the input sample rate in Hz.
	SampleRate int

	// Channels is the interleaved channel count. Samples are processed as
	// one flat stream; per-channel phase coherence is not attempted.
	Channels int

	// Speed is the playback speed factor in [MinSpeed, MaxSpeed]. 2.0
	// plays twice as fast, 0.5 at half speed.
	Speed float64

	// MinFreq is the lowest voice fundamental tracked, in Hz.
	MinFreq int

	// MaxFreq is the highest voice fundamental tracked, in Hz.
	MaxFreq int

	// NoiseFloor is the average mismatch level below which a frame counts
	// as silence. Zero selects DefaultNoiseFloor.
	NoiseFloor float64
}

// withDefaults returns c with zero optional fields replaced by defaults.
func (c Config) withDefaults() Config {
	if c.Channels == 0 {
		c.Channels = 1
	}
	if c.MinFreq == 0 {
		c.MinFreq = DefaultMinFreq
	}
	if c.MaxFreq == 0 {
		c.MaxFreq = DefaultMaxFreq
	}
	if c.NoiseFloor == 0 {
		c.NoiseFloor = DefaultNoiseFloor
	}
	return c
}

// Validate checks c after defaulting and reports every violation found.
// Each reported error wraps ErrInvalidConfig.
func (c Config) Validate() error {
	c = c.withDefaults()
	var result *multierror.Error
	if c.SampleRate <= 0 {
		result = multierror.Append(result, fmt.Errorf("%w: sample rate %d must be positive", ErrInvalidConfig, c.SampleRate))
	}
	if c.Channels < 1 {
		result = multierror.Append(result, fmt.Errorf("%w: channels %d must be at least 1", ErrInvalidConfig, c.Channels))
	}
	// Positive-form bounds so NaN fails them.
	if !(c.Speed >= MinSpeed && c.Speed <= MaxSpeed) {
		result = multierror.Append(result, fmt.Errorf("%w: speed %v outside [%v, %v]", ErrInvalidConfig, c.Speed, MinSpeed, MaxSpeed))
	}
	if c.MinFreq < 1 {
		result = multierror.Append(result, fmt.Errorf("%w: min frequency %d must be positive", ErrInvalidConfig, c.MinFreq))
	}
	if c.MaxFreq <= c.MinFreq {
		result = multierror.Append(result, fmt.Errorf("%w: max frequency %d must exceed min frequency %d", ErrInvalidConfig, c.MaxFreq, c.MinFreq))
	}
	if !(c.NoiseFloor >= 0) {
		result = multierror.Append(result, fmt.Errorf("%w: noise floor %v must be at least 0", ErrInvalidConfig, c.NoiseFloor))
	}
	if c.SampleRate > 0 && c.MaxFreq > c.MinFreq && c.SampleRate/c.MaxFreq < 1 {
		result = multierror.Append(result, fmt.Errorf("%w: sample rate %d too low to track %d Hz", ErrInvalidConfig, c.SampleRate, c.MaxFreq))
	}
	return result.ErrorOrNil()
}

// Engine performs pitch-synchronous speed adjustment. It owns every piece
// of state a run needs, so distinct engines never share anything. A single
// engine must not be used from more than one goroutine at a time.
type Engine struct {
	cfg   Config
	speed float64

	// minPeriod and maxPeriod bound the pitch periods tracked, derived
	// from the configured frequency range.
	minPeriod int
	maxPeriod int

	est pitchEstimator

	// buf holds the padded input and the output of the current run.
	buf *SampleBuffer

	// prev and cur are the two loop filter slots; their contents rotate
	// every step, reusing the backing arrays.
	prev loopFilter
	cur  loopFilter

	// period is the most recent estimate and the size of the next step.
	period int
	voiced bool

	// inputPos is the step-quantized input position; exactInputPos is the
	// fractional playback cursor. During emit,
	// 0 <= exactInputPos-inputPos < step.
	inputPos      int
	exactInputPos float64
}

// New validates cfg and builds an engine for it.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	minPeriod := cfg.SampleRate / cfg.MaxFreq
	maxPeriod := cfg.SampleRate / cfg.MinFreq

	return &Engine{
		cfg:       cfg,
		speed:     cfg.Speed,
		minPeriod: minPeriod,
		maxPeriod: maxPeriod,
		est: pitchEstimator{
			minPeriod:  minPeriod,
			maxPeriod:  maxPeriod,
			noiseFloor: cfg.NoiseFloor,
		},
		prev: newLoopFilter(maxPeriod, minPeriod),
		cur:  newLoopFilter(maxPeriod, minPeriod),
	}, nil
}

// Process runs the whole input through the engine and returns the
// speed-adjusted output. The engine resets itself first, so consecutive
// calls are independent.
func (e *Engine) Process(samples []int16) ([]int16, error) {
	if len(samples)%e.cfg.Channels != 0 {
		return nil, fmt.Errorf("%w: %d samples, %d channels", ErrChannels, len(samples), e.cfg.Channels)
	}
	e.reset(samples)
	if err := e.run(); err != nil {
		return nil, err
	}
	return e.buf.Output(), nil
}

// reset rebuilds the per-run state around a fresh input buffer.
func (e *Engine) reset(samples []int16) {
	outCap := int(float64(len(samples)+e.maxPeriod)/e.speed) + outputMargin
	e.buf = NewSampleBuffer(samples, e.maxPeriod, outCap)
	e.prev.reset(e.minPeriod)
	e.cur.reset(e.minPeriod)
	e.period = e.minPeriod
	e.voiced = false
	e.inputPos = e.buf.Start()
	e.exactInputPos = float64(e.inputPos)
}

// run executes the stepping loop: rotate the filter slots, estimate the
// next period one step ahead and build its loop there, crossfade the output
// forward, then advance by the old period.
func (e *Engine) run() error {
	in := e.buf.Input()
	for e.inputPos < e.buf.End() {
		step := e.period
		e.prev, e.cur = e.cur, e.prev
		pos := e.inputPos + step
		period, voiced := e.est.estimate(in, pos, e.period, e.voiced)
		e.cur.build(in, pos, period, e.prev.pos, step)
		e.period, e.voiced = period, voiced
		if err := e.emit(step); err != nil {
			return err
		}
		e.inputPos += step
	}
	return nil
}

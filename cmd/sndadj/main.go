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

// Command sndadj changes the playback speed of a 16-bit PCM WAV file
// without changing the pitch of the voice in it.
//
//	sndadj [flags] speed input.wav output.wav
//
// A speed of 2.0 halves the duration, 0.5 doubles it.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime/pprof"
	"strconv"
	"time"

	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/spf13/pflag"

	"github.com/waywardgeek/sndadj"
)

type options struct {
	minFreq    int
	maxFreq    int
	noiseFloor float64
	cpuProfile string
}

func main() {
	loggerLevel := logger.LevelInfo
	pflag.Var(&loggerLevel, "log-level", "Log level")
	opts := options{}
	pflag.IntVar(&opts.minFreq, "min-freq", sndadj.DefaultMinFreq, "Lowest voice fundamental tracked, Hz")
	pflag.IntVar(&opts.maxFreq, "max-freq", sndadj.DefaultMaxFreq, "Highest voice fundamental tracked, Hz")
	pflag.Float64Var(&opts.noiseFloor, "noise-floor", sndadj.DefaultNoiseFloor, "Average mismatch treated as silence")
	pflag.StringVar(&opts.cpuProfile, "cpuprofile", "", "Write a CPU profile of the run to this file")
	pflag.Parse()

	if pflag.NArg() != 3 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] speed input.wav output.wav\n", os.Args[0])
		pflag.PrintDefaults()
		os.Exit(2)
	}

	l := logrus.Default().WithLevel(loggerLevel)
	ctx := logger.CtxWithLogger(context.Background(), l)
	logger.Default = func() logger.Logger {
		return l
	}
	defer belt.Flush(ctx)

	if err := run(ctx, pflag.Arg(0), pflag.Arg(1), pflag.Arg(2), opts); err != nil {
		logger.Errorf(ctx, "%v", err)
		belt.Flush(ctx)
		os.Exit(1)
	}
}

func run(ctx context.Context, speedArg, inPath, outPath string, opts options) error {
	speed, err := strconv.ParseFloat(speedArg, 64)
	if err != nil {
		return fmt.Errorf("bad speed %q: %w", speedArg, err)
	}

	buf, err := readWAV(inPath)
	if err != nil {
		return err
	}
	logger.Infof(ctx, "%d samples, %d Hz", len(buf.Data), buf.Format.SampleRate)
	if buf.Format.NumChannels != 1 {
		logger.Warnf(ctx, "%d channels; interleaved samples are processed as one stream", buf.Format.NumChannels)
	}

	eng, err := sndadj.New(sndadj.Config{
		SampleRate: buf.Format.SampleRate,
		Channels:   buf.Format.NumChannels,
		Speed:      speed,
		MinFreq:    opts.minFreq,
		MaxFreq:    opts.maxFreq,
		NoiseFloor: opts.noiseFloor,
	})
	if err != nil {
		return err
	}

	if opts.cpuProfile != "" {
		f, err := os.Create(opts.cpuProfile)
		if err != nil {
			return fmt.Errorf("create cpu profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("start cpu profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	start := time.Now()
	out, err := eng.Process(toInt16(buf.Data))
	if err != nil {
		return err
	}
	logger.Debugf(ctx, "processed in %s", time.Since(start))
	logger.Infof(ctx, "%d samples out", len(out))

	return writeWAV(outPath, out, buf.Format.SampleRate, buf.Format.NumChannels)
}

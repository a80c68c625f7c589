// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package highlight

import (
	"slices"
	"time"
)

// Clock schedules recurring animation ticks. Every tick must run on the
// same goroutine that owns the highlight controllers and the selection
// registry, so a tick never interleaves with a pointer event. GUI
// implementations run ticks on the render loop; [ManualClock] runs
// them when it is advanced.
type Clock interface {

	// Start begins calling fn on every tick with the time elapsed since
	// the previous tick, until the returned [Ticker] is stopped.
	Start(fn func(dt time.Duration)) Ticker
}

// Ticker is a running recurring tick started by a [Clock].
type Ticker interface {

	// Stop stops the ticker. It is synchronous: once Stop returns,
	// the tick function is never called again.
	Stop()
}

// ManualClock is a [Clock] whose tickers only fire when [ManualClock.Advance]
// is called. It is used for deterministic playback and tests.
type ManualClock struct {
	tickers []*manualTicker
}

type manualTicker struct {
	clock   *ManualClock
	fn      func(dt time.Duration)
	stopped bool
}

// NewManualClock returns a new [ManualClock].
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

func (mc *ManualClock) Start(fn func(dt time.Duration)) Ticker {
	tk := &manualTicker{clock: mc, fn: fn}
	mc.tickers = append(mc.tickers, tk)
	return tk
}

// Advance fires one tick of duration dt on every live ticker, in the
// order they were started. Tickers started or stopped during the tick
// take effect for the next one.
func (mc *ManualClock) Advance(dt time.Duration) {
	for _, tk := range slices.Clone(mc.tickers) {
		if tk.stopped {
			continue
		}
		tk.fn(dt)
	}
}

// Step advances the clock n times by dt.
func (mc *ManualClock) Step(n int, dt time.Duration) {
	for range n {
		mc.Advance(dt)
	}
}

// Live returns the number of tickers that have not been stopped.
func (mc *ManualClock) Live() int {
	return len(mc.tickers)
}

func (tk *manualTicker) Stop() {
	if tk.stopped {
		return
	}
	tk.stopped = true
	tk.clock.tickers = slices.DeleteFunc(tk.clock.tickers, func(o *manualTicker) bool { return o == tk })
}

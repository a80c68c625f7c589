// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package highlight

import (
	"time"

	"cogentcore.org/core/math32"
)

// MinPeriod is the shortest blink period; shorter periods are clamped to it.
const MinPeriod = 50 * time.Millisecond

// Renderable is a displayable mesh instance whose appearance can be read
// and written. Implementations must be comparable (typically pointers),
// since renderables are used as map keys.
type Renderable interface {

	// Appearance returns the current appearance of the renderable.
	Appearance() Appearance

	// SetAppearance sets the current appearance of the renderable.
	SetAppearance(ap Appearance)
}

// Controller owns the highlight of one renderable: the snapshot of its
// original appearance, the current highlight target, and the blink
// animation state. It is either static or blinking.
type Controller struct {
	renderable Renderable
	original   Appearance
	target     Appearance
	clock      Clock

	// ticker is non-nil while blinking.
	ticker Ticker
	period time.Duration

	// phase is the animation phase in [0, 1).
	phase float32
}

// NewController returns a new static [Controller] for the given renderable,
// original appearance snapshot, and highlight target. The clock is used
// to drive blinking. It does not modify the renderable.
func NewController(r Renderable, original, target Appearance, clock Clock) *Controller {
	if r == nil {
		panic("highlight.NewController: renderable must not be nil")
	}
	if clock == nil {
		panic("highlight.NewController: clock must not be nil")
	}
	return &Controller{renderable: r, original: original, target: target, clock: clock}
}

// Renderable returns the renderable this controller highlights.
func (hc *Controller) Renderable() Renderable { return hc.renderable }

// Original returns the original appearance snapshot.
func (hc *Controller) Original() Appearance { return hc.original }

// Target returns the current highlight target appearance.
func (hc *Controller) Target() Appearance { return hc.target }

// Blinking returns whether the blink animation is running.
func (hc *Controller) Blinking() bool { return hc.ticker != nil }

// Period returns the blink period, which is only meaningful while blinking.
func (hc *Controller) Period() time.Duration { return hc.period }

// Phase returns the current blink animation phase in [0, 1).
func (hc *Controller) Phase() float32 { return hc.phase }

// ApplyStatic stops any blinking and writes the highlight target
// directly to the renderable.
func (hc *Controller) ApplyStatic() {
	hc.StopBlink()
	hc.renderable.SetAppearance(hc.target)
}

// StartBlink starts the blink animation with the given period, blending
// between the original and the target on every tick. If it is already
// blinking, only the period changes and the phase is kept.
func (hc *Controller) StartBlink(period time.Duration) {
	hc.period = max(period, MinPeriod)
	if hc.ticker != nil {
		return
	}
	hc.ticker = hc.clock.Start(hc.tick)
}

// StopBlink stops the blink animation. It does not change the
// current appearance of the renderable.
func (hc *Controller) StopBlink() {
	if hc.ticker == nil {
		return
	}
	hc.ticker.Stop()
	hc.ticker = nil
}

// RestoreOriginal stops any blinking and writes the original
// appearance back to the renderable.
func (hc *Controller) RestoreOriginal() {
	hc.StopBlink()
	hc.renderable.SetAppearance(hc.original)
}

// UpdateTarget sets a new highlight target. If not blinking, the new
// target is applied immediately; otherwise the next tick picks it up.
func (hc *Controller) UpdateTarget(target Appearance) {
	hc.target = target
	if hc.ticker == nil {
		hc.renderable.SetAppearance(hc.target)
	}
}

// BlendFactor returns the blend factor for the current phase.
func (hc *Controller) BlendFactor() float32 {
	return Ease(hc.phase)
}

func (hc *Controller) tick(dt time.Duration) {
	if hc.ticker == nil {
		return
	}
	hc.phase += float32(dt) / float32(hc.period)
	hc.phase = math32.Mod(hc.phase, 1)
	if hc.phase < 0 {
		hc.phase = 0
	}
	hc.renderable.SetAppearance(Blend(hc.original, hc.target, hc.BlendFactor()))
}

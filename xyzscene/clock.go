// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyzscene

import (
	"time"

	"cogentcore.org/cadview/highlight"
	"cogentcore.org/core/core"
)

// AnimClock is a [highlight.Clock] driven by the paint ticks of a widget,
// so every blink tick runs on the render loop.
type AnimClock struct {

	// Widget is the widget whose animations drive the ticks.
	Widget core.Widget

	// Rendered is called after every tick, if set.
	Rendered func()
}

type animTicker struct {
	stopped bool
}

func (tk *animTicker) Stop() {
	tk.stopped = true
}

func (ac *AnimClock) Start(fn func(dt time.Duration)) highlight.Ticker {
	tk := &animTicker{}
	ac.Widget.AsWidget().Animate(func(a *core.Animation) {
		if tk.stopped {
			a.Done = true
			return
		}
		fn(a.Delta)
		if ac.Rendered != nil {
			ac.Rendered()
		}
	})
	return tk
}

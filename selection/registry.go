// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package selection provides the selection and highlight state machine
// that tracks, for every displayed renderable, whether it is unselected,
// hovered, or selected, and that is the only path that changes and
// restores renderable appearance.
package selection

import (
	"log/slog"
	"slices"
	"time"

	"cogentcore.org/cadview/highlight"
)

// Renderable is a displayable mesh instance; see [highlight.Renderable].
type Renderable = highlight.Renderable

// DefaultPeriod is the default blink period.
const DefaultPeriod = 800 * time.Millisecond

// Registry is the selection state machine for one viewport. It owns the
// selection set (one [highlight.Controller] per selected renderable), the
// hover slot, and the store of original appearances.
//
// A Registry is not safe for concurrent use: all calls, including the
// ticks of its [highlight.Clock], must happen on one goroutine.
type Registry struct {

	// style is the current highlight style.
	style highlight.Style

	// blink is whether selected renderables blink.
	blink bool

	// period is the blink period.
	period time.Duration

	clock highlight.Clock

	// selected is the selection set.
	selected map[Renderable]*highlight.Controller

	// order records the selection order of the selection set.
	order []Renderable

	// hovered is the hover slot; nil when empty.
	hovered Renderable

	// originals is the original appearance store.
	originals map[Renderable]highlight.Appearance
}

// Option is a functional option for [New].
type Option func(rg *Registry)

// WithStyle sets the initial highlight style.
func WithStyle(st highlight.Style) Option {
	return func(rg *Registry) { rg.style = st }
}

// WithBlink sets the initial blink mode and period.
func WithBlink(on bool, period time.Duration) Option {
	return func(rg *Registry) {
		rg.blink = on
		rg.period = period
	}
}

// New returns a new [Registry] that drives blinking with the given clock.
func New(clock highlight.Clock, opts ...Option) *Registry {
	if clock == nil {
		panic("selection.New: clock must not be nil")
	}
	rg := &Registry{
		style:     highlight.DefaultStyle(),
		period:    DefaultPeriod,
		clock:     clock,
		selected:  map[Renderable]*highlight.Controller{},
		originals: map[Renderable]highlight.Appearance{},
	}
	for _, opt := range opts {
		opt(rg)
	}
	return rg
}

// Style returns the current highlight style.
func (rg *Registry) Style() highlight.Style { return rg.style }

// Blink returns the current blink mode and period.
func (rg *Registry) Blink() (bool, time.Duration) { return rg.blink, rg.period }

// IsSelected returns whether the renderable is in the selection set.
func (rg *Registry) IsSelected(r Renderable) bool {
	_, ok := rg.selected[r]
	return ok
}

// Hovered returns the renderable in the hover slot, or nil.
func (rg *Registry) Hovered() Renderable { return rg.hovered }

// Len returns the number of selected renderables.
func (rg *Registry) Len() int { return len(rg.selected) }

// Selected returns the selected renderables in the order they were selected.
func (rg *Registry) Selected() []Renderable {
	return slices.Clone(rg.order)
}

// Controller returns the highlight controller for a selected renderable, or nil.
func (rg *Registry) Controller(r Renderable) *highlight.Controller {
	return rg.selected[r]
}

// Original returns the stored original appearance of the renderable,
// and whether there is one.
func (rg *Registry) Original(r Renderable) (highlight.Appearance, bool) {
	ap, ok := rg.originals[r]
	return ap, ok
}

// snapshot stores the current appearance of the renderable as its original
// if there is no stored original yet, and returns the stored original.
// An existing entry is never overwritten: once a renderable has been
// highlighted, its live appearance is no longer its original.
func (rg *Registry) snapshot(r Renderable) highlight.Appearance {
	if ap, ok := rg.originals[r]; ok {
		return ap
	}
	ap := r.Appearance()
	rg.originals[r] = ap
	return ap
}

// restore writes the stored original appearance back to the renderable.
func (rg *Registry) restore(r Renderable) {
	if ap, ok := rg.originals[r]; ok {
		r.SetAppearance(ap)
	}
}

// AddHighlight adds the renderable to the selection set and highlights it,
// blinking if blink mode is on. It does nothing if it is already selected.
func (rg *Registry) AddHighlight(r Renderable) {
	mustRenderable(r, "AddHighlight")
	if rg.IsSelected(r) {
		return
	}
	if rg.hovered == r {
		// a blinking controller writes nothing until its first tick
		rg.ClearHover()
	}
	hc := highlight.NewController(r, rg.snapshot(r), rg.style.Target(), rg.clock)
	rg.selected[r] = hc
	rg.order = append(rg.order, r)
	if rg.blink {
		hc.StartBlink(rg.period)
	} else {
		hc.ApplyStatic()
	}
	slog.Debug("selection: add highlight", "renderable", r, "blink", rg.blink)
}

// RemoveHighlight stops highlighting the renderable, restores its original
// appearance and removes it from the selection set. It does nothing if it
// is not selected. The stored original is kept, since the renderable may
// become hovered again.
func (rg *Registry) RemoveHighlight(r Renderable) {
	mustRenderable(r, "RemoveHighlight")
	hc, ok := rg.selected[r]
	if !ok {
		return
	}
	hc.RestoreOriginal()
	delete(rg.selected, r)
	rg.order = slices.DeleteFunc(rg.order, func(o Renderable) bool { return o == r })
	slog.Debug("selection: remove highlight", "renderable", r)
}

// ClearAllHighlights removes every renderable from the selection set,
// as in [Registry.RemoveHighlight].
func (rg *Registry) ClearAllHighlights() {
	for _, r := range slices.Clone(rg.order) {
		rg.RemoveHighlight(r)
	}
}

// Toggle adds the renderable to the selection set if it is not selected,
// and removes it otherwise.
func (rg *Registry) Toggle(r Renderable) {
	if rg.IsSelected(r) {
		rg.RemoveHighlight(r)
		return
	}
	rg.AddHighlight(r)
}

// Click applies a click on the renderable, always in this order: the hover
// is cleared, then all highlights are cleared unless multi is set, and
// finally the membership the renderable had before the click is toggled.
// A single-select click on a selected renderable therefore leaves the
// selection empty ("click again to deselect"), and a single-select click
// on an unselected renderable leaves it as the only selected one.
func (rg *Registry) Click(r Renderable, multi bool) {
	mustRenderable(r, "Click")
	wasSelected := rg.IsSelected(r)
	rg.ClearHover()
	if !multi {
		rg.ClearAllHighlights()
	}
	if wasSelected {
		rg.RemoveHighlight(r)
		return
	}
	rg.AddHighlight(r)
}

// ApplyHover puts the renderable in the hover slot and paints it with the
// hover appearance. Selection takes precedence: nothing happens if the
// renderable is selected or is already hovered. Hover never blinks.
func (rg *Registry) ApplyHover(r Renderable) {
	mustRenderable(r, "ApplyHover")
	if rg.IsSelected(r) || rg.hovered == r {
		return
	}
	rg.ClearHover()
	rg.snapshot(r)
	r.SetAppearance(rg.style.Hover())
	rg.hovered = r
}

// ClearHover empties the hover slot, restoring the original appearance of
// the hovered renderable unless it is selected.
func (rg *Registry) ClearHover() {
	if rg.hovered == nil {
		return
	}
	if !rg.IsSelected(rg.hovered) {
		rg.restore(rg.hovered)
	}
	rg.hovered = nil
}

// SetBlinkMode sets the blink mode and period, and starts or stops
// blinking on every selected renderable to match. Turning blinking off
// applies the static highlight immediately.
func (rg *Registry) SetBlinkMode(on bool, period time.Duration) {
	rg.blink = on
	rg.period = period
	for _, r := range rg.order {
		hc := rg.selected[r]
		if on {
			hc.StartBlink(period)
		} else {
			hc.ApplyStatic()
		}
	}
	slog.Debug("selection: blink mode", "on", on, "period", period)
}

// SetStyle sets the highlight style, retargets every selected renderable,
// and repaints the hovered renderable with the new hover appearance.
func (rg *Registry) SetStyle(st highlight.Style) {
	rg.style = st
	target := st.Target()
	for _, r := range rg.order {
		rg.selected[r].UpdateTarget(target)
	}
	if rg.hovered != nil {
		rg.hovered.SetAppearance(st.Hover())
	}
}

// Forget purges all state for a renderable that is leaving the scene,
// restoring its original appearance first if it is still highlighted
// or hovered.
func (rg *Registry) Forget(r Renderable) {
	mustRenderable(r, "Forget")
	if rg.hovered == r {
		rg.ClearHover()
	}
	rg.RemoveHighlight(r)
	delete(rg.originals, r)
}

// Reset purges the state of every renderable, as in [Registry.Forget].
func (rg *Registry) Reset() {
	rg.ClearHover()
	rg.ClearAllHighlights()
	clear(rg.originals)
}

func mustRenderable(r Renderable, op string) {
	if r == nil {
		panic("selection.Registry." + op + ": renderable must not be nil")
	}
}

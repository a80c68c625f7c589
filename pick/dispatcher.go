// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pick translates pointer events into nearest-hit queries and
// routes the results into a [selection.Registry].
package pick

import (
	"image"
	"log/slog"

	"cogentcore.org/cadview/selection"
	"cogentcore.org/core/cursors"
	"cogentcore.org/core/events/key"
	"cogentcore.org/core/math32"
)

// Hit is the frontmost intersection of a pointer ray with the scene.
type Hit struct {

	// Renderable is the renderable that was hit.
	Renderable selection.Renderable

	// Point is the world-space point of the hit.
	Point math32.Vector3

	// Normal is the world-space surface normal at the hit.
	Normal math32.Vector3
}

// HitTester performs nearest-hit queries against the scene.
type HitTester interface {

	// NearestHit returns the frontmost hit under the given pointer
	// position, and false if there is none.
	NearestHit(pos image.Point) (Hit, bool)
}

// Cursor sets the pointer cursor of the viewport.
type Cursor interface {
	SetCursor(cur cursors.Cursor)
}

// Pointer is a pointer event: position and modifier keys.
type Pointer struct {
	Pos  image.Point
	Mods key.Modifiers
}

// Multi returns whether the multi-select modifier (Control, or Meta
// which is Command on macOS) is held.
func (pt Pointer) Multi() bool {
	return key.HasAnyModifier(pt.Mods, key.Control, key.Meta)
}

// SelectEvent is reported when a click selects or deselects a renderable.
type SelectEvent struct {

	// Renderable is the clicked renderable.
	Renderable selection.Renderable

	// Point is the world-space point that was clicked.
	Point math32.Vector3

	// Object is the logical object of the renderable, or nil if unmapped.
	Object *Object
}

// Notifier receives the outcome of click processing.
type Notifier interface {

	// Selected is called at the end of a click on a renderable.
	Selected(ev SelectEvent)

	// Deselected is called at the end of a click on empty space.
	Deselected()
}

// Dispatcher routes pointer events into a [selection.Registry],
// honoring the global and per-object hover and click flags.
type Dispatcher struct {

	// HoverEnabled is whether hover highlighting is enabled.
	HoverEnabled bool

	// ClickEnabled is whether click highlighting is enabled.
	ClickEnabled bool

	Registry *selection.Registry
	Objects  *ObjectMap
	Tester   HitTester

	// Cursor is optional.
	Cursor Cursor

	// Notifier is optional.
	Notifier Notifier
}

// NewDispatcher returns a new [Dispatcher] with hover and click enabled.
func NewDispatcher(rg *selection.Registry, objs *ObjectMap, tester HitTester) *Dispatcher {
	return &Dispatcher{
		HoverEnabled: true,
		ClickEnabled: true,
		Registry:     rg,
		Objects:      objs,
		Tester:       tester,
	}
}

func (dp *Dispatcher) setCursor(cur cursors.Cursor) {
	if dp.Cursor != nil {
		dp.Cursor.SetCursor(cur)
	}
}

// MouseMove handles a pointer move: it hovers the renderable under the
// pointer, or clears the hover if there is none or its object does not
// allow hovering.
func (dp *Dispatcher) MouseMove(pt Pointer) {
	if !dp.HoverEnabled {
		return
	}
	hit, ok := dp.Tester.NearestHit(pt.Pos)
	if !ok {
		dp.Registry.ClearHover()
		dp.setCursor(cursors.Arrow)
		return
	}
	if obj := dp.Objects.Object(hit.Renderable); obj != nil && !obj.HoverEnabled {
		dp.Registry.ClearHover()
		dp.setCursor(cursors.Arrow)
		return
	}
	dp.setCursor(cursors.Pointer)
	dp.Registry.ApplyHover(hit.Renderable)
}

// MouseDown handles a primary pointer press: a click on empty space clears
// the selection; a click on a renderable whose object allows clicking
// applies the click policy of [selection.Registry.Click].
func (dp *Dispatcher) MouseDown(pt Pointer) {
	if !dp.ClickEnabled {
		return
	}
	hit, ok := dp.Tester.NearestHit(pt.Pos)
	if !ok {
		dp.Registry.ClearAllHighlights()
		slog.Debug("pick: deselected", "pos", pt.Pos)
		if dp.Notifier != nil {
			dp.Notifier.Deselected()
		}
		return
	}
	obj := dp.Objects.Object(hit.Renderable)
	if obj != nil && !obj.ClickEnabled {
		return
	}
	dp.Registry.Click(hit.Renderable, pt.Multi())
	slog.Debug("pick: selected", "object", obj, "point", hit.Point, "multi", pt.Multi())
	if dp.Notifier != nil {
		dp.Notifier.Selected(SelectEvent{Renderable: hit.Renderable, Point: hit.Point, Object: obj})
	}
}

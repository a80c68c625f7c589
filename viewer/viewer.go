// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package viewer provides the public façade for selection feedback on a
// viewport: programmatic highlighting of logical objects, selection
// queries and mutators, and selection event listeners.
package viewer

import (
	"image/color"
	"log/slog"
	"time"

	"cogentcore.org/cadview/config"
	"cogentcore.org/cadview/highlight"
	"cogentcore.org/cadview/pick"
	"cogentcore.org/cadview/selection"
	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/colors"
)

// Viewer ties together the selection registry, the renderable to logical
// object map and the pick dispatcher of one viewport. Like the registry,
// it must only be used from the goroutine that owns the viewport; other
// goroutines go through [Viewer.Loop].
type Viewer struct {
	Registry   *selection.Registry
	Objects    *pick.ObjectMap
	Dispatcher *pick.Dispatcher

	// Loop runs tasks posted from other goroutines on the owning goroutine.
	Loop *Loop

	onSelected   []func(ev pick.SelectEvent)
	onDeselected []func()
	onChange     []func(sel []selection.Renderable)
}

// New returns a new [Viewer] using the given hit tester, cursor (which
// may be nil) and blink clock, configured from cfg.
func New(tester pick.HitTester, cursor pick.Cursor, clock highlight.Clock, cfg *config.Config) *Viewer {
	vw := &Viewer{
		Registry: selection.New(clock),
		Objects:  pick.NewObjectMap(),
		Loop:     NewLoop(),
	}
	vw.Dispatcher = pick.NewDispatcher(vw.Registry, vw.Objects, tester)
	vw.Dispatcher.Cursor = cursor
	vw.Dispatcher.Notifier = vw
	if cfg != nil {
		vw.ApplyConfig(cfg)
	}
	return vw
}

// ApplyConfig applies the style, blink and enable settings of the config.
// An invalid highlight color is logged and leaves the color unchanged.
func (vw *Viewer) ApplyConfig(cfg *config.Config) {
	st := vw.Registry.Style()
	if c, err := colors.FromHex(cfg.HighlightColor); errors.Log(err) == nil {
		st.Color = c
	}
	st.Alpha = cfg.HighlightAlpha
	vw.Registry.SetStyle(st)
	vw.Registry.SetBlinkMode(cfg.Blink, cfg.BlinkPeriod)
	vw.SetHoverEnabled(cfg.HoverEnabled)
	vw.SetClickEnabled(cfg.ClickEnabled)
}

// AddRenderable registers a renderable added to the scene and its
// logical object, which may be nil for an unmapped renderable.
func (vw *Viewer) AddRenderable(r selection.Renderable, obj *pick.Object) {
	vw.Objects.Add(r, obj)
}

// RemoveRenderable purges all state of a renderable leaving the scene.
func (vw *Viewer) RemoveRenderable(r selection.Renderable) {
	wasSelected := vw.Registry.IsSelected(r)
	vw.Registry.Forget(r)
	vw.Objects.Delete(r)
	if wasSelected {
		vw.changed()
	}
}

// ClearScene purges the state of every renderable, when the scene is cleared.
func (vw *Viewer) ClearScene() {
	had := vw.Registry.Len() > 0
	vw.Registry.Reset()
	vw.Objects.Reset()
	if had {
		vw.changed()
	}
}

// OnSelected adds a listener called at the end of every click on a renderable.
func (vw *Viewer) OnSelected(fun func(ev pick.SelectEvent)) {
	vw.onSelected = append(vw.onSelected, fun)
}

// OnDeselected adds a listener called at the end of every click on empty space.
func (vw *Viewer) OnDeselected(fun func()) {
	vw.onDeselected = append(vw.onDeselected, fun)
}

// OnChange adds a listener called after any change to the selection set,
// from clicks or from programmatic calls, with the new selection.
func (vw *Viewer) OnChange(fun func(sel []selection.Renderable)) {
	vw.onChange = append(vw.onChange, fun)
}

// Selected implements [pick.Notifier].
func (vw *Viewer) Selected(ev pick.SelectEvent) {
	for _, fun := range vw.onSelected {
		fun(ev)
	}
	vw.changed()
}

// Deselected implements [pick.Notifier].
func (vw *Viewer) Deselected() {
	for _, fun := range vw.onDeselected {
		fun()
	}
	vw.changed()
}

func (vw *Viewer) changed() {
	if len(vw.onChange) == 0 {
		return
	}
	sel := vw.Registry.Selected()
	for _, fun := range vw.onChange {
		fun(sel)
	}
}

// SelectedRenderables returns the selected renderables in selection order.
func (vw *Viewer) SelectedRenderables() []selection.Renderable {
	return vw.Registry.Selected()
}

// SelectedObjects returns the distinct logical objects of the selected
// renderables. Unmapped renderables are excluded.
func (vw *Viewer) SelectedObjects() []*pick.Object {
	return vw.Objects.Objects(vw.Registry.Selected())
}

// SetHighlightColor sets the highlight color, keeping the alpha.
func (vw *Viewer) SetHighlightColor(c color.RGBA) {
	st := vw.Registry.Style()
	st.Color = c
	vw.Registry.SetStyle(st)
}

// SetHighlightAlpha sets the highlight opacity in [0, 1].
func (vw *Viewer) SetHighlightAlpha(alpha float32) {
	st := vw.Registry.Style()
	st.Alpha = alpha
	vw.Registry.SetStyle(st)
}

// SetBlink turns blinking of selected renderables on or off.
func (vw *Viewer) SetBlink(on bool, period time.Duration) {
	vw.Registry.SetBlinkMode(on, period)
}

// SetHoverEnabled enables or disables hover highlighting globally.
// Disabling it clears any current hover.
func (vw *Viewer) SetHoverEnabled(on bool) {
	vw.Dispatcher.HoverEnabled = on
	if !on {
		vw.Registry.ClearHover()
	}
}

// SetClickEnabled enables or disables click highlighting globally.
func (vw *Viewer) SetClickEnabled(on bool) {
	vw.Dispatcher.ClickEnabled = on
}

// HighlightObjects replaces the selection with every renderable of the
// given logical objects. It is an authoritative command, so the objects'
// ClickEnabled flags are not consulted.
func (vw *Viewer) HighlightObjects(objs ...*pick.Object) {
	vw.Registry.ClearHover()
	vw.Registry.ClearAllHighlights()
	for _, obj := range objs {
		for _, r := range vw.Objects.Renderables(obj) {
			vw.Registry.AddHighlight(r)
		}
	}
	slog.Debug("viewer: highlight objects", "objects", objs, "selected", vw.Registry.Len())
	vw.changed()
}

// HighlightNames is like [Viewer.HighlightObjects] for objects given by
// name. It returns the names that matched no object.
func (vw *Viewer) HighlightNames(names ...string) (missing []string) {
	var objs []*pick.Object
	for _, nm := range names {
		obj := vw.Objects.ObjectByName(nm)
		if obj == nil {
			missing = append(missing, nm)
			continue
		}
		objs = append(objs, obj)
	}
	vw.HighlightObjects(objs...)
	return missing
}

// ClearHighlights removes every renderable from the selection.
func (vw *Viewer) ClearHighlights() {
	had := vw.Registry.Len() > 0
	vw.Registry.ClearAllHighlights()
	if had {
		vw.changed()
	}
}

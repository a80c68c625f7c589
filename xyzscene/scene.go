// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyzscene

import (
	"fmt"
	"log/slog"

	"cogentcore.org/cadview/config"
	"cogentcore.org/cadview/manifest"
	"cogentcore.org/cadview/pick"
	"cogentcore.org/cadview/selection"
	"cogentcore.org/cadview/viewer"
	"cogentcore.org/core/core"
	"cogentcore.org/core/cursors"
	"cogentcore.org/core/events"
	"cogentcore.org/core/math32"
	"cogentcore.org/core/styles"
	"cogentcore.org/core/xyz"
	"cogentcore.org/core/xyz/xyzcore"
)

// View shows a manifest in an [xyzcore.Scene] widget with selection
// feedback: pointer moves hover, clicks select, and selected solids
// blink on the paint ticks of the widget.
type View struct {

	// Widget is the scene widget.
	Widget *xyzcore.Scene

	// Viewer is the selection viewer of the scene.
	Viewer *viewer.Viewer

	// Solids are the solids of the current manifest, in order.
	Solids []*Solid

	cursor cursors.Cursor
}

// NewView returns a new [View] on the given scene widget, configured
// from cfg. It installs the pointer handlers and the task drain on the
// widget.
func NewView(sw *xyzcore.Scene, cfg *config.Config) *View {
	vw := &View{Widget: sw, cursor: cursors.Arrow}
	sc := sw.SceneXYZ()
	tester := &pick.BoxTester{Ray: CameraRay(sc), Candidates: vw.renderables}
	clock := &AnimClock{Widget: sw, Rendered: vw.needsRender}
	vw.Viewer = viewer.New(tester, vw, clock, cfg)

	sw.Styler(func(s *styles.Style) {
		s.Cursor = vw.cursor
	})
	sw.On(events.MouseMove, func(e events.Event) {
		vw.Viewer.Dispatcher.MouseMove(vw.pointer(e))
		vw.needsRender()
	})
	sw.On(events.MouseDown, func(e events.Event) {
		if e.MouseButton() != events.Left {
			return
		}
		vw.Viewer.Dispatcher.MouseDown(vw.pointer(e))
		vw.needsRender()
	})
	sw.Animate(func(a *core.Animation) {
		if vw.Viewer.Loop.Drain() > 0 {
			vw.needsRender()
		}
	})
	return vw
}

// pointer returns the pointer of the event relative to the viewport.
func (vw *View) pointer(e events.Event) pick.Pointer {
	pos := e.Pos().Sub(vw.Widget.Geom.ContentBBox.Min)
	return pick.Pointer{Pos: pos, Mods: e.Modifiers()}
}

func (vw *View) SetCursor(cur cursors.Cursor) {
	if vw.cursor == cur {
		return
	}
	vw.cursor = cur
	vw.Widget.Styles.Cursor = cur
}

func (vw *View) needsRender() {
	vw.Widget.SceneXYZ().SetNeedsRender()
	vw.Widget.NeedsRender()
}

func (vw *View) renderables() []selection.Renderable {
	rs := make([]selection.Renderable, len(vw.Solids))
	for i, sd := range vw.Solids {
		rs[i] = sd
	}
	return rs
}

// SolidByName returns the solid with the given name, or nil.
func (vw *View) SolidByName(name string) *Solid {
	for _, sd := range vw.Solids {
		if sd.Name == name {
			return sd
		}
	}
	return nil
}

// Load replaces the scene contents with the parts of the manifest,
// one box solid per part, and frames the camera on the model.
func (vw *View) Load(mf *manifest.Manifest) {
	sc := vw.Widget.SceneXYZ()
	vw.Viewer.ClearScene()
	vw.Solids = nil
	sc.DeleteChildren()

	xyz.NewAmbient(sc, "ambient", 0.3, xyz.DirectSun)
	dir := xyz.NewDirectional(sc, "dir", 1, xyz.DirectSun)
	dir.Pos.Set(0, 2, 1)

	for name := range mf.Textures {
		xyz.NewTextureFile(sc, name, mf.TexturePath(name))
	}
	unit := xyz.NewBox(sc, "part", 1, 1, 1)

	var bounds math32.Box3
	bounds.SetEmpty()
	mf.Build(func(name string, pt *manifest.Part, obj *pick.Object) {
		box := pt.Box()
		bounds.ExpandByBox(box)
		ctr := box.Center()
		sld := xyz.NewSolid(sc).SetMesh(unit)
		sld.SetName(name)
		sld.Pose.Scale = box.Size()
		sld.SetPos(ctr.X, ctr.Y, ctr.Z)
		sd := NewSolid(sld, vw.needsRender)
		sd.SetAppearance(pt.Appearance())
		vw.Solids = append(vw.Solids, sd)
		vw.Viewer.AddRenderable(sd, obj)
	})
	if !bounds.IsEmpty() {
		ctr := bounds.Center()
		dist := bounds.Size().Length() * 1.5
		sc.Camera.Pose.Pos = ctr.Add(math32.Vec3(0, dist*0.3, dist))
		sc.Camera.LookAt(ctr, math32.Vec3(0, 1, 0))
		sc.SaveCamera("default")
	}
	sc.SetNeedsUpdate()
	vw.needsRender()
	slog.Info("loaded model", "name", mf.Name, "parts", len(vw.Solids))
}

// Status returns a one-line description of the current selection.
func (vw *View) Status() string {
	objs := vw.Viewer.SelectedObjects()
	if len(objs) == 0 {
		return "nothing selected"
	}
	return fmt.Sprintf("selected: %v", objs)
}


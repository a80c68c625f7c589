// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewer

import (
	"context"
	"image"
	"image/color"
	"testing"
	"time"

	"cogentcore.org/cadview/config"
	"cogentcore.org/cadview/highlight"
	"cogentcore.org/cadview/pick"
	"cogentcore.org/cadview/selection"
	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type solid struct {
	ap   highlight.Appearance
	bbox math32.Box3
}

func (s *solid) Appearance() highlight.Appearance     { return s.ap }
func (s *solid) SetAppearance(ap highlight.Appearance) { s.ap = ap }
func (s *solid) WorldBBox() math32.Box3                { return s.bbox }

func newSolid(x0, x1 float32) *solid {
	return &solid{
		ap:   highlight.Defaults(),
		bbox: math32.Box3{Min: math32.Vec3(x0, 0, 0), Max: math32.Vec3(x1, 10, 1)},
	}
}

type testScene struct {
	vw         *Viewer
	clock      *highlight.ManualClock
	r1, r2, r3 *solid
	l1, l2     *pick.Object
}

func newTestScene(cfg *config.Config) *testScene {
	ts := &testScene{
		clock: highlight.NewManualClock(),
		r1:    newSolid(0, 10),
		r2:    newSolid(20, 30),
		r3:    newSolid(40, 50),
		l1:    pick.NewObject("L1"),
		l2:    pick.NewObject("L2"),
	}
	bt := &pick.BoxTester{Ray: pick.OrthoRay(1)}
	ts.vw = New(bt, nil, ts.clock, cfg)
	bt.Candidates = ts.vw.Objects.All
	ts.vw.AddRenderable(ts.r1, ts.l1)
	ts.vw.AddRenderable(ts.r2, ts.l2)
	ts.vw.AddRenderable(ts.r3, ts.l2)
	return ts
}

func TestEvents(t *testing.T) {
	ts := newTestScene(nil)
	vw := ts.vw
	var log []string
	var changes [][]selection.Renderable
	vw.OnSelected(func(ev pick.SelectEvent) { log = append(log, "selected "+ev.Object.Name) })
	vw.OnSelected(func(ev pick.SelectEvent) { log = append(log, "second") })
	vw.OnDeselected(func() { log = append(log, "deselected") })
	vw.OnChange(func(sel []selection.Renderable) { changes = append(changes, sel) })

	vw.Dispatcher.MouseDown(pick.Pointer{Pos: image.Pt(5, 5)})
	vw.Dispatcher.MouseDown(pick.Pointer{Pos: image.Pt(100, 5)})
	assert.Equal(t, []string{"selected L1", "second", "deselected"}, log)
	require.Len(t, changes, 2)
	assert.Equal(t, []selection.Renderable{ts.r1}, changes[0])
	assert.Empty(t, changes[1])
}

func TestSelectedObjects(t *testing.T) {
	ts := newTestScene(nil)
	vw := ts.vw
	unmapped := newSolid(60, 70)
	vw.Registry.AddHighlight(ts.r2)
	vw.Registry.AddHighlight(ts.r3)
	vw.Registry.AddHighlight(ts.r1)
	vw.Registry.AddHighlight(unmapped)

	assert.Equal(t, []*pick.Object{ts.l2, ts.l1}, vw.SelectedObjects())
	assert.Len(t, vw.SelectedRenderables(), 4)
}

func TestSelectedNames(t *testing.T) {
	ts := newTestScene(nil)
	vw := ts.vw
	assert.Equal(t, []string{}, vw.SelectedNames())
	vw.Registry.AddHighlight(ts.r2)
	vw.Registry.AddHighlight(ts.r1)
	assert.Equal(t, []string{"L1", "L2"}, vw.SelectedNames())

	names := []string{"bolt10", "Bracket", "bolt2", "axle"}
	SortNames(names)
	assert.Equal(t, []string{"axle", "bolt2", "bolt10", "Bracket"}, names)
}

func TestHighlightObjects(t *testing.T) {
	ts := newTestScene(nil)
	vw := ts.vw
	ts.l2.SetClickEnabled(false)
	vw.Registry.AddHighlight(ts.r1)

	calls := 0
	vw.OnChange(func(sel []selection.Renderable) { calls++ })
	vw.HighlightObjects(ts.l2)
	assert.Equal(t, []selection.Renderable{ts.r2, ts.r3}, vw.SelectedRenderables())
	assert.Equal(t, highlight.Defaults(), ts.r1.ap)
	assert.Equal(t, 1, calls)

	missing := vw.HighlightNames("L1", "L9")
	assert.Equal(t, []string{"L9"}, missing)
	assert.Equal(t, []*pick.Object{ts.l1}, vw.SelectedObjects())

	vw.ClearHighlights()
	assert.Empty(t, vw.SelectedRenderables())
	assert.Equal(t, 3, calls)
}

func TestStyleMutators(t *testing.T) {
	ts := newTestScene(nil)
	vw := ts.vw
	vw.Registry.AddHighlight(ts.r1)

	blue := color.RGBA{0, 0, 255, 255}
	vw.SetHighlightColor(blue)
	vw.SetHighlightAlpha(0.5)
	st := vw.Registry.Style()
	assert.Equal(t, blue, st.Color)
	assert.Equal(t, float32(0.5), st.Alpha)
	assert.Equal(t, st.Target(), ts.r1.ap)

	vw.SetBlink(true, time.Second)
	assert.True(t, vw.Registry.Controller(ts.r1).Blinking())
	vw.SetBlink(false, time.Second)
	assert.Equal(t, st.Target(), ts.r1.ap)
}

func TestEnableFlags(t *testing.T) {
	ts := newTestScene(nil)
	vw := ts.vw
	vw.Dispatcher.MouseMove(pick.Pointer{Pos: image.Pt(5, 5)})
	assert.NotNil(t, vw.Registry.Hovered())

	vw.SetHoverEnabled(false)
	assert.Nil(t, vw.Registry.Hovered())
	assert.Equal(t, highlight.Defaults(), ts.r1.ap)

	vw.SetClickEnabled(false)
	vw.Dispatcher.MouseDown(pick.Pointer{Pos: image.Pt(5, 5)})
	assert.Empty(t, vw.SelectedRenderables())
}

func TestApplyConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.HighlightColor = "#00ff00"
	cfg.HighlightAlpha = 0.5
	cfg.Blink = true
	cfg.BlinkPeriod = 2 * time.Second
	cfg.HoverEnabled = false
	ts := newTestScene(cfg)
	vw := ts.vw

	st := vw.Registry.Style()
	assert.Equal(t, color.RGBA{0, 255, 0, 255}, st.Color)
	on, period := vw.Registry.Blink()
	assert.True(t, on)
	assert.Equal(t, 2*time.Second, period)
	assert.False(t, vw.Dispatcher.HoverEnabled)
	assert.True(t, vw.Dispatcher.ClickEnabled)

	cfg.HighlightColor = "bogus"
	vw.ApplyConfig(cfg)
	assert.Equal(t, color.RGBA{0, 255, 0, 255}, vw.Registry.Style().Color)
}

func TestApplyConfigDisablesHover(t *testing.T) {
	ts := newTestScene(nil)
	vw := ts.vw
	vw.Dispatcher.MouseMove(pick.Pointer{Pos: image.Pt(5, 5)})
	require.Equal(t, selection.Renderable(ts.r1), vw.Registry.Hovered())
	assert.NotEqual(t, highlight.Defaults(), ts.r1.ap)

	cfg := config.Defaults()
	cfg.HoverEnabled = false
	cfg.ClickEnabled = false
	vw.ApplyConfig(cfg)
	assert.Nil(t, vw.Registry.Hovered())
	assert.Equal(t, highlight.Defaults(), ts.r1.ap)
	assert.False(t, vw.Dispatcher.ClickEnabled)

	// moving off no longer touches anything, and r1 stays restored
	vw.Dispatcher.MouseMove(pick.Pointer{Pos: image.Pt(100, 5)})
	assert.Equal(t, highlight.Defaults(), ts.r1.ap)
}

func TestClearScene(t *testing.T) {
	ts := newTestScene(nil)
	vw := ts.vw
	vw.Registry.AddHighlight(ts.r1)
	vw.Registry.ApplyHover(ts.r2)
	vw.ClearScene()

	assert.Equal(t, highlight.Defaults(), ts.r1.ap)
	assert.Equal(t, highlight.Defaults(), ts.r2.ap)
	assert.Equal(t, 0, vw.Objects.Len())
	assert.Empty(t, vw.SelectedRenderables())

	vw.AddRenderable(ts.r1, ts.l1)
	vw.Registry.AddHighlight(ts.r1)
	vw.RemoveRenderable(ts.r1)
	assert.Equal(t, highlight.Defaults(), ts.r1.ap)
	assert.False(t, vw.Objects.Has(ts.r1))
}

func TestLoop(t *testing.T) {
	lp := NewLoop()
	var got []int
	lp.Post(func() { got = append(got, 1) })
	lp.Post(func() { got = append(got, 2) })
	assert.Equal(t, 2, lp.Drain())
	assert.Equal(t, []int{1, 2}, got)
	assert.Equal(t, 0, lp.Drain())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- lp.Run(ctx) }()
	ran := false
	require.NoError(t, lp.Do(ctx, func() { ran = true }))
	assert.True(t, ran)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestLoopPostContext(t *testing.T) {
	lp := NewLoop()
	n := 0
	for range cap(lp.tasks) {
		require.NoError(t, lp.PostContext(context.Background(), func() { n++ }))
	}

	// full queue with nothing running it
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, lp.PostContext(ctx, func() { n++ }), context.Canceled)
	assert.Equal(t, cap(lp.tasks), lp.Drain())
	assert.Equal(t, cap(lp.tasks), n)
}

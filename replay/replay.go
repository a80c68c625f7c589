// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package replay plays back recorded pointer traces against an in-memory
// scene built from a manifest, printing the resulting selection events.
// It exercises the whole selection path without a GPU or window.
package replay

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"slices"
	"time"

	"cogentcore.org/cadview/config"
	"cogentcore.org/cadview/highlight"
	"cogentcore.org/cadview/manifest"
	"cogentcore.org/cadview/pick"
	"cogentcore.org/cadview/viewer"
	"cogentcore.org/core/events/key"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

// Trace is a recorded sequence of pointer and command steps.
type Trace struct {

	// Scale is the world units per pointer pixel; it defaults to 1.
	Scale float32 `yaml:"scale,omitempty"`

	Steps []Step `yaml:"steps"`
}

// Step is one step of a trace. Exactly one action should be set;
// Expect can be combined with any of them.
type Step struct {

	// Move is a pointer move to the given position.
	Move *image.Point `yaml:"move,omitempty"`

	// Down is a primary pointer press at the given position.
	Down *image.Point `yaml:"down,omitempty"`

	// Ctrl holds the multi-select modifier for Down.
	Ctrl bool `yaml:"ctrl,omitempty"`

	// Advance advances the animation clock by the given duration,
	// in frames of [Player.Frame].
	Advance time.Duration `yaml:"advance,omitempty"`

	// Blink sets the blink mode.
	Blink *Blink `yaml:"blink,omitempty"`

	// Highlight highlights the objects with the given names.
	Highlight []string `yaml:"highlight,omitempty"`

	// Clear clears all highlights.
	Clear bool `yaml:"clear,omitempty"`

	// Expect, if set, are the names of the objects expected to be
	// selected after the step.
	Expect *[]string `yaml:"expect,omitempty"`
}

// Blink is a blink mode step.
type Blink struct {
	On     bool          `yaml:"on"`
	Period time.Duration `yaml:"period,omitempty"`
}

// OpenTrace reads a trace from the given YAML file.
func OpenTrace(filename string) (*Trace, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("replay.OpenTrace: %w", err)
	}
	return ReadTrace(b)
}

// ReadTrace reads a trace from YAML data.
func ReadTrace(b []byte) (*Trace, error) {
	tr := &Trace{}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(tr); err != nil {
		return nil, fmt.Errorf("replay: decoding trace: %w", err)
	}
	if tr.Scale == 0 {
		tr.Scale = 1
	}
	return tr, nil
}

// Player plays traces against a scene.
type Player struct {
	Viewer *viewer.Viewer
	Clock  *highlight.ManualClock
	Scene  *Scene

	// Frame is the animation frame duration used by Advance steps.
	Frame time.Duration

	tester *pick.BoxTester
	out    *termenv.Output
}

// NewPlayer returns a new [Player] for the scene of the given manifest,
// configured from cfg, that writes events to w.
func NewPlayer(mf *manifest.Manifest, cfg *config.Config, w io.Writer) *Player {
	pl := &Player{
		Clock: highlight.NewManualClock(),
		Frame: 16 * time.Millisecond,
		out:   termenv.NewOutput(w),
	}
	pl.tester = &pick.BoxTester{Ray: pick.OrthoRay(1)}
	pl.Viewer = viewer.New(pl.tester, nil, pl.Clock, cfg)
	pl.tester.Candidates = pl.Viewer.Objects.All
	pl.Scene = NewScene(mf, pl.Viewer.AddRenderable)

	pl.Viewer.OnSelected(func(ev pick.SelectEvent) {
		pl.printf("2", "click %v object=%v at (%.3g, %.3g, %.3g) selected=%d",
			ev.Renderable, ev.Object, ev.Point.X, ev.Point.Y, ev.Point.Z, pl.Viewer.Registry.Len())
	})
	pl.Viewer.OnDeselected(func() {
		pl.printf("3", "click on empty space: deselected all")
	})
	return pl
}

func (pl *Player) printf(color string, format string, args ...any) {
	s := pl.out.String(fmt.Sprintf(format, args...)).Foreground(pl.out.Color(color))
	fmt.Fprintln(pl.out, s.String())
}

// Run plays the trace, returning an error for every unmet expectation.
func (pl *Player) Run(tr *Trace) error {
	pl.tester.Ray = pick.OrthoRay(tr.Scale)
	var errs []error
	for i, st := range tr.Steps {
		pl.step(st)
		if st.Expect == nil {
			continue
		}
		got := pl.SelectedNames()
		want := *st.Expect
		if !sameNames(got, want) {
			err := fmt.Errorf("step %d: selected %v, expected %v", i, got, want)
			pl.printf("1", "%v", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (pl *Player) step(st Step) {
	vw := pl.Viewer
	switch {
	case st.Move != nil:
		prev := vw.Registry.Hovered()
		vw.Dispatcher.MouseMove(pick.Pointer{Pos: *st.Move})
		if cur := vw.Registry.Hovered(); cur != prev {
			if cur == nil {
				pl.printf("8", "hover cleared")
			} else {
				pl.printf("6", "hover %v", cur)
			}
		}
	case st.Down != nil:
		pt := pick.Pointer{Pos: *st.Down}
		if st.Ctrl {
			pt.Mods.SetFlag(true, key.Control)
		}
		vw.Dispatcher.MouseDown(pt)
	case st.Advance > 0:
		n := max(int(st.Advance/pl.Frame), 1)
		pl.Clock.Step(n, pl.Frame)
	case st.Blink != nil:
		period := st.Blink.Period
		if period == 0 {
			_, period = vw.Registry.Blink()
		}
		vw.SetBlink(st.Blink.On, period)
		pl.printf("5", "blink %v period %v", st.Blink.On, period)
	case len(st.Highlight) > 0:
		missing := vw.HighlightNames(st.Highlight...)
		pl.printf("4", "highlight %v selected=%d", st.Highlight, vw.Registry.Len())
		if len(missing) > 0 {
			pl.printf("1", "no such objects: %v", missing)
		}
	case st.Clear:
		vw.ClearHighlights()
		pl.printf("4", "cleared highlights")
	}
}

// SelectedNames returns the sorted names of the selected logical objects.
func (pl *Player) SelectedNames() []string {
	return pl.Viewer.SelectedNames()
}

func sameNames(got, want []string) bool {
	w := slices.Clone(want)
	viewer.SortNames(w)
	return slices.Equal(got, w)
}

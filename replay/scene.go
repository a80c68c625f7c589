// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package replay

import (
	"cogentcore.org/cadview/highlight"
	"cogentcore.org/cadview/manifest"
	"cogentcore.org/cadview/pick"
	"cogentcore.org/cadview/selection"
	"cogentcore.org/core/math32"
)

// Part is an in-memory renderable: a named box with an appearance.
type Part struct {
	Name string
	Box  math32.Box3

	appearance highlight.Appearance

	// Writes counts appearance writes.
	Writes int
}

func (pt *Part) Appearance() highlight.Appearance { return pt.appearance }

func (pt *Part) SetAppearance(ap highlight.Appearance) {
	pt.appearance = ap
	pt.Writes++
}

func (pt *Part) WorldBBox() math32.Box3 { return pt.Box }

func (pt *Part) String() string { return pt.Name }

// Scene is an in-memory scene built from a manifest.
type Scene struct {
	Parts []*Part
}

// NewScene builds the scene of the manifest, registering every part and
// its logical object with add.
func NewScene(mf *manifest.Manifest, add func(r selection.Renderable, obj *pick.Object)) *Scene {
	sc := &Scene{}
	mf.Build(func(name string, mp *manifest.Part, obj *pick.Object) {
		pt := &Part{Name: name, Box: mp.Box(), appearance: mp.Appearance()}
		sc.Parts = append(sc.Parts, pt)
		add(pt, obj)
	})
	return sc
}

// PartByName returns the part with the given name, or nil.
func (sc *Scene) PartByName(name string) *Part {
	for _, pt := range sc.Parts {
		if pt.Name == name {
			return pt
		}
	}
	return nil
}

// Renderables returns the parts of the scene as renderables.
func (sc *Scene) Renderables() []selection.Renderable {
	rs := make([]selection.Renderable, len(sc.Parts))
	for i, pt := range sc.Parts {
		rs[i] = pt
	}
	return rs
}

// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xyzscene connects selection feedback to an [xyz.Scene]
// displayed in an [xyzcore.Scene] widget: solids as renderables,
// camera pick rays, the render loop as the blink clock, and the
// widget cursor.
package xyzscene

import (
	"cogentcore.org/cadview/highlight"
	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/colors"
	"cogentcore.org/core/math32"
	"cogentcore.org/core/xyz"
)

// Solid is an [xyz.Solid] as a renderable. Its appearance is its
// [xyz.Material].
type Solid struct {
	*xyz.Solid

	// changed is called after every appearance change, if set.
	changed func()
}

// NewSolid returns a new [Solid] for the given xyz solid.
func NewSolid(sld *xyz.Solid, changed func()) *Solid {
	return &Solid{Solid: sld, changed: changed}
}

// Appearance returns the current material of the solid as an appearance.
// xyz materials have a fixed white specular color.
func (sd *Solid) Appearance() highlight.Appearance {
	mt := &sd.Material
	ap := highlight.Appearance{
		Family:      highlight.Phong,
		Color:       mt.Color,
		Emissive:    mt.Emissive,
		Specular:    colors.White,
		Shiny:       mt.Shiny,
		Reflective:  mt.Reflective,
		Bright:      mt.Bright,
		TextureName: string(mt.TextureName),
	}
	if ap.TextureName != "" {
		ap.Family = highlight.Textured
	}
	return ap
}

// SetAppearance sets the material of the solid from the appearance.
func (sd *Solid) SetAppearance(ap highlight.Appearance) {
	mt := &sd.Material
	mt.Color = ap.Color
	mt.Emissive = ap.Emissive
	mt.Shiny = ap.Shiny
	mt.Reflective = ap.Reflective
	mt.Bright = ap.Bright
	if string(mt.TextureName) != ap.TextureName {
		if sd.Scene != nil {
			errors.Log(mt.SetTextureName(sd.Scene, ap.TextureName))
		} else {
			mt.TextureName = xyz.TextureName(ap.TextureName)
		}
	}
	if sd.changed != nil {
		sd.changed()
	}
}

// WorldBBox returns the world-space bounding box of the solid.
func (sd *Solid) WorldBBox() math32.Box3 {
	return sd.Solid.WorldBBox.BBox
}

func (sd *Solid) String() string {
	return sd.Name
}

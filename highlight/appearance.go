// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package highlight provides the appearance snapshots, blending and
// per-renderable highlight controllers used for selection feedback.
package highlight

//go:generate core generate

import (
	"fmt"
	"image/color"

	"cogentcore.org/core/colors"
)

// Families are the material families an [Appearance] can belong to.
// Only appearances of the same family can be blended channel by channel.
type Families int32 //enums:enum

const (
	// Phong is a standard Phong lit material with color, emissive,
	// specular and shininess channels.
	Phong Families = iota

	// Textured is a Phong material whose surface color comes from a texture map.
	Textured

	// Unlit is a flat color material that ignores lighting.
	Unlit
)

// Appearance is an immutable snapshot of the full visual material state
// of a renderable at a point in time. It is a comparable value, so two
// snapshots can be checked for exact equality with ==.
type Appearance struct {

	// Family is the material family, which determines whether
	// the appearance can be blended with another one.
	Family Families

	// Color is the main ambient and diffuse color; alpha is opacity.
	Color color.RGBA

	// Emissive is the color emitted independent of any lighting.
	Emissive color.RGBA

	// Specular is the specular reflection color.
	Specular color.RGBA

	// Shiny is the specular shininess exponent.
	Shiny float32

	// Reflective is the specular reflectiveness factor.
	Reflective float32

	// Bright is an overall multiplier on the final computed color.
	Bright float32

	// TextureName is the name of the texture map, if any.
	TextureName string
}

// Defaults returns the default appearance: a mid-gray Phong material.
func Defaults() Appearance {
	return Appearance{
		Family:     Phong,
		Color:      colors.FromRGB(128, 128, 128),
		Specular:   colors.FromRGB(255, 255, 255),
		Shiny:      30,
		Reflective: 1,
		Bright:     1,
	}
}

// WithColor returns a copy of the appearance with the given main color.
func (ap Appearance) WithColor(c color.RGBA) Appearance {
	ap.Color = c
	return ap
}

// IsTransparent returns whether the main color is not fully opaque.
func (ap Appearance) IsTransparent() bool {
	return ap.Color.A < 255
}

// Blendable returns whether the two appearances can be interpolated
// channel by channel.
func (ap Appearance) Blendable(other Appearance) bool {
	return ap.Family == other.Family
}

func (ap Appearance) String() string {
	return fmt.Sprintf("%v{color: %v, emissive: %v, shiny: %g, texture: %q}", ap.Family, ap.Color, ap.Emissive, ap.Shiny, ap.TextureName)
}

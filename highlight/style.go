// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package highlight

import (
	"image/color"

	"cogentcore.org/core/colors"
	"cogentcore.org/core/math32"
)

// Style is the highlight style shared by all the highlight controllers
// of one selection registry. The hover appearance is derived from it.
type Style struct {

	// Color is the highlight color; its own alpha is ignored in favor of Alpha.
	Color color.RGBA

	// Alpha is the highlight opacity in [0, 1].
	Alpha float32
}

// DefaultStyle returns the default highlight style: opaque yellow.
func DefaultStyle() Style {
	return Style{Color: colors.Yellow, Alpha: 1}
}

// Target returns the appearance written to selected renderables.
func (st Style) Target() Appearance {
	ap := Defaults()
	ap.Color = colors.WithAF32(st.Color, math32.Clamp(st.Alpha, 0, 1))
	ap.Emissive = colors.WithAF32(st.Color, 0.25)
	return ap
}

// Hover returns the appearance written to the hovered renderable,
// which is the highlight target at half the alpha.
func (st Style) Hover() Appearance {
	hs := st
	hs.Alpha = math32.Clamp(st.Alpha, 0, 1) / 2
	return hs.Target()
}

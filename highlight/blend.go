// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package highlight

import (
	"image/color"

	"cogentcore.org/core/math32"
)

// Blend returns the appearance that is the linear interpolation between
// the original and target appearances at blend factor t, where t = 0 is
// the original and t = 1 is the target. Every color component and scalar
// channel is interpolated independently. t is expected to be in [0, 1];
// callers are responsible for clamping it.
//
// If the two appearances are not [Appearance.Blendable], no channel is
// interpolated: the result is the original for t < 0.5 and the target
// otherwise. Texture names never interpolate and follow the same cut.
func Blend(original, target Appearance, t float32) Appearance {
	if !original.Blendable(target) {
		if t < 0.5 {
			return original
		}
		return target
	}
	bl := target
	if t < 0.5 {
		bl.TextureName = original.TextureName
	}
	bl.Color = blendRGBA(original.Color, target.Color, t)
	bl.Emissive = blendRGBA(original.Emissive, target.Emissive, t)
	bl.Specular = blendRGBA(original.Specular, target.Specular, t)
	bl.Shiny = math32.Lerp(original.Shiny, target.Shiny, t)
	bl.Reflective = math32.Lerp(original.Reflective, target.Reflective, t)
	bl.Bright = math32.Lerp(original.Bright, target.Bright, t)
	return bl
}

// Ease maps an animation phase in [0, 1) to a blend factor that eases
// from 0 to 1 and back to 0 over one period, following a sine wave
// rather than a linear sawtooth.
func Ease(phase float32) float32 {
	return (math32.Sin(phase*2*math32.Pi-math32.Pi/2) + 1) / 2
}

func blendRGBA(a, b color.RGBA, t float32) color.RGBA {
	return color.RGBA{
		R: blendUint8(a.R, b.R, t),
		G: blendUint8(a.G, b.G, t),
		B: blendUint8(a.B, b.B, t),
		A: blendUint8(a.A, b.A, t),
	}
}

func blendUint8(a, b uint8, t float32) uint8 {
	v := math32.Round(math32.Lerp(float32(a), float32(b), t))
	return uint8(math32.Clamp(v, 0, 255))
}

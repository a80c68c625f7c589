// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyzscene

import (
	"image"

	"cogentcore.org/cadview/pick"
	"cogentcore.org/core/math32"
	"cogentcore.org/core/xyz"
	"github.com/go-gl/mathgl/mgl32"
)

// PointerRay returns the world-space ray through the given pixel position
// of a viewport of the given size, for the given camera view and projection
// matrices. Pixel positions have their origin at the top left.
// It returns false if the matrices are not invertible.
func PointerRay(view, proj *math32.Matrix4, size, pos image.Point) (math32.Ray, bool) {
	if size.X <= 0 || size.Y <= 0 {
		return math32.Ray{}, false
	}
	mv := mgl32.Mat4(*view)
	pj := mgl32.Mat4(*proj)
	win := mgl32.Vec3{float32(pos.X) + 0.5, float32(size.Y-pos.Y) - 0.5, 0}
	near, err := mgl32.UnProject(win, mv, pj, 0, 0, size.X, size.Y)
	if err != nil {
		return math32.Ray{}, false
	}
	win[2] = 1
	far, err := mgl32.UnProject(win, mv, pj, 0, 0, size.X, size.Y)
	if err != nil {
		return math32.Ray{}, false
	}
	org := math32.Vec3(near[0], near[1], near[2])
	dir := math32.Vec3(far[0]-near[0], far[1]-near[1], far[2]-near[2])
	if dir.Length() == 0 {
		return math32.Ray{}, false
	}
	return math32.Ray{Origin: org, Dir: dir.Normal()}, true
}

// CameraRay returns a [pick.RayFunc] for the current camera and viewport
// size of the given scene. Positions are relative to the viewport.
func CameraRay(sc *xyz.Scene) pick.RayFunc {
	return func(pos image.Point) math32.Ray {
		ray, ok := PointerRay(&sc.Camera.ViewMatrix, &sc.Camera.ProjectionMatrix, sc.Geom.Size, pos)
		if !ok {
			// points away from everything
			return math32.Ray{Origin: math32.Vec3(0, 0, math32.Inf(1)), Dir: math32.Vec3(0, 0, 1)}
		}
		return ray
	}
}

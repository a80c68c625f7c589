// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pick

import (
	"image"

	"cogentcore.org/cadview/selection"
	"cogentcore.org/core/math32"
)

// Bounded is a renderable with a world-space bounding box.
type Bounded interface {
	selection.Renderable

	// WorldBBox returns the world-space bounding box.
	WorldBBox() math32.Box3
}

// RayFunc returns the world-space pick ray under a pointer position.
type RayFunc func(pos image.Point) math32.Ray

// BoxTester is a [HitTester] that intersects the pick ray with the
// world-space bounding boxes of the candidate renderables, and returns
// the one closest to the ray origin. Candidates that are not [Bounded]
// are ignored.
type BoxTester struct {

	// Ray computes the pick ray.
	Ray RayFunc

	// Candidates returns the renderables to test.
	Candidates func() []selection.Renderable
}

func (bt *BoxTester) NearestHit(pos image.Point) (Hit, bool) {
	if bt.Ray == nil || bt.Candidates == nil {
		return Hit{}, false
	}
	ray := bt.Ray(pos)
	var best Hit
	bestDist := math32.Inf(1)
	for _, r := range bt.Candidates() {
		bd, ok := r.(Bounded)
		if !ok {
			continue
		}
		box := bd.WorldBBox()
		pt, has := ray.IntersectBox(box)
		if !has {
			continue
		}
		d := pt.DistanceTo(ray.Origin)
		if d >= bestDist {
			continue
		}
		bestDist = d
		best = Hit{Renderable: r, Point: pt, Normal: BoxNormal(box, pt)}
	}
	return best, best.Renderable != nil
}

// BoxNormal returns the outward normal of the face of the box
// closest to the given point on its surface.
func BoxNormal(box math32.Box3, pt math32.Vector3) math32.Vector3 {
	type face struct {
		dist   float32
		normal math32.Vector3
	}
	faces := []face{
		{math32.Abs(pt.X - box.Min.X), math32.Vec3(-1, 0, 0)},
		{math32.Abs(pt.X - box.Max.X), math32.Vec3(1, 0, 0)},
		{math32.Abs(pt.Y - box.Min.Y), math32.Vec3(0, -1, 0)},
		{math32.Abs(pt.Y - box.Max.Y), math32.Vec3(0, 1, 0)},
		{math32.Abs(pt.Z - box.Min.Z), math32.Vec3(0, 0, -1)},
		{math32.Abs(pt.Z - box.Max.Z), math32.Vec3(0, 0, 1)},
	}
	best := faces[0]
	for _, f := range faces[1:] {
		if f.dist < best.dist {
			best = f
		}
	}
	return best.normal
}

// OrthoRay returns a [RayFunc] for an orthographic view looking down the
// negative Z axis, where one pixel is unitsPerPixel world units and the
// pixel origin is the world origin.
func OrthoRay(unitsPerPixel float32) RayFunc {
	return func(pos image.Point) math32.Ray {
		x := float32(pos.X) * unitsPerPixel
		y := float32(pos.Y) * unitsPerPixel
		return math32.Ray{Origin: math32.Vec3(x, y, 1e6), Dir: math32.Vec3(0, 0, -1)}
	}
}

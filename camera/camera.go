// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package camera projects 3D scene points to window coordinates.
//
// Projection follows gluProject: points are transformed by the view and
// projection matrices, divided by w and mapped into the viewport. The Y
// axis is then flipped so that (0, 0) is the top-left corner of the window,
// which is what mouse and rectangle selection work in.
package camera

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Viewport is the window rectangle the normalized device coordinates are
// mapped into, in pixels.
type Viewport struct {
	X, Y          int
	Width, Height int
}

// Camera holds the matrices and viewport used for projection.
type Camera struct {
	View       mgl64.Mat4
	Projection mgl64.Mat4
	Viewport   Viewport
}

// New creates a camera with identity view and projection matrices.
func New(vp Viewport) Camera {
	return Camera{
		View:       mgl64.Ident4(),
		Projection: mgl64.Ident4(),
		Viewport:   vp,
	}
}

// Project maps world points to window points with a top-left origin.
// Coordinates are rounded to the nearest pixel.
func Project(cam Camera, points []mgl64.Vec3) []image.Point {
	vp := cam.Viewport
	result := make([]image.Point, len(points))
	for i, p := range points {
		win := mgl64.Project(p, cam.View, cam.Projection, vp.X, vp.Y, vp.Width, vp.Height)
		result[i] = image.Pt(
			int(math.Round(win.X())),
			int(math.Round(float64(vp.Height)-win.Y())),
		)
	}
	return result
}

// BoxCorners returns the eight corners of the axis-aligned box [lo, hi].
func BoxCorners(lo, hi mgl64.Vec3) []mgl64.Vec3 {
	return []mgl64.Vec3{
		lo,
		{lo.X(), lo.Y(), hi.Z()},
		{lo.X(), hi.Y(), lo.Z()},
		{lo.X(), hi.Y(), hi.Z()},
		{hi.X(), lo.Y(), lo.Z()},
		{hi.X(), lo.Y(), hi.Z()},
		{hi.X(), hi.Y(), lo.Z()},
		hi,
	}
}

// Hull2D returns the outline of a volume on screen.
//
// vertices are the volume's convex hull vertices in object space, or its
// BoxCorners when it has no hull. They are moved by transform, projected
// with cam and reduced to their 2D convex hull.
func Hull2D(cam Camera, vertices []mgl64.Vec3, transform mgl64.Mat4) []image.Point {
	world := make([]mgl64.Vec3, len(vertices))
	for i, v := range vertices {
		world[i] = mgl64.TransformCoordinate(v, transform)
	}
	return ConvexHull(Project(cam, world))
}

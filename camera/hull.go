// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package camera

import (
	"image"
	"slices"
)

// ConvexHull returns the convex hull of points using the monotone chain
// algorithm. The hull starts at the leftmost point and turns positively
// in the points' coordinate frame. Collinear and duplicate points are
// dropped. Fewer than three distinct points are returned as they are,
// sorted.
func ConvexHull(points []image.Point) []image.Point {
	pts := slices.Clone(points)
	slices.SortFunc(pts, func(a, b image.Point) int {
		if a.X != b.X {
			return a.X - b.X
		}
		return a.Y - b.Y
	})
	pts = slices.Compact(pts)
	if len(pts) < 3 {
		return pts
	}

	hull := make([]image.Point, 0, 2*len(pts))
	for _, p := range pts {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(pts) - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

// cross is the z component of (a - o) x (b - o).
func cross(o, a, b image.Point) int64 {
	return int64(a.X-o.X)*int64(b.Y-o.Y) - int64(a.Y-o.Y)*int64(b.X-o.X)
}

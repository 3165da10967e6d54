package text

import (
	"math"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Point is a point in pixel space. Y grows downward.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in pixel space.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.MaxX <= r.MinX || r.MaxY <= r.MinY }

// OutlineOp is the type of path operation.
type OutlineOp uint8

const (
	// OutlineOpMoveTo starts a new contour.
	OutlineOpMoveTo OutlineOp = iota

	// OutlineOpLineTo draws a line to the target point.
	OutlineOpLineTo

	// OutlineOpQuadTo draws a quadratic bezier curve.
	OutlineOpQuadTo

	// OutlineOpCubicTo draws a cubic bezier curve.
	OutlineOpCubicTo
)

// String returns a string representation of the operation.
func (op OutlineOp) String() string {
	switch op {
	case OutlineOpMoveTo:
		return "MoveTo"
	case OutlineOpLineTo:
		return "LineTo"
	case OutlineOpQuadTo:
		return "QuadTo"
	case OutlineOpCubicTo:
		return "CubicTo"
	default:
		return "Unknown"
	}
}

// pointCount returns how many entries of Segment.Points op uses.
func (op OutlineOp) pointCount() int {
	switch op {
	case OutlineOpQuadTo:
		return 2
	case OutlineOpCubicTo:
		return 3
	default:
		return 1
	}
}

// Segment is one path operation.
//   - MoveTo, LineTo: Points[0] is the target point
//   - QuadTo: Points[0] is control, Points[1] is target
//   - CubicTo: Points[0], Points[1] are controls, Points[2] is target
type Segment struct {
	Op     OutlineOp
	Points [3]Point
}

// Outline is a set of closed contours, typically the glyphs of one preview
// text. Contours are filled with the non-zero winding rule.
type Outline struct {
	Segments []Segment

	// Bounds covers every point of Segments, control points included.
	// It is the zero Rect when the outline is empty.
	Bounds Rect
}

// IsEmpty returns true if the outline has no segments.
func (o *Outline) IsEmpty() bool {
	return o == nil || len(o.Segments) == 0
}

// Translate moves every point by (dx, dy) in place.
func (o *Outline) Translate(dx, dy float64) {
	for i := range o.Segments {
		seg := &o.Segments[i]
		for j := 0; j < seg.Op.pointCount(); j++ {
			seg.Points[j].X += dx
			seg.Points[j].Y += dy
		}
	}
	if !o.IsEmpty() {
		o.Bounds.MinX += dx
		o.Bounds.MaxX += dx
		o.Bounds.MinY += dy
		o.Bounds.MaxY += dy
	}
}

// append adds a segment and grows Bounds.
func (o *Outline) append(seg Segment) {
	first := len(o.Segments) == 0
	if first {
		o.Bounds = Rect{
			MinX: math.Inf(1), MinY: math.Inf(1),
			MaxX: math.Inf(-1), MaxY: math.Inf(-1),
		}
	}
	for j := 0; j < seg.Op.pointCount(); j++ {
		p := seg.Points[j]
		o.Bounds.MinX = math.Min(o.Bounds.MinX, p.X)
		o.Bounds.MinY = math.Min(o.Bounds.MinY, p.Y)
		o.Bounds.MaxX = math.Max(o.Bounds.MaxX, p.X)
		o.Bounds.MaxY = math.Max(o.Bounds.MaxY, p.Y)
	}
	o.Segments = append(o.Segments, seg)
}

// placement maps glyph-local points to outline space:
// x' = originX + x - skew*y, y' = originY + y.
type placement struct {
	originX, originY float64
	skew             float64
}

func (p placement) apply(fp fixed.Point26_6) Point {
	x := float64(fp.X) / 64.0
	y := float64(fp.Y) / 64.0
	return Point{X: p.originX + x - p.skew*y, Y: p.originY + y}
}

// outlineLoader loads glyph outlines from an sfnt.Font.
// It reuses one sfnt.Buffer, so it must not be shared between goroutines.
type outlineLoader struct {
	font   *sfnt.Font
	buffer sfnt.Buffer
}

// appendGlyph loads glyph gid at ppem and appends its contours to dst.
// Glyphs without outline (like space) add nothing.
func (l *outlineLoader) appendGlyph(dst *Outline, gid uint16, ppem fixed.Int26_6, at placement) error {
	segments, err := l.font.LoadGlyph(&l.buffer, sfnt.GlyphIndex(gid), ppem, nil)
	if err != nil {
		return &GlyphError{GID: gid, Err: err}
	}

	for _, seg := range segments {
		out := Segment{}
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			out.Op = OutlineOpMoveTo
		case sfnt.SegmentOpLineTo:
			out.Op = OutlineOpLineTo
		case sfnt.SegmentOpQuadTo:
			out.Op = OutlineOpQuadTo
		case sfnt.SegmentOpCubeTo:
			out.Op = OutlineOpCubicTo
		default:
			continue
		}
		for j := 0; j < out.Op.pointCount(); j++ {
			out.Points[j] = at.apply(seg.Args[j])
		}
		dst.append(out)
	}
	return nil
}

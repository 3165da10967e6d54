package text

import (
	"errors"
	"math"
	"testing"
)

func TestShapes_SingleGlyph(t *testing.T) {
	source := testSource(t)

	out, err := Shapes(source, "A", 32, Props{})
	if err != nil {
		t.Fatalf("Shapes: %v", err)
	}
	if out.IsEmpty() {
		t.Fatal("outline for 'A' is empty")
	}
	if out.Segments[0].Op != OutlineOpMoveTo {
		t.Errorf("first op = %v, want MoveTo", out.Segments[0].Op)
	}

	b := out.Bounds
	if b.Empty() {
		t.Fatalf("bounds %+v are empty", b)
	}
	// 'A' sits on the baseline and rises above it (y grows down).
	if b.MinY >= 0 {
		t.Errorf("MinY = %f, want < 0 (above baseline)", b.MinY)
	}
	if b.Height() > 32 {
		t.Errorf("height = %f, want <= em size 32", b.Height())
	}
}

func TestShapes_Whitespace(t *testing.T) {
	source := testSource(t)

	out, err := Shapes(source, "   ", 32, Props{})
	if err != nil {
		t.Fatalf("Shapes: %v", err)
	}
	if !out.IsEmpty() {
		t.Errorf("whitespace produced %d segments", len(out.Segments))
	}
	if out.Bounds != (Rect{}) {
		t.Errorf("whitespace bounds = %+v, want zero", out.Bounds)
	}
}

func TestShapes_InvalidSize(t *testing.T) {
	source := testSource(t)

	for _, size := range []float64{0, -4, math.NaN(), math.Inf(1)} {
		if _, err := Shapes(source, "A", size, Props{}); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("Shapes(size=%v) error = %v, want ErrInvalidSize", size, err)
		}
	}
}

func TestShapes_NilSource(t *testing.T) {
	if _, err := Shapes(nil, "A", 16, Props{}); !errors.Is(err, ErrNilSource) {
		t.Errorf("Shapes(nil) error = %v, want ErrNilSource", err)
	}
}

func TestShapes_Multiline(t *testing.T) {
	source := testSource(t)

	one, err := Shapes(source, "Ag", 20, Props{})
	if err != nil {
		t.Fatal(err)
	}
	two, err := Shapes(source, "Ag\nAg", 20, Props{})
	if err != nil {
		t.Fatal(err)
	}

	if two.Bounds.Height() <= one.Bounds.Height()+10 {
		t.Errorf("two lines height %f not clearly above one line %f", two.Bounds.Height(), one.Bounds.Height())
	}

	gapped, err := Shapes(source, "Ag\nAg", 20, Props{LineGap: 1})
	if err != nil {
		t.Fatal(err)
	}
	diff := gapped.Bounds.Height() - two.Bounds.Height()
	if math.Abs(diff-20) > 0.5 {
		t.Errorf("LineGap 1em added %f px, want 20", diff)
	}
}

func TestShapes_CharGap(t *testing.T) {
	source := testSource(t)

	plain, err := Shapes(source, "HHH", 20, Props{Shaper: BuiltinShaper{}})
	if err != nil {
		t.Fatal(err)
	}
	gapped, err := Shapes(source, "HHH", 20, Props{CharGap: 0.5, Shaper: BuiltinShaper{}})
	if err != nil {
		t.Fatal(err)
	}

	// Two gaps of 10px between three glyphs.
	diff := gapped.Bounds.Width() - plain.Bounds.Width()
	if math.Abs(diff-20) > 0.01 {
		t.Errorf("CharGap added %f px, want 20", diff)
	}
}

func TestShapes_Skew(t *testing.T) {
	source := testSource(t)

	upright, err := Shapes(source, "I", 40, Props{})
	if err != nil {
		t.Fatal(err)
	}
	skewed, err := Shapes(source, "I", 40, Props{Skew: 0.5})
	if err != nil {
		t.Fatal(err)
	}

	if skewed.Bounds.MaxX <= upright.Bounds.MaxX {
		t.Errorf("skewed MaxX %f should exceed upright MaxX %f", skewed.Bounds.MaxX, upright.Bounds.MaxX)
	}
	if skewed.Bounds.MinY != upright.Bounds.MinY {
		t.Errorf("skew changed vertical bounds: %f vs %f", skewed.Bounds.MinY, upright.Bounds.MinY)
	}
}

func TestOutline_Translate(t *testing.T) {
	source := testSource(t)

	out, err := Shapes(source, "o", 24, Props{})
	if err != nil {
		t.Fatal(err)
	}
	before := out.Bounds
	out.Translate(-before.MinX, -before.MinY)

	if math.Abs(out.Bounds.MinX) > 1e-9 || math.Abs(out.Bounds.MinY) > 1e-9 {
		t.Errorf("translated bounds min = (%f,%f), want (0,0)", out.Bounds.MinX, out.Bounds.MinY)
	}
	if math.Abs(out.Bounds.Width()-before.Width()) > 1e-9 {
		t.Error("Translate changed width")
	}
	for _, seg := range out.Segments {
		for j := 0; j < seg.Op.pointCount(); j++ {
			if seg.Points[j].X < -1e-9 || seg.Points[j].Y < -1e-9 {
				t.Fatalf("point %+v outside translated bounds", seg.Points[j])
			}
		}
	}
}

func TestOutlineOp_String(t *testing.T) {
	tests := []struct {
		op   OutlineOp
		want string
	}{
		{OutlineOpMoveTo, "MoveTo"},
		{OutlineOpLineTo, "LineTo"},
		{OutlineOpQuadTo, "QuadTo"},
		{OutlineOpCubicTo, "CubicTo"},
		{OutlineOp(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

package styleatlas

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/gogpu/styleatlas/text"
	"golang.org/x/image/font/gofont/goregular"
)

func testFont(t *testing.T) *text.FontSource {
	t.Helper()

	source, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		t.Fatalf("failed to create font source: %v", err)
	}
	t.Cleanup(func() {
		_ = source.Close()
	})
	return source
}

func testBuilder(t *testing.T, opts ...Option) *Builder {
	t.Helper()

	b, err := NewBuilder(opts...)
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	t.Cleanup(b.Close)
	return b
}

func testStyles(font *text.FontSource) []Style {
	return []Style{
		{Name: "Regular", Font: font, Props: FontProps{SizeMM: 6}},
		{Name: "Large", Font: font, Props: FontProps{SizeMM: 10}},
		{Name: "Spaced", Text: "Wide\ntext", Font: font, Props: FontProps{SizeMM: 5, CharGap: 0.3, LineGap: 0.2}},
	}
}

func TestBuild_Layout(t *testing.T) {
	b := testBuilder(t)
	styles := testStyles(testFont(t))

	images, err := b.Build(context.Background(), styles)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(images.Images) != len(styles) {
		t.Fatalf("got %d images, want %d", len(images.Images), len(styles))
	}
	if got := images.Pixels.Bounds(); got != image.Rect(0, 0, images.Width, images.Height) {
		t.Errorf("pixels bounds = %v, want %dx%d", got, images.Width, images.Height)
	}

	wantHeight := len(styles) - 1
	maxWidth := 0
	for i, img := range images.Images {
		if img.Style.Name != styles[i].Name {
			t.Errorf("image %d: style %q, want %q (order preserved)", i, img.Style.Name, styles[i].Name)
		}
		if img.TexSize.Width <= 0 || img.TexSize.Height <= 0 {
			t.Errorf("image %d: empty tex size %+v", i, img.TexSize)
		}
		if img.Offset.X != 0 {
			t.Errorf("image %d: offset x = %d, want 0", i, img.Offset.X)
		}
		wantHeight += img.TexSize.Height
		maxWidth = max(maxWidth, img.TexSize.Width)
	}
	if images.Height != wantHeight {
		t.Errorf("Height = %d, want %d", images.Height, wantHeight)
	}
	if images.Width != maxWidth {
		t.Errorf("Width = %d, want %d", images.Width, maxWidth)
	}
}

func TestBuild_UVMatchesOffsets(t *testing.T) {
	b := testBuilder(t)
	images, err := b.Build(context.Background(), testStyles(testFont(t)))
	if err != nil {
		t.Fatal(err)
	}

	w, h := float32(images.Width), float32(images.Height)
	for i, img := range images.Images {
		want0 := UV{U: float32(img.Offset.X) / w, V: float32(img.Offset.Y) / h}
		want1 := UV{
			U: float32(img.Offset.X+img.TexSize.Width) / w,
			V: float32(img.Offset.Y+img.TexSize.Height) / h,
		}
		if !uvNear(img.UV0, want0) || !uvNear(img.UV1, want1) {
			t.Errorf("image %d: uv = %v..%v, want %v..%v", i, img.UV0, img.UV1, want0, want1)
		}
		if !(img.UV0.U < img.UV1.U && img.UV0.V < img.UV1.V) {
			t.Errorf("image %d: uv0 %v not below uv1 %v", i, img.UV0, img.UV1)
		}
	}
}

func TestBuild_PixelsInsideTiles(t *testing.T) {
	b := testBuilder(t)
	images, err := b.Build(context.Background(), testStyles(testFont(t)))
	if err != nil {
		t.Fatal(err)
	}

	for i, img := range images.Images {
		r := image.Rectangle{Min: img.Offset, Max: img.Offset.Add(image.Pt(img.TexSize.Width, img.TexSize.Height))}
		var ink int
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				if images.Pixels.AlphaAt(x, y).A > 0 {
					ink++
				}
			}
		}
		if ink == 0 {
			t.Errorf("image %d has no ink inside its tile", i)
		}

		// The padding row below each tile but the last stays transparent.
		if i < len(images.Images)-1 {
			for x := 0; x < images.Width; x++ {
				if a := images.Pixels.AlphaAt(x, r.Max.Y).A; a != 0 {
					t.Fatalf("padding row %d has alpha %d at x=%d", r.Max.Y, a, x)
				}
			}
		}
	}
}

func TestBuild_CropsWidePreview(t *testing.T) {
	b := testBuilder(t, WithMaxWidth(40))
	font := testFont(t)

	images, err := b.Build(context.Background(), []Style{
		{Name: "A very long style name that cannot fit", Font: font, Props: FontProps{SizeMM: 6}},
		{Name: "i", Font: font, Props: FontProps{SizeMM: 6}},
	})
	if err != nil {
		t.Fatal(err)
	}

	long := images.Images[0]
	if long.TexSize.Width != 40 {
		t.Errorf("cropped width = %d, want 40", long.TexSize.Width)
	}
	if long.Bounds.Width() <= 40 {
		t.Errorf("uncropped bounds width = %f, want > 40", long.Bounds.Width())
	}
	if images.Width != 40 {
		t.Errorf("atlas width = %d, want 40", images.Width)
	}
	if long.UV1.U != 1 {
		t.Errorf("cropped UV1.U = %f, want 1", long.UV1.U)
	}
}

func TestBuild_Empty(t *testing.T) {
	b := testBuilder(t)

	images, err := b.Build(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if images.Width != 0 || images.Height != 0 || len(images.Images) != 0 {
		t.Errorf("empty build = %dx%d with %d images", images.Width, images.Height, len(images.Images))
	}
	if !images.Pixels.Bounds().Empty() {
		t.Error("expected empty pixel buffer")
	}
}

func TestBuild_WhitespaceStyle(t *testing.T) {
	b := testBuilder(t)
	font := testFont(t)

	images, err := b.Build(context.Background(), []Style{
		{Name: "A", Font: font, Props: FontProps{SizeMM: 6}},
		{Name: " ", Font: font, Props: FontProps{SizeMM: 6}},
		{Name: "B", Font: font, Props: FontProps{SizeMM: 6}},
	})
	if err != nil {
		t.Fatal(err)
	}

	blank := images.Images[1]
	if blank.TexSize.Width != 0 || blank.TexSize.Height != 0 {
		t.Errorf("blank tex size = %+v, want zero", blank.TexSize)
	}
	wantHeight := images.Images[0].TexSize.Height + images.Images[2].TexSize.Height + 2
	if images.Height != wantHeight {
		t.Errorf("Height = %d, want %d", images.Height, wantHeight)
	}
}

func TestBuild_Errors(t *testing.T) {
	b := testBuilder(t)
	font := testFont(t)

	_, err := b.Build(context.Background(), []Style{
		{Name: "ok", Font: font, Props: FontProps{SizeMM: 5}},
		{Name: "no font", Props: FontProps{SizeMM: 5}},
	})
	var styleErr *StyleError
	if !errors.As(err, &styleErr) {
		t.Fatalf("Build error = %v, want *StyleError", err)
	}
	if styleErr.Index != 1 || styleErr.Name != "no font" {
		t.Errorf("StyleError = %+v, want index 1 'no font'", styleErr)
	}
	if !errors.Is(err, ErrNilFont) {
		t.Errorf("error %v should wrap ErrNilFont", err)
	}

	_, err = b.Build(context.Background(), []Style{{Name: "zero", Font: font}})
	if !errors.Is(err, text.ErrInvalidSize) {
		t.Errorf("zero size error = %v, want text.ErrInvalidSize", err)
	}
}

func TestBuild_Canceled(t *testing.T) {
	b := testBuilder(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Build(ctx, testStyles(testFont(t)))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Build error = %v, want context.Canceled", err)
	}
}

func TestBuild_UsesCache(t *testing.T) {
	b := testBuilder(t)
	styles := testStyles(testFont(t))

	first, err := b.Build(context.Background(), styles)
	if err != nil {
		t.Fatal(err)
	}
	second, err := b.Build(context.Background(), styles)
	if err != nil {
		t.Fatal(err)
	}

	stats := b.CacheStats()
	if stats.Hits != uint64(len(styles)) {
		t.Errorf("cache hits = %d, want %d", stats.Hits, len(styles))
	}
	if stats.Len != len(styles) {
		t.Errorf("cache len = %d, want %d", stats.Len, len(styles))
	}

	if first.Width != second.Width || first.Height != second.Height {
		t.Fatalf("cached build size %dx%d differs from %dx%d", second.Width, second.Height, first.Width, first.Height)
	}
	for i := range first.Pixels.Pix {
		if first.Pixels.Pix[i] != second.Pixels.Pix[i] {
			t.Fatalf("cached build differs at byte %d", i)
		}
	}
}

func TestBuild_NoCache(t *testing.T) {
	b := testBuilder(t, WithCacheSize(0))
	if _, err := b.Build(context.Background(), testStyles(testFont(t))); err != nil {
		t.Fatal(err)
	}
	if stats := b.CacheStats(); stats != (CacheStats{}) {
		t.Errorf("CacheStats() = %+v, want zero with caching disabled", stats)
	}
}

func TestBuild_DPIScalesPreview(t *testing.T) {
	font := testFont(t)
	styles := []Style{{Name: "Scale", Font: font, Props: FontProps{SizeMM: 5}}}

	low, err := testBuilder(t, WithDPI(96)).Build(context.Background(), styles)
	if err != nil {
		t.Fatal(err)
	}
	high, err := testBuilder(t, WithDPI(192)).Build(context.Background(), styles)
	if err != nil {
		t.Fatal(err)
	}

	lh, hh := low.Images[0].Bounds.Height(), high.Images[0].Bounds.Height()
	if ratio := hh / lh; ratio < 1.9 || ratio > 2.1 {
		t.Errorf("doubling DPI scaled height by %f, want about 2", ratio)
	}
}

func TestStyle_PreviewText(t *testing.T) {
	if got := (Style{Name: "n"}).PreviewText(); got != "n" {
		t.Errorf("PreviewText() = %q, want name", got)
	}
	if got := (Style{Name: "n", Text: "t"}).PreviewText(); got != "t" {
		t.Errorf("PreviewText() = %q, want text", got)
	}
}

func uvNear(a, b UV) bool {
	const eps = 1e-6
	du, dv := a.U-b.U, a.V-b.V
	return du > -eps && du < eps && dv > -eps && dv < eps
}

func TestBuild_ClosedFont(t *testing.T) {
	b := testBuilder(t)
	font := testFont(t)
	styles := []Style{
		{Name: "Alpha", Font: font, Props: FontProps{SizeMM: 6}},
	}

	if _, err := b.Build(context.Background(), styles); err != nil {
		t.Fatal(err)
	}
	if got := b.CacheStats().Len; got != 1 {
		t.Fatalf("cache len = %d, want 1", got)
	}

	if err := font.Close(); err != nil {
		t.Fatal(err)
	}

	images, err := b.Build(context.Background(), styles)
	if !errors.Is(err, text.ErrSourceClosed) {
		t.Fatalf("Build with closed font = %v, want text.ErrSourceClosed", err)
	}
	if images != nil {
		t.Error("expected nil result for closed font")
	}
	var styleErr *StyleError
	if !errors.As(err, &styleErr) || styleErr.Name != "Alpha" {
		t.Errorf("error = %v, want *StyleError for Alpha", err)
	}
	if got := b.CacheStats().Len; got != 0 {
		t.Errorf("cache len after closed font = %d, want 0", got)
	}
}

func TestBuilder_CloseDropsCache(t *testing.T) {
	b, err := NewBuilder()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.Build(context.Background(), testStyles(testFont(t))); err != nil {
		t.Fatal(err)
	}
	if b.CacheStats().Len == 0 {
		t.Fatal("expected cached previews after Build")
	}

	b.Close()
	if got := b.CacheStats().Len; got != 0 {
		t.Errorf("cache len after Close = %d, want 0", got)
	}
}

package styleatlas

import (
	"context"
	"image"
	"math"

	"github.com/gogpu/styleatlas/atlas"
	"github.com/gogpu/styleatlas/internal/cache"
	"github.com/gogpu/styleatlas/internal/parallel"
	"github.com/gogpu/styleatlas/raster"
	"github.com/gogpu/styleatlas/text"
)

// Builder renders style previews and packs them into an atlas.
//
// A Builder keeps a worker pool and a cache of rendered previews, so it
// should be reused across rebuilds and closed when no longer needed.
// Build is safe for concurrent use.
type Builder struct {
	config   Config
	pool     *parallel.WorkerPool
	previews *cache.Cache[previewKey, *preview]
}

// previewKey identifies a rendered preview. The Builder's config is fixed,
// so it is not part of the key.
type previewKey struct {
	font    *text.FontSource
	text    string
	sizeMM  float64
	charGap float64
	lineGap float64
	skew    float64
}

// preview is a style's shapes moved to the origin and its cropped mask.
type preview struct {
	bounds  text.Rect
	size    atlas.Size
	outline *text.Outline
	mask    *image.Alpha
}

// NewBuilder creates a Builder with DefaultConfig modified by opts.
func NewBuilder(opts ...Option) (*Builder, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := &Builder{
		config: cfg,
		pool:   parallel.NewWorkerPool(cfg.Workers),
	}
	if cfg.CacheSize > 0 {
		b.previews = cache.New[previewKey, *preview](cfg.CacheSize)
	}
	return b, nil
}

// Config returns the builder configuration.
func (b *Builder) Config() Config {
	return b.config
}

// Close stops the worker pool and drops cached previews.
// Build must not be called afterwards.
func (b *Builder) Close() {
	b.pool.Close()
	if b.previews != nil {
		b.previews.Clear()
	}
}

// Build renders every style and packs the previews top to bottom in style
// order.
//
// Each style is shaped at SizeMM * DPI / 25.4 pixels per em, its shapes are
// moved so the bounding box starts at (0, 0) and the tile size is the
// bounding box rounded up. Previews wider than MaxWidth are cropped.
//
// A style whose font was closed fails with text.ErrSourceClosed, even when
// its preview is cached. An empty styles slice yields an empty atlas. ctx is checked between
// styles and between rasterization tasks; on cancellation ctx.Err() is
// returned.
func (b *Builder) Build(ctx context.Context, styles []Style) (*StyleImages, error) {
	log := Logger()

	previews := make([]*preview, len(styles))
	sizes := make([]atlas.Size, len(styles))
	var pending []int

	for i, style := range styles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		key := b.keyFor(style)
		if style.Font != nil && style.Font.IsClosed() {
			b.forget(key)
			return nil, &StyleError{Index: i, Name: style.Name, Err: text.ErrSourceClosed}
		}
		if p, ok := b.cached(key); ok {
			previews[i] = p
			sizes[i] = p.size
			log.Debug("styleatlas: preview cache hit", "style", style.Name)
			continue
		}

		p, err := b.shape(style)
		if err != nil {
			return nil, &StyleError{Index: i, Name: style.Name, Err: err}
		}
		previews[i] = p
		sizes[i] = p.size
		pending = append(pending, i)
	}

	layout := atlas.Pack(sizes, b.config.MaxWidth)
	for i, s := range sizes {
		if s.Width > b.config.MaxWidth {
			log.Warn("styleatlas: preview cropped",
				"style", styles[i].Name, "width", s.Width, "max_width", b.config.MaxWidth)
		}
	}
	log.Debug("styleatlas: packed previews",
		"styles", len(styles), "width", layout.Width, "height", layout.Height)

	if err := b.rasterize(ctx, layout, previews, pending); err != nil {
		return nil, err
	}
	for _, i := range pending {
		b.store(b.keyFor(styles[i]), previews[i])
	}

	masks := make([]*image.Alpha, len(previews))
	for i, p := range previews {
		masks[i] = p.mask
	}

	result := &StyleImages{
		Width:  layout.Width,
		Height: layout.Height,
		Pixels: atlas.Compose(layout, masks),
		Images: make([]StyleImage, len(styles)),
	}
	for i, tile := range layout.Tiles {
		result.Images[i] = StyleImage{
			Style:   styles[i],
			Bounds:  previews[i].bounds,
			TexSize: tile.Size,
			Offset:  image.Pt(tile.X, tile.Y),
			UV0:     UV{U: tile.U0, V: tile.V0},
			UV1:     UV{U: tile.U1, V: tile.V1},
		}
	}
	return result, nil
}

// shape converts a style into origin-aligned shapes and its uncropped size.
func (b *Builder) shape(style Style) (*preview, error) {
	if style.Font == nil {
		return nil, ErrNilFont
	}

	ppem := style.Props.SizeMM * b.config.PixelsPerMM()
	outline, err := text.Shapes(style.Font, style.PreviewText(), ppem, text.Props{
		CharGap: style.Props.CharGap,
		LineGap: style.Props.LineGap,
		Skew:    style.Props.Skew,
	})
	if err != nil {
		return nil, err
	}

	p := &preview{outline: outline}
	if outline.IsEmpty() {
		return p, nil
	}

	p.bounds = outline.Bounds
	outline.Translate(-p.bounds.MinX, -p.bounds.MinY)
	p.size = atlas.Size{
		Width:  int(math.Ceil(p.bounds.Width())),
		Height: int(math.Ceil(p.bounds.Height())),
	}
	return p, nil
}

// rasterize fills the masks of the pending previews at their tile sizes.
func (b *Builder) rasterize(ctx context.Context, layout atlas.Layout, previews []*preview, pending []int) error {
	work := make([]func(), len(pending))
	for n, i := range pending {
		p, tile := previews[i], layout.Tiles[i]
		work[n] = func() {
			r := raster.NewRasterizer(b.config.Gamma)
			p.mask = r.Rasterize(p.outline, image.Pt(tile.Width, tile.Height))
		}
	}
	return b.pool.ExecuteAll(ctx, work)
}

func (b *Builder) keyFor(s Style) previewKey {
	return previewKey{
		font:    s.Font,
		text:    s.PreviewText(),
		sizeMM:  s.Props.SizeMM,
		charGap: s.Props.CharGap,
		lineGap: s.Props.LineGap,
		skew:    s.Props.Skew,
	}
}

func (b *Builder) cached(key previewKey) (*preview, bool) {
	if b.previews == nil {
		return nil, false
	}
	return b.previews.Get(key)
}

// forget drops the cached preview for key, if any.
func (b *Builder) forget(key previewKey) {
	if b.previews == nil {
		return
	}
	if b.previews.Delete(key) {
		Logger().Debug("styleatlas: dropped preview of closed font", "text", key.text)
	}
}

func (b *Builder) store(key previewKey, p *preview) {
	if b.previews == nil {
		return
	}
	b.previews.Set(key, p)
}

// CacheStats contains preview cache statistics.
type CacheStats = cache.Stats

// CacheStats returns statistics of the preview cache.
func (b *Builder) CacheStats() CacheStats {
	if b.previews == nil {
		return CacheStats{}
	}
	return b.previews.Stats()
}

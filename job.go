package styleatlas

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
)

// Texture is a GPU texture holding an uploaded atlas.
type Texture interface {
	// Destroy releases the GPU resources. It is safe to call more than once.
	Destroy()
}

// Uploader uploads a single-channel atlas to the GPU.
// Upload is called from Finalize, on the goroutine that owns the device.
type Uploader interface {
	Upload(pixels *image.Alpha) (Texture, error)
}

// StyleImagesData is the input of a StyleImagesJob.
type StyleImagesData struct {
	// Styles to preview, in display order. Must not be empty.
	Styles []Style

	// Result receives styles and images when the job is finalized.
	Result *StyleManager

	// Uploader turns the atlas into a texture. When nil the images are
	// stored without a texture.
	Uploader Uploader
}

// StyleImagesJob rebuilds the style preview atlas in the background.
//
// Process does the CPU work and may run on any goroutine. Finalize uploads
// the atlas and publishes the result; call it on the goroutine that owns
// the GPU device, after Process returned.
type StyleImagesJob struct {
	builder *Builder
	input   StyleImagesData
	images  *StyleImages
}

// NewStyleImagesJob validates input and creates a job using builder.
func NewStyleImagesJob(builder *Builder, input StyleImagesData) (*StyleImagesJob, error) {
	if builder == nil {
		return nil, ErrNilBuilder
	}
	if len(input.Styles) == 0 {
		return nil, ErrNoStyles
	}
	if input.Result == nil {
		return nil, ErrNilResult
	}
	return &StyleImagesJob{builder: builder, input: input}, nil
}

// Process renders and packs the previews.
func (j *StyleImagesJob) Process(ctx context.Context) error {
	images, err := j.builder.Build(ctx, j.input.Styles)
	if err != nil {
		return err
	}
	j.images = images
	return nil
}

// Finalize uploads the atlas and stores the result.
//
// When canceled is true or err is non-nil nothing is uploaded or stored and
// Finalize returns nil: the job's outcome was already decided by Process.
func (j *StyleImagesJob) Finalize(canceled bool, err error) error {
	log := Logger()
	if canceled || err != nil {
		log.Debug("styleatlas: style images job dropped", "canceled", canceled, "err", err)
		return nil
	}
	if j.images == nil {
		return ErrNotProcessed
	}

	var tex Texture
	if j.input.Uploader != nil && j.images.Width > 0 && j.images.Height > 0 {
		tex, err = j.input.Uploader.Upload(j.images.Pixels)
		if err != nil {
			return fmt.Errorf("styleatlas: upload atlas: %w", err)
		}
		log.Info("styleatlas: atlas uploaded",
			"width", j.images.Width, "height", j.images.Height, "styles", len(j.images.Images))
	}
	for i := range j.images.Images {
		j.images.Images[i].Texture = tex
	}

	j.input.Result.set(j.input.Styles, j.images, tex)
	return nil
}

// Images returns the build result, or nil before Process succeeded.
func (j *StyleImagesJob) Images() *StyleImages {
	return j.images
}

// Run executes job.Process followed by job.Finalize on the calling
// goroutine, reporting cancellation when ctx ended the processing.
func Run(ctx context.Context, job *StyleImagesJob) error {
	err := job.Process(ctx)
	canceled := errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
	if ferr := job.Finalize(canceled, err); ferr != nil {
		return ferr
	}
	return err
}

// StyleManager holds the latest published style previews.
// It owns the atlas texture and destroys the previous one on every update.
//
// StyleManager is safe for concurrent use.
type StyleManager struct {
	mu      sync.RWMutex
	styles  []Style
	images  *StyleImages
	texture Texture
}

// NewStyleManager creates an empty StyleManager.
func NewStyleManager() *StyleManager {
	return &StyleManager{}
}

func (m *StyleManager) set(styles []Style, images *StyleImages, tex Texture) {
	m.mu.Lock()
	old := m.texture
	m.styles = styles
	m.images = images
	m.texture = tex
	m.mu.Unlock()

	if old != nil && old != tex {
		old.Destroy()
	}
}

// Styles returns the styles of the latest result.
func (m *StyleManager) Styles() []Style {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Style(nil), m.styles...)
}

// Images returns a copy of the latest preview descriptions.
func (m *StyleManager) Images() []StyleImage {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.images == nil {
		return nil
	}
	return append([]StyleImage(nil), m.images.Images...)
}

// Atlas returns the latest atlas pixels, or nil before the first result.
func (m *StyleManager) Atlas() *image.Alpha {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.images == nil {
		return nil
	}
	return m.images.Pixels
}

// Texture returns the latest atlas texture, or nil.
func (m *StyleManager) Texture() Texture {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.texture
}

// Close destroys the current texture and clears the results.
func (m *StyleManager) Close() {
	m.mu.Lock()
	tex := m.texture
	m.styles, m.images, m.texture = nil, nil, nil
	m.mu.Unlock()

	if tex != nil {
		tex.Destroy()
	}
}

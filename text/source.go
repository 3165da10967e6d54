package text

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// FontSource represents a loaded font file.
// FontSource is heavyweight and should be shared by every style that uses
// the same font.
//
// FontSource is safe for concurrent use.
// FontSource must not be copied after creation (enforced by copyCheck).
type FontSource struct {
	// addr is used for copy protection (Ebitengine pattern).
	// It must point to the FontSource itself.
	addr *FontSource

	mu     sync.RWMutex
	data   []byte
	font   *sfnt.Font
	name   string
	closed bool
}

// NewFontSource creates a FontSource from font data (TTF or OTF).
// The data slice is copied internally and can be reused after this call.
func NewFontSource(data []byte) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	f, err := opentype.Parse(dataCopy)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}

	s := &FontSource{
		data: dataCopy,
		font: f,
	}
	s.addr = s
	s.name = extractFontName(f)

	return s, nil
}

// NewFontSourceFromFile loads a FontSource from a font file path.
func NewFontSourceFromFile(path string) (*FontSource, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: failed to read font file: %w", err)
	}

	return NewFontSource(data)
}

// Name returns the font family name.
func (s *FontSource) Name() string {
	s.copyCheck()
	return s.name
}

// UnitsPerEm returns the font design units per em, or 0 after Close.
func (s *FontSource) UnitsPerEm() int {
	f, err := s.sfnt()
	if err != nil {
		return 0
	}
	return int(f.UnitsPerEm())
}

// Close releases the font data. Shapes fails with ErrSourceClosed afterwards.
func (s *FontSource) Close() error {
	s.copyCheck()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = nil
	s.font = nil
	s.closed = true
	return nil
}

// IsClosed reports whether Close has been called.
func (s *FontSource) IsClosed() bool {
	s.copyCheck()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// sfnt returns the parsed font. The returned *sfnt.Font is safe for
// concurrent use as long as each goroutine has its own sfnt.Buffer.
func (s *FontSource) sfnt() (*sfnt.Font, error) {
	if s == nil {
		return nil, ErrNilSource
	}
	s.copyCheck()

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrSourceClosed
	}
	return s.font, nil
}

// bytes returns the raw font data for parsers that need it.
func (s *FontSource) bytes() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// copyCheck panics if FontSource was copied by value.
func (s *FontSource) copyCheck() {
	if s.addr != s {
		panic("text: FontSource must not be copied by value")
	}
}

// extractFontName returns the family name, falling back to the full name.
func extractFontName(f *sfnt.Font) string {
	if name, err := f.Name(nil, sfnt.NameIDFamily); err == nil && name != "" {
		return name
	}
	if name, err := f.Name(nil, sfnt.NameIDFull); err == nil && name != "" {
		return name
	}
	return "Unknown Font"
}

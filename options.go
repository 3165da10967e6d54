package styleatlas

import "math"

// Config holds Builder configuration.
type Config struct {
	// MaxWidth is the widest a preview may be, in pixels. Wider previews
	// are cropped on the right, not scaled. Must be greater than 1.
	// Default: 512
	MaxWidth int

	// DPI is the dots per inch of the display the previews are shown on.
	// Sizes in millimetres are converted with DPI / 25.4 pixels per mm.
	// Default: 96
	DPI float64

	// Gamma remaps anti-aliased coverage. 1 keeps it linear.
	// Default: 1
	Gamma float64

	// Workers is the number of goroutines rasterizing previews.
	// 0 means GOMAXPROCS.
	Workers int

	// CacheSize is how many rendered previews are kept between builds.
	// Default: 64
	CacheSize int
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		MaxWidth:  512,
		DPI:       96,
		Gamma:     1,
		Workers:   0,
		CacheSize: 64,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.MaxWidth <= 1 {
		return &ConfigError{Field: "MaxWidth", Reason: "must be greater than 1"}
	}
	if c.MaxWidth > 16384 {
		return &ConfigError{Field: "MaxWidth", Reason: "must be at most 16384"}
	}
	if !(c.DPI > 0) || math.IsInf(c.DPI, 0) {
		return &ConfigError{Field: "DPI", Reason: "must be positive"}
	}
	if !(c.Gamma > 0) || math.IsInf(c.Gamma, 0) {
		return &ConfigError{Field: "Gamma", Reason: "must be positive"}
	}
	if c.Workers < 0 {
		return &ConfigError{Field: "Workers", Reason: "must be non-negative"}
	}
	if c.CacheSize < 0 {
		return &ConfigError{Field: "CacheSize", Reason: "must be non-negative"}
	}
	return nil
}

// PixelsPerMM returns the conversion factor from millimetres to pixels.
func (c *Config) PixelsPerMM() float64 {
	return c.DPI / 25.4
}

// Option configures a Builder.
//
// Example:
//
//	b, err := styleatlas.NewBuilder(
//	    styleatlas.WithMaxWidth(300),
//	    styleatlas.WithDPI(144),
//	)
type Option func(*Config)

// WithMaxWidth sets the preview width limit in pixels.
func WithMaxWidth(px int) Option {
	return func(c *Config) {
		c.MaxWidth = px
	}
}

// WithDPI sets the display density used to size previews.
func WithDPI(dpi float64) Option {
	return func(c *Config) {
		c.DPI = dpi
	}
}

// WithGamma sets the coverage gamma.
func WithGamma(gamma float64) Option {
	return func(c *Config) {
		c.Gamma = gamma
	}
}

// WithWorkers sets the number of rasterization goroutines.
func WithWorkers(n int) Option {
	return func(c *Config) {
		c.Workers = n
	}
}

// WithCacheSize sets how many previews are cached. Zero disables caching.
func WithCacheSize(n int) Option {
	return func(c *Config) {
		c.CacheSize = n
	}
}

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(c *Config) {
		*c = cfg
	}
}

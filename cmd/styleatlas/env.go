package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables providing flag defaults.
const (
	envFont     = "STYLEATLAS_FONT"
	envDPI      = "STYLEATLAS_DPI"
	envMaxWidth = "STYLEATLAS_MAX_WIDTH"
)

// loadEnv loads .env.local and .env from dir. Variables already set are
// kept, so .env.local wins over .env and the process environment wins over
// both. Missing files are skipped.
func loadEnv(dir string) ([]string, error) {
	var loaded []string
	for _, name := range []string{".env.local", ".env"} {
		path := filepath.Join(dir, name)
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return loaded, err
		}
		loaded = append(loaded, path)
	}
	return loaded, nil
}

// defaults are the flag defaults after applying the environment.
type defaults struct {
	font     string
	dpi      float64
	maxWidth int
}

func envDefaults() (defaults, error) {
	d := defaults{font: os.Getenv(envFont), dpi: 96, maxWidth: 512}

	if v := os.Getenv(envDPI); v != "" {
		dpi, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return d, &envError{key: envDPI, err: err}
		}
		d.dpi = dpi
	}
	if v := os.Getenv(envMaxWidth); v != "" {
		w, err := strconv.Atoi(v)
		if err != nil {
			return d, &envError{key: envMaxWidth, err: err}
		}
		d.maxWidth = w
	}
	return d, nil
}

type envError struct {
	key string
	err error
}

func (e *envError) Error() string {
	return "styleatlas: invalid " + e.key + ": " + e.err.Error()
}

func (e *envError) Unwrap() error {
	return e.err
}

package styleatlas

import (
	"errors"
	"strconv"
)

// Sentinel errors for styleatlas package.
var (
	// ErrNoStyles is returned when a job is created without styles.
	ErrNoStyles = errors.New("styleatlas: no styles to render")

	// ErrNilResult is returned when a job has no result store.
	ErrNilResult = errors.New("styleatlas: result store is nil")

	// ErrNilBuilder is returned when a job is created without a builder.
	ErrNilBuilder = errors.New("styleatlas: builder is nil")

	// ErrNilFont is returned when a style has no font source.
	ErrNilFont = errors.New("styleatlas: style has no font")

	// ErrNotProcessed is returned by Finalize when Process has not
	// completed successfully.
	ErrNotProcessed = errors.New("styleatlas: job has not been processed")
)

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "styleatlas: invalid config." + e.Field + ": " + e.Reason
}

// StyleError reports which style failed to render.
type StyleError struct {
	Index int
	Name  string
	Err   error
}

func (e *StyleError) Error() string {
	return "styleatlas: style " + strconv.Quote(e.Name) + ": " + e.Err.Error()
}

func (e *StyleError) Unwrap() error {
	return e.Err
}

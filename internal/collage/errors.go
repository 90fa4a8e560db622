package collage

import (
	"errors"
	"fmt"

	"github.com/handiism/album-grid/internal/model"
)

var (
	// ErrEmptyInput is returned when no locators remain after filtering.
	ErrEmptyInput = errors.New("no album art found")

	// ErrDegenerateGrid is returned when the computed grid dimension is 0,
	// which happens when no image could be fetched and decoded.
	ErrDegenerateGrid = errors.New("no usable artwork to fill a grid")

	// ErrUnknownPattern is returned by ParsePattern for unrecognized names.
	ErrUnknownPattern = errors.New("unknown pattern")

	// ErrUnknownKeyMethod is returned by ParseKeyMethod for unrecognized names.
	ErrUnknownKeyMethod = errors.New("unknown color key method")

	// ErrUnknownPolicy is returned by ParseDimensionPolicy for unrecognized names.
	ErrUnknownPolicy = errors.New("unknown dimension policy")
)

// FetchError reports that one locator could not be fetched or decoded.
//
// A FetchError never fails a run on its own: the item is dropped and the
// remaining images are laid out.
type FetchError struct {
	Locator model.Locator
	Err     error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Locator, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsNoArtwork reports whether err means no grid could be produced at all.
// Callers report both ErrEmptyInput and ErrDegenerateGrid as "no usable artwork".
func IsNoArtwork(err error) bool {
	return errors.Is(err, ErrEmptyInput) || errors.Is(err, ErrDegenerateGrid)
}

package collage

import (
	"math"

	"github.com/handiism/album-grid/internal/model"
)

// MaxCovers bounds how many locators a single run will ever fetch.
const MaxCovers = 300

// Dimension returns the side length of the largest square grid that n
// images can fill completely, floor(sqrt(n)). It is 0 for n <= 0.
func Dimension(n int) int {
	if n <= 0 {
		return 0
	}
	d := int(math.Sqrt(float64(n)))
	// Correct float rounding at perfect-square boundaries.
	for d*d > n {
		d--
	}
	for (d+1)*(d+1) <= n {
		d++
	}
	return d
}

// Truncate returns the first n items (all of them when fewer than n).
func Truncate[T any](items []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if len(items) > n {
		return items[:n]
	}
	return items
}

// Select bounds locators to at most max entries and computes the grid
// dimension that count can fill. A max of 0 or less means MaxCovers.
//
// Returns ErrEmptyInput when nothing is left to select.
func Select(locators []model.Locator, max int) ([]model.Locator, int, error) {
	if max <= 0 {
		max = MaxCovers
	}
	selected := Truncate(locators, max)
	if len(selected) == 0 {
		return nil, 0, ErrEmptyInput
	}
	return selected, Dimension(len(selected)), nil
}

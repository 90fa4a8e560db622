package collage

import (
	"cmp"
	"fmt"
	"image"
	"slices"
	"strings"

	"github.com/handiism/album-grid/internal/model"
)

// DimensionPolicy decides which count the grid dimension is computed from.
type DimensionPolicy int

const (
	// PolicyPostFetch fetches every selected locator and sizes the grid from
	// the number of images that decoded successfully. Failed fetches never
	// leave holes in the grid.
	PolicyPostFetch DimensionPolicy = iota
	// PolicyPreFetch sizes the grid from the selected locator count and only
	// fetches the first dimension² locators. Failed fetches leave black cells.
	PolicyPreFetch
)

// String returns the configuration name of the policy.
func (p DimensionPolicy) String() string {
	switch p {
	case PolicyPostFetch:
		return "post-fetch"
	case PolicyPreFetch:
		return "pre-fetch"
	default:
		return fmt.Sprintf("DimensionPolicy(%d)", int(p))
	}
}

// ParseDimensionPolicy parses a policy name. The empty string selects
// PolicyPostFetch.
func ParseDimensionPolicy(s string) (DimensionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "post-fetch", "post":
		return PolicyPostFetch, nil
	case "pre-fetch", "pre":
		return PolicyPreFetch, nil
	default:
		return PolicyPostFetch, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// Options configures one collage run.
type Options struct {
	Pattern          Pattern
	CellSize         int
	MaxCovers        int
	RemoveDuplicates bool
	KeyMethod        KeyMethod
	Policy           DimensionPolicy
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Pattern:   PatternRowMajor,
		CellSize:  DefaultCellSize,
		MaxCovers: MaxCovers,
		KeyMethod: KeyAverage,
		Policy:    PolicyPostFetch,
	}
}

func (o Options) normalized() Options {
	if o.CellSize <= 0 {
		o.CellSize = DefaultCellSize
	}
	if o.MaxCovers <= 0 || o.MaxCovers > MaxCovers {
		o.MaxCovers = MaxCovers
	}
	return o
}

// Plan is the fetch list for one run, produced by Prepare and consumed by
// Assemble once the images have been fetched.
type Plan struct {
	// Locators is the ordered list to fetch. Tile.Index refers to it.
	Locators []model.Locator
	// Requested is the locator count after deduplication and the MaxCovers cap.
	Requested int
	// Duplicates is the number of locators removed by deduplication.
	Duplicates int
	// Dimension is the grid dimension computed from Requested. Under
	// PolicyPostFetch the final dimension may be smaller.
	Dimension int

	opts Options
}

// Options returns the normalized options of the plan.
func (p *Plan) Options() Options {
	return p.opts
}

// Prepare dedupes (when enabled) and selects the locators to fetch.
//
// Returns ErrEmptyInput if no locators remain.
func Prepare(locators []model.Locator, opts Options) (*Plan, error) {
	opts = opts.normalized()

	items := locators
	if opts.RemoveDuplicates {
		items = Dedupe(items)
	}
	selected, dim, err := Select(items, opts.MaxCovers)
	if err != nil {
		return nil, err
	}

	fetch := selected
	if opts.Policy == PolicyPreFetch {
		fetch = Truncate(selected, dim*dim)
	}

	return &Plan{
		Locators:   slices.Clone(fetch),
		Requested:  len(selected),
		Duplicates: len(locators) - len(items),
		Dimension:  dim,
		opts:       opts,
	}, nil
}

// PlacedCell records which cover ended up in which cell.
type PlacedCell struct {
	Cell    CellAddress
	Locator model.Locator
	Key     ColorKey
}

// Result is a finished collage.
type Result struct {
	Canvas    *Canvas
	Pattern   Pattern
	Dimension int
	// Requested is the number of locators selected for the run.
	Requested int
	// Fetched is the number of images that were fetched and decoded.
	Fetched int
	// Failed is the number of planned locators that could not be fetched or decoded.
	Failed int
	// Placed is the number of cells painted.
	Placed int
	Cells  []PlacedCell
}

// Image returns the rendered raster.
func (r *Result) Image() image.Image {
	return r.Canvas.Image()
}

// Side returns the canvas side length in pixels.
func (r *Result) Side() int {
	return r.Canvas.Grid().Side()
}

// Assemble sorts the fetched tiles by hue, lays them out with the plan's
// pattern and paints them onto a new canvas.
//
// Tiles may be passed in any order; they are first restored to fetch order
// so the result does not depend on which fetch finished first. Returns
// ErrDegenerateGrid when the tiles cannot fill even a 1x1 grid.
func (p *Plan) Assemble(tiles []Tile) (*Result, error) {
	ordered := slices.Clone(tiles)
	slices.SortStableFunc(ordered, func(a, b Tile) int {
		return cmp.Compare(a.Index, b.Index)
	})

	dim := p.Dimension
	if p.opts.Policy == PolicyPostFetch {
		dim = Dimension(len(ordered))
	}
	if dim == 0 || len(ordered) == 0 {
		return nil, ErrDegenerateGrid
	}

	usable := Truncate(ordered, dim*dim)
	sorted := SortByHue(usable)

	images := make([]image.Image, len(sorted))
	for i, t := range sorted {
		images[i] = t.Image
	}
	grid := NewGridSpec(dim, p.opts.CellSize)
	canvas := p.opts.Pattern.Render(images, grid)

	placements := p.opts.Pattern.Place(len(sorted), dim)
	cells := make([]PlacedCell, 0, len(placements))
	for _, pl := range placements {
		t := sorted[pl.Image]
		cells = append(cells, PlacedCell{Cell: pl.Cell, Locator: t.Locator, Key: t.Key})
	}

	return &Result{
		Canvas:    canvas,
		Pattern:   p.opts.Pattern,
		Dimension: dim,
		Requested: p.Requested,
		Fetched:   len(ordered),
		Failed:    len(p.Locators) - len(ordered),
		Placed:    canvas.Painted(),
		Cells:     cells,
	}, nil
}

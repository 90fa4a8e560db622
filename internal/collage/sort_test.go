package collage

import (
	"slices"
	"testing"

	"github.com/handiism/album-grid/internal/model"
)

func TestSortByHue(t *testing.T) {
	tiles := []Tile{
		{Locator: "blue", Key: ColorKey{Hue: 2.0 / 3}},
		{Locator: "red-1", Key: ColorKey{Hue: 0}},
		{Locator: "green", Key: ColorKey{Hue: 1.0 / 3}},
		{Locator: "red-2", Key: ColorKey{Hue: 0}},
		{Locator: "gray", Key: ColorKey{Hue: 0}},
	}

	got := SortByHue(tiles)
	want := []model.Locator{"red-1", "red-2", "gray", "green", "blue"}
	if !slices.Equal(tileLocators(got), want) {
		t.Errorf("SortByHue() = %v, want %v", tileLocators(got), want)
	}

	if tiles[0].Locator != "blue" {
		t.Error("input slice was reordered")
	}

	again := SortByHue(got)
	if !slices.Equal(tileLocators(again), want) {
		t.Errorf("sorting twice = %v, want %v", tileLocators(again), want)
	}
}

func TestNewTile(t *testing.T) {
	tile := NewTile(3, "cover", solid(green, 640, 480), KeyAverage, 50)

	if tile.Index != 3 || tile.Locator != "cover" {
		t.Errorf("unexpected tile identity: %d %s", tile.Index, tile.Locator)
	}
	if b := tile.Image.Bounds(); b.Dx() != 50 || b.Dy() != 50 {
		t.Errorf("tile image is %dx%d, want 50x50", b.Dx(), b.Dy())
	}
	if !near(tile.Key.Hue, 1.0/3) {
		t.Errorf("hue = %v, want 1/3", tile.Key.Hue)
	}
}

func tileLocators(tiles []Tile) []model.Locator {
	out := make([]model.Locator, len(tiles))
	for i, t := range tiles {
		out[i] = t.Locator
	}
	return out
}

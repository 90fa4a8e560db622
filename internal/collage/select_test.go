package collage

import (
	"errors"
	"testing"
)

func TestDimension(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{-1, 0},
		{0, 0},
		{1, 1},
		{3, 1},
		{4, 2},
		{8, 2},
		{9, 3},
		{99, 9},
		{100, 10},
		{288, 16},
		{289, 17},
		{300, 17},
	}

	for _, tt := range tests {
		if got := Dimension(tt.n); got != tt.want {
			t.Errorf("Dimension(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestDimension_Floor(t *testing.T) {
	for n := 0; n <= 10000; n++ {
		d := Dimension(n)
		if d*d > n || (d+1)*(d+1) <= n {
			t.Fatalf("Dimension(%d) = %d is not floor(sqrt(n))", n, d)
		}
	}
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name      string
		count     int
		max       int
		wantLen   int
		wantDim   int
		wantEmpty bool
	}{
		{name: "empty input", count: 0, max: 0, wantEmpty: true},
		{name: "fewer than max", count: 10, max: 0, wantLen: 10, wantDim: 3},
		{name: "capped at default max", count: 350, max: 0, wantLen: MaxCovers, wantDim: 17},
		{name: "custom max", count: 50, max: 5, wantLen: 5, wantDim: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := locators(tt.count)
			got, dim, err := Select(input, tt.max)
			if tt.wantEmpty {
				if !errors.Is(err, ErrEmptyInput) {
					t.Fatalf("expected ErrEmptyInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != tt.wantLen {
				t.Errorf("got %d locators, want %d", len(got), tt.wantLen)
			}
			if dim != tt.wantDim {
				t.Errorf("dimension = %d, want %d", dim, tt.wantDim)
			}
			for i := range got {
				if got[i] != input[i] {
					t.Fatalf("locator %d = %s, want %s", i, got[i], input[i])
				}
			}
		})
	}
}

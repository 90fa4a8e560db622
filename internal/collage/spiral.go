package collage

type direction int

const (
	dirRight direction = iota
	dirDown
	dirLeft
	dirUp
)

var dirSteps = [...]CellAddress{
	dirRight: {Row: 0, Col: 1},
	dirDown:  {Row: 1, Col: 0},
	dirLeft:  {Row: 0, Col: -1},
	dirUp:    {Row: -1, Col: 0},
}

// spiralWalk yields the cells of a square grid in inward clockwise spiral
// order starting at (0,0). It is finite and cannot be restarted.
type spiralWalk struct {
	pos       CellAddress
	dir       direction
	top       int
	right     int
	bottom    int
	left      int
	remaining int
}

func newSpiralWalk(dimension int) *spiralWalk {
	return &spiralWalk{
		dir:       dirRight,
		right:     dimension - 1,
		bottom:    dimension - 1,
		remaining: max(dimension, 0) * max(dimension, 0),
	}
}

// Next returns the next cell, or false once every cell has been visited.
func (w *spiralWalk) Next() (CellAddress, bool) {
	if w.remaining <= 0 {
		return CellAddress{}, false
	}
	w.remaining--

	cur := w.pos
	next := cur.add(dirSteps[w.dir])
	if !w.inBounds(next) {
		// Tighten the side belonging to the direction being left.
		switch w.dir {
		case dirRight:
			w.top++
		case dirDown:
			w.right--
		case dirLeft:
			w.bottom--
		case dirUp:
			w.left++
		}
		w.dir = (w.dir + 1) % 4
		next = cur.add(dirSteps[w.dir])
	}
	w.pos = next
	return cur, true
}

func (w *spiralWalk) inBounds(c CellAddress) bool {
	return c.Row >= w.top && c.Row <= w.bottom && c.Col >= w.left && c.Col <= w.right
}

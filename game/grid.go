package game

// Grid is a boolean per board cell, indexed (x, y) with (0,0) bottom-left.
// It backs both the wall layout and the food layer.
type Grid struct {
	Width  int
	Height int
	cells  [][]bool
}

// NewGrid returns an all-false grid of the given dimensions.
func NewGrid(width, height int) *Grid {
	cells := make([][]bool, width)
	for x := range cells {
		cells[x] = make([]bool, height)
	}
	return &Grid{Width: width, Height: height, cells: cells}
}

func (g *Grid) At(x, y int) bool {
	return g.cells[x][y]
}

func (g *Grid) Set(x, y int, v bool) {
	g.cells[x][y] = v
}

// Count returns the number of true cells.
func (g *Grid) Count() int {
	n := 0
	for x := 0; x < g.Width; x++ {
		for y := 0; y < g.Height; y++ {
			if g.cells[x][y] {
				n++
			}
		}
	}
	return n
}

// Clone performs a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	out := NewGrid(g.Width, g.Height)
	for x := 0; x < g.Width; x++ {
		copy(out.cells[x], g.cells[x])
	}
	return out
}

// HalfGrid keeps only the cells on one team's side of the board: columns
// [0, width/2) for red, [width/2, width) for blue.
func (g *Grid) HalfGrid(red bool) *Grid {
	halfway := g.Width / 2
	out := NewGrid(g.Width, g.Height)
	lo, hi := 0, halfway
	if !red {
		lo, hi = halfway, g.Width
	}
	for x := lo; x < hi; x++ {
		for y := 0; y < g.Height; y++ {
			if g.cells[x][y] {
				out.cells[x][y] = true
			}
		}
	}
	return out
}

// halfPoints keeps the points on one team's side. The split is deliberately
// asymmetric to the grid split: the midline column itself counts as red.
func halfPoints(points []Point, width int, red bool) []Point {
	halfway := width / 2
	var out []Point
	for _, p := range points {
		if red && p.X <= halfway {
			out = append(out, p)
		} else if !red && p.X > halfway {
			out = append(out, p)
		}
	}
	return out
}

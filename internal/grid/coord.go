// Package grid implements the shared spatial primitives used by every
// other Core A package and by the tile model: coordinates, the
// row-major GridMap container, rectangles, and the direction/adjacency/
// distance vocabulary.
package grid

import "math"

// Coord is a signed grid coordinate. Origin is top-left; +X east, +Y
// south.
type Coord struct {
	X, Y int
}

func C(x, y int) Coord { return Coord{X: x, Y: y} }

func (c Coord) Add(o Coord) Coord { return Coord{c.X + o.X, c.Y + o.Y} }
func (c Coord) Sub(o Coord) Coord { return Coord{c.X - o.X, c.Y - o.Y} }

// InBounds reports whether c lies in [0,w) x [0,h).
func (c Coord) InBounds(w, h int) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < w && c.Y < h
}

// Index returns the row-major index of c in a grid of width w.
// Index(Reverse(i, w), w) == i for all i, w>0.
func Index(x, y, w int) int { return x + y*w }

// ReverseIndex is the inverse of Index.
func ReverseIndex(i, w int) Coord {
	return Coord{X: i % w, Y: i / w}
}

// SqDist returns the squared euclidean distance between two coords,
// used as the A* tie-break "magnitude" term.
func SqDist(a, b Coord) int {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// EuclideanDist returns the true (float) euclidean distance.
func EuclideanDist(a, b Coord) float64 {
	return math.Sqrt(float64(SqDist(a, b)))
}

// ChebyshevDist returns max(|dx|,|dy|).
func ChebyshevDist(a, b Coord) int {
	dx := absInt(a.X - b.X)
	dy := absInt(a.Y - b.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// ManhattanDist returns |dx|+|dy|.
func ManhattanDist(a, b Coord) int {
	return absInt(a.X-b.X) + absInt(a.Y-b.Y)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

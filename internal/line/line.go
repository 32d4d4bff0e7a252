// Package line implements two rasterizers: a classic
// integer-error-term Bresenham and a fixed-point DDA. Both share the
// signature (start, end) -> []Coord, include both endpoints, and never
// emit duplicate points.
package line

import "github.com/bloeys/tessera/internal/grid"

// Bresenham rasterizes the line from a to b, inclusive of both
// endpoints, using the classic integer error-term algorithm.
// Orientation-independent: Bresenham(a,b) and Bresenham(b,a) contain
// the same set of points in reverse order.
func Bresenham(a, b grid.Coord) []grid.Coord {
	dx := absInt(b.X - a.X)
	dy := -absInt(b.Y - a.Y)
	sx := 1
	if a.X >= b.X {
		sx = -1
	}
	sy := 1
	if a.Y >= b.Y {
		sy = -1
	}
	err := dx + dy

	out := make([]grid.Coord, 0, maxInt(absInt(dx), absInt(dy))+1)
	x, y := a.X, a.Y
	for {
		out = append(out, grid.Coord{X: x, Y: y})
		if x == b.X && y == b.Y {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
	return out
}

// dda fixed-point scale: 16 fractional bits, with a tie-breaking bias
// added before quantization.
const (
	ddaShift = 16
	ddaBias  = 0xBFFF
)

// DDA rasterizes the line from a to b, inclusive of both endpoints,
// using a fixed-point digital differential analyzer. Pure horizontal,
// vertical, and single-point inputs are handled directly; the general
// case selects one of 8 octants from the signs of dx,dy and whether
// |dy|>|dx|.
func DDA(a, b grid.Coord) []grid.Coord {
	dx := b.X - a.X
	dy := b.Y - a.Y

	if dx == 0 && dy == 0 {
		return []grid.Coord{a}
	}
	if dx == 0 {
		return vertical(a, b)
	}
	if dy == 0 {
		return horizontal(a, b)
	}

	steep := absInt(dy) > absInt(dx)
	if steep {
		return ddaSteep(a, b, dx, dy)
	}
	return ddaShallow(a, b, dx, dy)
}

func vertical(a, b grid.Coord) []grid.Coord {
	step := 1
	if b.Y < a.Y {
		step = -1
	}
	out := make([]grid.Coord, 0, absInt(b.Y-a.Y)+1)
	for y := a.Y; ; y += step {
		out = append(out, grid.Coord{X: a.X, Y: y})
		if y == b.Y {
			break
		}
	}
	return out
}

func horizontal(a, b grid.Coord) []grid.Coord {
	step := 1
	if b.X < a.X {
		step = -1
	}
	out := make([]grid.Coord, 0, absInt(b.X-a.X)+1)
	for x := a.X; ; x += step {
		out = append(out, grid.Coord{X: x, Y: a.Y})
		if x == b.X {
			break
		}
	}
	return out
}

// ddaShallow walks x in unit steps, accumulating fixed-point y.
func ddaShallow(a, b grid.Coord, dx, dy int) []grid.Coord {
	sx := 1
	if dx < 0 {
		sx = -1
	}
	steps := absInt(dx)
	slope := fixedDiv(dy, steps)

	out := make([]grid.Coord, 0, steps+1)
	yAcc := fixedFromInt(a.Y) + ddaBias
	x := a.X
	for i := 0; i <= steps; i++ {
		out = append(out, grid.Coord{X: x, Y: yAcc >> ddaShift})
		x += sx
		yAcc += slope
	}
	return out
}

// ddaSteep walks y in unit steps, accumulating fixed-point x.
func ddaSteep(a, b grid.Coord, dx, dy int) []grid.Coord {
	sy := 1
	if dy < 0 {
		sy = -1
	}
	steps := absInt(dy)
	slope := fixedDiv(dx, steps)

	out := make([]grid.Coord, 0, steps+1)
	xAcc := fixedFromInt(a.X) + ddaBias
	y := a.Y
	for i := 0; i <= steps; i++ {
		out = append(out, grid.Coord{X: xAcc >> ddaShift, Y: y})
		y += sy
		xAcc += slope
	}
	return out
}

func fixedFromInt(x int) int { return x << ddaShift }
func fixedDiv(num, den int) int {
	return (num << ddaShift) / den
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

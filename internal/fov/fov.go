// Package fov implements recursive shadowcast field-of-view over an
// opacity grid.
package fov

import "github.com/bloeys/tessera/internal/grid"

// Opaque reports whether a cell blocks sight.
type Opaque func(c grid.Coord) bool

// Result is the output of a Calculate call: a brightness grid in
// [0,1] covering exactly the queried bounding box, and the set of
// coords that were actually lit.
type Result struct {
	Light   *grid.GridMap[float64]
	Visible map[grid.Coord]bool
}

// octant multiplies a (col, row) pair in octant-local space into
// world-space deltas. col runs along the octant's minor axis, row
// along its major axis (the one the scan steps outward on).
type octant struct {
	xx, xy, yx, yy int
}

var octants = [8]octant{
	{1, 0, 0, 1},
	{0, 1, 1, 0},
	{0, -1, 1, 0},
	{-1, 0, 0, 1},
	{-1, 0, 0, -1},
	{0, -1, -1, 0},
	{0, 1, -1, 0},
	{1, 0, 0, -1},
}

// Calculate lights w,h grid cells visible from origin within radius r
// (Chebyshev bound on the scan, refined per-cell by dist), returning a
// GridMap sized to the full w,h grid. Origin is always brightness 1.0.
func Calculate(opaque Opaque, origin grid.Coord, r int, dist grid.Distance, w, h int) *Result {
	light := grid.NewGridMap[float64](w, h)
	visible := make(map[grid.Coord]bool, r*r*2)

	if origin.InBounds(w, h) {
		light.SetC(origin, 1.0)
		visible[origin] = true
	}

	decay := 1.0 / float64(r+1)

	for _, oct := range octants {
		castLight(light, visible, opaque, origin, r, dist, decay, 1, 1.0, 0.0, oct, w, h)
	}

	return &Result{Light: light, Visible: visible}
}

func castLight(
	light *grid.GridMap[float64],
	visible map[grid.Coord]bool,
	opaque Opaque,
	origin grid.Coord,
	r int,
	dist grid.Distance,
	decay float64,
	row int,
	startSlope, endSlope float64,
	oct octant,
	w, h int,
) {
	if startSlope < endSlope {
		return
	}

	var nextStart float64
	blocked := false

	for dy := row; dy <= r; dy++ {
		if blocked {
			break
		}

		dx := -dy
		for ; dx <= 0; dx++ {
			leftSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rightSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if rightSlope > startSlope {
				continue
			}
			if leftSlope < endSlope {
				break
			}

			wx := dx*oct.xx + dy*oct.xy
			wy := dx*oct.yx + dy*oct.yy
			cell := grid.Coord{X: origin.X + wx, Y: origin.Y + wy}

			delta := dist.Slope(wx, wy)
			withinRadius := int(delta) <= r

			if cell.InBounds(w, h) && withinRadius {
				brightness := 1 - decay*delta
				if brightness < 0 {
					brightness = 0
				}
				if brightness > current(light, cell) {
					light.SetC(cell, brightness)
				}
				visible[cell] = true
			}

			isOpaque := !cell.InBounds(w, h) || opaque(cell)
			if blocked {
				if isOpaque {
					nextStart = rightSlope
					continue
				}
				blocked = false
				startSlope = nextStart
			} else if isOpaque && dy < r {
				blocked = true
				castLight(light, visible, opaque, origin, r, dist, decay, dy+1, startSlope, leftSlope, oct, w, h)
				nextStart = rightSlope
			}
		}
	}
}

func current(light *grid.GridMap[float64], c grid.Coord) float64 {
	if !c.InBounds(light.Width(), light.Height()) {
		return 0
	}
	return light.GetC(c)
}

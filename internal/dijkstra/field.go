// Package dijkstra implements the multi-goal scalar flood field and
// its flee-field derivative: gradient descent over the
// output field traces a path to (or away from) the nearest goal
// without ever running a full pathfinder per query.
package dijkstra

import "github.com/bloeys/tessera/internal/grid"

// State is the per-cell input to a flood: whether a cell can be
// crossed at all, and whether it's one of the (any number of) goals.
type State int

const (
	Blocked State = iota
	Passable
	Goal
)

const (
	// BlockedWeight marks a blocked cell in the output field. Blocked
	// cells are never relaxed and never appear in a gradient descent.
	BlockedWeight = -1.0
	// MaxWeight is both the initial value every passable cell starts
	// at and the value a passable cell unreachable from any goal keeps
	// forever.
	MaxWeight = 1 << 30
	// FleeMultiplier is the (intentionally configurable, see open
	// question) constant the flee field scales goal-seek weights by
	// before re-relaxing.
	FleeMultiplier = -1.6
)

// Calculate floods states outward from every Goal cell using dist's
// canonical adjacency, producing a field where weight increases with
// distance from the nearest goal. Ties when relaxing are broken by the
// row-major scan order of the edge set; this never
// affects the converged weight values, only the order they're reached
// in, since relaxation is iterated to a fixed point.
func Calculate(states *grid.GridMap[State], dist grid.Distance) *grid.GridMap[float64] {
	w, h := states.Width(), states.Height()
	weights := grid.NewGridMap[float64](w, h)

	edge := make([]grid.Coord, 0, 16)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			switch states.GetXY(x, y) {
			case Blocked:
				weights.SetXY(x, y, BlockedWeight)
			case Goal:
				weights.SetXY(x, y, 0)
				edge = append(edge, grid.C(x, y))
			default:
				weights.SetXY(x, y, MaxWeight)
			}
		}
	}

	relax(weights, states, dist, edge)
	return weights
}

// DeriveFlee scales goalWeights by multiplier and re-relaxes the
// result, producing a field whose gradient points away from the
// original goal set while still respecting obstacles.
func DeriveFlee(goalWeights *grid.GridMap[float64], states *grid.GridMap[State], dist grid.Distance, multiplier float64) *grid.GridMap[float64] {
	w, h := states.Width(), states.Height()
	flee := grid.NewGridMap[float64](w, h)

	edge := make([]grid.Coord, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if states.GetXY(x, y) == Blocked {
				flee.SetXY(x, y, BlockedWeight)
				continue
			}
			flee.SetXY(x, y, goalWeights.GetXY(x, y)*multiplier)
			edge = append(edge, grid.C(x, y))
		}
	}

	relax(flee, states, dist, edge)
	return flee
}

// relax runs best-first edge relaxation to a fixed point: repeatedly
// processes the current edge set, improving any strictly-better
// neighbor and carrying it into the next round, until no relaxations
// occur.
func relax(weights *grid.GridMap[float64], states *grid.GridMap[State], dist grid.Distance, edge []grid.Coord) {
	w, h := states.Width(), states.Height()
	adj := dist.Adjacency()
	neighborBuf := make([]grid.Coord, 0, 8)

	for len(edge) > 0 {
		next := make([]grid.Coord, 0, len(edge))
		queued := make(map[grid.Coord]bool, len(edge))

		for _, cur := range edge {
			curWeight := weights.GetXY(cur.X, cur.Y)

			neighborBuf = neighborBuf[:0]
			neighborBuf = adj.Neighbors(cur, neighborBuf)
			for _, n := range neighborBuf {
				if !n.InBounds(w, h) {
					continue
				}
				if states.GetC(n) == Blocked {
					continue
				}

				candidate := curWeight + dist.Calculate(cur, n)
				if candidate < weights.GetC(n) {
					weights.SetC(n, candidate)
					if !queued[n] {
						queued[n] = true
						next = append(next, n)
					}
				}
			}
		}

		edge = next
	}
}

// BestDirection returns the in-bounds passable neighbor of pos with
// the strictly smallest weight (seek=true) or largest weight
// (seek=false); ties are broken by ascending orientation index (spec
// §4.3/§9 open question).
func BestDirection(weights *grid.GridMap[float64], states *grid.GridMap[State], pos grid.Coord, dist grid.Distance, seek bool) (grid.Direction, bool) {
	w, h := states.Width(), states.Height()
	best := grid.Null
	bestWeight := 0.0
	found := false

	for _, d := range dist.Adjacency().Directions() {
		n := pos.Add(d.Delta())
		if !n.InBounds(w, h) {
			continue
		}
		if states.GetC(n) == Blocked {
			continue
		}

		nw := weights.GetC(n)
		if !found {
			best, bestWeight, found = d, nw, true
			continue
		}
		if seek && nw < bestWeight {
			best, bestWeight = d, nw
		} else if !seek && nw > bestWeight {
			best, bestWeight = d, nw
		}
	}

	return best, found
}

package astar_test

import (
	"testing"

	"github.com/bloeys/tessera/internal/astar"
	"github.com/bloeys/tessera/internal/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStrip(w, h int) astar.Passable {
	return func(grid.Coord) bool { return true }
}

// 10x1 open strip corridor scenario.
func TestCorridorPath(t *testing.T) {
	start, end := grid.C(0, 0), grid.C(9, 0)
	path := astar.FindPath(start, end, 10, 1, openStrip(10, 1), nil, grid.Manhattan, false)

	require.Len(t, path, 10)
	assert.Equal(t, end, path[0])
	assert.Equal(t, start, path[len(path)-1])
}

func TestSameStartEndProducesNoPath(t *testing.T) {
	p := grid.C(2, 2)
	path := astar.FindPath(p, p, 5, 5, openStrip(5, 5), nil, grid.Chebyshev, false)
	assert.Nil(t, path)
}

func TestBlockedEndpointProducesNoPath(t *testing.T) {
	passable := func(c grid.Coord) bool { return c != grid.C(4, 4) }
	path := astar.FindPath(grid.C(0, 0), grid.C(4, 4), 5, 5, passable, nil, grid.Chebyshev, false)
	assert.Nil(t, path)
}

func TestDisconnectedProducesNoPath(t *testing.T) {
	// A wall of blocked cells spanning the full height of a 5x5 grid at
	// x=2 separates start from end entirely under Manhattan adjacency.
	passable := func(c grid.Coord) bool { return c.X != 2 }
	path := astar.FindPath(grid.C(0, 0), grid.C(4, 4), 5, 5, passable, nil, grid.Manhattan, false)
	assert.Nil(t, path)
}

func TestPathLengthNearsLowerBound(t *testing.T) {
	passable := func(grid.Coord) bool { return true }
	start, end := grid.C(0, 0), grid.C(9, 9)
	path := astar.FindPath(start, end, 10, 10, passable, nil, grid.Chebyshev, false)
	require.NotEmpty(t, path)

	lowerBound := grid.Chebyshev.Calculate(start, end)
	assert.LessOrEqual(t, float64(len(path)-1), lowerBound*1.001+1e-9)
}

func TestWeightedPathPrefersCheaperRoute(t *testing.T) {
	// 3x3 grid; crossing the middle column directly is expensive, going
	// around via row 0 or row 2 is cheap.
	weight := func(c grid.Coord) float64 {
		if c.X == 1 && c.Y == 1 {
			return 100
		}
		return 1
	}
	passable := func(grid.Coord) bool { return true }
	path := astar.FindPath(grid.C(0, 1), grid.C(2, 1), 3, 3, passable, weight, grid.Chebyshev, false)
	require.NotEmpty(t, path)
	for _, c := range path {
		assert.False(t, c.X == 1 && c.Y == 1, "path should route around the expensive cell")
	}
}

func TestFastModeUsesManhattanHeuristic(t *testing.T) {
	passable := func(grid.Coord) bool { return true }
	path := astar.FindPath(grid.C(0, 0), grid.C(5, 5), 6, 6, passable, nil, grid.Chebyshev, true)
	require.NotEmpty(t, path)
	assert.Equal(t, grid.C(5, 5), path[0])
	assert.Equal(t, grid.C(0, 0), path[len(path)-1])
}

package fov_test

import (
	"testing"

	"github.com/bloeys/tessera/internal/fov"
	"github.com/bloeys/tessera/internal/grid"
	"github.com/stretchr/testify/assert"
)

func TestOriginAlwaysFullyLit(t *testing.T) {
	opaque := func(grid.Coord) bool { return false }
	res := fov.Calculate(opaque, grid.C(3, 3), 5, grid.Euclidean, 7, 7)
	assert.Equal(t, 1.0, res.Light.GetXY(3, 3))
}

// FOV pillar scenario from spec §8.
func TestPillarBlocksWedge(t *testing.T) {
	wall := grid.C(3, 2)
	opaque := func(c grid.Coord) bool { return c == wall }
	res := fov.Calculate(opaque, grid.C(3, 3), 5, grid.Euclidean, 7, 7)

	assert.Equal(t, 0.0, res.Light.GetXY(3, 1), "cell directly behind the pillar must be dark")
	assert.Greater(t, res.Light.GetXY(2, 1), 0.0, "lit cell beside the pillar's shadow")
	assert.Greater(t, res.Light.GetXY(4, 1), 0.0, "lit cell beside the pillar's shadow")
	assert.Equal(t, 1.0, res.Light.GetXY(3, 3))
}

func TestSymmetryWithNoObstacles(t *testing.T) {
	opaque := func(grid.Coord) bool { return false }
	origin := grid.C(5, 5)
	q := grid.C(8, 6)

	fromOrigin := fov.Calculate(opaque, origin, 5, grid.Euclidean, 12, 12)
	assert.True(t, fromOrigin.Visible[q])

	fromQ := fov.Calculate(opaque, q, 5, grid.Euclidean, 12, 12)
	assert.True(t, fromQ.Visible[origin])
}

func TestMonotonicFalloff(t *testing.T) {
	opaque := func(grid.Coord) bool { return false }
	origin := grid.C(5, 5)
	res := fov.Calculate(opaque, origin, 5, grid.Euclidean, 12, 12)

	near := res.Light.GetXY(6, 5)
	far := res.Light.GetXY(9, 5)
	assert.Greater(t, near, far)
}

func TestOutsideRadiusUnlit(t *testing.T) {
	opaque := func(grid.Coord) bool { return false }
	res := fov.Calculate(opaque, grid.C(0, 0), 2, grid.Chebyshev, 10, 10)
	assert.False(t, res.Visible[grid.C(9, 9)])
	assert.Equal(t, 0.0, res.Light.GetXY(9, 9))
}

package grid_test

import (
	"testing"

	"github.com/bloeys/tessera/internal/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexRoundTrip(t *testing.T) {
	const w, h = 7, 5
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := grid.Index(x, y, w)
			got := grid.ReverseIndex(i, w)
			assert.Equal(t, grid.Coord{X: x, Y: y}, got)
		}
	}
}

func TestGridMapBasics(t *testing.T) {
	g := grid.NewGridMap[int](4, 3)
	require.Equal(t, 12, g.Len())

	g.SetXY(2, 1, 42)
	assert.Equal(t, 42, g.GetXY(2, 1))
	assert.Equal(t, 42, g.GetC(grid.C(2, 1)))

	g.Fill(7)
	for _, v := range g.Data() {
		assert.Equal(t, 7, v)
	}

	g.Resize(2, 2)
	assert.Equal(t, 4, g.Len())
	for _, v := range g.Data() {
		assert.Equal(t, 0, v, "resize must reset to zero value")
	}
}

func TestSubMapTranslation(t *testing.T) {
	base := grid.NewGridMap[int](10, 10)
	sub := grid.NewSubMap(base, grid.NewRect(3, 4, 5, 5))

	sub.SetXY(1, 1, 99)
	assert.Equal(t, 99, base.GetXY(4, 5))
	assert.Equal(t, 99, sub.GetXY(1, 1))
}

func TestRectPoints(t *testing.T) {
	r := grid.NewRect(0, 0, 4, 3)
	pts := r.Points(nil)
	assert.Len(t, pts, 12)
}

func TestRectPerimeterPoints(t *testing.T) {
	cases := []grid.Rect{
		grid.NewRect(0, 0, 5, 5),
		grid.NewRect(0, 0, 3, 1),
		grid.NewRect(0, 0, 1, 3),
		grid.NewRect(2, 2, 6, 4),
	}
	for _, r := range cases {
		pts := r.PerimeterPoints(nil)
		want := 2*r.W + 2*r.H - 4
		if r.W == 1 || r.H == 1 {
			want = r.W * r.H
		}
		assert.Len(t, pts, want, "rect %+v", r)
	}
}

func TestRectIntersection(t *testing.T) {
	a := grid.NewRect(0, 0, 5, 5)
	b := grid.NewRect(3, 3, 5, 5)
	got, ok := a.Intersection(b)
	require.True(t, ok)
	assert.Equal(t, grid.NewRect(3, 3, 2, 2), got)

	c := grid.NewRect(10, 10, 2, 2)
	_, ok = a.Intersection(c)
	assert.False(t, ok)
}

func TestRectContaining(t *testing.T) {
	a := grid.NewRect(0, 0, 2, 2)
	b := grid.NewRect(5, 5, 2, 2)
	got := a.Containing(b)
	assert.Equal(t, grid.NewRect(0, 0, 7, 7), got)
}

func TestDirectionClockwiseIdentity(t *testing.T) {
	for i := grid.North; i <= grid.NorthWest; i++ {
		assert.Equal(t, i, i.Clockwise(8), "clockwise(8) must be identity for %d", i)
	}
}

func TestDirectionDelta(t *testing.T) {
	assert.Equal(t, grid.Coord{X: 0, Y: -1}, grid.North.Delta())
	assert.Equal(t, grid.Coord{X: 1, Y: 0}, grid.East.Delta())
	assert.Equal(t, grid.Coord{X: 0, Y: 0}, grid.Null.Delta())
}

func TestAdjacencyDirectionsFromIsContiguous(t *testing.T) {
	dirs := grid.EightWay.DirectionsFrom(grid.East)
	require.Len(t, dirs, 8)
	assert.Equal(t, grid.East, dirs[0])
}

func TestDistanceCanonicalMapping(t *testing.T) {
	assert.Equal(t, grid.EightWay, grid.Chebyshev.Adjacency())
	assert.Equal(t, grid.EightWay, grid.Euclidean.Adjacency())
	assert.Equal(t, grid.Cardinals, grid.Manhattan.Adjacency())

	assert.Equal(t, grid.RadiusSquare, grid.Chebyshev.Radius())
	assert.Equal(t, grid.RadiusCircle, grid.Euclidean.Radius())
	assert.Equal(t, grid.RadiusDiamond, grid.Manhattan.Radius())
}

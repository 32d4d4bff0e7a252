package line_test

import (
	"testing"

	"github.com/bloeys/tessera/internal/grid"
	"github.com/bloeys/tessera/internal/line"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBresenhamEndpoints(t *testing.T) {
	a, b := grid.C(1, 1), grid.C(8, 5)
	pts := line.Bresenham(a, b)
	require.NotEmpty(t, pts)
	assert.Equal(t, a, pts[0])
	assert.Equal(t, b, pts[len(pts)-1])
	assertConnectedNoDupes(t, pts)
}

func TestDDAEndpoints(t *testing.T) {
	a, b := grid.C(2, 9), grid.C(10, 1)
	pts := line.DDA(a, b)
	require.NotEmpty(t, pts)
	assert.Equal(t, a, pts[0])
	assert.Equal(t, b, pts[len(pts)-1])
	assertConnectedNoDupes(t, pts)
}

func TestDDASamePoint(t *testing.T) {
	a := grid.C(4, 4)
	pts := line.DDA(a, a)
	assert.Equal(t, []grid.Coord{a}, pts)
}

func TestDDAHorizontalVerticalLength(t *testing.T) {
	a, b := grid.C(0, 0), grid.C(5, 0)
	pts := line.DDA(a, b)
	assert.Len(t, pts, 6) // |dx|+|dy|+1 = 5+0+1

	a, b = grid.C(0, 0), grid.C(0, -4)
	pts = line.DDA(a, b)
	assert.Len(t, pts, 5) // |dx|+|dy|+1 = 0+4+1
}

func TestBresenhamAndDDAAgreeOnEndpoints(t *testing.T) {
	cases := [][2]grid.Coord{
		{grid.C(0, 0), grid.C(10, 3)},
		{grid.C(10, 3), grid.C(0, 0)},
		{grid.C(-3, -3), grid.C(4, 6)},
		{grid.C(5, 5), grid.C(5, 5)},
	}
	for _, c := range cases {
		b := line.Bresenham(c[0], c[1])
		d := line.DDA(c[0], c[1])
		assert.Equal(t, c[0], b[0])
		assert.Equal(t, c[1], b[len(b)-1])
		assert.Equal(t, c[0], d[0])
		assert.Equal(t, c[1], d[len(d)-1])
		assertNoDupes(t, b)
		assertNoDupes(t, d)
	}
}

func assertNoDupes(t *testing.T, pts []grid.Coord) {
	t.Helper()
	seen := make(map[grid.Coord]bool, len(pts))
	for _, p := range pts {
		assert.False(t, seen[p], "duplicate point %+v", p)
		seen[p] = true
	}
}

func assertConnectedNoDupes(t *testing.T, pts []grid.Coord) {
	t.Helper()
	assertNoDupes(t, pts)
	for i := 1; i < len(pts); i++ {
		dx := pts[i].X - pts[i-1].X
		dy := pts[i].Y - pts[i-1].Y
		if dx < 0 {
			dx = -dx
		}
		if dy < 0 {
			dy = -dy
		}
		assert.LessOrEqual(t, dx, 1, "not 8-connected between %+v and %+v", pts[i-1], pts[i])
		assert.LessOrEqual(t, dy, 1, "not 8-connected between %+v and %+v", pts[i-1], pts[i])
	}
}

package grid

import "math"

// Direction is one of the 8 compass directions plus Null. The
// orientation index is clockwise from North in [0,7]; Null has no
// orientation and Orientation() panics if called on it.
type Direction int

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
	Null
)

var deltas = [8]Coord{
	North:     {0, -1},
	NorthEast: {1, -1},
	East:      {1, 0},
	SouthEast: {1, 1},
	South:     {0, 1},
	SouthWest: {-1, 1},
	West:      {-1, 0},
	NorthWest: {-1, -1},
}

// Delta returns (dx,dy) in {-1,0,1}^2 for d; (0,0) for Null.
func (d Direction) Delta() Coord {
	if d == Null {
		return Coord{}
	}
	return deltas[d]
}

// Orientation returns d's clockwise-from-North index in [0,7].
func (d Direction) Orientation() int {
	assertValidCompass(d)
	return int(d)
}

// FromOrientation maps an orientation index (any int, wrapped mod 8)
// back to its Direction.
func FromOrientation(i int) Direction {
	return Direction(((i % 8) + 8) % 8)
}

// Clockwise rotates d by n steps (each step = 45 degrees) clockwise.
// Negative n rotates counter-clockwise. Clockwise(8) is the identity,
// for every direction.
func (d Direction) Clockwise(n int) Direction {
	assertValidCompass(d)
	return FromOrientation(int(d) + n)
}

// CounterClockwise rotates d by n steps counter-clockwise.
func (d Direction) CounterClockwise(n int) Direction {
	return d.Clockwise(-n)
}

func assertValidCompass(d Direction) {
	if d < North || d > NorthWest {
		panic("direction: operation not valid on Null or out-of-range direction")
	}
}

// angleFromDelta returns the clockwise angle in degrees from North,
// in [0,360), for a delta vector in screen space (+x east, +y south).
func angleFromDelta(dx, dy int) float64 {
	// atan2 in screen space measured from North (0,-1) clockwise.
	angle := math.Atan2(float64(dx), float64(-dy)) * 180 / math.Pi
	if angle < 0 {
		angle += 360
	}
	return angle
}

// ClosestCardinal returns the nearest of {North,East,South,West} to the
// delta vector (dx,dy), cutting at 45/135/225/315 degrees from North.
func ClosestCardinal(dx, dy int) Direction {
	if dx == 0 && dy == 0 {
		return Null
	}
	angle := angleFromDelta(dx, dy)
	switch {
	case angle < 45 || angle >= 315:
		return North
	case angle < 135:
		return East
	case angle < 225:
		return South
	default:
		return West
	}
}

// ClosestDirection returns the nearest of all 8 compass directions to
// the delta vector (dx,dy), rounding clockwise to the nearest 45-degree
// sector.
func ClosestDirection(dx, dy int) Direction {
	if dx == 0 && dy == 0 {
		return Null
	}
	angle := angleFromDelta(dx, dy)
	idx := int(math.Round(angle/45)) % 8
	return FromOrientation(idx)
}

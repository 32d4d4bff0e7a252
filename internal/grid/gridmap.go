package grid

import "github.com/bloeys/tessera/internal/assert"

// GridMap is a dense mapping from every coord in [0,w) x [0,h) to
// exactly one T, stored row-major (index = x + y*w). The shape is
// fixed after construction; Resize reallocates and resets to the zero
// value of T, it never preserves old contents.
type GridMap[T any] struct {
	w, h int
	data []T
}

func NewGridMap[T any](w, h int) *GridMap[T] {
	assert.T(w >= 0 && h >= 0, "grid dimensions must be non-negative, got %dx%d", w, h)
	return &GridMap[T]{w: w, h: h, data: make([]T, w*h)}
}

func (g *GridMap[T]) Width() int  { return g.w }
func (g *GridMap[T]) Height() int { return g.h }

// Get returns the element at row-major index i.
func (g *GridMap[T]) Get(i int) T {
	return g.data[i]
}

// GetXY returns the element at (x,y).
func (g *GridMap[T]) GetXY(x, y int) T {
	return g.data[Index(x, y, g.w)]
}

// GetC returns the element at c.
func (g *GridMap[T]) GetC(c Coord) T {
	return g.data[Index(c.X, c.Y, g.w)]
}

func (g *GridMap[T]) Set(i int, v T) {
	g.data[i] = v
}

func (g *GridMap[T]) SetXY(x, y int, v T) {
	g.data[Index(x, y, g.w)] = v
}

func (g *GridMap[T]) SetC(c Coord, v T) {
	g.data[Index(c.X, c.Y, g.w)] = v
}

// InBounds reports whether c is a valid coordinate for this map.
func (g *GridMap[T]) InBounds(c Coord) bool {
	return c.InBounds(g.w, g.h)
}

// Resize reallocates the backing storage to w x h and resets every
// cell to T's zero value; it never preserves old contents.
func (g *GridMap[T]) Resize(w, h int) {
	g.w, g.h = w, h
	g.data = make([]T, w*h)
}

// Fill sets every cell to v.
func (g *GridMap[T]) Fill(v T) {
	for i := range g.data {
		g.data[i] = v
	}
}

// Data returns the backing row-major slice. Mutating it mutates the map.
func (g *GridMap[T]) Data() []T {
	return g.data
}

// Len returns w*h.
func (g *GridMap[T]) Len() int { return len(g.data) }

// SubMap is a view onto a rectangular section of a base GridMap. All
// coordinates passed to SubMap's methods are relative to the
// sub-rect's origin; they are translated to base-map indices
// transparently.
type SubMap[T any] struct {
	base *GridMap[T]
	rect Rect
}

func NewSubMap[T any](base *GridMap[T], r Rect) *SubMap[T] {
	return &SubMap[T]{base: base, rect: r}
}

func (s *SubMap[T]) Width() int  { return s.rect.W }
func (s *SubMap[T]) Height() int { return s.rect.H }

func (s *SubMap[T]) toBase(x, y int) Coord {
	return Coord{X: s.rect.X + x, Y: s.rect.Y + y}
}

func (s *SubMap[T]) GetXY(x, y int) T {
	return s.base.GetC(s.toBase(x, y))
}

func (s *SubMap[T]) SetXY(x, y int, v T) {
	s.base.SetC(s.toBase(x, y), v)
}

func (s *SubMap[T]) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.rect.W && y < s.rect.H
}

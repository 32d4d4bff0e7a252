package grid

// Rect is an axis-aligned rectangle with top-left origin (x,y) and
// non-negative width/height. It is empty iff w=0 or h=0.
type Rect struct {
	X, Y, W, H int
}

func NewRect(x, y, w, h int) Rect { return Rect{X: x, Y: y, W: w, H: h} }

func (r Rect) Empty() bool { return r.W == 0 || r.H == 0 }

func (r Rect) Right() int  { return r.X + r.W }
func (r Rect) Bottom() int { return r.Y + r.H }

// Contains reports whether point p lies inside r (half-open on the
// right/bottom edges).
func (r Rect) Contains(p Coord) bool {
	return p.X >= r.X && p.Y >= r.Y && p.X < r.Right() && p.Y < r.Bottom()
}

// Intersects reports whether r and o share any area.
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Intersection returns the largest rect common to r and o, and ok=false
// if they don't intersect.
func (r Rect) Intersection(o Rect) (out Rect, ok bool) {
	if !r.Intersects(o) {
		return Rect{}, false
	}
	x0 := maxInt(r.X, o.X)
	y0 := maxInt(r.Y, o.Y)
	x1 := minInt(r.Right(), o.Right())
	y1 := minInt(r.Bottom(), o.Bottom())
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}, true
}

// Containing returns the tight bounding rect of r and o.
func (r Rect) Containing(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	x0 := minInt(r.X, o.X)
	y0 := minInt(r.Y, o.Y)
	x1 := maxInt(r.Right(), o.Right())
	y1 := maxInt(r.Bottom(), o.Bottom())
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// FitInside translates+nothing-else a copy of r so it lies fully
// within boundary, shrinking is never performed; if r is already
// larger than boundary on an axis it's left flush against the min edge.
func (r Rect) FitInside(boundary Rect) Rect {
	out := r
	if out.Right() > boundary.Right() {
		out.X -= out.Right() - boundary.Right()
	}
	if out.Bottom() > boundary.Bottom() {
		out.Y -= out.Bottom() - boundary.Bottom()
	}
	if out.X < boundary.X {
		out.X = boundary.X
	}
	if out.Y < boundary.Y {
		out.Y = boundary.Y
	}
	return out
}

// Points appends every point in r (row-major) to out and returns it.
// len(out)-len(before) == w*h.
func (r Rect) Points(out []Coord) []Coord {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			out = append(out, Coord{X: x, Y: y})
		}
	}
	return out
}

// PerimeterPoints appends every point on r's border to out, in
// clockwise order starting from the top-left. Produces exactly
// max(0, 2w+2h-4) points for non-degenerate rects.
func (r Rect) PerimeterPoints(out []Coord) []Coord {
	if r.Empty() {
		return out
	}
	if r.W == 1 && r.H == 1 {
		return append(out, Coord{X: r.X, Y: r.Y})
	}
	if r.W == 1 {
		for y := r.Y; y < r.Bottom(); y++ {
			out = append(out, Coord{X: r.X, Y: y})
		}
		return out
	}
	if r.H == 1 {
		for x := r.X; x < r.Right(); x++ {
			out = append(out, Coord{X: x, Y: r.Y})
		}
		return out
	}

	// Top edge, left to right.
	for x := r.X; x < r.Right(); x++ {
		out = append(out, Coord{X: x, Y: r.Y})
	}
	// Right edge, top+1 to bottom-1.
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		out = append(out, Coord{X: r.Right() - 1, Y: y})
	}
	// Bottom edge, right to left.
	for x := r.Right() - 1; x >= r.X; x-- {
		out = append(out, Coord{X: x, Y: r.Bottom() - 1})
	}
	// Left edge, bottom-1 up to top+1.
	for y := r.Bottom() - 2; y > r.Y; y-- {
		out = append(out, Coord{X: r.X, Y: y})
	}
	return out
}

// Union appends the point-set union of r and o (each point once) to out.
func (r Rect) Union(o Rect, out []Coord) []Coord {
	seen := make(map[Coord]struct{}, r.W*r.H+o.W*o.H)
	out = r.Points(out)
	for _, p := range out {
		seen[p] = struct{}{}
	}
	tmp := o.Points(nil)
	for _, p := range tmp {
		if _, ok := seen[p]; !ok {
			out = append(out, p)
			seen[p] = struct{}{}
		}
	}
	return out
}

// Difference appends the points in r but not in o to out.
func (r Rect) Difference(o Rect, out []Coord) []Coord {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			p := Coord{X: x, Y: y}
			if !o.Contains(p) {
				out = append(out, p)
			}
		}
	}
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

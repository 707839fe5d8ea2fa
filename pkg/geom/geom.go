// Package geom provides the 2D primitives shared by the interaction
// and placement packages: points, sizes, rectangles, and normalized
// alignment points. All values live in one caller-chosen coordinate
// space (terminal cells, pixels, whatever the host measures in).
package geom

// Point is a position in the shared coordinate space.
type Point struct {
	X, Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Size is a width/height extent.
type Size struct {
	Width, Height float64
}

// IsEmpty reports whether the size has no area.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Rect is an axis-aligned rectangle identified by its top-left corner.
type Rect struct {
	X, Y, Width, Height float64
}

// RectFrom builds a rectangle from a top-left corner and a size.
func RectFrom(topLeft Point, size Size) Rect {
	return Rect{X: topLeft.X, Y: topLeft.Y, Width: size.Width, Height: size.Height}
}

// TopLeft returns the rectangle's top-left corner.
func (r Rect) TopLeft() Point {
	return Point{X: r.X, Y: r.Y}
}

// Dim returns the rectangle's extent.
func (r Rect) Dim() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Contains reports whether the point lies inside the rectangle.
// Left and top edges are inclusive, right and bottom exclusive, so
// adjacent rectangles never both claim a point.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Union returns the smallest rectangle covering both r and o.
func (r Rect) Union(o Rect) Rect {
	x1 := min(r.X, o.X)
	y1 := min(r.Y, o.Y)
	x2 := max(r.X+r.Width, o.X+o.Width)
	y2 := max(r.Y+r.Height, o.Y+o.Height)
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Clamp limits v to [lo, hi]. When hi < lo the lower bound wins.
func Clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Align is a normalized point within a box: each axis runs from -1
// (left/top edge) through 0 (center) to +1 (right/bottom edge).
type Align struct {
	X, Y float64
}

// Within resolves the alignment to an offset from the top-left corner
// of a box of the given size.
func (a Align) Within(s Size) Point {
	return Point{
		X: (a.X + 1) / 2 * s.Width,
		Y: (a.Y + 1) / 2 * s.Height,
	}
}

// Named alignment points for the common box anchors.
var (
	AlignTopLeft      = Align{X: -1, Y: -1}
	AlignTopCenter    = Align{X: 0, Y: -1}
	AlignTopRight     = Align{X: 1, Y: -1}
	AlignCenterLeft   = Align{X: -1, Y: 0}
	AlignCenter       = Align{X: 0, Y: 0}
	AlignCenterRight  = Align{X: 1, Y: 0}
	AlignBottomLeft   = Align{X: -1, Y: 1}
	AlignBottomCenter = Align{X: 0, Y: 1}
	AlignBottomRight  = Align{X: 1, Y: 1}
)

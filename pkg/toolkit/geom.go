package toolkit

import "math"

// Point is a position in widget coordinates.
type Point struct {
	X, Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Size is a width and height.
type Size struct {
	Width, Height float64
}

// Rect is an axis-aligned rectangle. Min is inclusive, Max exclusive.
type Rect struct {
	Min, Max Point
}

// NewRect returns the rectangle spanned by two opposite corners in any order.
func NewRect(x0, y0, x1, y1 float64) Rect {
	return Rect{
		Min: Point{X: math.Min(x0, x1), Y: math.Min(y0, y1)},
		Max: Point{X: math.Max(x0, x1), Y: math.Max(y0, y1)},
	}
}

// RectFromOriginSize returns the rectangle at origin with the given size.
func RectFromOriginSize(origin Point, size Size) Rect {
	return Rect{Min: origin, Max: Point{X: origin.X + size.Width, Y: origin.Y + size.Height}}
}

// Size returns the rectangle's extent.
func (r Rect) Size() Size { return Size{Width: r.Max.X - r.Min.X, Height: r.Max.Y - r.Min.Y} }

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Path implements Shape.
func (r Rect) Path() *BezPath {
	p := &BezPath{}
	p.MoveTo(r.Min)
	p.LineTo(Point{X: r.Max.X, Y: r.Min.Y})
	p.LineTo(r.Max)
	p.LineTo(Point{X: r.Min.X, Y: r.Max.Y})
	p.ClosePath()
	return p
}

// Bounds implements Shape.
func (r Rect) Bounds() Rect { return r }

// Line is a straight segment.
type Line struct {
	P0, P1 Point
}

// Path implements Shape.
func (l Line) Path() *BezPath {
	p := &BezPath{}
	p.MoveTo(l.P0)
	p.LineTo(l.P1)
	return p
}

// Bounds implements Shape.
func (l Line) Bounds() Rect { return NewRect(l.P0.X, l.P0.Y, l.P1.X, l.P1.Y) }

// Circle is a circle given by center and radius.
type Circle struct {
	Center Point
	Radius float64
}

// circleSegments is the polygon resolution used when a circle is flattened.
const circleSegments = 64

// Path implements Shape. The circle is flattened to a closed polygon.
func (c Circle) Path() *BezPath {
	p := &BezPath{}
	for i := 0; i < circleSegments; i++ {
		a := 2 * math.Pi * float64(i) / circleSegments
		pt := Point{X: c.Center.X + c.Radius*math.Cos(a), Y: c.Center.Y + c.Radius*math.Sin(a)}
		if i == 0 {
			p.MoveTo(pt)
		} else {
			p.LineTo(pt)
		}
	}
	p.ClosePath()
	return p
}

// Bounds implements Shape.
func (c Circle) Bounds() Rect {
	return NewRect(c.Center.X-c.Radius, c.Center.Y-c.Radius, c.Center.X+c.Radius, c.Center.Y+c.Radius)
}

// PathOp identifies a path element.
type PathOp int

const (
	OpMoveTo PathOp = iota
	OpLineTo
	OpClosePath
)

// PathEl is one element of a BezPath. Point is unused for OpClosePath.
type PathEl struct {
	Op    PathOp
	Point Point
}

// BezPath is a sequence of path elements. Only straight segments are
// supported.
type BezPath struct {
	els []PathEl
}

// MoveTo starts a new subpath at p.
func (b *BezPath) MoveTo(p Point) { b.els = append(b.els, PathEl{Op: OpMoveTo, Point: p}) }

// LineTo adds a segment to p.
func (b *BezPath) LineTo(p Point) { b.els = append(b.els, PathEl{Op: OpLineTo, Point: p}) }

// ClosePath closes the current subpath.
func (b *BezPath) ClosePath() { b.els = append(b.els, PathEl{Op: OpClosePath}) }

// Elements returns the path elements.
func (b *BezPath) Elements() []PathEl { return b.els }

// IsEmpty reports whether the path has no elements.
func (b *BezPath) IsEmpty() bool { return len(b.els) == 0 }

// Path implements Shape.
func (b *BezPath) Path() *BezPath { return b }

// Bounds implements Shape.
func (b *BezPath) Bounds() Rect {
	var r Rect
	first := true
	for _, el := range b.els {
		if el.Op == OpClosePath {
			continue
		}
		if first {
			r = Rect{Min: el.Point, Max: el.Point}
			first = false
			continue
		}
		r.Min.X = math.Min(r.Min.X, el.Point.X)
		r.Min.Y = math.Min(r.Min.Y, el.Point.Y)
		r.Max.X = math.Max(r.Max.X, el.Point.X)
		r.Max.Y = math.Max(r.Max.Y, el.Point.Y)
	}
	return r
}

// subpaths splits the path into polylines. A closed polyline repeats its
// first point at the end.
func (b *BezPath) subpaths() [][]Point {
	var out [][]Point
	var cur []Point
	for _, el := range b.els {
		switch el.Op {
		case OpMoveTo:
			if len(cur) > 0 {
				out = append(out, cur)
			}
			cur = []Point{el.Point}
		case OpLineTo:
			if len(cur) == 0 {
				cur = []Point{el.Point}
				continue
			}
			cur = append(cur, el.Point)
		case OpClosePath:
			if len(cur) > 0 {
				cur = append(cur, cur[0])
				out = append(out, cur)
				cur = nil
			}
		}
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// Shape is anything a RenderContext can fill or stroke.
type Shape interface {
	Path() *BezPath
	Bounds() Rect
}

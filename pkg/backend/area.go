package backend

import "sort"

// Area is a rectangular view onto a parent backend. Coordinates passed to an
// Area are relative to its upper-left corner and Size reports the area's own
// extent. Drawing is not clipped to the area.
type Area struct {
	parent DrawingBackend
	origin Coord
	width  uint32
	height uint32
}

// NewArea returns the area of parent spanning [upperLeft, bottomRight).
func NewArea(parent DrawingBackend, upperLeft, bottomRight Coord) *Area {
	w := max(bottomRight.X-upperLeft.X, 0)
	h := max(bottomRight.Y-upperLeft.Y, 0)
	return &Area{parent: parent, origin: upperLeft, width: uint32(w), height: uint32(h)}
}

// Whole returns an area covering all of b.
func Whole(b DrawingBackend) *Area {
	w, h := b.Size()
	return &Area{parent: b, width: w, height: h}
}

// SplitByBreakpoints cuts b into a grid at the given x and y breakpoints and
// returns the cells in row-major order. Breakpoints outside the surface are
// clamped to it.
func SplitByBreakpoints(b DrawingBackend, xs, ys []int) []*Area {
	w, h := b.Size()
	cols := breakpoints(xs, int(w))
	rows := breakpoints(ys, int(h))

	areas := make([]*Area, 0, (len(cols)-1)*(len(rows)-1))
	for r := 0; r+1 < len(rows); r++ {
		for c := 0; c+1 < len(cols); c++ {
			areas = append(areas, NewArea(b,
				Coord{X: cols[c], Y: rows[r]},
				Coord{X: cols[c+1], Y: rows[r+1]}))
		}
	}
	return areas
}

func breakpoints(points []int, limit int) []int {
	out := make([]int, 0, len(points)+2)
	out = append(out, 0)
	for _, p := range points {
		out = append(out, min(max(p, 0), limit))
	}
	out = append(out, limit)
	sort.Ints(out)
	return out
}

// Origin returns the area's upper-left corner in parent coordinates.
func (a *Area) Origin() Coord { return a.origin }

// Fill paints the whole area with color c.
func (a *Area) Fill(c Color) error {
	return a.DrawRect(Coord{}, Coord{X: int(a.width), Y: int(a.height)}, Filled(c), true)
}

// Size implements DrawingBackend.
func (a *Area) Size() (uint32, uint32) { return a.width, a.height }

// EnsurePrepared implements DrawingBackend.
func (a *Area) EnsurePrepared() error { return a.parent.EnsurePrepared() }

// Present implements DrawingBackend.
func (a *Area) Present() error { return a.parent.Present() }

// DrawPixel implements DrawingBackend.
func (a *Area) DrawPixel(point Coord, color Color) error {
	return a.parent.DrawPixel(point.Add(a.origin), color)
}

// DrawLine implements DrawingBackend.
func (a *Area) DrawLine(from, to Coord, style Style) error {
	return a.parent.DrawLine(from.Add(a.origin), to.Add(a.origin), style)
}

// DrawRect implements DrawingBackend.
func (a *Area) DrawRect(upperLeft, bottomRight Coord, style Style, fill bool) error {
	return a.parent.DrawRect(upperLeft.Add(a.origin), bottomRight.Add(a.origin), style, fill)
}

// DrawPath implements DrawingBackend.
func (a *Area) DrawPath(path []Coord, style Style) error {
	return a.parent.DrawPath(a.translate(path), style)
}

// DrawCircle implements DrawingBackend.
func (a *Area) DrawCircle(center Coord, radius uint32, style Style, fill bool) error {
	return a.parent.DrawCircle(center.Add(a.origin), radius, style, fill)
}

// DrawText implements DrawingBackend.
func (a *Area) DrawText(text string, style TextStyle, pos Coord) error {
	return a.parent.DrawText(text, style, pos.Add(a.origin))
}

// EstimateTextSize implements DrawingBackend.
func (a *Area) EstimateTextSize(text string, style TextStyle) (uint32, uint32, error) {
	return a.parent.EstimateTextSize(text, style)
}

// FillPolygon implements PolygonFiller by delegating to the parent.
func (a *Area) FillPolygon(vertices []Coord, style Style) error {
	return FillPolygon(a.parent, a.translate(vertices), style)
}

func (a *Area) translate(points []Coord) []Coord {
	out := make([]Coord, len(points))
	for i, p := range points {
		out[i] = p.Add(a.origin)
	}
	return out
}

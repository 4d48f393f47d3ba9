// Package backend defines the drawing-backend contract a charting library
// renders through. A backend receives primitive drawing requests (pixels,
// lines, rectangles, paths, circles and text) in integer backend
// coordinates and is free to realize them on any surface.
package backend

// Coord is a point in backend coordinates. The origin is the top-left corner
// of the drawing surface and y grows downward.
type Coord struct {
	X, Y int
}

// Add returns c translated by d.
func (c Coord) Add(d Coord) Coord {
	return Coord{X: c.X + d.X, Y: c.Y + d.Y}
}

// Sub returns c translated by -d.
func (c Coord) Sub(d Coord) Coord {
	return Coord{X: c.X - d.X, Y: c.Y - d.Y}
}

// DrawingBackend is implemented by every surface a chart can be drawn on.
//
// Size may be called at any time. EnsurePrepared is called before a batch of
// drawing calls and Present after it. Every draw method reports failures as a
// *DrawingError.
type DrawingBackend interface {
	// Size returns the width and height of the surface in backend units.
	Size() (width, height uint32)
	// EnsurePrepared readies the surface for drawing.
	EnsurePrepared() error
	// Present flushes anything drawn since EnsurePrepared.
	Present() error

	// DrawPixel sets a single pixel.
	DrawPixel(point Coord, color Color) error
	// DrawLine draws a line segment.
	DrawLine(from, to Coord, style Style) error
	// DrawRect draws the rectangle spanned by two opposite corners, filled or
	// outlined.
	DrawRect(upperLeft, bottomRight Coord, style Style, fill bool) error
	// DrawPath draws a polyline through the points in order.
	DrawPath(path []Coord, style Style) error
	// DrawCircle draws a circle, filled or outlined.
	DrawCircle(center Coord, radius uint32, style Style, fill bool) error
	// DrawText draws text anchored at pos.
	DrawText(text string, style TextStyle, pos Coord) error
	// EstimateTextSize measures text as DrawText would draw it.
	EstimateTextSize(text string, style TextStyle) (width, height uint32, err error)
}

// PolygonFiller is an optional capability for backends that can fill an
// arbitrary polygon natively. See FillPolygon.
type PolygonFiller interface {
	FillPolygon(vertices []Coord, style Style) error
}

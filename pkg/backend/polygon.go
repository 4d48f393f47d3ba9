package backend

import (
	"math"
	"sort"
)

// FillPolygon fills the polygon through vertices on b. Backends that
// implement PolygonFiller do it natively; for the rest the polygon is
// rasterized with the even-odd rule into horizontal DrawLine spans, one per
// pixel row sampled at the row center.
func FillPolygon(b DrawingBackend, vertices []Coord, style Style) error {
	if pf, ok := b.(PolygonFiller); ok {
		return pf.FillPolygon(vertices, style)
	}
	if len(vertices) < 3 {
		return nil
	}

	minY, maxY := vertices[0].Y, vertices[0].Y
	for _, v := range vertices[1:] {
		minY = min(minY, v.Y)
		maxY = max(maxY, v.Y)
	}

	span := ShapeStyle{Fill: style.Color(), Filled: true, Width: 1}
	xs := make([]float64, 0, len(vertices))
	for y := minY; y < maxY; y++ {
		xs = scanlineCrossings(xs[:0], vertices, float64(y)+0.5)
		for i := 0; i+1 < len(xs); i += 2 {
			x0 := int(math.Round(xs[i]))
			x1 := int(math.Round(xs[i+1])) - 1
			if x1 < x0 {
				continue
			}
			if err := b.DrawLine(Coord{X: x0, Y: y}, Coord{X: x1, Y: y}, span); err != nil {
				return err
			}
		}
	}
	return nil
}

// scanlineCrossings appends the sorted x positions where the closed polygon
// crosses the horizontal line at y.
func scanlineCrossings(dst []float64, vertices []Coord, y float64) []float64 {
	n := len(vertices)
	for i := 0; i < n; i++ {
		a, b := vertices[i], vertices[(i+1)%n]
		ay, by := float64(a.Y), float64(b.Y)
		if (ay <= y && by > y) || (by <= y && ay > y) {
			t := (y - ay) / (by - ay)
			dst = append(dst, float64(a.X)+t*float64(b.X-a.X))
		}
	}
	sort.Float64s(dst)
	return dst
}

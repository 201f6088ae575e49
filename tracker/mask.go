package tracker

import (
	"image"
	"math"

	clipper "github.com/ctessum/go.clipper"
)

// Mask is the shape contour of a detected particle, a closed polygon in
// pixel coordinates.  The tracking engine itself only carries masks through
// unmodified, the geometry helpers exist for consumers and the optional
// track merge pass
type Mask []image.Point

// toPath converts the mask contour to a clipper Path
func (m Mask) toPath() clipper.Path {

	var path clipper.Path

	for _, pt := range m {
		path = append(path, &clipper.IntPoint{
			X: clipper.CInt(pt.X),
			Y: clipper.CInt(pt.Y),
		})
	}

	return path
}

// maskFromPath converts a clipper Path back to a mask contour
func maskFromPath(path clipper.Path) Mask {

	mask := make(Mask, 0, len(path))

	for _, pt := range path {
		mask = append(mask, image.Point{X: int(pt.X), Y: int(pt.Y)})
	}

	return mask
}

// Area returns the enclosed area of the mask contour in square pixels
func (m Mask) Area() float64 {

	if len(m) < 3 {
		return 0
	}

	return math.Abs(clipper.Area(m.toPath()))
}

// Bounds returns the axis aligned bounding rectangle of the mask contour
func (m Mask) Bounds() Rect {

	if len(m) == 0 {
		return NewRect(0, 0, 0, 0)
	}

	minX, minY := m[0].X, m[0].Y
	maxX, maxY := m[0].X, m[0].Y

	for _, pt := range m[1:] {
		if pt.X < minX {
			minX = pt.X
		}
		if pt.Y < minY {
			minY = pt.Y
		}
		if pt.X > maxX {
			maxX = pt.X
		}
		if pt.Y > maxY {
			maxY = pt.Y
		}
	}

	return NewRect(float32(minX), float32(minY),
		float32(maxX-minX), float32(maxY-minY))
}

// Union merges the mask contour with another and returns the combined
// contour.  When the union is disjoint the largest resulting polygon is
// returned
func (m Mask) Union(other Mask) Mask {

	if len(m) < 3 {
		return append(Mask{}, other...)
	}

	if len(other) < 3 {
		return append(Mask{}, m...)
	}

	c := clipper.NewClipper(clipper.IoNone)
	c.AddPath(m.toPath(), clipper.PtSubject, true)
	c.AddPath(other.toPath(), clipper.PtClip, true)

	solution, ok := c.Execute1(clipper.CtUnion, clipper.PftNonZero, clipper.PftNonZero)

	if !ok || len(solution) == 0 {
		return append(Mask{}, m...)
	}

	// pick the largest polygon of the union
	best := 0
	bestArea := math.Abs(clipper.Area(solution[0]))

	for i, path := range solution[1:] {
		if a := math.Abs(clipper.Area(path)); a > bestArea {
			bestArea = a
			best = i + 1
		}
	}

	return maskFromPath(solution[best])
}

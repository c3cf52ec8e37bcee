package monitor

import "image"

// Zone is the rectangular region whose occupancy is being measured.
// Coordinates are pixels in the stream's frame, normalised so that
// MinX <= MaxX and MinY <= MaxY regardless of the corner order used to
// build it.
type Zone struct {
	MinX int
	MinY int
	MaxX int
	MaxY int
}

// NewZone builds a Zone from two corner points given in either order.
func NewZone(p1, p2 image.Point) Zone {
	z := Zone{MinX: p1.X, MinY: p1.Y, MaxX: p2.X, MaxY: p2.Y}
	if z.MinX > z.MaxX {
		z.MinX, z.MaxX = z.MaxX, z.MinX
	}
	if z.MinY > z.MaxY {
		z.MinY, z.MaxY = z.MaxY, z.MinY
	}
	return z
}

// Contains reports whether p lies inside the zone. Boundaries are
// inclusive: a point exactly on a zone edge counts as inside.
func (z Zone) Contains(p image.Point) bool {
	return p.X >= z.MinX && p.X <= z.MaxX && p.Y >= z.MinY && p.Y <= z.MaxY
}

// Rect returns the zone as an image.Rectangle for drawing.
func (z Zone) Rect() image.Rectangle {
	return image.Rect(z.MinX, z.MinY, z.MaxX, z.MaxY)
}

// FromFraction returns a centred Zone covering the given fraction of a
// w x h frame. The fraction is clamped to [0.1, 1.0], so a stream always
// gets a usable zone even from bad settings input.
func FromFraction(frac float64, w, h int) Zone {
	if frac < 0.1 {
		frac = 0.1
	}
	if frac > 1.0 {
		frac = 1.0
	}

	boxW := int(float64(w) * frac)
	boxH := int(float64(h) * frac)

	x1 := (w - boxW) / 2
	y1 := (h - boxH) / 2

	return NewZone(image.Pt(x1, y1), image.Pt(x1+boxW, y1+boxH))
}

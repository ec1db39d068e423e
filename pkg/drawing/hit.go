package drawing

import (
	"math"
)

const (
	// HandleHitRadius is the grab radius around a handle center.
	HandleHitRadius = 8.0

	// BodyHitWidth is the width of the grab band along line bodies.
	BodyHitWidth = 15.0
)

type HitKind int

const (
	HitNone HitKind = iota
	HitHandle
	HitBody
)

func (k HitKind) String() string {
	switch k {
	case HitHandle:
		return "handle"
	case HitBody:
		return "body"
	}
	return "none"
}

// Hit identifies the region of a drawing under the pointer.
type Hit struct {
	Kind       HitKind
	DrawingID  int64
	PointIndex int
}

// HitHandle returns the index of the handle under (x, y).
func (g Geometry) HitHandle(x, y float64) (int, bool) {
	for _, h := range g.Handles {
		if math.Hypot(x-h.X, y-h.Y) <= HandleHitRadius {
			return h.Index, true
		}
	}
	return 0, false
}

// HitBody reports whether (x, y) is on the drawing body.
func (g Geometry) HitBody(x, y float64) bool {
	for _, s := range g.Segments {
		if distanceToSegment(x, y, s.X1, s.Y1, s.X2, s.Y2) <= BodyHitWidth/2 {
			return true
		}
	}

	for _, b := range g.Boxes {
		if b.Contains(x, y) {
			return true
		}
	}

	return false
}

// HitTest walks the geometries top-down, handles first, then bodies.
// geometries are ordered bottom to top.
func HitTest(geometries []Geometry, x, y float64) (Hit, bool) {
	for i := len(geometries) - 1; i >= 0; i-- {
		if idx, ok := geometries[i].HitHandle(x, y); ok {
			return Hit{Kind: HitHandle, DrawingID: geometries[i].ID, PointIndex: idx}, true
		}
	}

	for i := len(geometries) - 1; i >= 0; i-- {
		if geometries[i].HitBody(x, y) {
			return Hit{Kind: HitBody, DrawingID: geometries[i].ID}, true
		}
	}

	return Hit{}, false
}

func distanceToSegment(px, py, x1, y1, x2, y2 float64) float64 {
	dx, dy := x2-x1, y2-y1
	lengthSq := dx*dx + dy*dy
	if lengthSq == 0 {
		return math.Hypot(px-x1, py-y1)
	}

	t := ((px-x1)*dx + (py-y1)*dy) / lengthSq
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(px-(x1+t*dx), py-(y1+t*dy))
}

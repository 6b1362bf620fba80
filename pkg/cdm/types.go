// Package cdm defines the canonical data model shared by the vendor parsers
// and the target-format serializers. All coordinates are in millimeters with
// the source's down-positive Y convention; serializers that need Y-up apply
// their own inversion.
package cdm

// Point represents a 2D coordinate in millimeters.
type Point struct {
	X float64
	Y float64
}

// Point3D represents a 3D coordinate in millimeters.
type Point3D struct {
	X float64
	Y float64
	Z float64
}

// EulerRotation holds per-axis rotation in degrees, applied X then Y then Z.
type EulerRotation struct {
	X float64
	Y float64
	Z float64
}

// BoundingBox represents a rectangular extent.
type BoundingBox struct {
	Min Point
	Max Point
}

// NewBoundingBox creates an empty bounding box that expands on first use.
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		Min: Point{X: 1e9, Y: 1e9},
		Max: Point{X: -1e9, Y: -1e9},
	}
}

// IsEmpty reports whether no point has been added yet.
func (bb BoundingBox) IsEmpty() bool {
	return bb.Min.X > bb.Max.X || bb.Min.Y > bb.Max.Y
}

// Expand grows the bounding box to include a point.
func (bb *BoundingBox) Expand(p Point) {
	if p.X < bb.Min.X {
		bb.Min.X = p.X
	}
	if p.Y < bb.Min.Y {
		bb.Min.Y = p.Y
	}
	if p.X > bb.Max.X {
		bb.Max.X = p.X
	}
	if p.Y > bb.Max.Y {
		bb.Max.Y = p.Y
	}
}

// Width returns the horizontal extent.
func (bb BoundingBox) Width() float64 {
	return bb.Max.X - bb.Min.X
}

// Height returns the vertical extent.
func (bb BoundingBox) Height() float64 {
	return bb.Max.Y - bb.Min.Y
}

// Center returns the center point of the bounding box.
func (bb BoundingBox) Center() Point {
	return Point{
		X: (bb.Min.X + bb.Max.X) / 2.0,
		Y: (bb.Min.Y + bb.Max.Y) / 2.0,
	}
}

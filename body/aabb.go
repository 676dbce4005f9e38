package body

import "github.com/akmonengine/physics2d/vecmath"

// AABB is an axis-aligned bounding box (minX,minY,maxX,maxY).
type AABB struct {
	Min, Max vecmath.Vec2
}

// Overlaps reports whether a and b overlap, using strict inequality on
// each axis so that merely touching boxes are NOT considered overlapping
// (spec.md §4.5).
func (a AABB) Overlaps(b AABB) bool {
	if a.Max[0] <= b.Min[0] || b.Max[0] <= a.Min[0] {
		return false
	}
	if a.Max[1] <= b.Min[1] || b.Max[1] <= a.Min[1] {
		return false
	}
	return true
}

// Contains reports whether the AABB fully encloses point p.
func (a AABB) Contains(p vecmath.Vec2) bool {
	return p[0] >= a.Min[0] && p[0] <= a.Max[0] && p[1] >= a.Min[1] && p[1] <= a.Max[1]
}

// Width and Height of the box.
func (a AABB) Width() float64  { return a.Max[0] - a.Min[0] }
func (a AABB) Height() float64 { return a.Max[1] - a.Min[1] }

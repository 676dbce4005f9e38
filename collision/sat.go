// Package collision implements the AABB overlap test, the SAT-based
// intersection tests for every shape-kind pair (circle-circle,
// polygon-polygon, polygon-circle — a Rectangle is just a 4-vertex
// Polygon for SAT purposes), and contact manifold extraction.
//
// The teacher's narrowphase (gjk.GJK + epa.EPA) answers "do these convex
// supports overlap, and by how much" through the Minkowski-difference
// support-function abstraction; spec.md mandates SAT over explicit vertex
// lists instead, a different algorithm family, so this package is new
// code grounded on the teacher's BroadPhase/NarrowPhase dispatch shape
// (collision.go) rather than its GJK/EPA math. The "project a shape onto
// an axis" capability spec.md's design notes call for is modeled as the
// small axisProjector interface below, the idiomatic Go stand-in for the
// teacher's per-shape Support(direction) method.
package collision

import (
	"math"

	"github.com/akmonengine/physics2d/body"
	"github.com/akmonengine/physics2d/shape"
	"github.com/akmonengine/physics2d/vecmath"
)

// axisProjector projects a shape onto a candidate separating axis,
// returning the interval [min,max] of the projection.
type axisProjector interface {
	ProjectOntoAxis(axis vecmath.Vec2) (min, max float64)
}

type polygonProjector struct{ vertices []vecmath.Vec2 }

func (p polygonProjector) ProjectOntoAxis(axis vecmath.Vec2) (float64, float64) {
	min := vecmath.Dot(p.vertices[0], axis)
	max := min
	for _, v := range p.vertices[1:] {
		d := vecmath.Dot(v, axis)
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	return min, max
}

type circleProjector struct {
	center vecmath.Vec2
	radius float64
}

func (c circleProjector) ProjectOntoAxis(axis vecmath.Vec2) (float64, float64) {
	d := vecmath.Dot(c.center, axis)
	return d - c.radius, d + c.radius
}

func isPolygonal(k shape.Kind) bool {
	return k == shape.Rectangle || k == shape.Polygon
}

// AABBOverlap is the broad-phase AABB test (spec.md §4.5): strict
// inequality on each axis, so merely touching boxes do not overlap.
func AABBOverlap(a, b *body.Body) bool {
	return a.AABB().Overlaps(b.AABB())
}

// Intersect dispatches narrowphase SAT by shape kind and returns whether
// a and b overlap, their penetration depth, and a unit normal pointing
// from a toward b.
func Intersect(a, b *body.Body) (intersects bool, depth float64, normal vecmath.Vec2) {
	if a.Shape.Kind == shape.None || b.Shape.Kind == shape.None {
		return false, 0, vecmath.Vec2{}
	}

	aCircle := a.Shape.Kind == shape.Circle
	bCircle := b.Shape.Kind == shape.Circle

	switch {
	case aCircle && bCircle:
		return circleCircle(a, b)
	case !aCircle && !bCircle:
		return polygonPolygon(a, b)
	case !aCircle && bCircle:
		// normal from polygonCircle points polygon->circle, i.e. a->b already.
		return polygonCircle(a, b)
	default: // aCircle && !bCircle
		intersects, depth, n := polygonCircle(b, a)
		// n points polygon(b)->circle(a); we need a->b, the reverse.
		return intersects, depth, n.Mul(-1)
	}
}

func circleCircle(a, b *body.Body) (bool, float64, vecmath.Vec2) {
	d := vecmath.Distance(a.Position, b.Position)
	sumRadii := a.Shape.Radius + b.Shape.Radius
	if d >= sumRadii {
		return false, 0, vecmath.Vec2{}
	}
	normal := vecmath.Normalize(b.Position.Sub(a.Position))
	return true, sumRadii - d, normal
}

func polygonPolygon(a, b *body.Body) (bool, float64, vecmath.Vec2) {
	va := a.TransformedVertices()
	vb := b.TransformedVertices()
	pa := polygonProjector{va}
	pb := polygonProjector{vb}

	minOverlap := math.MaxFloat64
	var bestAxis vecmath.Vec2
	found := false

	for _, edges := range [][]vecmath.Vec2{va, vb} {
		n := len(edges)
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			edge := edges[j].Sub(edges[i])
			axis := vecmath.Normalize(vecmath.Perp(edge))

			minA, maxA := pa.ProjectOntoAxis(axis)
			minB, maxB := pb.ProjectOntoAxis(axis)

			overlap := math.Min(maxA, maxB) - math.Max(minA, minB)
			if overlap <= 0 {
				return false, 0, vecmath.Vec2{}
			}
			if overlap < minOverlap {
				minOverlap = overlap
				bestAxis = axis
				found = true
			}
		}
	}
	if !found {
		return false, 0, vecmath.Vec2{}
	}

	normal := bestAxis
	if vecmath.Dot(b.Position.Sub(a.Position), normal) < 0 {
		normal = normal.Mul(-1)
	}
	return true, minOverlap, normal
}

// polygonCircle runs SAT between a polygonal body poly and a circular
// body circ, returning a normal that points from poly toward circ.
func polygonCircle(poly, circ *body.Body) (bool, float64, vecmath.Vec2) {
	vertices := poly.TransformedVertices()
	pp := polygonProjector{vertices}
	pc := circleProjector{circ.Position, circ.Shape.Radius}

	minOverlap := math.MaxFloat64
	var bestAxis vecmath.Vec2

	n := len(vertices)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		edge := vertices[j].Sub(vertices[i])
		axis := vecmath.Normalize(vecmath.Perp(edge))

		minA, maxA := pp.ProjectOntoAxis(axis)
		minB, maxB := pc.ProjectOntoAxis(axis)

		overlap := math.Min(maxA, maxB) - math.Max(minA, minB)
		if overlap <= 0 {
			return false, 0, vecmath.Vec2{}
		}
		if overlap < minOverlap {
			minOverlap = overlap
			bestAxis = axis
		}
	}

	// Extra "corner" axis: the direction from the closest vertex to the
	// circle center, covering the Voronoi region outside any single edge.
	closest := vertices[0]
	closestDistSq := vecmath.SquareDistance(circ.Position, closest)
	for _, v := range vertices[1:] {
		d := vecmath.SquareDistance(circ.Position, v)
		if d < closestDistSq {
			closestDistSq = d
			closest = v
		}
	}
	cornerAxis := vecmath.Normalize(closest.Sub(circ.Position))
	minA, maxA := pp.ProjectOntoAxis(cornerAxis)
	minB, maxB := pc.ProjectOntoAxis(cornerAxis)
	overlap := math.Min(maxA, maxB) - math.Max(minA, minB)
	if overlap <= 0 {
		return false, 0, vecmath.Vec2{}
	}
	if overlap < minOverlap {
		minOverlap = overlap
		bestAxis = cornerAxis
	}

	normal := bestAxis
	if vecmath.Dot(circ.Position.Sub(poly.Position), normal) < 0 {
		normal = normal.Mul(-1)
	}
	return true, minOverlap, normal
}

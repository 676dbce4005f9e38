// Package shape implements the tagged shape variants bodies carry
// (Circle, Rectangle, Polygon, and the empty None shape newly created
// bodies start with) and the predefined-polygon catalog.
//
// The teacher (akmonengine/feather) models shapes as a ShapeInterface with
// one concrete type per variant (Box, Sphere, Plane); spec.md's design
// notes ask for a single sum type per concept instead, so this package
// collapses the variants into one Shape struct carrying a Kind tag plus
// only the fields that kind uses — idiomatic Go's answer to a tagged
// union, since the language has no payload-carrying enum.
package shape

import (
	"github.com/pkg/errors"

	"github.com/akmonengine/physics2d/vecmath"
)

// Kind tags which variant a Shape holds.
type Kind int

const (
	None Kind = iota
	Circle
	Rectangle
	Polygon
)

// ErrInvalid is wrapped with context when a shape fails validation.
var ErrInvalid = errors.New("invalid shape")

// Shape is a tagged union over the four shape variants. Only the fields
// relevant to Kind are meaningful; the rest are zero.
type Shape struct {
	Kind Kind

	Radius float64 // Circle

	Width, Height float64 // Rectangle

	Vertices []vecmath.Vec2 // Polygon, counter-clockwise, convex, body-local
}

// NewCircle builds a circle shape of the given radius.
func NewCircle(radius float64) (Shape, error) {
	if radius <= 0 {
		return Shape{}, errors.Wrapf(ErrInvalid, "circle radius must be > 0, got %v", radius)
	}
	return Shape{Kind: Circle, Radius: radius}, nil
}

// NewRectangle builds an axis-aligned (in local space) rectangle shape.
func NewRectangle(width, height float64) (Shape, error) {
	if width <= 0 {
		return Shape{}, errors.Wrapf(ErrInvalid, "rectangle width must be > 0, got %v", width)
	}
	if height <= 0 {
		return Shape{}, errors.Wrapf(ErrInvalid, "rectangle height must be > 0, got %v", height)
	}
	return Shape{Kind: Rectangle, Width: width, Height: height}, nil
}

// NewPolygon builds a convex polygon shape from local-space vertices in
// counter-clockwise winding order. The vertex slice is defensively copied.
func NewPolygon(vertices []vecmath.Vec2) (Shape, error) {
	if len(vertices) < 3 {
		return Shape{}, errors.Wrapf(ErrInvalid, "polygon needs >= 3 vertices, got %d", len(vertices))
	}
	cp := make([]vecmath.Vec2, len(vertices))
	copy(cp, vertices)
	return Shape{Kind: Polygon, Vertices: cp}, nil
}

// LocalArea returns the shoelace-formula area of a Polygon shape (zero
// for other kinds). The result is not yet in absolute value — callers
// computing mass want |LocalArea|; callers computing the inertia
// centroid need the signed value before taking the absolute value
// downstream, per spec.md's open question 2.
func (s Shape) LocalArea() float64 {
	if s.Kind != Polygon || len(s.Vertices) < 3 {
		return 0
	}
	var sum float64
	n := len(s.Vertices)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += s.Vertices[i][0]*s.Vertices[j][1] - s.Vertices[j][0]*s.Vertices[i][1]
	}
	return sum / 2
}

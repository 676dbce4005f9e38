// Package body implements the simulation's body data model: pose and
// motion state, the dirty-bit cache of derived quantities (transformed
// vertices/AABB, mass, angular mass), and the per-body integration and
// impulse-application operations spec.md §4.4 describes.
//
// This is the generalization of the teacher's actor package: actor.Body,
// actor.Transform, actor.AABB and the Box/Sphere mass/inertia formulas in
// actor/shape.go all reappear here, reshaped around the tagged shape.Shape
// sum type and spec.md's three-flag dirty cache (transformDirty,
// massDirty, angularMassDirty) instead of the teacher's always-fresh
// ComputeAABB-on-integrate approach.
package body

import (
	"math"

	"github.com/akmonengine/physics2d/material"
	"github.com/akmonengine/physics2d/shape"
	"github.com/akmonengine/physics2d/vecmath"
)

// Type is the role a body plays in integration and the solver: a Static
// body never moves and has infinite effective mass/inertia; a Kinematic
// body has mass but no angular response; a Dynamic body has full
// translational and rotational response.
type Type int

const (
	Static Type = iota
	Kinematic
	Dynamic
)

const epsilon = 1e-9

// Body is a rigid body: pose, motion, shape, material, and the cached
// derived quantities the rest of the simulation reads.
type Body struct {
	ID   uint64
	Type Type

	Position        vecmath.Vec2
	Velocity        vecmath.Vec2
	Rotation        float64
	AngularVelocity float64

	MaterialID int
	Shape      shape.Shape

	transformDirty   bool
	massDirty        bool
	angularMassDirty bool

	transformedVertices []vecmath.Vec2
	transformedAABB     AABB

	mass, invMass               float64
	angularMass, invAngularMass float64
}

// New creates a body with shape=None, the process-wide default material,
// and zero motion, the way the teacher's NewRigidBody always starts from
// an identity Transform and zero Velocity.
func New(id uint64, bodyType Type) *Body {
	defaultMat, err := material.Default()
	materialID := 0
	if err == nil {
		materialID = defaultMat.ID
	}

	b := &Body{
		ID:               id,
		Type:             bodyType,
		MaterialID:       materialID,
		transformDirty:   true,
		massDirty:        true,
		angularMassDirty: true,
	}
	return b
}

func (b *Body) markTransformDirty() {
	b.transformDirty = true
}

func (b *Body) markMassDirty() {
	b.massDirty = true
	b.angularMassDirty = true
}

// SetPosition moves the body, invalidating its transform cache.
func (b *Body) SetPosition(p vecmath.Vec2) {
	b.Position = p
	b.markTransformDirty()
}

// SetRotation reorients the body, invalidating its transform cache.
func (b *Body) SetRotation(theta float64) {
	b.Rotation = theta
	b.markTransformDirty()
}

// SetVelocity sets linear velocity directly (no cache implication).
func (b *Body) SetVelocity(v vecmath.Vec2) {
	b.Velocity = v
}

// SetAngularVelocity sets angular velocity directly (no cache implication).
func (b *Body) SetAngularVelocity(w float64) {
	b.AngularVelocity = w
}

// SetMaterialID reassigns the body's material, invalidating mass (which
// implies angular mass) since density may have changed.
func (b *Body) SetMaterialID(id int) {
	b.MaterialID = id
	b.markMassDirty()
}

// SetShape reassigns the body's shape, invalidating both the transform
// cache (new local geometry) and the mass cache (new area/dimensions).
func (b *Body) SetShape(s shape.Shape) {
	b.Shape = s
	b.markTransformDirty()
	b.markMassDirty()
}

// TransformedVertices returns the body's world-space vertices, empty for
// a Circle, recomputing from the dirty transform cache if necessary.
func (b *Body) TransformedVertices() []vecmath.Vec2 {
	b.recomputeTransform()
	return b.transformedVertices
}

// AABB returns the body's world-space axis-aligned bounding box,
// recomputing from the dirty transform cache if necessary.
func (b *Body) AABB() AABB {
	b.recomputeTransform()
	return b.transformedAABB
}

func (b *Body) recomputeTransform() {
	if !b.transformDirty {
		return
	}

	switch b.Shape.Kind {
	case shape.Circle:
		b.transformedVertices = nil
		r := b.Shape.Radius
		b.transformedAABB = AABB{
			Min: vecmath.New(b.Position[0]-r, b.Position[1]-r),
			Max: vecmath.New(b.Position[0]+r, b.Position[1]+r),
		}

	case shape.Rectangle:
		hw, hh := b.Shape.Width/2, b.Shape.Height/2
		local := [4]vecmath.Vec2{
			vecmath.New(hw, hh),   // TR
			vecmath.New(-hw, hh),  // TL
			vecmath.New(-hw, -hh), // BL
			vecmath.New(hw, -hh),  // BR
		}
		b.transformedVertices = b.transformLocal(local[:])
		b.transformedAABB = aabbOf(b.transformedVertices)

	case shape.Polygon:
		b.transformedVertices = b.transformLocal(b.Shape.Vertices)
		b.transformedAABB = aabbOf(b.transformedVertices)

	default: // None
		b.transformedVertices = nil
		b.transformedAABB = AABB{Min: b.Position, Max: b.Position}
	}

	b.transformDirty = false
}

func (b *Body) transformLocal(local []vecmath.Vec2) []vecmath.Vec2 {
	cos, sin := math.Cos(b.Rotation), math.Sin(b.Rotation)
	out := make([]vecmath.Vec2, len(local))
	for i, v := range local {
		out[i] = vecmath.New(
			b.Position[0]+v[0]*cos-v[1]*sin,
			b.Position[1]+v[0]*sin+v[1]*cos,
		)
	}
	return out
}

func aabbOf(vertices []vecmath.Vec2) AABB {
	min, max := vertices[0], vertices[0]
	for _, v := range vertices[1:] {
		if v[0] < min[0] {
			min[0] = v[0]
		}
		if v[1] < min[1] {
			min[1] = v[1]
		}
		if v[0] > max[0] {
			max[0] = v[0]
		}
		if v[1] > max[1] {
			max[1] = v[1]
		}
	}
	return AABB{Min: min, Max: max}
}

// Mass returns the body's mass, recomputing from the dirty mass cache if
// necessary. Always zero for Static bodies.
func (b *Body) Mass() float64 {
	b.recomputeMass()
	return b.mass
}

// InvMass returns 1/Mass(), or zero when Mass() is zero.
func (b *Body) InvMass() float64 {
	b.recomputeMass()
	return b.invMass
}

// AngularMass returns the body's rotational inertia about its reference
// point (for a Polygon, about the polygon's centroid; see
// polygonAngularMass), recomputing from the dirty cache if necessary.
// Always zero for Static bodies.
func (b *Body) AngularMass() float64 {
	b.recomputeAngularMass()
	return b.angularMass
}

// InvAngularMass returns 1/AngularMass(), or zero when AngularMass() is
// zero.
func (b *Body) InvAngularMass() float64 {
	b.recomputeAngularMass()
	return b.invAngularMass
}

func (b *Body) density() float64 {
	mat, err := material.Get(b.MaterialID)
	if err != nil {
		return 0
	}
	return mat.Density
}

func (b *Body) recomputeMass() {
	if !b.massDirty {
		return
	}

	var m float64
	if b.Type != Static {
		density := b.density()
		switch b.Shape.Kind {
		case shape.Circle:
			m = math.Pi * b.Shape.Radius * b.Shape.Radius * density
		case shape.Rectangle:
			m = b.Shape.Width * b.Shape.Height * density
		case shape.Polygon:
			m = math.Abs(b.Shape.LocalArea()) * density
		}
	}

	b.mass = m
	if m > 0 {
		b.invMass = 1 / m
	} else {
		b.invMass = 0
	}
	b.massDirty = false
}

func (b *Body) recomputeAngularMass() {
	if !b.angularMassDirty {
		return
	}

	m := b.Mass()
	var i float64
	if b.Type != Static {
		switch b.Shape.Kind {
		case shape.Circle:
			i = 0.5 * m * b.Shape.Radius * b.Shape.Radius
		case shape.Rectangle:
			i = (m / 12) * (b.Shape.Width*b.Shape.Width + b.Shape.Height*b.Shape.Height)
		case shape.Polygon:
			i = polygonAngularMass(b.Shape.Vertices, m, b.density())
		}
	}

	b.angularMass = i
	if i > 0 {
		b.invAngularMass = 1 / i
	} else {
		b.invAngularMass = 0
	}
	b.angularMassDirty = false
}

// polygonAngularMass computes rotational inertia about the polygon's
// centroid: area A and centroid c from the standard polygon formulas,
// "area inertia" about the origin from the standard second-moment
// formula, then the parallel-axis shift back to the centroid
// (spec.md §4.4).
func polygonAngularMass(vertices []vecmath.Vec2, mass, density float64) float64 {
	n := len(vertices)
	if n < 3 {
		return 0
	}

	var area, areaInertia, cx, cy float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		xi, yi := vertices[i][0], vertices[i][1]
		xj, yj := vertices[j][0], vertices[j][1]
		cr := xi*yj - xj*yi

		area += cr
		cx += (xi + xj) * cr
		cy += (yi + yj) * cr
		areaInertia += cr * (xi*xi + xi*xj + xj*xj + yi*yi + yi*yj + yj*yj)
	}
	area /= 2
	if area == 0 {
		return 0
	}
	cx /= 6 * area
	cy /= 6 * area
	areaInertia /= 12

	iOrigin := density * areaInertia
	iCentroid := iOrigin - mass*(cx*cx+cy*cy)

	if math.Abs(iCentroid) < epsilon {
		return 0
	}
	if iCentroid < 0 {
		return -iCentroid
	}
	return iCentroid
}

// Integrate advances the body one substep of dt: position and rotation
// drift by velocity and angular velocity, each damped by the body's
// material drag (spec.md §4.4). Static bodies are left entirely alone —
// external writes via SetPosition/SetRotation still take effect, only the
// integrator itself is a no-op.
func (b *Body) Integrate(dt float64) {
	if b.Type == Static {
		return
	}

	mat, err := material.Get(b.MaterialID)
	linearDrag, angularDrag := 0.0, 0.0
	if err == nil {
		linearDrag, angularDrag = mat.LinearDrag, mat.AngularDrag
	}

	if vecmath.Magnitude(b.Velocity) > 0 {
		k := math.Exp(-linearDrag * dt)
		b.Velocity = b.Velocity.Mul(k)
		b.Position = b.Position.Add(b.Velocity.Mul(dt))
		b.markTransformDirty()
	}

	if b.AngularVelocity != 0 {
		k := math.Exp(-angularDrag * dt)
		b.AngularVelocity *= k
		b.Rotation += b.AngularVelocity * dt
		b.markTransformDirty()
	}
}

// ApplyImpulseTranslation applies a translation-only impulse: velocity
// changes by impulse*invMass, with no angular effect. Used for kinematic
// participants in the solver, which have no rotational degree of freedom.
func (b *Body) ApplyImpulseTranslation(impulse vecmath.Vec2) {
	b.Velocity = b.Velocity.Add(impulse.Mul(b.InvMass()))
}

// ApplyImpulse applies a translational + rotational impulse at a point
// offset r from the body's position: velocity changes by impulse*invMass,
// angular velocity changes by cross(r, impulse)*invAngularMass. Used for
// dynamic participants in the solver.
func (b *Body) ApplyImpulse(r, impulse vecmath.Vec2) {
	b.Velocity = b.Velocity.Add(impulse.Mul(b.InvMass()))
	b.AngularVelocity += vecmath.Cross(r, impulse) * b.InvAngularMass()
}

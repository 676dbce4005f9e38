// Package solver implements the constraint solver: position correction
// along the collision normal, and sequential velocity impulses (normal
// restitution then tangential Coulomb friction) for every combination of
// body types a colliding pair can have.
//
// The teacher solves contacts with constraint.Contact, a struct holding
// two *actor.RigidBody pointers plus a sync.Mutex and resolving them from
// a goroutine pool (pipeline.go). This package keeps the teacher's
// normal-impulse-then-friction sequencing and its r×n/invInertia algebra
// (constraint/contact.go's SolveVelocity) but drops the concurrency: the
// solver here is called synchronously, once per overlapping pair per
// substep, and has no internal locking to match.
package solver

import (
	"math"

	"github.com/akmonengine/physics2d/body"
	"github.com/akmonengine/physics2d/material"
	"github.com/akmonengine/physics2d/vecmath"
)

const tangentEpsilon = 1e-9

// Options configures solver behavior where spec.md documents open
// questions about intended behavior rather than a single fixed rule.
type Options struct {
	// ConventionalMassRatio selects the textbook position-correction
	// split (lighter body moves more) instead of the default behavior
	// this package reproduces, where the heavier body moves more.
	ConventionalMassRatio bool
}

// DefaultOptions reproduces the documented current behavior: position
// correction displaces the heavier body more, not less.
var DefaultOptions = Options{}

// PositionCorrect resolves penetration depth along normal (pointing from
// a to b) between a and b, before any velocity impulse is applied.
func PositionCorrect(a, b *body.Body, depth float64, normal vecmath.Vec2, opts Options) {
	aStatic := a.Type == body.Static
	bStatic := b.Type == body.Static

	switch {
	case aStatic && bStatic:
		return
	case aStatic:
		b.SetPosition(b.Position.Add(normal.Mul(depth)))
	case bStatic:
		a.SetPosition(a.Position.Sub(normal.Mul(depth)))
	default:
		m1, m2 := a.Mass(), b.Mass()
		total := m1 + m2
		if total == 0 {
			return
		}
		var r1, r2 float64
		if opts.ConventionalMassRatio {
			invTotal := a.InvMass() + b.InvMass()
			if invTotal == 0 {
				return
			}
			r1 = a.InvMass() / invTotal
			r2 = b.InvMass() / invTotal
		} else {
			r1 = m1 / total
			r2 = m2 / total
		}
		a.SetPosition(a.Position.Sub(normal.Mul(depth * r1)))
		b.SetPosition(b.Position.Add(normal.Mul(depth * r2)))
	}
}

// ResolveVelocity dispatches the sequential-impulse velocity solve for a
// colliding pair on (a.Type, b.Type), using the contact manifold and a
// normal that points from a to b.
func ResolveVelocity(a, b *body.Body, contacts []vecmath.Vec2, normal vecmath.Vec2, matA, matB *material.Material) {
	if len(contacts) == 0 {
		return
	}

	restitution := material.CombineRestitution(matA, matB)
	muS := material.CombineStaticFriction(matA, matB)
	muD := material.CombineDynamicFriction(matA, matB)

	switch {
	case a.Type == body.Static && b.Type == body.Static:
		return
	case a.Type == body.Dynamic && b.Type == body.Dynamic:
		dynamicDynamic(a, b, contacts, normal, restitution, muS, muD)
	case a.Type == body.Dynamic || b.Type == body.Dynamic:
		dynamicVsOther(a, b, contacts, normal, restitution, muS, muD)
	default:
		kinematicPair(a, b, normal, restitution, muS, muD)
	}
}

func pointVelocity(b *body.Body, r vecmath.Vec2) vecmath.Vec2 {
	return b.Velocity.Add(vecmath.CrossScalar(b.AngularVelocity, r))
}

func dynamicDynamic(a, b *body.Body, contacts []vecmath.Vec2, normal vecmath.Vec2, restitution, muS, muD float64) {
	invM1, invM2 := a.InvMass(), b.InvMass()
	invI1, invI2 := a.InvAngularMass(), b.InvAngularMass()

	js := make([]float64, len(contacts))
	for i, c := range contacts {
		r1 := c.Sub(a.Position)
		r2 := c.Sub(b.Position)
		vRel := pointVelocity(b, r2).Sub(pointVelocity(a, r1))
		vn := vecmath.Dot(vRel, normal)
		if vn > 0 {
			continue
		}
		rn1 := vecmath.Cross(r1, normal)
		rn2 := vecmath.Cross(r2, normal)
		denom := invM1 + invM2 + rn1*rn1*invI1 + rn2*rn2*invI2
		if denom == 0 {
			continue
		}
		j := -(1 + restitution) * vn / denom
		js[i] = j
		impulse := normal.Mul(j)
		a.ApplyImpulse(r1, impulse.Mul(-1))
		b.ApplyImpulse(r2, impulse)
	}

	for i, c := range contacts {
		j := js[i]
		if j == 0 {
			continue
		}
		r1 := c.Sub(a.Position)
		r2 := c.Sub(b.Position)
		vRel := pointVelocity(b, r2).Sub(pointVelocity(a, r1))
		vn := vecmath.Dot(vRel, normal)
		tangentRaw := vRel.Sub(normal.Mul(vn))
		if vecmath.Magnitude(tangentRaw) < tangentEpsilon {
			continue
		}
		t := vecmath.Normalize(tangentRaw)
		rt1 := vecmath.Cross(r1, t)
		rt2 := vecmath.Cross(r2, t)
		denom := invM1 + invM2 + rt1*rt1*invI1 + rt2*rt2*invI2
		if denom == 0 {
			continue
		}
		vt := vecmath.Dot(vRel, t)
		jt := -vt / denom

		var impulse vecmath.Vec2
		if math.Abs(jt) <= j*muS {
			impulse = t.Mul(jt)
		} else {
			impulse = t.Mul(-j * muD)
		}
		a.ApplyImpulse(r1, impulse.Mul(-1))
		b.ApplyImpulse(r2, impulse)
	}
}

// dynamicVsOther handles (Dynamic,Kinematic), (Dynamic,Static) and their
// reverses: exactly one of a,b is Dynamic.
func dynamicVsOther(a, b *body.Body, contacts []vecmath.Vec2, normal vecmath.Vec2, restitution, muS, muD float64) {
	dyn, other := a, b
	sign := 1.0
	if a.Type != body.Dynamic {
		dyn, other = b, a
		sign = -1
	}
	// normalTowardOther points from dyn to other, consistent with `normal`
	// pointing from a to b regardless of which one is dynamic.
	normalTowardOther := normal.Mul(sign)
	contactCount := float64(len(contacts))

	for _, c := range contacts {
		r := c.Sub(dyn.Position)
		vRel := other.Velocity.Sub(pointVelocity(dyn, r))
		vn := vecmath.Dot(vRel, normalTowardOther)
		if vn > 0 {
			continue
		}
		rn := vecmath.Cross(r, normalTowardOther)
		denom := dyn.InvMass() + rn*rn*dyn.InvAngularMass()
		if denom == 0 {
			continue
		}
		j := -(1 + restitution) * vn / denom / contactCount
		impulse := normalTowardOther.Mul(j)
		dyn.ApplyImpulse(r, impulse.Mul(-1))
		if other.Type == body.Kinematic {
			other.ApplyImpulseTranslation(impulse)
		}

		tangentRaw := vRel.Sub(normalTowardOther.Mul(vn))
		if vecmath.Magnitude(tangentRaw) < tangentEpsilon {
			continue
		}
		t := vecmath.Normalize(tangentRaw)
		rt := vecmath.Cross(r, t)
		denomT := dyn.InvMass() + rt*rt*dyn.InvAngularMass()
		if denomT == 0 {
			continue
		}
		vt := vecmath.Dot(vRel, t)
		jt := -vt / denomT

		var fImpulse vecmath.Vec2
		if math.Abs(jt) <= j*muS {
			fImpulse = t.Mul(jt)
		} else {
			fImpulse = t.Mul(-j * muD)
		}
		dyn.ApplyImpulse(r, fImpulse.Mul(-1))
		if other.Type == body.Kinematic {
			other.ApplyImpulseTranslation(fImpulse)
		}
	}
}

// kinematicPair handles (Kinematic,Kinematic) and (Kinematic,Static) (in
// either order): translation-only, a single implicit contact at the
// bodies' positions.
func kinematicPair(a, b *body.Body, normal vecmath.Vec2, restitution, muS, muD float64) {
	invM1, invM2 := a.InvMass(), b.InvMass()
	denom := invM1 + invM2
	if denom == 0 {
		return
	}

	vRel := b.Velocity.Sub(a.Velocity)
	vn := vecmath.Dot(vRel, normal)
	if vn > 0 {
		return
	}
	j := -(1 + restitution) * vn / denom
	a.ApplyImpulseTranslation(normal.Mul(-j))
	b.ApplyImpulseTranslation(normal.Mul(j))

	t := vecmath.Perp(normal)
	vt := vecmath.Dot(vRel, t)
	jt := -vt / denom

	var impulse vecmath.Vec2
	if math.Abs(jt) <= j*muS {
		impulse = t.Mul(jt)
	} else {
		magnitude := j * muD
		if jt < 0 {
			magnitude = -magnitude
		}
		impulse = t.Mul(magnitude)
	}
	a.ApplyImpulseTranslation(impulse.Mul(-1))
	b.ApplyImpulseTranslation(impulse)
}

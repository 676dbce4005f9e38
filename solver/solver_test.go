package solver

import (
	"math"
	"testing"

	"github.com/akmonengine/physics2d/body"
	"github.com/akmonengine/physics2d/material"
	"github.com/akmonengine/physics2d/shape"
	"github.com/akmonengine/physics2d/vecmath"
)

func floatEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) < tolerance
}

func newCircle(id uint64, t body.Type, x, y, r float64, matName string) *body.Body {
	b := body.New(id, t)
	s, _ := shape.NewCircle(r)
	b.SetShape(s)
	b.SetPosition(vecmath.New(x, y))
	if matName != "" {
		m, err := material.GetByName(matName)
		if err == nil {
			b.SetMaterialID(m.ID)
		}
	}
	return b
}

func mat(t *testing.T, name string) *material.Material {
	t.Helper()
	m, err := material.GetByName(name)
	if err != nil {
		t.Fatalf("GetByName(%s): %v", name, err)
	}
	return m
}

func TestPositionCorrectBothStaticNoOp(t *testing.T) {
	a := newCircle(1, body.Static, 0, 0, 1, "")
	b := newCircle(2, body.Static, 1, 0, 1, "")
	PositionCorrect(a, b, 1, vecmath.New(1, 0), DefaultOptions)

	if a.Position != vecmath.New(0, 0) || b.Position != vecmath.New(1, 0) {
		t.Error("static-static position correction must be a no-op")
	}
}

func TestPositionCorrectOneStaticMovesOther(t *testing.T) {
	a := newCircle(1, body.Static, 0, 0, 1, "Wood")
	b := newCircle(2, body.Dynamic, 1, 0, 1, "Wood")
	PositionCorrect(a, b, 0.5, vecmath.New(1, 0), DefaultOptions)

	if a.Position != vecmath.New(0, 0) {
		t.Error("static body must not move")
	}
	if !floatEqual(b.Position[0], 1.5, 1e-9) {
		t.Errorf("dynamic body x = %v, want 1.5", b.Position[0])
	}
}

func TestPositionCorrectHeavierMovesMoreByDefault(t *testing.T) {
	a := newCircle(1, body.Dynamic, 0, 0, 1, "Lead")
	b := newCircle(2, body.Dynamic, 1, 0, 1, "Wood")
	PositionCorrect(a, b, 1.0, vecmath.New(1, 0), DefaultOptions)

	movedA := -a.Position[0]
	movedB := b.Position[0] - 1
	if movedA <= movedB {
		t.Errorf("expected heavier body (Lead, a) to move more: movedA=%v movedB=%v", movedA, movedB)
	}
}

func TestPositionCorrectConventionalRatioFavorsLighterMovingMore(t *testing.T) {
	a := newCircle(1, body.Dynamic, 0, 0, 1, "Lead")
	b := newCircle(2, body.Dynamic, 1, 0, 1, "Wood")
	PositionCorrect(a, b, 1.0, vecmath.New(1, 0), Options{ConventionalMassRatio: true})

	movedA := -a.Position[0]
	movedB := b.Position[0] - 1
	if movedB <= movedA {
		t.Errorf("expected lighter body (Wood, b) to move more under conventional ratio: movedA=%v movedB=%v", movedA, movedB)
	}
}

func TestResolveVelocityDynamicDynamicHeadOnBounceApart(t *testing.T) {
	rubber := mat(t, "Rubber")
	a := newCircle(1, body.Dynamic, -1.5, 0, 1, "Rubber")
	b := newCircle(2, body.Dynamic, 1.5, 0, 1, "Rubber")
	a.SetVelocity(vecmath.New(2, 0))
	b.SetVelocity(vecmath.New(-2, 0))

	contacts := []vecmath.Vec2{vecmath.New(0, 0)}
	normal := vecmath.New(1, 0)
	ResolveVelocity(a, b, contacts, normal, rubber, rubber)

	if a.Velocity[0] >= 0 {
		t.Errorf("body a should bounce backward, got vx=%v", a.Velocity[0])
	}
	if b.Velocity[0] <= 0 {
		t.Errorf("body b should bounce backward, got vx=%v", b.Velocity[0])
	}
}

func TestResolveVelocityDynamicVsStaticReflects(t *testing.T) {
	rubber := mat(t, "Rubber")
	stone := mat(t, "Stone")
	ground := newCircle(1, body.Static, 0, -1, 1, "Stone")
	ball := newCircle(2, body.Dynamic, 0, 1, 1, "Rubber")
	ball.SetVelocity(vecmath.New(0, -5))

	contacts := []vecmath.Vec2{vecmath.New(0, 0)}
	normal := vecmath.New(0, 1) // ground -> ball
	ResolveVelocity(ground, ball, contacts, normal, stone, rubber)

	if ball.Velocity[1] <= 0 {
		t.Errorf("ball should bounce upward off static ground, got vy=%v", ball.Velocity[1])
	}
	if ground.Velocity != (vecmath.Vec2{}) {
		t.Error("static body must never receive velocity")
	}
}

func TestResolveVelocityKinematicPairSeparates(t *testing.T) {
	wood := mat(t, "Wood")
	a := newCircle(1, body.Kinematic, -1, 0, 1, "Wood")
	b := newCircle(2, body.Kinematic, 1, 0, 1, "Wood")
	a.SetVelocity(vecmath.New(1, 0))
	b.SetVelocity(vecmath.New(-1, 0))

	ResolveVelocity(a, b, []vecmath.Vec2{vecmath.New(0, 0)}, vecmath.New(1, 0), wood, wood)

	if a.Velocity[0] >= 1 {
		t.Errorf("a.vx should decrease from approach impulse, got %v", a.Velocity[0])
	}
	if b.Velocity[0] <= -1 {
		t.Errorf("b.vx should increase from approach impulse, got %v", b.Velocity[0])
	}
	if a.AngularVelocity != 0 || b.AngularVelocity != 0 {
		t.Error("kinematic-kinematic resolution must stay translation-only")
	}
}

func TestResolveVelocitySeparatingPairIsUntouched(t *testing.T) {
	wood := mat(t, "Wood")
	a := newCircle(1, body.Dynamic, -1, 0, 1, "Wood")
	b := newCircle(2, body.Dynamic, 1, 0, 1, "Wood")
	a.SetVelocity(vecmath.New(-1, 0))
	b.SetVelocity(vecmath.New(1, 0))

	ResolveVelocity(a, b, []vecmath.Vec2{vecmath.New(0, 0)}, vecmath.New(1, 0), wood, wood)

	if a.Velocity != vecmath.New(-1, 0) || b.Velocity != vecmath.New(1, 0) {
		t.Error("already-separating bodies must not receive a normal impulse")
	}
}

func TestResolveVelocityStaticStaticNoOp(t *testing.T) {
	stone := mat(t, "Stone")
	a := newCircle(1, body.Static, 0, 0, 1, "Stone")
	b := newCircle(2, body.Static, 1, 0, 1, "Stone")
	ResolveVelocity(a, b, []vecmath.Vec2{vecmath.New(0.5, 0)}, vecmath.New(1, 0), stone, stone)

	if a.Velocity != (vecmath.Vec2{}) || b.Velocity != (vecmath.Vec2{}) {
		t.Error("static-static resolution must be a no-op")
	}
}

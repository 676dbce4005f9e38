package physics2d

import (
	"math"
	"testing"

	"github.com/akmonengine/physics2d/body"
	"github.com/akmonengine/physics2d/collision"
	"github.com/akmonengine/physics2d/material"
	"github.com/akmonengine/physics2d/shape"
	"github.com/akmonengine/physics2d/vecmath"
)

func floatEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) < tolerance
}

func materialID(t *testing.T, name string) int {
	t.Helper()
	m, err := material.GetByName(name)
	if err != nil {
		t.Fatalf("GetByName(%s): %v", name, err)
	}
	return m.ID
}

func TestWorldLifecycle(t *testing.T) {
	id := CreateWorld()
	if !Exists(id) {
		t.Fatal("world should exist right after creation")
	}
	if err := Destroy(id); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if Exists(id) {
		t.Fatal("world should not exist after Destroy")
	}
	if err := Destroy(id); err == nil {
		t.Error("destroying an already-destroyed world should error")
	}
}

func TestDestroyZeroIsAlreadyDestroyed(t *testing.T) {
	if err := Destroy(0); err == nil {
		t.Error("Destroy(0) should error")
	}
}

func TestBodyLifecycleAndNotFound(t *testing.T) {
	worldID := CreateWorld()
	defer Destroy(worldID)

	bodyID, err := CreateDynamicBody(worldID)
	if err != nil {
		t.Fatalf("CreateDynamicBody: %v", err)
	}
	has, err := HasBody(worldID, bodyID)
	if err != nil || !has {
		t.Fatalf("HasBody = %v, %v, want true, nil", has, err)
	}

	if err := DestroyBody(worldID, bodyID); err != nil {
		t.Fatalf("DestroyBody: %v", err)
	}
	if _, err := GetPosition(worldID, bodyID); err == nil {
		t.Error("GetPosition on destroyed body should error")
	}
}

func TestSetIterationsClampsNonPositive(t *testing.T) {
	worldID := CreateWorld()
	defer Destroy(worldID)

	if err := SetIterations(worldID, -3); err != nil {
		t.Fatalf("SetIterations: %v", err)
	}
	n, _ := GetIterations(worldID)
	if n != DefaultIterations {
		t.Errorf("iterations = %v, want default %v", n, DefaultIterations)
	}
}

func TestTickNonPositiveDtIsNoOp(t *testing.T) {
	worldID := CreateWorld()
	defer Destroy(worldID)

	bodyID, _ := CreateDynamicBody(worldID)
	SetVelocity(worldID, bodyID, vecmath.New(5, 0))
	before, _ := GetPosition(worldID, bodyID)

	if err := Tick(worldID, 0); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	after, _ := GetPosition(worldID, bodyID)
	if before != after {
		t.Error("tick with dt<=0 must not advance time")
	}
}

func TestApplyGravityIsVelocityDeltaNotAcceleration(t *testing.T) {
	worldID := CreateWorld()
	defer Destroy(worldID)

	staticID, _ := CreateStaticBody(worldID)
	dynID, _ := CreateDynamicBody(worldID)

	if err := ApplyGravity(worldID, 0, -1); err != nil {
		t.Fatalf("ApplyGravity: %v", err)
	}

	v, _ := GetVelocity(worldID, dynID)
	if !floatEqual(v[1], -1, 1e-9) {
		t.Errorf("dynamic velocity.y = %v, want -1 (pure delta, no dt scaling)", v[1])
	}
	sv, _ := GetVelocity(worldID, staticID)
	if sv != (vecmath.Vec2{}) {
		t.Error("gravity must not move static bodies")
	}
}

func TestTwoCirclesHeadOnBounceApart(t *testing.T) {
	worldID := CreateWorld()
	defer Destroy(worldID)
	SetIterations(worldID, 4)

	rubber := materialID(t, "Rubber")
	circle, _ := shape.NewCircle(1)

	a, _ := CreateDynamicBody(worldID)
	SetShape(worldID, a, circle)
	SetMaterial(worldID, a, rubber)
	SetPosition(worldID, a, vecmath.New(-1.5, 0))
	SetVelocity(worldID, a, vecmath.New(2, 0))

	b, _ := CreateDynamicBody(worldID)
	SetShape(worldID, b, circle)
	SetMaterial(worldID, b, rubber)
	SetPosition(worldID, b, vecmath.New(1.5, 0))
	SetVelocity(worldID, b, vecmath.New(-2, 0))

	if err := Tick(worldID, 1); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	va, _ := GetVelocity(worldID, a)
	vb, _ := GetVelocity(worldID, b)
	if va[0] >= 0 {
		t.Errorf("body a should bounce back to negative vx, got %v", va[0])
	}
	if vb[0] <= 0 {
		t.Errorf("body b should bounce back to positive vx, got %v", vb[0])
	}
}

func TestCircleRestsOnStaticRectangle(t *testing.T) {
	worldID := CreateWorld()
	defer Destroy(worldID)
	SetIterations(worldID, 4)

	rect, _ := shape.NewRectangle(10, 1)
	ground, _ := CreateStaticBody(worldID)
	SetShape(worldID, ground, rect)
	SetMaterial(worldID, ground, materialID(t, "Stone"))
	SetPosition(worldID, ground, vecmath.New(0, 0))

	circle, _ := shape.NewCircle(0.5)
	ball, _ := CreateDynamicBody(worldID)
	SetShape(worldID, ball, circle)
	SetMaterial(worldID, ball, materialID(t, "Rubber"))
	SetPosition(worldID, ball, vecmath.New(0, 2))

	dt := 1.0 / 60
	for i := 0; i < 60; i++ {
		if err := ApplyGravity(worldID, 0, -1.0/60); err != nil {
			t.Fatalf("ApplyGravity: %v", err)
		}
		if err := Tick(worldID, dt); err != nil {
			t.Fatalf("Tick: %v", err)
		}
	}

	pos, _ := GetPosition(worldID, ball)
	if pos[1] < 0.4 || pos[1] > 0.7 {
		t.Errorf("ball y = %v, want roughly resting on top of the rectangle (~0.5-0.6)", pos[1])
	}
}

func TestBoundaryClampStopsAndRepositionsBody(t *testing.T) {
	worldID := CreateWorld()
	defer Destroy(worldID)

	boundary := &body.AABB{Min: vecmath.New(-5, -5), Max: vecmath.New(5, 5)}
	if err := SetBoundary(worldID, boundary); err != nil {
		t.Fatalf("SetBoundary: %v", err)
	}

	circle, _ := shape.NewCircle(1)
	ballID, _ := CreateDynamicBody(worldID)
	SetShape(worldID, ballID, circle)
	SetPosition(worldID, ballID, vecmath.New(0, 0))
	SetVelocity(worldID, ballID, vecmath.New(100, 0))

	if err := Tick(worldID, 1.0/60); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	pos, _ := GetPosition(worldID, ballID)
	if pos[0]+1 > 5+1e-9 {
		t.Errorf("ball should be clamped within boundary, AABB max x = %v", pos[0]+1)
	}
	v, _ := GetVelocity(worldID, ballID)
	if v[0] != 0 {
		t.Errorf("vx should be zeroed by the boundary clamp, got %v", v[0])
	}
}

func TestPolygonPolygonSATDepthAndNormal(t *testing.T) {
	worldID := CreateWorld()
	defer Destroy(worldID)

	square, _ := shape.NewRectangle(1, 1)
	a, _ := CreateDynamicBody(worldID)
	SetShape(worldID, a, square)
	SetPosition(worldID, a, vecmath.New(0, 0))

	b, _ := CreateDynamicBody(worldID)
	SetShape(worldID, b, square)
	SetPosition(worldID, b, vecmath.New(0.5, 0.5))

	w, err := getWorld(worldID)
	if err != nil {
		t.Fatalf("getWorld: %v", err)
	}
	hit, depth, normal := collision.Intersect(w.bodies[a], w.bodies[b])
	if !hit {
		t.Fatal("expected the two squares to intersect")
	}
	if !floatEqual(depth, 0.5, 1e-9) {
		t.Errorf("depth = %v, want 0.5", depth)
	}
	axisAligned := (floatEqual(math.Abs(normal[0]), 1, 1e-9) && floatEqual(normal[1], 0, 1e-9)) ||
		(floatEqual(normal[0], 0, 1e-9) && floatEqual(math.Abs(normal[1]), 1, 1e-9))
	if !axisAligned || normal[0]+normal[1] <= 0 {
		t.Errorf("normal = %v, want an axis-aligned unit normal pointing from a toward b", normal)
	}

	// A tick over the overlapping pair must resolve without error.
	if err := Tick(worldID, 1.0/60); err != nil {
		t.Fatalf("Tick: %v", err)
	}
}

func TestTickIgnoresBodyWithNoneShape(t *testing.T) {
	worldID := CreateWorld()
	defer Destroy(worldID)

	rect, _ := shape.NewRectangle(4, 4)
	box, _ := CreateStaticBody(worldID)
	SetShape(worldID, box, rect)
	SetPosition(worldID, box, vecmath.New(0, 0))

	// Left with the default None shape, positioned inside the rectangle's
	// AABB; must not panic when the narrowphase runs.
	bare, _ := CreateDynamicBody(worldID)
	SetPosition(worldID, bare, vecmath.New(0, 0))

	if err := Tick(worldID, 1.0/60); err != nil {
		t.Fatalf("Tick: %v", err)
	}
}

func TestDestroyBodyZeroIsAlreadyDestroyed(t *testing.T) {
	worldID := CreateWorld()
	defer Destroy(worldID)
	if err := DestroyBody(worldID, 0); err == nil {
		t.Error("DestroyBody(world, 0) should error")
	}
}

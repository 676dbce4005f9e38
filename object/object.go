// Package object implements the thin owning facade spec.md §6 offers
// alongside the handle-based core: value objects that hold a numeric
// world or body id, acquire it on construction, and release it on Drop.
// Release is idempotent — a second Drop is a no-op that reports false.
package object

import (
	"github.com/akmonengine/physics2d"
	"github.com/akmonengine/physics2d/body"
	"github.com/akmonengine/physics2d/material"
	"github.com/akmonengine/physics2d/shape"
	"github.com/akmonengine/physics2d/vecmath"
)

// WorldObject owns a world id for its lifetime.
type WorldObject struct {
	id    uint64
	valid bool
}

// NewWorld acquires a new world and wraps it.
func NewWorld() *WorldObject {
	return &WorldObject{id: physics2d.CreateWorld(), valid: true}
}

// ID returns the underlying world id.
func (w *WorldObject) ID() uint64 { return w.id }

// Drop releases the world. Returns false if already dropped.
func (w *WorldObject) Drop() bool {
	if !w.valid {
		return false
	}
	w.valid = false
	return physics2d.Destroy(w.id) == nil
}

// Tick advances the world by dt.
func (w *WorldObject) Tick(dt float64) error { return physics2d.Tick(w.id, dt) }

// ApplyGravity adds a velocity delta to every non-static body.
func (w *WorldObject) ApplyGravity(ax, ay float64) error { return physics2d.ApplyGravity(w.id, ax, ay) }

// SetBoundary installs or clears the world's boundary rectangle.
func (w *WorldObject) SetBoundary(boundary *body.AABB) error {
	return physics2d.SetBoundary(w.id, boundary)
}

// SetIterations sets the world's substep count.
func (w *WorldObject) SetIterations(n int) error { return physics2d.SetIterations(w.id, n) }

// NewStaticBody, NewKinematicBody, NewDynamicBody create a BodyObject
// owned by this world.
func (w *WorldObject) NewStaticBody() (*BodyObject, error)    { return newBody(w.id, physics2d.CreateStaticBody) }
func (w *WorldObject) NewKinematicBody() (*BodyObject, error) { return newBody(w.id, physics2d.CreateKinematicBody) }
func (w *WorldObject) NewDynamicBody() (*BodyObject, error)   { return newBody(w.id, physics2d.CreateDynamicBody) }

// BodyObject owns a body id, scoped to the world that created it.
type BodyObject struct {
	worldID uint64
	id      uint64
	valid   bool
}

func newBody(worldID uint64, create func(uint64) (uint64, error)) (*BodyObject, error) {
	id, err := create(worldID)
	if err != nil {
		return nil, err
	}
	return &BodyObject{worldID: worldID, id: id, valid: true}, nil
}

// ID returns the underlying body id.
func (b *BodyObject) ID() uint64 { return b.id }

// Drop destroys the body. Returns false if already dropped.
func (b *BodyObject) Drop() bool {
	if !b.valid {
		return false
	}
	b.valid = false
	return physics2d.DestroyBody(b.worldID, b.id) == nil
}

func (b *BodyObject) SetPosition(p vecmath.Vec2) error { return physics2d.SetPosition(b.worldID, b.id, p) }
func (b *BodyObject) Position() (vecmath.Vec2, error)  { return physics2d.GetPosition(b.worldID, b.id) }
func (b *BodyObject) SetVelocity(v vecmath.Vec2) error { return physics2d.SetVelocity(b.worldID, b.id, v) }
func (b *BodyObject) Velocity() (vecmath.Vec2, error)  { return physics2d.GetVelocity(b.worldID, b.id) }
func (b *BodyObject) SetRotation(theta float64) error  { return physics2d.SetRotation(b.worldID, b.id, theta) }
func (b *BodyObject) SetMaterial(materialID int) error { return physics2d.SetMaterial(b.worldID, b.id, materialID) }
func (b *BodyObject) SetShape(s shape.Shape) error     { return physics2d.SetShape(b.worldID, b.id, s) }

// NewCircleBody creates a body of bodyType with a circle shape in one
// call, the convenience constructor a caller otherwise assembles from
// NewXBody + SetShape + shape.NewCircle.
func NewCircleBody(w *WorldObject, bodyType BodyType, radius float64) (*BodyObject, error) {
	s, err := shape.NewCircle(radius)
	if err != nil {
		return nil, err
	}
	return newShapedBody(w, bodyType, s)
}

// NewRectangleBody creates a body of bodyType with a rectangle shape.
func NewRectangleBody(w *WorldObject, bodyType BodyType, width, height float64) (*BodyObject, error) {
	s, err := shape.NewRectangle(width, height)
	if err != nil {
		return nil, err
	}
	return newShapedBody(w, bodyType, s)
}

// NewPolygonBody creates a body of bodyType with a polygon shape.
func NewPolygonBody(w *WorldObject, bodyType BodyType, vertices []vecmath.Vec2) (*BodyObject, error) {
	s, err := shape.NewPolygon(vertices)
	if err != nil {
		return nil, err
	}
	return newShapedBody(w, bodyType, s)
}

// BodyType selects which of NewStaticBody/NewKinematicBody/NewDynamicBody
// the NewXBody convenience constructors call.
type BodyType int

const (
	Static BodyType = iota
	Kinematic
	Dynamic
)

func newShapedBody(w *WorldObject, bodyType BodyType, s shape.Shape) (*BodyObject, error) {
	var obj *BodyObject
	var err error
	switch bodyType {
	case Static:
		obj, err = w.NewStaticBody()
	case Kinematic:
		obj, err = w.NewKinematicBody()
	default:
		obj, err = w.NewDynamicBody()
	}
	if err != nil {
		return nil, err
	}
	if err := obj.SetShape(s); err != nil {
		obj.Drop()
		return nil, err
	}
	return obj, nil
}

// DefaultMaterialID is a convenience re-export so callers assembling a
// BodyObject don't need a separate import just to find "Wood"'s id.
func DefaultMaterialID() (int, error) {
	m, err := material.Default()
	if err != nil {
		return 0, err
	}
	return m.ID, nil
}

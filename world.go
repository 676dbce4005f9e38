// Package physics2d is the simulation's handle-based core API: world
// creation, body lifecycle, per-tick integration, collision resolution,
// and boundary clamping.
//
// The teacher's World owns a Bodies slice and steps every body through
// five always-goroutine-pooled phases per substep (integrate, detect,
// solvePosition, update, solveVelocity — world.go's Step). This package
// keeps the substep-driven tick structure and the integrate-then-resolve
// phase order, but runs every phase synchronously over a world's ordered
// body-id list, the way spec.md's single-threaded cooperative model
// requires, and resolves each pair's position correction and velocity
// impulse together rather than as separate constraint-collection passes.
package physics2d

import (
	"fmt"
	"sort"
	"sync"

	"github.com/akmonengine/physics2d/body"
	"github.com/akmonengine/physics2d/broadphase"
	"github.com/akmonengine/physics2d/collision"
	"github.com/akmonengine/physics2d/errs"
	"github.com/akmonengine/physics2d/material"
	"github.com/akmonengine/physics2d/shape"
	"github.com/akmonengine/physics2d/solver"
	"github.com/akmonengine/physics2d/vecmath"
)

// DefaultIterations is the substep count a world starts with, and the
// value SetIterations falls back to for n ≤ 0.
const DefaultIterations = 4

// World owns a population of bodies, an optional boundary, an optional
// broadphase index, and the substep count driving Tick.
type World struct {
	ID         uint64
	Iterations int

	bodies     map[uint64]*body.Body
	order      []uint64
	nextBodyID uint64

	boundary *body.AABB
	index    broadphase.Index

	solverOptions solver.Options
}

var (
	registryMu  sync.RWMutex
	worlds      = make(map[uint64]*World)
	nextWorldID uint64
)

// CreateWorld allocates a new world and returns its id.
func CreateWorld() uint64 {
	registryMu.Lock()
	defer registryMu.Unlock()

	nextWorldID++
	w := &World{
		ID:         nextWorldID,
		Iterations: DefaultIterations,
		bodies:     make(map[uint64]*body.Body),
	}
	worlds[w.ID] = w
	return w.ID
}

// Exists reports whether worldID names a live world.
func Exists(worldID uint64) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := worlds[worldID]
	return ok
}

// Destroy removes a world and everything in it.
func Destroy(worldID uint64) error {
	registryMu.Lock()
	defer registryMu.Unlock()

	if worldID == 0 {
		return errs.AlreadyDestroyedError("world", worldID)
	}
	if _, ok := worlds[worldID]; !ok {
		if worldID <= nextWorldID {
			return errs.AlreadyDestroyedError("world", worldID)
		}
		return errs.WorldNotFound(worldID)
	}
	delete(worlds, worldID)
	return nil
}

func getWorld(worldID uint64) (*World, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	w, ok := worlds[worldID]
	if !ok {
		return nil, errs.WorldNotFound(worldID)
	}
	return w, nil
}

func (w *World) getBody(bodyID uint64) (*body.Body, error) {
	b, ok := w.bodies[bodyID]
	if !ok {
		return nil, errs.BodyNotFound(bodyID, w.ID)
	}
	return b, nil
}

// SetIndex installs a broadphase.Index (e.g. broadphase.Grid) in place
// of the default O(n²) AABB enumeration.
func SetIndex(worldID uint64, index broadphase.Index) error {
	w, err := getWorld(worldID)
	if err != nil {
		return err
	}
	w.index = index
	return nil
}

// SetConventionalMassRatio toggles the position-correction convention
// (see solver.Options.ConventionalMassRatio).
func SetConventionalMassRatio(worldID uint64, enabled bool) error {
	w, err := getWorld(worldID)
	if err != nil {
		return err
	}
	w.solverOptions.ConventionalMassRatio = enabled
	return nil
}

func createBody(worldID uint64, bodyType body.Type) (uint64, error) {
	w, err := getWorld(worldID)
	if err != nil {
		return 0, err
	}
	w.nextBodyID++
	id := w.nextBodyID
	w.bodies[id] = body.New(id, bodyType)
	w.order = append(w.order, id)
	return id, nil
}

// CreateStaticBody, CreateKinematicBody, CreateDynamicBody each add a new
// body (shape=None, material=default, zero motion) to worldID.
func CreateStaticBody(worldID uint64) (uint64, error)    { return createBody(worldID, body.Static) }
func CreateKinematicBody(worldID uint64) (uint64, error) { return createBody(worldID, body.Kinematic) }
func CreateDynamicBody(worldID uint64) (uint64, error)   { return createBody(worldID, body.Dynamic) }

// LatestBodyID returns worldID's internal next-body-id counter, the
// "latestBodyId" a serializer persists alongside body records.
func LatestBodyID(worldID uint64) (uint64, error) {
	w, err := getWorld(worldID)
	if err != nil {
		return 0, err
	}
	return w.nextBodyID, nil
}

// SetLatestBodyID overwrites worldID's next-body-id counter. Intended
// for a deserializer restoring a world's id sequence exactly, including
// ids consumed by bodies that were destroyed before the snapshot.
func SetLatestBodyID(worldID, id uint64) error {
	w, err := getWorld(worldID)
	if err != nil {
		return err
	}
	w.nextBodyID = id
	return nil
}

// RestoreBody inserts a body under a specific, caller-chosen id — unlike
// CreateStaticBody/CreateKinematicBody/CreateDynamicBody, which always
// assign the next sequential id. Intended for a deserializer rebuilding
// a world from a snapshot; ordinary callers should use the CreateXBody
// functions instead so ids stay monotonically increasing from 1.
func RestoreBody(worldID, id uint64, bodyType body.Type) error {
	w, err := getWorld(worldID)
	if err != nil {
		return err
	}
	if _, exists := w.bodies[id]; exists {
		return errs.BadArgument(2, "id", fmt.Sprintf("body %d already exists in world %d", id, worldID))
	}
	w.bodies[id] = body.New(id, bodyType)
	w.order = append(w.order, id)
	return nil
}

// DestroyBody removes bodyID from worldID.
func DestroyBody(worldID, bodyID uint64) error {
	w, err := getWorld(worldID)
	if err != nil {
		return err
	}
	if bodyID == 0 {
		return errs.AlreadyDestroyedError("body", bodyID)
	}
	if _, ok := w.bodies[bodyID]; !ok {
		if bodyID <= w.nextBodyID {
			return errs.AlreadyDestroyedError("body", bodyID)
		}
		return errs.BodyNotFound(bodyID, worldID)
	}
	delete(w.bodies, bodyID)
	for i, id := range w.order {
		if id == bodyID {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	if w.index != nil {
		w.index.Remove(bodyID)
	}
	return nil
}

// ClearBodies removes every body from worldID.
func ClearBodies(worldID uint64) error {
	w, err := getWorld(worldID)
	if err != nil {
		return err
	}
	w.bodies = make(map[uint64]*body.Body)
	w.order = nil
	return nil
}

// HasBody reports whether bodyID is live in worldID.
func HasBody(worldID, bodyID uint64) (bool, error) {
	w, err := getWorld(worldID)
	if err != nil {
		return false, err
	}
	_, ok := w.bodies[bodyID]
	return ok, nil
}

// BodyIDs returns worldID's body ids in insertion order.
func BodyIDs(worldID uint64) ([]uint64, error) {
	w, err := getWorld(worldID)
	if err != nil {
		return nil, err
	}
	out := make([]uint64, len(w.order))
	copy(out, w.order)
	return out, nil
}

// GetBodyType returns a body's type (Static/Kinematic/Dynamic).
func GetBodyType(worldID, bodyID uint64) (body.Type, error) {
	w, err := getWorld(worldID)
	if err != nil {
		return 0, err
	}
	b, err := w.getBody(bodyID)
	if err != nil {
		return 0, err
	}
	return b.Type, nil
}

// GetPosition and SetPosition read/write a body's position. SetPosition
// invalidates the body's transform cache.
func GetPosition(worldID, bodyID uint64) (vecmath.Vec2, error) {
	w, err := getWorld(worldID)
	if err != nil {
		return vecmath.Vec2{}, err
	}
	b, err := w.getBody(bodyID)
	if err != nil {
		return vecmath.Vec2{}, err
	}
	return b.Position, nil
}

func SetPosition(worldID, bodyID uint64, p vecmath.Vec2) error {
	w, err := getWorld(worldID)
	if err != nil {
		return err
	}
	b, err := w.getBody(bodyID)
	if err != nil {
		return err
	}
	b.SetPosition(p)
	return nil
}

// GetRotation and SetRotation read/write a body's rotation (radians).
func GetRotation(worldID, bodyID uint64) (float64, error) {
	w, err := getWorld(worldID)
	if err != nil {
		return 0, err
	}
	b, err := w.getBody(bodyID)
	if err != nil {
		return 0, err
	}
	return b.Rotation, nil
}

func SetRotation(worldID, bodyID uint64, theta float64) error {
	w, err := getWorld(worldID)
	if err != nil {
		return err
	}
	b, err := w.getBody(bodyID)
	if err != nil {
		return err
	}
	b.SetRotation(theta)
	return nil
}

// GetVelocity and SetVelocity read/write a body's linear velocity.
func GetVelocity(worldID, bodyID uint64) (vecmath.Vec2, error) {
	w, err := getWorld(worldID)
	if err != nil {
		return vecmath.Vec2{}, err
	}
	b, err := w.getBody(bodyID)
	if err != nil {
		return vecmath.Vec2{}, err
	}
	return b.Velocity, nil
}

func SetVelocity(worldID, bodyID uint64, v vecmath.Vec2) error {
	w, err := getWorld(worldID)
	if err != nil {
		return err
	}
	b, err := w.getBody(bodyID)
	if err != nil {
		return err
	}
	b.SetVelocity(v)
	return nil
}

// GetAngularVelocity and SetAngularVelocity read/write a body's angular
// velocity.
func GetAngularVelocity(worldID, bodyID uint64) (float64, error) {
	w, err := getWorld(worldID)
	if err != nil {
		return 0, err
	}
	b, err := w.getBody(bodyID)
	if err != nil {
		return 0, err
	}
	return b.AngularVelocity, nil
}

func SetAngularVelocity(worldID, bodyID uint64, omega float64) error {
	w, err := getWorld(worldID)
	if err != nil {
		return err
	}
	b, err := w.getBody(bodyID)
	if err != nil {
		return err
	}
	b.SetAngularVelocity(omega)
	return nil
}

// GetMaterial and SetMaterial read/write a body's material id.
// SetMaterial invalidates the body's mass and angular-mass caches.
func GetMaterial(worldID, bodyID uint64) (int, error) {
	w, err := getWorld(worldID)
	if err != nil {
		return 0, err
	}
	b, err := w.getBody(bodyID)
	if err != nil {
		return 0, err
	}
	return b.MaterialID, nil
}

func SetMaterial(worldID, bodyID uint64, materialID int) error {
	w, err := getWorld(worldID)
	if err != nil {
		return err
	}
	b, err := w.getBody(bodyID)
	if err != nil {
		return err
	}
	if !material.Contains(materialID) {
		return errs.MaterialNotFound(fmt.Sprint(materialID))
	}
	b.SetMaterialID(materialID)
	return nil
}

// GetShape and SetShape read/write a body's shape. SetShape invalidates
// both the transform and mass caches.
func GetShape(worldID, bodyID uint64) (shape.Shape, error) {
	w, err := getWorld(worldID)
	if err != nil {
		return shape.Shape{}, err
	}
	b, err := w.getBody(bodyID)
	if err != nil {
		return shape.Shape{}, err
	}
	return b.Shape, nil
}

func SetShape(worldID, bodyID uint64, s shape.Shape) error {
	w, err := getWorld(worldID)
	if err != nil {
		return err
	}
	b, err := w.getBody(bodyID)
	if err != nil {
		return err
	}
	b.SetShape(s)
	return nil
}

// GetIterations and SetIterations read/write a world's substep count.
// SetIterations clamps n ≤ 0 to DefaultIterations.
func GetIterations(worldID uint64) (int, error) {
	w, err := getWorld(worldID)
	if err != nil {
		return 0, err
	}
	return w.Iterations, nil
}

func SetIterations(worldID uint64, n int) error {
	w, err := getWorld(worldID)
	if err != nil {
		return err
	}
	if n <= 0 {
		n = DefaultIterations
	}
	w.Iterations = n
	return nil
}

// GetBoundary and SetBoundary read/write a world's optional boundary
// rectangle. A nil boundary disables clamping.
func GetBoundary(worldID uint64) (*body.AABB, error) {
	w, err := getWorld(worldID)
	if err != nil {
		return nil, err
	}
	if w.boundary == nil {
		return nil, nil
	}
	b := *w.boundary
	return &b, nil
}

func SetBoundary(worldID uint64, boundary *body.AABB) error {
	w, err := getWorld(worldID)
	if err != nil {
		return err
	}
	if boundary == nil {
		w.boundary = nil
		return nil
	}
	b := *boundary
	w.boundary = &b
	return nil
}

// ApplyGravity adds (ax,ay) to the velocity of every non-static body in
// worldID. This is a velocity delta, not an acceleration: callers
// wanting "gravity·dt" must scale ax,ay externally before calling.
func ApplyGravity(worldID uint64, ax, ay float64) error {
	w, err := getWorld(worldID)
	if err != nil {
		return err
	}
	delta := vecmath.New(ax, ay)
	for _, id := range w.order {
		b := w.bodies[id]
		if b.Type != body.Static {
			b.SetVelocity(b.Velocity.Add(delta))
		}
	}
	return nil
}

// Tick advances worldID by dt, split into w.Iterations substeps. dt ≤ 0
// is not an error: it returns without advancing time.
func Tick(worldID uint64, dt float64) error {
	w, err := getWorld(worldID)
	if err != nil {
		return err
	}
	if dt <= 0 {
		return nil
	}

	iterations := w.Iterations
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	substepDt := dt / float64(iterations)

	for k := 0; k < iterations; k++ {
		for _, id := range w.order {
			w.bodies[id].Integrate(substepDt)
		}

		for _, pair := range w.findPairs() {
			a := w.bodies[pair.A]
			b := w.bodies[pair.B]
			if a.Shape.Kind == shape.None || b.Shape.Kind == shape.None {
				continue
			}

			hit, depth, normal := collision.Intersect(a, b)
			if !hit {
				continue
			}

			matA, errA := material.Get(a.MaterialID)
			matB, errB := material.Get(b.MaterialID)
			if errA != nil || errB != nil {
				continue
			}

			solver.PositionCorrect(a, b, depth, normal, w.solverOptions)
			contacts := collision.Manifold(a, b, normal)
			solver.ResolveVelocity(a, b, contacts, normal, matA, matB)
		}

		if w.boundary != nil {
			for _, id := range w.order {
				b := w.bodies[id]
				if b.Type != body.Static {
					clampToBoundary(b, *w.boundary)
				}
			}
		}
	}

	return nil
}

// findPairs enumerates candidate colliding pairs, sorted by ascending
// (a,b) id so resolution order is deterministic regardless of whether
// the default enumerator or an installed Index produced them.
func (w *World) findPairs() []broadphase.Pair {
	if w.index == nil {
		return broadphase.EnumeratePairs(w.order, func(id uint64) body.AABB { return w.bodies[id].AABB() })
	}

	for _, id := range w.order {
		w.index.Update(id, w.bodies[id].AABB())
	}

	seen := make(map[broadphase.Pair]bool)
	var pairs []broadphase.Pair
	for _, id := range w.order {
		box := w.bodies[id].AABB()
		for _, other := range w.index.QueryOverlaps(box) {
			if other == id {
				continue
			}
			a, b := id, other
			if a > b {
				a, b = b, a
			}
			p := broadphase.Pair{A: a, B: b}
			if seen[p] {
				continue
			}
			seen[p] = true
			pairs = append(pairs, p)
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].A != pairs[j].A {
			return pairs[i].A < pairs[j].A
		}
		return pairs[i].B < pairs[j].B
	})
	return pairs
}

func clampToBoundary(b *body.Body, boundary body.AABB) {
	box := b.AABB()
	pos := b.Position
	vel := b.Velocity
	changed := false

	if box.Width() > boundary.Width() {
		center := (boundary.Min[0] + boundary.Max[0]) / 2
		pos[0] += center - (box.Min[0]+box.Max[0])/2
		changed = true
	} else if box.Min[0] < boundary.Min[0] {
		pos[0] += boundary.Min[0] - box.Min[0]
		vel[0] = 0
		changed = true
	} else if box.Max[0] > boundary.Max[0] {
		pos[0] += boundary.Max[0] - box.Max[0]
		vel[0] = 0
		changed = true
	}

	if box.Height() > boundary.Height() {
		center := (boundary.Min[1] + boundary.Max[1]) / 2
		pos[1] += center - (box.Min[1]+box.Max[1])/2
		changed = true
	} else if box.Min[1] < boundary.Min[1] {
		pos[1] += boundary.Min[1] - box.Min[1]
		vel[1] = 0
		changed = true
	} else if box.Max[1] > boundary.Max[1] {
		pos[1] += boundary.Max[1] - box.Max[1]
		vel[1] = 0
		changed = true
	}

	if changed {
		b.SetPosition(pos)
		b.SetVelocity(vel)
	}
}

// Package material implements the process-wide material registry:
// named physical materials and the friction/restitution combination rules
// the solver uses to merge a colliding pair's two materials into one set
// of contact coefficients.
//
// The registry mirrors the teacher's append-only, reset-seeds-builtins
// pattern (compare actor.NewRigidBody's hardcoded defaults in
// akmonengine/feather) but promoted to its own package since spec.md
// treats materials as named, independently registrable entities rather
// than an inline struct literal per body.
package material

import (
	"github.com/pkg/errors"
)

// CombineMode is the rule used to merge two materials' friction
// coefficients into one.
type CombineMode int

const (
	Average CombineMode = iota
	Minimum
	Maximum
	Multiply
)

// Material describes the physical response of a body's surface.
type Material struct {
	ID   int
	Name string

	Density         float64
	Restitution     float64
	StaticFriction  float64
	DynamicFriction float64
	FrictionCombine CombineMode
	LinearDrag      float64
	AngularDrag     float64
}

// ErrNotFound is wrapped with context when a lookup by id or name fails.
var ErrNotFound = errors.New("material not found")

// ErrInvalid is wrapped with context when a registration fails validation.
var ErrInvalid = errors.New("invalid material")

// Registry is an append-only, id- and name-indexed collection of
// materials, with a designated default material for newly created bodies.
type Registry struct {
	byID    map[int]*Material
	byName  map[string]*Material
	order   []*Material
	nextID  int
	dfltKey string
}

// NewRegistry returns an empty registry. Use Reset to seed it with the
// eight builtin materials spec.md mandates.
func NewRegistry() *Registry {
	return &Registry{
		byID:   make(map[int]*Material),
		byName: make(map[string]*Material),
	}
}

// Register validates and appends a new material, assigning it the next
// sequential id (current count + 1). The registry is append-only: there
// is no update or remove short of Reset.
func (r *Registry) Register(name string, density, restitution, staticFriction, dynamicFriction float64, combine CombineMode, linearDrag, angularDrag float64) (*Material, error) {
	if name == "" {
		return nil, errors.Wrap(ErrInvalid, "name must not be empty")
	}
	if _, exists := r.byName[name]; exists {
		return nil, errors.Wrapf(ErrInvalid, "material %q already registered", name)
	}
	if density <= 0 {
		return nil, errors.Wrapf(ErrInvalid, "material %q: density must be > 0, got %v", name, density)
	}
	if restitution < 0 || restitution > 1 {
		return nil, errors.Wrapf(ErrInvalid, "material %q: restitution must be in [0,1], got %v", name, restitution)
	}
	if staticFriction < 0 || staticFriction > 1 {
		return nil, errors.Wrapf(ErrInvalid, "material %q: staticFriction must be in [0,1], got %v", name, staticFriction)
	}
	if dynamicFriction < 0 || dynamicFriction > 1 {
		return nil, errors.Wrapf(ErrInvalid, "material %q: dynamicFriction must be in [0,1], got %v", name, dynamicFriction)
	}
	if linearDrag < 0 {
		return nil, errors.Wrapf(ErrInvalid, "material %q: linearDrag must be >= 0, got %v", name, linearDrag)
	}
	if angularDrag < 0 {
		return nil, errors.Wrapf(ErrInvalid, "material %q: angularDrag must be >= 0, got %v", name, angularDrag)
	}

	r.nextID = len(r.order) + 1
	m := &Material{
		ID:              r.nextID,
		Name:            name,
		Density:         density,
		Restitution:     restitution,
		StaticFriction:  staticFriction,
		DynamicFriction: dynamicFriction,
		FrictionCombine: combine,
		LinearDrag:      linearDrag,
		AngularDrag:     angularDrag,
	}
	r.byID[m.ID] = m
	r.byName[m.Name] = m
	r.order = append(r.order, m)
	return m, nil
}

// Contains reports whether id names a registered material.
func (r *Registry) Contains(id int) bool {
	_, ok := r.byID[id]
	return ok
}

// Get looks up a material by id.
func (r *Registry) Get(id int) (*Material, error) {
	m, ok := r.byID[id]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "material id %d", id)
	}
	return m, nil
}

// GetByName looks up a material by name.
func (r *Registry) GetByName(name string) (*Material, error) {
	m, ok := r.byName[name]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "material %q", name)
	}
	return m, nil
}

// Iterate calls fn for every registered material, in registration order.
func (r *Registry) Iterate(fn func(*Material)) {
	for _, m := range r.order {
		fn(m)
	}
}

// Default returns the registry's default material.
func (r *Registry) Default() (*Material, error) {
	return r.GetByName(r.dfltKey)
}

// SetDefault changes which registered material new bodies receive.
func (r *Registry) SetDefault(name string) error {
	if _, err := r.GetByName(name); err != nil {
		return err
	}
	r.dfltKey = name
	return nil
}

// Reset clears the registry and re-seeds it with the eight builtin
// materials, restoring "Wood" as the default.
func (r *Registry) Reset() {
	r.byID = make(map[int]*Material)
	r.byName = make(map[string]*Material)
	r.order = nil
	r.nextID = 0

	for _, b := range builtins {
		if _, err := r.Register(b.name, b.density, b.restitution, b.staticFriction, b.dynamicFriction, b.combine, b.linearDrag, b.angularDrag); err != nil {
			panic(errors.Wrapf(err, "seeding builtin material %q", b.name))
		}
	}
	r.dfltKey = "Wood"
}

var builtins = []struct {
	name                                            string
	density, restitution                            float64
	staticFriction, dynamicFriction                 float64
	combine                                          CombineMode
	linearDrag, angularDrag                          float64
}{
	{"Glass", 2.5, 0.1, 0.3, 0.25, Average, 0.06, 0.02},
	{"Ice", 0.9, 0.05, 0.05, 0.01, Average, 0.03, 0.01},
	{"Lead", 11.3, 0.05, 0.3, 0.28, Average, 0.03, 0.05},
	{"Plastic", 1.2, 0.4, 0.4, 0.35, Average, 0.12, 0.06},
	{"Rubber", 1.1, 0.8, 0.9, 0.75, Average, 0.3, 0.2},
	{"Steel", 7.8, 0.03, 0.35, 0.30, Average, 0.06, 0.03},
	{"Stone", 2.4, 0.1, 0.45, 0.40, Average, 0.15, 0.04},
	{"Wood", 0.6, 0.3, 0.5, 0.45, Average, 0.25, 0.08},
}

// CombineFriction merges two friction coefficients under mode, the
// combine mode of the *first* material in the pair.
func CombineFriction(mode CombineMode, f1, f2 float64) float64 {
	switch mode {
	case Minimum:
		return min(f1, f2)
	case Maximum:
		return max(f1, f2)
	case Multiply:
		return f1 * f2
	default: // Average
		return (f1 + f2) / 2
	}
}

// CombineStaticFriction merges a.StaticFriction and b.StaticFriction
// under a's combine mode.
func CombineStaticFriction(a, b *Material) float64 {
	return CombineFriction(a.FrictionCombine, a.StaticFriction, b.StaticFriction)
}

// CombineDynamicFriction merges a.DynamicFriction and b.DynamicFriction
// under a's combine mode.
func CombineDynamicFriction(a, b *Material) float64 {
	return CombineFriction(a.FrictionCombine, a.DynamicFriction, b.DynamicFriction)
}

// CombineRestitution returns the combined restitution of a pair: always
// the minimum of the two, regardless of either material's combine mode.
func CombineRestitution(a, b *Material) float64 {
	return min(a.Restitution, b.Restitution)
}

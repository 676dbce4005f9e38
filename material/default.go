package material

// The material registry is process-wide (spec.md §4.2): every world shares
// one set of named materials. defaultRegistry backs the package-level
// functions below; Reset is called once at package init so a fresh
// process always starts with the eight builtin materials seeded, the way
// actor.NewRigidBody's hardcoded defaults guarantee a sane Material in
// the teacher even before any caller configures one.
var defaultRegistry = NewRegistry()

func init() {
	defaultRegistry.Reset()
}

// Register adds a material to the process-wide registry.
func Register(name string, density, restitution, staticFriction, dynamicFriction float64, combine CombineMode, linearDrag, angularDrag float64) (*Material, error) {
	return defaultRegistry.Register(name, density, restitution, staticFriction, dynamicFriction, combine, linearDrag, angularDrag)
}

// Contains reports whether id names a registered material.
func Contains(id int) bool {
	return defaultRegistry.Contains(id)
}

// Get looks up a material by id in the process-wide registry.
func Get(id int) (*Material, error) {
	return defaultRegistry.Get(id)
}

// GetByName looks up a material by name in the process-wide registry.
func GetByName(name string) (*Material, error) {
	return defaultRegistry.GetByName(name)
}

// Iterate calls fn for every registered material, in registration order.
func Iterate(fn func(*Material)) {
	defaultRegistry.Iterate(fn)
}

// Default returns the process-wide default material.
func Default() (*Material, error) {
	return defaultRegistry.Default()
}

// SetDefault changes which registered material new bodies receive.
func SetDefault(name string) error {
	return defaultRegistry.SetDefault(name)
}

// Reset clears the process-wide registry and re-seeds the eight builtins.
// Callers must not call Reset concurrently with any world's Tick
// (spec.md §5) — there is no internal locking.
func Reset() {
	defaultRegistry.Reset()
}

package shape

import "github.com/akmonengine/physics2d/vecmath"

// The predefined-polygon catalog is process-wide, like the material
// registry (spec.md §4.3, §5). defaultCatalog backs the package-level
// functions below and is seeded at package init.
var defaultCatalog = NewCatalog()

func init() {
	defaultCatalog.Reset()
}

// RegisterPolygon adds a predefined polygon to the process-wide catalog.
func RegisterPolygon(name string, vertices []vecmath.Vec2) (int, error) {
	return defaultCatalog.Register(name, vertices)
}

// GetPolygonByID looks up a predefined polygon's vertices by id.
func GetPolygonByID(id int) ([]vecmath.Vec2, error) {
	return defaultCatalog.GetByID(id)
}

// GetPolygonByName looks up a predefined polygon's vertices by name.
func GetPolygonByName(name string) ([]vecmath.Vec2, error) {
	return defaultCatalog.GetByName(name)
}

// ResetCatalog clears the process-wide catalog and re-seeds the default
// polygons. Callers must not call this concurrently with any world's
// Tick (spec.md §5) — there is no internal locking.
func ResetCatalog() {
	defaultCatalog.Reset()
}

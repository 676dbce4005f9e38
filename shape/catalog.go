package shape

import (
	"math"

	"github.com/pkg/errors"

	"github.com/akmonengine/physics2d/vecmath"
)

// ErrNotFound is wrapped with context when a catalog lookup fails.
var ErrNotFound = errors.New("predefined polygon not found")

// Catalog maps predefined polygon names and ids to stored local vertex
// lists, the same append-only-until-Reset shape as material.Registry.
type Catalog struct {
	byID   map[int]string
	byName map[string][]vecmath.Vec2
	order  []string
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		byID:   make(map[int]string),
		byName: make(map[string][]vecmath.Vec2),
	}
}

// Register deep-copies vertices and stores them under a freshly assigned
// id and under name.
func (c *Catalog) Register(name string, vertices []vecmath.Vec2) (int, error) {
	if name == "" {
		return 0, errors.Wrap(ErrInvalid, "name must not be empty")
	}
	if len(vertices) < 3 {
		return 0, errors.Wrapf(ErrInvalid, "polygon %q needs >= 3 vertices, got %d", name, len(vertices))
	}
	if _, exists := c.byName[name]; exists {
		return 0, errors.Wrapf(ErrInvalid, "predefined polygon %q already registered", name)
	}

	cp := make([]vecmath.Vec2, len(vertices))
	copy(cp, vertices)

	id := len(c.order) + 1
	c.byID[id] = name
	c.byName[name] = cp
	c.order = append(c.order, name)
	return id, nil
}

// GetByID returns a copy of the vertices registered under id.
func (c *Catalog) GetByID(id int) ([]vecmath.Vec2, error) {
	name, ok := c.byID[id]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "predefined polygon id %d", id)
	}
	return c.GetByName(name)
}

// GetByName returns a copy of the vertices registered under name.
func (c *Catalog) GetByName(name string) ([]vecmath.Vec2, error) {
	v, ok := c.byName[name]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "predefined polygon %q", name)
	}
	cp := make([]vecmath.Vec2, len(v))
	copy(cp, v)
	return cp, nil
}

// Reset clears the catalog, then seeds it with a small set of common
// convex polygons (unit triangle, unit square, regular hexagon) as a
// convenience — spec.md leaves the seed contents unspecified, only the
// operations, so an empty catalog would be conforming but useless.
func (c *Catalog) Reset() {
	c.byID = make(map[int]string)
	c.byName = make(map[string][]vecmath.Vec2)
	c.order = nil

	for _, seed := range defaultPolygons {
		if _, err := c.Register(seed.name, seed.vertices); err != nil {
			panic(errors.Wrapf(err, "seeding predefined polygon %q", seed.name))
		}
	}
}

var defaultPolygons = []struct {
	name     string
	vertices []vecmath.Vec2
}{
	{
		name: "UnitTriangle",
		vertices: []vecmath.Vec2{
			vecmath.New(0, 0.5),
			vecmath.New(-0.5, -0.5),
			vecmath.New(0.5, -0.5),
		},
	},
	{
		name: "UnitSquare",
		vertices: []vecmath.Vec2{
			vecmath.New(0.5, 0.5),
			vecmath.New(-0.5, 0.5),
			vecmath.New(-0.5, -0.5),
			vecmath.New(0.5, -0.5),
		},
	},
	{
		name:     "RegularHexagon",
		vertices: regularPolygonVertices(6, 0.5),
	},
}

// regularPolygonVertices returns n vertices in counter-clockwise order on
// a circle of the given radius, starting at angle 0.
func regularPolygonVertices(n int, radius float64) []vecmath.Vec2 {
	verts := make([]vecmath.Vec2, n)
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		verts[i] = vecmath.New(radius*math.Cos(angle), radius*math.Sin(angle))
	}
	return verts
}

package broadphase

import (
	"math"

	"github.com/akmonengine/physics2d/body"
	"github.com/akmonengine/physics2d/vecmath"
)

// cellKey identifies a cell in the 2D hash grid.
type cellKey struct{ X, Y int }

// Grid is a uniform spatial hash implementing Index, adapted from a 3D
// broadphase grid down to the plane: cells are hashed buckets of body
// ids, and a body occupies every cell its AABB overlaps.
//
// Grid keeps a handle->occupied-cells map so Update/Remove can evict a
// body's stale cell memberships without rescanning every cell.
type Grid struct {
	cellSize float64
	cells    map[cellKey][]uint64
	occupied map[uint64][]cellKey
	boxes    map[uint64]body.AABB
}

// NewGrid returns an empty grid with the given cell size. cellSize
// should be on the order of a typical body's diameter; too small wastes
// memory on bucket overhead, too large degrades toward brute force.
func NewGrid(cellSize float64) *Grid {
	return &Grid{
		cellSize: cellSize,
		cells:    make(map[cellKey][]uint64),
		occupied: make(map[uint64][]cellKey),
		boxes:    make(map[uint64]body.AABB),
	}
}

func (g *Grid) cellsFor(box body.AABB) []cellKey {
	minCell := g.worldToCell(box.Min)
	maxCell := g.worldToCell(box.Max)

	keys := make([]cellKey, 0, (maxCell.X-minCell.X+1)*(maxCell.Y-minCell.Y+1))
	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			keys = append(keys, cellKey{x, y})
		}
	}
	return keys
}

func (g *Grid) worldToCell(p vecmath.Vec2) cellKey {
	return cellKey{
		X: int(math.Floor(p[0] / g.cellSize)),
		Y: int(math.Floor(p[1] / g.cellSize)),
	}
}

// Update (re)inserts handle at box, first evicting any prior placement.
func (g *Grid) Update(handle uint64, box body.AABB) {
	g.Remove(handle)

	keys := g.cellsFor(box)
	for _, k := range keys {
		g.cells[k] = append(g.cells[k], handle)
	}
	g.occupied[handle] = keys
	g.boxes[handle] = box
}

// Remove evicts handle from every cell it occupies. No-op if absent.
func (g *Grid) Remove(handle uint64) {
	keys, ok := g.occupied[handle]
	if !ok {
		return
	}
	for _, k := range keys {
		bucket := g.cells[k]
		for i, h := range bucket {
			if h == handle {
				bucket[i] = bucket[len(bucket)-1]
				bucket = bucket[:len(bucket)-1]
				break
			}
		}
		if len(bucket) == 0 {
			delete(g.cells, k)
		} else {
			g.cells[k] = bucket
		}
	}
	delete(g.occupied, handle)
	delete(g.boxes, handle)
}

// QueryOverlaps returns every handle whose last Update-d AABB overlaps
// box, deduplicated, in no particular order.
func (g *Grid) QueryOverlaps(box body.AABB) []uint64 {
	seen := make(map[uint64]bool)
	var result []uint64
	for _, k := range g.cellsFor(box) {
		for _, h := range g.cells[k] {
			if seen[h] {
				continue
			}
			if other, ok := g.boxes[h]; ok && other.Overlaps(box) {
				seen[h] = true
				result = append(result, h)
			}
		}
	}
	return result
}

package broadphase

import (
	"testing"

	"github.com/akmonengine/physics2d/body"
	"github.com/akmonengine/physics2d/vecmath"
)

func box(minX, minY, maxX, maxY float64) body.AABB {
	return body.AABB{Min: vecmath.New(minX, minY), Max: vecmath.New(maxX, maxY)}
}

func TestEnumeratePairsFindsOverlapsOnly(t *testing.T) {
	boxes := map[uint64]body.AABB{
		1: box(0, 0, 1, 1),
		2: box(0.5, 0.5, 1.5, 1.5),
		3: box(10, 10, 11, 11),
	}
	pairs := EnumeratePairs([]uint64{1, 2, 3}, func(id uint64) body.AABB { return boxes[id] })

	if len(pairs) != 1 || pairs[0] != (Pair{1, 2}) {
		t.Errorf("pairs = %v, want [{1 2}]", pairs)
	}
}

func TestEnumeratePairsTouchingIsNotOverlap(t *testing.T) {
	boxes := map[uint64]body.AABB{
		1: box(0, 0, 1, 1),
		2: box(1, 0, 2, 1),
	}
	pairs := EnumeratePairs([]uint64{1, 2}, func(id uint64) body.AABB { return boxes[id] })

	if len(pairs) != 0 {
		t.Errorf("touching boxes must not count as overlapping, got %v", pairs)
	}
}

func TestGridUpdateAndQueryOverlaps(t *testing.T) {
	g := NewGrid(1.0)
	g.Update(1, box(0, 0, 1, 1))
	g.Update(2, box(0.5, 0.5, 1.5, 1.5))
	g.Update(3, box(100, 100, 101, 101))

	hits := g.QueryOverlaps(box(0, 0, 1, 1))
	found := map[uint64]bool{}
	for _, h := range hits {
		found[h] = true
	}
	if !found[1] || !found[2] {
		t.Errorf("expected handles 1 and 2 in query results, got %v", hits)
	}
	if found[3] {
		t.Errorf("handle 3 is far away and must not be in query results, got %v", hits)
	}
}

func TestGridRemoveEvictsHandle(t *testing.T) {
	g := NewGrid(1.0)
	g.Update(1, box(0, 0, 1, 1))
	g.Remove(1)

	hits := g.QueryOverlaps(box(0, 0, 1, 1))
	if len(hits) != 0 {
		t.Errorf("expected no hits after Remove, got %v", hits)
	}
}

func TestGridUpdateMovesHandle(t *testing.T) {
	g := NewGrid(1.0)
	g.Update(1, box(0, 0, 1, 1))
	g.Update(1, box(50, 50, 51, 51))

	if hits := g.QueryOverlaps(box(0, 0, 1, 1)); len(hits) != 0 {
		t.Errorf("handle should have moved away from origin, got %v", hits)
	}
	if hits := g.QueryOverlaps(box(50, 50, 51, 51)); len(hits) != 1 {
		t.Errorf("handle should be found at its new location, got %v", hits)
	}
}

var _ Index = (*Grid)(nil)

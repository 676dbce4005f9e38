// Package broadphase implements the pluggable broadphase seam spec.md
// §4.8 describes: an Index interface a spatial acceleration structure
// can satisfy, plus the default O(n²) AABB pair enumerator the world
// uses when no index is installed.
package broadphase

import "github.com/akmonengine/physics2d/body"

// Index is an optional spatial acceleration structure a world can plug
// in to avoid the default O(n²) enumeration. Implementations need not
// agree on enumeration order beyond determinism for a fixed sequence of
// calls.
type Index interface {
	// Update (re)inserts handle at box, replacing any prior placement.
	Update(handle uint64, box body.AABB)
	// Remove evicts handle. A no-op if handle was never inserted.
	Remove(handle uint64)
	// QueryOverlaps returns every inserted handle whose last-known AABB
	// overlaps box.
	QueryOverlaps(box body.AABB) []uint64
}

// Pair is an unordered candidate pair of body ids, i < j.
type Pair struct {
	A, B uint64
}

// AABBProvider resolves a body id to its current world-space AABB.
type AABBProvider func(id uint64) body.AABB

// EnumeratePairs is the default broadphase: every ordered pair (i<j)
// from ids (assumed already sorted ascending, as a world's id list is)
// whose AABBs overlap, in deterministic ascending-pair order (spec.md
// §4.7).
func EnumeratePairs(ids []uint64, aabbOf AABBProvider) []Pair {
	pairs := make([]Pair, 0, len(ids))
	for i := 0; i < len(ids); i++ {
		boxI := aabbOf(ids[i])
		for j := i + 1; j < len(ids); j++ {
			boxJ := aabbOf(ids[j])
			if boxI.Overlaps(boxJ) {
				pairs = append(pairs, Pair{ids[i], ids[j]})
			}
		}
	}
	return pairs
}

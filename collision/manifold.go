package collision

import (
	"github.com/akmonengine/physics2d/body"
	"github.com/akmonengine/physics2d/shape"
	"github.com/akmonengine/physics2d/vecmath"
)

// manifoldEpsilon is how far apart two candidate contact points must be
// for both to survive into a 2-point manifold; manifoldTieBreak is how
// close two candidate squared distances must be to be considered tied
// for closest.
const manifoldEpsilon = 1e-4
const manifoldTieBreak = 1e-6

// Manifold returns the 1-2 world-space contact points between a and b,
// given the normal Intersect already computed for this pair.
func Manifold(a, b *body.Body, normal vecmath.Vec2) []vecmath.Vec2 {
	if a.Shape.Kind == shape.None || b.Shape.Kind == shape.None {
		return nil
	}

	aCircle := a.Shape.Kind == shape.Circle
	bCircle := b.Shape.Kind == shape.Circle

	switch {
	case aCircle && bCircle:
		return []vecmath.Vec2{a.Position.Add(normal.Mul(a.Shape.Radius))}
	case !aCircle && bCircle:
		return []vecmath.Vec2{closestEdgePoint(a.TransformedVertices(), b.Position)}
	case aCircle && !bCircle:
		return []vecmath.Vec2{closestEdgePoint(b.TransformedVertices(), a.Position)}
	default:
		return polygonManifold(a.TransformedVertices(), b.TransformedVertices())
	}
}

func closestEdgePoint(vertices []vecmath.Vec2, p vecmath.Vec2) vecmath.Vec2 {
	n := len(vertices)
	best := vertices[0]
	bestSq := vecmath.SquareDistance(p, best)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		point, sq := vecmath.FindClosestPointToSegment(p, vertices[i], vertices[j])
		if sq < bestSq {
			bestSq = sq
			best = point
		}
	}
	return best
}

type candidate struct {
	point vecmath.Vec2
	sqDist float64
}

// polygonManifold iterates every vertex of one polygon against every edge
// of the other, in both directions, tracking the minimum squared
// distance. The closest projection is contact #1; any other candidate
// within manifoldTieBreak of the minimum and at least manifoldEpsilon
// away from contact #1 becomes contact #2 (spec.md §4.5).
func polygonManifold(va, vb []vecmath.Vec2) []vecmath.Vec2 {
	var candidates []candidate

	collect := func(verts []vecmath.Vec2, edges []vecmath.Vec2) {
		n := len(edges)
		for _, v := range verts {
			for i := 0; i < n; i++ {
				j := (i + 1) % n
				point, sq := vecmath.FindClosestPointToSegment(v, edges[i], edges[j])
				candidates = append(candidates, candidate{point, sq})
			}
		}
	}
	collect(va, vb)
	collect(vb, va)

	if len(candidates) == 0 {
		return nil
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.sqDist < best.sqDist {
			best = c
		}
	}

	result := []vecmath.Vec2{best.point}
	for _, c := range candidates {
		if c.sqDist <= best.sqDist+manifoldTieBreak &&
			vecmath.SquareDistance(c.point, best.point) >= manifoldEpsilon*manifoldEpsilon {
			result = append(result, c.point)
			break
		}
	}
	return result
}

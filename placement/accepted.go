package placement

import (
	"github.com/aukilabs/probeseed/geometry"
	"gonum.org/v1/gonum/spatial/kdtree"
)

// acceptedSet holds the probes accepted so far in a run and answers "is there
// an accepted probe closer than d" queries.
type acceptedSet struct {
	positions []geometry.Vector3f

	// nil when linear scanning is used.
	tree *kdtree.Tree

	// Number of positions the tree was last built from.
	built int
}

func newAcceptedSet(linearScan bool) *acceptedSet {
	s := &acceptedSet{}
	if !linearScan {
		s.tree = &kdtree.Tree{}
	}
	return s
}

func toPoint(p geometry.Vector3f) kdtree.Point {
	return kdtree.Point{float64(p.X), float64(p.Y), float64(p.Z)}
}

func (s *acceptedSet) len() int {
	return len(s.positions)
}

func (s *acceptedSet) add(p geometry.Vector3f) {
	s.positions = append(s.positions, p)
	if s.tree != nil {
		s.tree.Insert(toPoint(p), false)
	}
}

// rebalance rebuilds the tree from every accepted position once it has at
// least doubled since the last build. Inserts follow the sub-grid scan order,
// which degenerates an incrementally built tree towards a list.
func (s *acceptedSet) rebalance() {
	if s.tree == nil || len(s.positions) <= 2*s.built {
		return
	}

	points := make(kdtree.Points, len(s.positions))
	for i, p := range s.positions {
		points[i] = toPoint(p)
	}
	s.tree = kdtree.New(points, false)
	s.built = len(s.positions)
}

// tooClose reports whether an accepted probe is strictly closer than
// minDistance to p.
func (s *acceptedSet) tooClose(p geometry.Vector3f, minDistance float32) bool {
	if len(s.positions) == 0 {
		return false
	}

	// kdtree.Point distances are squared. The linear scan computes them the
	// same way so that both lookups agree on ties.
	threshold := float64(minDistance) * float64(minDistance)
	point := toPoint(p)

	if s.tree == nil {
		for _, existing := range s.positions {
			if point.Distance(toPoint(existing)) < threshold {
				return true
			}
		}
		return false
	}

	nearest, dist := s.tree.Nearest(point)
	if nearest == nil {
		return false
	}
	return dist < threshold
}

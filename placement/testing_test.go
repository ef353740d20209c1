package placement

import (
	"github.com/aukilabs/probeseed/geometry"
)

// fakeGeometry is a scene made of renderable bounds, a height field and a
// list of colliders.
type fakeGeometry struct {
	bounds    []geometry.Bounds
	height    func(x, z float32) (float32, bool)
	colliders []geometry.Collider
}

func (g *fakeGeometry) RenderableBounds() []geometry.Bounds {
	return g.bounds
}

func (g *fakeGeometry) RaycastDown(origin geometry.Vector3f, maxDistance float32, mask geometry.Mask) (geometry.Vector3f, bool) {
	if g.height == nil || maxDistance <= 0 {
		return geometry.Vector3f{}, false
	}

	h, ok := g.height(origin.X, origin.Z)
	if !ok || h > origin.Y || h < origin.Y-maxDistance {
		return geometry.Vector3f{}, false
	}
	return geometry.Vector3f{X: origin.X, Y: h, Z: origin.Z}, true
}

func (g *fakeGeometry) OverlapSphere(center geometry.Vector3f, radius float32, mask geometry.Mask) []geometry.Collider {
	var colliders []geometry.Collider
	for _, c := range g.colliders {
		if !mask.Includes(c.Layer()) {
			continue
		}
		if geometry.Distance(center, c.ClosestPoint(center)) <= radius {
			colliders = append(colliders, c)
		}
	}
	return colliders
}

func (g *fakeGeometry) ClosestPoint(c geometry.Collider, p geometry.Vector3f) geometry.Vector3f {
	return c.ClosestPoint(p)
}

// pointCollider is a collider reduced to a single point.
type pointCollider struct {
	p     geometry.Vector3f
	layer int
}

func (c pointCollider) Layer() int {
	return c.layer
}

func (c pointCollider) Bounds() geometry.Bounds {
	return geometry.Bounds{Min: c.p, Max: c.p}
}

func (c pointCollider) ClosestPoint(geometry.Vector3f) geometry.Vector3f {
	return c.p
}

func (c pointCollider) Raycast(geometry.Ray) (bool, float32) {
	return false, -1
}

func flatHeight(h float32) func(x, z float32) (float32, bool) {
	return func(x, z float32) (float32, bool) {
		return h, true
	}
}

type recordingSink struct {
	positions []geometry.Vector3f
	calls     int
	err       error
}

func (s *recordingSink) SetProbePositions(positions []geometry.Vector3f) error {
	s.calls++
	if s.err != nil {
		return s.err
	}
	s.positions = positions
	return nil
}

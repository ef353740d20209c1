package placement

import (
	"github.com/aukilabs/probeseed/geometry"
)

// Geometry is the scene geometry service placement runs against. All the
// methods are read-only queries.
type Geometry interface {
	// Returns the bounds of every renderable object.
	RenderableBounds() []geometry.Bounds

	// Casts a ray straight down from origin and returns the closest hit
	// point within maxDistance among colliders in mask.
	RaycastDown(origin geometry.Vector3f, maxDistance float32, mask geometry.Mask) (geometry.Vector3f, bool)

	// Returns the colliders in mask touching the sphere.
	OverlapSphere(center geometry.Vector3f, radius float32, mask geometry.Mask) []geometry.Collider

	// Returns the point of c closest to p.
	ClosestPoint(c geometry.Collider, p geometry.Vector3f) geometry.Vector3f
}

// Sink receives the probe positions of a run. Setting positions replaces any
// previously set positions.
type Sink interface {
	SetProbePositions(positions []geometry.Vector3f) error
}

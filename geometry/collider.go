package geometry

// Collider is a piece of collision geometry that takes part in ray and
// overlap queries.
type Collider interface {
	// Returns the collision layer in [0, 31].
	Layer() int

	// Returns the world space bounds of the collider.
	Bounds() Bounds

	// Returns the point on the collider closest to p. Points inside a solid
	// collider are their own closest point.
	ClosestPoint(p Vector3f) Vector3f

	// Intersects the ray segment with the collider and returns the hit
	// parameter along the ray.
	Raycast(r Ray) (bool, float32)
}

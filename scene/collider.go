package scene

import (
	"github.com/aukilabs/probeseed/geometry"
)

// BoxCollider is a solid axis aligned box.
type BoxCollider struct {
	Box        geometry.Bounds
	LayerIndex int
}

func (c *BoxCollider) Layer() int {
	return c.LayerIndex
}

func (c *BoxCollider) Bounds() geometry.Bounds {
	return c.Box
}

func (c *BoxCollider) ClosestPoint(p geometry.Vector3f) geometry.Vector3f {
	return c.Box.ClosestPoint(p)
}

func (c *BoxCollider) Raycast(r geometry.Ray) (bool, float32) {
	return geometry.IntersectBounds(r, c.Box)
}

// SphereCollider is a solid sphere.
type SphereCollider struct {
	Center     geometry.Vector3f
	Radius     float32
	LayerIndex int
}

func (c *SphereCollider) Layer() int {
	return c.LayerIndex
}

func (c *SphereCollider) Bounds() geometry.Bounds {
	d := 2 * c.Radius
	return geometry.NewBounds(c.Center, geometry.Vector3f{X: d, Y: d, Z: d})
}

func (c *SphereCollider) ClosestPoint(p geometry.Vector3f) geometry.Vector3f {
	offset := geometry.Sub(p, c.Center)
	if float32(offset.Length()) <= c.Radius {
		return p
	}
	return geometry.Add(c.Center, geometry.Mul(geometry.Normalized(offset), c.Radius))
}

func (c *SphereCollider) Raycast(r geometry.Ray) (bool, float32) {
	return geometry.IntersectSphere(r, c.Center, c.Radius)
}

// QuadCollider is a thin axis aligned rectangle, typically a floor or a wall.
type QuadCollider struct {
	Quad       geometry.Quad
	LayerIndex int
}

func (c *QuadCollider) Layer() int {
	return c.LayerIndex
}

func (c *QuadCollider) Bounds() geometry.Bounds {
	return c.Quad.Bounds()
}

func (c *QuadCollider) ClosestPoint(p geometry.Vector3f) geometry.Vector3f {
	return c.Quad.Bounds().ClosestPoint(p)
}

func (c *QuadCollider) Raycast(r geometry.Ray) (bool, float32) {
	return geometry.IntersectQuad(r, c.Quad)
}

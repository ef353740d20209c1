package scene

import (
	"github.com/aukilabs/probeseed/geometry"
)

// Object is a scene object. It may be rendered, collide, or both.
type Object struct {
	ID   uint32
	Name string

	// Renderable objects contribute their render bounds to the scene bounds.
	Renderable   bool
	RenderBounds geometry.Bounds

	// Collider is nil for objects without collision geometry.
	Collider geometry.Collider
}

// NewBox returns a renderable box object with a matching box collider.
func NewBox(name string, center geometry.Vector3f, size geometry.Vector3f, layer int) *Object {
	box := geometry.NewBounds(center, size)
	return &Object{
		Name:         name,
		Renderable:   true,
		RenderBounds: box,
		Collider:     &BoxCollider{Box: box, LayerIndex: layer},
	}
}

// NewSphere returns a renderable sphere object with a matching sphere
// collider.
func NewSphere(name string, center geometry.Vector3f, radius float32, layer int) *Object {
	collider := &SphereCollider{Center: center, Radius: radius, LayerIndex: layer}
	return &Object{
		Name:         name,
		Renderable:   true,
		RenderBounds: collider.Bounds(),
		Collider:     collider,
	}
}

// NewQuad returns a renderable quad object with a matching quad collider.
// extents are half extents and one of them is expected to be 0.
func NewQuad(name string, center geometry.Vector3f, extents geometry.Vector3f, layer int) *Object {
	collider := &QuadCollider{Quad: geometry.NewQuad(center, extents), LayerIndex: layer}
	return &Object{
		Name:         name,
		Renderable:   true,
		RenderBounds: collider.Bounds(),
		Collider:     collider,
	}
}

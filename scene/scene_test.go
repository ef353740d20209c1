package scene

import (
	"testing"

	"github.com/aukilabs/probeseed/geometry"
	"github.com/stretchr/testify/require"
)

func newTestScene() *Scene {
	s := New(2)
	s.Add(NewBox("floor", geometry.Vector3f{X: 0, Y: -0.5, Z: 0}, geometry.Vector3f{X: 20, Y: 1, Z: 20}, 0))
	s.Add(NewBox("crate", geometry.Vector3f{X: 0, Y: 1, Z: 0}, geometry.Vector3f{X: 2, Y: 2, Z: 2}, 1))
	s.Add(NewSphere("ball", geometry.Vector3f{X: 6, Y: 1, Z: 6}, 1, 2))
	return s
}

func TestSceneAddRemove(t *testing.T) {
	s := newTestScene()
	require.Equal(t, 3, s.Len())

	objects := s.Objects()
	require.Equal(t, "floor", objects[0].Name)
	require.Equal(t, uint32(1), objects[0].ID)
	require.Equal(t, "ball", objects[2].Name)

	require.True(t, s.Remove(2))
	require.False(t, s.Remove(2))
	require.Equal(t, 2, s.Len())

	id := s.Add(NewBox("crate-again", geometry.Zero, geometry.One, 0))
	require.Equal(t, uint32(2), id)
}

func TestSceneRenderableBounds(t *testing.T) {
	s := newTestScene()
	s.Add(&Object{Name: "trigger", Collider: &BoxCollider{Box: geometry.NewBounds(geometry.Zero, geometry.One)}})

	bounds := s.RenderableBounds()
	require.Len(t, bounds, 3)
	require.Equal(t, geometry.Vector3f{X: -10, Y: -1, Z: -10}, bounds[0].Min)
}

func TestSceneRaycastDown(t *testing.T) {
	s := newTestScene()

	t.Run("hits the top of the crate", func(t *testing.T) {
		hit, ok := s.RaycastDown(geometry.Vector3f{X: 0.5, Y: 10, Z: 0.5}, 20, geometry.Everything)
		require.True(t, ok)
		require.True(t, geometry.EqualWithEpsilon(hit.Y, 2, 0.0001))
	})

	t.Run("mask excludes the crate", func(t *testing.T) {
		hit, ok := s.RaycastDown(geometry.Vector3f{X: 0.5, Y: 10, Z: 0.5}, 20, geometry.LayerMask(0))
		require.True(t, ok)
		require.True(t, geometry.EqualWithEpsilon(hit.Y, 0, 0.0001))
	})

	t.Run("hits the sphere", func(t *testing.T) {
		hit, ok := s.RaycastDown(geometry.Vector3f{X: 6, Y: 10, Z: 6}, 20, geometry.Everything)
		require.True(t, ok)
		require.True(t, geometry.EqualWithEpsilon(hit.Y, 2, 0.0001))
	})

	t.Run("outside the scene", func(t *testing.T) {
		_, ok := s.RaycastDown(geometry.Vector3f{X: 50, Y: 10, Z: 0}, 20, geometry.Everything)
		require.False(t, ok)
	})

	t.Run("ray too short", func(t *testing.T) {
		_, ok := s.RaycastDown(geometry.Vector3f{X: 0.5, Y: 10, Z: 0.5}, 5, geometry.Everything)
		require.False(t, ok)
	})

	t.Run("negative distance", func(t *testing.T) {
		_, ok := s.RaycastDown(geometry.Vector3f{X: 0.5, Y: 2, Z: 0.5}, -1, geometry.Everything)
		require.False(t, ok)
	})

	t.Run("zero distance on a surface", func(t *testing.T) {
		hit, ok := s.RaycastDown(geometry.Vector3f{X: 0.5, Y: 2, Z: 0.5}, 0, geometry.Everything)
		require.True(t, ok)
		require.Equal(t, geometry.Vector3f{X: 0.5, Y: 2, Z: 0.5}, hit)
	})

	t.Run("zero distance in the air", func(t *testing.T) {
		_, ok := s.RaycastDown(geometry.Vector3f{X: 0.5, Y: 3, Z: 0.5}, 0, geometry.Everything)
		require.False(t, ok)
	})
}

func TestSceneRaycastDownFlatQuad(t *testing.T) {
	s := New(2)
	s.Add(NewQuad("floor", geometry.Zero, geometry.Vector3f{X: 10, Y: 0, Z: 10}, 0))

	hit, ok := s.RaycastDown(geometry.Vector3f{X: 5, Y: 0, Z: 5}, 0, geometry.Everything)
	require.True(t, ok)
	require.Equal(t, float32(0), hit.Y)
}

func TestSceneOverlapSphere(t *testing.T) {
	s := newTestScene()

	colliders := s.OverlapSphere(geometry.Vector3f{X: 0, Y: 3, Z: 0}, 1.5, geometry.Everything)
	require.Len(t, colliders, 1)
	require.Equal(t, 1, colliders[0].Layer())

	colliders = s.OverlapSphere(geometry.Vector3f{X: 0, Y: 3, Z: 0}, 10, geometry.Everything)
	require.Len(t, colliders, 3)
	require.Equal(t, 0, colliders[0].Layer())
	require.Equal(t, 2, colliders[2].Layer())

	colliders = s.OverlapSphere(geometry.Vector3f{X: 0, Y: 3, Z: 0}, 10, geometry.LayerMask(2))
	require.Len(t, colliders, 1)

	require.Empty(t, s.OverlapSphere(geometry.Vector3f{X: 100, Y: 0, Z: 100}, 1, geometry.Everything))
	require.Empty(t, s.OverlapSphere(geometry.Vector3f{X: 0, Y: 10, Z: 0}, 2, geometry.Everything))

	colliders = s.OverlapSphere(geometry.Vector3f{X: 0, Y: 4, Z: 0}, 2, geometry.Everything)
	require.Len(t, colliders, 1)
	require.Equal(t, 1, colliders[0].Layer())
}

func TestColliderClosestPoint(t *testing.T) {
	sphere := &SphereCollider{Center: geometry.Zero, Radius: 1}
	require.True(t, geometry.Vector3f{X: 1, Y: 0, Z: 0}.EqualWithEpsilon(sphere.ClosestPoint(geometry.Vector3f{X: 5, Y: 0, Z: 0}), 0.0001))
	require.Equal(t, geometry.Vector3f{X: 0.5, Y: 0, Z: 0}, sphere.ClosestPoint(geometry.Vector3f{X: 0.5, Y: 0, Z: 0}))

	quad := &QuadCollider{Quad: geometry.NewQuad(geometry.Zero, geometry.Vector3f{X: 1, Y: 0, Z: 1})}
	require.Equal(t, geometry.Vector3f{X: 1, Y: 0, Z: 0}, quad.ClosestPoint(geometry.Vector3f{X: 3, Y: 4, Z: 0}))

	box := &BoxCollider{Box: geometry.NewBounds(geometry.Zero, geometry.Vector3f{X: 2, Y: 2, Z: 2})}
	require.Equal(t, geometry.Vector3f{X: 1, Y: 1, Z: 0}, box.ClosestPoint(geometry.Vector3f{X: 3, Y: 4, Z: 0}))

	s := New(1)
	require.Equal(t, box.ClosestPoint(geometry.One), s.ClosestPoint(box, geometry.One))
}

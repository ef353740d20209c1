package geometry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntersectQuad(t *testing.T) {
	ray := Ray{
		From: Vector3f{0, 10, 0},
		To:   Vector3f{0, -10, 0},
	}
	quad := NewQuad(Vector3f{0, 0, 0}, Vector3f{1, 0, 1})

	hit, tHit := IntersectQuad(ray, quad)
	require.True(t, hit)
	require.Equal(t, float32(0.5), tHit)

	miss := Ray{
		From: Vector3f{5, 10, 0},
		To:   Vector3f{5, -10, 0},
	}
	hit, tHit = IntersectQuad(miss, quad)
	require.False(t, hit)
	require.Equal(t, float32(-1), tHit)

	t.Run("zero length ray on the quad", func(t *testing.T) {
		hit, tHit := IntersectQuad(NewDownRay(Vector3f{0.5, 0, 0.5}, 0), quad)
		require.True(t, hit)
		require.Equal(t, float32(0), tHit)
	})

	t.Run("zero length ray off the quad", func(t *testing.T) {
		hit, _ := IntersectQuad(NewDownRay(Vector3f{0.5, 0.1, 0.5}, 0), quad)
		require.False(t, hit)

		hit, _ = IntersectQuad(NewDownRay(Vector3f{3, 0, 0.5}, 0), quad)
		require.False(t, hit)
	})
}

func TestCalculateNormal(t *testing.T) {
	center := Vector3f{0, 0, 0}
	extents := Vector3f{1, 0, 1}
	normal := calculateNormal(center, extents)

	require.True(t, Up.EqualWithEpsilon(normal, 0.0001))
}

func TestIntersectBounds(t *testing.T) {
	box := NewBounds(Zero, Vector3f{2, 2, 2})

	t.Run("hit from above", func(t *testing.T) {
		hit, tHit := IntersectBounds(NewDownRay(Vector3f{0, 5, 0}, 10), box)
		require.True(t, hit)
		require.True(t, EqualWithEpsilon(tHit, 0.4, 0.0001))
	})

	t.Run("ray too short", func(t *testing.T) {
		hit, _ := IntersectBounds(NewDownRay(Vector3f{0, 5, 0}, 2), box)
		require.False(t, hit)
	})

	t.Run("ray beside the box", func(t *testing.T) {
		hit, _ := IntersectBounds(NewDownRay(Vector3f{3, 5, 0}, 10), box)
		require.False(t, hit)
	})

	t.Run("ray starting inside", func(t *testing.T) {
		hit, tHit := IntersectBounds(NewDownRay(Vector3f{0, 0, 0}, 10), box)
		require.True(t, hit)
		require.Equal(t, float32(0), tHit)
	})
}

func TestIntersectSphere(t *testing.T) {
	hit, tHit := IntersectSphere(NewDownRay(Vector3f{0, 10, 0}, 20), Zero, 2)
	require.True(t, hit)
	require.True(t, EqualWithEpsilon(tHit, 0.4, 0.0001))

	hit, _ = IntersectSphere(NewDownRay(Vector3f{3, 10, 0}, 20), Zero, 2)
	require.False(t, hit)

	hit, tHit = IntersectSphere(NewDownRay(Vector3f{0, 1, 0}, 20), Zero, 2)
	require.True(t, hit)
	require.Equal(t, float32(0), tHit)
}

func TestBounds(t *testing.T) {
	b := NewBounds(Zero, Vector3f{10, 10, 10})
	require.Equal(t, Vector3f{-5, -5, -5}, b.Min)
	require.Equal(t, Vector3f{5, 5, 5}, b.Max)
	require.Equal(t, Vector3f{10, 10, 10}, b.Size())
	require.Equal(t, Zero, b.Center())

	require.True(t, b.Contains(Vector3f{5, 5, 5}))
	require.False(t, b.Contains(Vector3f{5.01, 0, 0}))

	grown := b.Encapsulate(NewBoundsMinMax(Vector3f{20, 0, 0}, Vector3f{21, 1, 1}))
	require.Equal(t, Vector3f{21, 5, 5}, grown.Max)
	require.True(t, grown.ContainsBounds(b))

	require.Equal(t, Vector3f{5, 0, -5}, b.ClosestPoint(Vector3f{8, 0, -9}))
	require.Equal(t, Vector3f{1, 2, 3}, b.ClosestPoint(Vector3f{1, 2, 3}))

	require.True(t, b.Intersects(NewBounds(Vector3f{6, 0, 0}, Vector3f{4, 4, 4})))
	require.False(t, b.Intersects(NewBounds(Vector3f{9, 0, 0}, Vector3f{4, 4, 4})))

	require.Equal(t, Vector3f{5, 5, 5}, b.Extents())
	require.Equal(t, NewBoundsMinMax(Vector3f{-6, -6, -6}, Vector3f{6, 6, 6}), b.Expand(1))
	require.Equal(t, Vector3f{5, 8, 5}, b.EncapsulatePoint(Vector3f{0, 8, 0}).Max)

	point := Bounds{Min: Vector3f{0, 9, 0}, Max: Vector3f{0, 9, 0}}.Expand(3)
	require.True(t, b.Intersects(point))
	require.False(t, b.Intersects(point.Expand(-1)))
}

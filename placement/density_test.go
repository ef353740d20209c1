package placement

import (
	"math/rand"
	"testing"

	"github.com/aukilabs/probeseed/geometry"
	"github.com/stretchr/testify/require"
)

func TestEstimateDensity(t *testing.T) {
	p := DefaultParams()

	t.Run("no collider gives zero", func(t *testing.T) {
		e := NewDensityEstimator(&fakeGeometry{}, p)
		require.Equal(t, float32(0), e.EstimateDensity(geometry.Zero))
	})

	t.Run("collider at the point saturates", func(t *testing.T) {
		e := NewDensityEstimator(&fakeGeometry{colliders: []geometry.Collider{
			pointCollider{p: geometry.Zero},
		}}, p)
		require.Equal(t, float32(1), e.EstimateDensity(geometry.Zero))
	})

	t.Run("falloff", func(t *testing.T) {
		g := &fakeGeometry{colliders: []geometry.Collider{
			pointCollider{p: geometry.Vector3f{X: 10, Y: 0, Z: 0}},
		}}

		// distance 10 over a radius of 20: influence is 0.5^falloff.
		linear := NewDensityEstimator(g, Params{MaxProbeSpacing: 10, DensityFalloff: 1, PlacementMask: geometry.Everything})
		require.True(t, geometry.EqualWithEpsilon(linear.EstimateDensity(geometry.Zero), 0.5, 0.0001))

		squared := NewDensityEstimator(g, Params{MaxProbeSpacing: 10, DensityFalloff: 2, PlacementMask: geometry.Everything})
		require.True(t, geometry.EqualWithEpsilon(squared.EstimateDensity(geometry.Zero), 0.25, 0.0001))

		root := NewDensityEstimator(g, Params{MaxProbeSpacing: 10, DensityFalloff: 0.5, PlacementMask: geometry.Everything})
		require.True(t, geometry.EqualWithEpsilon(root.EstimateDensity(geometry.Zero), 0.7071, 0.0001))
	})

	t.Run("collider outside the radius", func(t *testing.T) {
		e := NewDensityEstimator(&fakeGeometry{colliders: []geometry.Collider{
			pointCollider{p: geometry.Vector3f{X: 21, Y: 0, Z: 0}},
		}}, p)
		require.Equal(t, float32(0), e.EstimateDensity(geometry.Zero))
	})

	t.Run("density mask overrides placement mask", func(t *testing.T) {
		g := &fakeGeometry{colliders: []geometry.Collider{
			pointCollider{p: geometry.Zero, layer: 0},
		}}

		densityMask := geometry.LayerMask(1)
		masked := p
		masked.DensityMask = &densityMask
		require.Equal(t, float32(0), NewDensityEstimator(g, masked).EstimateDensity(geometry.Zero))
		require.Equal(t, float32(1), NewDensityEstimator(g, p).EstimateDensity(geometry.Zero))
	})

	t.Run("always clamped to [0, 1]", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))

		for i := 0; i < 100; i++ {
			var colliders []geometry.Collider
			for j := 0; j < rng.Intn(50); j++ {
				colliders = append(colliders, pointCollider{p: geometry.Vector3f{
					X: rng.Float32()*40 - 20,
					Y: rng.Float32()*40 - 20,
					Z: rng.Float32()*40 - 20,
				}})
			}

			params := Params{
				MaxProbeSpacing: rng.Float32() * 10,
				DensityFalloff:  rng.Float32()*4 - 1,
				PlacementMask:   geometry.Everything,
			}
			density := NewDensityEstimator(&fakeGeometry{colliders: colliders}, params).EstimateDensity(geometry.Zero)
			require.GreaterOrEqual(t, density, float32(0))
			require.LessOrEqual(t, density, float32(1))
		}
	})
}

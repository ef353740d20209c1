package placement

import (
	"math/rand"
	"testing"

	"github.com/aukilabs/probeseed/geometry"
	"github.com/stretchr/testify/require"
)

func TestComputeSceneBounds(t *testing.T) {
	t.Run("empty scene gets default bounds", func(t *testing.T) {
		bounds := ComputeSceneBounds(&fakeGeometry{})
		require.Equal(t, geometry.Vector3f{X: -5, Y: -5, Z: -5}, bounds.Min)
		require.Equal(t, geometry.Vector3f{X: 5, Y: 5, Z: 5}, bounds.Max)
		require.Equal(t, geometry.Zero, bounds.Center())
	})

	t.Run("single renderable", func(t *testing.T) {
		b := geometry.NewBoundsMinMax(geometry.Vector3f{X: 1, Y: 2, Z: 3}, geometry.Vector3f{X: 4, Y: 5, Z: 6})
		require.Equal(t, b, ComputeSceneBounds(&fakeGeometry{bounds: []geometry.Bounds{b}}))
	})

	t.Run("union encloses every renderable", func(t *testing.T) {
		rng := rand.New(rand.NewSource(42))

		for i := 0; i < 50; i++ {
			var renderables []geometry.Bounds
			for j := 0; j < 1+rng.Intn(10); j++ {
				center := geometry.Vector3f{X: rng.Float32()*100 - 50, Y: rng.Float32()*10 - 5, Z: rng.Float32()*100 - 50}
				size := geometry.Vector3f{X: rng.Float32() * 10, Y: rng.Float32() * 10, Z: rng.Float32() * 10}
				renderables = append(renderables, geometry.NewBounds(center, size))
			}

			bounds := ComputeSceneBounds(&fakeGeometry{bounds: renderables})
			require.True(t, bounds.Min.LesserOrEqualThan(bounds.Max))
			for _, r := range renderables {
				require.True(t, bounds.ContainsBounds(r))
			}
		}
	})
}

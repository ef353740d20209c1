package placement

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInterpolateSpacing(t *testing.T) {
	require.Equal(t, float32(10), InterpolateSpacing(1, 10, 0))
	require.Equal(t, float32(1), InterpolateSpacing(1, 10, 1))
	require.Equal(t, float32(5.5), InterpolateSpacing(1, 10, 0.5))

	t.Run("monotonically non increasing", func(t *testing.T) {
		previous := InterpolateSpacing(0.25, 7, 0)
		for i := 1; i <= 1000; i++ {
			spacing := InterpolateSpacing(0.25, 7, float32(i)/1000)
			require.LessOrEqual(t, spacing, previous)
			previous = spacing
		}
	})

	t.Run("params", func(t *testing.T) {
		p := DefaultParams()
		require.Equal(t, p.MaxProbeSpacing, p.Spacing(0))
		require.Equal(t, p.MinProbeSpacing, p.Spacing(1))
	})
}

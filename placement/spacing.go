package placement

import (
	"github.com/aukilabs/probeseed/geometry"
)

// InterpolateSpacing maps a density to a probe spacing: density 0 gives
// maxSpacing and density 1 gives minSpacing.
func InterpolateSpacing(minSpacing float32, maxSpacing float32, density float32) float32 {
	return geometry.Lerp(minSpacing, maxSpacing, 1-density)
}
